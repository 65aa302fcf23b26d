// Package confidence scores extracted schedules on a 0..1 scale.
// Two independent models exist: one driven by social signals of the post and
// a text-only fallback. They are not calibrated against each other.
package confidence

import (
	"math"
	"regexp"
	"strings"

	"github.com/umputun/truckscope/pkg/domain"
)

// points of the signal model, out of 100
const (
	verifiedPoints = 40
	imagePoints    = 10
	datePoints     = 15
	timePoints     = 15
	locationPoints = 20
	maxPoints      = 100
)

// Keywords are food-vendor terms giving a small bonus in text-only mode
var Keywords = []string{
	"food truck",
	"food van",
	"mobile kitchen",
	"food trailer",
	"serving",
	"open",
	"available",
	"selling",
	"menu",
}

var digitRe = regexp.MustCompile(`\d+`)

// Signals are post-level attributes used by the signal model
type Signals struct {
	Verified bool
	HasImage bool
}

// SignalsOf picks scoring signals from a post
func SignalsOf(post domain.Post) Signals {
	return Signals{Verified: post.Author.Verified, HasImage: post.HasImages()}
}

// FromSignals scores parsed fragments using post metadata
func FromSignals(sig Signals, parsed domain.ParsedSchedule) float64 {
	score := 0
	if sig.Verified {
		score += verifiedPoints
	}
	if sig.HasImage {
		score += imagePoints
	}
	if parsed.Date != "" {
		score += datePoints
	}
	if parsed.TimeRange != "" {
		score += timePoints
	}
	if parsed.Location != "" {
		score += locationPoints
	}
	return float64(min(score, maxPoints)) / maxPoints
}

// FromText scores parsed fragments from text alone.
// Specific dates (with digits) and fully decomposed time ranges earn a bonus,
// the keyword bonus is applied once no matter how many keywords match.
func FromText(parsed domain.ParsedSchedule, text string) float64 {
	score := 0.0
	if parsed.Date != "" {
		score += 0.4
		if digitRe.MatchString(parsed.Date) {
			score += 0.1
		}
	}
	if parsed.TimeRange != "" {
		score += 0.3
		if parsed.StartTime != "" && parsed.EndTime != "" {
			score += 0.1
		}
	}
	if parsed.Location != "" {
		score += 0.2
	}
	if HasKeyword(text) {
		score += 0.05
	}
	return round(math.Min(score, 1.0))
}

// HasKeyword reports whether text mentions any food-vendor keyword
func HasKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// round drops float noise from repeated additions, e.g. 0.4+0.3+0.2 != 0.9
func round(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
