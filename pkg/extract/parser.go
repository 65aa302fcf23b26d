// Package extract recovers schedule fragments (date, time range, location) from free text
// and converts them into vendor schedules. Everything here is pure, no I/O.
package extract

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/umputun/truckscope/pkg/confidence"
	"github.com/umputun/truckscope/pkg/domain"
)

// MinValidConfidence is the confidence floor for a parsed schedule to be valid
const MinValidConfidence = 0.5

// TBD is used for schedule fields that could not be extracted
const TBD = "TBD"

var spacesRe = regexp.MustCompile(`\s+`)

// Result is a parsed post ready for reconciliation
type Result struct {
	Schedule domain.ParsedSchedule `json:"schedule"`
	Valid    bool                  `json:"valid"`
	VendorID string                `json:"vendor_id,omitempty"`
	Source   string                `json:"source"`
}

// Parse extracts schedule fragments from text. When post is given its social signals
// drive the confidence, otherwise the text-only model is used.
// Always returns a best-effort record, even if nothing matched.
func Parse(text string, post *domain.Post) domain.ParsedSchedule {
	clean := cleanText(text)

	res := domain.ParsedSchedule{RawText: text}
	res.Date = findDate(clean)
	res.TimeRange, res.StartTime, res.EndTime = findTime(clean)
	res.Location = findLocation(clean)

	if post != nil {
		res.Confidence = confidence.FromSignals(confidence.SignalsOf(*post), res)
		return res
	}
	res.Confidence = confidence.FromText(res, clean)
	return res
}

// IsValid reports whether parsed data is confident enough and has at least one fragment
func IsValid(p domain.ParsedSchedule) bool {
	return p.Confidence >= MinValidConfidence && p.HasFields()
}

// ParsePost parses post text with post signals
func ParsePost(post domain.Post, vendorID string) Result {
	parsed := Parse(post.Text, &post)
	return Result{Schedule: parsed, Valid: IsValid(parsed), VendorID: vendorID, Source: post.Source()}
}

// ToSchedule converts a valid parse result to a schedule for vendorID.
// Returns false if the result is invalid, has no date, or the date can't be normalized.
func ToSchedule(res Result, vendorID string, now time.Time) (domain.Schedule, bool) {
	if !res.Valid || res.Schedule.Date == "" {
		return domain.Schedule{}, false
	}
	date, ok := NormalizeDate(res.Schedule.Date, now)
	if !ok {
		return domain.Schedule{}, false
	}
	return domain.Schedule{
		VendorID:   vendorID,
		Date:       date,
		StartTime:  orTBD(res.Schedule.StartTime),
		EndTime:    orTBD(res.Schedule.EndTime),
		Location:   orTBD(res.Schedule.Location),
		Source:     res.Source,
		Confidence: res.Schedule.Confidence,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, true
}

// ExtractSchedules converts posts to schedules, drops duplicates by identity key
// and sorts by date ascending. Empty vendorID is stored as "unknown".
func ExtractSchedules(posts []domain.Post, vendorID string, now time.Time) []domain.Schedule {
	if vendorID == "" {
		vendorID = "unknown"
	}
	seen := map[domain.ScheduleKey]bool{}
	res := []domain.Schedule{}
	for _, p := range posts {
		parsed := ParsePost(p, vendorID)
		sch, ok := ToSchedule(parsed, vendorID, now)
		if !ok || seen[sch.Key()] {
			continue
		}
		seen[sch.Key()] = true
		res = append(res, sch)
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Date < res[j].Date })
	return res
}

func findDate(text string) string {
	for _, r := range dateRules {
		if v, ok := r.find(text); ok {
			return v
		}
	}
	return ""
}

func findTime(text string) (timeRange, start, end string) {
	for _, r := range timeRules {
		g := r.re.FindStringSubmatch(text)
		if g == nil {
			continue
		}
		start, end = r.split(g)
		return strings.TrimSpace(g[0]), start, end
	}
	return "", "", ""
}

func findLocation(text string) string {
	for _, r := range locationRules {
		g := r.re.FindStringSubmatch(text)
		if len(g) < 2 {
			continue
		}
		if v := strings.TrimSpace(g[1]); v != "" {
			return v
		}
	}
	return ""
}

func cleanText(text string) string {
	return strings.TrimSpace(spacesRe.ReplaceAllString(text, " "))
}

func orTBD(s string) string {
	if s == "" {
		return TBD
	}
	return s
}
