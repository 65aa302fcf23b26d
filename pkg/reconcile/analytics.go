package reconcile

import (
	"math"

	"github.com/umputun/truckscope/pkg/domain"
)

// manual review band defaults
const (
	ReviewMinConfidence = 0.3
	ReviewMaxConfidence = 0.6
)

// ConfidenceBuckets are the histogram labels, in order
var ConfidenceBuckets = []string{"0-20%", "20-40%", "40-60%", "60-80%", "80-100%"}

// Analytics is an aggregated view over activity logs
type Analytics struct {
	Total                  int            `json:"total"`
	AverageConfidence      float64        `json:"average_confidence"`
	ConfidenceDistribution map[string]int `json:"confidence_distribution"`
	SourceBreakdown        map[string]int `json:"source_breakdown"`
	ActionBreakdown        map[string]int `json:"action_breakdown"`
	PlatformBreakdown      map[string]int `json:"platform_breakdown"`
}

// Analyze builds analytics from activity logs. All five histogram buckets are always present,
// average confidence is rounded to two decimals and a missing platform counts as "unknown".
func Analyze(logs []domain.ActivityLog) Analytics {
	res := Analytics{
		Total:                  len(logs),
		ConfidenceDistribution: make(map[string]int, len(ConfidenceBuckets)),
		SourceBreakdown:        map[string]int{},
		ActionBreakdown:        map[string]int{},
		PlatformBreakdown:      map[string]int{},
	}
	for _, b := range ConfidenceBuckets {
		res.ConfidenceDistribution[b] = 0
	}
	if len(logs) == 0 {
		return res
	}

	sum := 0.0
	for _, l := range logs {
		sum += l.ConfidenceScore
		res.ConfidenceDistribution[ConfidenceBuckets[bucketIndex(l.ConfidenceScore)]]++
		res.SourceBreakdown[l.Source]++
		res.ActionBreakdown[string(l.Action)]++
		platform := l.Metadata.Platform
		if platform == "" {
			platform = "unknown"
		}
		res.PlatformBreakdown[platform]++
	}
	res.AverageConfidence = math.Round(sum/float64(len(logs))*100) / 100
	return res
}

func bucketIndex(conf float64) int {
	idx := int(math.Floor(conf * 100 / 20))
	return max(0, min(idx, len(ConfidenceBuckets)-1))
}

// FilterByConfidence keeps schedules with confidence at or above minConfidence
func FilterByConfidence(schedules []domain.Schedule, minConfidence float64) []domain.Schedule {
	res := []domain.Schedule{}
	for _, s := range schedules {
		if s.Confidence >= minConfidence {
			res = append(res, s)
		}
	}
	return res
}

// ForManualReview keeps schedules in [minConfidence, maxConfidence), low but not rejected
func ForManualReview(schedules []domain.Schedule, minConfidence, maxConfidence float64) []domain.Schedule {
	res := []domain.Schedule{}
	for _, s := range schedules {
		if s.Confidence >= minConfidence && s.Confidence < maxConfidence {
			res = append(res, s)
		}
	}
	return res
}
