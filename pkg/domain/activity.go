package domain

import "time"

// Action recorded in activity log
type Action string

// activity log actions
const (
	ActionScheduleDetected Action = "schedule_detected"
	ActionScheduleUpdated  Action = "schedule_updated"
	ActionScheduleRejected Action = "schedule_rejected"
	ActionManualReview     Action = "manual_review"
	ActionBusinessSearch   Action = "business_search"
)

// ParseAction validates and converts a string to Action
func ParseAction(s string) (Action, bool) {
	switch a := Action(s); a {
	case ActionScheduleDetected, ActionScheduleUpdated, ActionScheduleRejected, ActionManualReview, ActionBusinessSearch:
		return a, true
	}
	return "", false
}

// ParsedFragments are the raw pieces recovered from a post, kept for audit
type ParsedFragments struct {
	Date      string `json:"date,omitempty"`
	TimeRange string `json:"time_range,omitempty"`
	Location  string `json:"location,omitempty"`
}

// ActivityMetadata is the metadata bag attached to an activity log entry
type ActivityMetadata struct {
	ScheduleID   string           `json:"schedule_id,omitempty"`
	OriginalText string           `json:"original_text,omitempty"`
	ParsedData   *ParsedFragments `json:"parsed_data,omitempty"`
	Platform     string           `json:"platform,omitempty"`
	PostID       string           `json:"post_id,omitempty"`
	Reason       string           `json:"reason,omitempty"`
	Threshold    *float64         `json:"threshold,omitempty"`

	// business search fields
	SearchTerms  []string `json:"search_terms,omitempty"`
	Platforms    []string `json:"platforms,omitempty"`
	ResultsCount int      `json:"results_count,omitempty"`
	Success      *bool    `json:"success,omitempty"`
	ErrorMessage string   `json:"error_message,omitempty"`
}

// ActivityLog is an immutable audit record of one processing attempt
type ActivityLog struct {
	ID              string           `json:"id"`
	VendorID        string           `json:"vendor_id"`
	Timestamp       time.Time        `json:"timestamp"`
	Source          string           `json:"source"`
	ConfidenceScore float64          `json:"confidence_score"`
	Action          Action           `json:"action"`
	Metadata        ActivityMetadata `json:"metadata"`
}

// ActivityFilter narrows activity log listing, zero values match everything
type ActivityFilter struct {
	VendorID string
	Action   Action
	Source   string
	Limit    int
}
