package domain

import "time"

// ParsedSchedule is the raw result of schedule extraction from text.
// Empty string fields mean nothing was extracted for that fragment.
type ParsedSchedule struct {
	Date       string  `json:"date,omitempty"`
	StartTime  string  `json:"start_time,omitempty"`
	EndTime    string  `json:"end_time,omitempty"`
	TimeRange  string  `json:"time_range,omitempty"`
	Location   string  `json:"location,omitempty"`
	Confidence float64 `json:"confidence"`
	RawText    string  `json:"raw_text"`
}

// HasFields reports whether at least one of date, time range or location was extracted
func (p ParsedSchedule) HasFields() bool {
	return p.Date != "" || p.TimeRange != "" || p.Location != ""
}

// Schedule is a vendor's claimed presence at a date, time and location
type Schedule struct {
	VendorID   string    `json:"vendor_id"`
	Date       string    `json:"date"` // YYYY-MM-DD
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	Location   string    `json:"location"`
	Source     string    `json:"source"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ScheduleKey is the identity of a schedule, two schedules with the same key are the same appointment
type ScheduleKey struct {
	VendorID string
	Date     string
	Location string
}

// Key returns identity key of the schedule
func (s Schedule) Key() ScheduleKey {
	return ScheduleKey{VendorID: s.VendorID, Date: s.Date, Location: s.Location}
}

// ID returns the schedule reference used in activity logs
func (s Schedule) ID() string {
	return s.VendorID + "_" + s.Date
}
