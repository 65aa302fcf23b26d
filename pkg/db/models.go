package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Vendor row
type Vendor struct {
	ID           string     `db:"id"`
	Name         string     `db:"name"`
	Type         string     `db:"type"`
	Address      string     `db:"address"`
	SocialHandle string     `db:"social_handle"`
	SearchTerms  StringList `db:"search_terms"`
	Hashtags     StringList `db:"hashtags"`
	Platforms    StringList `db:"platforms"`
	Enabled      bool       `db:"enabled"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

// Schedule row
type Schedule struct {
	ID         int64     `db:"id"`
	VendorID   string    `db:"vendor_id"`
	Date       string    `db:"date"`
	StartTime  string    `db:"start_time"`
	EndTime    string    `db:"end_time"`
	Location   string    `db:"location"`
	Source     string    `db:"source"`
	Confidence float64   `db:"confidence"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// ActivityLog row, metadata is a json document
type ActivityLog struct {
	ID              string    `db:"id"`
	VendorID        string    `db:"vendor_id"`
	Timestamp       time.Time `db:"timestamp"`
	Source          string    `db:"source"`
	ConfidenceScore float64   `db:"confidence_score"`
	Action          string    `db:"action"`
	Metadata        string    `db:"metadata"`
}

// StringList is stored as a json array
type StringList []string

// Value implements driver.Valuer, nil list is stored as empty array
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("marshal string list: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("unsupported string list source %T", src)
	}
	var res []string
	if err := json.Unmarshal(data, &res); err != nil {
		return fmt.Errorf("unmarshal string list: %w", err)
	}
	if len(res) == 0 {
		res = nil
	}
	*l = res
	return nil
}
