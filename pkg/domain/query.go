package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidQuery is returned when a query can't be sent to a platform
var ErrInvalidQuery = errors.New("invalid query")

// ErrInvalidConfidence is returned for confidence thresholds outside of [0,1]
var ErrInvalidConfidence = errors.New("confidence must be between 0 and 1")

// DateRange is an inclusive time window
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether t falls inside the range, bounds included
func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	return r.To.IsZero() || !t.After(r.To)
}

// Query is a platform-neutral search request
type Query struct {
	SearchTerms     []string   `json:"search_terms,omitempty"`
	Hashtags        []string   `json:"hashtags,omitempty"`
	Usernames       []string   `json:"usernames,omitempty"`
	MaxPosts        int        `json:"max_posts,omitempty"`
	DateRange       *DateRange `json:"date_range,omitempty"`
	IncludeReplies  bool       `json:"include_replies,omitempty"`
	IncludeRetweets bool       `json:"include_retweets,omitempty"`
}

// Validate checks that the query has at least one search criterion
func (q Query) Validate() error {
	if len(q.SearchTerms) == 0 && len(q.Hashtags) == 0 && len(q.Usernames) == 0 {
		return fmt.Errorf("%w: at least one of search terms, hashtags or usernames is required", ErrInvalidQuery)
	}
	if q.MaxPosts < 0 {
		return fmt.Errorf("%w: max posts can't be negative", ErrInvalidQuery)
	}
	if q.DateRange != nil && !q.DateRange.To.IsZero() && q.DateRange.To.Before(q.DateRange.From) {
		return fmt.Errorf("%w: date range end is before start", ErrInvalidQuery)
	}
	return nil
}

// FetchResult is what a single platform returns for a query
type FetchResult struct {
	Platform    Platform  `json:"platform"`
	Posts       []Post    `json:"posts"`
	Errors      []string  `json:"errors"`
	TotalFound  int       `json:"total_found"`
	CrawledAt   time.Time `json:"crawled_at"`
	SearchQuery string    `json:"search_query,omitempty"`
}
