package domain

import "time"

// Vendor is a tracked mobile food business
type Vendor struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Type         string     `json:"type,omitempty"`
	Address      string     `json:"address,omitempty"`
	SocialHandle string     `json:"social_handle,omitempty"`
	SearchTerms  []string   `json:"search_terms,omitempty"`
	Hashtags     []string   `json:"hashtags,omitempty"`
	Platforms    []Platform `json:"platforms,omitempty"` // empty means all platforms
	Enabled      bool       `json:"enabled"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
