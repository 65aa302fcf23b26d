package domain

import (
	"fmt"
	"strings"
	"time"
)

// Platform identifies a social media source
type Platform string

// supported platforms
const (
	PlatformTwitter   Platform = "twitter"
	PlatformInstagram Platform = "instagram"
	PlatformReddit    Platform = "reddit"
	PlatformYouTube   Platform = "youtube"
)

// AllPlatforms lists every supported platform in a stable order
var AllPlatforms = []Platform{PlatformTwitter, PlatformInstagram, PlatformReddit, PlatformYouTube}

// ParsePlatform converts a string to Platform, case-insensitive
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PlatformTwitter, PlatformInstagram, PlatformReddit, PlatformYouTube:
		return p, nil
	case "x":
		return PlatformTwitter, nil
	}
	return "", fmt.Errorf("unsupported platform %q", s)
}

// Author of a post
type Author struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	ProfileURL  string `json:"profile_url,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Verified    bool   `json:"verified"`
}

// Engagement counters, zero when the source doesn't report them
type Engagement struct {
	Likes    int `json:"likes"`
	Shares   int `json:"shares"`
	Comments int `json:"comments"`
	Views    int `json:"views,omitempty"`
}

// Interactions returns likes, shares and comments combined, views excluded
func (e Engagement) Interactions() int {
	return e.Likes + e.Shares + e.Comments
}

// Post is a normalized social media item from any platform
type Post struct {
	ID         string     `json:"id"`
	Platform   Platform   `json:"platform"`
	Author     Author     `json:"author"`
	Text       string     `json:"text"`
	Images     []string   `json:"images,omitempty"`
	Videos     []string   `json:"videos,omitempty"`
	Links      []string   `json:"links,omitempty"`
	Hashtags   []string   `json:"hashtags,omitempty"`
	Mentions   []string   `json:"mentions,omitempty"`
	Engagement Engagement `json:"engagement"`
	URL        string     `json:"url"`
	Timestamp  time.Time  `json:"timestamp"`
}

// Source returns provenance tag in "platform:postID" form
func (p Post) Source() string {
	return string(p.Platform) + ":" + p.ID
}

// HasImages reports whether the post carries at least one image
func (p Post) HasImages() bool {
	return len(p.Images) > 0
}
