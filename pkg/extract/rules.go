package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const weekdays = `monday|tuesday|wednesday|thursday|friday|saturday|sunday`
const months = `january|february|march|april|may|june|july|august|september|october|november|december`
const placeWords = `Park|Market|Square|Plaza|Street|Ave|Avenue|Blvd|Boulevard|Center|Mall`

// nextSuffixRe detects a "next" qualifier right before a weekday match
var nextSuffixRe = regexp.MustCompile(`(?i)(?:^|\s)next\s+$`)

// dateRule recovers a raw date phrase, skip drops individual matches the rule must not claim
type dateRule struct {
	name string
	re   *regexp.Regexp
	skip func(text string, start int) bool
}

// dateRules are evaluated in order, the first rule with a match wins
var dateRules = []dateRule{
	{name: "relative", re: regexp.MustCompile(`(?i)(?:this\s+)?(?:today|tomorrow)`)},
	{name: "weekday", re: regexp.MustCompile(`(?i)(?:this\s+)?(?:` + weekdays + `)`),
		skip: func(text string, start int) bool { return nextSuffixRe.MatchString(text[:start]) }},
	{name: "next-weekday", re: regexp.MustCompile(`(?i)(?:next\s+)?(?:` + weekdays + `)`)},
	{name: "month-slash-day", re: regexp.MustCompile(`\d{1,2}/\d{1,2}(?:/\d{2,4})?`)},
	{name: "month-dash-day", re: regexp.MustCompile(`\d{1,2}-\d{1,2}(?:-\d{2,4})?`)},
	{name: "month-name-day", re: regexp.MustCompile(`(?i)(?:` + months + `)\s+\d{1,2}(?:st|nd|rd|th)?`)},
}

func (r dateRule) find(text string) (string, bool) {
	for _, loc := range r.re.FindAllStringIndex(text, -1) {
		if r.skip != nil && r.skip(text, loc[0]) {
			continue
		}
		return strings.TrimSpace(text[loc[0]:loc[1]]), true
	}
	return "", false
}

// timeRule recovers a time range, split turns submatches into structured start and end times
type timeRule struct {
	name  string
	re    *regexp.Regexp
	split func(g []string) (start, end string)
}

// timeRules are evaluated in order, the first rule with a match wins
var timeRules = []timeRule{
	{
		name: "full-range",
		re:   regexp.MustCompile(`(?i)(\d{1,2})(?:[:.](\d{2}))?\s*(am|pm)\s*[-–]\s*(\d{1,2})(?:[:.](\d{2}))?\s*(am|pm)`),
		split: func(g []string) (start, end string) {
			return formatTime(g[1], g[2], g[3]), formatTime(g[4], g[5], g[6])
		},
	},
	{
		// only the end carries am/pm, the start inherits it
		name: "mixed-range",
		re:   regexp.MustCompile(`(?i)(\d{1,2})(?:[:.](\d{2}))?\s*[-–]\s*(\d{1,2})(?:[:.](\d{2}))?\s*(am|pm)`),
		split: func(g []string) (start, end string) {
			return formatTime(g[1], g[2], g[5]), formatTime(g[3], g[4], g[5])
		},
	},
	{
		name: "point",
		re:   regexp.MustCompile(`(?i)(\d{1,2})(?:[:.](\d{2}))?\s*(am|pm)`),
		split: func(g []string) (start, end string) {
			return formatTime(g[1], g[2], g[3]), ""
		},
	},
	{
		name: "24h-range",
		re:   regexp.MustCompile(`(\d{1,2})[:.](\d{2})\s*[-–]\s*(\d{1,2})[:.](\d{2})`),
		split: func(g []string) (start, end string) {
			return formatTime(g[1], g[2], ""), formatTime(g[3], g[4], "")
		},
	},
}

// locationRule recovers a location phrase from the first capture group
type locationRule struct {
	name string
	re   *regexp.Regexp
}

// locationRules are evaluated in order, the first rule with a non-empty capture wins
var locationRules = []locationRule{
	{name: "at-place", re: regexp.MustCompile(`(?i)(?:(?:^|[^A-Za-z])at|@)\s+([A-Za-z\s]+(?:` + placeWords + `))`)},
	{name: "location-label", re: regexp.MustCompile(`(?i)(?:location|venue):\s*([A-Za-z\s]+)`)},
	{name: "where-label", re: regexp.MustCompile(`(?i)(?:where|location):\s*([^.!?]+)`)},
	{name: "pin-emoji", re: regexp.MustCompile(`📍\s*([^.!?]+)`)},
	{name: "store-emoji", re: regexp.MustCompile(`🏪\s*([^.!?]+)`)},
	{name: "fork-emoji", re: regexp.MustCompile(`🍴\s*([^.!?]+)`)},
}

// formatTime renders "H:MM AM" when period is known and "HH:MM" otherwise
func formatTime(hour, minute, period string) string {
	if hour == "" {
		return ""
	}
	h, err := strconv.Atoi(hour)
	if err != nil {
		return ""
	}
	m := 0
	if minute != "" {
		if m, err = strconv.Atoi(minute); err != nil {
			return ""
		}
	}
	if period != "" {
		return fmt.Sprintf("%d:%02d %s", h, m, strings.ToUpper(period))
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}
