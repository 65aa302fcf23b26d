package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

var (
	slashDateRe = regexp.MustCompile(`(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?`)
	dashDateRe  = regexp.MustCompile(`(\d{1,2})-(\d{1,2})(?:-(\d{2,4}))?`)
	monthDayRe  = regexp.MustCompile(`(?i)(` + months + `)\s+(\d{1,2})`)
)

// day names indexed by time.Weekday
var dayNames = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// NormalizeDate converts a raw date phrase into YYYY-MM-DD relative to now.
// A bare weekday naming the current day without "this" resolves to one week out.
// Returns false for phrases it doesn't recognize or impossible calendar dates.
func NormalizeDate(raw string, now time.Time) (string, bool) {
	lower := strings.ToLower(raw)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch {
	case strings.Contains(lower, "today"):
		return today.Format(isoDate), true
	case strings.Contains(lower, "tomorrow"):
		return today.AddDate(0, 0, 1).Format(isoDate), true
	}

	for idx, day := range dayNames {
		if !strings.Contains(lower, day) {
			continue
		}
		delta := (idx - int(today.Weekday()) + 7) % 7
		if delta == 0 && !strings.Contains(lower, "this") {
			delta = 7
		}
		return today.AddDate(0, 0, delta).Format(isoDate), true
	}

	for _, re := range []*regexp.Regexp{slashDateRe, dashDateRe} {
		if g := re.FindStringSubmatch(raw); g != nil {
			month, _ := strconv.Atoi(g[1])
			day, _ := strconv.Atoi(g[2])
			return calendarDate(yearOf(g[3], today), month, day, today.Location())
		}
	}

	if g := monthDayRe.FindStringSubmatch(raw); g != nil {
		month := monthIndex(g[1])
		day, _ := strconv.Atoi(g[2])
		return calendarDate(today.Year(), month, day, today.Location())
	}

	return "", false
}

// calendarDate rejects dates that time.Date would silently roll over, e.g. 2/30
func calendarDate(year, month, day int, loc *time.Location) (string, bool) {
	if month < 1 || month > 12 || day < 1 {
		return "", false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if d.Month() != time.Month(month) || d.Day() != day {
		return "", false
	}
	return d.Format(isoDate), true
}

// yearOf parses optional year group, two-digit years are in 2000s
func yearOf(s string, today time.Time) int {
	if s == "" {
		return today.Year()
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return today.Year()
	}
	if y < 100 {
		y += 2000
	}
	return y
}

func monthIndex(name string) int {
	for i, m := range strings.Split(months, "|") {
		if strings.EqualFold(m, name) {
			return i + 1
		}
	}
	return 0
}
