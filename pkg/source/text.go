package source

import (
	"html"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	hashtagRe = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)
	mentionRe = regexp.MustCompile(`@([\p{L}\p{N}_]+)`)
	urlRe     = regexp.MustCompile(`https?://[^\s]+`)
	spaceRe   = regexp.MustCompile(`\s+`)
	imageRe   = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp)$`)
	videoRe   = regexp.MustCompile(`(?i)\.(mp4|webm|mov|avi)$`)
	numberRe  = regexp.MustCompile(`[\d.]+`)

	strictPolicy = bluemonday.StrictPolicy()
)

func hashtags(text string) []string { return captures(hashtagRe, text) }

func mentions(text string) []string { return captures(mentionRe, text) }

func links(text string) []string { return urlRe.FindAllString(text, -1) }

func captures(re *regexp.Regexp, text string) []string {
	var res []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		res = append(res, m[1])
	}
	return res
}

// cleanText collapses all whitespace runs into single spaces
func cleanText(text string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}

// plainText strips markup from html fragments found in feeds and pages
func plainText(fragment string) string {
	return cleanText(html.UnescapeString(strictPolicy.Sanitize(fragment)))
}

func isImageURL(u string) bool {
	return imageRe.MatchString(stripQuery(u))
}

func isVideoURL(u string) bool {
	return videoRe.MatchString(stripQuery(u)) || strings.Contains(u, "v.redd.it")
}

func stripQuery(u string) string {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		return u[:i]
	}
	return u
}

// parseNumber reads counters rendered by web pages, e.g. "1,234", "1.2K", "3M views"
func parseNumber(text string) int {
	t := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(text), ",", ""))
	num := numberRe.FindString(t)
	if num == "" {
		return 0
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	switch rest := t[strings.Index(t, num)+len(num):]; {
	case strings.HasPrefix(strings.TrimSpace(rest), "K"):
		v *= 1_000
	case strings.HasPrefix(strings.TrimSpace(rest), "M"):
		v *= 1_000_000
	case strings.HasPrefix(strings.TrimSpace(rest), "B"):
		v *= 1_000_000_000
	}
	return int(math.Round(v))
}

// orQuery joins parts into "a OR b" form
func orQuery(parts ...[]string) string {
	var all []string
	for _, p := range parts {
		all = append(all, p...)
	}
	return strings.Join(all, " OR ")
}

func prefixed(prefix string, values []string) []string {
	res := make([]string, 0, len(values))
	for _, v := range values {
		res = append(res, prefix+strings.TrimPrefix(strings.TrimPrefix(v, "@"), "#"))
	}
	return res
}
