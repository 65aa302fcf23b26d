package feed

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/umputun/truckscope/pkg/domain"
)

// feedTTL hints readers to refresh hourly
const feedTTL = 60

// Generator creates RSS feeds from reconciled schedules
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// GenerateRSS creates an RSS 2.0 feed of schedules, one item per stop.
// Empty vendorID makes the feed of all vendors. Names maps vendor ids to display names.
func (g *Generator) GenerateRSS(schedules []domain.Schedule, names map[string]string, vendorID string) (string, error) {
	title := "Truckscope - All Vendors"
	selfLink := g.baseURL + "/rss"
	description := "Upcoming food vendor stops detected from social posts"
	if vendorID != "" {
		title = fmt.Sprintf("Truckscope - %s", displayName(names, vendorID))
		selfLink = fmt.Sprintf("%s/rss/%s", g.baseURL, url.PathEscape(vendorID))
		description = fmt.Sprintf("Upcoming stops of %s detected from social posts", displayName(names, vendorID))
	}

	rssItems := make([]*RSSItem, 0, len(schedules))
	for _, s := range schedules {
		rssItems = append(rssItems, g.convertToRSSItem(s, displayName(names, s.VendorID), vendorID == ""))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         title,
			Link:          g.baseURL + "/",
			Description:   description,
			AtomLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			TTL:           feedTTL,
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output), nil
}

// convertToRSSItem converts a schedule to an RSS item, withVendor prefixes the title with the vendor name
func (g *Generator) convertToRSSItem(s domain.Schedule, vendorName string, withVendor bool) *RSSItem {
	title := s.Date + " " + s.Location
	if t := timeRange(s); t != "" {
		title += ", " + t
	}
	if withVendor {
		title = vendorName + ": " + title
	}

	desc := fmt.Sprintf("Date: %s\nLocation: %s", s.Date, s.Location)
	if t := timeRange(s); t != "" {
		desc += "\nTime: " + t
	}
	desc += fmt.Sprintf("\nConfidence: %.0f%%\nSource: %s", s.Confidence*100, s.Source)

	pub := s.UpdatedAt
	if pub.IsZero() {
		pub = s.CreatedAt
	}
	if pub.IsZero() {
		pub = g.now()
	}

	item := &RSSItem{
		Title:       title,
		Link:        fmt.Sprintf("%s/rss/%s#%s", g.baseURL, url.PathEscape(s.VendorID), s.Date),
		GUID:        GUID{Value: fmt.Sprintf("%s/%s/%s", s.VendorID, s.Date, s.Location), IsPermaLink: "false"},
		Description: desc,
		Author:      vendorName,
		PubDate:     pub.Format(time.RFC1123Z),
	}
	if platform, _, ok := strings.Cut(s.Source, ":"); ok && platform != "" {
		item.Categories = []string{platform}
	}
	return item
}

// GenerateOPML creates an OPML file with schedule feed subscriptions of enabled vendors
func (g *Generator) GenerateOPML(vendors []domain.Vendor) (string, error) {
	outlines := make([]Outline, 0, len(vendors))
	for _, v := range vendors {
		if !v.Enabled {
			continue
		}
		outlines = append(outlines, Outline{
			Text:    v.Name,
			Title:   v.Name,
			Type:    "rss",
			XMLURL:  fmt.Sprintf("%s/rss/%s", g.baseURL, url.PathEscape(v.ID)),
			HTMLURL: g.baseURL + "/",
		})
	}

	doc := OPML{
		Version: "2.0",
		Head: OPMLHead{
			Title:       "Truckscope Vendor Schedules",
			DateCreated: g.now().Format(time.RFC1123Z),
		},
		Body: OPMLBody{
			Outlines: outlines,
		},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}
	return xml.Header + string(output), nil
}

func displayName(names map[string]string, vendorID string) string {
	if name := names[vendorID]; name != "" {
		return name
	}
	return vendorID
}

func timeRange(s domain.Schedule) string {
	switch {
	case s.StartTime != "" && s.EndTime != "":
		return s.StartTime + "-" + s.EndTime
	case s.StartTime != "":
		return "from " + s.StartTime
	default:
		return ""
	}
}
