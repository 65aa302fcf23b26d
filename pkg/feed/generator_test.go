package feed

import (
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/truckscope/pkg/domain"
)

var testNow = time.Date(2025, 9, 3, 10, 0, 0, 0, time.UTC)

func newTestGenerator(baseURL string) *Generator {
	g := NewGenerator(baseURL)
	g.now = func() time.Time { return testNow }
	return g
}

func testSchedules() []domain.Schedule {
	return []domain.Schedule{
		{VendorID: "taco", Date: "2025-09-05", StartTime: "11:00", EndTime: "14:00", Location: "Central Park",
			Source: "twitter:t1", Confidence: 0.9, UpdatedAt: time.Date(2025, 9, 2, 8, 0, 0, 0, time.UTC)},
		{VendorID: "burger", Date: "2025-09-06", StartTime: "17:00", Location: "Main Street",
			Source: "instagram:p1", Confidence: 0.6},
	}
}

func TestGenerator_GenerateRSS(t *testing.T) {
	generator := newTestGenerator("https://example.com")
	names := map[string]string{"taco": "Taco Truck", "burger": "Burger Bus"}

	t.Run("all vendors", func(t *testing.T) {
		rss, err := generator.GenerateRSS(testSchedules(), names, "")
		require.NoError(t, err)

		// check basic structure
		assert.Contains(t, rss, `<?xml version="1.0" encoding="UTF-8"?>`)
		assert.Contains(t, rss, `<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
		assert.Contains(t, rss, `<title>Truckscope - All Vendors</title>`)
		assert.Contains(t, rss, `<link>https://example.com/</link>`)
		assert.Contains(t, rss, `<link xmlns="http://www.w3.org/2005/Atom" href="https://example.com/rss" rel="self" type="application/rss+xml"></link>`)
		assert.Contains(t, rss, `<lastBuildDate>Wed, 03 Sep 2025 10:00:00 +0000</lastBuildDate>`)
		assert.Contains(t, rss, `<ttl>60</ttl>`)

		// check items
		assert.Contains(t, rss, `<title>Taco Truck: 2025-09-05 Central Park, 11:00-14:00</title>`)
		assert.Contains(t, rss, `<guid isPermaLink="false">taco/2025-09-05/Central Park</guid>`)
		assert.Contains(t, rss, `<author>Taco Truck</author>`)
		assert.Contains(t, rss, `<category>twitter</category>`)
		assert.Contains(t, rss, `Confidence: 90%`)
		assert.Contains(t, rss, `<pubDate>Tue, 02 Sep 2025 08:00:00 +0000</pubDate>`)
		assert.Contains(t, rss, `<title>Burger Bus: 2025-09-06 Main Street, from 17:00</title>`)
		assert.Contains(t, rss, `<category>instagram</category>`)
	})

	t.Run("single vendor", func(t *testing.T) {
		rss, err := generator.GenerateRSS(testSchedules()[:1], names, "taco")
		require.NoError(t, err)

		assert.Contains(t, rss, `<title>Truckscope - Taco Truck</title>`)
		assert.Contains(t, rss, `<description>Upcoming stops of Taco Truck detected from social posts</description>`)
		assert.Contains(t, rss, `href="https://example.com/rss/taco"`)
		assert.Contains(t, rss, `<title>2025-09-05 Central Park, 11:00-14:00</title>`)
		assert.Contains(t, rss, `<link>https://example.com/rss/taco#2025-09-05</link>`)
	})

	t.Run("unknown vendor name falls back to id", func(t *testing.T) {
		rss, err := generator.GenerateRSS(nil, nil, "pizza van")
		require.NoError(t, err)
		assert.Contains(t, rss, `<title>Truckscope - pizza van</title>`)
		assert.Contains(t, rss, `href="https://example.com/rss/pizza%20van"`)
		assert.NotContains(t, rss, `<item>`)
	})

	t.Run("generator with trailing slash in base URL", func(t *testing.T) {
		gen := newTestGenerator("https://example.com/")
		rss, err := gen.GenerateRSS(testSchedules(), names, "")
		require.NoError(t, err)

		// should not have double slashes
		assert.Contains(t, rss, `<link>https://example.com/</link>`)
		assert.Contains(t, rss, `href="https://example.com/rss"`)
		assert.NotContains(t, rss, `https://example.com//`)
	})

	t.Run("parsed back by feed reader", func(t *testing.T) {
		rss, err := generator.GenerateRSS(testSchedules(), names, "")
		require.NoError(t, err)

		parsed, err := gofeed.NewParser().ParseString(rss)
		require.NoError(t, err)
		assert.Equal(t, "Truckscope - All Vendors", parsed.Title)
		require.Len(t, parsed.Items, 2)
		assert.Equal(t, "taco/2025-09-05/Central Park", parsed.Items[0].GUID)
		assert.Equal(t, []string{"twitter"}, parsed.Items[0].Categories)
		assert.Contains(t, parsed.Items[0].Description, "Location: Central Park\nTime: 11:00-14:00")
		require.NotNil(t, parsed.Items[1].PublishedParsed)
		assert.True(t, parsed.Items[1].PublishedParsed.Equal(testNow), "zero timestamps fall back to build time")
	})
}

func TestGenerator_convertToRSSItem(t *testing.T) {
	generator := newTestGenerator("https://example.com")

	s := domain.Schedule{VendorID: "taco", Date: "2025-09-05", Location: "Dock 5", Source: "manual",
		Confidence: 0.55, CreatedAt: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)}
	item := generator.convertToRSSItem(s, "Taco Truck", false)

	assert.Equal(t, "2025-09-05 Dock 5", item.Title)
	assert.Equal(t, "Taco Truck", item.Author)
	assert.Empty(t, item.Categories, "source without platform prefix")
	assert.Equal(t, "Mon, 01 Sep 2025 00:00:00 +0000", item.PubDate)
	assert.Equal(t, "Date: 2025-09-05\nLocation: Dock 5\nConfidence: 55%\nSource: manual", item.Description)
}

func TestGenerator_GenerateOPML(t *testing.T) {
	generator := newTestGenerator("https://example.com")

	vendors := []domain.Vendor{
		{ID: "taco", Name: "Taco Truck", Enabled: true},
		{ID: "burger", Name: "Burger Bus", Enabled: true},
		{ID: "closed", Name: "Disabled Van", Enabled: false},
	}

	opml, err := generator.GenerateOPML(vendors)
	require.NoError(t, err)

	// check basic structure
	assert.Contains(t, opml, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, opml, `<opml version="2.0">`)
	assert.Contains(t, opml, `<title>Truckscope Vendor Schedules</title>`)

	// check enabled vendors are included
	assert.Contains(t, opml, `text="Taco Truck"`)
	assert.Contains(t, opml, `type="rss"`)
	assert.Contains(t, opml, `xmlUrl="https://example.com/rss/taco"`)
	assert.Contains(t, opml, `htmlUrl="https://example.com/"`)
	assert.Contains(t, opml, `xmlUrl="https://example.com/rss/burger"`)

	// check disabled vendor is not included
	assert.NotContains(t, opml, "Disabled Van")
	assert.NotContains(t, opml, "rss/closed")
}

func TestRSSXMLStructure(t *testing.T) {
	generator := newTestGenerator("https://example.com")

	schedules := []domain.Schedule{{VendorID: "v1", Date: "2025-09-05", Location: "Smith & Sons <Lot>",
		Source: "reddit:r1", Confidence: 0.8}}

	rss, err := generator.GenerateRSS(schedules, map[string]string{"v1": "Fish & Chips"}, "")
	require.NoError(t, err)

	// XML special characters should be escaped
	assert.Contains(t, rss, "Smith &amp; Sons &lt;Lot&gt;")
	assert.Contains(t, rss, "Fish &amp; Chips")

	// verify it's valid XML by checking key elements are present and properly nested
	assert.Regexp(t, `(?s)<rss[^>]*>.*<channel>.*</channel>.*</rss>`, rss)
}
