package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/truckscope/pkg/domain"
)

const tacoText = "We'll be at Central Park tomorrow from 11:30am-2:30pm serving our famous tacos!"

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.ParsedSchedule
	}{
		{
			name: "relative date full range and place",
			text: tacoText,
			want: domain.ParsedSchedule{Date: "tomorrow", TimeRange: "11:30am-2:30pm", StartTime: "11:30 AM",
				EndTime: "2:30 PM", Location: "Central Park"},
		},
		{
			name: "mixed range inherits period",
			text: "Find us Friday 5-9pm at Main Street",
			want: domain.ParsedSchedule{Date: "Friday", TimeRange: "5-9pm", StartTime: "5:00 PM", EndTime: "9:00 PM",
				Location: "Main Street"},
		},
		{
			name: "next weekday is not claimed by bare weekday rule",
			text: "Back next Friday with birria",
			want: domain.ParsedSchedule{Date: "next Friday"},
		},
		{
			name: "this weekday",
			text: "see you this Saturday at 6pm",
			want: domain.ParsedSchedule{Date: "this Saturday", TimeRange: "6pm", StartTime: "6:00 PM"},
		},
		{
			name: "numeric date 24h range and pin emoji",
			text: "9/5 11:00-14:00 📍 Downtown Market. See you!",
			want: domain.ParsedSchedule{Date: "9/5", TimeRange: "11:00-14:00", StartTime: "11:00", EndTime: "14:00",
				Location: "Downtown Market"},
		},
		{
			name: "dash date and location label",
			text: "12-25\nLocation: Pioneer Square",
			want: domain.ParsedSchedule{Date: "12-25", Location: "Pioneer Square"},
		},
		{
			name: "month name and where label",
			text: "September 12th where: the old mill lot, 3rd st. see ya",
			want: domain.ParsedSchedule{Date: "September 12th", Location: "the old mill lot, 3rd st"},
		},
		{
			name: "at inside a word is not a cue",
			text: "Great vibes in Central Park",
			want: domain.ParsedSchedule{},
		},
		{
			name: "at sign cue and dotted time",
			text: "@ Lincoln Plaza 11.30am – 1pm",
			want: domain.ParsedSchedule{TimeRange: "11.30am – 1pm", StartTime: "11:30 AM", EndTime: "1:00 PM",
				Location: "Lincoln Plaza"},
		},
		{
			name: "nothing recognizable",
			text: "just vibes",
			want: domain.ParsedSchedule{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text, nil)
			assert.Equal(t, tt.want.Date, got.Date, "date")
			assert.Equal(t, tt.want.TimeRange, got.TimeRange, "time range")
			assert.Equal(t, tt.want.StartTime, got.StartTime, "start")
			assert.Equal(t, tt.want.EndTime, got.EndTime, "end")
			assert.Equal(t, tt.want.Location, got.Location, "location")
			assert.Equal(t, tt.text, got.RawText)
			assert.GreaterOrEqual(t, got.Confidence, 0.0)
			assert.LessOrEqual(t, got.Confidence, 1.0)
		})
	}
}

func TestParse_Confidence(t *testing.T) {
	t.Run("text only", func(t *testing.T) {
		got := Parse(tacoText, nil)
		assert.GreaterOrEqual(t, got.Confidence, 0.9)
		assert.True(t, IsValid(got))
	})

	t.Run("verified post with image", func(t *testing.T) {
		post := &domain.Post{Author: domain.Author{Verified: true}, Images: []string{"https://example.com/1.jpg"}}
		got := Parse(tacoText, post)
		assert.InDelta(t, 1.0, got.Confidence, 0.0001)
	})

	t.Run("plain post uses signal model", func(t *testing.T) {
		got := Parse(tacoText, &domain.Post{})
		assert.InDelta(t, 0.5, got.Confidence, 0.0001)
	})

	t.Run("no fragments", func(t *testing.T) {
		got := Parse("food truck life", nil)
		assert.InDelta(t, 0.05, got.Confidence, 0.0001)
		assert.False(t, IsValid(got))
	})
}

func TestIsValid(t *testing.T) {
	assert.False(t, IsValid(domain.ParsedSchedule{Confidence: 0.9}), "no fragments")
	assert.False(t, IsValid(domain.ParsedSchedule{Confidence: 0.49, Location: "Park"}), "low confidence")
	assert.True(t, IsValid(domain.ParsedSchedule{Confidence: 0.5, Location: "Park"}))
}

func TestParsePost(t *testing.T) {
	post := domain.Post{ID: "123", Platform: domain.PlatformTwitter, Text: tacoText,
		Author: domain.Author{Verified: true}}
	res := ParsePost(post, "v1")
	assert.Equal(t, "twitter:123", res.Source)
	assert.Equal(t, "v1", res.VendorID)
	assert.True(t, res.Valid)
	assert.InDelta(t, 0.9, res.Schedule.Confidence, 0.0001)
}

func TestToSchedule(t *testing.T) {
	now := time.Date(2025, 9, 3, 10, 0, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		res := Result{Valid: true, Source: "reddit:abc",
			Schedule: domain.ParsedSchedule{Date: "tomorrow", Location: "Central Park", Confidence: 0.7}}
		sch, ok := ToSchedule(res, "v1", now)
		require.True(t, ok)
		assert.Equal(t, domain.Schedule{VendorID: "v1", Date: "2025-09-04", StartTime: TBD, EndTime: TBD,
			Location: "Central Park", Source: "reddit:abc", Confidence: 0.7, CreatedAt: now, UpdatedAt: now}, sch)
	})

	t.Run("invalid result", func(t *testing.T) {
		_, ok := ToSchedule(Result{Schedule: domain.ParsedSchedule{Date: "today"}}, "v1", now)
		assert.False(t, ok)
	})

	t.Run("missing date", func(t *testing.T) {
		_, ok := ToSchedule(Result{Valid: true, Schedule: domain.ParsedSchedule{Location: "Park"}}, "v1", now)
		assert.False(t, ok)
	})

	t.Run("date can't be normalized", func(t *testing.T) {
		_, ok := ToSchedule(Result{Valid: true, Schedule: domain.ParsedSchedule{Date: "2/30"}}, "v1", now)
		assert.False(t, ok)
	})
}

func TestExtractSchedules(t *testing.T) {
	now := time.Date(2025, 9, 3, 10, 0, 0, 0, time.UTC)
	verified := domain.Author{Verified: true}
	posts := []domain.Post{
		{ID: "1", Platform: domain.PlatformTwitter, Author: verified, Text: "Friday 5-9pm at Main Street"},
		{ID: "2", Platform: domain.PlatformReddit, Author: verified, Text: "today 11am-2pm at Central Park"},
		{ID: "3", Platform: domain.PlatformInstagram, Author: verified, Text: "Friday at Main Street, come hungry"},
		{ID: "4", Platform: domain.PlatformYouTube, Text: "new video"},
	}

	res := ExtractSchedules(posts, "", now)
	require.Len(t, res, 2)
	assert.Equal(t, "2025-09-03", res[0].Date)
	assert.Equal(t, "Central Park", res[0].Location)
	assert.Equal(t, "2025-09-05", res[1].Date)
	assert.Equal(t, "twitter:1", res[1].Source, "first post wins on identity key")
	assert.Equal(t, "unknown", res[1].VendorID)
}
