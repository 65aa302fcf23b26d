package confidence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/truckscope/pkg/domain"
)

func TestFromSignals(t *testing.T) {
	full := domain.ParsedSchedule{Date: "tomorrow", TimeRange: "11am-2pm", Location: "Central Park"}

	tests := []struct {
		name   string
		sig    Signals
		parsed domain.ParsedSchedule
		want   float64
	}{
		{name: "everything", sig: Signals{Verified: true, HasImage: true}, parsed: full, want: 1.0},
		{name: "unverified with image", sig: Signals{HasImage: true}, parsed: full, want: 0.6},
		{name: "verified only", sig: Signals{Verified: true}, parsed: domain.ParsedSchedule{}, want: 0.4},
		{name: "nothing", want: 0},
		{name: "location only", parsed: domain.ParsedSchedule{Location: "Main Street"}, want: 0.2},
		{name: "date and time", parsed: domain.ParsedSchedule{Date: "friday", TimeRange: "5pm"}, want: 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromSignals(tt.sig, tt.parsed)
			assert.InDelta(t, tt.want, got, 0.0001)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestFromText(t *testing.T) {
	tests := []struct {
		name   string
		parsed domain.ParsedSchedule
		text   string
		want   float64
	}{
		{name: "empty", want: 0},
		{name: "keyword only", text: "Food truck life", want: 0.05},
		{name: "relative date", parsed: domain.ParsedSchedule{Date: "tomorrow"}, want: 0.4},
		{name: "numeric date bonus", parsed: domain.ParsedSchedule{Date: "9/5"}, want: 0.5},
		{name: "point time", parsed: domain.ParsedSchedule{TimeRange: "5pm", StartTime: "5:00 PM"}, want: 0.3},
		{name: "decomposed range bonus",
			parsed: domain.ParsedSchedule{TimeRange: "11am-2pm", StartTime: "11:00 AM", EndTime: "2:00 PM"}, want: 0.4},
		{name: "everything clamps at one",
			parsed: domain.ParsedSchedule{Date: "9/5", TimeRange: "11am-2pm", StartTime: "11:00 AM",
				EndTime: "2:00 PM", Location: "Central Park"},
			text: "serving tacos", want: 1.0},
		{name: "keyword counted once",
			parsed: domain.ParsedSchedule{Location: "Central Park"},
			text:   "food truck serving, open, selling from the menu", want: 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromText(tt.parsed, tt.text)
			assert.InDelta(t, tt.want, got, 0.0001)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestHasKeyword(t *testing.T) {
	assert.True(t, HasKeyword("We are OPEN today"))
	assert.True(t, HasKeyword("new Menu drop"))
	assert.False(t, HasKeyword("tacos at noon"))
	assert.False(t, HasKeyword(""))
}

func TestSignalsOf(t *testing.T) {
	post := domain.Post{Author: domain.Author{Verified: true}, Images: []string{"https://example.com/a.jpg"}}
	assert.Equal(t, Signals{Verified: true, HasImage: true}, SignalsOf(post))
	assert.Equal(t, Signals{}, SignalsOf(domain.Post{}))
}
