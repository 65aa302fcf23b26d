package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"github.com/umputun/truckscope/pkg/domain"
)

// YouTubeConfig configures the youtube adapter
type YouTubeConfig struct {
	Credentials YouTubeCredentials
	APIURL      string // default https://www.googleapis.com
	WebURL      string // default https://www.youtube.com
}

// YouTube adapter, data api v3 with a fallback to channel feeds and the results page
type YouTube struct {
	cfg    YouTubeConfig
	client *Client
}

// NewYouTube makes youtube adapter
func NewYouTube(cfg YouTubeConfig, client *Client) *YouTube {
	if cfg.APIURL == "" {
		cfg.APIURL = "https://www.googleapis.com"
	}
	if cfg.WebURL == "" {
		cfg.WebURL = "https://www.youtube.com"
	}
	return &YouTube{cfg: cfg, client: client}
}

// Platform returns youtube
func (y *YouTube) Platform() domain.Platform { return domain.PlatformYouTube }

// Validate requires search terms or usernames (channels)
func (y *YouTube) Validate(q domain.Query) error {
	if len(q.SearchTerms) == 0 && len(q.Usernames) == 0 {
		return invalidQuery(y.Platform(), "requires search terms or usernames")
	}
	return nil
}

// Fetch searches videos by terms and lists recent videos of channels
func (y *YouTube) Fetch(ctx context.Context, q domain.Query) (domain.FetchResult, error) {
	if err := y.Validate(q); err != nil {
		return domain.FetchResult{}, err
	}
	terms := append(append([]string{}, q.SearchTerms...), prefixed("#", q.Hashtags)...)
	query := orQuery(terms, prefixed("channel:", q.Usernames))
	var api fetchPath
	if y.cfg.Credentials.APIKey != "" {
		api = func(ctx context.Context) ([]domain.Post, error) { return y.fetchAPI(ctx, q, terms) }
	}
	return collect(ctx, y.Platform(), q, query, api, func(ctx context.Context) ([]domain.Post, error) {
		return y.scrape(ctx, q)
	}), nil
}

// ytID is either a plain string or {"kind": ..., "videoId": ..., "channelId": ...}
type ytID struct {
	VideoID   string
	ChannelID string
}

// UnmarshalJSON accepts both forms of id
func (id *ytID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		id.VideoID = s
		return nil
	}
	var obj struct {
		VideoID   string `json:"videoId"`
		ChannelID string `json:"channelId"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	id.VideoID, id.ChannelID = obj.VideoID, obj.ChannelID
	return nil
}

type ytThumb struct {
	URL string `json:"url"`
}

type ytItem struct {
	ID      ytID `json:"id"`
	Snippet struct {
		PublishedAt  time.Time          `json:"publishedAt"`
		ChannelID    string             `json:"channelId"`
		Title        string             `json:"title"`
		Description  string             `json:"description"`
		ChannelTitle string             `json:"channelTitle"`
		Thumbnails   map[string]ytThumb `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount    string `json:"viewCount"`
		LikeCount    string `json:"likeCount"`
		CommentCount string `json:"commentCount"`
	} `json:"statistics"`
}

type ytResponse struct {
	Items []ytItem `json:"items"`
}

func (y *YouTube) fetchAPI(ctx context.Context, q domain.Query, terms []string) ([]domain.Post, error) {
	base := url.Values{}
	base.Set("part", "snippet")
	base.Set("type", "video")
	base.Set("order", "date")
	base.Set("maxResults", strconv.Itoa(min(maxPosts(q), 50)))
	if q.DateRange != nil {
		if !q.DateRange.From.IsZero() {
			base.Set("publishedAfter", q.DateRange.From.UTC().Format(time.RFC3339))
		}
		if !q.DateRange.To.IsZero() {
			base.Set("publishedBefore", q.DateRange.To.UTC().Format(time.RFC3339))
		}
	}

	var items []ytItem
	var errs []error
	for _, term := range terms {
		params := cloneValues(base)
		params.Set("q", term)
		found, err := y.call(ctx, "/youtube/v3/search", params)
		if err != nil {
			errs = append(errs, fmt.Errorf("search %q: %w", term, err))
			continue
		}
		items = append(items, found...)
	}
	for _, user := range q.Usernames {
		channelID, err := y.channelID(ctx, user)
		if err != nil {
			errs = append(errs, fmt.Errorf("channel %s: %w", user, err))
			continue
		}
		params := cloneValues(base)
		params.Set("channelId", channelID)
		found, err := y.call(ctx, "/youtube/v3/search", params)
		if err != nil {
			errs = append(errs, fmt.Errorf("channel videos %s: %w", user, err))
			continue
		}
		items = append(items, found...)
	}

	if err := y.addStatistics(ctx, items); err != nil {
		errs = append(errs, fmt.Errorf("statistics: %w", err))
	}

	posts := make([]domain.Post, 0, len(items))
	for _, it := range items {
		if it.ID.VideoID == "" {
			continue
		}
		posts = append(posts, y.videoPost(it))
	}
	return posts, errors.Join(errs...)
}

func (y *YouTube) call(ctx context.Context, path string, params url.Values) ([]ytItem, error) {
	params.Set("key", y.cfg.Credentials.APIKey)
	resp, err := y.client.get(ctx, joinURL(y.cfg.APIURL, path)+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	var data ytResponse
	if err := json.Unmarshal(resp.body, &data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return data.Items, nil
}

// channelID resolves a channel name to its id with a single channel search
func (y *YouTube) channelID(ctx context.Context, name string) (string, error) {
	name = strings.TrimPrefix(name, "@")
	if strings.HasPrefix(name, "UC") && len(name) == 24 {
		return name, nil // already a channel id
	}
	params := url.Values{"part": {"snippet"}, "type": {"channel"}, "q": {name}, "maxResults": {"1"}}
	items, err := y.call(ctx, "/youtube/v3/search", params)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", errors.New("not found")
	}
	if id := items[0].ID.ChannelID; id != "" {
		return id, nil
	}
	if id := items[0].Snippet.ChannelID; id != "" {
		return id, nil
	}
	return "", errors.New("no channel id in response")
}

// addStatistics fills statistics of items in place, one call per 50 videos
func (y *YouTube) addStatistics(ctx context.Context, items []ytItem) error {
	index := map[string][]int{}
	var ids []string
	for i, it := range items {
		if it.ID.VideoID == "" {
			continue
		}
		if _, ok := index[it.ID.VideoID]; !ok {
			ids = append(ids, it.ID.VideoID)
		}
		index[it.ID.VideoID] = append(index[it.ID.VideoID], i)
	}
	for start := 0; start < len(ids); start += 50 {
		batch := ids[start:min(start+50, len(ids))]
		stats, err := y.call(ctx, "/youtube/v3/videos", url.Values{"part": {"statistics"}, "id": {strings.Join(batch, ",")}})
		if err != nil {
			return err
		}
		for _, s := range stats {
			for _, i := range index[s.ID.VideoID] {
				items[i].Statistics = s.Statistics
			}
		}
	}
	return nil
}

func (y *YouTube) videoPost(it ytItem) domain.Post {
	text := it.Snippet.Title
	if it.Snippet.Description != "" {
		text += "\n\n" + it.Snippet.Description
	}
	p := domain.Post{
		ID: it.ID.VideoID,
		Author: domain.Author{Username: it.Snippet.ChannelTitle, DisplayName: it.Snippet.ChannelTitle,
			ProfileURL: joinURL(y.cfg.WebURL, "/channel/"+it.Snippet.ChannelID)},
		Text:     text,
		Hashtags: hashtags(text),
		Mentions: mentions(text),
		Links:    links(it.Snippet.Description),
		Videos:   []string{joinURL(y.cfg.WebURL, "/watch?v="+it.ID.VideoID)},
		Engagement: domain.Engagement{
			Likes:    atoi(it.Statistics.LikeCount),
			Comments: atoi(it.Statistics.CommentCount),
			Views:    atoi(it.Statistics.ViewCount),
		},
		URL:       joinURL(y.cfg.WebURL, "/watch?v="+it.ID.VideoID),
		Timestamp: it.Snippet.PublishedAt,
	}
	for _, size := range []string{"high", "default"} {
		if th, ok := it.Snippet.Thumbnails[size]; ok && th.URL != "" {
			p.Images = []string{th.URL}
			break
		}
	}
	return p
}

// scrape reads channel feeds for usernames and the results page for search terms
func (y *YouTube) scrape(ctx context.Context, q domain.Query) ([]domain.Post, error) {
	var posts []domain.Post
	var errs []error
	for _, user := range q.Usernames {
		found, err := y.channelFeed(ctx, strings.TrimPrefix(user, "@"))
		if err != nil {
			errs = append(errs, fmt.Errorf("channel feed %s: %w", user, err))
			continue
		}
		posts = append(posts, found...)
	}
	for _, term := range q.SearchTerms {
		found, err := y.resultsPage(ctx, term)
		if err != nil {
			errs = append(errs, fmt.Errorf("results %q: %w", term, err))
			continue
		}
		posts = append(posts, found...)
	}
	return posts, errors.Join(errs...)
}

func (y *YouTube) channelFeed(ctx context.Context, user string) ([]domain.Post, error) {
	param := "user=" + url.QueryEscape(user)
	if strings.HasPrefix(user, "UC") && len(user) == 24 {
		param = "channel_id=" + user
	}
	resp, err := y.client.page(ctx, joinURL(y.cfg.WebURL, "/feeds/videos.xml")+"?"+param)
	if err != nil {
		return nil, err
	}
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(resp.body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	posts := make([]domain.Post, 0, len(feed.Items))
	for _, item := range feed.Items {
		id := extValue(item.Extensions, "yt", "videoId")
		if id == "" {
			id = strings.TrimPrefix(item.GUID, "yt:video:")
		}
		text := item.Title
		var desc, thumb string
		var likes, views int
		if group := extElement(item.Extensions, "media", "group"); group != nil {
			desc = childValue(group, "description")
			if th := childElement(group, "thumbnail"); th != nil {
				thumb = th.Attrs["url"]
			}
			if community := childElement(group, "community"); community != nil {
				if stats := childElement(community, "statistics"); stats != nil {
					views = atoi(stats.Attrs["views"])
				}
				if rating := childElement(community, "starRating"); rating != nil {
					likes = atoi(rating.Attrs["count"])
				}
			}
		}
		if desc != "" {
			text += "\n\n" + desc
		}
		p := domain.Post{
			ID:         id,
			Author:     domain.Author{Username: user, ProfileURL: feed.Link},
			Text:       text,
			Hashtags:   hashtags(text),
			Mentions:   mentions(text),
			Links:      links(desc),
			Engagement: domain.Engagement{Likes: likes, Views: views},
			URL:        item.Link,
		}
		if len(item.Authors) > 0 {
			p.Author.DisplayName = item.Authors[0].Name
		}
		if item.Link != "" {
			p.Videos = []string{item.Link}
		}
		if thumb != "" {
			p.Images = []string{thumb}
		}
		if item.PublishedParsed != nil {
			p.Timestamp = *item.PublishedParsed
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// resultsPage parses rendered video cards, youtube often serves them only via javascript
func (y *YouTube) resultsPage(ctx context.Context, term string) ([]domain.Post, error) {
	params := url.Values{"search_query": {term}, "sp": {"CAI="}} // sort by upload date
	resp, err := y.client.page(ctx, joinURL(y.cfg.WebURL, "/results")+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.body))
	if err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}

	var posts []domain.Post
	doc.Find("ytd-video-renderer").Each(func(_ int, s *goquery.Selection) {
		title := s.Find("#video-title")
		text := cleanText(title.Text())
		if text == "" {
			text = cleanText(title.AttrOr("title", ""))
		}
		href := title.AttrOr("href", "")
		if text == "" || href == "" {
			return
		}
		link, err := url.Parse(href)
		if err != nil {
			return
		}
		id := link.Query().Get("v")
		channel := s.Find("#channel-name a").First()
		p := domain.Post{
			ID:       id,
			Author:   domain.Author{Username: cleanText(channel.Text())},
			Text:     text,
			Hashtags: hashtags(text),
			Mentions: mentions(text),
			URL:      joinURL(y.cfg.WebURL, href),
		}
		if ch := channel.AttrOr("href", ""); ch != "" {
			p.Author.ProfileURL = joinURL(y.cfg.WebURL, ch)
		}
		if p.Author.Username == "" {
			p.Author.Username = "unknown"
		}
		p.Videos = []string{p.URL}
		if meta := s.Find("#metadata-line span").First().Text(); meta != "" {
			p.Engagement.Views = parseNumber(meta)
		}
		posts = append(posts, p)
	})
	return posts, nil
}

func extElement(e ext.Extensions, ns, name string) *ext.Extension {
	if e == nil || len(e[ns][name]) == 0 {
		return nil
	}
	return &e[ns][name][0]
}

func extValue(e ext.Extensions, ns, name string) string {
	if el := extElement(e, ns, name); el != nil {
		return el.Value
	}
	return ""
}

func childElement(e *ext.Extension, name string) *ext.Extension {
	if len(e.Children[name]) == 0 {
		return nil
	}
	return &e.Children[name][0]
}

func childValue(e *ext.Extension, name string) string {
	if c := childElement(e, name); c != nil {
		return c.Value
	}
	return ""
}

func cloneValues(v url.Values) url.Values {
	res := make(url.Values, len(v))
	for k, vals := range v {
		res[k] = append([]string(nil), vals...)
	}
	return res
}

func atoi(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}
