package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/umputun/truckscope/pkg/domain"
)

// TwitterConfig configures the twitter (x.com) adapter
type TwitterConfig struct {
	Credentials TwitterCredentials
	APIURL      string // default https://api.x.com
	WebURL      string // default https://x.com
}

// Twitter adapter, api v2 recent search with a fallback to the public search page
type Twitter struct {
	cfg    TwitterConfig
	client *Client
}

var statusIDRe = regexp.MustCompile(`/status/(\d+)`)

// tweetSelectors are tried in order on the search page, first one with results wins
var tweetSelectors = []string{
	`article[data-testid="tweet"]`,
	`div[data-testid="tweet"]`,
	`[data-testid="tweet"]`,
	`div[data-testid="tweetText"]`,
	`[data-testid="tweetText"]`,
}

// NewTwitter makes twitter adapter
func NewTwitter(cfg TwitterConfig, client *Client) *Twitter {
	if cfg.APIURL == "" {
		cfg.APIURL = "https://api.x.com"
	}
	if cfg.WebURL == "" {
		cfg.WebURL = "https://x.com"
	}
	return &Twitter{cfg: cfg, client: client}
}

// Platform returns twitter
func (t *Twitter) Platform() domain.Platform { return domain.PlatformTwitter }

// Validate requires any of search terms, hashtags or usernames
func (t *Twitter) Validate(q domain.Query) error {
	if len(q.SearchTerms) == 0 && len(q.Hashtags) == 0 && len(q.Usernames) == 0 {
		return invalidQuery(t.Platform(), "requires search terms, hashtags or usernames")
	}
	return nil
}

// Fetch searches recent tweets
func (t *Twitter) Fetch(ctx context.Context, q domain.Query) (domain.FetchResult, error) {
	if err := t.Validate(q); err != nil {
		return domain.FetchResult{}, err
	}
	query := t.searchQuery(q)
	var api fetchPath
	if t.cfg.Credentials.BearerToken != "" {
		api = func(ctx context.Context) ([]domain.Post, error) { return t.fetchAPI(ctx, q, query) }
	}
	return collect(ctx, t.Platform(), q, query, api, func(ctx context.Context) ([]domain.Post, error) {
		return t.scrape(ctx, query)
	}), nil
}

func (t *Twitter) searchQuery(q domain.Query) string {
	return orQuery(q.SearchTerms, prefixed("#", q.Hashtags), prefixed("from:", q.Usernames))
}

type tweetsResponse struct {
	Data []struct {
		ID            string    `json:"id"`
		Text          string    `json:"text"`
		AuthorID      string    `json:"author_id"`
		CreatedAt     time.Time `json:"created_at"`
		PublicMetrics struct {
			LikeCount       int `json:"like_count"`
			RetweetCount    int `json:"retweet_count"`
			ReplyCount      int `json:"reply_count"`
			ImpressionCount int `json:"impression_count"`
		} `json:"public_metrics"`
		Attachments struct {
			MediaKeys []string `json:"media_keys"`
		} `json:"attachments"`
	} `json:"data"`
	Includes struct {
		Users []struct {
			ID              string `json:"id"`
			Username        string `json:"username"`
			Name            string `json:"name"`
			Verified        bool   `json:"verified"`
			ProfileImageURL string `json:"profile_image_url"`
		} `json:"users"`
		Media []struct {
			MediaKey        string `json:"media_key"`
			Type            string `json:"type"`
			URL             string `json:"url"`
			PreviewImageURL string `json:"preview_image_url"`
		} `json:"media"`
	} `json:"includes"`
	Meta struct {
		ResultCount int `json:"result_count"`
	} `json:"meta"`
}

func (t *Twitter) fetchAPI(ctx context.Context, q domain.Query, query string) ([]domain.Post, error) {
	apiQuery := "(" + query + ")"
	if !q.IncludeRetweets {
		apiQuery += " -is:retweet"
	}
	if !q.IncludeReplies {
		apiQuery += " -is:reply"
	}
	params := url.Values{}
	params.Set("query", apiQuery)
	params.Set("max_results", strconv.Itoa(max(10, min(maxPosts(q), 100))))
	params.Set("tweet.fields", "created_at,author_id,public_metrics,lang,attachments")
	params.Set("expansions", "author_id,attachments.media_keys")
	params.Set("user.fields", "username,name,verified,profile_image_url")
	params.Set("media.fields", "url,type,preview_image_url")

	resp, err := t.client.get(ctx, joinURL(t.cfg.APIURL, "/2/tweets/search/recent")+"?"+params.Encode(),
		map[string]string{"Authorization": "Bearer " + t.cfg.Credentials.BearerToken})
	if err != nil {
		return nil, fmt.Errorf("search tweets: %w", err)
	}

	var data tweetsResponse
	if err := json.Unmarshal(resp.body, &data); err != nil {
		return nil, fmt.Errorf("decode tweets: %w", err)
	}

	users := map[string]domain.Author{}
	for _, u := range data.Includes.Users {
		users[u.ID] = domain.Author{Username: u.Username, DisplayName: u.Name, Verified: u.Verified,
			AvatarURL: u.ProfileImageURL, ProfileURL: joinURL(t.cfg.WebURL, u.Username)}
	}
	type media struct{ kind, url string }
	mediaByKey := map[string]media{}
	for _, m := range data.Includes.Media {
		u := m.URL
		if u == "" {
			u = m.PreviewImageURL
		}
		mediaByKey[m.MediaKey] = media{kind: m.Type, url: u}
	}

	posts := make([]domain.Post, 0, len(data.Data))
	for _, tw := range data.Data {
		author := users[tw.AuthorID]
		if author.Username == "" {
			author.Username = tw.AuthorID
		}
		p := domain.Post{
			ID:       tw.ID,
			Author:   author,
			Text:     tw.Text,
			Links:    links(tw.Text),
			Hashtags: hashtags(tw.Text),
			Mentions: mentions(tw.Text),
			Engagement: domain.Engagement{Likes: tw.PublicMetrics.LikeCount, Shares: tw.PublicMetrics.RetweetCount,
				Comments: tw.PublicMetrics.ReplyCount, Views: tw.PublicMetrics.ImpressionCount},
			URL:       joinURL(t.cfg.WebURL, author.Username+"/status/"+tw.ID),
			Timestamp: tw.CreatedAt,
		}
		for _, key := range tw.Attachments.MediaKeys {
			m, ok := mediaByKey[key]
			if !ok || m.url == "" {
				continue
			}
			if m.kind == "photo" {
				p.Images = append(p.Images, m.url)
				continue
			}
			p.Videos = append(p.Videos, m.url)
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// scrape reads the public live search page, x.com often redirects anonymous visitors to login
func (t *Twitter) scrape(ctx context.Context, query string) ([]domain.Post, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("src", "typed_query")
	params.Set("f", "live")
	resp, err := t.client.page(ctx, joinURL(t.cfg.WebURL, "/search")+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("load search page: %w", err)
	}
	if p := resp.url.Path; strings.Contains(p, "login") || strings.Contains(p, "i/flow") {
		return nil, fmt.Errorf("search page requires login")
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.body))
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	posts := []domain.Post{}
	for _, sel := range tweetSelectors {
		textOnly := strings.Contains(sel, "tweetText")
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if p, ok := t.parseScraped(s, textOnly); ok {
				posts = append(posts, p)
			}
		})
		if len(posts) > 0 {
			break
		}
	}
	return posts, nil
}

func (t *Twitter) parseScraped(s *goquery.Selection, textOnly bool) (domain.Post, bool) {
	text := cleanText(s.Text())
	if !textOnly {
		text = cleanText(s.Find(`[data-testid="tweetText"]`).Text())
	}
	if text == "" {
		return domain.Post{}, false
	}

	p := domain.Post{Text: text, Hashtags: hashtags(text), Mentions: mentions(text), Links: links(text)}
	if textOnly {
		p.Author.Username = "unknown"
		return p, true
	}

	href, _ := s.Find(`[data-testid="User-Name"] a`).First().Attr("href")
	p.Author.Username = strings.Trim(href, "/")
	if p.Author.Username == "" {
		p.Author.Username = "unknown"
	}
	p.Author.DisplayName = cleanText(s.Find(`[data-testid="User-Name"] span`).First().Text())
	p.Author.ProfileURL = joinURL(t.cfg.WebURL, p.Author.Username)
	p.Engagement = domain.Engagement{
		Likes:    parseNumber(s.Find(`[data-testid="like"]`).Text()),
		Shares:   parseNumber(s.Find(`[data-testid="retweet"]`).Text()),
		Comments: parseNumber(s.Find(`[data-testid="reply"]`).Text()),
	}
	if status, ok := s.Find(`a[href*="/status/"]`).First().Attr("href"); ok {
		if m := statusIDRe.FindStringSubmatch(status); m != nil {
			p.ID = m[1]
			p.URL = joinURL(t.cfg.WebURL, p.Author.Username+"/status/"+p.ID)
		}
	}
	if ts, ok := s.Find("time").First().Attr("datetime"); ok {
		p.Timestamp, _ = time.Parse(time.RFC3339, ts)
	}
	s.Find(`[data-testid="tweetPhoto"] img`).Each(func(_ int, img *goquery.Selection) {
		if src, ok := img.Attr("src"); ok {
			p.Images = append(p.Images, src)
		}
	})
	return p, true
}
