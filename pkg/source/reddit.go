package source

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/truckscope/pkg/domain"
)

// RedditConfig configures the reddit adapter
type RedditConfig struct {
	Credentials RedditCredentials
	BaseURL     string // public site and token endpoint, default https://www.reddit.com
	APIURL      string // oauth api, default https://oauth.reddit.com
}

// Reddit adapter, oauth json api with a fallback to public rss feeds
type Reddit struct {
	cfg    RedditConfig
	client *Client

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

// NewReddit makes reddit adapter
func NewReddit(cfg RedditConfig, client *Client) *Reddit {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.reddit.com"
	}
	if cfg.APIURL == "" {
		cfg.APIURL = "https://oauth.reddit.com"
	}
	return &Reddit{cfg: cfg, client: client}
}

// Platform returns reddit
func (r *Reddit) Platform() domain.Platform { return domain.PlatformReddit }

// Validate requires search terms or usernames, reddit has no hashtags
func (r *Reddit) Validate(q domain.Query) error {
	if len(q.SearchTerms) == 0 && len(q.Usernames) == 0 {
		return invalidQuery(r.Platform(), "requires search terms or usernames")
	}
	return nil
}

// Fetch searches posts by terms and lists posts submitted by usernames
func (r *Reddit) Fetch(ctx context.Context, q domain.Query) (domain.FetchResult, error) {
	if err := r.Validate(q); err != nil {
		return domain.FetchResult{}, err
	}
	var api fetchPath
	if r.cfg.Credentials.ClientID != "" && r.cfg.Credentials.ClientSecret != "" {
		api = func(ctx context.Context) ([]domain.Post, error) { return r.fetchAPI(ctx, q) }
	}
	query := orQuery(q.SearchTerms, prefixed("author:", q.Usernames))
	return collect(ctx, r.Platform(), q, query, api, func(ctx context.Context) ([]domain.Post, error) {
		return r.fetchFeeds(ctx, q)
	}), nil
}

// searchVariants broadens a term: as is, without quotes, then words joined with OR
func searchVariants(term string) []string {
	unquoted := strings.NewReplacer(`"`, "", `'`, "").Replace(term)
	candidates := []string{term, unquoted, strings.Join(strings.Fields(unquoted), " OR ")}
	res := make([]string, 0, len(candidates))
	seen := map[string]bool{}
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" && !seen[c] {
			seen[c] = true
			res = append(res, c)
		}
	}
	return res
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Author      string  `json:"author"`
	URL         string  `json:"url"`
	Permalink   string  `json:"permalink"`
	Ups         int     `json:"ups"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
}

// fetchAPI walks all terms and usernames, partial results are returned along with joined errors
func (r *Reddit) fetchAPI(ctx context.Context, q domain.Query) ([]domain.Post, error) {
	token, err := r.accessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("access token: %w", err)
	}
	headers := map[string]string{"Authorization": "Bearer " + token}
	if ua := r.cfg.Credentials.UserAgent; ua != "" {
		headers["User-Agent"] = ua
	}
	limit := strconv.Itoa(min(maxPosts(q), 100))

	var posts []domain.Post
	var errs []error
	for _, term := range q.SearchTerms {
		for _, variant := range searchVariants(term) {
			params := url.Values{"q": {variant}, "limit": {limit}, "sort": {"new"}, "type": {"link"}}
			found, err := r.listing(ctx, joinURL(r.cfg.APIURL, "/search")+"?"+params.Encode(), headers)
			if err != nil {
				errs = append(errs, fmt.Errorf("search %q: %w", variant, err))
				break
			}
			if len(found) > 0 {
				posts = append(posts, found...)
				break
			}
		}
	}
	for _, user := range q.Usernames {
		params := url.Values{"limit": {limit}, "sort": {"new"}}
		u := joinURL(r.cfg.APIURL, "/user/"+url.PathEscape(user)+"/submitted") + "?" + params.Encode()
		found, err := r.listing(ctx, u, headers)
		if err != nil {
			errs = append(errs, fmt.Errorf("user %s: %w", user, err))
			continue
		}
		posts = append(posts, found...)
	}
	return posts, errors.Join(errs...)
}

func (r *Reddit) listing(ctx context.Context, u string, headers map[string]string) ([]domain.Post, error) {
	resp, err := r.client.get(ctx, u, headers)
	if err != nil {
		return nil, err
	}
	var data redditListing
	if err := json.Unmarshal(resp.body, &data); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}
	posts := make([]domain.Post, 0, len(data.Data.Children))
	for _, c := range data.Data.Children {
		posts = append(posts, r.toPost(c.Data))
	}
	return posts, nil
}

func (r *Reddit) toPost(rp redditPost) domain.Post {
	text := rp.Title
	if rp.Selftext != "" {
		text += "\n\n" + rp.Selftext
	}
	p := domain.Post{
		ID:         rp.ID,
		Author:     domain.Author{Username: rp.Author, ProfileURL: joinURL(r.cfg.BaseURL, "/user/"+rp.Author)},
		Text:       text,
		Hashtags:   hashtags(text),
		Mentions:   mentions(rp.Selftext),
		Engagement: domain.Engagement{Likes: rp.Ups, Comments: rp.NumComments},
		URL:        joinURL(r.cfg.BaseURL, rp.Permalink),
	}
	if rp.CreatedUTC > 0 {
		p.Timestamp = time.Unix(int64(rp.CreatedUTC), 0).UTC()
	}
	if rp.URL != "" {
		p.Links = []string{rp.URL}
		switch {
		case isImageURL(rp.URL):
			p.Images = []string{rp.URL}
		case isVideoURL(rp.URL):
			p.Videos = []string{rp.URL}
		}
	}
	return p
}

// accessToken gets client-credentials token, cached until shortly before expiry
func (r *Reddit) accessToken(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.token != "" && time.Now().Before(r.tokenExp) {
		return r.token, nil
	}

	creds := r.cfg.Credentials
	auth := base64.StdEncoding.EncodeToString([]byte(creds.ClientID + ":" + creds.ClientSecret))
	headers := map[string]string{
		"Authorization": "Basic " + auth,
		"Content-Type":  "application/x-www-form-urlencoded",
	}
	if creds.UserAgent != "" {
		headers["User-Agent"] = creds.UserAgent
	}
	resp, err := r.client.do(ctx, request{method: http.MethodPost, url: joinURL(r.cfg.BaseURL, "/api/v1/access_token"),
		body: "grant_type=client_credentials", headers: headers})
	if err != nil {
		return "", err
	}
	var data struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(resp.body, &data); err != nil {
		return "", fmt.Errorf("decode token: %w", err)
	}
	if data.AccessToken == "" {
		return "", errors.New("empty access token")
	}
	if data.ExpiresIn <= 0 {
		data.ExpiresIn = 3600
	}
	r.token = data.AccessToken
	r.tokenExp = time.Now().Add(time.Duration(data.ExpiresIn)*time.Second - time.Minute)
	return r.token, nil
}

// fetchFeeds reads public rss feeds, it's the scrape path and needs no credentials
func (r *Reddit) fetchFeeds(ctx context.Context, q domain.Query) ([]domain.Post, error) {
	limit := strconv.Itoa(min(maxPosts(q), 100))
	var posts []domain.Post
	var errs []error
	for _, term := range q.SearchTerms {
		for _, variant := range searchVariants(term) {
			params := url.Values{"q": {variant}, "sort": {"new"}, "limit": {limit}}
			found, err := r.feed(ctx, joinURL(r.cfg.BaseURL, "/search.rss")+"?"+params.Encode())
			if err != nil {
				errs = append(errs, fmt.Errorf("search feed %q: %w", variant, err))
				break
			}
			if len(found) > 0 {
				posts = append(posts, found...)
				break
			}
		}
	}
	for _, user := range q.Usernames {
		found, err := r.feed(ctx, joinURL(r.cfg.BaseURL, "/user/"+url.PathEscape(user)+"/submitted.rss")+"?limit="+limit)
		if err != nil {
			errs = append(errs, fmt.Errorf("user feed %s: %w", user, err))
			continue
		}
		posts = append(posts, found...)
	}
	return posts, errors.Join(errs...)
}

func (r *Reddit) feed(ctx context.Context, u string) ([]domain.Post, error) {
	resp, err := r.client.page(ctx, u)
	if err != nil {
		return nil, err
	}
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(resp.body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	posts := make([]domain.Post, 0, len(feed.Items))
	for _, item := range feed.Items {
		body := item.Content
		if body == "" {
			body = item.Description
		}
		text := item.Title
		if b := plainText(body); b != "" {
			text += "\n\n" + b
		}
		p := domain.Post{
			ID:       strings.TrimPrefix(item.GUID, "t3_"),
			Text:     text,
			Hashtags: hashtags(text),
			Mentions: mentions(text),
			URL:      item.Link,
		}
		if len(item.Authors) > 0 {
			p.Author.Username = strings.TrimPrefix(strings.TrimPrefix(item.Authors[0].Name, "/u/"), "u/")
			p.Author.ProfileURL = joinURL(r.cfg.BaseURL, "/user/"+p.Author.Username)
		}
		if p.ID == "" {
			p.ID = item.Link
		}
		switch {
		case item.PublishedParsed != nil:
			p.Timestamp = *item.PublishedParsed
		case item.UpdatedParsed != nil:
			p.Timestamp = *item.UpdatedParsed
		}
		if item.Image != nil && item.Image.URL != "" {
			p.Images = []string{item.Image.URL}
		}
		posts = append(posts, p)
	}
	return posts, nil
}
