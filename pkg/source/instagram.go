package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"

	"github.com/umputun/truckscope/pkg/domain"
)

// InstagramConfig configures the instagram adapter
type InstagramConfig struct {
	Credentials InstagramCredentials
	GraphURL    string   // default https://graph.instagram.com
	WebURL      string   // default https://www.instagram.com
	Enricher    Enricher // optional, fills text of scraped posts from their pages
}

// Instagram adapter, graph api for the token owner's media with a fallback to public tag and profile pages
type Instagram struct {
	cfg    InstagramConfig
	client *Client
}

const instagramTimeLayout = "2006-01-02T15:04:05-0700"

// NewInstagram makes instagram adapter
func NewInstagram(cfg InstagramConfig, client *Client) *Instagram {
	if cfg.GraphURL == "" {
		cfg.GraphURL = "https://graph.instagram.com"
	}
	if cfg.WebURL == "" {
		cfg.WebURL = "https://www.instagram.com"
	}
	return &Instagram{cfg: cfg, client: client}
}

// Platform returns instagram
func (i *Instagram) Platform() domain.Platform { return domain.PlatformInstagram }

// Validate requires hashtags or usernames, instagram has no free text search
func (i *Instagram) Validate(q domain.Query) error {
	if len(q.Hashtags) == 0 && len(q.Usernames) == 0 {
		return invalidQuery(i.Platform(), "requires hashtags or usernames")
	}
	return nil
}

// Fetch collects posts by hashtags and usernames
func (i *Instagram) Fetch(ctx context.Context, q domain.Query) (domain.FetchResult, error) {
	if err := i.Validate(q); err != nil {
		return domain.FetchResult{}, err
	}
	query := strings.Join(append(prefixed("#", q.Hashtags), prefixed("@", q.Usernames)...), " ")
	var api fetchPath
	if i.cfg.Credentials.AccessToken != "" {
		api = func(ctx context.Context) ([]domain.Post, error) { return i.fetchAPI(ctx, q) }
	}
	return collect(ctx, i.Platform(), q, query, api, func(ctx context.Context) ([]domain.Post, error) {
		return i.scrape(ctx, q)
	}), nil
}

type instagramMedia struct {
	ID           string `json:"id"`
	Caption      string `json:"caption"`
	MediaType    string `json:"media_type"`
	MediaURL     string `json:"media_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Permalink    string `json:"permalink"`
	Timestamp    string `json:"timestamp"`
	Username     string `json:"username"`
	LikeCount    int    `json:"like_count"`
	CommentCount int    `json:"comments_count"`
}

// fetchAPI lists media of the token owner, the graph api can't search other accounts.
// Media are kept when they match any requested hashtag or when only usernames were asked for.
func (i *Instagram) fetchAPI(ctx context.Context, q domain.Query) ([]domain.Post, error) {
	params := url.Values{}
	params.Set("fields", "id,caption,media_type,media_url,thumbnail_url,permalink,timestamp,username,like_count,comments_count")
	params.Set("limit", fmt.Sprintf("%d", min(maxPosts(q), 100)))
	params.Set("access_token", i.cfg.Credentials.AccessToken)
	resp, err := i.client.get(ctx, joinURL(i.cfg.GraphURL, "/me/media")+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	var data struct {
		Data []instagramMedia `json:"data"`
	}
	if err := json.Unmarshal(resp.body, &data); err != nil {
		return nil, fmt.Errorf("decode media: %w", err)
	}

	wanted := map[string]bool{}
	for _, h := range q.Hashtags {
		wanted[strings.ToLower(strings.TrimPrefix(h, "#"))] = true
	}
	posts := make([]domain.Post, 0, len(data.Data))
	for _, m := range data.Data {
		p := i.mediaPost(m)
		if len(wanted) > 0 && !anyTag(p.Hashtags, wanted) {
			continue
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func (i *Instagram) mediaPost(m instagramMedia) domain.Post {
	p := domain.Post{
		ID:         m.ID,
		Author:     domain.Author{Username: m.Username},
		Text:       m.Caption,
		Hashtags:   hashtags(m.Caption),
		Mentions:   mentions(m.Caption),
		Links:      links(m.Caption),
		Engagement: domain.Engagement{Likes: m.LikeCount, Comments: m.CommentCount},
		URL:        m.Permalink,
	}
	if m.Username != "" {
		p.Author.ProfileURL = joinURL(i.cfg.WebURL, m.Username)
	}
	if ts, err := time.Parse(instagramTimeLayout, m.Timestamp); err == nil {
		p.Timestamp = ts
	}
	switch m.MediaType {
	case "VIDEO":
		p.Videos = []string{m.MediaURL}
		if m.ThumbnailURL != "" {
			p.Images = []string{m.ThumbnailURL}
		}
	default: // IMAGE and CAROUSEL_ALBUM
		if m.MediaURL != "" {
			p.Images = []string{m.MediaURL}
		}
	}
	return p
}

func anyTag(tags []string, wanted map[string]bool) bool {
	for _, t := range tags {
		if wanted[strings.ToLower(t)] {
			return true
		}
	}
	return false
}

// scrape reads public tag and profile pages
func (i *Instagram) scrape(ctx context.Context, q domain.Query) ([]domain.Post, error) {
	var posts []domain.Post
	var errs []error
	for _, tag := range q.Hashtags {
		tag = strings.TrimPrefix(tag, "#")
		found, err := i.scrapePage(ctx, joinURL(i.cfg.WebURL, "/explore/tags/"+url.PathEscape(tag)+"/"), "")
		if err != nil {
			errs = append(errs, fmt.Errorf("tag %s: %w", tag, err))
			continue
		}
		posts = append(posts, found...)
	}
	for _, user := range q.Usernames {
		user = strings.TrimPrefix(user, "@")
		found, err := i.scrapePage(ctx, joinURL(i.cfg.WebURL, "/"+url.PathEscape(user)+"/"), user)
		if err != nil {
			errs = append(errs, fmt.Errorf("user %s: %w", user, err))
			continue
		}
		posts = append(posts, found...)
	}
	return posts, errors.Join(errs...)
}

func (i *Instagram) scrapePage(ctx context.Context, u, owner string) ([]domain.Post, error) {
	resp, err := i.client.page(ctx, u)
	if err != nil {
		return nil, err
	}
	if strings.Contains(resp.url.Path, "accounts/login") {
		return nil, errors.New("page requires login")
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.body))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	var posts []domain.Post
	doc.Find(`article a[href*="/p/"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		code := shortcode(href)
		if code == "" {
			return
		}
		p := domain.Post{ID: code, URL: joinURL(i.cfg.WebURL, "/p/"+code+"/"), Author: domain.Author{Username: owner}}
		if img := a.Find("img").First(); img.Length() > 0 {
			p.Text = cleanText(img.AttrOr("alt", ""))
			if src := img.AttrOr("src", ""); src != "" {
				p.Images = []string{src}
			}
		}
		posts = append(posts, p)
	})

	for idx := range posts {
		if posts[idx].Text == "" && i.cfg.Enricher != nil {
			text, err := i.cfg.Enricher.Extract(ctx, posts[idx].URL)
			if err != nil {
				lgr.Printf("[DEBUG] can't enrich instagram post %s: %v", posts[idx].ID, err)
				continue
			}
			posts[idx].Text = cleanText(text)
		}
		if posts[idx].Author.Username == "" {
			posts[idx].Author.Username = "unknown"
		}
		posts[idx].Hashtags = hashtags(posts[idx].Text)
		posts[idx].Mentions = mentions(posts[idx].Text)
	}
	return posts, nil
}

// shortcode extracts post code from "/p/{code}/" links
func shortcode(href string) string {
	_, rest, ok := strings.Cut(href, "/p/")
	if !ok {
		return ""
	}
	code, _, _ := strings.Cut(rest, "/")
	return code
}
