// Package source fetches candidate posts from social platforms. Each platform adapter
// tries its authenticated API first when credentials are configured and falls back to
// a best-effort public scrape path. Fetch failures are reported as data on the result,
// only query validation errors are returned as errors.
package source

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/truckscope/pkg/domain"
)

// DefaultMaxPosts caps a single platform fetch when the query doesn't set a limit
const DefaultMaxPosts = 50

// Adapter fetches posts from a single platform
type Adapter interface {
	Platform() domain.Platform
	Validate(q domain.Query) error
	Fetch(ctx context.Context, q domain.Query) (domain.FetchResult, error)
}

// Enricher pulls readable text from a post page, used when scraped posts come without text
type Enricher interface {
	Extract(ctx context.Context, url string) (string, error)
}

// Credentials for all platforms, every part is optional
type Credentials struct {
	Twitter   TwitterCredentials
	Instagram InstagramCredentials
	Reddit    RedditCredentials
	YouTube   YouTubeCredentials
}

// TwitterCredentials for api v2
type TwitterCredentials struct {
	BearerToken string
}

// InstagramCredentials for the graph api
type InstagramCredentials struct {
	AccessToken string
}

// RedditCredentials for oauth client-credentials flow
type RedditCredentials struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
}

// YouTubeCredentials for data api v3
type YouTubeCredentials struct {
	APIKey string
}

// fetchPath returns posts collected so far together with an error, partial results are kept
type fetchPath func(ctx context.Context) ([]domain.Post, error)

// collect runs api path (nil when there are no credentials) and falls back to scrape on error.
// Posts are deduplicated by id, stamped with crawl time when the source omits it,
// filtered by query date range and capped at max posts.
func collect(ctx context.Context, platform domain.Platform, q domain.Query, searchQuery string, api, scrape fetchPath) domain.FetchResult {
	res := domain.FetchResult{
		Platform:    platform,
		Posts:       []domain.Post{},
		Errors:      []string{},
		CrawledAt:   time.Now(),
		SearchQuery: searchQuery,
	}

	var posts []domain.Post
	useScrape := api == nil
	if api != nil {
		apiPosts, err := api(ctx)
		posts = append(posts, apiPosts...)
		if err != nil {
			lgr.Printf("[WARN] %s api failed, falling back to scrape: %v", platform, err)
			res.Errors = append(res.Errors, fmt.Sprintf("api: %v", err))
			useScrape = true
		}
	}
	if useScrape {
		scraped, err := scrape(ctx)
		posts = append(posts, scraped...)
		if err != nil {
			lgr.Printf("[WARN] %s scrape failed: %v", platform, err)
			res.Errors = append(res.Errors, fmt.Sprintf("scrape: %v", err))
		}
	}

	seen := map[string]bool{}
	for _, p := range posts {
		p.Platform = platform
		if p.ID == "" {
			p.ID = string(platform) + "_" + uuid.NewString()
		}
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		if p.Timestamp.IsZero() {
			p.Timestamp = res.CrawledAt
		}
		if q.DateRange != nil && !q.DateRange.Contains(p.Timestamp) {
			continue
		}
		res.Posts = append(res.Posts, p)
	}

	res.TotalFound = len(res.Posts)
	if limit := maxPosts(q); len(res.Posts) > limit {
		res.Posts = res.Posts[:limit]
	}
	lgr.Printf("[DEBUG] %s fetched %d posts (found %d), %d errors", platform, len(res.Posts), res.TotalFound, len(res.Errors))
	return res
}

func maxPosts(q domain.Query) int {
	if q.MaxPosts > 0 {
		return q.MaxPosts
	}
	return DefaultMaxPosts
}

func invalidQuery(platform domain.Platform, msg string) error {
	return fmt.Errorf("%w: %s %s", domain.ErrInvalidQuery, platform, msg)
}
