package source

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/truckscope/pkg/domain"
)

// DefaultMergeLimit caps the merged post stream when the caller doesn't set a limit
const DefaultMergeLimit = 100

// DefaultFetchTimeout limits a single platform fetch
const DefaultFetchTimeout = 60 * time.Second

// Config for the aggregator and every adapter it makes
type Config struct {
	Credentials  Credentials
	Client       ClientOptions
	FetchTimeout time.Duration
	Enricher     Enricher // optional, used by instagram scrape path

	// endpoint overrides, empty means the public platform hosts
	TwitterAPIURL   string
	TwitterWebURL   string
	RedditBaseURL   string
	RedditAPIURL    string
	InstagramAPIURL string
	InstagramWebURL string
	YouTubeAPIURL   string
	YouTubeWebURL   string
}

// Aggregator fans a query out to platform adapters
type Aggregator struct {
	adapters map[domain.Platform]Adapter
	timeout  time.Duration
}

// Merged is the combined view over per-platform results
type Merged struct {
	Posts      []domain.Post                     `json:"posts"`
	ByPlatform map[domain.Platform][]domain.Post `json:"by_platform"`
	Summary    MergeSummary                      `json:"summary"`
}

// MergeSummary of a merged fetch
type MergeSummary struct {
	TotalPosts     int                     `json:"total_posts"`
	PlatformCounts map[domain.Platform]int `json:"platform_counts"`
	Errors         []string                `json:"errors"`
}

// NewAggregator makes adapters for all supported platforms sharing a single http client
func NewAggregator(cfg Config) *Aggregator {
	client := NewClient(cfg.Client)
	adapters := make([]Adapter, 0, len(domain.AllPlatforms))
	for _, p := range domain.AllPlatforms {
		adapters = append(adapters, newAdapter(p, cfg, client))
	}
	return NewAggregatorWith(cfg.FetchTimeout, adapters...)
}

// NewAggregatorWith makes aggregator over given adapters, the last one wins for a duplicated platform
func NewAggregatorWith(timeout time.Duration, adapters ...Adapter) *Aggregator {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	res := &Aggregator{adapters: map[domain.Platform]Adapter{}, timeout: timeout}
	for _, a := range adapters {
		res.adapters[a.Platform()] = a
	}
	return res
}

func newAdapter(p domain.Platform, cfg Config, client *Client) Adapter {
	switch p {
	case domain.PlatformTwitter:
		return NewTwitter(TwitterConfig{Credentials: cfg.Credentials.Twitter, APIURL: cfg.TwitterAPIURL,
			WebURL: cfg.TwitterWebURL}, client)
	case domain.PlatformReddit:
		return NewReddit(RedditConfig{Credentials: cfg.Credentials.Reddit, BaseURL: cfg.RedditBaseURL,
			APIURL: cfg.RedditAPIURL}, client)
	case domain.PlatformInstagram:
		return NewInstagram(InstagramConfig{Credentials: cfg.Credentials.Instagram, GraphURL: cfg.InstagramAPIURL,
			WebURL: cfg.InstagramWebURL, Enricher: cfg.Enricher}, client)
	case domain.PlatformYouTube:
		return NewYouTube(YouTubeConfig{Credentials: cfg.Credentials.YouTube, APIURL: cfg.YouTubeAPIURL,
			WebURL: cfg.YouTubeWebURL}, client)
	}
	panic(fmt.Sprintf("no adapter for platform %q", p)) // all platforms are listed above
}

// Platforms returns platforms with adapters, in stable order
func (a *Aggregator) Platforms() []domain.Platform {
	res := make([]domain.Platform, 0, len(a.adapters))
	for _, p := range domain.AllPlatforms {
		if _, ok := a.adapters[p]; ok {
			res = append(res, p)
		}
	}
	return res
}

// FetchMany runs fetches for all requested platforms concurrently and waits for every one of them.
// The result always has one entry per requested platform. A failed, timed out or panicked fetch
// is reported as an empty result with a single error. Only an invalid query returns an error.
// Empty platforms list means all platforms with adapters.
func (a *Aggregator) FetchMany(ctx context.Context, platforms []domain.Platform, q domain.Query) (map[domain.Platform]domain.FetchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if len(platforms) == 0 {
		platforms = a.Platforms()
	}
	for _, p := range platforms {
		if _, ok := a.adapters[p]; !ok {
			return nil, fmt.Errorf("%w: no adapter for platform %q", domain.ErrInvalidQuery, p)
		}
	}

	results := make([]domain.FetchResult, len(platforms))
	var g errgroup.Group // plain group, no shared context, so one failure never cancels the others
	for i, p := range platforms {
		g.Go(func() error {
			results[i] = a.fetchOne(ctx, p, q)
			return nil
		})
	}
	_ = g.Wait() // never returns error, failures are data

	res := make(map[domain.Platform]domain.FetchResult, len(platforms))
	for _, r := range results {
		res[r.Platform] = r
	}
	return res, nil
}

// fetchOne runs a single adapter with timeout, the adapter is abandoned if it ignores context
func (a *Aggregator) fetchOne(ctx context.Context, p domain.Platform, q domain.Query) domain.FetchResult {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	type outcome struct {
		res domain.FetchResult
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		res, err := a.adapters[p].Fetch(ctx, q)
		ch <- outcome{res: res, err: err}
	}()

	var out outcome
	select {
	case out = <-ch:
	case <-ctx.Done():
		out = outcome{err: fmt.Errorf("fetch aborted: %w", ctx.Err())}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			out.err = fmt.Errorf("fetch timed out after %v", a.timeout)
		}
	}

	if out.err != nil {
		lgr.Printf("[WARN] %s fetch failed: %v", p, out.err)
		return failedResult(p, out.err)
	}
	out.res.Platform = p
	if out.res.Posts == nil {
		out.res.Posts = []domain.Post{}
	}
	if out.res.Errors == nil {
		out.res.Errors = []string{}
	}
	return out.res
}

func failedResult(p domain.Platform, err error) domain.FetchResult {
	return domain.FetchResult{Platform: p, Posts: []domain.Post{}, Errors: []string{err.Error()}, CrawledAt: time.Now()}
}

// Merge concatenates posts of all results, dedupes by source tag, sorts by timestamp descending
// and truncates to limit. Total posts count is taken before truncation.
func Merge(results map[domain.Platform]domain.FetchResult, limit int) Merged {
	if limit <= 0 {
		limit = DefaultMergeLimit
	}
	res := Merged{
		Posts:      []domain.Post{},
		ByPlatform: map[domain.Platform][]domain.Post{},
		Summary:    MergeSummary{PlatformCounts: map[domain.Platform]int{}, Errors: []string{}},
	}

	seen := map[string]bool{}
	for _, p := range orderedPlatforms(results) {
		r := results[p]
		res.ByPlatform[p] = r.Posts
		res.Summary.PlatformCounts[p] = len(r.Posts)
		for _, e := range r.Errors {
			res.Summary.Errors = append(res.Summary.Errors, fmt.Sprintf("%s: %s", p, e))
		}
		for _, post := range r.Posts {
			if seen[post.Source()] {
				continue
			}
			seen[post.Source()] = true
			res.Posts = append(res.Posts, post)
		}
	}

	sort.SliceStable(res.Posts, func(i, j int) bool { return res.Posts[i].Timestamp.After(res.Posts[j].Timestamp) })
	res.Summary.TotalPosts = len(res.Posts)
	if len(res.Posts) > limit {
		res.Posts = res.Posts[:limit]
	}
	return res
}

// SearchAll fetches from platforms and merges results
func (a *Aggregator) SearchAll(ctx context.Context, platforms []domain.Platform, q domain.Query) (Merged, error) {
	results, err := a.FetchMany(ctx, platforms, q)
	if err != nil {
		return Merged{}, err
	}
	return Merge(results, q.MaxPosts), nil
}

// orderedPlatforms returns known platforms first in their stable order, then unknown ones sorted
func orderedPlatforms(results map[domain.Platform]domain.FetchResult) []domain.Platform {
	res := make([]domain.Platform, 0, len(results))
	known := map[domain.Platform]bool{}
	for _, p := range domain.AllPlatforms {
		known[p] = true
		if _, ok := results[p]; ok {
			res = append(res, p)
		}
	}
	var other []domain.Platform
	for p := range results {
		if !known[p] {
			other = append(other, p)
		}
	}
	sort.Slice(other, func(i, j int) bool { return other[i] < other[j] })
	return append(res, other...)
}

// DescribeQuery renders query for logs, e.g. `terms=[tacos] hashtags=[foodtruck] max=50`
func DescribeQuery(q domain.Query) string {
	var parts []string
	if len(q.SearchTerms) > 0 {
		parts = append(parts, fmt.Sprintf("terms=%v", q.SearchTerms))
	}
	if len(q.Hashtags) > 0 {
		parts = append(parts, fmt.Sprintf("hashtags=%v", q.Hashtags))
	}
	if len(q.Usernames) > 0 {
		parts = append(parts, fmt.Sprintf("users=%v", q.Usernames))
	}
	parts = append(parts, fmt.Sprintf("max=%d", maxPosts(q)))
	if q.DateRange != nil {
		parts = append(parts, fmt.Sprintf("range=%s..%s", q.DateRange.From.Format(time.DateOnly), q.DateRange.To.Format(time.DateOnly)))
	}
	return strings.Join(parts, " ")
}
