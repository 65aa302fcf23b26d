// Package tracker is the vendor schedule orchestrator. It builds platform queries from vendor
// identity hints, fetches posts through the aggregator, runs every post through extraction,
// scoring and reconciliation, and summarizes the run.
package tracker

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/recorder.go -pkg mocks -skip-ensure -fmt goimports . Recorder

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/truckscope/pkg/domain"
	"github.com/umputun/truckscope/pkg/extract"
	"github.com/umputun/truckscope/pkg/reconcile"
	"github.com/umputun/truckscope/pkg/source"
)

// defaults for zero options
const (
	DefaultMaxPosts    = 50
	DefaultLookback    = 7 * 24 * time.Hour
	DefaultLookahead   = 14 * 24 * time.Hour
	DefaultVendorDelay = time.Second
)

// UnknownVendor is used for requests without vendor id
const UnknownVendor = "unknown"

// ManualSource is the provenance tag of schedules parsed from text given directly
const ManualSource = "manual"

// SearchLogSource is the source tag of business search activity entries
const SearchLogSource = "social_media_crawler"

// generic food-vendor words added to every vendor query
var (
	genericTerms    = []string{"food truck", "schedule", "location", "serving", "open"}
	genericHashtags = []string{"foodtruck", "foodie", "schedule"}
)

// Fetcher fetches posts from several platforms, always one result per platform
type Fetcher interface {
	FetchMany(ctx context.Context, platforms []domain.Platform, q domain.Query) (map[domain.Platform]domain.FetchResult, error)
}

// Recorder receives crawl metrics
type Recorder interface {
	ObserveFetch(platform domain.Platform, posts, errors int)
	ObserveOutcome(outcome reconcile.Outcome)
	ObserveCrawl(duration time.Duration, failed bool)
}

// Options for Tracker
type Options struct {
	MinConfidence float64 // default reconcile.DefaultMinConfidence when zero
	MaxPosts      int
	Lookback      time.Duration
	Lookahead     time.Duration
	VendorDelay   time.Duration
	Platforms     []domain.Platform // empty means every platform the fetcher has
	Recorder      Recorder          // optional
}

// Tracker crawls vendors and reconciles their schedules
type Tracker struct {
	fetcher    Fetcher
	reconciler *reconcile.Reconciler
	opts       Options
	now        func() time.Time
}

// Request describes a single vendor crawl
type Request struct {
	VendorID       string            `json:"vendor_id"`
	VendorName     string            `json:"vendor_name,omitempty"`
	SocialHandle   string            `json:"social_handle,omitempty"`
	SearchTerms    []string          `json:"search_terms,omitempty"`
	Hashtags       []string          `json:"hashtags,omitempty"`
	Usernames      []string          `json:"usernames,omitempty"`
	Platforms      []domain.Platform `json:"platforms,omitempty"`
	MaxPosts       int               `json:"max_posts,omitempty"`
	DateRange      *domain.DateRange `json:"date_range,omitempty"`
	MinConfidence  *float64          `json:"min_confidence,omitempty"`
	IncludeReplies bool              `json:"include_replies,omitempty"`
	Existing       []domain.Schedule `json:"existing_schedules,omitempty"`
}

// VendorRef identifies the crawled vendor in results
type VendorRef struct {
	ID           string `json:"id"`
	Name         string `json:"name,omitempty"`
	SocialHandle string `json:"social_handle,omitempty"`
}

// Summary of a vendor crawl
type Summary struct {
	TotalPosts        int                     `json:"total_posts"`
	TotalSchedules    int                     `json:"total_schedules"`
	AverageConfidence float64                 `json:"average_confidence"`
	PlatformCounts    map[domain.Platform]int `json:"platform_counts"`
	Errors            []string                `json:"errors"`
}

// Result of a vendor crawl. It's always complete in shape, degraded coverage shows up in Summary.Errors.
type Result struct {
	Vendor       VendorRef            `json:"vendor"`
	Schedules    []domain.Schedule    `json:"schedules"`
	Posts        []domain.Post        `json:"posts"`
	ActivityLogs []domain.ActivityLog `json:"activity_logs"`
	SearchLog    domain.ActivityLog   `json:"search_log"`
	Outcomes     reconcile.Summary    `json:"outcomes"`
	Summary      Summary              `json:"summary"`
}

// Failure of a single vendor in a batch crawl
type Failure struct {
	VendorID string `json:"vendor_id"`
	Err      error  `json:"-"`
}

// ParseOutcome is the result of parsing text without crawling
type ParseOutcome struct {
	Parsed   domain.ParsedSchedule `json:"parsed"`
	Valid    bool                  `json:"valid"`
	Schedule *domain.Schedule      `json:"schedule,omitempty"`
}

// New makes a tracker, minimal confidence must be in [0,1]
func New(fetcher Fetcher, opts Options) (*Tracker, error) {
	if opts.MinConfidence == 0 {
		opts.MinConfidence = reconcile.DefaultMinConfidence
	}
	rec, err := reconcile.New(opts.MinConfidence)
	if err != nil {
		return nil, err
	}
	if opts.MaxPosts <= 0 {
		opts.MaxPosts = DefaultMaxPosts
	}
	if opts.Lookback <= 0 {
		opts.Lookback = DefaultLookback
	}
	if opts.Lookahead <= 0 {
		opts.Lookahead = DefaultLookahead
	}
	if opts.VendorDelay < 0 {
		opts.VendorDelay = 0
	}
	return &Tracker{fetcher: fetcher, reconciler: rec, opts: opts, now: time.Now}, nil
}

// SetMinConfidence changes acceptance threshold for following crawls
func (t *Tracker) SetMinConfidence(v float64) error {
	return t.reconciler.SetMinConfidence(v)
}

// MinConfidence returns current acceptance threshold
func (t *Tracker) MinConfidence() float64 {
	return t.reconciler.MinConfidence()
}

// RequestFromVendor makes crawl request for a stored vendor
func RequestFromVendor(v domain.Vendor) Request {
	return Request{VendorID: v.ID, VendorName: v.Name, SocialHandle: v.SocialHandle,
		SearchTerms: v.SearchTerms, Hashtags: v.Hashtags, Platforms: v.Platforms}
}

// BuildQuery merges vendor hints with generic food-vendor keywords and the default date window
func (t *Tracker) BuildQuery(req Request) domain.Query {
	q := domain.Query{
		SearchTerms:     uniq(req.SearchTerms, []string{req.VendorName}, genericTerms),
		Hashtags:        uniq(req.Hashtags, genericHashtags),
		Usernames:       uniq(req.Usernames),
		MaxPosts:        req.MaxPosts,
		DateRange:       req.DateRange,
		IncludeReplies:  req.IncludeReplies,
		IncludeRetweets: true,
	}
	if req.SocialHandle != "" {
		q.Usernames = []string{strings.TrimPrefix(req.SocialHandle, "@")}
	}
	if q.MaxPosts <= 0 {
		q.MaxPosts = t.opts.MaxPosts
	}
	if q.DateRange == nil {
		now := t.now()
		q.DateRange = &domain.DateRange{From: now.Add(-t.opts.Lookback), To: now.Add(t.opts.Lookahead)}
	}
	return q
}

// CrawlVendor fetches posts for the vendor and reconciles them against req.Existing.
// Errors are returned only for invalid requests, platform failures are reported in the summary.
func (t *Tracker) CrawlVendor(ctx context.Context, req Request) (res Result, err error) {
	st := time.Now()
	defer func() {
		if t.opts.Recorder != nil {
			t.opts.Recorder.ObserveCrawl(time.Since(st), err != nil)
		}
	}()

	if req.VendorID == "" {
		req.VendorID = UnknownVendor
	}
	rec := t.reconciler
	if req.MinConfidence != nil {
		if rec, err = reconcile.New(*req.MinConfidence); err != nil {
			return Result{}, fmt.Errorf("vendor %s: %w", req.VendorID, err)
		}
	}

	q := t.BuildQuery(req)
	platforms := req.Platforms
	if len(platforms) == 0 {
		platforms = t.opts.Platforms
	}
	lgr.Printf("[DEBUG] crawl vendor %s, %s", req.VendorID, source.DescribeQuery(q))

	fetched, err := t.fetcher.FetchMany(ctx, platforms, q)
	if err != nil {
		return Result{}, fmt.Errorf("vendor %s: %w", req.VendorID, err)
	}
	merged := source.Merge(fetched, countPosts(fetched))
	if t.opts.Recorder != nil {
		for p, r := range fetched {
			t.opts.Recorder.ObserveFetch(p, len(r.Posts), len(r.Errors))
		}
	}

	batch := rec.ReconcileMany(merged.Posts, req.VendorID, req.Existing)
	if t.opts.Recorder != nil {
		for _, r := range batch.Results {
			t.opts.Recorder.ObserveOutcome(r.Outcome)
		}
	}

	res = Result{
		Vendor:       VendorRef{ID: req.VendorID, Name: req.VendorName, SocialHandle: req.SocialHandle},
		Schedules:    batch.Schedules,
		Posts:        merged.Posts,
		ActivityLogs: batch.ActivityLogs,
		Outcomes:     batch.Summary,
		Summary: Summary{
			TotalPosts:        len(merged.Posts),
			TotalSchedules:    len(batch.Schedules),
			AverageConfidence: averageConfidence(batch.ActivityLogs),
			PlatformCounts:    merged.Summary.PlatformCounts,
			Errors:            merged.Summary.Errors,
		},
	}
	res.SearchLog = t.searchLog(req.VendorID, q, fetched, res.Summary)

	lgr.Printf("[INFO] vendor %s crawled: %d posts, %d schedules (%+v), avg confidence %.2f, %d errors",
		req.VendorID, res.Summary.TotalPosts, res.Summary.TotalSchedules, res.Outcomes,
		res.Summary.AverageConfidence, len(res.Summary.Errors))
	return res, nil
}

// CrawlVendors crawls vendors one by one with a fixed delay in between, a failed vendor doesn't stop the batch.
// Canceled context stops the batch, the remaining vendors are not reported.
func (t *Tracker) CrawlVendors(ctx context.Context, reqs []Request) ([]Result, []Failure) {
	results := make([]Result, 0, len(reqs))
	var failures []Failure
	for i, req := range reqs {
		if i > 0 && t.opts.VendorDelay > 0 {
			select {
			case <-ctx.Done():
				return results, append(failures, Failure{VendorID: req.VendorID, Err: ctx.Err()})
			case <-time.After(t.opts.VendorDelay):
			}
		}
		if err := ctx.Err(); err != nil {
			return results, append(failures, Failure{VendorID: req.VendorID, Err: err})
		}
		res, err := t.CrawlVendor(ctx, req)
		if err != nil {
			lgr.Printf("[WARN] failed to crawl vendor %s: %v", req.VendorID, err)
			failures = append(failures, Failure{VendorID: req.VendorID, Err: err})
			continue
		}
		results = append(results, res)
	}
	return results, failures
}

// ProcessPosts reconciles posts supplied by the caller against existing schedules, without fetching
func (t *Tracker) ProcessPosts(posts []domain.Post, vendorID string, existing []domain.Schedule) reconcile.BatchResult {
	if vendorID == "" {
		vendorID = UnknownVendor
	}
	batch := t.reconciler.ReconcileMany(posts, vendorID, existing)
	if t.opts.Recorder != nil {
		for _, r := range batch.Results {
			t.opts.Recorder.ObserveOutcome(r.Outcome)
		}
	}
	lgr.Printf("[DEBUG] processed %d posts of vendor %s: %+v", len(posts), vendorID, batch.Summary)
	return batch
}

// SchedulesForDateRange crawls the vendor for the given window and keeps schedules dated inside it
func (t *Tracker) SchedulesForDateRange(ctx context.Context, req Request, from, to time.Time) ([]domain.Schedule, error) {
	req.DateRange = &domain.DateRange{From: from, To: to}
	res, err := t.CrawlVendor(ctx, req)
	if err != nil {
		return nil, err
	}
	return FilterSchedules(res.Schedules, from, to), nil
}

// FilterSchedules keeps schedules with date between from and to, compared by calendar day
func FilterSchedules(schedules []domain.Schedule, from, to time.Time) []domain.Schedule {
	lo, hi := from.Format(time.DateOnly), to.Format(time.DateOnly)
	res := []domain.Schedule{}
	for _, s := range schedules {
		if (from.IsZero() || s.Date >= lo) && (to.IsZero() || s.Date <= hi) {
			res = append(res, s)
		}
	}
	return res
}

// ParseText parses text with the text-only model, no crawling.
// The schedule is returned when vendorID is set and the text yields a persistable schedule.
func (t *Tracker) ParseText(text, vendorID string) ParseOutcome {
	parsed := extract.Parse(text, nil)
	res := ParseOutcome{Parsed: parsed, Valid: extract.IsValid(parsed)}
	if vendorID == "" {
		return res
	}
	pr := extract.Result{Schedule: parsed, Valid: res.Valid, VendorID: vendorID, Source: ManualSource}
	if sch, ok := extract.ToSchedule(pr, vendorID, t.now()); ok {
		res.Schedule = &sch
	}
	return res
}

func (t *Tracker) searchLog(vendorID string, q domain.Query, fetched map[domain.Platform]domain.FetchResult, sum Summary) domain.ActivityLog {
	platforms := make([]string, 0, len(fetched))
	for _, p := range domain.AllPlatforms {
		if _, ok := fetched[p]; ok {
			platforms = append(platforms, string(p))
		}
	}
	success := len(sum.Errors) == 0
	return domain.ActivityLog{
		ID:              uuid.NewString(),
		VendorID:        vendorID,
		Timestamp:       t.now(),
		Source:          SearchLogSource,
		ConfidenceScore: sum.AverageConfidence,
		Action:          domain.ActionBusinessSearch,
		Metadata: domain.ActivityMetadata{
			SearchTerms:  q.SearchTerms,
			Platforms:    platforms,
			ResultsCount: sum.TotalPosts,
			Success:      &success,
			ErrorMessage: strings.Join(sum.Errors, "; "),
		},
	}
}

// averageConfidence of all parse attempts, rounded to two decimals
func averageConfidence(logs []domain.ActivityLog) float64 {
	if len(logs) == 0 {
		return 0
	}
	var sum float64
	for _, l := range logs {
		sum += l.ConfidenceScore
	}
	return math.Round(sum/float64(len(logs))*100) / 100
}

func countPosts(results map[domain.Platform]domain.FetchResult) int {
	n := 0
	for _, r := range results {
		n += len(r.Posts)
	}
	return n
}

// uniq concatenates lists dropping empty and repeated (case-insensitive) values
func uniq(lists ...[]string) []string {
	var res []string
	seen := map[string]bool{}
	for _, l := range lists {
		for _, v := range l {
			v = strings.TrimSpace(v)
			if v == "" || seen[strings.ToLower(v)] {
				continue
			}
			seen[strings.ToLower(v)] = true
			res = append(res, v)
		}
	}
	return res
}
