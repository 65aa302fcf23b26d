// Package scheduler re-crawls tracked vendors periodically and persists the reconciled outcomes.
// It's also the entry point for on-demand crawls, so every crawl sees stored schedules
// and leaves its schedules and activity entries in the store.
package scheduler

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/crawler.go -pkg mocks -skip-ensure -fmt goimports . Crawler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/truckscope/pkg/domain"
	"github.com/umputun/truckscope/pkg/tracker"
)

// Store is the persistence used by the scheduler
type Store interface {
	GetVendors(ctx context.Context, enabledOnly bool) ([]domain.Vendor, error)
	GetVendor(ctx context.Context, id string) (*domain.Vendor, error)
	GetSchedules(ctx context.Context, vendorID, from, to string) ([]domain.Schedule, error)
	SaveCrawl(ctx context.Context, schedules []domain.Schedule, logs []domain.ActivityLog) error
	Cleanup(ctx context.Context, scheduleDate string, activityTime time.Time) (schedules, activities int64, err error)
}

// Crawler crawls vendors and reconciles their schedules
type Crawler interface {
	CrawlVendor(ctx context.Context, req tracker.Request) (tracker.Result, error)
	CrawlVendors(ctx context.Context, reqs []tracker.Request) ([]tracker.Result, []tracker.Failure)
}

// VendorGauge reports the number of vendors in a periodic crawl, optional
type VendorGauge interface {
	SetTrackedVendors(n int)
}

// Params for the scheduler
type Params struct {
	Store           Store
	Crawler         Crawler
	Gauge           VendorGauge
	UpdateInterval  time.Duration // zero disables periodic crawl
	CleanupInterval time.Duration // zero disables cleanup
	CleanupAge      time.Duration
}

// Report summarizes a batch crawl
type Report struct {
	Vendors   int               `json:"vendors"`
	Schedules int               `json:"schedules"`
	Results   []tracker.Result  `json:"results"`
	Failures  []tracker.Failure `json:"-"`
	Errors    map[string]string `json:"errors,omitempty"` // vendor id to error
}

// Scheduler manages periodic vendor crawls and cleanup
type Scheduler struct {
	store           Store
	crawler         Crawler
	gauge           VendorGauge
	updateInterval  time.Duration
	cleanupInterval time.Duration
	cleanupAge      time.Duration
	now             func() time.Time

	crawlMu sync.Mutex // one batch crawl at a time
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

// NewScheduler creates a new scheduler instance
func NewScheduler(p Params) *Scheduler {
	if p.CleanupAge <= 0 {
		p.CleanupAge = 30 * 24 * time.Hour
	}
	return &Scheduler{
		store:           p.Store,
		crawler:         p.Crawler,
		gauge:           p.Gauge,
		updateInterval:  p.UpdateInterval,
		cleanupInterval: p.CleanupInterval,
		cleanupAge:      p.CleanupAge,
		now:             time.Now,
	}
}

// Start begins the background workers
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	if s.updateInterval > 0 {
		s.wg.Add(1)
		go s.crawlWorker(ctx)
	}
	if s.cleanupInterval > 0 {
		s.wg.Add(1)
		go s.cleanupWorker(ctx)
	}

	lgr.Printf("[INFO] scheduler started with update interval %v, cleanup interval %v, cleanup age %v",
		s.updateInterval, s.cleanupInterval, s.cleanupAge)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// crawlWorker periodically crawls all enabled vendors
func (s *Scheduler) crawlWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	// run immediately on start
	s.runCrawl(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runCrawl(ctx)
		}
	}
}

func (s *Scheduler) runCrawl(ctx context.Context) {
	if _, err := s.CrawlAll(ctx); err != nil {
		lgr.Printf("[ERROR] periodic crawl failed: %v", err)
	}
}

// cleanupWorker periodically removes past schedules and old activity entries
func (s *Scheduler) cleanupWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Cleanup(ctx); err != nil {
				lgr.Printf("[ERROR] cleanup failed: %v", err)
			}
		}
	}
}

// CrawlAll crawls every enabled vendor and persists the outcomes
func (s *Scheduler) CrawlAll(ctx context.Context) (Report, error) {
	vendors, err := s.store.GetVendors(ctx, true)
	if err != nil {
		return Report{}, fmt.Errorf("get enabled vendors: %w", err)
	}
	if s.gauge != nil {
		s.gauge.SetTrackedVendors(len(vendors))
	}
	if len(vendors) == 0 {
		lgr.Printf("[INFO] no enabled vendors to crawl")
		return Report{Results: []tracker.Result{}}, nil
	}

	lgr.Printf("[INFO] crawling %d vendors", len(vendors))
	reqs := make([]tracker.Request, 0, len(vendors))
	for _, v := range vendors {
		reqs = append(reqs, tracker.RequestFromVendor(v))
	}
	rep := s.CrawlRequests(ctx, reqs)
	lgr.Printf("[INFO] vendor crawl completed: %d vendors, %d schedules, %d failed",
		rep.Vendors, rep.Schedules, len(rep.Failures))
	return rep, nil
}

// CrawlVendorNow crawls a stored vendor immediately
func (s *Scheduler) CrawlVendorNow(ctx context.Context, vendorID string) (tracker.Result, error) {
	v, err := s.store.GetVendor(ctx, vendorID)
	if err != nil {
		return tracker.Result{}, fmt.Errorf("get vendor: %w", err)
	}
	return s.Crawl(ctx, tracker.RequestFromVendor(*v))
}

// Crawl runs a single vendor crawl against stored schedules and persists the outcome
func (s *Scheduler) Crawl(ctx context.Context, req tracker.Request) (tracker.Result, error) {
	if err := s.withExisting(ctx, &req); err != nil {
		return tracker.Result{}, err
	}
	res, err := s.crawler.CrawlVendor(ctx, req)
	if err != nil {
		return tracker.Result{}, err
	}
	if err := s.persist(ctx, res); err != nil {
		return tracker.Result{}, err
	}
	return res, nil
}

// CrawlRequests crawls vendors one by one and persists every successful result.
// Failures of single vendors, including persistence failures, are reported and don't stop the batch.
func (s *Scheduler) CrawlRequests(ctx context.Context, reqs []tracker.Request) Report {
	s.crawlMu.Lock()
	defer s.crawlMu.Unlock()

	rep := Report{Results: []tracker.Result{}, Errors: map[string]string{}}
	prepared := make([]tracker.Request, 0, len(reqs))
	for _, req := range reqs {
		if err := s.withExisting(ctx, &req); err != nil {
			rep.Failures = append(rep.Failures, tracker.Failure{VendorID: req.VendorID, Err: err})
			continue
		}
		prepared = append(prepared, req)
	}

	results, failures := s.crawler.CrawlVendors(ctx, prepared)
	rep.Failures = append(rep.Failures, failures...)
	for _, res := range results {
		if err := s.persist(ctx, res); err != nil {
			rep.Failures = append(rep.Failures, tracker.Failure{VendorID: res.Vendor.ID, Err: err})
			continue
		}
		rep.Results = append(rep.Results, res)
		rep.Schedules += len(res.Schedules)
	}
	rep.Vendors = len(rep.Results)
	for _, f := range rep.Failures {
		rep.Errors[f.VendorID] = f.Err.Error()
	}
	return rep
}

// Cleanup removes schedules dated before the cleanup age and older activity entries
func (s *Scheduler) Cleanup(ctx context.Context) error {
	cutoff := s.now().Add(-s.cleanupAge)
	schedules, activities, err := s.store.Cleanup(ctx, cutoff.Format(time.DateOnly), cutoff)
	if err != nil {
		return fmt.Errorf("cleanup before %s: %w", cutoff.Format(time.DateOnly), err)
	}
	if schedules > 0 || activities > 0 {
		lgr.Printf("[INFO] cleanup removed %d schedules and %d activity entries", schedules, activities)
	}
	return nil
}

// withExisting loads stored schedules of the vendor into the request, unless the caller set them
func (s *Scheduler) withExisting(ctx context.Context, req *tracker.Request) error {
	if req.Existing != nil || req.VendorID == "" {
		return nil
	}
	existing, err := s.store.GetSchedules(ctx, req.VendorID, "", "")
	if err != nil {
		return fmt.Errorf("get schedules of %s: %w", req.VendorID, err)
	}
	req.Existing = existing
	return nil
}

func (s *Scheduler) persist(ctx context.Context, res tracker.Result) error {
	logs := make([]domain.ActivityLog, 0, len(res.ActivityLogs)+1)
	logs = append(logs, res.ActivityLogs...)
	logs = append(logs, res.SearchLog)
	if err := s.store.SaveCrawl(ctx, res.Schedules, logs); err != nil {
		return fmt.Errorf("persist crawl of %s: %w", res.Vendor.ID, err)
	}
	return nil
}
