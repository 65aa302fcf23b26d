package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/truckscope/pkg/domain"
	"github.com/umputun/truckscope/pkg/scheduler/mocks"
	"github.com/umputun/truckscope/pkg/tracker"
)

type gaugeStub struct {
	mu sync.Mutex
	n  int
}

func (g *gaugeStub) SetTrackedVendors(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n = n
}

func (g *gaugeStub) value() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n
}

func storedSchedule(vendorID string) domain.Schedule {
	return domain.Schedule{VendorID: vendorID, Date: "2025-09-05", StartTime: "11:00", EndTime: "14:00",
		Location: "Central Park", Source: "twitter:t0", Confidence: 0.9}
}

func resultFor(req tracker.Request) tracker.Result {
	sched := domain.Schedule{VendorID: req.VendorID, Date: "2025-09-06", StartTime: "12:00", EndTime: "15:00",
		Location: "Main Street", Source: "twitter:t1", Confidence: 1}
	return tracker.Result{
		Vendor:       tracker.VendorRef{ID: req.VendorID, Name: req.VendorName},
		Schedules:    []domain.Schedule{sched},
		ActivityLogs: []domain.ActivityLog{{VendorID: req.VendorID, Action: domain.ActionScheduleDetected, Source: "twitter:t1"}},
		SearchLog:    domain.ActivityLog{VendorID: req.VendorID, Action: domain.ActionBusinessSearch, Source: "search"},
	}
}

func TestScheduler_CrawlAll(t *testing.T) {
	vendors := []domain.Vendor{
		{ID: "v1", Name: "Taco Truck", SocialHandle: "@tacotruck", Enabled: true},
		{ID: "v2", Name: "Burger Bus", Enabled: true},
		{ID: "v3", Name: "Pizza Van", Enabled: true},
	}
	store := &mocks.StoreMock{
		GetVendorsFunc: func(ctx context.Context, enabledOnly bool) ([]domain.Vendor, error) {
			assert.True(t, enabledOnly)
			return vendors, nil
		},
		GetSchedulesFunc: func(ctx context.Context, vendorID, from, to string) ([]domain.Schedule, error) {
			assert.Empty(t, from)
			assert.Empty(t, to)
			if vendorID == "v1" {
				return []domain.Schedule{storedSchedule("v1")}, nil
			}
			return nil, nil
		},
		SaveCrawlFunc: func(ctx context.Context, schedules []domain.Schedule, logs []domain.ActivityLog) error {
			return nil
		},
	}
	crawler := &mocks.CrawlerMock{
		CrawlVendorsFunc: func(ctx context.Context, reqs []tracker.Request) ([]tracker.Result, []tracker.Failure) {
			var results []tracker.Result
			var failures []tracker.Failure
			for _, req := range reqs {
				if req.VendorID == "v3" {
					failures = append(failures, tracker.Failure{VendorID: "v3", Err: errors.New("no platforms")})
					continue
				}
				results = append(results, resultFor(req))
			}
			return results, failures
		},
	}
	gauge := &gaugeStub{}
	s := NewScheduler(Params{Store: store, Crawler: crawler, Gauge: gauge})

	rep, err := s.CrawlAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Vendors)
	assert.Equal(t, 2, rep.Schedules)
	assert.Len(t, rep.Results, 2)
	assert.Equal(t, map[string]string{"v3": "no platforms"}, rep.Errors)
	assert.Equal(t, 3, gauge.value())

	// stored schedules passed to the crawler, vendor fields copied
	require.Len(t, crawler.CrawlVendorsCalls(), 1)
	reqs := crawler.CrawlVendorsCalls()[0].Reqs
	require.Len(t, reqs, 3)
	assert.Equal(t, "@tacotruck", reqs[0].SocialHandle)
	assert.Equal(t, []domain.Schedule{storedSchedule("v1")}, reqs[0].Existing)
	assert.Empty(t, reqs[1].Existing)

	// schedules and activity with search log persisted per vendor
	require.Len(t, store.SaveCrawlCalls(), 2)
	saved := store.SaveCrawlCalls()[0]
	assert.Len(t, saved.Schedules, 1)
	require.Len(t, saved.Logs, 2)
	assert.Equal(t, domain.ActionScheduleDetected, saved.Logs[0].Action)
	assert.Equal(t, domain.ActionBusinessSearch, saved.Logs[1].Action)
}

func TestScheduler_CrawlAllErrors(t *testing.T) {
	t.Run("vendors fail", func(t *testing.T) {
		store := &mocks.StoreMock{GetVendorsFunc: func(context.Context, bool) ([]domain.Vendor, error) {
			return nil, errors.New("db is down")
		}}
		s := NewScheduler(Params{Store: store, Crawler: &mocks.CrawlerMock{}})
		_, err := s.CrawlAll(context.Background())
		require.EqualError(t, err, "get enabled vendors: db is down")
	})

	t.Run("no vendors", func(t *testing.T) {
		store := &mocks.StoreMock{GetVendorsFunc: func(context.Context, bool) ([]domain.Vendor, error) {
			return nil, nil
		}}
		crawler := &mocks.CrawlerMock{}
		gauge := &gaugeStub{n: 5}
		s := NewScheduler(Params{Store: store, Crawler: crawler, Gauge: gauge})
		rep, err := s.CrawlAll(context.Background())
		require.NoError(t, err)
		assert.Zero(t, rep.Vendors)
		assert.Empty(t, rep.Results)
		assert.Zero(t, gauge.value())
		assert.Empty(t, crawler.CrawlVendorsCalls())
	})
}

func TestScheduler_CrawlRequests(t *testing.T) {
	t.Run("existing set by caller is kept", func(t *testing.T) {
		store := &mocks.StoreMock{
			SaveCrawlFunc: func(context.Context, []domain.Schedule, []domain.ActivityLog) error { return nil },
		}
		crawler := &mocks.CrawlerMock{
			CrawlVendorsFunc: func(ctx context.Context, reqs []tracker.Request) ([]tracker.Result, []tracker.Failure) {
				return []tracker.Result{resultFor(reqs[0])}, nil
			},
		}
		s := NewScheduler(Params{Store: store, Crawler: crawler})
		rep := s.CrawlRequests(context.Background(),
			[]tracker.Request{{VendorID: "v1", Existing: []domain.Schedule{storedSchedule("v1")}}})
		assert.Equal(t, 1, rep.Vendors)
		assert.Empty(t, rep.Errors)
		assert.Empty(t, store.GetSchedulesCalls(), "stored schedules not loaded when set")
	})

	t.Run("load and persist failures reported", func(t *testing.T) {
		store := &mocks.StoreMock{
			GetSchedulesFunc: func(ctx context.Context, vendorID, from, to string) ([]domain.Schedule, error) {
				if vendorID == "bad" {
					return nil, errors.New("locked")
				}
				return nil, nil
			},
			SaveCrawlFunc: func(context.Context, []domain.Schedule, []domain.ActivityLog) error {
				return errors.New("disk full")
			},
		}
		crawler := &mocks.CrawlerMock{
			CrawlVendorsFunc: func(ctx context.Context, reqs []tracker.Request) ([]tracker.Result, []tracker.Failure) {
				results := make([]tracker.Result, 0, len(reqs))
				for _, r := range reqs {
					results = append(results, resultFor(r))
				}
				return results, nil
			},
		}
		s := NewScheduler(Params{Store: store, Crawler: crawler})
		rep := s.CrawlRequests(context.Background(), []tracker.Request{{VendorID: "bad"}, {VendorID: "v2"}})
		assert.Zero(t, rep.Vendors)
		assert.Zero(t, rep.Schedules)
		assert.Len(t, rep.Failures, 2)
		assert.Equal(t, "get schedules of bad: locked", rep.Errors["bad"])
		assert.Equal(t, "persist crawl of v2: disk full", rep.Errors["v2"])
		require.Len(t, crawler.CrawlVendorsCalls(), 1)
		assert.Len(t, crawler.CrawlVendorsCalls()[0].Reqs, 1, "failed request not crawled")
	})
}

func TestScheduler_Crawl(t *testing.T) {
	store := &mocks.StoreMock{
		GetSchedulesFunc: func(context.Context, string, string, string) ([]domain.Schedule, error) {
			return []domain.Schedule{storedSchedule("v1")}, nil
		},
		SaveCrawlFunc: func(context.Context, []domain.Schedule, []domain.ActivityLog) error { return nil },
	}
	crawler := &mocks.CrawlerMock{
		CrawlVendorFunc: func(ctx context.Context, req tracker.Request) (tracker.Result, error) {
			if req.VendorID == "" {
				return tracker.Result{}, errors.New("vendor id is required")
			}
			return resultFor(req), nil
		},
	}
	s := NewScheduler(Params{Store: store, Crawler: crawler})

	res, err := s.Crawl(context.Background(), tracker.Request{VendorID: "v1", VendorName: "Taco Truck"})
	require.NoError(t, err)
	assert.Equal(t, "v1", res.Vendor.ID)
	require.Len(t, crawler.CrawlVendorCalls(), 1)
	assert.Len(t, crawler.CrawlVendorCalls()[0].Req.Existing, 1)
	require.Len(t, store.SaveCrawlCalls(), 1)
	assert.Len(t, store.SaveCrawlCalls()[0].Logs, 2)

	_, err = s.Crawl(context.Background(), tracker.Request{})
	require.EqualError(t, err, "vendor id is required")
	assert.Len(t, store.SaveCrawlCalls(), 1, "nothing persisted on crawl error")
}

func TestScheduler_CrawlVendorNow(t *testing.T) {
	store := &mocks.StoreMock{
		GetVendorFunc: func(ctx context.Context, id string) (*domain.Vendor, error) {
			if id != "v1" {
				return nil, errors.New("vendor not found")
			}
			return &domain.Vendor{ID: "v1", Name: "Taco Truck", Hashtags: []string{"tacotuesday"}, Enabled: true}, nil
		},
		GetSchedulesFunc: func(context.Context, string, string, string) ([]domain.Schedule, error) { return nil, nil },
		SaveCrawlFunc:    func(context.Context, []domain.Schedule, []domain.ActivityLog) error { return nil },
	}
	crawler := &mocks.CrawlerMock{
		CrawlVendorFunc: func(ctx context.Context, req tracker.Request) (tracker.Result, error) {
			return resultFor(req), nil
		},
	}
	s := NewScheduler(Params{Store: store, Crawler: crawler})

	res, err := s.CrawlVendorNow(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, "Taco Truck", res.Vendor.Name)
	assert.Equal(t, []string{"tacotuesday"}, crawler.CrawlVendorCalls()[0].Req.Hashtags)

	_, err = s.CrawlVendorNow(context.Background(), "nope")
	require.EqualError(t, err, "get vendor: vendor not found")
}

func TestScheduler_Cleanup(t *testing.T) {
	now := time.Date(2025, 9, 3, 10, 0, 0, 0, time.UTC)
	store := &mocks.StoreMock{
		CleanupFunc: func(context.Context, string, time.Time) (int64, int64, error) { return 3, 7, nil },
	}
	s := NewScheduler(Params{Store: store, Crawler: &mocks.CrawlerMock{}, CleanupAge: 48 * time.Hour})
	s.now = func() time.Time { return now }

	require.NoError(t, s.Cleanup(context.Background()))
	require.Len(t, store.CleanupCalls(), 1)
	assert.Equal(t, "2025-09-01", store.CleanupCalls()[0].ScheduleDate)
	assert.True(t, store.CleanupCalls()[0].ActivityTime.Equal(now.Add(-48*time.Hour)))

	store.CleanupFunc = func(context.Context, string, time.Time) (int64, int64, error) { return 0, 0, errors.New("locked") }
	require.EqualError(t, s.Cleanup(context.Background()), "cleanup before 2025-09-01: locked")
}

func TestNewScheduler_Defaults(t *testing.T) {
	s := NewScheduler(Params{Store: &mocks.StoreMock{}, Crawler: &mocks.CrawlerMock{}})
	assert.Equal(t, 30*24*time.Hour, s.cleanupAge)
	assert.Zero(t, s.updateInterval)
}

func TestScheduler_StartStop(t *testing.T) {
	crawled := make(chan struct{}, 10)
	store := &mocks.StoreMock{
		GetVendorsFunc: func(context.Context, bool) ([]domain.Vendor, error) {
			return []domain.Vendor{{ID: "v1", Name: "Taco Truck", Enabled: true}}, nil
		},
		GetSchedulesFunc: func(context.Context, string, string, string) ([]domain.Schedule, error) { return nil, nil },
		SaveCrawlFunc:    func(context.Context, []domain.Schedule, []domain.ActivityLog) error { return nil },
		CleanupFunc:      func(context.Context, string, time.Time) (int64, int64, error) { return 0, 0, nil },
	}
	crawler := &mocks.CrawlerMock{
		CrawlVendorsFunc: func(ctx context.Context, reqs []tracker.Request) ([]tracker.Result, []tracker.Failure) {
			crawled <- struct{}{}
			return []tracker.Result{resultFor(reqs[0])}, nil
		},
	}
	s := NewScheduler(Params{Store: store, Crawler: crawler, UpdateInterval: time.Hour, CleanupInterval: 10 * time.Millisecond})

	s.Start(context.Background())
	select {
	case <-crawled:
	case <-time.After(time.Second):
		t.Fatal("crawl didn't run on start")
	}
	assert.Eventually(t, func() bool { return len(store.CleanupCalls()) > 0 }, time.Second, 5*time.Millisecond)
	s.Stop()

	assert.Len(t, crawler.CrawlVendorsCalls(), 1, "next crawl is an hour away")
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	s := NewScheduler(Params{Store: &mocks.StoreMock{}, Crawler: &mocks.CrawlerMock{}})
	s.Stop()
}
