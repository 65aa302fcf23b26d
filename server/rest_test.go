package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/truckscope/pkg/domain"
	"github.com/umputun/truckscope/pkg/reconcile"
	"github.com/umputun/truckscope/pkg/repository"
	"github.com/umputun/truckscope/pkg/scheduler"
	"github.com/umputun/truckscope/pkg/tracker"
	"github.com/umputun/truckscope/server/mocks"
)

// do sends request through the router, body is sent as is
func do(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var res T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	return res
}

func schedule(vendorID, date string, conf float64) domain.Schedule {
	return domain.Schedule{VendorID: vendorID, Date: date, StartTime: "11:00", EndTime: "14:00",
		Location: "Central Park", Source: "twitter:t1", Confidence: conf}
}

func TestServer_statusHandler(t *testing.T) {
	trk := &mocks.TrackerMock{MinConfidenceFunc: func() float64 { return 0.7 }}
	srv := testServer(t, nil, nil, trk)

	w := do(srv, "GET", "/api/v1/status", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	status := decode[map[string]any](t, w)
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "test", status["version"])
	assert.Equal(t, "2025-09-03T10:00:00Z", status["time"])
	assert.InDelta(t, 0.7, status["min_confidence"], 0.0001)
}

func TestServer_crawlHandler(t *testing.T) {
	sched := &mocks.SchedulerMock{
		CrawlFunc: func(ctx context.Context, req tracker.Request) (tracker.Result, error) {
			if req.MinConfidence != nil && *req.MinConfidence > 1 {
				return tracker.Result{}, fmt.Errorf("vendor %s: %w", req.VendorID, domain.ErrInvalidConfidence)
			}
			return tracker.Result{Vendor: tracker.VendorRef{ID: req.VendorID, Name: req.VendorName},
				Schedules: []domain.Schedule{schedule(req.VendorID, "2025-09-05", 0.9)},
				Summary:   tracker.Summary{TotalPosts: 3, TotalSchedules: 1}}, nil
		},
	}
	srv := testServer(t, nil, sched, nil)

	t.Run("crawl and persist", func(t *testing.T) {
		w := do(srv, "POST", "/api/v1/crawl",
			`{"vendor_id":"taco","vendor_name":"Taco Truck","hashtags":["tacos"],"platforms":["twitter"]}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		res := decode[tracker.Result](t, w)
		assert.Equal(t, "taco", res.Vendor.ID)
		assert.Equal(t, 3, res.Summary.TotalPosts)
		require.Len(t, res.Schedules, 1)

		calls := sched.CrawlCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, []string{"tacos"}, calls[0].Req.Hashtags)
		assert.Equal(t, []domain.Platform{domain.PlatformTwitter}, calls[0].Req.Platforms)
	})

	t.Run("invalid confidence", func(t *testing.T) {
		w := do(srv, "POST", "/api/v1/crawl", `{"vendor_id":"taco","min_confidence":1.5}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "confidence must be between 0 and 1")
	})

	t.Run("bad requests", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, do(srv, "POST", "/api/v1/crawl", `{bad json`).Code)
		w := do(srv, "POST", "/api/v1/crawl", `{"vendor_name":"Taco Truck"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "vendor_id is required")
	})
}

func TestServer_crawlBatchHandler(t *testing.T) {
	sched := &mocks.SchedulerMock{
		CrawlRequestsFunc: func(ctx context.Context, reqs []tracker.Request) scheduler.Report {
			return scheduler.Report{Vendors: 1, Schedules: 2, Results: []tracker.Result{{Vendor: tracker.VendorRef{ID: "taco"}}},
				Errors: map[string]string{"burger": "boom"}}
		},
	}
	srv := testServer(t, nil, sched, nil)

	w := do(srv, "POST", "/api/v1/crawl/batch", `{"vendors":[{"vendor_id":"taco"},{"vendor_id":"burger"}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rep := decode[scheduler.Report](t, w)
	assert.Equal(t, 1, rep.Vendors)
	assert.Equal(t, 2, rep.Schedules)
	assert.Equal(t, map[string]string{"burger": "boom"}, rep.Errors)
	require.Len(t, sched.CrawlRequestsCalls(), 1)
	assert.Len(t, sched.CrawlRequestsCalls()[0].Reqs, 2)

	tests := []struct {
		name, body, errMsg string
	}{
		{"empty list", `{"vendors":[]}`, "vendors list is empty"},
		{"missing vendor id", `{"vendors":[{"vendor_id":"a"},{"vendor_name":"B"}]}`, "vendors[1]: vendor_id is required"},
		{"bad json", `[1,2`, "invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(srv, "POST", "/api/v1/crawl/batch", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.errMsg)
		})
	}
	assert.Len(t, sched.CrawlRequestsCalls(), 1, "invalid batches are not crawled")
}

func TestServer_crawlAllHandler(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		sched := &mocks.SchedulerMock{CrawlAllFunc: func(context.Context) (scheduler.Report, error) {
			return scheduler.Report{Vendors: 3, Schedules: 4, Results: []tracker.Result{}}, nil
		}}
		w := do(testServer(t, nil, sched, nil), "POST", "/api/v1/crawl/all", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 3, decode[scheduler.Report](t, w).Vendors)
	})

	t.Run("store error", func(t *testing.T) {
		sched := &mocks.SchedulerMock{CrawlAllFunc: func(context.Context) (scheduler.Report, error) {
			return scheduler.Report{}, errors.New("get enabled vendors: locked")
		}}
		w := do(testServer(t, nil, sched, nil), "POST", "/api/v1/crawl/all", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestServer_crawlVendorHandler(t *testing.T) {
	sched := &mocks.SchedulerMock{
		CrawlVendorNowFunc: func(ctx context.Context, vendorID string) (tracker.Result, error) {
			if vendorID != "taco" {
				return tracker.Result{}, fmt.Errorf("get vendor: vendor %s: %w", vendorID, repository.ErrNotFound)
			}
			return tracker.Result{Vendor: tracker.VendorRef{ID: "taco"}}, nil
		},
	}
	srv := testServer(t, nil, sched, nil)

	w := do(srv, "POST", "/api/v1/vendors/taco/crawl", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "taco", decode[tracker.Result](t, w).Vendor.ID)

	w = do(srv, "POST", "/api/v1/vendors/nope/crawl", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_parseHandler(t *testing.T) {
	trk := &mocks.TrackerMock{
		ParseTextFunc: func(text, vendorID string) tracker.ParseOutcome {
			res := tracker.ParseOutcome{Parsed: domain.ParsedSchedule{Date: "tomorrow", Location: "Central Park",
				Confidence: 0.9, RawText: text}, Valid: true}
			if vendorID != "" {
				s := schedule(vendorID, "2025-09-04", 0.9)
				res.Schedule = &s
			}
			return res
		},
	}
	srv := testServer(t, nil, nil, trk)

	w := do(srv, "POST", "/api/v1/parse", `{"text":"at Central Park tomorrow 11am-2pm","vendor_id":"taco"}`)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[tracker.ParseOutcome](t, w)
	assert.True(t, res.Valid)
	assert.Equal(t, "Central Park", res.Parsed.Location)
	require.NotNil(t, res.Schedule)
	assert.Equal(t, "2025-09-04", res.Schedule.Date)
	assert.Equal(t, "taco", trk.ParseTextCalls()[0].VendorID)

	w = do(srv, "POST", "/api/v1/parse", `{"text":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "text is required")
}

func TestServer_processHandler(t *testing.T) {
	stored := []domain.Schedule{schedule("taco", "2025-09-05", 0.7)}
	batch := reconcile.BatchResult{
		Schedules:    []domain.Schedule{schedule("taco", "2025-09-05", 1)},
		ActivityLogs: []domain.ActivityLog{{ID: "a1", VendorID: "taco", Action: domain.ActionScheduleUpdated}},
		Summary:      reconcile.Summary{Updated: 1},
	}
	newDB := func() *mocks.DatabaseMock {
		return &mocks.DatabaseMock{
			GetSchedulesFunc: func(context.Context, string, string, string) ([]domain.Schedule, error) { return stored, nil },
			SaveCrawlFunc:    func(context.Context, []domain.Schedule, []domain.ActivityLog) error { return nil },
		}
	}
	newTracker := func() *mocks.TrackerMock {
		return &mocks.TrackerMock{ProcessPostsFunc: func([]domain.Post, string, []domain.Schedule) reconcile.BatchResult {
			return batch
		}}
	}
	body := `{"vendor_id":"taco","posts":[{"id":"t1","platform":"twitter","text":"9/5 at Central Park 11am-2pm"}]}`

	t.Run("existing loaded from store, not persisted", func(t *testing.T) {
		db, trk := newDB(), newTracker()
		w := do(testServer(t, db, nil, trk), "POST", "/api/v1/process", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		res := decode[reconcile.BatchResult](t, w)
		assert.Equal(t, reconcile.Summary{Updated: 1}, res.Summary)
		assert.Len(t, res.ActivityLogs, 1)

		require.Len(t, trk.ProcessPostsCalls(), 1)
		call := trk.ProcessPostsCalls()[0]
		assert.Equal(t, "taco", call.VendorID)
		require.Len(t, call.Posts, 1)
		assert.Equal(t, domain.PlatformTwitter, call.Posts[0].Platform)
		assert.Equal(t, stored, call.Existing)
		assert.Empty(t, db.SaveCrawlCalls())
	})

	t.Run("existing given and persisted", func(t *testing.T) {
		db, trk := newDB(), newTracker()
		w := do(testServer(t, db, nil, trk), "POST", "/api/v1/process",
			`{"vendor_id":"taco","posts":[],"existing_schedules":[],"persist":true}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, db.GetSchedulesCalls())
		assert.Empty(t, trk.ProcessPostsCalls()[0].Existing)
		require.Len(t, db.SaveCrawlCalls(), 1)
		assert.Equal(t, batch.Schedules, db.SaveCrawlCalls()[0].Schedules)
		assert.Equal(t, batch.ActivityLogs, db.SaveCrawlCalls()[0].Logs)
	})

	t.Run("persist error", func(t *testing.T) {
		db := newDB()
		db.SaveCrawlFunc = func(context.Context, []domain.Schedule, []domain.ActivityLog) error { return errors.New("disk full") }
		w := do(testServer(t, db, nil, newTracker()), "POST", "/api/v1/process", `{"vendor_id":"taco","persist":true}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("missing vendor", func(t *testing.T) {
		w := do(testServer(t, newDB(), nil, newTracker()), "POST", "/api/v1/process", `{"posts":[]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestServer_schedulesHandler(t *testing.T) {
	stored := []domain.Schedule{
		schedule("taco", "2025-09-05", 0.9),
		schedule("taco", "2025-09-06", 0.45),
		schedule("taco", "2025-09-07", 0.25),
	}
	db := &mocks.DatabaseMock{
		GetSchedulesFunc: func(context.Context, string, string, string) ([]domain.Schedule, error) { return stored, nil },
	}
	srv := testServer(t, db, nil, nil)

	t.Run("all in range", func(t *testing.T) {
		w := do(srv, "GET", "/api/v1/schedules?vendor_id=taco&from=2025-09-01&to=2025-09-30", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]domain.Schedule](t, w), 3)
		call := db.GetSchedulesCalls()[len(db.GetSchedulesCalls())-1]
		assert.Equal(t, "taco", call.VendorID)
		assert.Equal(t, "2025-09-01", call.From)
		assert.Equal(t, "2025-09-30", call.To)
	})

	t.Run("min confidence", func(t *testing.T) {
		w := do(srv, "GET", "/api/v1/schedules?min_confidence=0.4", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]domain.Schedule](t, w), 2)
	})

	t.Run("manual review band", func(t *testing.T) {
		w := do(srv, "GET", "/api/v1/schedules?review=true", "")
		require.Equal(t, http.StatusOK, w.Code)
		res := decode[[]domain.Schedule](t, w)
		require.Len(t, res, 1)
		assert.Equal(t, "2025-09-06", res[0].Date)
	})

	tests := []struct {
		name, query, errMsg string
	}{
		{"bad from", "from=09/05/2025", "invalid date"},
		{"bad to", "to=2025-13-01", "invalid date"},
		{"reversed range", "from=2025-09-10&to=2025-09-01", "from is after to"},
		{"bad confidence", "min_confidence=2", "invalid min_confidence"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(srv, "GET", "/api/v1/schedules?"+tt.query, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.errMsg)
		})
	}

	t.Run("empty result is a list", func(t *testing.T) {
		empty := &mocks.DatabaseMock{
			GetSchedulesFunc: func(context.Context, string, string, string) ([]domain.Schedule, error) { return nil, nil },
		}
		w := do(testServer(t, empty, nil, nil), "GET", "/api/v1/schedules", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]\n", w.Body.String())
	})
}

func TestServer_analyticsHandler(t *testing.T) {
	db := &mocks.DatabaseMock{
		AnalyticsFunc: func(ctx context.Context, vendorID string) (reconcile.Analytics, error) {
			if vendorID == "broken" {
				return reconcile.Analytics{}, errors.New("locked")
			}
			return reconcile.Analyze([]domain.ActivityLog{
				{VendorID: vendorID, ConfidenceScore: 0.9, Source: "twitter:t1", Action: domain.ActionScheduleDetected,
					Metadata: domain.ActivityMetadata{Platform: "twitter"}},
				{VendorID: vendorID, ConfidenceScore: 0.1, Source: "reddit:r1", Action: domain.ActionScheduleRejected,
					Metadata: domain.ActivityMetadata{Platform: "reddit"}},
			}), nil
		},
	}
	srv := testServer(t, db, nil, nil)

	w := do(srv, "GET", "/api/v1/analytics/taco", "")
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[reconcile.Analytics](t, w)
	assert.Equal(t, 2, res.Total)
	assert.InDelta(t, 0.5, res.AverageConfidence, 0.001)
	assert.Equal(t, 1, res.ConfidenceDistribution["80-100%"])
	assert.Equal(t, 1, res.ActionBreakdown["schedule_rejected"])
	assert.Equal(t, "taco", db.AnalyticsCalls()[0].VendorID)

	assert.Equal(t, http.StatusInternalServerError, do(srv, "GET", "/api/v1/analytics/broken", "").Code)
}

func TestServer_activityHandlers(t *testing.T) {
	entries := map[string]domain.ActivityLog{
		"a1": {ID: "a1", VendorID: "taco", Source: "twitter:t1", Action: domain.ActionScheduleDetected, ConfidenceScore: 0.9},
	}
	db := &mocks.DatabaseMock{
		ListActivitiesFunc: func(ctx context.Context, f domain.ActivityFilter) ([]domain.ActivityLog, error) {
			return []domain.ActivityLog{entries["a1"]}, nil
		},
		GetActivityFunc: func(ctx context.Context, id string) (*domain.ActivityLog, error) {
			e, ok := entries[id]
			if !ok {
				return nil, fmt.Errorf("activity %s: %w", id, repository.ErrNotFound)
			}
			return &e, nil
		},
		CreateActivityFunc: func(ctx context.Context, a *domain.ActivityLog) error {
			a.ID = "new-id"
			return nil
		},
		DeleteActivityFunc: func(ctx context.Context, id string) error {
			if _, ok := entries[id]; !ok {
				return fmt.Errorf("activity %s: %w", id, repository.ErrNotFound)
			}
			return nil
		},
	}
	srv := testServer(t, db, nil, nil)

	t.Run("list with filters", func(t *testing.T) {
		w := do(srv, "GET", "/api/v1/activity?vendor_id=taco&action=schedule_detected&source=twitter:t1&limit=5000", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]domain.ActivityLog](t, w), 1)
		f := db.ListActivitiesCalls()[len(db.ListActivitiesCalls())-1].F
		assert.Equal(t, domain.ActivityFilter{VendorID: "taco", Action: domain.ActionScheduleDetected,
			Source: "twitter:t1", Limit: maxActivityLimit}, f)
	})

	t.Run("list default limit", func(t *testing.T) {
		w := do(srv, "GET", "/api/v1/activity", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, defaultActivityLimit, db.ListActivitiesCalls()[len(db.ListActivitiesCalls())-1].F.Limit)
	})

	t.Run("list bad params", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, do(srv, "GET", "/api/v1/activity?action=eaten", "").Code)
		assert.Equal(t, http.StatusBadRequest, do(srv, "GET", "/api/v1/activity?limit=-1", "").Code)
	})

	t.Run("create", func(t *testing.T) {
		w := do(srv, "POST", "/api/v1/activity",
			`{"vendor_id":"taco","source":"manual","action":"manual_review","confidence_score":0.4}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		res := decode[domain.ActivityLog](t, w)
		assert.Equal(t, "new-id", res.ID)
		assert.Equal(t, domain.ActionManualReview, res.Action)
	})

	t.Run("create invalid", func(t *testing.T) {
		tests := []struct {
			name, body, errMsg string
		}{
			{"no vendor", `{"action":"manual_review"}`, "vendor_id is required"},
			{"bad action", `{"vendor_id":"taco","action":"eaten"}`, "unknown action"},
			{"bad confidence", `{"vendor_id":"taco","action":"manual_review","confidence_score":3}`, "between 0 and 1"},
		}
		for _, tt := range tests {
			w := do(srv, "POST", "/api/v1/activity", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, tt.name)
			assert.Contains(t, w.Body.String(), tt.errMsg, tt.name)
		}
	})

	t.Run("get", func(t *testing.T) {
		w := do(srv, "GET", "/api/v1/activity/a1", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "taco", decode[domain.ActivityLog](t, w).VendorID)
		assert.Equal(t, http.StatusNotFound, do(srv, "GET", "/api/v1/activity/zzz", "").Code)
	})

	t.Run("delete", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, do(srv, "DELETE", "/api/v1/activity/a1", "").Code)
		assert.Equal(t, http.StatusNotFound, do(srv, "DELETE", "/api/v1/activity/zzz", "").Code)
	})
}

func TestServer_vendorHandlers(t *testing.T) {
	db := &mocks.DatabaseMock{
		GetVendorsFunc: func(ctx context.Context, enabledOnly bool) ([]domain.Vendor, error) {
			return []domain.Vendor{{ID: "taco", Name: "Taco Truck", Enabled: true}}, nil
		},
		GetVendorFunc: func(ctx context.Context, id string) (*domain.Vendor, error) {
			if id != "taco" {
				return nil, fmt.Errorf("vendor %s: %w", id, repository.ErrNotFound)
			}
			return &domain.Vendor{ID: "taco", Name: "Taco Truck", Enabled: true}, nil
		},
		CreateVendorFunc: func(ctx context.Context, v *domain.Vendor) error {
			if v.ID == "taco" {
				return errors.New("insert vendor: constraint failed: UNIQUE constraint failed: vendors.id")
			}
			if v.ID == "" {
				v.ID = "generated"
			}
			return nil
		},
	}
	srv := testServer(t, db, nil, nil)

	t.Run("list", func(t *testing.T) {
		w := do(srv, "GET", "/api/v1/vendors?enabled=true", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]domain.Vendor](t, w), 1)
		assert.True(t, db.GetVendorsCalls()[0].EnabledOnly)
	})

	t.Run("get", func(t *testing.T) {
		w := do(srv, "GET", "/api/v1/vendors/taco", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Taco Truck", decode[domain.Vendor](t, w).Name)
		assert.Equal(t, http.StatusNotFound, do(srv, "GET", "/api/v1/vendors/nope", "").Code)
	})

	t.Run("create", func(t *testing.T) {
		w := do(srv, "POST", "/api/v1/vendors", `{"name":"Burger Bus","hashtags":["burgers"],"platforms":["instagram"]}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		v := decode[domain.Vendor](t, w)
		assert.Equal(t, "generated", v.ID)
		assert.True(t, v.Enabled, "enabled by default")
		assert.Equal(t, []domain.Platform{domain.PlatformInstagram}, v.Platforms)

		w = do(srv, "POST", "/api/v1/vendors", `{"name":"Pizza Van","enabled":false}`)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.False(t, decode[domain.Vendor](t, w).Enabled)
	})

	t.Run("create invalid", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, do(srv, "POST", "/api/v1/vendors", `{"id":"x"}`).Code)
		assert.Equal(t, http.StatusConflict, do(srv, "POST", "/api/v1/vendors", `{"id":"taco","name":"Taco"}`).Code)
	})
}

func TestServer_minConfidenceHandler(t *testing.T) {
	current := 0.5
	trk := &mocks.TrackerMock{
		SetMinConfidenceFunc: func(v float64) error {
			if v < 0 || v > 1 {
				return fmt.Errorf("min confidence %v: %w", v, domain.ErrInvalidConfidence)
			}
			current = v
			return nil
		},
		MinConfidenceFunc: func() float64 { return current },
	}
	db := &mocks.DatabaseMock{SetMinConfidenceFunc: func(context.Context, float64) error { return nil }}
	srv := testServer(t, db, nil, trk)

	w := do(srv, "PUT", "/api/v1/config/min-confidence", `{"min_confidence":0.8}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.InDelta(t, 0.8, decode[map[string]float64](t, w)["min_confidence"], 0.0001)
	require.Len(t, db.SetMinConfidenceCalls(), 1)
	assert.InDelta(t, 0.8, db.SetMinConfidenceCalls()[0].V, 0.0001)

	w = do(srv, "PUT", "/api/v1/config/min-confidence", `{"min_confidence":1.2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, db.SetMinConfidenceCalls(), 1, "invalid value not stored")

	w = do(srv, "PUT", "/api/v1/config/min-confidence", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "min_confidence is required")
}
