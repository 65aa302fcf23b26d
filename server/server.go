package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/truckscope/pkg/domain"
	"github.com/umputun/truckscope/pkg/reconcile"
	"github.com/umputun/truckscope/pkg/scheduler"
	"github.com/umputun/truckscope/pkg/tracker"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/database.go -pkg mocks -skip-ensure -fmt goimports . Database
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler
//go:generate moq -out mocks/tracker.go -pkg mocks -skip-ensure -fmt goimports . Tracker

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	db        Database
	scheduler Scheduler
	tracker   Tracker
	metrics   Metrics
	version   string
	debug     bool
	now       func() time.Time

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Database interface for server operations
type Database interface {
	GetVendors(ctx context.Context, enabledOnly bool) ([]domain.Vendor, error)
	GetVendor(ctx context.Context, id string) (*domain.Vendor, error)
	CreateVendor(ctx context.Context, v *domain.Vendor) error
	GetSchedules(ctx context.Context, vendorID, from, to string) ([]domain.Schedule, error)
	SaveCrawl(ctx context.Context, schedules []domain.Schedule, logs []domain.ActivityLog) error
	CreateActivity(ctx context.Context, a *domain.ActivityLog) error
	GetActivity(ctx context.Context, id string) (*domain.ActivityLog, error)
	ListActivities(ctx context.Context, f domain.ActivityFilter) ([]domain.ActivityLog, error)
	DeleteActivity(ctx context.Context, id string) error
	Analytics(ctx context.Context, vendorID string) (reconcile.Analytics, error)
	SetMinConfidence(ctx context.Context, v float64) error
}

// Scheduler interface for on-demand crawls, every crawl is persisted
type Scheduler interface {
	Crawl(ctx context.Context, req tracker.Request) (tracker.Result, error)
	CrawlVendorNow(ctx context.Context, vendorID string) (tracker.Result, error)
	CrawlRequests(ctx context.Context, reqs []tracker.Request) scheduler.Report
	CrawlAll(ctx context.Context) (scheduler.Report, error)
}

// Tracker interface for operations without fetching
type Tracker interface {
	ParseText(text, vendorID string) tracker.ParseOutcome
	ProcessPosts(posts []domain.Post, vendorID string, existing []domain.Schedule) reconcile.BatchResult
	SetMinConfidence(v float64) error
	MinConfidence() float64
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetFeedConfig() (baseURL string, days int)
}

// Metrics exposes collected metrics and instruments requests, optional
type Metrics interface {
	Handler() http.Handler
	Middleware(next http.Handler) http.Handler
}

// Params for the server
type Params struct {
	Config    ConfigProvider
	Database  Database
	Scheduler Scheduler
	Tracker   Tracker
	Metrics   Metrics
	Version   string
	Debug     bool
}

// New initializes a new server instance
func New(p Params) *Server {
	s := &Server{
		config:    p.Config,
		db:        p.Database,
		scheduler: p.Scheduler,
		tracker:   p.Tracker,
		metrics:   p.Metrics,
		version:   p.Version,
		debug:     p.Debug,
		now:       time.Now,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		// crawls wait for every platform, write timeout covers the slowest one
		WriteTimeout: 5 * timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("truckscope", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.metrics != nil {
		s.router.Use(s.metrics.Middleware)
	}
	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		// crawling and processing
		r.HandleFunc("POST /crawl", s.crawlHandler)
		r.HandleFunc("POST /crawl/batch", s.crawlBatchHandler)
		r.HandleFunc("POST /crawl/all", s.crawlAllHandler)
		r.HandleFunc("POST /parse", s.parseHandler)
		r.HandleFunc("POST /process", s.processHandler)

		// schedules and analytics
		r.HandleFunc("GET /schedules", s.schedulesHandler)
		r.HandleFunc("GET /analytics/{vendorID}", s.analyticsHandler)

		// activity log
		r.HandleFunc("GET /activity", s.listActivityHandler)
		r.HandleFunc("POST /activity", s.createActivityHandler)
		r.HandleFunc("GET /activity/{id}", s.getActivityHandler)
		r.HandleFunc("DELETE /activity/{id}", s.deleteActivityHandler)

		// vendors
		r.HandleFunc("GET /vendors", s.listVendorsHandler)
		r.HandleFunc("POST /vendors", s.createVendorHandler)
		r.HandleFunc("GET /vendors/{id}", s.getVendorHandler)
		r.HandleFunc("POST /vendors/{id}/crawl", s.crawlVendorHandler)

		// runtime settings
		r.HandleFunc("PUT /config/min-confidence", s.minConfidenceHandler)
	})

	// RSS routes
	s.router.HandleFunc("GET /rss", s.rssHandler)
	s.router.HandleFunc("GET /rss/{vendorID}", s.rssHandler)
	s.router.HandleFunc("GET /opml", s.opmlHandler)

	if s.metrics != nil {
		s.router.Handle("GET /metrics", s.metrics.Handler())
	}
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
