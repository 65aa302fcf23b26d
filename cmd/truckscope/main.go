package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/umputun/truckscope/pkg/config"
	"github.com/umputun/truckscope/pkg/content"
	"github.com/umputun/truckscope/pkg/db"
	"github.com/umputun/truckscope/pkg/metrics"
	"github.com/umputun/truckscope/pkg/repository"
	"github.com/umputun/truckscope/pkg/scheduler"
	"github.com/umputun/truckscope/pkg/service"
	"github.com/umputun/truckscope/pkg/source"
	"github.com/umputun/truckscope/pkg/tracker"
	"github.com/umputun/truckscope/server"
)

// Opts with all CLI options
type Opts struct {
	Config  string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	EnvFile string `long:"env-file" env:"ENV_FILE" default:".env" description:"env file with platform credentials"`
	Listen  string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	Once    bool   `long:"once" description:"crawl every tracked vendor once and exit"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	SetupLog(opts.Debug)
	log.Printf("[INFO] starting truckscope version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run loads configuration, wires all components and runs the server, or a single crawl with --once
func run(ctx context.Context, opts Opts) error {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return err
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	SetupLog(opts.Debug, cfg.Secrets()...) // credentials are known only now
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}

	repos, err := repository.NewRepositories(ctx, db.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	store := service.NewStore(repos)
	if err := store.SeedVendors(ctx, cfg.TrackedVendors()); err != nil {
		return fmt.Errorf("failed to seed vendors: %w", err)
	}

	minConfidence := cfg.Crawler.MinConfidence
	stored, found, err := store.MinConfidence(ctx)
	if err != nil {
		log.Printf("[WARN] failed to read stored min confidence, using %.2f: %v", minConfidence, err)
	}
	if found {
		log.Printf("[INFO] using stored min confidence %.2f instead of configured %.2f", stored, minConfidence)
		minConfidence = stored
	}

	collector := metrics.New(revision)
	trk, err := tracker.New(makeAggregator(cfg), tracker.Options{
		MinConfidence: minConfidence,
		MaxPosts:      cfg.Crawler.MaxPosts,
		Lookback:      cfg.Crawler.Lookback,
		Lookahead:     cfg.Crawler.Lookahead,
		VendorDelay:   cfg.Crawler.VendorDelay,
		Platforms:     cfg.CrawlerPlatforms(),
		Recorder:      collector,
	})
	if err != nil {
		return fmt.Errorf("failed to make tracker: %w", err)
	}

	params := scheduler.Params{Store: store, Crawler: trk, Gauge: collector, CleanupAge: cfg.Schedule.CleanupAge}
	if cfg.Schedule.Enabled {
		params.UpdateInterval = cfg.Schedule.UpdateInterval
		params.CleanupInterval = cfg.Schedule.CleanupInterval
	}
	sched := scheduler.NewScheduler(params)

	if opts.Once {
		rep, err := sched.CrawlAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to crawl vendors: %w", err)
		}
		for id, e := range rep.Errors {
			log.Printf("[WARN] vendor %s failed: %s", id, e)
		}
		log.Printf("[INFO] crawled %d vendors, %d schedules", rep.Vendors, rep.Schedules)
		return nil
	}

	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(server.Params{
		Config:    cfg,
		Database:  store,
		Scheduler: sched,
		Tracker:   trk,
		Metrics:   collector,
		Version:   revision,
		Debug:     opts.Debug,
	})
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// makeAggregator makes platform adapters with configured credentials, extraction enriches scraped posts
func makeAggregator(cfg *config.Config) *source.Aggregator {
	var enricher source.Enricher
	if cfg.Extraction.Enabled {
		enricher = content.NewPageExtractor(content.PageOptions{
			Timeout:   cfg.Extraction.Timeout,
			UserAgent: cfg.Extraction.UserAgent,
			MaxLength: cfg.Extraction.MaxLength,
		})
	}

	creds := source.Credentials{
		Twitter:   source.TwitterCredentials{BearerToken: cfg.Credentials.Twitter.BearerToken},
		Instagram: source.InstagramCredentials{AccessToken: cfg.Credentials.Instagram.AccessToken},
		Reddit: source.RedditCredentials{ClientID: cfg.Credentials.Reddit.ClientID,
			ClientSecret: cfg.Credentials.Reddit.ClientSecret, UserAgent: cfg.Credentials.Reddit.UserAgent},
		YouTube: source.YouTubeCredentials{APIKey: cfg.Credentials.YouTube.APIKey},
	}
	for name, ok := range map[string]bool{
		"twitter":   creds.Twitter.BearerToken != "",
		"instagram": creds.Instagram.AccessToken != "",
		"reddit":    creds.Reddit.ClientID != "" && creds.Reddit.ClientSecret != "",
		"youtube":   creds.YouTube.APIKey != "",
	} {
		if !ok {
			log.Printf("[DEBUG] no %s credentials, public pages will be scraped", name)
		}
	}

	return source.NewAggregator(source.Config{
		Credentials: creds,
		Client: source.ClientOptions{
			Timeout:   cfg.Crawler.Timeout,
			UserAgent: cfg.Crawler.UserAgent,
			Retries:   cfg.Crawler.Retries,
		},
		FetchTimeout: cfg.Crawler.FetchTimeout,
		Enricher:     enricher,
	})
}

// loadEnvFile loads credentials from env file, variables already set are kept. Missing file is fine.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	log.Printf("[DEBUG] loaded env file %s", path)
	return nil
}

// SetupLog configures lgr and redirects standard log to it, secrets are masked in the output
func SetupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
