// Package config loads yaml configuration with env expansion, defaults and validation
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/umputun/truckscope/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database    DatabaseConfig    `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Crawler     CrawlerConfig     `yaml:"crawler" json:"crawler" jsonschema:"description=Crawler and reconciliation settings"`
	Schedule    ScheduleConfig    `yaml:"schedule" json:"schedule" jsonschema:"description=Periodic re-crawl configuration"`
	Extraction  ExtractionConfig  `yaml:"extraction" json:"extraction" jsonschema:"description=Post page text enrichment"`
	Credentials CredentialsConfig `yaml:"credentials" json:"credentials" jsonschema:"description=Platform credentials, all optional"`
	Vendors     []VendorConfig    `yaml:"vendors" json:"vendors" jsonschema:"description=Tracked vendors seeded on start"`
}

// ServerConfig holds http server settings
type ServerConfig struct {
	Listen   string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	BaseURL  string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for RSS feed links"`
	FeedDays int           `yaml:"feed_days" json:"feed_days" jsonschema:"default=14,minimum=1,description=Days ahead included in schedule RSS feeds"`
}

// DatabaseConfig holds sqlite settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:truckscope.db?cache=shared&mode=rwc&_txlock=immediate,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// CrawlerConfig holds fetch and reconciliation settings
type CrawlerConfig struct {
	MinConfidence float64       `yaml:"min_confidence" json:"min_confidence" jsonschema:"default=0.5,minimum=0,maximum=1,description=Minimal confidence to accept a schedule"`
	MaxPosts      int           `yaml:"max_posts" json:"max_posts" jsonschema:"default=50,minimum=1,description=Maximum posts per platform per crawl"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout" json:"fetch_timeout" jsonschema:"default=60s,description=Deadline of a single platform fetch"`
	VendorDelay   time.Duration `yaml:"vendor_delay" json:"vendor_delay" jsonschema:"default=1s,description=Pause between vendors in batch crawls"`
	Lookback      time.Duration `yaml:"lookback" json:"lookback" jsonschema:"default=168h,description=Default search window before now"`
	Lookahead     time.Duration `yaml:"lookahead" json:"lookahead" jsonschema:"default=336h,description=Default search window after now"`
	Platforms     []string      `yaml:"platforms" json:"platforms" jsonschema:"description=Platforms to crawl, empty means all"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for platform requests"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP request timeout"`
	Retries       int           `yaml:"retries" json:"retries" jsonschema:"default=3,minimum=1,description=Attempts for transient HTTP failures"`
}

// ScheduleConfig holds periodic re-crawl settings
type ScheduleConfig struct {
	Enabled         bool          `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Re-crawl tracked vendors periodically"`
	UpdateInterval  time.Duration `yaml:"update_interval" json:"update_interval" jsonschema:"default=6h,description=Re-crawl interval"`
	CleanupAge      time.Duration `yaml:"cleanup_age" json:"cleanup_age" jsonschema:"default=720h,description=Age of past schedules and activity entries to remove"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" json:"cleanup_interval" jsonschema:"default=24h,description=How often to run cleanup"`
}

// ExtractionConfig holds post page enrichment settings
type ExtractionConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Fetch post pages to fill posts without text"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Extraction timeout per page"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Mozilla/5.0 (compatible; Truckscope/1.0),description=User agent for page requests"`
	MaxLength int           `yaml:"max_length" json:"max_length" jsonschema:"default=2000,minimum=0,description=Maximum extracted text length, 0 means no limit"`
}

// CredentialsConfig holds optional platform credentials, a platform without them is scraped
type CredentialsConfig struct {
	Twitter struct {
		BearerToken string `yaml:"bearer_token" json:"bearer_token" jsonschema:"description=Twitter API v2 bearer token"`
	} `yaml:"twitter" json:"twitter"`
	Instagram struct {
		AccessToken string `yaml:"access_token" json:"access_token" jsonschema:"description=Instagram graph API access token"`
	} `yaml:"instagram" json:"instagram"`
	Reddit struct {
		ClientID     string `yaml:"client_id" json:"client_id" jsonschema:"description=Reddit app client id"`
		ClientSecret string `yaml:"client_secret" json:"client_secret" jsonschema:"description=Reddit app client secret"`
		UserAgent    string `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent registered with the Reddit app"`
	} `yaml:"reddit" json:"reddit"`
	YouTube struct {
		APIKey string `yaml:"api_key" json:"api_key" jsonschema:"description=YouTube data API v3 key"`
	} `yaml:"youtube" json:"youtube"`
}

// VendorConfig describes a tracked vendor
type VendorConfig struct {
	ID           string   `yaml:"id" json:"id" jsonschema:"required,description=Vendor id"`
	Name         string   `yaml:"name" json:"name" jsonschema:"required,description=Business name"`
	Type         string   `yaml:"type" json:"type,omitempty" jsonschema:"description=Business type, e.g. food truck"`
	Address      string   `yaml:"address" json:"address,omitempty" jsonschema:"description=Home address or area"`
	SocialHandle string   `yaml:"social_handle" json:"social_handle,omitempty" jsonschema:"description=Account handle, overrides usernames"`
	SearchTerms  []string `yaml:"search_terms" json:"search_terms,omitempty" jsonschema:"description=Extra search terms"`
	Hashtags     []string `yaml:"hashtags" json:"hashtags,omitempty" jsonschema:"description=Extra hashtags without #"`
	Platforms    []string `yaml:"platforms" json:"platforms,omitempty" jsonschema:"description=Platforms for this vendor, empty means crawler platforms"`
	Enabled      *bool    `yaml:"enabled" json:"enabled,omitempty" jsonschema:"default=true,description=Include in periodic re-crawl"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := Config{Schedule: ScheduleConfig{Enabled: true}}
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:8080"
	}
	if c.Server.FeedDays == 0 {
		c.Server.FeedDays = 14
	}

	// database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:truckscope.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// crawler, zero min_confidence means default
	if c.Crawler.MinConfidence == 0 {
		c.Crawler.MinConfidence = 0.5
	}
	if c.Crawler.MaxPosts == 0 {
		c.Crawler.MaxPosts = 50
	}
	if c.Crawler.FetchTimeout == 0 {
		c.Crawler.FetchTimeout = 60 * time.Second
	}
	if c.Crawler.VendorDelay == 0 {
		c.Crawler.VendorDelay = time.Second
	}
	if c.Crawler.Lookback == 0 {
		c.Crawler.Lookback = 7 * 24 * time.Hour
	}
	if c.Crawler.Lookahead == 0 {
		c.Crawler.Lookahead = 14 * 24 * time.Hour
	}
	if c.Crawler.Timeout == 0 {
		c.Crawler.Timeout = 30 * time.Second
	}
	if c.Crawler.Retries == 0 {
		c.Crawler.Retries = 3
	}

	// schedule
	if c.Schedule.UpdateInterval == 0 {
		c.Schedule.UpdateInterval = 6 * time.Hour
	}
	if c.Schedule.CleanupAge == 0 {
		c.Schedule.CleanupAge = 30 * 24 * time.Hour
	}
	if c.Schedule.CleanupInterval == 0 {
		c.Schedule.CleanupInterval = 24 * time.Hour
	}

	// extraction
	if c.Extraction.Timeout == 0 {
		c.Extraction.Timeout = 15 * time.Second
	}
	if c.Extraction.UserAgent == "" {
		c.Extraction.UserAgent = "Mozilla/5.0 (compatible; Truckscope/1.0)"
	}
	if c.Extraction.MaxLength == 0 {
		c.Extraction.MaxLength = 2000
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Server.FeedDays < 1 {
		return fmt.Errorf("server.feed_days must be at least 1")
	}

	if cfg.Crawler.MinConfidence < 0 || cfg.Crawler.MinConfidence > 1 {
		return fmt.Errorf("crawler.min_confidence %v: %w", cfg.Crawler.MinConfidence, domain.ErrInvalidConfidence)
	}
	if cfg.Crawler.MaxPosts < 1 {
		return fmt.Errorf("crawler.max_posts must be at least 1")
	}
	if cfg.Crawler.FetchTimeout < time.Second {
		return fmt.Errorf("crawler.fetch_timeout must be at least 1 second")
	}
	if cfg.Crawler.Timeout < time.Second {
		return fmt.Errorf("crawler.timeout must be at least 1 second")
	}
	if cfg.Crawler.Retries < 1 {
		return fmt.Errorf("crawler.retries must be at least 1")
	}
	if cfg.Crawler.VendorDelay < 0 || cfg.Crawler.Lookback < 0 || cfg.Crawler.Lookahead < 0 {
		return fmt.Errorf("crawler durations must be non-negative")
	}
	if _, err := parsePlatforms(cfg.Crawler.Platforms); err != nil {
		return fmt.Errorf("crawler.platforms: %w", err)
	}

	if cfg.Schedule.Enabled && cfg.Schedule.UpdateInterval < time.Minute {
		return fmt.Errorf("schedule.update_interval must be at least 1 minute")
	}

	if cfg.Extraction.Enabled && cfg.Extraction.Timeout < time.Second {
		return fmt.Errorf("extraction timeout must be at least 1 second")
	}
	if cfg.Extraction.MaxLength < 0 {
		return fmt.Errorf("extraction max_length must be non-negative")
	}

	seen := map[string]bool{}
	for i, v := range cfg.Vendors {
		if v.ID == "" || v.Name == "" {
			return fmt.Errorf("vendors[%d]: id and name are required", i)
		}
		if seen[v.ID] {
			return fmt.Errorf("vendors[%d]: duplicate id %q", i, v.ID)
		}
		seen[v.ID] = true
		if _, err := parsePlatforms(v.Platforms); err != nil {
			return fmt.Errorf("vendors[%d].platforms: %w", i, err)
		}
	}
	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetFeedConfig returns base url and the number of days ahead in schedule feeds
func (c *Config) GetFeedConfig() (baseURL string, days int) {
	return c.Server.BaseURL, c.Server.FeedDays
}

// CrawlerPlatforms returns configured platforms, empty means all
func (c *Config) CrawlerPlatforms() []domain.Platform {
	res, _ := parsePlatforms(c.Crawler.Platforms) // validated on load
	return res
}

// TrackedVendors converts vendor seeds to domain vendors
func (c *Config) TrackedVendors() []domain.Vendor {
	res := make([]domain.Vendor, 0, len(c.Vendors))
	for _, v := range c.Vendors {
		platforms, _ := parsePlatforms(v.Platforms) // validated on load
		res = append(res, domain.Vendor{
			ID:           v.ID,
			Name:         v.Name,
			Type:         v.Type,
			Address:      v.Address,
			SocialHandle: v.SocialHandle,
			SearchTerms:  v.SearchTerms,
			Hashtags:     v.Hashtags,
			Platforms:    platforms,
			Enabled:      v.Enabled == nil || *v.Enabled,
		})
	}
	return res
}

// Secrets returns non-empty credential values, used to mask them in logs
func (c *Config) Secrets() []string {
	var res []string
	for _, s := range []string{c.Credentials.Twitter.BearerToken, c.Credentials.Instagram.AccessToken,
		c.Credentials.Reddit.ClientSecret, c.Credentials.YouTube.APIKey} {
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}

func parsePlatforms(names []string) ([]domain.Platform, error) {
	var res []domain.Platform
	for _, n := range names {
		p, err := domain.ParsePlatform(n)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, nil
}
