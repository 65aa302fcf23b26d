// Package content pulls readable text out of social post pages. Scraped grids often carry
// only a link and a thumbnail, the post page itself has the caption with schedule details.
package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/markusmobius/go-trafilatura"
)

// ErrNoContent returned when a page has neither main text nor a description
var ErrNoContent = errors.New("no content")

// PageExtractor extracts post text from a page using trafilatura, falling back to page metadata
type PageExtractor struct {
	client    *http.Client
	userAgent string
	maxLength int
}

// PageOptions for PageExtractor
type PageOptions struct {
	Timeout   time.Duration
	UserAgent string
	MaxLength int // max runes of returned text, 0 means no limit
}

// NewPageExtractor makes extractor with defaults for zero options
func NewPageExtractor(opts PageOptions) *PageExtractor {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0 (compatible; Truckscope/1.0)"
	}
	return &PageExtractor{client: &http.Client{Timeout: opts.Timeout}, userAgent: opts.UserAgent, maxLength: opts.MaxLength}
}

// Extract retrieves the page and returns its main text. Social pages usually keep the caption
// in og:description, it's used when trafilatura finds no main content.
func (e *PageExtractor) Extract(ctx context.Context, urlStr string) (string, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", fmt.Errorf("invalid URL: %s", urlStr)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	AddBrowserHeaders(req)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch URL %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, urlStr)
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		IncludeImages:   false,
		IncludeLinks:    false,
		Deduplicate:     true,
		OriginalURL:     parsedURL,
	}
	result, err := trafilatura.Extract(io.LimitReader(resp.Body, 5*1024*1024), opts)
	if err != nil {
		return "", fmt.Errorf("extract content from %s: %w", urlStr, err)
	}
	if result == nil {
		return "", fmt.Errorf("%w in %s", ErrNoContent, urlStr)
	}

	text := strings.TrimSpace(result.ContentText)
	if text == "" {
		text = strings.TrimSpace(result.Metadata.Description)
	}
	if text == "" {
		return "", fmt.Errorf("%w in %s", ErrNoContent, urlStr)
	}
	return e.truncate(text), nil
}

func (e *PageExtractor) truncate(text string) string {
	if e.maxLength <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= e.maxLength {
		return text
	}
	return strings.TrimSpace(string(runes[:e.maxLength]))
}
