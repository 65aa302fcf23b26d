package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"golang.org/x/net/publicsuffix"

	"github.com/umputun/truckscope/pkg/content"
)

const maxBodySize = 10 * 1024 * 1024

// DefaultUserAgent is sent by api requests unless configured otherwise
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

// ClientOptions for the shared http client
type ClientOptions struct {
	Timeout    time.Duration
	UserAgent  string
	Retries    int
	RetryDelay time.Duration
}

// Client is an http client shared by adapters, with retries on transient failures
// and a cookie jar for scrape sessions
type Client struct {
	http       *http.Client
	userAgent  string
	retries    int
	retryDelay time.Duration
}

// StatusError is returned for non-2xx responses. The url has no query, so api keys don't leak.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Code, e.URL)
}

// response is a fully read http response
type response struct {
	body []byte
	url  *url.URL // final url after redirects
}

// request describes a single http call
type request struct {
	method  string
	url     string
	body    string
	headers map[string]string
	browser bool // add browser-like headers for scrape paths
}

// NewClient makes a client with defaults for zero options
func NewClient(opts ClientOptions) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Retries <= 0 {
		opts.Retries = 3
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 100 * time.Millisecond
	}
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List}) // never fails
	return &Client{
		http: &http.Client{
			Timeout: opts.Timeout,
			Jar:     jar,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent:  opts.UserAgent,
		retries:    opts.Retries,
		retryDelay: opts.RetryDelay,
	}
}

// get is a shortcut for api GET requests
func (c *Client) get(ctx context.Context, u string, headers map[string]string) (response, error) {
	return c.do(ctx, request{method: http.MethodGet, url: u, headers: headers})
}

// page is a shortcut for scrape GET requests
func (c *Client) page(ctx context.Context, u string) (response, error) {
	return c.do(ctx, request{method: http.MethodGet, url: u, browser: true})
}

// do runs the request, retrying network errors, 429 and 5xx. Other 4xx responses fail immediately.
func (c *Client) do(ctx context.Context, r request) (response, error) {
	var res response
	var permanent error

	err := repeater.NewBackoff(c.retries, c.retryDelay, repeater.WithMaxDelay(2*time.Second)).Do(ctx, func() error {
		var body io.Reader = http.NoBody
		if r.body != "" {
			body = strings.NewReader(r.body)
		}
		req, err := http.NewRequestWithContext(ctx, r.method, r.url, body)
		if err != nil {
			permanent = fmt.Errorf("create request: %w", err)
			return nil
		}
		req.Header.Set("User-Agent", c.userAgent)
		if r.browser {
			content.AddBrowserHeaders(req)
		}
		for k, v := range r.headers {
			req.Header.Set(k, v)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("request %s: %w", redact(r.url), err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return &StatusError{Code: resp.StatusCode, URL: redact(r.url)}
		}
		if resp.StatusCode >= 400 {
			permanent = &StatusError{Code: resp.StatusCode, URL: redact(r.url)}
			return nil
		}
		res = response{body: data, url: resp.Request.URL}
		return nil
	})

	if err != nil {
		return response{}, err
	}
	if permanent != nil {
		return response{}, permanent
	}
	return res, nil
}

// IsStatus reports whether err is a StatusError with the given code
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// redact drops query and fragment from the url
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "invalid-url"
	}
	u.RawQuery, u.Fragment = "", ""
	return u.String()
}

// joinURL appends path to base, trimming duplicate slashes
func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
