package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *Client {
	return NewClient(ClientOptions{Timeout: 5 * time.Second, Retries: 3, RetryDelay: time.Millisecond})
}

func TestClient_RetriesTransient(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`ok`))
	}))
	defer ts.Close()

	resp, err := testClient().get(context.Background(), ts.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(resp.body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_PermanentError(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	_, err := testClient().get(context.Background(), ts.URL+"/path?key=secret", nil)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.NotContains(t, err.Error(), "secret", "query is redacted")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "4xx is not retried")
}

func TestClient_RetriesExhausted(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	_, err := testClient().get(context.Background(), ts.URL, nil)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusTooManyRequests))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_Headers(t *testing.T) {
	var got http.Header
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	defer ts.Close()
	c := NewClient(ClientOptions{UserAgent: "truck-agent"})

	_, err := c.get(context.Background(), ts.URL, map[string]string{"Authorization": "Bearer tkn"})
	require.NoError(t, err)
	assert.Equal(t, "truck-agent", got.Get("User-Agent"))
	assert.Equal(t, "Bearer tkn", got.Get("Authorization"))
	assert.Empty(t, got.Get("Sec-Fetch-Mode"), "api calls have no browser headers")

	_, err = c.page(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "navigate", got.Get("Sec-Fetch-Mode"))
}

func TestClient_FinalURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusFound)
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("login")) })
	ts := httptest.NewServer(mux)
	defer ts.Close()

	resp, err := testClient().page(context.Background(), ts.URL+"/search")
	require.NoError(t, err)
	assert.Equal(t, "/login", resp.url.Path)
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "https://x.com/search", joinURL("https://x.com/", "/search"))
	assert.Equal(t, "https://x.com/user", joinURL("https://x.com", "user"))
}
