package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/truckscope/pkg/metrics"
	"github.com/umputun/truckscope/server/mocks"
)

var testNow = time.Date(2025, 9, 3, 10, 0, 0, 0, time.UTC)

func testConfig(listen string) *mocks.ConfigProviderMock {
	return &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return listen, 30 * time.Second },
		GetFeedConfigFunc:   func() (string, int) { return "https://trucks.example.com", 14 },
	}
}

// testServer creates a server with fixed clock, nil dependencies replaced by empty mocks
func testServer(t *testing.T, database Database, sched Scheduler, trk Tracker) *Server {
	t.Helper()
	if database == nil {
		database = &mocks.DatabaseMock{}
	}
	if sched == nil {
		sched = &mocks.SchedulerMock{}
	}
	if trk == nil {
		trk = &mocks.TrackerMock{MinConfidenceFunc: func() float64 { return 0.5 }}
	}
	srv := New(Params{Config: testConfig(":8080"), Database: database, Scheduler: sched, Tracker: trk, Version: "test"})
	srv.now = func() time.Time { return testNow }
	return srv
}

func TestServer_New(t *testing.T) {
	srv := New(Params{Config: testConfig(":8080"), Database: &mocks.DatabaseMock{}, Scheduler: &mocks.SchedulerMock{},
		Tracker: &mocks.TrackerMock{}, Version: "1.0.0"})
	assert.NotNil(t, srv)
	assert.Equal(t, "1.0.0", srv.version)
	assert.False(t, srv.debug)
	assert.Nil(t, srv.metrics)
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	srv := New(Params{Config: testConfig(fmt.Sprintf("127.0.0.1:%d", port)), Database: &mocks.DatabaseMock{},
		Scheduler: &mocks.SchedulerMock{}, Tracker: &mocks.TrackerMock{}, Version: "1.0.0", Debug: true})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	// wait for server to start
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
		return err == nil
	}, time.Second, 20*time.Millisecond)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))

	// shutdown server
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("server didn't stop")
	}
}

func TestServer_AppInfo(t *testing.T) {
	srv := testServer(t, nil, nil, nil)

	req := httptest.NewRequest("GET", "/api/v1/status", http.NoBody)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "truckscope", w.Header().Get("App-Name"))
	assert.Equal(t, "test", w.Header().Get("App-Version"))
}

func TestServer_Metrics(t *testing.T) {
	t.Run("metrics enabled", func(t *testing.T) {
		srv := New(Params{Config: testConfig(":8080"), Database: &mocks.DatabaseMock{}, Scheduler: &mocks.SchedulerMock{},
			Tracker: &mocks.TrackerMock{MinConfidenceFunc: func() float64 { return 0.5 }}, Metrics: metrics.New("1.2.3")})

		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/status", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `truckscope_http_requests_total{method="GET",status="200"}`)
		assert.Contains(t, body, `truckscope_build_info{version="1.2.3"} 1`)
	})

	t.Run("metrics disabled", func(t *testing.T) {
		srv := testServer(t, nil, nil, nil)
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", http.NoBody))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
