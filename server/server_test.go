package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanchez0623/clswatch/pkg/feed"
	"github.com/sanchez0623/clswatch/pkg/monitor"
	"github.com/sanchez0623/clswatch/server/mocks"
)

func TestServer_StatusHandler(t *testing.T) {
	status := &mocks.StatusProviderMock{
		StatusFunc: func() monitor.Status {
			return monitor.Status{
				Uptime:   "5m0s",
				Feed:     feed.Stats{Fetches: 10, NewItems: 2, Duplicates: 7, Errors: 1},
				Analyzed: 2,
			}
		},
	}

	s := New(status, "localhost:0", 5*time.Second, "test-1.0", false)
	ts := httptest.NewServer(s.router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body struct {
		Status  string         `json:"status"`
		Version string         `json:"version"`
		Monitor monitor.Status `json:"monitor"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "test-1.0", body.Version)
	assert.Equal(t, int64(10), body.Monitor.Feed.Fetches)
	assert.Equal(t, int64(2), body.Monitor.Analyzed)
	assert.Equal(t, "5m0s", body.Monitor.Uptime)
	assert.Len(t, status.StatusCalls(), 1)
}

func TestServer_Ping(t *testing.T) {
	status := &mocks.StatusProviderMock{StatusFunc: func() monitor.Status { return monitor.Status{} }}
	s := New(status, "localhost:0", 5*time.Second, "test", false)
	ts := httptest.NewServer(s.router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_NotFound(t *testing.T) {
	status := &mocks.StatusProviderMock{StatusFunc: func() monitor.Status { return monitor.Status{} }}
	s := New(status, "localhost:0", 5*time.Second, "test", false)
	ts := httptest.NewServer(s.router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_RunAndShutdown(t *testing.T) {
	port := getFreePort(t)
	status := &mocks.StatusProviderMock{StatusFunc: func() monitor.Status { return monitor.Status{} }}
	s := New(status, fmt.Sprintf("localhost:%d", port), 5*time.Second, "test", true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	// wait for the server to come up
	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://localhost:%d/ping", port))
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRenderError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)

	RenderError(rec, req, errors.New("boom"), http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "boom", body["error"])
}

func getFreePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}
