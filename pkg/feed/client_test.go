package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Fetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "CailianpressWeb", r.URL.Query().Get("app"))
		assert.Equal(t, "web", r.URL.Query().Get("os"))
		assert.Equal(t, "7.2.2", r.URL.Query().Get("sv"))
		assert.Equal(t, "2", r.URL.Query().Get("rn"))
		assert.NotEmpty(t, r.URL.Query().Get("last_time"))

		// signature must match the canonical query
		q := BuildQuery(map[string]string{
			"app":       r.URL.Query().Get("app"),
			"last_time": r.URL.Query().Get("last_time"),
			"os":        r.URL.Query().Get("os"),
			"rn":        r.URL.Query().Get("rn"),
			"sv":        r.URL.Query().Get("sv"),
		})
		assert.Equal(t, Sign(q), r.URL.Query().Get("sign"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"errno": 0,
			"data": {
				"roll_data": [
					{
						"id": 12345,
						"title": "Test News",
						"content": "Test content",
						"ctime": 1704067200,
						"stocks": [{"name": "贵州茅台"}, "五粮液"],
						"subjects": [{"name": "白酒"}]
					}
				]
			}
		}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "CailianpressWeb", "web", "7.2.2", 5*time.Second)
	records, err := client.Fetch(context.Background(), 1234567890, 2)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "12345", string(rec.ID))
	assert.Equal(t, "Test News", rec.Title)
	assert.Equal(t, "Test content", rec.Content)
	assert.Equal(t, int64(1704067200), rec.CTime)
	require.Len(t, rec.Stocks, 2)
	assert.Equal(t, "贵州茅台", rec.Stocks[0].Name)
	assert.Equal(t, "五粮液", rec.Stocks[1].Name)
	require.Len(t, rec.Subjects, 1)
	assert.Equal(t, "白酒", rec.Subjects[0].Name)
}

func TestClient_FetchStringID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"errno":0,"data":{"roll_data":[{"id":"abc-1","ctime":1}]}}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "app", "web", "1", 5*time.Second)
	records, err := client.Fetch(context.Background(), 0, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "abc-1", string(records[0].ID))
}

func TestClient_FetchAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"errno": 1001, "errmsg": "rate limited"}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "app", "web", "1", 5*time.Second)
	_, err := client.Fetch(context.Background(), 0, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1001")
}

func TestClient_FetchBadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "app", "web", "1", 5*time.Second)
	_, err := client.Fetch(context.Background(), 0, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_FetchMalformedJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "app", "web", "1", 5*time.Second)
	_, err := client.Fetch(context.Background(), 0, 1)
	require.Error(t, err)
}

func TestClient_FetchMissingPayload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"errno": 0, "data": {}}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "app", "web", "1", 5*time.Second)
	_, err := client.Fetch(context.Background(), 0, 1)
	require.Error(t, err)
}

func TestClient_UserAgentRotation(t *testing.T) {
	agents := make(map[string]struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agents[r.Header.Get("User-Agent")] = struct{}{}
		_, _ = w.Write([]byte(`{"errno":0,"data":{"roll_data":[]}}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "app", "web", "1", 5*time.Second)
	for i := 0; i < 50; i++ {
		_, err := client.Fetch(context.Background(), 0, 1)
		require.NoError(t, err)
	}
	assert.Greater(t, len(agents), 1, "expected more than one distinct user-agent across calls")
}

func TestClient_CleanText(t *testing.T) {
	client := NewClient("http://unused", "app", "web", "1", time.Second)
	assert.Equal(t, "央行降息", client.CleanText("<b>央行降息</b>"))
	assert.Equal(t, "A & B", client.CleanText("A &amp; B"))
	assert.Equal(t, "plain", client.CleanText("plain"))
}
