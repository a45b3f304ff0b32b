package tracker

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mmcdole/readtrack/internal/adapter"
	"github.com/mmcdole/readtrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second, adapter.NullLogger()), server
}

func TestListItems_Unscoped(t *testing.T) {
	var hits atomic.Int32
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/textual-items/", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"title":"Dune","author":"Herbert","isbn":"123","total_pages":412,"progress_percent":50,"status":"Reading"}]`))
	})

	items, err := client.ListItems(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int32(1), hits.Load())

	dune := items[0]
	assert.Equal(t, "Dune", dune.Title)
	assert.Equal(t, "Herbert", dune.Author)
	assert.Equal(t, "123", dune.ISBN)
	assert.Equal(t, 412, dune.TotalPages)
	assert.Equal(t, 50.0, dune.ProgressPercent.Float())
	assert.Equal(t, domain.StatusReading, dune.Status)
}

func TestListItems_Scoped(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/textual-items/", r.URL.Path)
		assert.Equal(t, "project=5", r.URL.RawQuery)
		_, _ = w.Write([]byte(`[{"title":"Emma","author":"Austen","isbn":"9","project":5,"total_pages":300,"progress_percent":"12.5","status":"In Progress"}]`))
	})

	items, err := client.ListItems(context.Background(), "5")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Project)
	assert.Equal(t, 12.5, items[0].ProgressPercent.Float())
}

func TestListItems_EscapesScope(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "a b&c", r.URL.Query().Get("project"))
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := client.ListItems(context.Background(), "a b&c")
	require.NoError(t, err)
}

func TestListItems_Empty(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	items, err := client.ListItems(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListItems_NonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusUnauthorized} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			client, _ := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
				// A valid-looking body must not matter
				_, _ = w.Write([]byte(`[]`))
			})

			items, err := client.ListItems(context.Background(), "")
			assert.Nil(t, items)
			assert.ErrorIs(t, err, domain.ErrUnexpectedStatus)
		})
	}
}

func TestListItems_MalformedBody(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"detail":"not a list"}`))
	})

	_, err := client.ListItems(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestListItems_NonFinitePercent(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"title":"Dune","total_pages":412,"progress_percent":"NaN","status":"Reading"}]`))
	})

	_, err := client.ListItems(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestListItems_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, time.Second, adapter.NullLogger())
	_, err := client.ListItems(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestListItems_ContextCanceled(t *testing.T) {
	release := make(chan struct{})
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListItems(ctx, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestListItems_ForwardsRequestID(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-42", r.Header.Get("X-Request-ID"))
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := client.ListItems(WithRequestID(context.Background(), "req-42"), "")
	require.NoError(t, err)
}

func TestListProjects(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/reading-projects/", r.URL.Path)
		assert.Equal(t, "Test User", r.URL.Query().Get("reader"))
		_, _ = w.Write([]byte(`[
			{"id":1,"name":"Classics","created_at":"2024-03-01T10:00:00.123456Z","items":[{"title":"Emma","author":"Austen","isbn":"9","project":1,"total_pages":300,"progress_percent":"0.0","status":"Not Started"}]},
			{"name":"Default Reading Project","created_at":"2024-03-02T10:00:00Z"}
		]`))
	})

	projects, err := client.ListProjects(context.Background(), "Test User")
	require.NoError(t, err)
	require.Len(t, projects, 2)

	assert.Equal(t, "Classics", projects[0].Name)
	assert.Equal(t, "1", projects[0].Scope())
	require.Len(t, projects[0].Items, 1)
	assert.Equal(t, domain.StatusNotStarted, projects[0].Items[0].Status)
	assert.Equal(t, 2024, projects[0].CreatedAt.Year())

	assert.Equal(t, "", projects[1].Scope())
}

func TestListProjects_IDFromItems(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"name":"Classics","created_at":"2024-03-01T10:00:00Z","items":[
				{"title":"Dune","author":"Frank Herbert","isbn":"123","total_pages":412,"progress_percent":"0.0","status":"Not Started"},
				{"title":"Emma","author":"Austen","isbn":"9","project":5,"total_pages":300,"progress_percent":"0.0","status":"Not Started"}
			]}
		]`))
	})

	projects, err := client.ListProjects(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, 5, projects[0].ID)
	assert.Equal(t, "Classics", projects[0].Name)
	assert.Equal(t, "5", projects[0].Scope())
}

func TestNewSource(t *testing.T) {
	cfg := adapter.DefaultConfig()
	client, err := NewSource(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, adapter.DefaultBaseURL, client.BaseURL())

	cfg.Server.URL = "not a url"
	_, err = NewSource(cfg, nil)
	assert.Error(t, err)

	_, err = NewSource(nil, nil)
	assert.Error(t, err)
}
