package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mmcdole/videoclub/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serveBody(t *testing.T, status int, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, CatalogPath, r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", WithLogger(quietLogger()), WithHTTPClient(srv.Client()))
}

func TestFetchCatalog_NonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusServiceUnavailable, http.StatusUnauthorized} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			c := serveBody(t, status, `[{"title":"A"}]`)

			res := c.FetchCatalog(context.Background())

			require.Equal(t, domain.ResultFailed, res.Kind)
			require.NotNil(t, res.Err)
			assert.Equal(t, domain.FailureTransport, res.Err.Kind)
			assert.Equal(t, status, res.Err.Status)
			assert.Equal(t, strconv.Itoa(status), res.Err.Detail())
			assert.True(t, errors.Is(res.Err, domain.ErrUnexpectedStatus))
			assert.Empty(t, res.Entries)
		})
	}
}

func TestFetchCatalog_DetailIsStatusCode(t *testing.T) {
	c := serveBody(t, http.StatusNotFound, `{"error":"Archivo asterix.json no encontrado"}`)

	res := c.FetchCatalog(context.Background())

	require.Equal(t, domain.ResultFailed, res.Kind)
	assert.Equal(t, "404", res.Err.Detail())
}

func TestFetchCatalog_MalformedPayload(t *testing.T) {
	c := serveBody(t, http.StatusOK, `[{"title": "A",`)

	res := c.FetchCatalog(context.Background())

	require.Equal(t, domain.ResultFailed, res.Kind)
	assert.Equal(t, domain.FailurePayload, res.Err.Kind)
	assert.Zero(t, res.Err.Status)
	assert.True(t, errors.Is(res.Err, domain.ErrMalformedPayload))
	assert.NotEmpty(t, res.Err.Detail())
}

func TestFetchCatalog_EmptyShapes(t *testing.T) {
	cases := map[string]string{
		"empty array": `[]`,
		"object":      `{"title":"A"}`,
		"string":      `"movies"`,
		"number":      `42`,
		"null":        `null`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c := serveBody(t, http.StatusOK, body)

			res := c.FetchCatalog(context.Background())

			assert.Equal(t, domain.ResultEmpty, res.Kind)
			assert.Nil(t, res.Err)
			assert.Empty(t, res.Entries)
		})
	}
}

func TestFetchCatalog_LoadedPreservesOrder(t *testing.T) {
	c := serveBody(t, http.StatusOK, `[
		{"title":"A","year":2000,"duration":90,"poster":"/p/a.jpg","videoUrl":"a.mp4"},
		{"title":"B","year":2001,"duration":80,"poster":"/p/b.jpg","videoUrl":"b.mp4"},
		{"title":"C","year":2002,"duration":70,"poster":"/p/c.jpg","videoUrl":"c.mp4"}
	]`)

	res := c.FetchCatalog(context.Background())

	require.Equal(t, domain.ResultLoaded, res.Kind)
	require.Len(t, res.Entries, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{res.Entries[0].Title, res.Entries[1].Title, res.Entries[2].Title})
	assert.Equal(t, domain.MediaEntry{Title: "A", Year: 2000, Duration: 90, Poster: "/p/a.jpg", VideoURL: "a.mp4"}, res.Entries[0])
}

func TestFetchCatalog_MalformedEntriesPassThrough(t *testing.T) {
	c := serveBody(t, http.StatusOK, `[
		{"year":"dos mil","duration":-5,"videoUrl":"x.mp4"},
		7,
		{"title":"Ok","year":1999.0,"duration":100,"poster":"/p.jpg","videoUrl":"ok.mp4"}
	]`)

	res := c.FetchCatalog(context.Background())

	require.Equal(t, domain.ResultLoaded, res.Kind)
	require.Len(t, res.Entries, 3)

	first := res.Entries[0]
	assert.Equal(t, -5, first.Duration)
	assert.ElementsMatch(t, []string{"title", "year", "poster"}, first.Issues)

	assert.Equal(t, []string{"entry"}, res.Entries[1].Issues)

	last := res.Entries[2]
	assert.False(t, last.HasIssues())
	assert.Equal(t, 1999, last.Year)
}

func TestFetchCatalog_ServerOffline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, WithLogger(quietLogger()))
	res := c.FetchCatalog(context.Background())

	require.Equal(t, domain.ResultFailed, res.Kind)
	assert.Equal(t, domain.FailureTransport, res.Err.Kind)
	assert.Zero(t, res.Err.Status)
	assert.True(t, errors.Is(res.Err, domain.ErrServerOffline))
	c.httpClient.CloseIdleConnections()
}

func TestFetchCatalog_SingleRequest(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithLogger(quietLogger()), WithHTTPClient(srv.Client()))
	res := c.FetchCatalog(context.Background())

	assert.Equal(t, domain.ResultFailed, res.Kind)
	assert.Equal(t, 1, hits)
}
