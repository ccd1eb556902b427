package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `[{"title":"Asterix","year":1967,"duration":68,"poster":"/static/asterix.jpg","videoUrl":"asterix.mp4"}]`

func newTestRouter(t *testing.T, rateLimit int) (http.Handler, string) {
	t.Helper()
	dir := t.TempDir()
	media := filepath.Join(dir, "media")
	require.NoError(t, os.MkdirAll(filepath.Join(media, "sagas"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(media, "asterix.mp4"), []byte("0123456789"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(media, "sagas", "obelix y compañía.mp4"), []byte("abc"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "secret.txt"), []byte("nope"), 0o644))

	catalog := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(catalog, []byte(testCatalog), 0o644))

	h := NewRouter(Options{
		CatalogFile: catalog,
		MediaRoot:   media,
		RateLimit:   rateLimit,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return h, dir
}

func do(h http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestCatalog_ServesFile(t *testing.T) {
	h, _ := newTestRouter(t, 0)

	rr := do(h, http.MethodGet, "/video", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json; charset=UTF-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, testCatalog, rr.Body.String())
}

func TestCatalog_MissingFile(t *testing.T) {
	h := NewRouter(Options{CatalogFile: filepath.Join(t.TempDir(), "missing.json"), Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})

	rr := do(h, http.MethodGet, "/video", nil)

	require.Equal(t, http.StatusNotFound, rr.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}

func TestCatalog_MethodNotAllowed(t *testing.T) {
	h, _ := newTestRouter(t, 0)

	rr := do(h, http.MethodPost, "/video", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestStream_FullFile(t *testing.T) {
	h, _ := newTestRouter(t, 0)

	rr := do(h, http.MethodGet, "/stream?path=asterix.mp4", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "video/mp4", rr.Header().Get("Content-Type"))
	assert.Equal(t, "bytes", rr.Header().Get("Accept-Ranges"))
	assert.Equal(t, "0123456789", rr.Body.String())
}

func TestStream_Range(t *testing.T) {
	h, _ := newTestRouter(t, 0)

	rr := do(h, http.MethodGet, "/stream?path=asterix.mp4", http.Header{"Range": {"bytes=2-5"}})

	require.Equal(t, http.StatusPartialContent, rr.Code)
	assert.Equal(t, "2345", rr.Body.String())
	assert.Equal(t, "bytes 2-5/10", rr.Header().Get("Content-Range"))
}

func TestStream_EncodedToken(t *testing.T) {
	h, _ := newTestRouter(t, 0)

	rr := do(h, http.MethodGet, "/stream?path=sagas%2Fobelix%20y%20compa%C3%B1%C3%ADa.mp4", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "abc", rr.Body.String())
}

func TestStream_Errors(t *testing.T) {
	h, _ := newTestRouter(t, 0)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"missing parameter", "/stream", http.StatusBadRequest},
		{"unknown video", "/stream?path=nope.mp4", http.StatusNotFound},
		{"escapes media root", "/stream?path=..%2Fsecret.txt", http.StatusNotFound},
		{"absolute path", "/stream?path=%2Fetc%2Fpasswd", http.StatusNotFound},
		{"directory", "/stream?path=sagas", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(h, http.MethodGet, tt.target, nil)
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestHealth(t *testing.T) {
	h, _ := newTestRouter(t, 0)

	rr := do(h, http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestRateLimit(t *testing.T) {
	h, _ := newTestRouter(t, 2)

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(h, http.MethodGet, "/healthz", nil).Code)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "video/mp4", contentType("A.MP4"))
	assert.Equal(t, "video/webm", contentType("a.webm"))
	assert.Equal(t, "application/octet-stream", contentType("a.unknownext"))
}
