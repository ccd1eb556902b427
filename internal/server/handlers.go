package server

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

// writeError writes a JSON error body
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// CatalogHandler serves the catalog file as-is. The file is read on every
// request so edits show up on the next load.
func CatalogHandler(catalogFile string, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := os.ReadFile(catalogFile)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("catalog file not found", "file", catalogFile)
			writeError(w, http.StatusNotFound, "catalog file not found")
			return
		}
		if err != nil {
			logger.Error("failed to read catalog", "file", catalogFile, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to read catalog")
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=UTF-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	})
}

// StreamHandler serves the media file named by the "path" query parameter.
// Tokens resolve inside mediaRoot; anything escaping it is rejected.
// Range requests are honoured.
func StreamHandler(mediaRoot string, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("path")
		if token == "" {
			http.Error(w, "missing 'path' parameter", http.StatusBadRequest)
			return
		}

		root, err := os.OpenRoot(mediaRoot)
		if err != nil {
			logger.Error("failed to open media root", "root", mediaRoot, "error", err)
			http.Error(w, "media root unavailable", http.StatusInternalServerError)
			return
		}
		defer root.Close()

		f, err := root.Open(token)
		if err != nil {
			logger.Warn("video not found", "path", token, "error", err)
			http.Error(w, "video not found: "+token, http.StatusNotFound)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			http.Error(w, "video not found: "+token, http.StatusNotFound)
			return
		}

		w.Header().Set("Accept-Ranges", "bytes")
		w.Header().Set("Content-Type", contentType(info.Name()))
		if r.Header.Get("Range") == "" {
			logger.Info("streaming video", "path", token, "size", humanize.Bytes(uint64(info.Size())))
		}
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	})
}

// mediaTypes covers containers missing from Go's builtin MIME table
var mediaTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".mp3":  "audio/mpeg",
}

// contentType picks the Content-Type for a media file name
func contentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := mediaTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}
