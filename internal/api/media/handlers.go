// Package media proxies images from the league API's static area so pages
// can load them from the same origin.
package media

import (
	"context"
	"net/http"
	"path"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Peladeiro/internal/apiclient"
)

const defaultCacheControl = "public, max-age=3600"

// Fetcher is the part of *apiclient.Client the proxy needs.
type Fetcher interface {
	FetchMedia(ctx context.Context, path string) (apiclient.Media, error)
}

var (
	fetcher Fetcher
	prefix  = "/static"
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(f Fetcher, mediaPrefix string) {
	fetcher = f
	if mediaPrefix != "" {
		prefix = "/" + strings.Trim(mediaPrefix, "/")
	}
}

// GET /media/{path...}
func HandleMedia(w http.ResponseWriter, r *http.Request) {
	rel, ok := cleanPath(r.PathValue("path"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	media, err := fetcher.FetchMedia(r.Context(), prefix+"/"+rel)
	if err != nil {
		status := http.StatusBadGateway
		if apiclient.HasStatus(err, http.StatusNotFound) {
			status = http.StatusNotFound
		}
		log.Ctx(r.Context()).Warn().Err(err).Str("path", rel).Int("status", status).Msg("Media proxy failed")
		http.Error(w, http.StatusText(status), status)
		return
	}

	cacheControl := media.CacheControl
	if cacheControl == "" {
		cacheControl = defaultCacheControl
	}
	w.Header().Set("Content-Type", media.ContentType)
	w.Header().Set("Cache-Control", cacheControl)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(media.Body); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("Failed to write media response")
	}
}

// cleanPath rejects traversal and empty paths.
func cleanPath(raw string) (string, bool) {
	if raw == "" || strings.Contains(raw, "\\") {
		return "", false
	}
	for _, segment := range strings.Split(raw, "/") {
		if segment == ".." {
			return "", false
		}
	}
	cleaned := strings.TrimPrefix(path.Clean("/"+raw), "/")
	if cleaned == "" || cleaned == "." {
		return "", false
	}
	return cleaned, true
}
