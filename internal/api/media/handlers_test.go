package media

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codr1/Peladeiro/internal/apiclient"
	"github.com/codr1/Peladeiro/internal/testutil"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func setupMedia(t *testing.T) *testutil.FakeAPI {
	t.Helper()
	fake := testutil.NewFakeAPI(t)

	prevFetcher, prevPrefix := fetcher, prefix
	t.Cleanup(func() {
		fetcher, prefix = prevFetcher, prevPrefix
	})
	InitHandlers(apiclient.New(apiclient.Config{BaseURL: fake.URL()}), "/static/")
	return fake
}

func serveMedia(target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return testutil.Serve("GET /media/{path...}", HandleMedia, req)
}

func TestMediaProxiesBytes(t *testing.T) {
	fake := setupMedia(t)
	fake.Handle(http.MethodGet, "/static/uploads/escudo.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngHeader)
	})

	recorder := serveMedia("/media/uploads/escudo.png")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))
	assert.Equal(t, defaultCacheControl, recorder.Header().Get("Cache-Control"))
	assert.Equal(t, pngHeader, recorder.Body.Bytes())
}

func TestMediaMissingFileIs404(t *testing.T) {
	fake := setupMedia(t)
	fake.Handle(http.MethodGet, "/static/nada.png", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	recorder := serveMedia("/media/nada.png")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestMediaUpstreamFailureIs502(t *testing.T) {
	fake := setupMedia(t)
	fake.Handle(http.MethodGet, "/static/foto.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	recorder := serveMedia("/media/foto.jpg")

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
}

func TestCleanPath(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"uploads/a.png", "uploads/a.png", true},
		{"uploads//a.png", "uploads/a.png", true},
		{"../secret", "", false},
		{"uploads/../../x", "", false},
		{`uploads\a.png`, "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := cleanPath(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}
