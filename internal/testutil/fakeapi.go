// Package testutil provides a scriptable stand-in for the league API.
package testutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/tidwall/gjson"
)

// Call is one request received by the fake API.
type Call struct {
	Method        string
	Path          string
	Query         url.Values
	Authorization string
	ContentType   string
	Body          []byte
}

// JSON parses the recorded body.
func (c Call) JSON() gjson.Result {
	return gjson.ParseBytes(c.Body)
}

type FakeAPI struct {
	s      *httptest.Server
	router chi.Router

	mu    sync.Mutex
	calls []Call
}

// NewFakeAPI starts a fake league API that is closed with the test. Routes
// not registered answer 404 with an "erro" payload.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	f := &FakeAPI{}
	r := chi.NewRouter()
	r.Use(f.record)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"erro":"Recurso não encontrado"}`)
	})
	f.router = r
	f.s = httptest.NewServer(r)
	t.Cleanup(f.s.Close)

	return f
}

func (f *FakeAPI) URL() string {
	return f.s.URL
}

// JSON answers method+pattern with a fixed status and body. Patterns use chi
// syntax, e.g. /api/peladas/{id}/perfil.
func (f *FakeAPI) JSON(method, pattern string, status int, body string) {
	f.router.Method(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, body)
	}))
}

// Handle registers a custom handler, e.g. to page through results.
func (f *FakeAPI) Handle(method, pattern string, h http.HandlerFunc) {
	f.router.Method(method, pattern, h)
}

func (f *FakeAPI) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsTo filters the recorded calls by method and exact path.
func (f *FakeAPI) CallsTo(method, path string) []Call {
	var out []Call
	for _, call := range f.Calls() {
		if call.Method == method && call.Path == path {
			out = append(out, call)
		}
	}
	return out
}

func (f *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()

		f.mu.Lock()
		f.calls = append(f.calls, Call{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.Query(),
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			Body:          body,
		})
		f.mu.Unlock()

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

// URLParam exposes chi's path parameter lookup to custom handlers.
func URLParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
