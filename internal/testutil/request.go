package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/codr1/Peladeiro/internal/apiclient"
	"github.com/codr1/Peladeiro/internal/session"
)

const (
	AccessToken  = "test-access"
	RefreshToken = "test-refresh"
)

// NewRequest builds a request carrying a logged-in session. A non-nil form
// is sent urlencoded.
func NewRequest(t *testing.T, method, target string, form url.Values) (*http.Request, *session.Session) {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	store, err := session.NewStore(session.Options{Secret: "test-secret"})
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}
	sess := store.Load(req)
	sess.SetTokens(AccessToken, RefreshToken)

	ctx := session.NewContext(req.Context(), sess)
	ctx = apiclient.ContextWithToken(ctx, AccessToken)
	return req.WithContext(ctx), sess
}

// Serve routes req through a mux holding only pattern, so path wildcards
// are populated the way the server does it.
func Serve(pattern string, handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, handler)
	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, req)
	return recorder
}

// Flashes drains the session's flash messages.
func Flashes(sess *session.Session) []string {
	var out []string
	for _, flash := range sess.PopFlashes() {
		out = append(out, flash.Category+": "+flash.Message)
	}
	return out
}
