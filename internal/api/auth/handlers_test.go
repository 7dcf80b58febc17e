package auth

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/codr1/Peladeiro/internal/apiclient"
	"github.com/codr1/Peladeiro/internal/ratelimit"
	"github.com/codr1/Peladeiro/internal/services"
	"github.com/codr1/Peladeiro/internal/session"
	"github.com/codr1/Peladeiro/internal/testutil"
)

func setupAuthTest(t *testing.T) *testutil.FakeAPI {
	t.Helper()
	fake := testutil.NewFakeAPI(t)

	// Save and restore global state
	prevSvc, prevLimiter, prevTrust := svc, limiter, trustProxy
	t.Cleanup(func() {
		limiter.Close()
		svc, limiter, trustProxy = prevSvc, prevLimiter, prevTrust
	})
	InitHandlers(services.New(apiclient.New(apiclient.Config{BaseURL: fake.URL()})), false)
	return fake
}

// anonymousRequest returns a request whose session carries no tokens.
func anonymousRequest(t *testing.T, method, target string, form url.Values) (*http.Request, *session.Session) {
	t.Helper()
	req, sess := testutil.NewRequest(t, method, target, form)
	sess.Clear()
	return req, sess
}

func TestLoginStoresTokensAndRedirects(t *testing.T) {
	fake := setupAuthTest(t)
	fake.JSON(http.MethodPost, "/api/usuarios/login", http.StatusOK, `{"token_acesso":"a1","token_atualizacao":"r1"}`)

	req, sess := anonymousRequest(t, http.MethodPost, "/login", url.Values{"username": {" ze "}, "senha": {"segredo"}})
	recorder := testutil.Serve("POST /login", HandleLogin, req)

	if recorder.Code != http.StatusSeeOther || recorder.Header().Get("Location") != "/peladas" {
		t.Fatalf("expected redirect to /peladas, got %d %q", recorder.Code, recorder.Header().Get("Location"))
	}
	if sess.AccessToken() != "a1" || sess.RefreshToken() != "r1" {
		t.Fatalf("expected tokens stored, got %q/%q", sess.AccessToken(), sess.RefreshToken())
	}
	body := fake.CallsTo(http.MethodPost, "/api/usuarios/login")[0].JSON()
	if body.Get("username").String() != "ze" || body.Get("password").String() != "segredo" {
		t.Fatalf("unexpected login body %s", body.Raw)
	}
}

func TestLoginFailureShowsAPIMessage(t *testing.T) {
	fake := setupAuthTest(t)
	fake.JSON(http.MethodPost, "/api/usuarios/login", http.StatusUnauthorized, `{"erro":"Credenciais inválidas"}`)

	req, sess := anonymousRequest(t, http.MethodPost, "/login", url.Values{"username": {"ze"}, "senha": {"x"}})
	recorder := testutil.Serve("POST /login", HandleLogin, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected login page re-rendered, got %d", recorder.Code)
	}
	body := recorder.Body.String()
	if !strings.Contains(body, "Credenciais inválidas") || !strings.Contains(body, `value="ze"`) {
		t.Fatalf("expected API message and kept username, got %s", body)
	}
	if sess.IsAuthenticated() {
		t.Fatalf("expected no tokens after a failed login")
	}
}

func TestLoginFailureWithoutAPIMessageUsesDefault(t *testing.T) {
	fake := setupAuthTest(t)
	fake.JSON(http.MethodPost, "/api/usuarios/login", http.StatusOK, `{"mensagem":"ok"}`)

	req, _ := anonymousRequest(t, http.MethodPost, "/login", url.Values{"username": {"ze"}, "senha": {"x"}})
	recorder := testutil.Serve("POST /login", HandleLogin, req)

	if !strings.Contains(recorder.Body.String(), "Falha no login") {
		t.Fatalf("expected default failure message")
	}
}

func TestLoginIsThrottled(t *testing.T) {
	fake := setupAuthTest(t)
	limiter.Close()
	limiter = ratelimit.New(&ratelimit.Config{
		IPPerMinute:         100,
		IPBurst:             100,
		IdentifierPerMinute: 1,
		IdentifierBurst:     1,
		IdleTTL:             ratelimit.DefaultConfig().IdleTTL,
	})
	fake.JSON(http.MethodPost, "/api/usuarios/login", http.StatusUnauthorized, `{"erro":"Credenciais inválidas"}`)

	form := url.Values{"username": {"ze"}, "senha": {"x"}}
	first, _ := anonymousRequest(t, http.MethodPost, "/login", form)
	testutil.Serve("POST /login", HandleLogin, first)

	second, _ := anonymousRequest(t, http.MethodPost, "/login", form)
	recorder := testutil.Serve("POST /login", HandleLogin, second)

	if recorder.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", recorder.Code)
	}
	if calls := fake.CallsTo(http.MethodPost, "/api/usuarios/login"); len(calls) != 1 {
		t.Fatalf("expected throttled attempt to skip the API, got %d calls", len(calls))
	}
}

func TestRegisterRedirectsToLogin(t *testing.T) {
	fake := setupAuthTest(t)
	fake.JSON(http.MethodPost, "/api/usuarios/registrar", http.StatusCreated, `{"usuario":{"id":1}}`)

	form := url.Values{"email": {"ze@example.com"}, "senha": {"segredo1"}, "nome": {"Zé"}}
	req, sess := anonymousRequest(t, http.MethodPost, "/register", form)
	recorder := testutil.Serve("POST /register", HandleRegister, req)

	if recorder.Code != http.StatusSeeOther || recorder.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", recorder.Code, recorder.Header().Get("Location"))
	}
	if flashes := testutil.Flashes(sess); len(flashes) != 1 || flashes[0] != "ok: Conta criada! Faça login." {
		t.Fatalf("unexpected flashes %v", flashes)
	}
	body := fake.CallsTo(http.MethodPost, "/api/usuarios/registrar")[0].JSON()
	if body.Get("username").String() != "Zé" || body.Get("email").String() != "ze@example.com" {
		t.Fatalf("unexpected register body %s", body.Raw)
	}
}

func TestRegisterValidatesLocally(t *testing.T) {
	fake := setupAuthTest(t)

	form := url.Values{"email": {"not-an-email"}, "senha": {"segredo1"}, "nome": {"Zé"}}
	req, _ := anonymousRequest(t, http.MethodPost, "/register", form)
	recorder := testutil.Serve("POST /register", HandleRegister, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected form re-rendered, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "E-mail deve ser um e-mail válido.") || len(fake.Calls()) != 0 {
		t.Fatalf("expected a local validation message and no API call")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	setupAuthTest(t)

	req, sess := testutil.NewRequest(t, http.MethodGet, "/logout", nil)
	recorder := testutil.Serve("GET /logout", HandleLogout, req)

	if recorder.Code != http.StatusFound || recorder.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d", recorder.Code)
	}
	if sess.IsAuthenticated() {
		t.Fatalf("expected session cleared")
	}
}

func TestLoginPageRedirectsLoggedInUsers(t *testing.T) {
	setupAuthTest(t)

	req, _ := testutil.NewRequest(t, http.MethodGet, "/login", nil)
	recorder := testutil.Serve("GET /login", HandleLoginPage, req)

	if recorder.Code != http.StatusFound || recorder.Header().Get("Location") != "/peladas" {
		t.Fatalf("expected redirect to /peladas, got %d", recorder.Code)
	}
}
