package peladas

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/codr1/Peladeiro/internal/apiclient"
	"github.com/codr1/Peladeiro/internal/services"
	"github.com/codr1/Peladeiro/internal/testutil"
)

func setupPeladas(t *testing.T) *testutil.FakeAPI {
	t.Helper()
	fake := testutil.NewFakeAPI(t)

	prev := svc
	t.Cleanup(func() {
		svc = prev
	})
	InitHandlers(services.New(apiclient.New(apiclient.Config{BaseURL: fake.URL()})))
	return fake
}

func TestLeaguesPageShowsManagedLeagues(t *testing.T) {
	fake := setupPeladas(t)
	fake.JSON(http.MethodGet, "/api/peladas/", http.StatusOK, `{"data":[
		{"id":1,"nome":"Racha de Quinta","cidade":"Recife","usuario_gerente_id":7},
		{"id":2,"nome":"Pelada Alheia","usuario_gerente_id":9}
	],"meta":{"page":1,"total_pages":1}}`)
	fake.JSON(http.MethodGet, "/api/usuarios/me", http.StatusOK, `{"usuario":{"id":7}}`)

	req, _ := testutil.NewRequest(t, http.MethodGet, "/peladas", nil)
	recorder := testutil.Serve("GET /peladas", HandleLeaguesPage, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	body := recorder.Body.String()
	if !strings.Contains(body, "Racha de Quinta") || strings.Contains(body, "Pelada Alheia") {
		t.Fatalf("expected only the managed league, got %s", body)
	}
	if got := fake.Calls()[0].Authorization; got != "Bearer "+testutil.AccessToken {
		t.Fatalf("expected session token on API calls, got %q", got)
	}
}

func TestCreateLeagueFlashesAndRedirects(t *testing.T) {
	fake := setupPeladas(t)
	fake.JSON(http.MethodPost, "/api/peladas/", http.StatusCreated, `{"pelada":{"id":5,"nome":"Racha"}}`)

	form := url.Values{"nome": {" Racha "}, "cidade": {"Olinda"}, "fuso_horario": {"America/Recife"}}
	req, sess := testutil.NewRequest(t, http.MethodPost, "/peladas", form)
	recorder := testutil.Serve("POST /peladas", HandleCreateLeague, req)

	if recorder.Code != http.StatusSeeOther || recorder.Header().Get("Location") != "/peladas" {
		t.Fatalf("expected redirect to /peladas, got %d %q", recorder.Code, recorder.Header().Get("Location"))
	}
	if flashes := testutil.Flashes(sess); len(flashes) != 1 || flashes[0] != "ok: Pelada criada!" {
		t.Fatalf("unexpected flashes %v", flashes)
	}
	body := fake.CallsTo(http.MethodPost, "/api/peladas/")[0].JSON()
	if body.Get("nome").String() != "Racha" || body.Get("fuso_horario").String() != "America/Recife" {
		t.Fatalf("unexpected create body %s", body.Raw)
	}
}

func TestCreateLeagueRequiresName(t *testing.T) {
	fake := setupPeladas(t)

	req, sess := testutil.NewRequest(t, http.MethodPost, "/peladas", url.Values{"nome": {"  "}})
	recorder := testutil.Serve("POST /peladas", HandleCreateLeague, req)

	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect back, got %d", recorder.Code)
	}
	if flashes := testutil.Flashes(sess); len(flashes) != 1 || flashes[0] != "error: Nome é obrigatório." {
		t.Fatalf("unexpected flashes %v", flashes)
	}
	if len(fake.Calls()) != 0 {
		t.Fatalf("expected no API call for an invalid form")
	}
}

func TestLeagueProfileUnauthorizedEndsSession(t *testing.T) {
	fake := setupPeladas(t)
	fake.JSON(http.MethodGet, "/api/peladas/{id}/perfil", http.StatusUnauthorized, `{"erro":"Token expirado"}`)

	req, sess := testutil.NewRequest(t, http.MethodGet, "/peladas/3", nil)
	recorder := testutil.Serve("GET /peladas/{id}", HandleLeagueProfile, req)

	if recorder.Code != http.StatusFound || recorder.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to login, got %d %q", recorder.Code, recorder.Header().Get("Location"))
	}
	if sess.IsAuthenticated() {
		t.Fatalf("expected session to be cleared")
	}
}

func TestLeagueProfileRejectsNonNumericID(t *testing.T) {
	fake := setupPeladas(t)

	req, _ := testutil.NewRequest(t, http.MethodGet, "/peladas/abc", nil)
	recorder := testutil.Serve("GET /peladas/{id}", HandleLeagueProfile, req)

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
	if len(fake.Calls()) != 0 {
		t.Fatalf("expected no API call")
	}
}

func TestPublicProfileBySlugNotFound(t *testing.T) {
	fake := setupPeladas(t)
	fake.JSON(http.MethodGet, "/api/peladas/", http.StatusOK, `{"data":[{"id":1,"nome":"Racha"}],"meta":{"total_pages":1}}`)

	req, _ := testutil.NewRequest(t, http.MethodGet, "/perfil/pelada-do-ze", nil)
	recorder := testutil.Serve("GET /perfil/{slug}", HandlePublicProfileBySlug, req)

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Pelada não encontrada") {
		t.Fatalf("expected not found message")
	}
}

func TestPublicProfileBySlugRendersRankingsDespiteFailures(t *testing.T) {
	fake := setupPeladas(t)
	fake.JSON(http.MethodGet, "/api/peladas/", http.StatusOK, `{"data":[{"id":4,"nome":"Pelada do Zé"}],"meta":{"total_pages":1}}`)
	fake.JSON(http.MethodGet, "/api/peladas/4/perfil", http.StatusOK, `{"pelada":{"id":4,"nome":"Pelada do Zé"},"temporada_ativa":{"id":8,"inicio_mes":"2026-01-01","fim_mes":"2026-12-01"}}`)
	fake.JSON(http.MethodGet, "/api/peladas/temporadas/8/ranking/times", http.StatusInternalServerError, `{"erro":"falhou"}`)
	fake.JSON(http.MethodGet, "/api/peladas/temporadas/8/ranking/artilheiros", http.StatusOK, `{"ranking":[{"jogador":{"id":1,"apelido":"Xandão"},"gols":7}]}`)
	fake.JSON(http.MethodGet, "/api/peladas/temporadas/8/ranking/assistencias", http.StatusOK, `[]`)

	req, _ := testutil.NewRequest(t, http.MethodGet, "/perfil/pelada-do-ze", nil)
	recorder := testutil.Serve("GET /perfil/{slug}", HandlePublicProfileBySlug, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	body := recorder.Body.String()
	if !strings.Contains(body, "Xandão") || !strings.Contains(body, "Nenhum time classificado ainda.") {
		t.Fatalf("expected scorers and an empty standings table, got %s", body)
	}
	if !strings.Contains(body, "01/2026 a 12/2026") {
		t.Fatalf("expected season months in MM/YYYY")
	}
}

func TestPublicProfileAPIErrorIsNotFound(t *testing.T) {
	fake := setupPeladas(t)
	fake.JSON(http.MethodGet, "/api/peladas/4/perfil", http.StatusInternalServerError, `{"erro":"falhou"}`)

	req, sess := testutil.NewRequest(t, http.MethodGet, "/peladas/4/publico", nil)
	recorder := testutil.Serve("GET /peladas/{id}/publico", HandlePublicProfile, req)

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
	if !sess.IsAuthenticated() {
		t.Fatalf("public pages must not end the session")
	}
}

func TestYearlyScoutSumsSeasons(t *testing.T) {
	fake := setupPeladas(t)
	fake.JSON(http.MethodGet, "/api/peladas/4/perfil", http.StatusOK, `{"pelada":{"id":4,"nome":"Racha"}}`)
	fake.JSON(http.MethodGet, "/api/peladas/4/temporadas", http.StatusOK, `{"data":[{"id":1},{"id":2}],"meta":{"total_pages":1}}`)
	fake.Handle(http.MethodGet, "/api/peladas/temporadas/{id}/ranking/artilheiros", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if testutil.URLParam(r, "id") == "2" {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"erro":"fora do ar"}`))
			return
		}
		_, _ = w.Write([]byte(`[{"jogador":{"id":10,"apelido":"Xandão","total_gols":3}}]`))
	})
	fake.JSON(http.MethodGet, "/api/peladas/temporadas/{id}/ranking/assistencias", http.StatusOK, `[]`)
	fake.JSON(http.MethodGet, "/api/peladas/temporadas/{id}/ranking/times", http.StatusOK, `[]`)

	req, _ := testutil.NewRequest(t, http.MethodGet, "/peladas/4/scout-anual", nil)
	recorder := testutil.Serve("GET /peladas/{id}/scout-anual", HandleYearlyScout, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	body := recorder.Body.String()
	if !strings.Contains(body, "1. Xandão") || !strings.Contains(body, "3 gols") {
		t.Fatalf("expected Xandão with 3 goals, got %s", body)
	}
	if !strings.Contains(body, "2 temporada(s)") || !strings.Contains(body, "incompletos") {
		t.Fatalf("expected season count and partial-data notice")
	}
}
