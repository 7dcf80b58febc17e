package partidas

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/codr1/Peladeiro/internal/apiclient"
	"github.com/codr1/Peladeiro/internal/services"
	"github.com/codr1/Peladeiro/internal/testutil"
)

const matchPayload = `{"partida":{"id":3,"rodada_id":2,"time_casa_id":5,"time_fora_id":6,"placar_casa":1,"placar_fora":0,"status":"em_andamento",
"gols":[{"id":9,"time_id":5,"jogador_id":10,"jogador":{"apelido":"Xandão"},"minuto":12,"assistencia_id":11,"assistencia":{"apelido":"Beto"}}]}}`

func setupPartidas(t *testing.T) *testutil.FakeAPI {
	t.Helper()
	fake := testutil.NewFakeAPI(t)

	prev := svc
	t.Cleanup(func() {
		svc = prev
	})
	InitHandlers(services.New(apiclient.New(apiclient.Config{BaseURL: fake.URL()})))
	return fake
}

func stubMatch(fake *testutil.FakeAPI) {
	fake.JSON(http.MethodGet, "/api/peladas/partidas/3", http.StatusOK, matchPayload)
	fake.JSON(http.MethodGet, "/api/peladas/times/5", http.StatusOK, `{"time":{"id":5,"nome":"Azul","cor":"#1d4ed8","jogadores":[{"id":10,"apelido":"Xandão"},{"id":11,"apelido":"Beto"}]}}`)
	fake.JSON(http.MethodGet, "/api/peladas/times/6", http.StatusInternalServerError, `{"erro":"falhou"}`)
}

func TestMatchPageSurvivesMissingRoster(t *testing.T) {
	fake := setupPartidas(t)
	stubMatch(fake)

	req, _ := testutil.NewRequest(t, http.MethodGet, "/partidas/3", nil)
	recorder := testutil.Serve("GET /partidas/{id}", HandleMatchPage, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	body := recorder.Body.String()
	for _, want := range []string{"Azul", "Time visitante", "1 × 0", "12'", "assistência de Beto", "Finalizar partida", `<option value="10">Xandão</option>`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in body", want)
		}
	}
	if strings.Contains(body, "Iniciar partida") {
		t.Fatal("start button shown for a match in progress")
	}
}

func TestCreateGoalHTMXReturnsScoreboard(t *testing.T) {
	fake := setupPartidas(t)
	stubMatch(fake)
	fake.JSON(http.MethodPost, "/api/peladas/partidas/3/gols", http.StatusCreated, `{"gol":{"id":12}}`)

	form := url.Values{"time_id": {"5"}, "jogador_id": {"10"}, "minuto": {""}, "gol_contra": {"true"}, "assistencia_id": {""}}
	req, _ := testutil.NewRequest(t, http.MethodPost, "/partidas/3/gol", form)
	req.Header.Set("HX-Request", "true")
	recorder := testutil.Serve("POST /partidas/{id}/gol", HandleCreateGoal, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	body := recorder.Body.String()
	if !strings.Contains(body, `id="match-scoreboard"`) || !strings.Contains(body, "Gol registrado!") {
		t.Fatalf("unexpected fragment %s", body)
	}
	if strings.Contains(body, "<html") {
		t.Fatal("expected a fragment, got a full page")
	}

	sent := fake.CallsTo(http.MethodPost, "/api/peladas/partidas/3/gols")[0].JSON()
	if sent.Get("time_id").Int() != 5 || sent.Get("jogador_id").Int() != 10 || !sent.Get("gol_contra").Bool() {
		t.Fatalf("unexpected body %s", sent.Raw)
	}
	if minute := sent.Get("minuto"); !minute.Exists() || minute.Type != gjson.Null {
		t.Fatalf("expected minuto null, got %s", sent.Raw)
	}
	if sent.Get("assistencia_id").Exists() {
		t.Fatalf("expected no assistencia_id, got %s", sent.Raw)
	}
}

func TestCreateGoalRequiresPlayer(t *testing.T) {
	fake := setupPartidas(t)

	form := url.Values{"time_id": {"5"}}
	req, _ := testutil.NewRequest(t, http.MethodPost, "/partidas/3/gol", form)
	req.Header.Set("HX-Request", "true")
	recorder := testutil.Serve("POST /partidas/{id}/gol", HandleCreateGoal, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Jogador é obrigatório.") {
		t.Fatalf("unexpected body %s", recorder.Body.String())
	}
	if len(fake.Calls()) != 0 {
		t.Fatal("expected no API call")
	}
}

func TestCreateGoalRejectsSelfAssist(t *testing.T) {
	fake := setupPartidas(t)

	form := url.Values{"time_id": {"5"}, "jogador_id": {"10"}, "assistencia_id": {"10"}, "minuto": {"7"}}
	req, sess := testutil.NewRequest(t, http.MethodPost, "/partidas/3/gol", form)
	testutil.Serve("POST /partidas/{id}/gol", HandleCreateGoal, req)

	flashes := testutil.Flashes(sess)
	if len(flashes) != 1 || flashes[0] != "error: Assistência deve ser de outro jogador." {
		t.Fatalf("unexpected flashes %v", flashes)
	}
	if len(fake.Calls()) != 0 {
		t.Fatal("expected no API call")
	}
}

func TestDeleteGoalRedirectsWithoutHTMX(t *testing.T) {
	fake := setupPartidas(t)
	fake.JSON(http.MethodDelete, "/api/peladas/gols/9", http.StatusOK, `{}`)

	req, sess := testutil.NewRequest(t, http.MethodPost, "/gols/9/delete", url.Values{"partida_id": {"3"}})
	recorder := testutil.Serve("POST /gols/{id}/delete", HandleDeleteGoal, req)

	if recorder.Code != http.StatusSeeOther || recorder.Header().Get("Location") != "/partidas/3" {
		t.Fatalf("unexpected response %d %q", recorder.Code, recorder.Header().Get("Location"))
	}
	if flashes := testutil.Flashes(sess); len(flashes) != 1 || flashes[0] != "ok: Gol removido!" {
		t.Fatalf("unexpected flashes %v", flashes)
	}
	if len(fake.CallsTo(http.MethodDelete, "/api/peladas/gols/9")) != 1 {
		t.Fatal("expected the goal to be deleted")
	}
}

func TestDeleteGoalRequiresMatch(t *testing.T) {
	fake := setupPartidas(t)

	req, sess := testutil.NewRequest(t, http.MethodPost, "/gols/9/delete", url.Values{})
	testutil.Serve("POST /gols/{id}/delete", HandleDeleteGoal, req)

	if flashes := testutil.Flashes(sess); len(flashes) != 1 || flashes[0] != "error: Partida é obrigatório." {
		t.Fatalf("unexpected flashes %v", flashes)
	}
	if len(fake.Calls()) != 0 {
		t.Fatal("expected no API call")
	}
}

func TestStartAndFinishMatch(t *testing.T) {
	fake := setupPartidas(t)
	fake.JSON(http.MethodPost, "/api/peladas/partidas/3/iniciar", http.StatusOK, `{}`)
	fake.JSON(http.MethodPost, "/api/peladas/partidas/3/finalizar", http.StatusOK, `{}`)

	cases := []struct {
		pattern string
		target  string
		handler http.HandlerFunc
		flash   string
	}{
		{"POST /partidas/{id}/iniciar", "/partidas/3/iniciar", HandleStartMatch, "ok: Partida iniciada!"},
		{"POST /partidas/{id}/finalizar", "/partidas/3/finalizar", HandleFinishMatch, "ok: Partida finalizada!"},
	}
	for _, tc := range cases {
		req, sess := testutil.NewRequest(t, http.MethodPost, tc.target, url.Values{})
		recorder := testutil.Serve(tc.pattern, tc.handler, req)
		if recorder.Header().Get("Location") != "/partidas/3" {
			t.Fatalf("%s: unexpected redirect %q", tc.target, recorder.Header().Get("Location"))
		}
		if flashes := testutil.Flashes(sess); len(flashes) != 1 || flashes[0] != tc.flash {
			t.Fatalf("%s: unexpected flashes %v", tc.target, flashes)
		}
	}
}

func TestCreateMatchFromRoundMatches(t *testing.T) {
	fake := setupPartidas(t)
	fake.JSON(http.MethodPost, "/api/peladas/rodadas/2/partidas", http.StatusCreated, `{"partida":{"id":4}}`)

	form := url.Values{"time_casa_id": {"5"}, "time_fora_id": {"6"}}
	req, sess := testutil.NewRequest(t, http.MethodPost, "/rodadas/2/partidas", form)
	recorder := testutil.Serve("POST /rodadas/{id}/partidas", HandleCreateMatch, req)

	if recorder.Header().Get("Location") != "/rodadas/2/partidas" {
		t.Fatalf("unexpected redirect %q", recorder.Header().Get("Location"))
	}
	if flashes := testutil.Flashes(sess); len(flashes) != 1 || flashes[0] != "ok: Partida criada!" {
		t.Fatalf("unexpected flashes %v", flashes)
	}
	sent := fake.CallsTo(http.MethodPost, "/api/peladas/rodadas/2/partidas")[0].JSON()
	if sent.Get("time_casa_id").Int() != 5 || sent.Get("time_fora_id").Int() != 6 {
		t.Fatalf("unexpected body %s", sent.Raw)
	}
}
