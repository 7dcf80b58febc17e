package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/codr1/Peladeiro/internal/apiclient"
	"github.com/codr1/Peladeiro/internal/testutil"
)

func newTestService(t *testing.T) (*Service, *testutil.FakeAPI) {
	t.Helper()
	fake := testutil.NewFakeAPI(t)
	return New(apiclient.New(apiclient.Config{BaseURL: fake.URL()})), fake
}

func TestFindLeagueBySlugPagesUntilMatch(t *testing.T) {
	svc, fake := newTestService(t)
	fake.Handle(http.MethodGet, "/api/peladas/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, `{"data":[{"id":1,"nome":"Racha de Quinta"}],"meta":{"page":1,"total_pages":3}}`)
		case "2":
			fmt.Fprint(w, `{"data":[{"id":2,"nome":"Pelada do Zé"}],"meta":{"page":2,"total_pages":3}}`)
		default:
			fmt.Fprint(w, `{"data":[{"id":3,"nome":"Pelada do Ze"}],"meta":{"page":3,"total_pages":3}}`)
		}
	})

	league, found, err := svc.FindLeagueBySlug(context.Background(), "pelada-do-ze")
	if err != nil {
		t.Fatalf("find league: %v", err)
	}
	if !found || league.ID != 2 {
		t.Fatalf("expected league 2, got %+v (found=%v)", league, found)
	}

	calls := fake.CallsTo(http.MethodGet, "/api/peladas/")
	if len(calls) != 2 {
		t.Fatalf("expected the walk to stop at the first match, got %d calls", len(calls))
	}
	if got := calls[0].Query.Get("per_page"); got != "50" {
		t.Fatalf("expected per_page=50, got %q", got)
	}
}

func TestFindLeagueBySlugNotFound(t *testing.T) {
	svc, fake := newTestService(t)
	fake.JSON(http.MethodGet, "/api/peladas/", http.StatusOK, `{"data":[{"id":1,"nome":"Racha"}],"meta":{"page":1,"total_pages":1}}`)

	_, found, err := svc.FindLeagueBySlug(context.Background(), "Pelada do Zé")
	if err != nil {
		t.Fatalf("find league: %v", err)
	}
	if found {
		t.Fatalf("expected no match")
	}
}

func TestFindLeagueBySlugReturnsListingError(t *testing.T) {
	svc, fake := newTestService(t)
	fake.JSON(http.MethodGet, "/api/peladas/", http.StatusInternalServerError, `{"erro":"falhou"}`)

	_, found, err := svc.FindLeagueBySlug(context.Background(), "racha")
	if err == nil || found {
		t.Fatalf("expected listing error, got found=%v err=%v", found, err)
	}
	if !apiclient.HasStatus(err, http.StatusInternalServerError) {
		t.Fatalf("expected upstream status to be kept, got %v", err)
	}
}

func TestFindLeagueBySlugSkipsRemoteCallForEmptySlug(t *testing.T) {
	svc, fake := newTestService(t)

	_, found, err := svc.FindLeagueBySlug(context.Background(), " -- ")
	if err != nil || found {
		t.Fatalf("expected no match and no error, got found=%v err=%v", found, err)
	}
	if len(fake.Calls()) != 0 {
		t.Fatalf("expected no remote call")
	}
}

func TestListManagedLeaguesFiltersByManagerAndProbe(t *testing.T) {
	svc, fake := newTestService(t)
	fake.JSON(http.MethodGet, "/api/peladas/", http.StatusOK, `{"data":[
		{"id":1,"nome":"A","usuario_gerente_id":7},
		{"id":2,"nome":"B","usuario_gerente_id":8},
		{"id":3,"nome":"C"},
		{"id":4,"nome":"D"},
		{"id":5,"nome":"E"}
	],"meta":{"page":1,"total_pages":4,"total":5}}`)
	fake.JSON(http.MethodGet, "/api/usuarios/me", http.StatusOK, `{"usuario":{"id":7,"username":"ze"}}`)
	fake.Handle(http.MethodGet, "/api/peladas/{id}/perfil", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch testutil.URLParam(r, "id") {
		case "3":
			fmt.Fprint(w, `{"pelada":{"id":3}}`)
		case "4":
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"erro":"Sem acesso"}`)
		default:
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"erro":"falhou"}`)
		}
	})

	listing, err := svc.ListManagedLeagues(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("list managed: %v", err)
	}

	var ids []int64
	for _, league := range listing.Items {
		ids = append(ids, league.ID)
	}
	if fmt.Sprint(ids) != "[1 3 5]" {
		t.Fatalf("expected leagues [1 3 5], got %v", ids)
	}
	if listing.Meta.Total != 3 || listing.Meta.TotalPages != 4 {
		t.Fatalf("unexpected meta: %+v", listing.Meta)
	}
	if n := len(fake.CallsTo(http.MethodGet, "/api/peladas/1/perfil")); n != 0 {
		t.Fatalf("expected no probe for a league with a known manager, got %d", n)
	}
}

func TestListManagedLeaguesStopsOnUnauthorized(t *testing.T) {
	svc, fake := newTestService(t)
	fake.JSON(http.MethodGet, "/api/peladas/", http.StatusOK, `{"data":[{"id":1}]}`)
	fake.JSON(http.MethodGet, "/api/usuarios/me", http.StatusUnauthorized, `{"erro":"Token expirado"}`)

	_, err := svc.ListManagedLeagues(context.Background(), 1, 20)
	if !apiclient.HasStatus(err, http.StatusUnauthorized) {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestCreatePlayerSendsPhoneAsTyped(t *testing.T) {
	svc, fake := newTestService(t)
	fake.JSON(http.MethodPost, "/api/peladas/5/jogadores", http.StatusCreated, `{"jogador":{"id":9,"nome_completo":"José Silva"}}`)

	player, err := svc.CreatePlayer(context.Background(), 5, PlayerInput{
		FullName: "José Silva",
		Phone:    "(11) 98765-4321",
	}, nil)
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	if player.ID != 9 {
		t.Fatalf("expected player 9, got %+v", player)
	}

	calls := fake.CallsTo(http.MethodPost, "/api/peladas/5/jogadores")
	if len(calls) != 1 {
		t.Fatalf("expected one create call, got %d", len(calls))
	}
	body := calls[0].JSON()
	if got := body.Get("telefone").String(); got != "(11) 98765-4321" {
		t.Fatalf("expected phone sent as typed, got %q", got)
	}
	if apelido := body.Get("apelido"); !apelido.Exists() || apelido.Type.String() != "Null" {
		t.Fatalf("expected empty nickname to be sent as null, got %s", apelido.Raw)
	}
}

func TestCreatePlayerLeavesPhoneValidationToAPI(t *testing.T) {
	svc, fake := newTestService(t)
	fake.JSON(http.MethodPost, "/api/peladas/5/jogadores", http.StatusCreated, `{"jogador":{"id":9}}`)
	fake.JSON(http.MethodPut, "/api/peladas/jogadores/9", http.StatusOK, `{"jogador":{"id":9}}`)

	if _, err := svc.CreatePlayer(context.Background(), 5, PlayerInput{FullName: "Zé", Phone: "912 345 678"}, nil); err != nil {
		t.Fatalf("create player: %v", err)
	}
	if _, err := svc.UpdatePlayer(context.Background(), 9, PlayerUpdate{FullName: "Zé", Phone: "1234", Active: true}, nil); err != nil {
		t.Fatalf("update player: %v", err)
	}

	created := fake.CallsTo(http.MethodPost, "/api/peladas/5/jogadores")
	updated := fake.CallsTo(http.MethodPut, "/api/peladas/jogadores/9")
	if len(created) != 1 || len(updated) != 1 {
		t.Fatalf("expected one create and one update call, got %d/%d", len(created), len(updated))
	}
	if got := created[0].JSON().Get("telefone").String(); got != "912 345 678" {
		t.Fatalf("expected phone passed through on create, got %q", got)
	}
	if got := updated[0].JSON().Get("telefone").String(); got != "1234" {
		t.Fatalf("expected phone passed through on update, got %q", got)
	}
}

func TestCreatePlayerWithPhotoUsesMultipart(t *testing.T) {
	svc, fake := newTestService(t)
	fake.JSON(http.MethodPost, "/api/peladas/5/jogadores", http.StatusCreated, `{"id":9}`)

	_, err := svc.CreatePlayer(context.Background(), 5, PlayerInput{FullName: "Zé"}, &apiclient.File{
		Filename:    "ze.png",
		ContentType: "image/png",
		Content:     strings.NewReader("png-bytes"),
	})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	call := fake.CallsTo(http.MethodPost, "/api/peladas/5/jogadores")[0]
	mediaType, params, err := mime.ParseMediaType(call.ContentType)
	if err != nil || mediaType != "multipart/form-data" {
		t.Fatalf("expected multipart body, got %q", call.ContentType)
	}

	reader := multipart.NewReader(strings.NewReader(string(call.Body)), params["boundary"])
	parts := map[string]string{}
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read part: %v", err)
		}
		content, _ := io.ReadAll(part)
		parts[part.FormName()] = string(content)
	}
	if parts["foto"] != "png-bytes" {
		t.Fatalf("expected photo under foto, got %v", parts)
	}
	if parts["nome_completo"] != "Zé" {
		t.Fatalf("expected name field, got %v", parts)
	}
}

func TestUpdateTeamPlayerPositionKeepsCaptaincy(t *testing.T) {
	svc, fake := newTestService(t)
	fake.JSON(http.MethodGet, "/api/peladas/times/3", http.StatusOK, `{"id":3,"jogadores":[{"jogador_id":11,"capitao":true}]}`)
	fake.JSON(http.MethodDelete, "/api/peladas/times/3/jogadores/11", http.StatusOK, `{}`)
	fake.JSON(http.MethodPost, "/api/peladas/times/3/jogadores", http.StatusCreated, `{}`)

	updated, err := svc.UpdateTeamPlayerPosition(context.Background(), 3, 11, "Zagueiro")
	if err != nil || !updated {
		t.Fatalf("expected update, got updated=%v err=%v", updated, err)
	}

	calls := fake.Calls()
	if len(calls) != 3 || calls[1].Method != http.MethodDelete || calls[2].Method != http.MethodPost {
		t.Fatalf("expected get, delete, post; got %+v", calls)
	}
	body := calls[2].JSON()
	if !body.Get("capitao").Bool() || body.Get("posicao").String() != "Zagueiro" || body.Get("jogador_id").Int() != 11 {
		t.Fatalf("unexpected re-add body: %s", body.Raw)
	}
}

func TestUpdateTeamPlayerPositionIgnoresNonMember(t *testing.T) {
	svc, fake := newTestService(t)
	fake.JSON(http.MethodGet, "/api/peladas/times/3", http.StatusOK, `{"id":3,"jogadores":[12]}`)

	updated, err := svc.UpdateTeamPlayerPosition(context.Background(), 3, 11, "Zagueiro")
	if err != nil || updated {
		t.Fatalf("expected no update, got updated=%v err=%v", updated, err)
	}
	if len(fake.Calls()) != 1 {
		t.Fatalf("expected only the team lookup, got %d calls", len(fake.Calls()))
	}
}

func TestUpdateCrestRequiresFile(t *testing.T) {
	svc, fake := newTestService(t)

	_, err := svc.UpdateCrest(context.Background(), 3, nil)
	if !errors.Is(err, ErrCrestRequired) {
		t.Fatalf("expected ErrCrestRequired, got %v", err)
	}
	if len(fake.Calls()) != 0 {
		t.Fatalf("expected no remote call")
	}
}

func TestAvailablePlayersExcludesSeasonMembers(t *testing.T) {
	svc, fake := newTestService(t)
	fake.JSON(http.MethodGet, "/api/peladas/5/jogadores", http.StatusOK, `{"data":[{"id":1},{"id":2},{"id":3}],"meta":{"total_pages":1}}`)
	fake.JSON(http.MethodGet, "/api/peladas/temporadas/8/times", http.StatusOK, `{"data":[
		{"id":30,"jogadores":[{"jogador":{"id":1}}]},
		{"id":31,"time_jogadores":[3]}
	]}`)

	players, err := svc.AvailablePlayers(context.Background(), 5, 8)
	if err != nil {
		t.Fatalf("available players: %v", err)
	}
	if len(players) != 1 || players[0].ID != 2 {
		t.Fatalf("expected only player 2, got %+v", players)
	}
}

func TestAvailablePlayersWalksEveryTeamPage(t *testing.T) {
	svc, fake := newTestService(t)
	fake.JSON(http.MethodGet, "/api/peladas/5/jogadores", http.StatusOK, `{"data":[{"id":1},{"id":2},{"id":3}],"meta":{"total_pages":1}}`)
	fake.Handle(http.MethodGet, "/api/peladas/temporadas/8/times", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			w.Write([]byte(`{"data":[{"id":31,"jogadores":[{"id":3}]}],"meta":{"page":2,"total_pages":2}}`))
			return
		}
		w.Write([]byte(`{"data":[{"id":30,"jogadores":[{"id":1}]}],"meta":{"page":1,"total_pages":2}}`))
	})

	players, err := svc.AvailablePlayers(context.Background(), 5, 8)
	if err != nil {
		t.Fatalf("available players: %v", err)
	}
	if len(players) != 1 || players[0].ID != 2 {
		t.Fatalf("expected only player 2, got %+v", players)
	}
	if calls := fake.CallsTo(http.MethodGet, "/api/peladas/temporadas/8/times"); len(calls) != 2 {
		t.Fatalf("expected two team pages, got %d", len(calls))
	}
}

func TestCreateSeasonSendsFirstDayOfMonth(t *testing.T) {
	svc, fake := newTestService(t)
	fake.JSON(http.MethodPost, "/api/peladas/5/temporadas", http.StatusCreated, `{"id":8}`)

	if _, err := svc.CreateSeason(context.Background(), 5, "2026-03", "2026-11"); err != nil {
		t.Fatalf("create season: %v", err)
	}
	body := fake.Calls()[0].JSON()
	if body.Get("inicio_mes").String() != "2026-03-01" || body.Get("fim_mes").String() != "2026-11-01" {
		t.Fatalf("unexpected season body: %s", body.Raw)
	}
}

func TestCreateGoalAlwaysSendsMinute(t *testing.T) {
	svc, fake := newTestService(t)
	fake.JSON(http.MethodPost, "/api/peladas/partidas/4/gols", http.StatusCreated, `{}`)

	if err := svc.CreateGoal(context.Background(), 4, GoalInput{TeamID: 30, PlayerID: 1}); err != nil {
		t.Fatalf("create goal: %v", err)
	}
	body := fake.Calls()[0].JSON()
	if minute := body.Get("minuto"); !minute.Exists() || minute.Type.String() != "Null" {
		t.Fatalf("expected minuto null, got %s", minute.Raw)
	}
	if body.Get("assistencia_id").Exists() {
		t.Fatalf("expected no assist field, got %s", body.Raw)
	}
}

func TestRefreshSendsRefreshTokenAndKeepsIt(t *testing.T) {
	svc, fake := newTestService(t)
	fake.JSON(http.MethodPost, "/api/usuarios/refresh", http.StatusOK, `{"token_acesso":"a2"}`)

	tokens, err := svc.Refresh(context.Background(), "r1")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if tokens.Access != "a2" || tokens.Refresh != "r1" {
		t.Fatalf("unexpected tokens: %+v", tokens)
	}
	if got := fake.Calls()[0].Authorization; got != "Bearer r1" {
		t.Fatalf("expected refresh token as bearer, got %q", got)
	}
}

func TestLoginWithoutAccessToken(t *testing.T) {
	svc, fake := newTestService(t)
	fake.JSON(http.MethodPost, "/api/usuarios/login", http.StatusOK, `{"mensagem":"ok"}`)

	_, err := svc.Login(context.Background(), "ze", "segredo")
	if !errors.Is(err, ErrMissingTokens) {
		t.Fatalf("expected ErrMissingTokens, got %v", err)
	}
}

func TestGetVoteTreatsFailureAsAbsence(t *testing.T) {
	svc, fake := newTestService(t)
	fake.JSON(http.MethodGet, "/api/peladas/votacoes/7", http.StatusNotFound, `{"erro":"Rota inexistente"}`)

	if _, ok := svc.GetVote(context.Background(), 7); ok {
		t.Fatalf("expected vote to be reported absent")
	}
}
