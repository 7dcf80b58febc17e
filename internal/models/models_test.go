package models

import (
	"testing"

	"github.com/tidwall/gjson"

	"github.com/codr1/Peladeiro/internal/positions"
)

func TestDecodePageDefaults(t *testing.T) {
	page := DecodePage(gjson.Parse(`{"data":[{"id":1,"nome":"A"},{"id":2,"nome":"B"}]}`), DecodeLeague)
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	if page.Meta.Page != 1 || page.Meta.TotalPages != 1 || page.HasNext() {
		t.Fatalf("unexpected meta %+v", page.Meta)
	}

	page = DecodePage(gjson.Parse(`{"data":[],"meta":{"page":2,"total_pages":3}}`), DecodeLeague)
	if !page.HasNext() || !page.HasPrev() {
		t.Fatalf("expected neighbours for page 2 of 3, got %+v", page.Meta)
	}
}

func TestDecodeLeagueManager(t *testing.T) {
	league := DecodeLeague(gjson.Parse(`{"pelada":{"id":4,"nome":"Racha","usuario_gerente_id":"9"}}`))
	if managed, known := league.ManagedBy(9); !managed || !known {
		t.Fatalf("expected league managed by 9, got %v %v", managed, known)
	}

	league = DecodeLeague(gjson.Parse(`{"id":4,"nome":"Racha"}`))
	if _, known := league.ManagedBy(9); known {
		t.Fatalf("expected unknown manager")
	}
}

func TestDecodeLeagueProfileActiveSeason(t *testing.T) {
	profile := DecodeLeagueProfile(gjson.Parse(`{"pelada":{"id":1,"nome":"Racha"},"temporada_ativa":{"id":5,"inicio_mes":"2024-01-01"}}`))
	if profile.ActiveSeason == nil || profile.ActiveSeason.ID != 5 {
		t.Fatalf("expected active season 5, got %+v", profile.ActiveSeason)
	}

	profile = DecodeLeagueProfile(gjson.Parse(`{"pelada":{"id":1},"temporada_ativa":null}`))
	if profile.ActiveSeason != nil {
		t.Fatalf("expected no active season")
	}
}

func TestDecodeTeamMemberShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []int64
	}{
		{"objects", `{"jogadores":[{"id":1},{"id":2}]}`, []int64{1, 2}},
		{"join rows", `{"time_jogadores":[{"jogador_id":3},{"jogador":{"id":4}}]}`, []int64{3, 4}},
		{"bare ids", `{"jogadores":[5,"6"]}`, []int64{5, 6}},
		{"skips unusable", `{"jogadores":[{"nome":"sem id"},null,7]}`, []int64{7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			team := DecodeTeam(gjson.Parse(tt.raw))
			if len(team.Members) != len(tt.want) {
				t.Fatalf("expected %d members, got %+v", len(tt.want), team.Members)
			}
			for i, id := range tt.want {
				if team.Members[i].PlayerID != id {
					t.Fatalf("member %d: expected %d, got %d", i, id, team.Members[i].PlayerID)
				}
			}
		})
	}
}

func TestMemberIDs(t *testing.T) {
	teams := []Team{
		DecodeTeam(gjson.Parse(`{"id":1,"jogadores":[{"id":10},{"id":11}]}`)),
		DecodeTeam(gjson.Parse(`{"id":2,"time_jogadores":[12]}`)),
	}
	ids := MemberIDs(teams)
	for _, id := range []int64{10, 11, 12} {
		if _, ok := ids[id]; !ok {
			t.Fatalf("expected %d in %v", id, ids)
		}
	}
}

func TestMatchEnrich(t *testing.T) {
	match := DecodeMatch(gjson.Parse(`{"partida":{"id":1,"time_casa_id":10,"time_fora":{"id":20}}}`))
	if match.HomeID != 10 || match.AwayID != 20 {
		t.Fatalf("unexpected ids %d %d", match.HomeID, match.AwayID)
	}
	match.Enrich(TeamsByID([]Team{{ID: 10, Name: "Azul"}, {ID: 20, Name: "Vermelho"}}))
	if match.HomeName() != "Azul" || match.AwayName() != "Vermelho" {
		t.Fatalf("unexpected names %q %q", match.HomeName(), match.AwayName())
	}
	if match.Status != MatchScheduled {
		t.Fatalf("expected default status, got %q", match.Status)
	}
}

func TestDecodeRankingTotals(t *testing.T) {
	raw := `{"ranking":[
		{"jogador":{"id":1,"apelido":"Zé","total_gols":4},"gols":1},
		{"jogador":{"id":2,"nome_completo":"Ana Lima"},"gols":0,"total_gols":3},
		{"jogador":{"nome":"sem id"},"gols":9}
	]}`
	entries := DecodeRanking(gjson.Parse(raw), RankingGoals)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", entries)
	}
	if entries[0].Total != 4 || entries[0].DisplayName() != "Zé" {
		t.Fatalf("unexpected first entry %+v", entries[0])
	}
	if entries[1].Total != 3 || entries[1].DisplayName() != "Ana Lima" {
		t.Fatalf("unexpected second entry %+v", entries[1])
	}

	list := DecodeRanking(gjson.Parse(`[{"jogador":{"id":7},"assistencias":2}]`), RankingAssists)
	if len(list) != 1 || list[0].Total != 2 {
		t.Fatalf("expected bare list to decode, got %+v", list)
	}
}

func TestDecodeStandings(t *testing.T) {
	standings := DecodeStandings(gjson.Parse(`[{"time":{"id":3,"nome":"Azul"},"pontos":9,"gols_pro":7,"gols_contra":2}]`))
	if len(standings) != 1 {
		t.Fatalf("expected one standing")
	}
	if standings[0].TeamID != 3 || standings[0].Points != 9 || standings[0].GoalDiff != 5 {
		t.Fatalf("unexpected standing %+v", standings[0])
	}
}

func TestDecodeVoteResultNestedAndTopLevel(t *testing.T) {
	top := DecodeVoteResult(gjson.Parse(`{
		"total_votos": 4,
		"resultado": [{"jogador":{"id":1,"apelido":"Zé","posicao":1},"pontos":3}],
		"vencedor": {"jogador":{"id":1,"apelido":"Zé"},"pontos":3},
		"votacao": {"id":8,"rodada_id":2}
	}`))
	if top.TotalVotes != 4 || len(top.Tallies) != 1 || top.Winner == nil {
		t.Fatalf("unexpected result %+v", top)
	}
	if top.Vote.RoundID == nil || *top.Vote.RoundID != 2 {
		t.Fatalf("expected round id 2, got %v", top.Vote.RoundID)
	}
	if top.Tallies[0].Position.Code != positions.Goalkeeper {
		t.Fatalf("expected goalkeeper, got %+v", top.Tallies[0].Position)
	}

	nested := DecodeVoteResult(gjson.Parse(`{"votacao":{"id":8,"total_votos":2,"resultado":[{"jogador_id":5,"pontos":2}]}}`))
	if nested.TotalVotes != 2 || len(nested.Tallies) != 1 || nested.Tallies[0].PlayerID != 5 {
		t.Fatalf("unexpected nested result %+v", nested)
	}
	if nested.Vote.RoundID != nil {
		t.Fatalf("expected absent round id")
	}
}

func TestCreatedVoteID(t *testing.T) {
	for _, raw := range []string{`{"votacao":{"id":3}}`, `{"votacao_id":3}`, `{"id":"3"}`} {
		if id, ok := CreatedVoteID(gjson.Parse(raw)); !ok || id != 3 {
			t.Fatalf("%s: expected 3, got %d %v", raw, id, ok)
		}
	}
	if _, ok := CreatedVoteID(gjson.Parse(`{"mensagem":"ok"}`)); ok {
		t.Fatalf("expected no id")
	}
}

func TestPlayerPhoneLabel(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"11987654321":    "(11) 98765-4321",
		"+5511987654321": "(11) 98765-4321",
		"912 345 678":    "912 345 678",
		"+351 912345678": "+351 912 345 678",
	}
	for stored, want := range cases {
		if got := (Player{Phone: stored}).PhoneLabel(); got != want {
			t.Errorf("PhoneLabel(%q) = %q, want %q", stored, got, want)
		}
	}
}
