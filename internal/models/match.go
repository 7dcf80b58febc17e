package models

import (
	"strings"

	"github.com/tidwall/gjson"
)

type MatchStatus string

const (
	MatchScheduled  MatchStatus = "agendada"
	MatchInProgress MatchStatus = "em_andamento"
	MatchFinished   MatchStatus = "finalizada"
)

var matchStatusLabels = map[MatchStatus]string{
	MatchScheduled:  "Agendada",
	MatchInProgress: "Em andamento",
	MatchFinished:   "Finalizada",
}

func (s MatchStatus) Label() string {
	if label, ok := matchStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

type Match struct {
	ID        int64
	RoundID   int64
	HomeID    int64
	AwayID    int64
	Home      *Team
	Away      *Team
	HomeGoals int
	AwayGoals int
	Status    MatchStatus
	Goals     []Goal
}

func DecodeMatch(r gjson.Result) Match {
	m := Unwrap(r, "partida")
	match := Match{
		ID:        firstInt(m, "id"),
		RoundID:   firstInt(m, "rodada_id", "rodada.id"),
		HomeID:    firstInt(m, "time_casa_id", "time_casa.id"),
		AwayID:    firstInt(m, "time_fora_id", "time_fora.id"),
		HomeGoals: int(firstInt(m, "placar_casa", "gols_casa", "placar.casa")),
		AwayGoals: int(firstInt(m, "placar_fora", "gols_fora", "placar.fora")),
		Status:    MatchStatus(strings.ToLower(firstString(m, "status"))),
		Goals:     decodeAll(Items(m, "gols"), DecodeGoal),
	}
	if home := m.Get("time_casa"); home.IsObject() {
		team := DecodeTeam(home)
		match.Home = &team
	}
	if away := m.Get("time_fora"); away.IsObject() {
		team := DecodeTeam(away)
		match.Away = &team
	}
	if match.Status == "" {
		match.Status = MatchScheduled
	}
	return match
}

// Enrich fills Home and Away from teams when the payload only carried IDs.
func (m *Match) Enrich(teams map[int64]Team) {
	if team, ok := teams[m.HomeID]; ok && (m.Home == nil || m.Home.Name == "") {
		m.Home = &team
	}
	if team, ok := teams[m.AwayID]; ok && (m.Away == nil || m.Away.Name == "") {
		m.Away = &team
	}
}

func (m Match) HomeName() string {
	return teamName(m.Home, "Time da casa")
}

func (m Match) AwayName() string {
	return teamName(m.Away, "Time visitante")
}

func teamName(team *Team, fallback string) string {
	if team == nil || team.Name == "" {
		return fallback
	}
	return team.Name
}

// TeamsByID indexes teams for Enrich.
func TeamsByID(teams []Team) map[int64]Team {
	out := make(map[int64]Team, len(teams))
	for _, team := range teams {
		if team.ID != 0 {
			out[team.ID] = team
		}
	}
	return out
}

// EnrichMatches fills in team names for matches that only carry team IDs.
func EnrichMatches(matches []Match, teams []Team) {
	byID := TeamsByID(teams)
	for i := range matches {
		matches[i].Enrich(byID)
	}
}

type Goal struct {
	ID         int64
	MatchID    int64
	TeamID     int64
	PlayerID   int64
	PlayerName string
	AssistID   *int64
	AssistName string
	Minute     *int64
	OwnGoal    bool
}

func DecodeGoal(r gjson.Result) Goal {
	g := Unwrap(r, "gol")
	return Goal{
		ID:         firstInt(g, "id"),
		MatchID:    firstInt(g, "partida_id"),
		TeamID:     firstInt(g, "time_id", "time.id"),
		PlayerID:   firstInt(g, "jogador_id", "jogador.id"),
		PlayerName: displayName(firstString(g, "jogador.apelido"), firstString(g, "jogador.nome_completo", "jogador.nome", "jogador_nome"), firstInt(g, "jogador_id", "jogador.id")),
		AssistID:   optionalIntPtr(g, "assistencia_id", "assistencia.id"),
		AssistName: firstString(g, "assistencia.apelido", "assistencia.nome_completo", "assistencia.nome", "assistencia_nome"),
		Minute:     optionalIntPtr(g, "minuto"),
		OwnGoal:    firstBool(g, false, "gol_contra"),
	}
}
