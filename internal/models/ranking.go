package models

import (
	"github.com/tidwall/gjson"
)

type RankingKind string

const (
	RankingGoals   RankingKind = "artilheiros"
	RankingAssists RankingKind = "assistencias"
)

var rankingTotalKeys = map[RankingKind][]string{
	RankingGoals:   {"jogador.total_gols", "gols", "total_gols"},
	RankingAssists: {"jogador.total_assistencias", "assistencias", "total_assistencias"},
}

// RankingEntry is one player line of a scorers or assists ranking.
type RankingEntry struct {
	PlayerID int64
	FullName string
	Nickname string
	PhotoURL string
	TeamName string
	Total    int
}

func (e RankingEntry) DisplayName() string {
	return displayName(e.Nickname, e.FullName, e.PlayerID)
}

// DecodeRanking reads a player ranking delivered either as a bare list or
// under ranking/data. Entries without a player ID are skipped.
func DecodeRanking(r gjson.Result, kind RankingKind) []RankingEntry {
	var out []RankingEntry
	for _, item := range Items(r, "ranking", "data") {
		player := item.Get("jogador")
		if !player.IsObject() {
			continue
		}
		id := firstInt(player, "id")
		if id == 0 {
			continue
		}
		out = append(out, RankingEntry{
			PlayerID: id,
			FullName: firstString(player, "nome_completo", "nome"),
			Nickname: firstString(player, "apelido"),
			PhotoURL: firstString(player, "foto_url", "foto"),
			TeamName: firstString(item, "time.nome", "time_nome"),
			Total:    int(firstNonZero(item, rankingTotalKeys[kind]...)),
		})
	}
	return out
}

func firstNonZero(r gjson.Result, paths ...string) int64 {
	for _, path := range paths {
		if n, ok := asInt(r.Get(path)); ok && n != 0 {
			return n
		}
	}
	return 0
}

type TeamStanding struct {
	TeamID       int64
	Name         string
	CrestURL     string
	Points       int
	Played       int
	Wins         int
	Draws        int
	Losses       int
	GoalsFor     int
	GoalsAgainst int
	GoalDiff     int
}

// DecodeStandings reads the team ranking; items are either {time, stats}
// rows or bare team objects carrying the stats.
func DecodeStandings(r gjson.Result) []TeamStanding {
	var out []TeamStanding
	for _, item := range Items(r, "ranking", "data") {
		if !item.IsObject() {
			continue
		}
		team := Unwrap(item, "time")
		standing := TeamStanding{
			TeamID:       firstInt(team, "id"),
			Name:         firstString(team, "nome"),
			CrestURL:     firstString(team, "escudo_url", "escudo"),
			Points:       int(firstInt(item, "pontos")),
			Played:       int(firstInt(item, "jogos", "partidas")),
			Wins:         int(firstInt(item, "vitorias")),
			Draws:        int(firstInt(item, "empates")),
			Losses:       int(firstInt(item, "derrotas")),
			GoalsFor:     int(firstInt(item, "gols_pro", "gols_marcados")),
			GoalsAgainst: int(firstInt(item, "gols_contra", "gols_sofridos")),
		}
		if diff, ok := optionalInt(item, "saldo_gols", "saldo"); ok {
			standing.GoalDiff = int(diff)
		} else {
			standing.GoalDiff = standing.GoalsFor - standing.GoalsAgainst
		}
		out = append(out, standing)
	}
	return out
}
