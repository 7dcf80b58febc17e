package models

import (
	"strings"

	"github.com/tidwall/gjson"
)

type Season struct {
	ID         int64
	LeagueID   int64
	StartMonth string
	EndMonth   string
	Status     string
	Closed     bool
}

func DecodeSeason(r gjson.Result) Season {
	s := Unwrap(r, "temporada")
	status := strings.ToLower(firstString(s, "status"))
	closed := firstBool(s, false, "encerrada") ||
		status == "encerrada" || status == "finalizada" ||
		!firstBool(s, true, "ativa")
	return Season{
		ID:         firstInt(s, "id"),
		LeagueID:   firstInt(s, "pelada_id", "pelada.id"),
		StartMonth: firstString(s, "inicio_mes", "inicio"),
		EndMonth:   firstString(s, "fim_mes", "fim"),
		Status:     status,
		Closed:     closed,
	}
}

type Round struct {
	ID             int64
	SeasonID       int64
	Date           string
	TeamCount      int
	PlayersPerTeam int
	Teams          []Team
}

func DecodeRound(r gjson.Result) Round {
	round := Unwrap(r, "rodada")
	return Round{
		ID:             firstInt(round, "id"),
		SeasonID:       firstInt(round, "temporada_id", "temporada.id"),
		Date:           firstString(round, "data_rodada", "data"),
		TeamCount:      int(firstInt(round, "quantidade_times")),
		PlayersPerTeam: int(firstInt(round, "jogadores_por_time")),
		Teams:          decodeAll(Items(round, "times"), DecodeTeam),
	}
}
