package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/codr1/Peladeiro/internal/models"
	"github.com/codr1/Peladeiro/internal/positions"
)

type RoundInput struct {
	Date           string
	TeamCount      int
	PlayersPerTeam int
	// TeamIDs is optional; empty means the API forms the teams.
	TeamIDs []int64
}

func (s *Service) ListRounds(ctx context.Context, seasonID int64, page, perPage int) (models.Page[models.Round], error) {
	payload, err := s.api.Do(ctx, http.MethodGet, pathf("/api/peladas/temporadas/%d/rodadas", seasonID), nil, pageQuery(page, perPage))
	if err != nil {
		return models.Page[models.Round]{}, err
	}
	return models.DecodePage(payload, models.DecodeRound, "data", "rodadas"), nil
}

func (s *Service) CreateRound(ctx context.Context, seasonID int64, in RoundInput) (models.Round, error) {
	body := map[string]any{
		"data_rodada":        in.Date,
		"quantidade_times":   in.TeamCount,
		"jogadores_por_time": in.PlayersPerTeam,
	}
	if len(in.TeamIDs) > 0 {
		body["time_ids"] = in.TeamIDs
	}
	payload, err := s.api.Do(ctx, http.MethodPost, pathf("/api/peladas/temporadas/%d/rodadas", seasonID), body, nil)
	if err != nil {
		return models.Round{}, err
	}
	return models.DecodeRound(payload), nil
}

// GetRound also picks up teams the API returns beside the round object.
func (s *Service) GetRound(ctx context.Context, roundID int64) (models.Round, error) {
	payload, err := s.api.Do(ctx, http.MethodGet, pathf("/api/peladas/rodadas/%d", roundID), nil, nil)
	if err != nil {
		return models.Round{}, err
	}
	round := models.DecodeRound(payload)
	if len(round.Teams) == 0 {
		for _, team := range models.Items(payload, "times") {
			round.Teams = append(round.Teams, models.DecodeTeam(team))
		}
	}
	return round, nil
}

// ListRoundPlayers lists the players taking part in a round. position
// filters by position code; onlyActive=false includes inactive players.
func (s *Service) ListRoundPlayers(ctx context.Context, roundID int64, position *positions.Code, onlyActive bool) ([]models.Player, error) {
	query := url.Values{}
	if position != nil {
		query.Set("posicao", strconv.Itoa(int(*position)))
	}
	if !onlyActive {
		query.Set("apenas_ativos", "false")
	}
	payload, err := s.api.Do(ctx, http.MethodGet, pathf("/api/peladas/rodadas/%d/jogadores", roundID), nil, query)
	if err != nil {
		return nil, err
	}
	var players []models.Player
	for _, item := range models.Items(payload, "jogadores", "data") {
		players = append(players, models.DecodePlayer(item))
	}
	return players, nil
}

// RoundTeams lists the teams of the round's season, falling back to the
// teams embedded in the round.
func (s *Service) RoundTeams(ctx context.Context, round models.Round) ([]models.Team, error) {
	if round.SeasonID == 0 {
		return round.Teams, nil
	}
	teams, err := s.ListTeams(ctx, round.SeasonID, 0, 0)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return round.Teams, nil
	}
	return teams, nil
}
