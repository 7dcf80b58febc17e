package services

import (
	"context"
	"net/http"

	"github.com/codr1/Peladeiro/internal/models"
)

func (s *Service) ListMatches(ctx context.Context, roundID int64) ([]models.Match, error) {
	payload, err := s.api.Do(ctx, http.MethodGet, pathf("/api/peladas/rodadas/%d/partidas", roundID), nil, nil)
	if err != nil {
		return nil, err
	}
	var matches []models.Match
	for _, item := range models.Items(payload, "partidas", "data") {
		matches = append(matches, models.DecodeMatch(item))
	}
	return matches, nil
}

func (s *Service) CreateMatch(ctx context.Context, roundID, homeID, awayID int64) (models.Match, error) {
	payload, err := s.api.Do(ctx, http.MethodPost, pathf("/api/peladas/rodadas/%d/partidas", roundID), map[string]int64{
		"time_casa_id": homeID,
		"time_fora_id": awayID,
	}, nil)
	if err != nil {
		return models.Match{}, err
	}
	return models.DecodeMatch(payload), nil
}

func (s *Service) GetMatch(ctx context.Context, matchID int64) (models.Match, error) {
	payload, err := s.api.Do(ctx, http.MethodGet, pathf("/api/peladas/partidas/%d", matchID), nil, nil)
	if err != nil {
		return models.Match{}, err
	}
	return models.DecodeMatch(payload), nil
}

func (s *Service) StartMatch(ctx context.Context, matchID int64) error {
	_, err := s.api.Do(ctx, http.MethodPost, pathf("/api/peladas/partidas/%d/iniciar", matchID), nil, nil)
	return err
}

func (s *Service) FinishMatch(ctx context.Context, matchID int64) error {
	_, err := s.api.Do(ctx, http.MethodPost, pathf("/api/peladas/partidas/%d/finalizar", matchID), nil, nil)
	return err
}
