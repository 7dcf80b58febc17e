package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/codr1/Peladeiro/internal/models"
)

// DefaultRankingLimit is used when callers pass a non-positive limit.
const DefaultRankingLimit = 10

func (s *Service) TeamStandings(ctx context.Context, seasonID int64) ([]models.TeamStanding, error) {
	payload, err := s.api.Do(ctx, http.MethodGet, pathf("/api/peladas/temporadas/%d/ranking/times", seasonID), nil, nil)
	if err != nil {
		return nil, err
	}
	return models.DecodeStandings(payload), nil
}

func (s *Service) TopScorers(ctx context.Context, seasonID int64, limit int) ([]models.RankingEntry, error) {
	return s.playerRanking(ctx, seasonID, models.RankingGoals, limit)
}

func (s *Service) TopAssists(ctx context.Context, seasonID int64, limit int) ([]models.RankingEntry, error) {
	return s.playerRanking(ctx, seasonID, models.RankingAssists, limit)
}

func (s *Service) playerRanking(ctx context.Context, seasonID int64, kind models.RankingKind, limit int) ([]models.RankingEntry, error) {
	if limit <= 0 {
		limit = DefaultRankingLimit
	}
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	payload, err := s.api.Do(ctx, http.MethodGet, pathf("/api/peladas/temporadas/%d/ranking/%s", seasonID, kind), nil, query)
	if err != nil {
		return nil, err
	}
	return models.DecodeRanking(payload, kind), nil
}
