package services

import (
	"context"
	"net/http"

	"github.com/codr1/Peladeiro/internal/datefmt"
	"github.com/codr1/Peladeiro/internal/models"
)

func (s *Service) ListSeasons(ctx context.Context, leagueID int64, page, perPage int) (models.Page[models.Season], error) {
	payload, err := s.api.Do(ctx, http.MethodGet, pathf("/api/peladas/%d/temporadas", leagueID), nil, pageQuery(page, perPage))
	if err != nil {
		return models.Page[models.Season]{}, err
	}
	return models.DecodePage(payload, models.DecodeSeason, "data", "temporadas"), nil
}

// CreateSeason accepts YYYY-MM month values and sends them as YYYY-MM-01.
func (s *Service) CreateSeason(ctx context.Context, leagueID int64, startMonth, endMonth string) (models.Season, error) {
	payload, err := s.api.Do(ctx, http.MethodPost, pathf("/api/peladas/%d/temporadas", leagueID), map[string]string{
		"inicio_mes": datefmt.FirstOfMonth(startMonth),
		"fim_mes":    datefmt.FirstOfMonth(endMonth),
	}, nil)
	if err != nil {
		return models.Season{}, err
	}
	return models.DecodeSeason(payload), nil
}

func (s *Service) GetSeason(ctx context.Context, seasonID int64) (models.Season, error) {
	payload, err := s.api.Do(ctx, http.MethodGet, pathf("/api/peladas/temporadas/%d", seasonID), nil, nil)
	if err != nil {
		return models.Season{}, err
	}
	return models.DecodeSeason(payload), nil
}

func (s *Service) CloseSeason(ctx context.Context, seasonID int64) error {
	_, err := s.api.Do(ctx, http.MethodPost, pathf("/api/peladas/temporadas/%d/encerrar", seasonID), nil, nil)
	return err
}
