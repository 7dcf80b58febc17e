package services

import (
	"context"
	"net/http"
)

type GoalInput struct {
	TeamID   int64
	PlayerID int64
	Minute   *int
	OwnGoal  bool
	AssistID *int64
}

// CreateGoal records a goal. minuto is always sent, null when unknown;
// assistencia_id only when set.
func (s *Service) CreateGoal(ctx context.Context, matchID int64, in GoalInput) error {
	body := map[string]any{
		"time_id":    in.TeamID,
		"jogador_id": in.PlayerID,
		"minuto":     nil,
		"gol_contra": in.OwnGoal,
	}
	if in.Minute != nil {
		body["minuto"] = *in.Minute
	}
	if in.AssistID != nil {
		body["assistencia_id"] = *in.AssistID
	}
	_, err := s.api.Do(ctx, http.MethodPost, pathf("/api/peladas/partidas/%d/gols", matchID), body, nil)
	return err
}

func (s *Service) DeleteGoal(ctx context.Context, goalID int64) error {
	_, err := s.api.Do(ctx, http.MethodDelete, pathf("/api/peladas/gols/%d", goalID), nil, nil)
	return err
}
