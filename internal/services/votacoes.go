package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Peladeiro/internal/models"
)

type VoteInput struct {
	OpensAt  string
	ClosesAt string
	Kind     string
}

// CreateVote returns the new vote ID; ok is false when the API did not
// report one.
func (s *Service) CreateVote(ctx context.Context, roundID int64, in VoteInput) (int64, bool, error) {
	payload, err := s.api.Do(ctx, http.MethodPost, pathf("/api/peladas/rodadas/%d/votacoes", roundID), map[string]string{
		"abre_em":  in.OpensAt,
		"fecha_em": in.ClosesAt,
		"tipo":     in.Kind,
	}, nil)
	if err != nil {
		return 0, false, err
	}
	id, ok := models.CreatedVoteID(payload)
	return id, ok, nil
}

// GetVote fetches a vote's details. Not every API version serves this
// route, so any failure is reported as absence.
func (s *Service) GetVote(ctx context.Context, voteID int64) (models.Vote, bool) {
	payload, err := s.api.Do(ctx, http.MethodGet, pathf("/api/peladas/votacoes/%d", voteID), nil, nil)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Int64("votacao_id", voteID).Msg("Vote details unavailable")
		return models.Vote{}, false
	}
	vote := models.DecodeVote(payload)
	return vote, vote.ID != 0
}

func (s *Service) VoteResult(ctx context.Context, voteID int64) (models.VoteResult, error) {
	payload, err := s.api.Do(ctx, http.MethodGet, pathf("/api/peladas/votacoes/%d/resultado", voteID), nil, nil)
	if err != nil {
		return models.VoteResult{}, err
	}
	return models.DecodeVoteResult(payload), nil
}

// RoundVoteResults lists the results of every vote in a round, optionally
// only those of one kind.
func (s *Service) RoundVoteResults(ctx context.Context, roundID int64, kind string) ([]models.VoteResult, error) {
	var query url.Values
	if kind != "" {
		query = url.Values{"tipo": {kind}}
	}
	payload, err := s.api.Do(ctx, http.MethodGet, pathf("/api/peladas/rodadas/%d/votacoes/resultados", roundID), nil, query)
	if err != nil {
		return nil, err
	}
	return models.DecodeRoundVoteResults(payload), nil
}

// CastVote satisfies voting.Caster.
func (s *Service) CastVote(ctx context.Context, voteID, voterID, votedID int64, points int) error {
	_, err := s.api.Do(ctx, http.MethodPost, pathf("/api/peladas/votacoes/%d/votar", voteID), map[string]any{
		"jogador_votante_id": voterID,
		"jogador_votado_id":  votedID,
		"pontos":             points,
	}, nil)
	return err
}
