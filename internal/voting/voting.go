// Package voting holds the local rules of MVP voting: ballot limits, the
// open/closed state of a vote and the short list of recently created votes
// kept in the session.
package voting

import (
	"context"
	"strings"
	"time"

	"github.com/codr1/Peladeiro/internal/datefmt"
	"github.com/codr1/Peladeiro/internal/models"
)

const (
	MaxSelections = 3
	// PointsPerSelection is the weight of each selected player.
	PointsPerSelection = 1

	ClosedMessage = "⏰ Esta votação não está aberta no momento. Verifique o período de votação."
)

// BallotError is a local rejection shown to the voter as is.
type BallotError struct {
	msg string
}

func (e *BallotError) Error() string { return e.msg }

var (
	ErrNoSelection       = &BallotError{"Selecione pelo menos 1 jogador para votar."}
	ErrTooManySelections = &BallotError{"Você só pode selecionar até 3 jogadores."}
	ErrInvalidVoter      = &BallotError{"ID do jogador deve ser um número válido."}
)

// Ballot is one voter's selection.
type Ballot struct {
	VoterID    int64
	Candidates []int64
}

// ValidateBallot checks the local limits on the selections as submitted,
// then drops repeated and non-positive candidates.
func ValidateBallot(b Ballot) (Ballot, error) {
	if b.VoterID <= 0 {
		return Ballot{}, ErrInvalidVoter
	}
	if len(b.Candidates) > MaxSelections {
		return Ballot{}, ErrTooManySelections
	}
	seen := make(map[int64]struct{}, len(b.Candidates))
	unique := make([]int64, 0, len(b.Candidates))
	for _, id := range b.Candidates {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return Ballot{}, ErrNoSelection
	}
	return Ballot{VoterID: b.VoterID, Candidates: unique}, nil
}

// Caster records a single point for a candidate.
type Caster interface {
	CastVote(ctx context.Context, voteID, voterID, votedID int64, points int) error
}

// Cast validates the ballot and records one point per candidate. Nothing is
// sent when validation fails. It returns the number of recorded selections.
func Cast(ctx context.Context, caster Caster, voteID int64, b Ballot) (int, error) {
	ballot, err := ValidateBallot(b)
	if err != nil {
		return 0, err
	}
	for i, candidate := range ballot.Candidates {
		if err := caster.CastVote(ctx, voteID, ballot.VoterID, candidate, PointsPerSelection); err != nil {
			return i, err
		}
	}
	return len(ballot.Candidates), nil
}

// FriendlyError rewrites the upstream "vote not open" message.
func FriendlyError(message string) string {
	if strings.Contains(strings.ToLower(message), "não está aberta") {
		return ClosedMessage
	}
	return message
}

type State string

const (
	Open    State = "aberta"
	Closed  State = "encerrada"
	Pending State = "agendada"
)

// Clock lets tests pin the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

var SystemClock Clock = systemClock{}

var (
	openStatuses    = []string{"aberta", "aberto", "open", "ativa", "em_andamento"}
	closedStatuses  = []string{"fechada", "fechado", "encerrada", "encerrado", "closed", "finalizada"}
	pendingStatuses = []string{"agendada", "pendente", "scheduled"}
)

// StateOf resolves the state of a vote. An explicit status wins; otherwise
// the close and open timestamps are compared to now. A vote with no usable
// data is treated as open.
func StateOf(vote models.Vote, now time.Time) State {
	status := strings.ToLower(strings.TrimSpace(vote.Status))
	switch {
	case contains(openStatuses, status):
		return Open
	case contains(closedStatuses, status):
		return Closed
	case contains(pendingStatuses, status):
		return Pending
	}

	if closes, ok := datefmt.Parse(vote.ClosesAt, now.Location()); ok && !now.Before(closes) {
		return Closed
	}
	if opens, ok := datefmt.Parse(vote.OpensAt, now.Location()); ok && now.Before(opens) {
		return Pending
	}
	return Open
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
