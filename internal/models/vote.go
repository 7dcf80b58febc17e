package models

import (
	"github.com/tidwall/gjson"

	"github.com/codr1/Peladeiro/internal/positions"
)

type Vote struct {
	ID       int64
	RoundID  *int64
	Kind     string
	OpensAt  string
	ClosesAt string
	Status   string
}

func DecodeVote(r gjson.Result) Vote {
	v := Unwrap(r, "votacao")
	return Vote{
		ID:       firstInt(v, "id"),
		RoundID:  optionalIntPtr(v, "rodada_id", "rodada.id"),
		Kind:     firstString(v, "tipo"),
		OpensAt:  firstString(v, "abre_em"),
		ClosesAt: firstString(v, "fecha_em"),
		Status:   firstString(v, "status"),
	}
}

// CreatedVoteID extracts the ID of a freshly created vote, which the API
// reports under votacao.id, votacao_id or id.
func CreatedVoteID(r gjson.Result) (int64, bool) {
	id, ok := optionalInt(r, "votacao.id", "votacao_id", "id")
	return id, ok && id != 0
}

type VoteTally struct {
	PlayerID int64
	FullName string
	Nickname string
	PhotoURL string
	Points   int
	Votes    int
	Position positions.Position
}

func (t VoteTally) DisplayName() string {
	return displayName(t.Nickname, t.FullName, t.PlayerID)
}

func DecodeVoteTally(r gjson.Result) VoteTally {
	player := Unwrap(r, "jogador")
	position := positions.FromPlayer(r)
	if position.IsUnknown() {
		position = positions.FromPlayer(player)
	}
	return VoteTally{
		PlayerID: firstInt(r, "jogador_id", "jogador.id", "id"),
		FullName: firstString(player, "nome_completo", "nome", "jogador_nome"),
		Nickname: firstString(player, "apelido"),
		PhotoURL: firstString(player, "foto_url", "foto"),
		Points:   int(firstInt(r, "pontos", "total_pontos")),
		Votes:    int(firstInt(r, "votos", "total_votos")),
		Position: position,
	}
}

// VoteResult is the tally of one vote. Newer API versions put the fields at
// the top level, older ones nest them under votacao.
type VoteResult struct {
	Vote       Vote
	TotalVotes int
	Tallies    []VoteTally
	Winner     *VoteTally
}

func DecodeVoteResult(r gjson.Result) VoteResult {
	nested := r.Get("votacao")
	result := VoteResult{
		Vote:       DecodeVote(r),
		TotalVotes: int(firstInt(r, "total_votos", "votacao.total_votos")),
	}

	tallies := Items(r, "resultado")
	if tallies == nil && nested.IsObject() {
		tallies = Items(nested, "resultado")
	}
	result.Tallies = decodeAll(tallies, DecodeVoteTally)

	winner, ok := lookup(r, "vencedor", "votacao.vencedor")
	if ok && winner.IsObject() {
		tally := DecodeVoteTally(winner)
		result.Winner = &tally
	}
	return result
}

// DecodeRoundVoteResults reads the per-round listing, a bare list or an
// object with votacoes.
func DecodeRoundVoteResults(r gjson.Result) []VoteResult {
	return decodeAll(Items(r, "votacoes"), DecodeVoteResult)
}
