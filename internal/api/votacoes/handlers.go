package votacoes

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Peladeiro/internal/api/apiutil"
	"github.com/codr1/Peladeiro/internal/apiclient"
	"github.com/codr1/Peladeiro/internal/datefmt"
	"github.com/codr1/Peladeiro/internal/models"
	"github.com/codr1/Peladeiro/internal/positions"
	"github.com/codr1/Peladeiro/internal/services"
	"github.com/codr1/Peladeiro/internal/session"
	"github.com/codr1/Peladeiro/internal/voting"
)

const defaultKind = "Votação"

var (
	svc   *services.Service
	clock voting.Clock = voting.SystemClock
)

type voteForm struct {
	OpensAt  string `label:"Abertura" validate:"required"`
	ClosesAt string `label:"Fechamento" validate:"required"`
	Kind     string `label:"Tipo" validate:"max=40"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(service *services.Service) {
	svc = service
}

// GET /rodadas/{id}/votacoes
func HandleVotesPage(w http.ResponseWriter, r *http.Request) {
	roundID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	createdID := int64(apiutil.IntOrDefault(r.URL.Query().Get("created"), 0))
	recent := session.FromContext(r.Context()).RecentVotes()
	apiutil.RenderPage(w, r, "Votações", votesPageComponent(roundID, createdID, recent))
}

// POST /rodadas/{id}/votacoes
func HandleCreateVote(w http.ResponseWriter, r *http.Request) {
	roundID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	if err := apiutil.ParseForm(r); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	form := voteForm{
		OpensAt:  apiutil.Trimmed(r, "abre_em"),
		ClosesAt: apiutil.Trimmed(r, "fecha_em"),
		Kind:     apiutil.Trimmed(r, "tipo"),
	}
	if err := apiutil.ValidateForm(form); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	opens, okOpen := datefmt.Parse(form.OpensAt, time.Local)
	closes, okClose := datefmt.Parse(form.ClosesAt, time.Local)
	if okOpen && okClose && !closes.After(opens) {
		apiutil.HandleError(w, r, apiutil.FieldError{Field: "Fechamento", Reason: "deve ser posterior à abertura."})
		return
	}

	voteID, ok, err := svc.CreateVote(r.Context(), roundID, services.VoteInput{
		OpensAt:  form.OpensAt,
		ClosesAt: form.ClosesAt,
		Kind:     form.Kind,
	})
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}

	target := votesPath(roundID)
	if ok {
		kind := form.Kind
		if kind == "" {
			kind = defaultKind
		}
		session.FromContext(r.Context()).RememberVote(voting.RecentVote{
			ID:       voteID,
			RoundID:  roundID,
			Kind:     kind,
			OpensAt:  form.OpensAt,
			ClosesAt: form.ClosesAt,
		})
		target += "?created=" + strconv.FormatInt(voteID, 10)
	}
	log.Ctx(r.Context()).Info().Int64("rodada_id", roundID).Int64("votacao_id", voteID).Bool("id_reported", ok).Msg("Vote created")
	apiutil.RedirectWithFlash(w, r, target, "Votação criada!")
}

// GET /votacoes/{id}/votar
func HandleBallotPage(w http.ResponseWriter, r *http.Request) {
	voteID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}

	vote, found := svc.GetVote(r.Context(), voteID)
	roundID := roundFor(r, voteID, vote.RoundID)
	view := ballotView{VoteID: voteID, RoundID: roundID, State: voting.Open}
	if found {
		view.Vote = &vote
		view.State = voting.StateOf(vote, clock.Now())
	}

	if roundID != 0 && view.State == voting.Open {
		players, err := svc.ListRoundPlayers(r.Context(), roundID, nil, true)
		switch {
		case apiclient.IsAuthFailure(err):
			apiutil.HandleError(w, r, err)
			return
		case err != nil:
			log.Ctx(r.Context()).Warn().Err(err).Int64("rodada_id", roundID).Msg("Failed to load round players for ballot")
			view.PlayersFailed = true
		default:
			view.Groups = positions.GroupBy(players,
				func(p models.Player) positions.Position { return p.Position },
				models.Player.DisplayName)
		}
	}
	apiutil.RenderPage(w, r, "Votar", ballotComponent(view))
}

// POST /votacoes/{id}/votar
func HandleCastBallot(w http.ResponseWriter, r *http.Request) {
	voteID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	if err := apiutil.ParseForm(r); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}

	ballot, err := parseBallot(r)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	recorded, err := voting.Cast(r.Context(), svc, voteID, ballot)
	if err != nil {
		if recorded > 0 {
			log.Ctx(r.Context()).Warn().Err(err).Int64("votacao_id", voteID).Int("recorded", recorded).Msg("Ballot partially recorded")
		}
		apiutil.HandleError(w, r, err)
		return
	}
	log.Ctx(r.Context()).Info().Int64("votacao_id", voteID).Int64("votante_id", ballot.VoterID).Int("selected", recorded).Msg("Ballot cast")

	message := fmt.Sprintf("Voto registrado! %d jogador(es) selecionado(s).", recorded)
	apiutil.RedirectWithFlash(w, r, ballotPath(voteID, int64(apiutil.IntOrDefault(r.URL.Query().Get("rodada_id"), 0))), message)
}

// parseBallot reads the voter and candidates. Limits are left to voting.Cast.
func parseBallot(r *http.Request) (voting.Ballot, error) {
	rawVoter := apiutil.Trimmed(r, "jogador_votante_id")
	if rawVoter == "" {
		return voting.Ballot{}, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Informe seu ID de jogador para votar."}
	}
	voterID, err := strconv.ParseInt(rawVoter, 10, 64)
	if err != nil {
		return voting.Ballot{}, voting.ErrInvalidVoter
	}

	var candidates []int64
	for _, raw := range r.Form["jogador_votado_ids"] {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return voting.Ballot{}, apiutil.FieldError{Field: "Jogadores", Reason: "contém um valor inválido."}
		}
		candidates = append(candidates, id)
	}
	return voting.Ballot{VoterID: voterID, Candidates: candidates}, nil
}

// GET /votacoes/{id}/resultado
func HandleVoteResult(w http.ResponseWriter, r *http.Request) {
	voteID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	result, err := svc.VoteResult(r.Context(), voteID)
	roundID := roundFor(r, voteID, result.Vote.RoundID)
	if err != nil {
		failToRound(w, r, roundID, err)
		return
	}
	groups := positions.GroupBy(result.Tallies,
		func(t models.VoteTally) positions.Position { return t.Position },
		models.VoteTally.DisplayName)
	apiutil.RenderPage(w, r, "Resultado da votação", resultComponent(voteID, roundID, result, groups))
}

// GET /rodadas/{id}/votacoes/resultados
func HandleRoundResults(w http.ResponseWriter, r *http.Request) {
	roundID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	kind := strings.TrimSpace(r.URL.Query().Get("tipo"))
	results, err := svc.RoundVoteResults(r.Context(), roundID, kind)
	if err != nil {
		failToRound(w, r, roundID, err)
		return
	}
	apiutil.RenderPage(w, r, "Resultados das votações", roundResultsComponent(roundID, kind, results))
}

// failToRound sends result pages that failed upstream back to the round's
// vote page, or home when the round is unknown.
func failToRound(w http.ResponseWriter, r *http.Request, roundID int64, err error) {
	if apiclient.IsAuthFailure(err) {
		apiutil.HandleError(w, r, err)
		return
	}
	apiErr, ok := apiclient.AsAPIError(err)
	if !ok {
		apiutil.HandleError(w, r, err)
		return
	}
	log.Ctx(r.Context()).Warn().Err(err).Int64("rodada_id", roundID).Msg("Vote results unavailable")
	session.FromContext(r.Context()).AddFlash(session.FlashError, voting.FriendlyError(apiErr.Message()))
	target := apiutil.HomePath
	if roundID != 0 {
		target = votesPath(roundID)
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// roundFor resolves the round of a vote: the rodada_id query parameter, then
// what the API reported, then the session's recent votes.
func roundFor(r *http.Request, voteID int64, reported *int64) int64 {
	if id := apiutil.IntOrDefault(r.URL.Query().Get("rodada_id"), 0); id > 0 {
		return int64(id)
	}
	if reported != nil && *reported > 0 {
		return *reported
	}
	if id, ok := session.FromContext(r.Context()).RoundForVote(voteID); ok {
		return id
	}
	return 0
}

func votesPath(roundID int64) string {
	return fmt.Sprintf("/rodadas/%d/votacoes", roundID)
}

func ballotPath(voteID, roundID int64) string {
	path := fmt.Sprintf("/votacoes/%d/votar", voteID)
	if roundID != 0 {
		path += "?" + url.Values{"rodada_id": {strconv.FormatInt(roundID, 10)}}.Encode()
	}
	return path
}
