package rodadas

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Peladeiro/internal/api/apiutil"
	"github.com/codr1/Peladeiro/internal/models"
	"github.com/codr1/Peladeiro/internal/services"
)

const roundsPerPage = 10

var svc *services.Service

type roundForm struct {
	Date           string `label:"Data" validate:"required,datetime=2006-01-02"`
	TeamCount      int    `label:"Quantidade de times" validate:"min=2,max=20"`
	PlayersPerTeam int    `label:"Jogadores por time" validate:"min=1,max=30"`
}

// MatchForm is shared with the partidas handlers.
type MatchForm struct {
	HomeID int64 `label:"Time da casa" validate:"gt=0"`
	AwayID int64 `label:"Time visitante" validate:"gt=0,nefield=HomeID"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(service *services.Service) {
	svc = service
}

// GET /temporadas/{id}/rodadas
func HandleRoundsPage(w http.ResponseWriter, r *http.Request) {
	seasonID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	listing, err := svc.ListRounds(r.Context(), seasonID, apiutil.Page(r), roundsPerPage)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	teams, err := svc.ListTeams(r.Context(), seasonID, 0, 0)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	apiutil.RenderPage(w, r, "Rodadas", roundsPageComponent(seasonID, listing, teams))
}

// POST /temporadas/{id}/rodadas
func HandleCreateRound(w http.ResponseWriter, r *http.Request) {
	seasonID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	if err := apiutil.ParseForm(r); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	form := roundForm{
		Date:           apiutil.Trimmed(r, "data_rodada"),
		TeamCount:      apiutil.IntOrDefault(r.FormValue("quantidade_times"), 0),
		PlayersPerTeam: apiutil.IntOrDefault(r.FormValue("jogadores_por_time"), 0),
	}
	if err := apiutil.ValidateForm(form); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	teamIDs, err := selectedTeamIDs(r)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}

	round, err := svc.CreateRound(r.Context(), seasonID, services.RoundInput{
		Date:           form.Date,
		TeamCount:      form.TeamCount,
		PlayersPerTeam: form.PlayersPerTeam,
		TeamIDs:        teamIDs,
	})
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	log.Ctx(r.Context()).Info().Int64("temporada_id", seasonID).Int64("rodada_id", round.ID).Msg("Round created")
	apiutil.RedirectWithFlash(w, r, fmt.Sprintf("/temporadas/%d/rodadas", seasonID), "Rodada criada!")
}

func selectedTeamIDs(r *http.Request) ([]int64, error) {
	var ids []int64
	for _, raw := range r.Form["time_ids"] {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return nil, apiutil.FieldError{Field: "Times", Reason: "contém um valor inválido."}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GET /rodadas/{id}
func HandleRoundPage(w http.ResponseWriter, r *http.Request) {
	roundID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	round, err := svc.GetRound(r.Context(), roundID)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	matches, err := svc.ListMatches(r.Context(), roundID)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	teams, err := svc.RoundTeams(r.Context(), round)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	models.EnrichMatches(matches, teams)
	apiutil.RenderPage(w, r, "Rodada", roundDetailComponent(roundID, round, matches, teams))
}

// POST /rodadas/{id}
func HandleCreateMatch(w http.ResponseWriter, r *http.Request) {
	roundID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	form, err := ParseMatchForm(r)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	match, err := svc.CreateMatch(r.Context(), roundID, form.HomeID, form.AwayID)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	log.Ctx(r.Context()).Info().Int64("rodada_id", roundID).Int64("partida_id", match.ID).Msg("Match created")
	apiutil.RedirectWithFlash(w, r, fmt.Sprintf("/rodadas/%d", roundID), "Partida criada!")
}

// ParseMatchForm reads and validates the home/away team pair.
func ParseMatchForm(r *http.Request) (MatchForm, error) {
	if err := apiutil.ParseForm(r); err != nil {
		return MatchForm{}, err
	}
	homeID, err := apiutil.ParsePositiveInt64Field(r.FormValue("time_casa_id"), "Time da casa")
	if err != nil {
		return MatchForm{}, err
	}
	awayID, err := apiutil.ParsePositiveInt64Field(r.FormValue("time_fora_id"), "Time visitante")
	if err != nil {
		return MatchForm{}, err
	}
	form := MatchForm{HomeID: homeID, AwayID: awayID}
	if err := apiutil.ValidateForm(form); err != nil {
		return MatchForm{}, err
	}
	return form, nil
}
