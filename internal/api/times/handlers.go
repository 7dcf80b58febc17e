package times

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Peladeiro/internal/api/apiutil"
	"github.com/codr1/Peladeiro/internal/api/htmx"
	"github.com/codr1/Peladeiro/internal/apiclient"
	"github.com/codr1/Peladeiro/internal/models"
	"github.com/codr1/Peladeiro/internal/services"
	"github.com/codr1/Peladeiro/internal/session"
)

const (
	actionAdd          = "add"
	actionRemove       = "remove"
	actionUpdate       = "update"
	actionUpdateEscudo = "update_escudo"

	teamsPerPage = 200
)

var svc *services.Service

type teamForm struct {
	Name  string `label:"Nome" validate:"required,max=60"`
	Color string `label:"Cor" validate:"omitempty,hexcolor"`
}

type memberForm struct {
	PlayerID int64  `label:"Jogador" validate:"gt=0"`
	Position string `label:"Posição" validate:"max=40"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(service *services.Service) {
	svc = service
}

// GET /temporadas/{id}/times
func HandleTeamsPage(w http.ResponseWriter, r *http.Request) {
	seasonID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	teams, err := svc.ListTeams(r.Context(), seasonID, 0, 0)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	apiutil.RenderPage(w, r, "Times", teamsPageComponent(seasonID, teams))
}

// POST /temporadas/{id}/times
func HandleCreateTeam(w http.ResponseWriter, r *http.Request) {
	seasonID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	if err := apiutil.ParseForm(r); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	form := teamForm{
		Name:  apiutil.Trimmed(r, "nome"),
		Color: apiutil.Trimmed(r, "cor"),
	}
	if err := apiutil.ValidateForm(form); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	crest, err := apiutil.FormFile(r, "escudo")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	defer crest.Close()

	team, err := svc.CreateTeam(r.Context(), seasonID, form.Name, form.Color, crest)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	log.Ctx(r.Context()).Info().Int64("temporada_id", seasonID).Int64("time_id", team.ID).Msg("Team created")
	apiutil.RedirectWithFlash(w, r, fmt.Sprintf("/temporadas/%d/times", seasonID), "Time criado!")
}

// GET /times/{id}
func HandleTeamPage(w http.ResponseWriter, r *http.Request) {
	teamID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	team, err := svc.GetTeam(r.Context(), teamID)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}

	available, availableErr := availablePlayers(r, team)
	if availableErr != nil {
		if apiclient.IsAuthFailure(availableErr) {
			apiutil.HandleError(w, r, availableErr)
			return
		}
		log.Ctx(r.Context()).Warn().Err(availableErr).Int64("time_id", teamID).Msg("Could not load available players")
	}
	apiutil.RenderPage(w, r, team.Name, teamDetailComponent(team, available, availableErr != nil))
}

// availablePlayers resolves the league through the team's season.
func availablePlayers(r *http.Request, team models.Team) ([]models.Player, error) {
	if team.SeasonID == 0 {
		return nil, nil
	}
	season, err := svc.GetSeason(r.Context(), team.SeasonID)
	if err != nil {
		return nil, err
	}
	if season.LeagueID == 0 {
		return nil, nil
	}
	return svc.AvailablePlayers(r.Context(), season.LeagueID, team.SeasonID)
}

// POST /times/{id}
//
// HTMX roster actions get the refreshed roster fragment back.
func HandleTeamAction(w http.ResponseWriter, r *http.Request) {
	teamID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	if err := apiutil.ParseForm(r); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	logger := log.Ctx(r.Context())
	target := fmt.Sprintf("/times/%d", teamID)

	action := r.FormValue("action")
	if action == actionUpdateEscudo {
		crest, err := apiutil.FormFile(r, "escudo")
		if err != nil {
			apiutil.HandleError(w, r, err)
			return
		}
		defer crest.Close()
		if _, err := svc.UpdateCrest(r.Context(), teamID, crest); err != nil {
			apiutil.HandleError(w, r, err)
			return
		}
		logger.Info().Int64("time_id", teamID).Msg("Team crest updated")
		apiutil.RedirectWithFlash(w, r, target, "Escudo atualizado!")
		return
	}

	form, err := parseMemberForm(r)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}

	var message string
	switch action {
	case actionAdd:
		err = svc.AddTeamPlayer(r.Context(), teamID, form.PlayerID, apiutil.Checkbox(r, "capitao"), form.Position)
		message = "Jogador adicionado!"
	case actionRemove:
		err = svc.RemoveTeamPlayer(r.Context(), teamID, form.PlayerID)
		message = "Jogador removido!"
	case actionUpdate:
		var updated bool
		updated, err = svc.UpdateTeamPlayerPosition(r.Context(), teamID, form.PlayerID, form.Position)
		message = "Posição atualizada!"
		if err == nil && !updated {
			err = apiutil.HandlerError{Status: http.StatusNotFound, Message: "Jogador não encontrado no time."}
		}
	default:
		apiutil.HandleError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Ação inválida."})
		return
	}
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	logger.Info().Int64("time_id", teamID).Int64("jogador_id", form.PlayerID).Str("action", action).Msg("Team roster changed")

	if !htmx.IsRequest(r) {
		apiutil.RedirectWithFlash(w, r, target, message)
		return
	}
	team, err := svc.GetTeam(r.Context(), teamID)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	apiutil.Flash(r, session.FlashOK, message)
	apiutil.RenderFragment(w, r, rosterComponent(team))
}

func parseMemberForm(r *http.Request) (memberForm, error) {
	playerID, err := apiutil.ParsePositiveInt64Field(r.FormValue("jogador_id"), "Jogador")
	if err != nil {
		return memberForm{}, err
	}
	form := memberForm{PlayerID: playerID, Position: apiutil.Trimmed(r, "posicao")}
	if err := apiutil.ValidateForm(form); err != nil {
		return memberForm{}, err
	}
	return form, nil
}
