package partidas

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Peladeiro/internal/api/apiutil"
	"github.com/codr1/Peladeiro/internal/api/htmx"
	"github.com/codr1/Peladeiro/internal/api/rodadas"
	"github.com/codr1/Peladeiro/internal/apiclient"
	"github.com/codr1/Peladeiro/internal/models"
	"github.com/codr1/Peladeiro/internal/services"
	"github.com/codr1/Peladeiro/internal/session"
)

var svc *services.Service

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(service *services.Service) {
	svc = service
}

// GET /rodadas/{id}/partidas
func HandleMatchesPage(w http.ResponseWriter, r *http.Request) {
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
	apiutil.RenderPage(w, r, "Partidas", matchesPageComponent(roundID, round, matches, teams))
}

// POST /rodadas/{id}/partidas
func HandleCreateMatch(w http.ResponseWriter, r *http.Request) {
	roundID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	form, err := rodadas.ParseMatchForm(r)
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
	apiutil.RedirectWithFlash(w, r, fmt.Sprintf("/rodadas/%d/partidas", roundID), "Partida criada!")
}

// GET /partidas/{id}
func HandleMatchPage(w http.ResponseWriter, r *http.Request) {
	matchID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	match, teams, err := loadMatch(r.Context(), matchID)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	apiutil.RenderPage(w, r, "Partida", matchPageComponent(match, teams))
}

// loadMatch fetches the match and the full rosters of both sides. A roster
// that cannot be loaded only costs the goal form its players.
func loadMatch(ctx context.Context, matchID int64) (models.Match, []models.Team, error) {
	match, err := svc.GetMatch(ctx, matchID)
	if err != nil {
		return models.Match{}, nil, err
	}
	if match.ID == 0 {
		match.ID = matchID
	}

	var teams []models.Team
	for _, teamID := range []int64{match.HomeID, match.AwayID} {
		if teamID == 0 {
			continue
		}
		team, err := svc.GetTeam(ctx, teamID)
		if err != nil {
			if apiclient.IsAuthFailure(err) {
				return models.Match{}, nil, err
			}
			log.Ctx(ctx).Warn().Err(err).Int64("partida_id", matchID).Int64("time_id", teamID).Msg("Failed to load match roster")
			continue
		}
		if team.ID == 0 {
			team.ID = teamID
		}
		teams = append(teams, team)
	}
	match.Enrich(models.TeamsByID(teams))
	return match, teams, nil
}

// POST /partidas/{id}/iniciar
func HandleStartMatch(w http.ResponseWriter, r *http.Request) {
	changeStatus(w, r, svc.StartMatch, "Partida iniciada!")
}

// POST /partidas/{id}/finalizar
func HandleFinishMatch(w http.ResponseWriter, r *http.Request) {
	changeStatus(w, r, svc.FinishMatch, "Partida finalizada!")
}

func changeStatus(w http.ResponseWriter, r *http.Request, change func(context.Context, int64) error, message string) {
	matchID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	if err := change(r.Context(), matchID); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	log.Ctx(r.Context()).Info().Int64("partida_id", matchID).Str("flash", message).Msg("Match status changed")
	apiutil.RedirectWithFlash(w, r, matchPath(matchID), message)
}

// POST /partidas/{id}/gol
func HandleCreateGoal(w http.ResponseWriter, r *http.Request) {
	matchID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	input, err := parseGoalForm(r)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	if err := svc.CreateGoal(r.Context(), matchID, input); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	log.Ctx(r.Context()).Info().Int64("partida_id", matchID).Int64("jogador_id", input.PlayerID).Msg("Goal recorded")
	respondWithScoreboard(w, r, matchID, "Gol registrado!")
}

func parseGoalForm(r *http.Request) (services.GoalInput, error) {
	if err := apiutil.ParseForm(r); err != nil {
		return services.GoalInput{}, err
	}
	teamID, err := apiutil.ParsePositiveInt64Field(r.FormValue("time_id"), "Time")
	if err != nil {
		return services.GoalInput{}, err
	}
	playerID, err := apiutil.ParsePositiveInt64Field(r.FormValue("jogador_id"), "Jogador")
	if err != nil {
		return services.GoalInput{}, err
	}
	minute, err := apiutil.ParseOptionalInt(r.FormValue("minuto"), "Minuto")
	if err != nil {
		return services.GoalInput{}, err
	}
	assistID, err := apiutil.ParseOptionalID(r.FormValue("assistencia_id"), "Assistência")
	if err != nil {
		return services.GoalInput{}, err
	}
	if assistID != nil && *assistID == playerID {
		return services.GoalInput{}, apiutil.FieldError{Field: "Assistência", Reason: "deve ser de outro jogador."}
	}
	return services.GoalInput{
		TeamID:   teamID,
		PlayerID: playerID,
		Minute:   minute,
		OwnGoal:  apiutil.Checkbox(r, "gol_contra"),
		AssistID: assistID,
	}, nil
}

// POST /gols/{id}/delete
func HandleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	goalID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	if err := apiutil.ParseForm(r); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	matchID, err := apiutil.ParsePositiveInt64Field(r.FormValue("partida_id"), "Partida")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	if err := svc.DeleteGoal(r.Context(), goalID); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	log.Ctx(r.Context()).Info().Int64("partida_id", matchID).Int64("gol_id", goalID).Msg("Goal deleted")
	respondWithScoreboard(w, r, matchID, "Gol removido!")
}

// respondWithScoreboard answers HTMX with the refreshed scoreboard and
// everything else with a redirect to the match page.
func respondWithScoreboard(w http.ResponseWriter, r *http.Request, matchID int64, message string) {
	if !htmx.IsRequest(r) {
		apiutil.RedirectWithFlash(w, r, matchPath(matchID), message)
		return
	}
	match, _, err := loadMatch(r.Context(), matchID)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	apiutil.Flash(r, session.FlashOK, message)
	apiutil.RenderFragment(w, r, scoreboardComponent(match))
}

func matchPath(matchID int64) string {
	return fmt.Sprintf("/partidas/%d", matchID)
}
