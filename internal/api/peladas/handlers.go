// internal/api/peladas/handlers.go
package peladas

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Peladeiro/internal/api/apiutil"
	"github.com/codr1/Peladeiro/internal/apiclient"
	"github.com/codr1/Peladeiro/internal/models"
	"github.com/codr1/Peladeiro/internal/scout"
	"github.com/codr1/Peladeiro/internal/services"
	"github.com/codr1/Peladeiro/internal/templates/layouts"
)

const (
	leagueIDPathKey    = "id"
	leagueSlugPathKey  = "slug"
	leaguesPerPage     = 10
	publicRankingLimit = 10

	leagueNotFoundMessage = "Pelada não encontrada"
	publicProfileFailure  = "Erro ao carregar perfil público"
)

var svc *services.Service

type leagueForm struct {
	Name     string `label:"Nome" validate:"required,max=120"`
	City     string `label:"Cidade" validate:"max=120"`
	TimeZone string `label:"Fuso horário" validate:"omitempty,timezone"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(service *services.Service) {
	svc = service
}

// GET /peladas
func HandleLeaguesPage(w http.ResponseWriter, r *http.Request) {
	page := apiutil.Page(r)
	listing, err := svc.ListManagedLeagues(r.Context(), page, leaguesPerPage)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	apiutil.RenderPage(w, r, "Minhas peladas", leaguesPageComponent(listing))
}

// POST /peladas
func HandleCreateLeague(w http.ResponseWriter, r *http.Request) {
	if err := apiutil.ParseForm(r); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	form := leagueForm{
		Name:     apiutil.Trimmed(r, "nome"),
		City:     apiutil.Trimmed(r, "cidade"),
		TimeZone: apiutil.Trimmed(r, "fuso_horario"),
	}
	if err := apiutil.ValidateForm(form); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	logo, profile, err := leagueImages(r)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	defer logo.Close()
	defer profile.Close()

	league, err := svc.CreateLeague(r.Context(), services.LeagueInput{
		Name:     form.Name,
		City:     form.City,
		TimeZone: form.TimeZone,
	}, logo, profile)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	log.Ctx(r.Context()).Info().Int64("pelada_id", league.ID).Msg("League created")
	apiutil.RedirectWithFlash(w, r, "/peladas", "Pelada criada!")
}

// GET /peladas/{id}
func HandleLeagueProfile(w http.ResponseWriter, r *http.Request) {
	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	profile, err := svc.LeagueProfile(r.Context(), leagueID)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	apiutil.RenderPage(w, r, profile.League.Name, leagueProfileComponent(leagueID, profile))
}

// GET /peladas/{id}/edit
func HandleEditLeaguePage(w http.ResponseWriter, r *http.Request) {
	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	profile, err := svc.LeagueProfile(r.Context(), leagueID)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	apiutil.RenderPage(w, r, "Editar pelada", leagueEditComponent(leagueID, profile.League))
}

// POST /peladas/{id}/edit
func HandleUpdateLeague(w http.ResponseWriter, r *http.Request) {
	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	if err := apiutil.ParseForm(r); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	form := leagueUpdateForm{
		Name:     apiutil.Trimmed(r, "nome"),
		City:     apiutil.Trimmed(r, "cidade"),
		TimeZone: apiutil.Trimmed(r, "fuso_horario"),
	}
	if err := apiutil.ValidateForm(form); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	logo, profile, err := leagueImages(r)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	defer logo.Close()
	defer profile.Close()

	active := apiutil.Checkbox(r, "ativa")
	update := services.LeagueUpdate{
		Name:     optional(form.Name),
		City:     optional(form.City),
		TimeZone: optional(form.TimeZone),
		Active:   &active,
	}
	if _, err := svc.UpdateLeague(r.Context(), leagueID, update, logo, profile); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	apiutil.RedirectWithFlash(w, r, fmt.Sprintf("/peladas/%d", leagueID), "Pelada atualizada!")
}

// Blank fields are left unchanged on update.
type leagueUpdateForm struct {
	Name     string `label:"Nome" validate:"max=120"`
	City     string `label:"Cidade" validate:"max=120"`
	TimeZone string `label:"Fuso horário" validate:"omitempty,timezone"`
}

// GET /peladas/{id}/scout-anual
func HandleYearlyScout(w http.ResponseWriter, r *http.Request) {
	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}

	var league models.League
	profile, err := svc.LeagueProfile(r.Context(), leagueID)
	switch {
	case err == nil:
		league = profile.League
	case apiclient.IsAuthFailure(err):
		apiutil.HandleError(w, r, err)
		return
	default:
		log.Ctx(r.Context()).Warn().Err(err).Int64("pelada_id", leagueID).Msg("League profile unavailable for yearly scout")
	}

	report := scout.Build(r.Context(), svc, leagueID)
	apiutil.RenderPage(w, r, "Scout anual", scoutComponent(leagueID, league, report))
}

// GET /peladas/{id}/publico
func HandlePublicProfile(w http.ResponseWriter, r *http.Request) {
	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		renderPublicError(w, r, err)
		return
	}
	renderPublicProfile(w, r, leagueID)
}

// GET /perfil/{slug}
func HandlePublicProfileBySlug(w http.ResponseWriter, r *http.Request) {
	league, found, err := svc.FindLeagueBySlug(r.Context(), r.PathValue(leagueSlugPathKey))
	if err != nil {
		renderPublicError(w, r, err)
		return
	}
	if !found || league.ID == 0 {
		renderPublicError(w, r, apiutil.NotFound(nil))
		return
	}
	renderPublicProfile(w, r, league.ID)
}

type publicProfile struct {
	Profile   models.LeagueProfile
	Standings []models.TeamStanding
	Scorers   []models.RankingEntry
	Assists   []models.RankingEntry
}

func renderPublicProfile(w http.ResponseWriter, r *http.Request, leagueID int64) {
	profile, err := svc.LeagueProfile(r.Context(), leagueID)
	if err != nil {
		renderPublicError(w, r, err)
		return
	}
	data := publicProfile{Profile: profile}
	if season := profile.ActiveSeason; season != nil && season.ID != 0 {
		data.Standings, data.Scorers, data.Assists = loadPublicRankings(r.Context(), season.ID)
	}
	apiutil.RenderPage(w, r, profile.League.Name, publicProfileComponent(data))
}

// loadPublicRankings fetches each ranking on its own; a failed one is empty.
func loadPublicRankings(ctx context.Context, seasonID int64) ([]models.TeamStanding, []models.RankingEntry, []models.RankingEntry) {
	logger := log.Ctx(ctx)
	standings, err := svc.TeamStandings(ctx, seasonID)
	if err != nil {
		logger.Warn().Err(err).Int64("temporada_id", seasonID).Msg("Public standings unavailable")
	}
	scorers, err := svc.TopScorers(ctx, seasonID, publicRankingLimit)
	if err != nil {
		logger.Warn().Err(err).Int64("temporada_id", seasonID).Msg("Public scorers unavailable")
	}
	assists, err := svc.TopAssists(ctx, seasonID, publicRankingLimit)
	if err != nil {
		logger.Warn().Err(err).Int64("temporada_id", seasonID).Msg("Public assists unavailable")
	}
	return standings, scorers, assists
}

// Public pages never redirect to login: API failures mean the league is
// not available, anything else is an internal failure.
func renderPublicError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := http.StatusInternalServerError, publicProfileFailure
	if _, ok := apiclient.AsAPIError(err); ok {
		status, message = http.StatusNotFound, leagueNotFoundMessage
	}
	var handlerErr apiutil.HandlerError
	if errors.As(err, &handlerErr) {
		status, message = http.StatusNotFound, leagueNotFoundMessage
	}
	log.Ctx(r.Context()).Warn().Err(err).Int("status", status).Msg("Public profile unavailable")
	apiutil.RenderPageStatus(w, r, status, message, layouts.ErrorPage(status, message))
}

func leagueImages(r *http.Request) (logo, profile *apiclient.File, err error) {
	if logo, err = apiutil.FormFile(r, "logo"); err != nil {
		return nil, nil, err
	}
	if profile, err = apiutil.FormFile(r, "perfil"); err != nil {
		_ = logo.Close()
		return nil, nil, err
	}
	return logo, profile, nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
