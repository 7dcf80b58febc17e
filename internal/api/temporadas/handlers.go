package temporadas

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Peladeiro/internal/api/apiutil"
	"github.com/codr1/Peladeiro/internal/services"
)

const (
	seasonsPerPage = 10
	closeAction    = "encerrar"
)

var svc *services.Service

type seasonForm struct {
	StartMonth string `label:"Mês de início" validate:"required,datetime=2006-01"`
	EndMonth   string `label:"Mês de fim" validate:"required,datetime=2006-01"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(service *services.Service) {
	svc = service
}

// GET /peladas/{id}/temporadas
func HandleSeasonsPage(w http.ResponseWriter, r *http.Request) {
	leagueID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	listing, err := svc.ListSeasons(r.Context(), leagueID, apiutil.Page(r), seasonsPerPage)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	apiutil.RenderPage(w, r, "Temporadas", seasonsPageComponent(leagueID, listing))
}

// POST /peladas/{id}/temporadas
func HandleCreateSeason(w http.ResponseWriter, r *http.Request) {
	leagueID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	if err := apiutil.ParseForm(r); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	form := seasonForm{
		StartMonth: monthValue(apiutil.Trimmed(r, "inicio_mes")),
		EndMonth:   monthValue(apiutil.Trimmed(r, "fim_mes")),
	}
	if err := apiutil.ValidateForm(form); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	// YYYY-MM compares correctly as text.
	if form.EndMonth < form.StartMonth {
		apiutil.HandleError(w, r, apiutil.FieldError{Field: "Mês de fim", Reason: "deve ser igual ou posterior ao mês de início."})
		return
	}

	season, err := svc.CreateSeason(r.Context(), leagueID, form.StartMonth, form.EndMonth)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	log.Ctx(r.Context()).Info().Int64("pelada_id", leagueID).Int64("temporada_id", season.ID).Msg("Season created")
	apiutil.RedirectWithFlash(w, r, fmt.Sprintf("/peladas/%d/temporadas", leagueID), "Temporada criada!")
}

// GET /temporadas/{id}
func HandleSeasonPage(w http.ResponseWriter, r *http.Request) {
	seasonID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	season, err := svc.GetSeason(r.Context(), seasonID)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	apiutil.RenderPage(w, r, "Temporada", seasonDetailComponent(seasonID, season))
}

// POST /temporadas/{id}
func HandleSeasonAction(w http.ResponseWriter, r *http.Request) {
	seasonID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	if err := apiutil.ParseForm(r); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	target := fmt.Sprintf("/temporadas/%d", seasonID)
	if r.FormValue("action") != closeAction {
		apiutil.RedirectBack(w, r)
		return
	}
	if err := svc.CloseSeason(r.Context(), seasonID); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	log.Ctx(r.Context()).Info().Int64("temporada_id", seasonID).Msg("Season closed")
	apiutil.RedirectWithFlash(w, r, target, "Temporada encerrada!")
}

// monthValue accepts YYYY-MM or a full YYYY-MM-DD date and keeps the month.
func monthValue(raw string) string {
	if _, err := time.Parse("2006-01-02", raw); err == nil {
		return raw[:7]
	}
	return raw
}
