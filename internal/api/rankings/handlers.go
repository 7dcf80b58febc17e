package rankings

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Peladeiro/internal/api/apiutil"
	"github.com/codr1/Peladeiro/internal/apiclient"
	"github.com/codr1/Peladeiro/internal/models"
	"github.com/codr1/Peladeiro/internal/services"
)

const (
	hubLimit      = 5
	maxLimit      = 100
	failedMessage = "Não foi possível carregar o ranking."
)

var svc *services.Service

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(service *services.Service) {
	svc = service
}

// section is one ranking block. Err is set when the API failed to return it;
// the block then renders empty with a notice.
type section struct {
	Standings []models.TeamStanding
	Players   []models.RankingEntry
	Err       error
}

// GET /temporadas/{id}/ranking
func HandleRankingHub(w http.ResponseWriter, r *http.Request) {
	seasonID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}

	standings, err := svc.TeamStandings(r.Context(), seasonID)
	teams := section{Standings: standings, Err: err}
	scorers, err := svc.TopScorers(r.Context(), seasonID, hubLimit)
	goals := section{Players: scorers, Err: err}
	assisters, err := svc.TopAssists(r.Context(), seasonID, hubLimit)
	assists := section{Players: assisters, Err: err}

	for _, s := range []section{teams, goals, assists} {
		if apiclient.IsAuthFailure(s.Err) {
			apiutil.HandleError(w, r, s.Err)
			return
		}
	}
	logFailures(r, seasonID, map[string]error{"times": teams.Err, "artilheiros": goals.Err, "assistencias": assists.Err})
	apiutil.RenderPage(w, r, "Ranking", hubComponent(seasonID, teams, goals, assists))
}

// GET /temporadas/{id}/ranking/times
func HandleTeamRanking(w http.ResponseWriter, r *http.Request) {
	seasonID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	standings, err := svc.TeamStandings(r.Context(), seasonID)
	if apiclient.IsAuthFailure(err) {
		apiutil.HandleError(w, r, err)
		return
	}
	logFailures(r, seasonID, map[string]error{"times": err})
	apiutil.RenderPage(w, r, "Classificação", teamRankingComponent(seasonID, section{Standings: standings, Err: err}))
}

// GET /temporadas/{id}/ranking/artilheiros
func HandleScorersRanking(w http.ResponseWriter, r *http.Request) {
	playerRanking(w, r, models.RankingGoals)
}

// GET /temporadas/{id}/ranking/assistencias
func HandleAssistsRanking(w http.ResponseWriter, r *http.Request) {
	playerRanking(w, r, models.RankingAssists)
}

func playerRanking(w http.ResponseWriter, r *http.Request, kind models.RankingKind) {
	seasonID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	limit := min(apiutil.IntOrDefault(r.URL.Query().Get("limit"), services.DefaultRankingLimit), maxLimit)

	var entries []models.RankingEntry
	if kind == models.RankingAssists {
		entries, err = svc.TopAssists(r.Context(), seasonID, limit)
	} else {
		entries, err = svc.TopScorers(r.Context(), seasonID, limit)
	}
	if apiclient.IsAuthFailure(err) {
		apiutil.HandleError(w, r, err)
		return
	}
	logFailures(r, seasonID, map[string]error{string(kind): err})
	apiutil.RenderPage(w, r, kindTitle(kind), playerRankingComponent(seasonID, kind, limit, section{Players: entries, Err: err}))
}

func logFailures(r *http.Request, seasonID int64, errs map[string]error) {
	for name, err := range errs {
		if err == nil {
			continue
		}
		log.Ctx(r.Context()).Warn().
			Err(err).
			Int64("temporada_id", seasonID).
			Str("ranking", name).
			Msg("Rendering ranking without data")
	}
}

func kindTitle(kind models.RankingKind) string {
	if kind == models.RankingAssists {
		return "Assistências"
	}
	return "Artilharia"
}

func rankingPath(seasonID int64, suffix string) string {
	if suffix == "" {
		return fmt.Sprintf("/temporadas/%d/ranking", seasonID)
	}
	return fmt.Sprintf("/temporadas/%d/ranking/%s", seasonID, suffix)
}
