package jogadores

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Peladeiro/internal/api/apiutil"
	"github.com/codr1/Peladeiro/internal/api/htmx"
	"github.com/codr1/Peladeiro/internal/services"
)

const playersPerPage = 50

var svc *services.Service

type playerForm struct {
	FullName string `label:"Nome completo" validate:"required,max=120"`
	Nickname string `label:"Apelido" validate:"max=60"`
	Phone    string `label:"Telefone" validate:"max=30"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(service *services.Service) {
	svc = service
}

// GET /peladas/{id}/jogadores
func HandlePlayersPage(w http.ResponseWriter, r *http.Request) {
	leagueID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	page := apiutil.Page(r)
	listing, err := svc.ListPlayers(r.Context(), leagueID, page, playersPerPage, nil)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	apiutil.RenderPage(w, r, "Jogadores", playersPageComponent(leagueID, listing))
}

// POST /peladas/{id}/jogadores
//
// HTMX posts get the refreshed list fragment back.
func HandleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	leagueID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	if err := apiutil.ParseForm(r); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	form := playerForm{
		FullName: apiutil.Trimmed(r, "nome_completo"),
		Nickname: apiutil.Trimmed(r, "apelido"),
		Phone:    apiutil.Trimmed(r, "telefone"),
	}
	if err := apiutil.ValidateForm(form); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	photo, err := apiutil.FormFile(r, "foto")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	defer photo.Close()

	player, err := svc.CreatePlayer(r.Context(), leagueID, services.PlayerInput{
		FullName: form.FullName,
		Nickname: form.Nickname,
		Phone:    form.Phone,
	}, photo)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	log.Ctx(r.Context()).Info().Int64("pelada_id", leagueID).Int64("jogador_id", player.ID).Msg("Player created")

	if !htmx.IsRequest(r) {
		apiutil.RedirectWithFlash(w, r, fmt.Sprintf("/peladas/%d/jogadores", leagueID), "Jogador criado!")
		return
	}
	listing, err := svc.ListPlayers(r.Context(), leagueID, 1, playersPerPage, nil)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	apiutil.RenderFragment(w, r, playersListComponent(leagueID, listing))
}

// GET /jogadores/{id}/edit
func HandleEditPlayerPage(w http.ResponseWriter, r *http.Request) {
	playerID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	player, err := svc.GetPlayer(r.Context(), playerID)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	apiutil.RenderPage(w, r, "Editar jogador", playerEditComponent(player))
}

// POST /jogadores/{id}/edit
func HandleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	if err := apiutil.ParseForm(r); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	form := playerForm{
		FullName: apiutil.Trimmed(r, "nome_completo"),
		Nickname: apiutil.Trimmed(r, "apelido"),
		Phone:    apiutil.Trimmed(r, "telefone"),
	}
	if err := apiutil.ValidateForm(form); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	photo, err := apiutil.FormFile(r, "foto")
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	defer photo.Close()

	player, err := svc.UpdatePlayer(r.Context(), playerID, services.PlayerUpdate{
		FullName: form.FullName,
		Nickname: form.Nickname,
		Phone:    form.Phone,
		Active:   apiutil.Checkbox(r, "ativo"),
	}, photo)
	if err != nil {
		apiutil.HandleError(w, r, err)
		return
	}

	target := fmt.Sprintf("/jogadores/%d/edit", playerID)
	if player.LeagueID != 0 {
		target = fmt.Sprintf("/peladas/%d/jogadores", player.LeagueID)
	}
	apiutil.RedirectWithFlash(w, r, target, "Jogador atualizado!")
}
