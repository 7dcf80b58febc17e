package jogadores

import (
	"fmt"
	"html"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/Peladeiro/internal/models"
	"github.com/codr1/Peladeiro/internal/templates/layouts"
)

func playersPageComponent(leagueID int64, listing models.Page[models.Player]) templ.Component {
	var b strings.Builder
	b.WriteString(`<div class="space-y-6">`)
	b.WriteString(fmt.Sprintf(`<div><a href="/peladas/%d" class="text-sm text-emerald-700 hover:underline">← Pelada</a><h1 class="text-2xl font-semibold">Jogadores</h1></div>`, leagueID))
	b.WriteString(`<div id="players-list">`)
	b.WriteString(playersListHTML(leagueID, listing))
	b.WriteString(`</div>`)
	b.WriteString(playerCreateFormHTML(leagueID))
	b.WriteString(`</div>`)
	return layouts.HTML(b.String())
}

func playersListComponent(leagueID int64, listing models.Page[models.Player]) templ.Component {
	return layouts.HTML(playersListHTML(leagueID, listing))
}

func playersListHTML(leagueID int64, listing models.Page[models.Player]) string {
	if len(listing.Items) == 0 {
		return `<div class="rounded border border-dashed p-6 text-center text-sm text-gray-500">Nenhum jogador cadastrado.</div>`
	}
	var b strings.Builder
	b.WriteString(`<ul class="divide-y rounded-lg border bg-white">`)
	for _, player := range listing.Items {
		status := ""
		if !player.Active {
			status = ` <span class="rounded bg-gray-100 px-2 text-xs text-gray-500">inativo</span>`
		}
		b.WriteString(fmt.Sprintf(
			`<li class="flex items-center gap-3 p-3">%s<div class="flex-1"><div class="font-medium">%s%s</div><div class="text-xs text-gray-500">%s</div></div><a class="text-sm text-emerald-700 hover:underline" href="/jogadores/%d/edit">Editar</a></li>`,
			layouts.Image(player.PhotoURL, player.DisplayName(), "h-10 w-10 rounded-full object-cover"),
			html.EscapeString(player.DisplayName()),
			status,
			html.EscapeString(playerDetails(player)),
			player.ID,
		))
	}
	b.WriteString(`</ul>`)
	b.WriteString(layouts.Pager(fmt.Sprintf("/peladas/%d/jogadores", leagueID), listing.Meta.Page, listing.HasPrev(), listing.HasNext()))
	return b.String()
}

func playerCreateFormHTML(leagueID int64) string {
	action := fmt.Sprintf("/peladas/%d/jogadores", leagueID)
	return fmt.Sprintf(`<form method="post" action="%s" hx-post="%s" hx-target="#players-list" hx-encoding="multipart/form-data" enctype="multipart/form-data" class="space-y-3 rounded-lg border bg-white p-4">
<h2 class="text-lg font-semibold">Novo jogador</h2>
%s
<button class="rounded bg-[var(--theme-primary)] px-4 py-2 text-white">Adicionar</button>
</form>`, action, action, playerFieldsHTML(models.Player{}))
}

func playerFieldsHTML(player models.Player) string {
	return fmt.Sprintf(`<label class="block text-sm">Nome completo<input name="nome_completo" value="%s" required class="mt-1 w-full rounded border px-2 py-1"></label>
<label class="block text-sm">Apelido<input name="apelido" value="%s" class="mt-1 w-full rounded border px-2 py-1"></label>
<label class="block text-sm">Telefone<input name="telefone" value="%s" placeholder="(11) 98765-4321" class="mt-1 w-full rounded border px-2 py-1"></label>
<label class="block text-sm">Foto<input type="file" name="foto" accept="image/*" class="mt-1 block"></label>`,
		html.EscapeString(player.FullName), html.EscapeString(player.Nickname), html.EscapeString(player.Phone))
}

func playerEditComponent(player models.Player) templ.Component {
	var b strings.Builder
	b.WriteString(`<div class="space-y-4">`)
	if player.LeagueID != 0 {
		b.WriteString(fmt.Sprintf(`<a href="/peladas/%d/jogadores" class="text-sm text-emerald-700 hover:underline">← Jogadores</a>`, player.LeagueID))
	}
	b.WriteString(fmt.Sprintf(`<h1 class="text-2xl font-semibold">%s</h1>`, html.EscapeString(player.DisplayName())))
	b.WriteString(layouts.Image(player.PhotoURL, player.DisplayName(), "h-24 w-24 rounded-full object-cover"))
	checked := ""
	if player.Active {
		checked = " checked"
	}
	b.WriteString(fmt.Sprintf(`<form method="post" action="/jogadores/%d/edit" enctype="multipart/form-data" class="space-y-3 rounded-lg border bg-white p-4">%s<label class="flex items-center gap-2 text-sm"><input type="checkbox" name="ativo"%s> Ativo</label><button class="rounded bg-[var(--theme-primary)] px-4 py-2 text-white">Salvar</button></form>`,
		player.ID, playerFieldsHTML(player), checked))
	b.WriteString(`</div>`)
	return layouts.HTML(b.String())
}

func playerDetails(player models.Player) string {
	if phone := player.PhoneLabel(); phone != "" {
		return player.FullName + " · " + phone
	}
	return player.FullName
}
