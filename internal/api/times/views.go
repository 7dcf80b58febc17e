package times

import (
	"fmt"
	"html"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/Peladeiro/internal/models"
	"github.com/codr1/Peladeiro/internal/positions"
	"github.com/codr1/Peladeiro/internal/templates/layouts"
)

const rosterTarget = "#team-roster"

func teamsPageComponent(seasonID int64, teams []models.Team) templ.Component {
	var b strings.Builder
	b.WriteString(`<div class="space-y-6">`)
	b.WriteString(fmt.Sprintf(`<div><a href="/temporadas/%d" class="text-sm text-emerald-700 hover:underline">← Temporada</a><h1 class="text-2xl font-semibold">Times</h1></div>`, seasonID))
	if len(teams) == 0 {
		b.WriteString(`<div class="rounded border border-dashed p-6 text-center text-sm text-gray-500">Nenhum time cadastrado.</div>`)
	} else {
		b.WriteString(`<div class="grid gap-4 sm:grid-cols-2">`)
		for _, team := range teams {
			b.WriteString(fmt.Sprintf(
				`<a href="/times/%d" class="flex items-center gap-3 rounded-lg border-l-8 bg-white p-4 shadow-sm" style="border-color: %s">%s<div><div class="font-semibold">%s</div><div class="text-xs text-gray-500">%d jogador(es)</div></div></a>`,
				team.ID,
				layouts.TeamColor(team.Color),
				layouts.Image(team.CrestURL, team.Name, "h-10 w-10 object-contain"),
				html.EscapeString(team.Name),
				len(team.Members),
			))
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(fmt.Sprintf(`<form method="post" action="/temporadas/%d/times" enctype="multipart/form-data" class="space-y-3 rounded-lg border bg-white p-4">
<h2 class="text-lg font-semibold">Novo time</h2>
<label class="block text-sm">Nome<input name="nome" required class="mt-1 w-full rounded border px-2 py-1"></label>
<label class="block text-sm">Cor<input type="color" name="cor" value="#6b7280" class="mt-1 block h-9 w-16"></label>
<label class="block text-sm">Escudo<input type="file" name="escudo" accept="image/*" class="mt-1 block"></label>
<button class="rounded bg-[var(--theme-primary)] px-4 py-2 text-white">Criar</button>
</form>`, seasonID))
	b.WriteString(`</div>`)
	return layouts.HTML(b.String())
}

func teamDetailComponent(team models.Team, available []models.Player, availableFailed bool) templ.Component {
	var b strings.Builder
	b.WriteString(`<div class="space-y-6">`)
	if team.SeasonID != 0 {
		b.WriteString(fmt.Sprintf(`<a href="/temporadas/%d/times" class="text-sm text-emerald-700 hover:underline">← Times</a>`, team.SeasonID))
	}
	b.WriteString(fmt.Sprintf(`<div class="flex items-center gap-4"><span class="inline-block h-6 w-6 rounded-full" style="background: %s"></span>%s<h1 class="text-2xl font-semibold">%s</h1></div>`,
		layouts.TeamColor(team.Color),
		layouts.Image(team.CrestURL, team.Name, "h-16 w-16 object-contain"),
		html.EscapeString(team.Name)))

	b.WriteString(`<div id="team-roster">`)
	b.WriteString(rosterHTML(team))
	b.WriteString(`</div>`)

	b.WriteString(addMemberFormHTML(team.ID, available, availableFailed))
	b.WriteString(fmt.Sprintf(`<form method="post" action="/times/%d" enctype="multipart/form-data" class="flex items-end gap-3 rounded-lg border bg-white p-4"><input type="hidden" name="action" value="%s"><label class="block text-sm">Novo escudo<input type="file" name="escudo" accept="image/*" class="mt-1 block"></label><button class="rounded border px-3 py-1 text-sm">Atualizar escudo</button></form>`,
		team.ID, actionUpdateEscudo))
	b.WriteString(`</div>`)
	return layouts.HTML(b.String())
}

func rosterComponent(team models.Team) templ.Component {
	return layouts.HTML(rosterHTML(team))
}

func rosterHTML(team models.Team) string {
	if len(team.Members) == 0 {
		return `<p class="rounded-lg border bg-white p-4 text-sm text-gray-500">Nenhum jogador no time.</p>`
	}
	var b strings.Builder
	b.WriteString(`<ul class="divide-y rounded-lg border bg-white">`)
	for _, member := range team.Members {
		captain := ""
		if member.Captain {
			captain = ` <span class="rounded bg-amber-100 px-1 text-xs text-amber-800">C</span>`
		}
		action := fmt.Sprintf("/times/%d", team.ID)
		b.WriteString(fmt.Sprintf(`<li class="flex flex-wrap items-center gap-3 p-3">%s<span class="flex-1 font-medium">%s%s</span>`,
			layouts.Image(member.PhotoURL, member.DisplayName(), "h-8 w-8 rounded-full object-cover"),
			html.EscapeString(member.DisplayName()), captain))
		b.WriteString(fmt.Sprintf(`<form method="post" action="%s" hx-post="%s" hx-target="%s" class="flex items-center gap-2"><input type="hidden" name="action" value="%s"><input type="hidden" name="jogador_id" value="%d">%s<button class="text-xs text-emerald-700">Salvar</button></form>`,
			action, action, rosterTarget, actionUpdate, member.PlayerID, positionSelectHTML(member.Position)))
		b.WriteString(fmt.Sprintf(`<form method="post" action="%s" hx-post="%s" hx-target="%s"><input type="hidden" name="action" value="%s"><input type="hidden" name="jogador_id" value="%d"><button class="text-xs text-rose-600">Remover</button></form></li>`,
			action, action, rosterTarget, actionRemove, member.PlayerID))
	}
	b.WriteString(`</ul>`)
	return b.String()
}

func positionSelectHTML(current positions.Position) string {
	var b strings.Builder
	b.WriteString(`<select name="posicao" class="rounded border px-1 py-0.5 text-sm"><option value="">` + positions.UnknownName + `</option>`)
	for _, code := range positions.Codes() {
		selected := ""
		if current.Code == code {
			selected = " selected"
		}
		b.WriteString(fmt.Sprintf(`<option value="%s"%s>%s</option>`, code.Name(), selected, code.Name()))
	}
	b.WriteString(`</select>`)
	return b.String()
}

func addMemberFormHTML(teamID int64, available []models.Player, availableFailed bool) string {
	var b strings.Builder
	b.WriteString(`<section class="space-y-3 rounded-lg border bg-white p-4"><h2 class="text-lg font-semibold">Adicionar jogador</h2>`)
	if availableFailed {
		b.WriteString(`<p class="text-sm text-amber-700">Não foi possível carregar os jogadores disponíveis.</p></section>`)
		return b.String()
	}
	if len(available) == 0 {
		b.WriteString(`<p class="text-sm text-gray-500">Todos os jogadores da pelada já estão em algum time.</p></section>`)
		return b.String()
	}
	action := fmt.Sprintf("/times/%d", teamID)
	b.WriteString(fmt.Sprintf(`<form method="post" action="%s" hx-post="%s" hx-target="%s" class="flex flex-wrap items-end gap-3"><input type="hidden" name="action" value="%s">`,
		action, action, rosterTarget, actionAdd))
	b.WriteString(`<select name="jogador_id" required class="rounded border px-2 py-1">`)
	for _, player := range available {
		b.WriteString(fmt.Sprintf(`<option value="%d">%s</option>`, player.ID, html.EscapeString(player.DisplayName())))
	}
	b.WriteString(`</select>`)
	b.WriteString(positionSelectHTML(positions.Unknown))
	b.WriteString(`<label class="flex items-center gap-1 text-sm"><input type="checkbox" name="capitao"> Capitão</label>`)
	b.WriteString(`<button class="rounded bg-[var(--theme-primary)] px-3 py-1 text-white">Adicionar</button></form></section>`)
	return b.String()
}
