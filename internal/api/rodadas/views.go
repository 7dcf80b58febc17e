package rodadas

import (
	"fmt"
	"html"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/Peladeiro/internal/models"
	"github.com/codr1/Peladeiro/internal/templates/layouts"
)

func roundsPageComponent(seasonID int64, listing models.Page[models.Round], teams []models.Team) templ.Component {
	var b strings.Builder
	b.WriteString(`<div class="space-y-6">`)
	b.WriteString(fmt.Sprintf(`<div><a href="/temporadas/%d" class="text-sm text-emerald-700 hover:underline">← Temporada</a><h1 class="text-2xl font-semibold">Rodadas</h1></div>`, seasonID))
	if len(listing.Items) == 0 {
		b.WriteString(`<div class="rounded border border-dashed p-6 text-center text-sm text-gray-500">Nenhuma rodada cadastrada.</div>`)
	} else {
		b.WriteString(`<ul class="divide-y rounded-lg border bg-white">`)
		for _, round := range listing.Items {
			b.WriteString(fmt.Sprintf(`<li class="flex items-center justify-between p-3"><a class="font-medium text-emerald-700 hover:underline" href="/rodadas/%d">Rodada de %s</a><span class="text-xs text-gray-500">%d times · %d por time</span></li>`,
				round.ID, layouts.Date(round.Date), round.TeamCount, round.PlayersPerTeam))
		}
		b.WriteString(`</ul>`)
	}
	b.WriteString(layouts.Pager(fmt.Sprintf("/temporadas/%d/rodadas", seasonID), listing.Meta.Page, listing.HasPrev(), listing.HasNext()))

	b.WriteString(fmt.Sprintf(`<form method="post" action="/temporadas/%d/rodadas" class="space-y-3 rounded-lg border bg-white p-4"><h2 class="text-lg font-semibold">Nova rodada</h2>`, seasonID))
	b.WriteString(`<label class="block text-sm">Data<input type="date" name="data_rodada" required class="mt-1 w-full rounded border px-2 py-1"></label>`)
	b.WriteString(`<div class="grid grid-cols-2 gap-3"><label class="block text-sm">Quantidade de times<input type="number" min="2" name="quantidade_times" value="2" class="mt-1 w-full rounded border px-2 py-1"></label>`)
	b.WriteString(`<label class="block text-sm">Jogadores por time<input type="number" min="1" name="jogadores_por_time" value="5" class="mt-1 w-full rounded border px-2 py-1"></label></div>`)
	if len(teams) == 0 {
		b.WriteString(fmt.Sprintf(`<p class="text-sm text-gray-500">Nenhum time na temporada. <a class="text-emerald-700 hover:underline" href="/temporadas/%d/times">Criar times</a></p>`, seasonID))
	} else {
		b.WriteString(`<fieldset class="space-y-1"><legend class="text-sm">Times participantes (opcional)</legend>`)
		for _, team := range teams {
			b.WriteString(fmt.Sprintf(`<label class="flex items-center gap-2 text-sm"><input type="checkbox" name="time_ids" value="%d"><span class="inline-block h-3 w-3 rounded-full" style="background: %s"></span>%s</label>`,
				team.ID, layouts.TeamColor(team.Color), html.EscapeString(team.Name)))
		}
		b.WriteString(`</fieldset>`)
	}
	b.WriteString(`<button class="rounded bg-[var(--theme-primary)] px-4 py-2 text-white">Criar</button></form>`)
	b.WriteString(`</div>`)
	return layouts.HTML(b.String())
}

func roundDetailComponent(roundID int64, round models.Round, matches []models.Match, teams []models.Team) templ.Component {
	var b strings.Builder
	b.WriteString(`<div class="space-y-6">`)
	if round.SeasonID != 0 {
		b.WriteString(fmt.Sprintf(`<a href="/temporadas/%d/rodadas" class="text-sm text-emerald-700 hover:underline">← Rodadas</a>`, round.SeasonID))
	}
	b.WriteString(fmt.Sprintf(`<h1 class="text-2xl font-semibold">Rodada de %s</h1>`, layouts.Date(round.Date)))
	b.WriteString(`<nav class="flex flex-wrap gap-3 text-sm">`)
	for _, link := range []struct{ href, label string }{
		{fmt.Sprintf("/rodadas/%d/partidas", roundID), "Partidas"},
		{fmt.Sprintf("/rodadas/%d/votacoes", roundID), "Votações"},
		{fmt.Sprintf("/rodadas/%d/votacoes/resultados", roundID), "Resultados das votações"},
	} {
		b.WriteString(fmt.Sprintf(`<a class="rounded border bg-white px-3 py-2 hover:border-emerald-400" href="%s">%s</a>`, link.href, link.label))
	}
	b.WriteString(`</nav>`)

	b.WriteString(`<section class="rounded-lg border bg-white p-4"><h2 class="mb-2 text-lg font-semibold">Partidas</h2>`)
	b.WriteString(MatchListHTML(matches))
	b.WriteString(`</section>`)
	b.WriteString(MatchFormHTML(fmt.Sprintf("/rodadas/%d", roundID), teams))
	b.WriteString(`</div>`)
	return layouts.HTML(b.String())
}

// MatchListHTML renders matches with scores and status.
func MatchListHTML(matches []models.Match) string {
	if len(matches) == 0 {
		return `<p class="text-sm text-gray-500">Nenhuma partida cadastrada.</p>`
	}
	var b strings.Builder
	b.WriteString(`<ul class="divide-y">`)
	for _, match := range matches {
		b.WriteString(fmt.Sprintf(`<li class="flex items-center justify-between py-2"><a class="hover:underline" href="/partidas/%d"><span style="color: %s">%s</span> <span class="font-semibold">%d × %d</span> <span style="color: %s">%s</span></a><span class="text-xs text-gray-500">%s</span></li>`,
			match.ID,
			layouts.TeamColor(teamColor(match.Home)), html.EscapeString(match.HomeName()),
			match.HomeGoals, match.AwayGoals,
			layouts.TeamColor(teamColor(match.Away)), html.EscapeString(match.AwayName()),
			html.EscapeString(match.Status.Label())))
	}
	b.WriteString(`</ul>`)
	return b.String()
}

func teamColor(team *models.Team) string {
	if team == nil {
		return ""
	}
	return team.Color
}

// MatchFormHTML renders the home/away selector posting to action.
func MatchFormHTML(action string, teams []models.Team) string {
	if len(teams) < 2 {
		return `<p class="text-sm text-gray-500">Cadastre pelo menos dois times para criar partidas.</p>`
	}
	var options strings.Builder
	for _, team := range teams {
		options.WriteString(fmt.Sprintf(`<option value="%d">%s</option>`, team.ID, html.EscapeString(team.Name)))
	}
	return fmt.Sprintf(`<form method="post" action="%s" class="flex flex-wrap items-end gap-3 rounded-lg border bg-white p-4">
<label class="block text-sm">Time da casa<select name="time_casa_id" class="mt-1 block rounded border px-2 py-1">%s</select></label>
<label class="block text-sm">Time visitante<select name="time_fora_id" class="mt-1 block rounded border px-2 py-1">%s</select></label>
<button class="rounded bg-[var(--theme-primary)] px-4 py-2 text-white">Criar partida</button>
</form>`, html.EscapeString(action), options.String(), options.String())
}
