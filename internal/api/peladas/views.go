package peladas

import (
	"fmt"
	"html"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/Peladeiro/internal/datefmt"
	"github.com/codr1/Peladeiro/internal/models"
	"github.com/codr1/Peladeiro/internal/scout"
	"github.com/codr1/Peladeiro/internal/templates/components/rankings"
	"github.com/codr1/Peladeiro/internal/templates/layouts"
)

func leaguesPageComponent(listing models.Page[models.League]) templ.Component {
	var b strings.Builder
	b.WriteString(`<div class="space-y-6">`)
	b.WriteString(`<div class="flex items-center justify-between"><h1 class="text-2xl font-semibold">Minhas peladas</h1></div>`)
	b.WriteString(`<div id="leagues-list">`)
	b.WriteString(buildLeaguesListHTML(listing.Items))
	b.WriteString(layouts.Pager("/peladas", listing.Meta.Page, listing.HasPrev(), listing.HasNext()))
	b.WriteString(`</div>`)
	b.WriteString(leagueFormHTML("/peladas", "Nova pelada", models.League{}, false))
	b.WriteString(`</div>`)
	return layouts.HTML(b.String())
}

func buildLeaguesListHTML(leagues []models.League) string {
	if len(leagues) == 0 {
		return `<div class="rounded border border-dashed p-6 text-center text-sm text-gray-500">Nenhuma pelada encontrada. Crie a primeira abaixo.</div>`
	}

	var b strings.Builder
	b.WriteString(`<div class="grid gap-4 sm:grid-cols-2">`)
	for _, league := range leagues {
		b.WriteString(buildLeagueCardHTML(league))
	}
	b.WriteString(`</div>`)
	return b.String()
}

func buildLeagueCardHTML(league models.League) string {
	status := "Ativa"
	if !league.Active {
		status = "Inativa"
	}
	return fmt.Sprintf(
		`<a href="/peladas/%d" class="flex items-center gap-4 rounded-lg border bg-white p-4 shadow-sm hover:border-emerald-400">%s<div><div class="font-semibold">%s</div><div class="text-sm text-gray-500">%s · %s</div></div></a>`,
		league.ID,
		layouts.Image(league.LogoURL, league.Name, "h-12 w-12 rounded-full object-cover"),
		html.EscapeString(league.Name),
		html.EscapeString(league.City),
		status,
	)
}

func leagueFormHTML(action, title string, league models.League, editing bool) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(`<form method="post" action="%s" enctype="multipart/form-data" class="space-y-3 rounded-lg border bg-white p-4">`, html.EscapeString(action)))
	b.WriteString(`<h2 class="text-lg font-semibold">` + html.EscapeString(title) + `</h2>`)
	required := " required"
	if editing {
		required = ""
	}
	b.WriteString(fmt.Sprintf(`<label class="block text-sm">Nome<input name="nome" value="%s" class="mt-1 w-full rounded border px-2 py-1"%s></label>`, html.EscapeString(league.Name), required))
	b.WriteString(fmt.Sprintf(`<label class="block text-sm">Cidade<input name="cidade" value="%s" class="mt-1 w-full rounded border px-2 py-1"></label>`, html.EscapeString(league.City)))
	b.WriteString(fmt.Sprintf(`<label class="block text-sm">Fuso horário<input name="fuso_horario" value="%s" placeholder="America/Sao_Paulo" class="mt-1 w-full rounded border px-2 py-1"></label>`, html.EscapeString(league.TimeZone)))
	b.WriteString(`<label class="block text-sm">Logo<input type="file" name="logo" accept="image/*" class="mt-1 block"></label>`)
	b.WriteString(`<label class="block text-sm">Foto de perfil<input type="file" name="perfil" accept="image/*" class="mt-1 block"></label>`)
	if editing {
		checked := ""
		if league.Active {
			checked = " checked"
		}
		b.WriteString(fmt.Sprintf(`<label class="flex items-center gap-2 text-sm"><input type="checkbox" name="ativa"%s> Pelada ativa</label>`, checked))
	}
	b.WriteString(`<button class="rounded bg-[var(--theme-primary)] px-4 py-2 text-white">Salvar</button></form>`)
	return b.String()
}

func leagueProfileComponent(leagueID int64, profile models.LeagueProfile) templ.Component {
	league := profile.League
	var b strings.Builder
	b.WriteString(`<div class="space-y-6">`)
	b.WriteString(leagueHeaderHTML(league))
	b.WriteString(fmt.Sprintf(
		`<div class="grid gap-4 sm:grid-cols-2"><div class="rounded-lg border bg-white p-4"><div class="text-sm text-gray-500">Jogadores</div><div class="text-2xl font-semibold">%d</div></div><div class="rounded-lg border bg-white p-4"><div class="text-sm text-gray-500">Temporadas</div><div class="text-2xl font-semibold">%d</div></div></div>`,
		profile.Players, profile.Seasons,
	))
	if season := profile.ActiveSeason; season != nil {
		b.WriteString(fmt.Sprintf(
			`<div class="rounded-lg border bg-white p-4">Temporada ativa: <a class="font-semibold text-emerald-700 hover:underline" href="/temporadas/%d">%s a %s</a></div>`,
			season.ID, html.EscapeString(datefmt.Month(season.StartMonth)), html.EscapeString(datefmt.Month(season.EndMonth)),
		))
	}
	b.WriteString(`<nav class="flex flex-wrap gap-3 text-sm">`)
	for _, link := range []struct{ href, label string }{
		{fmt.Sprintf("/peladas/%d/jogadores", leagueID), "Jogadores"},
		{fmt.Sprintf("/peladas/%d/temporadas", leagueID), "Temporadas"},
		{fmt.Sprintf("/peladas/%d/scout-anual", leagueID), "Scout anual"},
		{fmt.Sprintf("/peladas/%d/edit", leagueID), "Editar"},
		{layouts.PublicProfilePath(league.Name), "Perfil público"},
	} {
		b.WriteString(fmt.Sprintf(`<a class="rounded border bg-white px-3 py-2 hover:border-emerald-400" href="%s">%s</a>`, html.EscapeString(link.href), link.label))
	}
	b.WriteString(`</nav></div>`)
	return layouts.HTML(b.String())
}

func leagueHeaderHTML(league models.League) string {
	var b strings.Builder
	if league.ProfileURL != "" {
		b.WriteString(layouts.Image(league.ProfileURL, league.Name, "h-40 w-full rounded-lg object-cover"))
	}
	b.WriteString(fmt.Sprintf(
		`<div class="flex items-center gap-4">%s<div><h1 class="text-2xl font-semibold">%s</h1><div class="text-sm text-gray-500">%s</div></div></div>`,
		layouts.Image(league.LogoURL, league.Name, "h-16 w-16 rounded-full object-cover"),
		html.EscapeString(league.Name),
		html.EscapeString(league.City),
	))
	return b.String()
}

func leagueEditComponent(leagueID int64, league models.League) templ.Component {
	return layouts.HTML(leagueFormHTML(fmt.Sprintf("/peladas/%d/edit", leagueID), "Editar pelada", league, true))
}

func scoutComponent(leagueID int64, league models.League, report scout.Report) templ.Component {
	var b strings.Builder
	b.WriteString(`<div class="space-y-6">`)
	name := league.Name
	if name == "" {
		name = fmt.Sprintf("Pelada #%d", leagueID)
	}
	b.WriteString(fmt.Sprintf(`<div><a href="/peladas/%d" class="text-sm text-emerald-700 hover:underline">← %s</a><h1 class="text-2xl font-semibold">Scout anual</h1><p class="text-sm text-gray-500">%d temporada(s) consideradas</p></div>`,
		leagueID, html.EscapeString(name), report.Seasons))
	if report.Incomplete || len(report.FailedSeasons) > 0 {
		b.WriteString(rankings.ErrorNotice("Alguns dados não puderam ser carregados; os totais podem estar incompletos."))
	}
	b.WriteString(`<div class="grid gap-6 md:grid-cols-2">`)
	b.WriteString(totalsSectionHTML("Artilharia", "gols", report.Scorers))
	b.WriteString(totalsSectionHTML("Assistências", "assistências", report.Assists))
	b.WriteString(`</div>`)
	b.WriteString(`<section class="rounded-lg border bg-white p-4"><h2 class="mb-2 text-lg font-semibold">Títulos</h2>`)
	if len(report.Titles) == 0 {
		b.WriteString(`<p class="text-sm text-gray-500">Nenhum campeão registrado.</p>`)
	}
	for _, group := range report.Titles {
		names := make([]string, 0, len(group.Players))
		for _, player := range group.Players {
			names = append(names, html.EscapeString(player.Name))
		}
		b.WriteString(fmt.Sprintf(`<div class="border-t py-2"><span class="font-semibold">🏆 %d título(s):</span> %s</div>`, group.Titles, strings.Join(names, ", ")))
	}
	b.WriteString(`</section></div>`)
	return layouts.HTML(b.String())
}

func totalsSectionHTML(title, unit string, totals []scout.PlayerTotal) string {
	var b strings.Builder
	b.WriteString(`<section class="rounded-lg border bg-white p-4"><h2 class="mb-2 text-lg font-semibold">` + title + `</h2>`)
	if len(totals) == 0 {
		b.WriteString(`<p class="text-sm text-gray-500">Sem registros.</p></section>`)
		return b.String()
	}
	b.WriteString(`<ol class="space-y-1 text-sm">`)
	for i, total := range totals {
		b.WriteString(fmt.Sprintf(`<li class="flex justify-between"><span>%d. %s</span><span class="font-semibold">%d %s</span></li>`,
			i+1, html.EscapeString(total.Name), total.Total, unit))
	}
	b.WriteString(`</ol></section>`)
	return b.String()
}

func publicProfileComponent(data publicProfile) templ.Component {
	var b strings.Builder
	b.WriteString(`<div class="space-y-6">`)
	b.WriteString(leagueHeaderHTML(data.Profile.League))
	season := data.Profile.ActiveSeason
	if season == nil {
		b.WriteString(`<p class="rounded-lg border bg-white p-4 text-gray-500">Nenhuma temporada ativa no momento.</p></div>`)
		return layouts.HTML(b.String())
	}
	b.WriteString(fmt.Sprintf(`<p class="text-sm text-gray-500">Temporada %s a %s</p>`,
		html.EscapeString(datefmt.Month(season.StartMonth)), html.EscapeString(datefmt.Month(season.EndMonth))))
	b.WriteString(`<section class="rounded-lg border bg-white p-4"><h2 class="mb-2 text-lg font-semibold">Classificação</h2>`)
	b.WriteString(rankings.StandingsTable(data.Standings))
	b.WriteString(`</section><div class="grid gap-6 md:grid-cols-2"><section class="rounded-lg border bg-white p-4"><h2 class="mb-2 text-lg font-semibold">Artilheiros</h2>`)
	b.WriteString(rankings.PlayerTable(data.Scorers, models.RankingGoals))
	b.WriteString(`</section><section class="rounded-lg border bg-white p-4"><h2 class="mb-2 text-lg font-semibold">Assistências</h2>`)
	b.WriteString(rankings.PlayerTable(data.Assists, models.RankingAssists))
	b.WriteString(`</section></div></div>`)
	return layouts.HTML(b.String())
}
