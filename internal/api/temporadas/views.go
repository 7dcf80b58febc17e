package temporadas

import (
	"fmt"
	"html"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/Peladeiro/internal/datefmt"
	"github.com/codr1/Peladeiro/internal/models"
	"github.com/codr1/Peladeiro/internal/templates/layouts"
)

func seasonsPageComponent(leagueID int64, listing models.Page[models.Season]) templ.Component {
	var b strings.Builder
	b.WriteString(`<div class="space-y-6">`)
	b.WriteString(fmt.Sprintf(`<div><a href="/peladas/%d" class="text-sm text-emerald-700 hover:underline">← Pelada</a><h1 class="text-2xl font-semibold">Temporadas</h1></div>`, leagueID))
	if len(listing.Items) == 0 {
		b.WriteString(`<div class="rounded border border-dashed p-6 text-center text-sm text-gray-500">Nenhuma temporada cadastrada.</div>`)
	} else {
		b.WriteString(`<ul class="divide-y rounded-lg border bg-white">`)
		for _, season := range listing.Items {
			b.WriteString(fmt.Sprintf(`<li class="flex items-center justify-between p-3"><a class="font-medium text-emerald-700 hover:underline" href="/temporadas/%d">%s a %s</a>%s</li>`,
				season.ID, html.EscapeString(datefmt.Month(season.StartMonth)), html.EscapeString(datefmt.Month(season.EndMonth)), statusBadge(season)))
		}
		b.WriteString(`</ul>`)
	}
	b.WriteString(layouts.Pager(fmt.Sprintf("/peladas/%d/temporadas", leagueID), listing.Meta.Page, listing.HasPrev(), listing.HasNext()))
	b.WriteString(fmt.Sprintf(`<form method="post" action="/peladas/%d/temporadas" class="space-y-3 rounded-lg border bg-white p-4">
<h2 class="text-lg font-semibold">Nova temporada</h2>
<label class="block text-sm">Início<input type="month" name="inicio_mes" required class="mt-1 w-full rounded border px-2 py-1"></label>
<label class="block text-sm">Fim<input type="month" name="fim_mes" required class="mt-1 w-full rounded border px-2 py-1"></label>
<button class="rounded bg-[var(--theme-primary)] px-4 py-2 text-white">Criar</button>
</form>`, leagueID))
	b.WriteString(`</div>`)
	return layouts.HTML(b.String())
}

func statusBadge(season models.Season) string {
	if season.Closed {
		return `<span class="rounded bg-gray-100 px-2 py-0.5 text-xs text-gray-600">Encerrada</span>`
	}
	return `<span class="rounded bg-emerald-100 px-2 py-0.5 text-xs text-emerald-800">Ativa</span>`
}

func seasonDetailComponent(seasonID int64, season models.Season) templ.Component {
	var b strings.Builder
	b.WriteString(`<div class="space-y-6">`)
	if season.LeagueID != 0 {
		b.WriteString(fmt.Sprintf(`<a href="/peladas/%d/temporadas" class="text-sm text-emerald-700 hover:underline">← Temporadas</a>`, season.LeagueID))
	}
	b.WriteString(fmt.Sprintf(`<div class="flex items-center gap-3"><h1 class="text-2xl font-semibold">Temporada %s a %s</h1>%s</div>`,
		html.EscapeString(datefmt.Month(season.StartMonth)), html.EscapeString(datefmt.Month(season.EndMonth)), statusBadge(season)))
	b.WriteString(`<nav class="flex flex-wrap gap-3 text-sm">`)
	for _, link := range []struct{ suffix, label string }{
		{"times", "Times"},
		{"rodadas", "Rodadas"},
		{"ranking", "Ranking"},
	} {
		b.WriteString(fmt.Sprintf(`<a class="rounded border bg-white px-3 py-2 hover:border-emerald-400" href="/temporadas/%d/%s">%s</a>`, seasonID, link.suffix, link.label))
	}
	b.WriteString(`</nav>`)
	if !season.Closed {
		b.WriteString(fmt.Sprintf(`<form method="post" action="/temporadas/%d" onsubmit="return confirm('Encerrar a temporada?')"><input type="hidden" name="action" value="%s"><button class="rounded bg-rose-600 px-4 py-2 text-white">Encerrar temporada</button></form>`, seasonID, closeAction))
	}
	b.WriteString(`</div>`)
	return layouts.HTML(b.String())
}
