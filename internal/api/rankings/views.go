package rankings

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/Peladeiro/internal/models"
	tables "github.com/codr1/Peladeiro/internal/templates/components/rankings"
	"github.com/codr1/Peladeiro/internal/templates/layouts"
)

var limitChoices = []int{10, 20, 50}

func hubComponent(seasonID int64, teams, goals, assists section) templ.Component {
	var b strings.Builder
	b.WriteString(`<div class="space-y-6">`)
	b.WriteString(header(fmt.Sprintf("/temporadas/%d", seasonID), "← Temporada", "Ranking"))
	b.WriteString(card("Classificação", rankingPath(seasonID, "times"), standingsHTML(teams)))
	b.WriteString(`<div class="grid gap-6 md:grid-cols-2">`)
	b.WriteString(card("Artilheiros", rankingPath(seasonID, string(models.RankingGoals)), playersHTML(goals, models.RankingGoals)))
	b.WriteString(card("Assistências", rankingPath(seasonID, string(models.RankingAssists)), playersHTML(assists, models.RankingAssists)))
	b.WriteString(`</div></div>`)
	return layouts.HTML(b.String())
}

func teamRankingComponent(seasonID int64, teams section) templ.Component {
	var b strings.Builder
	b.WriteString(`<div class="space-y-6">`)
	b.WriteString(header(rankingPath(seasonID, ""), "← Ranking", "Classificação"))
	b.WriteString(`<section class="rounded-lg border bg-white p-4">`)
	b.WriteString(standingsHTML(teams))
	b.WriteString(`</section></div>`)
	return layouts.HTML(b.String())
}

func playerRankingComponent(seasonID int64, kind models.RankingKind, limit int, players section) templ.Component {
	var b strings.Builder
	b.WriteString(`<div class="space-y-6">`)
	b.WriteString(header(rankingPath(seasonID, ""), "← Ranking", kindTitle(kind)))
	b.WriteString(`<div class="flex gap-2 text-sm">`)
	for _, choice := range limitChoices {
		class := "rounded border bg-white px-3 py-1"
		if choice == limit {
			class = "rounded border border-emerald-500 bg-emerald-50 px-3 py-1 font-semibold"
		}
		b.WriteString(fmt.Sprintf(`<a class="%s" href="%s?limit=%d">Top %d</a>`, class, rankingPath(seasonID, string(kind)), choice, choice))
	}
	b.WriteString(`</div><section class="rounded-lg border bg-white p-4">`)
	b.WriteString(playersHTML(players, kind))
	b.WriteString(`</section></div>`)
	return layouts.HTML(b.String())
}

func header(backHref, backLabel, title string) string {
	return fmt.Sprintf(`<div><a href="%s" class="text-sm text-emerald-700 hover:underline">%s</a><h1 class="text-2xl font-semibold">%s</h1></div>`,
		backHref, backLabel, title)
}

func card(title, href, body string) string {
	return fmt.Sprintf(`<section class="rounded-lg border bg-white p-4"><div class="mb-2 flex items-center justify-between"><h2 class="text-lg font-semibold">%s</h2><a class="text-sm text-emerald-700 hover:underline" href="%s">Ver completo</a></div>%s</section>`,
		title, href, body)
}

func standingsHTML(s section) string {
	if s.Err != nil {
		return tables.ErrorNotice(failedMessage) + tables.StandingsTable(nil)
	}
	return tables.StandingsTable(s.Standings)
}

func playersHTML(s section, kind models.RankingKind) string {
	if s.Err != nil {
		return tables.ErrorNotice(failedMessage) + tables.PlayerTable(nil, kind)
	}
	return tables.PlayerTable(s.Players, kind)
}
