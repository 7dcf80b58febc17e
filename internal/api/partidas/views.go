package partidas

import (
	"fmt"
	"html"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/Peladeiro/internal/api/rodadas"
	"github.com/codr1/Peladeiro/internal/models"
	"github.com/codr1/Peladeiro/internal/templates/layouts"
)

const scoreboardID = "match-scoreboard"

func matchesPageComponent(roundID int64, round models.Round, matches []models.Match, teams []models.Team) templ.Component {
	var b strings.Builder
	b.WriteString(`<div class="space-y-6">`)
	b.WriteString(fmt.Sprintf(`<div><a href="/rodadas/%d" class="text-sm text-emerald-700 hover:underline">← Rodada</a><h1 class="text-2xl font-semibold">Partidas da rodada de %s</h1></div>`,
		roundID, layouts.Date(round.Date)))
	b.WriteString(`<section class="rounded-lg border bg-white p-4">`)
	b.WriteString(rodadas.MatchListHTML(matches))
	b.WriteString(`</section>`)
	b.WriteString(rodadas.MatchFormHTML(fmt.Sprintf("/rodadas/%d/partidas", roundID), teams))
	b.WriteString(`</div>`)
	return layouts.HTML(b.String())
}

func matchPageComponent(match models.Match, teams []models.Team) templ.Component {
	var b strings.Builder
	b.WriteString(`<div class="space-y-6">`)
	if match.RoundID != 0 {
		b.WriteString(fmt.Sprintf(`<a href="/rodadas/%d/partidas" class="text-sm text-emerald-700 hover:underline">← Partidas</a>`, match.RoundID))
	}
	b.WriteString(scoreboardHTML(match))

	b.WriteString(`<div class="flex gap-3">`)
	switch match.Status {
	case models.MatchScheduled:
		b.WriteString(fmt.Sprintf(`<form method="post" action="/partidas/%d/iniciar"><button class="rounded bg-[var(--theme-primary)] px-4 py-2 text-white">Iniciar partida</button></form>`, match.ID))
	case models.MatchInProgress:
		b.WriteString(fmt.Sprintf(`<form method="post" action="/partidas/%d/finalizar"><button class="rounded bg-gray-800 px-4 py-2 text-white">Finalizar partida</button></form>`, match.ID))
	}
	b.WriteString(`</div>`)

	if match.Status != models.MatchFinished {
		b.WriteString(goalFormHTML(match, teams))
	}
	b.WriteString(`</div>`)
	return layouts.HTML(b.String())
}

func scoreboardComponent(match models.Match) templ.Component {
	return layouts.HTML(scoreboardHTML(match))
}

// scoreboardHTML is the swap target of the goal forms.
func scoreboardHTML(match models.Match) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(`<section id="%s" class="space-y-4 rounded-lg border bg-white p-4">`, scoreboardID))
	b.WriteString(fmt.Sprintf(`<div class="flex items-center justify-center gap-6 text-xl"><span class="font-semibold" style="color: %s">%s</span><span class="text-3xl font-bold">%d × %d</span><span class="font-semibold" style="color: %s">%s</span></div>`,
		layouts.TeamColor(color(match.Home)), html.EscapeString(match.HomeName()),
		match.HomeGoals, match.AwayGoals,
		layouts.TeamColor(color(match.Away)), html.EscapeString(match.AwayName())))
	b.WriteString(fmt.Sprintf(`<p class="text-center text-sm text-gray-500">%s</p>`, html.EscapeString(match.Status.Label())))

	if len(match.Goals) == 0 {
		b.WriteString(`<p class="text-sm text-gray-500">Nenhum gol registrado.</p>`)
	} else {
		b.WriteString(`<ol class="divide-y text-sm">`)
		for _, goal := range match.Goals {
			b.WriteString(`<li class="flex items-center justify-between py-2"><span>`)
			b.WriteString(fmt.Sprintf(`<span class="mr-2 text-gray-500">%s</span>⚽ %s`, minuteLabel(goal.Minute), html.EscapeString(goal.PlayerName)))
			if goal.OwnGoal {
				b.WriteString(` <span class="text-red-600">(contra)</span>`)
			}
			if goal.AssistName != "" {
				b.WriteString(fmt.Sprintf(` <span class="text-gray-500">assistência de %s</span>`, html.EscapeString(goal.AssistName)))
			}
			b.WriteString(fmt.Sprintf(` <span class="text-xs text-gray-400">%s</span></span>`, html.EscapeString(goalTeam(match, goal.TeamID))))
			if match.Status != models.MatchFinished {
				b.WriteString(fmt.Sprintf(`<form hx-post="/gols/%d/delete" hx-target="#%s" hx-swap="outerHTML"><input type="hidden" name="partida_id" value="%d"><button class="text-xs text-red-600 hover:underline">Remover</button></form>`,
					goal.ID, scoreboardID, match.ID))
			}
			b.WriteString(`</li>`)
		}
		b.WriteString(`</ol>`)
	}
	b.WriteString(`</section>`)
	return b.String()
}

func goalFormHTML(match models.Match, teams []models.Team) string {
	if len(teams) == 0 {
		return `<p class="text-sm text-gray-500">Não foi possível carregar os elencos para registrar gols.</p>`
	}
	var teamOptions, playerOptions strings.Builder
	for _, team := range teams {
		teamOptions.WriteString(fmt.Sprintf(`<option value="%d">%s</option>`, team.ID, html.EscapeString(team.Name)))
		playerOptions.WriteString(fmt.Sprintf(`<optgroup label="%s">`, html.EscapeString(team.Name)))
		for _, member := range team.Members {
			playerOptions.WriteString(fmt.Sprintf(`<option value="%d">%s</option>`, member.PlayerID, html.EscapeString(member.DisplayName())))
		}
		playerOptions.WriteString(`</optgroup>`)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf(`<form hx-post="/partidas/%d/gol" hx-target="#%s" hx-swap="outerHTML" class="grid gap-3 rounded-lg border bg-white p-4 sm:grid-cols-2">`, match.ID, scoreboardID))
	b.WriteString(`<h2 class="text-lg font-semibold sm:col-span-2">Registrar gol</h2>`)
	b.WriteString(fmt.Sprintf(`<label class="block text-sm">Time<select name="time_id" class="mt-1 w-full rounded border px-2 py-1">%s</select></label>`, teamOptions.String()))
	b.WriteString(fmt.Sprintf(`<label class="block text-sm">Jogador<select name="jogador_id" class="mt-1 w-full rounded border px-2 py-1">%s</select></label>`, playerOptions.String()))
	b.WriteString(fmt.Sprintf(`<label class="block text-sm">Assistência<select name="assistencia_id" class="mt-1 w-full rounded border px-2 py-1"><option value="">Sem assistência</option>%s</select></label>`, playerOptions.String()))
	b.WriteString(`<label class="block text-sm">Minuto<input type="number" min="0" name="minuto" class="mt-1 w-full rounded border px-2 py-1"></label>`)
	b.WriteString(`<label class="flex items-center gap-2 text-sm"><input type="checkbox" name="gol_contra" value="true">Gol contra</label>`)
	b.WriteString(`<div class="sm:col-span-2"><button class="rounded bg-[var(--theme-primary)] px-4 py-2 text-white">Registrar</button></div>`)
	b.WriteString(`</form>`)
	return b.String()
}

func minuteLabel(minute *int64) string {
	if minute == nil {
		return "–"
	}
	return fmt.Sprintf("%d'", *minute)
}

func goalTeam(match models.Match, teamID int64) string {
	switch teamID {
	case match.HomeID:
		return match.HomeName()
	case match.AwayID:
		return match.AwayName()
	}
	return ""
}

func color(team *models.Team) string {
	if team == nil {
		return ""
	}
	return team.Color
}
