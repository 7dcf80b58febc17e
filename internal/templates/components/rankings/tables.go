// Package rankings renders the standings and player ranking tables shared by
// the season ranking pages and the public league profile.
package rankings

import (
	"fmt"
	"html"
	"strings"

	"github.com/codr1/Peladeiro/internal/models"
	"github.com/codr1/Peladeiro/internal/templates/layouts"
)

const emptyRowHTML = `<div class="rounded border border-dashed p-6 text-center text-sm text-gray-500">%s</div>`

// StandingsTable renders the team table, leader first.
func StandingsTable(standings []models.TeamStanding) string {
	if len(standings) == 0 {
		return fmt.Sprintf(emptyRowHTML, "Nenhum time classificado ainda.")
	}

	var b strings.Builder
	b.WriteString(`<table class="w-full text-sm"><thead><tr class="text-left text-gray-500">`)
	b.WriteString(`<th class="py-2">#</th><th>Time</th><th>P</th><th>J</th><th>V</th><th>E</th><th>D</th><th>GP</th><th>GC</th><th>SG</th></tr></thead><tbody>`)
	for i, row := range standings {
		b.WriteString(fmt.Sprintf(
			`<tr class="border-t"><td class="py-2">%d</td><td class="flex items-center gap-2 py-2">%s%s</td><td class="font-semibold">%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td></tr>`,
			i+1,
			layouts.Image(row.CrestURL, row.Name, "h-6 w-6 rounded-full object-cover"),
			html.EscapeString(teamName(row)),
			row.Points, row.Played, row.Wins, row.Draws, row.Losses,
			row.GoalsFor, row.GoalsAgainst, row.GoalDiff,
		))
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func teamName(row models.TeamStanding) string {
	if row.Name != "" {
		return row.Name
	}
	return fmt.Sprintf("Time #%d", row.TeamID)
}

// PlayerTable renders a goals or assists ranking.
func PlayerTable(entries []models.RankingEntry, kind models.RankingKind) string {
	label := "Gols"
	empty := "Nenhum gol registrado ainda."
	if kind == models.RankingAssists {
		label = "Assistências"
		empty = "Nenhuma assistência registrada ainda."
	}
	if len(entries) == 0 {
		return fmt.Sprintf(emptyRowHTML, empty)
	}

	var b strings.Builder
	b.WriteString(`<table class="w-full text-sm"><thead><tr class="text-left text-gray-500"><th class="py-2">#</th><th>Jogador</th><th>Time</th><th>`)
	b.WriteString(label)
	b.WriteString(`</th></tr></thead><tbody>`)
	for i, entry := range entries {
		b.WriteString(fmt.Sprintf(
			`<tr class="border-t"><td class="py-2">%d</td><td class="flex items-center gap-2 py-2">%s%s</td><td>%s</td><td class="font-semibold">%d</td></tr>`,
			i+1,
			layouts.Image(entry.PhotoURL, entry.DisplayName(), "h-6 w-6 rounded-full object-cover"),
			html.EscapeString(entry.DisplayName()),
			html.EscapeString(entry.TeamName),
			entry.Total,
		))
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

// ErrorNotice is shown in place of a ranking the API failed to return.
func ErrorNotice(message string) string {
	return `<div class="rounded border border-amber-300 bg-amber-50 px-4 py-2 text-sm text-amber-800">` +
		html.EscapeString(message) + `</div>`
}
