package votacoes

import (
	"fmt"
	"html"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/Peladeiro/internal/models"
	"github.com/codr1/Peladeiro/internal/positions"
	"github.com/codr1/Peladeiro/internal/templates/layouts"
	"github.com/codr1/Peladeiro/internal/voting"
)

type ballotView struct {
	VoteID        int64
	RoundID       int64
	Vote          *models.Vote
	State         voting.State
	Groups        []positions.Group[models.Player]
	PlayersFailed bool
}

const linkClass = "text-emerald-700 hover:underline"

func votesPageComponent(roundID, createdID int64, recent []voting.RecentVote) templ.Component {
	var b strings.Builder
	b.WriteString(`<div class="space-y-6">`)
	b.WriteString(fmt.Sprintf(`<div><a href="/rodadas/%d" class="text-sm %s">← Rodada</a><h1 class="text-2xl font-semibold">Votações</h1></div>`, roundID, linkClass))

	if createdID != 0 {
		b.WriteString(fmt.Sprintf(`<div class="rounded border border-emerald-300 bg-emerald-50 p-4 text-sm">Votação #%d criada. <a class="%s" href="%s">Abrir cédula</a> · <a class="%s" href="/votacoes/%d/resultado?rodada_id=%d">Ver resultado</a></div>`,
			createdID, linkClass, ballotPath(createdID, roundID), linkClass, createdID, roundID))
	}

	b.WriteString(fmt.Sprintf(`<form method="post" action="%s" class="grid gap-3 rounded-lg border bg-white p-4 sm:grid-cols-3"><h2 class="text-lg font-semibold sm:col-span-3">Nova votação</h2>`, votesPath(roundID)))
	b.WriteString(`<label class="block text-sm">Abre em<input type="datetime-local" name="abre_em" required class="mt-1 w-full rounded border px-2 py-1"></label>`)
	b.WriteString(`<label class="block text-sm">Fecha em<input type="datetime-local" name="fecha_em" required class="mt-1 w-full rounded border px-2 py-1"></label>`)
	b.WriteString(`<label class="block text-sm">Tipo<input name="tipo" placeholder="Craque da rodada" class="mt-1 w-full rounded border px-2 py-1"></label>`)
	b.WriteString(`<div class="sm:col-span-3"><button class="rounded bg-[var(--theme-primary)] px-4 py-2 text-white">Criar votação</button></div></form>`)

	b.WriteString(`<section class="rounded-lg border bg-white p-4"><h2 class="mb-2 text-lg font-semibold">Criadas recentemente</h2>`)
	if len(recent) == 0 {
		b.WriteString(`<p class="text-sm text-gray-500">Nenhuma votação criada neste navegador.</p>`)
	} else {
		b.WriteString(`<ul class="divide-y text-sm">`)
		for _, vote := range recent {
			b.WriteString(fmt.Sprintf(`<li class="flex items-center justify-between py-2"><span><span class="font-medium">#%d %s</span> <span class="text-gray-500">%s a %s</span></span><span class="flex gap-3"><a class="%s" href="%s">Votar</a><a class="%s" href="/votacoes/%d/resultado?rodada_id=%d">Resultado</a></span></li>`,
				vote.ID, html.EscapeString(vote.Kind), layouts.DateTime(vote.OpensAt), layouts.DateTime(vote.ClosesAt),
				linkClass, ballotPath(vote.ID, vote.RoundID), linkClass, vote.ID, vote.RoundID))
		}
		b.WriteString(`</ul>`)
	}
	b.WriteString(`</section>`)
	b.WriteString(fmt.Sprintf(`<a class="text-sm %s" href="%s/resultados">Resultados de todas as votações da rodada</a>`, linkClass, votesPath(roundID)))
	b.WriteString(`</div>`)
	return layouts.HTML(b.String())
}

func ballotComponent(view ballotView) templ.Component {
	var b strings.Builder
	b.WriteString(`<div class="space-y-6">`)
	if view.RoundID != 0 {
		b.WriteString(fmt.Sprintf(`<a href="%s" class="text-sm %s">← Votações</a>`, votesPath(view.RoundID), linkClass))
	}
	title := fmt.Sprintf("Votação #%d", view.VoteID)
	if view.Vote != nil && view.Vote.Kind != "" {
		title = view.Vote.Kind
	}
	b.WriteString(fmt.Sprintf(`<h1 class="text-2xl font-semibold">%s</h1>`, html.EscapeString(title)))
	if view.Vote != nil && (view.Vote.OpensAt != "" || view.Vote.ClosesAt != "") {
		b.WriteString(fmt.Sprintf(`<p class="text-sm text-gray-500">%s a %s</p>`, layouts.DateTime(view.Vote.OpensAt), layouts.DateTime(view.Vote.ClosesAt)))
	}

	if view.State != voting.Open {
		b.WriteString(notice(voting.ClosedMessage))
		b.WriteString(`</div>`)
		return layouts.HTML(b.String())
	}

	switch {
	case view.RoundID == 0:
		b.WriteString(notice("Não foi possível identificar a rodada desta votação."))
	case view.PlayersFailed:
		b.WriteString(notice("Não foi possível carregar os jogadores da rodada."))
	case len(view.Groups) == 0:
		b.WriteString(`<p class="text-sm text-gray-500">Nenhum jogador nesta rodada.</p>`)
	}

	b.WriteString(fmt.Sprintf(`<form method="post" action="%s" class="space-y-4 rounded-lg border bg-white p-4">`, html.EscapeString(ballotPath(view.VoteID, view.RoundID))))
	b.WriteString(`<label class="block text-sm">Seu ID de jogador<input type="number" min="1" name="jogador_votante_id" required class="mt-1 w-40 rounded border px-2 py-1"></label>`)
	b.WriteString(fmt.Sprintf(`<p class="text-sm text-gray-500">Selecione até %d jogadores.</p>`, voting.MaxSelections))
	for _, group := range view.Groups {
		b.WriteString(fmt.Sprintf(`<fieldset class="space-y-1"><legend class="font-medium">%s</legend>`, html.EscapeString(group.Position.Name)))
		for _, player := range group.Members {
			b.WriteString(fmt.Sprintf(`<label class="flex items-center gap-2 text-sm"><input type="checkbox" name="jogador_votado_ids" value="%d">%s%s`,
				player.ID, layouts.Image(player.PhotoURL, player.DisplayName(), "h-6 w-6 rounded-full object-cover"), html.EscapeString(player.DisplayName())))
			if player.TeamName != "" {
				b.WriteString(fmt.Sprintf(` <span class="text-xs text-gray-500">%s</span>`, html.EscapeString(player.TeamName)))
			}
			b.WriteString(`</label>`)
		}
		b.WriteString(`</fieldset>`)
	}
	b.WriteString(`<button class="rounded bg-[var(--theme-primary)] px-4 py-2 text-white">Votar</button></form>`)
	b.WriteString(`</div>`)
	return layouts.HTML(b.String())
}

func resultComponent(voteID, roundID int64, result models.VoteResult, groups []positions.Group[models.VoteTally]) templ.Component {
	var b strings.Builder
	b.WriteString(`<div class="space-y-6">`)
	if roundID != 0 {
		b.WriteString(fmt.Sprintf(`<a href="%s" class="text-sm %s">← Votações</a>`, votesPath(roundID), linkClass))
	}
	title := result.Vote.Kind
	if title == "" {
		title = fmt.Sprintf("Votação #%d", voteID)
	}
	b.WriteString(fmt.Sprintf(`<h1 class="text-2xl font-semibold">Resultado: %s</h1>`, html.EscapeString(title)))
	b.WriteString(resultSummaryHTML(result))
	if len(groups) == 0 {
		b.WriteString(`<p class="text-sm text-gray-500">Nenhum voto registrado.</p>`)
	}
	for _, group := range groups {
		b.WriteString(fmt.Sprintf(`<section class="rounded-lg border bg-white p-4"><h2 class="mb-2 font-semibold">%s</h2>`, html.EscapeString(group.Position.Name)))
		b.WriteString(talliesHTML(group.Members))
		b.WriteString(`</section>`)
	}
	b.WriteString(`</div>`)
	return layouts.HTML(b.String())
}

func roundResultsComponent(roundID int64, kind string, results []models.VoteResult) templ.Component {
	var b strings.Builder
	b.WriteString(`<div class="space-y-6">`)
	b.WriteString(fmt.Sprintf(`<div><a href="%s" class="text-sm %s">← Votações</a><h1 class="text-2xl font-semibold">Resultados das votações</h1></div>`, votesPath(roundID), linkClass))
	b.WriteString(fmt.Sprintf(`<form method="get" class="flex items-end gap-2"><label class="block text-sm">Tipo<input name="tipo" value="%s" class="mt-1 rounded border px-2 py-1"></label><button class="rounded border bg-white px-3 py-1 text-sm">Filtrar</button></form>`, html.EscapeString(kind)))
	if len(results) == 0 {
		b.WriteString(`<p class="text-sm text-gray-500">Nenhuma votação encontrada.</p>`)
	}
	for _, result := range results {
		title := result.Vote.Kind
		if title == "" {
			title = defaultKind
		}
		b.WriteString(fmt.Sprintf(`<section class="space-y-2 rounded-lg border bg-white p-4"><h2 class="text-lg font-semibold">%s</h2>`, html.EscapeString(title)))
		b.WriteString(resultSummaryHTML(result))
		b.WriteString(talliesHTML(result.Tallies))
		b.WriteString(`</section>`)
	}
	b.WriteString(`</div>`)
	return layouts.HTML(b.String())
}

func resultSummaryHTML(result models.VoteResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(`<p class="text-sm text-gray-500">%d voto(s)`, result.TotalVotes))
	if result.Vote.OpensAt != "" || result.Vote.ClosesAt != "" {
		b.WriteString(fmt.Sprintf(` · %s a %s`, layouts.DateTime(result.Vote.OpensAt), layouts.DateTime(result.Vote.ClosesAt)))
	}
	b.WriteString(`</p>`)
	if result.Winner != nil {
		b.WriteString(fmt.Sprintf(`<p class="text-lg">🏆 <span class="font-semibold">%s</span> <span class="text-sm text-gray-500">%d ponto(s)</span></p>`,
			html.EscapeString(result.Winner.DisplayName()), result.Winner.Points))
	}
	return b.String()
}

func talliesHTML(tallies []models.VoteTally) string {
	if len(tallies) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<table class="w-full text-sm"><thead><tr class="text-left text-gray-500"><th class="py-1">Jogador</th><th>Pontos</th><th>Votos</th></tr></thead><tbody>`)
	for _, tally := range tallies {
		b.WriteString(fmt.Sprintf(`<tr class="border-t"><td class="py-1">%s</td><td class="font-semibold">%d</td><td>%d</td></tr>`,
			html.EscapeString(tally.DisplayName()), tally.Points, tally.Votes))
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func notice(message string) string {
	return `<div class="rounded border border-amber-300 bg-amber-50 px-4 py-2 text-sm text-amber-800">` + html.EscapeString(message) + `</div>`
}
