// Package scout builds the yearly report of a league: goals, assists and
// titles per player summed over every season. Each remote fetch fails on its
// own; a failed fetch contributes nothing and the report is still produced.
package scout

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Peladeiro/internal/models"
)

const (
	SeasonPageSize = 100
	RankingLimit   = 1000
)

// Source is the subset of the service layer the report reads from.
type Source interface {
	ListSeasons(ctx context.Context, leagueID int64, page, perPage int) (models.Page[models.Season], error)
	TopScorers(ctx context.Context, seasonID int64, limit int) ([]models.RankingEntry, error)
	TopAssists(ctx context.Context, seasonID int64, limit int) ([]models.RankingEntry, error)
	TeamStandings(ctx context.Context, seasonID int64) ([]models.TeamStanding, error)
	GetTeam(ctx context.Context, teamID int64) (models.Team, error)
}

type PlayerTotal struct {
	PlayerID int64
	Name     string
	PhotoURL string
	Total    int
}

// TitleGroup lists the players sharing the same number of titles.
type TitleGroup struct {
	Titles  int
	Players []PlayerTotal
}

type Report struct {
	Scorers []PlayerTotal
	Assists []PlayerTotal
	Titles  []TitleGroup
	// Seasons is the number of seasons walked.
	Seasons int
	// FailedSeasons holds seasons with at least one failed fetch.
	FailedSeasons []int64
	// Incomplete is set when the season listing itself stopped early.
	Incomplete bool
}

type tally struct {
	order  []int64
	totals map[int64]*PlayerTotal
}

func newTally() *tally {
	return &tally{totals: make(map[int64]*PlayerTotal)}
}

func (t *tally) add(id int64, name, photo string, n int) {
	entry, ok := t.totals[id]
	if !ok {
		entry = &PlayerTotal{PlayerID: id, Name: name, PhotoURL: photo}
		t.totals[id] = entry
		t.order = append(t.order, id)
	}
	if entry.Name == "" {
		entry.Name = name
	}
	if entry.PhotoURL == "" {
		entry.PhotoURL = photo
	}
	entry.Total += n
}

func (t *tally) sorted() []PlayerTotal {
	out := make([]PlayerTotal, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, *t.totals[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// Build walks every season of leagueID and aggregates the report.
func Build(ctx context.Context, src Source, leagueID int64) Report {
	logger := log.Ctx(ctx)
	seasons, complete := listSeasons(ctx, src, leagueID)

	goals := newTally()
	assists := newTally()
	titles := newTally()
	failed := make(map[int64]struct{})
	markFailed := func(seasonID int64, what string, err error) {
		failed[seasonID] = struct{}{}
		logger.Warn().
			Err(err).
			Int64("pelada_id", leagueID).
			Int64("temporada_id", seasonID).
			Str("fetch", what).
			Msg("Skipping season data in yearly scout")
	}

	walked := 0
	for _, season := range seasons {
		if season.ID == 0 {
			continue
		}
		walked++

		if entries, err := src.TopScorers(ctx, season.ID, RankingLimit); err != nil {
			markFailed(season.ID, "artilheiros", err)
		} else {
			for _, e := range entries {
				goals.add(e.PlayerID, e.DisplayName(), e.PhotoURL, e.Total)
			}
		}

		if entries, err := src.TopAssists(ctx, season.ID, RankingLimit); err != nil {
			markFailed(season.ID, "assistencias", err)
		} else {
			for _, e := range entries {
				assists.add(e.PlayerID, e.DisplayName(), e.PhotoURL, e.Total)
			}
		}

		standings, err := src.TeamStandings(ctx, season.ID)
		if err != nil {
			markFailed(season.ID, "times", err)
			continue
		}
		if len(standings) == 0 || standings[0].TeamID == 0 {
			continue
		}
		champion, err := src.GetTeam(ctx, standings[0].TeamID)
		if err != nil {
			markFailed(season.ID, "elenco campeão", err)
			continue
		}
		for _, member := range champion.Members {
			titles.add(member.PlayerID, member.DisplayName(), member.PhotoURL, 1)
		}
	}

	report := Report{
		Scorers:    goals.sorted(),
		Assists:    assists.sorted(),
		Titles:     groupTitles(titles, goals, assists),
		Seasons:    walked,
		Incomplete: !complete,
	}
	for _, season := range seasons {
		if _, ok := failed[season.ID]; ok {
			report.FailedSeasons = append(report.FailedSeasons, season.ID)
		}
	}
	return report
}

func listSeasons(ctx context.Context, src Source, leagueID int64) ([]models.Season, bool) {
	var seasons []models.Season
	for page := 1; ; page++ {
		listing, err := src.ListSeasons(ctx, leagueID, page, SeasonPageSize)
		if err != nil {
			log.Ctx(ctx).Warn().
				Err(err).
				Int64("pelada_id", leagueID).
				Int("page", page).
				Msg("Stopping season walk in yearly scout")
			return seasons, false
		}
		seasons = append(seasons, listing.Items...)
		if page >= listing.Meta.TotalPages || len(listing.Items) == 0 {
			return seasons, true
		}
	}
}

// groupTitles prefers the names seen in the goal and assist rankings and
// falls back to the roster entry.
func groupTitles(titles, goals, assists *tally) []TitleGroup {
	byCount := make(map[int][]PlayerTotal)
	for _, player := range titles.sorted() {
		for _, known := range []*tally{goals, assists} {
			if entry, ok := known.totals[player.PlayerID]; ok && entry.Name != "" {
				player.Name = entry.Name
				if entry.PhotoURL != "" {
					player.PhotoURL = entry.PhotoURL
				}
				break
			}
		}
		byCount[player.Total] = append(byCount[player.Total], player)
	}

	counts := make([]int, 0, len(byCount))
	for count := range byCount {
		counts = append(counts, count)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	groups := make([]TitleGroup, 0, len(counts))
	for _, count := range counts {
		players := byCount[count]
		sort.SliceStable(players, func(i, j int) bool {
			return strings.ToLower(players[i].Name) < strings.ToLower(players[j].Name)
		})
		groups = append(groups, TitleGroup{Titles: count, Players: players})
	}
	return groups
}
