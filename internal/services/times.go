package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/codr1/Peladeiro/internal/apiclient"
	"github.com/codr1/Peladeiro/internal/models"
)

// ErrCrestRequired is returned by UpdateCrest without a file.
var ErrCrestRequired = &InputError{Field: "escudo", Message: "Selecione um arquivo de imagem"}

// ListTeams lists a season's teams. Zero page or perPage leaves the
// parameter out so the API applies its own default.
func (s *Service) ListTeams(ctx context.Context, seasonID int64, page, perPage int) ([]models.Team, error) {
	listing, err := s.listTeamsPage(ctx, seasonID, page, perPage)
	if err != nil {
		return nil, err
	}
	return listing.Items, nil
}

func (s *Service) listTeamsPage(ctx context.Context, seasonID int64, page, perPage int) (models.Page[models.Team], error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		query.Set("per_page", strconv.Itoa(perPage))
	}
	payload, err := s.api.Do(ctx, http.MethodGet, pathf("/api/peladas/temporadas/%d/times", seasonID), nil, query)
	if err != nil {
		return models.Page[models.Team]{}, err
	}
	return models.DecodePage(payload, models.DecodeTeam, "data", "times"), nil
}

// ListAllTeams walks every page of the season's teams.
func (s *Service) ListAllTeams(ctx context.Context, seasonID int64) ([]models.Team, error) {
	var teams []models.Team
	for page := 1; ; page++ {
		listing, err := s.listTeamsPage(ctx, seasonID, page, 200)
		if err != nil {
			return nil, err
		}
		teams = append(teams, listing.Items...)
		if page >= listing.Meta.TotalPages || len(listing.Items) == 0 {
			return teams, nil
		}
	}
}

func (s *Service) CreateTeam(ctx context.Context, seasonID int64, name, color string, crest *apiclient.File) (models.Team, error) {
	path := pathf("/api/peladas/temporadas/%d/times", seasonID)
	if uploads := files(withField(crest, "escudo")); len(uploads) > 0 {
		fields := map[string]string{"nome": name}
		if color != "" {
			fields["cor"] = color
		}
		payload, err := s.api.Upload(ctx, http.MethodPost, path, apiclient.Form{Fields: fields, Files: uploads}, nil)
		if err != nil {
			return models.Team{}, err
		}
		return models.DecodeTeam(payload), nil
	}

	body := map[string]any{"nome": name}
	if color != "" {
		body["cor"] = color
	}
	payload, err := s.api.Do(ctx, http.MethodPost, path, body, nil)
	if err != nil {
		return models.Team{}, err
	}
	return models.DecodeTeam(payload), nil
}

func (s *Service) GetTeam(ctx context.Context, teamID int64) (models.Team, error) {
	payload, err := s.api.Do(ctx, http.MethodGet, pathf("/api/peladas/times/%d", teamID), nil, nil)
	if err != nil {
		return models.Team{}, err
	}
	return models.DecodeTeam(payload), nil
}

// AddTeamPlayer puts a player on a team. An empty position is sent as null.
func (s *Service) AddTeamPlayer(ctx context.Context, teamID, playerID int64, captain bool, position string) error {
	_, err := s.api.Do(ctx, http.MethodPost, pathf("/api/peladas/times/%d/jogadores", teamID), map[string]any{
		"jogador_id": playerID,
		"capitao":    captain,
		"posicao":    nullable(position),
	}, nil)
	return err
}

func (s *Service) RemoveTeamPlayer(ctx context.Context, teamID, playerID int64) error {
	_, err := s.api.Do(ctx, http.MethodDelete, pathf("/api/peladas/times/%d/jogadores/%d", teamID, playerID), nil, nil)
	return err
}

// UpdateTeamPlayerPosition emulates an update by removing the player and
// adding them back with the new position and the same captaincy. It does
// nothing when the player is not on the team.
func (s *Service) UpdateTeamPlayerPosition(ctx context.Context, teamID, playerID int64, position string) (bool, error) {
	team, err := s.GetTeam(ctx, teamID)
	if err != nil {
		return false, err
	}
	member, ok := team.Member(playerID)
	if !ok {
		return false, nil
	}
	if err := s.RemoveTeamPlayer(ctx, teamID, playerID); err != nil {
		return false, err
	}
	if err := s.AddTeamPlayer(ctx, teamID, playerID, member.Captain, position); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) UpdateCrest(ctx context.Context, teamID int64, crest *apiclient.File) (models.Team, error) {
	uploads := files(withField(crest, "escudo"))
	if len(uploads) == 0 {
		return models.Team{}, ErrCrestRequired
	}
	payload, err := s.api.Upload(ctx, http.MethodPut, pathf("/api/peladas/times/%d", teamID), apiclient.Form{Files: uploads}, nil)
	if err != nil {
		return models.Team{}, err
	}
	return models.DecodeTeam(payload), nil
}

// AvailablePlayers returns the league players not yet on any team of the
// season.
func (s *Service) AvailablePlayers(ctx context.Context, leagueID, seasonID int64) ([]models.Player, error) {
	players, err := s.ListAllPlayers(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	teams, err := s.ListAllTeams(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	taken := models.MemberIDs(teams)
	available := make([]models.Player, 0, len(players))
	for _, player := range players {
		if _, ok := taken[player.ID]; ok || player.ID == 0 {
			continue
		}
		available = append(available, player)
	}
	return available, nil
}
