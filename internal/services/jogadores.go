package services

import (
	"context"
	"net/http"

	"github.com/codr1/Peladeiro/internal/apiclient"
	"github.com/codr1/Peladeiro/internal/models"
)

// InputError is a form value the adapters refused to send.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string { return e.Message }

type PlayerInput struct {
	FullName string
	Nickname string
	Phone    string
}

// PlayerUpdate mirrors the edit form; every field is sent.
type PlayerUpdate struct {
	FullName string
	Nickname string
	Phone    string
	Active   bool
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func (s *Service) ListPlayers(ctx context.Context, leagueID int64, page, perPage int, active *bool) (models.Page[models.Player], error) {
	query := pageQuery(page, perPage)
	if active != nil {
		query.Set("ativo", formBool(*active))
	}
	payload, err := s.api.Do(ctx, http.MethodGet, pathf("/api/peladas/%d/jogadores", leagueID), nil, query)
	if err != nil {
		return models.Page[models.Player]{}, err
	}
	return models.DecodePage(payload, models.DecodePlayer, "data", "jogadores"), nil
}

func (s *Service) CreatePlayer(ctx context.Context, leagueID int64, in PlayerInput, photo *apiclient.File) (models.Player, error) {
	path := pathf("/api/peladas/%d/jogadores", leagueID)

	if uploads := files(withField(photo, "foto")); len(uploads) > 0 {
		payload, err := s.api.Upload(ctx, http.MethodPost, path, apiclient.Form{
			Fields: map[string]string{
				"nome_completo": in.FullName,
				"apelido":       in.Nickname,
				"telefone":      in.Phone,
			},
			Files: uploads,
		}, nil)
		if err != nil {
			return models.Player{}, err
		}
		return models.DecodePlayer(payload), nil
	}

	payload, err := s.api.Do(ctx, http.MethodPost, path, map[string]any{
		"nome_completo": in.FullName,
		"apelido":       nullable(in.Nickname),
		"telefone":      nullable(in.Phone),
	}, nil)
	if err != nil {
		return models.Player{}, err
	}
	return models.DecodePlayer(payload), nil
}

func (s *Service) GetPlayer(ctx context.Context, playerID int64) (models.Player, error) {
	payload, err := s.api.Do(ctx, http.MethodGet, pathf("/api/peladas/jogadores/%d", playerID), nil, nil)
	if err != nil {
		return models.Player{}, err
	}
	return models.DecodePlayer(payload), nil
}

func (s *Service) UpdatePlayer(ctx context.Context, playerID int64, in PlayerUpdate, photo *apiclient.File) (models.Player, error) {
	path := pathf("/api/peladas/jogadores/%d", playerID)

	if uploads := files(withField(photo, "foto")); len(uploads) > 0 {
		payload, err := s.api.Upload(ctx, http.MethodPut, path, apiclient.Form{
			Fields: map[string]string{
				"nome_completo": in.FullName,
				"apelido":       in.Nickname,
				"telefone":      in.Phone,
				"ativo":         formBool(in.Active),
			},
			Files: uploads,
		}, nil)
		if err != nil {
			return models.Player{}, err
		}
		return models.DecodePlayer(payload), nil
	}

	payload, err := s.api.Do(ctx, http.MethodPut, path, map[string]any{
		"nome_completo": in.FullName,
		"apelido":       nullable(in.Nickname),
		"telefone":      nullable(in.Phone),
		"ativo":         in.Active,
	}, nil)
	if err != nil {
		return models.Player{}, err
	}
	return models.DecodePlayer(payload), nil
}

// ListAllPlayers walks every page of the league roster.
func (s *Service) ListAllPlayers(ctx context.Context, leagueID int64) ([]models.Player, error) {
	var players []models.Player
	for page := 1; ; page++ {
		listing, err := s.ListPlayers(ctx, leagueID, page, 200, nil)
		if err != nil {
			return nil, err
		}
		players = append(players, listing.Items...)
		if page >= listing.Meta.TotalPages || len(listing.Items) == 0 {
			return players, nil
		}
	}
}
