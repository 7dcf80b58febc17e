package services

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Peladeiro/internal/apiclient"
	"github.com/codr1/Peladeiro/internal/models"
	"github.com/codr1/Peladeiro/internal/slug"
)

// SlugSearchPageSize is the listing page size used by FindLeagueBySlug.
const SlugSearchPageSize = 50

type LeagueInput struct {
	Name     string
	City     string
	TimeZone string
}

// LeagueUpdate carries only the fields being changed.
type LeagueUpdate struct {
	Name     *string
	City     *string
	TimeZone *string
	Active   *bool
}

func (u LeagueUpdate) fields() map[string]any {
	out := map[string]any{}
	if u.Name != nil {
		out["nome"] = *u.Name
	}
	if u.City != nil {
		out["cidade"] = *u.City
	}
	if u.TimeZone != nil {
		out["fuso_horario"] = *u.TimeZone
	}
	if u.Active != nil {
		out["ativa"] = *u.Active
	}
	return out
}

func (s *Service) ListLeagues(ctx context.Context, page, perPage int) (models.Page[models.League], error) {
	payload, err := s.api.Do(ctx, http.MethodGet, "/api/peladas/", nil, pageQuery(page, perPage))
	if err != nil {
		return models.Page[models.League]{}, err
	}
	return models.DecodePage(payload, models.DecodeLeague), nil
}

// CreateLeague sends JSON, or multipart when a logo or profile image is given.
func (s *Service) CreateLeague(ctx context.Context, in LeagueInput, logo, profile *apiclient.File) (models.League, error) {
	uploads := files(withField(logo, "logo"), withField(profile, "perfil"))
	if len(uploads) > 0 {
		fields := map[string]string{"nome": in.Name, "cidade": in.City}
		if in.TimeZone != "" {
			fields["fuso_horario"] = in.TimeZone
		}
		payload, err := s.api.Upload(ctx, http.MethodPost, "/api/peladas/", apiclient.Form{Fields: fields, Files: uploads}, nil)
		if err != nil {
			return models.League{}, err
		}
		return models.DecodeLeague(payload), nil
	}

	body := map[string]any{"nome": in.Name, "cidade": in.City}
	if in.TimeZone != "" {
		body["fuso_horario"] = in.TimeZone
	}
	payload, err := s.api.Do(ctx, http.MethodPost, "/api/peladas/", body, nil)
	if err != nil {
		return models.League{}, err
	}
	return models.DecodeLeague(payload), nil
}

func (s *Service) LeagueProfile(ctx context.Context, leagueID int64) (models.LeagueProfile, error) {
	payload, err := s.api.Do(ctx, http.MethodGet, pathf("/api/peladas/%d/perfil", leagueID), nil, nil)
	if err != nil {
		return models.LeagueProfile{}, err
	}
	return models.DecodeLeagueProfile(payload), nil
}

func (s *Service) UpdateLeague(ctx context.Context, leagueID int64, update LeagueUpdate, logo, profile *apiclient.File) (models.League, error) {
	path := pathf("/api/peladas/%d", leagueID)
	uploads := files(withField(logo, "logo"), withField(profile, "perfil"))
	if len(uploads) > 0 {
		fields := map[string]string{}
		for key, value := range update.fields() {
			switch v := value.(type) {
			case bool:
				fields[key] = formBool(v)
			case string:
				fields[key] = v
			}
		}
		payload, err := s.api.Upload(ctx, http.MethodPut, path, apiclient.Form{Fields: fields, Files: uploads}, nil)
		if err != nil {
			return models.League{}, err
		}
		return models.DecodeLeague(payload), nil
	}

	payload, err := s.api.Do(ctx, http.MethodPut, path, update.fields(), nil)
	if err != nil {
		return models.League{}, err
	}
	return models.DecodeLeague(payload), nil
}

// FindLeagueBySlug pages through the league listing and returns the first
// league whose name normalizes to target. Listing errors are returned.
func (s *Service) FindLeagueBySlug(ctx context.Context, target string) (models.League, bool, error) {
	want := slug.Normalize(target)
	if want == "" {
		return models.League{}, false, nil
	}

	for page := 1; ; page++ {
		listing, err := s.ListLeagues(ctx, page, SlugSearchPageSize)
		if err != nil {
			return models.League{}, false, err
		}
		for _, league := range listing.Items {
			if slug.Normalize(league.Name) == want {
				return league, true, nil
			}
		}
		if page >= listing.Meta.TotalPages || len(listing.Items) == 0 {
			return models.League{}, false, nil
		}
	}
}

// ListManagedLeagues lists one page of leagues, keeping only those the
// current user manages. Leagues without a manager field are kept unless
// their profile answers 403.
func (s *Service) ListManagedLeagues(ctx context.Context, page, perPage int) (models.Page[models.League], error) {
	listing, err := s.ListLeagues(ctx, page, perPage)
	if err != nil {
		return listing, err
	}

	logger := log.Ctx(ctx)
	var userID int64
	if user, err := s.Me(ctx); err == nil {
		userID = user.ID
	} else {
		if apiclient.HasStatus(err, http.StatusUnauthorized) {
			return models.Page[models.League]{}, err
		}
		logger.Warn().Err(err).Msg("Could not identify current user; probing league access")
	}

	visible := make([]models.League, 0, len(listing.Items))
	for _, league := range listing.Items {
		if userID != 0 {
			if managed, known := league.ManagedBy(userID); known {
				if managed {
					visible = append(visible, league)
				}
				continue
			}
		}

		_, err := s.LeagueProfile(ctx, league.ID)
		switch {
		case err == nil:
			visible = append(visible, league)
		case apiclient.HasStatus(err, http.StatusForbidden):
			// not visible to this user
		default:
			logger.Warn().Err(err).Int64("pelada_id", league.ID).Msg("League access probe failed; keeping league")
			visible = append(visible, league)
		}
	}

	listing.Items = visible
	listing.Meta.Total = len(visible)
	return listing, nil
}

func withField(file *apiclient.File, field string) *apiclient.File {
	if file == nil {
		return nil
	}
	named := *file
	named.Field = field
	return &named
}
