package models

import (
	"github.com/tidwall/gjson"
)

type Tokens struct {
	Access  string
	Refresh string
}

func DecodeTokens(r gjson.Result) Tokens {
	return Tokens{
		Access:  firstString(r, "token_acesso", "access_token"),
		Refresh: firstString(r, "token_atualizacao", "refresh_token"),
	}
}

type User struct {
	ID       int64
	Username string
	Email    string
}

func DecodeUser(r gjson.Result) User {
	u := Unwrap(r, "usuario")
	return User{
		ID:       firstInt(u, "id"),
		Username: firstString(u, "username", "nome"),
		Email:    firstString(u, "email"),
	}
}

type League struct {
	ID         int64
	Name       string
	City       string
	TimeZone   string
	LogoURL    string
	ProfileURL string
	Active     bool
	ManagerID  *int64
}

func DecodeLeague(r gjson.Result) League {
	l := Unwrap(r, "pelada")
	return League{
		ID:         firstInt(l, "id"),
		Name:       firstString(l, "nome"),
		City:       firstString(l, "cidade"),
		TimeZone:   firstString(l, "fuso_horario"),
		LogoURL:    firstString(l, "logo_url", "logo"),
		ProfileURL: firstString(l, "perfil_url", "perfil"),
		Active:     firstBool(l, true, "ativa"),
		ManagerID:  optionalIntPtr(l, "usuario_gerente_id", "gerente_id", "usuario_gerente.id"),
	}
}

// ManagedBy reports whether the league names userID as its manager. The
// second result is false when the payload carries no manager.
func (l League) ManagedBy(userID int64) (managed, known bool) {
	if l.ManagerID == nil {
		return false, false
	}
	return *l.ManagerID == userID, true
}

type LeagueProfile struct {
	League       League
	ActiveSeason *Season
	Players      int64
	Seasons      int64
}

func DecodeLeagueProfile(r gjson.Result) LeagueProfile {
	profile := LeagueProfile{
		League:  DecodeLeague(r),
		Players: firstInt(r, "estatisticas.total_jogadores", "total_jogadores"),
		Seasons: firstInt(r, "estatisticas.total_temporadas", "total_temporadas"),
	}
	if season := r.Get("temporada_ativa"); season.IsObject() {
		decoded := DecodeSeason(season)
		profile.ActiveSeason = &decoded
	}
	return profile
}

type PageMeta struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// Page is one page of a listing. Meta defaults to a single page when the
// API omits it.
type Page[T any] struct {
	Items []T
	Meta  PageMeta
}

func (p Page[T]) HasNext() bool {
	return p.Meta.Page < p.Meta.TotalPages
}

func (p Page[T]) HasPrev() bool {
	return p.Meta.Page > 1
}

func DecodePage[T any](r gjson.Result, decode func(gjson.Result) T, keys ...string) Page[T] {
	if len(keys) == 0 {
		keys = []string{"data"}
	}
	items := decodeAll(Items(r, keys...), decode)
	meta := PageMeta{
		Page:       int(firstInt(r, "meta.page", "meta.pagina")),
		PerPage:    int(firstInt(r, "meta.per_page")),
		Total:      int(firstInt(r, "meta.total")),
		TotalPages: int(firstInt(r, "meta.total_pages", "meta.pages")),
	}
	if meta.Page < 1 {
		meta.Page = 1
	}
	if meta.TotalPages < 1 {
		meta.TotalPages = 1
	}
	if meta.Total == 0 {
		meta.Total = len(items)
	}
	return Page[T]{Items: items, Meta: meta}
}
