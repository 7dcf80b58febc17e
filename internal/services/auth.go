package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/codr1/Peladeiro/internal/apiclient"
	"github.com/codr1/Peladeiro/internal/models"
)

var ErrMissingTokens = errors.New("login response carried no access token")

func (s *Service) Login(ctx context.Context, username, password string) (models.Tokens, error) {
	payload, err := s.api.Do(ctx, http.MethodPost, "/api/usuarios/login", map[string]string{
		"username": username,
		"password": password,
	}, nil)
	if err != nil {
		return models.Tokens{}, err
	}
	tokens := models.DecodeTokens(payload)
	if tokens.Access == "" {
		return models.Tokens{}, ErrMissingTokens
	}
	return tokens, nil
}

// Register creates an account. The API calls the display name username.
func (s *Service) Register(ctx context.Context, email, password, name string) error {
	_, err := s.api.Do(ctx, http.MethodPost, "/api/usuarios/registrar", map[string]string{
		"username": name,
		"email":    email,
		"password": password,
	}, nil)
	return err
}

func (s *Service) Me(ctx context.Context) (models.User, error) {
	payload, err := s.api.Do(ctx, http.MethodGet, "/api/usuarios/me", nil, nil)
	if err != nil {
		return models.User{}, err
	}
	return models.DecodeUser(payload), nil
}

// Refresh trades the refresh token for a new token pair. A response without
// a new refresh token keeps the old one.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (models.Tokens, error) {
	payload, err := s.api.Do(apiclient.ContextWithToken(ctx, refreshToken), http.MethodPost, "/api/usuarios/refresh", nil, nil)
	if err != nil {
		return models.Tokens{}, err
	}
	tokens := models.DecodeTokens(payload)
	if tokens.Access == "" {
		return models.Tokens{}, ErrMissingTokens
	}
	if tokens.Refresh == "" {
		tokens.Refresh = refreshToken
	}
	return tokens, nil
}
