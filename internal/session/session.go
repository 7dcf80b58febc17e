// Package session keeps the browser session in an HMAC-signed cookie: the
// API tokens, the recently created votes and pending flash messages.
package session

import (
	"context"
	"sync"

	"github.com/codr1/Peladeiro/internal/voting"
)

const (
	FlashOK    = "ok"
	FlashError = "error"
)

type Flash struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

type data struct {
	AccessToken  string              `json:"at,omitempty"`
	RefreshToken string              `json:"rt,omitempty"`
	RecentVotes  []voting.RecentVote `json:"rv,omitempty"`
	Flashes      []Flash             `json:"fl,omitempty"`
	ExpiresAt    int64               `json:"exp"`
}

func (d data) empty() bool {
	return d.AccessToken == "" && d.RefreshToken == "" && len(d.RecentVotes) == 0 && len(d.Flashes) == 0
}

// Session is the per-request view of the cookie. Changes are written back
// by Store.Middleware before the response headers go out.
type Session struct {
	mu        sync.Mutex
	data      data
	dirty     bool
	maxRecent int
}

func newSession(maxRecent int) *Session {
	return &Session{maxRecent: maxRecent}
}

func (s *Session) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.AccessToken
}

func (s *Session) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.RefreshToken
}

func (s *Session) IsAuthenticated() bool {
	return s.AccessToken() != ""
}

func (s *Session) SetTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.AccessToken = access
	s.data.RefreshToken = refresh
	s.dirty = true
}

// Clear drops tokens and recent votes. Flashes added afterwards survive.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data{}
	s.dirty = true
}

func (s *Session) RecentVotes() []voting.RecentVote {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]voting.RecentVote, len(s.data.RecentVotes))
	copy(out, s.data.RecentVotes)
	return out
}

func (s *Session) RememberVote(vote voting.RecentVote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.RecentVotes = voting.Remember(s.data.RecentVotes, vote, s.maxRecent)
	s.dirty = true
}

func (s *Session) RoundForVote(voteID int64) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return voting.RoundFor(s.data.RecentVotes, voteID)
}

func (s *Session) AddFlash(category, message string) {
	if message == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Flashes = append(s.data.Flashes, Flash{Category: category, Message: message})
	s.dirty = true
}

// PopFlashes returns and removes the pending flashes.
func (s *Session) PopFlashes() []Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	flashes := s.data.Flashes
	if len(flashes) > 0 {
		s.data.Flashes = nil
		s.dirty = true
	}
	return flashes
}

func (s *Session) snapshot() (data, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data, s.dirty
}

func (s *Session) markClean() {
	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
}

type contextKey struct{}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the request session. Outside Store.Middleware it
// returns a detached empty session so callers never see nil.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(contextKey{}).(*Session); ok && s != nil {
		return s
	}
	return newSession(voting.MaxRecent)
}
