package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
)

const (
	defaultCookieName = "peladeiro_session"
	defaultTTL        = 7 * 24 * time.Hour
)

var (
	errSecretMissing    = errors.New("session secret missing")
	errInvalidCookie    = errors.New("invalid session cookie")
	errInvalidSignature = errors.New("invalid session cookie signature")
	errExpired          = errors.New("session expired")
)

type Options struct {
	CookieName     string
	Secret         string
	TTL            time.Duration
	Secure         bool
	MaxRecentVotes int
}

type Store struct {
	opts Options
}

func NewStore(opts Options) (*Store, error) {
	if opts.Secret == "" {
		return nil, errSecretMissing
	}
	if opts.CookieName == "" {
		opts.CookieName = defaultCookieName
	}
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	return &Store{opts: opts}, nil
}

// Load reads the session cookie. A missing, tampered or expired cookie
// yields a fresh session.
func (s *Store) Load(r *http.Request) *Session {
	sess := newSession(s.opts.MaxRecentVotes)

	cookie, err := r.Cookie(s.opts.CookieName)
	if err != nil {
		return sess
	}

	decoded, err := s.decode(cookie.Value)
	if err != nil {
		log.Ctx(r.Context()).Debug().Err(err).Msg("Discarding session cookie")
		// Overwrite the bad cookie on the way out.
		sess.dirty = true
		return sess
	}
	sess.data = decoded
	return sess
}

// Save writes sess to w, or expires the cookie when sess holds nothing.
func (s *Store) Save(w http.ResponseWriter, sess *Session) error {
	snapshot, _ := sess.snapshot()
	if snapshot.empty() {
		http.SetCookie(w, s.cookie("", time.Unix(0, 0), -1))
		sess.markClean()
		return nil
	}

	expiresAt := time.Now().Add(s.opts.TTL)
	snapshot.ExpiresAt = expiresAt.Unix()
	value, err := s.encode(snapshot)
	if err != nil {
		return err
	}
	http.SetCookie(w, s.cookie(value, expiresAt, int(s.opts.TTL.Seconds())))
	sess.markClean()
	return nil
}

func (s *Store) cookie(value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  expires,
		MaxAge:   maxAge,
	}
}

func (s *Store) encode(d data) (string, error) {
	payload, err := sonic.Marshal(d)
	if err != nil {
		return "", err
	}
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return encoded + "." + s.sign(encoded), nil
}

func (s *Store) decode(value string) (data, error) {
	parts := strings.SplitN(value, ".", 2)
	if len(parts) != 2 {
		return data{}, errInvalidCookie
	}
	if !hmac.Equal([]byte(parts[1]), []byte(s.sign(parts[0]))) {
		return data{}, errInvalidSignature
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return data{}, err
	}
	var d data
	if err := sonic.Unmarshal(payload, &d); err != nil {
		return data{}, err
	}
	if d.ExpiresAt <= time.Now().Unix() {
		return data{}, errExpired
	}
	return d, nil
}

func (s *Store) sign(payload string) string {
	mac := hmac.New(sha256.New, []byte(s.opts.Secret))
	_, _ = mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Middleware loads the session into the request context and persists it
// just before the response headers are written.
func (s *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := s.Load(r)
		sw := &sessionWriter{ResponseWriter: w, store: s, session: sess, request: r}
		next.ServeHTTP(sw, r.WithContext(NewContext(r.Context(), sess)))
		sw.persist()
	})
}

type sessionWriter struct {
	http.ResponseWriter
	store   *Store
	session *Session
	request *http.Request
	written bool
}

func (w *sessionWriter) persist() {
	if w.written {
		return
	}
	w.written = true
	if _, dirty := w.session.snapshot(); !dirty {
		return
	}
	if err := w.store.Save(w.ResponseWriter, w.session); err != nil {
		log.Ctx(w.request.Context()).Error().Err(err).Msg("Failed to save session")
	}
}

func (w *sessionWriter) WriteHeader(status int) {
	w.persist()
	w.ResponseWriter.WriteHeader(status)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.persist()
	return w.ResponseWriter.Write(b)
}

func (w *sessionWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
