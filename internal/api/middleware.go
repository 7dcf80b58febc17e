// internal/api/middleware.go
package api

import (
	"context"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Peladeiro/internal/api/apiutil"
	"github.com/codr1/Peladeiro/internal/api/htmx"
	"github.com/codr1/Peladeiro/internal/apiclient"
	"github.com/codr1/Peladeiro/internal/metrics"
	"github.com/codr1/Peladeiro/internal/models"
	"github.com/codr1/Peladeiro/internal/session"
	"github.com/codr1/Peladeiro/internal/templates/layouts"
)

type Middleware func(http.Handler) http.Handler

func ChainMiddleware(h http.Handler, middleware ...Middleware) http.Handler {
	for _, m := range middleware {
		h = m(h)
	}
	return h
}

type requestIDKey struct{}

// RequestID returns the ID assigned by WithRequestID, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func WithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create response wrapper to capture status code
		wrapped := wrapResponseWriter(w)

		next.ServeHTTP(wrapped, r)
		duration := time.Since(start)
		metrics.ObserveHTTP(r.Method, wrapped.Status(), duration)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapped.Status()).
			Dur("duration", duration).
			Str("request_id", RequestID(r.Context())).
			Msg("Request completed")
	})
}

func WithRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				logger := log.Ctx(r.Context())
				// Log the full stack trace
				stack := debug.Stack()
				logger.Error().
					Interface("error", err).
					Str("stack", string(stack)).
					Msg("Panic recovered")

				apiutil.RenderHTMLComponentStatus(r.Context(), w, http.StatusInternalServerError,
					layouts.Base(layouts.Page{Title: "Erro"}, layouts.ErrorPage(http.StatusInternalServerError, "Ocorreu um erro inesperado. Tente novamente.")),
					nil, "Failed to render panic page", "Internal Server Error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()

		// Create a logger with the request ID
		logger := log.With().Str("request_id", requestID).Logger()

		// Add both the request ID and logger to context
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		ctx = logger.WithContext(ctx)

		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func WithContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Set default content type if not set
		if r.Header.Get("Accept") == "" {
			r.Header.Set("Accept", "text/html")
		}
		next.ServeHTTP(w, r)
	})
}

// IsPublicPath reports whether path is reachable without logging in.
func IsPublicPath(path string) bool {
	switch path {
	case "/login", "/register", "/health", "/metrics":
		return true
	}
	for _, prefix := range []string{"/static/", "/media/", "/perfil/"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return strings.HasPrefix(path, "/peladas/") && strings.HasSuffix(path, "/publico")
}

// TokenRefresher trades a refresh token for a new token pair.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (models.Tokens, error)
}

// WithAuthGuard requires a session token on every non-public path and
// attaches the token to the request context for API calls. An access token
// whose exp claim has passed is refreshed once; when that fails the session
// ends before any API call is made. refresher may be nil.
func WithAuthGuard(refresher TokenRefresher) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.FromContext(r.Context())
			public := IsPublicPath(r.URL.Path)

			token := sess.AccessToken()
			if token != "" && tokenExpired(token, time.Now()) {
				token = refreshSession(r, sess, refresher)
			}

			if token == "" && !public {
				htmx.Redirect(w, r, apiutil.LoginPath)
				return
			}

			if token != "" {
				r = r.WithContext(apiclient.ContextWithToken(r.Context(), token))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func refreshSession(r *http.Request, sess *session.Session, refresher TokenRefresher) string {
	logger := log.Ctx(r.Context())
	refreshToken := sess.RefreshToken()
	if refresher != nil && refreshToken != "" {
		tokens, err := refresher.Refresh(r.Context(), refreshToken)
		if err == nil {
			sess.SetTokens(tokens.Access, tokens.Refresh)
			logger.Debug().Msg("Access token refreshed")
			return tokens.Access
		}
		logger.Info().Err(err).Msg("Token refresh failed; ending session")
	}
	sess.Clear()
	sess.AddFlash(session.FlashError, apiutil.SessionExpiredMessage)
	return ""
}

// tokenExpired reads the exp claim without verifying the signature; the API
// remains the authority on validity. Tokens that are not JWTs or carry no
// exp are left for the API to judge.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}

// responseWriter wrapper to capture status code
type responseWriter struct {
	http.ResponseWriter
	status int
}

func wrapResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w}
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.status == 0 {
		rw.status = code
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.status == 0 {
		rw.status = http.StatusOK
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Status() int {
	if rw.status == 0 {
		return http.StatusOK
	}
	return rw.status
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
