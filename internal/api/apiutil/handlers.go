package apiutil

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Peladeiro/internal/api/htmx"
	"github.com/codr1/Peladeiro/internal/apiclient"
	"github.com/codr1/Peladeiro/internal/services"
	"github.com/codr1/Peladeiro/internal/session"
	"github.com/codr1/Peladeiro/internal/templates/layouts"
	"github.com/codr1/Peladeiro/internal/voting"
)

const (
	SessionExpiredMessage = "Sua sessão expirou. Faça login novamente."
	NotFoundMessage       = "Página não encontrada."
	unexpectedMessage     = "Ocorreu um erro inesperado. Tente novamente."

	LoginPath   = "/login"
	HomePath    = "/peladas"
	errorTitle  = "Erro"
	maxFormSize = 32 << 20
)

type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// HandlerError is a local failure with the status to render.
type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

func NotFound(err error) HandlerError {
	return HandlerError{Status: http.StatusNotFound, Message: NotFoundMessage, Err: err}
}

// HandleError is the single place where failures become responses.
//
// Upstream 401/403 ends the session and sends the user to the login page.
// Other failures show their message: GET requests get the error page with
// the upstream status, form posts go back where they came from with a
// flash, and HTMX requests get an inline fragment.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.Ctx(r.Context())
	sess := session.FromContext(r.Context())

	if apiclient.IsAuthFailure(err) {
		logger.Info().Err(err).Msg("Upstream rejected credentials; ending session")
		sess.Clear()
		sess.AddFlash(session.FlashError, SessionExpiredMessage)
		htmx.Redirect(w, r, LoginPath)
		return
	}

	status, message := describe(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", status).Msg("Request failed")
	} else {
		logger.Warn().Err(err).Int("status", status).Msg("Request rejected")
	}

	if htmx.IsRequest(r) {
		RenderHTMLComponentStatus(r.Context(), w, http.StatusBadRequest, layouts.ErrorFragment(message), nil,
			"Failed to render error fragment", "Failed to render response")
		return
	}

	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		RenderPageStatus(w, r, status, errorTitle, layouts.ErrorPage(status, message))
		return
	}

	sess.AddFlash(session.FlashError, message)
	RedirectBack(w, r)
}

func describe(err error) (int, string) {
	var (
		apiErr     *apiclient.APIError
		handlerErr HandlerError
		ballotErr  *voting.BallotError
		inputErr   *services.InputError
		formErr    *ValidationError
		fieldErr   FieldError
	)
	switch {
	case errors.As(err, &apiErr):
		status := apiErr.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		return status, voting.FriendlyError(apiErr.Message())
	case errors.As(err, &handlerErr):
		return handlerErr.Status, handlerErr.Message
	case errors.As(err, &ballotErr), errors.As(err, &inputErr), errors.As(err, &formErr), errors.As(err, &fieldErr):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, unexpectedMessage
	}
}

// RedirectBack returns to the referring page of the same site, or to the
// league list when there is none or it is the current page.
func RedirectBack(w http.ResponseWriter, r *http.Request) {
	htmx.Redirect(w, r, backTarget(r))
}

func backTarget(r *http.Request) string {
	referer := r.Referer()
	if referer == "" {
		return HomePath
	}
	parsed, err := url.Parse(referer)
	if err != nil || (parsed.Host != "" && parsed.Host != r.Host) {
		return HomePath
	}
	target := parsed.EscapedPath()
	if target == "" {
		return HomePath
	}
	if parsed.RawQuery != "" {
		target += "?" + parsed.RawQuery
	}
	if target == r.URL.RequestURI() {
		return HomePath
	}
	return target
}

// Flash queues a message for the next rendered page.
func Flash(r *http.Request, category, message string) {
	session.FromContext(r.Context()).AddFlash(category, message)
}

// RedirectWithFlash is the common ending of a successful form post.
func RedirectWithFlash(w http.ResponseWriter, r *http.Request, target, message string) {
	Flash(r, session.FlashOK, message)
	htmx.Redirect(w, r, target)
}
