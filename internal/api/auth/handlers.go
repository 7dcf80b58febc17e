package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Peladeiro/internal/api/apiutil"
	"github.com/codr1/Peladeiro/internal/api/htmx"
	"github.com/codr1/Peladeiro/internal/apiclient"
	"github.com/codr1/Peladeiro/internal/ratelimit"
	"github.com/codr1/Peladeiro/internal/services"
	"github.com/codr1/Peladeiro/internal/session"
)

const (
	loginFailedMessage    = "Falha no login"
	registerFailedMessage = "Falha no cadastro"
	registeredMessage     = "Conta criada! Faça login."
	tooManyAttempts       = "Muitas tentativas. Aguarde um pouco e tente novamente."
)

var (
	svc        *services.Service
	limiter    *ratelimit.Limiter
	trustProxy bool
)

type registerForm struct {
	Email    string `label:"E-mail" validate:"required,email,max=254"`
	Password string `label:"Senha" validate:"required,min=6,max=128"`
	Name     string `label:"Nome" validate:"required,max=80"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(service *services.Service, behindProxy bool) {
	svc = service
	limiter = ratelimit.New(nil)
	trustProxy = behindProxy
}

// GET /login
func HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	if session.FromContext(r.Context()).IsAuthenticated() {
		htmx.Redirect(w, r, apiutil.HomePath)
		return
	}
	apiutil.RenderPage(w, r, "Entrar", loginComponent(""))
}

// POST /login
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if err := apiutil.ParseForm(r); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	username := apiutil.Trimmed(r, "username")
	password := r.FormValue("senha")

	if !allowAttempt(r, "login", username) {
		renderLoginFailure(w, r, username, tooManyAttempts, http.StatusTooManyRequests)
		return
	}

	tokens, err := svc.Login(r.Context(), username, password)
	if err != nil {
		logger.Info().Err(err).Str("identifier", ratelimit.SanitizeIdentifier(username)).Msg("Login rejected")
		renderLoginFailure(w, r, username, failureMessage(err, loginFailedMessage), http.StatusOK)
		return
	}

	limiter.Reset(username)
	sess := session.FromContext(r.Context())
	sess.Clear()
	sess.SetTokens(tokens.Access, tokens.Refresh)
	logger.Info().Str("identifier", ratelimit.SanitizeIdentifier(username)).Msg("User logged in")
	htmx.Redirect(w, r, apiutil.HomePath)
}

// GET /register
func HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	apiutil.RenderPage(w, r, "Cadastrar", registerComponent("", ""))
}

// POST /register
func HandleRegister(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if err := apiutil.ParseForm(r); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	form := registerForm{
		Email:    apiutil.Trimmed(r, "email"),
		Password: r.FormValue("senha"),
		Name:     apiutil.Trimmed(r, "nome"),
	}

	if !allowAttempt(r, "register", form.Email) {
		renderRegisterFailure(w, r, form, tooManyAttempts, http.StatusTooManyRequests)
		return
	}
	if err := apiutil.ValidateForm(form); err != nil {
		renderRegisterFailure(w, r, form, err.Error(), http.StatusOK)
		return
	}

	if err := svc.Register(r.Context(), form.Email, form.Password, form.Name); err != nil {
		logger.Info().Err(err).Str("identifier", ratelimit.SanitizeIdentifier(form.Email)).Msg("Registration rejected")
		renderRegisterFailure(w, r, form, failureMessage(err, registerFailedMessage), http.StatusOK)
		return
	}

	logger.Info().Str("identifier", ratelimit.SanitizeIdentifier(form.Email)).Msg("Account registered")
	apiutil.RedirectWithFlash(w, r, apiutil.LoginPath, registeredMessage)
}

// GET /logout
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	session.FromContext(r.Context()).Clear()
	htmx.Redirect(w, r, apiutil.LoginPath)
}

func allowAttempt(r *http.Request, action, identifier string) bool {
	ip := ratelimit.GetClientIP(r, trustProxy)
	result := limiter.Allow(identifier, ip)
	if !result.Allowed {
		ratelimit.LogRateLimitExceeded(action, identifier, ip, result.Reason)
	}
	return result.Allowed
}

// failureMessage prefers the API's own "erro" text over the fallback.
func failureMessage(err error, fallback string) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		if msg := strings.TrimSpace(apiErr.Payload.Get("erro").String()); msg != "" {
			return msg
		}
	}
	return fallback
}

func renderLoginFailure(w http.ResponseWriter, r *http.Request, username, message string, status int) {
	apiutil.Flash(r, session.FlashError, message)
	apiutil.RenderPageStatus(w, r, status, "Entrar", loginComponent(username))
}

func renderRegisterFailure(w http.ResponseWriter, r *http.Request, form registerForm, message string, status int) {
	apiutil.Flash(r, session.FlashError, message)
	apiutil.RenderPageStatus(w, r, status, "Cadastrar", registerComponent(form.Email, form.Name))
}
