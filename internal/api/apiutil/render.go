package apiutil

import (
	"bytes"
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Peladeiro/internal/session"
	"github.com/codr1/Peladeiro/internal/templates/layouts"
)

// RenderHTMLComponent renders component with status 200. It reports false
// after answering 500 when rendering fails.
func RenderHTMLComponent(ctx context.Context, w http.ResponseWriter, component templ.Component, headers map[string]string, logMsg, userMsg string) bool {
	return RenderHTMLComponentStatus(ctx, w, http.StatusOK, component, headers, logMsg, userMsg)
}

// RenderHTMLComponentStatus renders into a buffer first so a failing
// component never leaves a half-written page.
func RenderHTMLComponentStatus(ctx context.Context, w http.ResponseWriter, status int, component templ.Component, headers map[string]string, logMsg, userMsg string) bool {
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg(logMsg)
		http.Error(w, userMsg, http.StatusInternalServerError)
		return false
	}

	for key, value := range headers {
		w.Header().Set(key, value)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("Failed to write response")
	}
	return true
}

// RenderPage wraps body in the base layout. Pending flashes are consumed.
func RenderPage(w http.ResponseWriter, r *http.Request, title string, body templ.Component) {
	RenderPageStatus(w, r, http.StatusOK, title, body)
}

func RenderPageStatus(w http.ResponseWriter, r *http.Request, status int, title string, body templ.Component) {
	sess := session.FromContext(r.Context())
	page := layouts.Page{
		Title:         title,
		Authenticated: sess.IsAuthenticated(),
		Flashes:       sess.PopFlashes(),
	}
	RenderHTMLComponentStatus(r.Context(), w, status, layouts.Base(page, body), nil,
		"Failed to render page", "Failed to render response")
}

// RenderFragment answers an HTMX request with a bare component. Flashes
// raised while handling it are shown on top of the fragment.
func RenderFragment(w http.ResponseWriter, r *http.Request, body templ.Component) {
	flashes := session.FromContext(r.Context()).PopFlashes()
	component := body
	if len(flashes) > 0 {
		component = templ.Join(layouts.HTML(layouts.FlashesHTML(flashes)), body)
	}
	RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render fragment", "Failed to render response")
}
