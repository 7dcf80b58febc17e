// Package layouts renders the page shell shared by every handler: navigation,
// flash messages, the HTMX script and the error page.
package layouts

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/Peladeiro/internal/datefmt"
	"github.com/codr1/Peladeiro/internal/session"
	"github.com/codr1/Peladeiro/internal/slug"
)

const (
	appName   = "Peladeiro"
	htmxSrc   = "https://unpkg.com/htmx.org@1.9.12"
	tailwind  = "https://cdn.tailwindcss.com"
	errorHint = "Não foi possível concluir"
)

type Page struct {
	Title         string
	Authenticated bool
	Flashes       []session.Flash
}

// Base wraps body in the full HTML document.
func Base(page Page, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := appName
		if page.Title != "" {
			title = page.Title + " · " + appName
		}

		var head strings.Builder
		head.WriteString(`<!DOCTYPE html><html lang="pt-BR"><head><meta charset="utf-8">`)
		head.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		head.WriteString(`<title>` + html.EscapeString(title) + `</title>`)
		head.WriteString(`<script src="` + tailwind + `"></script>`)
		head.WriteString(`<script src="` + htmxSrc + `" defer></script>`)
		head.WriteString(`<link rel="stylesheet" href="/static/css/main.css">`)
		head.WriteString(`<style>` + themeCSSVars() + `</style>`)
		head.WriteString(`</head><body class="min-h-screen bg-gray-50 text-gray-900">`)
		head.WriteString(navHTML(page.Authenticated))
		head.WriteString(`<main class="mx-auto max-w-5xl px-4 py-6">`)
		head.WriteString(FlashesHTML(page.Flashes))
		if _, err := io.WriteString(w, head.String()); err != nil {
			return err
		}

		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

func navHTML(authenticated bool) string {
	var b strings.Builder
	b.WriteString(`<nav class="bg-[var(--theme-primary)] text-white"><div class="mx-auto flex max-w-5xl items-center justify-between px-4 py-3">`)
	b.WriteString(`<a href="/peladas" class="text-lg font-semibold">⚽ ` + appName + `</a><div class="flex gap-4 text-sm">`)
	if authenticated {
		b.WriteString(`<a href="/peladas" class="hover:underline">Minhas peladas</a>`)
		b.WriteString(`<a href="/logout" class="hover:underline">Sair</a>`)
	} else {
		b.WriteString(`<a href="/login" class="hover:underline">Entrar</a>`)
		b.WriteString(`<a href="/register" class="hover:underline">Cadastrar</a>`)
	}
	b.WriteString(`</div></div></nav>`)
	return b.String()
}

// FlashesHTML renders pending flash messages as dismissable toasts.
func FlashesHTML(flashes []session.Flash) string {
	if len(flashes) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<div id="flashes" class="mb-4 space-y-2">`)
	for _, flash := range flashes {
		class := "border-emerald-300 bg-emerald-50 text-emerald-800"
		if flash.Category == session.FlashError {
			class = "border-rose-300 bg-rose-50 text-rose-800"
		}
		b.WriteString(fmt.Sprintf(
			`<div class="rounded border px-4 py-2 text-sm %s" onclick="this.remove()">%s</div>`,
			class,
			html.EscapeString(flash.Message),
		))
	}
	b.WriteString(`</div>`)
	return b.String()
}

// ErrorPage is the body of the friendly error page.
func ErrorPage(status int, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if strings.TrimSpace(message) == "" {
			message = http.StatusText(status)
		}
		_, err := io.WriteString(w, fmt.Sprintf(
			`<section class="mx-auto max-w-lg rounded-lg border bg-white p-8 text-center shadow-sm">`+
				`<p class="text-sm text-gray-500">Erro %d</p>`+
				`<h1 class="mt-2 text-2xl font-semibold">%s</h1>`+
				`<p class="mt-4 text-gray-700">%s</p>`+
				`<a href="/peladas" class="mt-6 inline-block rounded bg-[var(--theme-primary)] px-4 py-2 text-white">Voltar para as peladas</a>`+
				`</section>`,
			status,
			errorHint,
			html.EscapeString(message),
		))
		return err
	})
}

// ErrorFragment is the inline error swapped in by HTMX requests.
func ErrorFragment(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="rounded border border-rose-300 bg-rose-50 px-4 py-2 text-sm text-rose-800">`+
			html.EscapeString(message)+`</div>`)
		return err
	})
}

// HTML renders a prebuilt string. Builders escape their own values.
func HTML(markup string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, markup)
		return err
	})
}

// Date renders DD/MM/YYYY, or the raw value when it cannot be parsed.
func Date(value string) string {
	return html.EscapeString(datefmt.BR(value))
}

// DateTime renders DD/MM/YYYY HH:MM, dropping a midnight time.
func DateTime(value string) string {
	return html.EscapeString(datefmt.BRDateTime(value))
}

// PublicProfilePath is the shareable link of a league.
func PublicProfilePath(leagueName string) string {
	return "/perfil/" + slug.Normalize(leagueName)
}

// Pager renders previous/next links for paginated listings.
func Pager(basePath string, page int, hasPrev, hasNext bool) string {
	if !hasPrev && !hasNext {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<div class="mt-4 flex justify-between text-sm">`)
	if hasPrev {
		b.WriteString(fmt.Sprintf(`<a class="text-emerald-700 hover:underline" href="%s?page=%d">← Anterior</a>`, html.EscapeString(basePath), page-1))
	} else {
		b.WriteString(`<span></span>`)
	}
	if hasNext {
		b.WriteString(fmt.Sprintf(`<a class="text-emerald-700 hover:underline" href="%s?page=%d">Próxima →</a>`, html.EscapeString(basePath), page+1))
	}
	b.WriteString(`</div>`)
	return b.String()
}

// Image renders an <img> for a media URL, or nothing when url is empty.
func Image(url, alt, class string) string {
	if strings.TrimSpace(url) == "" {
		return ""
	}
	return fmt.Sprintf(`<img src="%s" alt="%s" class="%s">`,
		html.EscapeString(MediaURL(url)), html.EscapeString(alt), html.EscapeString(class))
}
