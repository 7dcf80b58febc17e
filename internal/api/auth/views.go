package auth

import (
	"fmt"
	"html"

	"github.com/a-h/templ"

	"github.com/codr1/Peladeiro/internal/templates/layouts"
)

const inputClass = "mt-1 w-full rounded border px-2 py-1"

func loginComponent(username string) templ.Component {
	return layouts.HTML(fmt.Sprintf(`<div class="mx-auto max-w-sm space-y-4">
<h1 class="text-2xl font-semibold">Entrar</h1>
<form method="post" action="/login" class="space-y-3 rounded-lg border bg-white p-4">
<label class="block text-sm">Usuário<input name="username" value="%s" autocomplete="username" required class="%s"></label>
<label class="block text-sm">Senha<input type="password" name="senha" autocomplete="current-password" required class="%s"></label>
<button class="w-full rounded bg-[var(--theme-primary)] px-4 py-2 text-white">Entrar</button>
</form>
<p class="text-center text-sm">Ainda não tem conta? <a class="text-emerald-700 hover:underline" href="/register">Cadastre-se</a></p>
</div>`, html.EscapeString(username), inputClass, inputClass))
}

func registerComponent(email, name string) templ.Component {
	return layouts.HTML(fmt.Sprintf(`<div class="mx-auto max-w-sm space-y-4">
<h1 class="text-2xl font-semibold">Cadastrar</h1>
<form method="post" action="/register" class="space-y-3 rounded-lg border bg-white p-4">
<label class="block text-sm">Nome<input name="nome" value="%s" required class="%s"></label>
<label class="block text-sm">E-mail<input type="email" name="email" value="%s" autocomplete="email" required class="%s"></label>
<label class="block text-sm">Senha<input type="password" name="senha" autocomplete="new-password" required class="%s"></label>
<button class="w-full rounded bg-[var(--theme-primary)] px-4 py-2 text-white">Criar conta</button>
</form>
<p class="text-center text-sm">Já tem conta? <a class="text-emerald-700 hover:underline" href="/login">Entrar</a></p>
</div>`, html.EscapeString(name), inputClass, html.EscapeString(email), inputClass, inputClass))
}
