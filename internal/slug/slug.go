// Package slug turns league names into URL-friendly identifiers.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	disallowed  = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace  = regexp.MustCompile(`\s+`)
	hyphenRuns  = regexp.MustCompile(`-+`)
	asciiFilter = runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII }))
)

// Normalize strips accents, lowercases, drops everything but [a-z0-9],
// whitespace and hyphens, then joins words with single hyphens. The result
// never starts or ends with a hyphen, and Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	decomposed, _, err := transform.String(transform.Chain(norm.NFKD, asciiFilter), text)
	if err != nil {
		decomposed = text
	}

	out := strings.ToLower(decomposed)
	out = disallowed.ReplaceAllString(out, "")
	out = whitespace.ReplaceAllString(strings.TrimSpace(out), "-")
	out = hyphenRuns.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}

// Matches reports whether name normalizes to the same slug as target.
func Matches(name, target string) bool {
	want := Normalize(target)
	return want != "" && Normalize(name) == want
}
