package layouts

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	defaultPrimary   = "#065f46"
	defaultSecondary = "#ecfdf5"
	defaultAccent    = "#f59e0b"
	defaultTeamColor = "#6b7280"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func IsHexColor(value string) bool {
	return hexColorRegex.MatchString(value)
}

func themeCSSVars() string {
	return fmt.Sprintf(
		":root{--theme-primary:%s;--theme-secondary:%s;--theme-accent:%s;}",
		defaultPrimary,
		defaultSecondary,
		defaultAccent,
	)
}

// TeamColor returns value when it is a #rrggbb color, otherwise a neutral
// grey. Team colors come from user input and end up in style attributes.
func TeamColor(value string) string {
	return colorOrDefault(value, defaultTeamColor)
}

func colorOrDefault(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	if !IsHexColor(trimmed) {
		return fallback
	}
	return trimmed
}
