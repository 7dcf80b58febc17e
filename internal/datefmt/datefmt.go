// Package datefmt parses the date strings the league API emits and formats
// them for Brazilian readers.
package datefmt

import (
	"strings"
	"time"
)

// Layouts are tried in order by Parse.
var Layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// Parse reads value with the first matching layout. Values without a zone are
// interpreted in loc.
func Parse(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range Layouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// BR renders value as DD/MM/YYYY. Unparseable input is returned unchanged.
func BR(value string) string {
	t, ok := Parse(value, time.Local)
	if !ok {
		return value
	}
	return t.Format("02/01/2006")
}

// BRDateTime is BR plus HH:MM when the value carries a time other than
// midnight.
func BRDateTime(value string) string {
	t, ok := Parse(value, time.Local)
	if !ok {
		return value
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("02/01/2006")
	}
	return t.Format("02/01/2006 15:04")
}

// Month renders a season month boundary as MM/YYYY.
func Month(value string) string {
	t, ok := Parse(value, time.Local)
	if !ok {
		if t, err := time.Parse("2006-01", strings.TrimSpace(value)); err == nil {
			return t.Format("01/2006")
		}
		return value
	}
	return t.Format("01/2006")
}

// FirstOfMonth turns a YYYY-MM form value into YYYY-MM-01 and leaves any
// other value untouched.
func FirstOfMonth(value string) string {
	value = strings.TrimSpace(value)
	if _, err := time.Parse("2006-01", value); err == nil {
		return value + "-01"
	}
	return value
}

// InputValue renders value for an <input type="datetime-local">.
func InputValue(value string) string {
	t, ok := Parse(value, time.Local)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02T15:04")
}
