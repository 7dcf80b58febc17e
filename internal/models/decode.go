// Package models holds typed views of league API payloads. All shape
// normalization (list-or-object envelopes, alternative key names) happens
// here so handlers and templates only see Go types.
package models

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Items returns r when it is an array, or the first array found under keys.
func Items(r gjson.Result, keys ...string) []gjson.Result {
	if r.IsArray() {
		return r.Array()
	}
	for _, key := range keys {
		if value := r.Get(key); value.IsArray() {
			return value.Array()
		}
	}
	return nil
}

// Unwrap returns r[key] when it is an object, otherwise r itself.
func Unwrap(r gjson.Result, key string) gjson.Result {
	if value := r.Get(key); value.IsObject() {
		return value
	}
	return r
}

func present(value gjson.Result) bool {
	return value.Exists() && value.Type != gjson.Null
}

// lookup returns the first present value among paths.
func lookup(r gjson.Result, paths ...string) (gjson.Result, bool) {
	for _, path := range paths {
		if value := r.Get(path); present(value) {
			return value, true
		}
	}
	return gjson.Result{}, false
}

func asInt(value gjson.Result) (int64, bool) {
	switch value.Type {
	case gjson.Number:
		return value.Int(), true
	case gjson.String:
		n, err := strconv.ParseInt(strings.TrimSpace(value.Str), 10, 64)
		return n, err == nil
	}
	return 0, false
}

func firstInt(r gjson.Result, paths ...string) int64 {
	n, _ := optionalInt(r, paths...)
	return n
}

func optionalInt(r gjson.Result, paths ...string) (int64, bool) {
	for _, path := range paths {
		if n, ok := asInt(r.Get(path)); ok {
			return n, true
		}
	}
	return 0, false
}

func optionalIntPtr(r gjson.Result, paths ...string) *int64 {
	if n, ok := optionalInt(r, paths...); ok {
		return &n
	}
	return nil
}

func firstString(r gjson.Result, paths ...string) string {
	for _, path := range paths {
		if value := r.Get(path); present(value) && value.String() != "" {
			return value.String()
		}
	}
	return ""
}

func firstBool(r gjson.Result, fallback bool, paths ...string) bool {
	for _, path := range paths {
		value := r.Get(path)
		switch value.Type {
		case gjson.True, gjson.False:
			return value.Bool()
		case gjson.Number:
			return value.Int() != 0
		case gjson.String:
			if b, err := strconv.ParseBool(value.Str); err == nil {
				return b
			}
		}
	}
	return fallback
}

func decodeAll[T any](values []gjson.Result, decode func(gjson.Result) T) []T {
	out := make([]T, 0, len(values))
	for _, value := range values {
		out = append(out, decode(value))
	}
	return out
}
