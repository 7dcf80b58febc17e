package apiutil

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/codr1/Peladeiro/internal/apiclient"
)

func ParsePositiveInt64Field(raw string, field string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, FieldError{Field: field, Reason: "é obrigatório."}
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, FieldError{Field: field, Reason: "deve ser um número maior que zero."}
	}
	return value, nil
}

// ParseOptionalInt returns nil for a blank value.
func ParseOptionalInt(raw string, field string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return nil, FieldError{Field: field, Reason: "deve ser um número válido."}
	}
	return &value, nil
}

// ParseOptionalID returns nil for a blank or zero value.
func ParseOptionalID(raw string, field string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		return nil, nil
	}
	value, err := ParsePositiveInt64Field(raw, field)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// IntOrDefault parses a query value, falling back for blanks and garbage.
func IntOrDefault(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// PathID reads a numeric path wildcard. Non-numeric IDs are a 404.
func PathID(r *http.Request, key string) (int64, error) {
	raw := r.PathValue(key)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, NotFound(fmt.Errorf("invalid %s %q", key, raw))
	}
	return value, nil
}

// Page reads ?page=, defaulting to 1.
func Page(r *http.Request) int {
	return IntOrDefault(r.URL.Query().Get("page"), 1)
}

// Checkbox reports whether an HTML checkbox was ticked.
func Checkbox(r *http.Request, name string) bool {
	switch strings.ToLower(strings.TrimSpace(r.FormValue(name))) {
	case "on", "true", "1", "yes", "sim":
		return true
	default:
		return false
	}
}

// ParseForm parses urlencoded and multipart bodies alike.
func ParseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxFormSize); err != nil {
			return HandlerError{Status: http.StatusBadRequest, Message: "Formulário inválido.", Err: err}
		}
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return HandlerError{Status: http.StatusBadRequest, Message: "Formulário inválido.", Err: err}
	}
	return nil
}

// FormFile returns the uploaded file under name, or nil when none was sent.
// The caller must call ParseForm first.
func FormFile(r *http.Request, name string) (*apiclient.File, error) {
	file, header, err := r.FormFile(name)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, HandlerError{Status: http.StatusBadRequest, Message: "Arquivo inválido.", Err: err}
	}
	if header.Filename == "" || header.Size == 0 {
		_ = file.Close()
		return nil, nil
	}
	return &apiclient.File{
		Field:       name,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     file,
	}, nil
}

// Trimmed returns the trimmed form value.
func Trimmed(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}
