// Package services translates typed requests into league API calls, one file
// per entity. Adapters hold no state and perform no business validation;
// failures come back as *apiclient.APIError.
package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/codr1/Peladeiro/internal/apiclient"
)

// API is the part of *apiclient.Client the adapters need.
type API interface {
	Do(ctx context.Context, method, path string, body any, query url.Values) (gjson.Result, error)
	Upload(ctx context.Context, method, path string, form apiclient.Form, query url.Values) (gjson.Result, error)
}

type Service struct {
	api API
}

func New(api API) *Service {
	return &Service{api: api}
}

func pageQuery(page, perPage int) url.Values {
	if page < 1 {
		page = 1
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	if perPage > 0 {
		query.Set("per_page", strconv.Itoa(perPage))
	}
	return query
}

func pathf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

// files collects the non-nil uploads.
func files(candidates ...*apiclient.File) []apiclient.File {
	var out []apiclient.File
	for _, file := range candidates {
		if file != nil && file.Content != nil {
			out = append(out, *file)
		}
	}
	return out
}

func formBool(v bool) string {
	return strconv.FormatBool(v)
}
