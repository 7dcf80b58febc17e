// Package apiclient is the gateway to the league API. Every call attaches the
// session's bearer token, is logged, and maps failures to *APIError.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/codr1/Peladeiro/internal/metrics"
)

const (
	defaultTimeout       = 20 * time.Second
	defaultUploadTimeout = 30 * time.Second
	defaultMediaTimeout  = 45 * time.Second
	maxResponseBytes     = 8 << 20

	invalidResponseMessage = "Resposta inválida da API"
	unreachableMessage     = "Não foi possível conectar à API"
)

type Config struct {
	BaseURL       string
	Timeout       time.Duration
	UploadTimeout time.Duration
	MediaTimeout  time.Duration
	// Transport overrides the HTTP transport, mostly for tests.
	Transport http.RoundTripper
}

type Client struct {
	baseURL      string
	jsonClient   *http.Client
	uploadClient *http.Client
	mediaClient  *http.Client
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	uploadTimeout := cfg.UploadTimeout
	if uploadTimeout <= 0 {
		uploadTimeout = defaultUploadTimeout
	}
	mediaTimeout := cfg.MediaTimeout
	if mediaTimeout <= 0 {
		mediaTimeout = defaultMediaTimeout
	}

	return &Client{
		baseURL:      strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		jsonClient:   &http.Client{Timeout: timeout, Transport: cfg.Transport},
		uploadClient: &http.Client{Timeout: uploadTimeout, Transport: cfg.Transport},
		mediaClient:  &http.Client{Timeout: mediaTimeout, Transport: cfg.Transport},
	}
}

type tokenContextKey struct{}

// ContextWithToken attaches the bearer token used for calls made with ctx.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey{}).(string)
	return token
}

// Do performs a JSON call. body is encoded as JSON when non-nil.
func (c *Client) Do(ctx context.Context, method, path string, body any, query url.Values) (gjson.Result, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := sonic.Marshal(body)
		if err != nil {
			return gjson.Result{}, crerr.Wrapf(err, "encode %s %s body", method, path)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return gjson.Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.send(c.jsonClient, req)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, crerr.Wrapf(err, "build %s %s request", method, path)
	}
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) send(client *http.Client, req *http.Request) (gjson.Result, error) {
	logger := log.Ctx(req.Context())
	start := time.Now()

	resp, err := client.Do(req)
	if err != nil {
		metrics.ObserveUpstream(req.Method, 0, time.Since(start))
		logger.Error().
			Err(err).
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Msg("API request failed")
		return gjson.Result{}, transportError(req, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	duration := time.Since(start)
	metrics.ObserveUpstream(req.Method, resp.StatusCode, duration)
	logger.Info().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Msg("API request completed")
	if err != nil {
		return gjson.Result{}, transportError(req, err)
	}

	payload, ok := parsePayload(raw)
	if !ok {
		logger.Warn().
			Int("status", resp.StatusCode).
			Str("body", abbreviate(raw)).
			Msg("API returned a non-JSON body")
		return gjson.Result{}, &APIError{
			StatusCode: resp.StatusCode,
			Payload:    objectPayload(map[string]any{"erro": invalidResponseMessage, "raw": string(raw)}),
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		if !payload.IsObject() {
			payload = objectPayload(map[string]any{"erro": "Erro", "data": json.RawMessage(payload.Raw)})
		}
		logger.Warn().
			Int("status", resp.StatusCode).
			Str("erro", payload.Get("erro").String()).
			Msg("API returned an error response")
		return gjson.Result{}, &APIError{StatusCode: resp.StatusCode, Payload: payload}
	}

	return payload, nil
}

func parsePayload(raw []byte) (gjson.Result, bool) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return gjson.Parse("{}"), true
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, false
	}
	return gjson.ParseBytes(raw), true
}

func objectPayload(fields map[string]any) gjson.Result {
	encoded, err := sonic.Marshal(fields)
	if err != nil {
		return gjson.Parse(`{"erro":"Erro"}`)
	}
	return gjson.ParseBytes(encoded)
}

func transportError(req *http.Request, err error) error {
	return &APIError{
		StatusCode: http.StatusBadGateway,
		Payload:    objectPayload(map[string]any{"erro": unreachableMessage}),
		Err:        crerr.Wrapf(err, "%s %s", req.Method, req.URL.Path),
	}
}

func abbreviate(raw []byte) string {
	const limit = 200
	if len(raw) <= limit {
		return string(raw)
	}
	return string(raw[:limit]) + "..."
}
