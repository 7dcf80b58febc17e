package apiclient

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Peladeiro/internal/metrics"
)

const maxMediaBytes = 15 << 20

// Media is a file fetched verbatim from the API's static area.
type Media struct {
	Body         []byte
	ContentType  string
	CacheControl string
}

// FetchMedia downloads path from the API without JSON handling.
func (c *Client) FetchMedia(ctx context.Context, path string) (Media, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return Media{}, err
	}

	logger := log.Ctx(ctx)
	start := time.Now()
	resp, err := c.mediaClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(req.Method, 0, time.Since(start))
		logger.Error().Err(err).Str("url", req.URL.String()).Msg("Media request failed")
		return Media{}, transportError(req, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMediaBytes))
	duration := time.Since(start)
	metrics.ObserveUpstream(req.Method, resp.StatusCode, duration)
	logger.Info().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Msg("Media request completed")
	if err != nil {
		return Media{}, transportError(req, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return Media{}, &APIError{
			StatusCode: resp.StatusCode,
			Payload:    objectPayload(map[string]any{"erro": "Imagem não encontrada"}),
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	return Media{
		Body:         body,
		ContentType:  contentType,
		CacheControl: resp.Header.Get("Cache-Control"),
	}, nil
}
