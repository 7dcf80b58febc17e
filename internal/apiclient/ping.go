package apiclient

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/codr1/Peladeiro/internal/metrics"
)

const pingPath = "/api/peladas/"

// Ping reports whether the API answers. Any status below 500 counts as
// reachable, including the 401 an anonymous probe usually gets.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, pingPath, url.Values{"per_page": {"1"}}, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.jsonClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(req.Method, 0, time.Since(start))
		return transportError(req, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
	metrics.ObserveUpstream(req.Method, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= http.StatusInternalServerError {
		return &APIError{
			StatusCode: resp.StatusCode,
			Payload:    objectPayload(map[string]any{"erro": unreachableMessage}),
		}
	}
	return nil
}
