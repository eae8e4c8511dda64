package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"tvtally/internal/apperrors"
	"tvtally/internal/config"
	"tvtally/internal/metrics"
)

// fetchPage performs an HTTP GET and returns the response body bytes,
// consulting the page cache first. When throttled is set the configured
// throttle is awaited before the request goes out; a cache hit skips the
// wait. All per-series fetches are throttled, the single chart fetch is not,
// matching the original collector. Transport errors propagate to the caller
// once the retry policy is exhausted.
func (c *client) fetchPage(ctx context.Context, url string, throttled bool) ([]byte, error) {
	logger := config.GetLogger()

	if body, ok := c.pages.Get(url); ok {
		logger.Debug().Str("url", url).Msg("Page served from cache")
		return body, nil
	}

	if throttled {
		if err := c.throttle.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.PagesFetchedTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	metrics.PagesFetchedTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		return nil, &apperrors.ErrBadStatus{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	c.pages.Set(url, body)
	return body, nil
}
