// Package targets holds the HTTP clients for the two downstream
// services the synchronization pipelines feed: the data-provider
// service (events) and the aggregate-view service (reservation counts).
//
// Both clients speak plain JSON over HTTP. Any transport failure or
// non-2xx response surfaces as a DependencyFailure service error
// wrapping ErrRequestFailed, which the orchestrators treat as "abort
// this invocation, retry the whole unit next run".
package targets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/roomsync/booking-middleware/pkg/apperrors"
)

// ErrRequestFailed is the sentinel wrapped by every failed target request.
var ErrRequestFailed = errors.New("target request failed")

// client is the shared JSON request core for both target services.
type client struct {
	name    string
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func newClient(name, baseURL string, opts ...Option) *client {
	s := applyOptions(opts)
	return &client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    s.httpClient,
		logger:  s.logger,
	}
}

// doJSON performs one JSON request against the target service. A nil
// out skips response decoding. Query params may be nil.
func (c *client) doJSON(ctx context.Context, method, path string, params url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request body: %w", c.name, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", c.name, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.DependencyFailureError(
			fmt.Errorf("%w: %s %s %s: %v", ErrRequestFailed, c.name, method, path, err),
			fmt.Sprintf("%s service is unreachable", c.name),
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Keep a short body excerpt for diagnosis, drop the rest.
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("Target request rejected",
			zap.String("service", c.name),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", excerpt))
		return apperrors.DependencyFailureError(
			fmt.Errorf("%w: %s %s %s returned status %d", ErrRequestFailed, c.name, method, path, resp.StatusCode),
			fmt.Sprintf("%s service returned status %d", c.name, resp.StatusCode),
		)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", c.name, err)
	}
	return nil
}
