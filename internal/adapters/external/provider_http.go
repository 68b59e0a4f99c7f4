// Package external provides adapters for the upstream place, weather,
// airport and flight services plus the lookup cache backends.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
)

// DefaultTimeout bounds every outbound call
const DefaultTimeout = 10 * time.Second

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func newHTTPClient(timeout time.Duration) HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// statusError carries a non-200 upstream status so callers can map 404s
type statusError struct {
	provider string
	status   int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.provider, e.status)
}

// getJSON performs a GET and decodes a 200 response into target
func getJSON(ctx context.Context, client HTTPClient, logger ports.Logger, provider, endpoint string, query url.Values, headers map[string]string, target interface{}) error {
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.NewExternalAPIError("failed to build "+provider+" request", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return errors.NewExternalAPIError("failed to call "+provider, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && logger != nil {
			logger.Warn("Failed to close response body", ports.F("provider", provider), ports.F("error", closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return &statusError{provider: provider, status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return errors.NewExternalAPIError("failed to decode "+provider+" response", err)
	}
	return nil
}

// upstreamError maps a getJSON failure to an AppError
func upstreamError(err error, notFoundMessage string) error {
	if se, ok := err.(*statusError); ok {
		if se.status == http.StatusNotFound && notFoundMessage != "" {
			return errors.NewNotFoundError(notFoundMessage)
		}
		return errors.NewExternalAPIError(se.Error(), nil)
	}
	return err
}
