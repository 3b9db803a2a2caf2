package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Error values for status lookups.
var (
	ErrLookupUnavailable = errors.New("status lookup unavailable")
	ErrDetectorNotFound  = errors.New("detector profile not found")
)

// Client resolves one detector's runtime state. Implementations must be
// stateless and reentrant: FetchState is called concurrently for distinct
// identities without external synchronization, and must return promptly
// with ctx.Err() when the context is cancelled.
type Client interface {
	FetchState(ctx context.Context, id string) (State, error)
}

// HTTPClientConfig configures an HTTPClient.
type HTTPClientConfig struct {
	// BaseURL is the status service root, e.g. "http://localhost:9200".
	BaseURL string
	// HTTPClient overrides the underlying client (useful for tests).
	// If nil, a client with Timeout is used.
	HTTPClient *http.Client
	// Timeout bounds a single profile request when HTTPClient is nil.
	// Default 10s.
	Timeout time.Duration
}

// HTTPClient fetches detector profiles over HTTP.
type HTTPClient struct {
	base string
	http *http.Client
}

type profileResponse struct {
	DetectorID string `json:"detector_id"`
	State      string `json:"state"`
}

// NewHTTPClient creates a Client against the given status service.
func NewHTTPClient(cfg HTTPClientConfig) (*HTTPClient, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, errors.New("status service base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid status service URL: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &HTTPClient{base: base, http: httpClient}, nil
}

// FetchState resolves one detector's state from its profile endpoint.
func (c *HTTPClient) FetchState(ctx context.Context, id string) (State, error) {
	endpoint := fmt.Sprintf("%s/detectors/%s/profile", c.base, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return StateUnknown, fmt.Errorf("%w: %v", ErrLookupUnavailable, err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return StateUnknown, fmt.Errorf("%w: %v", ErrLookupUnavailable, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return StateUnknown, fmt.Errorf("%w: %s", ErrDetectorNotFound, id)
	case res.StatusCode != http.StatusOK:
		return StateUnknown, fmt.Errorf("%w: unexpected status %d", ErrLookupUnavailable, res.StatusCode)
	}

	var profile profileResponse
	if err := json.NewDecoder(res.Body).Decode(&profile); err != nil {
		return StateUnknown, fmt.Errorf("%w: malformed profile: %v", ErrLookupUnavailable, err)
	}

	return ParseState(profile.State), nil
}
