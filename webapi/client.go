package webapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spx/model"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the Web API root.
const DefaultBaseURL = "https://api.spotify.com/v1"

const (
	maxIDs       = 50
	maxPageLimit = 50
)

// Client performs authorised requests against the Web API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL points the client at another API root.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient sets the client whose transport carries the requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit paces requests to rps per second. Non-positive values disable pacing.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		} else {
			c.limiter = nil
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client authorised by src.
func NewClient(src oauth2.TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}

	// oauth2.NewClient would cache the token until its expiry, which a
	// RefreshingToken never reports. The bare transport asks src on every request.
	base := *c.httpClient
	base.Transport = &oauth2.Transport{Source: src, Base: c.httpClient.Transport}
	c.httpClient = &base

	return c
}

// doRequest performs an authenticated GET request and decodes the JSON body into result.
func (c *Client) doRequest(ctx context.Context, endpoint string, query url.Values, result any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	apiURL := c.baseURL + endpoint
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("api request", "endpoint", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeError(resp)
		c.logger.Debug("api error", "endpoint", endpoint, "status", apiErr.Status, "message", apiErr.Message)
		return apiErr
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// decodeError reads the API's error object, falling back to the HTTP status.
func decodeError(resp *http.Response) *Error {
	var body struct {
		Error model.Error `json:"error"`
	}

	apiErr := &Error{Status: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Error.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

// notFound wraps err with sentinel when the API answered 404.
func notFound(err error, sentinel error, id string) error {
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %s: %w", sentinel, id, err)
	}
	return err
}

func validateIDs(ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("no IDs provided")
	}
	if len(ids) > maxIDs {
		return fmt.Errorf("maximum %d IDs allowed, got %d", maxIDs, len(ids))
	}
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("empty ID in request")
		}
	}
	return nil
}

func pageQuery(limit, offset int) url.Values {
	if limit <= 0 {
		limit = 20
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return url.Values{"limit": {fmt.Sprint(limit)}, "offset": {fmt.Sprint(offset)}}
}
