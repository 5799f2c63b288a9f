package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// API endpoints. Overridable on the Client for tests.
const (
	graphqlURL = "https://api.github.com/graphql"
	restURL    = "https://api.github.com"
)

const userAgent = "credit"

// Retry configuration for page fetches. Transport errors (network failures,
// non-2xx statuses, timeouts) are retried with a fixed delay; decode errors
// are not, since a malformed body will not improve on retry.
const (
	maxAttempts = 10
	retryDelay  = 10 * time.Second
)

// Client is the authenticated HTTP capability the rest of the package runs on.
// It knows how to POST GraphQL bodies and GET REST endpoints, nothing more.
type Client struct {
	http       *http.Client
	log        *zap.Logger
	graphqlURL string
	restURL    string
	retryDelay time.Duration
	observe    func()
}

// Option configures a Client.
type Option func(*Client)

// WithLogger installs a diagnostic logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithBaseURLs points the client at alternate API endpoints, for tests.
func WithBaseURLs(graphql, rest string) Option {
	return func(c *Client) {
		c.graphqlURL = graphql
		c.restURL = rest
	}
}

// WithRetryDelay overrides the fixed delay between retry attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// WithObserver registers a callback invoked once per successful API exchange.
// The callback must be safe for concurrent use; it typically feeds a progress
// tracker's tick counter.
func WithObserver(observe func()) Option {
	return func(c *Client) { c.observe = observe }
}

// NewClient builds a client whose requests carry the given token as a bearer
// credential.
func NewClient(token string, opts ...Option) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	c := &Client{
		http:       oauth2.NewClient(context.Background(), ts),
		log:        zap.NewNop(),
		graphqlURL: graphqlURL,
		restURL:    restURL,
		retryDelay: retryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Post sends a GraphQL request body and returns the raw response body. A
// failed attempt is retried up to maxAttempts times with a fixed delay.
func (c *Client) Post(ctx context.Context, body []byte) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			c.log.Warn("retrying GraphQL call",
				zap.Int("attempt", attempt),
				zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		resp, err := c.do(ctx, http.MethodPost, c.graphqlURL, body)
		if err != nil {
			lastErr = err
			continue
		}

		return resp.body, nil
	}

	return nil, fmt.Errorf("GraphQL call failed after %d attempts: %w", maxAttempts, lastErr)
}

// Get fetches a REST endpoint, returning the body and response headers. The
// headers carry the Link pagination data the REST pager needs. The same
// bounded retry policy as Post applies.
func (c *Client) Get(ctx context.Context, url string) ([]byte, http.Header, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			c.log.Warn("retrying REST call",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		resp, err := c.do(ctx, http.MethodGet, url, nil)
		if err != nil {
			lastErr = err
			continue
		}

		return resp.body, resp.headers, nil
	}

	return nil, nil, fmt.Errorf("REST call failed after %d attempts: %w", maxAttempts, lastErr)
}

type response struct {
	body    []byte
	headers http.Header
}

// do performs one HTTP exchange. Any network failure or non-2xx status is
// reported as an error for the retry loops above to handle.
func (c *Client) do(ctx context.Context, method, url string, body []byte) (*response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", method, err)
	}
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling the GitHub API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	c.log.Debug("api exchange",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GitHub API returned %s: %s", resp.Status, string(raw))
	}

	if c.observe != nil {
		c.observe()
	}

	return &response{body: raw, headers: resp.Header}, nil
}

// envelope is the top level of every GraphQL response.
type envelope[A any] struct {
	Data   *A `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// decode unpacks a GraphQL response body into the given data shape. A shape
// mismatch surfaces immediately with the offending body attached, since
// retrying cannot fix it.
func decode[A any](body []byte) (A, error) {
	var env envelope[A]
	var zero A

	if err := json.Unmarshal(body, &env); err != nil {
		return zero, fmt.Errorf("the response couldn't be decoded into JSON: %w\n%s", err, body)
	}
	if len(env.Errors) > 0 {
		return zero, fmt.Errorf("GraphQL error: %s", env.Errors[0].Message)
	}
	if env.Data == nil {
		return zero, fmt.Errorf("the response carried no data:\n%s", body)
	}

	return *env.Data, nil
}
