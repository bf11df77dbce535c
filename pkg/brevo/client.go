// Package brevo is a small typed client for the Brevo v3 REST API.
//
// Only the endpoints used by the MCP tools are covered. Requests carry the
// account API key in the api-key header and are retried with exponential
// backoff on rate limiting and server errors.
package brevo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v5"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultBaseURL is the production API root
	DefaultBaseURL = "https://api.brevo.com/v3"

	defaultTimeout        = 30 * time.Second
	defaultInitialBackoff = 500 * time.Millisecond
	maxBackoffInterval    = 5 * time.Second
	maxElapsedRetryTime   = 2 * time.Minute
)

// Config configures a Client
type Config struct {
	HTTPClient     *http.Client
	APIKey         string
	BaseURL        string
	Timeout        time.Duration
	InitialBackoff time.Duration
	MaxRetries     uint
}

// Client talks to the Brevo API
type Client struct {
	httpClient     *http.Client
	apiKey         string
	baseURL        string
	initialBackoff time.Duration
	maxRetries     uint
}

// NewClient creates a new Client, filling unset config values with defaults
func NewClient(config *Config) *Client {
	if config == nil {
		config = &Config{}
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	initialBackoff := config.InitialBackoff
	if initialBackoff <= 0 {
		initialBackoff = defaultInitialBackoff
	}

	return &Client{
		httpClient:     httpClient,
		apiKey:         config.APIKey,
		baseURL:        baseURL,
		initialBackoff: initialBackoff,
		maxRetries:     config.MaxRetries,
	}
}

// do sends a JSON request and decodes the JSON response into out when out is not nil
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = sonic.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.initialBackoff
	exp.MaxInterval = maxBackoffInterval
	exp.Reset()

	// A POST that failed in transit or with a 5xx may already have been applied.
	// Only a 429, which the API rejects before processing, is safe to repeat.
	rateLimitOnly := method == http.MethodPost

	operation := func() (struct{}, error) {
		return struct{}{}, c.send(ctx, method, path, payload, out, rateLimitOnly)
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(exp),
		backoff.WithMaxTries(c.maxRetries+1),
		backoff.WithMaxElapsedTime(maxElapsedRetryTime),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.WithError(err).WithFields(log.Fields{
				"method":   method,
				"path":     path,
				"retry_in": next,
			}).Warn("[Brevo] request failed, retrying")
		}),
	)
	return err
}

// send performs a single attempt. Errors that must not be retried are wrapped with backoff.Permanent.
func (c *Client) send(ctx context.Context, method, path string, payload []byte, out any, rateLimitOnly bool) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		err = fmt.Errorf("failed to execute request: %w", err)
		if rateLimitOnly {
			return backoff.Permanent(err)
		}
		return err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("[Brevo] failed to close response body")
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("failed to read response: %w", err)
		if rateLimitOnly {
			return backoff.Permanent(err)
		}
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := newAPIError(resp.StatusCode, data)
		if apiErr.StatusCode == http.StatusTooManyRequests || (apiErr.Temporary() && !rateLimitOnly) {
			return apiErr
		}
		return backoff.Permanent(apiErr)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := sonic.Unmarshal(data, out); err != nil {
		return backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
	}

	return nil
}

// IsNotFound reports whether err is an API error with status 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
