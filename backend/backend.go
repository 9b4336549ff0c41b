// Package backend is the HTTP client for the pricing and bookkeeping service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Environment selects which backend deployment the client talks to. It is
// fixed at construction and never changes for the lifetime of the client.
type Environment string

const (
	EnvironmentLocal      Environment = "local"
	EnvironmentPreprod    Environment = "preprod"
	EnvironmentProduction Environment = "production"
)

// BaseURL returns the deployment endpoint for the environment.
func (e Environment) BaseURL() string {
	switch e {
	case EnvironmentLocal:
		return "http://localhost:8000"
	case EnvironmentPreprod:
		return "https://preprod.api.nftlend.finance"
	case EnvironmentProduction:
		return "https://api.nftlend.finance"
	default:
		return ""
	}
}

// Valid reports whether the environment is one of the known deployments.
func (e Environment) Valid() bool {
	return e.BaseURL() != ""
}

// Environments lists the supported deployments.
func Environments() []Environment {
	return []Environment{EnvironmentLocal, EnvironmentPreprod, EnvironmentProduction}
}

const (
	headerLoginSignedMessage   = "X-Login-Signed-Message"
	headerLoginSignedSignature = "X-Login-Signed-Signature"
	headerRequestID            = "X-Request-Id"
)

// Error is the uniform error raised for any failed backend call, carrying
// the best human-readable message the response offered.
type Error struct {
	Message string
	Status  int
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// Client issues requests against a single backend environment. Calls are
// never retried; a failed call is surfaced as a permanent failure.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
	metrics *Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the diagnostic logger. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithMetrics attaches request instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithBaseURL overrides the environment's endpoint, for self-hosted
// deployments.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// NewClient builds a client bound to one environment.
func NewClient(env Environment, opts ...Option) (*Client, error) {
	if !env.Valid() {
		return nil, fmt.Errorf("unknown backend environment %q, supported values: %v", env, Environments())
	}
	c := &Client{
		baseURL: env.BaseURL(),
		http:    http.DefaultClient,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// errorBody is the shape error responses come in. Message extraction
// priority: data.message, then message, then data.error.
type errorBody struct {
	Message string `json:"message"`
	Data    struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	} `json:"data"`
}

func errorMessage(status int, raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Data.Message != "" {
			return body.Data.Message
		}
		if body.Message != "" {
			return body.Message
		}
		if body.Data.Error != "" {
			return body.Data.Error
		}
	}
	return fmt.Sprintf("backend request failed with status %d", status)
}

// do is the shared request path every endpoint funnels through. out, query,
// headers and body may be nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, headers http.Header, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(headerRequestID, uuid.NewString())

	metricName := method + " " + path
	c.log.Debug("backend request", zap.String("method", method), zap.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.incRequest(metricName, "transport_error")
		return &Error{Message: fmt.Sprintf("backend request failed: %v", err), cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.incRequest(metricName, "transport_error")
		return &Error{Message: fmt.Sprintf("read backend response: %v", err), Status: resp.StatusCode, cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.incRequest(metricName, "http_error")
		message := errorMessage(resp.StatusCode, raw)
		c.log.Debug("backend error response", zap.Int("status", resp.StatusCode), zap.String("message", message))
		return &Error{Message: message, Status: resp.StatusCode}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			c.metrics.incRequest(metricName, "decode_error")
			return &Error{Message: fmt.Sprintf("decode backend response: %v", err), Status: resp.StatusCode, cause: err}
		}
	}

	c.metrics.incRequest(metricName, "ok")
	return nil
}

func loginHeaders(sig LoginSignature) http.Header {
	h := http.Header{}
	h.Set(headerLoginSignedMessage, sig.Message)
	h.Set(headerLoginSignedSignature, sig.Signature)
	return h
}
