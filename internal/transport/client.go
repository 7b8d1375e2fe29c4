package transport

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
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultTimeout = time.Second * 10

// maxBodySize is the largest response body that will be read
const maxBodySize = 1 << 20

// RequestIDHeader carries a unique id for every request
const RequestIDHeader = "X-Request-ID"

// Error is returned when the exchange with the table service failed
// StatusCode is zero when no response was received
type Error struct {
	Endpoint   Endpoint
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s request failed with status %d: %v", e.Endpoint, e.StatusCode, e.Cause)
	}

	return fmt.Sprintf("%s request failed: %v", e.Endpoint, e.Cause)
}

// Unwrap returns the cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Sender sends a request to an endpoint of the table service
type Sender interface {
	Send(ctx context.Context, endpoint Endpoint, payload interface{}) (json.RawMessage, error)
}

// Client is an HTTP client for the table service
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// Option configures a Client
type Option func(c *Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithTimeout sets the timeout of each request
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New returns a client for the table service at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL must be http or https: %s", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    http.DefaultClient,
		timeout: defaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Send performs a single exchange with the endpoint
// The response body is returned for any 2xx response. A non-2xx response is also returned as a body
// if it carries a {success:false} envelope, otherwise an *Error is returned. Send never retries.
func (c *Client) Send(ctx context.Context, endpoint Endpoint, payload interface{}) (json.RawMessage, error) {
	requestID := uuid.New().String()
	log := logrus.WithFields(logrus.Fields{
		"endpoint":  endpoint.String(),
		"requestId": requestID,
	})

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, &Error{Endpoint: endpoint, Cause: err}
		}

		body = bytes.NewReader(b)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, endpoint.Method(), c.baseURL+endpoint.Path(), body)
	if err != nil {
		return nil, &Error{Endpoint: endpoint, Cause: err}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Debug("request failed")
		return nil, &Error{Endpoint: endpoint, Cause: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &Error{Endpoint: endpoint, StatusCode: resp.StatusCode, Cause: err}
	}

	log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("received response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if isFailureEnvelope(b) {
			return b, nil
		}

		return nil, &Error{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Cause:      errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	return b, nil
}

func isFailureEnvelope(b []byte) bool {
	var env struct {
		Success *bool  `json:"success"`
		Error   string `json:"error"`
	}

	if err := json.Unmarshal(b, &env); err != nil {
		return false
	}

	return env.Success != nil && !*env.Success
}
