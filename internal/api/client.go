// Package api talks to the lighting service over HTTP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/phoenixcorp/lightdesk/internal/log"
	"github.com/phoenixcorp/lightdesk/internal/overrides"
	"github.com/phoenixcorp/lightdesk/internal/tracing"
)

const (
	// DefaultBaseURL is where the lighting service listens by default.
	DefaultBaseURL = "http://localhost:8080/api"
	// DefaultTimeout bounds every request.
	DefaultTimeout = 10 * time.Second

	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 1 << 20
)

// Operation names, used in errors, spans and logs.
const (
	OpFetchOverrides   = "fetch_overrides"
	OpPersistOverrides = "persist_overrides"
	OpStart            = "start"
	OpStop             = "stop"
	OpDefineArea       = "define_area"
)

// Transport is the set of calls the lighting service supports. A returned
// status of "" means the service sent no message.
type Transport interface {
	FetchOverrides(ctx context.Context) (overrides.Payload, error)
	PersistOverrides(ctx context.Context, p overrides.Payload) (string, error)
	Start(ctx context.Context) (string, error)
	Stop(ctx context.Context) (string, error)
	DefineArea(ctx context.Context) (string, error)
}

// Client implements Transport over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ Transport = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout. Zero keeps the default.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// NewClient creates a client for the service at baseURL. An empty baseURL
// means DefaultBaseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized service URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchOverrides reads the stored overrides. The payload may be partial.
func (c *Client) FetchOverrides(ctx context.Context) (overrides.Payload, error) {
	body, err := c.do(ctx, OpFetchOverrides, http.MethodGet, "/overrides", nil)
	if err != nil {
		return overrides.Payload{}, err
	}

	var p overrides.Payload
	if len(bytes.TrimSpace(body)) == 0 {
		return p, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&p); err != nil {
		return overrides.Payload{}, &Error{Op: OpFetchOverrides, StatusCode: http.StatusOK, Err: fmt.Errorf("decoding overrides: %w", err)}
	}
	return p, nil
}

// PersistOverrides stores a complete payload.
func (c *Client) PersistOverrides(ctx context.Context, p overrides.Payload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", &Error{Op: OpPersistOverrides, Err: fmt.Errorf("encoding overrides: %w", err)}
	}
	body, err := c.do(ctx, OpPersistOverrides, http.MethodPut, "/overrides", data)
	if err != nil {
		return "", err
	}
	return ExtractStatus(body), nil
}

// Start starts the OCR and lighting runtime.
func (c *Client) Start(ctx context.Context) (string, error) {
	return c.post(ctx, OpStart, "/start")
}

// Stop stops the runtime.
func (c *Client) Stop(ctx context.Context) (string, error) {
	return c.post(ctx, OpStop, "/stop")
}

// DefineArea asks the service to let the user pick the OCR capture area.
func (c *Client) DefineArea(ctx context.Context) (string, error) {
	return c.post(ctx, OpDefineArea, "/define-area")
}

func (c *Client) post(ctx context.Context, op, path string) (string, error) {
	body, err := c.do(ctx, op, http.MethodPost, path, nil)
	if err != nil {
		return "", err
	}
	return ExtractStatus(body), nil
}

// do runs one request inside a client span and returns the body of a 2xx
// response. Every failure comes back as *Error.
func (c *Client) do(ctx context.Context, op, method, path string, payload []byte) (_ []byte, err error) {
	url := c.baseURL + path
	requestID := uuid.NewString()

	ctx, span := tracing.StartClientSpan(ctx, op,
		attribute.String(tracing.AttrHTTPMethod, method),
		attribute.String(tracing.AttrHTTPURL, url),
		attribute.String(tracing.AttrRequestID, requestID),
	)
	defer func() { tracing.EndSpan(span, err) }()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &Error{Op: op, Err: fmt.Errorf("building request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.ErrorErr(log.CatAPI, "Request failed", err, "op", op, "request_id", requestID)
		return nil, &Error{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int(tracing.AttrHTTPStatusCode, resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	log.Debug(log.CatAPI, "Request done",
		"op", op,
		"method", method,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := ExtractStatus(body)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &Error{Op: op, StatusCode: resp.StatusCode, Err: errors.New(msg)}
	}
	if msg := ExtractStatus(body); msg != "" {
		span.AddEvent(tracing.EventStatusReceived, trace.WithAttributes(attribute.String("status", msg)))
	}
	return body, nil
}
