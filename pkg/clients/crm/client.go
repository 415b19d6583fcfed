package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cta-relay/pkg/models"
)

// DefaultTimeout bounds one intake call end to end
const DefaultTimeout = 10 * time.Second

// TokenHeader carries the intake auth token
const TokenHeader = "X-LO-Token"

// Client defines the interface for submitting leads to the 1C intake service
type Client interface {
	SubmitLead(ctx context.Context, target Target, payload models.IntakePayload) (*Response, error)
}

// Target is where and as whom a lead is submitted
type Target struct {
	URL   string
	Token string
}

// Response is whatever the intake service answered, successful or not
type Response struct {
	StatusCode int
	Body       string
	Duration   time.Duration
}

type clientImpl struct {
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures the client
type Option func(*clientImpl)

// WithHTTPClient replaces the underlying HTTP client. The client is not
// modified; the per-call timeout still applies on top of its own.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientImpl) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout changes the per-call timeout
func WithTimeout(d time.Duration) Option {
	return func(c *clientImpl) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient creates a new intake client
func NewClient(opts ...Option) Client {
	c := &clientImpl{
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitLead posts one lead. Any returned error is a transport failure; a
// response with a non-2xx status is returned as is for the caller to classify.
// The call is not retried and is not cancelled together with ctx.
func (c *clientImpl) SubmitLead(ctx context.Context, target Target, payload models.IntakePayload) (*Response, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("error creating payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.URL, &buf)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(TokenHeader, target.Token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error submitting lead: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       string(body),
		Duration:   time.Since(start),
	}, nil
}

// OK reports whether the intake service accepted the lead
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
