// Package cta submits contact forms to the relay and reports the result as a
// value. It never returns a bare error: the caller decides how to notify the user.
package cta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cta-relay/pkg/models"
	"cta-relay/pkg/validation"
)

// MessageNetworkError is shown when the relay itself cannot be reached
const MessageNetworkError = "Не удалось отправить заявку. Проверьте подключение и попробуйте ещё раз"

const defaultTimeout = 15 * time.Second

// Result is the outcome of one submission
type Result struct {
	Kind    models.Kind
	Message string
	Details string
	// FieldErrors is set when the form failed local validation
	FieldErrors map[string]string
	// Err is the underlying cause of a transport failure, for diagnostics only
	Err error
}

// OK reports whether the lead reached the intake service
func (r Result) OK() bool {
	return r.Kind == models.KindOK
}

// Client defines the interface for submitting contact forms to the relay
type Client interface {
	Submit(ctx context.Context, fields validation.Fields) Result
}

type clientImpl struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a relay client posting to endpoint (e.g. https://site.example/api/cta)
func NewClient(endpoint string, hc *http.Client) Client {
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &clientImpl{endpoint: endpoint, httpClient: hc}
}

// Submit validates fields locally and, when they pass, posts them to the relay
func (c *clientImpl) Submit(ctx context.Context, fields validation.Fields) Result {
	if res := validation.ValidateSubmission(fields); !res.Valid {
		return Result{
			Kind:        models.KindValidationFailed,
			Message:     models.MessageValidationFailed,
			FieldErrors: res.Errors,
		}
	}

	form := fields.Form
	if form == "" {
		form = models.DefaultForm
	}
	sub := models.Submission{
		Name:    validation.SanitizeName(fields.Name),
		Phone:   validation.NormalizePhone(fields.Phone),
		Consent: fields.Consent,
		Form:    form,
		Source:  fields.Source,
	}

	status, body, err := c.post(ctx, sub)
	if err != nil {
		return Result{
			Kind:    models.KindTransportFailure,
			Message: MessageNetworkError,
			Err:     err,
		}
	}
	return interpret(status, body)
}

func (c *clientImpl) post(ctx context.Context, sub models.Submission) (int, []byte, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return 0, nil, fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("error reading response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// interpret turns a relay response into a Result. Responses that are not a
// RelayResult (proxies, HTML error pages) are classified by status alone.
func interpret(status int, body []byte) Result {
	var rr models.RelayResult
	decoded := json.Unmarshal(body, &rr) == nil

	kind := models.KindFromStatus(status, decoded && rr.Details != nil)
	if kind == models.KindOK && !(decoded && rr.Success) {
		kind = models.KindUpstreamRejected
	}

	res := Result{Kind: kind, Message: kind.Message()}
	if decoded && rr.Message != "" {
		res.Message = rr.Message
	}
	if decoded && rr.Details != nil {
		res.Details = *rr.Details
	}
	return res
}
