package services

import (
	"cta-relay/pkg/clients/crm"
	"cta-relay/pkg/models"
)

// Outcome is the classified end of one relay request
type Outcome struct {
	Kind   models.Kind
	Result models.RelayResult
}

// Status returns the HTTP status to answer with
func (o Outcome) Status() int {
	return o.Kind.Status()
}

// NewOutcome builds the fixed outcome for kind, without details
func NewOutcome(kind models.Kind) Outcome {
	return Outcome{
		Kind: kind,
		Result: models.RelayResult{
			Success: kind == models.KindOK,
			Message: kind.Message(),
		},
	}
}

// MapOutcome classifies the result of an intake call. A transport error wins
// over anything else; otherwise a non-2xx response is rejected with its raw body
// as details and a 2xx response is a success.
func MapOutcome(transportErr error, resp *crm.Response) Outcome {
	switch {
	case transportErr != nil || resp == nil:
		return NewOutcome(models.KindTransportFailure)
	case !resp.OK():
		out := NewOutcome(models.KindUpstreamRejected)
		details := resp.Body
		out.Result.Details = &details
		return out
	default:
		return NewOutcome(models.KindOK)
	}
}
