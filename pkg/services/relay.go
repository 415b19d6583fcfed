package services

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"cta-relay/pkg/clients/crm"
	"cta-relay/pkg/config"
	"cta-relay/pkg/logging"
	"cta-relay/pkg/metrics"
	"cta-relay/pkg/models"
	"cta-relay/pkg/utils"
	"cta-relay/pkg/validation"
)

// ConfigSource resolves the intake configuration for a request
type ConfigSource interface {
	Entry() (config.Entry, error)
}

// RelayService defines the interface for relaying contact requests to the intake service
type RelayService interface {
	Handle(ctx context.Context, method string, body []byte) Outcome
}

type relayServiceImpl struct {
	crmClient crm.Client
	configs   ConfigSource
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewRelayService creates a new relay service
func NewRelayService(
	crmClient crm.Client,
	configs ConfigSource,
	m *metrics.Metrics,
	logger *zap.Logger,
) RelayService {
	return &relayServiceImpl{
		crmClient: crmClient,
		configs:   configs,
		metrics:   m,
		logger:    logger,
	}
}

// Handle runs one request through method check, parsing, validation, config
// resolution and forwarding. Every path ends in exactly one Outcome.
func (s *relayServiceImpl) Handle(ctx context.Context, method string, body []byte) Outcome {
	out := s.handle(ctx, method, body)
	s.metrics.ObserveOutcome(out.Kind)
	return out
}

func (s *relayServiceImpl) handle(ctx context.Context, method string, body []byte) Outcome {
	log := logging.FromContext(ctx, s.logger)

	if method != http.MethodPost {
		return NewOutcome(models.KindMethodNotAllowed)
	}

	sub, err := models.DecodeSubmission(body)
	if err != nil {
		log.Debug("Malformed submission", zap.Error(err))
		return NewOutcome(models.KindMalformedInput)
	}

	if err := validation.ValidateRelay(sub); err != nil {
		log.Debug("Submission failed validation", zap.Error(err))
		return NewOutcome(models.KindValidationFailed)
	}

	entry, err := s.configs.Entry()
	if err != nil {
		log.Error("Intake configuration unavailable", zap.Error(err))
		return NewOutcome(models.KindConfigUnavailable)
	}

	payload := models.IntakePayload{
		Name:  strings.TrimSpace(sub.Name),
		Phone: validation.PhoneDigits(sub.Phone),
	}
	target := crm.Target{URL: entry.IntakeURL, Token: entry.AuthToken}

	resp, err := s.crmClient.SubmitLead(ctx, target, payload)
	if resp != nil {
		s.metrics.ObserveIntake(resp.Duration)
	}

	out := MapOutcome(err, resp)
	phoneHash := utils.PhoneFingerprint(payload.Phone)
	switch out.Kind {
	case models.KindTransportFailure:
		log.Error("Error connecting to intake service",
			zap.String("phone_hash", phoneHash),
			zap.Error(err))
	case models.KindUpstreamRejected:
		log.Error("Intake service rejected lead",
			zap.String("phone_hash", phoneHash),
			zap.Int("status", resp.StatusCode),
			zap.String("body", resp.Body))
	default:
		log.Info("Lead forwarded",
			zap.String("phone_hash", phoneHash),
			zap.String("form", sub.Form),
			zap.String("source", sub.Source),
			zap.Duration("took", resp.Duration))
	}
	return out
}
