// internal/inquiry/service.go
package inquiry

import (
	"context"
	"regexp"

	"github.com/go-playground/validator/v10"

	commonerrors "estate-match-backend/internal/common/errors"
	"estate-match-backend/internal/common/logger"
	"estate-match-backend/internal/common/metrics"
	"estate-match-backend/internal/models"
)

// phonePattern limits phone input to digits and common separators. The
// struct tags already bound the length.
var phonePattern = regexp.MustCompile(`^[\d\s\-()+]+$`)

// Service runs the inquiry pipeline: validate, rate limit, store, then
// notify and publish. Notification and event delivery are best-effort;
// only validation, the rate limit and the insert can fail a submission.
type Service struct {
	validate *validator.Validate
	limiter  *RateLimiter
	store    *Store
	notifier *Notifier
	events   *EventPublisher
	logger   logger.Logger
}

// NewService wires the pipeline. limiter, notifier and events are
// optional; pass nil to disable a stage.
func NewService(store *Store, limiter *RateLimiter, notifier *Notifier, events *EventPublisher, log logger.Logger) *Service {
	return &Service{
		validate: validator.New(),
		limiter:  limiter,
		store:    store,
		notifier: notifier,
		events:   events,
		logger:   log.WithFields(map[string]interface{}{"component": "inquiry-service"}),
	}
}

// Submit handles a contact-form submission from a real visitor.
func (s *Service) Submit(ctx context.Context, payload models.InquiryPayload, clientIP string) (models.Inquiry, error) {
	if err := s.validatePayload(payload); err != nil {
		metrics.InquiriesSubmitted.WithLabelValues("invalid").Inc()
		return models.Inquiry{}, err
	}
	return s.accept(ctx, payload, clientIP)
}

// SubmitLead stores a wizard-synthesized lead. The placeholder contact
// fields would fail form validation, so that stage is skipped; rate
// limiting and storage still apply.
func (s *Service) SubmitLead(ctx context.Context, payload models.InquiryPayload, clientIP string) (models.Inquiry, error) {
	return s.accept(ctx, payload, clientIP)
}

func (s *Service) accept(ctx context.Context, payload models.InquiryPayload, clientIP string) (models.Inquiry, error) {
	if s.limiter != nil && !s.limiter.Allow(ctx, clientIP) {
		metrics.InquiriesSubmitted.WithLabelValues("rate_limited").Inc()
		return models.Inquiry{}, commonerrors.NewRateLimitExceededError(clientIP)
	}

	inquiry, err := s.store.Insert(ctx, payload)
	if err != nil {
		metrics.InquiriesSubmitted.WithLabelValues("error").Inc()
		return models.Inquiry{}, commonerrors.NewInquiryInsertFailedError(err)
	}
	metrics.InquiriesSubmitted.WithLabelValues("success").Inc()

	if s.notifier != nil {
		s.notifier.Notify(ctx, inquiry)
	}
	if s.events != nil {
		s.events.PublishLead(ctx, models.LeadEvent{
			InquiryID:     inquiry.ID,
			Email:         inquiry.Email,
			PropertyID:    inquiry.PropertyID,
			PropertyTitle: inquiry.PropertyTitle,
			SubmittedAt:   inquiry.CreatedAt,
		})
	}

	return inquiry, nil
}

func (s *Service) validatePayload(payload models.InquiryPayload) error {
	if err := s.validate.Struct(payload); err != nil {
		return commonerrors.NewInquiryValidationFailedError(err.Error())
	}
	if !phonePattern.MatchString(payload.Phone) {
		return commonerrors.NewInquiryValidationFailedError("phone contains invalid characters")
	}
	return nil
}
