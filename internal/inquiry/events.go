// internal/inquiry/events.go
package inquiry

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"estate-match-backend/internal/common/logger"
	"estate-match-backend/internal/models"
)

// EventPublisher streams lead events to Kafka for downstream CRM sync.
// Writes are async and fire-and-forget; a broker outage never blocks or
// fails a submission.
type EventPublisher struct {
	writer *kafka.Writer
	logger logger.Logger
}

func NewEventPublisher(broker, topic string, log logger.Logger) *EventPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
	}

	return &EventPublisher{
		writer: writer,
		logger: log.WithFields(map[string]interface{}{"component": "lead-events"}),
	}
}

// PublishLead emits one event keyed by inquiry id.
func (p *EventPublisher) PublishLead(ctx context.Context, event models.LeadEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.WithError(err).Warn("failed to marshal lead event", nil)
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.InquiryID),
		Value: data,
	})
	if err != nil {
		p.logger.WithError(err).Warn("failed to publish lead event", map[string]interface{}{
			"inquiry_id": event.InquiryID,
		})
	}
}

func (p *EventPublisher) Close() error {
	return p.writer.Close()
}
