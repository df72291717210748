// internal/inquiry/notifier.go
package inquiry

import (
	"context"
	"fmt"

	awsclients "estate-match-backend/internal/common/aws"
	"estate-match-backend/internal/common/config"
	"estate-match-backend/internal/common/logger"
	"estate-match-backend/internal/models"
)

// Notifier alerts the listing agent about a new lead over email and SMS.
// Notification failures are logged and swallowed; the inquiry is already
// stored by the time this runs.
type Notifier struct {
	ses    *awsclients.SESClient
	sns    *awsclients.SNSClient
	cfg    config.NotificationConfig
	logger logger.Logger
}

func NewNotifier(sesClient *awsclients.SESClient, snsClient *awsclients.SNSClient, cfg config.NotificationConfig, log logger.Logger) *Notifier {
	return &Notifier{
		ses:    sesClient,
		sns:    snsClient,
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"component": "inquiry-notifier"}),
	}
}

// Notify sends the configured channels. Each channel is independent; one
// failing does not stop the other.
func (n *Notifier) Notify(ctx context.Context, inquiry models.Inquiry) {
	if n.cfg.Email.Enabled && n.ses != nil {
		subject, body := leadEmailContent(inquiry)
		if err := n.ses.SendLeadEmail(ctx, n.cfg.Email.FromEmail, n.cfg.Email.ToEmail, subject, body); err != nil {
			n.logger.WithError(err).Warn("lead email notification failed", map[string]interface{}{
				"inquiry_id": inquiry.ID,
			})
		}
	}

	if n.cfg.SMS.Enabled && n.sns != nil {
		if err := n.sns.SendLeadSMS(ctx, n.cfg.SMS.PhoneNumber, leadSMSText(inquiry)); err != nil {
			n.logger.WithError(err).Warn("lead SMS notification failed", map[string]interface{}{
				"inquiry_id": inquiry.ID,
			})
		}
	}
}

// leadEmailContent renders the agent email. The property title, when
// present, goes into the subject so the agent can triage from the inbox
// list.
func leadEmailContent(inquiry models.Inquiry) (subject, body string) {
	subject = "New property inquiry"
	if inquiry.PropertyTitle != "" {
		subject = fmt.Sprintf("New inquiry: %s", inquiry.PropertyTitle)
	}

	body = fmt.Sprintf(
		"Name: %s\nEmail: %s\nPhone: %s\nPreferred contact: %s\n\n%s",
		inquiry.FullName, inquiry.Email, inquiry.Phone, inquiry.PreferredContact, inquiry.Message,
	)
	return subject, body
}

func leadSMSText(inquiry models.Inquiry) string {
	message := fmt.Sprintf("New lead from %s (%s)", inquiry.FullName, inquiry.Phone)
	if inquiry.PropertyTitle != "" {
		message = fmt.Sprintf("%s about %s", message, inquiry.PropertyTitle)
	}
	return message
}
