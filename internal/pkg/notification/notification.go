package notification

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const (
	TopicBookingCreated     = "notification_booking_created"
	TopicBookingConfirmed   = "notification_booking_confirmed"
	TopicBookingCancelled   = "notification_booking_cancelled"
	TopicCertificateIssued  = "notification_certificate_issued"
	TopicCertificateRevoked = "notification_certificate_revoked"
)

// Dispatcher hands transactional messages to the notification service. Send
// never fails the caller: delivery problems are logged and dropped.
type Dispatcher interface {
	Send(ctx context.Context, topic string, payload interface{})
}

type Message struct {
	EmailRecipient string            `json:"email_recipient"`
	RecipientName  string            `json:"recipient_name"`
	Subject        string            `json:"subject"`
	Template       string            `json:"template"`
	Data           map[string]string `json:"data,omitempty"`
	Attachment     []byte            `json:"attachment,omitempty"`
	AttachmentName string            `json:"attachment_name,omitempty"`
}

type dispatcher struct {
	publisher message.Publisher
	log       *otelzap.Logger
}

func New(publisher message.Publisher, log *otelzap.Logger) Dispatcher {
	return &dispatcher{
		publisher: publisher,
		log:       log,
	}
}

func (d *dispatcher) Send(ctx context.Context, topic string, payload interface{}) {
	if d.publisher == nil {
		d.log.Ctx(ctx).Warn("notification publisher not configured, dropping message", zap.String("topic", topic))
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		d.log.Ctx(ctx).Error(fmt.Sprintf("error marshal notification: %v", err), zap.String("topic", topic))
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.SetContext(ctx)

	if err := d.publisher.Publish(topic, msg); err != nil {
		d.log.Ctx(ctx).Error(fmt.Sprintf("error publish notification: %v", err), zap.String("topic", topic))
	}
}
