package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ActivityCallRecorded     = "CALL_RECORDED"
	ActivityLeadsTransferred = "LEADS_TRANSFERRED"
)

// ActivityPayload is one lead-activity event published by the API and
// consumed by the activity worker.
type ActivityPayload struct {
	EventID string `json:"event_id"`
	Type    string `json:"type"`

	LeadID int64  `json:"lead_id,omitempty"`
	UserID *int64 `json:"user_id,omitempty"`

	// Transfer events only.
	OldUserID int64 `json:"old_user_id,omitempty"`
	NewUserID int64 `json:"new_user_id,omitempty"`
	LeadCount int64 `json:"lead_count,omitempty"`

	OccurredAt time.Time `json:"occurred_at"`
}

type ActivityPublisherInterface interface {
	PublishActivity(ctx context.Context, payload ActivityPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishActivity(ctx context.Context, payload ActivityPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode activity payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)

	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %w", err)
	}

	return nil
}
