package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/restro-crm/internal/entity"
	"github.com/xavierca1/restro-crm/internal/infra/http/middleware"
)

// TransferNotifier delivers the "your book of leads just grew" notice
// after a bulk transfer.
type TransferNotifier interface {
	SendTransferNotice(oldUserID, newUserID, leadCount int64) error
}

type Worker struct {
	Channel      *amqp.Channel
	Interactions entity.InteractionRepositoryInterface
	Notifier     TransferNotifier
}

func NewWorker(ch *amqp.Channel, interactions entity.InteractionRepositoryInterface, notifier TransferNotifier) *Worker {
	return &Worker{
		Channel:      ch,
		Interactions: interactions,
		Notifier:     notifier,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload ActivityPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("[WORKER] malformed activity payload: %s", err)
				// Poison message. Reject without requeue so the queue keeps moving.
				d.Nack(false, false)
				continue
			}

			if err := w.processMessage(context.Background(), payload); err != nil {
				log.Printf("[WORKER] failed to process %s event %s: %s", payload.Type, payload.EventID, err)
				middleware.RecordActivityEvent(payload.Type, "error")
				d.Nack(false, false)
			} else {
				middleware.RecordActivityEvent(payload.Type, "ok")
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Activity worker waiting on queue '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(ctx context.Context, payload ActivityPayload) error {
	switch payload.Type {
	case ActivityCallRecorded:
		interaction := &entity.Interaction{
			LeadID:          payload.LeadID,
			UserID:          payload.UserID,
			InteractionType: entity.InteractionTypeCall,
			InteractionDate: payload.OccurredAt,
			Notes:           fmt.Sprintf("Scheduled cadence call (event %s)", payload.EventID),
		}
		if err := w.Interactions.Create(ctx, interaction); err != nil {
			return fmt.Errorf("error logging call interaction: %w", err)
		}
		return nil

	case ActivityLeadsTransferred:
		if err := w.Notifier.SendTransferNotice(payload.OldUserID, payload.NewUserID, payload.LeadCount); err != nil {
			return fmt.Errorf("error sending transfer notice: %w", err)
		}
		return nil

	default:
		// Unknown event type: ack it so it does not clog the queue.
		log.Printf("[WORKER] unknown activity type %q, skipping", payload.Type)
		return nil
	}
}
