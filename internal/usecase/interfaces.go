package usecase

import (
	"context"

	"github.com/xavierca1/restro-crm/internal/infra/queue"
)

// ActivityPublisher pushes lead-activity events onto the message bus.
// Publishing is best effort from the caller's point of view: the
// triggering operation never fails because the bus is down.
type ActivityPublisher interface {
	PublishActivity(ctx context.Context, payload queue.ActivityPayload) error
}
