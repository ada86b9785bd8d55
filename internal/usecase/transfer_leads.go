package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/xavierca1/restro-crm/internal/clock"
	"github.com/xavierca1/restro-crm/internal/entity"
	"github.com/xavierca1/restro-crm/internal/infra/queue"
)

// TransferLeadsUseCase bulk-reassigns one account manager's leads to
// another, e.g. when a KAM leaves or territories are rebalanced.
type TransferLeadsUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
	Clock    clock.Clock
	Events   ActivityPublisher
}

func NewTransferLeadsUseCase(leadRepo entity.LeadRepositoryInterface, clk clock.Clock, events ActivityPublisher) *TransferLeadsUseCase {
	return &TransferLeadsUseCase{
		LeadRepo: leadRepo,
		Clock:    clk,
		Events:   events,
	}
}

// Execute returns the number of leads moved. Zero is a valid outcome
// (no leads owned by oldUserID), reported as a count, not an error.
func (uc *TransferLeadsUseCase) Execute(ctx context.Context, oldUserID, newUserID int64) (int64, error) {
	if oldUserID <= 0 {
		return 0, ValidationError{Field: "oldUserId", Message: "is required"}
	}
	if newUserID <= 0 {
		return 0, ValidationError{Field: "newUserId", Message: "is required"}
	}
	if oldUserID == newUserID {
		return 0, ValidationError{Field: "newUserId", Message: "must differ from oldUserId"}
	}

	count, err := uc.LeadRepo.TransferOwnership(ctx, oldUserID, newUserID)
	if err != nil {
		return 0, fmt.Errorf("error transferring leads: %w", err)
	}

	if count > 0 && uc.Events != nil {
		payload := queue.ActivityPayload{
			EventID:    uuid.New().String(),
			Type:       queue.ActivityLeadsTransferred,
			OldUserID:  oldUserID,
			NewUserID:  newUserID,
			LeadCount:  count,
			OccurredAt: uc.Clock.Now(),
		}
		if err := uc.Events.PublishActivity(ctx, payload); err != nil {
			log.Printf("WARNING: leads transferred but activity event not published: %v", err)
		}
	}

	return count, nil
}
