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

// CallSchedulerUseCase owns the call cadence of every lead: which leads
// are due for an outreach call, recording a completed call, and changing
// a lead's cadence. It is the only writer of lastCallDate/nextCallDate.
type CallSchedulerUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
	Clock    clock.Clock
	Events   ActivityPublisher
}

func NewCallSchedulerUseCase(leadRepo entity.LeadRepositoryInterface, clk clock.Clock, events ActivityPublisher) *CallSchedulerUseCase {
	return &CallSchedulerUseCase{
		LeadRepo: leadRepo,
		Clock:    clk,
		Events:   events,
	}
}

// LeadsDueForCall returns every lead whose nextCallDate has passed.
// An empty list is a normal outcome, not an error.
func (uc *CallSchedulerUseCase) LeadsDueForCall(ctx context.Context) ([]*entity.Lead, error) {
	leads, err := uc.LeadRepo.FindDueForCall(ctx, uc.Clock.Now())
	if err != nil {
		return nil, fmt.Errorf("error fetching leads requiring calls: %w", err)
	}
	return leads, nil
}

// RecordCall marks a call as done now and slides the cadence window
// forward by the lead's current callFrequency.
func (uc *CallSchedulerUseCase) RecordCall(ctx context.Context, leadID int64, userID *int64) (*entity.Lead, error) {
	lead, err := uc.LeadRepo.FindByID(ctx, leadID)
	if err != nil {
		return nil, err
	}

	now := uc.Clock.Now()
	nextCall := now.AddDate(0, 0, lead.CallFrequency)

	updated, err := uc.LeadRepo.UpdateCallSchedule(ctx, leadID, now, nextCall)
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, queue.ActivityPayload{
		EventID:    uuid.New().String(),
		Type:       queue.ActivityCallRecorded,
		LeadID:     leadID,
		UserID:     userID,
		OccurredAt: now,
	})

	return updated, nil
}

// UpdateCallFrequency changes the cadence and re-anchors nextCallDate to
// now plus the new frequency. This is a deliberate reset of the cadence,
// not a rescale of the existing interval.
func (uc *CallSchedulerUseCase) UpdateCallFrequency(ctx context.Context, leadID int64, frequencyDays int) (*entity.Lead, error) {
	if frequencyDays < entity.MinCallFrequencyDays || frequencyDays > entity.MaxCallFrequencyDays {
		return nil, ErrInvalidCallFrequency
	}

	if _, err := uc.LeadRepo.FindByID(ctx, leadID); err != nil {
		return nil, err
	}

	nextCall := uc.Clock.Now().AddDate(0, 0, frequencyDays)

	return uc.LeadRepo.UpdateCallFrequency(ctx, leadID, frequencyDays, nextCall)
}

func (uc *CallSchedulerUseCase) publish(ctx context.Context, payload queue.ActivityPayload) {
	if uc.Events == nil {
		return
	}
	if err := uc.Events.PublishActivity(ctx, payload); err != nil {
		// The call is already recorded; losing the activity event is
		// tolerable, losing the schedule update is not.
		log.Printf("WARNING: call recorded but activity event not published: %v", err)
	}
}
