package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/restro-crm/internal/entity"
	"github.com/xavierca1/restro-crm/internal/infra/queue"
)

func TestLeadsDueForCall(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	due := []*entity.Lead{
		{ID: 1, RestaurantName: "Bistro Norte", CallFrequency: 7},
		{ID: 4, RestaurantName: "Cantina Sul", CallFrequency: 14},
	}

	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindDueForCall", ctx, now).Return(due, nil)

	uc := NewCallSchedulerUseCase(mockRepo, fixedClock{now: now}, nil)

	leads, err := uc.LeadsDueForCall(ctx)

	assert.NoError(t, err)
	assert.Len(t, leads, 2)
	assert.Equal(t, int64(1), leads[0].ID)
	mockRepo.AssertCalled(t, "FindDueForCall", ctx, now)
}

func TestLeadsDueForCallEmpty(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindDueForCall", ctx, now).Return([]*entity.Lead{}, nil)

	uc := NewCallSchedulerUseCase(mockRepo, fixedClock{now: now}, nil)

	leads, err := uc.LeadsDueForCall(ctx)

	assert.NoError(t, err)
	assert.Empty(t, leads)
}

func TestLeadsDueForCallRepositoryError(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindDueForCall", ctx, now).Return(nil, errors.New("connection refused"))

	uc := NewCallSchedulerUseCase(mockRepo, fixedClock{now: now}, nil)

	leads, err := uc.LeadsDueForCall(ctx)

	assert.Error(t, err)
	assert.Nil(t, leads)
	assert.Contains(t, err.Error(), "error fetching leads requiring calls")
}

func TestRecordCallReanchorsSchedule(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	wantNext := now.AddDate(0, 0, 14)

	lead := &entity.Lead{ID: 7, RestaurantName: "Bistro Norte", CallFrequency: 14}
	updated := &entity.Lead{ID: 7, RestaurantName: "Bistro Norte", CallFrequency: 14,
		LastCallDate: &now, NextCallDate: &wantNext}

	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindByID", ctx, int64(7)).Return(lead, nil)
	mockRepo.On("UpdateCallSchedule", ctx, int64(7), now, wantNext).Return(updated, nil)

	mockEvents := new(MockActivityPublisher)
	mockEvents.On("PublishActivity", ctx, mock.MatchedBy(func(p queue.ActivityPayload) bool {
		return p.Type == queue.ActivityCallRecorded && p.LeadID == 7 && p.OccurredAt.Equal(now)
	})).Return(nil)

	uc := NewCallSchedulerUseCase(mockRepo, fixedClock{now: now}, mockEvents)

	got, err := uc.RecordCall(ctx, 7, nil)

	assert.NoError(t, err)
	assert.Equal(t, now, *got.LastCallDate)
	assert.Equal(t, wantNext, *got.NextCallDate)
	mockRepo.AssertCalled(t, "UpdateCallSchedule", ctx, int64(7), now, wantNext)
	mockEvents.AssertCalled(t, "PublishActivity", ctx, mock.Anything)
}

func TestRecordCallLeadNotFound(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindByID", ctx, int64(99)).Return(nil, entity.ErrLeadNotFound)

	uc := NewCallSchedulerUseCase(mockRepo, fixedClock{now: now}, nil)

	got, err := uc.RecordCall(ctx, 99, nil)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)
	mockRepo.AssertNotCalled(t, "UpdateCallSchedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordCallSurvivesPublishFailure(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	wantNext := now.AddDate(0, 0, 7)

	lead := &entity.Lead{ID: 3, RestaurantName: "Cantina Sul", CallFrequency: 7}
	updated := &entity.Lead{ID: 3, RestaurantName: "Cantina Sul", CallFrequency: 7,
		LastCallDate: &now, NextCallDate: &wantNext}

	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindByID", ctx, int64(3)).Return(lead, nil)
	mockRepo.On("UpdateCallSchedule", ctx, int64(3), now, wantNext).Return(updated, nil)

	mockEvents := new(MockActivityPublisher)
	mockEvents.On("PublishActivity", ctx, mock.Anything).Return(errors.New("broker down"))

	uc := NewCallSchedulerUseCase(mockRepo, fixedClock{now: now}, mockEvents)

	got, err := uc.RecordCall(ctx, 3, nil)

	assert.NoError(t, err)
	assert.NotNil(t, got)
}

func TestUpdateCallFrequency(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	wantNext := now.AddDate(0, 0, 5)

	lead := &entity.Lead{ID: 2, RestaurantName: "Bistro Norte", CallFrequency: 7}
	updated := &entity.Lead{ID: 2, RestaurantName: "Bistro Norte", CallFrequency: 5, NextCallDate: &wantNext}

	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindByID", ctx, int64(2)).Return(lead, nil)
	mockRepo.On("UpdateCallFrequency", ctx, int64(2), 5, wantNext).Return(updated, nil)

	uc := NewCallSchedulerUseCase(mockRepo, fixedClock{now: now}, nil)

	got, err := uc.UpdateCallFrequency(ctx, 2, 5)

	assert.NoError(t, err)
	assert.Equal(t, 5, got.CallFrequency)
	assert.Equal(t, wantNext, *got.NextCallDate)
}

func TestUpdateCallFrequencyBounds(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mockRepo := new(MockLeadRepository)
	uc := NewCallSchedulerUseCase(mockRepo, fixedClock{now: now}, nil)

	for _, freq := range []int{0, -1, 31, 100} {
		got, err := uc.UpdateCallFrequency(ctx, 2, freq)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrInvalidCallFrequency)
	}

	// Out-of-range values never reach the store.
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "UpdateCallFrequency", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateCallFrequencyAcceptsRangeEdges(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	lead := &entity.Lead{ID: 2, RestaurantName: "Bistro Norte", CallFrequency: 7}

	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindByID", ctx, int64(2)).Return(lead, nil)
	mockRepo.On("UpdateCallFrequency", ctx, int64(2), 1, now.AddDate(0, 0, 1)).Return(lead, nil)
	mockRepo.On("UpdateCallFrequency", ctx, int64(2), 30, now.AddDate(0, 0, 30)).Return(lead, nil)

	uc := NewCallSchedulerUseCase(mockRepo, fixedClock{now: now}, nil)

	_, err := uc.UpdateCallFrequency(ctx, 2, 1)
	assert.NoError(t, err)

	_, err = uc.UpdateCallFrequency(ctx, 2, 30)
	assert.NoError(t, err)
}

func TestUpdateCallFrequencyLeadNotFound(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindByID", ctx, int64(404)).Return(nil, entity.ErrLeadNotFound)

	uc := NewCallSchedulerUseCase(mockRepo, fixedClock{now: now}, nil)

	got, err := uc.UpdateCallFrequency(ctx, 404, 10)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)
}
