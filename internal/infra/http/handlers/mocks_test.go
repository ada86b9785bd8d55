package handlers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/restro-crm/internal/entity"
	"github.com/xavierca1/restro-crm/internal/usecase"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindAll(ctx context.Context, filters entity.LeadFilters) ([]*entity.Lead, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) FindDueForCall(ctx context.Context, asOf time.Time) ([]*entity.Lead, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdateCallSchedule(ctx context.Context, id int64, lastCall, nextCall time.Time) (*entity.Lead, error) {
	args := m.Called(ctx, id, lastCall, nextCall)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdateCallFrequency(ctx context.Context, id int64, frequencyDays int, nextCall time.Time) (*entity.Lead, error) {
	args := m.Called(ctx, id, frequencyDays, nextCall)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) TransferOwnership(ctx context.Context, oldUserID, newUserID int64) (int64, error) {
	args := m.Called(ctx, oldUserID, newUserID)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id int64) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByLeadID(ctx context.Context, leadID int64) ([]*entity.Order, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *entity.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) FindFiltered(ctx context.Context, filters entity.OrderFilters) ([]*entity.Order, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) CompletedSince(ctx context.Context, since time.Time) ([]entity.CompletedOrderRow, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CompletedOrderRow), args.Error(1)
}

func (m *MockOrderRepository) LeadsWithCompletedOrdersBefore(ctx context.Context, before time.Time) ([]entity.LeadOrderJoinRow, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LeadOrderJoinRow), args.Error(1)
}

func (m *MockOrderRepository) CompletedBetween(ctx context.Context, leadID *int64, start, end time.Time) ([]entity.CompletedOrderRow, error) {
	args := m.Called(ctx, leadID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CompletedOrderRow), args.Error(1)
}

// MockCallScheduler
type MockCallScheduler struct {
	mock.Mock
}

func (m *MockCallScheduler) LeadsDueForCall(ctx context.Context) ([]*entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockCallScheduler) RecordCall(ctx context.Context, leadID int64, userID *int64) (*entity.Lead, error) {
	args := m.Called(ctx, leadID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockCallScheduler) UpdateCallFrequency(ctx context.Context, leadID int64, frequencyDays int) (*entity.Lead, error) {
	args := m.Called(ctx, leadID, frequencyDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

// MockLeadTransferrer
type MockLeadTransferrer struct {
	mock.Mock
}

func (m *MockLeadTransferrer) Execute(ctx context.Context, oldUserID, newUserID int64) (int64, error) {
	args := m.Called(ctx, oldUserID, newUserID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPatternAnalyzer
type MockPatternAnalyzer struct {
	mock.Mock
}

func (m *MockPatternAnalyzer) OrderingPatterns(ctx context.Context, input usecase.OrderingPatternsInput) ([]usecase.OrderingPattern, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]usecase.OrderingPattern), args.Error(1)
}
