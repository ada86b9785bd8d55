package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/xavierca1/restro-crm/internal/clock"
	"github.com/xavierca1/restro-crm/internal/config"
	"github.com/xavierca1/restro-crm/internal/entity"
)

// PerformanceSummary is a lead's aggregate over the classification
// window. Recomputed on every request, never persisted.
type PerformanceSummary struct {
	LeadID          int64   `json:"leadId"`
	RestaurantName  string  `json:"restaurantName"`
	TotalOrderValue float64 `json:"totalOrderValue"`
	OrderCount      int     `json:"orderCount"`
}

// LeadMetrics is a lead's lifetime aggregate over all of its orders.
type LeadMetrics struct {
	LeadID          int64   `json:"leadId"`
	RestaurantName  string  `json:"restaurantName"`
	TotalOrderValue float64 `json:"totalOrderValue"`
	OrderFrequency  int     `json:"orderFrequency"`
}

// PerformanceUseCase classifies accounts against the configured
// thresholds. All operations are read-only.
type PerformanceUseCase struct {
	LeadRepo  entity.LeadRepositoryInterface
	OrderRepo entity.OrderRepositoryInterface
	Clock     clock.Clock
	Cfg       config.Thresholds
}

func NewPerformanceUseCase(leadRepo entity.LeadRepositoryInterface, orderRepo entity.OrderRepositoryInterface, clk clock.Clock, cfg config.Thresholds) *PerformanceUseCase {
	return &PerformanceUseCase{
		LeadRepo:  leadRepo,
		OrderRepo: orderRepo,
		Clock:     clk,
		Cfg:       cfg,
	}
}

// WellPerforming returns leads that clear BOTH bars over the recent
// window: at least FrequencyThreshold completed orders AND at least
// AmountThreshold of order value. Orders outside the window never count,
// even for leads that qualify.
func (uc *PerformanceUseCase) WellPerforming(ctx context.Context) ([]PerformanceSummary, error) {
	since := uc.Clock.Now().AddDate(0, 0, -uc.Cfg.RecentWindowDays)

	rows, err := uc.OrderRepo.CompletedSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("error fetching well performing accounts: %w", err)
	}

	byLead := map[int64]*PerformanceSummary{}
	for _, row := range rows {
		s, ok := byLead[row.LeadID]
		if !ok {
			s = &PerformanceSummary{LeadID: row.LeadID, RestaurantName: row.RestaurantName}
			byLead[row.LeadID] = s
		}
		s.TotalOrderValue += row.Amount
		s.OrderCount++
	}

	result := []PerformanceSummary{}
	for _, s := range byLead {
		if s.OrderCount >= uc.Cfg.FrequencyThreshold && s.TotalOrderValue >= uc.Cfg.AmountThreshold {
			result = append(result, *s)
		}
	}
	sortSummaries(result)

	return result, nil
}

// UnderPerforming returns leads that miss EITHER bar over the stale
// window. Leads with no qualifying orders at all are included with
// zeroed aggregates.
func (uc *PerformanceUseCase) UnderPerforming(ctx context.Context) ([]PerformanceSummary, error) {
	before := uc.Clock.Now().AddDate(0, 0, -uc.Cfg.StaleWindowDays)

	rows, err := uc.OrderRepo.LeadsWithCompletedOrdersBefore(ctx, before)
	if err != nil {
		return nil, fmt.Errorf("error fetching under performing accounts: %w", err)
	}

	byLead := map[int64]*PerformanceSummary{}
	for _, row := range rows {
		s, ok := byLead[row.LeadID]
		if !ok {
			s = &PerformanceSummary{LeadID: row.LeadID, RestaurantName: row.RestaurantName}
			byLead[row.LeadID] = s
		}
		// NULL order columns mean this lead had no qualifying order.
		if row.OrderID != nil {
			s.TotalOrderValue += *row.Amount
			s.OrderCount++
		}
	}

	result := []PerformanceSummary{}
	for _, s := range byLead {
		if s.OrderCount < uc.Cfg.FrequencyThreshold || s.TotalOrderValue < uc.Cfg.AmountThreshold {
			result = append(result, *s)
		}
	}
	sortSummaries(result)

	return result, nil
}

// LeadMetrics aggregates a single lead's entire order history. Unlike
// the classifiers it does not filter by order status.
func (uc *PerformanceUseCase) LeadMetrics(ctx context.Context, leadID int64) (*LeadMetrics, error) {
	lead, err := uc.LeadRepo.FindByID(ctx, leadID)
	if err != nil {
		return nil, err
	}

	orders, err := uc.OrderRepo.FindByLeadID(ctx, leadID)
	if err != nil {
		return nil, fmt.Errorf("error fetching lead performance metrics: %w", err)
	}

	metrics := &LeadMetrics{
		LeadID:         lead.ID,
		RestaurantName: lead.RestaurantName,
	}
	for _, order := range orders {
		metrics.TotalOrderValue += order.Amount
		metrics.OrderFrequency++
	}

	return metrics, nil
}

func sortSummaries(s []PerformanceSummary) {
	sort.Slice(s, func(i, j int) bool { return s[i].LeadID < s[j].LeadID })
}
