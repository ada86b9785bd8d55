package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/xavierca1/restro-crm/internal/clock"
	"github.com/xavierca1/restro-crm/internal/entity"
)

const defaultPatternWindowDays = 30

// OrderingPattern summarizes one (lead, product category) pair over the
// requested window. Money and day averages are formatted to two decimal
// places for display.
type OrderingPattern struct {
	LeadID                   int64  `json:"leadId"`
	RestaurantName           string `json:"restaurantName"`
	Location                 string `json:"location"`
	Category                 string `json:"category"`
	TotalOrders              int    `json:"totalOrders"`
	TotalAmountSpent         string `json:"totalAmountSpent"`
	AverageDaysBetweenOrders string `json:"averageDaysBetweenOrders"`
}

// OrderingPatternsInput carries the optional filters. A nil LeadID means
// all leads; a missing window side falls back to [now-30d, now]. Limit
// and Offset paginate the grouped result; Limit <= 0 means no limit.
type OrderingPatternsInput struct {
	LeadID    *int64
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// OrderPatternUseCase mines ordering patterns from the completed order
// history, grouped by (lead, category) with per-category fan-out: an
// order tagged with three categories feeds three groups.
type OrderPatternUseCase struct {
	OrderRepo entity.OrderRepositoryInterface
	Clock     clock.Clock
}

func NewOrderPatternUseCase(orderRepo entity.OrderRepositoryInterface, clk clock.Clock) *OrderPatternUseCase {
	return &OrderPatternUseCase{
		OrderRepo: orderRepo,
		Clock:     clk,
	}
}

type patternKey struct {
	leadID   int64
	category string
}

type patternAccumulator struct {
	restaurantName string
	location       string
	totalOrders    int
	totalAmount    float64
	totalAgeDays   int
}

func (uc *OrderPatternUseCase) OrderingPatterns(ctx context.Context, input OrderingPatternsInput) ([]OrderingPattern, error) {
	now := uc.Clock.Now()

	start := now.AddDate(0, 0, -defaultPatternWindowDays)
	if input.StartDate != nil {
		start = *input.StartDate
	}
	end := now
	if input.EndDate != nil {
		end = *input.EndDate
	}

	rows, err := uc.OrderRepo.CompletedBetween(ctx, input.LeadID, start, end)
	if err != nil {
		return nil, fmt.Errorf("error fetching ordering patterns: %w", err)
	}

	groups := map[patternKey]*patternAccumulator{}
	for _, row := range rows {
		// Age in whole days relative to "now". The average of these is
		// a recency measure, not a gap between consecutive orders; the
		// field name is historical and the behavior is contracted.
		ageDays := int(now.Sub(row.OrderDate).Hours() / 24)

		for _, category := range row.ProductCategories {
			key := patternKey{leadID: row.LeadID, category: category}
			acc, ok := groups[key]
			if !ok {
				acc = &patternAccumulator{
					restaurantName: row.RestaurantName,
					location:       row.Location,
				}
				groups[key] = acc
			}
			// The full order amount is attributed to every category on
			// the order. Category totals therefore do not sum to the
			// lead's spend; that attribution is contracted as-is.
			acc.totalOrders++
			acc.totalAmount += row.Amount
			acc.totalAgeDays += ageDays
		}
	}

	patterns := make([]OrderingPattern, 0, len(groups))
	for key, acc := range groups {
		avgDays := float64(acc.totalAgeDays) / float64(acc.totalOrders)
		patterns = append(patterns, OrderingPattern{
			LeadID:                   key.leadID,
			RestaurantName:           acc.restaurantName,
			Location:                 acc.location,
			Category:                 key.category,
			TotalOrders:              acc.totalOrders,
			TotalAmountSpent:         fmt.Sprintf("%.2f", acc.totalAmount),
			AverageDaysBetweenOrders: fmt.Sprintf("%.2f", avgDays),
		})
	}

	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].LeadID != patterns[j].LeadID {
			return patterns[i].LeadID < patterns[j].LeadID
		}
		return patterns[i].Category < patterns[j].Category
	})

	return paginate(patterns, input.Limit, input.Offset), nil
}

func paginate(patterns []OrderingPattern, limit, offset int) []OrderingPattern {
	if offset >= len(patterns) {
		return []OrderingPattern{}
	}
	if offset > 0 {
		patterns = patterns[offset:]
	}
	if limit > 0 && limit < len(patterns) {
		patterns = patterns[:limit]
	}
	return patterns
}
