package entity

import (
	"context"
	"errors"
	"time"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID                int64     `json:"id"`
	LeadID            int64     `json:"leadId"`
	Amount            float64   `json:"amount"`
	OrderDate         time.Time `json:"orderDate"`
	Status            string    `json:"status"`
	ProductCategories []string  `json:"productCategories,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func NewOrder(leadID int64, amount float64, orderDate time.Time, status string, categories []string, notes string) (*Order, error) {
	if status == "" {
		status = OrderStatusCompleted
	}
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	order := &Order{
		LeadID:            leadID,
		Amount:            amount,
		OrderDate:         orderDate,
		Status:            status,
		ProductCategories: categories,
		Notes:             notes,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	return order, nil
}

func (o *Order) Validate() error {
	if o.LeadID <= 0 {
		return errors.New("leadId is required")
	}
	if o.Amount < 0 {
		return errors.New("amount must not be negative")
	}
	switch o.Status {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
	default:
		return errors.New("status must be pending, completed or cancelled")
	}
	return nil
}

// OrderFilters narrows order listing queries. Nil/zero values mean
// "no filter"; StartDate and EndDate are only applied together.
type OrderFilters struct {
	StartDate       *time.Time
	EndDate         *time.Time
	ProductCategory string
}

// CompletedOrderRow is one completed order joined to its owning lead,
// as returned by the windowed analytics queries.
type CompletedOrderRow struct {
	LeadID            int64
	RestaurantName    string
	Location          string
	OrderID           int64
	Amount            float64
	OrderDate         time.Time
	ProductCategories []string
}

// LeadOrderJoinRow is one row of the outer join between leads and their
// qualifying completed orders. Order fields are nil for leads that have
// no qualifying order.
type LeadOrderJoinRow struct {
	LeadID         int64
	RestaurantName string
	OrderID        *int64
	Amount         *float64
	OrderDate      *time.Time
}

type OrderRepositoryInterface interface {
	Create(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id int64) (*Order, error)
	FindByLeadID(ctx context.Context, leadID int64) ([]*Order, error)
	Update(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id int64) error
	FindFiltered(ctx context.Context, filters OrderFilters) ([]*Order, error)

	// CompletedSince inner-joins leads to their completed orders with
	// orderDate >= since. Leads without a qualifying order do not appear.
	CompletedSince(ctx context.Context, since time.Time) ([]CompletedOrderRow, error)

	// LeadsWithCompletedOrdersBefore left-joins every lead to its
	// completed orders with orderDate <= before, keeping leads that have
	// none.
	LeadsWithCompletedOrdersBefore(ctx context.Context, before time.Time) ([]LeadOrderJoinRow, error)

	// CompletedBetween returns completed orders with orderDate in
	// [start, end], optionally restricted to one lead.
	CompletedBetween(ctx context.Context, leadID *int64, start, end time.Time) ([]CompletedOrderRow, error)
}
