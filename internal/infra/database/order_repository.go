package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/xavierca1/restro-crm/internal/entity"
)

const orderColumns = `
	id, lead_id, amount, order_date, status, product_categories, notes,
	created_at, updated_at
`

type OrderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (
			lead_id, amount, order_date, status, product_categories, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		order.LeadID,
		order.Amount,
		order.OrderDate,
		order.Status,
		pq.Array(order.ProductCategories),
		nullString(order.Notes),
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating order: %w", err)
	}

	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrOrderNotFound
		}
		return nil, fmt.Errorf("error fetching order: %w", err)
	}

	return order, nil
}

func (r *OrderRepository) FindByLeadID(ctx context.Context, leadID int64) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE lead_id = $1 ORDER BY order_date DESC`

	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("error fetching orders by lead ID: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *OrderRepository) Update(ctx context.Context, order *entity.Order) error {
	query := `
		UPDATE orders
		SET amount = $1, order_date = $2, status = $3,
		    product_categories = $4, notes = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		order.Amount,
		order.OrderDate,
		order.Status,
		pq.Array(order.ProductCategories),
		nullString(order.Notes),
		order.ID,
	).Scan(&order.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.ErrOrderNotFound
		}
		return fmt.Errorf("error updating order: %w", err)
	}

	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting order: %w", err)
	}
	if affected == 0 {
		return entity.ErrOrderNotFound
	}

	return nil
}

func (r *OrderRepository) FindFiltered(ctx context.Context, filters entity.OrderFilters) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	args := []any{}

	if filters.StartDate != nil && filters.EndDate != nil {
		args = append(args, *filters.StartDate, *filters.EndDate)
		query += fmt.Sprintf(" AND order_date BETWEEN $%d AND $%d", len(args)-1, len(args))
	}
	if filters.ProductCategory != "" {
		args = append(args, filters.ProductCategory)
		query += fmt.Sprintf(" AND $%d = ANY(product_categories)", len(args))
	}

	query += " ORDER BY order_date DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error fetching filtered orders: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

// CompletedSince feeds the well-performing classification: completed
// orders only, inner join, bounded below by the window start.
func (r *OrderRepository) CompletedSince(ctx context.Context, since time.Time) ([]entity.CompletedOrderRow, error) {
	query := `
		SELECT l.id, l.restaurant_name, l.location,
		       o.id, o.amount, o.order_date, o.product_categories
		FROM leads l
		JOIN orders o ON o.lead_id = l.id
		WHERE o.status = 'completed' AND o.order_date >= $1
	`

	rows, err := r.DB.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("error fetching recent completed orders: %w", err)
	}
	defer rows.Close()

	return collectCompletedRows(rows)
}

// LeadsWithCompletedOrdersBefore feeds the under-performing
// classification. The LEFT JOIN keeps leads with no qualifying order;
// their order columns come back NULL.
func (r *OrderRepository) LeadsWithCompletedOrdersBefore(ctx context.Context, before time.Time) ([]entity.LeadOrderJoinRow, error) {
	query := `
		SELECT l.id, l.restaurant_name, o.id, o.amount, o.order_date
		FROM leads l
		LEFT JOIN orders o
		  ON o.lead_id = l.id AND o.status = 'completed' AND o.order_date <= $1
	`

	rows, err := r.DB.QueryContext(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("error fetching stale order history: %w", err)
	}
	defer rows.Close()

	joined := []entity.LeadOrderJoinRow{}
	for rows.Next() {
		var (
			row       entity.LeadOrderJoinRow
			orderID   sql.NullInt64
			amount    sql.NullFloat64
			orderDate sql.NullTime
		)
		if err := rows.Scan(&row.LeadID, &row.RestaurantName, &orderID, &amount, &orderDate); err != nil {
			return nil, fmt.Errorf("error scanning stale order row: %w", err)
		}
		if orderID.Valid {
			row.OrderID = &orderID.Int64
		}
		if amount.Valid {
			row.Amount = &amount.Float64
		}
		if orderDate.Valid {
			t := orderDate.Time
			row.OrderDate = &t
		}
		joined = append(joined, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stale order rows: %w", err)
	}

	return joined, nil
}

// CompletedBetween feeds the ordering-pattern analysis.
func (r *OrderRepository) CompletedBetween(ctx context.Context, leadID *int64, start, end time.Time) ([]entity.CompletedOrderRow, error) {
	query := `
		SELECT l.id, l.restaurant_name, l.location,
		       o.id, o.amount, o.order_date, o.product_categories
		FROM leads l
		JOIN orders o ON o.lead_id = l.id
		WHERE o.status = 'completed' AND o.order_date BETWEEN $1 AND $2
	`
	args := []any{start, end}

	if leadID != nil {
		args = append(args, *leadID)
		query += fmt.Sprintf(" AND l.id = $%d", len(args))
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error fetching ordering patterns: %w", err)
	}
	defer rows.Close()

	return collectCompletedRows(rows)
}

func scanOrder(row rowScanner) (*entity.Order, error) {
	var (
		order      entity.Order
		categories pq.StringArray
		notes      sql.NullString
	)

	err := row.Scan(
		&order.ID,
		&order.LeadID,
		&order.Amount,
		&order.OrderDate,
		&order.Status,
		&categories,
		&notes,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.ProductCategories = categories
	order.Notes = notes.String

	return &order, nil
}

func collectOrders(rows *sql.Rows) ([]*entity.Order, error) {
	orders := []*entity.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}
	return orders, nil
}

func collectCompletedRows(rows *sql.Rows) ([]entity.CompletedOrderRow, error) {
	out := []entity.CompletedOrderRow{}
	for rows.Next() {
		var (
			row        entity.CompletedOrderRow
			categories pq.StringArray
		)
		err := rows.Scan(
			&row.LeadID,
			&row.RestaurantName,
			&row.Location,
			&row.OrderID,
			&row.Amount,
			&row.OrderDate,
			&categories,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning completed order row: %w", err)
		}
		row.ProductCategories = categories
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating completed order rows: %w", err)
	}
	return out, nil
}
