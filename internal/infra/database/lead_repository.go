package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/xavierca1/restro-crm/internal/entity"
)

const leadColumns = `
	id, restaurant_name, cuisine_type, location, lead_source, lead_status,
	call_frequency, last_call_date, next_call_date, user_id, created_at, updated_at
`

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (
			restaurant_name, cuisine_type, location, lead_source, lead_status,
			call_frequency, user_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		lead.RestaurantName,
		pq.Array(lead.CuisineType),
		lead.Location,
		nullString(lead.LeadSource),
		lead.LeadStatus,
		lead.CallFrequency,
		lead.UserID,
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return entity.ErrLeadAlreadyExists
		}
		return fmt.Errorf("error creating lead: %w", err)
	}

	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, fmt.Errorf("error fetching lead: %w", err)
	}

	return lead, nil
}

func (r *LeadRepository) FindAll(ctx context.Context, filters entity.LeadFilters) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE 1=1`
	args := []any{}

	if filters.LeadStatus != "" {
		args = append(args, filters.LeadStatus)
		query += fmt.Sprintf(" AND lead_status = $%d", len(args))
	}
	if filters.UserID > 0 {
		args = append(args, filters.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}

	query += " ORDER BY id"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error fetching leads: %w", err)
	}
	defer rows.Close()

	return collectLeads(rows)
}

// Update persists the editable fields of a lead. Scheduling fields
// (call_frequency, last_call_date, next_call_date) are deliberately not
// touched here; they belong to the cadence operations below.
func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads
		SET restaurant_name = $1, cuisine_type = $2, location = $3,
		    lead_source = $4, lead_status = $5, user_id = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		lead.RestaurantName,
		pq.Array(lead.CuisineType),
		lead.Location,
		nullString(lead.LeadSource),
		lead.LeadStatus,
		lead.UserID,
		lead.ID,
	).Scan(&lead.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.ErrLeadNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return entity.ErrLeadAlreadyExists
		}
		return fmt.Errorf("error updating lead: %w", err)
	}

	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting lead: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting lead: %w", err)
	}
	if affected == 0 {
		return entity.ErrLeadNotFound
	}

	return nil
}

func (r *LeadRepository) FindDueForCall(ctx context.Context, asOf time.Time) ([]*entity.Lead, error) {
	// next_call_date IS NULL rows never match: an unscheduled lead is not due.
	query := `SELECT ` + leadColumns + ` FROM leads WHERE next_call_date <= $1`

	rows, err := r.DB.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("error fetching leads requiring calls: %w", err)
	}
	defer rows.Close()

	return collectLeads(rows)
}

func (r *LeadRepository) UpdateCallSchedule(ctx context.Context, id int64, lastCall, nextCall time.Time) (*entity.Lead, error) {
	query := `
		UPDATE leads
		SET last_call_date = $1, next_call_date = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + leadColumns

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, lastCall, nextCall, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, fmt.Errorf("error recording call: %w", err)
	}

	return lead, nil
}

func (r *LeadRepository) UpdateCallFrequency(ctx context.Context, id int64, frequencyDays int, nextCall time.Time) (*entity.Lead, error) {
	query := `
		UPDATE leads
		SET call_frequency = $1, next_call_date = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + leadColumns

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, frequencyDays, nextCall, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, fmt.Errorf("error updating call frequency: %w", err)
	}

	return lead, nil
}

func (r *LeadRepository) TransferOwnership(ctx context.Context, oldUserID, newUserID int64) (int64, error) {
	query := `UPDATE leads SET user_id = $1, updated_at = NOW() WHERE user_id = $2`

	res, err := r.DB.ExecContext(ctx, query, newUserID, oldUserID)
	if err != nil {
		return 0, fmt.Errorf("error transferring leads: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error transferring leads: %w", err)
	}

	return affected, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var (
		lead       entity.Lead
		cuisine    pq.StringArray
		leadSource sql.NullString
		lastCall   sql.NullTime
		nextCall   sql.NullTime
	)

	err := row.Scan(
		&lead.ID,
		&lead.RestaurantName,
		&cuisine,
		&lead.Location,
		&leadSource,
		&lead.LeadStatus,
		&lead.CallFrequency,
		&lastCall,
		&nextCall,
		&lead.UserID,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.CuisineType = cuisine
	lead.LeadSource = leadSource.String
	if lastCall.Valid {
		t := lastCall.Time
		lead.LastCallDate = &t
	}
	if nextCall.Valid {
		t := nextCall.Time
		lead.NextCallDate = &t
	}

	return &lead, nil
}

func collectLeads(rows *sql.Rows) ([]*entity.Lead, error) {
	leads := []*entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leads: %w", err)
	}
	return leads, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
