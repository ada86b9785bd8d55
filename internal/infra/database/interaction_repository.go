package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xavierca1/restro-crm/internal/entity"
)

const interactionColumns = `
	id, lead_id, user_id, contact_id, order_id, interaction_type,
	interaction_date, duration, outcome, notes, created_at, updated_at
`

type InteractionRepository struct {
	DB *sql.DB
}

func NewInteractionRepository(db *sql.DB) *InteractionRepository {
	return &InteractionRepository{DB: db}
}

func (r *InteractionRepository) Create(ctx context.Context, interaction *entity.Interaction) error {
	if interaction.InteractionDate.IsZero() {
		query := `
			INSERT INTO interactions (
				lead_id, user_id, contact_id, order_id, interaction_type,
				duration, outcome, notes, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
			RETURNING id, interaction_date, created_at, updated_at
		`
		err := r.DB.QueryRowContext(ctx, query,
			interaction.LeadID,
			interaction.UserID,
			interaction.ContactID,
			interaction.OrderID,
			interaction.InteractionType,
			interaction.DurationMin,
			nullString(interaction.Outcome),
			nullString(interaction.Notes),
		).Scan(&interaction.ID, &interaction.InteractionDate, &interaction.CreatedAt, &interaction.UpdatedAt)
		if err != nil {
			return fmt.Errorf("error creating interaction: %w", err)
		}
		return nil
	}

	query := `
		INSERT INTO interactions (
			lead_id, user_id, contact_id, order_id, interaction_type,
			interaction_date, duration, outcome, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		interaction.LeadID,
		interaction.UserID,
		interaction.ContactID,
		interaction.OrderID,
		interaction.InteractionType,
		interaction.InteractionDate,
		interaction.DurationMin,
		nullString(interaction.Outcome),
		nullString(interaction.Notes),
	).Scan(&interaction.ID, &interaction.CreatedAt, &interaction.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating interaction: %w", err)
	}

	return nil
}

func (r *InteractionRepository) FindByID(ctx context.Context, id int64) (*entity.Interaction, error) {
	query := `SELECT ` + interactionColumns + ` FROM interactions WHERE id = $1`

	interaction, err := scanInteraction(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrInteractionNotFound
		}
		return nil, fmt.Errorf("error fetching interaction: %w", err)
	}

	return interaction, nil
}

func (r *InteractionRepository) FindByLeadID(ctx context.Context, leadID int64) ([]*entity.Interaction, error) {
	query := `SELECT ` + interactionColumns + ` FROM interactions WHERE lead_id = $1 ORDER BY interaction_date DESC`

	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("error fetching interactions by lead ID: %w", err)
	}
	defer rows.Close()

	interactions := []*entity.Interaction{}
	for rows.Next() {
		interaction, err := scanInteraction(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning interaction: %w", err)
		}
		interactions = append(interactions, interaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interactions: %w", err)
	}

	return interactions, nil
}

func (r *InteractionRepository) Update(ctx context.Context, interaction *entity.Interaction) error {
	query := `
		UPDATE interactions
		SET interaction_type = $1, interaction_date = $2, duration = $3,
		    outcome = $4, notes = $5, contact_id = $6, order_id = $7,
		    updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		interaction.InteractionType,
		interaction.InteractionDate,
		interaction.DurationMin,
		nullString(interaction.Outcome),
		nullString(interaction.Notes),
		interaction.ContactID,
		interaction.OrderID,
		interaction.ID,
	).Scan(&interaction.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.ErrInteractionNotFound
		}
		return fmt.Errorf("error updating interaction: %w", err)
	}

	return nil
}

func (r *InteractionRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM interactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting interaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting interaction: %w", err)
	}
	if affected == 0 {
		return entity.ErrInteractionNotFound
	}

	return nil
}

func scanInteraction(row rowScanner) (*entity.Interaction, error) {
	var (
		interaction entity.Interaction
		userID      sql.NullInt64
		contactID   sql.NullInt64
		orderID     sql.NullInt64
		duration    sql.NullInt64
		outcome     sql.NullString
		notes       sql.NullString
	)

	err := row.Scan(
		&interaction.ID,
		&interaction.LeadID,
		&userID,
		&contactID,
		&orderID,
		&interaction.InteractionType,
		&interaction.InteractionDate,
		&duration,
		&outcome,
		&notes,
		&interaction.CreatedAt,
		&interaction.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		interaction.UserID = &userID.Int64
	}
	if contactID.Valid {
		interaction.ContactID = &contactID.Int64
	}
	if orderID.Valid {
		interaction.OrderID = &orderID.Int64
	}
	if duration.Valid {
		d := int(duration.Int64)
		interaction.DurationMin = &d
	}
	interaction.Outcome = outcome.String
	interaction.Notes = notes.String

	return &interaction, nil
}
