package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/xavierca1/restro-crm/internal/entity"
)

const contactColumns = `id, lead_id, name, phone, email, role, created_at, updated_at`

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

func (r *ContactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	query := `
		INSERT INTO contacts (lead_id, name, phone, email, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		contact.LeadID,
		contact.Name,
		contact.Phone,
		nullString(contact.Email),
		contact.Role,
	).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return entity.ErrContactAlreadyExists
		}
		return fmt.Errorf("error creating contact: %w", err)
	}

	return nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id int64) (*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`

	contact, err := scanContact(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrContactNotFound
		}
		return nil, fmt.Errorf("error fetching contact: %w", err)
	}

	return contact, nil
}

func (r *ContactRepository) FindByLeadID(ctx context.Context, leadID int64) ([]*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE lead_id = $1 ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("error fetching contacts by lead ID: %w", err)
	}
	defer rows.Close()

	contacts := []*entity.Contact{}
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning contact: %w", err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}

	return contacts, nil
}

func (r *ContactRepository) FindByPhone(ctx context.Context, phone string) (*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE phone = $1 LIMIT 1`

	contact, err := scanContact(r.DB.QueryRowContext(ctx, query, phone))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrContactNotFound
		}
		return nil, fmt.Errorf("error fetching contact by phone: %w", err)
	}

	return contact, nil
}

func (r *ContactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	query := `
		UPDATE contacts
		SET name = $1, phone = $2, email = $3, role = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		contact.Name,
		contact.Phone,
		nullString(contact.Email),
		contact.Role,
		contact.ID,
	).Scan(&contact.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.ErrContactNotFound
		}
		return fmt.Errorf("error updating contact: %w", err)
	}

	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting contact: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting contact: %w", err)
	}
	if affected == 0 {
		return entity.ErrContactNotFound
	}

	return nil
}

func scanContact(row rowScanner) (*entity.Contact, error) {
	var (
		contact entity.Contact
		email   sql.NullString
	)

	err := row.Scan(
		&contact.ID,
		&contact.LeadID,
		&contact.Name,
		&contact.Phone,
		&email,
		&contact.Role,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	contact.Email = email.String

	return &contact, nil
}
