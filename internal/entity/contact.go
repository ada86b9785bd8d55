package entity

import (
	"context"
	"errors"
	"time"
)

// Contact is a point of contact at a lead's restaurant.
type Contact struct {
	ID        int64     `json:"id"`
	LeadID    int64     `json:"leadId"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewContact(leadID int64, name, phone, email, role string) (*Contact, error) {
	if leadID <= 0 {
		return nil, errors.New("leadId is required")
	}
	if name == "" {
		return nil, errors.New("name is required")
	}
	if phone == "" {
		return nil, errors.New("phone is required")
	}
	if role == "" {
		return nil, errors.New("role is required")
	}

	return &Contact{
		LeadID:    leadID,
		Name:      name,
		Phone:     phone,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

type ContactRepositoryInterface interface {
	Create(ctx context.Context, contact *Contact) error
	FindByID(ctx context.Context, id int64) (*Contact, error)
	FindByLeadID(ctx context.Context, leadID int64) ([]*Contact, error)
	FindByPhone(ctx context.Context, phone string) (*Contact, error)
	Update(ctx context.Context, contact *Contact) error
	Delete(ctx context.Context, id int64) error
}
