package entity

import (
	"context"
	"errors"
	"time"
)

const (
	InteractionTypeCall    = "call"
	InteractionTypeEmail   = "email"
	InteractionTypeMeeting = "meeting"
	InteractionTypeOther   = "other"
)

// Interaction is one logged touchpoint with a lead: a call, an email,
// a meeting, or anything else worth keeping in the history.
type Interaction struct {
	ID              int64     `json:"id"`
	LeadID          int64     `json:"leadId"`
	UserID          *int64    `json:"userId,omitempty"`
	ContactID       *int64    `json:"contactId,omitempty"`
	OrderID         *int64    `json:"orderId,omitempty"`
	InteractionType string    `json:"interactionType"`
	InteractionDate time.Time `json:"interactionDate"`
	DurationMin     *int      `json:"duration,omitempty"`
	Outcome         string    `json:"outcome,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (i *Interaction) Validate() error {
	if i.LeadID <= 0 {
		return errors.New("leadId is required")
	}
	switch i.InteractionType {
	case InteractionTypeCall, InteractionTypeEmail, InteractionTypeMeeting, InteractionTypeOther:
	default:
		return errors.New("interactionType must be call, email, meeting or other")
	}
	return nil
}

type InteractionRepositoryInterface interface {
	Create(ctx context.Context, interaction *Interaction) error
	FindByID(ctx context.Context, id int64) (*Interaction, error)
	FindByLeadID(ctx context.Context, leadID int64) ([]*Interaction, error)
	Update(ctx context.Context, interaction *Interaction) error
	Delete(ctx context.Context, id int64) error
}
