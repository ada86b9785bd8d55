package entity

import (
	"context"
	"errors"
	"time"
)

// Lead statuses follow the sales funnel used by the KAM team.
const (
	LeadStatusNew        = "New"
	LeadStatusInProgress = "In Progress"
	LeadStatusFollowUp   = "Follow Up"
	LeadStatusClosed     = "Closed"
	LeadStatusWon        = "Won"
	LeadStatusLost       = "Lost"
)

const (
	DefaultCallFrequencyDays = 7
	MinCallFrequencyDays     = 1
	MaxCallFrequencyDays     = 30
)

type Lead struct {
	ID             int64    `json:"id"`
	RestaurantName string   `json:"restaurantName"`
	CuisineType    []string `json:"cuisineType"`
	Location       string   `json:"location"`
	LeadSource     string   `json:"leadSource,omitempty"`
	LeadStatus     string   `json:"leadStatus"`

	// Call cadence. LastCallDate/NextCallDate are written only by the
	// scheduler operations, never by a generic update.
	CallFrequency int        `json:"callFrequency"`
	LastCallDate  *time.Time `json:"lastCallDate,omitempty"`
	NextCallDate  *time.Time `json:"nextCallDate,omitempty"`

	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewLead(restaurantName, location, leadSource string, cuisineType []string, userID int64) (*Lead, error) {
	lead := &Lead{
		RestaurantName: restaurantName,
		CuisineType:    cuisineType,
		Location:       location,
		LeadSource:     leadSource,
		LeadStatus:     LeadStatusNew,
		CallFrequency:  DefaultCallFrequencyDays,
		UserID:         userID,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if l.RestaurantName == "" {
		return errors.New("restaurantName is required")
	}
	if l.Location == "" {
		return errors.New("location is required")
	}
	if l.UserID <= 0 {
		return errors.New("userId is required")
	}
	return nil
}

// LeadFilters narrows listing queries. Zero values mean "no filter".
type LeadFilters struct {
	LeadStatus string
	UserID     int64
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id int64) (*Lead, error)
	FindAll(ctx context.Context, filters LeadFilters) ([]*Lead, error)
	Update(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, id int64) error

	// FindDueForCall returns every lead with nextCallDate <= asOf.
	// Leads without a nextCallDate are never due.
	FindDueForCall(ctx context.Context, asOf time.Time) ([]*Lead, error)

	// UpdateCallSchedule persists a recorded call; the sole writer of
	// lastCallDate. Returns the updated lead.
	UpdateCallSchedule(ctx context.Context, id int64, lastCall, nextCall time.Time) (*Lead, error)

	// UpdateCallFrequency persists a new cadence together with the
	// re-anchored nextCallDate. Returns the updated lead.
	UpdateCallFrequency(ctx context.Context, id int64, frequencyDays int, nextCall time.Time) (*Lead, error)

	// TransferOwnership reassigns every lead of oldUserID to newUserID
	// and returns the number of leads moved.
	TransferOwnership(ctx context.Context, oldUserID, newUserID int64) (int64, error)
}
