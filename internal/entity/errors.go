package entity

import "errors"

var (
	ErrLeadNotFound        = errors.New("lead not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrContactNotFound     = errors.New("contact not found")
	ErrInteractionNotFound = errors.New("interaction not found")

	// Unique-constraint violations surfaced as domain errors.
	ErrLeadAlreadyExists    = errors.New("a lead with this restaurant name and location already exists")
	ErrContactAlreadyExists = errors.New("contact already exists")
)
