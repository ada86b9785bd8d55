package usecase

import (
	"fmt"

	"github.com/xavierca1/restro-crm/internal/entity"
)

// ErrInvalidCallFrequency rejects cadence values outside the allowed
// range before any store access happens.
var ErrInvalidCallFrequency = fmt.Errorf(
	"callFrequency must be between %d and %d days",
	entity.MinCallFrequencyDays, entity.MaxCallFrequencyDays,
)

// ValidationError is a 400-class input error tied to a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
