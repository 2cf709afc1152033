package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrValidation       = errors.New("validation failed")
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnauthenticated  = errors.New("authentication required")
)

// Composition and relation specializations. All wrap ErrValidation so
// callers can match either the broad class or the specific failure.
var (
	ErrEmptyIngredients    = fmt.Errorf("%w: recipe needs at least one ingredient", ErrValidation)
	ErrDuplicateIngredient = fmt.Errorf("%w: ingredient listed more than once", ErrValidation)
	ErrNonPositiveAmount   = fmt.Errorf("%w: ingredient amount must be greater than zero", ErrValidation)
	ErrSelfFollow          = fmt.Errorf("%w: cannot subscribe to yourself", ErrValidation)
)

// translateDBError maps storage failures onto the service taxonomy. The
// uniqueness constraint is the authority for duplicate relation adds, so a
// race that trips it surfaces as ErrAlreadyExists rather than a generic
// failure.
func translateDBError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrAlreadyExists
	default:
		return err
	}
}
