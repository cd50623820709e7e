package service

import (
	"errors"
	"fmt"

	"homestay-backend/internal/repository"
	"homestay-backend/internal/storage"
	"homestay-backend/internal/validation"
)

// Error kinds. Callers classify with errors.Is; messages carry the detail.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

func notFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

func conflict(msg string) error {
	return fmt.Errorf("%w: %s", ErrConflict, msg)
}

// translate maps repository and storage errors to service error kinds.
func translate(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound(entity)
	case errors.Is(err, repository.ErrDuplicate):
		return conflict(entity + " already exists")
	case errors.Is(err, storage.ErrUnsupportedType), errors.Is(err, storage.ErrTooLarge), errors.Is(err, storage.ErrInvalidKey):
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return err
}

// validate runs struct validation and tags failures with ErrValidation while
// keeping the per-field details reachable through errors.As.
func validate(v *validation.Validator, in any) error {
	if err := v.Struct(in); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}
