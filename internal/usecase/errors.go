package usecase

import (
	"errors"
	"fmt"

	"internhub/internal/repository"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

func forbidden(what string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, what)
}

// storeErr translates repository errors into use case errors. what names the
// record involved and ends up in the message.
func storeErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%w: %s already exists", ErrConflict, what)
	case errors.Is(err, repository.ErrStaleStatus):
		return fmt.Errorf("%w: %s was modified concurrently", ErrConflict, what)
	case isUsecaseErr(err):
		return err
	default:
		return fmt.Errorf("%w: %s: %v", ErrInternal, what, err)
	}
}

func isUsecaseErr(err error) bool {
	for _, target := range []error{ErrInvalidInput, ErrNotFound, ErrForbidden, ErrConflict, ErrUnauthorized, ErrInternal} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
