package apperrors

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Domain error taxonomy. Core packages return these wrapped with
// fmt.Errorf("...: %w", Err*); the HTTP layer maps them to status codes.
var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrConflict         = errors.New("conflict")
	ErrValidation       = errors.New("validation failed")
	ErrUnsupported      = errors.New("unsupported format")
)

// HTTPStatus maps a domain error to the client-visible status code.
// Unrecognized errors map to 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnsupported):
		return http.StatusUnsupportedMediaType
	}
	return http.StatusInternalServerError
}

// Translate converts persistence-layer errors into domain errors, so a
// constraint violation raced past a check-then-insert still surfaces as
// Conflict and a missing row as NotFound.
func Translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	}
	return err
}
