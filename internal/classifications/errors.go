package classifications

import (
	"errors"
	"net/http"

	"github.com/cdillerud/docsync/internal/documents"
)

// Domain errors for classification operations.
var (
	ErrNotFound       = errors.New("classification record not found")
	ErrDuplicate      = errors.New("classification record already exists")
	ErrNotEligible    = errors.New("document not eligible for ai classification")
	ErrInvalidCommand = errors.New("invalid classification command")
)

// MapHTTPStatus maps classification domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrNotEligible) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidCommand) {
		return http.StatusBadRequest
	}
	if errors.Is(err, documents.ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, documents.ErrRevisionConflict) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
