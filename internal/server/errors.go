package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/vendor-insights/internal/analytics"
	"github.com/jonathan/vendor-insights/internal/faq"
	"github.com/jonathan/vendor-insights/internal/session"
)

// ErrVendorNotFound indicates a vendor id that is not in the dataset
type ErrVendorNotFound struct {
	VendorID string
}

func (e *ErrVendorNotFound) Error() string {
	return fmt.Sprintf("vendor not found: %s", e.VendorID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		unknownPeriod *analytics.ErrUnknownPeriod
		unknownTab    *analytics.ErrUnknownTab
		invalid       *ErrValidation
		faqInvalid    *faq.ValidationError
		notFound      *ErrVendorNotFound
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &unknownPeriod), errors.As(err, &unknownTab),
		errors.As(err, &invalid), errors.As(err, &faqInvalid):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrInvalidCredentials), errors.Is(err, session.ErrSessionRevoked):
		return http.StatusUnauthorized
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
