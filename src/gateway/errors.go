package gateway

import (
	"errors"
	"net/http"

	"github.com/dapplist/registry/src/registry"
)

// statusFor maps registry errors onto HTTP statuses
func statusFor(err error) int {
	var (
		validation      *registry.ValidationError
		conflict        *registry.ConflictError
		accessDenied    *registry.AccessDeniedError
		paymentRequired *registry.PaymentRequiredError
		immutableField  *registry.ImmutableFieldError
		notFound        *registry.NotFoundError
	)

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &immutableField):
		return http.StatusBadRequest
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &accessDenied):
		return http.StatusForbidden
	case errors.As(err, &paymentRequired):
		return http.StatusPaymentRequired
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
