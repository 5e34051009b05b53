package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/clothstore/storefront/internal/catalog/app"
)

// httpStatusFromErr maps domain errors onto HTTP status codes. Anything
// unrecognized is hidden behind a generic 500 message.
func httpStatusFromErr(err error) (int, string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, app.ErrNotFound):
		return http.StatusNotFound, "product not found"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "catalog store timed out"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
