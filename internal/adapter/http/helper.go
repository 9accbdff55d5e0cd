package http

import (
	"errors"
	"net/http"
	"strings"

	domain "prestamist-backend/internal/domain/loan"
)

// ---- helpers ----

// statusFor maps domain failures onto HTTP codes: unknown loan 404,
// illegal edge 409, wrong actor 403, bad draft 400.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidDraft):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
