package http

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	domain "prestamist-backend/internal/domain/loan"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// currency must be one of the closed set the ledger understands
	_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return domain.Currency(fl.Field().String()).Valid()
	})
	// the creator's side of the loan
	_ = v.RegisterValidation("loanrole", func(fl validator.FieldLevel) bool {
		return domain.Role(fl.Field().String()).Valid()
	})
	// a lifecycle status name
	_ = v.RegisterValidation("loanstatus", func(fl validator.FieldLevel) bool {
		return domain.Status(fl.Field().String()).Valid()
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "email":
			msg = "must be a valid email"
		case "gt":
			msg = fmt.Sprintf("must be greater than %s", fe.Param())
		case "currency":
			msg = "must be one of USD, EUR, PEN, MXN, COP"
		case "loanrole":
			msg = "must be LENDER or BORROWER"
		case "loanstatus":
			msg = "is not a known loan status"
		default:
			msg = fmt.Sprintf("failed on rule %q", fe.Tag())
		}
		out = append(out, FieldError{Field: field, Message: msg})
	}
	return out
}
