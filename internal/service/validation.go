package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// loginFieldErrors converts validator output on the login form into the
// aggregated FieldError shape, with messages fit for rendering.
func loginFieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "form", Message: "invalid submission"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "email":
			out = append(out, FieldError{Field: field, Message: "must be a valid email address"})
		default:
			out = append(out, FieldError{Field: field, Message: "is invalid"})
		}
	}
	return out
}

// NormalizeStatus uppercases a form-submitted status so the API sees the
// canonical spelling.
func NormalizeStatus(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
