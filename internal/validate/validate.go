// Package validate performs client-side input validation so obviously bad
// payloads are rejected before any network call is made. Failures are
// reported in the same normalized shape server-side validation errors use.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kurakampus/kurakampus-cli/internal/apierr"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates a tagged struct and returns a CodeValidation *apierr.Error
// carrying one field error per failed rule, or nil.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apierr.New(err.Error(), apierr.CodeValidation, 0)
	}

	norm := apierr.New("Validation failed. Please check your input.", apierr.CodeValidation, 0)
	for _, fe := range verrs {
		norm.Errors = append(norm.Errors, apierr.FieldError{
			Field:      fieldName(fe),
			Message:    messageFor(fe),
			Constraint: fe.Tag(),
		})
	}
	return norm
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Please enter a valid email address"
	case "min":
		return fmt.Sprintf("Minimum length is %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Maximum length is %s characters", fe.Param())
	case "eqfield":
		return "Fields do not match"
	case "gte":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("Failed validation rule %q", fe.Tag())
	}
}
