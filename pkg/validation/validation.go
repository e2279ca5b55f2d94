// Package validation wraps go-playground/validator and converts its errors
// into domain errors with readable messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "onsightnow/pkg/domain-errors"
	s "onsightnow/pkg/string"
)

var defaultValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	// Report fields under the name they arrive by: the environment variable
	// for configuration structs, the JSON key for request bodies.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"env", "json"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return ""
	})
	return v
}

// Validate validates a struct using the default validator and returns a domain error
func Validate(req any) error {
	return ValidateAs(req, dErrors.CodeValidation)
}

// ValidateAs is Validate with a caller-chosen error code.
func ValidateAs(req any, code dErrors.Code) error {
	if err := defaultValidator.Struct(req); err != nil {
		return dErrors.New(code, ErrorMessage(err))
	}
	return nil
}

// IsEmail reports whether addr is a syntactically valid email address.
func IsEmail(addr string) bool {
	return defaultValidator.Var(addr, "required,email") == nil
}

// ErrorMessage converts a validator error into a human-readable message
func ErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "invalid request body"
	}

	fe := validationErrs[0]
	field := fe.Field()
	if field == "" {
		field = s.ToSnakeCase(fe.StructField())
	} else if !strings.Contains(field, "_") {
		field = s.ToSnakeCase(field)
	}

	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "url":
		return fmt.Sprintf("%s must be a valid url", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid uuid", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	default:
		if field == "" {
			return "invalid request body"
		}
		return fmt.Sprintf("%s is invalid", field)
	}
}
