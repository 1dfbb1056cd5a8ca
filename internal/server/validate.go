package server

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"petcare15/pkg/types"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	_ = v.RegisterValidation("nodigits", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), unicode.IsDigit)
	})

	return v
}

// validateStruct runs the struct's validate tags and turns the first failure
// into a readable ValidationError.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("failed to validate request: %w", err)
	}

	fe := fieldErrs[0]
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return types.NewValidationError("%s is required", field)
	case "nodigits":
		return types.NewValidationError("%s cannot contain numbers", field)
	case "email":
		return types.NewValidationError("%s must be a valid email address", field)
	case "url":
		return types.NewValidationError("%s must be a valid URL", field)
	case "gte":
		return types.NewValidationError("%s must be a valid number", field)
	case "max":
		return types.NewValidationError("%s allows at most %s entries", field, fe.Param())
	default:
		return types.NewValidationError("%s is invalid", field)
	}
}
