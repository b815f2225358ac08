package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/recordbook/internal/core/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json names so messages match the persisted document.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateField checks a field definition on its own.
func validateField(f domain.FieldDefinition) error {
	if err := validate.Struct(f); err != nil {
		return formatValidationError(err)
	}
	if f.Type == domain.FieldSelect && len(f.Options) == 0 {
		return &domain.ValidationError{Field: "options", Message: "select fields need at least one option"}
	}
	return nil
}

// formatValidationError reports the first failing tag as a ValidationError.
func formatValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return &domain.ValidationError{Message: err.Error()}
	}
	e := errs[0]
	field := e.Field()
	switch e.Tag() {
	case "required":
		return &domain.ValidationError{Field: field, Message: "is required"}
	case "oneof":
		return &domain.ValidationError{Field: field, Message: fmt.Sprintf("must be one of: %s", e.Param())}
	default:
		return &domain.ValidationError{Field: field, Message: "is invalid"}
	}
}
