package http

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"fintrack/internal/core"
)

const errFormat = "invalid input: %s"

var (
	validate = newValidator()
	nonBlank = regexp.MustCompile(`\S`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json field names, not Go ones
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return nonBlank.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("expense_category", func(fl validator.FieldLevel) bool {
		return core.ExpenseCategory(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("recurring_frequency", func(fl validator.FieldLevel) bool {
		return core.RecurringFrequency(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("compounding_frequency", func(fl validator.FieldLevel) bool {
		return core.CompoundingFrequency(fl.Field().String()).Valid()
	})
	return v
}

// validateStruct runs the struct tags and flattens the failures into one message.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf(errFormat, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fieldErrorToString(e))
	}
	return fmt.Errorf(errFormat, strings.Join(msgs, "; "))
}

func fieldErrorToString(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", field)
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "expense_category":
		return fmt.Sprintf("%s is not a known expense category", field)
	case "recurring_frequency":
		return fmt.Sprintf("%s must be daily, weekly, monthly or yearly", field)
	case "compounding_frequency":
		return fmt.Sprintf("%s must be daily, monthly, quarterly, semiannually or annually", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
