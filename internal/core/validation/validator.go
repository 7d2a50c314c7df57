// Package validation wraps go-playground/validator so every invalid field of
// an input is reported at once, keyed by its JSON name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/99minutos/marketplace-system/internal/core/domain"
)

// Validator validates tagged structs. It also satisfies echo.Validator.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator that names fields after their json tag.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("validation: register notblank: %v", err))
	}
	return &Validator{v: v}
}

// Struct validates i. Field failures come back as *domain.ValidationError.
func (val *Validator) Struct(i any) error {
	err := val.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	fields := domain.FieldErrors{}
	for _, fe := range ve {
		fields.Add(fe.Field(), fieldError(fe))
	}
	return &domain.ValidationError{Fields: fields}
}

// Validate satisfies the echo.Validator interface.
func (val *Validator) Validate(i any) error {
	return val.Struct(i)
}

// fieldError converts a single FieldError into the message clients see.
func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return domain.MsgRequired
	case "notblank":
		return "This field may not be blank."
	case "email":
		return "Enter a valid email address."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "uuid":
		return fmt.Sprintf("%q is not a valid UUID.", fe.Value())
	default:
		return fmt.Sprintf("Invalid value (%s).", fe.Tag())
	}
}
