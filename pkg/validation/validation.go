package validation

import (
	"fmt"
	"reflect"
	"strings"

	pkgerrors "github.com/angelmondragon/procureflow-backend/pkg/errors"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

// Struct runs the struct tags and converts failures into a VALIDATION_ERROR
// whose details map json field names to messages.
func Struct(value any) error {
	if err := validate.Struct(value); err != nil {
		return FromValidator(err)
	}
	return nil
}

// FromValidator converts validator output into a typed validation error.
func FromValidator(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := make(map[string]string, len(errs))
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = Message(fieldErr)
		}
		return pkgerrors.Validation("validation failed", details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

// Fields accumulates manual per-field checks that struct tags cannot express.
type Fields map[string]string

func (f Fields) Add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

// Merge folds a validation error produced by Struct into f. Other errors are returned unchanged.
func (f Fields) Merge(err error) error {
	if err == nil {
		return nil
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		return err
	}
	if details, ok := typed.Details().(map[string]string); ok {
		for field, message := range details {
			f.Add(field, message)
		}
		return nil
	}
	return err
}

// Err returns nil when no field failed.
func (f Fields) Err(message string) error {
	if len(f) == 0 {
		return nil
	}
	return pkgerrors.Validation(message, f)
}

func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "dive":
		return "contains an invalid entry"
	}
	return "is invalid"
}
