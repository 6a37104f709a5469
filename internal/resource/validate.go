package resource

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldError is a single inline validation message.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError is returned before any request is issued when input
// fails validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("invalid %s: %s", e.Fields[0].Field, e.Fields[0].Message)
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Message returns the message for field, or "" if it passed.
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		// Money fields validate as numbers: `validate:"gt=0"` on a decimal.
		validate.RegisterCustomTypeFunc(func(v reflect.Value) any {
			d, ok := v.Interface().(decimal.Decimal)
			if !ok {
				return nil
			}
			f, _ := d.Float64()
			return f
		}, decimal.Decimal{})
	})
	return validate
}

// Validate checks input's `validate` struct tags. Failures come back as
// *ValidationError with one entry per failing field, keyed by json name.
// A nil input passes.
func Validate(input any) error {
	if input == nil {
		return nil
	}
	err := validatorInstance().Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate input: %w", err)
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

// selfValidator is implemented by inputs with checks struct tags cannot
// express.
type selfValidator interface {
	Validate() error
}

func validateInput(input any) error {
	if err := Validate(input); err != nil {
		return err
	}
	if v, ok := input.(selfValidator); ok {
		return v.Validate()
	}
	return nil
}

// Required returns a single-field ValidationError if value is blank.
func Required(field, value string) error {
	if strings.TrimSpace(value) != "" {
		return nil
	}
	return &ValidationError{Fields: []FieldError{{Field: field, Message: "This field is required"}}}
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_without":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "len":
		return "Must be exactly " + e.Param() + " characters"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	case "gt":
		return "Must be greater than " + e.Param()
	case "lt":
		return "Must be less than " + e.Param()
	case "url":
		return "Invalid URL format"
	case "numeric":
		return "Must be numeric"
	case "eqfield":
		return "Must match " + e.Param()
	default:
		return "Invalid value"
	}
}
