package multimedia

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single constraint violation on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag"`
}

// ValidationErrors is the recoverable failure returned by the create and
// update operations. Storage is never touched when it is returned; callers
// branch on it with errors.As and re-render input with the field messages.
type ValidationErrors []FieldError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

// ByField groups the messages by field name.
func (v ValidationErrors) ByField() map[string][]string {
	fields := make(map[string][]string, len(v))
	for _, err := range v {
		fields[err.Field] = append(fields[err.Field], err.Message)
	}
	return fields
}

// Validator checks input DTOs against their struct-tag rules and reports
// failures as ValidationErrors keyed by the field's json name.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator instance
func NewValidator() *Validator {
	v := validator.New()

	// Report fields by their json tag, matching what callers sent
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Validate checks in against its validation tags. It returns nil when the
// input is valid.
func (v *Validator) Validate(in interface{}) ValidationErrors {
	err := v.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs ValidationErrors
	for _, fe := range err.(validator.ValidationErrors) {
		verrs = append(verrs, FieldError{
			Field:   fe.Field(),
			Message: msgForTag(fe),
			Tag:     fe.Tag(),
		})
	}

	return verrs
}

// msgForTag returns a human-readable error message for a validation tag
func msgForTag(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s can't be blank", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
