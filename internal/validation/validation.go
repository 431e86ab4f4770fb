// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or date formats) defined in struct tags
// and extracts validation errors into a format the client can
// understand
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the only date format accepted in requests and stored in the database.
const DateLayout = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their request parameter name ("itemName") instead of
	// the Go field name ("ItemName").
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(optionalIntValue, OptionalInt{})
	v.RegisterCustomTypeFunc(optionalBoolValue, OptionalBool{})

	return v
}

// Struct validates s against its `validate` tags using the shared validator.
func Struct(s interface{}) error {
	return validate.Struct(s)
}
