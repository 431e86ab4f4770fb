package validation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// OptionalInt is an integer request parameter that remembers whether it was sent.
//
// It binds from form values, query strings and JSON (numbers or numeric
// strings). Validation tags apply to the value only when Set is true, so
// `validate:"omitempty,min=0"` accepts an absent field and rejects -1.
type OptionalInt struct {
	Value int
	Set   bool
}

// NewOptionalInt returns a set OptionalInt.
func NewOptionalInt(v int) OptionalInt {
	return OptionalInt{Value: v, Set: true}
}

// UnmarshalParam implements echo.BindUnmarshaler.
func (o *OptionalInt) UnmarshalParam(param string) error {
	param = strings.TrimSpace(param)
	if param == "" {
		*o = OptionalInt{}
		return nil
	}

	v, err := strconv.Atoi(param)
	if err != nil {
		return fmt.Errorf("%q is not a valid integer", param)
	}

	*o = NewOptionalInt(v)
	return nil
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = OptionalInt{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return o.UnmarshalParam(s)
	}

	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%s is not a valid integer", string(data))
	}

	*o = NewOptionalInt(v)
	return nil
}

func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr returns nil when the value was not sent.
func (o OptionalInt) Ptr() *int {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}

// OptionalBool is a boolean request parameter that remembers whether it was sent.
//
// Accepted inputs are the strconv.ParseBool forms, which include 0 and 1.
type OptionalBool struct {
	Value bool
	Set   bool
}

// NewOptionalBool returns a set OptionalBool.
func NewOptionalBool(v bool) OptionalBool {
	return OptionalBool{Value: v, Set: true}
}

// UnmarshalParam implements echo.BindUnmarshaler.
func (o *OptionalBool) UnmarshalParam(param string) error {
	param = strings.TrimSpace(param)
	if param == "" {
		*o = OptionalBool{}
		return nil
	}

	v, err := strconv.ParseBool(param)
	if err != nil {
		return fmt.Errorf("%q is not a valid boolean", param)
	}

	*o = NewOptionalBool(v)
	return nil
}

func (o *OptionalBool) UnmarshalJSON(data []byte) error {
	switch raw := strings.TrimSpace(string(data)); raw {
	case "null":
		*o = OptionalBool{}
		return nil
	case "true", "false", "0", "1":
		return o.UnmarshalParam(raw)
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%s is not a valid boolean", string(data))
	}
	return o.UnmarshalParam(s)
}

func (o OptionalBool) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr returns nil when the value was not sent.
func (o OptionalBool) Ptr() *bool {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}

// optionalIntValue exposes an OptionalInt to the validator: a pointer to the
// value when set (so "required" accepts 0), a nil pointer otherwise.
func optionalIntValue(field reflect.Value) interface{} {
	o, ok := field.Interface().(OptionalInt)
	if !ok || !o.Set {
		return (*int)(nil)
	}
	return o.Ptr()
}

func optionalBoolValue(field reflect.Value) interface{} {
	o, ok := field.Interface().(OptionalBool)
	if !ok || !o.Set {
		return (*bool)(nil)
	}
	return o.Ptr()
}
