package validation

import (
	"strconv"

	"github.com/spf13/cast"
)

// Input is the part of a request the rules look at.
type Input struct {
	Params map[string]string
	Body   map[string]any
}

// NewInput builds an Input, replacing nil maps with empty ones.
func NewInput(params map[string]string, body map[string]any) Input {
	if params == nil {
		params = map[string]string{}
	}
	if body == nil {
		body = map[string]any{}
	}
	return Input{Params: params, Body: body}
}

// Param returns a path parameter and whether it was set.
func (in Input) Param(name string) (string, bool) {
	v, ok := in.Params[name]
	return v, ok
}

// ParamInt returns a path parameter parsed as an integer.
func (in Input) ParamInt(name string) (int, error) {
	return strconv.Atoi(in.Params[name])
}

// Field returns a raw body field and whether it was present.
func (in Input) Field(name string) (any, bool) {
	v, ok := in.Body[name]
	return v, ok
}

// String returns a body field coerced to a string. Missing or
// non-scalar values become "".
func (in Input) String(name string) string {
	return fieldString(in.Body[name])
}

// Float returns a body field coerced to a float64.
func (in Input) Float(name string) (float64, error) {
	return cast.ToFloat64E(in.Body[name])
}

// Bool returns a body field coerced to a bool. ok is false when the
// field is absent or cannot be read as a boolean.
func (in Input) Bool(name string) (value bool, ok bool) {
	raw, present := in.Body[name]
	if !present || raw == nil {
		return false, false
	}
	b, err := cast.ToBoolE(raw)
	if err != nil {
		return false, false
	}
	return b, true
}

func fieldString(v any) string {
	if v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}
