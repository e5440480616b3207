package common

import (
	"fmt"
	"strings"
)

// FieldError describes a single rejected request field.
type FieldError struct {
	Param    string `json:"param"`
	Msg      string `json:"msg"`
	Value    string `json:"value"`
	Location string `json:"location"`
}

// ValidationError carries every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Param, f.Msg))
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError for a single body field.
func NewValidationError(param, msg, value string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Param: param, Msg: msg, Value: value, Location: "body"}}}
}
