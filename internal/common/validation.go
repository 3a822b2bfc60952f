package common

import "strings"

// FieldError describes a single rejected input field.
type FieldError struct {
	Param string `json:"param"`
	Msg   string `json:"msg"`
	Value any    `json:"value"`
}

// ValidationError collects every field problem found in one request.
// Match it with errors.As.
type ValidationError struct {
	Details []FieldError
}

// NewValidationError builds a ValidationError from a single field problem.
func NewValidationError(param, msg string, value any) *ValidationError {
	return &ValidationError{Details: []FieldError{{Param: param, Msg: msg, Value: value}}}
}

// Add appends a field problem.
func (e *ValidationError) Add(param, msg string, value any) {
	e.Details = append(e.Details, FieldError{Param: param, Msg: msg, Value: value})
}

// HasErrors reports whether any field problem was recorded.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Details) > 0
}

// OrNil returns e when it holds field problems and nil otherwise, so callers
// can write `return v.OrNil()` without tripping over typed-nil interfaces.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	if !e.HasErrors() {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		msgs = append(msgs, d.Param+": "+d.Msg)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
