package manifest

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is matched by any manifest that is not well-formed TOML or
	// whose fields have the wrong type.
	ErrFormat = errors.New("manifest: invalid format")
	// ErrRequiredFieldMissing is matched by a manifest lacking name,
	// scripts.health_check or scripts.start.
	ErrRequiredFieldMissing = errors.New("manifest: required field missing")
	// ErrUnbalancedBraces is matched when a '{' placeholder is never closed.
	ErrUnbalancedBraces = errors.New("manifest: unbalanced braces")
)

// FormatError wraps the TOML decoder failure.
type FormatError struct {
	Line   int
	Column int
	Err    error
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("manifest format error at line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("manifest format error: %v", e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// FieldError reports a required field that is absent or empty.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("manifest: required field %q is missing", e.Field)
}

func (e *FieldError) Unwrap() error { return ErrRequiredFieldMissing }

// SyntaxError points at the '{' that has no matching '}'.
// Line and Column are 1-based, Column counts characters.
type SyntaxError struct {
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("manifest: unbalanced braces, '{' at line %d, column %d is never closed", e.Line, e.Column)
}

func (e *SyntaxError) Unwrap() error { return ErrUnbalancedBraces }
