package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrDecodeFailure    = errors.New("decode failure")
	ErrWriteFailure     = errors.New("write failure")
	ErrNameCollision    = errors.New("output name collision")
)

// ParameterError reports a descriptor whose parameters violate their domain.
// Index is the descriptor's position in the chain, or -1 when the parameters
// were validated outside of a chain.
type ParameterError struct {
	Index      int
	Kind       TransformKind
	Field      string
	Value      interface{}
	Constraint string
}

// NewParameterError creates a parameter error not yet attached to a chain position
func NewParameterError(kind TransformKind, field string, value interface{}, constraint string) *ParameterError {
	return &ParameterError{
		Index:      -1,
		Kind:       kind,
		Field:      field,
		Value:      value,
		Constraint: constraint,
	}
}

func (pe *ParameterError) Error() string {
	var b strings.Builder
	if pe.Index >= 0 {
		fmt.Fprintf(&b, "filter %d ", pe.Index)
	}
	fmt.Fprintf(&b, "%s: parameter '%s' with value '%v' violates %s", pe.Kind, pe.Field, pe.Value, pe.Constraint)
	return b.String()
}

func (pe *ParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// DecodeError reports a source file that could not be decoded into an image.
type DecodeError struct {
	ID   string
	Path string
	Err  error
}

func (de *DecodeError) Error() string {
	return fmt.Sprintf("decode %s (%s): %v", de.ID, de.Path, de.Err)
}

func (de *DecodeError) Unwrap() error {
	return de.Err
}

func (de *DecodeError) Is(target error) bool {
	return target == ErrDecodeFailure
}

// WriteError reports an export that stopped at Path. Succeeded lists the
// identifiers whose output was fully written before the failure.
type WriteError struct {
	ID        string
	Path      string
	Succeeded []string
	Err       error
}

func (we *WriteError) Error() string {
	if we.ID == "" {
		return fmt.Sprintf("write %s: %v", we.Path, we.Err)
	}
	return fmt.Sprintf("write %s for %s (%d already written): %v", we.Path, we.ID, len(we.Succeeded), we.Err)
}

func (we *WriteError) Unwrap() error {
	return we.Err
}

func (we *WriteError) Is(target error) bool {
	return target == ErrWriteFailure
}
