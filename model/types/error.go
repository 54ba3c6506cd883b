package types

import (
	"fmt"
)

// NotFoundError reports a call against a name with no registration.
type NotFoundError struct {
	Name string
}

// NewNotFoundError creates a not found error
func NewNotFoundError(name string) *NotFoundError {
	return &NotFoundError{Name: name}
}

// Error implements error
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("function %q not found", e.Name)
}

// ArgumentMismatchError reports arguments that do not fit the registered
// signature, either in count or in type. Index identifies the offending
// argument position; arity mismatches use -1.
type ArgumentMismatchError struct {
	Name  string
	Index int
	Err   error
}

// NewArgumentMismatchError creates an argument mismatch error for the
// given argument position
func NewArgumentMismatchError(name string, index int, err error) *ArgumentMismatchError {
	return &ArgumentMismatchError{Name: name, Index: index, Err: err}
}

// NewArityError creates an argument mismatch error for a wrong argument count
func NewArityError(name string, want, got int) *ArgumentMismatchError {
	return &ArgumentMismatchError{Name: name, Index: -1, Err: fmt.Errorf("expected %d argument(s), got %d", want, got)}
}

// Error implements error
func (e *ArgumentMismatchError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("function %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("function %q argument %d: %v", e.Name, e.Index, e.Err)
}

// Unwrap returns the underlying mismatch
func (e *ArgumentMismatchError) Unwrap() error {
	return e.Err
}

// NewMethodNotFoundError creates an error for an unknown action method
func NewMethodNotFoundError(name string) error {
	return fmt.Errorf("method %v not found", name)
}

// NewInvalidInputError creates an error for an unexpected action input type
func NewInvalidInputError(in interface{}) error {
	return fmt.Errorf("invalid input %T", in)
}

// NewInvalidOutputError creates an error for an unexpected action output type
func NewInvalidOutputError(in interface{}) error {
	return fmt.Errorf("invalid output %T", in)
}

// TypeMismatchError reports a result that could not be extracted as the
// type the caller requested. The call itself has already happened.
type TypeMismatchError struct {
	Name string
	Err  error
}

// NewTypeMismatchError creates a result type mismatch error
func NewTypeMismatchError(name string, err error) *TypeMismatchError {
	return &TypeMismatchError{Name: name, Err: err}
}

// Error implements error
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("function %q result: %v", e.Name, e.Err)
}

// Unwrap returns the underlying mismatch
func (e *TypeMismatchError) Unwrap() error {
	return e.Err
}
