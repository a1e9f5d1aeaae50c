package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks malformed product records and malformed feeds.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFeedNotFound indicates that no observation feed exists for a product.
	ErrFeedNotFound = errors.New("feed not found")
)

// InputError describes a configuration or input problem for one product.
// It matches ErrInvalidInput with errors.Is.
type InputError struct {
	// Product is the product whose input is broken.
	Product string
	// Source is the file or object the input was read from.
	Source string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *InputError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("invalid input for %s: %v", e.Product, e.Err)
	}
	return fmt.Sprintf("invalid input for %s (%s): %v", e.Product, e.Source, e.Err)
}

// Unwrap returns the underlying cause.
func (e *InputError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInputError creates a new InputError.
func NewInputError(product, source string, err error) *InputError {
	return &InputError{Product: product, Source: source, Err: err}
}
