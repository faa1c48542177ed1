package content

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("content not found")
	ErrInvalid  = errors.New("invalid content")
)

// ValidationError carries the failed fields of a request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid fields: %v", e.Fields)
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }
