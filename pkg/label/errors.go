package label

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by ParseError.
var (
	ErrSymbolNotFound = errors.New("symbol not found")
	ErrInvalidNumber  = errors.New("invalid number")
	ErrInvalidBoolean = errors.New("invalid boolean")
	ErrNotUndefined   = errors.New("field must be xx")
)

// ParseError represents a label parsing error with its byte offset.
type ParseError struct {
	Offset  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("label parse error at offset %d: %s", e.Offset, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
