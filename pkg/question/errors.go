package question

import (
	"errors"
	"fmt"
)

// Position errors.
var (
	ErrPositionMismatch      = errors.New("position mismatch")
	ErrNoMatchingPosition    = errors.New("no matching position found")
	ErrMissingPrefixAsterisk = errors.New("the first character should be asterisk in this position")
	ErrMissingSuffixAsterisk = errors.New("the last character should be asterisk in this position")
	ErrPrefixVerify          = errors.New("prefix of the pattern does not match its position")
	ErrSuffixVerify          = errors.New("suffix of the pattern does not match its position")
	ErrEmptyRange            = errors.New("range is empty")
)

// Range errors.
var (
	ErrEmpty             = errors.New("the list was empty")
	ErrIncontinuousRange = errors.New("incontinuous range")
	ErrFailWildcard      = errors.New("failed wildcard")
	ErrFailLiteral       = errors.New("failed literal")
	ErrInvalidBoolean    = errors.New("invalid boolean")
)

var (
	errNegativeDecade  = errors.New("decade wildcard on a negative number")
	errAlwaysUndefined = errors.New("field is always xx")
)

// PatternError reports the pattern that failed to resolve to a position.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// NumberError reports a numeric text that could not be turned into a range.
// It matches ErrFailWildcard or ErrFailLiteral as well as the parse cause.
type NumberError struct {
	Text     string
	Wildcard bool
	Err      error
}

func (e *NumberError) Error() string {
	kind := "literal"
	if e.Wildcard {
		kind = "wildcard"
	}
	return fmt.Sprintf("failed %s %q: %v", kind, e.Text, e.Err)
}

func (e *NumberError) Unwrap() []error {
	if e.Wildcard {
		return []error{ErrFailWildcard, e.Err}
	}
	return []error{ErrFailLiteral, e.Err}
}

// BooleanError reports a boolean range that is not a single "0" or "1".
type BooleanError struct {
	Text string
}

func (e *BooleanError) Error() string {
	return fmt.Sprintf("invalid boolean %q", e.Text)
}

func (e *BooleanError) Is(target error) bool { return target == ErrInvalidBoolean }

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrPositionMismatch, "PositionMismatch"},
	{ErrNoMatchingPosition, "NoMatchingPosition"},
	{ErrMissingPrefixAsterisk, "MissingPrefixAsterisk"},
	{ErrMissingSuffixAsterisk, "MissingSuffixAsterisk"},
	{ErrPrefixVerify, "PrefixVerifyError"},
	{ErrSuffixVerify, "SuffixVerifyError"},
	{ErrEmptyRange, "EmptyRange"},
	{ErrEmpty, "Empty"},
	{ErrIncontinuousRange, "IncontinuousRange"},
	{ErrFailWildcard, "FailWildcard"},
	{ErrFailLiteral, "FailLiteral"},
	{ErrInvalidBoolean, "InvalidBoolean"},
}

// ErrorCode returns the stable name of the error kind carried by err,
// or "" when err is not a question error.
func ErrorCode(err error) string {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}
