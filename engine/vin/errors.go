package vin

import (
	"errors"
	"fmt"
)

// Sentinel errors for decode failures.
var (
	ErrInvalidLength       = errors.New("invalid VIN length")
	ErrUnknownManufacturer = errors.New("unknown manufacturer")
)

// DecodeError wraps a sentinel with the offending field and value.
type DecodeError struct {
	Field   string
	Value   string
	Wrapped error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode: %s: %s (value=%q)", e.Wrapped, e.Field, e.Value)
}

func (e *DecodeError) Unwrap() error { return e.Wrapped }

// NewDecodeError creates a DecodeError.
func NewDecodeError(field, value string, wrapped error) *DecodeError {
	return &DecodeError{Field: field, Value: value, Wrapped: wrapped}
}

// Code returns a stable machine-readable code for err, or "" if err is not a
// decode failure.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInvalidLength):
		return "invalid_length"
	case errors.Is(err, ErrUnknownManufacturer):
		return "unknown_manufacturer"
	default:
		return ""
	}
}
