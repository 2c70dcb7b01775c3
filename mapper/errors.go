package mapper

import (
	"errors"
	"strings"
)

var (
	// ErrResourceUnavailable is returned when a URL resource cannot be fetched.
	ErrResourceUnavailable = errors.New("resource unavailable")
	// ErrInvalidPolicy is returned when a generator policy cannot be loaded.
	ErrInvalidPolicy = errors.New("invalid generator policy")
)

// ParseError reports a source document that could not be parsed.
type ParseError struct {
	Identifier string // literal content or URL
	Err        error
}

func (e *ParseError) Error() string {
	return "Unable to parse " + e.Identifier
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError carries the problems reported for a mapping definition.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid mapping definition: " + strings.Join(e.Errors, "; ")
}
