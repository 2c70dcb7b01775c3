package x3ml

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownGenerator is returned when a definition names a generator the policy lacks.
	ErrUnknownGenerator = errors.New("x3ml: unknown generator")
	// ErrMissingArgument is returned when a generator call lacks a required argument.
	ErrMissingArgument = errors.New("x3ml: missing generator argument")
	// ErrUndeclaredPrefix is returned for a prefixed name whose prefix is not declared.
	ErrUndeclaredPrefix = errors.New("x3ml: undeclared prefix")
	// ErrInvalidDefinition is returned by Load for a definition that cannot be decoded.
	ErrInvalidDefinition = errors.New("x3ml: invalid definition")
)

// Error reports a failure while executing a mapping.
type Error struct {
	Mapping int    // 0-based mapping index
	Link    int    // 0-based link index, -1 for the domain
	Node    string // source node path, if known
	Err     error
}

func (e *Error) Error() string {
	where := fmt.Sprintf("mapping %d", e.Mapping)
	if e.Link >= 0 {
		where += fmt.Sprintf(" link %d", e.Link)
	}
	if e.Node != "" {
		where += " at " + e.Node
	}
	return "x3ml: " + where + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }
