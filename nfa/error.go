// Package nfa provides a Thompson NFA for glob patterns together with two
// execution engines: a bounded backtracker for small inputs and a PikeVM
// that handles inputs of any size.
//
// The NFA is compiled from syntax.Parts. Every wildcard becomes a capture
// group, so both engines report the text each wildcard consumed.
package nfa

import (
	"errors"
	"fmt"
)

// Common NFA errors
var (
	// ErrAdjacentWildcards indicates two AnySequence parts with nothing between them
	ErrAdjacentWildcards = errors.New("adjacent '*' wildcards with nothing between them")
)

// CompileError wraps compilation errors with additional context
type CompileError struct {
	// Index is the position of the offending part in the parsed pattern
	Index int

	// Offset is the byte offset of the offending part in the pattern text
	Offset int

	Err error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	return fmt.Sprintf("NFA compilation failed at offset %d: %v", e.Offset, e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// BuildError represents an error during NFA construction via the Builder API
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("NFA build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("NFA build error: %s", e.Message)
}
