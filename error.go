package coreglob

import (
	"fmt"

	"github.com/coregx/coreglob/nfa"
)

// ErrAdjacentWildcards indicates two '*' wildcards with nothing between them.
// There is no way to decide how much text each of them should consume.
var ErrAdjacentWildcards = nfa.ErrAdjacentWildcards

// PatternCreationError reports a pattern that cannot be compiled.
type PatternCreationError struct {
	// Pattern is the pattern text that failed
	Pattern string

	// Offset is the byte offset of the offending wildcard in Pattern
	Offset int

	Err error
}

// Error implements the error interface
func (e *PatternCreationError) Error() string {
	return fmt.Sprintf("invalid pattern %q at offset %d: %v", e.Pattern, e.Offset, e.Err)
}

// Unwrap returns the underlying error
func (e *PatternCreationError) Unwrap() error {
	return e.Err
}
