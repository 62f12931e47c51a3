package meta

import (
	"unicode/utf8"

	"github.com/coregx/coreglob/literal"
	"github.com/coregx/coreglob/syntax"
)

// Strategy represents the execution strategy for glob matching.
//
// The meta-engine chooses between:
//   - UseLiteral: substring search, for patterns without wildcards
//   - UseBoundedBacktracker: backtracking when the visited table fits,
//     PikeVM otherwise
//   - UseNFA: PikeVM only
//
// Strategy selection is automatic unless Config.Engine forces one.
type Strategy int

const (
	// UseNFA uses only the NFA (PikeVM) engine.
	// Selected when Config.Engine is EnginePikeVM.
	UseNFA Strategy = iota

	// UseBoundedBacktracker uses the BoundedBacktracker for inputs whose
	// visited table fits Config.MaxBacktrackBits and the PikeVM for the rest.
	// Selected for every pattern with wildcards by default.
	UseBoundedBacktracker

	// UseLiteral finds the pattern with its complete prefilter, no automaton
	// involved. Selected for non-empty patterns without wildcards whose text
	// is valid UTF-8, so every occurrence starts and ends on character
	// boundaries.
	UseLiteral
)

// String returns a human-readable representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case UseNFA:
		return "UseNFA"
	case UseBoundedBacktracker:
		return "UseBoundedBacktracker"
	case UseLiteral:
		return "UseLiteral"
	default:
		return "Unknown"
	}
}

// SelectStrategy picks the strategy for a parsed pattern.
func SelectStrategy(parts syntax.Parts, config Config) Strategy {
	switch config.Engine {
	case EnginePikeVM:
		return UseNFA
	case EngineBacktrack:
		return UseBoundedBacktracker
	}

	if literal.IsExact(parts) {
		prefix := literal.ExtractPrefix(parts)
		if len(prefix.Bytes) > 0 && utf8.Valid(prefix.Bytes) {
			return UseLiteral
		}
	}
	return UseBoundedBacktracker
}
