package meta

import (
	"sync/atomic"

	"github.com/coregx/coreglob/literal"
	"github.com/coregx/coreglob/nfa"
	"github.com/coregx/coreglob/prefilter"
	"github.com/coregx/coreglob/syntax"
)

// Engine is the meta-engine that orchestrates all glob execution strategies.
//
// The Engine:
//  1. Parses and compiles the pattern
//  2. Extracts literals and selects the strategy
//  3. Builds prefilters (if literals are available)
//  4. Coordinates search across engines
//
// Thread safety: Multiple goroutines can safely call search methods on the
// same Engine. The NFA, engines and prefilters are immutable after
// compilation; per-search mutable state comes from a sync.Pool and the
// statistics are updated atomically.
//
// Example:
//
//	engine, err := meta.Compile("f(*)")
//	if err != nil {
//	    return err
//	}
//	match := engine.Find([]byte("g(x) f(y)"))
//	if match != nil {
//	    println(match.String()) // "f(y)"
//	}
type Engine struct {
	// Statistics (useful for debugging and tuning)
	// IMPORTANT: stats MUST be first field for proper 8-byte alignment on 32-bit platforms.
	// This ensures atomic operations on uint64 fields work correctly.
	stats Stats

	parts  syntax.Parts
	nfa    *nfa.NFA
	config Config

	strategy Strategy

	// minLen is the shortest possible match in bytes
	minLen int

	prefilter          prefilter.Prefilter
	required           *prefilter.RequiredSet
	boundedBacktracker *nfa.BoundedBacktracker
	pikevm             *nfa.PikeVM

	// statePool provides thread-safe pooling of per-search mutable state.
	statePool *searchStatePool
}

// Stats tracks execution statistics for performance analysis.
type Stats struct {
	// LiteralSearches counts searches answered by substring search alone
	LiteralSearches uint64

	// BacktrackSearches counts BoundedBacktracker searches
	BacktrackSearches uint64

	// NFASearches counts PikeVM searches
	NFASearches uint64

	// PrefilterRejects counts searches ended because the prefix never occurs
	PrefilterRejects uint64

	// RequiredSetRejects counts searches ended because a literal run is missing
	RequiredSetRejects uint64

	// ShortInputRejects counts inputs shorter than the shortest possible match
	ShortInputRejects uint64
}

// Compile compiles a glob pattern with the default configuration.
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles a glob pattern with a custom configuration.
//
// Returns a *ConfigError for an invalid configuration and an
// *nfa.CompileError wrapping nfa.ErrAdjacentWildcards for two '*' with
// nothing between them.
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	var flags syntax.Flags
	if config.EscapeAny {
		flags |= syntax.EscapeAny
	}
	return CompileParts(syntax.ParseWithFlags(pattern, flags), config)
}

// CompileParts builds an engine from an already parsed pattern.
func CompileParts(parts syntax.Parts, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	n, err := nfa.Compile(parts)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		parts:    parts,
		nfa:      n,
		config:   config,
		strategy: SelectStrategy(parts, config),
		minLen:   literal.MinMatchLen(parts),
	}

	// Under UseLiteral the prefilter is complete and answers the whole
	// search, so it is built even with EnablePrefilter off. A forced engine
	// on an exact pattern still verifies every candidate.
	prefix := literal.ExtractPrefix(parts)
	prefix.Complete = e.strategy == UseLiteral
	if len(prefix.Bytes) > 0 && (config.EnablePrefilter || prefix.Complete) {
		e.prefilter = prefilter.NewBuilder(literal.NewSeq(prefix)).Build()
	}

	if config.EnableRequiredSet && e.strategy != UseLiteral {
		if runs := literal.ExtractRuns(parts); runs.Len() >= 2 {
			// A construction failure only costs the optimization.
			if rs, err := prefilter.NewRequiredSet(runs); err == nil {
				e.required = rs
			}
		}
	}

	e.boundedBacktracker = nfa.NewBoundedBacktracker(n)
	e.boundedBacktracker.SetMaxVisitedSize(config.MaxBacktrackBits)
	e.pikevm = nfa.NewPikeVM(n)
	if e.prefilter != nil && !e.prefilter.IsComplete() {
		e.boundedBacktracker.SetPrefilter(e.prefilter)
		e.pikevm.SetPrefilter(e.prefilter)
	}
	e.statePool = newSearchStatePool(e.pikevm)

	return e, nil
}

// Strategy returns the execution strategy selected for this engine.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Parts returns the parsed pattern.
func (e *Engine) Parts() syntax.Parts {
	return e.parts
}

// NumCaptures returns the number of capture groups in the pattern.
// Group 0 is the entire match, groups 1+ are the wildcards.
func (e *Engine) NumCaptures() int {
	return e.nfa.CaptureCount()
}

// HasPrefilter reports whether a leading-literal prefilter is in use.
func (e *Engine) HasPrefilter() bool {
	return e.prefilter != nil
}

// HasRequiredSet reports whether the required-literal check is in use.
func (e *Engine) HasRequiredSet() bool {
	return e.required != nil
}

// Stats returns a snapshot of the execution statistics.
//
// Example:
//
//	stats := engine.Stats()
//	println("NFA searches:", stats.NFASearches)
func (e *Engine) Stats() Stats {
	return Stats{
		LiteralSearches:    atomic.LoadUint64(&e.stats.LiteralSearches),
		BacktrackSearches:  atomic.LoadUint64(&e.stats.BacktrackSearches),
		NFASearches:        atomic.LoadUint64(&e.stats.NFASearches),
		PrefilterRejects:   atomic.LoadUint64(&e.stats.PrefilterRejects),
		RequiredSetRejects: atomic.LoadUint64(&e.stats.RequiredSetRejects),
		ShortInputRejects:  atomic.LoadUint64(&e.stats.ShortInputRejects),
	}
}

// ResetStats resets execution statistics to zero.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.LiteralSearches, 0)
	atomic.StoreUint64(&e.stats.BacktrackSearches, 0)
	atomic.StoreUint64(&e.stats.NFASearches, 0)
	atomic.StoreUint64(&e.stats.PrefilterRejects, 0)
	atomic.StoreUint64(&e.stats.RequiredSetRejects, 0)
	atomic.StoreUint64(&e.stats.ShortInputRejects, 0)
}
