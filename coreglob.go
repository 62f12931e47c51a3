// Package coreglob provides a fast glob-style pattern matcher for text.
//
// The pattern language has three constructs:
//   - '.' matches exactly one character
//   - '*' matches zero or more characters, but never '(', ')' or ';'
//   - every other character matches itself
//
// A backslash escapes '*', '.' and '\'. Before any other character, or at the
// end of the pattern, a backslash is an ordinary character.
//
// Basic usage:
//
//	// Compile a pattern
//	p, err := coreglob.Compile("(define (*) *)")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Find the leftmost match
//	m := p.FirstMatch("(let x) (define (sq) y)")
//	fmt.Println(m.BeginByteIndex, m.EndByteIndex, m.Groups) // 8 23 [sq y]
//
// Every '*' and '.' in the pattern is a group: the match reports the text
// each of them consumed, in pattern order.
//
// Performance characteristics:
//   - Patterns without wildcards: a single SIMD-accelerated substring search
//   - Patterns with a literal prefix: candidate starts found by memchr/memmem
//   - Inputs missing any literal run of the pattern: rejected by one
//     Aho-Corasick pass
//   - Worst case: O(pattern × input) time, no exponential blowup
package coreglob

import (
	"errors"

	"github.com/coregx/coreglob/meta"
	"github.com/coregx/coreglob/nfa"
	"github.com/coregx/coreglob/syntax"
)

// Pattern is a compiled glob pattern.
//
// A Pattern is safe to use concurrently from multiple goroutines. The only
// mutable state is the atomic statistics counters.
//
// Example:
//
//	p := coreglob.MustCompile("f(*)")
//	if p.MatchString("g(x) f(y)") {
//	    println("matched!")
//	}
type Pattern struct {
	engine  *meta.Engine
	pattern string
}

// Config controls compilation and strategy selection.
type Config = meta.Config

// Stats reports how searches were executed.
type Stats = meta.Stats

// Compile compiles a glob pattern.
//
// The only pattern error is two '*' wildcards with nothing between them,
// reported as a *PatternCreationError wrapping ErrAdjacentWildcards.
//
// Example:
//
//	p, err := coreglob.Compile("a*b.c")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Pattern, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a glob pattern and panics if it fails.
//
// Example:
//
//	var defineForm = coreglob.MustCompile("(define (*) *)")
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic("coreglob: Compile(`" + pattern + "`): " + err.Error())
	}
	return p
}

// CompileWithConfig compiles a pattern with a custom configuration.
//
// Example:
//
//	config := coreglob.DefaultConfig()
//	config.EnableRequiredSet = false
//	p, err := coreglob.CompileWithConfig("f(*, *)", config)
func CompileWithConfig(pattern string, config Config) (*Pattern, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, wrapCompileError(pattern, err)
	}
	return &Pattern{
		engine:  engine,
		pattern: pattern,
	}, nil
}

// CompileParts compiles an already parsed pattern. The pattern text reported
// by String is the canonical rendering of parts.
func CompileParts(parts syntax.Parts, config Config) (*Pattern, error) {
	pattern := parts.String()
	engine, err := meta.CompileParts(parts, config)
	if err != nil {
		return nil, wrapCompileError(pattern, err)
	}
	return &Pattern{
		engine:  engine,
		pattern: pattern,
	}, nil
}

// DefaultConfig returns the default configuration for compilation.
func DefaultConfig() Config {
	return meta.DefaultConfig()
}

// QuoteMeta returns a pattern that matches s literally.
//
// Example:
//
//	p := coreglob.MustCompile(coreglob.QuoteMeta("a*b"))
//	p.MatchString("a*b")  // true
//	p.MatchString("axxb") // false
func QuoteMeta(s string) string {
	return syntax.QuoteMeta(s)
}

func wrapCompileError(pattern string, err error) error {
	var ce *nfa.CompileError
	if errors.As(err, &ce) {
		return &PatternCreationError{
			Pattern: pattern,
			Offset:  ce.Offset,
			Err:     ce.Err,
		}
	}
	return err
}

// FirstMatch returns the leftmost match in input, or nil if there is none.
//
// Among matches starting at the same position, every '*' takes as many
// characters as it can while the rest of the pattern still matches.
//
// Example:
//
//	p := coreglob.MustCompile("a*c")
//	m := p.FirstMatch("xxabcabc")
//	// m.BeginByteIndex == 2, m.EndByteIndex == 8, m.Groups == []string{"bcab"}
func (p *Pattern) FirstMatch(input string) *Match {
	return p.firstMatch([]byte(input))
}

// FirstMatchBytes is like FirstMatch but searches a byte slice. The groups of
// the returned match do not share memory with b.
func (p *Pattern) FirstMatchBytes(b []byte) *Match {
	return p.firstMatch(b)
}

func (p *Pattern) firstMatch(b []byte) *Match {
	slots := p.engine.FindSubmatch(b)
	if slots == nil {
		return nil
	}
	return newMatch(b, slots, p.NumGroups())
}

// Match reports whether b contains any match of the pattern.
func (p *Pattern) Match(b []byte) bool {
	return p.engine.IsMatch(b)
}

// MatchString reports whether s contains any match of the pattern.
//
// Example:
//
//	p := coreglob.MustCompile("f(.)")
//	p.MatchString("f(x)")  // true
//	p.MatchString("f(xy)") // false
func (p *Pattern) MatchString(s string) bool {
	return p.Match([]byte(s))
}

// NumGroups returns the number of wildcards in the pattern, which is the
// length of every Match.Groups this pattern produces.
func (p *Pattern) NumGroups() int {
	return p.engine.NumCaptures() - 1
}

// String returns the source text used to compile the pattern.
func (p *Pattern) String() string {
	return p.pattern
}

// Strategy returns the name of the execution strategy in use.
func (p *Pattern) Strategy() string {
	return p.engine.Strategy().String()
}

// Stats returns a snapshot of the execution statistics.
func (p *Pattern) Stats() Stats {
	return p.engine.Stats()
}

// ResetStats resets the execution statistics to zero.
func (p *Pattern) ResetStats() {
	p.engine.ResetStats()
}
