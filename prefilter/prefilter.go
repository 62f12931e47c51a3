// Package prefilter provides fast candidate filtering for glob search using
// literals extracted from the pattern.
//
// A prefilter quickly rejects positions in the haystack that cannot start a
// match, so the automaton only runs where the pattern's leading literal
// occurs:
//   - Single byte prefix → Memchr prefilter
//   - Longer prefix → Memmem prefilter
//
// RequiredSet is a whole-input check built on an Aho-Corasick automaton: it
// reports whether every verbatim run of the pattern occurs in the input,
// which a match needs.
//
// Example usage:
//
//	prefix := literal.ExtractPrefix(syntax.Parse("(define *)"))
//	pf := prefilter.NewBuilder(literal.NewSeq(prefix)).Build()
//
//	haystack := []byte("(let x) (define y)")
//	pos := pf.Find(haystack, 0)
//	// pos == 8
package prefilter

import (
	"unicode/utf8"

	"github.com/coregx/coreglob/literal"
	"github.com/coregx/coreglob/simd"
)

// Prefilter is used to quickly find candidate match positions before running
// the full engine.
//
// Key methods:
//   - Find: returns the next candidate position
//   - IsComplete: indicates if prefilter match is sufficient (no verification needed)
type Prefilter interface {
	// Find returns the index of the first candidate match starting at or after
	// 'start', or -1 if no candidate is found.
	//
	// A candidate is a position where the prefilter literal begins. This does
	// NOT guarantee a full match; the caller must verify it unless
	// IsComplete() is true. Candidates always fall on character boundaries.
	Find(haystack []byte, start int) int

	// IsComplete returns true if a prefilter match guarantees a full match,
	// which is the case when the pattern is the literal itself and the
	// literal is valid UTF-8, so a hit also ends on a character boundary.
	IsComplete() bool

	// LiteralLen returns the length of the matched literal when IsComplete() is true.
	// Returns 0 otherwise.
	LiteralLen() int
}

// Builder constructs the best prefilter from extracted prefix literals.
//
// Selection strategy:
//  1. Single byte literal → Memchr prefilter (fastest)
//  2. Single substring literal → Memmem prefilter
//  3. No suitable literal → nil (no prefilter)
//
// A literal beginning with a UTF-8 continuation byte (only possible for
// invalid UTF-8 patterns) gets no prefilter, since its occurrences need not
// start on character boundaries.
type Builder struct {
	prefixes *literal.Seq
}

// NewBuilder creates a new prefilter builder from extracted prefix literals.
// prefixes may be nil.
func NewBuilder(prefixes *literal.Seq) *Builder {
	return &Builder{
		prefixes: prefixes,
	}
}

// Build constructs the best prefilter for the given literals.
// Returns nil if no effective prefilter can be built.
func (b *Builder) Build() Prefilter {
	return selectPrefilter(b.prefixes)
}

func selectPrefilter(prefixes *literal.Seq) Prefilter {
	if prefixes.Len() != 1 {
		return nil
	}
	lit := prefixes.Get(0)
	if len(lit.Bytes) == 0 || !utf8.RuneStart(lit.Bytes[0]) {
		return nil
	}
	complete := lit.Complete && utf8.Valid(lit.Bytes)
	if len(lit.Bytes) == 1 {
		return newMemchrPrefilter(lit.Bytes[0], complete)
	}
	return newMemmemPrefilter(lit.Bytes, complete)
}

// memchrPrefilter wraps simd.Memchr as a Prefilter.
//
// Example patterns:
//
//	(*)     → search for '('
//	x.y     → search for 'x'
type memchrPrefilter struct {
	needle   byte
	complete bool
}

func newMemchrPrefilter(needle byte, complete bool) Prefilter {
	return &memchrPrefilter{
		needle:   needle,
		complete: complete,
	}
}

// Find implements Prefilter.Find using simd.Memchr.
func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memchr(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memchrPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memchrPrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

// memmemPrefilter wraps simd.Memmem as a Prefilter.
//
// Example patterns:
//
//	(define *)   → search for "(define "
//	hello        → search for "hello" (complete)
type memmemPrefilter struct {
	needle   []byte
	complete bool
}

// newMemmemPrefilter copies needle to prevent aliasing.
func newMemmemPrefilter(needle []byte, complete bool) Prefilter {
	needleCopy := make([]byte, len(needle))
	copy(needleCopy, needle)

	return &memmemPrefilter{
		needle:   needleCopy,
		complete: complete,
	}
}

// Find implements Prefilter.Find using simd.Memmem.
func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memmem(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memmemPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memmemPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}
