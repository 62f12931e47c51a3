// Package literal extracts literal byte sequences from parsed glob patterns.
//
// The primary use case is prefilter optimization: by extracting the verbatim
// runs of a pattern (e.g. "(define " and ")" from "(define *)"), the engine
// can reject input quickly before running an automaton.
//
// Key concepts:
//   - A Literal is a concrete byte sequence that every match contains
//   - A Seq is an ordered set of literals (the runs of one pattern)
package literal

import (
	"bytes"
	"sort"
)

// Literal represents a literal byte sequence extracted from a pattern.
// The Complete flag indicates whether this literal is the entire match
// (true) or just a piece of every match (false).
//
// Example:
//   - Pattern "hello" → Literal{[]byte("hello"), true}
//   - Pattern "hello*" → Literal{[]byte("hello"), false}
type Literal struct {
	// Bytes contains the actual literal byte sequence.
	Bytes []byte

	// Complete indicates whether this literal represents the entire match.
	// If true, finding this literal is sufficient (no automaton needed).
	Complete bool
}

// NewLiteral creates a new Literal from the given byte sequence and completeness flag.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{
		Bytes:    b,
		Complete: complete,
	}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a string representation of the literal for debugging purposes.
// Format: "literal{bytes, complete=true/false}"
//
// Example:
//
//	lit := literal.NewLiteral([]byte("test"), true)
//	fmt.Println(lit.String()) // Output: literal{test, complete=true}
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq represents an ordered sequence of literals.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), false),
//	    literal.NewLiteral([]byte("bar"), false),
//	)
//	fmt.Printf("Sequence has %d literals\n", seq.Len()) // Output: Sequence has 2 literals
type Seq struct {
	literals []Literal
}

// NewSeq creates a new sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{
		literals: lits,
	}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at the specified index.
// Panics if index is out of bounds.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty returns true if the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// Clone returns a deep copy of the sequence.
// All literals and their byte slices are duplicated.
func (s *Seq) Clone() *Seq {
	if s == nil {
		return nil
	}

	cloned := make([]Literal, len(s.literals))
	for i, lit := range s.literals {
		bytesCopy := make([]byte, len(lit.Bytes))
		copy(bytesCopy, lit.Bytes)
		cloned[i] = Literal{
			Bytes:    bytesCopy,
			Complete: lit.Complete,
		}
	}
	return &Seq{literals: cloned}
}

// Minimize removes literals implied by others: a literal that occurs inside
// another literal of the sequence (including an equal one) is dropped, since
// finding the longer literal proves the shorter one is present.
//
// The surviving literals are ordered longest first. After Minimize, no
// literal is a substring of another, so no two literals can start at the
// same position of a text.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("de"), false),
//	    literal.NewLiteral([]byte("define"), false),
//	    literal.NewLiteral([]byte(")"), false),
//	)
//	seq.Minimize()
//	fmt.Println(seq.Len()) // Output: 2 ("define" and ")")
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}

	// Longest first, so every literal that could contain the current one
	// has already been considered.
	sort.SliceStable(s.literals, func(i, j int) bool {
		return len(s.literals[i].Bytes) > len(s.literals[j].Bytes)
	})

	kept := make([]Literal, 0, len(s.literals))
	for _, current := range s.literals {
		isRedundant := false
		for _, k := range kept {
			if bytes.Contains(k.Bytes, current.Bytes) {
				isRedundant = true
				break
			}
		}
		if !isRedundant {
			kept = append(kept, current)
		}
	}

	s.literals = kept
}

// TotalLen returns the sum of the literal lengths.
func (s *Seq) TotalLen() int {
	n := 0
	for i := 0; i < s.Len(); i++ {
		n += len(s.literals[i].Bytes)
	}
	return n
}
