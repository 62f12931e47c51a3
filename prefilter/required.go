package prefilter

import (
	"errors"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/coreglob/literal"
)

// ErrNoLiterals is returned by NewRequiredSet when there is nothing to require.
var ErrNoLiterals = errors.New("prefilter: no literals to require")

// RequiredSet checks in one pass that every verbatim run of a pattern occurs
// in the input. A match contains each run at or after its start, so input
// missing any run cannot match and the automaton need not run at all.
//
// The literals are minimized first: a run occurring inside a longer run is
// implied by it. Afterwards no two literals can begin at the same position,
// so stepping the automaton one byte past each reported match start visits
// every occurrence.
//
// RequiredSet is immutable and safe for concurrent use.
type RequiredSet struct {
	auto  *ahocorasick.Automaton
	index map[string]int
	lits  *literal.Seq
}

// NewRequiredSet builds a RequiredSet for the given literals.
func NewRequiredSet(lits *literal.Seq) (*RequiredSet, error) {
	if lits.IsEmpty() {
		return nil, ErrNoLiterals
	}
	seq := lits.Clone()
	seq.Minimize()

	builder := ahocorasick.NewBuilder()
	index := make(map[string]int, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		if len(lit.Bytes) == 0 {
			continue
		}
		builder.AddPattern(lit.Bytes)
		index[string(lit.Bytes)] = len(index)
	}
	if len(index) == 0 {
		return nil, ErrNoLiterals
	}

	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &RequiredSet{auto: auto, index: index, lits: seq}, nil
}

// Len returns the number of distinct literals checked after minimization.
func (r *RequiredSet) Len() int {
	return len(r.index)
}

// Literals returns the minimized literals.
func (r *RequiredSet) Literals() *literal.Seq {
	return r.lits
}

// AllPresent reports whether every required literal occurs in haystack at or
// after start.
func (r *RequiredSet) AllPresent(haystack []byte, start int) bool {
	if start < 0 || start > len(haystack) {
		return false
	}
	var seen []bool
	if len(r.index) > 1 {
		seen = make([]bool, len(r.index))
	}
	remaining := len(r.index)

	for at := start; at < len(haystack); {
		m := r.auto.Find(haystack, at)
		if m == nil {
			return false
		}
		if seen == nil {
			return true
		}
		if i, ok := r.index[string(haystack[m.Start:m.End])]; ok && !seen[i] {
			seen[i] = true
			remaining--
			if remaining == 0 {
				return true
			}
		}
		at = m.Start + 1
	}
	return false
}
