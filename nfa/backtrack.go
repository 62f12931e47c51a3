package nfa

import (
	"unicode/utf8"

	"github.com/coregx/coreglob/simd"
)

// Prefilter reports candidate match starts. Find returns the first candidate
// at or after start, or -1 when no match can begin at or after start.
// Candidates must fall on character boundaries.
type Prefilter interface {
	Find(haystack []byte, start int) int
}

// defaultMaxVisitedSize limits the visited bit vector to 256KB.
const defaultMaxVisitedSize = 256 * 1024 * 8

// BoundedBacktracker implements a bounded backtracking matcher.
// It uses a bit vector to track visited (state, position) pairs, providing
// O(1) lookup with low constant overhead.
//
// Whether a (state, position) pair can reach the match state does not depend
// on where the attempt started, so the visited set is kept across start
// positions and every pair is explored at most once per search. AnySequence
// loops are run without recursion: the delimiter-free run ahead is located
// with Memchr3 and the exits are tried longest first.
//
// This engine is selected when len(haystack) * nfa.States() fits in
// maxVisitedSize bits.
//
// BoundedBacktracker is immutable once configured and safe for concurrent
// use; all per-search memory lives in a BacktrackerState.
type BoundedBacktracker struct {
	nfa *NFA

	// numStates is cached for bounds checking
	numStates int

	// maxVisitedSize limits memory usage (in bits)
	maxVisitedSize int

	prefilter Prefilter
}

// BacktrackerState holds mutable per-search state for BoundedBacktracker.
// It should be pooled for concurrent usage; each goroutine needs its own.
type BacktrackerState struct {
	// visited is a bit vector tracking (state, position) pairs.
	// Layout: bit at index (state * (inputLen+1) + pos) indicates visited.
	visited []uint64

	// inputLen is cached for index calculations
	inputLen int

	// bounds is a stack of character boundaries used by run loops over
	// non-ASCII text.
	bounds []int
}

// NewBacktrackerState creates an empty state for use with any BoundedBacktracker.
func NewBacktrackerState() *BacktrackerState {
	return &BacktrackerState{}
}

// NewBoundedBacktracker creates a new bounded backtracker for the given NFA.
func NewBoundedBacktracker(nfa *NFA) *BoundedBacktracker {
	return &BoundedBacktracker{
		nfa:            nfa,
		numStates:      nfa.States(),
		maxVisitedSize: defaultMaxVisitedSize,
	}
}

// SetMaxVisitedSize sets the visited bit vector limit in bits.
// Non-positive values restore the default. Must be called before the
// backtracker is shared.
func (b *BoundedBacktracker) SetMaxVisitedSize(bits int) {
	if bits <= 0 {
		bits = defaultMaxVisitedSize
	}
	b.maxVisitedSize = bits
}

// MaxVisitedSize returns the visited bit vector limit in bits.
func (b *BoundedBacktracker) MaxVisitedSize() int {
	return b.maxVisitedSize
}

// SetPrefilter installs a prefilter used to skip start positions.
// Must be called before the backtracker is shared.
func (b *BoundedBacktracker) SetPrefilter(pf Prefilter) {
	b.prefilter = pf
}

// CanHandle returns true if this engine can handle the given input size.
// Returns false if the visited bit vector would exceed maxVisitedSize.
func (b *BoundedBacktracker) CanHandle(haystackLen int) bool {
	// Need (numStates * (haystackLen + 1)) bits
	if haystackLen >= b.maxVisitedSize {
		return false
	}
	bitsNeeded := b.numStates * (haystackLen + 1)
	return bitsNeeded <= b.maxVisitedSize
}

// reset prepares the state for a new search.
func (st *BacktrackerState) reset(numStates, haystackLen int) {
	st.inputLen = haystackLen
	st.bounds = st.bounds[:0]

	bitsNeeded := numStates * (haystackLen + 1)
	wordsNeeded := (bitsNeeded + 63) / 64

	if cap(st.visited) >= wordsNeeded {
		st.visited = st.visited[:wordsNeeded]
		clear(st.visited)
	} else {
		st.visited = make([]uint64, wordsNeeded)
	}
}

// shouldVisit checks if (state, pos) has been visited and marks it if not.
// Returns true if we should visit (not yet visited), false if already visited.
func (st *BacktrackerState) shouldVisit(state StateID, pos int) bool {
	idx := int(state)*(st.inputLen+1) + pos
	word := idx / 64
	bit := uint64(1) << (idx % 64)

	if st.visited[word]&bit != 0 {
		return false
	}
	st.visited[word] |= bit
	return true
}

// Search finds the leftmost match starting at or after at, which must be a
// character boundary. On success it fills slots (group k start at 2k, end at
// 2k+1, -1 when unset) and returns true. slots may be shorter than
// nfa.SlotCount(); groups beyond its length are not recorded.
//
// The caller must check CanHandle first; Search returns false for inputs the
// backtracker cannot handle.
func (b *BoundedBacktracker) Search(st *BacktrackerState, haystack []byte, at int, slots []int) bool {
	if !b.CanHandle(len(haystack)) || at > len(haystack) {
		return false
	}
	st.reset(b.numStates, len(haystack))
	for i := range slots {
		slots[i] = -1
	}

	start := b.nfa.Start()
	for pos := at; pos <= len(haystack); {
		if b.prefilter != nil {
			candidate := b.prefilter.Find(haystack, pos)
			if candidate < 0 {
				return false
			}
			pos = candidate
		}
		if b.step(st, haystack, start, pos, slots) {
			return true
		}
		if pos == len(haystack) {
			break
		}
		pos += charWidth(haystack[pos:])
	}
	return false
}

// IsMatch returns true if the pattern matches anywhere in the haystack.
func (b *BoundedBacktracker) IsMatch(st *BacktrackerState, haystack []byte) bool {
	return b.Search(st, haystack, 0, nil)
}

// step explores state id at pos. Capture slots are restored when a branch
// fails, so on success slots describe the accepted path.
//
//nolint:gocyclo,cyclop // complexity is inherent to state machine dispatch
func (b *BoundedBacktracker) step(st *BacktrackerState, haystack []byte, id StateID, pos int, slots []int) bool {
	if !st.shouldVisit(id, pos) {
		return false
	}

	s := &b.nfa.states[id]
	switch s.kind {
	case StateMatch:
		return true

	case StateRune:
		end := pos + len(s.char)
		if end <= len(haystack) && string(haystack[pos:end]) == s.char &&
			charWidth(haystack[pos:]) == len(s.char) {
			return b.step(st, haystack, s.next, end, slots)
		}
		return false

	case StateRuneAny:
		if pos < len(haystack) {
			return b.step(st, haystack, s.next, pos+charWidth(haystack[pos:]), slots)
		}
		return false

	case StateRuneNotDelim:
		if pos < len(haystack) && !IsDelimiter(haystack[pos]) {
			return b.step(st, haystack, s.next, pos+charWidth(haystack[pos:]), slots)
		}
		return false

	case StateRunLoop:
		return b.runLoop(st, haystack, id, s.exit, pos, slots)

	case StateCapture:
		slot := int(s.captureIndex) * 2
		if !s.captureStart {
			slot++
		}
		if slot >= len(slots) {
			return b.step(st, haystack, s.next, pos, slots)
		}
		old := slots[slot]
		slots[slot] = pos
		if b.step(st, haystack, s.next, pos, slots) {
			return true
		}
		slots[slot] = old
		return false
	}

	return false
}

// runLoop handles an AnySequence entered at pos. The loop can stop at any
// character boundary between pos and the next delimiter (limit); the exits
// are tried from limit down to pos.
//
// Entering the loop at a later position of the same run tries a subset of
// these exits, so those (loop, position) pairs are marked visited up front.
// Meeting a pair that is already marked means an earlier entry has tried,
// and failed, every exit from there to limit.
func (b *BoundedBacktracker) runLoop(st *BacktrackerState, haystack []byte, loop, exit StateID, pos int, slots []int) bool {
	limit := len(haystack)
	if i := simd.Memchr3(haystack[pos:], '(', ')', ';'); i >= 0 {
		limit = pos + i
	}
	last := limit
	for p := pos + 1; p <= limit; p++ {
		if !st.shouldVisit(loop, p) {
			last = p - 1
			break
		}
	}

	if isASCII(haystack[pos:last]) {
		for e := last; e >= pos; e-- {
			if b.step(st, haystack, exit, e, slots) {
				return true
			}
		}
		return false
	}

	// Delimiters are ASCII and never part of a multi-byte sequence, so
	// forward decoding from pos stays on character boundaries up to limit.
	// The walk stops at last, or at the end of input when last == limit.
	base := len(st.bounds)
	for p := pos; p <= last; p += charWidth(haystack[p:]) {
		st.bounds = append(st.bounds, p)
		if p == len(haystack) {
			break
		}
	}

	for i := len(st.bounds) - 1; i >= base; i-- {
		if b.step(st, haystack, exit, st.bounds[i], slots) {
			st.bounds = st.bounds[:base]
			return true
		}
	}
	st.bounds = st.bounds[:base]
	return false
}

// charWidth returns the width in bytes of the first character in b.
// Invalid UTF-8 counts as one-byte characters. Returns 0 if b is empty.
func charWidth(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	if b[0] < utf8.RuneSelf {
		return 1
	}
	_, width := utf8.DecodeRune(b)
	return width
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
