package nfa

import (
	"fmt"
	"strconv"
)

// StateID uniquely identifies an NFA state.
// This is a 32-bit unsigned integer for compact representation.
type StateID uint32

// Special state constants
const (
	// InvalidState represents an invalid/uninitialized state ID
	InvalidState StateID = 0xFFFFFFFF
)

// Delimiters are the bytes an AnySequence never consumes.
const Delimiters = "();"

// IsDelimiter reports whether c stops an AnySequence.
func IsDelimiter(c byte) bool {
	return c == '(' || c == ')' || c == ';'
}

// StateKind identifies the type of NFA state and determines which transitions are valid.
type StateKind uint8

const (
	// StateMatch represents a match state (accepting state)
	StateMatch StateKind = iota

	// StateRune matches one specific character, given as its raw bytes
	StateRune

	// StateRuneAny matches any single character, delimiters and newlines included
	StateRuneAny

	// StateRuneNotDelim matches any single character except '(', ')' and ';'
	StateRuneNotDelim

	// StateRunLoop heads an AnySequence loop: an epsilon transition to the
	// RuneNotDelim body, which has priority, or to the loop exit
	StateRunLoop

	// StateCapture records the current position into a capture slot
	StateCapture
)

// String returns a human-readable representation of the StateKind
func (k StateKind) String() string {
	switch k {
	case StateMatch:
		return "Match"
	case StateRune:
		return "Rune"
	case StateRuneAny:
		return "RuneAny"
	case StateRuneNotDelim:
		return "RuneNotDelim"
	case StateRunLoop:
		return "RunLoop"
	case StateCapture:
		return "Capture"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// State represents a single NFA state with its transitions.
// The state's kind determines which fields are valid.
type State struct {
	id   StateID
	kind StateKind

	// For Rune: the character's raw bytes
	char string

	next StateID // target state for Rune/RuneAny/RuneNotDelim/Capture

	// For RunLoop: the RuneNotDelim body leading back to the loop, and the exit
	body, exit StateID

	// For Capture: capture group index and whether this is opening/closing
	captureIndex uint32
	captureStart bool
}

// ID returns the state's unique identifier
func (s *State) ID() StateID {
	return s.id
}

// Kind returns the state's type
func (s *State) Kind() StateKind {
	return s.kind
}

// IsMatch returns true if this is a match state
func (s *State) IsMatch() bool {
	return s.kind == StateMatch
}

// Rune returns the character bytes and target of a Rune state.
// Returns ("", InvalidState) for other states.
func (s *State) Rune() (char string, next StateID) {
	if s.kind == StateRune {
		return s.char, s.next
	}
	return "", InvalidState
}

// Next returns the single successor of a consuming or Capture state.
// Returns InvalidState for Match and RunLoop states.
func (s *State) Next() StateID {
	switch s.kind {
	case StateRune, StateRuneAny, StateRuneNotDelim, StateCapture:
		return s.next
	default:
		return InvalidState
	}
}

// Loop returns the body and exit of a RunLoop state.
// Returns (InvalidState, InvalidState) for other states.
func (s *State) Loop() (body, exit StateID) {
	if s.kind == StateRunLoop {
		return s.body, s.exit
	}
	return InvalidState, InvalidState
}

// IsRunLoop reports whether the state heads an AnySequence loop.
func (s *State) IsRunLoop() bool {
	return s.kind == StateRunLoop
}

// Capture returns capture group info for Capture states.
// Returns (group index, isStart, next state).
func (s *State) Capture() (index uint32, isStart bool, next StateID) {
	if s.kind == StateCapture {
		return s.captureIndex, s.captureStart, s.next
	}
	return 0, false, InvalidState
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	switch s.kind {
	case StateMatch:
		return fmt.Sprintf("State(%d, Match)", s.id)
	case StateRune:
		return fmt.Sprintf("State(%d, Rune %s -> %d)", s.id, strconv.Quote(s.char), s.next)
	case StateRuneAny:
		return fmt.Sprintf("State(%d, RuneAny -> %d)", s.id, s.next)
	case StateRuneNotDelim:
		return fmt.Sprintf("State(%d, RuneNotDelim -> %d)", s.id, s.next)
	case StateRunLoop:
		return fmt.Sprintf("State(%d, RunLoop -> [%d, %d])", s.id, s.body, s.exit)
	case StateCapture:
		side := "end"
		if s.captureStart {
			side = "start"
		}
		return fmt.Sprintf("State(%d, Capture %d %s -> %d)", s.id, s.captureIndex, side, s.next)
	default:
		return fmt.Sprintf("State(%d, Unknown)", s.id)
	}
}

// NFA represents a compiled Thompson NFA for a glob pattern.
//
// The automaton is anchored: it describes a match beginning at a given
// position. Unanchored search is driven by the engines, which restart the
// automaton at successive character boundaries.
type NFA struct {
	// states contains all NFA states indexed by StateID
	states []State

	// start is the entry state (the opening capture of group 0)
	start StateID

	// captureCount is the number of capture groups in the pattern.
	// Group 0 is the entire match, group k >= 1 is the k-th wildcard.
	captureCount int
}

// Start returns the starting state ID of the NFA
func (n *NFA) Start() StateID {
	return n.start
}

// State returns the state with the given ID.
// Returns nil if the ID is invalid.
func (n *NFA) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// IsMatch returns true if the given state is a match state
func (n *NFA) IsMatch(id StateID) bool {
	if s := n.State(id); s != nil {
		return s.IsMatch()
	}
	return false
}

// States returns the total number of states in the NFA
func (n *NFA) States() int {
	return len(n.states)
}

// CaptureCount returns the number of capture groups in the NFA.
// Group 0 is the entire match, groups 1+ are the wildcards in pattern order.
// For a pattern like "a.c*", this returns 3.
func (n *NFA) CaptureCount() int {
	return n.captureCount
}

// SlotCount returns the length of a capture slot slice for this NFA.
func (n *NFA) SlotCount() int {
	return n.captureCount * 2
}

// String returns a human-readable representation of the NFA
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, start: %d, captures: %d}",
		len(n.states), n.start, n.captureCount)
}
