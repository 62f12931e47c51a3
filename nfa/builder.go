package nfa

import (
	"fmt"
)

// Builder constructs NFAs incrementally using a low-level API.
// It is used by Compile and by tests that need hand-built automata.
type Builder struct {
	states []State
	start  StateID
}

// NewBuilder creates a new NFA builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new NFA builder with specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states: make([]State, 0, capacity),
		start:  InvalidState,
	}
}

func (b *Builder) add(s State) StateID {
	id := StateID(len(b.states))
	s.id = id
	b.states = append(b.states, s)
	return id
}

// AddMatch adds a match (accepting) state and returns its ID
func (b *Builder) AddMatch() StateID {
	return b.add(State{kind: StateMatch})
}

// AddRune adds a state that consumes exactly the character char.
// char holds the character's raw bytes and must not be empty.
func (b *Builder) AddRune(char string, next StateID) StateID {
	return b.add(State{kind: StateRune, char: char, next: next})
}

// AddRuneAny adds a state that consumes any single character.
func (b *Builder) AddRuneAny(next StateID) StateID {
	return b.add(State{kind: StateRuneAny, next: next})
}

// AddRuneNotDelim adds a state that consumes any single character
// other than the delimiters.
func (b *Builder) AddRuneNotDelim(next StateID) StateID {
	return b.add(State{kind: StateRuneNotDelim, next: next})
}

// AddRunLoop adds the state heading an AnySequence loop. body must be a
// RuneNotDelim state leading back to the loop; exit leaves it. Both may be
// patched later with PatchRunLoop, since the body is built after the loop.
func (b *Builder) AddRunLoop(body, exit StateID) StateID {
	return b.add(State{kind: StateRunLoop, body: body, exit: exit})
}

// AddCapture adds a capture boundary state.
// captureIndex is the capture group number (0 for the entire match).
// isStart is true for the opening boundary, false for the closing one.
func (b *Builder) AddCapture(captureIndex uint32, isStart bool, next StateID) StateID {
	return b.add(State{
		kind:         StateCapture,
		captureIndex: captureIndex,
		captureStart: isStart,
		next:         next,
	})
}

// PatchRunLoop updates the body and exit of a RunLoop state
func (b *Builder) PatchRunLoop(stateID StateID, body, exit StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{
			Message: "state ID out of bounds",
			StateID: stateID,
		}
	}

	s := &b.states[stateID]
	if s.kind != StateRunLoop {
		return &BuildError{
			Message: fmt.Sprintf("expected RunLoop state, got %s", s.kind),
			StateID: stateID,
		}
	}

	s.body = body
	s.exit = exit
	return nil
}

// SetStart sets the starting state for the NFA
func (b *Builder) SetStart(start StateID) {
	b.start = start
}

// States returns the current number of states
func (b *Builder) States() int {
	return len(b.states)
}

// Validate checks that the NFA is well-formed:
// the start state is set, every reference points to an existing state,
// and every run loop has a RuneNotDelim body leading back to it.
func (b *Builder) Validate() error {
	if b.start == InvalidState {
		return &BuildError{Message: "start state not set", StateID: InvalidState}
	}
	if int(b.start) >= len(b.states) {
		return &BuildError{
			Message: "start state out of bounds",
			StateID: b.start,
		}
	}

	valid := func(id StateID) bool { return int(id) < len(b.states) }

	for i := range b.states {
		s := &b.states[i]
		id := StateID(i)
		switch s.kind {
		case StateRune, StateRuneAny, StateRuneNotDelim, StateCapture:
			if !valid(s.next) {
				return &BuildError{
					Message: fmt.Sprintf("invalid next state %d", s.next),
					StateID: id,
				}
			}
			if s.kind == StateRune && s.char == "" {
				return &BuildError{Message: "empty rune", StateID: id}
			}
		case StateRunLoop:
			if !valid(s.body) {
				return &BuildError{
					Message: fmt.Sprintf("invalid loop body %d", s.body),
					StateID: id,
				}
			}
			if !valid(s.exit) {
				return &BuildError{
					Message: fmt.Sprintf("invalid loop exit %d", s.exit),
					StateID: id,
				}
			}
			body := &b.states[s.body]
			if body.kind != StateRuneNotDelim || body.next != id {
				return &BuildError{Message: "run loop body must be RuneNotDelim leading back to the loop", StateID: id}
			}
		}
	}

	return nil
}

// Build finalizes and returns the constructed NFA.
func (b *Builder) Build(opts ...BuildOption) (*NFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	nfa := &NFA{
		states:       b.states,
		start:        b.start,
		captureCount: 1,
	}
	for _, opt := range opts {
		opt(nfa)
	}
	return nfa, nil
}

// BuildOption is a functional option for configuring the built NFA
type BuildOption func(*NFA)

// WithCaptureCount sets the number of capture groups in the NFA,
// group 0 included.
func WithCaptureCount(count int) BuildOption {
	return func(n *NFA) {
		n.captureCount = count
	}
}
