package nfa

import (
	"github.com/coregx/coreglob/internal/conv"
	"github.com/coregx/coreglob/syntax"
)

// Compile builds the NFA for a parsed pattern.
//
// Each wildcard part k (1-based, in pattern order) is wrapped in capture
// group k; group 0 spans the whole match. An AnySequence compiles to a run
// loop that prefers consuming another character over exiting, so sequences
// are greedy.
//
// The only error is two AnySequence parts with nothing between them,
// reported as a *CompileError wrapping ErrAdjacentWildcards.
func Compile(parts syntax.Parts) (*NFA, error) {
	for i := 1; i < len(parts); i++ {
		if parts[i].Kind == syntax.AnySequence && parts[i-1].Kind == syntax.AnySequence {
			return nil, &CompileError{
				Index:  i,
				Offset: parts[i].Pos,
				Err:    ErrAdjacentWildcards,
			}
		}
	}

	groups := make([]uint32, len(parts))
	count := 0
	for i, p := range parts {
		if p.IsWildcard() {
			count++
			groups[i] = conv.IntToUint32(count)
		}
	}

	// Built back to front so every state's successor already exists.
	b := NewBuilderWithCapacity(3*len(parts) + 3)
	next := b.AddCapture(0, false, b.AddMatch())
	for i := len(parts) - 1; i >= 0; i-- {
		p := parts[i]
		switch p.Kind {
		case syntax.VerbatimChar:
			next = b.AddRune(p.Char, next)

		case syntax.AnyCharacter:
			end := b.AddCapture(groups[i], false, next)
			next = b.AddCapture(groups[i], true, b.AddRuneAny(end))

		case syntax.AnySequence:
			end := b.AddCapture(groups[i], false, next)
			loop := b.AddRunLoop(InvalidState, end)
			body := b.AddRuneNotDelim(loop)
			mustBuild(b.PatchRunLoop(loop, body, end))
			next = b.AddCapture(groups[i], true, loop)
		}
	}
	b.SetStart(b.AddCapture(0, true, next))

	n, err := b.Build(WithCaptureCount(count + 1))
	mustBuild(err)
	return n, nil
}

// mustBuild panics on builder errors; Compile only produces well-formed
// automata, so one indicates a defect in the compiler itself.
func mustBuild(err error) {
	if err != nil {
		panic("nfa: " + err.Error())
	}
}
