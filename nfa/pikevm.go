package nfa

import (
	"github.com/coregx/coreglob/internal/conv"
	"github.com/coregx/coreglob/internal/sparse"
)

// PikeVM implements the Pike VM algorithm for NFA execution.
// It simulates the NFA by maintaining a set of active threads and stepping
// them over the input one character at a time, so its running time is
// O(len(haystack) * nfa.States()) for any input size.
//
// Threads are kept in priority order. When a thread reaches the match
// state, every lower-priority thread is dropped and no new start threads are
// added, which yields the leftmost match with greedy sequences: the same
// match the BoundedBacktracker reports.
//
// Thread safety: PikeVM is immutable once configured. Per-search memory
// lives in a PikeVMState, which must not be shared between goroutines.
type PikeVM struct {
	nfa       *NFA
	prefilter Prefilter
}

// PikeVMState holds mutable per-search state for PikeVM.
// This struct should be pooled (via sync.Pool) for concurrent usage.
type PikeVMState struct {
	// Thread queues for current and next generation
	queue     threadQueue
	nextQueue threadQueue
}

// threadQueue is one generation of threads, deduplicated by state.
type threadQueue struct {
	threads []thread
	set     *sparse.SparseSet
}

func (q *threadQueue) clear() {
	q.threads = q.threads[:0]
	q.set.Clear()
}

type thread struct {
	state    StateID
	captures cowCaptures // [start0, end0, start1, end1, ...] (-1 = not set)
}

// cowCaptures implements copy-on-write semantics for capture slots.
// Threads share the same slots until one of them records a position.
type cowCaptures struct {
	shared *sharedCaptures
}

type sharedCaptures struct {
	data []int
	refs int
}

// clone increments ref count and returns a reference to the same data (no copy)
func (c cowCaptures) clone() cowCaptures {
	if c.shared == nil {
		return cowCaptures{}
	}
	c.shared.refs++
	return cowCaptures{shared: c.shared}
}

// release drops a reference held by a discarded thread.
func (c cowCaptures) release() {
	if c.shared != nil && c.shared.refs > 0 {
		c.shared.refs--
	}
}

// update modifies a capture slot, copying only if the data is shared
func (c cowCaptures) update(slotIndex, value int) cowCaptures {
	if c.shared == nil || slotIndex >= len(c.shared.data) {
		return c
	}
	if c.shared.refs > 1 {
		c.shared.refs--
		data := make([]int, len(c.shared.data))
		copy(data, c.shared.data)
		data[slotIndex] = value
		return cowCaptures{shared: &sharedCaptures{data: data, refs: 1}}
	}
	c.shared.data[slotIndex] = value
	return c
}

// get returns the capture data (may be nil)
func (c cowCaptures) get() []int {
	if c.shared == nil {
		return nil
	}
	return c.shared.data
}

// NewPikeVM creates a new PikeVM for executing the given NFA
func NewPikeVM(nfa *NFA) *PikeVM {
	return &PikeVM{nfa: nfa}
}

// SetPrefilter installs a prefilter used to jump over input where no thread
// is alive. Must be called before the PikeVM is shared.
func (p *PikeVM) SetPrefilter(pf Prefilter) {
	p.prefilter = pf
}

// NewPikeVMState creates a new mutable state for use with PikeVM.
// The state must be initialized by calling PikeVM.InitState before use.
func NewPikeVMState() *PikeVMState {
	return &PikeVMState{}
}

// InitState sizes state for this PikeVM's NFA.
// Must be called before using the state with Search.
func (p *PikeVM) InitState(state *PikeVMState) {
	capacity := p.nfa.States()
	if capacity < 16 {
		capacity = 16
	}
	state.queue = threadQueue{
		threads: make([]thread, 0, capacity),
		set:     sparse.NewSparseSet(conv.IntToUint32(capacity)),
	}
	state.nextQueue = threadQueue{
		threads: make([]thread, 0, capacity),
		set:     sparse.NewSparseSet(conv.IntToUint32(capacity)),
	}
}

// NumStates returns the number of NFA states (for state allocation).
func (p *PikeVM) NumStates() int {
	return p.nfa.States()
}

// newCaptures creates capture slots initialized to -1 (unset).
// No slots are allocated when the caller does not want captures.
func (p *PikeVM) newCaptures(want bool) cowCaptures {
	if !want {
		return cowCaptures{}
	}
	data := make([]int, p.nfa.SlotCount())
	for i := range data {
		data[i] = -1
	}
	return cowCaptures{shared: &sharedCaptures{data: data, refs: 1}}
}

// Search finds the leftmost match starting at or after at, which must be a
// character boundary. On success it copies the capture slots of the match
// into slots (group k start at 2k, end at 2k+1) and returns true.
// slots may be nil when only the match/no-match answer is needed.
func (p *PikeVM) Search(state *PikeVMState, haystack []byte, at int, slots []int) bool {
	if at > len(haystack) {
		return false
	}
	if state.queue.set == nil || state.queue.set.Capacity() < p.nfa.States() {
		p.InitState(state)
	}
	for i := range slots {
		slots[i] = -1
	}

	clist, nlist := &state.queue, &state.nextQueue
	clist.clear()
	nlist.clear()

	wantCaps := len(slots) > 0
	matched := false
	start := p.nfa.Start()

	for pos := at; ; {
		if !matched {
			if len(clist.threads) == 0 && p.prefilter != nil {
				candidate := p.prefilter.Find(haystack, pos)
				if candidate < 0 {
					break
				}
				pos = candidate
			}
			// The new attempt has the lowest priority of this generation.
			p.addThread(clist, start, pos, p.newCaptures(wantCaps))
		}
		if len(clist.threads) == 0 {
			break
		}

		width := charWidth(haystack[pos:])
		if p.step(clist, nlist, haystack, pos, width, slots) {
			matched = true
		}
		if pos >= len(haystack) {
			break
		}
		pos += width
		clist, nlist = nlist, clist
		nlist.clear()
	}

	clist.clear()
	nlist.clear()
	return matched
}

// IsMatch returns true if the pattern matches anywhere in the haystack.
func (p *PikeVM) IsMatch(state *PikeVMState, haystack []byte) bool {
	return p.Search(state, haystack, 0, nil)
}

// step advances every thread of clist over the character at pos (width
// bytes, 0 at the end of input) into nlist. It returns true when a thread
// reached the match state; threads after it in priority order are dropped.
func (p *PikeVM) step(clist, nlist *threadQueue, haystack []byte, pos, width int, slots []int) bool {
	for i, t := range clist.threads {
		s := &p.nfa.states[t.state]
		switch s.kind {
		case StateMatch:
			copy(slots, t.captures.get())
			for _, rest := range clist.threads[i+1:] {
				rest.captures.release()
			}
			return true

		case StateRune:
			if width == len(s.char) && string(haystack[pos:pos+width]) == s.char {
				p.addThread(nlist, s.next, pos+width, t.captures)
				continue
			}

		case StateRuneAny:
			if width > 0 {
				p.addThread(nlist, s.next, pos+width, t.captures)
				continue
			}

		case StateRuneNotDelim:
			if width > 0 && !IsDelimiter(haystack[pos]) {
				p.addThread(nlist, s.next, pos+width, t.captures)
				continue
			}
		}
		t.captures.release()
	}
	return false
}

// addThread adds id and its epsilon closure at pos to q, following run loop
// bodies before exits so that q stays in priority order.
func (p *PikeVM) addThread(q *threadQueue, id StateID, pos int, caps cowCaptures) {
	if !q.set.Insert(uint32(id)) {
		caps.release()
		return
	}

	s := &p.nfa.states[id]
	switch s.kind {
	case StateRunLoop:
		p.addThread(q, s.body, pos, caps.clone())
		p.addThread(q, s.exit, pos, caps)

	case StateCapture:
		slot := int(s.captureIndex) * 2
		if !s.captureStart {
			slot++
		}
		p.addThread(q, s.next, pos, caps.update(slot, pos))

	default:
		q.threads = append(q.threads, thread{state: id, captures: caps})
	}
}
