package meta

import (
	"sync/atomic"
)

// Find returns the leftmost match in haystack, or nil if there is none.
func (e *Engine) Find(haystack []byte) *Match {
	slots := make([]int, 2)
	if !e.search(haystack, 0, slots) {
		return nil
	}
	return NewMatch(slots[0], slots[1], haystack)
}

// IsMatch returns true if the pattern matches anywhere in haystack.
func (e *Engine) IsMatch(haystack []byte) bool {
	return e.search(haystack, 0, nil)
}

// FindSubmatch returns the capture slots of the leftmost match, or nil if
// there is none. Group k occupies slots 2k (start) and 2k+1 (end); group 0
// is the whole match and group k >= 1 the k-th wildcard.
func (e *Engine) FindSubmatch(haystack []byte) []int {
	return e.FindSubmatchAt(haystack, 0)
}

// FindSubmatchAt is like FindSubmatch but only reports matches starting at
// or after at, which must be a character boundary.
func (e *Engine) FindSubmatchAt(haystack []byte, at int) []int {
	slots := make([]int, e.nfa.SlotCount())
	if !e.search(haystack, at, slots) {
		return nil
	}
	return slots
}

// search runs the selected strategy. slots may be nil or shorter than the
// full slot count when the caller needs fewer groups.
func (e *Engine) search(haystack []byte, at int, slots []int) bool {
	if at < 0 || at > len(haystack) {
		return false
	}
	if len(haystack)-at < e.minLen {
		atomic.AddUint64(&e.stats.ShortInputRejects, 1)
		return false
	}

	if e.prefilter != nil {
		if e.prefilter.IsComplete() {
			return e.searchLiteral(haystack, at, slots)
		}
		candidate := e.prefilter.Find(haystack, at)
		if candidate < 0 {
			atomic.AddUint64(&e.stats.PrefilterRejects, 1)
			return false
		}
		at = candidate
	}

	if e.required != nil && len(haystack)-at >= e.config.MinRequiredSetInput &&
		!e.required.AllPresent(haystack, at) {
		atomic.AddUint64(&e.stats.RequiredSetRejects, 1)
		return false
	}

	state := e.statePool.get()
	defer e.statePool.put(state)

	if e.strategy == UseBoundedBacktracker && e.boundedBacktracker.CanHandle(len(haystack)) {
		atomic.AddUint64(&e.stats.BacktrackSearches, 1)
		return e.boundedBacktracker.Search(state.backtracker, haystack, at, slots)
	}
	atomic.AddUint64(&e.stats.NFASearches, 1)
	return e.pikevm.Search(state.pikevm, haystack, at, slots)
}

// searchLiteral handles patterns without wildcards through their complete
// prefilter: a candidate is the whole match. Such patterns have only group 0.
func (e *Engine) searchLiteral(haystack []byte, at int, slots []int) bool {
	atomic.AddUint64(&e.stats.LiteralSearches, 1)
	start := e.prefilter.Find(haystack, at)
	if start < 0 {
		return false
	}
	if len(slots) >= 2 {
		slots[0] = start
		slots[1] = start + e.prefilter.LiteralLen()
	}
	return true
}
