package meta

import (
	"sync"

	"github.com/coregx/coreglob/nfa"
)

// SearchState holds per-search mutable state for thread-safe concurrent searches.
// This struct is obtained from a sync.Pool so that the same compiled Engine
// can be used from multiple goroutines.
//
// Usage pattern:
//
//	state := e.statePool.get()
//	defer e.statePool.put(state)
//	// use state for search operations
//
// Thread safety: Each goroutine must use its own SearchState instance.
type SearchState struct {
	// backtracker holds the visited table for BoundedBacktracker searches.
	backtracker *nfa.BacktrackerState

	// pikevm holds the thread queues for PikeVM searches.
	pikevm *nfa.PikeVMState
}

// newSearchState creates a new SearchState sized for the given PikeVM.
func newSearchState(vm *nfa.PikeVM) *SearchState {
	state := &SearchState{
		backtracker: nfa.NewBacktrackerState(),
		pikevm:      nfa.NewPikeVMState(),
	}
	vm.InitState(state.pikevm)
	return state
}

// searchStatePool manages a pool of SearchState instances for thread-safe reuse.
// This follows the stdlib regexp pattern of using sync.Pool for concurrent safety.
type searchStatePool struct {
	pool sync.Pool
}

// newSearchStatePool creates a pool configured for the given PikeVM.
func newSearchStatePool(vm *nfa.PikeVM) *searchStatePool {
	p := &searchStatePool{}
	p.pool = sync.Pool{
		New: func() any {
			return newSearchState(vm)
		},
	}
	return p
}

// get retrieves a SearchState from the pool, creating one if necessary.
func (p *searchStatePool) get() *SearchState {
	return p.pool.Get().(*SearchState)
}

// put returns a SearchState to the pool for reuse.
func (p *searchStatePool) put(state *SearchState) {
	if state == nil {
		return
	}
	p.pool.Put(state)
}
