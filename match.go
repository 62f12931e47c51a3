package coreglob

// Match is the result of a successful search.
//
// A Match is self-contained: Groups holds copies of the captured text, so it
// stays valid after the input is modified or released.
type Match struct {
	// BeginByteIndex is the byte offset of the first matched byte.
	BeginByteIndex int

	// EndByteIndex is the byte offset just past the last matched byte.
	EndByteIndex int

	// Groups holds the text each wildcard consumed, in pattern order.
	Groups []string
}

// newMatch builds a Match from engine capture slots.
func newMatch(input []byte, slots []int, numGroups int) *Match {
	m := &Match{
		BeginByteIndex: slots[0],
		EndByteIndex:   slots[1],
		Groups:         make([]string, numGroups),
	}
	for k := 1; k <= numGroups; k++ {
		start, end := slots[2*k], slots[2*k+1]
		if start < 0 || end < 0 {
			continue
		}
		m.Groups[k-1] = string(input[start:end])
	}
	return m
}

// Len returns the length of the match in bytes.
func (m *Match) Len() int {
	return m.EndByteIndex - m.BeginByteIndex
}

// Span returns the matched byte range as a two-element slice, in the form
// used by regexp's FindIndex.
func (m *Match) Span() []int {
	return []int{m.BeginByteIndex, m.EndByteIndex}
}
