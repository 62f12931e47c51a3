package meta

// Match represents a successful match with position information.
//
// A Match contains:
//   - Start position (inclusive)
//   - End position (exclusive)
//   - Reference to the original haystack
//
// Wildcard captures are reported by FindSubmatch as slot indices.
//
// Example:
//
//	match := meta.NewMatch(5, 11, []byte("test f(x y) end"))
//	println(match.String()) // "f(x y)"
type Match struct {
	start    int
	end      int
	haystack []byte
}

// NewMatch creates a new Match from start and end positions.
//
// The haystack is stored by reference (not copied) for efficiency.
// Callers must ensure the haystack remains valid for the lifetime of the Match.
func NewMatch(start, end int, haystack []byte) *Match {
	return &Match{
		start:    start,
		end:      end,
		haystack: haystack,
	}
}

// Start returns the inclusive start position of the match.
func (m *Match) Start() int {
	return m.start
}

// End returns the exclusive end position of the match.
func (m *Match) End() int {
	return m.end
}

// Len returns the length of the match in bytes.
func (m *Match) Len() int {
	return m.end - m.start
}

// Bytes returns the matched bytes, sharing memory with the haystack.
func (m *Match) Bytes() []byte {
	return m.haystack[m.start:m.end]
}

// String returns the matched text as a string.
func (m *Match) String() string {
	return string(m.haystack[m.start:m.end])
}

// IsEmpty returns true if the match has zero length.
func (m *Match) IsEmpty() bool {
	return m.start == m.end
}
