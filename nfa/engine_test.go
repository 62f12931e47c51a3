package nfa

import (
	"reflect"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/coregx/coreglob/syntax"
)

// searchBoth runs the pattern through both engines and fails the test when
// they disagree. It returns the slots of the match, or nil.
func searchBoth(t testing.TB, n *NFA, haystack string) []int {
	t.Helper()
	h := []byte(haystack)

	bt := NewBoundedBacktracker(n)
	if !bt.CanHandle(len(h)) {
		t.Fatalf("backtracker cannot handle %d bytes", len(h))
	}
	btSlots := make([]int, n.SlotCount())
	btOK := bt.Search(NewBacktrackerState(), h, 0, btSlots)

	vm := NewPikeVM(n)
	vmSlots := make([]int, n.SlotCount())
	vmOK := vm.Search(NewPikeVMState(), h, 0, vmSlots)

	if btOK != vmOK || (btOK && !reflect.DeepEqual(btSlots, vmSlots)) {
		t.Fatalf("engines disagree on %q: backtracker=%v %v, pikevm=%v %v",
			haystack, btOK, btSlots, vmOK, vmSlots)
	}
	if !btOK {
		return nil
	}
	return btSlots
}

func TestEngines(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		haystack string
		want     []int
	}{
		{"any_char", "a.c", "xaQc", []int{1, 4, 2, 3}},
		{"sequence", "a*c", "a123c", []int{0, 5, 1, 4}},
		{"sequence_blocked_by_paren", "a*c", "a(1)c", nil},
		{"sequence_empty", "a*c", "ac", []int{0, 2, 1, 1}},
		{"escaped_star", `a\*c`, "a*c", []int{0, 3}},
		{"empty_pattern", "", "abc", []int{0, 0}},
		{"empty_pattern_empty_input", "", "", []int{0, 0}},
		{"star_on_empty", "*", "", []int{0, 0, 0, 0}},
		{"star_before_delimiter", "*", "(x", []int{0, 0, 0, 0}},
		{"star_whole_run", "*", "abc;d", []int{0, 3, 0, 3}},
		{"star_stops_at_semicolon", "b*", "ab;c", []int{1, 2, 2, 2}},
		{"greedy", "a*b", "axbyb", []int{0, 5, 1, 4}},
		{"greedy_bounded_by_delimiter", "a*b", "axb;yb", []int{0, 3, 1, 2}},
		{"restart_after_delimiter", "a*b", "a;b ab", []int{4, 6, 5, 5}},
		{"leftmost", "b", "abcb", []int{1, 2}},
		{"dot_matches_delimiter", ".", "(", []int{0, 1, 0, 1}},
		{"dot_matches_newline", "a.b", "a\nb", []int{0, 3, 1, 2}},
		{"star_spans_newline", "a*b", "a\n\nb", []int{0, 4, 1, 3}},
		{"dot_then_star", "a.*", "ab(cd", []int{0, 2, 1, 2, 2, 2}},
		{"star_then_literal_delimiter", "*;", "ab;cd;", []int{0, 3, 0, 2}},
		{"literal_parens", "(*)", "f (x y) z", []int{2, 7, 3, 6}},
		{"literal_parens_nested", "(*)", "((a))", []int{1, 4, 2, 3}},
		{"multibyte_dot", ".", "é", []int{0, 2, 0, 2}},
		{"multibyte_star", "*ü", "aéü", []int{0, 5, 0, 3}},
		{"multibyte_star_to_end", "a*", "xaé€", []int{1, 7, 2, 7}},
		{"multibyte_literal", "ü", "aéü", []int{3, 5}},
		{"invalid_byte_is_one_char", ".x", "\xffx", []int{0, 2, 0, 1}},
		{"partial_rune_no_match", "é", "\xc3", nil},
		{"lead_byte_literal_does_not_split", "\xc3", "é", nil},
		{"no_match", "abc", "abd", nil},
		{"longer_than_input", "abcd", "abc", nil},
		{"two_sequences", "*,*", "ab,cd,ef", []int{0, 8, 0, 5, 6, 8}},
		{"dot_needs_char", "ab.", "ab", nil},
		{"many_dots", "...", "xyzw", []int{0, 3, 0, 1, 1, 2, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := mustCompile(t, tt.pattern)
			got := searchBoth(t, n, tt.haystack)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("pattern %q on %q = %v, want %v", tt.pattern, tt.haystack, got, tt.want)
			}
		})
	}
}

func TestEnginesSearchAt(t *testing.T) {
	n := mustCompile(t, "a*")
	h := []byte("ab(ac")
	slots := make([]int, n.SlotCount())

	bt := NewBoundedBacktracker(n)
	if !bt.Search(NewBacktrackerState(), h, 1, slots) {
		t.Fatal("backtracker: no match from 1")
	}
	if slots[0] != 3 || slots[1] != 5 {
		t.Errorf("backtracker match = [%d, %d], want [3, 5]", slots[0], slots[1])
	}

	vm := NewPikeVM(n)
	if !vm.Search(NewPikeVMState(), h, 1, slots) {
		t.Fatal("pikevm: no match from 1")
	}
	if slots[0] != 3 || slots[1] != 5 {
		t.Errorf("pikevm match = [%d, %d], want [3, 5]", slots[0], slots[1])
	}

	if bt.Search(NewBacktrackerState(), h, 6, slots) || vm.Search(NewPikeVMState(), h, 6, slots) {
		t.Error("search past the end should fail")
	}
}

func TestEnginesIsMatch(t *testing.T) {
	n := mustCompile(t, "f(*)")
	bt := NewBoundedBacktracker(n)
	vm := NewPikeVM(n)
	bs := NewBacktrackerState()
	ps := NewPikeVMState()

	for _, tt := range []struct {
		haystack string
		want     bool
	}{
		{"(f(x))", true},
		{"f()", true},
		{"f(a;b)", false},
		{"g(x)", false},
	} {
		if got := bt.IsMatch(bs, []byte(tt.haystack)); got != tt.want {
			t.Errorf("backtracker IsMatch(%q) = %v", tt.haystack, got)
		}
		if got := vm.IsMatch(ps, []byte(tt.haystack)); got != tt.want {
			t.Errorf("pikevm IsMatch(%q) = %v", tt.haystack, got)
		}
	}
}

func TestShortSlots(t *testing.T) {
	n := mustCompile(t, "a*c")
	h := []byte("xabc")
	slots := make([]int, 2)

	if !NewBoundedBacktracker(n).Search(NewBacktrackerState(), h, 0, slots) {
		t.Fatal("backtracker: no match")
	}
	if slots[0] != 1 || slots[1] != 4 {
		t.Errorf("backtracker slots = %v", slots)
	}
	if !NewPikeVM(n).Search(NewPikeVMState(), h, 0, slots) {
		t.Fatal("pikevm: no match")
	}
	if slots[0] != 1 || slots[1] != 4 {
		t.Errorf("pikevm slots = %v", slots)
	}
}

func TestBacktrackerCanHandle(t *testing.T) {
	n := mustCompile(t, "a*b")
	bt := NewBoundedBacktracker(n)
	if bt.MaxVisitedSize() != defaultMaxVisitedSize {
		t.Errorf("MaxVisitedSize() = %d", bt.MaxVisitedSize())
	}

	bt.SetMaxVisitedSize(n.States() * 11)
	if !bt.CanHandle(10) {
		t.Error("CanHandle(10) = false at exact limit")
	}
	if bt.CanHandle(11) {
		t.Error("CanHandle(11) = true over the limit")
	}
	if bt.Search(NewBacktrackerState(), []byte("aaaaaaaaaaab"), 0, nil) {
		t.Error("Search over the limit should report false")
	}

	bt.SetMaxVisitedSize(0)
	if bt.MaxVisitedSize() != defaultMaxVisitedSize {
		t.Errorf("SetMaxVisitedSize(0) left %d", bt.MaxVisitedSize())
	}
}

// onlyAt is a prefilter reporting candidates at a fixed set of positions.
type onlyAt []int

func (o onlyAt) Find(_ []byte, start int) int {
	for _, p := range o {
		if p >= start {
			return p
		}
	}
	return -1
}

func TestEnginesWithPrefilter(t *testing.T) {
	n := mustCompile(t, "ab*")
	h := []byte("ab ab ab")

	bt := NewBoundedBacktracker(n)
	bt.SetPrefilter(onlyAt{3, 6})
	vm := NewPikeVM(n)
	vm.SetPrefilter(onlyAt{3, 6})

	slots := make([]int, n.SlotCount())
	if !bt.Search(NewBacktrackerState(), h, 0, slots) || slots[0] != 3 {
		t.Errorf("backtracker with prefilter = %v", slots)
	}
	if !vm.Search(NewPikeVMState(), h, 0, slots) || slots[0] != 3 {
		t.Errorf("pikevm with prefilter = %v", slots)
	}

	bt.SetPrefilter(onlyAt{})
	vm.SetPrefilter(onlyAt{})
	if bt.IsMatch(NewBacktrackerState(), h) || vm.IsMatch(NewPikeVMState(), h) {
		t.Error("empty prefilter must rule out every start")
	}
}

func TestPikeVMStateReuse(t *testing.T) {
	small := mustCompile(t, "a")
	large := mustCompile(t, strings.Repeat("a.", 20))
	st := NewPikeVMState()

	if !NewPikeVM(small).IsMatch(st, []byte("xa")) {
		t.Fatal("small pattern did not match")
	}
	h := []byte(strings.Repeat("ab", 20))
	if !NewPikeVM(large).IsMatch(st, h) {
		t.Fatal("large pattern did not match with reused state")
	}
}

// TestBacktrackerLongRuns checks that a failing search over long
// delimiter-free runs completes; each (state, position) pair is explored
// once, so this stays linear.
func TestBacktrackerLongRuns(t *testing.T) {
	n := mustCompile(t, "*x*y")
	h := []byte(strings.Repeat("x", 20000))
	bt := NewBoundedBacktracker(n)
	if !bt.CanHandle(len(h)) {
		t.Skip("input too large for default limit")
	}
	if bt.IsMatch(NewBacktrackerState(), h) {
		t.Error("unexpected match")
	}
}

// toRegexp translates a parsed glob into an equivalent RE2 expression with
// one capture group per wildcard.
func toRegexp(parts syntax.Parts) string {
	var sb strings.Builder
	for _, p := range parts {
		switch p.Kind {
		case syntax.VerbatimChar:
			sb.WriteString(regexp.QuoteMeta(p.Char))
		case syntax.AnyCharacter:
			sb.WriteString(`((?s:.))`)
		case syntax.AnySequence:
			sb.WriteString(`([^();]*)`)
		}
	}
	return sb.String()
}

func TestEnginesMatchStdlib(t *testing.T) {
	patterns := []string{"a*c", "*", ".", "(*)", "*;*", "x.*y", `a\.b*`, "é*ü", "*.*"}
	haystacks := []string{"", "abc", "a123c", "(x)(y)", "a;b;c", "xqzzy", "a.bbb", "aéü", "x(y.z)w", "\xff(a)"}

	for _, pattern := range patterns {
		parts := syntax.Parse(pattern)
		n := mustCompile(t, pattern)
		re := regexp.MustCompile(toRegexp(parts))
		for _, h := range haystacks {
			got := searchBoth(t, n, h)
			want := re.FindStringSubmatchIndex(h)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("pattern %q on %q = %v, regexp says %v", pattern, h, got, want)
			}
		}
	}
}

func FuzzEnginesMatchStdlib(f *testing.F) {
	f.Add("a*c", "xa(b)c a;c abc")
	f.Add("(.*)", "f (x y) z")
	f.Add(`\**.`, "**(a)")
	f.Fuzz(func(t *testing.T, pattern, haystack string) {
		if !utf8.ValidString(pattern) || strings.ContainsRune(pattern, utf8.RuneError) {
			t.Skip()
		}
		if len(pattern) > 64 || len(haystack) > 512 {
			t.Skip()
		}
		parts := syntax.Parse(pattern)
		n, err := Compile(parts)
		if err != nil {
			t.Skip()
		}
		re, err := regexp.Compile(toRegexp(parts))
		if err != nil {
			t.Fatalf("translated pattern %q does not compile: %v", toRegexp(parts), err)
		}
		got := searchBoth(t, n, haystack)
		want := re.FindStringSubmatchIndex(haystack)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("pattern %q on %q = %v, regexp says %v", pattern, haystack, got, want)
		}
	})
}

func BenchmarkBacktracker(b *testing.B) {
	n := mustCompile(b, "(define (*) *)")
	h := []byte(strings.Repeat("(let ((x 1)) x) ", 200) + "(define (f) x)")
	bt := NewBoundedBacktracker(n)
	st := NewBacktrackerState()
	slots := make([]int, n.SlotCount())
	b.SetBytes(int64(len(h)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bt.Search(st, h, 0, slots)
	}
}

func BenchmarkPikeVM(b *testing.B) {
	n := mustCompile(b, "(define (*) *)")
	h := []byte(strings.Repeat("(let ((x 1)) x) ", 200) + "(define (f) x)")
	vm := NewPikeVM(n)
	st := NewPikeVMState()
	slots := make([]int, n.SlotCount())
	b.SetBytes(int64(len(h)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		vm.Search(st, h, 0, slots)
	}
}
