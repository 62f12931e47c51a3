package simd

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestMemmemBasic(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		want     int
	}{
		{"empty_needle", "abc", "", 0},
		{"empty_haystack", "", "a", -1},
		{"needle_longer", "ab", "abc", -1},
		{"single_byte", "hello", "l", 2},
		{"prefix", "hello world", "hello", 0},
		{"suffix", "hello world", "world", 6},
		{"not_found", "hello world", "xyz", -1},
		{"overlapping_candidates", "aaaaaabaaaa", "aab", 4},
		{"rare_byte_in_middle", "(define (f x) x)", "(f", 8},
		{"exact", "abc", "abc", 0},
		{"partial_at_end", "abcab", "abc", 0},
		{"repeat_rare_byte", "xQxQxQy", "Qy", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Memmem([]byte(tt.haystack), []byte(tt.needle))
			if got != tt.want {
				t.Errorf("Memmem(%q, %q) = %d, want %d", tt.haystack, tt.needle, got, tt.want)
			}
			if std := strings.Index(tt.haystack, tt.needle); got != std {
				t.Errorf("Memmem != stdlib: got %d, stdlib %d", got, std)
			}
		})
	}
}

func TestMemmemSizes(t *testing.T) {
	needle := []byte("(car;")
	for _, size := range []int{5, 8, 31, 32, 33, 100, 1000} {
		t.Run(fmt.Sprintf("size_%d", size), func(t *testing.T) {
			haystack := bytes.Repeat([]byte{'('}, size)
			if got := Memmem(haystack, needle); got != -1 {
				t.Fatalf("got %d, want -1", got)
			}
			copy(haystack[size-len(needle):], needle)
			if got := Memmem(haystack, needle); got != size-len(needle) {
				t.Errorf("got %d, want %d", got, size-len(needle))
			}
		})
	}
}

func BenchmarkMemmem(b *testing.B) {
	haystack := bytes.Repeat([]byte("(list (a b) c); "), 4096)
	needle := []byte("(quote")
	haystack = append(haystack, needle...)
	b.SetBytes(int64(len(haystack)))
	for i := 0; i < b.N; i++ {
		Memmem(haystack, needle)
	}
}

func FuzzMemmem(f *testing.F) {
	f.Add([]byte("hello world"), []byte("wor"))
	f.Add([]byte("aaaa"), []byte("aa"))
	f.Fuzz(func(t *testing.T, haystack, needle []byte) {
		if got, want := Memmem(haystack, needle), bytes.Index(haystack, needle); got != want {
			t.Errorf("Memmem(%q, %q) = %d, want %d", haystack, needle, got, want)
		}
	})
}
