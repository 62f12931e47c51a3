package conv

import (
	"math"
	"testing"
)

func TestIntToUint32(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want uint32
	}{
		{"zero", 0, 0},
		{"small", 42, 42},
		{"max", math.MaxUint32, math.MaxUint32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntToUint32(tt.in); got != tt.want {
				t.Errorf("IntToUint32(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestIntToUint32Panics(t *testing.T) {
	for _, n := range []int{-1, math.MaxUint32 + 1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("IntToUint32(%d) did not panic", n)
				}
			}()
			IntToUint32(n)
		}()
	}
}

func TestUint32ToInt(t *testing.T) {
	if got := Uint32ToInt(7); got != 7 {
		t.Errorf("Uint32ToInt(7) = %d, want 7", got)
	}
}
