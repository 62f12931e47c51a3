package simd_test

import (
	"fmt"

	"github.com/coregx/coreglob/simd"
)

// ExampleMemmem demonstrates substring search.
func ExampleMemmem() {
	pos := simd.Memmem([]byte("(define (f x) x)"), []byte("(f"))
	fmt.Println(pos)
	// Output: 8
}

// ExampleMemchr3 demonstrates finding the next list delimiter.
func ExampleMemchr3() {
	pos := simd.Memchr3([]byte("alpha beta;gamma"), '(', ')', ';')
	fmt.Println(pos)
	// Output: 10
}
