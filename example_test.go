package coreglob_test

import (
	"errors"
	"fmt"

	"github.com/coregx/coreglob"
)

func ExampleCompile() {
	p, err := coreglob.Compile("(define (*) *)")
	if err != nil {
		panic(err)
	}
	m := p.FirstMatch("(let x) (define (sq) y)")
	fmt.Println(m.BeginByteIndex, m.EndByteIndex, m.Groups)
	// Output: 8 23 [sq y]
}

func ExampleCompile_adjacentWildcards() {
	_, err := coreglob.Compile("a**b")
	fmt.Println(errors.Is(err, coreglob.ErrAdjacentWildcards))
	fmt.Println(err)
	// Output:
	// true
	// invalid pattern "a**b" at offset 2: adjacent '*' wildcards with nothing between them
}

func ExamplePattern_FirstMatch() {
	p := coreglob.MustCompile("a*c")
	m := p.FirstMatch("xxabcabc")
	fmt.Println(m.Span(), m.Groups)
	// Output: [2 8] [bcab]
}

func ExamplePattern_FirstMatch_delimiters() {
	// '*' never crosses '(', ')' or ';' but '.' matches any character.
	p := coreglob.MustCompile("f(*)")
	fmt.Println(p.FirstMatch("f(g(x))"))
	fmt.Println(p.FirstMatch("f(g(x)) f(y)").Groups)

	q := coreglob.MustCompile("f(.)")
	fmt.Println(q.FirstMatch("f(()").Groups)
	// Output:
	// <nil>
	// [y]
	// [(]
}

func ExampleQuoteMeta() {
	p := coreglob.MustCompile(coreglob.QuoteMeta("a*b"))
	fmt.Println(p.MatchString("a*b"), p.MatchString("axxb"))
	// Output: true false
}
