package literal

import (
	"github.com/coregx/coreglob/syntax"
)

// ExtractPrefix returns the verbatim run every match begins with: the
// characters before the first wildcard. The literal is Complete when the
// pattern has no wildcards at all. Returns an empty literal when the pattern
// starts with a wildcard.
//
// Example:
//
//	lit := literal.ExtractPrefix(syntax.Parse(`(define *)`))
//	// lit.Bytes == "(define ", lit.Complete == false
func ExtractPrefix(parts syntax.Parts) Literal {
	var buf []byte
	for _, p := range parts {
		if p.IsWildcard() {
			return NewLiteral(buf, false)
		}
		buf = append(buf, p.Char...)
	}
	return NewLiteral(buf, true)
}

// ExtractRuns returns every maximal verbatim run of the pattern, in pattern
// order. Each run must occur in any text the pattern matches, at or after
// the match start. A pattern without wildcards yields a single Complete run.
//
// Example:
//
//	seq := literal.ExtractRuns(syntax.Parse(`f(*, *)`))
//	// ["f(", ", ", ")"]
func ExtractRuns(parts syntax.Parts) *Seq {
	seq := NewSeq()
	var buf []byte
	flush := func() {
		if len(buf) > 0 {
			seq.literals = append(seq.literals, NewLiteral(buf, false))
			buf = nil
		}
	}
	wildcards := 0
	for _, p := range parts {
		if p.IsWildcard() {
			wildcards++
			flush()
			continue
		}
		buf = append(buf, p.Char...)
	}
	flush()

	if wildcards == 0 && seq.Len() == 1 {
		seq.literals[0].Complete = true
	}
	return seq
}

// IsExact reports whether the pattern has no wildcards, so that it matches
// exactly one text.
func IsExact(parts syntax.Parts) bool {
	return parts.CountWildcards() == 0
}

// MinMatchLen returns the minimum length in bytes of any match: the verbatim
// bytes plus one byte per AnyCharacter.
func MinMatchLen(parts syntax.Parts) int {
	n := 0
	for _, p := range parts {
		switch p.Kind {
		case syntax.VerbatimChar:
			n += len(p.Char)
		case syntax.AnyCharacter:
			n++
		}
	}
	return n
}
