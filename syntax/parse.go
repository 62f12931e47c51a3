// Package syntax parses glob pattern text into a sequence of parts.
//
// The pattern language has three constructs:
//
//	*     AnySequence: zero or more characters, never crossing '(', ')' or ';'
//	.     AnyCharacter: exactly one character
//	c     VerbatimChar: the character c itself
//
// A backslash escapes the three special characters: `\*`, `\.` and `\\` each
// produce a VerbatimChar of the escaped character. A backslash followed by any
// other character (or by the end of the pattern) is a literal backslash, and
// the character after it is parsed on its own.
//
// Parsing never fails. Structural validation (adjacent AnySequence parts) is
// the compiler's job, see package nfa.
package syntax

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind identifies the type of a pattern part.
type Kind uint8

const (
	// VerbatimChar matches one specific character.
	VerbatimChar Kind = iota

	// AnyCharacter matches exactly one arbitrary character.
	AnyCharacter

	// AnySequence matches zero or more characters other than the delimiters.
	AnySequence
)

// String returns a human-readable representation of the Kind
func (k Kind) String() string {
	switch k {
	case VerbatimChar:
		return "VerbatimChar"
	case AnyCharacter:
		return "AnyCharacter"
	case AnySequence:
		return "AnySequence"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Special characters of the pattern language.
const (
	Star   = '*'
	Dot    = '.'
	Escape = '\\'
)

// Flags control parser behavior.
type Flags uint8

const (
	// EscapeAny makes a backslash escape whatever character follows it,
	// not only the three special characters. A trailing backslash still
	// parses as a literal backslash.
	EscapeAny Flags = 1 << iota
)

// Part is one logical unit of a parsed pattern.
type Part struct {
	Kind Kind

	// Char holds the raw bytes of the character for VerbatimChar parts and
	// is empty otherwise. Invalid UTF-8 in the pattern yields one-byte chars.
	Char string

	// Pos is the byte offset in the pattern text where the part begins
	// (the backslash, for escaped characters).
	Pos int
}

// IsWildcard reports whether the part captures input (AnyCharacter or AnySequence).
func (p Part) IsWildcard() bool {
	return p.Kind == AnyCharacter || p.Kind == AnySequence
}

// String renders the part as canonical pattern text.
func (p Part) String() string {
	switch p.Kind {
	case AnyCharacter:
		return string(Dot)
	case AnySequence:
		return string(Star)
	default:
		if len(p.Char) == 1 && isSpecial(p.Char[0]) {
			return string(Escape) + p.Char
		}
		return p.Char
	}
}

// Parts is a parsed pattern.
type Parts []Part

// String renders the parts back into pattern text that parses to the same
// sequence under the default flags.
func (ps Parts) String() string {
	var sb strings.Builder
	for _, p := range ps {
		sb.WriteString(p.String())
	}
	return sb.String()
}

// CountWildcards returns the number of capturing parts.
func (ps Parts) CountWildcards() int {
	n := 0
	for _, p := range ps {
		if p.IsWildcard() {
			n++
		}
	}
	return n
}

// Parse converts pattern text into parts using the default escape policy.
//
// Example:
//
//	parts := syntax.Parse(`a\*.*`)
//	// [VerbatimChar "a", VerbatimChar "*", AnyCharacter, AnySequence]
func Parse(pattern string) Parts {
	return ParseWithFlags(pattern, 0)
}

// ParseWithFlags converts pattern text into parts.
func ParseWithFlags(pattern string, flags Flags) Parts {
	parts := make(Parts, 0, len(pattern))
	for pos := 0; pos < len(pattern); {
		part, width := parseOne(pattern, pos, flags)
		parts = append(parts, part)
		pos += width
	}
	return parts
}

// parseOne parses the logical unit at pattern[pos:] and returns it with the
// number of source bytes it consumed.
func parseOne(pattern string, pos int, flags Flags) (Part, int) {
	c, width := takeChar(pattern, pos)
	switch c {
	case string(Star):
		return Part{Kind: AnySequence, Pos: pos}, width
	case string(Dot):
		return Part{Kind: AnyCharacter, Pos: pos}, width
	case string(Escape):
		next, nextWidth := takeChar(pattern, pos+width)
		if next == "" {
			return Part{Kind: VerbatimChar, Char: c, Pos: pos}, width
		}
		if flags&EscapeAny != 0 || (len(next) == 1 && isSpecial(next[0])) {
			return Part{Kind: VerbatimChar, Char: next, Pos: pos}, width + nextWidth
		}
		// Unrecognized escape: the backslash is literal and the next
		// character is parsed in the following step.
		return Part{Kind: VerbatimChar, Char: c, Pos: pos}, width
	default:
		return Part{Kind: VerbatimChar, Char: c, Pos: pos}, width
	}
}

// takeChar returns the character starting at s[pos:] as raw bytes, or "" at
// the end of s.
func takeChar(s string, pos int) (string, int) {
	if pos >= len(s) {
		return "", 0
	}
	_, width := utf8.DecodeRuneInString(s[pos:])
	return s[pos : pos+width], width
}

func isSpecial(c byte) bool {
	return c == Star || c == Dot || c == Escape
}
