package syntax

// QuoteMeta returns a string that escapes every special character of the
// pattern language inside the argument text; the returned string is a
// pattern matching the literal text.
//
// Example:
//
//	syntax.QuoteMeta(`a*b.c`)
//	// `a\*b\.c`
func QuoteMeta(s string) string {
	// Count how many characters need escaping
	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i]) {
			buf[j] = Escape
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}
