package simd

import "bytes"

// Memmem returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
//
// This is equivalent to bytes.Index. The search anchors on the rarest byte of
// the needle (by ByteRank), scans for it with Memchr and verifies each
// candidate in full.
//
// Example:
//
//	pos := simd.Memmem([]byte("(define (f x) x)"), []byte("(f"))
//	// pos == 8
func Memmem(haystack, needle []byte) int {
	needleLen := len(needle)
	haystackLen := len(haystack)

	// Empty needle matches at start (mimics bytes.Index behavior)
	if needleLen == 0 {
		return 0
	}
	if haystackLen == 0 || needleLen > haystackLen {
		return -1
	}
	if needleLen == 1 {
		return Memchr(haystack, needle[0])
	}

	rareByte, rareIdx := selectRareByte(needle)

	searchStart := rareIdx
	for searchStart < haystackLen {
		candidate := Memchr(haystack[searchStart:], rareByte)
		if candidate == -1 {
			return -1
		}
		candidate += searchStart

		start := candidate - rareIdx
		if start+needleLen > haystackLen {
			return -1
		}
		if bytes.Equal(haystack[start:start+needleLen], needle) {
			return start
		}
		searchStart = candidate + 1
	}
	return -1
}
