package simd

import (
	"encoding/binary"
	"math/bits"
)

const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
)

// zeroBytes returns a word with the high bit set in every byte of v that is
// zero (Hacker's Delight zero-byte detection).
func zeroBytes(v uint64) uint64 {
	return (v - lo8) & ^v & hi8
}

// memchrGeneric implements pure Go byte search using SWAR.
// It processes 8 bytes at a time using uint64 bitwise operations:
//  1. Broadcast needle to every byte of a uint64 mask
//  2. XOR each 8-byte chunk with the mask (matching bytes become 0x00)
//  3. Locate the first zero byte with the trailing zero count
func memchrGeneric(haystack []byte, needle byte) int {
	n := len(haystack)
	if n < 8 {
		for i := 0; i < n; i++ {
			if haystack[i] == needle {
				return i
			}
		}
		return -1
	}

	mask := uint64(needle) * lo8

	i := 0
	for ; i+8 <= n; i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		if found := zeroBytes(chunk ^ mask); found != 0 {
			return i + bits.TrailingZeros64(found)/8
		}
	}

	for ; i < n; i++ {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}

// memchr3Generic searches for any of three needles using SWAR, checking all
// three in parallel within each 8-byte chunk.
func memchr3Generic(haystack []byte, needle1, needle2, needle3 byte) int {
	n := len(haystack)
	if n < 8 {
		for i := 0; i < n; i++ {
			c := haystack[i]
			if c == needle1 || c == needle2 || c == needle3 {
				return i
			}
		}
		return -1
	}

	mask1 := uint64(needle1) * lo8
	mask2 := uint64(needle2) * lo8
	mask3 := uint64(needle3) * lo8

	i := 0
	for ; i+8 <= n; i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		found := zeroBytes(chunk^mask1) | zeroBytes(chunk^mask2) | zeroBytes(chunk^mask3)
		if found != 0 {
			return i + bits.TrailingZeros64(found)/8
		}
	}

	for ; i < n; i++ {
		c := haystack[i]
		if c == needle1 || c == needle2 || c == needle3 {
			return i
		}
	}
	return -1
}
