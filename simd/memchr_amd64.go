//go:build amd64

// Package simd provides accelerated byte-scanning primitives for the glob
// engine: finding a literal byte (Memchr), finding the next structural
// delimiter (Memchr3) and finding a literal substring (Memmem).
//
// On x86-64 the package detects CPU features at start-up and routes large
// single-byte scans to the Go runtime's vectorized IndexByte when AVX2 is
// present. Everything else uses SWAR (SIMD Within A Register) code that
// processes 8 bytes per iteration in pure Go.
package simd

import (
	"bytes"

	"golang.org/x/sys/cpu"
)

// CPU feature detection flags set at package initialization.
var (
	// hasAVX2 indicates whether the CPU supports AVX2 instructions (256-bit SIMD).
	// The runtime's IndexByte uses AVX2 when it is available, which beats
	// SWAR on inputs of a few dozen bytes and up.
	hasAVX2 = cpu.X86.HasAVX2
)

// vectorThreshold is the minimum haystack length worth handing to the
// vectorized runtime routine.
const vectorThreshold = 32

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
//
// Example:
//
//	pos := simd.Memchr([]byte("(a b)"), ' ')
//	// pos == 2
func Memchr(haystack []byte, needle byte) int {
	if len(haystack) == 0 {
		return -1
	}
	if hasAVX2 && len(haystack) >= vectorThreshold {
		return bytes.IndexByte(haystack, needle)
	}
	return memchrGeneric(haystack, needle)
}

// Memchr3 returns the index of the first instance of needle1, needle2, or
// needle3 in haystack, or -1 if none are present.
//
// The glob engine calls it with the delimiter set '(', ')', ';' to find how
// far a multi-character wildcard may extend.
//
// Example:
//
//	pos := simd.Memchr3([]byte("abc;def"), '(', ')', ';')
//	// pos == 3
func Memchr3(haystack []byte, needle1, needle2, needle3 byte) int {
	return memchr3Generic(haystack, needle1, needle2, needle3)
}
