//go:build !amd64

// Package simd provides accelerated byte-scanning primitives for the glob
// engine: finding a literal byte (Memchr), finding the next structural
// delimiter (Memchr3) and finding a literal substring (Memmem).
//
// On non-AMD64 platforms every primitive uses SWAR (SIMD Within A Register)
// code that processes 8 bytes per iteration in pure Go.
package simd

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
func Memchr(haystack []byte, needle byte) int {
	return memchrGeneric(haystack, needle)
}

// Memchr3 returns the index of the first instance of needle1, needle2, or
// needle3 in haystack, or -1 if none are present.
func Memchr3(haystack []byte, needle1, needle2, needle3 byte) int {
	return memchr3Generic(haystack, needle1, needle2, needle3)
}
