// internal/seq/hamming.go
package seq

import "unicode/utf8"

// Hamming counts positions where a and b differ, over the common prefix only.
// Positions are characters: a multi-byte rune is one position.
// Characters past the shorter string are not mismatches.
func Hamming(a, b string) int {
	return HammingAtMost(a, b, len(a)+len(b))
}

// HammingAtMost is Hamming with an early exit: once the count exceeds limit
// it returns limit+1. The result equals Hamming(a, b) whenever that is <= limit.
func HammingAtMost(a, b string, limit int) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	mm := 0
	for i := 0; i < n; i++ {
		if a[i] >= utf8.RuneSelf || b[i] >= utf8.RuneSelf {
			// everything before i is ASCII in both, so byte and rune
			// positions agree up to here
			return hammingRunes(a[i:], b[i:], mm, limit)
		}
		if a[i] != b[i] {
			mm++
			if mm > limit {
				return limit + 1
			}
		}
	}
	return mm
}

func hammingRunes(a, b string, mm, limit int) int {
	for len(a) > 0 && len(b) > 0 {
		ra, na := utf8.DecodeRuneInString(a)
		rb, nb := utf8.DecodeRuneInString(b)
		if ra != rb || (ra == utf8.RuneError && a[:na] != b[:nb]) {
			mm++
			if mm > limit {
				return limit + 1
			}
		}
		a, b = a[na:], b[nb:]
	}
	return mm
}
