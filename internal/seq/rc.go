// internal/seq/rc.go
package seq

import "unicode/utf8"

var complement [256]byte

func init() {
	for i := range complement {
		complement[i] = byte(i)
	}
	complement['A'] = 'T'
	complement['T'] = 'A'
	complement['C'] = 'G'
	complement['G'] = 'C'
}

// RevComp reverses s and complements A<->T, C<->G.
// Any other character (N, lowercase, IUPAC codes, non-ASCII) is copied
// through unchanged. Multi-byte characters are reversed as whole runes.
func RevComp(s string) string {
	n := len(s)
	if n == 0 {
		return ""
	}
	if !isASCII(s) {
		return revCompRunes(s)
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = complement[s[n-1-i]]
	}
	return string(out)
}

func revCompRunes(s string) string {
	rs := []rune(s)
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}
	for i, r := range rs {
		if r < utf8.RuneSelf {
			rs[i] = rune(complement[r])
		}
	}
	return string(rs)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// IsACGT reports whether s contains only unambiguous uppercase bases.
func IsACGT(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'A', 'C', 'G', 'T':
		default:
			return false
		}
	}
	return true
}
