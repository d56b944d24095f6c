// Package mutants enumerates stem variants of a hairpin guide template: k
// of its base pairs are swapped for a different Watson-Crick pair, and the
// results are filtered on GC content and homopolymer runs.
package mutants

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DefaultTemplate is the sgRNA scaffold the candidate sets were built from.
const DefaultTemplate = "GTTCGAGAGCTATGCTGGAAACAGCATAGCAAGTTCGAA"

// DefaultPairs are the stem pairs of DefaultTemplate, 1-based "i:j".
const DefaultPairs = "2:39,3:38,4:37,5:36,6:35,9:30,10:29,11:28,12:27,13:26,14:25,15:24,16:23,17:22"

// basePairs are the allowed replacement pairs, in emission order.
var basePairs = [...]string{"AT", "TA", "GC", "CG"}

// Pair holds 0-based positions of two paired bases.
type Pair struct{ I, J int }

// Filter decides which variants are kept.
type Filter struct {
	GCMin, GCMax float64 // inclusive GC fraction bounds
	MaxRun       int     // longest allowed homopolymer run (0 = no limit)
}

// DefaultFilter keeps 30-70% GC and no run of four identical bases.
var DefaultFilter = Filter{GCMin: 0.3, GCMax: 0.7, MaxRun: 3}

// Candidate is one emitted variant.
type Candidate struct {
	K   int
	Seq string
}

// ParsePairs parses "i:j,i:j,..." with 1-based positions.
func ParsePairs(s string) ([]Pair, error) {
	var out []Pair
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		a, b, ok := strings.Cut(tok, ":")
		if !ok {
			return nil, errors.Errorf("bad pair %q (want i:j)", tok)
		}
		i, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return nil, errors.Wrapf(err, "bad pair %q", tok)
		}
		j, err := strconv.Atoi(strings.TrimSpace(b))
		if err != nil {
			return nil, errors.Wrapf(err, "bad pair %q", tok)
		}
		if i < 1 || j < 1 {
			return nil, errors.Errorf("bad pair %q: positions are 1-based", tok)
		}
		out = append(out, Pair{I: i - 1, J: j - 1})
	}
	return out, nil
}

// Validate checks that every pair lies inside template and that no
// position is used twice.
func Validate(template string, pairs []Pair) error {
	if template == "" {
		return errors.New("empty template")
	}
	used := make(map[int]bool, 2*len(pairs))
	for _, p := range pairs {
		for _, x := range []int{p.I, p.J} {
			if x < 0 || x >= len(template) {
				return errors.Errorf("pair %d:%d outside template of length %d", p.I+1, p.J+1, len(template))
			}
			if used[x] {
				return errors.Errorf("position %d used by more than one pair", x+1)
			}
			used[x] = true
		}
	}
	return nil
}

// GC returns the G+C fraction of s (0 for an empty string).
func GC(s string) float64 {
	if s == "" {
		return 0
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == 'G' || s[i] == 'C' {
			n++
		}
	}
	return float64(n) / float64(len(s))
}

// LongestRun is the length of the longest run of one repeated byte.
func LongestRun(s string) int {
	best, cur := 0, 0
	for i := 0; i < len(s); i++ {
		if i > 0 && s[i] == s[i-1] {
			cur++
		} else {
			cur = 1
		}
		if cur > best {
			best = cur
		}
	}
	return best
}

// Keep reports whether s passes f.
func (f Filter) Keep(s string) bool {
	if f.MaxRun > 0 && LongestRun(s) > f.MaxRun {
		return false
	}
	gc := GC(s)
	return gc >= f.GCMin && gc <= f.GCMax
}

// replacements lists the base pairs that differ from the template's pair p.
func replacements(template string, p Pair) []string {
	orig := string([]byte{template[p.I], template[p.J]})
	out := make([]string, 0, len(basePairs))
	for _, bp := range basePairs {
		if bp != orig {
			out = append(out, bp)
		}
	}
	return out
}

// Generate emits every variant of template with exactly k pairs replaced
// that passes f. Pair subsets are visited in lexicographic order and, within
// a subset, replacements vary fastest on the last pair. It returns the
// number of emitted candidates. emit errors and context cancellation stop
// the walk.
func Generate(ctx context.Context, template string, pairs []Pair, k int, f Filter, emit func(Candidate) error) (int, error) {
	if err := Validate(template, pairs); err != nil {
		return 0, err
	}
	if k < 0 || k > len(pairs) {
		return 0, errors.Errorf("k=%d outside 0..%d", k, len(pairs))
	}

	opts := make([][]string, len(pairs))
	for i, p := range pairs {
		opts[i] = replacements(template, p)
	}

	buf := []byte(template)
	comb := make([]int, k)
	for i := range comb {
		comb[i] = i
	}
	emitted := 0
	for {
		if err := ctx.Err(); err != nil {
			return emitted, err
		}
		n, err := product(buf, template, pairs, comb, opts, k, f, emit)
		emitted += n
		if err != nil {
			return emitted, err
		}
		if !nextCombination(comb, len(pairs)) {
			return emitted, nil
		}
	}
}

// product walks the cartesian product of replacements for the pairs in comb.
func product(buf []byte, template string, pairs []Pair, comb []int, opts [][]string, k int, f Filter, emit func(Candidate) error) (int, error) {
	choice := make([]int, len(comb))
	emitted := 0
	for {
		copy(buf, template)
		for ci, pi := range comb {
			bp := opts[pi][choice[ci]]
			buf[pairs[pi].I], buf[pairs[pi].J] = bp[0], bp[1]
		}
		if s := string(buf); f.Keep(s) {
			if err := emit(Candidate{K: k, Seq: s}); err != nil {
				return emitted, err
			}
			emitted++
		}

		// odometer, last position fastest
		i := len(choice) - 1
		for ; i >= 0; i-- {
			choice[i]++
			if choice[i] < len(opts[comb[i]]) {
				break
			}
			choice[i] = 0
		}
		if i < 0 {
			return emitted, nil
		}
	}
}

// nextCombination advances comb to the next k-subset of 0..n-1 in
// lexicographic order, returning false after the last one.
func nextCombination(comb []int, n int) bool {
	k := len(comb)
	i := k - 1
	for i >= 0 && comb[i] == n-k+i {
		i--
	}
	if i < 0 {
		return false
	}
	comb[i]++
	for j := i + 1; j < k; j++ {
		comb[j] = comb[j-1] + 1
	}
	return true
}
