// internal/engine/engine.go
package engine

import (
	"context"
	"math"
	"math/bits"
	"time"

	"github.com/pkg/errors"

	"mmcount/internal/library"
	"mmcount/internal/query"
	"mmcount/internal/seq"
)

// MaxWeightSum is the largest per-query total that can be reported.
const MaxWeightSum = math.MaxUint64

// ErrOverflow marks a row whose exact or one-mismatch sum exceeded MaxWeightSum.
var ErrOverflow = errors.New("weight sum overflows uint64")

// Engine scans queries against one shared, read-only Library.
type Engine struct {
	lib *library.Library

	// OnQuery, if set, is called by ScanPartition after each query with the
	// time that query took. It runs on worker goroutines.
	OnQuery func(elapsed time.Duration)
}

// New creates an Engine over lib. A nil or empty library is valid; every
// query then counts (0, 0).
func New(lib *library.Library) *Engine { return &Engine{lib: lib} }

type tally struct {
	exact, one uint64
	overflow   bool
}

func (t *tally) add(dst *uint64, w uint64) {
	sum, carry := bits.Add64(*dst, w, 0)
	if carry != 0 {
		*dst = MaxWeightSum
		t.overflow = true
		return
	}
	*dst = sum
}

// scan accumulates one orientation of q against every entry.
func (t *tally) scan(q string, entries []library.Entry) {
	for i := range entries {
		switch seq.HammingAtMost(q, entries[i].Seq, 1) {
		case 0:
			t.add(&t.exact, entries[i].Weight)
		case 1:
			t.add(&t.one, entries[i].Weight)
		}
	}
}

// Count returns the summed weights of entries at distance 0 and exactly 1
// from q, scanning q and then its reverse complement into the same totals.
// An entry hit by both orientations contributes twice.
// On overflow the affected total saturates and err wraps ErrOverflow.
func (e *Engine) Count(q string) (exact, oneMM uint64, err error) {
	entries := e.lib.Entries()
	var t tally
	t.scan(q, entries)
	t.scan(seq.RevComp(q), entries)
	if t.overflow {
		err = errors.Wrapf(ErrOverflow, "query %q", q)
	}
	return t.exact, t.one, err
}

// ScanPartition counts every record in recs and writes the rows into out,
// in order. base is the global index of recs[0]. The context is checked
// between queries.
func (e *Engine) ScanPartition(ctx context.Context, recs []query.Record, base int, out []Result) error {
	if len(out) != len(recs) {
		return errors.Errorf("partition at %d: %d records but %d result slots", base, len(recs), len(out))
	}
	for i := range recs {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		ex, one, err := e.Count(recs[i].Seq)
		out[i] = Result{
			Index:       base + i,
			Line:        recs[i].Line,
			Exact:       ex,
			OneMismatch: one,
			Err:         err,
		}
		if e.OnQuery != nil {
			e.OnQuery(time.Since(start))
		}
	}
	return nil
}
