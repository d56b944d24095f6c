// Package progress draws a query-count progress bar on stderr.
package progress

import (
	"io"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Bar counts scanned queries. A nil *Bar is a no-op, so callers can keep
// one code path whether or not progress was requested.
type Bar struct {
	p       *mpb.Progress
	bar     *mpb.Bar
	workers float64
}

// New starts a bar for total queries written to w. workers is the number
// of goroutines reporting ticks; it scales per-item durations so the ETA
// reflects parallel throughput.
func New(w io.Writer, total, workers int, label string) *Bar {
	if workers < 1 {
		workers = 1
	}
	p := mpb.New(mpb.WithWidth(40), mpb.WithOutput(w))
	bar := p.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(label, decor.WC{W: len(label) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
			decor.EwmaETA(decor.ET_STYLE_GO, 10),
			decor.OnComplete(decor.Name(""), ". done"),
		),
	)
	return &Bar{p: p, bar: bar, workers: float64(workers)}
}

// Tick records one finished item that took elapsed on its worker.
// Safe for concurrent use.
func (b *Bar) Tick(elapsed time.Duration) {
	if b == nil {
		return
	}
	if elapsed <= 0 {
		elapsed = time.Microsecond
	}
	b.bar.EwmaIncrBy(1, time.Duration(float64(elapsed)/b.workers))
}

// Wait completes the bar (aborting it if it did not reach total) and
// blocks until it is rendered.
func (b *Bar) Wait() {
	if b == nil {
		return
	}
	if !b.bar.Completed() {
		b.bar.Abort(false)
	}
	b.p.Wait()
}
