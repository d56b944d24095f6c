// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/pkg/errors"

	"mmcount/internal/engine"
	"mmcount/internal/query"
)

// Config controls the scanning pipeline.
type Config struct {
	Workers int // number of partitions / goroutines (>=1)

	// OnPartitionDone, if set, is called from the worker goroutine after a
	// partition has been scanned successfully. It must be safe for concurrent use.
	OnPartitionDone func(Span)
}

// Run scans recs with sc and returns one Result per record, in input order.
//
// Each worker owns a disjoint region of a pre-sized result arena, so rows are
// stored without locking. Run blocks until every worker has returned. The
// first worker failure (error or panic) cancels the others and is returned
// as a *PartitionError with no rows; a cancelled ctx returns ctx.Err().
func Run(ctx context.Context, cfg Config, recs []query.Record, sc Scanner) ([]engine.Result, error) {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	spans := Partition(len(recs), cfg.Workers)
	out := make([]engine.Result, len(recs))

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	wg.Add(len(spans))
	for _, sp := range spans {
		go func(sp Span) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					fail(&PartitionError{Span: sp, Cause: errors.Errorf("panic: %v", r), Stack: debug.Stack()})
				}
			}()

			err := sc.ScanPartition(wctx, recs[sp.Start:sp.End], sp.Start, out[sp.Start:sp.End])
			switch {
			case err == nil:
				if cfg.OnPartitionDone != nil {
					cfg.OnPartitionDone(sp)
				}
			case wctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)):
				// stopped because the run is being torn down
			default:
				fail(&PartitionError{Span: sp, Cause: err})
			}
		}(sp)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
