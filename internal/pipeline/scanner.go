// internal/pipeline/scanner.go
package pipeline

import (
	"context"

	"mmcount/internal/engine"
	"mmcount/internal/query"
)

// Scanner is the minimal capability the pipeline needs.
// Any engine (including fakes in tests) can satisfy this.
type Scanner interface {
	ScanPartition(ctx context.Context, recs []query.Record, base int, out []engine.Result) error
}
