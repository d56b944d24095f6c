// internal/pipeline/partition.go
package pipeline

import "fmt"

// Span is one contiguous partition [Start, End) of the query slice.
type Span struct {
	Index, Start, End int
}

// Len is the number of queries in the span.
func (s Span) Len() int { return s.End - s.Start }

// Partition splits n items into at most workers contiguous spans of
// ceil(n/workers) items; the last span may be shorter. Empty spans are not
// returned, so fewer than workers spans come back when n is small.
func Partition(n, workers int) []Span {
	if n <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	size := (n + workers - 1) / workers
	out := make([]Span, 0, workers)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		out = append(out, Span{Index: len(out), Start: start, End: end})
	}
	return out
}

// PartitionError reports a partition whose worker failed. The run that
// produced it returns no rows.
type PartitionError struct {
	Span
	Cause error
	Stack []byte // goroutine stack when the failure was a panic
}

func (e *PartitionError) Error() string {
	return fmt.Sprintf("partition %d (queries %d-%d): %v", e.Index, e.Start, e.End-1, e.Cause)
}

func (e *PartitionError) Unwrap() error { return e.Cause }
