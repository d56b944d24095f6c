// internal/runutil/runutil.go
package runutil

import (
	"fmt"
	"runtime"
)

// EffectiveWorkers maps the --workers flag to a worker count:
// values <= 0 mean "all CPUs".
func EffectiveWorkers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// ValidateWorkers clamps the worker count to the number of queries so no
// goroutine is started for an empty partition. It returns the count to use
// and any warnings for the user.
func ValidateWorkers(workers, queries int) (int, []string) {
	var warns []string
	if workers < 1 {
		workers = 1
	}
	if queries > 0 && workers > queries {
		warns = append(warns, fmt.Sprintf("--workers (%d) exceeds query count (%d); using %d", workers, queries, queries))
		workers = queries
	}
	return workers, warns
}
