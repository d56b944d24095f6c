// internal/writers/mutants.go
package writers

import (
	"fmt"
	"io"

	"mmcount/internal/jsonlutil"
	"mmcount/internal/mutants"
	"mmcount/pkg/api"
)

// StartMutantWriter writes candidates as text ("k<TAB>seq", or the bare
// sequence when seqOnly) or JSONL.
func StartMutantWriter(out io.Writer, format string, seqOnly bool, bufSize int) (chan<- mutants.Candidate, <-chan error) {
	if format == "jsonl" {
		return jsonlutil.Start[mutants.Candidate, api.MutantV1](out, bufSize, toAPIMutant, IsBrokenPipe)
	}
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan mutants.Candidate, bufSize)
	errCh := make(chan error, 1)
	go func() {
		var err error
		if format != "text" {
			err = fmt.Errorf("unknown mutant format %q (no writer registered)", format)
		}
		for c := range in {
			if err != nil {
				continue
			}
			if seqOnly {
				_, err = fmt.Fprintln(out, c.Seq)
			} else {
				_, err = fmt.Fprintf(out, "%d\t%s\n", c.K, c.Seq)
			}
		}
		errCh <- err
	}()
	return in, errCh
}

func toAPIMutant(c mutants.Candidate) api.MutantV1 {
	return api.MutantV1{K: c.K, Seq: c.Seq, GC: mutants.GC(c.Seq)}
}
