// internal/writers/results.go
package writers

import (
	"fmt"
	"io"

	"mmcount/internal/engine"
	"mmcount/internal/jsonlutil"
	"mmcount/internal/output"
	"mmcount/pkg/api"
)

// StartResultWriter spins up a writer goroutine for result rows.
// header is written first by the text format only ("" = none).
func StartResultWriter(out io.Writer, format, header string, bufSize int) (chan<- engine.Result, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	if format == output.FormatJSONL {
		return jsonlutil.Start[engine.Result, api.ResultV1](out, bufSize, output.ToAPIResult, IsBrokenPipe)
	}

	in := make(chan engine.Result, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		switch format {
		case output.FormatText:
			err = output.StreamText(out, in, header)
		case output.FormatJSON:
			var buf []engine.Result
			for r := range in {
				buf = append(buf, r)
			}
			err = output.WriteJSON(out, buf)
		default:
			err = fmt.Errorf("unknown result format %q (no writer registered)", format)
		}
		// drain so producers never block on an early error
		for range in {
		}
		errCh <- err
	}()

	return in, errCh
}
