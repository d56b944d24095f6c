// internal/output/text.go
package output

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"mmcount/internal/engine"
)

// Header returns the text header for a query file header line.
func Header(queryHeader string) string {
	if queryHeader == "" {
		return ResultColumns
	}
	return queryHeader + "\t" + ResultColumns
}

// FormatRowTSV renders "line <tab> exact <tab> one_mismatch" (no newline).
// Counts of an overflowed row are written as NA.
func FormatRowTSV(r engine.Result) string {
	ex, one := strconv.FormatUint(r.Exact, 10), strconv.FormatUint(r.OneMismatch, 10)
	if errors.Is(r.Err, engine.ErrOverflow) {
		ex, one = NA, NA
	}
	return r.Line + "\t" + ex + "\t" + one
}

// StreamText writes rows from in as they arrive, preceded by header when
// header != "".
func StreamText(w io.Writer, in <-chan engine.Result, header string) error {
	if header != "" {
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}
	}
	for r := range in {
		if _, err := io.WriteString(w, FormatRowTSV(r)+"\n"); err != nil {
			return err
		}
	}
	return nil
}
