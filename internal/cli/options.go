// internal/cli/options.go
package cli

import (
	"github.com/pkg/errors"

	"mmcount/internal/library"
	"mmcount/internal/output"
	"mmcount/internal/query"
)

// Options holds the flags of the count command.
type Options struct {
	// Input
	LibraryFile  string
	QueriesFile  string
	Column       string
	ColumnIndex  int // -1 = look up Column in the header
	RefLength    int // 0 = keep any library sequence length
	WeightColumn int

	// Performance
	Workers int // 0 = all CPUs

	// Output
	Output          string // text | json | jsonl
	Out             string // "" or "-" = stdout
	Header          bool   // true unless --no-header
	NoMatchExitCode int

	// Misc
	Progress bool
	Quiet    bool
	Verbose  bool
}

// DefaultOptions are the flag defaults.
var DefaultOptions = Options{
	Column:       query.DefaultColumn,
	ColumnIndex:  -1,
	RefLength:    library.DefaultSeqLen,
	WeightColumn: library.DefaultWeightColumn,
	Output:       output.FormatText,
	Header:       true,
}

// Validate applies CLI invariants.
func Validate(o *Options) error {
	if o.LibraryFile == "" {
		return errors.New("--library is required")
	}
	if o.QueriesFile == "" {
		return errors.New("--queries is required")
	}
	if o.LibraryFile == "-" && o.QueriesFile == "-" {
		return errors.New("only one of --library/--queries may read stdin")
	}
	if o.ColumnIndex < -1 {
		return errors.New("--column-index must be ≥ 0 (or -1 to use --column)")
	}
	if o.ColumnIndex < 0 && o.Column == "" {
		return errors.New("--column must not be empty")
	}
	if o.RefLength < 0 {
		return errors.New("--ref-length must be ≥ 0")
	}
	if o.WeightColumn < 1 {
		return errors.New("--weight-column must be ≥ 1")
	}
	if o.Workers < 0 {
		return errors.New("--workers must be ≥ 0")
	}
	switch o.Output {
	case output.FormatText, output.FormatJSON, output.FormatJSONL:
	default:
		return errors.Errorf("invalid --output %q", o.Output)
	}
	if o.NoMatchExitCode < 0 || o.NoMatchExitCode > 255 {
		return errors.New("--no-match-exit-code must be between 0 and 255")
	}
	return nil
}
