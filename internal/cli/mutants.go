// internal/cli/mutants.go
package cli

import (
	"github.com/pkg/errors"

	"mmcount/internal/mutants"
)

// MutantOptions holds the flags of the mutants command.
type MutantOptions struct {
	Template string
	Pairs    string // 1-based "i:j,..."
	MinK     int
	MaxK     int
	GCMin    float64
	GCMax    float64
	MaxRun   int
	OutDir   string // one MM{k}.txt per k; "" = stdout
	Output   string // text | jsonl (stdout only)
	Quiet    bool
	Verbose  bool
}

// DefaultMutantOptions generate MM1..MM14 for the default hairpin template.
var DefaultMutantOptions = MutantOptions{
	Template: mutants.DefaultTemplate,
	Pairs:    mutants.DefaultPairs,
	MinK:     1,
	MaxK:     14,
	GCMin:    mutants.DefaultFilter.GCMin,
	GCMax:    mutants.DefaultFilter.GCMax,
	MaxRun:   mutants.DefaultFilter.MaxRun,
	Output:   "text",
}

// ValidateMutants applies CLI invariants for the mutants command.
func ValidateMutants(o *MutantOptions) error {
	if o.Template == "" {
		return errors.New("--template must not be empty")
	}
	if o.MinK < 0 || o.MaxK < o.MinK {
		return errors.Errorf("need 0 ≤ --min-k ≤ --max-k, got %d..%d", o.MinK, o.MaxK)
	}
	if o.GCMin < 0 || o.GCMax > 1 || o.GCMin > o.GCMax {
		return errors.Errorf("need 0 ≤ --gc-min ≤ --gc-max ≤ 1, got %g..%g", o.GCMin, o.GCMax)
	}
	if o.MaxRun < 0 {
		return errors.New("--max-run must be ≥ 0")
	}
	switch o.Output {
	case "text", "jsonl":
	default:
		return errors.Errorf("invalid --output %q", o.Output)
	}
	if o.OutDir != "" && o.Output != "text" {
		return errors.New("--out-dir writes text files; drop --output")
	}
	return nil
}
