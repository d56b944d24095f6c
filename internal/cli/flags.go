// internal/cli/flags.go
package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. MMCOUNT_WORKERS=8.
const EnvPrefix = "MMCOUNT"

// AddCommonFlags registers the logging and config flags shared by every command.
func AddCommonFlags(fs *pflag.FlagSet) {
	fs.Bool("quiet", false, "suppress warnings and the run summary on stderr")
	fs.Bool("verbose", false, "log load statistics and timings on stderr")
	fs.String("config", "", "read defaults from a config file (yaml, toml or json)")
}

// AddCountFlags registers the flags of the count command.
func AddCountFlags(fs *pflag.FlagSet) {
	d := DefaultOptions

	fs.StringP("library", "l", "", "reference library TSV: sequence, …, weight (\"-\" = stdin, .gz ok) (required)")
	fs.StringP("queries", "q", "", "query TSV with a header row (\"-\" = stdin, .gz ok) (required)")
	fs.String("column", d.Column, "header name of the query sequence column")
	fs.Int("column-index", d.ColumnIndex, "0-based query sequence column; overrides --column when ≥ 0")
	fs.Int("ref-length", d.RefLength, "keep library sequences of exactly this length (0 = any)")
	fs.Int("weight-column", d.WeightColumn, "0-based library column holding the weight")

	fs.IntP("workers", "t", d.Workers, "number of workers (0 = all CPUs)")

	fs.StringP("output", "o", d.Output, "output format: text | json | jsonl")
	fs.String("out", "", "write results to this file instead of stdout")
	fs.Bool("no-header", false, "suppress the header line in text output")
	fs.Int("no-match-exit-code", d.NoMatchExitCode, "exit code when no query has any hit")

	fs.Bool("progress", false, "show a progress bar on stderr")
}

// AddMutantFlags registers the flags of the mutants command.
func AddMutantFlags(fs *pflag.FlagSet) {
	d := DefaultMutantOptions

	fs.String("template", d.Template, "template sequence to mutate")
	fs.String("pairs", d.Pairs, "1-based base-pair positions, comma separated (e.g. 2:39,3:38)")
	fs.Int("min-k", d.MinK, "smallest number of mutated pairs")
	fs.Int("max-k", d.MaxK, "largest number of mutated pairs")
	fs.Float64("gc-min", d.GCMin, "minimum GC fraction")
	fs.Float64("gc-max", d.GCMax, "maximum GC fraction")
	fs.Int("max-run", d.MaxRun, "longest allowed homopolymer run (0 = no limit)")
	fs.String("out-dir", "", "write one MM{k}.txt per k into this directory")
	fs.StringP("output", "o", d.Output, "stdout format: text | jsonl")
}

// NewViper layers flag values over environment, config file and defaults.
func NewViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, errors.Wrap(err, "bind flags")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}
	return v, nil
}

// CountOptions reads count options from v. Positionals, when present, are
// QUERIES [LIBRARY] and fill whichever of --queries/--library is unset.
func CountOptions(v *viper.Viper, args []string) (Options, error) {
	o := Options{
		LibraryFile:     v.GetString("library"),
		QueriesFile:     v.GetString("queries"),
		Column:          v.GetString("column"),
		ColumnIndex:     v.GetInt("column-index"),
		RefLength:       v.GetInt("ref-length"),
		WeightColumn:    v.GetInt("weight-column"),
		Workers:         v.GetInt("workers"),
		Output:          strings.ToLower(v.GetString("output")),
		Out:             v.GetString("out"),
		Header:          !v.GetBool("no-header"),
		NoMatchExitCode: v.GetInt("no-match-exit-code"),
		Progress:        v.GetBool("progress"),
		Quiet:           v.GetBool("quiet"),
		Verbose:         v.GetBool("verbose"),
	}
	if len(args) > 2 {
		return o, errors.Errorf("too many arguments: %s", strings.Join(args, " "))
	}
	if len(args) > 0 && o.QueriesFile == "" {
		o.QueriesFile = args[0]
		args = args[1:]
	}
	if len(args) > 0 && o.LibraryFile == "" {
		o.LibraryFile = args[0]
		args = args[1:]
	}
	if len(args) > 0 {
		return o, errors.Errorf("unexpected argument %q", args[0])
	}
	return o, Validate(&o)
}

// MutantsOptions reads mutants options from v.
func MutantsOptions(v *viper.Viper) (MutantOptions, error) {
	o := MutantOptions{
		Template: strings.ToUpper(v.GetString("template")),
		Pairs:    v.GetString("pairs"),
		MinK:     v.GetInt("min-k"),
		MaxK:     v.GetInt("max-k"),
		GCMin:    v.GetFloat64("gc-min"),
		GCMax:    v.GetFloat64("gc-max"),
		MaxRun:   v.GetInt("max-run"),
		OutDir:   v.GetString("out-dir"),
		Output:   strings.ToLower(v.GetString("output")),
		Quiet:    v.GetBool("quiet"),
		Verbose:  v.GetBool("verbose"),
	}
	return o, ValidateMutants(&o)
}
