// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mmcount/internal/appcore"
	"mmcount/internal/cli"
	"mmcount/internal/library"
	"mmcount/internal/mutants"
	"mmcount/internal/query"
	"mmcount/internal/version"
)

const countLong = `Count, for every query sequence, the summed library weight of exact
matches and of one-mismatch matches on both strands.

QUERIES is a TSV file with a header row; LIBRARY is a TSV of
"sequence <tab> ... <tab> weight". Each query row is echoed with
exact_match_weight and one_mismatch_weight appended, in input order.`

// RunContext executes the mmcount command line and returns the exit code:
// 0 ok, 2 usage or input error, 3 runtime failure, 130 interrupted, and
// --no-match-exit-code when no query had a hit.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	code := 0
	root := newRootCmd(&code)
	root.SetArgs(argv)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\nRun 'mmcount --help' for usage.\n", err)
		return 2
	}
	return code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func newRootCmd(code *int) *cobra.Command {
	root := &cobra.Command{
		Use:           "mmcount [flags] [QUERIES [LIBRARY]]",
		Short:         "Weighted exact / one-mismatch counts of query sequences against a library",
		Long:          countLong + "\n\nWith no subcommand mmcount runs count.",
		Version:       version.Version,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          countRunE(code),
	}
	root.SetVersionTemplate("mmcount version {{.Version}}\n")
	root.CompletionOptions.DisableDefaultCmd = true
	cli.AddCountFlags(root.Flags())
	cli.AddCommonFlags(root.Flags())

	root.AddCommand(newCountCmd(code), newMutantsCmd(code))
	return root
}

func newCountCmd(code *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count [flags] [QUERIES [LIBRARY]]",
		Short: "Annotate query rows with exact and one-mismatch library weights",
		Long:  countLong,
		Example: `  mmcount count -q loci.tsv -l library.tsv > annotated.tsv
  mmcount count loci.tsv library.tsv.gz --workers 8 --output jsonl`,
		Args: cobra.MaximumNArgs(2),
		RunE: countRunE(code),
	}
	cli.AddCountFlags(cmd.Flags())
	cli.AddCommonFlags(cmd.Flags())
	return cmd
}

func countRunE(code *int) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		v, err := cli.NewViper(cmd.Flags())
		if err != nil {
			return err
		}
		o, err := cli.CountOptions(v, args)
		if err != nil {
			return err
		}
		*code = appcore.Run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), appcore.Options{
			LibraryFile: o.LibraryFile,
			QueriesFile: o.QueriesFile,
			Library: library.LoadOptions{
				SeqLen:       o.RefLength,
				WeightColumn: o.WeightColumn,
			},
			Query: query.Options{
				ColumnName:  o.Column,
				ColumnIndex: o.ColumnIndex,
			},
			Workers:         o.Workers,
			Format:          o.Output,
			Out:             o.Out,
			Header:          o.Header,
			Progress:        o.Progress,
			Quiet:           o.Quiet,
			Verbose:         o.Verbose,
			NoMatchExitCode: o.NoMatchExitCode,
		})
		return nil
	}
}

func newMutantsCmd(code *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mutants [flags]",
		Short: "Generate base-pair mutants of a hairpin template",
		Long: `Generate every variant of the template with exactly k base pairs
replaced by another Watson-Crick pair, keeping those that pass the GC
and homopolymer filters. Candidates are written as "k <tab> sequence",
or one sequence per line into MM{k}.txt files with --out-dir.`,
		Example: `  mmcount mutants --min-k 1 --max-k 3 --out-dir candidates/`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := cli.NewViper(cmd.Flags())
			if err != nil {
				return err
			}
			o, err := cli.MutantsOptions(v)
			if err != nil {
				return err
			}
			*code = appcore.RunMutants(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), appcore.MutantOptions{
				Template: o.Template,
				Pairs:    o.Pairs,
				MinK:     o.MinK,
				MaxK:     o.MaxK,
				Filter:   mutants.Filter{GCMin: o.GCMin, GCMax: o.GCMax, MaxRun: o.MaxRun},
				OutDir:   o.OutDir,
				Format:   o.Output,
				Quiet:    o.Quiet,
				Verbose:  o.Verbose,
			})
			return nil
		},
	}
	cli.AddMutantFlags(cmd.Flags())
	cli.AddCommonFlags(cmd.Flags())
	return cmd
}
