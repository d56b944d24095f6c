// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"mmcount/internal/cmdutil"
	"mmcount/internal/engine"
	"mmcount/internal/library"
	"mmcount/internal/output"
	"mmcount/internal/pipeline"
	"mmcount/internal/progress"
	"mmcount/internal/query"
	"mmcount/internal/runutil"
	"mmcount/internal/seq"
	"mmcount/internal/writers"
)

// Options drives one count run.
type Options struct {
	LibraryFile string
	QueriesFile string
	Library     library.LoadOptions
	Query       query.Options

	Workers int // 0 = all CPUs

	Format string
	Out    string // "" or "-" = stdout
	Header bool

	Progress        bool
	Quiet           bool
	Verbose         bool
	NoMatchExitCode int
}

// Run loads both inputs, counts every query against the library and
// writes one row per query in input order.
func Run(parent context.Context, stdout, stderr io.Writer, o Options) int {
	log := cmdutil.NewLogger(stderr, o.Quiet, o.Verbose)
	start := time.Now()

	lib, st, err := library.LoadTSV(o.LibraryFile, o.Library)
	if err != nil {
		log.Error(err)
		return 2
	}
	logLibrary(log, o.LibraryFile, lib, st)

	tbl, err := query.LoadTSV(o.QueriesFile, o.Query)
	if err != nil {
		log.Error(err)
		return 2
	}
	if tbl.Skipped > 0 {
		log.Warnf("queries: skipped %s rows with fewer than %d columns", humanize.Comma(int64(tbl.Skipped)), tbl.Column+1)
	}
	if n := countAmbiguous(tbl.Records); n > 0 {
		log.Warnf("queries: %s sequences contain characters other than ACGT; they are compared literally and left as-is by reverse complement", humanize.Comma(int64(n)))
	}
	log.Debugf("queries: %s rows from %s (column %d)", humanize.Comma(int64(len(tbl.Records))), o.QueriesFile, tbl.Column)

	workers, warns := runutil.ValidateWorkers(runutil.EffectiveWorkers(o.Workers), len(tbl.Records))
	for _, w := range warns {
		if o.Workers > 0 {
			log.Warn(w)
		} else {
			log.Debug(w)
		}
	}

	var bar *progress.Bar
	if o.Progress && len(tbl.Records) > 0 {
		bar = progress.New(stderr, len(tbl.Records), workers, "queries")
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	scanStart := time.Now()
	eng := engine.New(lib)
	if bar != nil {
		eng.OnQuery = bar.Tick
	}
	rows, perr := pipeline.Run(ctx, pipeline.Config{
		Workers: workers,
		OnPartitionDone: func(sp pipeline.Span) {
			log.Debugf("partition %d: queries %d-%d done", sp.Index, sp.Start, sp.End-1)
		},
	}, tbl.Records, eng)
	bar.Wait()

	if perr != nil {
		if errors.Is(perr, context.Canceled) || errors.Is(perr, context.DeadlineExceeded) {
			log.Warn("interrupted; no results written")
			return 130
		}
		var pe *pipeline.PartitionError
		if errors.As(perr, &pe) {
			log.WithFields(logrus.Fields{
				"partition": pe.Index,
				"start":     pe.Start,
				"end":       pe.End,
			}).Debugf("worker stack:\n%s", pe.Stack)
		}
		log.Error(perr)
		return 3
	}
	log.Debugf("scan: %d workers in %s", workers, time.Since(scanStart).Round(time.Millisecond))

	dst, closeDst, err := openOut(stdout, o.Out)
	if err != nil {
		log.Error(err)
		return 3
	}
	outw := bufio.NewWriter(dst)

	header := ""
	if o.Header && o.Format == output.FormatText {
		header = output.Header(tbl.Header)
	}
	inCh, writeErr := writers.StartResultWriter(outw, o.Format, header, workers*4)

	var overflow, hits int
	for _, r := range rows {
		if errors.Is(r.Err, engine.ErrOverflow) {
			overflow++
		}
		if r.Exact > 0 || r.OneMismatch > 0 {
			hits++
		}
		inCh <- r
	}
	close(inCh)

	if code, ok := finishOutput(log, writeErr, outw, closeDst); !ok {
		return code
	}

	if overflow > 0 {
		log.Warnf("%s queries overflowed the weight sum and were written as %s", humanize.Comma(int64(overflow)), output.NA)
	}
	log.Infof("counted %s queries against %s library sequences (%s with hits) in %s",
		humanize.Comma(int64(len(rows))), humanize.Comma(int64(lib.Len())),
		humanize.Comma(int64(hits)), time.Since(start).Round(time.Millisecond))

	if hits == 0 {
		return o.NoMatchExitCode
	}
	return 0
}

func logLibrary(log *logrus.Logger, path string, lib *library.Library, st library.LoadStats) {
	if st.BadWeights > 0 {
		log.Warnf("library: %s rows had a non-numeric weight (first at line %d); counted as 0",
			humanize.Comma(int64(st.BadWeights)), st.FirstBadLine)
	}
	if st.ShortLines > 0 {
		log.Warnf("library: skipped %s rows with too few columns", humanize.Comma(int64(st.ShortLines)))
	}
	if lib.Len() == 0 {
		log.Warnf("library: no usable sequences in %s; every count will be 0", path)
	}
	log.Debugf("library: %s of %s lines kept (%s wrong length)",
		humanize.Comma(int64(st.Entries)), humanize.Comma(int64(st.Lines)), humanize.Comma(int64(st.WrongLength)))
	for l, n := range lib.Lengths() {
		log.Debugf("library: %s sequences of length %d", humanize.Comma(int64(n)), l)
	}
}

func countAmbiguous(recs []query.Record) int {
	n := 0
	for _, r := range recs {
		if !seq.IsACGT(r.Seq) {
			n++
		}
	}
	return n
}

// openOut resolves the result destination; the returned func closes it.
func openOut(stdout io.Writer, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// finishOutput waits for the writer, flushes and closes the destination.
// A broken pipe ends the run quietly with exit 0.
func finishOutput(log *logrus.Logger, writeErr <-chan error, outw *bufio.Writer, closeDst func() error) (int, bool) {
	werr := <-writeErr
	if werr == nil {
		werr = outw.Flush()
	}
	if cerr := closeDst(); werr == nil {
		werr = cerr
	}
	if writers.IsBrokenPipe(werr) {
		return 0, false
	}
	if werr != nil {
		log.Error(werr)
		return 3, false
	}
	return 0, true
}
