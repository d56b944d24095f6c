// internal/appcore/mutants.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"mmcount/internal/cmdutil"
	"mmcount/internal/mutants"
	"mmcount/internal/writers"
)

// MutantOptions drives one candidate generation run.
type MutantOptions struct {
	Template string
	Pairs    string
	MinK     int
	MaxK     int
	Filter   mutants.Filter
	OutDir   string
	Format   string
	Quiet    bool
	Verbose  bool
}

// RunMutants generates base-pair mutants of the template for every k in
// MinK..MaxK. With OutDir set each k goes to its own MM{k}.txt, one
// sequence per line; otherwise all candidates go to stdout.
func RunMutants(ctx context.Context, stdout, stderr io.Writer, o MutantOptions) int {
	log := cmdutil.NewLogger(stderr, o.Quiet, o.Verbose)

	pairs, err := mutants.ParsePairs(o.Pairs)
	if err == nil {
		err = mutants.Validate(o.Template, pairs)
	}
	if err != nil {
		log.Error(err)
		return 2
	}
	maxK := o.MaxK
	if maxK > len(pairs) {
		log.Warnf("--max-k (%d) exceeds the number of pairs (%d); stopping at %d", maxK, len(pairs), len(pairs))
		maxK = len(pairs)
	}

	if o.OutDir != "" {
		if err := os.MkdirAll(o.OutDir, 0o755); err != nil {
			log.Error(err)
			return 3
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var stdoutW *bufio.Writer
	var inCh chan<- mutants.Candidate
	var writeErr <-chan error
	if o.OutDir == "" {
		// a failed write (e.g. closed pipe) stops the enumeration
		stdoutW = bufio.NewWriter(cancelOnWriteError{w: stdout, cancel: cancel})
		inCh, writeErr = writers.StartMutantWriter(stdoutW, o.Format, false, 256)
	}

	total := 0
	for k := o.MinK; k <= maxK; k++ {
		var n int
		if o.OutDir != "" {
			n, err = mutantsToFile(ctx, o, pairs, k)
		} else {
			n, err = mutants.Generate(ctx, o.Template, pairs, k, o.Filter, sendTo(ctx, inCh))
		}
		if err != nil {
			break
		}
		total += n
		log.WithField("k", k).Debugf("%s candidates", humanize.Comma(int64(n)))
	}

	if inCh != nil {
		close(inCh)
		if code, ok := finishOutput(log, writeErr, stdoutW, func() error { return nil }); !ok {
			return code
		}
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		log.Error(err)
		return 3
	}

	log.WithFields(logrus.Fields{"min_k": o.MinK, "max_k": maxK}).
		Infof("generated %s candidates", humanize.Comma(int64(total)))
	return 0
}

func mutantsToFile(ctx context.Context, o MutantOptions, pairs []mutants.Pair, k int) (int, error) {
	path := filepath.Join(o.OutDir, fmt.Sprintf("MM%d.txt", k))
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	w := bufio.NewWriter(f)
	inCh, writeErr := writers.StartMutantWriter(w, "text", true, 256)

	n, gerr := mutants.Generate(ctx, o.Template, pairs, k, o.Filter, sendTo(ctx, inCh))
	close(inCh)

	werr := <-writeErr
	if werr == nil {
		werr = w.Flush()
	}
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if gerr != nil {
		return n, gerr
	}
	return n, werr
}

func sendTo(ctx context.Context, in chan<- mutants.Candidate) func(mutants.Candidate) error {
	return func(c mutants.Candidate) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case in <- c:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

type cancelOnWriteError struct {
	w      io.Writer
	cancel context.CancelFunc
}

func (c cancelOnWriteError) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	if err != nil {
		c.cancel()
	}
	return n, err
}
