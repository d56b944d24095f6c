// internal/library/loader.go
package library

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"mmcount/internal/input"
)

// DefaultSeqLen is the reference length used by the motif libraries this
// tool was written for.
const DefaultSeqLen = 20

// DefaultWeightColumn is the 0-based column holding the entry weight.
const DefaultWeightColumn = 2

// LoadOptions control which lines become entries.
type LoadOptions struct {
	SeqLen       int // keep only sequences of this length (0 = any length)
	WeightColumn int // 0-based weight column
}

// DefaultLoadOptions matches the library layout "seq <tab> ... <tab> count".
var DefaultLoadOptions = LoadOptions{SeqLen: DefaultSeqLen, WeightColumn: DefaultWeightColumn}

// LoadStats reports how many lines were used or skipped.
type LoadStats struct {
	Lines        int
	Entries      int
	ShortLines   int // too few fields
	WrongLength  int // sequence length != SeqLen
	BadWeights   int // weight not an unsigned integer; entry kept with weight 0
	FirstBadLine int // line number of the first bad weight (0 = none)
}

// LoadTSV reads a tab-separated library file ("-" = stdin, ".gz" ok).
func LoadTSV(path string, opt LoadOptions) (*Library, LoadStats, error) {
	rc, err := input.Open(path)
	if err != nil {
		return nil, LoadStats{}, err
	}
	defer func() { _ = rc.Close() }()

	lib, st, err := Load(rc, opt)
	if err != nil {
		return nil, st, errors.Wrapf(err, "library %s", path)
	}
	return lib, st, nil
}

// Load parses library lines from r. Column 0 is the sequence, column
// opt.WeightColumn the weight. A weight that does not parse as an unsigned
// integer counts as 0 instead of failing the load.
func Load(r io.Reader, opt LoadOptions) (*Library, LoadStats, error) {
	if opt.WeightColumn < 1 {
		return nil, LoadStats{}, errors.Errorf("weight column must be >= 1, got %d", opt.WeightColumn)
	}
	minFields := opt.WeightColumn + 1
	if minFields < 3 {
		minFields = 3
	}

	var (
		st   LoadStats
		list []Entry
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), 16<<20)
	for sc.Scan() {
		st.Lines++
		line := strings.TrimSuffix(sc.Text(), "\r")
		f := strings.Split(line, "\t")
		if len(f) < minFields {
			st.ShortLines++
			continue
		}
		s := f[0]
		if opt.SeqLen > 0 && len(s) != opt.SeqLen {
			st.WrongLength++
			continue
		}
		w, err := strconv.ParseUint(f[opt.WeightColumn], 10, 64)
		if err != nil {
			w = 0
			st.BadWeights++
			if st.FirstBadLine == 0 {
				st.FirstBadLine = st.Lines
			}
		}
		list = append(list, Entry{Seq: s, Weight: w})
	}
	if err := sc.Err(); err != nil {
		return nil, st, errors.Wrapf(err, "line %d", st.Lines+1)
	}
	st.Entries = len(list)
	return New(list), st, nil
}
