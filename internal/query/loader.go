// internal/query/loader.go
package query

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	"mmcount/internal/input"
)

// DefaultColumn is the header name of the query column.
const DefaultColumn = "Upstream20bp"

// ErrColumnNotFound is returned when the header lacks the requested column.
var ErrColumnNotFound = errors.New("query column not found in header")

// ErrNoHeader is returned for an empty query file.
var ErrNoHeader = errors.New("query file has no header row")

// Options select the query column. ColumnIndex >= 0 wins over ColumnName.
type Options struct {
	ColumnName  string
	ColumnIndex int
}

// DefaultOptions looks the column up by its header name.
var DefaultOptions = Options{ColumnName: DefaultColumn, ColumnIndex: -1}

// LoadTSV reads a tab-separated query file with a header row.
func LoadTSV(path string, opt Options) (*Table, error) {
	rc, err := input.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	t, err := Load(rc, opt)
	if err != nil {
		return nil, errors.Wrapf(err, "queries %s", path)
	}
	return t, nil
}

// Load parses a header row followed by data rows. Rows with fewer fields
// than the query column are skipped and counted in Table.Skipped.
func Load(r io.Reader, opt Options) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), 16<<20)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, errors.Wrap(err, "line 1")
		}
		return nil, ErrNoHeader
	}
	header := strings.TrimSuffix(sc.Text(), "\r")
	col, err := resolveColumn(header, opt)
	if err != nil {
		return nil, err
	}

	t := &Table{Header: header, Column: col}
	ln := 1
	for sc.Scan() {
		ln++
		line := strings.TrimSuffix(sc.Text(), "\r")
		f := strings.Split(line, "\t")
		if len(f) <= col {
			t.Skipped++
			continue
		}
		t.Records = append(t.Records, Record{Line: line, Seq: f[col]})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "line %d", ln+1)
	}
	return t, nil
}

func resolveColumn(header string, opt Options) (int, error) {
	if opt.ColumnIndex >= 0 {
		return opt.ColumnIndex, nil
	}
	name := opt.ColumnName
	if name == "" {
		name = DefaultColumn
	}
	for i, f := range strings.Split(header, "\t") {
		if f == name {
			return i, nil
		}
	}
	return 0, errors.Wrapf(ErrColumnNotFound, "%q", name)
}
