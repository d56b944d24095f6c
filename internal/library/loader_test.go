// internal/library/loader_test.go
package library

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const libTSV = "AAAAAAAAAAAAAAAAAAAA\tNGG\t5\n" +
	"TTTTTTTTTTTTTTTTTTTT\tNGG\t3\n" +
	"ACGT\tNGG\t9\n" + // wrong length
	"CCCCCCCCCCCCCCCCCCCC\tNGG\n" + // too few fields
	"GGGGGGGGGGGGGGGGGGGG\tNGG\tmany\n" // bad weight -> 0

func TestLoadDefaults(t *testing.T) {
	lib, st, err := Load(strings.NewReader(libTSV), DefaultLoadOptions)
	require.NoError(t, err)

	require.Equal(t, 3, lib.Len())
	assert.Equal(t, []Entry{
		{Seq: "AAAAAAAAAAAAAAAAAAAA", Weight: 5},
		{Seq: "TTTTTTTTTTTTTTTTTTTT", Weight: 3},
		{Seq: "GGGGGGGGGGGGGGGGGGGG", Weight: 0},
	}, lib.Entries())

	assert.Equal(t, LoadStats{
		Lines: 5, Entries: 3, ShortLines: 1, WrongLength: 1, BadWeights: 1, FirstBadLine: 5,
	}, st)
}

func TestLoadAnyLength(t *testing.T) {
	lib, st, err := Load(strings.NewReader(libTSV), LoadOptions{SeqLen: 0, WeightColumn: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, lib.Len())
	assert.Equal(t, 0, st.WrongLength)
	assert.Equal(t, map[int]int{20: 3, 4: 1}, lib.Lengths())
}

func TestLoadCustomWeightColumn(t *testing.T) {
	in := "ACGT\t7\n" + "ACGA\tx\n"
	lib, st, err := Load(strings.NewReader(in), LoadOptions{WeightColumn: 1})
	require.NoError(t, err)
	// Lines still need three fields, as with the default layout.
	assert.Equal(t, 0, lib.Len())
	assert.Equal(t, 2, st.ShortLines)

	in = "ACGT\t7\tz\n"
	lib, _, err = Load(strings.NewReader(in), LoadOptions{WeightColumn: 1})
	require.NoError(t, err)
	require.Equal(t, 1, lib.Len())
	assert.Equal(t, uint64(7), lib.Entries()[0].Weight)
}

func TestLoadRejectsBadWeightColumn(t *testing.T) {
	_, _, err := Load(strings.NewReader(libTSV), LoadOptions{WeightColumn: 0})
	require.Error(t, err)
}

func TestLoadNegativeWeightIsZero(t *testing.T) {
	lib, st, err := Load(strings.NewReader("AAAA\tx\t-4\n"), LoadOptions{WeightColumn: 2})
	require.NoError(t, err)
	require.Equal(t, 1, lib.Len())
	assert.Equal(t, uint64(0), lib.Entries()[0].Weight)
	assert.Equal(t, 1, st.BadWeights)
}

func TestLoadCRLF(t *testing.T) {
	lib, st, err := Load(strings.NewReader("AAAA\tx\t4\r\n"), LoadOptions{WeightColumn: 2})
	require.NoError(t, err)
	assert.Equal(t, 0, st.BadWeights)
	assert.Equal(t, uint64(4), lib.Entries()[0].Weight)
}

func TestLoadTSVFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "pam.tsv")
	require.NoError(t, os.WriteFile(fn, []byte(libTSV), 0o644))

	lib, _, err := LoadTSV(fn, DefaultLoadOptions)
	require.NoError(t, err)
	assert.Equal(t, 3, lib.Len())

	_, _, err = LoadTSV(fn+".missing", DefaultLoadOptions)
	require.Error(t, err)
}

func TestLoadEmpty(t *testing.T) {
	lib, st, err := Load(strings.NewReader(""), DefaultLoadOptions)
	require.NoError(t, err)
	assert.Equal(t, 0, lib.Len())
	assert.Equal(t, 0, st.Lines)
}
