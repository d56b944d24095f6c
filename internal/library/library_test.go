package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCopiesEntries(t *testing.T) {
	src := []Entry{{Seq: "ACGT", Weight: 1}}
	lib := New(src)
	src[0].Weight = 99
	assert.Equal(t, uint64(1), lib.Entries()[0].Weight)
}

func TestNilLibrary(t *testing.T) {
	var lib *Library
	assert.Equal(t, 0, lib.Len())
	assert.Nil(t, lib.Entries())
	assert.Empty(t, lib.Lengths())
}
