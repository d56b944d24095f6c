// Package library holds the weighted reference set that every query is
// scanned against. A Library is built once and never mutated afterwards, so
// any number of workers may read it concurrently without locking.
package library

// Entry is one reference sequence and the weight it contributes per hit.
type Entry struct {
	Seq    string
	Weight uint64
}

// Library is an immutable, ordered set of entries.
type Library struct {
	entries []Entry
	lengths map[int]int
}

// New copies entries into a new Library.
func New(entries []Entry) *Library {
	lib := &Library{
		entries: append([]Entry(nil), entries...),
		lengths: make(map[int]int),
	}
	for _, e := range lib.entries {
		lib.lengths[len(e.Seq)]++
	}
	return lib
}

// Len is the number of entries.
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Entries exposes the backing slice for scanning. Callers must not modify it.
func (l *Library) Entries() []Entry {
	if l == nil {
		return nil
	}
	return l.entries
}

// Lengths returns a copy of the sequence-length histogram.
func (l *Library) Lengths() map[int]int {
	out := make(map[int]int)
	if l == nil {
		return out
	}
	for k, v := range l.lengths {
		out[k] = v
	}
	return out
}
