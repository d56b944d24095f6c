// pkg/api/results_v1.go
package api

// ResultV1 is the stable JSON/JSONL schema for one annotated query row.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ResultV1 struct {
	Index       int    `json:"index"`
	Line        string `json:"line"`
	Exact       uint64 `json:"exact"`
	OneMismatch uint64 `json:"one_mismatch"`
	Overflow    bool   `json:"overflow,omitempty"`
	Error       string `json:"error,omitempty"`
}

// MutantV1 is the stable schema for one generated candidate sequence.
type MutantV1 struct {
	K   int     `json:"k"` // number of mutated pairs
	Seq string  `json:"seq"`
	GC  float64 `json:"gc"`
}
