// internal/engine/result.go
package engine

// Result is the per-query output row.
type Result struct {
	Index       int    `json:"index"` // position of the query in the input
	Line        string `json:"line"`
	Exact       uint64 `json:"exact"`
	OneMismatch uint64 `json:"one_mismatch"`

	// Err is set (wrapping ErrOverflow) when a weight sum saturated.
	Err error `json:"-"`
}
