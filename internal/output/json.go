// internal/output/json.go
package output

import (
	"encoding/json"
	"errors"
	"io"

	"mmcount/internal/engine"
	"mmcount/pkg/api"
)

// ToAPIResult converts a domain Result to the stable wire schema (v1).
func ToAPIResult(r engine.Result) api.ResultV1 {
	v := api.ResultV1{
		Index:       r.Index,
		Line:        r.Line,
		Exact:       r.Exact,
		OneMismatch: r.OneMismatch,
	}
	if r.Err != nil {
		v.Error = r.Err.Error()
		v.Overflow = errors.Is(r.Err, engine.ErrOverflow)
	}
	return v
}

func toAPIResults(list []engine.Result) []api.ResultV1 {
	out := make([]api.ResultV1, 0, len(list))
	for _, r := range list {
		out = append(out, ToAPIResult(r))
	}
	return out
}

// WriteJSON writes a single JSON array of v1 results (pretty-indented).
func WriteJSON(w io.Writer, list []engine.Result) error {
	return encodePretty(w, toAPIResults(list))
}

func encodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
