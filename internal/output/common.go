package output

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// ResultColumns are appended to the echoed query header in text output.
const ResultColumns = "exact_match_weight\tone_mismatch_weight"

// NA replaces a count that overflowed.
const NA = "NA"
