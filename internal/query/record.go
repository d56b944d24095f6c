// Package query loads the loci table whose sequence column is annotated.
package query

// Record is one data row. Line is the row text as read and is carried to
// the output untouched; Seq is the value of the query column.
type Record struct {
	Line string
	Seq  string
}

// Table is a loaded query file.
type Table struct {
	Header  string // header row as read (no trailing newline)
	Column  int    // resolved 0-based query column
	Records []Record
	Skipped int // rows with too few fields for Column
}
