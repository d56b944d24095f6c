// Package pipeline splits the query set into contiguous partitions, scans
// each one on its own goroutine, and collects the rows.
//
// The only contract to implement is Scanner (ScanPartition).
// This keeps the pipeline swappable and testable.
package pipeline
