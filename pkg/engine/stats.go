package engine

import "go.uber.org/atomic"

// Stats accumulates counters for a single launch. Workers update it
// concurrently while a launch is running.
type Stats struct {
	// Rows is the number of rows evaluated so far.
	Rows atomic.Int64

	// Chunks is the number of row chunks completed so far.
	Chunks atomic.Int64
}
