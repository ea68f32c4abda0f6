// Package engine provides the row-parallel launcher for expression plans. It
// partitions the row range across workers, hands each worker a slice of a
// shared intermediate slab, and drives per-row evaluation into a shared sink.
package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/TravisHester/cudf/pkg/ast"
	"github.com/TravisHester/cudf/pkg/columnar"
	"github.com/TravisHester/cudf/pkg/types"
)

var (
	// ErrSink is returned when a sink does not match the plan or row count.
	ErrSink = errors.New("sink does not match launch")

	// ErrRows is returned when the input tables disagree on row count.
	ErrRows = errors.New("row count mismatch")
)

// chunkRows is the number of rows a worker evaluates between cancellation
// checks. A started chunk always runs to completion.
const chunkRows = 1024

// Params holds parameters for constructing a new [Engine].
type Params struct {
	Logger     log.Logger            // Logger for optional log messages.
	Registerer prometheus.Registerer // Registerer for optional metrics.

	// Workers is the maximum number of goroutines evaluating rows in
	// parallel. Zero or negative means GOMAXPROCS.
	Workers int

	// Allocator used to materialize output arrays. Nil means the default Go
	// allocator.
	Allocator memory.Allocator
}

// validate validates p and applies defaults.
func (p *Params) validate() error {
	if p.Logger == nil {
		p.Logger = log.NewNopLogger()
	}
	if p.Registerer == nil {
		p.Registerer = prometheus.NewRegistry()
	}
	if p.Workers <= 0 {
		p.Workers = runtime.GOMAXPROCS(0)
	}
	if p.Allocator == nil {
		p.Allocator = memory.DefaultAllocator
	}
	return nil
}

// Engine launches plan evaluations over tables.
type Engine struct {
	logger  log.Logger
	metrics *metrics
	workers int
	alloc   memory.Allocator
}

// New creates a new Engine.
func New(params Params) (*Engine, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	return &Engine{
		logger:  params.Logger,
		metrics: newMetrics(params.Registerer),
		workers: params.Workers,
		alloc:   params.Allocator,
	}, nil
}

// Compute evaluates plan once per row of the inputs, writing results into
// sink. A nil right table makes left serve both sides; otherwise both tables
// must have the same number of rows, and row i of the output is computed from
// row i of each input.
//
// Workers evaluate disjoint row ranges concurrently. Cancellation is observed
// between chunks of rows; a chunk that has started runs to completion.
func (e *Engine) Compute(ctx context.Context, left, right *columnar.Table, plan *ast.Plan, sink ast.ResultSink, nullEq types.NullEquality) error {
	nrows := left.NumRows()
	if right != nil && right.NumRows() != nrows {
		return fmt.Errorf("%w: left has %d rows, right has %d", ErrRows, nrows, right.NumRows())
	}
	if err := checkSink(sink, plan, nrows); err != nil {
		return err
	}

	workers := e.workers
	if n := int((nrows + chunkRows - 1) / chunkRows); n < workers {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	start := time.Now()
	slab := ast.NewSlab(workers, plan.NumIntermediates())

	var stats Stats
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		ev, err := ast.NewEvaluator(left, right, plan, slab.Worker(w), nullEq)
		if err != nil {
			return err
		}

		// Rows are strided by worker at chunk granularity so each worker
		// touches a contiguous run at a time.
		lo := int64(w) * chunkRows
		g.Go(func() error {
			for ; lo < nrows; lo += int64(workers) * chunkRows {
				if err := ctx.Err(); err != nil {
					return err
				}
				hi := lo + chunkRows
				if hi > nrows {
					hi = nrows
				}
				for row := lo; row < hi; row++ {
					ev.Evaluate(sink, row)
				}
				stats.Rows.Add(hi - lo)
				stats.Chunks.Inc()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	elapsed := time.Since(start)
	e.metrics.launchesTotal.Inc()
	e.metrics.rowsTotal.Add(float64(stats.Rows.Load()))
	e.metrics.launchSeconds.Observe(elapsed.Seconds())
	level.Debug(e.logger).Log(
		"msg", "launch complete",
		"plan", fmt.Sprintf("%016x", plan.Fingerprint()),
		"rows", humanize.Comma(stats.Rows.Load()),
		"workers", workers,
		"duration", elapsed,
	)
	return nil
}

// ComputeColumn evaluates plan once per row of table and returns the result
// as a freshly materialized Arrow array. Nulls are propagated by default; use
// [Engine.Compute] to control the null-equality policy.
func (e *Engine) ComputeColumn(ctx context.Context, table *columnar.Table, plan *ast.Plan) (arrow.Array, error) {
	sink := ast.NewColumnSink(plan.OutputType(), table.NumRows())
	if err := e.Compute(ctx, table, nil, plan, sink, types.NullsUnequal); err != nil {
		return nil, err
	}
	return sink.Finish(e.alloc)
}

func checkSink(sink ast.ResultSink, plan *ast.Plan, nrows int64) error {
	switch s := sink.(type) {
	case *ast.ColumnSink:
		if s.Len() != nrows {
			return fmt.Errorf("%w: sink has %d rows, inputs have %d", ErrSink, s.Len(), nrows)
		}
		if s.DataType() != plan.OutputType() {
			return fmt.Errorf("%w: sink is %s, plan produces %s", ErrSink, s.DataType(), plan.OutputType())
		}
	case *ast.ScalarSink:
		if nrows != 1 {
			return fmt.Errorf("%w: scalar sink requires exactly one row, inputs have %d", ErrSink, nrows)
		}
	}
	return nil
}
