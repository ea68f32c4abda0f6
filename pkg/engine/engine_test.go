package engine

import (
	"context"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/TravisHester/cudf/pkg/ast"
	"github.com/TravisHester/cudf/pkg/columnar"
	"github.com/TravisHester/cudf/pkg/types"
)

func int64Table(t *testing.T, vals []int64, valid []bool) *columnar.Table {
	t.Helper()
	b := array.NewInt64Builder(memory.DefaultAllocator)
	defer b.Release()
	b.AppendValues(vals, valid)
	col, err := columnar.NewColumn(types.Int64, b.NewInt64Array())
	require.NoError(t, err)
	tbl, err := columnar.NewTable(col)
	require.NoError(t, err)
	return tbl
}

func addSelfPlan(t *testing.T) *ast.Plan {
	t.Helper()
	plan, err := ast.NewPlan(ast.PlanSpec{
		References: []ast.DataReference{
			ast.ColumnReference(types.Int64, 0, ast.TableSourceLeft),
			ast.ColumnReference(types.Int64, 0, ast.TableSourceRight),
			ast.OutputReference(types.Int64),
		},
		Operators:  []ast.Operator{ast.BinaryOperator(types.BinOpKindAdd)},
		Operands:   []int{0, 1, 2},
		LeftSchema: []types.DataType{types.Int64},
	})
	require.NoError(t, err)
	return plan
}

func newTestEngine(t *testing.T, workers int) *Engine {
	t.Helper()
	eng, err := New(Params{Workers: workers})
	require.NoError(t, err)
	return eng
}

func TestComputeColumn(t *testing.T) {
	eng := newTestEngine(t, 2)
	table := int64Table(t, []int64{1, 2, 3}, nil)

	arr, err := eng.ComputeColumn(context.Background(), table, addSelfPlan(t))
	require.NoError(t, err)
	defer arr.Release()

	require.Equal(t, []int64{2, 4, 6}, arr.(*array.Int64).Int64Values())
	require.Equal(t, 0, arr.NullN())
}

func TestComputeParallelMatchesSequential(t *testing.T) {
	const nrows = 10_000

	vals := make([]int64, nrows)
	valid := make([]bool, nrows)
	for i := range vals {
		vals[i] = int64(i * 31)
		valid[i] = i%7 != 0
	}
	table := int64Table(t, vals, valid)
	plan := addSelfPlan(t)

	parallel := newTestEngine(t, 8)
	parArr, err := parallel.ComputeColumn(context.Background(), table, plan)
	require.NoError(t, err)
	defer parArr.Release()

	sequential := newTestEngine(t, 1)
	seqArr, err := sequential.ComputeColumn(context.Background(), table, plan)
	require.NoError(t, err)
	defer seqArr.Release()

	require.Equal(t, seqArr.Len(), parArr.Len())
	require.Equal(t, seqArr.NullN(), parArr.NullN())

	seq, par := seqArr.(*array.Int64), parArr.(*array.Int64)
	for i := 0; i < seq.Len(); i++ {
		require.Equal(t, seq.IsValid(i), par.IsValid(i), "row %d validity", i)
		if seq.IsValid(i) {
			require.Equal(t, seq.Value(i), par.Value(i), "row %d value", i)
		}
	}
}

func TestComputeScalar(t *testing.T) {
	eng := newTestEngine(t, 4)
	table := int64Table(t, []int64{21}, nil)

	sink := ast.NewScalarSink(types.Int64)
	err := eng.Compute(context.Background(), table, nil, addSelfPlan(t), sink, types.NullsUnequal)
	require.NoError(t, err)
	require.True(t, sink.IsValid())
	require.Equal(t, int64(42), sink.Value().Int64())
}

func TestComputeScalarRejectsManyRows(t *testing.T) {
	eng := newTestEngine(t, 1)
	table := int64Table(t, []int64{1, 2}, nil)

	err := eng.Compute(context.Background(), table, nil, addSelfPlan(t), ast.NewScalarSink(types.Int64), types.NullsUnequal)
	require.ErrorIs(t, err, ErrSink)
}

func TestComputeRejectsRowMismatch(t *testing.T) {
	eng := newTestEngine(t, 1)
	left := int64Table(t, []int64{1, 2}, nil)
	right := int64Table(t, []int64{1}, nil)

	sink := ast.NewColumnSink(types.Int64, 2)
	err := eng.Compute(context.Background(), left, right, addSelfPlan(t), sink, types.NullsUnequal)
	require.ErrorIs(t, err, ErrRows)
}

func TestComputeRejectsSinkMismatch(t *testing.T) {
	eng := newTestEngine(t, 1)
	table := int64Table(t, []int64{1, 2}, nil)
	plan := addSelfPlan(t)

	err := eng.Compute(context.Background(), table, nil, plan, ast.NewColumnSink(types.Int64, 3), types.NullsUnequal)
	require.ErrorIs(t, err, ErrSink)

	err = eng.Compute(context.Background(), table, nil, plan, ast.NewColumnSink(types.Float64, 2), types.NullsUnequal)
	require.ErrorIs(t, err, ErrSink)
}

func TestComputeCancellation(t *testing.T) {
	eng := newTestEngine(t, 2)

	vals := make([]int64, 10_000)
	table := int64Table(t, vals, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.ComputeColumn(ctx, table, addSelfPlan(t))
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewDefaults(t *testing.T) {
	eng, err := New(Params{})
	require.NoError(t, err)
	require.Greater(t, eng.workers, 0)
	require.NotNil(t, eng.logger)
	require.NotNil(t, eng.alloc)
}
