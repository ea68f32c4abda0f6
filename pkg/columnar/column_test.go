package columnar

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/TravisHester/cudf/pkg/types"
)

func int64Array(t *testing.T, vals []int64, valid []bool) *array.Int64 {
	t.Helper()
	b := array.NewInt64Builder(memory.DefaultAllocator)
	defer b.Release()
	b.AppendValues(vals, valid)
	return b.NewInt64Array()
}

func TestNewColumn(t *testing.T) {
	arr := int64Array(t, []int64{1, 2, 3}, nil)
	defer arr.Release()

	col, err := NewColumn(types.Int64, arr)
	require.NoError(t, err)
	require.Equal(t, types.Int64, col.DataType())
	require.Equal(t, int64(3), col.Len())
	require.False(t, col.MayHaveNulls())
	require.Equal(t, int64(2), Element[int64](col, 1))
}

func TestNewColumnTypeMismatch(t *testing.T) {
	arr := int64Array(t, []int64{1}, nil)
	defer arr.Release()

	_, err := NewColumn(types.Float64, arr)
	require.Error(t, err)
}

func TestNewColumnDecimal64(t *testing.T) {
	arr := int64Array(t, []int64{100, -250}, nil)
	defer arr.Release()

	col, err := NewColumn(types.Decimal64, arr)
	require.NoError(t, err)
	require.Equal(t, int64(-250), Element[int64](col, 1))
}

func TestColumnNulls(t *testing.T) {
	arr := int64Array(t, []int64{1, 0, 3}, []bool{true, false, true})
	defer arr.Release()

	col, err := NewColumn(types.Int64, arr)
	require.NoError(t, err)
	require.True(t, col.MayHaveNulls())
	require.True(t, col.IsValid(0))
	require.False(t, col.IsValid(1))
	require.True(t, col.IsValid(2))
}

func TestElementBool(t *testing.T) {
	b := array.NewBooleanBuilder(memory.DefaultAllocator)
	defer b.Release()
	b.AppendValues([]bool{true, false}, nil)
	arr := b.NewBooleanArray()
	defer arr.Release()

	col, err := NewColumn(types.Bool, arr)
	require.NoError(t, err)
	require.True(t, Element[bool](col, 0))
	require.False(t, Element[bool](col, 1))
}

func TestElementTypeMismatchPanics(t *testing.T) {
	arr := int64Array(t, []int64{1}, nil)
	defer arr.Release()

	col, err := NewColumn(types.Int64, arr)
	require.NoError(t, err)
	require.Panics(t, func() { Element[float64](col, 0) })
}

func TestStringElement(t *testing.T) {
	b := array.NewStringBuilder(memory.DefaultAllocator)
	defer b.Release()
	b.AppendValues([]string{"foo", "bar"}, nil)
	arr := b.NewStringArray()
	defer arr.Release()

	col, err := NewColumn(types.String, arr)
	require.NoError(t, err)
	require.Equal(t, "bar", StringElement(col, 1))
}

func TestNewTable(t *testing.T) {
	a := int64Array(t, []int64{1, 2, 3}, nil)
	defer a.Release()
	b := int64Array(t, []int64{4, 5, 6}, nil)
	defer b.Release()

	colA, err := NewColumn(types.Int64, a)
	require.NoError(t, err)
	colB, err := NewColumn(types.Int64, b)
	require.NoError(t, err)

	tbl, err := NewTable(colA, colB)
	require.NoError(t, err)
	require.Equal(t, int64(3), tbl.NumRows())
	require.Equal(t, 2, tbl.NumCols())
	require.Equal(t, []types.DataType{types.Int64, types.Int64}, tbl.Schema())
}

func TestNewTableLengthMismatch(t *testing.T) {
	a := int64Array(t, []int64{1, 2, 3}, nil)
	defer a.Release()
	b := int64Array(t, []int64{4}, nil)
	defer b.Release()

	colA, err := NewColumn(types.Int64, a)
	require.NoError(t, err)
	colB, err := NewColumn(types.Int64, b)
	require.NoError(t, err)

	_, err = NewTable(colA, colB)
	require.Error(t, err)
}
