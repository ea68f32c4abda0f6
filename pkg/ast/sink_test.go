package ast

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/TravisHester/cudf/pkg/types"
)

func TestScalarSink(t *testing.T) {
	s := NewScalarSink(types.Int64)
	require.False(t, s.IsValid())

	s.SetValue(0, types.NewInt(types.Int64, 42))
	require.True(t, s.IsValid())
	require.Equal(t, int64(42), s.Value().Int64())

	s.SetValue(0, types.NewNull(types.Int64))
	require.False(t, s.IsValid())
}

func TestColumnSinkFinishNullCount(t *testing.T) {
	s := NewColumnSink(types.Int64, 4)
	s.SetValue(0, types.NewInt(types.Int64, 1))
	s.SetValue(2, types.NewInt(types.Int64, 3))
	s.SetValue(3, types.NewNull(types.Int64))

	arr, err := s.Finish(memory.DefaultAllocator)
	require.NoError(t, err)
	defer arr.Release()

	require.Equal(t, 4, arr.Len())
	require.Equal(t, 2, arr.NullN())

	ints := arr.(*array.Int64)
	require.Equal(t, int64(1), ints.Value(0))
	require.False(t, ints.IsValid(1))
	require.Equal(t, int64(3), ints.Value(2))
	require.False(t, ints.IsValid(3))
}

func TestColumnSinkOverwrite(t *testing.T) {
	s := NewColumnSink(types.Int64, 1)
	s.SetValue(0, types.NewInt(types.Int64, 1))
	s.SetValue(0, types.NewInt(types.Int64, 2))

	arr, err := s.Finish(memory.DefaultAllocator)
	require.NoError(t, err)
	defer arr.Release()
	require.Equal(t, int64(2), arr.(*array.Int64).Value(0))
}

func TestColumnSinkString(t *testing.T) {
	s := NewColumnSink(types.String, 3)
	s.SetValue(0, types.NewString("foo"))
	s.SetValue(2, types.NewString("bar"))

	arr, err := s.Finish(memory.DefaultAllocator)
	require.NoError(t, err)
	defer arr.Release()

	strs := arr.(*array.String)
	require.Equal(t, "foo", strs.Value(0))
	require.False(t, strs.IsValid(1))
	require.Equal(t, "bar", strs.Value(2))
}

func TestColumnSinkBool(t *testing.T) {
	s := NewColumnSink(types.Bool, 2)
	s.SetValue(0, types.NewBool(true))
	s.SetValue(1, types.NewBool(false))

	arr, err := s.Finish(memory.DefaultAllocator)
	require.NoError(t, err)
	defer arr.Release()

	bools := arr.(*array.Boolean)
	require.True(t, bools.Value(0))
	require.False(t, bools.Value(1))
}

func TestColumnSinkTimestamp(t *testing.T) {
	s := NewColumnSink(types.Timestamp, 1)
	s.SetValue(0, types.NewInt(types.Timestamp, 1234567890))

	arr, err := s.Finish(memory.DefaultAllocator)
	require.NoError(t, err)
	defer arr.Release()

	ts := arr.(*array.Timestamp)
	require.Equal(t, int64(1234567890), int64(ts.Value(0)))
}

func TestColumnSinkScalarAccessPanics(t *testing.T) {
	s := NewColumnSink(types.Int64, 1)
	require.Panics(t, func() { s.IsValid() })
	require.Panics(t, func() { s.Value() })
}

func TestIntermediateStorage(t *testing.T) {
	s := NewIntermediateStorage(2)
	require.Equal(t, 2, s.Slots())

	s.Store(0, 7, false)
	s.Store(1, 0, true)

	bits, null := s.Load(0)
	require.Equal(t, uint64(7), bits)
	require.False(t, null)

	_, null = s.Load(1)
	require.True(t, null)
}

func TestSlabPartitioning(t *testing.T) {
	slab := NewSlab(3, 2)

	for w := 0; w < 3; w++ {
		storage := slab.Worker(w)
		require.Equal(t, 2, storage.Slots())
		storage.Store(0, uint64(w+1), false)
		storage.Store(1, uint64(w+100), false)
	}

	// Workers own disjoint slices of the slab.
	for w := 0; w < 3; w++ {
		bits, _ := slab.Worker(w).Load(0)
		require.Equal(t, uint64(w+1), bits)
		bits, _ = slab.Worker(w).Load(1)
		require.Equal(t, uint64(w+100), bits)
	}
}
