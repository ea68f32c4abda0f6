package ast

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/TravisHester/cudf/pkg/internal/unsafecast"
	"github.com/TravisHester/cudf/pkg/types"
)

// A ResultSink receives the terminal result of plan evaluation. Implemented
// by [ScalarSink] for single-result plans and [ColumnSink] for per-row
// results.
type ResultSink interface {
	// SetValue stores the result for output row. Scalar sinks ignore row.
	SetValue(row int64, v types.Value)
}

// A ScalarSink owns exactly one possibly-null value. Only a single worker may
// evaluate into a scalar sink.
type ScalarSink struct {
	dtype types.DataType
	value types.Value
}

var _ ResultSink = (*ScalarSink)(nil)

// NewScalarSink returns a scalar sink for results of the given type.
func NewScalarSink(dtype types.DataType) *ScalarSink {
	return &ScalarSink{dtype: dtype, value: types.NewNull(dtype)}
}

// SetValue implements ResultSink. The row index is ignored.
func (s *ScalarSink) SetValue(_ int64, v types.Value) {
	s.value = v
}

// IsValid reports whether the stored value is non-null.
func (s *ScalarSink) IsValid() bool { return s.value.IsValid() }

// Value returns the stored value.
func (s *ScalarSink) Value() types.Value { return s.value }

// A ColumnSink is a preallocated output column buffer. Distinct workers write
// distinct row indices, and validity is tracked one byte per row, so
// concurrent writes to disjoint rows need no locking. Finish materializes the
// buffer as an Arrow array with a packed validity bitmap.
type ColumnSink struct {
	dtype types.DataType
	bits  []uint64
	strs  []string
	valid []byte
}

var _ ResultSink = (*ColumnSink)(nil)

// NewColumnSink returns a column sink of the given element type with nrows
// rows. All rows are null until written.
func NewColumnSink(dtype types.DataType, nrows int64) *ColumnSink {
	s := &ColumnSink{
		dtype: dtype,
		valid: make([]byte, nrows),
	}
	if dtype == types.String {
		s.strs = make([]string, nrows)
	} else {
		s.bits = make([]uint64, nrows)
	}
	return s
}

// Len returns the number of rows in the sink.
func (s *ColumnSink) Len() int64 { return int64(len(s.valid)) }

// DataType returns the element type of the sink.
func (s *ColumnSink) DataType() types.DataType { return s.dtype }

// SetValue implements ResultSink.
func (s *ColumnSink) SetValue(row int64, v types.Value) {
	if !v.IsValid() {
		s.valid[row] = 0
		return
	}
	if s.dtype == types.String {
		s.strs[row] = v.Str()
	} else {
		s.bits[row] = v.Bits()
	}
	s.valid[row] = 1
}

// IsValid panics: validity of individual rows is not meaningful on a column
// sink.
func (s *ColumnSink) IsValid() bool {
	panic("ast: IsValid called on a column sink")
}

// Value panics: single-value access is not meaningful on a column sink.
func (s *ColumnSink) Value() types.Value {
	panic("ast: Value called on a column sink")
}

// Finish materializes the sink's contents as an Arrow array.
func (s *ColumnSink) Finish(mem memory.Allocator) (arrow.Array, error) {
	switch s.dtype {
	case types.Bool:
		return finishFixed(s, array.NewBooleanBuilder(mem), (*array.BooleanBuilder).Append, unsafecast.Unpack[bool]), nil
	case types.Int8:
		return finishFixed(s, array.NewInt8Builder(mem), (*array.Int8Builder).Append, unsafecast.Unpack[int8]), nil
	case types.Int16:
		return finishFixed(s, array.NewInt16Builder(mem), (*array.Int16Builder).Append, unsafecast.Unpack[int16]), nil
	case types.Int32:
		return finishFixed(s, array.NewInt32Builder(mem), (*array.Int32Builder).Append, unsafecast.Unpack[int32]), nil
	case types.Int64, types.Decimal64:
		return finishFixed(s, array.NewInt64Builder(mem), (*array.Int64Builder).Append, unsafecast.Unpack[int64]), nil
	case types.Uint8:
		return finishFixed(s, array.NewUint8Builder(mem), (*array.Uint8Builder).Append, unsafecast.Unpack[uint8]), nil
	case types.Uint16:
		return finishFixed(s, array.NewUint16Builder(mem), (*array.Uint16Builder).Append, unsafecast.Unpack[uint16]), nil
	case types.Uint32:
		return finishFixed(s, array.NewUint32Builder(mem), (*array.Uint32Builder).Append, unsafecast.Unpack[uint32]), nil
	case types.Uint64:
		return finishFixed(s, array.NewUint64Builder(mem), (*array.Uint64Builder).Append, unsafecast.Unpack[uint64]), nil
	case types.Float32:
		return finishFixed(s, array.NewFloat32Builder(mem), (*array.Float32Builder).Append, unsafecast.Unpack[float32]), nil
	case types.Float64:
		return finishFixed(s, array.NewFloat64Builder(mem), (*array.Float64Builder).Append, unsafecast.Unpack[float64]), nil
	case types.Timestamp:
		b := array.NewTimestampBuilder(mem, &arrow.TimestampType{Unit: arrow.Nanosecond})
		return finishFixed(s, b, (*array.TimestampBuilder).Append, func(bits uint64) arrow.Timestamp {
			return arrow.Timestamp(unsafecast.Unpack[int64](bits))
		}), nil
	case types.Duration:
		b := array.NewDurationBuilder(mem, &arrow.DurationType{Unit: arrow.Nanosecond})
		return finishFixed(s, b, (*array.DurationBuilder).Append, func(bits uint64) arrow.Duration {
			return arrow.Duration(unsafecast.Unpack[int64](bits))
		}), nil
	case types.String:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		for row := range s.strs {
			if s.valid[row] == 0 {
				b.AppendNull()
				continue
			}
			b.Append(s.strs[row])
		}
		return b.NewArray(), nil
	}
	return nil, fmt.Errorf("%w: cannot materialize sink of type %s", ErrType, s.dtype)
}

// finishFixed drains a fixed-width sink into an Arrow builder, pairing the
// builder with its typed append method.
func finishFixed[B array.Builder, T any](s *ColumnSink, b B, appendFn func(B, T), unpack func(uint64) T) arrow.Array {
	defer b.Release()
	for row := range s.valid {
		if s.valid[row] == 0 {
			b.AppendNull()
			continue
		}
		appendFn(b, unpack(s.bits[row]))
	}
	return b.NewArray()
}
