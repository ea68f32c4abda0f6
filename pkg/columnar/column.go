// Package columnar provides read-only table and column views over Arrow
// arrays for the expression engine.
//
// Columns pair an [arrow.Array] with an engine [types.DataType] and expose
// typed, monomorphic element access. Views are non-owning; callers are
// responsible for keeping the underlying arrays alive for the duration of an
// evaluation.
package columnar

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/TravisHester/cudf/pkg/internal/unsafecast"
	"github.com/TravisHester/cudf/pkg/types"
)

// FixedElement is the set of Go representations of fixed-width element types.
type FixedElement interface {
	~bool | ~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

// A Column is a read-only view of one Arrow array tagged with its engine data
// type.
type Column struct {
	dtype types.DataType
	arr   arrow.Array

	// data holds the typed value slice of fixed-width arrays so element reads
	// skip per-call interface dispatch. Boolean and string arrays keep their
	// Arrow representation.
	data any
}

// NewColumn wraps arr as a column of the given data type. NewColumn returns
// an error if the physical Arrow type does not match dtype.
func NewColumn(dtype types.DataType, arr arrow.Array) (*Column, error) {
	c := &Column{dtype: dtype, arr: arr}

	switch dtype {
	case types.Bool:
		if _, ok := arr.(*array.Boolean); !ok {
			return nil, typeMismatch(dtype, arr)
		}
	case types.Int8:
		a, ok := arr.(*array.Int8)
		if !ok {
			return nil, typeMismatch(dtype, arr)
		}
		c.data = a.Int8Values()
	case types.Int16:
		a, ok := arr.(*array.Int16)
		if !ok {
			return nil, typeMismatch(dtype, arr)
		}
		c.data = a.Int16Values()
	case types.Int32:
		a, ok := arr.(*array.Int32)
		if !ok {
			return nil, typeMismatch(dtype, arr)
		}
		c.data = a.Int32Values()
	case types.Int64:
		a, ok := arr.(*array.Int64)
		if !ok {
			return nil, typeMismatch(dtype, arr)
		}
		c.data = a.Int64Values()
	case types.Uint8:
		a, ok := arr.(*array.Uint8)
		if !ok {
			return nil, typeMismatch(dtype, arr)
		}
		c.data = a.Uint8Values()
	case types.Uint16:
		a, ok := arr.(*array.Uint16)
		if !ok {
			return nil, typeMismatch(dtype, arr)
		}
		c.data = a.Uint16Values()
	case types.Uint32:
		a, ok := arr.(*array.Uint32)
		if !ok {
			return nil, typeMismatch(dtype, arr)
		}
		c.data = a.Uint32Values()
	case types.Uint64:
		a, ok := arr.(*array.Uint64)
		if !ok {
			return nil, typeMismatch(dtype, arr)
		}
		c.data = a.Uint64Values()
	case types.Float32:
		a, ok := arr.(*array.Float32)
		if !ok {
			return nil, typeMismatch(dtype, arr)
		}
		c.data = a.Float32Values()
	case types.Float64:
		a, ok := arr.(*array.Float64)
		if !ok {
			return nil, typeMismatch(dtype, arr)
		}
		c.data = a.Float64Values()
	case types.Timestamp:
		a, ok := arr.(*array.Timestamp)
		if !ok {
			return nil, typeMismatch(dtype, arr)
		}
		c.data = unsafecast.Slice[arrow.Timestamp, int64](a.TimestampValues())
	case types.Duration:
		a, ok := arr.(*array.Duration)
		if !ok {
			return nil, typeMismatch(dtype, arr)
		}
		c.data = unsafecast.Slice[arrow.Duration, int64](a.DurationValues())
	case types.Decimal64:
		// Decimal64 is physically a scaled int64.
		a, ok := arr.(*array.Int64)
		if !ok {
			return nil, typeMismatch(dtype, arr)
		}
		c.data = a.Int64Values()
	case types.String:
		if _, ok := arr.(*array.String); !ok {
			return nil, typeMismatch(dtype, arr)
		}
	default:
		return nil, fmt.Errorf("columnar: unsupported data type %s", dtype)
	}

	return c, nil
}

func typeMismatch(dtype types.DataType, arr arrow.Array) error {
	return fmt.Errorf("columnar: data type %s does not match arrow array %s", dtype, arr.DataType())
}

// DataType returns the engine data type of the column.
func (c *Column) DataType() types.DataType { return c.dtype }

// Len returns the number of elements in the column.
func (c *Column) Len() int64 { return int64(c.arr.Len()) }

// IsValid reports whether the element at row is non-null.
func (c *Column) IsValid(row int64) bool { return c.arr.IsValid(int(row)) }

// MayHaveNulls reports whether the column carries any null elements.
func (c *Column) MayHaveNulls() bool { return c.arr.NullN() > 0 }

// Array returns the underlying Arrow array.
func (c *Column) Array() arrow.Array { return c.arr }

// Element returns the fixed-width element at row as type T. The caller must
// have established that T is the Go representation of the column's data type;
// a mismatch is a programmer error and panics.
func Element[T FixedElement](c *Column, row int64) T {
	if s, ok := c.data.([]T); ok {
		return s[row]
	}
	if b, ok := c.arr.(*array.Boolean); ok {
		if v, ok := any(b.Value(int(row))).(T); ok {
			return v
		}
	}
	panic(fmt.Sprintf("columnar: element type %T does not match column type %s", *new(T), c.dtype))
}

// StringElement returns the string element at row. It panics if the column is
// not a string column.
func StringElement(c *Column, row int64) string {
	a, ok := c.arr.(*array.String)
	if !ok {
		panic(fmt.Sprintf("columnar: string access on column type %s", c.dtype))
	}
	return a.Value(int(row))
}
