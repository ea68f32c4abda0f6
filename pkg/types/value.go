package types

import (
	"fmt"

	"github.com/TravisHester/cudf/pkg/internal/unsafecast"
)

// Value is a boxed, possibly-null scalar. Fixed-width payloads are stored as
// an 8-byte bit pattern in the layout of the tagged type; strings are stored
// out of band. Values serve as plan literals and as the payload handed to
// result sinks.
type Value struct {
	dtype DataType
	bits  uint64
	str   string
	valid bool
}

// NewNull returns a null Value of the given type.
func NewNull(dtype DataType) Value {
	return Value{dtype: dtype}
}

// NewBool returns a boolean Value.
func NewBool(v bool) Value {
	return Value{dtype: Bool, bits: unsafecast.Pack(v), valid: true}
}

// NewInt returns a Value of a signed integral type (Int8 through Int64,
// Timestamp, Duration, or Decimal64). The payload is truncated to the width
// of dtype.
func NewInt(dtype DataType, v int64) Value {
	var bits uint64
	switch dtype {
	case Int8:
		bits = unsafecast.Pack(int8(v))
	case Int16:
		bits = unsafecast.Pack(int16(v))
	case Int32:
		bits = unsafecast.Pack(int32(v))
	case Int64, Timestamp, Duration, Decimal64:
		bits = unsafecast.Pack(v)
	default:
		panic(fmt.Sprintf("types.NewInt: invalid data type %s", dtype))
	}
	return Value{dtype: dtype, bits: bits, valid: true}
}

// NewUint returns a Value of an unsigned integral type. The payload is
// truncated to the width of dtype.
func NewUint(dtype DataType, v uint64) Value {
	var bits uint64
	switch dtype {
	case Uint8:
		bits = unsafecast.Pack(uint8(v))
	case Uint16:
		bits = unsafecast.Pack(uint16(v))
	case Uint32:
		bits = unsafecast.Pack(uint32(v))
	case Uint64:
		bits = v
	default:
		panic(fmt.Sprintf("types.NewUint: invalid data type %s", dtype))
	}
	return Value{dtype: dtype, bits: bits, valid: true}
}

// NewFloat32 returns a 32-bit floating point Value.
func NewFloat32(v float32) Value {
	return Value{dtype: Float32, bits: unsafecast.Pack(v), valid: true}
}

// NewFloat64 returns a 64-bit floating point Value.
func NewFloat64(v float64) Value {
	return Value{dtype: Float64, bits: unsafecast.Pack(v), valid: true}
}

// NewString returns a string Value.
func NewString(v string) Value {
	return Value{dtype: String, str: v, valid: true}
}

// FromBits assembles a fixed-width Value from a raw 8-byte bit pattern. The
// bit pattern must be in the layout of dtype.
func FromBits(dtype DataType, bits uint64, valid bool) Value {
	return Value{dtype: dtype, bits: bits, valid: valid}
}

// Type returns the data type of the Value.
func (v Value) Type() DataType { return v.dtype }

// IsValid reports whether the Value is non-null.
func (v Value) IsValid() bool { return v.valid }

// Bits returns the raw 8-byte bit pattern of a fixed-width Value.
func (v Value) Bits() uint64 { return v.bits }

// Bool returns the boolean payload. It panics if the Value is not a Bool.
func (v Value) Bool() bool {
	v.mustBe(Bool)
	return unsafecast.Unpack[bool](v.bits)
}

// Int64 returns the signed integral payload widened to int64. It panics if
// the Value is not a signed integral type.
func (v Value) Int64() int64 {
	switch v.dtype {
	case Int8:
		return int64(unsafecast.Unpack[int8](v.bits))
	case Int16:
		return int64(unsafecast.Unpack[int16](v.bits))
	case Int32:
		return int64(unsafecast.Unpack[int32](v.bits))
	case Int64, Timestamp, Duration, Decimal64:
		return unsafecast.Unpack[int64](v.bits)
	}
	panic(fmt.Sprintf("types.Value.Int64: invalid data type %s", v.dtype))
}

// Uint64 returns the unsigned integral payload widened to uint64. It panics
// if the Value is not an unsigned integral type.
func (v Value) Uint64() uint64 {
	switch v.dtype {
	case Uint8:
		return uint64(unsafecast.Unpack[uint8](v.bits))
	case Uint16:
		return uint64(unsafecast.Unpack[uint16](v.bits))
	case Uint32:
		return uint64(unsafecast.Unpack[uint32](v.bits))
	case Uint64:
		return v.bits
	}
	panic(fmt.Sprintf("types.Value.Uint64: invalid data type %s", v.dtype))
}

// Float64 returns the floating point payload widened to float64. It panics
// if the Value is not a floating point type.
func (v Value) Float64() float64 {
	switch v.dtype {
	case Float32:
		return float64(unsafecast.Unpack[float32](v.bits))
	case Float64:
		return unsafecast.Unpack[float64](v.bits)
	}
	panic(fmt.Sprintf("types.Value.Float64: invalid data type %s", v.dtype))
}

// Str returns the string payload. It panics if the Value is not a String.
func (v Value) Str() string {
	v.mustBe(String)
	return v.str
}

// Any returns the payload as an untyped value, or nil when the Value is null.
func (v Value) Any() any {
	if !v.valid {
		return nil
	}
	switch v.dtype {
	case Bool:
		return v.Bool()
	case Int8, Int16, Int32, Int64, Timestamp, Duration, Decimal64:
		return v.Int64()
	case Uint8, Uint16, Uint32, Uint64:
		return v.Uint64()
	case Float32, Float64:
		return v.Float64()
	case String:
		return v.str
	}
	return nil
}

// String returns a human-readable representation of the Value.
func (v Value) String() string {
	if !v.valid {
		return fmt.Sprintf("null(%s)", v.dtype)
	}
	return fmt.Sprintf("%v(%s)", v.Any(), v.dtype)
}

func (v Value) mustBe(dtype DataType) {
	if v.dtype != dtype {
		panic(fmt.Sprintf("types.Value: expected %s, got %s", dtype, v.dtype))
	}
}
