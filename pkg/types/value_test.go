package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueRoundTrip(t *testing.T) {
	tt := []struct {
		name  string
		value Value
		want  any
	}{
		{"bool", NewBool(true), true},
		{"int8", NewInt(Int8, -5), int64(-5)},
		{"int64", NewInt(Int64, 1<<40), int64(1 << 40)},
		{"uint8", NewUint(Uint8, 200), uint64(200)},
		{"uint64", NewUint(Uint64, 1<<63), uint64(1) << 63},
		{"float32", NewFloat32(1.5), 1.5},
		{"float64", NewFloat64(-2.25), -2.25},
		{"string", NewString("hello"), "hello"},
		{"timestamp", NewInt(Timestamp, 1234567890), int64(1234567890)},
		{"decimal64", NewInt(Decimal64, -100), int64(-100)},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			require.True(t, tc.value.IsValid())
			require.Equal(t, tc.want, tc.value.Any())
		})
	}
}

func TestValueTruncation(t *testing.T) {
	// Payloads wider than the tagged type are truncated to its width.
	require.Equal(t, int64(44), NewInt(Int8, 300).Int64())
	require.Equal(t, uint64(44), NewUint(Uint8, 300).Uint64())
}

func TestValueNull(t *testing.T) {
	v := NewNull(Int32)
	require.False(t, v.IsValid())
	require.Equal(t, Int32, v.Type())
	require.Nil(t, v.Any())
}

func TestValueFromBits(t *testing.T) {
	orig := NewInt(Int16, -123)
	got := FromBits(Int16, orig.Bits(), true)
	require.Equal(t, int64(-123), got.Int64())

	null := FromBits(Int16, orig.Bits(), false)
	require.False(t, null.IsValid())
}

func TestValueAccessorPanics(t *testing.T) {
	require.Panics(t, func() { NewBool(true).Int64() })
	require.Panics(t, func() { NewInt(Int64, 1).Bool() })
	require.Panics(t, func() { NewString("x").Float64() })
}

func TestDataTypePredicates(t *testing.T) {
	tt := []struct {
		dtype      DataType
		size       int
		fixedWidth bool
		integral   bool
		numeric    bool
		ordered    bool
	}{
		{Bool, 1, true, false, false, false},
		{Int8, 1, true, true, true, true},
		{Int64, 8, true, true, true, true},
		{Uint32, 4, true, true, true, true},
		{Float64, 8, true, false, true, true},
		{Timestamp, 8, true, false, false, true},
		{Duration, 8, true, false, false, true},
		{Decimal64, 8, true, false, false, true},
		{String, -1, false, false, false, true},
	}

	for _, tc := range tt {
		t.Run(tc.dtype.String(), func(t *testing.T) {
			require.Equal(t, tc.size, tc.dtype.Size())
			require.Equal(t, tc.fixedWidth, tc.dtype.FixedWidth())
			require.Equal(t, tc.integral, tc.dtype.Integral())
			require.Equal(t, tc.numeric, tc.dtype.Numeric())
			require.Equal(t, tc.ordered, tc.dtype.Ordered())
		})
	}
}
