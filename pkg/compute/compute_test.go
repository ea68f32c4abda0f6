package compute

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiv(t *testing.T) {
	tt := []struct {
		name        string
		left, right int64
		want        int64
	}{
		{"exact", 10, 2, 5},
		{"truncates", 7, 2, 3},
		{"negative truncates towards zero", -7, 2, -3},
		{"zero divisor", 5, 0, 0},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Div(tc.left, tc.right))
		})
	}
}

func TestMod(t *testing.T) {
	tt := []struct {
		name        string
		left, right int64
		want        int64
	}{
		{"remainder", 7, 3, 1},
		{"negative dividend", -7, 3, -1},
		{"zero divisor", 7, 0, 0},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Mod(tc.left, tc.right))
		})
	}
}

func TestPow(t *testing.T) {
	tt := []struct {
		name        string
		left, right int64
		want        int64
	}{
		{"square", 3, 2, 9},
		{"large exponent", 2, 10, 1024},
		{"zero exponent", 3, 0, 1},
		{"zero base", 0, 5, 0},
		{"zero to the zero", 0, 0, 1},
		{"negative base odd", -2, 3, -8},
		{"negative base even", -2, 4, 16},
		{"negative exponent", 2, -1, 0},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Pow(tc.left, tc.right))
		})
	}
}

func TestPowUnsigned(t *testing.T) {
	require.Equal(t, uint8(0), Pow(uint8(2), uint8(8))) // wraps at the element width
	require.Equal(t, uint64(256), Pow(uint64(2), uint64(8)))
}

func TestDivFloat(t *testing.T) {
	require.Equal(t, 2.5, DivFloat(5.0, 2.0))
	require.True(t, math.IsInf(DivFloat(1.0, 0.0), 1))
	require.True(t, math.IsNaN(DivFloat(0.0, 0.0)))
}

func TestModFloat(t *testing.T) {
	require.Equal(t, 1.5, ModFloat(7.5, 3.0))
	require.True(t, math.IsNaN(ModFloat(1.0, 0.0)))
}

func TestAbsSigned(t *testing.T) {
	require.Equal(t, int32(5), AbsSigned(int32(-5)))
	require.Equal(t, int32(5), AbsSigned(int32(5)))

	// The minimum value has no positive counterpart and wraps to itself.
	require.Equal(t, int8(math.MinInt8), AbsSigned(int8(math.MinInt8)))
}

func TestComparisons(t *testing.T) {
	require.True(t, Lt(int64(1), int64(2)))
	require.False(t, Lt(int64(2), int64(2)))
	require.True(t, Lte(int64(2), int64(2)))
	require.True(t, Gt(uint8(3), uint8(2)))
	require.True(t, Gte("b", "a"))
	require.True(t, Eq("abc", "abc"))
	require.True(t, Neq(1.0, 2.0))
}

func TestLogical(t *testing.T) {
	require.True(t, And(true, true))
	require.False(t, And(true, false))
	require.True(t, Or(false, true))
	require.False(t, Or(false, false))
	require.True(t, Not(false))
	require.True(t, EqBool(false, false))
	require.True(t, NeqBool(false, true))
}

func TestBitwise(t *testing.T) {
	require.Equal(t, uint8(0b1000), BitAnd(uint8(0b1100), uint8(0b1010)))
	require.Equal(t, uint8(0b1110), BitOr(uint8(0b1100), uint8(0b1010)))
	require.Equal(t, uint8(0b0110), BitXor(uint8(0b1100), uint8(0b1010)))
	require.Equal(t, uint8(0b11110011), BitNot(uint8(0b00001100)))
	require.Equal(t, int64(-1), BitNot(int64(0)))
}

func TestCasts(t *testing.T) {
	require.Equal(t, int64(3), ToInt64(3.9))
	require.Equal(t, uint64(7), ToUint64(int8(7)))
	require.Equal(t, 3.0, ToFloat64(int32(3)))
}
