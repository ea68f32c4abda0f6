package ast

import "github.com/TravisHester/cudf/pkg/types"

// unaryResult returns the result type of applying op to an operand of type t,
// reporting ok = false when the combination is undefined.
func unaryResult(op types.UnaryOpKind, t types.DataType) (types.DataType, bool) {
	switch op {
	case types.UnaryOpKindIdentity:
		return t, t != types.Invalid

	case types.UnaryOpKindSin, types.UnaryOpKindCos, types.UnaryOpKindTan,
		types.UnaryOpKindArcSin, types.UnaryOpKindArcCos, types.UnaryOpKindArcTan,
		types.UnaryOpKindExp, types.UnaryOpKindLog, types.UnaryOpKindSqrt,
		types.UnaryOpKindCeil, types.UnaryOpKindFloor:
		switch t {
		case types.Float32, types.Float64:
			return t, true
		}
		return types.Invalid, false

	case types.UnaryOpKindAbs:
		switch t {
		case types.Int8, types.Int16, types.Int32, types.Int64,
			types.Float32, types.Float64, types.Duration, types.Decimal64:
			return t, true
		}
		return types.Invalid, false

	case types.UnaryOpKindNot:
		if t == types.Bool {
			return types.Bool, true
		}
		return types.Invalid, false

	case types.UnaryOpKindBitNot:
		if t.Integral() {
			return t, true
		}
		return types.Invalid, false

	case types.UnaryOpKindCastToInt64:
		if t.Numeric() {
			return types.Int64, true
		}
		return types.Invalid, false
	case types.UnaryOpKindCastToUint64:
		if t.Numeric() {
			return types.Uint64, true
		}
		return types.Invalid, false
	case types.UnaryOpKindCastToFloat64:
		if t.Numeric() {
			return types.Float64, true
		}
		return types.Invalid, false
	}

	return types.Invalid, false
}

// binaryResult returns the result type of applying op to two operands of the
// single promoted type t, reporting ok = false when the combination is
// undefined.
func binaryResult(op types.BinOpKind, t types.DataType) (types.DataType, bool) {
	switch op {
	case types.BinOpKindAdd, types.BinOpKindSub:
		if t.Numeric() || t == types.Duration || t == types.Decimal64 {
			return t, true
		}
		return types.Invalid, false

	case types.BinOpKindMul, types.BinOpKindDiv, types.BinOpKindMod, types.BinOpKindPow:
		if t.Numeric() {
			return t, true
		}
		return types.Invalid, false

	case types.BinOpKindEq, types.BinOpKindNeq, types.BinOpKindNullEquals:
		if t.Ordered() || t == types.Bool {
			return types.Bool, true
		}
		return types.Invalid, false

	case types.BinOpKindLt, types.BinOpKindGt, types.BinOpKindLte, types.BinOpKindGte:
		if t.Ordered() {
			return types.Bool, true
		}
		return types.Invalid, false

	case types.BinOpKindAnd, types.BinOpKindOr:
		if t == types.Bool {
			return types.Bool, true
		}
		return types.Invalid, false

	case types.BinOpKindBitAnd, types.BinOpKindBitOr, types.BinOpKindBitXor:
		if t.Integral() {
			return t, true
		}
		return types.Invalid, false
	}

	return types.Invalid, false
}
