package ast

import (
	"fmt"

	"github.com/TravisHester/cudf/pkg/columnar"
	"github.com/TravisHester/cudf/pkg/compute"
	"github.com/TravisHester/cudf/pkg/internal/unsafecast"
	"github.com/TravisHester/cudf/pkg/types"
)

// The dispatch layer turns the runtime (operator, element type) pair into a
// monomorphic kernel invocation. The outer switch maps the operand's data
// type tag onto a Go element type; the inner switch maps the operator onto a
// kernel instantiated for that type. Both sets are closed, so every
// combination a plan can legally contain is enumerated here, and anything
// else is a programmer error that panics. Plan validation makes those panics
// unreachable for well-formed plans.

// evalBinary resolves both operands of a binary operator at the single
// promoted type of its left operand, applies the kernel, and hands the result
// to the output handler.
func (e *Evaluator) evalBinary(op types.BinOpKind, lref, rref, out DataReference, sink ResultSink, lr, rr, or int64) {
	switch lref.DataType {
	case types.Bool:
		e.evalBinaryBool(op, lref, rref, out, sink, lr, rr, or)
	case types.Int8:
		evalBinaryInteger[int8](e, op, lref, rref, out, sink, lr, rr, or)
	case types.Int16:
		evalBinaryInteger[int16](e, op, lref, rref, out, sink, lr, rr, or)
	case types.Int32:
		evalBinaryInteger[int32](e, op, lref, rref, out, sink, lr, rr, or)
	case types.Int64:
		evalBinaryInteger[int64](e, op, lref, rref, out, sink, lr, rr, or)
	case types.Uint8:
		evalBinaryInteger[uint8](e, op, lref, rref, out, sink, lr, rr, or)
	case types.Uint16:
		evalBinaryInteger[uint16](e, op, lref, rref, out, sink, lr, rr, or)
	case types.Uint32:
		evalBinaryInteger[uint32](e, op, lref, rref, out, sink, lr, rr, or)
	case types.Uint64:
		evalBinaryInteger[uint64](e, op, lref, rref, out, sink, lr, rr, or)
	case types.Float32:
		evalBinaryFloat[float32](e, op, lref, rref, out, sink, lr, rr, or)
	case types.Float64:
		evalBinaryFloat[float64](e, op, lref, rref, out, sink, lr, rr, or)
	case types.Timestamp:
		e.evalBinaryOrdered(op, false, lref, rref, out, sink, lr, rr, or)
	case types.Duration, types.Decimal64:
		e.evalBinaryOrdered(op, true, lref, rref, out, sink, lr, rr, or)
	case types.String:
		e.evalBinaryString(op, lref, rref, out, sink, lr, rr, or)
	default:
		panic(fmt.Sprintf("ast: unsupported element type %s", lref.DataType))
	}
}

// evalUnary resolves the operand of a unary operator, applies the kernel, and
// hands the result to the output handler.
func (e *Evaluator) evalUnary(op types.UnaryOpKind, in, out DataReference, sink ResultSink, lr, rr, or int64) {
	switch in.DataType {
	case types.Bool:
		e.evalUnaryBool(op, in, out, sink, lr, rr, or)
	case types.Int8:
		evalUnarySigned[int8](e, op, in, out, sink, lr, rr, or)
	case types.Int16:
		evalUnarySigned[int16](e, op, in, out, sink, lr, rr, or)
	case types.Int32:
		evalUnarySigned[int32](e, op, in, out, sink, lr, rr, or)
	case types.Int64:
		evalUnarySigned[int64](e, op, in, out, sink, lr, rr, or)
	case types.Uint8:
		evalUnaryUnsigned[uint8](e, op, in, out, sink, lr, rr, or)
	case types.Uint16:
		evalUnaryUnsigned[uint16](e, op, in, out, sink, lr, rr, or)
	case types.Uint32:
		evalUnaryUnsigned[uint32](e, op, in, out, sink, lr, rr, or)
	case types.Uint64:
		evalUnaryUnsigned[uint64](e, op, in, out, sink, lr, rr, or)
	case types.Float32:
		evalUnaryFloat[float32](e, op, in, out, sink, lr, rr, or)
	case types.Float64:
		evalUnaryFloat[float64](e, op, in, out, sink, lr, rr, or)
	case types.Timestamp:
		e.evalUnaryOrdered(op, false, in, out, sink, lr, rr, or)
	case types.Duration, types.Decimal64:
		e.evalUnaryOrdered(op, true, in, out, sink, lr, rr, or)
	case types.String:
		e.evalUnaryString(op, in, out, sink, lr, rr, or)
	default:
		panic(fmt.Sprintf("ast: unsupported element type %s", in.DataType))
	}
}

// combine1 applies a unary kernel under default null propagation.
func combine1[T, R any](e *Evaluator, v nullable[T], f func(T) R) nullable[R] {
	if e.hasNulls && v.Null {
		return nullable[R]{Null: true}
	}
	return nullable[R]{Value: f(v.Value)}
}

// combine2 applies a binary kernel under default null propagation: any null
// operand yields a null result.
func combine2[T, R any](e *Evaluator, l, r nullable[T], f func(T, T) R) nullable[R] {
	if e.hasNulls && (l.Null || r.Null) {
		return nullable[R]{Null: true}
	}
	return nullable[R]{Value: f(l.Value, r.Value)}
}

// nullEquals implements the NULL_EQUALS operator under the evaluator's
// null-equality policy: two nulls compare per policy, a null against a
// non-null propagates, two non-nulls compare by value.
func nullEquals[T comparable](e *Evaluator, l, r nullable[T]) nullable[bool] {
	if e.hasNulls {
		if l.Null && r.Null {
			return nullable[bool]{Value: e.nullEq == types.NullsEqual}
		}
		if l.Null || r.Null {
			return nullable[bool]{Null: true}
		}
	}
	return nullable[bool]{Value: l.Value == r.Value}
}

// writeFixed is the output handler for fixed-width results: the byte
// representation is copied into an intermediate slot, or boxed and handed to
// the sink for the terminal output.
func writeFixed[R columnar.FixedElement](e *Evaluator, sink ResultSink, or int64, out DataReference, res nullable[R]) {
	if out.Kind == ReferenceKindIntermediate {
		e.scratch.Store(out.Index, unsafecast.Pack(res.Value), res.Null)
		return
	}
	sink.SetValue(or, types.FromBits(out.DataType, unsafecast.Pack(res.Value), !res.Null))
}

// writeString is the output handler for string results, which only ever go to
// the terminal output.
func writeString(sink ResultSink, or int64, res nullable[string]) {
	if res.Null {
		sink.SetValue(or, types.NewNull(types.String))
		return
	}
	sink.SetValue(or, types.NewString(res.Value))
}

func evalBinaryInteger[T compute.Integer](e *Evaluator, op types.BinOpKind, lref, rref, out DataReference, sink ResultSink, lr, rr, or int64) {
	lhs := resolve[T](e, lref, lr, rr)
	rhs := resolve[T](e, rref, lr, rr)

	switch op {
	case types.BinOpKindAdd:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Add[T]))
	case types.BinOpKindSub:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Sub[T]))
	case types.BinOpKindMul:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Mul[T]))
	case types.BinOpKindDiv:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Div[T]))
	case types.BinOpKindMod:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Mod[T]))
	case types.BinOpKindPow:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Pow[T]))
	case types.BinOpKindBitAnd:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.BitAnd[T]))
	case types.BinOpKindBitOr:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.BitOr[T]))
	case types.BinOpKindBitXor:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.BitXor[T]))
	case types.BinOpKindEq:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Eq[T]))
	case types.BinOpKindNeq:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Neq[T]))
	case types.BinOpKindLt:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Lt[T]))
	case types.BinOpKindGt:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Gt[T]))
	case types.BinOpKindLte:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Lte[T]))
	case types.BinOpKindGte:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Gte[T]))
	case types.BinOpKindNullEquals:
		writeFixed(e, sink, or, out, nullEquals(e, lhs, rhs))
	default:
		invalidBinary(op, lref.DataType)
	}
}

func evalBinaryFloat[T compute.Float](e *Evaluator, op types.BinOpKind, lref, rref, out DataReference, sink ResultSink, lr, rr, or int64) {
	lhs := resolve[T](e, lref, lr, rr)
	rhs := resolve[T](e, rref, lr, rr)

	switch op {
	case types.BinOpKindAdd:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Add[T]))
	case types.BinOpKindSub:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Sub[T]))
	case types.BinOpKindMul:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Mul[T]))
	case types.BinOpKindDiv:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.DivFloat[T]))
	case types.BinOpKindMod:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.ModFloat[T]))
	case types.BinOpKindPow:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.PowFloat[T]))
	case types.BinOpKindEq:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Eq[T]))
	case types.BinOpKindNeq:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Neq[T]))
	case types.BinOpKindLt:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Lt[T]))
	case types.BinOpKindGt:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Gt[T]))
	case types.BinOpKindLte:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Lte[T]))
	case types.BinOpKindGte:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Gte[T]))
	case types.BinOpKindNullEquals:
		writeFixed(e, sink, or, out, nullEquals(e, lhs, rhs))
	default:
		invalidBinary(op, lref.DataType)
	}
}

func (e *Evaluator) evalBinaryBool(op types.BinOpKind, lref, rref, out DataReference, sink ResultSink, lr, rr, or int64) {
	lhs := resolve[bool](e, lref, lr, rr)
	rhs := resolve[bool](e, rref, lr, rr)

	switch op {
	case types.BinOpKindAnd:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.And))
	case types.BinOpKindOr:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Or))
	case types.BinOpKindEq:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.EqBool))
	case types.BinOpKindNeq:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.NeqBool))
	case types.BinOpKindNullEquals:
		writeFixed(e, sink, or, out, nullEquals(e, lhs, rhs))
	default:
		invalidBinary(op, lref.DataType)
	}
}

// evalBinaryOrdered handles the int64-backed ordered types (timestamp,
// duration, decimal). Arithmetic is only admitted where arith is set.
func (e *Evaluator) evalBinaryOrdered(op types.BinOpKind, arith bool, lref, rref, out DataReference, sink ResultSink, lr, rr, or int64) {
	lhs := resolve[int64](e, lref, lr, rr)
	rhs := resolve[int64](e, rref, lr, rr)

	switch op {
	case types.BinOpKindAdd:
		if arith {
			writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Add[int64]))
			return
		}
	case types.BinOpKindSub:
		if arith {
			writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Sub[int64]))
			return
		}
	case types.BinOpKindEq:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Eq[int64]))
		return
	case types.BinOpKindNeq:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Neq[int64]))
		return
	case types.BinOpKindLt:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Lt[int64]))
		return
	case types.BinOpKindGt:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Gt[int64]))
		return
	case types.BinOpKindLte:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Lte[int64]))
		return
	case types.BinOpKindGte:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Gte[int64]))
		return
	case types.BinOpKindNullEquals:
		writeFixed(e, sink, or, out, nullEquals(e, lhs, rhs))
		return
	}
	invalidBinary(op, lref.DataType)
}

func (e *Evaluator) evalBinaryString(op types.BinOpKind, lref, rref, out DataReference, sink ResultSink, lr, rr, or int64) {
	lhs := resolveString(e, lref, lr, rr)
	rhs := resolveString(e, rref, lr, rr)

	switch op {
	case types.BinOpKindEq:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Eq[string]))
	case types.BinOpKindNeq:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Neq[string]))
	case types.BinOpKindLt:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Lt[string]))
	case types.BinOpKindGt:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Gt[string]))
	case types.BinOpKindLte:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Lte[string]))
	case types.BinOpKindGte:
		writeFixed(e, sink, or, out, combine2(e, lhs, rhs, compute.Gte[string]))
	case types.BinOpKindNullEquals:
		writeFixed(e, sink, or, out, nullEquals(e, lhs, rhs))
	default:
		invalidBinary(op, lref.DataType)
	}
}

func evalUnarySigned[T compute.Signed](e *Evaluator, op types.UnaryOpKind, in, out DataReference, sink ResultSink, lr, rr, or int64) {
	v := resolve[T](e, in, lr, rr)

	switch op {
	case types.UnaryOpKindIdentity:
		writeFixed(e, sink, or, out, v)
	case types.UnaryOpKindAbs:
		writeFixed(e, sink, or, out, combine1(e, v, compute.AbsSigned[T]))
	case types.UnaryOpKindBitNot:
		writeFixed(e, sink, or, out, combine1(e, v, compute.BitNot[T]))
	case types.UnaryOpKindCastToInt64:
		writeFixed(e, sink, or, out, combine1(e, v, compute.ToInt64[T]))
	case types.UnaryOpKindCastToUint64:
		writeFixed(e, sink, or, out, combine1(e, v, compute.ToUint64[T]))
	case types.UnaryOpKindCastToFloat64:
		writeFixed(e, sink, or, out, combine1(e, v, compute.ToFloat64[T]))
	default:
		invalidUnary(op, in.DataType)
	}
}

func evalUnaryUnsigned[T compute.Unsigned](e *Evaluator, op types.UnaryOpKind, in, out DataReference, sink ResultSink, lr, rr, or int64) {
	v := resolve[T](e, in, lr, rr)

	switch op {
	case types.UnaryOpKindIdentity:
		writeFixed(e, sink, or, out, v)
	case types.UnaryOpKindBitNot:
		writeFixed(e, sink, or, out, combine1(e, v, compute.BitNot[T]))
	case types.UnaryOpKindCastToInt64:
		writeFixed(e, sink, or, out, combine1(e, v, compute.ToInt64[T]))
	case types.UnaryOpKindCastToUint64:
		writeFixed(e, sink, or, out, combine1(e, v, compute.ToUint64[T]))
	case types.UnaryOpKindCastToFloat64:
		writeFixed(e, sink, or, out, combine1(e, v, compute.ToFloat64[T]))
	default:
		invalidUnary(op, in.DataType)
	}
}

func evalUnaryFloat[T compute.Float](e *Evaluator, op types.UnaryOpKind, in, out DataReference, sink ResultSink, lr, rr, or int64) {
	v := resolve[T](e, in, lr, rr)

	switch op {
	case types.UnaryOpKindIdentity:
		writeFixed(e, sink, or, out, v)
	case types.UnaryOpKindSin:
		writeFixed(e, sink, or, out, combine1(e, v, compute.Sin[T]))
	case types.UnaryOpKindCos:
		writeFixed(e, sink, or, out, combine1(e, v, compute.Cos[T]))
	case types.UnaryOpKindTan:
		writeFixed(e, sink, or, out, combine1(e, v, compute.Tan[T]))
	case types.UnaryOpKindArcSin:
		writeFixed(e, sink, or, out, combine1(e, v, compute.Asin[T]))
	case types.UnaryOpKindArcCos:
		writeFixed(e, sink, or, out, combine1(e, v, compute.Acos[T]))
	case types.UnaryOpKindArcTan:
		writeFixed(e, sink, or, out, combine1(e, v, compute.Atan[T]))
	case types.UnaryOpKindExp:
		writeFixed(e, sink, or, out, combine1(e, v, compute.Exp[T]))
	case types.UnaryOpKindLog:
		writeFixed(e, sink, or, out, combine1(e, v, compute.Log[T]))
	case types.UnaryOpKindSqrt:
		writeFixed(e, sink, or, out, combine1(e, v, compute.Sqrt[T]))
	case types.UnaryOpKindCeil:
		writeFixed(e, sink, or, out, combine1(e, v, compute.Ceil[T]))
	case types.UnaryOpKindFloor:
		writeFixed(e, sink, or, out, combine1(e, v, compute.Floor[T]))
	case types.UnaryOpKindAbs:
		writeFixed(e, sink, or, out, combine1(e, v, compute.AbsFloat[T]))
	case types.UnaryOpKindCastToInt64:
		writeFixed(e, sink, or, out, combine1(e, v, compute.ToInt64[T]))
	case types.UnaryOpKindCastToUint64:
		writeFixed(e, sink, or, out, combine1(e, v, compute.ToUint64[T]))
	case types.UnaryOpKindCastToFloat64:
		writeFixed(e, sink, or, out, combine1(e, v, compute.ToFloat64[T]))
	default:
		invalidUnary(op, in.DataType)
	}
}

func (e *Evaluator) evalUnaryBool(op types.UnaryOpKind, in, out DataReference, sink ResultSink, lr, rr, or int64) {
	v := resolve[bool](e, in, lr, rr)

	switch op {
	case types.UnaryOpKindIdentity:
		writeFixed(e, sink, or, out, v)
	case types.UnaryOpKindNot:
		writeFixed(e, sink, or, out, combine1(e, v, compute.Not))
	default:
		invalidUnary(op, in.DataType)
	}
}

// evalUnaryOrdered handles the int64-backed ordered types. Abs is only
// admitted where abs is set (duration and decimal; a timestamp has no
// magnitude).
func (e *Evaluator) evalUnaryOrdered(op types.UnaryOpKind, abs bool, in, out DataReference, sink ResultSink, lr, rr, or int64) {
	v := resolve[int64](e, in, lr, rr)

	switch op {
	case types.UnaryOpKindIdentity:
		writeFixed(e, sink, or, out, v)
		return
	case types.UnaryOpKindAbs:
		if abs {
			writeFixed(e, sink, or, out, combine1(e, v, compute.AbsSigned[int64]))
			return
		}
	}
	invalidUnary(op, in.DataType)
}

func (e *Evaluator) evalUnaryString(op types.UnaryOpKind, in, out DataReference, sink ResultSink, lr, rr, or int64) {
	switch op {
	case types.UnaryOpKindIdentity:
		writeString(sink, or, resolveString(e, in, lr, rr))
	default:
		invalidUnary(op, in.DataType)
	}
}

func invalidUnary(op types.UnaryOpKind, t types.DataType) {
	panic(fmt.Sprintf("ast: operator %s is not defined for operand type %s", op, t))
}

func invalidBinary(op types.BinOpKind, t types.DataType) {
	panic(fmt.Sprintf("ast: operator %s is not defined for operand type %s", op, t))
}
