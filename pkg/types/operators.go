package types

import "fmt"

// UnaryOpKind denotes the kind of unary operation to perform.
type UnaryOpKind int

// Recognized values of [UnaryOpKind].
const (
	// UnaryOpKindInvalid indicates an invalid unary operation.
	UnaryOpKindInvalid UnaryOpKind = iota

	UnaryOpKindIdentity // Pass-through of the operand.
	UnaryOpKindSin      // Trigonometric sine.
	UnaryOpKindCos      // Trigonometric cosine.
	UnaryOpKindTan      // Trigonometric tangent.
	UnaryOpKindArcSin   // Inverse sine.
	UnaryOpKindArcCos   // Inverse cosine.
	UnaryOpKindArcTan   // Inverse tangent.
	UnaryOpKindExp      // Natural exponential.
	UnaryOpKindLog      // Natural logarithm.
	UnaryOpKindSqrt     // Square root.
	UnaryOpKindAbs      // Absolute value.
	UnaryOpKindCeil     // Round towards positive infinity.
	UnaryOpKindFloor    // Round towards negative infinity.
	UnaryOpKindNot      // Logical NOT operation (!).
	UnaryOpKindBitNot   // Bitwise complement (^).

	UnaryOpKindCastToInt64   // Numeric cast to int64.
	UnaryOpKindCastToUint64  // Numeric cast to uint64.
	UnaryOpKindCastToFloat64 // Numeric cast to float64.
)

var unaryOpKindStrings = map[UnaryOpKind]string{
	UnaryOpKindInvalid: "invalid",

	UnaryOpKindIdentity: "IDENTITY",
	UnaryOpKindSin:      "SIN",
	UnaryOpKindCos:      "COS",
	UnaryOpKindTan:      "TAN",
	UnaryOpKindArcSin:   "ARCSIN",
	UnaryOpKindArcCos:   "ARCCOS",
	UnaryOpKindArcTan:   "ARCTAN",
	UnaryOpKindExp:      "EXP",
	UnaryOpKindLog:      "LOG",
	UnaryOpKindSqrt:     "SQRT",
	UnaryOpKindAbs:      "ABS",
	UnaryOpKindCeil:     "CEIL",
	UnaryOpKindFloor:    "FLOOR",
	UnaryOpKindNot:      "NOT",
	UnaryOpKindBitNot:   "BIT_NOT",

	UnaryOpKindCastToInt64:   "CAST_TO_INT64",
	UnaryOpKindCastToUint64:  "CAST_TO_UINT64",
	UnaryOpKindCastToFloat64: "CAST_TO_FLOAT64",
}

// String returns the string representation of the UnaryOpKind.
func (k UnaryOpKind) String() string {
	if s, ok := unaryOpKindStrings[k]; ok {
		return s
	}
	return fmt.Sprintf("UnaryOpKind(%d)", k)
}

// BinOpKind denotes the kind of binary operation to perform.
type BinOpKind int

// Recognized values of [BinOpKind].
const (
	// BinOpKindInvalid indicates an invalid binary operation.
	BinOpKindInvalid BinOpKind = iota

	BinOpKindAdd // Addition operation (+).
	BinOpKindSub // Subtraction operation (-).
	BinOpKindMul // Multiplication operation (*).
	BinOpKindDiv // Division operation (/).
	BinOpKindMod // Modulo operation (%).
	BinOpKindPow // Exponentiation operation.

	BinOpKindEq         // Equality comparison (==).
	BinOpKindNeq        // Inequality comparison (!=).
	BinOpKindLt         // Less than comparison (<).
	BinOpKindGt         // Greater than comparison (>).
	BinOpKindLte        // Less than or equal comparison (<=).
	BinOpKindGte        // Greater than or equal comparison (>=).
	BinOpKindNullEquals // Equality comparison honoring the null-equality policy.

	BinOpKindAnd // Logical AND operation (&&).
	BinOpKindOr  // Logical OR operation (||).

	BinOpKindBitAnd // Bitwise AND operation (&).
	BinOpKindBitOr  // Bitwise OR operation (|).
	BinOpKindBitXor // Bitwise XOR operation (^).
)

var binOpKindStrings = map[BinOpKind]string{
	BinOpKindInvalid: "invalid",

	BinOpKindAdd: "ADD",
	BinOpKindSub: "SUB",
	BinOpKindMul: "MUL",
	BinOpKindDiv: "DIV",
	BinOpKindMod: "MOD",
	BinOpKindPow: "POW",

	BinOpKindEq:         "EQUAL",
	BinOpKindNeq:        "NOT_EQUAL",
	BinOpKindLt:         "LESS",
	BinOpKindGt:         "GREATER",
	BinOpKindLte:        "LESS_EQUAL",
	BinOpKindGte:        "GREATER_EQUAL",
	BinOpKindNullEquals: "NULL_EQUALS",

	BinOpKindAnd: "LOGICAL_AND",
	BinOpKindOr:  "LOGICAL_OR",

	BinOpKindBitAnd: "BITWISE_AND",
	BinOpKindBitOr:  "BITWISE_OR",
	BinOpKindBitXor: "BITWISE_XOR",
}

// String returns a human-readable representation of the binary operation kind.
func (k BinOpKind) String() string {
	if s, ok := binOpKindStrings[k]; ok {
		return s
	}
	return fmt.Sprintf("BinOpKind(%d)", k)
}

// Comparison reports whether the operator produces a boolean from two ordered
// operands.
func (k BinOpKind) Comparison() bool {
	switch k {
	case BinOpKindEq, BinOpKindNeq, BinOpKindLt, BinOpKindGt, BinOpKindLte, BinOpKindGte, BinOpKindNullEquals:
		return true
	}
	return false
}
