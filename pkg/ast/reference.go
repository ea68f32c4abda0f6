// Package ast implements the expression evaluator of the dataframe engine.
//
// A compiled [Plan] is a flattened postfix operator program together with an
// operand-index stream. An [Evaluator] executes the program once per output
// row against one or two columnar tables, resolving operands from columns,
// plan literals, or per-worker intermediate slots, and writes the final
// result into a [ResultSink]. Evaluation is allocation-free, recursion-free,
// and never signals recoverable errors; malformed plans are rejected at
// construction and anything that slips past is a programmer error that
// panics.
package ast

import (
	"fmt"

	"github.com/TravisHester/cudf/pkg/types"
)

// ReferenceKind identifies the source of an operand.
type ReferenceKind uint8

// Recognized values of [ReferenceKind].
const (
	// ReferenceKindInvalid indicates an invalid reference.
	ReferenceKindInvalid ReferenceKind = iota

	ReferenceKindColumn       // Element of a table column.
	ReferenceKindLiteral      // Entry of the plan's literal array.
	ReferenceKindIntermediate // Per-worker intermediate slot.
)

// String returns the string representation of the ReferenceKind.
func (k ReferenceKind) String() string {
	switch k {
	case ReferenceKindColumn:
		return "COLUMN"
	case ReferenceKindLiteral:
		return "LITERAL"
	case ReferenceKindIntermediate:
		return "INTERMEDIATE"
	default:
		return "invalid"
	}
}

// TableSource names the table an operand or result belongs to.
type TableSource uint8

// Recognized values of [TableSource].
const (
	// TableSourceInvalid indicates an invalid table source.
	TableSourceInvalid TableSource = iota

	TableSourceLeft   // The left input table.
	TableSourceRight  // The right input table.
	TableSourceOutput // The output; valid only on the terminal result reference.
)

// String returns the string representation of the TableSource.
func (s TableSource) String() string {
	switch s {
	case TableSourceLeft:
		return "LEFT"
	case TableSourceRight:
		return "RIGHT"
	case TableSourceOutput:
		return "OUTPUT"
	default:
		return "invalid"
	}
}

// A DataReference is an immutable descriptor identifying the source of one
// operand or result: a table column, a plan literal, or an intermediate slot.
type DataReference struct {
	Kind     ReferenceKind
	DataType types.DataType
	Index    int
	Source   TableSource
}

// ColumnReference returns a reference to column ordinal index of the table
// named by source.
func ColumnReference(dtype types.DataType, index int, source TableSource) DataReference {
	return DataReference{Kind: ReferenceKindColumn, DataType: dtype, Index: index, Source: source}
}

// LiteralReference returns a reference to entry index of the plan's literal
// array.
func LiteralReference(dtype types.DataType, index int) DataReference {
	return DataReference{Kind: ReferenceKindLiteral, DataType: dtype, Index: index}
}

// IntermediateReference returns a reference to an intermediate slot.
func IntermediateReference(dtype types.DataType, slot int) DataReference {
	return DataReference{Kind: ReferenceKindIntermediate, DataType: dtype, Index: slot}
}

// OutputReference returns the terminal result reference written by the last
// operator of a plan.
func OutputReference(dtype types.DataType) DataReference {
	return DataReference{Kind: ReferenceKindColumn, DataType: dtype, Source: TableSourceOutput}
}

// String returns a human-readable representation of the reference.
func (r DataReference) String() string {
	switch r.Kind {
	case ReferenceKindColumn:
		return fmt.Sprintf("%s.col[%d]:%s", r.Source, r.Index, r.DataType)
	case ReferenceKindLiteral:
		return fmt.Sprintf("lit[%d]:%s", r.Index, r.DataType)
	case ReferenceKindIntermediate:
		return fmt.Sprintf("tmp[%d]:%s", r.Index, r.DataType)
	default:
		return "invalid"
	}
}
