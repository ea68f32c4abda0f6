package ast

import (
	"fmt"

	"github.com/TravisHester/cudf/pkg/columnar"
	"github.com/TravisHester/cudf/pkg/types"
)

// nullable pairs an element value with a validity flag. When the evaluator
// was constructed over all-valid inputs, the flag is never set.
type nullable[T any] struct {
	Value T
	Null  bool
}

// An Evaluator executes a plan's operator program one row at a time. It holds
// references only: tables, plan, and scratch must outlive the evaluator. An
// Evaluator is bound to a single worker through its scratch storage; workers
// evaluating in parallel each construct their own.
type Evaluator struct {
	left  *columnar.Table
	right *columnar.Table

	plan    *Plan
	scratch *IntermediateStorage
	nullEq  types.NullEquality

	hasNulls bool
}

// NewEvaluator returns an evaluator of plan over a left and right table. A
// nil right table makes the left table serve both sides. Scratch must hold at
// least plan.NumIntermediates() slots.
func NewEvaluator(left, right *columnar.Table, plan *Plan, scratch *IntermediateStorage, nullEq types.NullEquality) (*Evaluator, error) {
	if right == nil {
		right = left
	}
	if err := checkSchema(left, plan.spec.LeftSchema, "left"); err != nil {
		return nil, err
	}
	rightSchema := plan.spec.RightSchema
	if rightSchema == nil {
		rightSchema = plan.spec.LeftSchema
	}
	if err := checkSchema(right, rightSchema, "right"); err != nil {
		return nil, err
	}
	if scratch == nil && plan.NumIntermediates() > 0 {
		return nil, fmt.Errorf("%w: plan requires %d intermediate slots, no scratch provided", ErrIntermediate, plan.NumIntermediates())
	}
	if scratch != nil && scratch.Slots() < plan.NumIntermediates() {
		return nil, fmt.Errorf("%w: plan requires %d intermediate slots, scratch holds %d",
			ErrIntermediate, plan.NumIntermediates(), scratch.Slots())
	}

	return &Evaluator{
		left:     left,
		right:    right,
		plan:     plan,
		scratch:  scratch,
		nullEq:   nullEq,
		hasNulls: left.MayHaveNulls() || right.MayHaveNulls() || plan.hasNullLiteral,
	}, nil
}

// NewSingleTableEvaluator returns an evaluator where one table serves as both
// the left and right input.
func NewSingleTableEvaluator(table *columnar.Table, plan *Plan, scratch *IntermediateStorage, nullEq types.NullEquality) (*Evaluator, error) {
	return NewEvaluator(table, nil, plan, scratch, nullEq)
}

func checkSchema(table *columnar.Table, schema []types.DataType, side string) error {
	if table == nil {
		return fmt.Errorf("%w: nil %s table", ErrIndex, side)
	}
	if table.NumCols() < len(schema) {
		return fmt.Errorf("%w: %s table has %d columns, plan expects %d", ErrIndex, side, table.NumCols(), len(schema))
	}
	for i, dtype := range schema {
		if got := table.Column(i).DataType(); got != dtype {
			return fmt.Errorf("%w: %s table column %d is %s, plan expects %s", ErrType, side, i, got, dtype)
		}
	}
	return nil
}

// HasNulls reports whether any input column or literal of this evaluation can
// be null. When false, evaluation never inspects validity.
func (e *Evaluator) HasNulls() bool { return e.hasNulls }

// Evaluate executes the plan for one row, using row as the left, right, and
// output row index alike.
func (e *Evaluator) Evaluate(sink ResultSink, row int64) {
	e.EvaluateRows(sink, row, row, row)
}

// EvaluateRows executes the plan for the row triple (lr, rr, or): operands
// drawn from the left table read row lr, operands from the right table read
// row rr, and the terminal result lands at output row or. Used for joins and
// two-table transforms where input and output alignments differ.
func (e *Evaluator) EvaluateRows(sink ResultSink, lr, rr, or int64) {
	cursor := 0
	for _, op := range e.plan.spec.Operators {
		arity := op.Arity()
		if arity == 1 {
			in := e.plan.spec.References[e.plan.spec.Operands[cursor]]
			out := e.plan.spec.References[e.plan.spec.Operands[cursor+1]]
			e.evalUnary(op.unary, in, out, sink, lr, rr, or)
		} else {
			lref := e.plan.spec.References[e.plan.spec.Operands[cursor]]
			rref := e.plan.spec.References[e.plan.spec.Operands[cursor+1]]
			out := e.plan.spec.References[e.plan.spec.Operands[cursor+2]]
			e.evalBinary(op.binary, lref, rref, out, sink, lr, rr, or)
		}
		cursor += arity + 1
	}
}
