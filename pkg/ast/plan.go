package ast

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/TravisHester/cudf/pkg/types"
)

// An Operator is one entry of a plan's operator program: either a unary or a
// binary operation with fixed arity.
type Operator struct {
	unary  types.UnaryOpKind
	binary types.BinOpKind
}

// UnaryOperator returns a program entry for a unary operation.
func UnaryOperator(k types.UnaryOpKind) Operator {
	return Operator{unary: k}
}

// BinaryOperator returns a program entry for a binary operation.
func BinaryOperator(k types.BinOpKind) Operator {
	return Operator{binary: k}
}

// Arity returns the number of operands the operator consumes.
func (o Operator) Arity() int {
	if o.unary != types.UnaryOpKindInvalid {
		return 1
	}
	return 2
}

// String returns a human-readable representation of the operator.
func (o Operator) String() string {
	if o.Arity() == 1 {
		return o.unary.String()
	}
	return o.binary.String()
}

// A PlanSpec describes a flattened expression program to be validated into a
// [Plan].
//
// Operands is the operand-index stream: for each operator in program order it
// carries arity input entries followed by one output entry, each indexing
// into References. LeftSchema (and RightSchema for two-table plans) carry the
// column data types the plan's column references resolve against; a nil
// RightSchema reuses LeftSchema, matching single-table evaluation where one
// table serves as both sides.
type PlanSpec struct {
	Literals   []types.Value
	References []DataReference
	Operators  []Operator
	Operands   []int

	LeftSchema  []types.DataType
	RightSchema []types.DataType
}

// A Plan is a validated, immutable expression program. All structural and
// type invariants are established by [NewPlan]; the evaluator performs no
// dynamic checks beyond programmer-error assertions.
type Plan struct {
	spec PlanSpec

	numIntermediates int
	outputType       types.DataType
	hasNullLiteral   bool
}

// NewPlan validates spec and returns an executable plan. Validation enforces
// every structural invariant the evaluator relies on: operand indices in
// range, well-formed references, intermediates written before read and at
// most 8 bytes wide, a single terminal output written by the last operator,
// and a defined (operator, operand type) combination for every program entry.
func NewPlan(spec PlanSpec) (*Plan, error) {
	if len(spec.Operators) == 0 {
		return nil, fmt.Errorf("%w: plan has no operators", ErrArity)
	}

	rightSchema := spec.RightSchema
	if rightSchema == nil {
		rightSchema = spec.LeftSchema
	}

	p := &Plan{spec: spec, outputType: types.Invalid}
	for _, lit := range spec.Literals {
		if !lit.IsValid() {
			p.hasNullLiteral = true
		}
	}

	written := make(map[int]types.DataType)
	cursor := 0

	for k, op := range spec.Operators {
		arity := op.Arity()
		if cursor+arity+1 > len(spec.Operands) {
			return nil, fmt.Errorf("%w: operand stream exhausted at operator %d (%s)", ErrArity, k, op)
		}

		inputs := make([]DataReference, arity)
		for i := 0; i < arity; i++ {
			ref, err := p.refAt(spec.Operands[cursor+i])
			if err != nil {
				return nil, err
			}
			if err := p.checkInput(ref, spec.LeftSchema, rightSchema, written); err != nil {
				return nil, fmt.Errorf("operator %d (%s): %w", k, op, err)
			}
			inputs[i] = ref
		}

		var (
			result types.DataType
			ok     bool
		)
		if arity == 1 {
			result, ok = unaryResult(op.unary, inputs[0].DataType)
		} else {
			if inputs[0].DataType != inputs[1].DataType {
				return nil, fmt.Errorf("%w: operator %d (%s) has mixed operand types %s and %s",
					ErrType, k, op, inputs[0].DataType, inputs[1].DataType)
			}
			result, ok = binaryResult(op.binary, inputs[0].DataType)
		}
		if !ok {
			return nil, fmt.Errorf("%w: operator %s is not defined for operand type %s", ErrType, op, inputs[0].DataType)
		}

		out, err := p.refAt(spec.Operands[cursor+arity])
		if err != nil {
			return nil, err
		}
		if err := p.checkOutput(out, result, k == len(spec.Operators)-1, written); err != nil {
			return nil, fmt.Errorf("operator %d (%s): %w", k, op, err)
		}

		cursor += arity + 1
	}

	if cursor != len(spec.Operands) {
		return nil, fmt.Errorf("%w: operand stream has %d trailing entries", ErrArity, len(spec.Operands)-cursor)
	}
	if p.outputType == types.Invalid {
		return nil, fmt.Errorf("%w: plan never writes the terminal output", ErrOutput)
	}

	return p, nil
}

func (p *Plan) refAt(idx int) (DataReference, error) {
	if idx < 0 || idx >= len(p.spec.References) {
		return DataReference{}, fmt.Errorf("%w: operand index %d outside reference table of length %d",
			ErrIndex, idx, len(p.spec.References))
	}
	return p.spec.References[idx], nil
}

func (p *Plan) checkInput(ref DataReference, left, right []types.DataType, written map[int]types.DataType) error {
	switch ref.Kind {
	case ReferenceKindColumn:
		var schema []types.DataType
		switch ref.Source {
		case TableSourceLeft:
			schema = left
		case TableSourceRight:
			schema = right
		case TableSourceOutput:
			return fmt.Errorf("%w: OUTPUT table source on an input reference", ErrOutput)
		default:
			return fmt.Errorf("%w: invalid table source", ErrOutput)
		}
		if ref.Index < 0 || ref.Index >= len(schema) {
			return fmt.Errorf("%w: column ordinal %d outside schema of %d columns", ErrIndex, ref.Index, len(schema))
		}
		if schema[ref.Index] != ref.DataType {
			return fmt.Errorf("%w: column %d is %s, reference declares %s", ErrType, ref.Index, schema[ref.Index], ref.DataType)
		}

	case ReferenceKindLiteral:
		if ref.Index < 0 || ref.Index >= len(p.spec.Literals) {
			return fmt.Errorf("%w: literal %d outside literal array of length %d", ErrIndex, ref.Index, len(p.spec.Literals))
		}
		if p.spec.Literals[ref.Index].Type() != ref.DataType {
			return fmt.Errorf("%w: literal %d is %s, reference declares %s",
				ErrType, ref.Index, p.spec.Literals[ref.Index].Type(), ref.DataType)
		}

	case ReferenceKindIntermediate:
		dtype, ok := written[ref.Index]
		if !ok {
			return fmt.Errorf("%w: slot %d read before written", ErrIntermediate, ref.Index)
		}
		if dtype != ref.DataType {
			return fmt.Errorf("%w: slot %d holds %s, reference declares %s", ErrType, ref.Index, dtype, ref.DataType)
		}

	default:
		return fmt.Errorf("%w: invalid reference kind", ErrIndex)
	}
	return nil
}

func (p *Plan) checkOutput(ref DataReference, result types.DataType, last bool, written map[int]types.DataType) error {
	if ref.DataType != result {
		return fmt.Errorf("%w: output reference declares %s, operator produces %s", ErrType, ref.DataType, result)
	}

	switch ref.Kind {
	case ReferenceKindIntermediate:
		if size := ref.DataType.Size(); size < 0 || size > 8 {
			return fmt.Errorf("%w: type %s does not fit an 8-byte slot", ErrIntermediate, ref.DataType)
		}
		if ref.Index < 0 {
			return fmt.Errorf("%w: negative slot %d", ErrIntermediate, ref.Index)
		}
		written[ref.Index] = ref.DataType
		if ref.Index+1 > p.numIntermediates {
			p.numIntermediates = ref.Index + 1
		}

	case ReferenceKindColumn:
		if ref.Source != TableSourceOutput {
			return fmt.Errorf("%w: result written to input table %s", ErrOutput, ref.Source)
		}
		if p.outputType != types.Invalid {
			return fmt.Errorf("%w: terminal output written more than once", ErrOutput)
		}
		if !last {
			return fmt.Errorf("%w: terminal output written before the last operator", ErrOutput)
		}
		p.outputType = ref.DataType

	default:
		return fmt.Errorf("%w: result written to a %s reference", ErrOutput, ref.Kind)
	}
	return nil
}

// NumIntermediates returns the number of intermediate slots the plan
// requires. Callers size per-worker storage as NumIntermediates 8-byte slots.
func (p *Plan) NumIntermediates() int { return p.numIntermediates }

// OutputType returns the element type of the plan's terminal result.
func (p *Plan) OutputType() types.DataType { return p.outputType }

// NumOperators returns the length of the operator program.
func (p *Plan) NumOperators() int { return len(p.spec.Operators) }

// Fingerprint returns a stable hash of the plan's program, references, and
// literals, usable as an identity in logs and metrics.
func (p *Plan) Fingerprint() uint64 {
	h := xxhash.New()
	var buf [8]byte

	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}

	for _, op := range p.spec.Operators {
		put(uint64(op.unary)<<32 | uint64(op.binary))
	}
	for _, idx := range p.spec.Operands {
		put(uint64(idx))
	}
	for _, ref := range p.spec.References {
		put(uint64(ref.Kind)<<48 | uint64(ref.Source)<<40 | uint64(ref.DataType))
		put(uint64(ref.Index))
	}
	for _, lit := range p.spec.Literals {
		put(uint64(lit.Type()))
		if lit.IsValid() {
			if lit.Type() == types.String {
				_, _ = h.WriteString(lit.Str())
			} else {
				put(lit.Bits())
			}
		}
	}
	return h.Sum64()
}
