package ast

import (
	"fmt"

	"github.com/TravisHester/cudf/pkg/columnar"
	"github.com/TravisHester/cudf/pkg/internal/unsafecast"
)

// resolve produces the typed, possibly-null value a data reference points at
// for the row pair (lr, rr). T must be the Go representation of
// ref.DataType; the dispatcher guarantees this for well-formed plans.
func resolve[T columnar.FixedElement](e *Evaluator, ref DataReference, lr, rr int64) nullable[T] {
	switch ref.Kind {
	case ReferenceKindColumn:
		var (
			tbl *columnar.Table
			row int64
		)
		switch ref.Source {
		case TableSourceLeft:
			tbl, row = e.left, lr
		case TableSourceRight:
			tbl, row = e.right, rr
		default:
			panic(fmt.Sprintf("ast: %s table source on an input reference", ref.Source))
		}
		col := tbl.Column(ref.Index)
		if e.hasNulls && !col.IsValid(row) {
			return nullable[T]{Null: true}
		}
		return nullable[T]{Value: columnar.Element[T](col, row)}

	case ReferenceKindLiteral:
		lit := e.plan.spec.Literals[ref.Index]
		if e.hasNulls && !lit.IsValid() {
			return nullable[T]{Null: true}
		}
		return nullable[T]{Value: unsafecast.Unpack[T](lit.Bits())}

	case ReferenceKindIntermediate:
		// The producing operator stored a layout-compatible bit pattern; a
		// byte-wise copy recovers the value.
		bits, null := e.scratch.Load(ref.Index)
		if e.hasNulls && null {
			return nullable[T]{Null: true}
		}
		return nullable[T]{Value: unsafecast.Unpack[T](bits)}
	}

	panic(fmt.Sprintf("ast: invalid reference kind %d", ref.Kind))
}

// resolveString is the variable-width analogue of resolve. Strings never live
// in intermediate slots; plan validation rejects them there.
func resolveString(e *Evaluator, ref DataReference, lr, rr int64) nullable[string] {
	switch ref.Kind {
	case ReferenceKindColumn:
		var (
			tbl *columnar.Table
			row int64
		)
		switch ref.Source {
		case TableSourceLeft:
			tbl, row = e.left, lr
		case TableSourceRight:
			tbl, row = e.right, rr
		default:
			panic(fmt.Sprintf("ast: %s table source on an input reference", ref.Source))
		}
		col := tbl.Column(ref.Index)
		if e.hasNulls && !col.IsValid(row) {
			return nullable[string]{Null: true}
		}
		return nullable[string]{Value: columnar.StringElement(col, row)}

	case ReferenceKindLiteral:
		lit := e.plan.spec.Literals[ref.Index]
		if e.hasNulls && !lit.IsValid() {
			return nullable[string]{Null: true}
		}
		return nullable[string]{Value: lit.Str()}
	}

	panic(fmt.Sprintf("ast: string value resolved from a %s reference", ref.Kind))
}
