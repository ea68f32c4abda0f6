package columnar

import (
	"fmt"

	"github.com/TravisHester/cudf/pkg/types"
)

// A Table is an ordered set of columns with a uniform row count.
type Table struct {
	nrows int64
	cols  []*Column
}

// NewTable assembles a table from columns. All columns must have the same
// length. A table with zero columns has zero rows.
func NewTable(cols ...*Column) (*Table, error) {
	var nrows int64
	for i, col := range cols {
		if i == 0 {
			nrows = col.Len()
			continue
		}
		if col.Len() != nrows {
			return nil, fmt.Errorf("columnar: column %d has %d rows, expected %d", i, col.Len(), nrows)
		}
	}
	return &Table{nrows: nrows, cols: cols}, nil
}

// NumRows returns the number of rows in the table.
func (t *Table) NumRows() int64 { return t.nrows }

// NumCols returns the number of columns in the table.
func (t *Table) NumCols() int { return len(t.cols) }

// Column returns the column at ordinal i.
func (t *Table) Column(i int) *Column { return t.cols[i] }

// Schema returns the data types of the table's columns in ordinal order.
func (t *Table) Schema() []types.DataType {
	schema := make([]types.DataType, len(t.cols))
	for i, col := range t.cols {
		schema[i] = col.DataType()
	}
	return schema
}

// MayHaveNulls reports whether any column in the table carries nulls.
func (t *Table) MayHaveNulls() bool {
	for _, col := range t.cols {
		if col.MayHaveNulls() {
			return true
		}
	}
	return false
}
