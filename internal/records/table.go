package records

import (
	"fmt"
	"slices"
)

// Table is a row/column record store. Implementations must allow concurrent Set
// calls on distinct rows.
type Table interface {
	// Columns returns the column names in schema order.
	Columns() []string
	// HasColumn reports whether column is part of the schema.
	HasColumn(column string) bool
	// Len returns the number of rows.
	Len() int
	// Get returns the cell at (row, column). ok is false when the column is unknown.
	Get(row int, column string) (Value, bool)
	// Set replaces the cell at (row, column). Returns false when the column is unknown.
	Set(row int, column string, v Value) bool
	// Clone returns a deep copy.
	Clone() Table
}

// MemoryTable is an in-memory Table.
type MemoryTable struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

// NewMemoryTable creates an empty table with the given columns. Duplicate column
// names are rejected.
func NewMemoryTable(columns []string) (*MemoryTable, error) {
	t := &MemoryTable{index: make(map[string]int, len(columns))}
	for _, c := range columns {
		if _, exists := t.index[c]; exists {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		t.addColumn(c)
	}
	return t, nil
}

func (t *MemoryTable) addColumn(c string) {
	t.index[c] = len(t.columns)
	t.columns = append(t.columns, c)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], Null())
	}
}

// AddColumn appends a column filled with missing cells. Existing columns are left untouched.
func (t *MemoryTable) AddColumn(column string) {
	if !t.HasColumn(column) {
		t.addColumn(column)
	}
}

// AppendRow appends a row given in column order. Short rows are padded with
// missing cells; long rows are rejected.
func (t *MemoryTable) AppendRow(values []Value) error {
	if len(values) > len(t.columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(values), len(t.columns))
	}
	row := make([]Value, len(t.columns))
	copy(row, values)
	t.rows = append(t.rows, row)
	return nil
}

// AppendMap appends a row from a column map. Unknown keys become new columns.
func (t *MemoryTable) AppendMap(values map[string]Value) {
	for k := range values {
		if !t.HasColumn(k) {
			t.addColumn(k)
		}
	}
	row := make([]Value, len(t.columns))
	for k, v := range values {
		row[t.index[k]] = v
	}
	t.rows = append(t.rows, row)
}

// Columns implements Table.
func (t *MemoryTable) Columns() []string {
	return slices.Clone(t.columns)
}

// HasColumn implements Table.
func (t *MemoryTable) HasColumn(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Len implements Table.
func (t *MemoryTable) Len() int {
	return len(t.rows)
}

// Get implements Table.
func (t *MemoryTable) Get(row int, column string) (Value, bool) {
	i, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.rows) {
		return Null(), false
	}
	return t.rows[row][i], true
}

// Set implements Table.
func (t *MemoryTable) Set(row int, column string, v Value) bool {
	i, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.rows) {
		return false
	}
	t.rows[row][i] = v
	return true
}

// Clone implements Table.
func (t *MemoryTable) Clone() Table {
	return t.clone()
}

func (t *MemoryTable) clone() *MemoryTable {
	c := &MemoryTable{
		columns: slices.Clone(t.columns),
		index:   make(map[string]int, len(t.index)),
		rows:    make([][]Value, len(t.rows)),
	}
	for k, v := range t.index {
		c.index[k] = v
	}
	for i, row := range t.rows {
		c.rows[i] = slices.Clone(row)
	}
	return c
}
