// pkg/dataset/dataset.go
package dataset

// Dataset is an ordered, in-memory table: a header plus rows of string cells.
// A cell holds the raw textual value; an empty cell is treated as null.
type Dataset struct {
	Columns []string
	Rows    [][]string
}

// New creates an empty dataset with the given column order
func New(columns []string) *Dataset {
	return &Dataset{
		Columns: columns,
		Rows:    make([][]string, 0),
	}
}

// ColumnIndex returns the position of a column, or -1 if absent
func (d *Dataset) ColumnIndex(name string) int {
	for i, col := range d.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the dataset contains the named column
func (d *Dataset) HasColumn(name string) bool {
	return d.ColumnIndex(name) >= 0
}

// RowCount returns the number of data rows
func (d *Dataset) RowCount() int {
	return len(d.Rows)
}

// AppendRow adds a row to the dataset
func (d *Dataset) AppendRow(row []string) {
	d.Rows = append(d.Rows, row)
}

// Filter returns a new dataset containing only the rows for which keep
// returns true. Rows are visited in order and are shared with the receiver,
// so callers must not mutate them through the filtered view.
func (d *Dataset) Filter(keep func(i int, row []string) bool) *Dataset {
	out := New(d.Columns)
	for i, row := range d.Rows {
		if keep(i, row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Clone returns a deep copy of the dataset
func (d *Dataset) Clone() *Dataset {
	out := New(append([]string(nil), d.Columns...))
	out.Rows = make([][]string, len(d.Rows))
	for i, row := range d.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}
