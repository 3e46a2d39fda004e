package dataprocessing

// SentinelText replaces blank cells of text columns.
const SentinelText = "N/A"

// ColumnKind tags a working column as numeric or text.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindNumeric
)

// String returns the kind name
func (k ColumnKind) String() string {
	if k == KindNumeric {
		return "numeric"
	}
	return "text"
}

// RawCell is a cell as read from the input file. Present is false for empty,
// whitespace-only and NA-token cells.
type RawCell struct {
	Value   string
	Present bool
}

// RawTable is the parsed input: ordered column names and, per column, one cell
// per row. All columns have the same length.
type RawTable struct {
	Columns []string
	Cells   [][]RawCell
}

// RowCount returns the number of data rows.
func (t *RawTable) RowCount() int {
	if t == nil || len(t.Cells) == 0 {
		return 0
	}
	return len(t.Cells[0])
}

// NullFloat is an optional float64; Valid is false when the value is absent.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// Column is a working column. Numbers is used by numeric columns and Texts by
// text columns.
type Column struct {
	Name    string
	Kind    ColumnKind
	Numbers []NullFloat
	Texts   []string
}

// Len returns the number of rows in the column
func (c *Column) Len() int {
	if c.Kind == KindNumeric {
		return len(c.Numbers)
	}
	return len(c.Texts)
}

// Absent reports whether row i holds no value. Text sentinels are values.
func (c *Column) Absent(i int) bool {
	return c.Kind == KindNumeric && !c.Numbers[i].Valid
}

// Value returns row i as a *float64 (nil when absent) or a string.
func (c *Column) Value(i int) interface{} {
	if c.Kind == KindNumeric {
		if !c.Numbers[i].Valid {
			return (*float64)(nil)
		}
		v := c.Numbers[i].Float64
		return &v
	}
	return c.Texts[i]
}

// Table is the working table that flows through the pipeline. Rows is kept
// separately so a table whose columns were all dropped still has a row count.
type Table struct {
	Columns []*Column
	Rows    int
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	if t == nil {
		return 0
	}
	return t.Rows
}

// ColumnNames returns the column names in order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}
