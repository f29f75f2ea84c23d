package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oneconcern/datadesk/pkg/model/status"
)

// string header plus validity flag, as laid out in memory
const valueOverhead = 24

// UnknownValue is the fill value used by automatic imputation when a column has no value at all
const UnknownValue = "Unknown"

// Value is a nullable cell. The zero value is null.
type Value struct {
	V     string `json:"v,omitempty" yaml:"v,omitempty"`
	Valid bool   `json:"valid" yaml:"valid"`
}

// Str builds a non-null value
func Str(s string) Value {
	return Value{V: s, Valid: true}
}

// Null builds a null value
func Null() Value {
	return Value{}
}

// IsNull tells if the value is null
func (v Value) IsNull() bool {
	return !v.Valid
}

// Float parses the value as a number. Null values are not numbers.
func (v Value) Float() (float64, bool) {
	if !v.Valid {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.V), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (v Value) String() string {
	if !v.Valid {
		return "<null>"
	}
	return v.V
}

// Table is a dataset made of named columns and rows of nullable values.
type Table struct {
	Columns []string  `json:"columns" yaml:"columns"`
	Rows    [][]Value `json:"rows" yaml:"rows"`
	_       struct{}
}

// NewTable builds a table, checking that column names are unique and that rows have the expected width
func NewTable(columns []string, rows ...[]Value) (*Table, error) {
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, ok := seen[c]; ok {
			return nil, status.ErrDuplicateColumn.WrapMessage(c)
		}
		seen[c] = struct{}{}
	}

	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, status.ErrRowWidth.WrapMessage(
				fmt.Sprintf("row %d has %d values, expected %d", i, len(row), len(columns)))
		}
	}

	t := &Table{
		Columns: append([]string{}, columns...),
		Rows:    make([][]Value, len(rows)),
	}
	for i, row := range rows {
		t.Rows[i] = append([]Value{}, row...)
	}
	return t, nil
}

// Copy returns an independent copy of the table
func (t *Table) Copy() *Table {
	if t == nil {
		return nil
	}
	c := &Table{
		Columns: append([]string{}, t.Columns...),
		Rows:    make([][]Value, len(t.Rows)),
	}
	for i, row := range t.Rows {
		c.Rows[i] = append([]Value{}, row...)
	}
	return c
}

// Equal tells if two tables hold the same columns and values, in the same order
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if len(t.Columns) != len(other.Columns) || len(t.Rows) != len(other.Rows) {
		return false
	}
	for i, c := range t.Columns {
		if other.Columns[i] != c {
			return false
		}
	}
	for i, row := range t.Rows {
		if len(row) != len(other.Rows[i]) {
			return false
		}
		for j, v := range row {
			if other.Rows[i][j] != v {
				return false
			}
		}
	}
	return true
}

// Size estimates the memory held by the table, in bytes
func (t *Table) Size() int64 {
	if t == nil {
		return 0
	}
	var size int64
	for _, c := range t.Columns {
		size += int64(len(c)) + valueOverhead
	}
	for _, row := range t.Rows {
		for _, v := range row {
			size += int64(len(v.V)) + valueOverhead
		}
	}
	return size
}

// NumRows returns the number of rows in the table
func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// NumColumns returns the number of columns in the table
func (t *Table) NumColumns() int {
	if t == nil {
		return 0
	}
	return len(t.Columns)
}

// ColumnIndex returns the position of a column
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// Column returns all values of a column, top to bottom
func (t *Table) Column(name string) ([]Value, error) {
	j, ok := t.ColumnIndex(name)
	if !ok {
		return nil, status.ErrUnknownColumn.WrapMessage(name)
	}
	values := make([]Value, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[j]
	}
	return values, nil
}

// NullCount returns the number of null values in the table
func (t *Table) NullCount() int {
	var count int
	for _, row := range t.Rows {
		for _, v := range row {
			if v.IsNull() {
				count++
			}
		}
	}
	return count
}
