package model

import (
	"sort"
	"strconv"
	"strings"

	"github.com/oneconcern/datadesk/pkg/model/status"
)

// FillStrategy defines how null values are imputed
type FillStrategy string

const (
	// FillAuto imputes the mean for numeric columns and the most frequent value for other columns
	FillAuto FillStrategy = "auto"

	// FillConstant imputes the same constant everywhere
	FillConstant FillStrategy = "constant"
)

// IsValid checks the value of a fill strategy
func (s FillStrategy) IsValid() bool {
	switch s {
	case FillAuto, FillConstant:
		return true
	default:
		return false
	}
}

func (s FillStrategy) String() string {
	return string(s)
}

// FillNulls returns a copy of the table with null values imputed.
//
// With FillAuto, a column is numeric when all its non-null values parse as numbers.
// Numeric columns get the mean of their values. Other columns get their most frequent value,
// the smallest one on ties, or UnknownValue when the column has no value at all.
//
// The second return value is the number of imputed values.
func (t *Table) FillNulls(strategy FillStrategy, constant *string) (*Table, int, error) {
	switch strategy {
	case FillAuto:
	case FillConstant:
		if constant == nil {
			return nil, 0, status.ErrMissingConstant
		}
	default:
		return nil, 0, status.ErrUnknownStrategy.WrapMessage(string(strategy))
	}

	res := t.Copy()
	var filled int
	for j := range res.Columns {
		var fill string
		if strategy == FillConstant {
			fill = *constant
		} else {
			fill = res.imputed(j)
		}
		for _, row := range res.Rows {
			if row[j].IsNull() {
				row[j] = Str(fill)
				filled++
			}
		}
	}
	return res, filled, nil
}

func (t *Table) imputed(j int) string {
	var (
		sum     float64
		count   int
		numeric = true
		freqs   = make(map[string]int)
	)
	for _, row := range t.Rows {
		v := row[j]
		if v.IsNull() {
			continue
		}
		count++
		freqs[v.V]++
		if f, ok := v.Float(); ok {
			sum += f
		} else {
			numeric = false
		}
	}

	if count == 0 {
		return UnknownValue
	}
	if numeric {
		return strconv.FormatFloat(sum/float64(count), 'f', -1, 64)
	}
	return mode(freqs)
}

func mode(freqs map[string]int) string {
	values := make([]string, 0, len(freqs))
	for v := range freqs {
		values = append(values, v)
	}
	sort.Strings(values)

	var (
		best  string
		count int
	)
	for _, v := range values {
		if freqs[v] > count {
			best, count = v, freqs[v]
		}
	}
	return best
}

// DropNulls returns a copy of the table without the rows holding a null value.
// The second return value is the number of removed rows.
func (t *Table) DropNulls() (*Table, int) {
	res := &Table{
		Columns: append([]string{}, t.Columns...),
		Rows:    make([][]Value, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		if hasNull(row) {
			continue
		}
		res.Rows = append(res.Rows, append([]Value{}, row...))
	}
	return res, len(t.Rows) - len(res.Rows)
}

func hasNull(row []Value) bool {
	for _, v := range row {
		if v.IsNull() {
			return true
		}
	}
	return false
}

// DropDuplicates returns a copy of the table where only the first occurrence of identical rows is kept.
// The second return value is the number of removed rows.
func (t *Table) DropDuplicates() (*Table, int) {
	res := &Table{
		Columns: append([]string{}, t.Columns...),
		Rows:    make([][]Value, 0, len(t.Rows)),
	}
	seen := make(map[string]struct{}, len(t.Rows))
	for _, row := range t.Rows {
		key := rowKey(row)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		res.Rows = append(res.Rows, append([]Value{}, row...))
	}
	return res, len(t.Rows) - len(res.Rows)
}

func rowKey(row []Value) string {
	var b strings.Builder
	for _, v := range row {
		if v.IsNull() {
			b.WriteString("n")
		} else {
			b.WriteString("v")
			b.WriteString(strconv.Itoa(len(v.V)))
			b.WriteByte(':')
			b.WriteString(v.V)
		}
		b.WriteByte('|')
	}
	return b.String()
}

// Clean drops rows with null values, then duplicate rows.
// The second return value is the total number of removed rows.
func (t *Table) Clean() (*Table, int) {
	noNulls, nulls := t.DropNulls()
	res, dups := noNulls.DropDuplicates()
	return res, nulls + dups
}

// Replace returns a copy of the table where all values of a column equal to target are replaced.
// Null values are never matched.
//
// The second return value is the number of replaced values.
func (t *Table) Replace(column, target, replacement string) (*Table, int, error) {
	j, ok := t.ColumnIndex(column)
	if !ok {
		return nil, 0, status.ErrUnknownColumn.WrapMessage(column)
	}

	res := t.Copy()
	var replaced int
	for _, row := range res.Rows {
		if row[j].Valid && row[j].V == target {
			row[j] = Str(replacement)
			replaced++
		}
	}
	return res, replaced, nil
}
