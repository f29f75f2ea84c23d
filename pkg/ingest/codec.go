package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/oneconcern/datadesk/pkg/model"

	jsoniter "github.com/json-iterator/go"
)

// nullTokens are CSV fields read as null values
var nullTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"NaN":  {},
	"nan":  {},
	"null": {},
	"NULL": {},
	"None": {},
}

const (
	// nullField is written for a null value in a record that would otherwise be blank.
	// Blank lines are skipped by CSV readers.
	nullField = "NA"

	// escapeChar prefixes non-null values that would otherwise read back as null
	escapeChar = `\`
)

// nullLike tells if a field is a null token, preceded by any number of escape characters
func nullLike(field string) bool {
	_, ok := nullTokens[strings.TrimLeft(field, escapeChar)]
	return ok
}

func decodeField(field string) model.Value {
	if _, isNull := nullTokens[field]; isNull {
		return model.Null()
	}
	if nullLike(field) {
		return model.Str(field[len(escapeChar):])
	}
	return model.Str(field)
}

func encodeField(v model.Value) string {
	if v.IsNull() {
		return ""
	}
	if nullLike(v.V) {
		return escapeChar + v.V
	}
	return v.V
}

var jsonAPI = jsoniter.Config{
	UseNumber:              true,
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

func decodeCSV(r io.Reader) (*model.Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file: a header line is required")
	}
	if err != nil {
		return nil, err
	}

	var rows [][]model.Value
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make([]model.Value, len(record))
		for i, field := range record {
			row[i] = decodeField(field)
		}
		rows = append(rows, row)
	}
	return model.NewTable(header, rows...)
}

func encodeCSV(w io.Writer, tbl *model.Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(tbl.Columns); err != nil {
		return err
	}
	record := make([]string, tbl.NumColumns())
	for _, row := range tbl.Rows {
		for i, v := range row {
			record[i] = encodeField(v)
		}
		if len(record) == 1 && record[0] == "" {
			record[0] = nullField
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

type splitLayout struct {
	Columns []string        `json:"columns"`
	Data    [][]interface{} `json:"data"`
}

func decodeJSON(r io.Reader) (*model.Table, error) {
	var doc splitLayout
	if err := jsonAPI.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}

	rows := make([][]model.Value, len(doc.Data))
	for i, record := range doc.Data {
		row := make([]model.Value, len(record))
		for j, field := range record {
			switch v := field.(type) {
			case nil:
				row[j] = model.Null()
			case string:
				row[j] = model.Str(v)
			case json.Number:
				row[j] = model.Str(v.String())
			case bool:
				row[j] = model.Str(strconv.FormatBool(v))
			default:
				return nil, fmt.Errorf("row %d, column %d: unsupported value of type %T", i, j, field)
			}
		}
		rows[i] = row
	}
	return model.NewTable(doc.Columns, rows...)
}

func encodeJSON(w io.Writer, tbl *model.Table) error {
	doc := splitLayout{
		Columns: tbl.Columns,
		Data:    make([][]interface{}, len(tbl.Rows)),
	}
	for i, row := range tbl.Rows {
		record := make([]interface{}, len(row))
		for j, v := range row {
			if v.IsNull() {
				continue
			}
			record[j] = v.V
		}
		doc.Data[i] = record
	}

	enc := jsonAPI.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
