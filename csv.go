package docfmt

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// parseCSV reads a header row followed by data rows. Cells are zipped with
// headers by position, so rows of a different width do not line up.
func parseCSV(text string) (Value, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	var headers []string
	rows := []Value{}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return Value{}, newLineError(CSV, text, pe.Err.Error(), pe.Line, pe.Column)
			}
			return Value{}, newParseError(CSV, text, err.Error(), -1)
		}
		if headers == nil {
			headers = make([]string, len(record))
			for i, h := range record {
				headers[i] = strings.TrimSpace(h)
			}
			continue
		}
		row := NewMap()
		for i, h := range headers {
			cell := ""
			if i < len(record) {
				cell = strings.TrimSpace(record[i])
			}
			row.Set(h, String(cell))
		}
		rows = append(rows, Mapping(row))
	}
	return List(rows...), nil
}

func writeCSV(w io.Writer, v Value) error {
	var rows []Value
	switch v.Kind() {
	case ListKind:
		rows = v.items
	case MappingKind:
		rows = []Value{v}
	default:
		return fmt.Errorf("%w: format %q requires a list of mappings, got %s", ErrUnsupportedShape, CSV, v.Kind())
	}
	if len(rows) == 0 {
		return nil
	}
	for i, row := range rows {
		if row.Kind() != MappingKind {
			return fmt.Errorf("%w: format %q requires a list of mappings, item %d is %s", ErrUnsupportedShape, CSV, i, row.Kind())
		}
	}
	headers := rows[0].m.Keys()

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(headers); err != nil {
		return err
	}
	record := make([]string, len(headers))
	for _, row := range rows {
		for i, h := range headers {
			record[i] = ""
			if cell, ok := row.m.Get(h); ok {
				record[i] = scalarText(cell)
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	_, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return err
}
