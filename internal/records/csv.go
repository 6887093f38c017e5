package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ReadCSV decodes a CSV stream whose first record is the header. Empty cells are
// missing values.
func ReadCSV(r io.Reader) (*MemoryTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return NewMemoryTable(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	table, err := NewMemoryTable(header)
	if err != nil {
		return nil, err
	}

	for line := 2; ; line++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}
		if len(fields) > len(header) {
			return nil, fmt.Errorf("csv line %d has %d fields, header has %d", line, len(fields), len(header))
		}
		row := make([]Value, len(fields))
		for i, f := range fields {
			if f == "" {
				row[i] = Null()
				continue
			}
			row[i] = NewValue(f)
		}
		if err := table.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// WriteCSV encodes t as CSV with a header line. Missing cells are written empty.
func WriteCSV(w io.Writer, t Table) error {
	writer := csv.NewWriter(w)
	columns := t.Columns()
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	fields := make([]string, len(columns))
	for row := 0; row < t.Len(); row++ {
		for i, c := range columns {
			v, _ := t.Get(row, c)
			fields[i] = v.String
			if !v.Valid {
				fields[i] = ""
			}
		}
		if err := writer.Write(fields); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
