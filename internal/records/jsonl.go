package records

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ReadJSONLines decodes a stream of JSON objects, one record each. Columns are the
// union of keys in first-seen order; absent keys and nulls are missing values.
func ReadJSONLines(r io.Reader) (*MemoryTable, error) {
	table, _ := NewMemoryTable(nil)
	dec := json.NewDecoder(r)

	for record := 1; ; record++ {
		row, err := readObject(dec)
		if errors.Is(err, io.EOF) {
			return table, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode record %d: %w", record, err)
		}
		for _, kv := range row {
			table.AddColumn(kv.key)
		}
		values := make(map[string]Value, len(row))
		for _, kv := range row {
			values[kv.key] = kv.value
		}
		table.AppendMap(values)
	}
}

type keyValue struct {
	key   string
	value Value
}

// readObject returns io.EOF only when the stream ends between objects. A stream
// that ends inside an object is io.ErrUnexpectedEOF.
func readObject(dec *json.Decoder) ([]keyValue, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	out, err := readMembers(dec, tok)
	if errors.Is(err, io.EOF) {
		return nil, io.ErrUnexpectedEOF
	}
	return out, err
}

func readMembers(dec *json.Decoder, tok json.Token) ([]keyValue, error) {
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var out []keyValue
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		var v Value
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, keyValue{key: key, value: v})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

// WriteJSONLines encodes each row of t as one JSON object with keys in column order.
func WriteJSONLines(w io.Writer, t Table) error {
	bw := bufio.NewWriter(w)
	for row := 0; row < t.Len(); row++ {
		encoded, err := EncodeRow(t, row)
		if err != nil {
			return err
		}
		encoded = append(encoded, '\n')
		if _, err := bw.Write(encoded); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	return bw.Flush()
}

// EncodeRow encodes one row of t as a JSON object with keys in column order.
// Missing values encode as null.
func EncodeRow(t Table, row int) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range t.Columns() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		v, _ := t.Get(row, c)
		encoded, err := v.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(encoded)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
