// Package domain holds the data contracts shared between the cleaning
// pipeline, the HTTP transport and the CLI.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CleaningResult is the response body of a successful upload.
type CleaningResult struct {
	TotalRows          int               `json:"total_rows"`
	CleanedRows        int               `json:"cleaned_rows"`
	RowsRemovedPercent string            `json:"rows_removed_percent"`
	MissingValues      int               `json:"missing_values"`
	Columns            []string          `json:"columns"`
	SampleData         []Record          `json:"sample_data"`
	DownloadURL        string            `json:"download_url"`
	CategorySummary    map[string]string `json:"category_summary"`
	Plots              map[string]string `json:"plots"`
}

// Field is one named cell of a Record.
type Field struct {
	Name  string
	Value interface{}
}

// Record is a table row that keeps its column order when encoded as a JSON object.
type Record []Field

// Get returns the value stored under name.
func (r Record) Get(name string) (interface{}, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON encodes the record as an object with keys in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object preserving key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record must be a JSON object")
	}

	var out Record
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v", tok)
		}
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		out = append(out, Field{Name: name, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = out
	return nil
}
