// Package export writes harvest results to disk: a pretty-printed
// JSON list of raw records and a CSV projection deduplicated by key
// column. Files are created once per run and never updated.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
)

// Table is a tabular projection of records ready for CSV export.
// KeyCol is the deduplication column index.
type Table struct {
	Header []string
	KeyCol int
	Rows   [][]string
}

// WriteJSON writes v as pretty-printed UTF-8 JSON without HTML
// escaping.
func WriteJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteCSV writes the table to path, dropping rows whose key column
// value was already seen (keep-first). Returns the number of data
// rows written.
func WriteCSV(path string, t Table) (int, error) {
	if t.KeyCol < 0 || t.KeyCol >= len(t.Header) {
		return 0, fmt.Errorf("key column %d out of range", t.KeyCol)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	seen := make(map[string]struct{}, len(t.Rows))
	written := 0
	for _, row := range t.Rows {
		key := row[t.KeyCol]
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if err := w.Write(row); err != nil {
			return written, fmt.Errorf("write row: %w", err)
		}
		written++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return written, fmt.Errorf("flush csv: %w", err)
	}
	return written, nil
}

// ReadCSV loads a CSV file into header and data rows.
func ReadCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s is empty", path)
	}
	return records[0], records[1:], nil
}

// ReadJSON decodes a JSON export into v.
func ReadJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
