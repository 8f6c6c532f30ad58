// Package render writes record tables and rows for humans: pretty
// terminal tables, markdown, or JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/tabula/pkg/record"
)

// Format selects the output rendering.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat resolves a format name; "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// WriteTable renders every row of t in id order. Nullable fields with
// no value render as NULL (or null in JSON).
func WriteTable(w io.Writer, t record.Table, format Format) error {
	cols, results := collect(t)
	return write(w, cols, results, format)
}

// WriteRow renders a single row.
func WriteRow(w io.Writer, r record.Row, format Format) error {
	p := r.Pattern()
	if p == nil {
		_, err := fmt.Fprintln(w, "(absent)")
		return err
	}
	cols := fieldNames(p)
	return write(w, cols, []map[string]any{rowMap(p, r)}, format)
}

func fieldNames(p *record.Pattern) []string {
	fields := p.Fields()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.Name()
	}
	return cols
}

func rowMap(p *record.Pattern, r record.Row) map[string]any {
	m := make(map[string]any, p.NumFields())
	for _, f := range p.Fields() {
		if v, ok := r.Get(f.Name()); ok {
			m[f.Name()] = v
		} else {
			m[f.Name()] = nil
		}
	}
	return m
}

func collect(t record.Table) ([]string, []map[string]any) {
	p := t.Pattern()
	cols := fieldNames(p)

	// Prefix a row-id column unless the pattern claims the name itself.
	_, hasIDField := p.Field("id")
	if !hasIDField {
		cols = append([]string{"id"}, cols...)
	}

	results := make([]map[string]any, 0, t.Len())
	for id := 0; id < t.Len(); id++ {
		row, ok := t.Lookup(record.RowID(id))
		if !ok {
			continue
		}
		m := rowMap(p, row)
		if !hasIDField {
			m["id"] = int64(id)
		}
		results = append(results, m)
	}
	return cols, results
}

func write(w io.Writer, cols []string, results []map[string]any, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, results)
	case FormatMarkdown:
		return writePretty(w, cols, results, true)
	default:
		return writePretty(w, cols, results, false)
	}
}

func writePretty(w io.Writer, cols []string, results []map[string]any, markdown bool) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "(0 rows)")
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(cols))
	for i, col := range cols {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, result := range results {
		row := make(table.Row, len(cols))
		for i, col := range cols {
			row[i] = formatValue(result[col])
		}
		t.AppendRow(row)
	}

	if markdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	_, err := fmt.Fprintf(w, "(%d rows)\n", len(results))
	return err
}

func writeJSON(w io.Writer, results []map[string]any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if results == nil {
		results = []map[string]any{}
	}
	return enc.Encode(results)
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}
