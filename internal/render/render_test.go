package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/leapstack-labs/tabula/pkg/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoTable(t *testing.T) record.Table {
	t.Helper()
	p := record.MustPattern("person",
		record.NewField("name", record.TypeString, record.NotNull),
		record.NewField("age", record.TypeInt, record.NotNull),
		record.NewField("address", record.TypeString, record.Nullable),
	)
	r1, err := record.NewRow(p).Set("name", "Sandy").Set("age", 27).Build()
	require.NoError(t, err)
	r2, err := record.NewRow(p).Set("name", "Pat").Set("age", 31).Set("address", "Main St").Build()
	require.NoError(t, err)

	tbl, err := p.Empty().Insert(0, r1)
	require.NoError(t, err)
	tbl, err = tbl.Insert(1, r2)
	require.NoError(t, err)
	return tbl
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"":         FormatTable,
		"table":    FormatTable,
		"json":     FormatJSON,
		"md":       FormatMarkdown,
		"markdown": FormatMarkdown,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestWriteTablePretty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, demoTable(t), FormatTable))

	out := buf.String()
	assert.Contains(t, out, "Sandy")
	assert.Contains(t, out, "NULL")
	assert.Contains(t, out, "Main St")
	assert.Contains(t, out, "(2 rows)")
}

func TestWriteTableEmpty(t *testing.T) {
	p := record.MustPattern("p", record.NewField("x", record.TypeInt, record.NotNull))

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, p.Empty(), FormatTable))
	assert.Contains(t, buf.String(), "(0 rows)")
}

func TestWriteTableJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, demoTable(t), FormatJSON))

	var results []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "Sandy", results[0]["name"])
	assert.Nil(t, results[0]["address"])
	assert.Equal(t, "Main St", results[1]["address"])
}

func TestWriteTableMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, demoTable(t), FormatMarkdown))
	assert.Contains(t, buf.String(), "|")
	assert.Contains(t, buf.String(), "Sandy")
}

func TestWriteRow(t *testing.T) {
	tbl := demoTable(t)
	row, ok := tbl.Lookup(0)
	require.True(t, ok)

	var buf bytes.Buffer
	require.NoError(t, WriteRow(&buf, row, FormatTable))
	assert.Contains(t, buf.String(), "Sandy")
	assert.Contains(t, buf.String(), "NULL")
}

func TestWriteZeroRow(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRow(&buf, record.Row{}, FormatTable))
	assert.Contains(t, buf.String(), "absent")
}
