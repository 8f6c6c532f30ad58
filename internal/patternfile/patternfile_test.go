package patternfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/tabula/pkg/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personDecl = `
patterns:
  - name: person
    fields:
      - name: name
        type: string
      - name: age
        type: int
      - name: address
        type: string
        nullable: true
  - name: event
    fields:
      - name: at
        type: time
      - name: payload
        type: bytes
        nullable: true
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(personDecl))
	require.NoError(t, err)

	assert.Equal(t, []string{"person", "event"}, f.Names())
	require.Len(t, f.Patterns(), 2)

	p, ok := f.Pattern("person")
	require.True(t, ok)
	assert.Equal(t, 3, p.NumFields())

	addr, ok := p.Field("address")
	require.True(t, ok)
	assert.Equal(t, record.Nullable, addr.Nullability())
	assert.Equal(t, record.TypeString, addr.Type())

	name, ok := p.Field("name")
	require.True(t, ok)
	assert.Equal(t, record.NotNull, name.Nullability())

	_, ok = f.Pattern("missing")
	assert.False(t, ok)
}

func TestParseUnknownType(t *testing.T) {
	_, err := Parse([]byte(`
patterns:
  - name: p
    fields:
      - name: x
        type: decimal
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decimal")
}

func TestParseDuplicatePattern(t *testing.T) {
	_, err := Parse([]byte(`
patterns:
  - name: p
    fields:
      - name: x
        type: int
  - name: p
    fields:
      - name: y
        type: int
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declared twice")
}

func TestParseInvalidPattern(t *testing.T) {
	_, err := Parse([]byte(`
patterns:
  - name: p
    fields: []
`))
	assert.ErrorIs(t, err, record.ErrEmptyPattern)
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("patterns: ["))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.yaml")
	require.NoError(t, os.WriteFile(path, []byte(personDecl), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, f.Names(), 2)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
