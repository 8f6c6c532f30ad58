package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPatternsYAML = `patterns:
  - name: person
    fields:
      - name: name
        type: string
      - name: age
        type: int
      - name: address
        type: string
        nullable: true
`

// withPatternsFile runs the test from a temp directory holding a
// patterns.yaml, so commands pick it up via the default config.
func withPatternsFile(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "patterns.yaml"), []byte(testPatternsYAML), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "tabula v1.2.3")
}

func TestNewReplCommand(t *testing.T) {
	cmd := NewReplCommand()

	assert.Equal(t, "repl", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestNewGenCommandFlags(t *testing.T) {
	cmd := NewGenCommand()

	assert.Equal(t, "gen", cmd.Use)
	for _, flag := range []string{"pattern", "package", "out"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestDemoCommand(t *testing.T) {
	cmd := NewDemoCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	src := out.String()

	assert.Contains(t, src, "Step 1")
	assert.Contains(t, src, "Step 7")
	assert.Contains(t, src, "Sandy")
	assert.Contains(t, src, "12 Shore Rd")
	assert.Contains(t, src, "(0 rows)", "step 1 renders the empty table")
}

func TestGenCommand(t *testing.T) {
	withPatternsFile(t)

	cmd := NewGenCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--pattern", "person"})

	require.NoError(t, cmd.Execute())
	src := out.String()

	assert.Contains(t, src, "package person")
	assert.Contains(t, src, "type PersonRow struct {")
}

func TestGenCommandWritesFile(t *testing.T) {
	withPatternsFile(t)

	cmd := NewGenCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--pattern", "person", "--package", "people", "--out", "person_gen.go"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "wrote person_gen.go")

	data, err := os.ReadFile("person_gen.go")
	require.NoError(t, err)
	assert.Contains(t, string(data), "package people")
}

func TestGenCommandUnknownPattern(t *testing.T) {
	withPatternsFile(t)

	cmd := NewGenCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--pattern", "nope"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `pattern "nope" not found`)
}

func TestPatternsCommand(t *testing.T) {
	withPatternsFile(t)

	cmd := NewPatternsCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	src := out.String()

	assert.Contains(t, src, "person")
	assert.Contains(t, src, "address")
	assert.Contains(t, src, "nullable")
	assert.Contains(t, src, "not null")
}

func TestPackageFromPattern(t *testing.T) {
	assert.Equal(t, "person", packageFromPattern("person"))
	assert.Equal(t, "useraccount", packageFromPattern("user_account"))
	assert.Equal(t, "orderline", packageFromPattern("order-line"))
}
