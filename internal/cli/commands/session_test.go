package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leapstack-labs/tabula/internal/patternfile"
	"github.com/leapstack-labs/tabula/internal/render"
	"github.com/leapstack-labs/tabula/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalAll(t *testing.T, sess *session, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	for _, line := range lines {
		require.NoError(t, sess.eval(line, &out), "statement %q", line)
	}
	return out.String()
}

func TestSessionDeclareInsertGet(t *testing.T) {
	sess := newSession(render.FormatTable, testutil.NewLogger(t))

	out := evalAll(t, sess,
		"pattern person name:string age:int address:?string",
		"insert person name=Sandy age=29",
		"get person 0",
	)

	assert.Contains(t, out, `pattern "person" declared (3 fields)`)
	assert.Contains(t, out, "inserted row 0")
	assert.Contains(t, out, "Sandy")
	assert.Contains(t, out, "NULL", "unset nullable field renders as NULL")
}

func TestSessionIDsAreSequential(t *testing.T) {
	sess := newSession(render.FormatTable, testutil.NewLogger(t))

	out := evalAll(t, sess,
		"pattern person name:string age:int address:?string",
		"insert person name=Sandy age=29",
		"insert person name=Robin age=35 address=Harbor",
	)

	assert.Contains(t, out, "inserted row 0")
	assert.Contains(t, out, "inserted row 1")
}

func TestSessionSetAndUnset(t *testing.T) {
	sess := newSession(render.FormatTable, testutil.NewLogger(t))

	out := evalAll(t, sess,
		"pattern person name:string age:int address:?string",
		"insert person name=Sandy age=29",
		"set person 0 address=Shore",
		"get person 0",
		"unset person 0 address",
		"get person 0",
	)

	assert.Contains(t, out, "Shore")
	// After the unset, the last rendering goes back to NULL.
	last := out[strings.LastIndex(out, "updated row 0"):]
	assert.Contains(t, last, "NULL")
}

func TestSessionGetMissingRow(t *testing.T) {
	sess := newSession(render.FormatTable, testutil.NewLogger(t))

	out := evalAll(t, sess,
		"pattern person name:string age:int",
		"get person 7",
	)

	assert.Contains(t, out, "(absent)")
}

func TestSessionShow(t *testing.T) {
	sess := newSession(render.FormatJSON, testutil.NewLogger(t))

	out := evalAll(t, sess,
		"pattern person name:string age:int address:?string",
		"insert person name=Sandy age=29",
		"show person",
	)

	assert.Contains(t, out, `"name": "Sandy"`)
	assert.Contains(t, out, `"address": null`)
}

func TestSessionPatternsListing(t *testing.T) {
	sess := newSession(render.FormatTable, testutil.NewLogger(t))

	empty := evalAll(t, sess, "patterns")
	assert.Contains(t, empty, "(no patterns)")

	out := evalAll(t, sess,
		"pattern person name:string address:?string",
		"patterns",
	)
	assert.Contains(t, out, "person")
	assert.Contains(t, out, "address:?string")
	assert.Contains(t, out, "(0 rows)")
}

func TestSessionErrors(t *testing.T) {
	sess := newSession(render.FormatTable, testutil.NewLogger(t))
	require.NoError(t, sess.eval("pattern person name:string age:int address:?string", &bytes.Buffer{}))

	for _, line := range []string{
		"frobnicate person",
		"pattern person name:string",
		"pattern broken name",
		"pattern broken2 name:strng",
		"insert nope name=x",
		"insert person name=Sandy",
		"insert person name=Sandy age=abc",
		"insert person nameSandy",
		"get person x",
		"set person 0 age=1",
		"unset person 0 name",
		"show nope",
	} {
		assert.Error(t, sess.eval(line, &bytes.Buffer{}), "statement %q", line)
	}
}

func TestSessionUnsetNotNullFieldRejected(t *testing.T) {
	sess := newSession(render.FormatTable, testutil.NewLogger(t))
	evalAll(t, sess,
		"pattern person name:string age:int address:?string",
		"insert person name=Sandy age=29",
	)

	err := sess.eval("unset person 0 name", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestSessionLoadPatterns(t *testing.T) {
	f, err := patternfile.Parse([]byte(`
patterns:
  - name: person
    fields:
      - name: name
        type: string
      - name: address
        type: string
        nullable: true
  - name: event
    fields:
      - name: at
        type: time
`))
	require.NoError(t, err)

	sess := newSession(render.FormatTable, testutil.NewLogger(t))
	sess.loadPatterns(f)

	out := evalAll(t, sess, "patterns")
	assert.Contains(t, out, "person")
	assert.Contains(t, out, "event")
}

func TestSessionBlankLineIsNoop(t *testing.T) {
	sess := newSession(render.FormatTable, testutil.NewLogger(t))
	var out bytes.Buffer
	require.NoError(t, sess.eval("   ", &out))
	assert.Empty(t, out.String())
}
