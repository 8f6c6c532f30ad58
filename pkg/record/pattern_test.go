package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPatternValidation(t *testing.T) {
	tests := []struct {
		name    string
		pname   string
		fields  []FieldSpec
		wantErr error
	}{
		{
			name:    "no fields",
			pname:   "empty",
			wantErr: ErrEmptyPattern,
		},
		{
			name:    "no name",
			fields:  []FieldSpec{NewField("a", TypeInt, NotNull)},
			wantErr: ErrEmptyPattern,
		},
		{
			name:  "duplicate field",
			pname: "dup",
			fields: []FieldSpec{
				NewField("a", TypeInt, NotNull),
				NewField("a", TypeString, Nullable),
			},
			wantErr: ErrDuplicateField,
		},
		{
			name:    "unnamed field",
			pname:   "anon",
			fields:  []FieldSpec{NewField("", TypeInt, NotNull)},
			wantErr: ErrEmptyPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPattern(tt.pname, tt.fields...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPatternAccessors(t *testing.T) {
	p := personPattern(t)

	assert.Equal(t, "person", p.Name())
	assert.Equal(t, 3, p.NumFields())

	fields := p.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, "name", fields[0].Name())
	assert.Equal(t, TypeString, fields[0].Type())
	assert.Equal(t, NotNull, fields[0].Nullability())

	f, ok := p.Field("address")
	require.True(t, ok)
	assert.Equal(t, Nullable, f.Nullability())

	_, ok = p.Field("missing")
	assert.False(t, ok)
}

func TestPatternFieldOrderSharedAcrossRepresentations(t *testing.T) {
	// The field list of the pattern is the single source of identity
	// for all three shapes.
	p := personPattern(t)
	tbl := p.Empty()
	r := sandy(t, p)
	u, err := NewUpdate(p).Build()
	require.NoError(t, err)

	assert.Same(t, p, tbl.Pattern())
	assert.Same(t, p, r.Pattern())
	assert.Same(t, p, u.Pattern())
}

func TestMustPatternPanics(t *testing.T) {
	assert.Panics(t, func() { MustPattern("") })
}
