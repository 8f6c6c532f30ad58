// Package codegen emits typed Go bindings for a pattern: per-shape
// structs (Row, Update, Table wrapper) whose field types come from the
// column type selector, plus conversions that delegate to the generic
// engine. The engine stays the single source of the four operations'
// semantics; generated code can never drift from it.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"

	"github.com/leapstack-labs/tabula/pkg/record"
)

// Options configures one generation run.
type Options struct {
	// Package is the target package name.
	Package string
	// Pattern is the schema to generate bindings for.
	Pattern *record.Pattern
}

// Generate renders the bindings for opts.Pattern and returns gofmt-ed
// source.
func Generate(opts Options) ([]byte, error) {
	if opts.Package == "" {
		return nil, fmt.Errorf("codegen: package name is required")
	}
	if opts.Pattern == nil {
		return nil, fmt.Errorf("codegen: pattern is required")
	}

	data, err := buildData(opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := bindingsTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("codegen: render template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("codegen: generated code does not parse: %w", err)
	}
	return formatted, nil
}

type templateData struct {
	Package     string
	PatternName string
	TypeName    string
	LowerName   string
	VarName     string
	NeedsTime   bool
	Fields      []templateField
}

type templateField struct {
	GoName    string
	Name      string
	RowType   string
	Elem      string
	Nullable  bool
	TypeConst string
	NullConst string
}

// typeConsts maps base types to their record constant names.
var typeConsts = map[record.BaseType]string{
	record.TypeString: "TypeString",
	record.TypeInt:    "TypeInt",
	record.TypeFloat:  "TypeFloat",
	record.TypeBool:   "TypeBool",
	record.TypeTime:   "TypeTime",
	record.TypeBytes:  "TypeBytes",
}

func buildData(opts Options) (*templateData, error) {
	p := opts.Pattern
	typeName := exportedIdent(p.Name())
	if typeName == "" {
		return nil, fmt.Errorf("codegen: pattern name %q yields no Go identifier", p.Name())
	}

	data := &templateData{
		Package:     opts.Package,
		PatternName: p.Name(),
		TypeName:    typeName,
		LowerName:   strings.ToLower(typeName[:1]) + typeName[1:],
		VarName:     strings.ToLower(typeName[:1]) + typeName[1:] + "Pattern",
	}

	for _, f := range p.Fields() {
		goName := exportedIdent(f.Name())
		if goName == "" {
			return nil, fmt.Errorf("codegen: field name %q yields no Go identifier", f.Name())
		}
		tc, ok := typeConsts[f.Type()]
		if !ok {
			return nil, fmt.Errorf("codegen: field %q has unknown base type", f.Name())
		}
		nullConst := "NotNull"
		if f.Nullability() == record.Nullable {
			nullConst = "Nullable"
		}
		if f.Type() == record.TypeTime {
			data.NeedsTime = true
		}
		data.Fields = append(data.Fields, templateField{
			GoName:    goName,
			Name:      f.Name(),
			RowType:   record.ColumnGoType(record.RepRow, f.Nullability(), f.Type()),
			Elem:      f.Type().GoType(),
			Nullable:  f.Nullability() == record.Nullable,
			TypeConst: tc,
			NullConst: nullConst,
		})
	}
	return data, nil
}

// exportedIdent converts a declaration name like "user_account" into an
// exported Go identifier like "UserAccount".
func exportedIdent(name string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			upperNext = true
		case upperNext:
			b.WriteString(strings.ToUpper(string(r)))
			upperNext = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
