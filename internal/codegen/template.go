package codegen

import "text/template"

var bindingsTmpl = template.Must(template.New("bindings").Parse(`// Code generated by tabula gen; DO NOT EDIT.

package {{.Package}}

import (
{{- if .NeedsTime}}
	"time"
{{end}}
	"github.com/leapstack-labs/tabula/pkg/record"
)

// {{.VarName}} is the single schema declaration behind every
// {{.TypeName}} shape.
var {{.VarName}} = record.MustPattern({{printf "%q" .PatternName}},
{{- range .Fields}}
	record.NewField({{printf "%q" .Name}}, record.{{.TypeConst}}, record.{{.NullConst}}),
{{- end}}
)

// {{.TypeName}}Pattern returns the pattern backing the generated shapes.
func {{.TypeName}}Pattern() *record.Pattern { return {{.VarName}} }

// {{.TypeName}}Row is the single-entity shape of the {{.PatternName}}
// pattern. Nullable fields are pointers; nil means absent.
type {{.TypeName}}Row struct {
{{- range .Fields}}
	{{.GoName}} {{.RowType}}
{{- end}}
}

func (r {{.TypeName}}Row) toRecord() (record.Row, error) {
	b := record.NewRow({{.VarName}})
{{- range .Fields}}
{{- if .Nullable}}
	if r.{{.GoName}} != nil {
		b.Set({{printf "%q" .Name}}, *r.{{.GoName}})
	}
{{- else}}
	b.Set({{printf "%q" .Name}}, r.{{.GoName}})
{{- end}}
{{- end}}
	return b.Build()
}

func {{.LowerName}}RowFromRecord(rec record.Row) {{.TypeName}}Row {
	var r {{.TypeName}}Row
{{- range .Fields}}
{{- if .Nullable}}
	if v, ok := record.Get[{{.Elem}}](rec, {{printf "%q" .Name}}); ok {
		r.{{.GoName}} = &v
	}
{{- else}}
	r.{{.GoName}}, _ = record.Get[{{.Elem}}](rec, {{printf "%q" .Name}})
{{- end}}
{{- end}}
	return r
}

// {{.TypeName}}Update is the partial-mutation shape of the
// {{.PatternName}} pattern. The zero value keeps every field; use
// record.Set and record.Unset to change or clear one.
type {{.TypeName}}Update struct {
{{- range .Fields}}
	{{.GoName}} record.Action
{{- end}}
}

func (u {{.TypeName}}Update) toRecord() (record.Update, error) {
	b := record.NewUpdate({{.VarName}})
{{- range .Fields}}
	{{$.LowerName}}ApplyAction(b, {{printf "%q" .Name}}, u.{{.GoName}})
{{- end}}
	return b.Build()
}

func {{.LowerName}}ApplyAction(b *record.UpdateBuilder, name string, a record.Action) {
	if v, ok := a.SetValue(); ok {
		b.Set(name, v)
		return
	}
	if a.IsUnset() {
		b.Unset(name)
	}
}

// {{.TypeName}}Table is the bulk shape of the {{.PatternName}} pattern.
// It wraps the generic engine; every operation returns a new value and
// leaves the receiver untouched.
type {{.TypeName}}Table struct {
	rec record.Table
}

// Empty{{.TypeName}}Table returns the table with no rows.
func Empty{{.TypeName}}Table() {{.TypeName}}Table {
	return {{.TypeName}}Table{rec: {{.VarName}}.Empty()}
}

// Len returns the number of rows inserted.
func (t {{.TypeName}}Table) Len() int { return t.rec.Len() }

// Record exposes the underlying generic table.
func (t {{.TypeName}}Table) Record() record.Table { return t.rec }

// Lookup returns the row stored under id; false means no such row.
func (t {{.TypeName}}Table) Lookup(id record.RowID) ({{.TypeName}}Row, bool) {
	rec, ok := t.rec.Lookup(id)
	if !ok {
		return {{.TypeName}}Row{}, false
	}
	return {{.LowerName}}RowFromRecord(rec), true
}

// Insert returns a new table with r stored under id; id must be the
// table's next free position.
func (t {{.TypeName}}Table) Insert(id record.RowID, r {{.TypeName}}Row) ({{.TypeName}}Table, error) {
	rec, err := r.toRecord()
	if err != nil {
		return {{.TypeName}}Table{}, err
	}
	next, err := t.rec.Insert(id, rec)
	if err != nil {
		return {{.TypeName}}Table{}, err
	}
	return {{.TypeName}}Table{rec: next}, nil
}

// Update returns a new table with u applied to the row under id.
func (t {{.TypeName}}Table) Update(id record.RowID, u {{.TypeName}}Update) ({{.TypeName}}Table, error) {
	up, err := u.toRecord()
	if err != nil {
		return {{.TypeName}}Table{}, err
	}
	next, err := t.rec.Update(id, up)
	if err != nil {
		return {{.TypeName}}Table{}, err
	}
	return {{.TypeName}}Table{rec: next}, nil
}
`))
