// Package patternfile loads pattern declarations from YAML files. The
// declaration syntax is the external schema-declaration collaborator of
// the record engine: files declare each pattern once, and every
// representation of it is derived from that single declaration.
//
// Example:
//
//	patterns:
//	  - name: person
//	    fields:
//	      - name: name
//	        type: string
//	      - name: age
//	        type: int
//	      - name: address
//	        type: string
//	        nullable: true
package patternfile

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/tabula/pkg/record"
	"gopkg.in/yaml.v3"
)

type fieldDecl struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Nullable bool   `yaml:"nullable"`
}

type patternDecl struct {
	Name   string      `yaml:"name"`
	Fields []fieldDecl `yaml:"fields"`
}

type fileDecl struct {
	Patterns []patternDecl `yaml:"patterns"`
}

// File is a set of named patterns loaded from one declaration file.
type File struct {
	order    []string
	patterns map[string]*record.Pattern
}

// Load reads and parses the declaration file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a declaration document.
func Parse(data []byte) (*File, error) {
	var decl fileDecl
	if err := yaml.Unmarshal(data, &decl); err != nil {
		return nil, fmt.Errorf("parse pattern file: %w", err)
	}

	f := &File{patterns: make(map[string]*record.Pattern, len(decl.Patterns))}
	for _, pd := range decl.Patterns {
		if _, ok := f.patterns[pd.Name]; ok {
			return nil, fmt.Errorf("pattern %q declared twice", pd.Name)
		}
		fields := make([]record.FieldSpec, 0, len(pd.Fields))
		for _, fd := range pd.Fields {
			typ, err := record.ParseBaseType(fd.Type)
			if err != nil {
				return nil, fmt.Errorf("pattern %q field %q: %w", pd.Name, fd.Name, err)
			}
			null := record.NotNull
			if fd.Nullable {
				null = record.Nullable
			}
			fields = append(fields, record.NewField(fd.Name, typ, null))
		}
		p, err := record.NewPattern(pd.Name, fields...)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pd.Name, err)
		}
		f.order = append(f.order, pd.Name)
		f.patterns[pd.Name] = p
	}
	return f, nil
}

// Pattern returns the named pattern.
func (f *File) Pattern(name string) (*record.Pattern, bool) {
	p, ok := f.patterns[name]
	return p, ok
}

// Names returns the pattern names in declaration order.
func (f *File) Names() []string {
	cp := make([]string, len(f.order))
	copy(cp, f.order)
	return cp
}

// Patterns returns all patterns in declaration order.
func (f *File) Patterns() []*record.Pattern {
	out := make([]*record.Pattern, 0, len(f.order))
	for _, name := range f.order {
		out = append(out, f.patterns[name])
	}
	return out
}
