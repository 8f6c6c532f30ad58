package commands

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/leapstack-labs/tabula/internal/patternfile"
	"github.com/leapstack-labs/tabula/internal/render"
	"github.com/leapstack-labs/tabula/internal/rowid"
	"github.com/leapstack-labs/tabula/pkg/record"
)

// session is the REPL's interpreter state: declared patterns, one table
// per pattern, and one id allocator per table. Tables are values, so
// each statement that mutates simply replaces the stored table with the
// result.
type session struct {
	patterns   map[string]*record.Pattern
	tables     map[string]record.Table
	allocators map[string]*rowid.Allocator
	format     render.Format
	logger     *slog.Logger
}

func newSession(format render.Format, logger *slog.Logger) *session {
	return &session{
		patterns:   make(map[string]*record.Pattern),
		tables:     make(map[string]record.Table),
		allocators: make(map[string]*rowid.Allocator),
		format:     format,
		logger:     logger,
	}
}

// loadPatterns registers every pattern in f with an empty table.
func (s *session) loadPatterns(f *patternfile.File) {
	for _, p := range f.Patterns() {
		s.register(p)
	}
}

func (s *session) register(p *record.Pattern) {
	s.patterns[p.Name()] = p
	s.tables[p.Name()] = p.Empty()
	s.allocators[p.Name()] = rowid.New()
	s.logger.Debug("pattern registered", "name", p.Name(), "fields", p.NumFields())
}

// eval executes one REPL statement and writes its result to out.
func (s *session) eval(line string, out io.Writer) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}

	switch args[0] {
	case "pattern":
		return s.evalPattern(args[1:], out)
	case "patterns":
		return s.evalPatterns(out)
	case "insert":
		return s.evalInsert(args[1:], out)
	case "get":
		return s.evalGet(args[1:], out)
	case "set":
		return s.evalSet(args[1:], out)
	case "unset":
		return s.evalUnset(args[1:], out)
	case "show":
		return s.evalShow(args[1:], out)
	default:
		return fmt.Errorf("unknown statement %q (type .help for syntax)", args[0])
	}
}

// evalPattern handles: pattern <name> <field:type> [<field:?type> ...]
// A "?" before the type marks the field nullable.
func (s *session) evalPattern(args []string, out io.Writer) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: pattern <name> <field:type> [<field:?type> ...]")
	}
	name := args[0]
	if _, ok := s.patterns[name]; ok {
		return fmt.Errorf("pattern %q already declared", name)
	}

	fields := make([]record.FieldSpec, 0, len(args)-1)
	for _, spec := range args[1:] {
		fieldName, typeName, ok := strings.Cut(spec, ":")
		if !ok {
			return fmt.Errorf("bad field spec %q: want <field:type>", spec)
		}
		null := record.NotNull
		if strings.HasPrefix(typeName, "?") {
			null = record.Nullable
			typeName = typeName[1:]
		}
		typ, err := record.ParseBaseType(typeName)
		if err != nil {
			return fmt.Errorf("field %q: %w", fieldName, err)
		}
		fields = append(fields, record.NewField(fieldName, typ, null))
	}

	p, err := record.NewPattern(name, fields...)
	if err != nil {
		return err
	}
	s.register(p)
	_, _ = fmt.Fprintf(out, "pattern %q declared (%d fields)\n", name, p.NumFields())
	return nil
}

func (s *session) evalPatterns(out io.Writer) error {
	if len(s.patterns) == 0 {
		_, _ = fmt.Fprintln(out, "(no patterns)")
		return nil
	}
	names := make([]string, 0, len(s.patterns))
	for name := range s.patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p := s.patterns[name]
		parts := make([]string, 0, p.NumFields())
		for _, f := range p.Fields() {
			mark := ""
			if f.Nullability() == record.Nullable {
				mark = "?"
			}
			parts = append(parts, fmt.Sprintf("%s:%s%s", f.Name(), mark, f.Type()))
		}
		_, _ = fmt.Fprintf(out, "%s  %s  (%d rows)\n", name, strings.Join(parts, " "), s.tables[name].Len())
	}
	return nil
}

// evalInsert handles: insert <pattern> <field=value> ...
func (s *session) evalInsert(args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: insert <pattern> <field=value> ...")
	}
	p, ok := s.patterns[args[0]]
	if !ok {
		return fmt.Errorf("unknown pattern %q", args[0])
	}

	b := record.NewRow(p)
	for _, kv := range args[1:] {
		name, raw, err := s.parseAssignment(p, kv)
		if err != nil {
			return err
		}
		b.Set(name, raw)
	}
	row, err := b.Build()
	if err != nil {
		return err
	}

	id := s.allocators[p.Name()].Next()
	next, err := s.tables[p.Name()].Insert(id, row)
	if err != nil {
		return err
	}
	s.tables[p.Name()] = next
	s.logger.Debug("row inserted", "pattern", p.Name(), "id", uint64(id))
	_, _ = fmt.Fprintf(out, "inserted row %d\n", id)
	return nil
}

// evalGet handles: get <pattern> <id>
func (s *session) evalGet(args []string, out io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: get <pattern> <id>")
	}
	p, ok := s.patterns[args[0]]
	if !ok {
		return fmt.Errorf("unknown pattern %q", args[0])
	}
	id, err := parseRowID(args[1])
	if err != nil {
		return err
	}

	row, ok := s.tables[p.Name()].Lookup(id)
	if !ok {
		_, _ = fmt.Fprintln(out, "(absent)")
		return nil
	}
	return render.WriteRow(out, row, s.format)
}

// evalSet handles: set <pattern> <id> <field=value> ...
func (s *session) evalSet(args []string, out io.Writer) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: set <pattern> <id> <field=value> ...")
	}
	p, ok := s.patterns[args[0]]
	if !ok {
		return fmt.Errorf("unknown pattern %q", args[0])
	}
	id, err := parseRowID(args[1])
	if err != nil {
		return err
	}

	b := record.NewUpdate(p)
	for _, kv := range args[2:] {
		name, raw, err := s.parseAssignment(p, kv)
		if err != nil {
			return err
		}
		b.Set(name, raw)
	}
	u, err := b.Build()
	if err != nil {
		return err
	}

	next, err := s.tables[p.Name()].Update(id, u)
	if err != nil {
		return err
	}
	s.tables[p.Name()] = next
	_, _ = fmt.Fprintf(out, "updated row %d\n", id)
	return nil
}

// evalUnset handles: unset <pattern> <id> <field> ...
func (s *session) evalUnset(args []string, out io.Writer) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: unset <pattern> <id> <field> ...")
	}
	p, ok := s.patterns[args[0]]
	if !ok {
		return fmt.Errorf("unknown pattern %q", args[0])
	}
	id, err := parseRowID(args[1])
	if err != nil {
		return err
	}

	b := record.NewUpdate(p)
	for _, name := range args[2:] {
		b.Unset(name)
	}
	u, err := b.Build()
	if err != nil {
		return err
	}

	next, err := s.tables[p.Name()].Update(id, u)
	if err != nil {
		return err
	}
	s.tables[p.Name()] = next
	_, _ = fmt.Fprintf(out, "updated row %d\n", id)
	return nil
}

// evalShow handles: show <pattern>
func (s *session) evalShow(args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: show <pattern>")
	}
	p, ok := s.patterns[args[0]]
	if !ok {
		return fmt.Errorf("unknown pattern %q", args[0])
	}
	return render.WriteTable(out, s.tables[p.Name()], s.format)
}

// parseAssignment splits "field=value" and parses the value with the
// field's declared type.
func (s *session) parseAssignment(p *record.Pattern, kv string) (string, any, error) {
	name, raw, ok := strings.Cut(kv, "=")
	if !ok {
		return "", nil, fmt.Errorf("bad assignment %q: want <field=value>", kv)
	}
	f, ok := p.Field(name)
	if !ok {
		return "", nil, fmt.Errorf("pattern %q has no field %q", p.Name(), name)
	}
	v, err := f.Type().Parse(raw)
	if err != nil {
		return "", nil, fmt.Errorf("field %q: %w", name, err)
	}
	return name, v, nil
}

func parseRowID(s string) (record.RowID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad row id %q", s)
	}
	return record.RowID(n), nil
}
