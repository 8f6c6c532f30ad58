package commands

import (
	"encoding/json"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/tabula/internal/cli/config"
	"github.com/leapstack-labs/tabula/internal/patternfile"
	"github.com/leapstack-labs/tabula/internal/render"
	"github.com/leapstack-labs/tabula/pkg/record"
	"github.com/spf13/cobra"
)

// NewPatternsCommand creates the patterns command.
func NewPatternsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List the patterns declared in the patterns file",
		Example: `  # List declared patterns
  tabula patterns

  # As JSON
  tabula patterns -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())
			format, err := render.ParseFormat(cfg.Output)
			if err != nil {
				return err
			}

			f, err := patternfile.Load(cfg.PatternsFile)
			if err != nil {
				return err
			}

			if format == render.FormatJSON {
				return patternsJSON(cmd, f)
			}
			return patternsTable(cmd, f, format)
		},
	}
}

func patternsTable(cmd *cobra.Command, f *patternfile.File, format render.Format) error {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"pattern", "field", "type", "nullability"})

	for _, p := range f.Patterns() {
		for i, field := range p.Fields() {
			name := ""
			if i == 0 {
				name = p.Name()
			}
			t.AppendRow(table.Row{name, field.Name(), field.Type().String(), field.Nullability().String()})
		}
		t.AppendSeparator()
	}

	if format == render.FormatMarkdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	return nil
}

func patternsJSON(cmd *cobra.Command, f *patternfile.File) error {
	type fieldOut struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		Nullable bool   `json:"nullable"`
	}
	type patternOut struct {
		Name   string     `json:"name"`
		Fields []fieldOut `json:"fields"`
	}

	out := make([]patternOut, 0, len(f.Names()))
	for _, p := range f.Patterns() {
		po := patternOut{Name: p.Name()}
		for _, field := range p.Fields() {
			po.Fields = append(po.Fields, fieldOut{
				Name:     field.Name(),
				Type:     field.Type().String(),
				Nullable: field.Nullability() == record.Nullable,
			})
		}
		out = append(out, po)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
