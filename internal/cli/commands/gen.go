package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/leapstack-labs/tabula/internal/cli/config"
	"github.com/leapstack-labs/tabula/internal/codegen"
	"github.com/leapstack-labs/tabula/internal/patternfile"
	"github.com/spf13/cobra"
)

// NewGenCommand creates the gen command.
func NewGenCommand() *cobra.Command {
	var (
		patternName string
		packageName string
		outPath     string
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate typed Go bindings for a pattern",
		Long: `Generate Go source with typed Row, Update, and Table shapes for one
pattern from the patterns file. The generated types delegate to the
generic engine, so their behavior always matches the untyped API.`,
		Example: `  # Print bindings for the person pattern
  tabula gen --pattern person

  # Write them into a package
  tabula gen --pattern person --package people --out internal/people/person_gen.go`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())

			f, err := patternfile.Load(cfg.PatternsFile)
			if err != nil {
				return err
			}
			p, ok := f.Pattern(patternName)
			if !ok {
				return fmt.Errorf("pattern %q not found in %s (have: %s)",
					patternName, cfg.PatternsFile, strings.Join(f.Names(), ", "))
			}

			if packageName == "" {
				packageName = packageFromPattern(patternName)
			}
			src, err := codegen.Generate(codegen.Options{
				Package: packageName,
				Pattern: p,
			})
			if err != nil {
				return err
			}

			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(src)
				return err
			}
			if err := os.WriteFile(outPath, src, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&patternName, "pattern", "", "Pattern to generate bindings for (required)")
	cmd.Flags().StringVar(&packageName, "package", "", "Target package name (default: derived from the pattern name)")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (default: stdout)")
	_ = cmd.MarkFlagRequired("pattern")

	return cmd
}

// packageFromPattern derives a plain package name from a pattern name,
// e.g. "user_account" becomes "useraccount".
func packageFromPattern(name string) string {
	clean := strings.NewReplacer("_", "", "-", "", ".", "", " ", "").Replace(name)
	return strings.ToLower(clean)
}
