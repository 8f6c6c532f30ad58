package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/tabula/internal/cli/config"
	"github.com/leapstack-labs/tabula/internal/patternfile"
	"github.com/leapstack-labs/tabula/internal/render"
	"github.com/spf13/cobra"
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive record session",
		Long: `Start an interactive session against in-memory tables.

Patterns from the patterns file are preloaded with empty tables; more
can be declared inline. Everything lives in memory and is gone when the
session ends.`,
		Example: `  # Start with the default patterns file
  tabula repl

  # Start with another declaration file and JSON output
  tabula repl --patterns-file schemas.yaml -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRepl(cmd)
		},
	}
}

func runRepl(cmd *cobra.Command) error {
	cfg := config.FromContext(cmd.Context())
	logger := cfg.Logger()

	format, err := render.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}
	sess := newSession(format, logger)

	// A missing patterns file just means an empty session.
	if f, err := patternfile.Load(cfg.PatternsFile); err == nil {
		sess.loadPatterns(f)
		logger.Debug("patterns loaded", "path", cfg.PatternsFile, "count", len(f.Names()))
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "tabula> ",
		HistoryFile:     cfg.HistoryFile,
		AutoComplete:    newStatementCompleter(sess),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Tabula REPL (patterns: %s)\n", cfg.PatternsFile)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(cmd, line); quit {
				break
			}
			continue
		}

		if err := sess.eval(line, cmd.OutOrStdout()); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}

	return nil
}

// handleDotCommand runs a dot-command; true means quit.
func handleDotCommand(cmd *cobra.Command, line string) bool {
	switch strings.ToLower(strings.Fields(line)[0]) {
	case ".quit", ".exit":
		return true

	case ".help":
		printReplHelp(cmd.OutOrStdout())

	case ".clear":
		fmt.Print("\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", line)
	}
	return false
}

func printReplHelp(w io.Writer) {
	help := `
Statements:
  pattern <name> <field:type> ...   Declare a pattern ("?" before the type marks nullable,
                                    e.g. address:?string)
  patterns                          List declared patterns
  insert <pattern> <field=value>... Insert a row, printing its id
  get <pattern> <id>                Look up one row
  set <pattern> <id> <field=value>. Set fields of a row
  unset <pattern> <id> <field>...   Clear nullable fields of a row
  show <pattern>                    Render the whole table

Commands:
  .help           Show this help message
  .clear          Clear the screen
  .quit / .exit   Exit the REPL

Types: string, int, float, bool, time, bytes
`
	_, _ = fmt.Fprintln(w, help)
}

// newStatementCompleter creates a readline completer for statement
// verbs and known pattern names.
func newStatementCompleter(sess *session) *readline.PrefixCompleter {
	patternItems := func() []readline.PrefixCompleterInterface {
		var items []readline.PrefixCompleterInterface
		for name := range sess.patterns {
			items = append(items, readline.PcItem(name))
		}
		return items
	}

	return readline.NewPrefixCompleter(
		readline.PcItem("pattern"),
		readline.PcItem("patterns"),
		readline.PcItem("insert", patternItems()...),
		readline.PcItem("get", patternItems()...),
		readline.PcItem("set", patternItems()...),
		readline.PcItem("unset", patternItems()...),
		readline.PcItem("show", patternItems()...),
		readline.PcItem(".help"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
