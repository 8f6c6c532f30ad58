// Package config loads tabula's CLI configuration by layering, from
// lowest to highest precedence: built-in defaults, a tabula.yaml config
// file, TABULA_* environment variables, and command-line flags.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Default configuration values.
const (
	DefaultPatternsFile = "patterns.yaml"
	DefaultHistoryFile  = ".tabula_history"
	DefaultOutput       = "table"
)

// Config holds all CLI configuration options.
type Config struct {
	// PatternsFile is the YAML pattern declaration file.
	PatternsFile string `koanf:"patterns_file"`
	// HistoryFile stores REPL line history.
	HistoryFile string `koanf:"history_file"`
	// Output selects the rendering format: table, markdown, or json.
	Output string `koanf:"output"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`

	// fileUsed records which config file was loaded, if any.
	fileUsed string
}

// FileUsed returns the path of the config file that was loaded, or ""
// when only defaults, environment, and flags applied.
func (c *Config) FileUsed() string { return c.fileUsed }

// Logger builds the CLI logger implied by the config: debug level when
// verbose, info otherwise, text format on stderr.
func (c *Config) Logger() *slog.Logger {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// ctxKey stores the loaded config in a command context.
type ctxKey struct{}

// WithContext returns ctx carrying cfg.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config carried by ctx, or a default config
// when none was stored.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	return &Config{
		PatternsFile: DefaultPatternsFile,
		HistoryFile:  DefaultHistoryFile,
		Output:       DefaultOutput,
	}
}

// findConfigFile finds the config file to use.
// Priority: explicit path > tabula.yaml > tabula.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"tabula.yaml", "tabula.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load assembles the configuration. cfgFile is the --config value
// (may be empty); flags carries the root command's persistent flags and
// may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"patterns_file": DefaultPatternsFile,
		"history_file":  DefaultHistoryFile,
		"output":        DefaultOutput,
		"verbose":       false,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	path := findConfigFile(cfgFile)
	if path != "" {
		if err := k.Load(file.Provider(path), kyaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	} else if cfgFile != "" {
		return nil, fmt.Errorf("config file not found: %s", cfgFile)
	}

	// TABULA_PATTERNS_FILE=... overrides the file layer.
	envProvider := env.Provider("TABULA_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "TABULA_"))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if flags != nil {
		// Flag names use dashes; config keys use underscores.
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.fileUsed = path
	return &cfg, nil
}
