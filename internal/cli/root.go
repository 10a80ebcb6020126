// Package cli implements the hearth command line interface: store
// inspection, seeding, and the snapshot export/import workflow.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/hearth/internal/config"
	"github.com/roach88/hearth/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	DBPath     string

	// Logger is built in PersistentPreRunE: JSON to stderr, debug level
	// when --verbose. Diagnostics never mix into command output.
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the hearth CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "hearth",
		Short: "Hearth - household coordination store",
		Long:  "Manage a Hearth household store: inspect collections, seed starting data, and export or import full-state snapshots.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			level := slog.LevelWarn
			if opts.Verbose {
				level = slog.LevelDebug
			}
			opts.Logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.hearth/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "database file (overrides config)")

	// Add subcommands
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewInfoCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// loadConfig resolves the effective configuration: file (or defaults),
// then flag overrides.
func (opts *RootOptions) loadConfig() (config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = config.DefaultPath(home)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if opts.DBPath != "" {
		cfg.DatabasePath = opts.DBPath
	}
	if opts.Verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// openStore opens the configured database.
func openStore(cfg config.Config) (*store.Store, error) {
	return store.Open(cfg.DatabasePath)
}

// newFormatter builds the formatter for a command invocation.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}
}
