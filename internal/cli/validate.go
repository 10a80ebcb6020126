package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/hearth/internal/backup"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	File    string `json:"file"`
	Version string `json:"version,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <snapshot.json>",
		Short: "Validate a snapshot file without importing it",
		Long: `Check a snapshot file against the snapshot schema: format version,
data section shape, record ids, and the preference map. Nothing is
written; the store is not even opened.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateSnapshot(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidateSnapshot(opts *RootOptions, file string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	cfg, err := opts.loadConfig()
	if err != nil {
		_ = formatter.Error("COMMAND_ERROR", err.Error(), nil)
		return WrapExitError(ExitCommandError, "load config", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		_ = formatter.Error("COMMAND_ERROR", err.Error(), nil)
		return WrapExitError(ExitCommandError, "read snapshot", err)
	}

	snap, err := backup.Validate(file, data, cfg.MaxImportBytes)
	if err != nil {
		if formatter.Format == "json" {
			_ = formatter.Success(ValidationResult{Valid: false, File: file, Error: err.Error()})
		} else {
			fmt.Fprintf(formatter.Writer, "✗ %s is not a valid snapshot\n  %v\n", file, err)
		}
		return WrapExitError(ExitFailure, "snapshot invalid", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, File: file, Version: snap.Version})
	}
	fmt.Fprintf(formatter.Writer, "✓ %s is a valid snapshot (format %s)\n", file, snap.Version)
	return nil
}
