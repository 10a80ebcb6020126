package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/hearth/internal/backup"
)

// ImportResult holds import results for JSON output.
type ImportResult struct {
	File       string `json:"file"`
	Phase      string `json:"phase"`
	RolledBack bool   `json:"rolled_back,omitempty"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <snapshot.json>",
		Short: "Replace the full store from a snapshot file",
		Long: `Validate a snapshot file and import it, replacing every collection and
every preference. The current state is captured before the first
destructive write; if applying fails partway, the capture is restored
automatically.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runImport(opts *RootOptions, file string, cmd *cobra.Command) error {
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

	st, err := openStore(cfg)
	if err != nil {
		_ = formatter.Error("STORAGE_UNAVAILABLE", err.Error(), nil)
		return WrapExitError(ExitCommandError, "open store", err)
	}
	defer st.Close()

	opts.Logger.Debug("importing", "file", file, "database", cfg.DatabasePath)

	svc := backup.NewService(st, backup.WithMaxImportBytes(cfg.MaxImportBytes))
	err = svc.Import(cmd.Context(), file, data)
	if err == nil {
		if formatter.Format == "json" {
			return formatter.Success(ImportResult{File: file, Phase: string(svc.Phase())})
		}
		fmt.Fprintf(formatter.Writer, "✓ Imported %s\n", file)
		return nil
	}

	if backup.IsValidationError(err) {
		_ = formatter.Error("VALIDATION_ERROR", err.Error(), nil)
		return WrapExitError(ExitFailure, "snapshot rejected", err)
	}

	// Partial apply: restore the safety capture before reporting.
	rolledBack := false
	if backup.IsImportFailed(err) {
		opts.Logger.Debug("apply failed, rolling back to safety capture", "error", err.Error())
		if rbErr := svc.Rollback(cmd.Context()); rbErr != nil {
			_ = formatter.Error("IMPORT_FAILED", fmt.Sprintf("%v; rollback also failed: %v", err, rbErr), nil)
			return WrapExitError(ExitFailure, "import failed and rollback failed", rbErr)
		}
		rolledBack = true
	}

	_ = formatter.Error("IMPORT_FAILED", err.Error(), map[string]bool{"rolled_back": rolledBack})
	return WrapExitError(ExitFailure, "import failed", err)
}
