package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/hearth/internal/backup"
)

// ExportResult holds export results for JSON output.
type ExportResult struct {
	Path        string `json:"path"`
	Collections int    `json:"collections"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full store into a snapshot file",
		Long: `Export every collection and every preference into one versioned,
timestamped JSON snapshot. The file is written into the backup directory
under a hearth_export_<timestamp>.json name.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, outDir, cmd)
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default from config)")

	return cmd
}

func runExport(opts *RootOptions, outDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	cfg, err := opts.loadConfig()
	if err != nil {
		_ = formatter.Error("COMMAND_ERROR", err.Error(), nil)
		return WrapExitError(ExitCommandError, "load config", err)
	}
	if outDir == "" {
		outDir = cfg.BackupDir
	}

	st, err := openStore(cfg)
	if err != nil {
		_ = formatter.Error("STORAGE_UNAVAILABLE", err.Error(), nil)
		return WrapExitError(ExitCommandError, "open store", err)
	}
	defer st.Close()

	opts.Logger.Debug("exporting", "database", cfg.DatabasePath, "dir", outDir)

	svc := backup.NewService(st, backup.WithMaxImportBytes(cfg.MaxImportBytes))
	path, err := svc.WriteFile(cmd.Context(), outDir)
	if err != nil {
		_ = formatter.Error("EXPORT_FAILED", err.Error(), nil)
		return WrapExitError(ExitFailure, "export", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(ExportResult{Path: path, Collections: len(st.Collections())})
	}
	fmt.Fprintf(formatter.Writer, "✓ Exported to %s\n", path)
	return nil
}
