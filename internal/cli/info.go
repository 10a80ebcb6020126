package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// InfoResult holds store statistics for JSON output.
type InfoResult struct {
	Database      string         `json:"database"`
	SchemaVersion int            `json:"schema_version"`
	Collections   map[string]int `json:"collections"`
	Preferences   int            `json:"preferences"`
}

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "info",
		Short:         "Show record counts per collection",
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(rootOpts, cmd)
		},
	}

	return cmd
}

func runInfo(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	cfg, err := opts.loadConfig()
	if err != nil {
		_ = formatter.Error("COMMAND_ERROR", err.Error(), nil)
		return WrapExitError(ExitCommandError, "load config", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		_ = formatter.Error("STORAGE_UNAVAILABLE", err.Error(), nil)
		return WrapExitError(ExitCommandError, "open store", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	version, err := st.SchemaVersion(ctx)
	if err != nil {
		_ = formatter.Error("STORAGE_UNAVAILABLE", err.Error(), nil)
		return WrapExitError(ExitFailure, "read schema version", err)
	}
	counts := make(map[string]int, len(st.Collections()))
	for _, name := range st.Collections() {
		n, err := st.Count(ctx, name)
		if err != nil {
			_ = formatter.Error("STORAGE_UNAVAILABLE", err.Error(), nil)
			return WrapExitError(ExitFailure, "count "+name, err)
		}
		counts[name] = n
	}
	prefs, err := st.PrefAll(ctx)
	if err != nil {
		_ = formatter.Error("STORAGE_UNAVAILABLE", err.Error(), nil)
		return WrapExitError(ExitFailure, "read preferences", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(InfoResult{
			Database:      cfg.DatabasePath,
			SchemaVersion: version,
			Collections:   counts,
			Preferences:   len(prefs),
		})
	}

	fmt.Fprintf(formatter.Writer, "Database: %s (schema v%d)\n\n", cfg.DatabasePath, version)
	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	for _, name := range st.Collections() {
		fmt.Fprintf(tw, "%s\t%d\n", name, counts[name])
	}
	fmt.Fprintf(tw, "preferences\t%d\n", len(prefs))
	return tw.Flush()
}
