package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/hearth/internal/seed"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate empty collections with starting data",
		Long: `Insert the illustrative starting records into every collection that is
currently empty. Collections that already hold data are left alone, and
the seed records use fixed ids, so running this repeatedly never
duplicates anything.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(rootOpts, cmd)
		},
	}

	return cmd
}

func runSeed(opts *RootOptions, cmd *cobra.Command) error {
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

	if err := seed.New(st).Run(cmd.Context()); err != nil {
		_ = formatter.Error("SEED_FAILED", err.Error(), nil)
		return WrapExitError(ExitFailure, "seed", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(map[string]string{"database": cfg.DatabasePath})
	}
	fmt.Fprintf(formatter.Writer, "✓ Seeded %s\n", cfg.DatabasePath)
	return nil
}
