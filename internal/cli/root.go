// Package cli provides the Cobra command structure for nmrec.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/nmtools/nmrec/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root nmrec command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "nmrec",
		Short: "A round-trip safe NONMEM control stream record tool",
		Long: `nmrec parses NONMEM control stream records into position-tracked trees,
reports malformed options with precise locations, and rewrites files while
preserving the original bytes of everything it did not change.

Record keywords may be abbreviated down to their documented minimum prefix,
and unknown record types pass through untouched.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			// Seed the context logger, keeping one a caller attached
			// via ExecuteContext.
			ctx := cmd.Context()
			cmd.SetContext(logging.WithLogger(ctx, logging.FromContext(ctx)))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Join(ErrUsage, err)
	})

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newFmtCommand())
	rootCmd.AddCommand(newRecordsCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
