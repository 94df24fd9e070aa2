package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nmtools/nmrec/internal/logging"
	"github.com/nmtools/nmrec/pkg/config"
	"github.com/nmtools/nmrec/pkg/reporter"
	"github.com/nmtools/nmrec/pkg/runner"
)

// ErrProblemsFound is returned when parse problems are found.
var ErrProblemsFound = errors.New("parse problems found")

// ErrConfigLoad is returned when the configuration file cannot be loaded.
var ErrConfigLoad = errors.New("failed to load configuration")

type checkFlags struct {
	format    string
	noContext bool
	compact   bool
}

func newCheckCommand() *cobra.Command {
	var cfg config.Config
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check control stream files for record problems",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&cfg.Extensions, "ext", nil, "file extensions to scan (default .mod,.ctl)")
	cmd.Flags().StringSliceVar(&cfg.Ignore, "ignore", nil, "glob patterns for files to skip")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")

	return cmd
}

const checkLongDescription = `Check NONMEM control stream files for malformed records.

By default, checks all .mod and .ctl files in the current directory and
subdirectories. Specify paths to check specific files or directories.
Unknown record types are reported only in debug logging; they are never
an error.

Examples:
  nmrec check                    # Check current directory
  nmrec check models/            # Check models directory
  nmrec check run001.mod         # Check single file
  nmrec check --format json      # Output as JSON for CI`

func runCheck(cmd *cobra.Command, args []string, cfg *config.Config, flags *checkFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	finalCfg, workDir, err := loadConfig(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	runOpts := runner.Options{
		Paths:      args,
		WorkingDir: workDir,
		Extensions: finalCfg.Extensions,
		Ignore:     finalCfg.Ignore,
		Jobs:       finalCfg.Jobs,
		Registry:   buildRegistry(finalCfg),
	}

	logger.Debug("starting check run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("check run failed"), err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return errors.Join(ErrUsage, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		Compact:     flags.compact,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrProblemsFound
	}

	return nil
}

// loadConfig resolves the final configuration, overlaying CLI flags onto the
// discovered config file. The returned working directory anchors both config
// discovery and path resolution.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := config.Load(ctx, config.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
	})
	if err != nil {
		return nil, "", errors.Join(ErrConfigLoad, err)
	}

	finalCfg := loadResult.Config
	if loadResult.LoadedFrom != "" {
		logger.Debug("loaded configuration", logging.FieldPath, loadResult.LoadedFrom)
	}

	// CLI flags override file settings.
	if len(cliCfg.Extensions) > 0 {
		finalCfg.Extensions = cliCfg.Extensions
	}
	if len(cliCfg.Ignore) > 0 {
		finalCfg.Ignore = cliCfg.Ignore
	}
	if cliCfg.Jobs != 0 {
		finalCfg.Jobs = cliCfg.Jobs
	}

	return finalCfg, workDir, nil
}
