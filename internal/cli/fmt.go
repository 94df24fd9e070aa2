package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nmtools/nmrec/internal/logging"
	"github.com/nmtools/nmrec/pkg/config"
	"github.com/nmtools/nmrec/pkg/fsutil"
	"github.com/nmtools/nmrec/pkg/runner"
	"github.com/nmtools/nmrec/pkg/stream"
)

// ErrDiffFound is returned when verify mode detects files that would change.
var ErrDiffFound = errors.New("files would change")

type fmtFlags struct {
	write     bool
	verify    bool
	canonical bool
	noBackups bool
}

func newFmtCommand() *cobra.Command {
	var cfg config.Config
	flags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Round-trip control stream files",
		Long:  fmtLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write result to source files instead of stdout")
	cmd.Flags().BoolVar(&flags.verify, "verify", false, "exit non-zero if any file would change")
	cmd.Flags().BoolVar(&flags.canonical, "canonical", false, "normalize parsed records to canonical form")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when writing")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&cfg.Extensions, "ext", nil, "file extensions to scan (default .mod,.ctl)")
	cmd.Flags().StringSliceVar(&cfg.Ignore, "ignore", nil, "glob patterns for files to skip")

	return cmd
}

const fmtLongDescription = `Round-trip NONMEM control stream files through the record parser.

Without flags, fmt prints each file's rendered output to stdout. Unmodified
records are reproduced byte-for-byte, so plain fmt acts as a round-trip
fidelity check when combined with --verify.

With --canonical, every parsed option is rewritten in canonical form: full
keyword names, KEY=value separators, single spaces between options. Unknown
or malformed records are never touched.

Examples:
  nmrec fmt run001.mod              # Print round-tripped file
  nmrec fmt --verify models/        # Fail if rendering would change a file
  nmrec fmt --canonical -w models/  # Normalize records in place`

func runFmt(cmd *cobra.Command, args []string, cfg *config.Config, flags *fmtFlags) error {
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

	files, err := runner.Discover(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("discover files"), err)
	}

	logger.Debug("formatting",
		logging.FieldFiles, len(files),
		logging.FieldWrite, flags.write,
		logging.FieldVerify, flags.verify,
	)

	backups := finalCfg.Backups.Enabled && !flags.noBackups

	var changed int
	for _, path := range files {
		didChange, err := fmtFile(ctx, cmd, path, runOpts, flags, backups)
		if err != nil {
			return err
		}
		if didChange {
			changed++
			logger.Debug("file changed", logging.FieldPath, path)
		}
	}

	if flags.verify && changed > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d files would change\n", changed)
		return ErrDiffFound
	}

	return nil
}

// fmtFile renders one file and reports whether the output differs from the
// input. Output goes to stdout unless -w is set.
func fmtFile(ctx context.Context, cmd *cobra.Command, path string, opts runner.Options, flags *fmtFlags, backups bool) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	s := stream.ParseWith(opts.Registry, path, content)

	if flags.canonical {
		markCanonical(s)
	}

	rendered, err := s.Render()
	if err != nil {
		return false, fmt.Errorf("render %s: %w", path, err)
	}

	changed := !bytes.Equal(content, rendered)

	switch {
	case flags.verify && !flags.write:
		// Comparison only; no output.
	case flags.write:
		if changed {
			if backups {
				if _, err := fsutil.CreateBackup(ctx, path); err != nil {
					return false, fmt.Errorf("backup %s: %w", path, err)
				}
			}
			if err := fsutil.WriteAtomic(ctx, path, rendered, fsutil.DefaultFileMode); err != nil {
				return false, fmt.Errorf("write %s: %w", path, err)
			}
		}
	default:
		if _, err := cmd.OutOrStdout().Write(rendered); err != nil {
			return false, fmt.Errorf("write output: %w", err)
		}
	}

	return changed, nil
}

// markCanonical marks every option of every parsed record dirty so the
// renderer synthesizes canonical text for the whole record.
func markCanonical(s *stream.Stream) {
	for i := range s.Records {
		tree := s.Records[i].Tree
		if tree == nil {
			continue
		}
		for j := 0; j < tree.Len(); j++ {
			tree.Node(j).MarkDirty()
		}
	}
}
