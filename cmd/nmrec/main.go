// Package main is the entry point for the nmrec CLI.
package main

import (
	"os"

	"github.com/nmtools/nmrec/internal/cli"
	"github.com/nmtools/nmrec/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		code := cli.ExitCodeForError(err)
		switch code {
		case cli.ExitParseErrors, cli.ExitDiffFound:
			// Signal for exit code only; already reported.
		default:
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return code
	}

	return cli.ExitSuccess
}
