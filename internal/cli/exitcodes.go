package cli

import (
	"errors"
	"io/fs"

	"github.com/nmtools/nmrec/pkg/runner"
)

// Exit codes for nmrec.
const (
	// ExitSuccess indicates successful execution with no problems.
	ExitSuccess = 0

	// ExitParseErrors indicates the run completed but found parse problems.
	ExitParseErrors = 1

	// ExitDiffFound indicates verify mode detected files that would change.
	ExitDiffFound = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrUsage marks command-line usage errors such as unknown flags or an
// unrecognized output format.
var ErrUsage = errors.New("invalid usage")

// ExitCodeFromResult determines the exit code based on the run result.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasIssues() {
		return ExitParseErrors
	}

	return ExitSuccess
}

// ExitCodeForError maps a command error to its process exit code.
func ExitCodeForError(err error) int {
	var pathErr *fs.PathError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrProblemsFound):
		return ExitParseErrors
	case errors.Is(err, ErrDiffFound):
		return ExitDiffFound
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfigLoad):
		return ExitConfigError
	case errors.As(err, &pathErr):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
