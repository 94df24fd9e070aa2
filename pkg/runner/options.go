// Package runner provides multi-file check orchestration: discovery of
// control-stream files and concurrent parsing with deterministic results.
package runner

import "github.com/nmtools/nmrec/pkg/grammar"

// Options controls multi-file processing behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to
	// process. If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading
	// dot) considered control streams. Defaults to DefaultExtensions().
	Extensions []string

	// Ignore contains glob patterns for files skipped during directory
	// walking, matched against paths relative to WorkingDir. Patterns
	// support "**" for recursive matching ("archive/**", "**/scratch").
	// Files named directly on the command line are never ignored.
	Ignore []string

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Registry is the record grammar registry to parse with.
	// Nil means the built-in registry.
	Registry *grammar.Registry
}

// DefaultExtensions returns the default set of control-stream file
// extensions.
func DefaultExtensions() []string {
	return []string{".mod", ".ctl"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveRegistry() *grammar.Registry {
	if o.Registry == nil {
		return grammar.Default()
	}
	return o.Registry
}
