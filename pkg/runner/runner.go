package runner

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/nmtools/nmrec/pkg/grammar"
	"github.com/nmtools/nmrec/pkg/stream"
)

// Run discovers files under opts.Paths and checks them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate
// stats. Parsing itself has no shared mutable state, so workers only share
// the read-only registry.
func Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	reg := opts.effectiveRegistry()

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for i := 0; i < jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, workCh, outCh, reg)
		}()
	}

	// Feed work in a separate goroutine.
	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	// Close outCh when all workers are done.
	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers complete out of order; index by path and rebuild in
	// discovery order for deterministic output.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

func worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, reg *grammar.Registry) {
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-workCh:
			if !ok {
				return
			}

			outcome := checkFile(reg, path)

			select {
			case <-ctx.Done():
				return
			case outCh <- outcome:
			}
		}
	}
}

// CheckFile reads and parses a single control-stream file.
func CheckFile(reg *grammar.Registry, path string) FileOutcome {
	return checkFile(reg, path)
}

func checkFile(reg *grammar.Registry, path string) FileOutcome {
	content, err := os.ReadFile(path)
	if err != nil {
		return FileOutcome{Path: path, Error: fmt.Errorf("read %s: %w", path, err)}
	}

	s := stream.ParseWith(reg, path, content)
	return FileOutcome{
		Path:        path,
		Stream:      s,
		Diagnostics: s.Diagnostics(),
	}
}
