package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/nmtools/nmrec/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Records     int              `json:"records"`
	Parsed      int              `json:"parsed"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic represents a single parse problem.
type JSONDiagnostic struct {
	Record      string `json:"record"`
	Kind        string `json:"kind"`
	Message     string `json:"message"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesErrored    int `json:"filesErrored"`
	RecordsTotal    int `json:"recordsTotal"`
	RecordsParsed   int `json:"recordsParsed"`
	TotalProblems   int `json:"totalProblems"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildJSONOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalProblems, nil
}

func buildJSONOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	if len(result.Files) > 0 {
		output.Files = make([]JSONFileResult, 0, len(result.Files))
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:        file.Path,
			Diagnostics: make([]JSONDiagnostic, 0, len(file.Diagnostics)),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		if file.Stream != nil {
			fileResult.Records = len(file.Stream.Records)
			for _, rec := range file.Stream.Records {
				if rec.Parsed() {
					fileResult.Parsed++
				}
			}
		}

		for _, diag := range file.Diagnostics {
			fileResult.Diagnostics = append(fileResult.Diagnostics, JSONDiagnostic{
				Record:      diag.Record,
				Kind:        diag.Kind,
				Message:     diag.Message,
				StartLine:   diag.StartLine,
				StartColumn: diag.StartColumn,
				EndLine:     diag.EndLine,
				EndColumn:   diag.EndColumn,
			})
		}

		output.Files = append(output.Files, fileResult)
	}

	output.Summary = JSONSummary{
		FilesChecked:    result.Stats.FilesChecked,
		FilesWithIssues: result.Stats.FilesWithIssues,
		FilesErrored:    result.Stats.FilesErrored,
		RecordsTotal:    result.Stats.RecordsTotal,
		RecordsParsed:   result.Stats.RecordsParsed,
		TotalProblems:   result.Stats.DiagnosticsTotal,
	}

	return output
}
