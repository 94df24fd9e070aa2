package runner

import "github.com/nmtools/nmrec/pkg/stream"

// FileOutcome is the result of checking one control-stream file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Stream is the parsed stream. Nil if the file could not be read.
	Stream *stream.Stream

	// Diagnostics contains the file's parse failures, in record order.
	Diagnostics []stream.Diagnostic

	// Error is set if the file could not be processed at all.
	Error error
}

// HasIssues returns true if the file produced any diagnostics.
func (fo *FileOutcome) HasIssues() bool {
	return len(fo.Diagnostics) > 0
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesChecked is the number of files successfully read and split.
	FilesChecked int

	// FilesErrored is the number of files that could not be processed.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one diagnostic.
	FilesWithIssues int

	// RecordsTotal is the number of records seen across all files.
	RecordsTotal int

	// RecordsParsed is the number of records parsed into trees.
	RecordsParsed int

	// DiagnosticsTotal is the total number of diagnostics across all files.
	DiagnosticsTotal int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file,
	// ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesChecked++
	if outcome.Stream != nil {
		r.Stats.RecordsTotal += len(outcome.Stream.Records)
		for i := range outcome.Stream.Records {
			if outcome.Stream.Records[i].Parsed() {
				r.Stats.RecordsParsed++
			}
		}
	}
	if len(outcome.Diagnostics) > 0 {
		r.Stats.FilesWithIssues++
		r.Stats.DiagnosticsTotal += len(outcome.Diagnostics)
	}
}
