package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nmtools/nmrec/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "4 errors in 2 files (12 files checked)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.DiagnosticsTotal == 0 && stats.FilesErrored == 0 {
		return s.Success.Render("No problems found") +
			s.Dim.Render(fmt.Sprintf(" (%d files, %d records checked)", stats.FilesChecked, stats.RecordsTotal)) + "\n"
	}

	var parts []string

	errorWord := "errors"
	if stats.DiagnosticsTotal == 1 {
		errorWord = "error"
	}
	parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s", stats.DiagnosticsTotal, errorWord)))

	fileWord := wordFiles
	if stats.FilesWithIssues == 1 {
		fileWord = wordFile
	}
	parts = append(parts, fmt.Sprintf("in %d %s", stats.FilesWithIssues, fileWord))

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d unreadable", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") +
		s.Dim.Render(fmt.Sprintf(" (%d files checked)", stats.FilesChecked)) + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesChecked)) + "\n")

	if stats.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues: " +
			s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)) + "\n")
	}

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files errored:     " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Records found:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.RecordsTotal)) + "\n")
	builder.WriteString("  Records parsed:    " +
		s.SummaryValue.Render(strconv.Itoa(stats.RecordsParsed)) + "\n")
	builder.WriteString("  Parse errors:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)) + "\n")

	if stats.DiagnosticsTotal == 0 && stats.FilesErrored == 0 {
		builder.WriteString("\n  " + s.Success.Render("All records round-trip cleanly") + "\n")
	}

	return builder.String()
}
