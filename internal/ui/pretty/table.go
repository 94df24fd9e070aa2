package pretty

import (
	"fmt"
	"strings"

	"github.com/nmtools/nmrec/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 4 // FILE, LOC, MESSAGE, RECORD
	minFileWidth     = 20
	minLocWidth      = 10
	minMessageWidth  = 35
	minRecordWidth   = 8
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableRow represents a single row in the diagnostic table.
type TableRow struct {
	File     string
	Location string
	Message  string
	Record   string
}

// TableFormatter formats diagnostics as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// FormatTable formats runner results as a styled table.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	fileGroups := t.collectRows(result)
	if len(fileGroups) == 0 {
		return ""
	}

	colWidths := t.calculateColumnWidths(fileGroups)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(colWidths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(colWidths, heavySeparator))
	builder.WriteString("\n")

	isFirstGroup := true
	for _, group := range fileGroups {
		if !isFirstGroup {
			builder.WriteString(t.formatSeparator(colWidths, lightSeparator))
			builder.WriteString("\n")
		}
		isFirstGroup = false

		for _, row := range group {
			builder.WriteString(t.formatRow(row, colWidths))
			builder.WriteString("\n")
		}
	}

	builder.WriteString(t.formatSeparator(colWidths, heavySeparator))
	builder.WriteString("\n")

	return builder.String()
}

// collectRows collects diagnostic rows grouped by file.
func (t *TableFormatter) collectRows(result *runner.Result) [][]TableRow {
	var groups [][]TableRow

	for _, file := range result.Files {
		if len(file.Diagnostics) == 0 {
			continue
		}

		rows := make([]TableRow, 0, len(file.Diagnostics))
		for _, diag := range file.Diagnostics {
			rows = append(rows, TableRow{
				File:     file.Path,
				Location: fmt.Sprintf("%d:%d", diag.StartLine, diag.StartColumn),
				Message:  diag.Message,
				Record:   "$" + diag.Record,
			})
		}

		groups = append(groups, rows)
	}

	return groups
}

type columnWidths struct {
	file    int
	loc     int
	message int
	record  int
}

// calculateColumnWidths determines column widths based on content.
func (t *TableFormatter) calculateColumnWidths(groups [][]TableRow) columnWidths {
	widths := columnWidths{
		file:    minFileWidth,
		loc:     minLocWidth,
		message: minMessageWidth,
		record:  minRecordWidth,
	}

	for _, group := range groups {
		for _, row := range group {
			if len(row.File) > widths.file {
				widths.file = len(row.File)
			}
			if len(row.Location) > widths.loc {
				widths.loc = len(row.Location)
			}
			if len(row.Message) > widths.message {
				widths.message = len(row.Message)
			}
			if len(row.Record) > widths.record {
				widths.record = len(row.Record)
			}
		}
	}

	// Constrain to terminal width, shrinking the message column first.
	totalWidth := widths.file + widths.loc + widths.message + widths.record + (tablePadding * tableColumnCount)
	if totalWidth > t.termWidth {
		excess := totalWidth - t.termWidth
		widths.message = max(minMessageWidth, widths.message-excess)

		totalWidth = widths.file + widths.loc + widths.message + widths.record + (tablePadding * tableColumnCount)
		if totalWidth > t.termWidth {
			excess = totalWidth - t.termWidth
			widths.file = max(minFileWidth, widths.file-excess)
		}
	}

	return widths
}

// formatHeader formats the table header row.
func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s",
		widths.file, "FILE",
		widths.loc, "LOC",
		widths.message, "MESSAGE",
		widths.record, "RECORD",
	)
	return t.styles.TableHeader.Render(header)
}

// formatSeparator formats a horizontal separator line.
func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	totalWidth := widths.file + widths.loc + widths.message + widths.record + (tablePadding * tableColumnCount)
	sep := strings.Repeat(char, totalWidth)
	return t.styles.TableSeparator.Render(sep)
}

// formatRow formats a single diagnostic row.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	file := truncateString(row.File, widths.file)
	loc := truncateString(row.Location, widths.loc)
	message := truncateString(row.Message, widths.message)
	record := truncateString(row.Record, widths.record)

	content := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s",
		widths.file, file,
		widths.loc, loc,
		widths.message, message,
		widths.record, record,
	)

	return t.styles.TableErrorRow.Render(content)
}

// FormatTableSummary formats a one-line summary for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats) string {
	errorWord := "errors"
	if stats.DiagnosticsTotal == 1 {
		errorWord = "error"
	}
	fileWord := "files"
	if stats.FilesWithIssues == 1 {
		fileWord = "file"
	}
	return fmt.Sprintf(" %s in %d %s",
		t.styles.Error.Render(fmt.Sprintf("%d %s", stats.DiagnosticsTotal, errorWord)),
		stats.FilesWithIssues, fileWord,
	)
}

// truncateString truncates a string to maxLen, appending an ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
