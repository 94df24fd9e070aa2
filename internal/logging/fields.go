// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field names used in structured log records.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldFormat     = "format"
	FieldWrite      = "write"
	FieldVerify     = "verify"
	FieldBackup     = "backup"
	FieldJobs       = "jobs"
	FieldExtensions = "extensions"

	// Record fields.
	FieldRecord  = "record"
	FieldRecords = "records"
	FieldOption  = "option"
	FieldKeyword = "keyword"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesChecked     = "files_checked"
	FieldFilesWithIssues  = "files_with_issues"
	FieldFilesModified    = "files_modified"
	FieldRecordsTotal     = "records_total"
	FieldRecordsParsed    = "records_parsed"
	FieldDiagnosticsTotal = "diagnostics_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
