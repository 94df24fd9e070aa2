package parse

import (
	"fmt"

	"github.com/nmtools/nmrec/pkg/nmast"
)

// ErrorKind classifies a parse failure.
type ErrorKind uint8

const (
	// ErrUnknownRecordType means the record-type token resolves to no
	// registry entry.
	ErrUnknownRecordType ErrorKind = iota

	// ErrUnresolvedKeyword means a candidate token matches no option in
	// the active record grammar.
	ErrUnresolvedKeyword

	// ErrMalformedValue means a value sub-parse failed its shape's fixed
	// grammar.
	ErrMalformedValue

	// ErrUnexpectedEndOfRecord means required tokens were missing before
	// the record ended.
	ErrUnexpectedEndOfRecord
)

// String returns the name of the error kind without the Err prefix.
func (k ErrorKind) String() string {
	switch k {
	case ErrUnknownRecordType:
		return "UnknownRecordType"
	case ErrUnresolvedKeyword:
		return "UnresolvedKeyword"
	case ErrMalformedValue:
		return "MalformedValue"
	case ErrUnexpectedEndOfRecord:
		return "UnexpectedEndOfRecord"
	default:
		return "Unknown"
	}
}

// Error is a structured parse failure. It carries the offending source span
// so callers can produce precise diagnostics. Parsing is all-or-nothing per
// record: the first Error aborts the parse and surfaces to the caller.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// RecordType is the record-type name the parse was attempted with.
	RecordType string

	// Span is the offending source span in the record text.
	Span nmast.Span

	// Message describes the failure.
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s at bytes %d-%d (%s)",
		e.RecordType, e.Message, e.Span.StartOffset, e.Span.EndOffset, e.Kind)
}

func newError(kind ErrorKind, recordType string, span nmast.Span, format string, args ...any) *Error {
	return &Error{
		Kind:       kind,
		RecordType: recordType,
		Span:       span,
		Message:    fmt.Sprintf(format, args...),
	}
}
