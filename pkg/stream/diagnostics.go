package stream

import (
	"github.com/nmtools/nmrec/pkg/nmast"
)

// Diagnostic is one reportable parse failure, positioned in the stream's
// file coordinates.
type Diagnostic struct {
	// Path is the file the diagnostic belongs to.
	Path string

	// Record is the canonical record-type name.
	Record string

	// Kind names the parse error kind.
	Kind string

	// Message describes the failure.
	Message string

	// StartLine, StartColumn, EndLine, EndColumn are 1-based file
	// positions of the offending text.
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// SourcePosition returns the diagnostic position as a SourcePosition.
func (d *Diagnostic) SourcePosition() nmast.SourcePosition {
	return nmast.SourcePosition{
		StartLine:   d.StartLine,
		StartColumn: d.StartColumn,
		EndLine:     d.EndLine,
		EndColumn:   d.EndColumn,
	}
}

// Diagnostics converts per-record parse errors into positioned diagnostics.
// Error spans are record-relative; they are shifted into stream offsets
// before the line lookup.
func (s *Stream) Diagnostics() []Diagnostic {
	var out []Diagnostic
	ix := s.LineIndex()

	for i := range s.Records {
		rec := &s.Records[i]
		if rec.Err == nil {
			continue
		}

		span := nmast.Span{
			StartOffset: rec.Body.StartOffset + rec.Err.Span.StartOffset,
			EndOffset:   rec.Body.StartOffset + rec.Err.Span.EndOffset,
		}
		pos := ix.PositionFor(span)

		out = append(out, Diagnostic{
			Path:        s.Path,
			Record:      rec.Name,
			Kind:        rec.Err.Kind.String(),
			Message:     rec.Err.Message,
			StartLine:   pos.StartLine,
			StartColumn: pos.StartColumn,
			EndLine:     pos.EndLine,
			EndColumn:   pos.EndColumn,
		})
	}

	return out
}

// HasErrors reports whether any known record failed to parse.
func (s *Stream) HasErrors() bool {
	for i := range s.Records {
		if s.Records[i].Err != nil {
			return true
		}
	}
	return false
}
