package nmast

// Span represents a half-open byte range [StartOffset, EndOffset) in the
// record text it was captured from. Spans are only meaningful against the
// exact text they were parsed from.
type Span struct {
	// StartOffset is the byte index where the span begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the span ends (exclusive).
	EndOffset int
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.EndOffset - s.StartOffset
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.StartOffset == s.EndOffset
}

// Contains returns true if the given offset is within this span.
func (s Span) Contains(offset int) bool {
	return offset >= s.StartOffset && offset < s.EndOffset
}

// In returns true if the span is valid against content of the given length.
func (s Span) In(contentLen int) bool {
	return s.StartOffset >= 0 && s.EndOffset <= contentLen && s.StartOffset <= s.EndOffset
}

// Text returns the source text of this span from the given content.
// Returns nil if the span does not apply to the content.
func (s Span) Text(content []byte) []byte {
	if !s.In(len(content)) {
		return nil
	}
	return content[s.StartOffset:s.EndOffset]
}

// Position represents a 1-based line and column in a file.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// SourcePosition represents a span in terms of line/column positions.
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Start returns the start position.
func (sp SourcePosition) Start() Position {
	return Position{Line: sp.StartLine, Column: sp.StartColumn}
}

// End returns the end position.
func (sp SourcePosition) End() Position {
	return Position{Line: sp.EndLine, Column: sp.EndColumn}
}

// IsValid returns true if both start and end positions are valid.
func (sp SourcePosition) IsValid() bool {
	return sp.StartLine > 0 && sp.StartColumn > 0 &&
		sp.EndLine > 0 && sp.EndColumn > 0
}
