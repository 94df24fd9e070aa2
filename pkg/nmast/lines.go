package nmast

import "sort"

// LineInfo holds metadata for a single line of text.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of content).
	EndOffset int
}

// LineIndex maps byte offsets to 1-based line/column positions for one text
// buffer. Build it once per buffer; lookups are binary searches.
type LineIndex struct {
	content []byte
	lines   []LineInfo
}

// NewLineIndex builds a line index for content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func NewLineIndex(content []byte) *LineIndex {
	return &LineIndex{content: content, lines: BuildLines(content)}
}

// BuildLines constructs line metadata from content.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char == '\n' {
			// Check for CRLF.
			newlineStart := idx
			if idx > 0 && content[idx-1] == '\r' {
				newlineStart = idx - 1
			}

			lines = append(lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: newlineStart,
				EndOffset:    idx + 1,
			})
			lineStart = idx + 1
		}
	}

	// Handle last line (may not have trailing newline).
	if lineStart <= len(content) {
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: len(content),
			EndOffset:    len(content),
		})
	}

	return lines
}

// LineCount returns the number of lines in the indexed content.
func (ix *LineIndex) LineCount() int {
	return len(ix.lines)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
// Returns (0, 0) if the offset is out of range.
func (ix *LineIndex) LineAt(offset int) (int, int) {
	if offset < 0 || len(ix.lines) == 0 {
		return 0, 0
	}

	// Handle offset at or past end of content.
	if offset >= len(ix.content) {
		lastLine := ix.lines[len(ix.lines)-1]
		return len(ix.lines), offset - lastLine.StartOffset + 1
	}

	// Binary search to find the line containing the offset.
	lineIdx := sort.Search(len(ix.lines), func(i int) bool {
		return ix.lines[i].EndOffset > offset
	})

	if lineIdx >= len(ix.lines) {
		lineIdx = len(ix.lines) - 1
	}

	lineInfo := ix.lines[lineIdx]

	if offset < lineInfo.StartOffset {
		return 0, 0
	}

	// 1-based line and column.
	return lineIdx + 1, offset - lineInfo.StartOffset + 1
}

// LineText returns the text of the 1-based line number without its newline.
// Returns nil if the line number is out of range.
func (ix *LineIndex) LineText(line int) []byte {
	if line < 1 || line > len(ix.lines) {
		return nil
	}
	info := ix.lines[line-1]
	return ix.content[info.StartOffset:info.NewlineStart]
}

// PositionFor converts a span to 1-based line/column positions.
func (ix *LineIndex) PositionFor(span Span) SourcePosition {
	startLine, startCol := ix.LineAt(span.StartOffset)
	endLine, endCol := ix.LineAt(span.EndOffset)
	return SourcePosition{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}
