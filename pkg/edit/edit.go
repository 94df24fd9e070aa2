// Package edit provides byte-range text edits and their application. The
// stream layer uses it to splice re-rendered records back into the
// surrounding control-stream text without touching anything else.
package edit

// TextEdit represents a single text replacement in a buffer.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// Builder accumulates text edits against one buffer.
type Builder struct {
	Edits []TextEdit
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		Edits: make([]TextEdit, 0),
	}
}

// ReplaceRange adds an edit that replaces bytes [start, end) with newText.
func (b *Builder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     newText,
	})
}

// Insert adds an edit that inserts text at the given offset.
func (b *Builder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Delete adds an edit that deletes bytes [start, end).
func (b *Builder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}
