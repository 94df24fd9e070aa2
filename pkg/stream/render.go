package stream

import (
	"fmt"

	"github.com/nmtools/nmrec/pkg/edit"
	"github.com/nmtools/nmrec/pkg/render"
)

// Render regenerates the full stream text. Opaque records and the preamble
// replay verbatim; parsed records render through their trees, so edits made
// to any tree are spliced into otherwise untouched surrounding text.
func (s *Stream) Render() ([]byte, error) {
	builder := edit.NewBuilder()

	for i := range s.Records {
		rec := &s.Records[i]
		if !rec.Parsed() {
			continue
		}

		rendered, err := render.Render(rec.Tree)
		if err != nil {
			return nil, fmt.Errorf("render record %s: %w", rec.Name, err)
		}

		original := rec.Body.Text(s.Content)
		if rendered == string(original) {
			continue
		}
		builder.ReplaceRange(rec.Body.StartOffset, rec.Body.EndOffset, rendered)
	}

	edits, err := edit.Prepare(builder.Edits, len(s.Content))
	if err != nil {
		return nil, fmt.Errorf("prepare record edits: %w", err)
	}

	return edit.Apply(s.Content, edits), nil
}
