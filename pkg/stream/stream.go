// Package stream models whole control streams: ordered records introduced
// by '$'-markers, each carrying an option list. Records whose type is in
// the grammar registry are parsed into trees; everything else stays opaque
// verbatim text, so an untouched stream always regenerates byte-for-byte.
package stream

import (
	"github.com/nmtools/nmrec/pkg/grammar"
	"github.com/nmtools/nmrec/pkg/nmast"
	"github.com/nmtools/nmrec/pkg/parse"
)

// Record is one top-level section of a control stream.
type Record struct {
	// RawName is the record-type marker as written, without the '$',
	// possibly abbreviated.
	RawName string

	// Name is the resolved canonical record-type name, or "" when the
	// type is not in the registry.
	Name string

	// Span covers the whole record in the stream content, from the start
	// of its marker line to the start of the next record (or end of
	// content).
	Span nmast.Span

	// Body covers the option list: everything after the marker word.
	Body nmast.Span

	// Tree is the parsed option list, nil for opaque records.
	Tree *nmast.ParseTree

	// Err holds the parse failure that left a known record type opaque.
	// Spans in Err are relative to Body.
	Err *parse.Error
}

// Parsed reports whether the record carries a parse tree.
func (r *Record) Parsed() bool {
	return r.Tree != nil
}

// Stream is a parsed control stream. It retains the exact content it was
// built from; record spans are only valid against that buffer.
type Stream struct {
	// Path is the originating file path (may be empty for in-memory text).
	Path string

	// Content is the full stream text.
	Content []byte

	// Preamble covers any text before the first record marker.
	Preamble nmast.Span

	// Records are the stream's records in source order.
	Records []Record

	index *nmast.LineIndex
}

// LineIndex returns the stream's offset-to-line index, built on first use.
func (s *Stream) LineIndex() *nmast.LineIndex {
	if s.index == nil {
		s.index = nmast.NewLineIndex(s.Content)
	}
	return s.index
}

// RecordsOfType returns pointers to all records with the given canonical
// type name.
func (s *Stream) RecordsOfType(name string) []*Record {
	var out []*Record
	for i := range s.Records {
		if s.Records[i].Name == name {
			out = append(out, &s.Records[i])
		}
	}
	return out
}

// Parse splits content into records and parses every record whose type is
// in the built-in registry. Records that fail to parse stay opaque with
// their error attached; the stream itself is always returned.
func Parse(path string, content []byte) *Stream {
	return ParseWith(grammar.Default(), path, content)
}

// ParseWith parses a control stream against the given registry.
func ParseWith(reg *grammar.Registry, path string, content []byte) *Stream {
	s := Split(path, content)

	for i := range s.Records {
		rec := &s.Records[i]

		g, ok := reg.Lookup(rec.RawName)
		if !ok {
			continue
		}
		rec.Name = g.Name

		tree, err := parse.ParseWith(reg, rec.RawName, rec.Body.Text(content))
		if err != nil {
			// All-or-nothing per record: on failure the record is
			// treated as opaque text and the error surfaces through
			// the record.
			if perr, isParse := err.(*parse.Error); isParse {
				rec.Err = perr
			}
			continue
		}
		rec.Tree = tree
	}

	return s
}

// Split divides content into a preamble and records without parsing any
// option list. Record types are left unresolved.
func Split(path string, content []byte) *Stream {
	s := &Stream{Path: path, Content: content}

	starts := markerStarts(content)
	if len(starts) == 0 {
		s.Preamble = nmast.Span{StartOffset: 0, EndOffset: len(content)}
		return s
	}

	s.Preamble = nmast.Span{StartOffset: 0, EndOffset: starts[0]}

	for i, start := range starts {
		end := len(content)
		if i+1 < len(starts) {
			end = starts[i+1]
		}

		// The marker is '$' followed by a word; indentation before the
		// '$' belongs to the record span.
		markerStart := start
		for markerStart < end && (content[markerStart] == ' ' || content[markerStart] == '\t') {
			markerStart++
		}
		nameStart := markerStart + 1 // skip '$'
		nameEnd := nameStart
		for nameEnd < end && isMarkerByte(content[nameEnd]) {
			nameEnd++
		}

		s.Records = append(s.Records, Record{
			RawName: string(content[nameStart:nameEnd]),
			Span:    nmast.Span{StartOffset: start, EndOffset: end},
			Body:    nmast.Span{StartOffset: nameEnd, EndOffset: end},
		})
	}

	return s
}

// markerStarts returns the offsets of lines whose first non-blank byte is
// '$'. Offsets point at the line start.
func markerStarts(content []byte) []int {
	var starts []int
	lineStart := 0

	for lineStart < len(content) {
		lineEnd := lineStart
		for lineEnd < len(content) && content[lineEnd] != '\n' {
			lineEnd++
		}
		if lineEnd < len(content) {
			lineEnd++ // include the newline
		}

		i := lineStart
		for i < lineEnd && (content[i] == ' ' || content[i] == '\t') {
			i++
		}
		if i < lineEnd && content[i] == '$' {
			starts = append(starts, lineStart)
		}

		lineStart = lineEnd
	}

	return starts
}

func isMarkerByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}
