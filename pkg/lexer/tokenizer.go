// Package lexer tokenizes raw record text into a classified token stream.
//
// The lexer is record-type agnostic: it never decides whether a word is a
// keyword, a value, or free text. Its one context-sensitive duty is the
// separator rule: '=' with any surrounding spaces or tabs is a single
// separator token, while whitespace not followed by '=' is plain layout.
// Deciding between the two requires looking ahead past the whitespace run.
package lexer

import (
	"github.com/nmtools/nmrec/pkg/nmast"
)

// tokenizer performs a single-pass tokenization of record text.
// It produces a contiguous, non-overlapping token stream covering [0, len(content)).
type tokenizer struct {
	content []byte
	tokens  []nmast.Token
	pos     int
}

// Tokenize performs a single-pass tokenization of the given content.
// Returns a slice of tokens that are contiguous, non-overlapping, and cover
// [0, len(content)). Re-invoke on the same content to restart; the stream is
// not resumable mid-run.
func Tokenize(content []byte) []nmast.Token {
	if len(content) == 0 {
		return nil
	}

	const initialCapacityDivisor = 4 // reasonable initial capacity estimate
	tok := &tokenizer{
		content: content,
		tokens:  make([]nmast.Token, 0, len(content)/initialCapacityDivisor+1),
		pos:     0,
	}

	tok.tokenize()

	return tok.tokens
}

func (t *tokenizer) tokenize() {
	for t.pos < len(t.content) {
		switch b := t.content[t.pos]; {
		case b == ' ' || b == '\t':
			t.lexWhitespaceOrSeparator()
		case b == '=':
			t.lexSeparator(t.pos)
		case b == '\n' || b == '\r':
			t.lexNewline()
		case b == '(':
			t.lexSingle(nmast.TokParenOpen)
		case b == ')':
			t.lexSingle(nmast.TokParenClose)
		case b == ',':
			t.lexSingle(nmast.TokComma)
		case b == ';':
			t.lexComment()
		default:
			t.lexWord()
		}
	}
}

// lexWhitespaceOrSeparator consumes a run of spaces and tabs, then looks
// ahead: if the run is immediately followed by '=', the whole run belongs to
// a separator token; otherwise it is plain whitespace.
func (t *tokenizer) lexWhitespaceOrSeparator() {
	start := t.pos
	for t.pos < len(t.content) && (t.content[t.pos] == ' ' || t.content[t.pos] == '\t') {
		t.pos++
	}

	if t.pos < len(t.content) && t.content[t.pos] == '=' {
		t.lexSeparator(start)
		return
	}

	t.emit(nmast.TokWhitespace, start, t.pos)
}

// lexSeparator consumes '=' plus any spaces or tabs after it, emitting one
// separator token that starts at start (which may precede t.pos when leading
// whitespace was already consumed).
func (t *tokenizer) lexSeparator(start int) {
	t.pos++ // consume '='
	for t.pos < len(t.content) && (t.content[t.pos] == ' ' || t.content[t.pos] == '\t') {
		t.pos++
	}
	t.emit(nmast.TokSeparator, start, t.pos)
}

// lexNewline consumes a run of newline characters (LF or CRLF, possibly
// several in sequence) as one token.
func (t *tokenizer) lexNewline() {
	start := t.pos
	for t.pos < len(t.content) && (t.content[t.pos] == '\n' || t.content[t.pos] == '\r') {
		t.pos++
	}
	t.emit(nmast.TokNewline, start, t.pos)
}

// lexComment consumes ';' through the end of the line. The newline itself is
// not part of the comment.
func (t *tokenizer) lexComment() {
	start := t.pos
	for t.pos < len(t.content) && t.content[t.pos] != '\n' && t.content[t.pos] != '\r' {
		t.pos++
	}
	t.emit(nmast.TokComment, start, t.pos)
}

func (t *tokenizer) lexSingle(kind nmast.TokenKind) {
	start := t.pos
	t.pos++
	t.emit(kind, start, t.pos)
}

// lexWord consumes a maximal run of non-delimiter bytes and classifies it as
// an integer, a signed integer, or a generic word.
func (t *tokenizer) lexWord() {
	start := t.pos
	for t.pos < len(t.content) && !isDelimiter(t.content[t.pos]) {
		t.pos++
	}

	text := t.content[start:t.pos]
	switch {
	case isUnsignedInt(text):
		t.emit(nmast.TokInteger, start, t.pos)
	case isSignedInt(text):
		t.emit(nmast.TokSignedInteger, start, t.pos)
	default:
		t.emit(nmast.TokWord, start, t.pos)
	}
}

func (t *tokenizer) emit(kind nmast.TokenKind, start, end int) {
	t.tokens = append(t.tokens, nmast.Token{
		Kind:        kind,
		StartOffset: start,
		EndOffset:   end,
	})
}

// isDelimiter reports whether b terminates a word run.
func isDelimiter(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '=', '(', ')', ',', ';':
		return true
	default:
		return false
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isUnsignedInt(text []byte) bool {
	if len(text) == 0 {
		return false
	}
	for _, b := range text {
		if !isDigit(b) {
			return false
		}
	}
	return true
}

func isSignedInt(text []byte) bool {
	if len(text) < 2 || (text[0] != '+' && text[0] != '-') {
		return false
	}
	return isUnsignedInt(text[1:])
}
