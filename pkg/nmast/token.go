package nmast

// TokenKind classifies the type of a token in record text.
type TokenKind uint16

// Token kinds cover every byte of a record, classifying control-stream
// lexical elements. The lexer does not decide keyword identity; a TokWord may
// turn out to be a keyword, an option value, or part of a free-text run.
const (
	TokWord TokenKind = iota
	TokInteger
	TokSignedInteger

	// TokSeparator is '=' together with any surrounding spaces or tabs.
	// Plain whitespace not followed by '=' is TokWhitespace instead.
	TokSeparator

	TokWhitespace
	TokNewline

	TokParenOpen
	TokParenClose
	TokComma

	// TokComment is ';' through the end of its line, newline excluded.
	TokComment

	TokOther
)

// Token represents a classified span of bytes in record text.
// Tokens are contiguous and non-overlapping, covering [0, len(content)).
type Token struct {
	// Kind classifies what this token represents.
	Kind TokenKind

	// StartOffset is the byte index where this token begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where this token ends (exclusive).
	EndOffset int
}

// String returns the name of the token kind without the Tok prefix.
func (k TokenKind) String() string {
	switch k {
	case TokWord:
		return "Word"
	case TokInteger:
		return "Integer"
	case TokSignedInteger:
		return "SignedInteger"
	case TokSeparator:
		return "Separator"
	case TokWhitespace:
		return "Whitespace"
	case TokNewline:
		return "Newline"
	case TokParenOpen:
		return "ParenOpen"
	case TokParenClose:
		return "ParenClose"
	case TokComma:
		return "Comma"
	case TokComment:
		return "Comment"
	default:
		return "Other"
	}
}

// Span returns the byte span covered by this token.
func (t Token) Span() Span {
	return Span{StartOffset: t.StartOffset, EndOffset: t.EndOffset}
}

// Text returns the source text of this token from the given content.
func (t Token) Text(content []byte) []byte {
	if t.StartOffset < 0 || t.EndOffset > len(content) || t.StartOffset > t.EndOffset {
		return nil
	}
	return content[t.StartOffset:t.EndOffset]
}

// Len returns the length of this token in bytes.
func (t Token) Len() int {
	return t.EndOffset - t.StartOffset
}

// IsEmpty returns true if this token has zero length.
func (t Token) IsEmpty() bool {
	return t.StartOffset == t.EndOffset
}

// IsLayout returns true for whitespace, newline, and comment tokens.
// Comments parse as layout and live inside gap spans, so they replay
// verbatim on render.
func (t Token) IsLayout() bool {
	return t.Kind == TokWhitespace || t.Kind == TokNewline || t.Kind == TokComment
}

// ValidateTokens checks that a token slice is valid:
// - Tokens are contiguous and non-overlapping.
// - Tokens cover the full content range [0, contentLen).
// Returns true if valid, false otherwise.
func ValidateTokens(tokens []Token, contentLen int) bool {
	if len(tokens) == 0 {
		return contentLen == 0
	}

	// First token must start at 0.
	if tokens[0].StartOffset != 0 {
		return false
	}

	// Last token must end at contentLen.
	if tokens[len(tokens)-1].EndOffset != contentLen {
		return false
	}

	// Check contiguity.
	for i := 1; i < len(tokens); i++ {
		if tokens[i].StartOffset != tokens[i-1].EndOffset {
			return false
		}
	}

	return true
}
