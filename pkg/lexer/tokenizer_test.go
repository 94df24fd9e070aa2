package lexer_test

import (
	"testing"

	"github.com/nmtools/nmrec/pkg/lexer"
	"github.com/nmtools/nmrec/pkg/nmast"
)

// kindSpan pairs a token kind with its source text for compact expectations.
type kindSpan struct {
	kind nmast.TokenKind
	text string
}

func tokensOf(t *testing.T, content string) []kindSpan {
	t.Helper()

	tokens := lexer.Tokenize([]byte(content))
	if !nmast.ValidateTokens(tokens, len(content)) {
		t.Fatalf("Tokenize(%q) produced a non-contiguous token stream", content)
	}

	out := make([]kindSpan, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, kindSpan{kind: tok.Kind, text: string(tok.Text([]byte(content)))})
	}
	return out
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []kindSpan
	}{
		{
			name:    "empty content",
			content: "",
			want:    []kindSpan{},
		},
		{
			name:    "single word",
			content: "PROTECT",
			want: []kindSpan{
				{nmast.TokWord, "PROTECT"},
			},
		},
		{
			name:    "bare equals is a separator",
			content: "COMRES=5",
			want: []kindSpan{
				{nmast.TokWord, "COMRES"},
				{nmast.TokSeparator, "="},
				{nmast.TokInteger, "5"},
			},
		},
		{
			name:    "spaces around equals join the separator",
			content: "COMRES  =  5",
			want: []kindSpan{
				{nmast.TokWord, "COMRES"},
				{nmast.TokSeparator, "  =  "},
				{nmast.TokInteger, "5"},
			},
		},
		{
			name:    "tab before equals joins the separator",
			content: "DES\t=COMPACT",
			want: []kindSpan{
				{nmast.TokWord, "DES"},
				{nmast.TokSeparator, "\t="},
				{nmast.TokWord, "COMPACT"},
			},
		},
		{
			name:    "plain whitespace stays whitespace",
			content: "DERIV2 NO",
			want: []kindSpan{
				{nmast.TokWord, "DERIV2"},
				{nmast.TokWhitespace, " "},
				{nmast.TokWord, "NO"},
			},
		},
		{
			name:    "whitespace before newline is not a separator",
			content: "PROTECT  \n",
			want: []kindSpan{
				{nmast.TokWord, "PROTECT"},
				{nmast.TokWhitespace, "  "},
				{nmast.TokNewline, "\n"},
			},
		},
		{
			name:    "crlf newline is one token",
			content: "NO\r\nCOMPACT",
			want: []kindSpan{
				{nmast.TokWord, "NO"},
				{nmast.TokNewline, "\r\n"},
				{nmast.TokWord, "COMPACT"},
			},
		},
		{
			name:    "consecutive newlines collapse into one token",
			content: "A\n\nB",
			want: []kindSpan{
				{nmast.TokWord, "A"},
				{nmast.TokNewline, "\n\n"},
				{nmast.TokWord, "B"},
			},
		},
		{
			name:    "parens and commas are single tokens",
			content: "I(10,20)",
			want: []kindSpan{
				{nmast.TokWord, "I"},
				{nmast.TokParenOpen, "("},
				{nmast.TokInteger, "10"},
				{nmast.TokComma, ","},
				{nmast.TokInteger, "20"},
				{nmast.TokParenClose, ")"},
			},
		},
		{
			name:    "signed integers",
			content: "-3 +12",
			want: []kindSpan{
				{nmast.TokSignedInteger, "-3"},
				{nmast.TokWhitespace, " "},
				{nmast.TokSignedInteger, "+12"},
			},
		},
		{
			name:    "bare sign is a word",
			content: "- -x",
			want: []kindSpan{
				{nmast.TokWord, "-"},
				{nmast.TokWhitespace, " "},
				{nmast.TokWord, "-x"},
			},
		},
		{
			name:    "substitution free text",
			content: "REPLACE THETA(1)=SEX",
			want: []kindSpan{
				{nmast.TokWord, "REPLACE"},
				{nmast.TokWhitespace, " "},
				{nmast.TokWord, "THETA"},
				{nmast.TokParenOpen, "("},
				{nmast.TokInteger, "1"},
				{nmast.TokParenClose, ")"},
				{nmast.TokSeparator, "="},
				{nmast.TokWord, "SEX"},
			},
		},
		{
			name:    "equals at end of content",
			content: "COMRES=",
			want: []kindSpan{
				{nmast.TokWord, "COMRES"},
				{nmast.TokSeparator, "="},
			},
		},
		{
			name:    "separator absorbs trailing whitespace",
			content: "COMRES= 5",
			want: []kindSpan{
				{nmast.TokWord, "COMRES"},
				{nmast.TokSeparator, "= "},
				{nmast.TokInteger, "5"},
			},
		},
		{
			name:    "comment runs to end of line",
			content: "COMRES=5 ; carryover count\nPROTECT",
			want: []kindSpan{
				{nmast.TokWord, "COMRES"},
				{nmast.TokSeparator, "="},
				{nmast.TokInteger, "5"},
				{nmast.TokWhitespace, " "},
				{nmast.TokComment, "; carryover count"},
				{nmast.TokNewline, "\n"},
				{nmast.TokWord, "PROTECT"},
			},
		},
		{
			name:    "comment glued to a word",
			content: "PROTECT;note",
			want: []kindSpan{
				{nmast.TokWord, "PROTECT"},
				{nmast.TokComment, ";note"},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tokensOf(t, tt.content)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tokens %v, want %d tokens %v", len(got), got, len(tt.want), tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: got %v %q, want %v %q",
						i, got[i].kind, got[i].text, tt.want[i].kind, tt.want[i].text)
				}
			}
		})
	}
}

func TestTokenizeCoversEveryByte(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"COMRES=5 COMSAV=3\n",
		"DECLARE INTEGER I(10,20), DOWHILE J, K(5)\n",
		"  \t = = ,,(())\r\n\r\n",
		"x=1=2=3",
	}

	for _, content := range inputs {
		tokens := lexer.Tokenize([]byte(content))
		if !nmast.ValidateTokens(tokens, len(content)) {
			t.Errorf("Tokenize(%q): token stream does not cover content", content)
		}
	}
}
