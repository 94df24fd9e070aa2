// Package render regenerates record text from a parse tree.
//
// Nodes whose payload was never mutated replay their original source spans
// byte-for-byte; dirty nodes are re-synthesized into a canonical form. A
// record that parses cleanly and is never edited renders back to its exact
// input.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nmtools/nmrec/pkg/nmast"
)

// InvalidSpanError is a programming-contract violation: a node span does not apply
// to the text buffer retained by its tree. It can only happen when the
// tree's Content was replaced or a span was fabricated by hand.
type InvalidSpanError struct {
	Span       nmast.Span
	ContentLen int
}

func (e *InvalidSpanError) Error() string {
	return fmt.Sprintf("span [%d,%d) does not apply to retained text of %d bytes",
		e.Span.StartOffset, e.Span.EndOffset, e.ContentLen)
}

// Render reconstructs record text from a tree.
//
// Clean nodes and gaps emit their original substrings. Dirty nodes emit
// canonical text; the gap next to a dirty node collapses to a single space.
// Trailing whitespace replays verbatim unless nodes were inserted or
// removed, in which case it normalizes to a single newline.
func Render(tree *nmast.ParseTree) (string, error) {
	var b strings.Builder

	if err := emitSpan(&b, tree, tree.Leading); err != nil {
		return "", err
	}

	nodes := tree.Nodes()
	for i := range nodes {
		node := &nodes[i]

		if node.Dirty() {
			b.WriteString(Canonical(node))
		} else if err := emitSpan(&b, tree, node.Span); err != nil {
			return "", err
		}

		last := i == len(nodes)-1
		if last {
			break
		}

		if node.Dirty() || nodes[i+1].Dirty() {
			b.WriteString(" ")
		} else if err := emitSpan(&b, tree, node.Gap); err != nil {
			return "", err
		}
	}

	if tree.StructurallyChanged() {
		b.WriteString("\n")
	} else if err := emitSpan(&b, tree, tree.Trailing); err != nil {
		return "", err
	}

	return b.String(), nil
}

func emitSpan(b *strings.Builder, tree *nmast.ParseTree, span nmast.Span) error {
	if !span.In(len(tree.Content)) {
		return &InvalidSpanError{Span: span, ContentLen: len(tree.Content)}
	}
	b.Write(span.Text(tree.Content))
	return nil
}

// Canonical synthesizes the canonical text of one option node from its
// payload, ignoring its source span.
func Canonical(node *nmast.OptionNode) string {
	switch node.Kind {
	case nmast.OptionFlag:
		return node.Keyword
	case nmast.OptionValuedInt:
		return node.Keyword + "=" + strconv.Itoa(node.Int.Value)
	case nmast.OptionChoice:
		return node.Keyword + "=" + node.Choice.Value
	case nmast.OptionFreeTextPair:
		return node.Keyword + " " + node.Pair.Left + "=" + node.Pair.Right
	case nmast.OptionDeclarationList:
		parts := make([]string, len(node.Decls))
		for i, d := range node.Decls {
			parts[i] = canonicalDeclaration(d)
		}
		return node.Keyword + " " + strings.Join(parts, ", ")
	case nmast.OptionFunctionSig:
		return node.Keyword + "=" + canonicalSignature(node.Sig, false)
	case nmast.OptionVectorSig:
		return node.Keyword + "=" + canonicalSignature(node.Sig, true)
	default:
		return node.Keyword
	}
}

func canonicalDeclaration(d nmast.Declaration) string {
	var b strings.Builder
	if d.Qualifier != nmast.QualNone {
		b.WriteString(d.Qualifier.String())
		b.WriteString(" ")
	}
	b.WriteString(d.Name)
	if len(d.Dims) > 0 {
		b.WriteString("(")
		for i, dim := range d.Dims {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(strconv.Itoa(dim))
		}
		b.WriteString(")")
	}
	return b.String()
}

func canonicalSignature(sig *nmast.SigAttrs, vector bool) string {
	var b strings.Builder
	b.WriteString(sig.Name)
	b.WriteString("(")
	if vector {
		if len(sig.Ints) > 0 {
			b.WriteString(strconv.Itoa(sig.Ints[0]))
		}
	} else {
		b.WriteString(sig.Arg)
		for _, n := range sig.Ints {
			b.WriteString(",")
			b.WriteString(strconv.Itoa(n))
		}
	}
	b.WriteString(")")
	return b.String()
}
