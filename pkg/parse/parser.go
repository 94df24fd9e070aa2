// Package parse implements the record grammar engine. It consumes the
// lexer's token stream together with the active record's grammar and
// produces a position-tracked parse tree.
//
// Parsing is strictly left-to-right with no backtracking across options:
// once a keyword resolves, its value grammar must consume tokens
// deterministically or fail.
package parse

import (
	"strconv"

	"github.com/nmtools/nmrec/pkg/grammar"
	"github.com/nmtools/nmrec/pkg/lexer"
	"github.com/nmtools/nmrec/pkg/nmast"
)

// Parse parses one record's option text against the built-in registry.
// recordType may be abbreviated. The returned tree retains text.
func Parse(recordType string, text []byte) (*nmast.ParseTree, error) {
	return ParseWith(grammar.Default(), recordType, text)
}

// ParseWith parses one record's option text against the given registry.
func ParseWith(reg *grammar.Registry, recordType string, text []byte) (*nmast.ParseTree, error) {
	g, ok := reg.Lookup(recordType)
	if !ok {
		return nil, newError(ErrUnknownRecordType, recordType,
			nmast.Span{StartOffset: 0, EndOffset: 0},
			"unknown record type %q", recordType)
	}

	p := &parser{
		grammar: g,
		content: text,
		toks:    lexer.Tokenize(text),
	}
	return p.parse()
}

type parser struct {
	grammar *grammar.RecordGrammar
	content []byte
	toks    []nmast.Token
	pos     int
}

func (p *parser) parse() (*nmast.ParseTree, error) {
	leading := p.skipLayout()

	var nodes []nmast.OptionNode
	trailing := nmast.Span{StartOffset: len(p.content), EndOffset: len(p.content)}

	for !p.eof() {
		node, err := p.parseOption()
		if err != nil {
			return nil, err
		}

		gap := p.skipLayout()
		if p.eof() {
			trailing = gap
		} else {
			node.Gap = gap
		}
		nodes = append(nodes, node)
	}

	return nmast.NewParseTree(p.grammar.Name, p.content, leading, trailing, nodes), nil
}

// parseOption resolves the next candidate token against the grammar and
// dispatches to the shape-specific sub-parser. The returned node's span
// covers from the keyword's start to the last consumed token's end.
func (p *parser) parseOption() (nmast.OptionNode, error) {
	kwTok := p.peek()
	if kwTok.Kind != nmast.TokWord {
		return nmast.OptionNode{}, newError(ErrUnresolvedKeyword, p.grammar.Name,
			kwTok.Span(), "expected option keyword, found %q", p.text(kwTok))
	}

	shape := p.grammar.ResolveOption(p.text(kwTok))
	if shape == nil {
		return nmast.OptionNode{}, newError(ErrUnresolvedKeyword, p.grammar.Name,
			kwTok.Span(), "%q matches no option of record %s", p.text(kwTok), p.grammar.Name)
	}
	p.next()

	node := nmast.OptionNode{
		Kind:    shape.Kind,
		Keyword: shape.Keyword.Full,
		Span:    kwTok.Span(),
	}

	var err error
	switch shape.Kind {
	case nmast.OptionFlag:
		err = p.parseFlag(&node)
	case nmast.OptionValuedInt:
		err = p.parseValuedInt(&node)
	case nmast.OptionChoice:
		err = p.parseChoice(&node, shape)
	case nmast.OptionFreeTextPair:
		err = p.parseFreeTextPair(&node)
	case nmast.OptionDeclarationList:
		err = p.parseDeclarationList(&node)
	case nmast.OptionFunctionSig:
		err = p.parseFunctionSig(&node)
	case nmast.OptionVectorSig:
		err = p.parseVectorSig(&node)
	}
	if err != nil {
		return nmast.OptionNode{}, err
	}
	return node, nil
}

func (p *parser) parseFlag(node *nmast.OptionNode) error {
	// A flag takes no value; an explicit '=' after it is malformed.
	if !p.eof() && p.peek().Kind == nmast.TokSeparator {
		return newError(ErrMalformedValue, p.grammar.Name, p.peek().Span(),
			"option %s takes no value", node.Keyword)
	}
	return nil
}

func (p *parser) parseValuedInt(node *nmast.OptionNode) error {
	if err := p.consumeSeparator(node.Keyword); err != nil {
		return err
	}

	tok := p.peek()
	if tok.Kind != nmast.TokInteger && tok.Kind != nmast.TokSignedInteger {
		if p.eof() {
			return newError(ErrUnexpectedEndOfRecord, p.grammar.Name, tok.Span(),
				"missing integer value for %s", node.Keyword)
		}
		return newError(ErrMalformedValue, p.grammar.Name, tok.Span(),
			"expected integer value for %s, found %q", node.Keyword, p.text(tok))
	}
	p.next()

	value, err := strconv.Atoi(p.text(tok))
	if err != nil {
		return newError(ErrMalformedValue, p.grammar.Name, tok.Span(),
			"invalid integer %q for %s", p.text(tok), node.Keyword)
	}

	node.Int = &nmast.IntAttrs{Value: value}
	node.Span.EndOffset = tok.EndOffset
	return nil
}

func (p *parser) parseChoice(node *nmast.OptionNode, shape *grammar.OptionShape) error {
	if err := p.consumeSeparator(node.Keyword); err != nil {
		return err
	}

	tok := p.peek()
	if tok.Kind != nmast.TokWord {
		if p.eof() {
			return newError(ErrUnexpectedEndOfRecord, p.grammar.Name, tok.Span(),
				"missing value for %s", node.Keyword)
		}
		return newError(ErrMalformedValue, p.grammar.Name, tok.Span(),
			"expected value for %s, found %q", node.Keyword, p.text(tok))
	}

	value := p.text(tok)
	if !shape.AllowsValue(value) {
		return newError(ErrMalformedValue, p.grammar.Name, tok.Span(),
			"invalid value %q for %s, allowed: %v", value, node.Keyword, shape.Allowed)
	}
	p.next()

	node.Choice = &nmast.ChoiceAttrs{Value: value}
	node.Span.EndOffset = tok.EndOffset
	return nil
}

func (p *parser) parseFreeTextPair(node *nmast.OptionNode) error {
	if err := p.consumeSeparator(node.Keyword); err != nil {
		return err
	}

	left, err := p.freeTextRun(node.Keyword)
	if err != nil {
		return err
	}

	if err := p.consumeSeparator(node.Keyword); err != nil {
		return err
	}

	right, err := p.freeTextRun(node.Keyword)
	if err != nil {
		return err
	}

	// A separator immediately after the right side means the source tried
	// a multi-word substitution, which the pair grammar does not admit.
	if !p.eof() && p.peek().Kind == nmast.TokSeparator {
		return newError(ErrMalformedValue, p.grammar.Name, p.peek().Span(),
			"substitution sides of %s must be single runs", node.Keyword)
	}

	node.Pair = &nmast.PairAttrs{Left: string(left.Text(p.content)), Right: string(right.Text(p.content))}
	node.Span.EndOffset = right.EndOffset
	return nil
}

// freeTextRun consumes a maximal run of contiguous non-layout, non-separator
// tokens and returns the covered span. Both sides of a substitution are such
// runs; their content is never tokenized further.
func (p *parser) freeTextRun(keyword string) (nmast.Span, error) {
	if p.eof() {
		return nmast.Span{}, newError(ErrUnexpectedEndOfRecord, p.grammar.Name,
			p.peek().Span(), "missing substitution text for %s", keyword)
	}

	start := p.peek()
	if start.IsLayout() || start.Kind == nmast.TokSeparator {
		return nmast.Span{}, newError(ErrMalformedValue, p.grammar.Name, start.Span(),
			"missing substitution text for %s", keyword)
	}

	span := start.Span()
	for !p.eof() {
		tok := p.peek()
		if tok.IsLayout() || tok.Kind == nmast.TokSeparator {
			break
		}
		span.EndOffset = tok.EndOffset
		p.next()
	}
	return span, nil
}

func (p *parser) parseDeclarationList(node *nmast.OptionNode) error {
	if err := p.consumeSeparator(node.Keyword); err != nil {
		return err
	}

	var decls []nmast.Declaration
	end := node.Span.EndOffset

	for {
		decl, declEnd, err := p.parseDeclaration(node.Keyword)
		if err != nil {
			return err
		}
		decls = append(decls, decl)
		end = declEnd

		// Declarations are comma-separated; the list ends at the next
		// recognized top-level keyword or the end of the record. A
		// bare word after a declaration is a missing comma, not a new
		// declaration. Layout between declarations stays out of the
		// span unless a comma was consumed.
		mark := p.pos
		p.skipLayout()
		if p.eof() {
			p.pos = mark
			break
		}

		if p.peek().Kind == nmast.TokComma {
			comma := p.next()
			end = comma.EndOffset
			p.skipLayout()
			if p.eof() {
				return newError(ErrUnexpectedEndOfRecord, p.grammar.Name,
					comma.Span(), "missing declaration after comma in %s", node.Keyword)
			}
			continue
		}

		if p.peek().Kind == nmast.TokWord && !p.grammar.IsOptionKeyword(p.text(p.peek())) {
			return newError(ErrMalformedValue, p.grammar.Name,
				p.peek().Span(), "expected ',' between declarations in %s", node.Keyword)
		}

		p.pos = mark
		break
	}

	node.Decls = decls
	node.Span.EndOffset = end
	return nil
}

// parseDeclaration parses one declaration: an optional type qualifier, a
// name, and an optional parenthesized one- or two-integer dimension list.
func (p *parser) parseDeclaration(keyword string) (nmast.Declaration, int, error) {
	tok := p.peek()
	if p.eof() {
		return nmast.Declaration{}, 0, newError(ErrUnexpectedEndOfRecord, p.grammar.Name,
			tok.Span(), "missing declaration in %s", keyword)
	}
	if tok.Kind != nmast.TokWord {
		return nmast.Declaration{}, 0, newError(ErrMalformedValue, p.grammar.Name,
			tok.Span(), "expected declaration name in %s, found %q", keyword, p.text(tok))
	}
	p.next()

	decl := nmast.Declaration{Name: p.text(tok)}
	end := tok.EndOffset

	// A qualifier must be followed by the declared name; a bare INTEGER or
	// DOWHILE is a plain name.
	if qual := qualifierFor(decl.Name); qual != nmast.QualNone {
		mark := p.pos
		p.skipLayout()
		if !p.eof() && p.peek().Kind == nmast.TokWord && !p.grammar.IsOptionKeyword(p.text(p.peek())) {
			nameTok := p.next()
			decl.Qualifier = qual
			decl.Name = p.text(nameTok)
			end = nameTok.EndOffset
		} else {
			p.pos = mark
		}
	}

	// Dimensions attach directly to the name, no layout between.
	if !p.eof() && p.peek().Kind == nmast.TokParenOpen && p.peek().StartOffset == end {
		dims, dimsEnd, err := p.parseDimensions(keyword, decl.Name)
		if err != nil {
			return nmast.Declaration{}, 0, err
		}
		decl.Dims = dims
		end = dimsEnd
	}

	return decl, end, nil
}

// parseDimensions parses "(" dim ["," dim] ")" with positive integer dims.
func (p *parser) parseDimensions(keyword, name string) ([]int, int, error) {
	open := p.next() // consume '('
	var dims []int

	for {
		p.skipWhitespace()
		tok := p.peek()
		if p.eof() {
			return nil, 0, newError(ErrUnexpectedEndOfRecord, p.grammar.Name,
				open.Span(), "unbalanced parenthesis in declaration of %s", name)
		}
		if tok.Kind != nmast.TokInteger {
			return nil, 0, newError(ErrMalformedValue, p.grammar.Name, tok.Span(),
				"dimension of %s must be a positive integer, found %q", name, p.text(tok))
		}
		p.next()

		dim, err := strconv.Atoi(p.text(tok))
		if err != nil || dim < 1 {
			return nil, 0, newError(ErrMalformedValue, p.grammar.Name, tok.Span(),
				"dimension of %s must be a positive integer, found %q", name, p.text(tok))
		}
		dims = append(dims, dim)

		p.skipWhitespace()
		next := p.peek()
		if p.eof() {
			return nil, 0, newError(ErrUnexpectedEndOfRecord, p.grammar.Name,
				open.Span(), "unbalanced parenthesis in declaration of %s", name)
		}
		if next.Kind == nmast.TokParenClose {
			p.next()
			return dims, next.EndOffset, nil
		}
		if next.Kind != nmast.TokComma {
			return nil, 0, newError(ErrMalformedValue, p.grammar.Name, next.Span(),
				"expected ',' or ')' in declaration of %s, found %q", name, p.text(next))
		}
		p.next()

		if len(dims) == 2 {
			return nil, 0, newError(ErrMalformedValue, p.grammar.Name, next.Span(),
				"declaration of %s has more than two dimensions", name)
		}
	}
}

func (p *parser) parseFunctionSig(node *nmast.OptionNode) error {
	sig, end, err := p.parseSignature(node.Keyword, false)
	if err != nil {
		return err
	}
	node.Sig = sig
	node.Span.EndOffset = end
	return nil
}

func (p *parser) parseVectorSig(node *nmast.OptionNode) error {
	sig, end, err := p.parseSignature(node.Keyword, true)
	if err != nil {
		return err
	}
	node.Sig = sig
	node.Span.EndOffset = end
	return nil
}

// parseSignature parses NAME "(" ... ")". For a vector the parenthesized
// part is a single integer; for a function it is NAME ["," INT]*.
func (p *parser) parseSignature(keyword string, vector bool) (*nmast.SigAttrs, int, error) {
	if err := p.consumeSeparator(keyword); err != nil {
		return nil, 0, err
	}

	nameTok := p.peek()
	if p.eof() {
		return nil, 0, newError(ErrUnexpectedEndOfRecord, p.grammar.Name, nameTok.Span(),
			"missing signature for %s", keyword)
	}
	if nameTok.Kind != nmast.TokWord {
		return nil, 0, newError(ErrMalformedValue, p.grammar.Name, nameTok.Span(),
			"expected signature name for %s, found %q", keyword, p.text(nameTok))
	}
	p.next()

	sig := &nmast.SigAttrs{Name: p.text(nameTok)}

	open := p.peek()
	if p.eof() || open.Kind != nmast.TokParenOpen || open.StartOffset != nameTok.EndOffset {
		if p.eof() {
			return nil, 0, newError(ErrUnexpectedEndOfRecord, p.grammar.Name, open.Span(),
				"missing '(' in signature of %s", keyword)
		}
		return nil, 0, newError(ErrMalformedValue, p.grammar.Name, open.Span(),
			"expected '(' in signature of %s, found %q", keyword, p.text(open))
	}
	p.next()
	p.skipWhitespace()

	first := p.peek()
	if p.eof() {
		return nil, 0, newError(ErrUnexpectedEndOfRecord, p.grammar.Name, open.Span(),
			"unbalanced parenthesis in signature of %s", keyword)
	}

	if vector {
		if first.Kind != nmast.TokInteger {
			return nil, 0, newError(ErrMalformedValue, p.grammar.Name, first.Span(),
				"vector size of %s must be an integer, found %q", keyword, p.text(first))
		}
		p.next()
		size, err := strconv.Atoi(p.text(first))
		if err != nil {
			return nil, 0, newError(ErrMalformedValue, p.grammar.Name, first.Span(),
				"invalid vector size %q for %s", p.text(first), keyword)
		}
		sig.Ints = []int{size}
	} else {
		if first.Kind != nmast.TokWord {
			return nil, 0, newError(ErrMalformedValue, p.grammar.Name, first.Span(),
				"expected argument name in signature of %s, found %q", keyword, p.text(first))
		}
		p.next()
		sig.Arg = p.text(first)

		for {
			p.skipWhitespace()
			if p.eof() {
				return nil, 0, newError(ErrUnexpectedEndOfRecord, p.grammar.Name, open.Span(),
					"unbalanced parenthesis in signature of %s", keyword)
			}
			if p.peek().Kind != nmast.TokComma {
				break
			}
			p.next()
			p.skipWhitespace()

			intTok := p.peek()
			if p.eof() {
				return nil, 0, newError(ErrUnexpectedEndOfRecord, p.grammar.Name, open.Span(),
					"unbalanced parenthesis in signature of %s", keyword)
			}
			if intTok.Kind != nmast.TokInteger {
				return nil, 0, newError(ErrMalformedValue, p.grammar.Name, intTok.Span(),
					"signature argument of %s must be an integer, found %q", keyword, p.text(intTok))
			}
			p.next()
			n, err := strconv.Atoi(p.text(intTok))
			if err != nil {
				return nil, 0, newError(ErrMalformedValue, p.grammar.Name, intTok.Span(),
					"invalid signature argument %q for %s", p.text(intTok), keyword)
			}
			sig.Ints = append(sig.Ints, n)
		}
	}

	p.skipWhitespace()
	closeTok := p.peek()
	if p.eof() {
		return nil, 0, newError(ErrUnexpectedEndOfRecord, p.grammar.Name, open.Span(),
			"unbalanced parenthesis in signature of %s", keyword)
	}
	if closeTok.Kind != nmast.TokParenClose {
		return nil, 0, newError(ErrMalformedValue, p.grammar.Name, closeTok.Span(),
			"expected ')' in signature of %s, found %q", keyword, p.text(closeTok))
	}
	p.next()

	return sig, closeTok.EndOffset, nil
}

// consumeSeparator consumes one separator of either convention: an '='
// token (with its surrounding spacing) or a plain whitespace token.
func (p *parser) consumeSeparator(keyword string) error {
	tok := p.peek()
	if p.eof() {
		return newError(ErrUnexpectedEndOfRecord, p.grammar.Name, tok.Span(),
			"missing value for %s", keyword)
	}
	if tok.Kind != nmast.TokSeparator && tok.Kind != nmast.TokWhitespace {
		return newError(ErrMalformedValue, p.grammar.Name, tok.Span(),
			"expected separator after %s, found %q", keyword, p.text(tok))
	}
	p.next()
	return nil
}

// skipLayout consumes whitespace and newline tokens, returning their span.
func (p *parser) skipLayout() nmast.Span {
	start := p.offset()
	for !p.eof() && p.peek().IsLayout() {
		p.next()
	}
	return nmast.Span{StartOffset: start, EndOffset: p.offset()}
}

// skipWhitespace consumes whitespace tokens only (not newlines).
func (p *parser) skipWhitespace() {
	for !p.eof() && p.peek().Kind == nmast.TokWhitespace {
		p.next()
	}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.toks)
}

// peek returns the current token, or a zero-length token at end of record.
func (p *parser) peek() nmast.Token {
	if p.eof() {
		end := len(p.content)
		return nmast.Token{Kind: nmast.TokOther, StartOffset: end, EndOffset: end}
	}
	return p.toks[p.pos]
}

func (p *parser) next() nmast.Token {
	tok := p.peek()
	if !p.eof() {
		p.pos++
	}
	return tok
}

func (p *parser) offset() int {
	if p.eof() {
		return len(p.content)
	}
	return p.toks[p.pos].StartOffset
}

func (p *parser) text(tok nmast.Token) string {
	return string(tok.Text(p.content))
}

func qualifierFor(word string) nmast.DeclQualifier {
	switch word {
	case "INTEGER":
		return nmast.QualInteger
	case "DOWHILE":
		return nmast.QualDoWhile
	default:
		return nmast.QualNone
	}
}
