package grammar

import "github.com/nmtools/nmrec/pkg/nmast"

// OptionShape describes one accepted option form of a record type: its shape
// tag, its keyword with abbreviation range, and any shape-specific data.
type OptionShape struct {
	// Kind is the shape tag; it matches the node kind the parser produces.
	Kind nmast.OptionKind

	// Keyword is the option's keyword spec.
	Keyword KeywordSpec

	// Allowed holds the legal values of a Choice option, in declaration
	// order. Nil for every other shape.
	Allowed []string
}

// Flag declares a bare-keyword option.
func Flag(full string, minLen int) OptionShape {
	return OptionShape{Kind: nmast.OptionFlag, Keyword: Kw(full, minLen)}
}

// ValuedInt declares a keyword=integer option.
func ValuedInt(full string, minLen int) OptionShape {
	return OptionShape{Kind: nmast.OptionValuedInt, Keyword: Kw(full, minLen)}
}

// Choice declares a keyword=value option restricted to the given values.
func Choice(full string, minLen int, allowed ...string) OptionShape {
	return OptionShape{Kind: nmast.OptionChoice, Keyword: Kw(full, minLen), Allowed: allowed}
}

// FreeTextPair declares a substitution option: keyword, then two free-text
// runs joined by a separator. Both sides stay verbatim.
func FreeTextPair(full string, minLen int) OptionShape {
	return OptionShape{Kind: nmast.OptionFreeTextPair, Keyword: Kw(full, minLen)}
}

// DeclarationList declares a keyword followed by comma-separated variable
// declarations.
func DeclarationList(full string, minLen int) OptionShape {
	return OptionShape{Kind: nmast.OptionDeclarationList, Keyword: Kw(full, minLen)}
}

// FunctionSig declares a keyword followed by NAME "(" NAME ["," INT]* ")".
func FunctionSig(full string, minLen int) OptionShape {
	return OptionShape{Kind: nmast.OptionFunctionSig, Keyword: Kw(full, minLen)}
}

// VectorSig declares a keyword followed by NAME "(" INT ")".
func VectorSig(full string, minLen int) OptionShape {
	return OptionShape{Kind: nmast.OptionVectorSig, Keyword: Kw(full, minLen)}
}

// AllowsValue reports whether value is legal for a Choice shape.
func (s OptionShape) AllowsValue(value string) bool {
	for _, v := range s.Allowed {
		if v == value {
			return true
		}
	}
	return false
}

// RecordGrammar is the immutable grammar of one record type: the names the
// record answers to and the ordered set of options it accepts. Constructed
// once, validated at registration, and shared across parses.
type RecordGrammar struct {
	// Name is the canonical record-type name.
	Name string

	// Aliases are the abbreviation-eligible names of the record type
	// itself, including Name.
	Aliases []KeywordSpec

	// Options is the ordered set of accepted option shapes.
	Options []OptionShape
}

// ResolveOption matches candidate against the grammar's option keywords.
// Returns the matched shape, or nil if the candidate resolves to nothing.
func (g *RecordGrammar) ResolveOption(candidate string) *OptionShape {
	specs := make([]KeywordSpec, len(g.Options))
	for i := range g.Options {
		specs[i] = g.Options[i].Keyword
	}
	idx := ResolveKeyword(candidate, specs)
	if idx < 0 {
		return nil
	}
	return &g.Options[idx]
}

// IsOptionKeyword reports whether candidate abbreviates any option keyword
// of this grammar. Used by sub-parsers that stop at the next top-level
// keyword.
func (g *RecordGrammar) IsOptionKeyword(candidate string) bool {
	return g.ResolveOption(candidate) != nil
}
