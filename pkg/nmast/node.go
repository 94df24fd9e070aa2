package nmast

// OptionKind identifies the shape of a parsed record option.
type OptionKind uint16

// The shape set is closed: every consumer of OptionNode (renderer,
// accessors, tests) matches it exhaustively.
const (
	OptionFlag OptionKind = iota
	OptionValuedInt
	OptionChoice
	OptionFreeTextPair
	OptionDeclarationList
	OptionFunctionSig
	OptionVectorSig
)

// String returns the name of the option kind without the Option prefix.
func (k OptionKind) String() string {
	switch k {
	case OptionFlag:
		return "Flag"
	case OptionValuedInt:
		return "ValuedInt"
	case OptionChoice:
		return "Choice"
	case OptionFreeTextPair:
		return "FreeTextPair"
	case OptionDeclarationList:
		return "DeclarationList"
	case OptionFunctionSig:
		return "FunctionSig"
	case OptionVectorSig:
		return "VectorSig"
	default:
		return "Unknown"
	}
}

// DeclQualifier is the optional type qualifier of a declaration.
type DeclQualifier uint8

const (
	QualNone DeclQualifier = iota
	QualInteger
	QualDoWhile
)

// String returns the qualifier keyword as it appears in source, or "".
func (q DeclQualifier) String() string {
	switch q {
	case QualInteger:
		return "INTEGER"
	case QualDoWhile:
		return "DOWHILE"
	default:
		return ""
	}
}

// Declaration is one variable introduction inside a declaration-list option.
// Dims holds zero, one, or two positive array dimensions.
type Declaration struct {
	Qualifier DeclQualifier
	Name      string
	Dims      []int
}

// IntAttrs holds the payload of a ValuedInt option.
type IntAttrs struct {
	Value int
}

// ChoiceAttrs holds the payload of a Choice option.
type ChoiceAttrs struct {
	Value string
}

// PairAttrs holds the payload of a FreeTextPair option. Both sides are
// stored verbatim and never interpreted further.
type PairAttrs struct {
	Left  string
	Right string
}

// SigAttrs holds the payload of a FunctionSig or VectorSig option.
// For a vector signature, Arg is empty and Ints holds the single size.
type SigAttrs struct {
	Name string
	Arg  string
	Ints []int
}

// OptionNode is one parsed option of a record. Exactly one of the payload
// pointers (or Decls) is populated, matching Kind.
//
// Span covers the option's source text from its keyword to its last value
// token. Gap is the layout (whitespace, newlines) that followed the option
// in the source, up to the next option.
type OptionNode struct {
	// Kind identifies the option shape.
	Kind OptionKind

	// Keyword is the resolved full keyword name, regardless of how
	// abbreviated it was in the source.
	Keyword string

	// Span is the source span of the option itself.
	Span Span

	// Gap is the source span of layout following the option.
	Gap Span

	// Payload, populated per Kind.
	Int    *IntAttrs
	Choice *ChoiceAttrs
	Pair   *PairAttrs
	Decls  []Declaration
	Sig    *SigAttrs

	// dirty is set by any mutation of the payload. A dirty node is
	// re-synthesized by the renderer instead of replaying its span.
	dirty bool
}

// Dirty reports whether this node's payload was mutated after parsing.
func (n *OptionNode) Dirty() bool {
	return n.dirty
}

// MarkDirty forces re-synthesis of this node's text on render.
func (n *OptionNode) MarkDirty() {
	n.dirty = true
}

// SetInt updates the value of a ValuedInt option and marks the node dirty.
func (n *OptionNode) SetInt(value int) {
	if n.Int == nil {
		n.Int = &IntAttrs{}
	}
	n.Int.Value = value
	n.dirty = true
}

// SetChoice updates the value of a Choice option and marks the node dirty.
// The value is not validated here; parsing is the only validation point.
func (n *OptionNode) SetChoice(value string) {
	if n.Choice == nil {
		n.Choice = &ChoiceAttrs{}
	}
	n.Choice.Value = value
	n.dirty = true
}

// SetPair updates both sides of a FreeTextPair option and marks the node dirty.
func (n *OptionNode) SetPair(left, right string) {
	if n.Pair == nil {
		n.Pair = &PairAttrs{}
	}
	n.Pair.Left = left
	n.Pair.Right = right
	n.dirty = true
}

// SetDecls replaces the declarations of a DeclarationList option and marks
// the node dirty.
func (n *OptionNode) SetDecls(decls []Declaration) {
	n.Decls = decls
	n.dirty = true
}
