// Package nmast provides the core representation of parsed control-stream
// records. It defines a lossless view of one record's option list:
// - Token stream: every byte of the record text classified
// - OptionNode: one parsed option with its source span and payload
// - ParseTree: the ordered option list plus the retained source text
//
// The tree retains the exact text it was parsed from; unmodified options are
// regenerated byte-for-byte from their spans.
package nmast

// ParseTree is the parsed option list of one record. The tree exclusively
// owns its nodes; callers address nodes by index and must not retain node
// pointers across Insert or Remove calls.
type ParseTree struct {
	// RecordType is the resolved full record-type name.
	RecordType string

	// Content is the exact record text the tree was parsed from.
	// Node spans are only valid against this buffer.
	Content []byte

	// Leading is the span of layout before the first option.
	Leading Span

	// Trailing is the span of layout after the last option, including any
	// final newline.
	Trailing Span

	nodes      []OptionNode
	structural bool
}

// NewParseTree assembles a tree from parsed nodes. Intended for use by the
// parser; collaborators receive trees from a parse call.
func NewParseTree(recordType string, content []byte, leading, trailing Span, nodes []OptionNode) *ParseTree {
	return &ParseTree{
		RecordType: recordType,
		Content:    content,
		Leading:    leading,
		Trailing:   trailing,
		nodes:      nodes,
	}
}

// Len returns the number of option nodes.
func (t *ParseTree) Len() int {
	return len(t.nodes)
}

// Node returns the node at index i. The pointer is valid until the next
// Insert or Remove on the tree.
func (t *ParseTree) Node(i int) *OptionNode {
	return &t.nodes[i]
}

// Nodes returns the nodes in source order. The slice is owned by the tree.
func (t *ParseTree) Nodes() []OptionNode {
	return t.nodes
}

// Find returns the index of the first option with the given full keyword
// name, or -1.
func (t *ParseTree) Find(keyword string) int {
	for i := range t.nodes {
		if t.nodes[i].Keyword == keyword {
			return i
		}
	}
	return -1
}

// FindAll returns the indices of all options with the given full keyword name.
func (t *ParseTree) FindAll(keyword string) []int {
	var out []int
	for i := range t.nodes {
		if t.nodes[i].Keyword == keyword {
			out = append(out, i)
		}
	}
	return out
}

// FindKind returns the indices of all options of the given shape.
func (t *ParseTree) FindKind(kind OptionKind) []int {
	var out []int
	for i := range t.nodes {
		if t.nodes[i].Kind == kind {
			out = append(out, i)
		}
	}
	return out
}

// Insert adds a node at index i, shifting later nodes. The node is marked
// dirty so the renderer synthesizes its text. The tree is considered
// structurally changed afterwards.
func (t *ParseTree) Insert(i int, node OptionNode) {
	node.dirty = true
	node.Span = Span{}
	node.Gap = Span{}
	t.nodes = append(t.nodes, OptionNode{})
	copy(t.nodes[i+1:], t.nodes[i:])
	t.nodes[i] = node
	t.structural = true
}

// Append adds a node after the last option.
func (t *ParseTree) Append(node OptionNode) {
	t.Insert(len(t.nodes), node)
}

// Remove deletes the node at index i. The tree is considered structurally
// changed afterwards.
func (t *ParseTree) Remove(i int) {
	t.nodes = append(t.nodes[:i], t.nodes[i+1:]...)
	t.structural = true
}

// StructurallyChanged reports whether nodes were inserted or removed since
// parsing. The renderer normalizes trailing whitespace in that case.
func (t *ParseTree) StructurallyChanged() bool {
	return t.structural
}
