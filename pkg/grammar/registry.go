package grammar

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
)

// ConflictError reports an ambiguous abbreviation discovered while
// registering a record grammar. It is a construction-time error: a grammar
// that produces one never reaches a parser.
type ConflictError struct {
	// Record is the record-type name being registered.
	Record string

	// First and Second are the conflicting keywords.
	First  KeywordSpec
	Second KeywordSpec

	// Aliases is true if the conflict is between record-type aliases in
	// the registry rather than options within one grammar.
	Aliases bool
}

func (e *ConflictError) Error() string {
	scope := fmt.Sprintf("record %s", e.Record)
	if e.Aliases {
		scope = "record-type aliases"
	}
	return fmt.Sprintf(
		"ambiguous abbreviation in %s: %s (min %d) and %s (min %d) accept a common prefix",
		scope, e.First.Full, e.First.MinLen, e.Second.Full, e.Second.MinLen,
	)
}

// Registry maps record-type names, including legal abbreviations, to their
// grammars. It is built once and read-only afterwards.
type Registry struct {
	mu       sync.RWMutex
	byName   map[string]*RecordGrammar
	grammars []*RecordGrammar
}

// NewRegistry creates an empty record grammar registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*RecordGrammar),
	}
}

// Register validates and adds a grammar to the registry.
// It fails with a ConflictError if any two option keywords of the grammar
// accept an overlapping abbreviation, or if any of the grammar's aliases
// overlaps an alias already registered.
func (r *Registry) Register(g *RecordGrammar) error {
	if err := validateOptions(g); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.grammars {
		for _, a := range existing.Aliases {
			for _, b := range g.Aliases {
				if a.ConflictsWith(b) {
					return &ConflictError{Record: g.Name, First: a, Second: b, Aliases: true}
				}
			}
		}
	}

	r.byName[g.Name] = g
	r.grammars = append(r.grammars, g)
	return nil
}

// MustRegister registers a grammar and panics on a conflict. Intended for
// the built-in table, where a conflict is a programming error.
func (r *Registry) MustRegister(g *RecordGrammar) {
	if err := r.Register(g); err != nil {
		panic(err)
	}
}

// validateOptions checks every pair of option keywords for overlapping
// abbreviation ranges. The check is exhaustive so that ambiguity can never
// surface at parse time.
func validateOptions(g *RecordGrammar) error {
	for i := 0; i < len(g.Options); i++ {
		for j := i + 1; j < len(g.Options); j++ {
			a := g.Options[i].Keyword
			b := g.Options[j].Keyword
			if a.ConflictsWith(b) {
				return &ConflictError{Record: g.Name, First: a, Second: b}
			}
		}
	}
	return nil
}

// Lookup resolves a record-type token, possibly abbreviated, to its grammar.
func (r *Registry) Lookup(recordType string) (*RecordGrammar, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Exact canonical name first.
	if g, ok := r.byName[recordType]; ok {
		return g, true
	}

	for _, g := range r.grammars {
		for _, alias := range g.Aliases {
			if alias.Matches(recordType) {
				return g, true
			}
		}
	}
	return nil, false
}

// Grammars returns all registered grammars sorted by canonical name.
func (r *Registry) Grammars() []*RecordGrammar {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*RecordGrammar, len(r.grammars))
	copy(result, r.grammars)

	slices.SortFunc(result, func(a, b *RecordGrammar) int {
		return cmp.Compare(a.Name, b.Name)
	})

	return result
}

// Names returns all canonical record-type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byName))
	for name := range r.byName {
		result = append(result, name)
	}

	slices.Sort(result)
	return result
}
