// Package grammar defines record grammars: the option shapes each record
// type accepts, the abbreviation rules for their keywords, and the registry
// that maps record-type names to grammars.
package grammar

// KeywordSpec is an immutable keyword with its record-defined minimum
// abbreviation length. A candidate matches iff it is a case-sensitive prefix
// of Full with length in [MinLen, len(Full)].
type KeywordSpec struct {
	Full   string
	MinLen int
}

// Kw builds a KeywordSpec. MinLen is clamped into [1, len(full)].
func Kw(full string, minLen int) KeywordSpec {
	if minLen < 1 {
		minLen = 1
	}
	if minLen > len(full) {
		minLen = len(full)
	}
	return KeywordSpec{Full: full, MinLen: minLen}
}

// Matches reports whether candidate is a legal abbreviation of this keyword.
func (k KeywordSpec) Matches(candidate string) bool {
	if len(candidate) < k.MinLen || len(candidate) > len(k.Full) {
		return false
	}
	return k.Full[:len(candidate)] == candidate
}

// ConflictsWith reports whether some candidate is a legal abbreviation of
// both keywords. That holds exactly when the keywords share a prefix at
// least as long as both minimum lengths.
func (k KeywordSpec) ConflictsWith(other KeywordSpec) bool {
	common := commonPrefixLen(k.Full, other.Full)
	lo := max(k.MinLen, other.MinLen)
	hi := min(len(k.Full), len(other.Full), common)
	return lo <= hi
}

func commonPrefixLen(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// ResolveKeyword matches candidate against an ordered sequence of specs.
// Among all specs the candidate legally abbreviates, the one with the
// longest full name wins; ties keep the earliest spec. Returns the index of
// the winning spec, or -1 if none match.
func ResolveKeyword(candidate string, specs []KeywordSpec) int {
	best := -1
	for i, spec := range specs {
		if !spec.Matches(candidate) {
			continue
		}
		if best < 0 || len(spec.Full) > len(specs[best].Full) {
			best = i
		}
	}
	return best
}
