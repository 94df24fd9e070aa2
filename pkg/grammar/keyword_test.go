package grammar_test

import (
	"testing"

	"github.com/nmtools/nmrec/pkg/grammar"
)

func TestKeywordMatches(t *testing.T) {
	t.Parallel()

	comres := grammar.Kw("COMRES", 4)

	tests := []struct {
		name      string
		candidate string
		want      bool
	}{
		{"full name", "COMRES", true},
		{"minimum prefix", "COMR", true},
		{"intermediate prefix", "COMRE", true},
		{"below minimum", "COM", false},
		{"longer than full", "COMRESX", false},
		{"wrong prefix", "CONR", false},
		{"case sensitive", "comr", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := comres.Matches(tt.candidate); got != tt.want {
				t.Errorf("Kw(COMRES,4).Matches(%q) = %v, want %v", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestKwClampsMinLen(t *testing.T) {
	t.Parallel()

	if got := grammar.Kw("DES", 0); got.MinLen != 1 {
		t.Errorf("Kw(DES, 0).MinLen = %d, want 1", got.MinLen)
	}
	if got := grammar.Kw("DES", 10); got.MinLen != 3 {
		t.Errorf("Kw(DES, 10).MinLen = %d, want 3", got.MinLen)
	}
}

func TestConflictsWith(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b grammar.KeywordSpec
		want bool
	}{
		{
			// COMR and COMS diverge before either minimum is reached.
			name: "shared prefix shorter than both minimums",
			a:    grammar.Kw("COMRES", 4),
			b:    grammar.Kw("COMSAV", 4),
			want: false,
		},
		{
			// "COMRES" would abbreviate both if COMRESX had min 4.
			name: "one keyword prefixes the other inside both ranges",
			a:    grammar.Kw("COMRES", 4),
			b:    grammar.Kw("COMRESX", 4),
			want: true,
		},
		{
			// LVR cannot abbreviate LVR2: LVR2 requires all 4 bytes and
			// "LVR2" is not a prefix of "LVR".
			name: "prefix pair separated by minimum lengths",
			a:    grammar.Kw("LVR", 3),
			b:    grammar.Kw("LVR2", 4),
			want: false,
		},
		{
			name: "identical keywords always conflict",
			a:    grammar.Kw("SLOW", 4),
			b:    grammar.Kw("SLOW", 4),
			want: true,
		},
		{
			// NOSLOW requires 6 bytes; SLOW tops out at 4.
			name: "disjoint names",
			a:    grammar.Kw("SLOW", 4),
			b:    grammar.Kw("NOSLOW", 6),
			want: false,
		},
		{
			// FASTDER min 4 vs NOFASTDER min 6: no common prefix at all.
			name: "negated flag pair",
			a:    grammar.Kw("FASTDER", 4),
			b:    grammar.Kw("NOFASTDER", 6),
			want: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.a.ConflictsWith(tt.b); got != tt.want {
				t.Errorf("%v.ConflictsWith(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Conflict is symmetric.
			if got := tt.b.ConflictsWith(tt.a); got != tt.want {
				t.Errorf("%v.ConflictsWith(%v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestResolveKeyword(t *testing.T) {
	t.Parallel()

	specs := []grammar.KeywordSpec{
		grammar.Kw("DERIV1", 6),
		grammar.Kw("DERIV2", 6),
		grammar.Kw("DES", 3),
	}

	tests := []struct {
		name      string
		candidate string
		want      int
	}{
		{"exact DERIV2", "DERIV2", 1},
		{"exact DERIV1", "DERIV1", 0},
		{"DES full", "DES", 2},
		{"DERIV too short for either", "DERIV", -1},
		{"unknown", "FOO", -1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := grammar.ResolveKeyword(tt.candidate, specs); got != tt.want {
				t.Errorf("ResolveKeyword(%q) = %d, want %d", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestResolveKeywordLongestFullNameWins(t *testing.T) {
	t.Parallel()

	// Both specs accept "FAST"; the longer full name must win regardless of
	// declaration order.
	specs := []grammar.KeywordSpec{
		grammar.Kw("FAST", 4),
		grammar.Kw("FASTDER", 4),
	}

	if got := grammar.ResolveKeyword("FAST", specs); got != 1 {
		t.Errorf("ResolveKeyword(FAST) = %d, want 1 (longest full name)", got)
	}

	reversed := []grammar.KeywordSpec{specs[1], specs[0]}
	if got := grammar.ResolveKeyword("FAST", reversed); got != 0 {
		t.Errorf("ResolveKeyword(FAST) on reversed specs = %d, want 0", got)
	}
}
