package grammar

// defaultRegistry holds the built-in record grammars. Built and validated
// once at package initialization; a conflict in this table panics, which is
// the intended fail-fast behavior for a programming error.
//
//nolint:gochecknoglobals // Process-wide read-only registry is intentional
var defaultRegistry = buildDefault()

// Default returns the process-wide registry of built-in record grammars.
func Default() *Registry {
	return defaultRegistry
}

func buildDefault() *Registry {
	r := NewRegistry()

	// Abbreviated-code record: option control for the generated
	// abbreviated code, user text substitutions, and variable
	// declarations.
	r.MustRegister(&RecordGrammar{
		Name:    "ABBREVIATED",
		Aliases: []KeywordSpec{Kw("ABBREVIATED", 3)},
		Options: []OptionShape{
			ValuedInt("COMRES", 4),
			ValuedInt("COMSAV", 4),
			Choice("DERIV2", 6, "NO", "NOCOMMON"),
			Choice("DERIV1", 6, "NO"),
			Flag("FASTDER", 4),
			Flag("NOFASTDER", 6),
			Flag("CHECKMU", 5),
			Flag("NOCHECKMU", 7),
			Choice("DES", 3, "COMPACT", "FULL"),
			FreeTextPair("REPLACE", 3),
			DeclarationList("DECLARE", 3),
			Flag("PROTECT", 4),
			FunctionSig("FUNCTION", 4),
			VectorSig("VECTOR", 3),
		},
	})

	// Sizes record: integer-valued capacity overrides.
	r.MustRegister(&RecordGrammar{
		Name:    "SIZES",
		Aliases: []KeywordSpec{Kw("SIZES", 4)},
		Options: []OptionShape{
			ValuedInt("LTH", 3),
			ValuedInt("LVR", 3),
			ValuedInt("LVR2", 4),
			ValuedInt("LPAR", 3),
			ValuedInt("MAXIDS", 3),
			ValuedInt("PD", 2),
		},
	})

	// Covariance step record: a mixed bag of flags, restricted choices and
	// one integer option.
	r.MustRegister(&RecordGrammar{
		Name:    "COVARIANCE",
		Aliases: []KeywordSpec{Kw("COVARIANCE", 3)},
		Options: []OptionShape{
			Choice("MATRIX", 3, "R", "S"),
			Choice("PRINT", 2, "E", "R", "S"),
			Flag("UNCONDITIONAL", 3),
			Flag("CONDITIONAL", 4),
			Flag("OMITTED", 4),
			Flag("SLOW", 4),
			Flag("NOSLOW", 6),
			ValuedInt("TOL", 3),
		},
	})

	return r
}
