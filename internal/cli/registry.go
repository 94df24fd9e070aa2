package cli

import (
	"github.com/nmtools/nmrec/pkg/config"
	"github.com/nmtools/nmrec/pkg/grammar"
)

// buildRegistry returns the grammar registry honoring per-record config.
// Record types disabled in config are left out, so their records stay
// opaque and untouched.
func buildRegistry(cfg *config.Config) *grammar.Registry {
	base := grammar.Default()

	allEnabled := true
	for _, g := range base.Grammars() {
		if !cfg.RecordEnabled(g.Name) {
			allEnabled = false
			break
		}
	}
	if allEnabled {
		return base
	}

	reg := grammar.NewRegistry()
	for _, g := range base.Grammars() {
		if cfg.RecordEnabled(g.Name) {
			reg.MustRegister(g)
		}
	}
	return reg
}
