// Package config defines configuration types for nmrec.
// These types are pure data structures with no dependency on the loader.
package config

// RecordConfig holds per-record-type configuration options.
type RecordConfig struct {
	// Enabled controls whether records of this type are parsed.
	// Disabled record types are kept opaque and round-tripped verbatim.
	Enabled *bool `yaml:"enabled"`
}

// BackupsConfig controls backup behavior when rewriting files.
type BackupsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Config is the root configuration structure for nmrec.
type Config struct {
	// Extensions lists the file extensions scanned during directory discovery.
	Extensions []string `yaml:"extensions"`

	// Records contains per-record-type configuration keyed by record name.
	Records map[string]RecordConfig `yaml:"records"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore"`

	// Backups configures backup behavior when rewriting.
	Backups BackupsConfig `yaml:"backups"`

	// Jobs specifies the number of parallel workers. Set from the CLI,
	// never persisted to config files.
	Jobs int `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Extensions: []string{".mod", ".ctl"},
		Records:    make(map[string]RecordConfig),
		Ignore:     nil,
		Backups: BackupsConfig{
			Enabled: true,
		},
		Jobs: 0, // 0 means use GOMAXPROCS
	}
}

// RecordEnabled reports whether parsing is enabled for the named record type.
// Record types without explicit configuration default to enabled.
func (c *Config) RecordEnabled(name string) bool {
	if c == nil || c.Records == nil {
		return true
	}
	rc, ok := c.Records[name]
	if !ok || rc.Enabled == nil {
		return true
	}
	return *rc.Enabled
}
