package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmtools/nmrec/pkg/config"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, []string{".mod", ".ctl"}, cfg.Extensions)
	assert.True(t, cfg.Backups.Enabled)
	assert.Zero(t, cfg.Jobs)
}

func TestRecordEnabled(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.True(t, cfg.RecordEnabled("ABBREVIATED"), "unconfigured record defaults to enabled")

	disabled := false
	cfg.Records["SIZES"] = config.RecordConfig{Enabled: &disabled}
	assert.False(t, cfg.RecordEnabled("SIZES"))
	assert.True(t, cfg.RecordEnabled("COVARIANCE"))

	enabled := true
	cfg.Records["SIZES"] = config.RecordConfig{Enabled: &enabled}
	assert.True(t, cfg.RecordEnabled("SIZES"))

	var nilCfg *config.Config
	assert.True(t, nilCfg.RecordEnabled("ABBREVIATED"))
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	data := []byte(`
extensions:
  - .mod
records:
  SIZES:
    enabled: false
ignore:
  - "archive/**"
backups:
  enabled: false
`)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, []string{".mod"}, cfg.Extensions)
	assert.False(t, cfg.RecordEnabled("SIZES"))
	assert.Equal(t, []string{"archive/**"}, cfg.Ignore)
	assert.False(t, cfg.Backups.Enabled)
}

func TestFromYAMLInvalid(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("extensions: {not: [a, list"))
	assert.Error(t, err)
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	disabled := false
	cfg.Records["COVARIANCE"] = config.RecordConfig{Enabled: &disabled}
	cfg.Ignore = []string{"scratch/*.mod"}
	// CLI-only fields never reach the file.
	cfg.Jobs = 8

	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "jobs")

	got, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, cfg.Extensions, got.Extensions)
	assert.Equal(t, cfg.Ignore, got.Ignore)
	assert.False(t, got.RecordEnabled("COVARIANCE"))
	assert.Zero(t, got.Jobs)
}

func TestFindProjectConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "models", "run1")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfgPath := filepath.Join(root, ".nmrec.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("extensions: [.mod]\n"), 0o644))

	found, err := config.FindProjectConfig(context.Background(), nested)
	require.NoError(t, err)
	assert.Equal(t, cfgPath, found)
}

func TestFindProjectConfigStopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".nmrec.yml"), []byte("{}\n"), 0o644))

	repo := filepath.Join(root, "repo")
	nested := filepath.Join(repo, "models")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := config.FindProjectConfig(context.Background(), nested)
	require.NoError(t, err)
	assert.Empty(t, found, "search should stop at the VCS root below the config")
}

func TestFindProjectConfigPreference(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nmrec.yml"), []byte("{}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".nmrec.yml"), []byte("{}\n"), 0o644))

	found, err := config.FindProjectConfig(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".nmrec.yml"), found)
}

func TestLoadExplicitPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("extensions: [.nm]\n"), 0o644))

	result, err := config.Load(context.Background(), config.LoadOptions{ExplicitPath: path})
	require.NoError(t, err)

	assert.Equal(t, path, result.LoadedFrom)
	assert.Equal(t, []string{".nm"}, result.Config.Extensions)
	assert.Zero(t, result.Config.Jobs)
}

func TestLoadExplicitPathMissing(t *testing.T) {
	t.Parallel()

	_, err := config.Load(context.Background(), config.LoadOptions{
		ExplicitPath: filepath.Join(t.TempDir(), "absent.yml"),
	})
	assert.Error(t, err)
}

func TestLoadDefaultsWhenNoConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))

	result, err := config.Load(context.Background(), config.LoadOptions{WorkingDir: dir})
	require.NoError(t, err)

	assert.Empty(t, result.LoadedFrom)
	assert.Equal(t, config.NewConfig().Extensions, result.Config.Extensions)
}
