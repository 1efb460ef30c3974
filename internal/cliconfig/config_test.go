package cliconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bargom/codeai/internal/cliconfig"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := cliconfig.DefaultConfig()
	assert.Equal(t, cliconfig.OutputTable, cfg.OutputFormat)
	assert.Equal(t, "basic", cfg.DefaultTemplate)
	assert.True(t, cfg.Color)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := cliconfig.Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, cliconfig.DefaultConfig(), cfg)
}

func TestLoad_ReadsYAMLFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_format: json\nverbose: true\n"), 0644))

	cfg, err := cliconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cliconfig.OutputJSON, cfg.OutputFormat)
	assert.True(t, cfg.Verbose)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_format: json\n"), 0644))

	t.Setenv("CODEAI_OUTPUT_FORMAT", "plain")

	cfg, err := cliconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cliconfig.OutputPlain, cfg.OutputFormat)
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	want := &cliconfig.Config{
		OutputFormat:    cliconfig.OutputJSON,
		Verbose:         true,
		DefaultTemplate: "multi-party",
		Color:           false,
	}
	require.NoError(t, want.Save(path))

	got, err := cliconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := cliconfig.DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.OutputFormat = "xml"
	assert.Error(t, cfg.Validate())
}
