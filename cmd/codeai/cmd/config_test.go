package cmd

import (
	"os"
	"path/filepath"
	"testing"

	clitest "github.com/bargom/codeai/cmd/codeai/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigPathCommand(t *testing.T) {
	dir := clitest.CreateTempDir(t)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "config.yaml")

	rootCmd := NewRootCmd()
	output, err := clitest.ExecuteCommand(rootCmd, "--config", path, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, output, path)
}

func TestConfigShowCommand_Defaults(t *testing.T) {
	dir := clitest.CreateTempDir(t)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "config.yaml")

	rootCmd := NewRootCmd()
	output, err := clitest.ExecuteCommand(rootCmd, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, output, "output_format: table")
}

func TestConfigSetCommand_PersistsValue(t *testing.T) {
	dir := clitest.CreateTempDir(t)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "config.yaml")

	rootCmd := NewRootCmd()
	_, err := clitest.ExecuteCommand(rootCmd, "--config", path, "config", "set", "output_format", "json")
	require.NoError(t, err)

	rootCmd2 := NewRootCmd()
	output, err := clitest.ExecuteCommand(rootCmd2, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, output, "output_format: json")
}

func TestConfigSetCommand_UnknownKey(t *testing.T) {
	dir := clitest.CreateTempDir(t)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "config.yaml")

	rootCmd := NewRootCmd()
	_, err := clitest.ExecuteCommand(rootCmd, "--config", path, "config", "set", "bogus", "value")
	assert.Error(t, err)
}

func TestConfigSetCommand_InvalidBool(t *testing.T) {
	dir := clitest.CreateTempDir(t)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "config.yaml")

	rootCmd := NewRootCmd()
	_, err := clitest.ExecuteCommand(rootCmd, "--config", path, "config", "set", "verbose", "notabool")
	assert.Error(t, err)
}
