package cmd

import (
	"os"
	"path/filepath"
	"testing"

	clitest "github.com/bargom/codeai/cmd/codeai/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommand_Basic(t *testing.T) {
	dir := clitest.CreateTempDir(t)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "purchase.bmpp")

	rootCmd := NewRootCmd()
	_, err := clitest.ExecuteCommand(rootCmd, "init", path, "--template", "basic")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `Purchase <Protocol>`)
	assert.Contains(t, string(data), "roles Buyer <Agent>")
}

func TestInitCommand_MultiParty(t *testing.T) {
	dir := clitest.CreateTempDir(t)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "purchase.bmpp")

	rootCmd := NewRootCmd()
	_, err := clitest.ExecuteCommand(rootCmd, "init", path, "--template", "multi-party")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Shipper <Agent>")
}

func TestInitCommand_Composition(t *testing.T) {
	dir := clitest.CreateTempDir(t)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "purchase.bmpp")

	rootCmd := NewRootCmd()
	_, err := clitest.ExecuteCommand(rootCmd, "init", path, "--template", "composition")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<Enactment>")
}

func TestInitCommand_RefusesExistingFile(t *testing.T) {
	path := clitest.CreateTempFileWithExt(t, ".bmpp", "placeholder")
	defer os.Remove(path)

	rootCmd := NewRootCmd()
	_, err := clitest.ExecuteCommand(rootCmd, "init", path, "--template", "basic")
	assert.Error(t, err)
}

func TestInitCommand_UnknownTemplate(t *testing.T) {
	dir := clitest.CreateTempDir(t)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "purchase.bmpp")

	rootCmd := NewRootCmd()
	_, err := clitest.ExecuteCommand(rootCmd, "init", path, "--template", "nonsense")
	assert.Error(t, err)
}

func TestInitCommand_DefaultsWhenNonInteractive(t *testing.T) {
	dir := clitest.CreateTempDir(t)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "purchase.bmpp")

	rootCmd := NewRootCmd()
	_, err := clitest.ExecuteCommand(rootCmd, "init", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `Purchase <Protocol>`)
}
