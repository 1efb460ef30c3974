package cmd

import (
	"os"
	"path/filepath"
	"testing"

	clitest "github.com/bargom/codeai/cmd/codeai/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocsCommand_RendersMarkdownAndHTML(t *testing.T) {
	path := clitest.CreateTempFileWithExt(t, ".bmpp", rawPurchase)
	defer os.Remove(path)

	outDir := clitest.CreateTempDir(t)
	defer os.RemoveAll(outDir)

	rootCmd := NewRootCmd()
	_, err := clitest.ExecuteCommand(rootCmd, "docs", path, "--out", outDir)
	require.NoError(t, err)

	base := filepath.Base(path)
	base = base[:len(base)-len(filepath.Ext(base))]

	md, err := os.ReadFile(filepath.Join(outDir, base+".md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Purchase")
	assert.Contains(t, string(md), "## Roles")
	assert.Contains(t, string(md), "Buyer")

	html, err := os.ReadFile(filepath.Join(outDir, base+".html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1")
}

func TestDocsCommand_MissingFile(t *testing.T) {
	rootCmd := NewRootCmd()
	_, err := clitest.ExecuteCommand(rootCmd, "docs", "does-not-exist.bmpp")
	assert.Error(t, err)
}
