package cmd

import (
	"os"
	"testing"

	clitest "github.com/bargom/codeai/cmd/codeai/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand_PrintsAST(t *testing.T) {
	path := clitest.CreateTempFileWithExt(t, ".bmpp", rawPurchase)
	defer os.Remove(path)

	outputFormat = ""
	rootCmd := NewRootCmd()
	output, err := clitest.ExecuteCommand(rootCmd, "parse", path)
	require.NoError(t, err)
	assert.Contains(t, output, "Purchase")
}

func TestParseCommand_JSONOutput(t *testing.T) {
	path := clitest.CreateTempFileWithExt(t, ".bmpp", rawPurchase)
	defer os.Remove(path)

	rootCmd := NewRootCmd()
	output, err := clitest.ExecuteCommand(rootCmd, "parse", "--output", "json", path)
	require.NoError(t, err)
	assert.Contains(t, output, "{")
	assert.Contains(t, output, "Purchase")
}

func TestParseCommand_MalformedSource(t *testing.T) {
	path := clitest.CreateTempFileWithExt(t, ".bmpp", "not a protocol at all {{{")
	defer os.Remove(path)

	rootCmd := NewRootCmd()
	_, err := clitest.ExecuteCommand(rootCmd, "parse", path)
	assert.Error(t, err)
}

func TestParseCommand_MissingFile(t *testing.T) {
	rootCmd := NewRootCmd()
	_, err := clitest.ExecuteCommand(rootCmd, "parse", "does-not-exist.bmpp")
	assert.Error(t, err)
}
