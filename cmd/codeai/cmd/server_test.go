package cmd

import (
	"testing"

	clitest "github.com/bargom/codeai/cmd/codeai/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerCommand_DefaultAddr(t *testing.T) {
	cmd := newServerCmd()
	flag := cmd.Flags().Lookup("addr")
	require.NotNil(t, flag)
	assert.Equal(t, ":8080", flag.DefValue)
}

func TestServerCommand_Help(t *testing.T) {
	rootCmd := NewRootCmd()
	output, err := clitest.ExecuteCommand(rootCmd, "server", "--help")
	require.NoError(t, err)
	assert.Contains(t, output, "/v1/parse")
}
