package powsim_test

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/powsim/powsim/cmd/powsim"
)

func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	_, err = root.ExecuteC()
	return buf.String(), err
}

func TestRootCmd(t *testing.T) {
	// Show help
	output, err := executeCommand(powsim.RootCmd)
	assert.NoError(t, err)
	assert.Contains(t, output, "powsim simulates a proof-of-work blockchain")

	// Test invalid logLevel
	_, err = executeCommand(powsim.RootCmd, "version", "--logLevel", "invalid")
	assert.Error(t, err)
	assert.ErrorContains(t, err, "invalid log level: invalid. Valid log levels are: debug|error|info|warn")
}

func TestVersionCmd(t *testing.T) {
	output, err := executeCommand(powsim.RootCmd, "version", "--logLevel", "info")
	assert.NoError(t, err)
	assert.Contains(t, output, "powsim dev")
}

func TestMineCmdRequiresStateFiles(t *testing.T) {
	_, err := executeCommand(powsim.RootCmd, "mine",
		"--chain-state", "", "--chain-state-output", "", "--mempool", "", "--mempool-output", "")
	assert.Error(t, err)
	assert.ErrorContains(t, err, "invalid mine configuration")
}
