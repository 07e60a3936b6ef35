package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUICmd_Exists(t *testing.T) {
	// Verify the tui command is registered
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "tui" {
			found = true
			break
		}
	}
	assert.True(t, found, "tui command should be registered")
}

func TestTUICmd_ShortDescription(t *testing.T) {
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
}

func TestTUICmd_LongDescription(t *testing.T) {
	assert.Contains(t, tuiCmd.Long, "interactive terminal user interface")
	assert.Contains(t, tuiCmd.Long, "Controls:")
}

func TestTUIPorts_FromServices(t *testing.T) {
	setupTestServices(t)

	ports := tuiPorts()
	require.NoError(t, ports.Validate())
	assert.NotNil(t, ports.Numerology)
	assert.NotNil(t, ports.Oracle)
	assert.NotNil(t, ports.Blog)
	assert.NotNil(t, ports.Share)
	assert.NotNil(t, ports.Settings)
}

func TestTUICmd_RequiresNumerology(t *testing.T) {
	SetServices(nil)

	_, err := execute(t, "tui")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "numerology service not configured")
}

func TestTUICmd_HelpOutput(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"tui", "--help"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "interactive terminal user interface")
	assert.Contains(t, output, "Controls:")
}
