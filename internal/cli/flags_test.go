package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCommonFlags(t *testing.T) {
	var flags CommandFlags
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	RegisterCommonFlags(cmd, &flags)

	cmd.SetArgs([]string{"-o", "plain", "--no-headers", "-q", "--config-path", "/tmp/x"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "plain", flags.OutputFormat)
	assert.True(t, flags.NoHeaders)
	assert.True(t, flags.Quiet)
	assert.False(t, flags.Debug)
	assert.Equal(t, "/tmp/x", flags.ConfigPath)

	opts, err := flags.ToOutputOptions()
	require.NoError(t, err)
	assert.Equal(t, OutputOptions{Format: OutputFormatPlain, NoHeaders: true}, opts)
}

func TestToOutputOptions_Invalid(t *testing.T) {
	flags := CommandFlags{OutputFormat: "csv"}
	_, err := flags.ToOutputOptions()
	assert.Error(t, err)
}
