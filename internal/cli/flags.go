package cli

import (
	"github.com/spf13/cobra"

	"mediarelay/internal/config"
)

// CommandFlags holds the flag values shared by every command that talks to
// the configured device.
type CommandFlags struct {
	// OutputFormat specifies the listing format (table, plain, json, yaml)
	OutputFormat string
	// NoHeaders suppresses the header row in table output
	NoHeaders bool
	// NoColor disables ANSI colors
	NoColor bool
	// Quiet suppresses progress indicators and log output
	Quiet bool
	// Debug enables debug logging
	Debug bool
	// ConfigPath is the directory holding config.yaml
	ConfigPath string
}

// RegisterCommonFlags registers the flags shared by all commands as
// persistent flags of cmd.
//
// The registered flags are:
//   - --output/-o: Output format (table, plain, json, yaml), default: "table"
//   - --no-headers: Suppress header row in table output
//   - --no-color: Disable colored output
//   - --quiet/-q: Suppress progress indicators and logs
//   - --debug: Enable debug logging
//   - --config-path: Configuration directory
func RegisterCommonFlags(cmd *cobra.Command, flags *CommandFlags) {
	cmd.PersistentFlags().StringVarP(&flags.OutputFormat, "output", "o", string(OutputFormatTable), "Output format (table, plain, json, yaml)")
	cmd.PersistentFlags().BoolVar(&flags.NoHeaders, "no-headers", false, "Suppress header row in table output")
	cmd.PersistentFlags().BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress progress indicators and logs")
	cmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.ConfigPath, "config-path", config.GetDefaultConfigPathOrPanic(), "Configuration directory")
}

// ToOutputOptions converts the output related flags.
func (f *CommandFlags) ToOutputOptions() (OutputOptions, error) {
	format, err := ParseOutputFormat(f.OutputFormat)
	if err != nil {
		return OutputOptions{}, err
	}
	return OutputOptions{Format: format, NoHeaders: f.NoHeaders, NoColor: f.NoColor}, nil
}
