package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mediarelay/internal/api"
	"mediarelay/internal/app"
	"mediarelay/internal/cli"
	"mediarelay/internal/config"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeConfig indicates the configuration could not be loaded or has no device.
	ExitCodeConfig = 2
	// ExitCodeUnsupported indicates no protocol provides the requested operation.
	ExitCodeUnsupported = 3
	// ExitCodeConnection indicates a protocol failed to connect or lost its connection.
	ExitCodeConnection = 4
)

// flags holds the persistent flags shared by all subcommands.
var flags cli.CommandFlags

// rootCmd represents the base command for the mediarelay application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mediarelay",
	Short: "Control a media device through all of its protocols at once",
	Long: `mediarelay connects to every protocol a media device exposes
(MRP, DMAP, AirPlay, Companion, RAOP) and relays each call to the
highest priority protocol that supports it.

Use 'mediarelay exec' to run device commands, 'mediarelay features' to see
what the device supports and 'mediarelay bridge' to publish device events
to an MQTT broker.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
	// Errors are printed by Execute with guidance for the user.
	SilenceErrors: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mediarelay version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", cli.FormatError(err))
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case api.IsUnsupported(err):
		return ExitCodeUnsupported
	case api.IsConnectionError(err):
		return ExitCodeConnection
	case config.IsConfigurationError(err), errors.Is(err, app.ErrNoDevice):
		return ExitCodeConfig
	}
	return ExitCodeError
}

func init() {
	cli.RegisterCommonFlags(rootCmd, &flags)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCommandsCmd())
	rootCmd.AddCommand(newExecCmd())
	rootCmd.AddCommand(newFeaturesCmd())
	rootCmd.AddCommand(newBridgeCmd())
}
