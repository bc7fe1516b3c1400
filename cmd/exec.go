package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"mediarelay/internal/app"
	"mediarelay/internal/cli"
)

func newExecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <command>[=args] [command[=args]...]",
		Short: "Run device commands",
		Long: `Connect to the configured device and run the given commands in order.
Arguments follow an equal sign and are separated by commas. Execution stops
at the first failing command.

Run 'mediarelay commands' for the list of commands.`,
		Example: `  mediarelay exec play
  mediarelay exec set_position=30 playing
  mediarelay exec "play_url=http://example.com/movie.mp4,30"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			commands, err := cli.ParseCommands(args)
			if err != nil {
				return err
			}
			return withDevice(cmd, func(ctx context.Context, application *app.Application) error {
				return cli.NewDispatcher(application.Facade(), cmd.OutOrStdout()).Run(ctx, commands)
			})
		},
	}
}
