package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"mediarelay/internal/app"
	"mediarelay/internal/cli"
)

// withDevice bootstraps the application from the persistent flags, connects
// the device and runs fn. The device is closed afterwards even when fn fails.
func withDevice(cmd *cobra.Command, fn func(ctx context.Context, application *app.Application) error) (err error) {
	application, err := app.NewApplication(app.NewConfig(flags.Debug, flags.Quiet, flags.ConfigPath))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := application.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	name := application.Settings().Device.Name
	if err := cli.WithSpinner(cmd.ErrOrStderr(), flags.Quiet, "Connecting to "+name, func() error {
		return application.Connect(ctx)
	}); err != nil {
		return err
	}
	return fn(ctx, application)
}
