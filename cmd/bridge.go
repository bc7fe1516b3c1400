package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mediarelay/internal/app"
	"mediarelay/internal/bridge"
)

func newBridgeCmd() *cobra.Command {
	var broker string
	cmd := &cobra.Command{
		Use:   "bridge",
		Short: "Publish device events to an MQTT broker",
		Long: `Connect to the configured device and publish power, playing and
connection events to the MQTT broker from the bridge section of the
configuration. Runs until interrupted.

Topics are <topicPrefix>/<device>/power, .../playing, .../playing/error
and .../connection.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDevice(cmd, func(ctx context.Context, application *app.Application) error {
				settings := application.Settings().Bridge
				if broker != "" {
					settings.Broker = broker
				}
				if settings.Broker == "" {
					return errors.New("no MQTT broker configured: set bridge.broker or pass --broker")
				}

				publisher, err := bridge.NewMQTTPublisher(settings)
				if err != nil {
					return err
				}
				defer publisher.Close()

				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()
				return application.RunBridge(ctx, publisher)
			})
		},
	}
	cmd.Flags().StringVar(&broker, "broker", "", "MQTT broker URL, overrides bridge.broker (e.g. tcp://localhost:1883)")
	return cmd
}
