package cmd

import (
	"github.com/spf13/cobra"

	"mediarelay/internal/cli"
)

// newVersionCmd creates the Cobra command for displaying the application version.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of mediarelay",
		Long: `All software has versions. This is mediarelay's.

With --output json or yaml the version is printed as a document with a
single version key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.ToOutputOptions()
			if err != nil {
				return err
			}
			return cli.RenderVersion(cmd.OutOrStdout(), rootCmd.Version, opts)
		},
	}
}
