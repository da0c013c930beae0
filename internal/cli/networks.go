package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/oracle-deployer/internal/cli/render"
	"github.com/trebuchet-org/oracle-deployer/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List networks from oracle.toml",
		Long: `List all networks configured in the [networks] section of oracle.toml.

The active network is marked. Networks whose settings cannot be resolved are
listed with the error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			// Run use case
			params := usecase.ListNetworksParams{}
			result, err := app.ListNetworks.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			// Render output
			renderer := render.NewNetworksRenderer(cmd.OutOrStdout())
			return renderer.RenderNetworksList(result)
		},
	}

	return cmd
}
