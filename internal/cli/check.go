package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/oracle-deployer/internal/cli/render"
	"github.com/trebuchet-org/oracle-deployer/internal/usecase"
)

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify recorded addresses have code on-chain",
		Long: `Check that the Oracle and every price source recorded for the active chain
have contract code at their addresses.

Exits with an error when any recorded address has no code.`,
		Args:        cobra.NoArgs,
		Annotations: networkRequired,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.CheckDeployments.Run(cmd.Context(), usecase.CheckDeploymentsParams{})
			if err != nil {
				return err
			}

			if err := render.NewCheckRenderer(cmd.OutOrStdout()).Render(result); err != nil {
				return err
			}
			if !result.Healthy() {
				return fmt.Errorf("recorded deployments on chain %d are not all present", result.Network.ChainID)
			}
			return nil
		},
	}
}
