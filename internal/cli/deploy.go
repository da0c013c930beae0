package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/oracle-deployer/internal/cli/render"
	"github.com/trebuchet-org/oracle-deployer/internal/domain"
	"github.com/trebuchet-org/oracle-deployer/internal/usecase"
)

var networkRequired = map[string]string{"network": "required"}

// NewDeployCmd creates the deploy command group
func NewDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the Oracle or a price source",
		Long: `Deploy contracts to the selected network and record their addresses.

Deploy the Oracle first, then one or more price sources. Each price source is
registered with the recorded Oracle before the output file is updated.`,
	}

	cmd.AddCommand(newDeployOracleCmd())
	cmd.AddCommand(newDeployPriceSourceCmd())

	return cmd
}

func newDeployOracleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "oracle",
		Short: "Deploy the Oracle with an empty source list",
		Long: `Deploy the Oracle contract with an empty source list and record it for the
active chain. An existing record for the chain is replaced, including its sources.

Examples:
  oracle-deployer deploy oracle --network bera_bartio
  oracle-deployer deploy oracle -n bera_bartio -y`,
		Args:        cobra.NoArgs,
		Annotations: networkRequired,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, runErr := app.DeployOracle.Run(cmd.Context(), usecase.DeployOracleParams{})

			renderer := render.NewDeployRenderer(cmd.OutOrStdout())
			if err := renderer.RenderOracle(result, runErr); err != nil {
				return err
			}
			return runErr
		},
	}
}

func newDeployPriceSourceCmd() *cobra.Command {
	var source string
	var duplicates string

	cmd := &cobra.Command{
		Use:   "price-source",
		Short: "Deploy a price source and register it with the Oracle",
		Long: `Deploy a price-source adapter using the chain's constants, append it to the
recorded Oracle's source list on-chain and record the updated list.

The Oracle must already be recorded for the active chain.

Examples:
  oracle-deployer deploy price-source --network bera_bartio
  oracle-deployer deploy price-source --source moniswap --duplicates allow`,
		Args:        cobra.NoArgs,
		Annotations: networkRequired,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.DeployPriceSourceParams{
				Kind: domain.SourceKind(source),
			}
			if duplicates != "" {
				policy, err := domain.ParseDuplicatePolicy(duplicates)
				if err != nil {
					return err
				}
				params.Policy = policy
			}

			result, runErr := app.DeployPriceSource.Run(cmd.Context(), params)

			renderer := render.NewDeployRenderer(cmd.OutOrStdout())
			if err := renderer.RenderPriceSource(result, runErr); err != nil {
				return err
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&source, "source", string(domain.SourceKindMoniswap),
		fmt.Sprintf("Price source kind to deploy (%s)", string(domain.SourceKindMoniswap)))
	cmd.Flags().StringVar(&duplicates, "duplicates", "",
		"Duplicate source policy: allow or reject (default from oracle.toml, else allow)")

	return cmd
}
