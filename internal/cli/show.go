package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/oracle-deployer/internal/cli/render"
	"github.com/trebuchet-org/oracle-deployer/internal/usecase"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var all bool
	var jsonOutput bool
	var yamlOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show recorded Oracle and price-source addresses",
		Long: `Show the addresses recorded in the output file.

By default only the active network's chain is shown. Use --all to show every
recorded chain.

Examples:
  oracle-deployer show
  oracle-deployer show --all --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput && yamlOutput {
				return fmt.Errorf("--json and --yaml are mutually exclusive")
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowDeployments.Run(cmd.Context(), usecase.ShowDeploymentsParams{
				AllChains: all,
			})
			if err != nil {
				return err
			}

			format := render.FormatTable
			switch {
			case jsonOutput:
				format = render.FormatJSON
			case yamlOutput:
				format = render.FormatYAML
			}

			return render.NewShowRenderer(cmd.OutOrStdout(), format).Render(result)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Show every recorded chain")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&yamlOutput, "yaml", false, "Output as YAML")

	return cmd
}
