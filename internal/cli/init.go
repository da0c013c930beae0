package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/oracle-deployer/internal/cli/render"
	"github.com/trebuchet-org/oracle-deployer/internal/usecase"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty output file",
		Long: `Create the output directory and an empty output file if they do not exist.

The deploy commands never create the output file; run init once per project.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.InitProject.Run(cmd.Context(), usecase.InitProjectParams{})
			if err != nil {
				return err
			}

			if result.Created {
				fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess("Created "+result.OutputFile))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), render.FormatWarning(result.OutputFile+" already exists, left unchanged"))
			}
			return nil
		},
	}
}
