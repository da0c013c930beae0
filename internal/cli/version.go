package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/oracle-deployer/internal/config"
)

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of oracle-deployer",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "oracle-deployer version %s (commit %s, built %s)\n",
				config.Version, config.Commit, config.Date)
		},
	}
}
