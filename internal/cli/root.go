package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/oracle-deployer/internal/adapters/interactive"
	"github.com/trebuchet-org/oracle-deployer/internal/app"
	"github.com/trebuchet-org/oracle-deployer/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "oracle-deployer",
		Short: "Deploy the Oracle and its price sources",
		Long: `oracle-deployer deploys the Oracle contract and its price-source adapters
to an EVM network and records the resulting addresses in a chain-keyed JSON file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if skipsApp(cmd) {
				return nil
			}

			// Find project root
			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				// init may run before a project exists
				if cmd.Name() != "init" {
					return err
				}
				projectRoot = "."
			}

			// Set up viper
			v := config.SetupViper(projectRoot)

			// Bind global flags that have been set
			bindGlobalFlags(v, cmd)

			if needsNetwork(cmd) {
				if err := selectNetwork(v, projectRoot); err != nil {
					return err
				}
			}

			// Initialize app with DI
			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			cancels := []context.CancelFunc{stop}

			// Add timeout if configured
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cancels = append(cancels, cancel)
			}

			// Release the context on command completion
			cmd.PostRun = func(cmd *cobra.Command, args []string) {
				for _, cancel := range cancels {
					cancel()
				}
			}

			cmd.SetContext(ctx)

			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().BoolP("non-interactive", "y", false, "Disable interactive prompts and confirmations")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (a name from oracle.toml [networks])")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort the command after this duration (default 5m)")

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	showCmd := NewShowCmd()
	showCmd.GroupID = "main"
	rootCmd.AddCommand(showCmd)

	checkCmd := NewCheckCmd()
	checkCmd.GroupID = "main"
	rootCmd.AddCommand(checkCmd)

	// Management commands
	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	initCmd := NewInitCmd()
	initCmd.GroupID = "management"
	rootCmd.AddCommand(initCmd)

	// Version command
	versionCmd := NewVersionCmd()
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// skipsApp reports whether cmd runs without a project
func skipsApp(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return true
	}
	// Group commands with no RunE only print help
	return cmd.RunE == nil && cmd.Run == nil
}

// needsNetwork reports whether cmd talks to a chain
func needsNetwork(cmd *cobra.Command) bool {
	return cmd.Annotations["network"] == "required"
}

// globalFlagKeys maps global flags to their viper keys
var globalFlagKeys = map[string]string{
	"debug":           "debug",
	"non-interactive": "non_interactive",
	"network":         "network",
	"timeout":         "timeout",
}

// bindGlobalFlags binds command flags to viper
func bindGlobalFlags(v *viper.Viper, cmd *cobra.Command) {
	// Only bind flags that have been changed
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if key, ok := globalFlagKeys[f.Name]; ok {
			v.Set(key, f.Value.String())
		}
	})
}

// selectNetwork prompts for a network when none is given and the project
// has several without a default
func selectNetwork(v *viper.Viper, projectRoot string) error {
	if v.GetString("network") != "" || v.GetBool("non_interactive") {
		return nil
	}

	names, defaultNetwork, err := config.NetworkChoices(projectRoot)
	if err != nil {
		return err
	}
	if defaultNetwork != "" || len(names) < 2 {
		return nil
	}

	selected, err := interactive.SelectNetwork(names)
	if err != nil {
		return fmt.Errorf("failed to select network: %w", err)
	}
	v.Set("network", selected)
	return nil
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
