//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/oracle-deployer/internal/adapters"
	"github.com/trebuchet-org/oracle-deployer/internal/config"
	"github.com/trebuchet-org/oracle-deployer/internal/logging"
	"github.com/trebuchet-org/oracle-deployer/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		config.ProvideNetworkResolver,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployOracle,
		usecase.NewDeployPriceSource,
		usecase.NewShowDeployments,
		usecase.NewListNetworks,
		usecase.NewCheckDeployments,
		usecase.NewInitProject,

		// App
		NewApp,
	)
	return nil, nil
}
