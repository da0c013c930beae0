package app

import (
	"log/slog"

	"github.com/trebuchet-org/oracle-deployer/internal/domain/config"
	"github.com/trebuchet-org/oracle-deployer/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	DeployOracle      *usecase.DeployOracle
	DeployPriceSource *usecase.DeployPriceSource
	ShowDeployments   *usecase.ShowDeployments
	ListNetworks      *usecase.ListNetworks
	CheckDeployments  *usecase.CheckDeployments
	InitProject       *usecase.InitProject
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	deployOracle *usecase.DeployOracle,
	deployPriceSource *usecase.DeployPriceSource,
	showDeployments *usecase.ShowDeployments,
	listNetworks *usecase.ListNetworks,
	checkDeployments *usecase.CheckDeployments,
	initProject *usecase.InitProject,
) (*App, error) {
	return &App{
		Config:            cfg,
		Log:               log,
		DeployOracle:      deployOracle,
		DeployPriceSource: deployPriceSource,
		ShowDeployments:   showDeployments,
		ListNetworks:      listNetworks,
		CheckDeployments:  checkDeployments,
		InitProject:       initProject,
	}, nil
}
