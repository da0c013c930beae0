package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/oracle-deployer/internal/adapters/blockchain"
	internalconfig "github.com/trebuchet-org/oracle-deployer/internal/adapters/config"
	"github.com/trebuchet-org/oracle-deployer/internal/adapters/fs"
	"github.com/trebuchet-org/oracle-deployer/internal/adapters/interactive"
	"github.com/trebuchet-org/oracle-deployer/internal/adapters/progress"
	"github.com/trebuchet-org/oracle-deployer/internal/adapters/repository/contracts"
	"github.com/trebuchet-org/oracle-deployer/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewOutputStoreAdapter,
	wire.Bind(new(usecase.OutputStore), new(*fs.OutputStoreAdapter)),

	fs.NewConstantsStoreAdapter,
	wire.Bind(new(usecase.ConstantsStore), new(*fs.ConstantsStoreAdapter)),
)

// RepositorySet provides artifact lookup
var RepositorySet = wire.NewSet(
	contracts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*contracts.Repository)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.Confirmer), new(*interactive.SelectorAdapter)),
)

// ProgressSet provides progress reporting
var ProgressSet = wire.NewSet(
	progress.NewProgressSink,
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewCheckerAdapter,
	wire.Bind(new(usecase.BlockchainChecker), new(*blockchain.CheckerAdapter)),

	blockchain.NewDeployerAdapter,
	wire.Bind(new(usecase.ContractDeployer), new(*blockchain.DeployerAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	RepositorySet,
	InteractiveSet,
	ProgressSet,
	ConfigSet,
	BlockchainSet,
)
