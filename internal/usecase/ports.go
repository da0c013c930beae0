package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/oracle-deployer/internal/domain"
	"github.com/trebuchet-org/oracle-deployer/internal/domain/config"
	"github.com/trebuchet-org/oracle-deployer/internal/domain/models"
)

// ArtifactRepository provides access to compiled contracts by name
type ArtifactRepository interface {
	GetContract(ctx context.Context, name string) (*models.Contract, error)
}

// ContractDeployer submits contract creations and binds deployed contracts.
// Implementations are bound to the active network and its deployer account.
type ContractDeployer interface {
	// Connect dials the network and checks that it serves the configured chain
	Connect(ctx context.Context) error
	// Deploy creates the named contract and waits until it is mined
	Deploy(ctx context.Context, contractName string, args ...any) (*models.DeploymentResult, error)
	// ContractAt binds the named contract's ABI to address without touching the network
	ContractAt(ctx context.Context, contractName string, address common.Address) (ContractHandle, error)
}

// ContractHandle is a contract bound to an address
type ContractHandle interface {
	Address() common.Address
	// Transact sends a state-changing call and waits for its receipt
	Transact(ctx context.Context, method string, args ...any) (*models.TransactionResult, error)
}

// OutputStore persists the chain-keyed Oracle deployment records
type OutputStore interface {
	Path() string
	// Exists reports whether the output file is present
	Exists(ctx context.Context) (bool, error)
	// Load returns every chain entry in the output file
	Load(ctx context.Context) (map[string]domain.OracleOutput, error)
	// Get returns the entry for chainID or an UnsupportedChainError
	Get(ctx context.Context, chainID uint64) (*domain.OracleOutput, error)
	// Record merges the entry for chainID into the existing output file.
	// It never creates the file.
	Record(ctx context.Context, chainID uint64, output domain.OracleOutput) error
	// Init creates an empty output file if none exists
	Init(ctx context.Context) (created bool, err error)
}

// ConstantsStore provides the static per-chain DEX addresses
type ConstantsStore interface {
	Path() string
	Get(ctx context.Context, chainID uint64) (*domain.SourceConstants, error)
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}

// BlockchainChecker checks on-chain state of contracts
type BlockchainChecker interface {
	Connect(ctx context.Context, rpcURL string, chainID uint64) error
	CheckDeploymentExists(ctx context.Context, address string) (exists bool, reason string, err error)
}

// Confirmer asks the operator to approve a broadcast
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// Progress tracking interfaces

// ExecutionStage represents a stage in the execution process
type ExecutionStage string

const (
	StageResolving   ExecutionStage = "Resolving"
	StageConnecting  ExecutionStage = "Connecting"
	StageDeploying   ExecutionStage = "Deploying"
	StageRegistering ExecutionStage = "Registering"
	StageRecording   ExecutionStage = "Recording"
	StageCompleted   ExecutionStage = "Completed"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   ExecutionStage
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
