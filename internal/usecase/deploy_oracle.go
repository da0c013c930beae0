package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/oracle-deployer/internal/domain"
	"github.com/trebuchet-org/oracle-deployer/internal/domain/config"
	"github.com/trebuchet-org/oracle-deployer/internal/domain/models"
)

// ErrCancelled is returned when the operator declines the broadcast
var ErrCancelled = errors.New("deployment cancelled")

// DeployOracleParams contains parameters for deploying the Oracle
type DeployOracleParams struct{}

// DeployOracleResult contains the result of deploying the Oracle
type DeployOracleResult struct {
	Network    *config.Network
	Deployment *models.DeploymentResult
	Output     domain.OracleOutput
	OutputFile string
	Recorded   bool
}

// DeployOracle deploys the Oracle contract with an empty source list and records it
type DeployOracle struct {
	config    *config.RuntimeConfig
	artifacts ArtifactRepository
	deployer  ContractDeployer
	output    OutputStore
	confirmer Confirmer
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployOracle creates a new DeployOracle use case
func NewDeployOracle(
	cfg *config.RuntimeConfig,
	artifacts ArtifactRepository,
	deployer ContractDeployer,
	output OutputStore,
	confirmer Confirmer,
	progress ProgressSink,
	log *slog.Logger,
) *DeployOracle {
	return &DeployOracle{
		config:    cfg,
		artifacts: artifacts,
		deployer:  deployer,
		output:    output,
		confirmer: confirmer,
		progress:  progress,
		log:       log,
	}
}

// Run executes the use case.
// When the contract is deployed but cannot be recorded, the result is returned
// together with a *domain.DeploymentNotRecordedError.
func (uc *DeployOracle) Run(ctx context.Context, params DeployOracleParams) (*DeployOracleResult, error) {
	network, err := requireNetwork(uc.config)
	if err != nil {
		return nil, err
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageResolving, Message: "Resolving Oracle artifact"})
	contract, err := uc.artifacts.GetContract(ctx, domain.OracleContractName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s artifact: %w", domain.OracleContractName, err)
	}
	if !contract.Deployable() {
		return nil, fmt.Errorf("%s artifact has no creation bytecode", domain.OracleContractName)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageConnecting, Message: "Connecting to " + network.Name, Spinner: true})
	if err := uc.deployer.Connect(ctx); err != nil {
		return nil, err
	}
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageConnecting, Message: "Connected to " + network.Name})

	ok, err := confirmBroadcast(ctx, uc.config, uc.confirmer,
		fmt.Sprintf("Deploy %s to %s (chain %d)", domain.OracleContractName, network.Name, network.ChainID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCancelled
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageDeploying, Message: "Deploying " + domain.OracleContractName, Spinner: true})
	deployment, err := uc.deployer.Deploy(ctx, domain.OracleContractName, []common.Address{})
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", domain.OracleContractName, err)
	}
	uc.log.Info("contract deployed",
		"contract", deployment.ContractName,
		"address", deployment.Address.Hex(),
		"tx", deployment.TxHash.Hex(),
	)

	result := &DeployOracleResult{
		Network:    network,
		Deployment: deployment,
		Output:     domain.NewOracleOutput(deployment.Address),
		OutputFile: uc.output.Path(),
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageRecording, Message: "Recording deployment"})
	if err := uc.output.Record(ctx, network.ChainID, result.Output); err != nil {
		uc.log.Error("error writing output file", "file", uc.output.Path(), "error", err)
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})
		return result, &domain.DeploymentNotRecordedError{
			ChainID:  network.ChainID,
			Contract: domain.OracleContractName,
			Address:  deployment.Address.Hex(),
			Output:   result.Output,
			Err:      err,
		}
	}
	result.Recorded = true

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})
	return result, nil
}

// requireNetwork checks that a network with a deployer key is selected
func requireNetwork(cfg *config.RuntimeConfig) (*config.Network, error) {
	if cfg.Network == nil {
		return nil, fmt.Errorf("no network selected: use --network or set default_network in oracle.toml")
	}
	if err := cfg.Network.RequireSigner(); err != nil {
		return nil, err
	}
	return cfg.Network, nil
}

// confirmBroadcast asks for confirmation unless running non-interactively
func confirmBroadcast(ctx context.Context, cfg *config.RuntimeConfig, confirmer Confirmer, message string) (bool, error) {
	if cfg.NonInteractive || confirmer == nil {
		return true, nil
	}
	return confirmer.Confirm(ctx, message)
}
