package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/oracle-deployer/internal/domain"
	"github.com/trebuchet-org/oracle-deployer/internal/domain/config"
	"github.com/trebuchet-org/oracle-deployer/internal/domain/models"
)

// DeployPriceSourceParams contains parameters for deploying a price source
type DeployPriceSourceParams struct {
	Kind domain.SourceKind
	// Policy overrides the configured duplicate policy when set
	Policy domain.DuplicatePolicy
}

// DeployPriceSourceResult contains the result of deploying a price source
type DeployPriceSourceResult struct {
	Network      *config.Network
	Kind         domain.SourceKind
	Oracle       string
	Deployment   *models.DeploymentResult
	Registration *models.TransactionResult
	Output       domain.OracleOutput
	OutputFile   string
	Recorded     bool
}

// DeployPriceSource deploys a price-source adapter, registers it with the
// Oracle and records the updated source list
type DeployPriceSource struct {
	config    *config.RuntimeConfig
	artifacts ArtifactRepository
	deployer  ContractDeployer
	output    OutputStore
	constants ConstantsStore
	confirmer Confirmer
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployPriceSource creates a new DeployPriceSource use case
func NewDeployPriceSource(
	cfg *config.RuntimeConfig,
	artifacts ArtifactRepository,
	deployer ContractDeployer,
	output OutputStore,
	constants ConstantsStore,
	confirmer Confirmer,
	progress ProgressSink,
	log *slog.Logger,
) *DeployPriceSource {
	return &DeployPriceSource{
		config:    cfg,
		artifacts: artifacts,
		deployer:  deployer,
		output:    output,
		constants: constants,
		confirmer: confirmer,
		progress:  progress,
		log:       log,
	}
}

// preparedSource holds everything validated before the first transaction
type preparedSource struct {
	spec     domain.SourceSpec
	args     []any
	deployed domain.OracleOutput
	oracle   ContractHandle
	policy   domain.DuplicatePolicy
}

// Run executes the use case.
// Every precondition is checked before the first transaction is sent. When the
// source is deployed but the Oracle update or the output write fails, the
// result is returned together with a *domain.DeploymentNotRecordedError.
func (uc *DeployPriceSource) Run(ctx context.Context, params DeployPriceSourceParams) (*DeployPriceSourceResult, error) {
	network, err := requireNetwork(uc.config)
	if err != nil {
		return nil, err
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageResolving, Message: "Checking preconditions"})
	prep, err := uc.prepare(ctx, network, params)
	if err != nil {
		return nil, err
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageConnecting, Message: "Connecting to " + network.Name, Spinner: true})
	if err := uc.deployer.Connect(ctx); err != nil {
		return nil, err
	}
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageConnecting, Message: "Connected to " + network.Name})

	ok, err := confirmBroadcast(ctx, uc.config, uc.confirmer,
		fmt.Sprintf("Deploy %s to %s (chain %d) and register it with Oracle %s",
			prep.spec.ContractName, network.Name, network.ChainID, prep.deployed.Oracle))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCancelled
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageDeploying, Message: "Deploying " + prep.spec.ContractName, Spinner: true})
	deployment, err := uc.deployer.Deploy(ctx, prep.spec.ContractName, prep.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", prep.spec.ContractName, err)
	}
	uc.log.Info("contract deployed",
		"contract", deployment.ContractName,
		"address", deployment.Address.Hex(),
		"tx", deployment.TxHash.Hex(),
	)

	result := &DeployPriceSourceResult{
		Network:    network,
		Kind:       prep.spec.Kind,
		Oracle:     prep.deployed.Oracle,
		Deployment: deployment,
		Output:     prep.deployed,
		OutputFile: uc.output.Path(),
	}

	notRecorded := func(err error) error {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})
		return &domain.DeploymentNotRecordedError{
			ChainID:  network.ChainID,
			Contract: prep.spec.ContractName,
			Address:  deployment.Address.Hex(),
			Output:   result.Output,
			Err:      err,
		}
	}

	updated, err := prep.deployed.WithSource(deployment.Address, prep.policy)
	if err != nil {
		return result, notRecorded(err)
	}
	result.Output = updated

	sources, err := updated.SourceAddresses()
	if err != nil {
		return result, notRecorded(err)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageRegistering, Message: "Updating Oracle price sources", Spinner: true})
	registration, err := prep.oracle.Transact(ctx, domain.SetPriceSourcesFunc, sources)
	if err != nil {
		uc.log.Error("failed to update oracle sources", "oracle", prep.deployed.Oracle, "error", err)
		return result, notRecorded(fmt.Errorf("%w: %w", domain.ErrSetterFailed, err))
	}
	result.Registration = registration
	uc.log.Info("oracle sources updated",
		"oracle", prep.deployed.Oracle,
		"sources", len(sources),
		"tx", registration.TxHash.Hex(),
	)

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageRecording, Message: "Recording deployment"})
	if err := uc.output.Record(ctx, network.ChainID, updated); err != nil {
		uc.log.Error("error writing output file", "file", uc.output.Path(), "error", err)
		return result, notRecorded(err)
	}
	result.Recorded = true

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})
	return result, nil
}

// prepare validates constants, the prior deployment and artifacts
func (uc *DeployPriceSource) prepare(ctx context.Context, network *config.Network, params DeployPriceSourceParams) (*preparedSource, error) {
	kind := params.Kind
	if kind == "" {
		kind = domain.SourceKindMoniswap
	}
	spec, err := domain.LookupSourceSpec(kind)
	if err != nil {
		return nil, err
	}

	policy := params.Policy
	if policy == "" {
		policy = uc.config.DuplicatePolicy
	}

	constants, err := uc.constants.Get(ctx, network.ChainID)
	if err != nil {
		return nil, err
	}
	args, err := spec.Args(*constants)
	if err != nil {
		return nil, fmt.Errorf("chain %d in %s: %w", network.ChainID, uc.constants.Path(), err)
	}

	deployed, err := uc.output.Get(ctx, network.ChainID)
	if err != nil {
		return nil, err
	}
	oracleAddress, err := deployed.OracleAddress()
	if err != nil {
		return nil, fmt.Errorf("chain %d in %s: %w", network.ChainID, uc.output.Path(), err)
	}
	if _, err := deployed.SourceAddresses(); err != nil {
		return nil, fmt.Errorf("chain %d in %s: %w", network.ChainID, uc.output.Path(), err)
	}
	if err := deployed.CheckDuplicates(policy); err != nil {
		return nil, fmt.Errorf("chain %d in %s: %w", network.ChainID, uc.output.Path(), err)
	}

	source, err := uc.artifacts.GetContract(ctx, spec.ContractName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s artifact: %w", spec.ContractName, err)
	}
	if !source.Deployable() {
		return nil, fmt.Errorf("%s artifact has no creation bytecode", spec.ContractName)
	}

	oracle, err := uc.deployer.ContractAt(ctx, domain.OracleContractName, oracleAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to bind %s at %s: %w", domain.OracleContractName, oracleAddress.Hex(), err)
	}

	return &preparedSource{
		spec:     spec,
		args:     args,
		deployed: *deployed,
		oracle:   oracle,
		policy:   policy,
	}, nil
}
