package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/oracle-deployer/internal/domain"
	"github.com/trebuchet-org/oracle-deployer/internal/domain/config"
)

// CheckDeploymentsParams contains parameters for checking recorded deployments
type CheckDeploymentsParams struct{}

// CheckStatus is the on-chain state of one recorded address
type CheckStatus string

const (
	CheckStatusDeployed CheckStatus = "deployed"
	CheckStatusMissing  CheckStatus = "missing"
	CheckStatusError    CheckStatus = "error"
)

// AddressCheck is the check result for one recorded address
type AddressCheck struct {
	Role    string // "Oracle" or "Sources[i]"
	Address string
	Status  CheckStatus
	Reason  string
}

// CheckDeploymentsResult contains the result of checking recorded deployments
type CheckDeploymentsResult struct {
	Network    *config.Network
	Checks     []AddressCheck
	Duplicates []string
}

// Healthy reports whether every recorded address has code
func (r *CheckDeploymentsResult) Healthy() bool {
	for _, c := range r.Checks {
		if c.Status != CheckStatusDeployed {
			return false
		}
	}
	return true
}

// CheckDeployments verifies that code exists at every recorded address of the active chain
type CheckDeployments struct {
	config  *config.RuntimeConfig
	output  OutputStore
	checker BlockchainChecker
}

// NewCheckDeployments creates a new CheckDeployments use case
func NewCheckDeployments(cfg *config.RuntimeConfig, output OutputStore, checker BlockchainChecker) *CheckDeployments {
	return &CheckDeployments{config: cfg, output: output, checker: checker}
}

// Run executes the use case
func (uc *CheckDeployments) Run(ctx context.Context, params CheckDeploymentsParams) (*CheckDeploymentsResult, error) {
	network := uc.config.Network
	if network == nil {
		return nil, fmt.Errorf("no network selected: use --network or set default_network in oracle.toml")
	}

	recorded, err := uc.output.Get(ctx, network.ChainID)
	if err != nil {
		return nil, err
	}

	if err := uc.checker.Connect(ctx, network.RPCURL, network.ChainID); err != nil {
		return nil, err
	}

	result := &CheckDeploymentsResult{
		Network:    network,
		Duplicates: recorded.DuplicateSources(),
	}

	result.Checks = append(result.Checks, uc.check(ctx, domain.OracleContractName, recorded.Oracle))
	for i, source := range recorded.Sources {
		result.Checks = append(result.Checks, uc.check(ctx, fmt.Sprintf("Sources[%d]", i), source))
	}

	return result, nil
}

func (uc *CheckDeployments) check(ctx context.Context, role, address string) AddressCheck {
	check := AddressCheck{Role: role, Address: address}

	exists, reason, err := uc.checker.CheckDeploymentExists(ctx, address)
	switch {
	case err != nil:
		check.Status = CheckStatusError
		check.Reason = err.Error()
	case exists:
		check.Status = CheckStatusDeployed
	default:
		check.Status = CheckStatusMissing
		check.Reason = reason
	}

	return check
}
