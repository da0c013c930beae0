package usecase

import (
	"context"
	"sort"
	"strconv"

	"github.com/samber/lo"
	"github.com/trebuchet-org/oracle-deployer/internal/domain"
	"github.com/trebuchet-org/oracle-deployer/internal/domain/config"
)

// ShowDeploymentsParams contains parameters for showing recorded deployments
type ShowDeploymentsParams struct {
	// AllChains shows every chain instead of only the active network
	AllChains bool
}

// ChainDeployment is the recorded state of one chain
type ChainDeployment struct {
	ChainID     uint64
	ChainKey    string
	NetworkName string
	ExplorerURL string
	Output      domain.OracleOutput
}

// ShowDeploymentsResult contains the recorded deployments
type ShowDeploymentsResult struct {
	OutputFile string
	Chains     []ChainDeployment
}

// ShowDeployments reads the output file
type ShowDeployments struct {
	config *config.RuntimeConfig
	output OutputStore
}

// NewShowDeployments creates a new ShowDeployments use case
func NewShowDeployments(cfg *config.RuntimeConfig, output OutputStore) *ShowDeployments {
	return &ShowDeployments{config: cfg, output: output}
}

// Run executes the use case
func (uc *ShowDeployments) Run(ctx context.Context, params ShowDeploymentsParams) (*ShowDeploymentsResult, error) {
	result := &ShowDeploymentsResult{OutputFile: uc.output.Path()}

	if !params.AllChains && uc.config.Network != nil {
		output, err := uc.output.Get(ctx, uc.config.Network.ChainID)
		if err != nil {
			return nil, err
		}
		result.Chains = append(result.Chains, ChainDeployment{
			ChainID:     uc.config.Network.ChainID,
			ChainKey:    domain.ChainKey(uc.config.Network.ChainID),
			NetworkName: uc.config.Network.Name,
			ExplorerURL: uc.config.Network.ExplorerURL,
			Output:      *output,
		})
		return result, nil
	}

	all, err := uc.output.Load(ctx)
	if err != nil {
		return nil, err
	}

	keys := lo.Keys(all)
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.ParseUint(keys[i], 10, 64)
		b, errB := strconv.ParseUint(keys[j], 10, 64)
		if errA != nil || errB != nil {
			return keys[i] < keys[j]
		}
		return a < b
	})

	for _, key := range keys {
		chainID, _ := strconv.ParseUint(key, 10, 64)
		entry := ChainDeployment{
			ChainID:  chainID,
			ChainKey: key,
			Output:   all[key],
		}
		if uc.config.Network != nil && uc.config.Network.ChainID == chainID {
			entry.NetworkName = uc.config.Network.Name
			entry.ExplorerURL = uc.config.Network.ExplorerURL
		} else if name, ok := uc.networkNameForChain(chainID); ok {
			entry.NetworkName = name
		}
		result.Chains = append(result.Chains, entry)
	}

	return result, nil
}

// networkNameForChain finds a configured network serving chainID
func (uc *ShowDeployments) networkNameForChain(chainID uint64) (string, bool) {
	if uc.config.ProjectConfig == nil {
		return "", false
	}
	names := lo.Keys(uc.config.ProjectConfig.Networks)
	sort.Strings(names)
	for _, name := range names {
		if uc.config.ProjectConfig.Networks[name].ChainID == chainID {
			return name, true
		}
	}
	return "", false
}
