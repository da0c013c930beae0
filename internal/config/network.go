package config

import (
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/trebuchet-org/oracle-deployer/internal/domain"
	"github.com/trebuchet-org/oracle-deployer/internal/domain/config"
)

// NetworkResolver resolves network names from oracle.toml to runtime networks
type NetworkResolver struct {
	projectConfig *config.ProjectConfig
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(projectConfig *config.ProjectConfig) *NetworkResolver {
	return &NetworkResolver{projectConfig: projectConfig}
}

// Names returns the configured network names in sorted order
func (r *NetworkResolver) Names() []string {
	names := lo.Keys(r.projectConfig.Networks)
	sort.Strings(names)
	return names
}

// Resolve resolves a network name to its configuration.
// All fields are validated here so that no network call is attempted with a
// half-configured network.
func (r *NetworkResolver) Resolve(networkName string) (*config.Network, error) {
	raw, exists := r.projectConfig.Networks[networkName]
	if !exists {
		return nil, r.unknownNetworkError(networkName)
	}

	rpcURL, missing := expandValue(raw.URL)
	if missing != "" {
		return nil, fmt.Errorf("network %s: url references %s, which is not set", networkName, missing)
	}
	if rpcURL == "" {
		return nil, fmt.Errorf("network %s: url is required", networkName)
	}

	if raw.ChainID == 0 {
		return nil, fmt.Errorf("network %s: %w: chain_id is required", networkName, domain.ErrInvalidChainID)
	}

	gas, err := parseGasSettings(raw)
	if err != nil {
		return nil, fmt.Errorf("network %s: %w", networkName, err)
	}

	network := &config.Network{
		Name:        networkName,
		ChainID:     raw.ChainID,
		RPCURL:      rpcURL,
		ExplorerURL: r.getExplorerURL(networkName, raw.ChainID),
		Gas:         gas,
	}

	// Without an explicit private_key, fall back to the conventional <NETWORK>_PRIVATE_KEY
	if strings.TrimSpace(raw.PrivateKey) == "" {
		raw.PrivateKey = "${" + GenerateEnvVarName(networkName) + "}"
	}
	if envName, ok := DetectEnvVar(strings.TrimSpace(raw.PrivateKey)); ok {
		network.PrivateKeyEnv = envName
	}

	// A missing key is reported by RequireSigner; read-only commands don't need one
	if keyValue, missing := expandValue(raw.PrivateKey); missing == "" && keyValue != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(keyValue), "0x"))
		if err != nil {
			return nil, fmt.Errorf("network %s: invalid private key: %w", networkName, err)
		}
		network.PrivateKey = key
	}

	return network, nil
}

// unknownNetworkError builds a not-found error with close matches as suggestions
func (r *NetworkResolver) unknownNetworkError(networkName string) error {
	names := r.Names()
	if len(names) == 0 {
		return fmt.Errorf("network '%s' not found: no networks configured in %s", networkName, ProjectFileName)
	}

	matches := fuzzy.Find(strings.ToLower(networkName), lo.Map(names, func(n string, _ int) string {
		return strings.ToLower(n)
	}))
	if len(matches) > 0 {
		return fmt.Errorf("network '%s' not found in %s, did you mean '%s'?",
			networkName, ProjectFileName, names[matches[0].Index])
	}

	return fmt.Errorf("network '%s' not found in %s (available: %s)",
		networkName, ProjectFileName, strings.Join(names, ", "))
}

// parseGasSettings converts the hardhat-style gas fields
func parseGasSettings(raw config.NetworkConfig) (config.GasSettings, error) {
	settings := config.GasSettings{Multiplier: 1}

	if price := strings.TrimSpace(raw.GasPrice); price != "" && price != "auto" {
		wei, ok := new(big.Int).SetString(price, 10)
		if !ok || wei.Sign() <= 0 {
			return settings, fmt.Errorf("invalid gas_price %q (expected \"auto\" or a positive wei amount)", raw.GasPrice)
		}
		settings.Price = wei
	}

	if limit := strings.TrimSpace(raw.Gas); limit != "" && limit != "auto" {
		n, err := strconv.ParseUint(limit, 10, 64)
		if err != nil || n == 0 {
			return settings, fmt.Errorf("invalid gas %q (expected \"auto\" or a positive gas limit)", raw.Gas)
		}
		settings.Limit = n
	}

	if raw.GasMultiplier != 0 {
		if raw.GasMultiplier < 1 {
			return settings, fmt.Errorf("invalid gas_multiplier %v (must be at least 1)", raw.GasMultiplier)
		}
		settings.Multiplier = raw.GasMultiplier
	}

	return settings, nil
}

// getExplorerURL returns the explorer URL for a network
func (r *NetworkResolver) getExplorerURL(networkName string, chainID uint64) string {
	// Check if configured in oracle.toml
	if etherscan, exists := r.projectConfig.Etherscan[networkName]; exists && etherscan.BrowserURL != "" {
		return strings.TrimSuffix(etherscan.BrowserURL, "/")
	}

	// Fallback to common defaults
	switch chainID {
	case 1:
		return "https://etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 10:
		return "https://optimistic.etherscan.io"
	case 137:
		return "https://polygonscan.com"
	case 8453:
		return "https://basescan.org"
	case 42161:
		return "https://arbiscan.io"
	case 80084:
		return "https://bartio.beratrail.io"
	case 80094:
		return "https://berascan.com"
	default:
		return ""
	}
}
