package config

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"time"

	"github.com/trebuchet-org/oracle-deployer/internal/domain"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string

	// Resolved file locations (absolute)
	OutputFile    string
	ConstantsFile string
	ArtifactsDir  string

	// Context settings
	Network *Network // nil if no network was selected

	// Execution settings
	Debug           bool
	NonInteractive  bool
	Timeout         time.Duration
	DuplicatePolicy domain.DuplicatePolicy

	// Resolved project file
	ProjectConfig *ProjectConfig
}

// Network represents a fully resolved network
type Network struct {
	Name        string
	ChainID     uint64
	RPCURL      string
	ExplorerURL string

	// Deployer account; nil when no key is configured
	PrivateKey *ecdsa.PrivateKey
	// PrivateKeyEnv names the environment variable the key is read from, if any
	PrivateKeyEnv string

	Gas GasSettings
}

// RequireSigner returns an error when the network has no deployer key.
func (n *Network) RequireSigner() error {
	if n.PrivateKey != nil {
		return nil
	}
	if n.PrivateKeyEnv != "" {
		return fmt.Errorf("%w for network %s: environment variable %s is not set",
			domain.ErrMissingPrivateKey, n.Name, n.PrivateKeyEnv)
	}
	return fmt.Errorf("%w for network %s: set private_key in the network config",
		domain.ErrMissingPrivateKey, n.Name)
}

// GasSettings controls gas price and limit selection.
// A nil price or zero limit means the value is estimated by the node.
type GasSettings struct {
	Price      *big.Int
	Limit      uint64
	Multiplier float64
}

// AutoPrice reports whether the node suggests the gas price.
func (g GasSettings) AutoPrice() bool {
	return g.Price == nil
}

// AutoLimit reports whether the gas limit is estimated.
func (g GasSettings) AutoLimit() bool {
	return g.Limit == 0
}
