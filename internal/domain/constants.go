package domain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// SourceKind identifies a family of price-source adapter contracts.
type SourceKind string

const (
	SourceKindMoniswap SourceKind = "moniswap"
)

// SourceConstants holds the DEX addresses of one chain.
type SourceConstants struct {
	Moniswap *MoniswapConstants `json:"moniswap,omitempty"`
}

// MoniswapConstants are the constructor arguments of the Moniswap volatile price source.
type MoniswapConstants struct {
	Factory string `json:"factory"`
	USDT    string `json:"usdt"`
	USDC    string `json:"usdc"`
	DAI     string `json:"dai"`
	WETH    string `json:"weth"`
}

// Addresses validates and returns the constructor arguments in order:
// factory, usdt, usdc, dai, weth.
func (m *MoniswapConstants) Addresses() ([]common.Address, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: moniswap section missing", ErrInvalidConstants)
	}

	fields := []struct {
		name  string
		value string
	}{
		{"factory", m.Factory},
		{"usdt", m.USDT},
		{"usdc", m.USDC},
		{"dai", m.DAI},
		{"weth", m.WETH},
	}

	addrs := make([]common.Address, 0, len(fields))
	for _, f := range fields {
		if !common.IsHexAddress(f.value) {
			return nil, fmt.Errorf("%w: moniswap.%s %q is not an address", ErrInvalidConstants, f.name, f.value)
		}
		addr := common.HexToAddress(f.value)
		if addr == (common.Address{}) {
			return nil, fmt.Errorf("%w: moniswap.%s is the zero address", ErrInvalidConstants, f.name)
		}
		addrs = append(addrs, addr)
	}

	return addrs, nil
}

// SourceSpec describes how to deploy one kind of price source.
type SourceSpec struct {
	Kind         SourceKind
	ContractName string
	// Args returns the constructor arguments for the chain's constants.
	Args func(c SourceConstants) ([]any, error)
}

// SourceSpecs lists the price-source adapters that can be deployed.
var SourceSpecs = map[SourceKind]SourceSpec{
	SourceKindMoniswap: {
		Kind:         SourceKindMoniswap,
		ContractName: "MoniswapVolatilePriceSource",
		Args: func(c SourceConstants) ([]any, error) {
			addrs, err := c.Moniswap.Addresses()
			if err != nil {
				return nil, err
			}
			args := make([]any, len(addrs))
			for i, a := range addrs {
				args[i] = a
			}
			return args, nil
		},
	},
}

// LookupSourceSpec returns the deployment spec for a source kind.
func LookupSourceSpec(kind SourceKind) (SourceSpec, error) {
	spec, ok := SourceSpecs[kind]
	if !ok {
		return SourceSpec{}, fmt.Errorf("%w: unknown price source kind %q", ErrNotFound, kind)
	}
	return spec, nil
}
