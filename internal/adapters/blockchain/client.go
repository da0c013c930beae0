package blockchain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/oracle-deployer/internal/domain"
)

// Backend is the subset of an Ethereum client used for deployments and checks.
// Both *ethclient.Client and the simulated backend client satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// DialFunc opens a Backend for an RPC URL
type DialFunc func(ctx context.Context, rpcURL string) (Backend, error)

// DialRPC connects to a JSON-RPC endpoint with ethclient
func DialRPC(ctx context.Context, rpcURL string) (Backend, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// connect dials rpcURL and verifies the chain ID it serves.
// A zero expected chain ID accepts whatever the node reports.
func connect(ctx context.Context, dial DialFunc, rpcURL string, expected uint64) (Backend, uint64, error) {
	client, err := dial(ctx, rpcURL)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	networkChainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get chain ID: %w", err)
	}

	if expected != 0 && networkChainID.Uint64() != expected {
		return nil, 0, fmt.Errorf("%w: expected chain %d, RPC reports %d",
			domain.ErrNetworkMismatch, expected, networkChainID.Uint64())
	}

	return client, networkChainID.Uint64(), nil
}
