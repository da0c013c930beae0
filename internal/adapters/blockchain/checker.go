package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/oracle-deployer/internal/usecase"
)

// CheckerAdapter implements the BlockchainChecker interface using ethclient
type CheckerAdapter struct {
	dial    DialFunc
	client  Backend
	chainID uint64
}

// NewCheckerAdapter creates a new blockchain checker adapter
func NewCheckerAdapter() *CheckerAdapter {
	return &CheckerAdapter{dial: DialRPC}
}

// NewCheckerAdapterWithBackend creates a checker that uses an existing backend
func NewCheckerAdapterWithBackend(backend Backend) *CheckerAdapter {
	return &CheckerAdapter{
		dial: func(context.Context, string) (Backend, error) { return backend, nil },
	}
}

// Connect establishes connection to the blockchain
func (c *CheckerAdapter) Connect(ctx context.Context, rpcURL string, chainID uint64) error {
	client, networkChainID, err := connect(ctx, c.dial, rpcURL, chainID)
	if err != nil {
		return err
	}
	c.client = client
	c.chainID = networkChainID
	return nil
}

// CheckDeploymentExists checks if a contract exists at the given address
func (c *CheckerAdapter) CheckDeploymentExists(ctx context.Context, address string) (exists bool, reason string, err error) {
	if c.client == nil {
		return false, "", fmt.Errorf("not connected to blockchain")
	}

	if !common.IsHexAddress(address) {
		return false, fmt.Sprintf("invalid address %q", address), nil
	}
	addr := common.HexToAddress(address)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	code, err := c.client.CodeAt(ctx, addr, nil)
	if err != nil {
		return false, fmt.Sprintf("failed to check code: %v", err), nil
	}

	// If no code at address, contract doesn't exist
	if len(code) == 0 {
		return false, "no code at address", nil
	}

	return true, "", nil
}

// Ensure the adapter implements the interface
var _ usecase.BlockchainChecker = (*CheckerAdapter)(nil)
