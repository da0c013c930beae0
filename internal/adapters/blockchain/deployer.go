package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/oracle-deployer/internal/domain"
	"github.com/trebuchet-org/oracle-deployer/internal/domain/config"
	"github.com/trebuchet-org/oracle-deployer/internal/domain/models"
	"github.com/trebuchet-org/oracle-deployer/internal/usecase"
)

// DeployerAdapter sends contract creations and calls from the network's deployer key
type DeployerAdapter struct {
	network   *config.Network
	artifacts usecase.ArtifactRepository
	dial      DialFunc
	log       *slog.Logger

	client Backend
}

// NewDeployerAdapter creates a deployer for the active network
func NewDeployerAdapter(cfg *config.RuntimeConfig, artifacts usecase.ArtifactRepository, log *slog.Logger) *DeployerAdapter {
	return &DeployerAdapter{
		network:   cfg.Network,
		artifacts: artifacts,
		dial:      DialRPC,
		log:       log.With("component", "deployer"),
	}
}

// NewDeployerAdapterWithBackend creates a deployer that uses an existing backend
func NewDeployerAdapterWithBackend(network *config.Network, artifacts usecase.ArtifactRepository, backend Backend, log *slog.Logger) *DeployerAdapter {
	return &DeployerAdapter{
		network:   network,
		artifacts: artifacts,
		dial:      func(context.Context, string) (Backend, error) { return backend, nil },
		log:       log.With("component", "deployer"),
	}
}

// Connect dials the network RPC and checks its chain ID
func (d *DeployerAdapter) Connect(ctx context.Context) error {
	if d.network == nil {
		return fmt.Errorf("no network selected")
	}

	client, chainID, err := connect(ctx, d.dial, d.network.RPCURL, d.network.ChainID)
	if err != nil {
		return err
	}
	d.client = client
	d.log.Debug("connected", "rpc", d.network.RPCURL, "chainId", chainID)
	return nil
}

// Deploy creates contractName with the given constructor arguments and waits for the receipt
func (d *DeployerAdapter) Deploy(ctx context.Context, contractName string, args ...any) (*models.DeploymentResult, error) {
	if d.client == nil {
		return nil, fmt.Errorf("not connected to blockchain")
	}

	contract, err := d.artifacts.GetContract(ctx, contractName)
	if err != nil {
		return nil, err
	}
	if !contract.Deployable() {
		return nil, fmt.Errorf("%s artifact has no creation bytecode", contractName)
	}

	opts, err := d.transactor(ctx)
	if err != nil {
		return nil, err
	}

	if d.network.Gas.AutoLimit() && d.network.Gas.Multiplier > 1 {
		input, err := contract.ABI.Pack("", args...)
		if err != nil {
			return nil, fmt.Errorf("failed to pack constructor arguments: %w", err)
		}
		data := append(append([]byte{}, contract.Bytecode...), input...)
		if opts.GasLimit, err = d.estimateGas(ctx, opts.From, nil, data); err != nil {
			return nil, err
		}
	}

	address, tx, _, err := bind.DeployContract(opts, contract.ABI, contract.Bytecode, d.client, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to send deployment: %w", err)
	}
	d.log.Debug("deployment sent", "contract", contractName, "tx", tx.Hash().Hex(), "address", address.Hex())

	receipt, err := d.waitMined(ctx, tx)
	if err != nil {
		return nil, err
	}

	code, err := d.client.CodeAt(ctx, address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read deployed code: %w", err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("no contract code at %s after deployment", address.Hex())
	}

	return &models.DeploymentResult{
		ContractName: contractName,
		Address:      address,
		TxHash:       tx.Hash(),
		BlockNumber:  receipt.BlockNumber.Uint64(),
		GasUsed:      receipt.GasUsed,
	}, nil
}

// ContractAt binds the ABI of contractName to address.
// The handle can be created before Connect; it uses the connection at call time.
func (d *DeployerAdapter) ContractAt(ctx context.Context, contractName string, address common.Address) (usecase.ContractHandle, error) {
	contract, err := d.artifacts.GetContract(ctx, contractName)
	if err != nil {
		return nil, err
	}
	return &ContractHandle{
		deployer: d,
		name:     contractName,
		address:  address,
		abi:      contract.ABI,
	}, nil
}

// transactor builds signing options from the network key and gas settings
func (d *DeployerAdapter) transactor(ctx context.Context) (*bind.TransactOpts, error) {
	if err := d.network.RequireSigner(); err != nil {
		return nil, err
	}

	opts, err := bind.NewKeyedTransactorWithChainID(d.network.PrivateKey, new(big.Int).SetUint64(d.network.ChainID))
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx

	if !d.network.Gas.AutoPrice() {
		opts.GasPrice = new(big.Int).Set(d.network.Gas.Price)
	}
	if !d.network.Gas.AutoLimit() {
		opts.GasLimit = d.network.Gas.Limit
	}

	return opts, nil
}

// estimateGas estimates a call and scales it by the configured multiplier
func (d *DeployerAdapter) estimateGas(ctx context.Context, from common.Address, to *common.Address, data []byte) (uint64, error) {
	estimate, err := d.client.EstimateGas(ctx, ethereum.CallMsg{From: from, To: to, Data: data})
	if err != nil {
		return 0, fmt.Errorf("failed to estimate gas: %w", err)
	}
	scaled := uint64(math.Ceil(float64(estimate) * d.network.Gas.Multiplier))
	d.log.Debug("gas estimated", "estimate", estimate, "limit", scaled)
	return scaled, nil
}

// waitMined waits for the receipt and maps a failed status to ErrTransactionReverted
func (d *DeployerAdapter) waitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, d.client, tx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for transaction %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: tx=%s", domain.ErrTransactionReverted, tx.Hash().Hex())
	}
	return receipt, nil
}

// ContractHandle is a deployed contract bound to the deployer's connection
type ContractHandle struct {
	deployer *DeployerAdapter
	name     string
	address  common.Address
	abi      abi.ABI
}

// Address returns the bound address
func (h *ContractHandle) Address() common.Address {
	return h.address
}

// Transact sends a call to method and waits for a successful receipt
func (h *ContractHandle) Transact(ctx context.Context, method string, args ...any) (*models.TransactionResult, error) {
	d := h.deployer
	if d.client == nil {
		return nil, fmt.Errorf("not connected to blockchain")
	}
	if _, ok := h.abi.Methods[method]; !ok {
		return nil, fmt.Errorf("%s has no method %s", h.name, method)
	}

	opts, err := d.transactor(ctx)
	if err != nil {
		return nil, err
	}

	if d.network.Gas.AutoLimit() && d.network.Gas.Multiplier > 1 {
		data, err := h.abi.Pack(method, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to pack %s arguments: %w", method, err)
		}
		if opts.GasLimit, err = d.estimateGas(ctx, opts.From, &h.address, data); err != nil {
			return nil, err
		}
	}

	bound := bind.NewBoundContract(h.address, h.abi, d.client, d.client, d.client)
	tx, err := bound.Transact(opts, method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s.%s: %w", h.name, method, err)
	}
	d.log.Debug("transaction sent", "contract", h.name, "method", method, "tx", tx.Hash().Hex())

	receipt, err := d.waitMined(ctx, tx)
	if err != nil {
		return nil, err
	}

	return &models.TransactionResult{
		Method:      method,
		To:          h.address,
		TxHash:      tx.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
	}, nil
}

// Ensure the adapter implements the interfaces
var (
	_ usecase.ContractDeployer = (*DeployerAdapter)(nil)
	_ usecase.ContractHandle   = (*ContractHandle)(nil)
)
