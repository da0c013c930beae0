package usecase

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/oracle-deployer/internal/domain"
	"github.com/trebuchet-org/oracle-deployer/internal/domain/config"
	"github.com/trebuchet-org/oracle-deployer/internal/domain/models"
)

const testPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func testKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.HexToECDSA(testPrivateKey)
	require.NoError(t, err)
	return key
}

func testRuntimeConfig(t *testing.T, chainID uint64) *config.RuntimeConfig {
	return &config.RuntimeConfig{
		OutputFile:      "scripts/output/Oracle.json",
		ConstantsFile:   "scripts/constants/sources.json",
		NonInteractive:  true,
		DuplicatePolicy: domain.DuplicatePolicyAllow,
		Network: &config.Network{
			Name:       "bera_bartio",
			ChainID:    chainID,
			RPCURL:     "http://localhost:8545",
			PrivateKey: testKey(t),
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockArtifacts returns deployable contracts for the configured names
type mockArtifacts struct {
	missing map[string]bool
}

func (m *mockArtifacts) GetContract(ctx context.Context, name string) (*models.Contract, error) {
	if m.missing[name] {
		return nil, fmt.Errorf("%w: %s", domain.ErrContractNotFound, name)
	}
	return &models.Contract{Name: name, Bytecode: []byte{0x60, 0x00}}, nil
}

type deployCall struct {
	name string
	args []any
}

type transactCall struct {
	address common.Address
	method  string
	args    []any
}

// mockDeployer hands out sequential addresses and records every call
type mockDeployer struct {
	next        byte
	connectErr  error
	deployErr   error
	transactErr error

	connects  int
	deploys   []deployCall
	bound     []common.Address
	transacts []transactCall
}

func (m *mockDeployer) Connect(ctx context.Context) error {
	m.connects++
	return m.connectErr
}

func (m *mockDeployer) Deploy(ctx context.Context, name string, args ...any) (*models.DeploymentResult, error) {
	m.deploys = append(m.deploys, deployCall{name: name, args: args})
	if m.deployErr != nil {
		return nil, m.deployErr
	}
	m.next++
	return &models.DeploymentResult{
		ContractName: name,
		Address:      common.BytesToAddress([]byte{0xaa, m.next}),
		TxHash:       common.BytesToHash([]byte{0xbb, m.next}),
		BlockNumber:  uint64(m.next),
	}, nil
}

func (m *mockDeployer) ContractAt(ctx context.Context, name string, address common.Address) (ContractHandle, error) {
	m.bound = append(m.bound, address)
	return &mockHandle{deployer: m, address: address}, nil
}

func (m *mockDeployer) totalCalls() int {
	return len(m.deploys) + len(m.transacts)
}

type mockHandle struct {
	deployer *mockDeployer
	address  common.Address
}

func (h *mockHandle) Address() common.Address { return h.address }

func (h *mockHandle) Transact(ctx context.Context, method string, args ...any) (*models.TransactionResult, error) {
	h.deployer.transacts = append(h.deployer.transacts, transactCall{address: h.address, method: method, args: args})
	if h.deployer.transactErr != nil {
		return nil, h.deployer.transactErr
	}
	return &models.TransactionResult{Method: method, To: h.address, TxHash: common.BytesToHash([]byte{0xcc})}, nil
}

// memoryOutput is an in-memory OutputStore; exists=false behaves like a deleted file
type memoryOutput struct {
	exists  bool
	entries map[string]domain.OracleOutput
	records int
}

func newMemoryOutput() *memoryOutput {
	return &memoryOutput{exists: true, entries: map[string]domain.OracleOutput{}}
}

func (m *memoryOutput) Path() string { return "scripts/output/Oracle.json" }

func (m *memoryOutput) Exists(ctx context.Context) (bool, error) { return m.exists, nil }

func (m *memoryOutput) Load(ctx context.Context) (map[string]domain.OracleOutput, error) {
	if !m.exists {
		return nil, domain.ErrOutputFileMissing
	}
	return m.entries, nil
}

func (m *memoryOutput) Get(ctx context.Context, chainID uint64) (*domain.OracleOutput, error) {
	if !m.exists {
		return nil, domain.ErrOutputFileMissing
	}
	out, ok := m.entries[domain.ChainKey(chainID)]
	if !ok {
		return nil, &domain.UnsupportedChainError{ChainID: chainID, Lookup: "output", Path: m.Path()}
	}
	return &out, nil
}

func (m *memoryOutput) Record(ctx context.Context, chainID uint64, output domain.OracleOutput) error {
	if !m.exists {
		return fmt.Errorf("%w: %s", domain.ErrOutputFileMissing, m.Path())
	}
	m.records++
	m.entries[domain.ChainKey(chainID)] = output
	return nil
}

func (m *memoryOutput) Init(ctx context.Context) (bool, error) {
	if m.exists {
		return false, nil
	}
	m.exists = true
	return true, nil
}

type memoryConstants struct {
	entries map[uint64]domain.SourceConstants
}

func (m *memoryConstants) Path() string { return "scripts/constants/sources.json" }

func (m *memoryConstants) Get(ctx context.Context, chainID uint64) (*domain.SourceConstants, error) {
	c, ok := m.entries[chainID]
	if !ok {
		return nil, &domain.UnsupportedChainError{ChainID: chainID, Lookup: "constants", Path: m.Path()}
	}
	return &c, nil
}

func moniswapConstants() domain.SourceConstants {
	return domain.SourceConstants{Moniswap: &domain.MoniswapConstants{
		Factory: "0x0000000000000000000000000000000000000f01",
		USDT:    "0x0000000000000000000000000000000000000f02",
		USDC:    "0x0000000000000000000000000000000000000f03",
		DAI:     "0x0000000000000000000000000000000000000f04",
		WETH:    "0x0000000000000000000000000000000000000f05",
	}}
}

type mockConfirmer struct {
	answer bool
	asked  []string
}

func (m *mockConfirmer) Confirm(ctx context.Context, message string) (bool, error) {
	m.asked = append(m.asked, message)
	return m.answer, nil
}

type mockChecker struct {
	connected string
	code      map[string]bool
}

func (m *mockChecker) Connect(ctx context.Context, rpcURL string, chainID uint64) error {
	m.connected = rpcURL
	return nil
}

func (m *mockChecker) CheckDeploymentExists(ctx context.Context, address string) (bool, string, error) {
	if m.code[address] {
		return true, "", nil
	}
	return false, "no code at address", nil
}

type mockNetworkResolver struct {
	networks map[string]*config.Network
	errs     map[string]error
	names    []string
}

func (m *mockNetworkResolver) GetNetworks(ctx context.Context) []string { return m.names }

func (m *mockNetworkResolver) ResolveNetwork(ctx context.Context, name string) (*config.Network, error) {
	if err, ok := m.errs[name]; ok {
		return nil, err
	}
	return m.networks[name], nil
}
