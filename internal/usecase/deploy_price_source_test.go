package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/oracle-deployer/internal/domain"
)

func newPriceSourceFixture(t *testing.T) (*DeployPriceSource, *mockDeployer, *memoryOutput, *memoryConstants) {
	t.Helper()
	cfg := testRuntimeConfig(t, 80084)
	deployer := &mockDeployer{}
	output := newMemoryOutput()
	constants := &memoryConstants{entries: map[uint64]domain.SourceConstants{80084: moniswapConstants()}}

	uc := NewDeployPriceSource(cfg, &mockArtifacts{}, deployer, output, constants, nil, NopProgress{}, discardLogger())
	return uc, deployer, output, constants
}

func TestDeployPriceSource_Run(t *testing.T) {
	oracle := "0x5FbDB2315678afecb367f032d93F642f64180aa3"

	t.Run("first source after a fresh oracle", func(t *testing.T) {
		uc, deployer, output, _ := newPriceSourceFixture(t)
		output.entries["80084"] = domain.OracleOutput{Oracle: oracle, Sources: []string{}}

		result, err := uc.Run(context.Background(), DeployPriceSourceParams{})
		require.NoError(t, err)

		require.Len(t, deployer.deploys, 1)
		assert.Equal(t, "MoniswapVolatilePriceSource", deployer.deploys[0].name)
		assert.Equal(t, []any{
			common.HexToAddress("0xf01"),
			common.HexToAddress("0xf02"),
			common.HexToAddress("0xf03"),
			common.HexToAddress("0xf04"),
			common.HexToAddress("0xf05"),
		}, deployer.deploys[0].args)

		source := result.Deployment.Address
		require.Len(t, deployer.transacts, 1)
		call := deployer.transacts[0]
		assert.Equal(t, common.HexToAddress(oracle), call.address)
		assert.Equal(t, domain.SetPriceSourcesFunc, call.method)
		assert.Equal(t, []any{[]common.Address{source}}, call.args)

		assert.True(t, result.Recorded)
		assert.Equal(t, domain.OracleOutput{Oracle: oracle, Sources: []string{source.Hex()}}, output.entries["80084"])
	})

	t.Run("appends to an existing list in order", func(t *testing.T) {
		uc, deployer, output, _ := newPriceSourceFixture(t)
		existing := []string{
			"0x00000000000000000000000000000000000000A1",
			"0x00000000000000000000000000000000000000a2",
		}
		output.entries["80084"] = domain.OracleOutput{Oracle: oracle, Sources: existing}

		result, err := uc.Run(context.Background(), DeployPriceSourceParams{})
		require.NoError(t, err)

		source := result.Deployment.Address
		want := []common.Address{
			common.HexToAddress(existing[0]),
			common.HexToAddress(existing[1]),
			source,
		}
		require.Len(t, deployer.transacts, 1)
		assert.Equal(t, []any{want}, deployer.transacts[0].args)

		entry := output.entries["80084"]
		assert.Equal(t, oracle, entry.Oracle)
		assert.Equal(t, append(append([]string{}, existing...), source.Hex()), entry.Sources)
	})

	t.Run("other chains are untouched", func(t *testing.T) {
		uc, _, output, _ := newPriceSourceFixture(t)
		other := domain.OracleOutput{Oracle: "0x0000000000000000000000000000000000000001", Sources: []string{}}
		output.entries["1"] = other
		output.entries["80084"] = domain.OracleOutput{Oracle: oracle, Sources: []string{}}

		_, err := uc.Run(context.Background(), DeployPriceSourceParams{})
		require.NoError(t, err)
		assert.Equal(t, other, output.entries["1"])
	})

	t.Run("unsupported chain in constants fails before any transaction", func(t *testing.T) {
		uc, deployer, output, constants := newPriceSourceFixture(t)
		delete(constants.entries, 80084)
		output.entries["80084"] = domain.OracleOutput{Oracle: oracle, Sources: []string{}}

		_, err := uc.Run(context.Background(), DeployPriceSourceParams{})
		require.Error(t, err)

		var unsupported *domain.UnsupportedChainError
		require.True(t, errors.As(err, &unsupported))
		assert.Equal(t, "constants", unsupported.Lookup)
		assert.Equal(t, uint64(80084), unsupported.ChainID)
		assert.Zero(t, deployer.connects)
		assert.Zero(t, deployer.totalCalls())
	})

	t.Run("malformed constants fail before any transaction", func(t *testing.T) {
		uc, deployer, output, constants := newPriceSourceFixture(t)
		broken := moniswapConstants()
		broken.Moniswap.WETH = "weth"
		constants.entries[80084] = broken
		output.entries["80084"] = domain.OracleOutput{Oracle: oracle, Sources: []string{}}

		_, err := uc.Run(context.Background(), DeployPriceSourceParams{})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidConstants)
		assert.Contains(t, err.Error(), "moniswap.weth")
		assert.Zero(t, deployer.totalCalls())
	})

	t.Run("no oracle recorded for chain", func(t *testing.T) {
		uc, deployer, _, _ := newPriceSourceFixture(t)

		_, err := uc.Run(context.Background(), DeployPriceSourceParams{})
		require.Error(t, err)

		var unsupported *domain.UnsupportedChainError
		require.True(t, errors.As(err, &unsupported))
		assert.Equal(t, "output", unsupported.Lookup)
		assert.Zero(t, deployer.totalCalls())
	})

	t.Run("reject policy refuses a duplicated list", func(t *testing.T) {
		uc, deployer, output, _ := newPriceSourceFixture(t)
		dup := "0x00000000000000000000000000000000000000a1"
		output.entries["80084"] = domain.OracleOutput{Oracle: oracle, Sources: []string{dup, dup}}

		_, err := uc.Run(context.Background(), DeployPriceSourceParams{Policy: domain.DuplicatePolicyReject})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDuplicateSource)
		assert.Zero(t, deployer.totalCalls())
	})

	t.Run("allow policy keeps a duplicated list", func(t *testing.T) {
		uc, _, output, _ := newPriceSourceFixture(t)
		dup := "0x00000000000000000000000000000000000000a1"
		output.entries["80084"] = domain.OracleOutput{Oracle: oracle, Sources: []string{dup, dup}}

		result, err := uc.Run(context.Background(), DeployPriceSourceParams{})
		require.NoError(t, err)
		assert.Len(t, output.entries["80084"].Sources, 3)
		assert.Equal(t, result.Deployment.Address.Hex(), output.entries["80084"].Sources[2])
	})

	t.Run("setter failure leaves the file unchanged", func(t *testing.T) {
		uc, deployer, output, _ := newPriceSourceFixture(t)
		before := domain.OracleOutput{Oracle: oracle, Sources: []string{}}
		output.entries["80084"] = before
		deployer.transactErr = domain.ErrTransactionReverted

		result, err := uc.Run(context.Background(), DeployPriceSourceParams{})
		require.Error(t, err)

		var notRecorded *domain.DeploymentNotRecordedError
		require.True(t, errors.As(err, &notRecorded))
		assert.ErrorIs(t, err, domain.ErrSetterFailed)
		assert.ErrorIs(t, err, domain.ErrTransactionReverted)
		assert.Equal(t, result.Deployment.Address.Hex(), notRecorded.Address)
		assert.Equal(t, before, output.entries["80084"])
		assert.Zero(t, output.records)
	})

	t.Run("output file deleted before recording", func(t *testing.T) {
		uc, deployer, output, _ := newPriceSourceFixture(t)
		output.entries["80084"] = domain.OracleOutput{Oracle: oracle, Sources: []string{}}

		// remove the file once the oracle has been updated
		uc.output = &deleteOnRecord{memoryOutput: output}

		result, err := uc.Run(context.Background(), DeployPriceSourceParams{})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrOutputFileMissing)
		assert.Len(t, deployer.transacts, 1)
		require.NotNil(t, result.Registration)
		assert.False(t, result.Recorded)
		assert.False(t, output.exists)
	})

	t.Run("unknown source kind", func(t *testing.T) {
		uc, deployer, _, _ := newPriceSourceFixture(t)

		_, err := uc.Run(context.Background(), DeployPriceSourceParams{Kind: "uniswap"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Zero(t, deployer.totalCalls())
	})
}

// deleteOnRecord simulates the output file being removed while a deployment is in flight
type deleteOnRecord struct {
	*memoryOutput
}

func (d *deleteOnRecord) Record(ctx context.Context, chainID uint64, output domain.OracleOutput) error {
	d.exists = false
	return d.memoryOutput.Record(ctx, chainID, output)
}
