package contracts

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/oracle-deployer/internal/domain"
)

const oracleArtifact = `{
  "_format": "hh-sol-artifact-1",
  "contractName": "Oracle",
  "sourceName": "contracts/Oracle.sol",
  "abi": [
    {"type":"constructor","inputs":[{"name":"sources","type":"address[]"}],"stateMutability":"nonpayable"},
    {"type":"function","name":"setPriceSources","inputs":[{"name":"sources","type":"address[]"}],"outputs":[],"stateMutability":"nonpayable"}
  ],
  "bytecode": "0x600060005360016000f3",
  "deployedBytecode": "0x00",
  "linkReferences": {},
  "deployedLinkReferences": {}
}`

func writeArtifact(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestRepository(t *testing.T) (*Repository, string) {
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRepositoryAt(dir, logger), dir
}

func TestRepository_GetContract(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves by name and by qualified key", func(t *testing.T) {
		repo, dir := newTestRepository(t)
		writeArtifact(t, dir, "contracts/Oracle.sol/Oracle.json", oracleArtifact)
		writeArtifact(t, dir, "contracts/Oracle.sol/Oracle.dbg.json", `{"_format":"hh-sol-dbg-1","buildInfo":"../../build-info/x.json"}`)
		writeArtifact(t, dir, "build-info/x.json", `{"id":"x"}`)

		contract, err := repo.GetContract(ctx, "Oracle")
		require.NoError(t, err)
		assert.Equal(t, "Oracle", contract.Name)
		assert.Equal(t, "contracts/Oracle.sol", contract.Source)
		assert.True(t, contract.Deployable())
		assert.Contains(t, contract.ABI.Methods, "setPriceSources")

		again, err := repo.GetContract(ctx, "contracts/Oracle.sol:Oracle")
		require.NoError(t, err)
		assert.Same(t, contract, again)
	})

	t.Run("missing contract suggests a close name", func(t *testing.T) {
		repo, dir := newTestRepository(t)
		writeArtifact(t, dir, "contracts/Oracle.sol/Oracle.json", oracleArtifact)

		_, err := repo.GetContract(ctx, "Orcle")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrContractNotFound))
		assert.Contains(t, err.Error(), "did you mean 'Oracle'?")
	})

	t.Run("ambiguous name", func(t *testing.T) {
		repo, dir := newTestRepository(t)
		writeArtifact(t, dir, "contracts/Oracle.sol/Oracle.json", oracleArtifact)
		other := `{"contractName":"Oracle","sourceName":"contracts/legacy/Oracle.sol","abi":[{"type":"function","name":"version","inputs":[],"outputs":[],"stateMutability":"view"}],"bytecode":"0x00"}`
		writeArtifact(t, dir, "contracts/legacy/Oracle.sol/Oracle.json", other)

		_, err := repo.GetContract(ctx, "Oracle")
		var ambiguous *domain.AmbiguousArtifactError
		require.True(t, errors.As(err, &ambiguous))
		assert.ElementsMatch(t, []string{
			"contracts/Oracle.sol:Oracle",
			"contracts/legacy/Oracle.sol:Oracle",
		}, ambiguous.Matches)

		_, err = repo.GetContract(ctx, "contracts/legacy/Oracle.sol:Oracle")
		assert.NoError(t, err)
	})

	t.Run("linked bytecode is rejected", func(t *testing.T) {
		repo, dir := newTestRepository(t)
		linked := `{"contractName":"Linked","sourceName":"contracts/Linked.sol","abi":[{"type":"function","name":"version","inputs":[],"outputs":[],"stateMutability":"view"}],
			"bytecode":"0x6000","linkReferences":{"contracts/Lib.sol":{"Lib":[{"start":1,"length":20}]}}}`
		writeArtifact(t, dir, "contracts/Linked.sol/Linked.json", linked)

		_, err := repo.GetContract(ctx, "Linked")
		assert.ErrorContains(t, err, "library linking")
	})

	t.Run("missing artifacts directory", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		repo := NewRepositoryAt(filepath.Join(t.TempDir(), "artifacts"), logger)

		_, err := repo.GetContract(ctx, "Oracle")
		assert.ErrorContains(t, err, "compile the contracts first")
	})
}
