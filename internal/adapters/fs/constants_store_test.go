package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/oracle-deployer/internal/domain"
	"github.com/trebuchet-org/oracle-deployer/internal/domain/config"
)

const testConstants = `{
  "80084": {
    "moniswap": {
      "factory": "0x0000000000000000000000000000000000000f01",
      "usdt": "0x0000000000000000000000000000000000000f02",
      "usdc": "0x0000000000000000000000000000000000000f03",
      "dai": "0x0000000000000000000000000000000000000f04",
      "weth": "0x0000000000000000000000000000000000000f05"
    }
  },
  "5": "broken"
}`

func TestConstantsStoreAdapter_Get(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sources.json")
	require.NoError(t, os.WriteFile(path, []byte(testConstants), 0644))
	store := NewConstantsStoreAdapter(&config.RuntimeConfig{ConstantsFile: path})

	t.Run("known chain", func(t *testing.T) {
		got, err := store.Get(ctx, 80084)
		require.NoError(t, err)
		require.NotNil(t, got.Moniswap)
		assert.Equal(t, "0x0000000000000000000000000000000000000f01", got.Moniswap.Factory)
		assert.Equal(t, "0x0000000000000000000000000000000000000f05", got.Moniswap.WETH)
	})

	t.Run("unknown chain", func(t *testing.T) {
		_, err := store.Get(ctx, 1)
		var unsupported *domain.UnsupportedChainError
		require.True(t, errors.As(err, &unsupported))
		assert.Equal(t, "constants", unsupported.Lookup)
		assert.Equal(t, path, unsupported.Path)
	})

	t.Run("malformed chain entry", func(t *testing.T) {
		_, err := store.Get(ctx, 5)
		assert.ErrorIs(t, err, domain.ErrInvalidConstants)
	})

	t.Run("missing file", func(t *testing.T) {
		missing := NewConstantsStoreAdapter(&config.RuntimeConfig{ConstantsFile: filepath.Join(t.TempDir(), "nope.json")})
		_, err := missing.Get(ctx, 80084)
		assert.ErrorIs(t, err, domain.ErrInvalidConstants)
	})
}
