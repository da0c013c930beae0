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

func newTestOutputStore(t *testing.T) *OutputStoreAdapter {
	t.Helper()
	dir := t.TempDir()
	return NewOutputStoreAdapter(&config.RuntimeConfig{
		OutputFile: filepath.Join(dir, "scripts", "output", "Oracle.json"),
	})
}

func TestOutputStoreAdapter_Record(t *testing.T) {
	ctx := context.Background()
	oracle := "0x1111111111111111111111111111111111111111"
	source := "0x2222222222222222222222222222222222222222"

	t.Run("example chain lifecycle", func(t *testing.T) {
		store := newTestOutputStore(t)
		created, err := store.Init(ctx)
		require.NoError(t, err)
		require.True(t, created)

		require.NoError(t, store.Record(ctx, 80084, domain.OracleOutput{Oracle: oracle}))
		data, err := os.ReadFile(store.Path())
		require.NoError(t, err)
		assert.Equal(t, `{
  "80084": {
    "Oracle": "0x1111111111111111111111111111111111111111",
    "Sources": []
  }
}
`, string(data))

		require.NoError(t, store.Record(ctx, 80084, domain.OracleOutput{Oracle: oracle, Sources: []string{source}}))
		got, err := store.Get(ctx, 80084)
		require.NoError(t, err)
		assert.Equal(t, &domain.OracleOutput{Oracle: oracle, Sources: []string{source}}, got)
	})

	t.Run("other chains are preserved", func(t *testing.T) {
		store := newTestOutputStore(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0755))
		existing := `{"1":{"Oracle":"0x0000000000000000000000000000000000000001","Sources":[],"Note":"kept"}}`
		require.NoError(t, os.WriteFile(store.Path(), []byte(existing), 0644))

		require.NoError(t, store.Record(ctx, 80084, domain.OracleOutput{Oracle: oracle, Sources: []string{}}))

		data, err := os.ReadFile(store.Path())
		require.NoError(t, err)
		assert.Contains(t, string(data), `"Note": "kept"`)

		all, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
		assert.Equal(t, "0x0000000000000000000000000000000000000001", all["1"].Oracle)
		assert.Equal(t, oracle, all["80084"].Oracle)
	})

	t.Run("missing file is never created", func(t *testing.T) {
		store := newTestOutputStore(t)

		err := store.Record(ctx, 80084, domain.OracleOutput{Oracle: oracle})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrOutputFileMissing))

		_, statErr := os.Stat(store.Path())
		assert.True(t, os.IsNotExist(statErr))
		exists, err := store.Exists(ctx)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("corrupt file is left untouched", func(t *testing.T) {
		store := newTestOutputStore(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0755))
		require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0644))

		err := store.Record(ctx, 80084, domain.OracleOutput{Oracle: oracle})
		require.Error(t, err)

		data, err := os.ReadFile(store.Path())
		require.NoError(t, err)
		assert.Equal(t, "{not json", string(data))

		entries, err := os.ReadDir(filepath.Dir(store.Path()))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "no temp files left behind")
	})
}

func TestOutputStoreAdapter_Get(t *testing.T) {
	ctx := context.Background()
	store := newTestOutputStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0755))
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"80084":{"Oracle":"0x1111111111111111111111111111111111111111"}}`), 0644))

	got, err := store.Get(ctx, 80084)
	require.NoError(t, err)
	assert.NotNil(t, got.Sources)
	assert.Empty(t, got.Sources)

	_, err = store.Get(ctx, 1)
	var unsupported *domain.UnsupportedChainError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "output", unsupported.Lookup)
	assert.Equal(t, uint64(1), unsupported.ChainID)
}

func TestOutputStoreAdapter_Init(t *testing.T) {
	ctx := context.Background()
	store := newTestOutputStore(t)

	created, err := store.Init(ctx)
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))

	require.NoError(t, store.Record(ctx, 80084, domain.OracleOutput{Oracle: "0x1111111111111111111111111111111111111111"}))

	created, err = store.Init(ctx)
	require.NoError(t, err)
	assert.False(t, created)

	got, err := store.Get(ctx, 80084)
	require.NoError(t, err)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", got.Oracle)
}
