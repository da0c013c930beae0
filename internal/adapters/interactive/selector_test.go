package interactive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/oracle-deployer/internal/domain/config"
)

func TestCreateFuzzySearchFunc(t *testing.T) {
	items := []string{"bera_bartio", "local", "mainnet"}
	search := createFuzzySearchFunc(items)

	tests := []struct {
		input string
		index int
		want  bool
	}{
		{input: "", index: 2, want: true},
		{input: "BERA", index: 0, want: true},
		{input: "brt", index: 0, want: true},
		{input: "brt", index: 1, want: false},
		{input: "mnt", index: 2, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, search(tt.input, tt.index))
		})
	}
}

func TestSelectNetwork_NoPrompt(t *testing.T) {
	_, err := SelectNetwork(nil)
	assert.Error(t, err)

	name, err := SelectNetwork([]string{"local"})
	require.NoError(t, err)
	assert.Equal(t, "local", name)
}

func TestSelectorAdapter_ConfirmNonInteractive(t *testing.T) {
	s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})
	ok, err := s.Confirm(context.Background(), "Deploy Oracle")
	require.NoError(t, err)
	assert.True(t, ok)
}
