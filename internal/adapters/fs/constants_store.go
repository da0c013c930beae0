package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/trebuchet-org/oracle-deployer/internal/domain"
	"github.com/trebuchet-org/oracle-deployer/internal/domain/config"
	"github.com/trebuchet-org/oracle-deployer/internal/usecase"
)

// ConstantsStoreAdapter reads per-chain DEX addresses from the constants file
type ConstantsStoreAdapter struct {
	path string
}

// NewConstantsStoreAdapter creates a new ConstantsStoreAdapter
func NewConstantsStoreAdapter(cfg *config.RuntimeConfig) *ConstantsStoreAdapter {
	return &ConstantsStoreAdapter{path: cfg.ConstantsFile}
}

// Path returns the constants file location
func (s *ConstantsStoreAdapter) Path() string {
	return s.path
}

// Get returns the constants for chainID
func (s *ConstantsStoreAdapter) Get(_ context.Context, chainID uint64) (*domain.SourceConstants, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: constants file %s not found", domain.ErrInvalidConstants, s.path)
		}
		return nil, fmt.Errorf("failed to read constants file: %w", err)
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", domain.ErrInvalidConstants, s.path, err)
	}

	value, ok := all[domain.ChainKey(chainID)]
	if !ok {
		return nil, &domain.UnsupportedChainError{ChainID: chainID, Lookup: "constants", Path: s.path}
	}

	var constants domain.SourceConstants
	if err := json.Unmarshal(value, &constants); err != nil {
		return nil, fmt.Errorf("%w: chain %d in %s: %v", domain.ErrInvalidConstants, chainID, s.path, err)
	}
	return &constants, nil
}

// Ensure the adapter implements the interface
var _ usecase.ConstantsStore = (*ConstantsStoreAdapter)(nil)
