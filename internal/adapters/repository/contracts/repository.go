package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/trebuchet-org/oracle-deployer/internal/domain"
	"github.com/trebuchet-org/oracle-deployer/internal/domain/config"
	"github.com/trebuchet-org/oracle-deployer/internal/domain/models"
	"github.com/trebuchet-org/oracle-deployer/internal/usecase"
)

// Repository discovers and indexes Hardhat artifacts
type Repository struct {
	artifactsDir  string
	artifacts     map[string]*models.Artifact   // key: "sourceName:contractName"
	contractNames map[string][]*models.Artifact // key: contract name, value: all artifacts with that name
	compiled      map[string]*models.Contract   // key: artifact path
	log           *slog.Logger
	mu            sync.RWMutex
	indexed       bool
}

// NewRepository creates a new artifact repository for the configured artifacts directory
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return NewRepositoryAt(cfg.ArtifactsDir, log)
}

// NewRepositoryAt creates a new artifact repository rooted at dir
func NewRepositoryAt(dir string, log *slog.Logger) *Repository {
	return &Repository{
		artifactsDir:  dir,
		artifacts:     make(map[string]*models.Artifact),
		contractNames: make(map[string][]*models.Artifact),
		compiled:      make(map[string]*models.Contract),
		log:           log,
	}
}

// Index walks the artifacts directory once
func (r *Repository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	if _, err := os.Stat(r.artifactsDir); os.IsNotExist(err) {
		return fmt.Errorf("artifacts directory %s not found: compile the contracts first", r.artifactsDir)
	}

	err := filepath.Walk(r.artifactsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			// Skip build info and cache directories
			if info.Name() == "build-info" || info.Name() == "cache" {
				return filepath.SkipDir
			}
			return nil
		}

		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}

		return r.processArtifact(path)
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts: %w", err)
	}

	r.indexed = true
	r.log.Debug("indexed artifacts", "dir", r.artifactsDir, "contracts", len(r.artifacts))
	return nil
}

// processArtifact reads a single artifact file
func (r *Repository) processArtifact(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		// Not every JSON file under artifacts is a contract artifact
		r.log.Debug("skipping non-artifact file", "path", path, "error", err)
		return nil
	}

	if artifact.ContractName == "" || len(artifact.ABI) == 0 {
		return nil
	}

	artifact.Path = path
	key := fmt.Sprintf("%s:%s", artifact.SourceName, artifact.ContractName)
	r.artifacts[key] = &artifact
	r.contractNames[artifact.ContractName] = append(r.contractNames[artifact.ContractName], &artifact)

	return nil
}

// GetContract retrieves a compiled contract by name or "sourceName:contractName"
func (r *Repository) GetContract(ctx context.Context, key string) (*models.Contract, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}

	artifact, err := r.lookup(key)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if contract, ok := r.compiled[artifact.Path]; ok {
		return contract, nil
	}

	contract, err := artifact.Compile()
	if err != nil {
		return nil, err
	}
	r.compiled[artifact.Path] = contract
	return contract, nil
}

// lookup resolves a key to exactly one artifact
func (r *Repository) lookup(key string) (*models.Artifact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if artifact, ok := r.artifacts[key]; ok {
		return artifact, nil
	}

	matches := r.contractNames[key]
	switch len(matches) {
	case 0:
		names := lo.Keys(r.contractNames)
		sort.Strings(names)
		if found := fuzzy.Find(key, names); len(found) > 0 {
			return nil, fmt.Errorf("%w: %s (did you mean '%s'?)", domain.ErrContractNotFound, key, found[0].Str)
		}
		return nil, fmt.Errorf("%w: %s (searched %s)", domain.ErrContractNotFound, key, r.artifactsDir)
	case 1:
		return matches[0], nil
	default:
		return nil, &domain.AmbiguousArtifactError{
			Name: key,
			Matches: lo.Map(matches, func(a *models.Artifact, _ int) string {
				return fmt.Sprintf("%s:%s", a.SourceName, a.ContractName)
			}),
		}
	}
}

// Ensure the repository implements the interface
var _ usecase.ArtifactRepository = (*Repository)(nil)
