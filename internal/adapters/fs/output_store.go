package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/trebuchet-org/oracle-deployer/internal/domain"
	"github.com/trebuchet-org/oracle-deployer/internal/domain/config"
	"github.com/trebuchet-org/oracle-deployer/internal/usecase"
)

// OutputStoreAdapter reads and merges the chain-keyed Oracle output file
type OutputStoreAdapter struct {
	path string
}

// NewOutputStoreAdapter creates a new OutputStoreAdapter
func NewOutputStoreAdapter(cfg *config.RuntimeConfig) *OutputStoreAdapter {
	return &OutputStoreAdapter{path: cfg.OutputFile}
}

// Path returns the output file location
func (s *OutputStoreAdapter) Path() string {
	return s.path
}

// Exists reports whether the output file is present
func (s *OutputStoreAdapter) Exists(_ context.Context) (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Load parses every chain entry
func (s *OutputStoreAdapter) Load(_ context.Context) (map[string]domain.OracleOutput, error) {
	raw, err := s.readRaw()
	if err != nil {
		return nil, err
	}

	entries := make(map[string]domain.OracleOutput, len(raw))
	for key, value := range raw {
		entry, err := decodeEntry(value)
		if err != nil {
			return nil, fmt.Errorf("failed to parse chain %s in %s: %w", key, s.path, err)
		}
		entries[key] = entry
	}
	return entries, nil
}

// Get parses the entry for chainID
func (s *OutputStoreAdapter) Get(_ context.Context, chainID uint64) (*domain.OracleOutput, error) {
	raw, err := s.readRaw()
	if err != nil {
		return nil, err
	}

	value, ok := raw[domain.ChainKey(chainID)]
	if !ok {
		return nil, &domain.UnsupportedChainError{ChainID: chainID, Lookup: "output", Path: s.path}
	}

	entry, err := decodeEntry(value)
	if err != nil {
		return nil, fmt.Errorf("failed to parse chain %d in %s: %w", chainID, s.path, err)
	}
	return &entry, nil
}

// Record replaces the entry for chainID and keeps every other chain as written.
// The file must already exist.
func (s *OutputStoreAdapter) Record(_ context.Context, chainID uint64, output domain.OracleOutput) error {
	raw, err := s.readRaw()
	if err != nil {
		return err
	}

	if output.Sources == nil {
		output.Sources = []string{}
	}
	value, err := json.Marshal(output)
	if err != nil {
		return fmt.Errorf("failed to marshal output entry: %w", err)
	}
	raw[domain.ChainKey(chainID)] = value

	return s.write(raw)
}

// Init creates the output file with an empty object if it does not exist
func (s *OutputStoreAdapter) Init(ctx context.Context) (bool, error) {
	exists, err := s.Exists(ctx)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return false, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := s.write(map[string]json.RawMessage{}); err != nil {
		return false, err
	}
	return true, nil
}

// readRaw reads the top-level object without decoding chain entries
func (s *OutputStoreAdapter) readRaw() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s (run 'oracle-deployer init' to create it)", domain.ErrOutputFileMissing, s.path)
		}
		return nil, fmt.Errorf("failed to read output file: %w", err)
	}

	raw := make(map[string]json.RawMessage)
	if len(bytes.TrimSpace(data)) == 0 {
		return raw, nil
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse output file %s: %w", s.path, err)
	}
	return raw, nil
}

// write replaces the file atomically through a temp file in the same directory
func (s *OutputStoreAdapter) write(raw map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output file: %w", err)
	}
	data = append(data, '\n')

	return writeFileAtomic(s.path, data, 0644)
}

// decodeEntry parses one chain entry and normalizes a missing source list
func decodeEntry(value json.RawMessage) (domain.OracleOutput, error) {
	var entry domain.OracleOutput
	if err := json.Unmarshal(value, &entry); err != nil {
		return domain.OracleOutput{}, err
	}
	if entry.Sources == nil {
		entry.Sources = []string{}
	}
	return entry, nil
}

// writeFileAtomic writes data to a temp file and renames it over path
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Join(fmt.Errorf("failed to replace %s", path), err)
	}
	return nil
}

// Ensure the adapter implements the interface
var _ usecase.OutputStore = (*OutputStoreAdapter)(nil)
