package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidChainID is returned when a chain ID is invalid
	ErrInvalidChainID = errors.New("invalid chain ID")

	// ErrNetworkMismatch is returned when the RPC endpoint reports a different chain than configured
	ErrNetworkMismatch = errors.New("network mismatch")

	// ErrContractNotFound is returned when a contract artifact can't be found
	ErrContractNotFound = errors.New("contract not found")

	// ErrUnsupportedChain is returned when a chain-keyed lookup has no entry for the active chain
	ErrUnsupportedChain = errors.New("unsupported chain")

	// ErrInvalidConstants is returned when the source constants for a chain are malformed
	ErrInvalidConstants = errors.New("invalid source constants")

	// ErrDuplicateSource is returned when the duplicate policy rejects a source list
	ErrDuplicateSource = errors.New("duplicate price source")

	// ErrOutputFileMissing is returned when the output file does not exist
	ErrOutputFileMissing = errors.New("output file missing")

	// ErrTransactionReverted is returned when a mined transaction has a failed status
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrSetterFailed is returned when the on-chain source list update fails
	ErrSetterFailed = errors.New("oracle source update failed")

	// ErrMissingPrivateKey is returned when the network account has no private key
	ErrMissingPrivateKey = errors.New("missing private key")
)

// UnsupportedChainError names the chain and the lookup that had no entry for it.
type UnsupportedChainError struct {
	ChainID uint64
	Lookup  string // "constants" or "output"
	Path    string
}

func (e *UnsupportedChainError) Error() string {
	return fmt.Sprintf("unsupported chain %d: no %s entry in %s", e.ChainID, e.Lookup, e.Path)
}

func (e *UnsupportedChainError) Unwrap() error {
	return ErrUnsupportedChain
}

// DeploymentNotRecordedError is returned when a contract was deployed on-chain
// but its address could not be persisted to the output file.
type DeploymentNotRecordedError struct {
	ChainID  uint64
	Contract string
	Address  string
	Output   OracleOutput
	Err      error
}

func (e *DeploymentNotRecordedError) Error() string {
	return fmt.Sprintf("%s deployed at %s on chain %d but was not recorded: %v",
		e.Contract, e.Address, e.ChainID, e.Err)
}

func (e *DeploymentNotRecordedError) Unwrap() error {
	return e.Err
}

// AmbiguousArtifactError is returned when more than one artifact matches a contract name.
type AmbiguousArtifactError struct {
	Name    string
	Matches []string
}

func (e *AmbiguousArtifactError) Error() string {
	paths := make([]string, len(e.Matches))
	copy(paths, e.Matches)
	sort.Strings(paths)

	var suggestions []string
	for _, p := range paths {
		suggestions = append(suggestions, fmt.Sprintf("  - %s", p))
	}

	return fmt.Sprintf("multiple artifacts found for contract %s:\n%s",
		e.Name, strings.Join(suggestions, "\n"))
}
