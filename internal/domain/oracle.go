package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
)

// Contract names as they appear in the compiled artifacts
const (
	OracleContractName  = "Oracle"
	SetPriceSourcesFunc = "setPriceSources"
)

// OracleOutput is the recorded deployment state of one chain.
type OracleOutput struct {
	Oracle  string   `json:"Oracle" yaml:"Oracle"`
	Sources []string `json:"Sources" yaml:"Sources"`
}

// NewOracleOutput creates the output entry for a freshly deployed Oracle.
func NewOracleOutput(oracle common.Address) OracleOutput {
	return OracleOutput{
		Oracle:  oracle.Hex(),
		Sources: []string{},
	}
}

// OracleAddress parses the recorded Oracle address.
func (o OracleOutput) OracleAddress() (common.Address, error) {
	if !common.IsHexAddress(o.Oracle) {
		return common.Address{}, fmt.Errorf("%w: Oracle %q", ErrInvalidAddress, o.Oracle)
	}
	addr := common.HexToAddress(o.Oracle)
	if addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%w: Oracle is the zero address", ErrInvalidAddress)
	}
	return addr, nil
}

// SourceAddresses parses the recorded source list in order.
func (o OracleOutput) SourceAddresses() ([]common.Address, error) {
	addrs := make([]common.Address, 0, len(o.Sources))
	for i, s := range o.Sources {
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("%w: Sources[%d] %q", ErrInvalidAddress, i, s)
		}
		addrs = append(addrs, common.HexToAddress(s))
	}
	return addrs, nil
}

// WithSource returns a copy of the output with source appended, subject to policy.
// The receiver is never mutated.
func (o OracleOutput) WithSource(source common.Address, policy DuplicatePolicy) (OracleOutput, error) {
	if err := o.CheckDuplicates(policy); err != nil {
		return OracleOutput{}, err
	}

	if policy == DuplicatePolicyReject {
		for _, s := range o.Sources {
			if strings.EqualFold(s, source.Hex()) {
				return OracleOutput{}, fmt.Errorf("%w: %s is already registered", ErrDuplicateSource, source.Hex())
			}
		}
	}

	sources := make([]string, 0, len(o.Sources)+1)
	sources = append(sources, o.Sources...)
	sources = append(sources, source.Hex())

	return OracleOutput{
		Oracle:  o.Oracle,
		Sources: sources,
	}, nil
}

// CheckDuplicates reports an error if policy rejects duplicates and the list has any.
func (o OracleOutput) CheckDuplicates(policy DuplicatePolicy) error {
	if policy != DuplicatePolicyReject {
		return nil
	}
	dups := o.DuplicateSources()
	if len(dups) > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateSource, strings.Join(dups, ", "))
	}
	return nil
}

// DuplicateSources returns each address that appears more than once, compared case-insensitively.
func (o OracleOutput) DuplicateSources() []string {
	normalized := lo.Map(o.Sources, func(s string, _ int) string {
		return strings.ToLower(s)
	})
	return lo.FindDuplicates(normalized)
}

// DuplicatePolicy controls whether the same price source may be registered twice.
type DuplicatePolicy string

const (
	DuplicatePolicyAllow  DuplicatePolicy = "allow"
	DuplicatePolicyReject DuplicatePolicy = "reject"
)

// ParseDuplicatePolicy parses a policy name; the empty string means allow.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", DuplicatePolicyAllow:
		return DuplicatePolicyAllow, nil
	case DuplicatePolicyReject:
		return DuplicatePolicyReject, nil
	default:
		return "", fmt.Errorf("invalid duplicate policy %q (expected allow or reject)", s)
	}
}

// ChainKey is the key of a chain in the output and constants files.
func ChainKey(chainID uint64) string {
	return strconv.FormatUint(chainID, 10)
}
