package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Artifact represents a Hardhat compilation artifact
type Artifact struct {
	Format           string          `json:"_format"`
	ContractName     string          `json:"contractName"`
	SourceName       string          `json:"sourceName"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         string          `json:"bytecode"`
	DeployedBytecode string          `json:"deployedBytecode"`
	LinkReferences   map[string]any  `json:"linkReferences"`

	// Path is the file the artifact was loaded from
	Path string `json:"-"`
}

// Contract is a compiled contract ready to be deployed or bound to an address
type Contract struct {
	Name     string
	Source   string
	ABI      abi.ABI
	Bytecode []byte
}

// Compile parses the ABI and bytecode of the artifact.
func (a *Artifact) Compile() (*Contract, error) {
	parsed, err := abi.JSON(strings.NewReader(string(a.ABI)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", a.ContractName, err)
	}

	var bytecode []byte
	if a.Bytecode != "" && a.Bytecode != "0x" {
		if len(a.LinkReferences) > 0 {
			return nil, fmt.Errorf("artifact %s requires library linking, which is not supported", a.ContractName)
		}
		bytecode, err = hexutil.Decode(a.Bytecode)
		if err != nil {
			return nil, fmt.Errorf("failed to decode bytecode of %s: %w", a.ContractName, err)
		}
	}

	return &Contract{
		Name:     a.ContractName,
		Source:   a.SourceName,
		ABI:      parsed,
		Bytecode: bytecode,
	}, nil
}

// Deployable reports whether the contract carries creation bytecode.
func (c *Contract) Deployable() bool {
	return len(c.Bytecode) > 0
}

// DeploymentResult describes a mined contract creation
type DeploymentResult struct {
	ContractName string
	Address      common.Address
	TxHash       common.Hash
	BlockNumber  uint64
	GasUsed      uint64
}

// TransactionResult describes a mined contract call
type TransactionResult struct {
	Method      string
	To          common.Address
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
}
