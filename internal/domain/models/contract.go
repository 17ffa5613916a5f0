package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Contract is a unit's resolved code body and interface
type Contract struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	ArtifactPath string    `json:"artifactPath,omitempty"`
	Artifact     *Artifact `json:"artifact,omitempty"`

	parsed *abi.ABI
}

// ABI returns the parsed contract interface
func (c *Contract) ABI() (*abi.ABI, error) {
	if c.parsed != nil {
		return c.parsed, nil
	}
	if c.Artifact == nil {
		return nil, fmt.Errorf("contract %s has no artifact", c.Name)
	}
	parsed, err := abi.JSON(bytes.NewReader(c.Artifact.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", c.Name, err)
	}
	c.parsed = &parsed
	return c.parsed, nil
}

// Code returns the creation bytecode
func (c *Contract) Code() ([]byte, error) {
	if c.Artifact == nil {
		return nil, fmt.Errorf("contract %s has no artifact", c.Name)
	}
	if len(c.Artifact.Bytecode.LinkReferences) > 0 {
		return nil, fmt.Errorf("contract %s needs library linking, which is not supported", c.Name)
	}
	object := strings.TrimPrefix(c.Artifact.Bytecode.Object, "0x")
	if object == "" {
		return nil, fmt.Errorf("contract %s has no creation bytecode", c.Name)
	}
	return common.FromHex(object), nil
}

// BytecodeObject represents bytecode information in a Foundry artifact
type BytecodeObject struct {
	Object         string         `json:"object"`
	LinkReferences map[string]any `json:"linkReferences"`
}

// Artifact represents a Foundry compilation artifact
type Artifact struct {
	ABI              json.RawMessage  `json:"abi"`
	Bytecode         BytecodeObject   `json:"bytecode"`
	DeployedBytecode BytecodeObject   `json:"deployedBytecode"`
	Metadata         ArtifactMetadata `json:"metadata"`
}

// ArtifactMetadata represents the metadata section of a Foundry artifact
type ArtifactMetadata struct {
	Compiler struct {
		Version string `json:"version"`
	} `json:"compiler"`
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
	} `json:"settings"`
}
