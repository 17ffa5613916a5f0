package models

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Scope selects one name -> address table of the registry file
type Scope struct {
	ChainID   uint64
	Namespace string
}

func (s Scope) String() string {
	return fmt.Sprintf("chain %d/%s", s.ChainID, s.Namespace)
}

// AddressEntry is one recorded (name, address) pair
type AddressEntry struct {
	Name    string         `json:"name"`
	Address common.Address `json:"address"`
}

// EntryStatus is the on-chain status of a recorded address
type EntryStatus struct {
	AddressEntry
	HasCode  bool `json:"hasCode"`
	CodeSize int  `json:"codeSize"`
}
