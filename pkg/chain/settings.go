// Package chain holds the immutable blockchain parameters the wallet needs:
// the network discrimination, the fee schedule and the block0 identity, all
// parsed once from the genesis block.
package chain

import (
	"fmt"

	"github.com/rmourey26/chain-wallet-libs/pkg/types"
)

// Discrimination tags which network a piece of data belongs to. Addresses
// and fragments built for one discrimination are invalid on the other.
type Discrimination uint8

const (
	// Production is the main network.
	Production Discrimination = 0
	// Testing is any test network.
	Testing Discrimination = 1
)

// String returns the discrimination as a human-readable tag.
func (d Discrimination) String() string {
	switch d {
	case Production:
		return "production"
	case Testing:
		return "testing"
	default:
		return fmt.Sprintf("discrimination(%d)", uint8(d))
	}
}

// Valid reports whether d is a known discrimination value.
func (d Discrimination) Valid() bool {
	return d == Production || d == Testing
}

// Settings holds the chain parameters the wallet needs to build valid
// transactions. It is immutable once parsed from block0 and holds no
// secrets, so it is safe to share read-only and to clone freely.
type Settings struct {
	Discrimination Discrimination
	Fees           LinearFee
	Block0Hash     types.Hash
	Block0Time     uint64
}

// Clone returns a copy of the settings.
func (s *Settings) Clone() *Settings {
	c := *s
	return &c
}

// AddressHRP returns the bech32 HRP for single addresses on this network.
func (s *Settings) AddressHRP() string {
	if s.Discrimination == Testing {
		return types.TestingHRP
	}
	return types.ProductionHRP
}

// AccountHRP returns the bech32 HRP for account identifiers on this network.
func (s *Settings) AccountHRP() string {
	if s.Discrimination == Testing {
		return types.TestingAccountHRP
	}
	return types.ProductionAccountHRP
}
