package types

import (
	"encoding/hex"
	"fmt"
)

// AddressSize is the length of a single (UTXO) address in bytes.
const AddressSize = 20

// AccountIDSize is the length of an account identifier in bytes. This is the
// 32-byte wallet identifier handed to external services to query on-chain
// account state.
const AccountIDSize = 32

// Address HRP (human-readable part) constants for bech32 encoding.
// Production and testing chains use distinct HRPs so an address pasted into
// the wrong network fails to parse instead of silently burning funds.
const (
	ProductionHRP        = "ca"
	TestingHRP           = "ta"
	ProductionAccountHRP = "acct"
	TestingAccountHRP    = "tacct"
)

// Address represents a 160-bit single address (public key hash) as found in
// legacy UTXO outputs.
type Address [AddressSize]byte

// IsZero returns true if the address is all zeros.
func (a Address) IsZero() bool {
	return a == Address{}
}

// String returns the raw hex-encoded address. Use Bech32 for user-facing
// output, where the network HRP matters.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// Bech32 returns the bech32-encoded address under the given HRP.
func (a Address) Bech32(hrp string) string {
	s, err := Bech32Encode(hrp, a[:])
	if err != nil {
		// Only reachable with an invalid HRP constant.
		return hrp + ":" + hex.EncodeToString(a[:])
	}
	return s
}

// Bytes returns a copy of the address as a byte slice.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressSize)
	copy(b, a[:])
	return b
}

// ParseAddress parses a bech32 address string, returning the HRP alongside
// the address so the caller can check it against the chain discrimination.
func ParseAddress(s string) (string, Address, error) {
	hrp, data, err := Bech32Decode(s)
	if err != nil {
		return "", Address{}, fmt.Errorf("invalid address: %w", err)
	}
	if len(data) != AddressSize {
		return "", Address{}, fmt.Errorf("address must be %d bytes, got %d", AddressSize, len(data))
	}
	var a Address
	copy(a[:], data)
	return hrp, a, nil
}

// AccountID identifies an account on chain. It is derived deterministically
// from the account public key and doubles as the wallet identifier.
type AccountID [AccountIDSize]byte

// IsZero returns true if the account ID is all zeros.
func (id AccountID) IsZero() bool {
	return id == AccountID{}
}

// String returns the raw hex-encoded account ID.
func (id AccountID) String() string {
	return hex.EncodeToString(id[:])
}

// Bech32 returns the bech32-encoded account ID under the given HRP.
func (id AccountID) Bech32(hrp string) string {
	s, err := Bech32Encode(hrp, id[:])
	if err != nil {
		return hrp + ":" + hex.EncodeToString(id[:])
	}
	return s
}

// Bytes returns a copy of the account ID as a byte slice.
func (id AccountID) Bytes() []byte {
	b := make([]byte, AccountIDSize)
	copy(b, id[:])
	return b
}

// ParseAccountID parses a bech32 account ID string.
func ParseAccountID(s string) (string, AccountID, error) {
	hrp, data, err := Bech32Decode(s)
	if err != nil {
		return "", AccountID{}, fmt.Errorf("invalid account id: %w", err)
	}
	if len(data) != AccountIDSize {
		return "", AccountID{}, fmt.Errorf("account id must be %d bytes, got %d", AccountIDSize, len(data))
	}
	var id AccountID
	copy(id[:], data)
	return hrp, id, nil
}
