// Package crypto provides the hashing and signing primitives of the wallet.
package crypto

import (
	"github.com/rmourey26/chain-wallet-libs/pkg/types"
	"github.com/zeebo/blake3"
)

// Hash computes a BLAKE3-256 hash of the input data.
func Hash(data []byte) types.Hash {
	return blake3.Sum256(data)
}

// HashAll computes a BLAKE3-256 hash over the concatenation of the given
// byte slices without materializing the concatenation. Witness digests hash
// several framing components this way.
func HashAll(parts ...[]byte) types.Hash {
	h := blake3.New()
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out types.Hash
	copy(out[:], h.Sum(nil))
	return out
}

// AddressFromPubKey derives a single address from a compressed public key.
// Address = BLAKE3(compressed_pubkey)[:20].
func AddressFromPubKey(pubKey []byte) types.Address {
	h := Hash(pubKey)
	var addr types.Address
	copy(addr[:], h[:types.AddressSize])
	return addr
}

// AccountIDFromPubKey derives the on-chain account identifier from a
// compressed public key. AccountID = BLAKE3(compressed_pubkey), all 32 bytes.
func AccountIDFromPubKey(pubKey []byte) types.AccountID {
	h := Hash(pubKey)
	var id types.AccountID
	copy(id[:], h[:])
	return id
}
