package crypto

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"
	"github.com/rmourey26/chain-wallet-libs/pkg/types"
)

// PrivateKeySize is the length of a raw private key scalar in bytes.
const PrivateKeySize = 32

// PublicKeySize is the length of a compressed public key in bytes.
const PublicKeySize = 33

// SignatureSize is the length of a serialized Schnorr signature in bytes.
const SignatureSize = 64

// PrivateKey wraps a secp256k1 private key for Schnorr signing. Key material
// is sensitive: call Zero when the key goes out of use.
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

// GenerateKey creates a new random secp256k1 private key.
func GenerateKey() (*PrivateKey, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromBytes creates a PrivateKey from a 32-byte secret.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != PrivateKeySize {
		return nil, fmt.Errorf("private key must be %d bytes, got %d", PrivateKeySize, len(b))
	}
	key := secp256k1.PrivKeyFromBytes(b)
	return &PrivateKey{key: key}, nil
}

// Sign produces a Schnorr signature over a 32-byte digest.
func (pk *PrivateKey) Sign(digest []byte) ([]byte, error) {
	if len(digest) != types.HashSize {
		return nil, fmt.Errorf("digest must be %d bytes, got %d", types.HashSize, len(digest))
	}
	sig, err := schnorr.Sign(pk.key, digest)
	if err != nil {
		return nil, fmt.Errorf("schnorr sign: %w", err)
	}
	return sig.Serialize(), nil
}

// PublicKey returns the compressed 33-byte public key.
func (pk *PrivateKey) PublicKey() []byte {
	return pk.key.PubKey().SerializeCompressed()
}

// Address returns the single address derived from this key's public key.
func (pk *PrivateKey) Address() types.Address {
	return AddressFromPubKey(pk.PublicKey())
}

// AccountID returns the account identifier derived from this key's public key.
func (pk *PrivateKey) AccountID() types.AccountID {
	return AccountIDFromPubKey(pk.PublicKey())
}

// Serialize returns the 32-byte private key scalar.
func (pk *PrivateKey) Serialize() []byte {
	return pk.key.Serialize()
}

// Zero securely zeroes the private key memory.
func (pk *PrivateKey) Zero() {
	pk.key.Zero()
}

// VerifySignature checks a Schnorr signature against a 32-byte digest and a
// compressed public key. Returns false on any error.
func VerifySignature(digest, signature, publicKey []byte) bool {
	pubKey, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return false
	}
	sig, err := schnorr.ParseSignature(signature)
	if err != nil {
		return false
	}
	return sig.Verify(digest, pubKey)
}

// Zeroes wipes a byte slice in place. Seeds and derived scalars that live
// outside a PrivateKey go through this on every exit path.
func Zeroes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
