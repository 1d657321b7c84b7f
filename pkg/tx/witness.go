package tx

import (
	"encoding/binary"
	"fmt"

	"github.com/rmourey26/chain-wallet-libs/pkg/crypto"
	"github.com/rmourey26/chain-wallet-libs/pkg/types"
)

// Witness proves the right to spend one input. The signed digest binds the
// block0 hash (so a fragment cannot replay on another chain) and, for
// account witnesses, the account counter (so it cannot replay on the same
// chain either).
type Witness struct {
	Kind      InputKind
	Counter   uint32 // account witnesses only
	PubKey    []byte
	Signature []byte
}

// witnessDigest is the 32-byte digest a witness signs.
func witnessDigest(block0 types.Hash, signingBytes []byte, kind InputKind, counter uint32) types.Hash {
	if kind == InputAccount {
		var c [4]byte
		binary.LittleEndian.PutUint32(c[:], counter)
		return crypto.HashAll(block0[:], signingBytes, c[:])
	}
	return crypto.HashAll(block0[:], signingBytes)
}

// NewUTXOWitness signs a fragment on behalf of a UTXO input's key.
func NewUTXOWitness(block0 types.Hash, signingBytes []byte, key *crypto.PrivateKey) (Witness, error) {
	digest := witnessDigest(block0, signingBytes, InputUTXO, 0)
	sig, err := key.Sign(digest[:])
	if err != nil {
		return Witness{}, fmt.Errorf("utxo witness: %w", err)
	}
	return Witness{
		Kind:      InputUTXO,
		PubKey:    key.PublicKey(),
		Signature: sig,
	}, nil
}

// NewAccountWitness signs a fragment on behalf of an account input at the
// given spending counter.
func NewAccountWitness(block0 types.Hash, signingBytes []byte, counter uint32, key *crypto.PrivateKey) (Witness, error) {
	digest := witnessDigest(block0, signingBytes, InputAccount, counter)
	sig, err := key.Sign(digest[:])
	if err != nil {
		return Witness{}, fmt.Errorf("account witness: %w", err)
	}
	return Witness{
		Kind:      InputAccount,
		Counter:   counter,
		PubKey:    key.PublicKey(),
		Signature: sig,
	}, nil
}

// Verify checks the witness signature against the fragment's signing bytes
// under the given block0 hash. Returns false on any error.
func (w Witness) Verify(block0 types.Hash, signingBytes []byte) bool {
	digest := witnessDigest(block0, signingBytes, w.Kind, w.Counter)
	return crypto.VerifySignature(digest[:], w.Signature, w.PubKey)
}

// append serializes the witness onto buf.
func (w Witness) append(buf []byte) []byte {
	buf = append(buf, byte(w.Kind))
	if w.Kind == InputAccount {
		buf = binary.LittleEndian.AppendUint32(buf, w.Counter)
	}
	buf = append(buf, w.PubKey...)
	buf = append(buf, w.Signature...)
	return buf
}
