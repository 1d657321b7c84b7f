// Package wallet implements the wallet engine: key recovery from a mnemonic
// phrase, funds discovery over a genesis block, account-state tracking,
// conversion of legacy UTXO funds into the account model and vote casting.
//
// A Wallet is single-owner, single-writer: the caller serializes all calls
// on one instance. Settings are immutable and safe to share.
package wallet

import (
	"github.com/rmourey26/chain-wallet-libs/pkg/crypto"
	"github.com/rmourey26/chain-wallet-libs/pkg/types"
)

// UTXO is a discovered legacy fund: a pointer to a genesis output the
// wallet can spend, with its address and value. The spending key stays in
// the wallet's key set, indexed by address.
type UTXO struct {
	Pointer types.UTXOPointer
	Address types.Address
	Value   types.Value
}

// Wallet owns the recovered key material and the wallet's view of its
// on-chain state. Create one with Recover; release it with Close.
type Wallet struct {
	keys       []*schemeKeys
	accountKey *crypto.PrivateKey
	spendIndex map[types.Address]*crypto.PrivateKey
	spendAddrs []types.Address // derivation order, scheme priority first

	state AccountState
	utxos []UTXO
}

// ID returns the wallet's 32-byte account identifier, derived
// deterministically from the account public key. External services use it
// to query on-chain account state.
func (w *Wallet) ID() types.AccountID {
	return w.accountKey.AccountID()
}

// SpendAddresses returns the single addresses of the wallet's derived
// legacy spend keys, in derivation order.
func (w *Wallet) SpendAddresses() []types.Address {
	out := make([]types.Address, len(w.spendAddrs))
	copy(out, w.spendAddrs)
	return out
}

// UTXOs returns a copy of the currently discovered, unspent UTXO entries.
func (w *Wallet) UTXOs() []UTXO {
	out := make([]UTXO, len(w.utxos))
	copy(out, w.utxos)
	return out
}

// Close zeroes all private key material. The wallet is unusable afterwards.
// Safe to call more than once.
func (w *Wallet) Close() {
	for _, sk := range w.keys {
		sk.zero()
	}
	w.keys = nil
	w.accountKey = nil
	w.spendIndex = nil
	w.spendAddrs = nil
	w.utxos = nil
}
