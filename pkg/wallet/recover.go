package wallet

import (
	"fmt"

	"github.com/rmourey26/chain-wallet-libs/pkg/crypto"
	"github.com/rmourey26/chain-wallet-libs/pkg/types"
	"github.com/tyler-smith/go-bip39"
)

// Recover derives a wallet from a BIP-39 mnemonic and an optional
// passphrase. The mnemonic is checksum-validated before any derivation; a
// non-empty passphrase is always mixed into the seed derivation as the
// BIP-39 salt, so it changes every derived key.
//
// Every supported scheme that derives valid keys contributes to the key
// set, so legacy funds remain discoverable whichever layout they were
// created under. The first valid scheme in priority order supplies the
// wallet's account key.
func Recover(mnemonic string, passphrase []byte) (*Wallet, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, invalidInput(ErrInvalidMnemonic)
	}

	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, string(passphrase))
	if err != nil {
		return nil, invalidInput(fmt.Errorf("%w: %v", ErrInvalidMnemonic, err))
	}
	defer crypto.Zeroes(seed)

	var (
		keys     []*schemeKeys
		firstErr error
	)
	for _, s := range recoverySchemes {
		sk, err := deriveScheme(seed, s)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		keys = append(keys, sk)
	}
	if len(keys) == 0 {
		return nil, recoveryError(fmt.Errorf("%w: %v", ErrRecoveryFailed, firstErr))
	}

	w := &Wallet{
		keys:       keys,
		spendIndex: make(map[types.Address]*crypto.PrivateKey),
	}
	for _, sk := range keys {
		if w.accountKey == nil && sk.account != nil {
			w.accountKey = sk.account
		}
		for _, k := range sk.spend {
			addr := k.Address()
			if _, dup := w.spendIndex[addr]; !dup {
				w.spendIndex[addr] = k
				w.spendAddrs = append(w.spendAddrs, addr)
			}
		}
	}
	if w.accountKey == nil {
		// No scheme with an account layout validated; without an account
		// key the wallet has no identity to convert into.
		for _, sk := range keys {
			sk.zero()
		}
		return nil, recoveryError(fmt.Errorf("%w: no account key derived", ErrRecoveryFailed))
	}

	return w, nil
}
