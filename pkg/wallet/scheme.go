package wallet

import (
	"fmt"

	"github.com/rmourey26/chain-wallet-libs/pkg/crypto"
	"github.com/tyler-smith/go-bip32"
)

// Scheme identifies one historical key-derivation layout. The same phrase
// is ambiguous across schemes, so recovery tries the closed set below in
// priority order.
type Scheme uint8

const (
	// SchemeAccount is the native scheme: a single account key at
	// m/44'/7788'/0'. New wallets hold all value in the account model.
	SchemeAccount Scheme = iota
	// SchemeBIP44 is the legacy UTXO scheme: external and internal chains
	// under the BIP-44 account, sequential indices up to the gap limit.
	SchemeBIP44
	// SchemeRootKey is the oldest scheme: non-hardened children of the
	// master key, one per address index.
	SchemeRootKey
)

// String returns the scheme name.
func (s Scheme) String() string {
	switch s {
	case SchemeAccount:
		return "account"
	case SchemeBIP44:
		return "bip44-utxo"
	case SchemeRootKey:
		return "root-key"
	default:
		return fmt.Sprintf("scheme(%d)", uint8(s))
	}
}

// recoverySchemes is the fixed priority order recovery walks. The first
// scheme that validates supplies the wallet's account key.
var recoverySchemes = [...]Scheme{SchemeAccount, SchemeBIP44, SchemeRootKey}

// BIP-44 derivation path constants.
// Full legacy path: m/44'/7788'/0'/change/index
const (
	purposeBIP44 = bip32.FirstHardenedChild + 44
	coinType     = bip32.FirstHardenedChild + 7788
	accountZero  = bip32.FirstHardenedChild + 0

	// gapLimit is how many consecutive addresses are derived per chain
	// when scanning for legacy funds.
	gapLimit = 20
)

// schemeKeys holds the keys one scheme derives from a seed: at most one
// account key and any number of legacy spend keys.
type schemeKeys struct {
	scheme  Scheme
	account *crypto.PrivateKey
	spend   []*crypto.PrivateKey
}

// zero wipes every key this scheme derived.
func (sk *schemeKeys) zero() {
	if sk.account != nil {
		sk.account.Zero()
	}
	zeroKeys(sk.spend)
}

func zeroKeys(keys []*crypto.PrivateKey) {
	for _, k := range keys {
		k.Zero()
	}
}

// deriveScheme derives the key set for one scheme from a BIP-39 seed.
// A scheme whose derivation is structurally invalid for this seed returns
// an error; recovery moves on to the next scheme.
func deriveScheme(seed []byte, s Scheme) (*schemeKeys, error) {
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("%s: master key: %w", s, err)
	}

	switch s {
	case SchemeAccount:
		acct, err := derivePath(master, purposeBIP44, coinType, accountZero)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s, err)
		}
		key, err := privateKey(acct)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s, err)
		}
		return &schemeKeys{scheme: s, account: key}, nil

	case SchemeBIP44:
		acct, err := derivePath(master, purposeBIP44, coinType, accountZero)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s, err)
		}
		var spend []*crypto.PrivateKey
		for change := uint32(0); change <= 1; change++ {
			chain, err := acct.NewChildKey(change)
			if err != nil {
				zeroKeys(spend)
				return nil, fmt.Errorf("%s: chain %d: %w", s, change, err)
			}
			for index := uint32(0); index < gapLimit; index++ {
				child, err := chain.NewChildKey(index)
				if err != nil {
					zeroKeys(spend)
					return nil, fmt.Errorf("%s: index %d/%d: %w", s, change, index, err)
				}
				key, err := privateKey(child)
				if err != nil {
					zeroKeys(spend)
					return nil, fmt.Errorf("%s: %w", s, err)
				}
				spend = append(spend, key)
			}
		}
		return &schemeKeys{scheme: s, spend: spend}, nil

	case SchemeRootKey:
		var spend []*crypto.PrivateKey
		for index := uint32(0); index < gapLimit; index++ {
			child, err := master.NewChildKey(index)
			if err != nil {
				zeroKeys(spend)
				return nil, fmt.Errorf("%s: index %d: %w", s, index, err)
			}
			key, err := privateKey(child)
			if err != nil {
				zeroKeys(spend)
				return nil, fmt.Errorf("%s: %w", s, err)
			}
			spend = append(spend, key)
		}
		return &schemeKeys{scheme: s, spend: spend}, nil

	default:
		return nil, fmt.Errorf("unknown scheme %d", uint8(s))
	}
}

// derivePath derives a key along a sequence of child indices.
func derivePath(key *bip32.Key, indices ...uint32) (*bip32.Key, error) {
	current := key
	for _, idx := range indices {
		child, err := current.NewChildKey(idx)
		if err != nil {
			return nil, fmt.Errorf("derive child %d: %w", idx, err)
		}
		current = child
	}
	return current, nil
}

// privateKey extracts the raw scalar from a bip32 key and wraps it for
// signing. bip32 private keys may carry a leading 0x00 padding byte.
func privateKey(k *bip32.Key) (*crypto.PrivateKey, error) {
	if !k.IsPrivate {
		return nil, fmt.Errorf("derived key is public-only")
	}
	raw := k.Key
	if len(raw) == 33 && raw[0] == 0 {
		raw = raw[1:]
	}
	return crypto.PrivateKeyFromBytes(raw)
}
