package wallet

import (
	"fmt"

	"github.com/rmourey26/chain-wallet-libs/pkg/chain"
	"github.com/rmourey26/chain-wallet-libs/pkg/types"
)

// RetrieveFunds scans a genesis block for funds belonging to this wallet
// and returns the chain settings parsed from it.
//
// Every initial-fund entry is tested against the wallet's key set in one
// full pass: UTXO entries whose address matches a derived spend key are
// collected, account entries matching the wallet's account ID credit the
// account value. Re-scanning replaces the previously discovered funds —
// block0 is immutable, so the result is authoritative for this source.
//
// The scan cost scales with the size of block0; there is no partial or
// incremental mode.
func (w *Wallet) RetrieveFunds(block0 []byte) (*chain.Settings, error) {
	blk, err := chain.ParseBlock0(block0)
	if err != nil {
		return nil, blockDecode(err)
	}

	id := w.ID()

	var (
		utxos        []UTXO
		accountValue types.Value
	)
	for _, f := range blk.Funds {
		switch f.Kind {
		case chain.FundUTXO:
			if _, mine := w.spendIndex[f.Address]; mine {
				utxos = append(utxos, UTXO{
					Pointer: f.Pointer,
					Address: f.Address,
					Value:   f.Value,
				})
			}
		case chain.FundAccount:
			if f.Account == id {
				v, err := accountValue.Add(f.Value)
				if err != nil {
					// A ledger claiming more than MaxUint64 for one
					// account is corrupt, not rich.
					return nil, blockDecode(fmt.Errorf("account funds overflow: %w", err))
				}
				accountValue = v
			}
		}
	}

	w.utxos = utxos
	w.state = AccountState{Value: accountValue, Counter: w.state.Counter}

	return blk.Settings.Clone(), nil
}
