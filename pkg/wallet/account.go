package wallet

import (
	"math"

	"github.com/rmourey26/chain-wallet-libs/pkg/types"
)

// AccountState is the wallet's view of its on-chain account: the spendable
// value and the monotonically increasing spending counter used to prevent
// transaction replay.
type AccountState struct {
	Value   types.Value
	Counter uint32
}

// SetState overwrites the account state with values the caller fetched from
// an authoritative chain query. The engine does not validate monotonicity:
// the data source is trusted, and counter reuse is only ever rejected by
// the network. Call this before every new transaction round.
func (w *Wallet) SetState(value types.Value, counter uint32) {
	w.state = AccountState{Value: value, Counter: counter}
}

// State returns the current account state.
func (w *Wallet) State() AccountState {
	return w.state
}

// Counter returns the current spending counter.
func (w *Wallet) Counter() uint32 {
	return w.state.Counter
}

// TotalValue returns the account value plus the value of all discovered,
// unspent UTXO entries. Saturates at the maximum representable value
// rather than wrapping.
func (w *Wallet) TotalValue() types.Value {
	total := w.state.Value
	for _, u := range w.utxos {
		t, err := total.Add(u.Value)
		if err != nil {
			return types.Value(math.MaxUint64)
		}
		total = t
	}
	return total
}
