package wallet

import (
	"fmt"

	"github.com/rmourey26/chain-wallet-libs/pkg/chain"
	"github.com/rmourey26/chain-wallet-libs/pkg/tx"
	"github.com/rmourey26/chain-wallet-libs/pkg/types"
)

// MaxConversionInputs caps how many UTXO entries one conversion fragment
// spends. Below the fragment encoding limit to leave headroom for the
// account output.
const MaxConversionInputs = 250

// Conversion is the immutable result of converting legacy UTXO funds into
// the account model: the signed transactions to submit, and the dust
// entries that were not worth spending.
type Conversion struct {
	transactions [][]byte
	ignored      []UTXO
}

// Len returns the number of signed transactions.
func (c *Conversion) Len() int {
	return len(c.transactions)
}

// Transaction returns the index-nth signed transaction bytes.
func (c *Conversion) Transaction(i int) ([]byte, error) {
	if i < 0 || i >= len(c.transactions) {
		return nil, outOfBound(fmt.Errorf("%w: transaction %d of %d", ErrOutOfBound, i, len(c.transactions)))
	}
	return c.transactions[i], nil
}

// Transactions returns all signed transactions in submission order.
func (c *Conversion) Transactions() [][]byte {
	return c.transactions
}

// Ignored returns the dust entries excluded from every transaction.
func (c *Conversion) Ignored() []UTXO {
	return c.ignored
}

// IgnoredValue returns the total value lost to dust and the number of dust
// entries. Informational only: these funds stay where they are.
func (c *Conversion) IgnoredValue() (types.Value, int) {
	var total types.Value
	for _, u := range c.ignored {
		total, _ = total.Add(u.Value)
	}
	return total, len(c.ignored)
}

// Convert builds the signed transactions moving the wallet's discovered
// UTXO funds into its account.
//
// Classification is a greedy single pass: an entry whose value does not
// exceed the marginal per-input fee is dust and goes to ignored (boundary
// inclusive) — spending it could not increase the recovered value. The
// remaining entries are batched, each batch producing one transaction that
// pays the batch total minus fee to the wallet's account. A residual batch
// whose total does not clear its own fee is likewise ignored.
//
// A wallet with no discovered funds yields an empty conversion; that is a
// valid result, not an error. Entries spent by an emitted transaction are
// retired from the wallet's UTXO set.
func (w *Wallet) Convert(settings *chain.Settings) (*Conversion, error) {
	threshold := settings.Fees.InputThreshold()

	var spendable, ignored []UTXO
	for _, u := range w.utxos {
		if u.Value <= threshold {
			ignored = append(ignored, u)
		} else {
			spendable = append(spendable, u)
		}
	}

	conv := &Conversion{ignored: ignored}
	accountID := w.ID()

	for start := 0; start < len(spendable); start += MaxConversionInputs {
		end := start + MaxConversionInputs
		if end > len(spendable) {
			end = len(spendable)
		}
		batch := spendable[start:end]

		total, err := sumUTXOs(batch)
		if err != nil {
			return nil, invalidInput(err)
		}
		fee := settings.Fees.Calculate(len(batch), 1, 0)
		if total <= fee {
			conv.ignored = append(conv.ignored, batch...)
			continue
		}

		builder := tx.NewTransfer()
		for _, u := range batch {
			key, ok := w.spendIndex[u.Address]
			if !ok {
				return nil, invalidInput(fmt.Errorf("no spend key for %s", u.Address))
			}
			builder.AddUTXOInput(u.Pointer, u.Value, key)
		}
		builder.AddAccountOutput(accountID, total-fee)

		frag, err := builder.Seal(settings.Block0Hash)
		if err != nil {
			return nil, invalidInput(fmt.Errorf("seal conversion fragment: %w", err))
		}
		conv.transactions = append(conv.transactions, frag.Bytes())
	}

	// Spent entries are retired; dust stays discovered but unusable.
	w.utxos = append([]UTXO(nil), conv.ignored...)

	return conv, nil
}

func sumUTXOs(utxos []UTXO) (types.Value, error) {
	var total types.Value
	for _, u := range utxos {
		t, err := total.Add(u.Value)
		if err != nil {
			return 0, err
		}
		total = t
	}
	return total, nil
}
