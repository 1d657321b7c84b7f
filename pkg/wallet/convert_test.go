package wallet

import (
	"errors"
	"testing"

	"github.com/rmourey26/chain-wallet-libs/pkg/chain"
	"github.com/rmourey26/chain-wallet-libs/pkg/tx"
	"github.com/rmourey26/chain-wallet-libs/pkg/types"
)

// convertSetup recovers a wallet, scans a genesis block holding the given
// UTXO values and returns both wallet and settings.
func convertSetup(t *testing.T, utxoValues []types.Value) (*Wallet, *chain.Settings) {
	t.Helper()
	w := testWallet(t)
	settings, err := w.RetrieveFunds(fundedBlock0(t, w, utxoValues, 0))
	if err != nil {
		t.Fatalf("RetrieveFunds() error: %v", err)
	}
	return w, settings
}

func TestConvertAllFunds(t *testing.T) {
	w, settings := convertSetup(t, []types.Value{1000, 2000, 3000})

	conv, err := w.Convert(settings)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if conv.Len() != 1 {
		t.Fatalf("Convert() produced %d transactions, want 1", conv.Len())
	}
	if total, count := conv.IgnoredValue(); total != 0 || count != 0 {
		t.Errorf("IgnoredValue() = (%d, %d), want (0, 0)", total, count)
	}

	raw, err := conv.Transaction(0)
	if err != nil {
		t.Fatalf("Transaction(0) error: %v", err)
	}
	frag, err := tx.DecodeFragment(raw)
	if err != nil {
		t.Fatalf("DecodeFragment() error: %v", err)
	}

	if len(frag.Inputs) != 3 || len(frag.Outputs) != 1 {
		t.Fatalf("fragment shape: %d inputs, %d outputs", len(frag.Inputs), len(frag.Outputs))
	}
	out := frag.Outputs[0]
	if out.Kind != tx.OutputAccount || out.Account != w.ID() {
		t.Errorf("output should credit the wallet account, got %+v", out)
	}
	// fee = 10 + 5*(3 inputs + 1 output) = 30
	if want := types.Value(6000 - 30); out.Value != want {
		t.Errorf("output value = %d, want %d", out.Value, want)
	}
	for i, witness := range frag.Witnesses {
		if !witness.Verify(settings.Block0Hash, frag.SigningBytes()) {
			t.Errorf("witness %d should verify", i)
		}
	}

	if len(w.UTXOs()) != 0 {
		t.Error("spent entries should be retired from the wallet")
	}
}

func TestConvertDustBoundary(t *testing.T) {
	// Threshold is the coefficient, 5: an entry worth exactly 5 is dust,
	// one worth 6 is spendable. The large companion keeps the batch viable
	// so the boundary is what decides inclusion.
	w, settings := convertSetup(t, []types.Value{5, 6, 10000})

	conv, err := w.Convert(settings)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if conv.Len() != 1 {
		t.Fatalf("Convert() produced %d transactions, want 1", conv.Len())
	}

	total, count := conv.IgnoredValue()
	if total != 5 || count != 1 {
		t.Errorf("IgnoredValue() = (%d, %d), want (5, 1)", total, count)
	}

	raw, _ := conv.Transaction(0)
	frag, err := tx.DecodeFragment(raw)
	if err != nil {
		t.Fatalf("DecodeFragment() error: %v", err)
	}
	if len(frag.Inputs) != 2 {
		t.Fatalf("fragment spends %d inputs, want 2", len(frag.Inputs))
	}
	// fee = 10 + 5*(2 inputs + 1 output) = 25
	if want := types.Value(10006 - 25); frag.Outputs[0].Value != want {
		t.Errorf("output value = %d, want %d", frag.Outputs[0].Value, want)
	}

	// Dust stays discovered but unusable.
	utxos := w.UTXOs()
	if len(utxos) != 1 || utxos[0].Value != 5 {
		t.Errorf("remaining utxos = %+v, want the single dust entry", utxos)
	}
}

func TestConvertBatchBelowFee(t *testing.T) {
	// A single entry worth 20 clears the per-input threshold but its batch
	// fee is 10 + 5*2 = 20: spending it nets nothing, so it is ignored.
	w, settings := convertSetup(t, []types.Value{20})

	conv, err := w.Convert(settings)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if conv.Len() != 0 {
		t.Errorf("Convert() produced %d transactions, want 0", conv.Len())
	}
	if total, count := conv.IgnoredValue(); total != 20 || count != 1 {
		t.Errorf("IgnoredValue() = (%d, %d), want (20, 1)", total, count)
	}
}

func TestConvertNoFunds(t *testing.T) {
	w, settings := convertSetup(t, nil)

	conv, err := w.Convert(settings)
	if err != nil {
		t.Fatalf("Convert() with no funds should succeed, got %v", err)
	}
	if conv.Len() != 0 {
		t.Errorf("Convert() produced %d transactions, want 0", conv.Len())
	}
	if total, count := conv.IgnoredValue(); total != 0 || count != 0 {
		t.Errorf("IgnoredValue() = (%d, %d), want (0, 0)", total, count)
	}
}

func TestConvertIsRepeatable(t *testing.T) {
	w, settings := convertSetup(t, []types.Value{5, 1000})

	if _, err := w.Convert(settings); err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	// Everything spendable is gone; a second round sees only the dust and
	// emits nothing.
	conv, err := w.Convert(settings)
	if err != nil {
		t.Fatalf("second Convert() error: %v", err)
	}
	if conv.Len() != 0 {
		t.Errorf("second Convert() produced %d transactions, want 0", conv.Len())
	}
	if total, count := conv.IgnoredValue(); total != 5 || count != 1 {
		t.Errorf("IgnoredValue() = (%d, %d), want (5, 1)", total, count)
	}
}

func TestConversionTransactionOutOfBound(t *testing.T) {
	w, settings := convertSetup(t, []types.Value{1000})

	conv, err := w.Convert(settings)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	for _, i := range []int{-1, conv.Len()} {
		if _, err := conv.Transaction(i); err == nil {
			t.Errorf("Transaction(%d) should fail", i)
		} else {
			if !errors.Is(err, ErrOutOfBound) {
				t.Errorf("Transaction(%d) error %v should wrap ErrOutOfBound", i, err)
			}
			if kind := ErrorKind(err); kind != KindOutOfBound {
				t.Errorf("ErrorKind() = %v, want %v", kind, KindOutOfBound)
			}
		}
	}
}
