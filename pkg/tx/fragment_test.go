package tx

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rmourey26/chain-wallet-libs/pkg/crypto"
	"github.com/rmourey26/chain-wallet-libs/pkg/types"
)

func testSigningKey(t *testing.T, fill byte) *crypto.PrivateKey {
	t.Helper()
	secret := make([]byte, crypto.PrivateKeySize)
	for i := range secret {
		secret[i] = fill + byte(i)
	}
	key, err := crypto.PrivateKeyFromBytes(secret)
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes() error: %v", err)
	}
	return key
}

func testBlock0Hash() types.Hash {
	return crypto.Hash([]byte("genesis"))
}

func TestTransferRoundTrip(t *testing.T) {
	key := testSigningKey(t, 1)
	block0 := testBlock0Hash()

	var frag types.Hash
	frag[0] = 0x11
	var dest types.Address
	dest[0] = 0x22
	var acct types.AccountID
	acct[0] = 0x33

	sealed, err := NewTransfer().
		AddUTXOInput(types.UTXOPointer{FragmentID: frag, Index: 2}, 1000, key).
		AddOutput(dest, 600).
		AddAccountOutput(acct, 380).
		Seal(block0)
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}

	decoded, err := DecodeFragment(sealed.Bytes())
	if err != nil {
		t.Fatalf("DecodeFragment() error: %v", err)
	}

	if decoded.Tag != TagTransfer {
		t.Errorf("tag = %d, want %d", decoded.Tag, TagTransfer)
	}
	if len(decoded.Inputs) != 1 || len(decoded.Outputs) != 2 || len(decoded.Witnesses) != 1 {
		t.Fatalf("decoded shape: %d inputs, %d outputs, %d witnesses",
			len(decoded.Inputs), len(decoded.Outputs), len(decoded.Witnesses))
	}

	in := decoded.Inputs[0]
	if in.Kind != InputUTXO || in.Pointer.Index != 2 || in.Value != 1000 {
		t.Errorf("input = %+v", in)
	}
	if decoded.Outputs[0].Kind != OutputSingle || decoded.Outputs[0].Value != 600 {
		t.Errorf("output 0 = %+v", decoded.Outputs[0])
	}
	if decoded.Outputs[1].Kind != OutputAccount || decoded.Outputs[1].Account != acct {
		t.Errorf("output 1 = %+v", decoded.Outputs[1])
	}

	if decoded.ID() != sealed.ID() {
		t.Error("fragment ID should survive the round trip")
	}
	if !bytes.Equal(decoded.Bytes(), sealed.Bytes()) {
		t.Error("re-encoded bytes should match the original")
	}
	if !decoded.Witnesses[0].Verify(block0, decoded.SigningBytes()) {
		t.Error("decoded witness should verify")
	}
}

func TestVoteCastRoundTrip(t *testing.T) {
	key := testSigningKey(t, 9)
	block0 := testBlock0Hash()
	planID := crypto.Hash([]byte("vote plan"))

	sealed, err := NewVoteCast(planID, 4, 1).
		AddAccountInput(key.AccountID(), 115, 7, key).
		Seal(block0)
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}

	decoded, err := DecodeFragment(sealed.Bytes())
	if err != nil {
		t.Fatalf("DecodeFragment() error: %v", err)
	}
	if decoded.Tag != TagVoteCast {
		t.Fatalf("tag = %d, want %d", decoded.Tag, TagVoteCast)
	}
	vc := decoded.VoteCast
	if vc == nil {
		t.Fatal("decoded vote cast payload missing")
	}
	if vc.VotePlanID != planID || vc.ProposalIndex != 4 || vc.Choice != 1 {
		t.Errorf("vote cast = %+v", vc)
	}

	w := decoded.Witnesses[0]
	if w.Kind != InputAccount || w.Counter != 7 {
		t.Errorf("witness = kind %d counter %d", w.Kind, w.Counter)
	}
	if !w.Verify(block0, decoded.SigningBytes()) {
		t.Error("account witness should verify")
	}
}

func TestWitnessBindsChainAndCounter(t *testing.T) {
	key := testSigningKey(t, 3)
	block0 := testBlock0Hash()
	signing := []byte("some signing bytes")

	utxoW, err := NewUTXOWitness(block0, signing, key)
	if err != nil {
		t.Fatalf("NewUTXOWitness() error: %v", err)
	}
	if !utxoW.Verify(block0, signing) {
		t.Error("utxo witness should verify on its own chain")
	}
	otherChain := crypto.Hash([]byte("other genesis"))
	if utxoW.Verify(otherChain, signing) {
		t.Error("utxo witness should not verify on another chain")
	}

	acctW, err := NewAccountWitness(block0, signing, 5, key)
	if err != nil {
		t.Fatalf("NewAccountWitness() error: %v", err)
	}
	if !acctW.Verify(block0, signing) {
		t.Error("account witness should verify at its counter")
	}
	tampered := acctW
	tampered.Counter = 6
	if tampered.Verify(block0, signing) {
		t.Error("account witness should not verify at a different counter")
	}
}

func TestSealValidation(t *testing.T) {
	key := testSigningKey(t, 5)

	if _, err := NewTransfer().Seal(testBlock0Hash()); err == nil {
		t.Error("Seal() should reject a fragment with no inputs")
	}

	b := NewTransfer()
	var p types.UTXOPointer
	for i := 0; i < MaxFragmentInputs+1; i++ {
		p.Index = uint8(i)
		b.AddUTXOInput(p, 1, key)
	}
	if _, err := b.Seal(testBlock0Hash()); err == nil {
		t.Error("Seal() should reject too many inputs")
	}
}

func TestDecodeFragmentRejects(t *testing.T) {
	key := testSigningKey(t, 2)
	sealed, err := NewTransfer().
		AddUTXOInput(types.UTXOPointer{}, 100, key).
		Seal(testBlock0Hash())
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}
	valid := sealed.Bytes()

	badTag := append([]byte(nil), valid...)
	badTag[0] = 99

	trailing := append(append([]byte(nil), valid...), 0xff)

	tests := []struct {
		name string
		raw  []byte
	}{
		{"empty", nil},
		{"unknown tag", badTag},
		{"truncated", valid[:len(valid)-10]},
		{"trailing bytes", trailing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFragment(tt.raw)
			if err == nil {
				t.Fatal("DecodeFragment() should fail")
			}
			if !errors.Is(err, ErrInvalidFragment) {
				t.Errorf("error %v should wrap ErrInvalidFragment", err)
			}
		})
	}
}

func TestFragmentIDExcludesWitnesses(t *testing.T) {
	key := testSigningKey(t, 4)

	sealed, err := NewTransfer().
		AddUTXOInput(types.UTXOPointer{}, 100, key).
		Seal(testBlock0Hash())
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}

	// The ID covers the signing bytes only, so it must not change with the
	// witness section appended.
	unsigned := Fragment{Tag: TagTransfer, Inputs: sealed.Inputs, Outputs: sealed.Outputs}
	if unsigned.ID() != sealed.ID() {
		t.Error("fragment ID should not depend on witnesses")
	}
}
