package tx

import (
	"fmt"

	"github.com/rmourey26/chain-wallet-libs/pkg/crypto"
	"github.com/rmourey26/chain-wallet-libs/pkg/types"
)

// Builder assembles a fragment incrementally: payload, then inputs with the
// keys able to witness them, then outputs, then Seal.
type Builder struct {
	frag     Fragment
	keys     []*crypto.PrivateKey
	counters []uint32
}

// NewTransfer starts a plain value-transfer fragment.
func NewTransfer() *Builder {
	return &Builder{frag: Fragment{Tag: TagTransfer}}
}

// NewVoteCast starts a vote-cast fragment for the given vote plan, proposal
// index and choice.
func NewVoteCast(votePlanID types.Hash, proposalIndex, choice uint8) *Builder {
	return &Builder{frag: Fragment{
		Tag: TagVoteCast,
		VoteCast: &VoteCast{
			VotePlanID:    votePlanID,
			ProposalIndex: proposalIndex,
			Choice:        choice,
		},
	}}
}

// AddUTXOInput adds a UTXO input and the key that will witness it.
func (b *Builder) AddUTXOInput(p types.UTXOPointer, value types.Value, key *crypto.PrivateKey) *Builder {
	b.frag.Inputs = append(b.frag.Inputs, Input{
		Kind:    InputUTXO,
		Pointer: p,
		Value:   value,
	})
	b.keys = append(b.keys, key)
	b.counters = append(b.counters, 0)
	return b
}

// AddAccountInput adds an account withdrawal witnessed at the given counter.
func (b *Builder) AddAccountInput(id types.AccountID, value types.Value, counter uint32, key *crypto.PrivateKey) *Builder {
	b.frag.Inputs = append(b.frag.Inputs, Input{
		Kind:    InputAccount,
		Account: id,
		Value:   value,
	})
	b.keys = append(b.keys, key)
	b.counters = append(b.counters, counter)
	return b
}

// AddOutput adds an output paying value to a single address.
func (b *Builder) AddOutput(addr types.Address, value types.Value) *Builder {
	b.frag.Outputs = append(b.frag.Outputs, Output{Kind: OutputSingle, Address: addr, Value: value})
	return b
}

// AddAccountOutput adds an output crediting value to an account.
func (b *Builder) AddAccountOutput(id types.AccountID, value types.Value) *Builder {
	b.frag.Outputs = append(b.frag.Outputs, Output{Kind: OutputAccount, Account: id, Value: value})
	return b
}

// Seal signs every input and returns the finished fragment. The builder is
// not reusable after Seal.
func (b *Builder) Seal(block0 types.Hash) (*Fragment, error) {
	if len(b.frag.Inputs) == 0 {
		return nil, fmt.Errorf("fragment has no inputs")
	}
	if len(b.frag.Inputs) > MaxFragmentInputs {
		return nil, fmt.Errorf("too many inputs: %d > %d", len(b.frag.Inputs), MaxFragmentInputs)
	}
	if len(b.frag.Outputs) > MaxFragmentOutputs {
		return nil, fmt.Errorf("too many outputs: %d > %d", len(b.frag.Outputs), MaxFragmentOutputs)
	}

	signing := b.frag.SigningBytes()
	for i, in := range b.frag.Inputs {
		key := b.keys[i]
		if key == nil {
			return nil, fmt.Errorf("no key for input %d", i)
		}
		var (
			w   Witness
			err error
		)
		switch in.Kind {
		case InputUTXO:
			w, err = NewUTXOWitness(block0, signing, key)
		case InputAccount:
			w, err = NewAccountWitness(block0, signing, b.counters[i], key)
		}
		if err != nil {
			return nil, fmt.Errorf("sign input %d: %w", i, err)
		}
		b.frag.Witnesses = append(b.frag.Witnesses, w)
	}
	return &b.frag, nil
}
