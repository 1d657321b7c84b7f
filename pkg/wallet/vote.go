package wallet

import (
	"fmt"

	"github.com/rmourey26/chain-wallet-libs/pkg/chain"
	"github.com/rmourey26/chain-wallet-libs/pkg/tx"
	"github.com/rmourey26/chain-wallet-libs/pkg/types"
)

// PayloadType says how a vote plan expects choices to be carried.
type PayloadType uint8

const (
	// PayloadPublic votes are readable by anyone on chain.
	PayloadPublic PayloadType = 1
	// PayloadPrivate votes are encrypted to the election key.
	PayloadPrivate PayloadType = 2
)

// MaxVoteOptions is the protocol bound on per-proposal options.
const MaxVoteOptions = 16

// VotePlan identifies a governance vote instance on chain.
type VotePlan struct {
	ID          types.Hash
	PayloadType PayloadType
}

// NewVotePlan builds a vote plan reference. Fails if payloadType is not a
// recognized value.
func NewVotePlan(id types.Hash, payloadType uint8) (*VotePlan, error) {
	pt := PayloadType(payloadType)
	if pt != PayloadPublic && pt != PayloadPrivate {
		return nil, invalidInput(fmt.Errorf("%w: %d", ErrInvalidPayloadType, payloadType))
	}
	return &VotePlan{ID: id, PayloadType: pt}, nil
}

// Proposal identifies one proposal within a vote plan and the closed range
// [0, Options) of valid choices.
type Proposal struct {
	Index   uint8
	Options uint8
}

// NewProposal builds a proposal reference. Fails if numChoices is zero or
// above MaxVoteOptions.
func NewProposal(index, numChoices uint8) (*Proposal, error) {
	if numChoices == 0 || numChoices > MaxVoteOptions {
		return nil, invalidInput(fmt.Errorf("%w: %d (allowed 1..%d)", ErrInvalidChoiceCount, numChoices, MaxVoteOptions))
	}
	return &Proposal{Index: index, Options: numChoices}, nil
}

// Vote builds the signed vote-cast transaction for the given choice.
//
// The fragment spends a single account input covering the fee, witnessed
// with the wallet's current counter. Sending it conceptually consumes one
// counter increment, but this method does not advance AccountState — the
// caller refreshes state with SetState after observing the transaction on
// chain, so an unsent transaction never desynchronizes the wallet.
func (w *Wallet) Vote(settings *chain.Settings, plan *VotePlan, proposal *Proposal, choice uint8) ([]byte, error) {
	if choice >= proposal.Options {
		return nil, invalidInput(fmt.Errorf("%w: choice %d, options [0, %d)", ErrChoiceOutOfRange, choice, proposal.Options))
	}

	fee := settings.Fees.Calculate(1, 0, 1)

	frag, err := tx.NewVoteCast(plan.ID, proposal.Index, choice).
		AddAccountInput(w.ID(), fee, w.state.Counter, w.accountKey).
		Seal(settings.Block0Hash)
	if err != nil {
		return nil, invalidInput(fmt.Errorf("seal vote fragment: %w", err))
	}
	return frag.Bytes(), nil
}
