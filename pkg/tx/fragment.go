// Package tx implements the fragment (transaction) model: canonical binary
// encoding, per-input witnesses and a builder to assemble signed fragments.
package tx

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rmourey26/chain-wallet-libs/pkg/crypto"
	"github.com/rmourey26/chain-wallet-libs/pkg/types"
)

// ErrInvalidFragment is wrapped by every fragment decode failure.
var ErrInvalidFragment = errors.New("invalid fragment")

// Tag identifies the fragment payload.
type Tag uint8

const (
	// TagTransfer moves value from inputs to outputs with no certificate.
	TagTransfer Tag = 1
	// TagVoteCast casts a vote on a proposal of a vote plan.
	TagVoteCast Tag = 2
)

// InputKind discriminates UTXO and account inputs.
type InputKind uint8

const (
	// InputUTXO spends a previous fragment output.
	InputUTXO InputKind = 0
	// InputAccount withdraws value from an account, replay-protected by the
	// account counter carried in the witness.
	InputAccount InputKind = 1
)

// MaxFragmentInputs is the most inputs a single fragment can carry; the
// input count is encoded in one byte.
const MaxFragmentInputs = 255

// MaxFragmentOutputs is the most outputs a single fragment can carry.
const MaxFragmentOutputs = 255

// Input is a fragment input: either a UTXO pointer or an account withdrawal.
type Input struct {
	Kind    InputKind
	Pointer types.UTXOPointer // set for InputUTXO
	Account types.AccountID   // set for InputAccount
	Value   types.Value
}

// OutputKind discriminates single-address and account outputs.
type OutputKind uint8

const (
	// OutputSingle pays a 20-byte single address (legacy UTXO model).
	OutputSingle OutputKind = 0
	// OutputAccount credits a 32-byte account.
	OutputAccount OutputKind = 1
)

// Output is a fragment output: value sent to a single address or credited
// to an account.
type Output struct {
	Kind    OutputKind
	Address types.Address   // set for OutputSingle
	Account types.AccountID // set for OutputAccount
	Value   types.Value
}

// VoteCast is the vote-cast certificate payload.
type VoteCast struct {
	VotePlanID    types.Hash
	ProposalIndex uint8
	Choice        uint8
}

// Fragment is a transaction: a payload plus inputs, outputs and one witness
// per input.
type Fragment struct {
	Tag       Tag
	VoteCast  *VoteCast // set when Tag == TagVoteCast
	Inputs    []Input
	Outputs   []Output
	Witnesses []Witness
}

// SigningBytes returns the canonical byte representation covered by the
// witness signatures: the full fragment minus the witnesses themselves.
func (f *Fragment) SigningBytes() []byte {
	var buf []byte

	buf = append(buf, byte(f.Tag))
	if f.Tag == TagVoteCast && f.VoteCast != nil {
		buf = append(buf, f.VoteCast.VotePlanID[:]...)
		buf = append(buf, f.VoteCast.ProposalIndex)
		buf = append(buf, f.VoteCast.Choice)
	}

	buf = append(buf, byte(len(f.Inputs)))
	for _, in := range f.Inputs {
		buf = append(buf, byte(in.Kind))
		switch in.Kind {
		case InputUTXO:
			buf = append(buf, in.Pointer.FragmentID[:]...)
			buf = append(buf, in.Pointer.Index)
		case InputAccount:
			buf = append(buf, in.Account[:]...)
		}
		buf = binary.LittleEndian.AppendUint64(buf, in.Value.U64())
	}

	buf = append(buf, byte(len(f.Outputs)))
	for _, out := range f.Outputs {
		buf = append(buf, byte(out.Kind))
		switch out.Kind {
		case OutputSingle:
			buf = append(buf, out.Address[:]...)
		case OutputAccount:
			buf = append(buf, out.Account[:]...)
		}
		buf = binary.LittleEndian.AppendUint64(buf, out.Value.U64())
	}

	return buf
}

// ID computes the fragment identifier: BLAKE3 of the signing bytes.
func (f *Fragment) ID() types.Hash {
	return crypto.Hash(f.SigningBytes())
}

// Bytes returns the full encoded fragment including witnesses.
func (f *Fragment) Bytes() []byte {
	buf := f.SigningBytes()
	for _, w := range f.Witnesses {
		buf = w.append(buf)
	}
	return buf
}

// DecodeFragment parses a fragment from its full encoded bytes. The input
// is untrusted; trailing bytes and witness/input count mismatches are
// rejected.
func DecodeFragment(raw []byte) (*Fragment, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidFragment)
	}

	r := &fragReader{buf: raw}
	var f Fragment

	f.Tag = Tag(r.u8())
	switch f.Tag {
	case TagTransfer:
	case TagVoteCast:
		var vc VoteCast
		r.bytes(vc.VotePlanID[:])
		vc.ProposalIndex = r.u8()
		vc.Choice = r.u8()
		f.VoteCast = &vc
	default:
		return nil, fmt.Errorf("%w: unknown tag %d", ErrInvalidFragment, uint8(f.Tag))
	}

	inputCount := int(r.u8())
	for i := 0; i < inputCount; i++ {
		var in Input
		in.Kind = InputKind(r.u8())
		switch in.Kind {
		case InputUTXO:
			r.bytes(in.Pointer.FragmentID[:])
			in.Pointer.Index = r.u8()
		case InputAccount:
			r.bytes(in.Account[:])
		default:
			if r.err == nil {
				return nil, fmt.Errorf("%w: unknown input kind %d", ErrInvalidFragment, uint8(in.Kind))
			}
		}
		in.Value = types.Value(r.u64())
		f.Inputs = append(f.Inputs, in)
	}

	outputCount := int(r.u8())
	for i := 0; i < outputCount; i++ {
		var out Output
		out.Kind = OutputKind(r.u8())
		switch out.Kind {
		case OutputSingle:
			r.bytes(out.Address[:])
		case OutputAccount:
			r.bytes(out.Account[:])
		default:
			if r.err == nil {
				return nil, fmt.Errorf("%w: unknown output kind %d", ErrInvalidFragment, uint8(out.Kind))
			}
		}
		out.Value = types.Value(r.u64())
		f.Outputs = append(f.Outputs, out)
	}

	for i := 0; i < inputCount; i++ {
		var w Witness
		w.Kind = InputKind(r.u8())
		switch w.Kind {
		case InputUTXO:
		case InputAccount:
			w.Counter = r.u32()
		default:
			if r.err == nil {
				return nil, fmt.Errorf("%w: unknown witness kind %d", ErrInvalidFragment, uint8(w.Kind))
			}
		}
		w.PubKey = make([]byte, crypto.PublicKeySize)
		r.bytes(w.PubKey)
		w.Signature = make([]byte, crypto.SignatureSize)
		r.bytes(w.Signature)
		f.Witnesses = append(f.Witnesses, w)
	}

	if r.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFragment, r.err)
	}
	if r.off != len(raw) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidFragment, len(raw)-r.off)
	}
	for i, w := range f.Witnesses {
		if w.Kind != f.Inputs[i].Kind {
			return nil, fmt.Errorf("%w: witness %d kind mismatch", ErrInvalidFragment, i)
		}
	}

	return &f, nil
}

// fragReader mirrors the block0 reader: sticky error, explicit offsets.
type fragReader struct {
	buf []byte
	off int
	err error
}

func (r *fragReader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.buf)-r.off < n {
		r.err = fmt.Errorf("need %d bytes, have %d", n, len(r.buf)-r.off)
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *fragReader) u8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *fragReader) u32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *fragReader) u64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *fragReader) bytes(dst []byte) {
	if b := r.take(len(dst)); b != nil {
		copy(dst, b)
	}
}
