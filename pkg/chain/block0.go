package chain

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rmourey26/chain-wallet-libs/pkg/crypto"
	"github.com/rmourey26/chain-wallet-libs/pkg/types"
)

// ErrInvalidBlock0 is wrapped by every block0 decode failure.
var ErrInvalidBlock0 = errors.New("invalid block0")

// Block0 binary framing.
// Layout (all integers little-endian):
//
//	magic(4) | version(2) | discrimination(1) | timestamp(8) |
//	feeConstant(8) | feeCoefficient(8) | feeCertificate(8) |
//	entryCount(4) | entries...
//
// entry: kind(1) followed by
//
//	kind 0 (utxo):    fragmentID(32) | outputIndex(1) | address(20) | value(8)
//	kind 1 (account): accountID(32) | value(8)
const (
	block0Magic   uint32 = 0x304C5743 // "CWL0"
	block0Version uint16 = 1
)

// FundKind discriminates the two initial-fund entry layouts.
type FundKind uint8

const (
	// FundUTXO is a legacy UTXO output present in the genesis ledger.
	FundUTXO FundKind = 0
	// FundAccount is an account balance present in the genesis ledger.
	FundAccount FundKind = 1
)

// Fund is one initial-fund entry of the genesis ledger state.
type Fund struct {
	Kind FundKind

	// Set for FundUTXO entries.
	Pointer types.UTXOPointer
	Address types.Address

	// Set for FundAccount entries.
	Account types.AccountID

	Value types.Value
}

// Block0 is the decoded genesis block: the chain settings plus the initial
// ledger funds.
type Block0 struct {
	Settings Settings
	Funds    []Fund
}

// ParseSettings decodes the genesis block and returns only the chain
// settings. The whole block is still validated; a block0 with a corrupt
// funds section is rejected here, not at scan time.
func ParseSettings(raw []byte) (*Settings, error) {
	blk, err := ParseBlock0(raw)
	if err != nil {
		return nil, err
	}
	return blk.Settings.Clone(), nil
}

// ParseBlock0 decodes a genesis block from its raw bytes. The input is
// untrusted: every field is validated and trailing bytes are rejected.
func ParseBlock0(raw []byte) (*Block0, error) {
	r := newReader(raw)

	magic := r.u32()
	version := r.u16()
	discrim := Discrimination(r.u8())
	timestamp := r.u64()
	feeConstant := r.u64()
	feeCoeff := r.u64()
	feeCert := r.u64()
	entryCount := r.u32()
	if r.err != nil {
		return nil, fmt.Errorf("%w: truncated header: %v", ErrInvalidBlock0, r.err)
	}
	if magic != block0Magic {
		return nil, fmt.Errorf("%w: bad magic %#x", ErrInvalidBlock0, magic)
	}
	if version != block0Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidBlock0, version)
	}
	if !discrim.Valid() {
		return nil, fmt.Errorf("%w: unknown discrimination %d", ErrInvalidBlock0, uint8(discrim))
	}

	// Each entry is at least 1+32+8 bytes; a count that cannot fit in the
	// remaining buffer is rejected before allocating.
	const minEntrySize = 1 + 32 + 8
	if uint64(entryCount)*minEntrySize > uint64(r.remaining()) {
		return nil, fmt.Errorf("%w: entry count %d exceeds buffer", ErrInvalidBlock0, entryCount)
	}

	funds := make([]Fund, 0, entryCount)
	for i := uint32(0); i < entryCount; i++ {
		kind := FundKind(r.u8())
		switch kind {
		case FundUTXO:
			var f Fund
			f.Kind = FundUTXO
			r.hash(&f.Pointer.FragmentID)
			f.Pointer.Index = r.u8()
			r.address(&f.Address)
			f.Value = types.Value(r.u64())
			funds = append(funds, f)
		case FundAccount:
			var f Fund
			f.Kind = FundAccount
			r.accountID(&f.Account)
			f.Value = types.Value(r.u64())
			funds = append(funds, f)
		default:
			return nil, fmt.Errorf("%w: unknown fund kind %d at entry %d", ErrInvalidBlock0, uint8(kind), i)
		}
		if r.err != nil {
			return nil, fmt.Errorf("%w: truncated entry %d: %v", ErrInvalidBlock0, i, r.err)
		}
	}

	if r.remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidBlock0, r.remaining())
	}

	return &Block0{
		Settings: Settings{
			Discrimination: discrim,
			Fees: LinearFee{
				Constant:    feeConstant,
				Coefficient: feeCoeff,
				Certificate: feeCert,
			},
			Block0Hash: crypto.Hash(raw),
			Block0Time: timestamp,
		},
		Funds: funds,
	}, nil
}

// reader walks a byte buffer with a sticky error, so a decode sequence can
// run to the next checkpoint without testing every read.
type reader struct {
	buf []byte
	off int
	err error
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

func (r *reader) remaining() int {
	return len(r.buf) - r.off
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.remaining() < n {
		r.err = fmt.Errorf("need %d bytes, have %d", n, r.remaining())
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) u8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *reader) u16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *reader) u32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *reader) u64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *reader) hash(dst *types.Hash) {
	if b := r.take(types.HashSize); b != nil {
		copy(dst[:], b)
	}
}

func (r *reader) address(dst *types.Address) {
	if b := r.take(types.AddressSize); b != nil {
		copy(dst[:], b)
	}
}

func (r *reader) accountID(dst *types.AccountID) {
	if b := r.take(types.AccountIDSize); b != nil {
		copy(dst[:], b)
	}
}
