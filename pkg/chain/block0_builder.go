package chain

import (
	"encoding/binary"

	"github.com/rmourey26/chain-wallet-libs/pkg/types"
)

// Block0Builder assembles a genesis block byte-for-byte. The wallet itself
// only ever decodes block0; the builder exists for chain tooling and for
// tests that need synthetic genesis ledgers.
type Block0Builder struct {
	discrimination Discrimination
	timestamp      uint64
	fees           LinearFee
	funds          []Fund
}

// NewBlock0Builder starts a genesis block for the given network.
func NewBlock0Builder(d Discrimination, timestamp uint64) *Block0Builder {
	return &Block0Builder{
		discrimination: d,
		timestamp:      timestamp,
	}
}

// SetFees sets the fee schedule recorded in the genesis block.
func (b *Block0Builder) SetFees(fees LinearFee) *Block0Builder {
	b.fees = fees
	return b
}

// AddUTXOFund adds a legacy UTXO output to the initial ledger state.
func (b *Block0Builder) AddUTXOFund(p types.UTXOPointer, addr types.Address, value types.Value) *Block0Builder {
	b.funds = append(b.funds, Fund{
		Kind:    FundUTXO,
		Pointer: p,
		Address: addr,
		Value:   value,
	})
	return b
}

// AddAccountFund adds an account balance to the initial ledger state.
func (b *Block0Builder) AddAccountFund(id types.AccountID, value types.Value) *Block0Builder {
	b.funds = append(b.funds, Fund{
		Kind:    FundAccount,
		Account: id,
		Value:   value,
	})
	return b
}

// Encode returns the canonical block0 bytes.
func (b *Block0Builder) Encode() []byte {
	var buf []byte
	buf = binary.LittleEndian.AppendUint32(buf, block0Magic)
	buf = binary.LittleEndian.AppendUint16(buf, block0Version)
	buf = append(buf, byte(b.discrimination))
	buf = binary.LittleEndian.AppendUint64(buf, b.timestamp)
	buf = binary.LittleEndian.AppendUint64(buf, b.fees.Constant)
	buf = binary.LittleEndian.AppendUint64(buf, b.fees.Coefficient)
	buf = binary.LittleEndian.AppendUint64(buf, b.fees.Certificate)

	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(b.funds)))
	for _, f := range b.funds {
		buf = append(buf, byte(f.Kind))
		switch f.Kind {
		case FundUTXO:
			buf = append(buf, f.Pointer.FragmentID[:]...)
			buf = append(buf, f.Pointer.Index)
			buf = append(buf, f.Address[:]...)
			buf = binary.LittleEndian.AppendUint64(buf, f.Value.U64())
		case FundAccount:
			buf = append(buf, f.Account[:]...)
			buf = binary.LittleEndian.AppendUint64(buf, f.Value.U64())
		}
	}
	return buf
}
