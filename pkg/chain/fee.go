package chain

import (
	"math"
	"math/bits"

	"github.com/rmourey26/chain-wallet-libs/pkg/types"
)

// LinearFee is the chain's fee schedule:
//
//	fee = Constant + Coefficient*(inputs+outputs) + Certificate*certs
//
// All amounts are in base units.
type LinearFee struct {
	Constant    uint64 `json:"constant"`
	Coefficient uint64 `json:"coefficient"`
	Certificate uint64 `json:"certificate"`
}

// Calculate returns the fee for a fragment with the given number of inputs,
// outputs and certificate payloads. The fee parameters come from untrusted
// block0 bytes, so the sum saturates at MaxUint64 instead of wrapping; a
// saturated fee makes every fragment unaffordable, never cheap.
func (f LinearFee) Calculate(inputs, outputs, certificates int) types.Value {
	n := uint64(inputs) + uint64(outputs)

	total := types.Value(f.Constant)
	for _, term := range [2][2]uint64{
		{f.Coefficient, n},
		{f.Certificate, uint64(certificates)},
	} {
		hi, lo := bits.Mul64(term[0], term[1])
		if hi != 0 {
			return types.Value(math.MaxUint64)
		}
		t, err := total.Add(types.Value(lo))
		if err != nil {
			return types.Value(math.MaxUint64)
		}
		total = t
	}
	return total
}

// InputThreshold returns the marginal cost of adding one more input to a
// fragment. An entry worth no more than this is dust: spending it cannot
// increase the net recovered value.
func (f LinearFee) InputThreshold() types.Value {
	return types.Value(f.Coefficient)
}
