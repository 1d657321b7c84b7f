package types

import "fmt"

// UTXOPointer references a specific output of a previous fragment.
type UTXOPointer struct {
	FragmentID Hash  `json:"fragment_id"`
	Index      uint8 `json:"index"`
}

// String returns "fragmentid:index" in hex.
func (p UTXOPointer) String() string {
	return fmt.Sprintf("%s:%d", p.FragmentID.String(), p.Index)
}
