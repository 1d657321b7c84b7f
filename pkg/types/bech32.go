package types

import (
	"fmt"
	"strings"
)

// bech32Alphabet is the BIP-173 data character set. The index of a character
// is its 5-bit value.
const bech32Alphabet = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// checksumLen is the number of trailing checksum characters.
const checksumLen = 6

// Bech32Encode renders data under the given human-readable part. Addresses
// and account identifiers go through this, with the HRP carrying the
// network discrimination.
func Bech32Encode(hrp string, data []byte) (string, error) {
	if hrp == "" {
		return "", fmt.Errorf("bech32: empty HRP")
	}
	for i := 0; i < len(hrp); i++ {
		if hrp[i] < 33 || hrp[i] > 126 {
			return "", fmt.Errorf("bech32: invalid HRP character %q", hrp[i])
		}
	}

	groups, err := regroupBits(data, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("bech32: %w", err)
	}

	var sb strings.Builder
	sb.Grow(len(hrp) + 1 + len(groups) + checksumLen)
	sb.WriteString(hrp)
	sb.WriteByte('1')
	for _, g := range groups {
		sb.WriteByte(bech32Alphabet[g])
	}
	for _, g := range checksum(hrp, groups) {
		sb.WriteByte(bech32Alphabet[g])
	}
	return sb.String(), nil
}

// Bech32Decode splits and validates a bech32 string, returning the HRP and
// the decoded data bytes. All-uppercase input is accepted, mixed case is
// not.
func Bech32Decode(s string) (string, []byte, error) {
	if s == "" {
		return "", nil, fmt.Errorf("bech32: empty string")
	}
	if lower := strings.ToLower(s); lower != s {
		if strings.ToUpper(s) != s {
			return "", nil, fmt.Errorf("bech32: mixed case")
		}
		s = lower
	}

	sep := strings.LastIndexByte(s, '1')
	if sep < 1 {
		return "", nil, fmt.Errorf("bech32: missing separator")
	}
	hrp, body := s[:sep], s[sep+1:]
	if len(body) < checksumLen {
		return "", nil, fmt.Errorf("bech32: too short")
	}

	groups := make([]byte, len(body))
	for i := 0; i < len(body); i++ {
		v := strings.IndexByte(bech32Alphabet, body[i])
		if v < 0 {
			return "", nil, fmt.Errorf("bech32: invalid character %q", body[i])
		}
		groups[i] = byte(v)
	}

	if polymod(hrp, groups) != 1 {
		return "", nil, fmt.Errorf("bech32: invalid checksum")
	}

	data, err := regroupBits(groups[:len(groups)-checksumLen], 5, 8, false)
	if err != nil {
		return "", nil, fmt.Errorf("bech32: %w", err)
	}
	return hrp, data, nil
}

// polymod runs the BIP-173 checksum polynomial over the expanded HRP
// followed by the 5-bit data groups.
func polymod(hrp string, groups []byte) uint32 {
	chk := uint32(1)
	step := func(v byte) {
		top := chk >> 25
		chk = (chk&0x1ffffff)<<5 ^ uint32(v)
		for i, g := range [5]uint32{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3} {
			if (top>>uint(i))&1 == 1 {
				chk ^= g
			}
		}
	}
	for i := 0; i < len(hrp); i++ {
		step(hrp[i] >> 5)
	}
	step(0)
	for i := 0; i < len(hrp); i++ {
		step(hrp[i] & 31)
	}
	for _, g := range groups {
		step(g)
	}
	return chk
}

// checksum computes the six 5-bit groups appended to an encoding.
func checksum(hrp string, groups []byte) [checksumLen]byte {
	padded := make([]byte, len(groups)+checksumLen)
	copy(padded, groups)
	mod := polymod(hrp, padded) ^ 1

	var out [checksumLen]byte
	for i := range out {
		out[i] = byte(mod >> uint(5*(5-i)) & 31)
	}
	return out
}

// regroupBits repacks a byte sequence between group widths (8 and 5 here).
// pad zero-fills an incomplete final group when encoding; decoding instead
// rejects leftover non-zero bits.
func regroupBits(data []byte, from, to uint, pad bool) ([]byte, error) {
	var (
		acc  uint32
		have uint
	)
	mask := uint32(1)<<to - 1
	out := make([]byte, 0, (len(data)*int(from)+int(to)-1)/int(to))

	for _, b := range data {
		if uint32(b)>>from != 0 {
			return nil, fmt.Errorf("invalid %d-bit group %d", from, b)
		}
		acc = acc<<from | uint32(b)
		have += from
		for have >= to {
			have -= to
			out = append(out, byte(acc>>have&mask))
		}
	}

	switch {
	case pad && have > 0:
		out = append(out, byte(acc<<(to-have)&mask))
	case !pad && (have >= from || acc<<(to-have)&mask != 0):
		return nil, fmt.Errorf("non-zero padding")
	}
	return out, nil
}
