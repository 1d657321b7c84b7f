package wallet

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/rmourey26/chain-wallet-libs/pkg/crypto"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Sealed export lets the binding layer move the account secret between
// devices without plaintext at rest: Argon2id key derivation, then
// XChaCha20-Poly1305.
//
// Sealed format: salt(32) | memory(4) | iterations(4) | parallelism(1) |
// nonce(24) | ciphertext.
const (
	sealSaltSize   = 32
	sealHeaderSize = sealSaltSize + 4 + 4 + 1
)

// SealParams holds the Argon2id cost parameters recorded in the sealed
// blob, so unsealing works whatever parameters sealed it.
type SealParams struct {
	Memory      uint32 // in KiB
	Iterations  uint32
	Parallelism uint8
}

// DefaultSealParams returns the recommended Argon2id parameters.
func DefaultSealParams() SealParams {
	return SealParams{
		Memory:      64 * 1024, // 64 MB
		Iterations:  3,
		Parallelism: 4,
	}
}

func sealKey(password, salt []byte, params SealParams) []byte {
	return argon2.IDKey(
		password,
		salt,
		params.Iterations,
		params.Memory,
		params.Parallelism,
		chacha20poly1305.KeySize,
	)
}

// ExportSecret seals the wallet's account secret under a password.
func (w *Wallet) ExportSecret(password []byte, params SealParams) ([]byte, error) {
	secret := w.accountKey.Serialize()
	defer crypto.Zeroes(secret)
	return Seal(secret, password, params)
}

// Seal encrypts data under a password. The derived key is zeroed on every
// exit path.
func Seal(data, password []byte, params SealParams) ([]byte, error) {
	salt := make([]byte, sealSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	key := sealKey(password, salt, params)
	defer crypto.Zeroes(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := aead.Seal(nil, nonce, data, nil)

	out := make([]byte, 0, sealHeaderSize+len(nonce)+len(ciphertext))
	out = append(out, salt...)
	out = binary.LittleEndian.AppendUint32(out, params.Memory)
	out = binary.LittleEndian.AppendUint32(out, params.Iterations)
	out = append(out, params.Parallelism)
	out = append(out, nonce...)
	out = append(out, ciphertext...)
	return out, nil
}

// Unseal decrypts a blob produced by Seal with the given password.
func Unseal(sealed, password []byte) ([]byte, error) {
	nonceSize := chacha20poly1305.NonceSizeX
	minSize := sealHeaderSize + nonceSize + chacha20poly1305.Overhead
	if len(sealed) < minSize {
		return nil, fmt.Errorf("sealed data too short: %d bytes, need at least %d", len(sealed), minSize)
	}

	salt := sealed[:sealSaltSize]
	params := SealParams{
		Memory:      binary.LittleEndian.Uint32(sealed[sealSaltSize:]),
		Iterations:  binary.LittleEndian.Uint32(sealed[sealSaltSize+4:]),
		Parallelism: sealed[sealSaltSize+8],
	}

	nonce := sealed[sealHeaderSize : sealHeaderSize+nonceSize]
	ciphertext := sealed[sealHeaderSize+nonceSize:]

	key := sealKey(password, salt, params)
	defer crypto.Zeroes(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("unseal: %w", err)
	}
	return plaintext, nil
}
