package wallet

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced to callers. Match with errors.Is.
var (
	// ErrInvalidMnemonic reports a mnemonic with a bad word count, unknown
	// words or a failed checksum, detected before any derivation.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")

	// ErrRecoveryFailed reports that no supported derivation scheme
	// produced valid keys for the phrase.
	ErrRecoveryFailed = errors.New("no derivation scheme produced valid keys")

	// ErrInvalidPayloadType reports an unrecognized vote payload type.
	ErrInvalidPayloadType = errors.New("invalid vote payload type")

	// ErrInvalidChoiceCount reports a proposal option count of zero or
	// above the protocol maximum.
	ErrInvalidChoiceCount = errors.New("invalid choice count")

	// ErrChoiceOutOfRange reports a vote choice outside the proposal's
	// option range.
	ErrChoiceOutOfRange = errors.New("choice out of range")

	// ErrOutOfBound reports an index past the end of a conversion's
	// transaction list.
	ErrOutOfBound = errors.New("access out of bound")
)

// Kind classifies an engine failure so the binding layer can translate it
// without string matching.
type Kind int

const (
	// KindInvalidInput covers malformed caller input: bad mnemonics,
	// payload types, choice counts, out-of-range choices.
	KindInvalidInput Kind = iota + 1
	// KindBlockDecode covers block0 bytes that cannot be parsed.
	KindBlockDecode
	// KindRecovery covers phrases no derivation scheme can recover.
	KindRecovery
	// KindOutOfBound covers indexed access past a collection's size.
	KindOutOfBound
)

// String returns the kind as a stable tag.
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindBlockDecode:
		return "block decode"
	case KindRecovery:
		return "recovery"
	case KindOutOfBound:
		return "out of bound"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a structured engine failure: a kind plus the underlying cause.
type Error struct {
	Kind Kind
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorKind extracts the failure kind from an error chain. Returns 0 when
// the error did not come from this package.
func ErrorKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func invalidInput(err error) *Error {
	return &Error{Kind: KindInvalidInput, Err: err}
}

func blockDecode(err error) *Error {
	return &Error{Kind: KindBlockDecode, Err: err}
}

func recoveryError(err error) *Error {
	return &Error{Kind: KindRecovery, Err: err}
}

func outOfBound(err error) *Error {
	return &Error{Kind: KindOutOfBound, Err: err}
}
