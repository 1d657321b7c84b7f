package wallet

import (
	"testing"

	"github.com/tyler-smith/go-bip39"
)

func testSeed(t *testing.T) []byte {
	t.Helper()
	seed, err := bip39.NewSeedWithErrorChecking(testMnemonic12, "")
	if err != nil {
		t.Fatalf("NewSeedWithErrorChecking() error: %v", err)
	}
	return seed
}

func TestDeriveSchemeShapes(t *testing.T) {
	seed := testSeed(t)

	tests := []struct {
		scheme      Scheme
		wantAccount bool
		wantSpend   int
	}{
		{SchemeAccount, true, 0},
		{SchemeBIP44, false, 2 * gapLimit},
		{SchemeRootKey, false, gapLimit},
	}
	for _, tt := range tests {
		t.Run(tt.scheme.String(), func(t *testing.T) {
			sk, err := deriveScheme(seed, tt.scheme)
			if err != nil {
				t.Fatalf("deriveScheme() error: %v", err)
			}
			defer sk.zero()

			if (sk.account != nil) != tt.wantAccount {
				t.Errorf("account key present = %v, want %v", sk.account != nil, tt.wantAccount)
			}
			if len(sk.spend) != tt.wantSpend {
				t.Errorf("spend keys = %d, want %d", len(sk.spend), tt.wantSpend)
			}
		})
	}
}

func TestDeriveSchemeDeterministic(t *testing.T) {
	seed := testSeed(t)

	a, err := deriveScheme(seed, SchemeBIP44)
	if err != nil {
		t.Fatalf("deriveScheme() error: %v", err)
	}
	defer a.zero()
	b, err := deriveScheme(seed, SchemeBIP44)
	if err != nil {
		t.Fatalf("deriveScheme() error: %v", err)
	}
	defer b.zero()

	for i := range a.spend {
		if a.spend[i].Address() != b.spend[i].Address() {
			t.Fatalf("spend key %d differs between identical derivations", i)
		}
	}
}

func TestZeroKeysWipes(t *testing.T) {
	seed := testSeed(t)

	sk, err := deriveScheme(seed, SchemeRootKey)
	if err != nil {
		t.Fatalf("deriveScheme() error: %v", err)
	}

	// Abandoning a partially derived key set must leave no scalar behind.
	zeroKeys(sk.spend)
	for i, k := range sk.spend {
		for _, b := range k.Serialize() {
			if b != 0 {
				t.Fatalf("spend key %d not wiped", i)
			}
		}
	}
}

func TestSchemesAreDistinct(t *testing.T) {
	seed := testSeed(t)

	bip44, err := deriveScheme(seed, SchemeBIP44)
	if err != nil {
		t.Fatalf("deriveScheme() error: %v", err)
	}
	defer bip44.zero()
	root, err := deriveScheme(seed, SchemeRootKey)
	if err != nil {
		t.Fatalf("deriveScheme() error: %v", err)
	}
	defer root.zero()

	seen := make(map[string]bool)
	for _, k := range bip44.spend {
		seen[k.Address().String()] = true
	}
	for _, k := range root.spend {
		if seen[k.Address().String()] {
			t.Fatal("schemes should not derive overlapping addresses")
		}
	}
}
