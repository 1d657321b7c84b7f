package types

import (
	"math"
	"testing"
)

func TestValueAdd(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Value
		want    Value
		wantErr bool
	}{
		{"zero plus zero", 0, 0, 0, false},
		{"simple", 100, 23, 123, false},
		{"max plus zero", math.MaxUint64, 0, math.MaxUint64, false},
		{"overflow", math.MaxUint64, 1, 0, true},
		{"big overflow", math.MaxUint64 - 10, 11, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Add(tt.b)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Add() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Add() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValueSub(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Value
		want    Value
		wantErr bool
	}{
		{"simple", 100, 23, 77, false},
		{"to zero", 50, 50, 0, false},
		{"underflow", 10, 11, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Sub(tt.b)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Sub() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Sub() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSumValues(t *testing.T) {
	got, err := SumValues([]Value{1, 2, 3})
	if err != nil {
		t.Fatalf("SumValues() error: %v", err)
	}
	if got != 6 {
		t.Errorf("SumValues() = %d, want 6", got)
	}

	if _, err := SumValues([]Value{math.MaxUint64, 1}); err == nil {
		t.Error("SumValues() should fail on overflow")
	}

	got, err = SumValues(nil)
	if err != nil {
		t.Fatalf("SumValues(nil) error: %v", err)
	}
	if got != 0 {
		t.Errorf("SumValues(nil) = %d, want 0", got)
	}
}
