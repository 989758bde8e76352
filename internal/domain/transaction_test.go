package domain

import (
	"errors"
	"testing"
)

func TestParseTxKind(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        TxKind
		expectError bool
	}{
		{name: "deposit", input: "deposit", want: KindDeposit},
		{name: "withdrawal", input: "withdrawal", want: KindWithdrawal},
		{name: "dispute", input: "dispute", want: KindDispute},
		{name: "resolve", input: "resolve", want: KindResolve},
		{name: "chargeback", input: "chargeback", want: KindChargeback},
		{name: "unknown kind", input: "refund", expectError: true},
		{name: "empty", input: "", expectError: true},
		{name: "case sensitive", input: "Deposit", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTxKind(tt.input)

			if tt.expectError {
				if !errors.Is(err, ErrUnknownTxKind) {
					t.Errorf("expected ErrUnknownTxKind, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTxKind_String_RoundTrip(t *testing.T) {
	kinds := []TxKind{KindDeposit, KindWithdrawal, KindDispute, KindResolve, KindChargeback}

	for _, k := range kinds {
		parsed, err := ParseTxKind(k.String())
		if err != nil {
			t.Fatalf("ParseTxKind(%q): %v", k.String(), err)
		}
		if parsed != k {
			t.Errorf("round trip mismatch: %v != %v", parsed, k)
		}
	}
}

func TestTxKind_Funded(t *testing.T) {
	if !KindDeposit.Funded() || !KindWithdrawal.Funded() {
		t.Error("deposit and withdrawal carry their own amount")
	}
	for _, k := range []TxKind{KindDispute, KindResolve, KindChargeback} {
		if k.Funded() {
			t.Errorf("%v must not carry its own amount", k)
		}
	}
}
