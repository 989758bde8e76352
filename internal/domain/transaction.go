package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TxKind is the closed set of transaction kinds the engine accepts.
type TxKind uint8

const (
	KindDeposit TxKind = iota
	KindWithdrawal
	KindDispute
	KindResolve
	KindChargeback
)

// ParseTxKind maps a wire-format kind string to a TxKind.
// Kind strings are case-sensitive; anything unknown is a hard error.
func ParseTxKind(s string) (TxKind, error) {
	switch s {
	case "deposit":
		return KindDeposit, nil
	case "withdrawal":
		return KindWithdrawal, nil
	case "dispute":
		return KindDispute, nil
	case "resolve":
		return KindResolve, nil
	case "chargeback":
		return KindChargeback, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTxKind, s)
	}
}

func (k TxKind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindWithdrawal:
		return "withdrawal"
	case KindDispute:
		return "dispute"
	case KindResolve:
		return "resolve"
	case KindChargeback:
		return "chargeback"
	default:
		return "unknown"
	}
}

// Funded reports whether the kind carries its own amount. Dispute, resolve
// and chargeback records reference a prior transaction and reuse its amount.
func (k TxKind) Funded() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// Transaction is a single input record. For deposit and withdrawal, TxID is
// the record's own unique identifier. For dispute, resolve and chargeback,
// TxID names the transaction under dispute and Amount is unused.
type Transaction struct {
	Kind     TxKind
	ClientID uint16
	TxID     uint32
	Amount   decimal.Decimal
}
