package domain

import "errors"

var (
	// Input errors. These abort the run.
	ErrUnknownTxKind  = errors.New("unknown transaction kind")
	ErrDuplicateTx    = errors.New("transaction id already recorded")
	ErrAmountRequired = errors.New("amount required")

	// Account errors
	ErrInsufficientFunds = errors.New("insufficient available funds")
	ErrAccountNotFound   = errors.New("account not found")
	ErrBalanceInvariant  = errors.New("total does not equal available plus held")
)
