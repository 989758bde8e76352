package domain

import (
	"github.com/shopspring/decimal"
)

// Account holds the derived balance for a single client. Accounts are
// created lazily on first reference, starting at zero and unlocked.
type Account struct {
	ClientID  uint16
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

// NewAccount creates a fresh zero-balance, unlocked account.
func NewAccount(clientID uint16) *Account {
	return &Account{
		ClientID:  clientID,
		Available: decimal.Zero,
		Held:      decimal.Zero,
		Total:     decimal.Zero,
	}
}

// Deposit credits available and total funds.
func (a *Account) Deposit(amount decimal.Decimal) {
	a.Available = a.Available.Add(amount)
	a.Total = a.Total.Add(amount)
}

// Withdraw debits available and total funds. The account must hold
// strictly more than the requested amount; on ErrInsufficientFunds no
// balance is touched.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !a.Available.GreaterThan(amount) {
		return ErrInsufficientFunds
	}
	a.Available = a.Available.Sub(amount)
	a.Total = a.Total.Sub(amount)
	return nil
}

// Hold moves disputed funds from available to held. Total is unchanged.
func (a *Account) Hold(amount decimal.Decimal) {
	a.Available = a.Available.Sub(amount)
	a.Held = a.Held.Add(amount)
}

// Release returns held funds to available, cancelling a dispute.
func (a *Account) Release(amount decimal.Decimal) {
	a.Available = a.Available.Add(amount)
	a.Held = a.Held.Sub(amount)
}

// Chargeback removes the disputed funds permanently and locks the
// account. Locked is a one-way latch; nothing ever clears it.
func (a *Account) Chargeback(amount decimal.Decimal) {
	a.Held = a.Held.Sub(amount)
	a.Total = a.Total.Sub(amount)
	a.Locked = true
}

// CheckInvariant verifies total == available + held. A violation
// indicates a logic defect, not bad input.
func (a *Account) CheckInvariant() error {
	if !a.Total.Equal(a.Available.Add(a.Held)) {
		return ErrBalanceInvariant
	}
	return nil
}
