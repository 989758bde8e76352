// Package ledger keeps the history of accepted transactions, keyed by
// transaction id, so dispute-lifecycle records can resolve their references.
package ledger

import (
	"fmt"

	"github.com/iho/paybatch/internal/domain"
)

// Ledger is the in-memory transaction history for a single run. Entries
// are never deleted; resolved and charged-back disputes stay queryable.
// The run is strictly sequential, so no locking is needed.
type Ledger struct {
	entries map[uint32]domain.Transaction
}

// New creates an empty Ledger.
func New() *Ledger {
	return &Ledger{
		entries: make(map[uint32]domain.Transaction),
	}
}

// Record inserts a transaction under its own id. A second deposit or
// withdrawal reusing an id is a hard error for the run.
func (l *Ledger) Record(tx domain.Transaction) error {
	if _, exists := l.entries[tx.TxID]; exists {
		return fmt.Errorf("%w: %d", domain.ErrDuplicateTx, tx.TxID)
	}
	l.entries[tx.TxID] = tx
	return nil
}

// Override writes a transaction under its id without the duplicate check.
// Only the dispute lifecycle uses it: dispute, resolve and chargeback
// records are stored under the disputed transaction's id, replacing the
// entry's kind so later records can check the dispute state.
func (l *Ledger) Override(tx domain.Transaction) {
	l.entries[tx.TxID] = tx
}

// Lookup returns the stored transaction for id, if any. Read-only.
func (l *Ledger) Lookup(id uint32) (domain.Transaction, bool) {
	tx, ok := l.entries[id]
	return tx, ok
}

// Len returns the number of recorded transactions.
func (l *Ledger) Len() int {
	return len(l.entries)
}
