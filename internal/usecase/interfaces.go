package usecase

import (
	"context"

	"github.com/iho/paybatch/internal/domain"
)

// TransactionSource yields transaction records one at a time, in input
// order. Next returns io.EOF once the source is exhausted; any other
// error is a decode failure and is fatal to the run.
type TransactionSource interface {
	Next() (domain.Transaction, error)
}

// TransactionLedger is the history of accepted transactions, keyed by
// transaction id.
type TransactionLedger interface {
	Record(tx domain.Transaction) error
	Override(tx domain.Transaction)
	Lookup(id uint32) (domain.Transaction, bool)
	Len() int
}

// SnapshotRepository persists the final account balances of a run.
// Write-only: the engine never reads balances back.
type SnapshotRepository interface {
	SaveAll(ctx context.Context, runID string, accounts []*domain.Account) error
}

// BalanceCache pushes final balances to a cache for downstream consumers.
type BalanceCache interface {
	SetAll(ctx context.Context, runID string, accounts []*domain.Account) error
}

// EventPublisher publishes run events to external systems.
type EventPublisher interface {
	Publish(ctx context.Context, event *domain.Event) error
}

// IDGenerator generates unique identifiers for runs and events.
type IDGenerator interface {
	Generate() string
}

// MetricsRecorder observes processing outcomes.
type MetricsRecorder interface {
	TransactionApplied(kind string)
	ReferenceIgnored(reason string)
	AccountCreated()
	AccountLocked()
}
