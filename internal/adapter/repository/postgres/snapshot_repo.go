package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/paybatch/internal/domain"
)

// SnapshotRepository implements usecase.SnapshotRepository. It only
// writes: the engine never restores state from a previous run.
type SnapshotRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
	idGen   *ULIDGenerator
}

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{
		pool:    pool,
		retrier: NewRetrier(),
		idGen:   NewULIDGenerator(),
	}
}

// SaveAll inserts one snapshot row per account, all rows in one
// transaction so a run's export is all-or-nothing.
func (r *SnapshotRepository) SaveAll(ctx context.Context, runID string, accounts []*domain.Account) error {
	now := time.Now().UTC()

	return r.retrier.Retry(ctx, func() error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin: %w", err)
		}
		defer tx.Rollback(ctx)

		batch := &pgx.Batch{}
		for _, acc := range accounts {
			batch.Queue(`
				INSERT INTO account_snapshots (
					id, run_id, client_id, available, held, total, locked, created_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			`,
				r.idGen.Generate(),
				runID,
				int32(acc.ClientID),
				acc.Available,
				acc.Held,
				acc.Total,
				acc.Locked,
				now,
			)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert snapshots: %w", err)
		}

		return tx.Commit(ctx)
	})
}
