package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/paybatch/internal/domain"
)

// ExportUseCase hands the finished account mapping to the configured
// write-only sinks. Every sink is optional; the engine itself never
// reads anything back from them.
type ExportUseCase struct {
	snapshots SnapshotRepository
	cache     BalanceCache
	publisher EventPublisher
	idGen     IDGenerator
	logger    zerolog.Logger
}

// ExportConfig holds dependencies for ExportUseCase. Nil sinks are
// skipped.
type ExportConfig struct {
	Snapshots SnapshotRepository
	Cache     BalanceCache
	Publisher EventPublisher
	IDGen     IDGenerator
	Logger    *zerolog.Logger // optional
}

// NewExportUseCase creates a new ExportUseCase.
func NewExportUseCase(cfg ExportConfig) *ExportUseCase {
	if cfg.Logger == nil {
		nop := zerolog.Nop()
		cfg.Logger = &nop
	}

	return &ExportUseCase{
		snapshots: cfg.Snapshots,
		cache:     cfg.Cache,
		publisher: cfg.Publisher,
		idGen:     cfg.IDGen,
		logger:    *cfg.Logger,
	}
}

// Export pushes the final balances to all configured sinks. Sink
// failures do not stop the remaining sinks; all errors are joined.
func (uc *ExportUseCase) Export(ctx context.Context, runID string, accounts []*domain.Account, stats ProcessStats, elapsed time.Duration) error {
	var errs []error

	if uc.snapshots != nil {
		if err := uc.snapshots.SaveAll(ctx, runID, accounts); err != nil {
			errs = append(errs, fmt.Errorf("save snapshots: %w", err))
		} else {
			uc.logger.Info().Str("run_id", runID).Int("accounts", len(accounts)).Msg("snapshots saved")
		}
	}

	if uc.cache != nil {
		if err := uc.cache.SetAll(ctx, runID, accounts); err != nil {
			errs = append(errs, fmt.Errorf("cache balances: %w", err))
		} else {
			uc.logger.Info().Str("run_id", runID).Msg("balances cached")
		}
	}

	if uc.publisher != nil {
		if err := uc.publishEvents(ctx, runID, accounts, stats, elapsed); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (uc *ExportUseCase) publishEvents(ctx context.Context, runID string, accounts []*domain.Account, stats ProcessStats, elapsed time.Duration) error {
	now := time.Now().UTC()

	var errs []error

	for _, acc := range accounts {
		if !acc.Locked {
			continue
		}

		event := &domain.Event{
			ID:            uc.idGen.Generate(),
			AggregateID:   fmt.Sprintf("%d", acc.ClientID),
			AggregateType: domain.AggregateTypeAccount,
			EventType:     domain.EventTypeAccountLocked,
			Payload: map[string]any{
				"client_id": acc.ClientID,
				"available": acc.Available.String(),
				"held":      acc.Held.String(),
				"total":     acc.Total.String(),
				"run_id":    runID,
			},
			CreatedAt: now,
		}

		if err := uc.publisher.Publish(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("publish %s for client %d: %w", event.EventType, acc.ClientID, err))
		}
	}

	completed := &domain.Event{
		ID:            uc.idGen.Generate(),
		AggregateID:   runID,
		AggregateType: domain.AggregateTypeBatch,
		EventType:     domain.EventTypeBatchCompleted,
		Payload: map[string]any{
			"run_id":           runID,
			"transactions":     stats.Applied,
			"ignored":          stats.Ignored,
			"accounts":         len(accounts),
			"locked_accounts":  stats.AccountsLocked,
			"duration_seconds": elapsed.Seconds(),
		},
		CreatedAt: now,
	}

	if err := uc.publisher.Publish(ctx, completed); err != nil {
		errs = append(errs, fmt.Errorf("publish %s: %w", completed.EventType, err))
	}

	return errors.Join(errs...)
}
