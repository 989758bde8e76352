package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/iho/paybatch/internal/domain"
	"github.com/iho/paybatch/internal/usecase"
	"github.com/iho/paybatch/internal/usecase/mocks"
)

func exportAccounts() []*domain.Account {
	locked := domain.NewAccount(1)
	locked.Deposit(dec("5.0"))
	locked.Hold(dec("5.0"))
	locked.Chargeback(dec("5.0"))

	open := domain.NewAccount(2)
	open.Deposit(dec("10.0"))

	return []*domain.Account{locked, open}
}

func TestExportUseCase_AllSinks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := exportAccounts()
	stats := usecase.ProcessStats{Applied: 4, AccountsCreated: 2, AccountsLocked: 1}

	snapshots := mocks.NewMockSnapshotRepository(ctrl)
	snapshots.EXPECT().SaveAll(gomock.Any(), "run-1", accounts).Return(nil)

	cache := mocks.NewMockBalanceCache(ctrl)
	cache.EXPECT().SetAll(gomock.Any(), "run-1", accounts).Return(nil)

	idGen := mocks.NewMockIDGenerator(ctrl)
	idGen.EXPECT().Generate().Return("event-id").Times(2)

	publisher := mocks.NewMockEventPublisher(ctrl)
	// one locked-account event plus the batch summary
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, event *domain.Event) error {
			if event.EventType != domain.EventTypeAccountLocked {
				t.Errorf("expected account.locked first, got %s", event.EventType)
			}
			if event.AggregateID != "1" {
				t.Errorf("expected aggregate id 1, got %s", event.AggregateID)
			}
			return nil
		})
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, event *domain.Event) error {
			if event.EventType != domain.EventTypeBatchCompleted {
				t.Errorf("expected batch.completed, got %s", event.EventType)
			}
			return nil
		})

	uc := usecase.NewExportUseCase(usecase.ExportConfig{
		Snapshots: snapshots,
		Cache:     cache,
		Publisher: publisher,
		IDGen:     idGen,
	})

	err := uc.Export(context.Background(), "run-1", accounts, stats, 2*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExportUseCase_NoSinksConfigured(t *testing.T) {
	uc := usecase.NewExportUseCase(usecase.ExportConfig{})

	err := uc.Export(context.Background(), "run-1", exportAccounts(), usecase.ProcessStats{}, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExportUseCase_SinkFailureDoesNotStopOthers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := exportAccounts()
	sinkErr := errors.New("db down")

	snapshots := mocks.NewMockSnapshotRepository(ctrl)
	snapshots.EXPECT().SaveAll(gomock.Any(), "run-1", accounts).Return(sinkErr)

	cache := mocks.NewMockBalanceCache(ctrl)
	cache.EXPECT().SetAll(gomock.Any(), "run-1", accounts).Return(nil)

	uc := usecase.NewExportUseCase(usecase.ExportConfig{
		Snapshots: snapshots,
		Cache:     cache,
	})

	err := uc.Export(context.Background(), "run-1", accounts, usecase.ProcessStats{}, time.Second)
	if !errors.Is(err, sinkErr) {
		t.Fatalf("expected sink error surfaced, got %v", err)
	}
}
