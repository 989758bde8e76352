package usecase

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/paybatch/internal/domain"
)

// ErrSourceFailed wraps decode failures from the transaction source so
// callers can tell them apart from apply errors.
var ErrSourceFailed = errors.New("transaction source failed")

// Ignore reasons reported to the MetricsRecorder.
const (
	IgnoreReasonUnknownTx  = "unknown_tx"
	IgnoreReasonNotDispute = "not_under_dispute"
)

// ProcessorUseCase applies transactions against the ledger and mutates
// per-client accounts in place. It exclusively owns the account mapping
// and the ledger for the duration of a run; execution is strictly
// sequential.
type ProcessorUseCase struct {
	ledger   TransactionLedger
	accounts map[uint16]*domain.Account
	logger   zerolog.Logger
	metrics  MetricsRecorder
	stats    ProcessStats
}

// ProcessStats summarizes a finished run.
type ProcessStats struct {
	Applied         int64
	Ignored         int64
	AccountsCreated int
	AccountsLocked  int
}

// ProcessorConfig holds dependencies for ProcessorUseCase.
type ProcessorConfig struct {
	Ledger  TransactionLedger
	Logger  *zerolog.Logger // optional
	Metrics MetricsRecorder // optional
}

// NewProcessorUseCase creates a new ProcessorUseCase.
func NewProcessorUseCase(cfg ProcessorConfig) *ProcessorUseCase {
	if cfg.Metrics == nil {
		cfg.Metrics = nopMetrics{}
	}
	if cfg.Logger == nil {
		nop := zerolog.Nop()
		cfg.Logger = &nop
	}

	return &ProcessorUseCase{
		ledger:   cfg.Ledger,
		accounts: make(map[uint16]*domain.Account),
		logger:   *cfg.Logger,
		metrics:  cfg.Metrics,
	}
}

// ProcessAll drains the source, applying each transaction in order. The
// first fatal error stops processing at the current accumulated state;
// nothing is rolled back.
func (uc *ProcessorUseCase) ProcessAll(src TransactionSource) error {
	for {
		tx, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSourceFailed, err)
		}

		if err := uc.Apply(tx); err != nil {
			return err
		}
	}
}

// Apply runs a single transaction through the state machine.
//
// Deposit and withdrawal mutate balances and are then recorded under
// their own id; a duplicate id is a hard error. Dispute, resolve and
// chargeback resolve their reference through the ledger and reuse the
// referenced transaction's amount; a dangling or mismatched reference
// is tolerated and skipped.
func (uc *ProcessorUseCase) Apply(tx domain.Transaction) error {
	acc := uc.account(tx.ClientID)

	switch tx.Kind {
	case domain.KindDeposit:
		acc.Deposit(tx.Amount)
		if err := uc.ledger.Record(tx); err != nil {
			return err
		}

	case domain.KindWithdrawal:
		if err := acc.Withdraw(tx.Amount); err != nil {
			return fmt.Errorf("client %d tx %d: %w", tx.ClientID, tx.TxID, err)
		}
		if err := uc.ledger.Record(tx); err != nil {
			return err
		}

	case domain.KindDispute:
		prev, ok := uc.ledger.Lookup(tx.TxID)
		if !ok {
			uc.ignore(tx, IgnoreReasonUnknownTx)
			return nil
		}
		acc.Hold(prev.Amount)
		uc.override(tx, prev.Amount)

	case domain.KindResolve:
		prev, ok := uc.ledger.Lookup(tx.TxID)
		if !ok {
			uc.ignore(tx, IgnoreReasonUnknownTx)
			return nil
		}
		if prev.Kind != domain.KindDispute {
			uc.ignore(tx, IgnoreReasonNotDispute)
			return nil
		}
		acc.Release(prev.Amount)
		uc.override(tx, prev.Amount)

	case domain.KindChargeback:
		prev, ok := uc.ledger.Lookup(tx.TxID)
		if !ok {
			uc.ignore(tx, IgnoreReasonUnknownTx)
			return nil
		}
		if prev.Kind != domain.KindDispute {
			uc.ignore(tx, IgnoreReasonNotDispute)
			return nil
		}
		acc.Chargeback(prev.Amount)
		uc.override(tx, prev.Amount)
		uc.stats.AccountsLocked++
		uc.metrics.AccountLocked()

	default:
		return fmt.Errorf("%w: %d", domain.ErrUnknownTxKind, tx.Kind)
	}

	uc.stats.Applied++
	uc.metrics.TransactionApplied(tx.Kind.String())

	return nil
}

// Accounts returns the account mapping as a slice sorted by client id.
func (uc *ProcessorUseCase) Accounts() []*domain.Account {
	out := make([]*domain.Account, 0, len(uc.accounts))
	for _, acc := range uc.accounts {
		out = append(out, acc)
	}
	slices.SortFunc(out, func(a, b *domain.Account) int {
		return int(a.ClientID) - int(b.ClientID)
	})
	return out
}

// Account returns a single client's account.
func (uc *ProcessorUseCase) Account(clientID uint16) (*domain.Account, error) {
	acc, ok := uc.accounts[clientID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return acc, nil
}

// Stats returns processing counters for the run so far.
func (uc *ProcessorUseCase) Stats() ProcessStats {
	return uc.stats
}

// account resolves a client to its account, creating a fresh
// zero-balance, unlocked one on first reference.
func (uc *ProcessorUseCase) account(clientID uint16) *domain.Account {
	if acc, ok := uc.accounts[clientID]; ok {
		return acc
	}

	acc := domain.NewAccount(clientID)
	uc.accounts[clientID] = acc
	uc.stats.AccountsCreated++
	uc.metrics.AccountCreated()

	return acc
}

// override stores the dispute-lifecycle record under the disputed id.
// The disputed amount was captured at lookup time and is carried over,
// so later references keep deriving the true amount; only the stored
// kind tracks the lifecycle (deposit -> dispute -> resolve|chargeback).
func (uc *ProcessorUseCase) override(tx domain.Transaction, amount decimal.Decimal) {
	rec := tx
	rec.Amount = amount
	uc.ledger.Override(rec)
}

func (uc *ProcessorUseCase) ignore(tx domain.Transaction, reason string) {
	uc.stats.Ignored++
	uc.metrics.ReferenceIgnored(reason)
	uc.logger.Debug().
		Uint32("tx", tx.TxID).
		Uint16("client", tx.ClientID).
		Stringer("kind", tx.Kind).
		Str("reason", reason).
		Msg("reference ignored")
}

type nopMetrics struct{}

func (nopMetrics) TransactionApplied(string) {}
func (nopMetrics) ReferenceIgnored(string)   {}
func (nopMetrics) AccountCreated()           {}
func (nopMetrics) AccountLocked()            {}
