package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceRecalculatorSvc rebuilds cached account balances from journal lines.
// It is the only writer of the balance cache besides the adjust escape hatch.
type BalanceRecalculatorSvc interface {
	// RecalculateAccountBalance recomputes one account from its non-deleted lines and stores it.
	// A malformed account id is logged and yields a zero balance without error.
	RecalculateAccountBalance(ctx context.Context, userID, accountID string) (decimal.Decimal, error)

	// RecalculateAccounts recomputes each distinct account in accountIDs.
	// Every account is attempted; the returned error joins the individual failures.
	RecalculateAccounts(ctx context.Context, userID string, accountIDs []string) error

	// RecalculateAllUserAccounts recomputes every account of the user.
	// A failure on one account is reported in its result and does not stop the others.
	RecalculateAllUserAccounts(ctx context.Context, userID string) ([]domain.RecalculationResult, error)
}

// BalanceAdjusterSvc moves a cached balance without a journal entry.
type BalanceAdjusterSvc interface {
	// AdjustAccountBalance adds delta to the cached balance and returns the new value.
	// The next recalculation of the account discards the adjustment.
	AdjustAccountBalance(ctx context.Context, userID, accountID string, delta decimal.Decimal, reason string) (decimal.Decimal, error)
}

// BalanceSvcFacade combines all balance-related service interfaces
type BalanceSvcFacade interface {
	BalanceRecalculatorSvc
	BalanceAdjusterSvc
}

// RecalculationScheduler queues balance recalculation for background processing.
type RecalculationScheduler interface {
	// ScheduleUserRecalculation enqueues a full recalculation for the user and returns the task id.
	ScheduleUserRecalculation(ctx context.Context, userID string) (string, error)
}
