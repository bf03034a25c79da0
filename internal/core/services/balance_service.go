package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
)

// DefaultRecalcConcurrency bounds how many accounts a bulk recalculation works on at once.
const DefaultRecalcConcurrency = 4

// balanceService derives cached balances from the journal.
type balanceService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	lineRepo    portsrepo.AccountLineReader
	concurrency int
}

// BalanceOption configures the balance service.
type BalanceOption func(*balanceService)

// WithRecalcConcurrency sets how many accounts RecalculateAllUserAccounts processes in parallel.
func WithRecalcConcurrency(n int) BalanceOption {
	return func(s *balanceService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewBalanceService creates the balance recalculator.
func NewBalanceService(accountRepo portsrepo.AccountRepositoryFacade, lineRepo portsrepo.AccountLineReader, options ...BalanceOption) portssvc.BalanceSvcFacade {
	svc := &balanceService{
		accountRepo: accountRepo,
		lineRepo:    lineRepo,
		concurrency: DefaultRecalcConcurrency,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// RecalculateAccountBalance recomputes SUM(debits) - SUM(credits) over the account's
// non-deleted lines and stores it as the cached balance.
func (s *balanceService) RecalculateAccountBalance(ctx context.Context, userID, accountID string) (decimal.Decimal, error) {
	if _, err := uuid.Parse(accountID); err != nil {
		s.LogWarn(ctx, "Skipping balance recalculation for malformed account id",
			slog.String("account_id", accountID),
			slog.String("error", fmt.Errorf("%w: %v", apperrors.ErrInvalidID, err).Error()))
		return decimal.Zero, nil
	}

	balance, err := s.lineRepo.SumAccountLines(ctx, userID, accountID, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account lines", slog.String("account_id", accountID))
		return decimal.Zero, fmt.Errorf("failed to sum lines of account %s: %w", accountID, err)
	}

	if err := s.accountRepo.SetAccountBalance(ctx, userID, accountID, balance, s.now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to store recalculated balance", slog.String("account_id", accountID))
		}
		return decimal.Zero, fmt.Errorf("failed to store balance of account %s: %w", accountID, err)
	}

	s.LogDebug(ctx, "Account balance recalculated",
		slog.String("account_id", accountID),
		slog.String("balance", balance.String()))
	return balance, nil
}

// RecalculateAccounts recalculates each distinct account once, in order.
func (s *balanceService) RecalculateAccounts(ctx context.Context, userID string, accountIDs []string) error {
	seen := make(map[string]struct{}, len(accountIDs))
	var errs []error
	for _, id := range accountIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if _, err := s.RecalculateAccountBalance(ctx, userID, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecalculateAllUserAccounts recalculates every account of the user with bounded parallelism.
// Results keep the account listing order.
func (s *balanceService) RecalculateAllUserAccounts(ctx context.Context, userID string) ([]domain.RecalculationResult, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for recalculation", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	results := make([]domain.RecalculationResult, len(accounts))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, acc := range accounts {
		i, acc := i, acc
		results[i] = domain.RecalculationResult{AccountID: acc.AccountID, Code: acc.Code, Name: acc.Name}
		g.Go(func() error {
			balance, err := s.RecalculateAccountBalance(ctx, userID, acc.AccountID)
			results[i].Balance = balance
			results[i].Err = err
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	s.LogInfo(ctx, "Recalculated all user accounts",
		slog.String("user_id", userID),
		slog.Int("accounts", len(results)),
		slog.Int("failed", failed))
	return results, nil
}

// AdjustAccountBalance shifts the cached balance without touching the journal.
func (s *balanceService) AdjustAccountBalance(ctx context.Context, userID, accountID string, delta decimal.Decimal, reason string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	balance := account.Balance().Add(delta)
	if err := s.accountRepo.SetAccountBalance(ctx, userID, accountID, balance, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to adjust account balance", slog.String("account_id", accountID))
		return decimal.Zero, fmt.Errorf("failed to adjust balance of account %s: %w", accountID, err)
	}

	s.LogWarn(ctx, "Account balance adjusted manually",
		slog.String("account_id", accountID),
		slog.String("delta", delta.String()),
		slog.String("balance", balance.String()),
		slog.String("reason", reason))
	return balance, nil
}
