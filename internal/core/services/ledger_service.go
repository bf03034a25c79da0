package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/utils/accounting"
)

// ledgerService answers ledger queries straight from the journal; it never reads the
// cached balance.
type ledgerService struct {
	BaseService
	accountRepo  portsrepo.AccountReader
	lineRepo     portsrepo.AccountLineReader
	customerRepo portsrepo.CustomerReader
	supplierRepo portsrepo.SupplierReader
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(
	accountRepo portsrepo.AccountReader,
	lineRepo portsrepo.AccountLineReader,
	customerRepo portsrepo.CustomerReader,
	supplierRepo portsrepo.SupplierReader,
) portssvc.LedgerSvc {
	return &ledgerService{
		accountRepo:  accountRepo,
		lineRepo:     lineRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
	}
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

func (s *ledgerService) GetAccountLedger(ctx context.Context, userID, accountID string, query domain.LedgerQuery) (*domain.Ledger, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for ledger", slog.String("account_id", accountID))
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return s.buildLedger(ctx, userID, account, query)
}

func (s *ledgerService) GetCustomerLedger(ctx context.Context, userID, customerID string, query domain.LedgerQuery) (*domain.Ledger, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, userID, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}
	return s.GetAccountLedger(ctx, userID, customer.AccountID, query)
}

func (s *ledgerService) GetSupplierLedger(ctx context.Context, userID, supplierID string, query domain.LedgerQuery) (*domain.Ledger, error) {
	supplier, err := s.supplierRepo.FindSupplierByID(ctx, userID, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to find supplier %s: %w", supplierID, err)
	}
	return s.GetAccountLedger(ctx, userID, supplier.AccountID, query)
}

// buildLedger carries the balance of every line before the start date forward, then
// folds the lines inside the range.
func (s *ledgerService) buildLedger(ctx context.Context, userID string, account *domain.Account, query domain.LedgerQuery) (*domain.Ledger, error) {
	opening := decimal.Zero
	if query.StartDate != nil {
		sum, err := s.lineRepo.SumAccountLines(ctx, userID, account.AccountID, query.StartDate)
		if err != nil {
			s.LogError(ctx, err, "Failed to compute opening balance", slog.String("account_id", account.AccountID))
			return nil, fmt.Errorf("failed to compute opening balance: %w", err)
		}
		opening = sum
	}

	lines, err := s.lineRepo.ListAccountLines(ctx, userID, account.AccountID, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account lines", slog.String("account_id", account.AccountID))
		return nil, fmt.Errorf("failed to list lines of account %s: %w", account.AccountID, err)
	}

	ledger := accounting.BuildLedger(account.AccountID, opening, query.StartDate, lines)
	ledger.AccountName = account.Name

	s.LogDebug(ctx, "Ledger built",
		slog.String("account_id", account.AccountID),
		slog.Int("rows", len(ledger.Rows)),
		slog.String("closing_balance", ledger.ClosingBalance.String()))
	return &ledger, nil
}

func (s *ledgerService) ListAccountTransactions(ctx context.Context, userID, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, userID, accountID); err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	lines, nextToken, err := s.lineRepo.ListTransactionsByAccountID(ctx, userID, accountID, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account transactions", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list transactions of account %s: %w", accountID, err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(lines),
		NextToken:    nextToken,
	}, nil
}
