package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/utils/accounting"
)

const defaultExpenseDescription = "Expense Entry"

type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepository
	accounts    chartOfAccounts
	journal     portssvc.JournalPoster
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepository, accountRepo portsrepo.AccountRepositoryFacade, journal portssvc.JournalPoster) portssvc.ExpenseSvcFacade {
	svc := &expenseService{
		expenseRepo: expenseRepo,
		journal:     journal,
	}
	svc.accounts = newChartOfAccounts(accountRepo, svc.now)
	return svc
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// build applies the request to expense. The category account is debited with the
// amount and every payment split credits its account. It writes nothing.
func (s *expenseService) build(ctx context.Context, userID string, expense *domain.Expense, req dto.ExpenseRequest) ([]domain.JournalLine, error) {
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("expense amount must be positive")
	}
	if len(req.Payments) == 0 {
		return nil, apperrors.NewValidationError("at least one payment account is required")
	}

	paid := decimal.Zero
	for _, p := range req.Payments {
		if !p.Amount.IsPositive() {
			return nil, apperrors.NewValidationError("payment amounts must be positive")
		}
		paid = paid.Add(p.Amount)
	}
	if !paid.Equal(req.Amount) {
		return nil, fmt.Errorf("%w: payments total %s but the expense is %s", apperrors.ErrValidation, paid, req.Amount)
	}

	category, err := s.accounts.require(ctx, userID, req.CategoryAccountID, "expense category")
	if err != nil {
		return nil, err
	}

	lines := make([]domain.JournalLine, 0, len(req.Payments)+1)
	lines = append(lines, domain.NewLine(category.AccountID, domain.Debit, req.Amount))
	for _, p := range req.Payments {
		// Every account is resolved here so a bad split fails before the expense is written.
		payment, err := s.accounts.require(ctx, userID, p.AccountID, "payment")
		if err != nil {
			return nil, err
		}
		lines = append(lines, domain.NewLine(payment.AccountID, domain.Credit, p.Amount))
	}
	if err := accounting.ValidateEntryLines(lines); err != nil {
		return nil, err
	}

	expense.Date = date
	expense.Description = req.Description
	expense.CategoryAccountID = category.AccountID
	expense.Amount = req.Amount
	expense.Payments = req.ToDomainPayments()
	return lines, nil
}

func (s *expenseService) post(ctx context.Context, expense domain.Expense, lines []domain.JournalLine) error {
	description := expense.Description
	if description == "" {
		description = defaultExpenseDescription
	}
	entry := domain.JournalEntry{
		Date:        expense.Date,
		Description: description,
		Lines:       lines,
	}
	_, err := s.journal.Repost(ctx, expense.UserID, domain.SourceOf(domain.SourceExpense, expense.ExpenseID), entry)
	return err
}

func (s *expenseService) CreateExpense(ctx context.Context, userID string, req dto.ExpenseRequest) (*domain.Expense, error) {
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		UserID:      userID,
		AuditFields: domain.NewAuditFields(userID, s.now()),
	}
	lines, err := s.build(ctx, userID, &expense, req)
	if err != nil {
		return nil, err
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense")
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}
	if err := s.post(ctx, expense, lines); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Expense created",
		slog.String("expense_id", expense.ExpenseID),
		slog.Int("payment_splits", len(expense.Payments)))
	return &expense, nil
}

func (s *expenseService) GetExpense(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, userID, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find expense", slog.String("expense_id", expenseID))
		}
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, userID string) ([]domain.Expense, error) {
	expenses, err := s.expenseRepo.ListExpenses(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses")
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, userID, expenseID string, req dto.ExpenseRequest) (*domain.Expense, error) {
	expense, err := s.GetExpense(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}
	lines, err := s.build(ctx, userID, expense, req)
	if err != nil {
		return nil, err
	}

	expense.Touch(userID, s.now())
	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "Failed to update expense", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to update expense %s: %w", expenseID, err)
	}
	if err := s.post(ctx, *expense, lines); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Expense updated", slog.String("expense_id", expenseID))
	return expense, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	if _, err := s.GetExpense(ctx, userID, expenseID); err != nil {
		return err
	}
	if err := s.expenseRepo.MarkExpenseDeleted(ctx, userID, expenseID, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to delete expense", slog.String("expense_id", expenseID))
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	if err := s.journal.Retract(ctx, userID, domain.SourceOf(domain.SourceExpense, expenseID)); err != nil {
		return err
	}
	s.LogInfo(ctx, "Expense deleted", slog.String("expense_id", expenseID))
	return nil
}
