package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/utils/accounting"
)

const customerOpeningDescription = "Opening Balance - Customer"

// customerService manages customers. Each customer owns a receivable account; its
// opening balance is posted as an entry against Opening Balance Equity.
type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
	lineRepo     portsrepo.AccountLineReader
	accounts     chartOfAccounts
	journal      portssvc.JournalPoster
	balances     portssvc.BalanceRecalculatorSvc
}

// NewCustomerService creates a new customer service.
func NewCustomerService(
	customerRepo portsrepo.CustomerRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	lineRepo portsrepo.AccountLineReader,
	journal portssvc.JournalPoster,
	balances portssvc.BalanceRecalculatorSvc,
) portssvc.CustomerSvcFacade {
	svc := &customerService{
		customerRepo: customerRepo,
		lineRepo:     lineRepo,
		journal:      journal,
		balances:     balances,
	}
	svc.accounts = newChartOfAccounts(accountRepo, svc.now)
	return svc
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, userID string, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("customer name is required")
	}
	if req.OpeningBalance.IsNegative() {
		return nil, apperrors.NewValidationError("opening balance cannot be negative")
	}
	if err := accounting.ValidatePlaces("opening balance", req.OpeningBalance); err != nil {
		return nil, err
	}

	account, err := s.accounts.partyAccount(ctx, userID, name, domain.CategoryCustomer)
	if err != nil {
		return nil, err
	}

	customer := domain.Customer{
		CustomerID:     uuid.NewString(),
		UserID:         userID,
		Name:           name,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		Type:           req.Type,
		OpeningBalance: req.OpeningBalance,
		AccountID:      account.AccountID,
		AuditFields:    domain.NewAuditFields(userID, s.now()),
	}
	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		s.LogError(ctx, err, "Failed to save customer", slog.String("name", name))
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	if err := s.postOpeningBalance(ctx, &customer); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Customer created",
		slog.String("customer_id", customer.CustomerID),
		slog.String("account_id", customer.AccountID))
	return &customer, nil
}

// postOpeningBalance makes the journal hold exactly one opening entry for the customer,
// or none when the opening balance is zero.
func (s *customerService) postOpeningBalance(ctx context.Context, customer *domain.Customer) error {
	source := domain.SourceOf(domain.SourceOpeningBalance, customer.CustomerID)
	if !customer.OpeningBalance.IsPositive() {
		return s.journal.Retract(ctx, customer.UserID, source)
	}

	equity, err := s.accounts.openingBalanceEquity(ctx, customer.UserID)
	if err != nil {
		return err
	}
	customerID := customer.CustomerID
	entry := domain.JournalEntry{
		Date:        customer.CreatedAt.Truncate(24 * time.Hour),
		Description: customerOpeningDescription,
		CustomerID:  &customerID,
		Lines: []domain.JournalLine{
			domain.NewLine(customer.AccountID, domain.Debit, customer.OpeningBalance),
			domain.NewLine(equity.AccountID, domain.Credit, customer.OpeningBalance),
		},
	}
	_, err = s.journal.Repost(ctx, customer.UserID, source, entry)
	return err
}

func (s *customerService) GetCustomer(ctx context.Context, userID, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, userID, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find customer", slog.String("customer_id", customerID))
		}
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context, userID, search string) ([]domain.Customer, error) {
	customers, err := s.customerRepo.ListCustomers(ctx, userID, strings.TrimSpace(search))
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers")
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if customers == nil {
		return []domain.Customer{}, nil
	}
	return customers, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, userID, customerID string, req dto.UpdateCustomerRequest) (*domain.Customer, error) {
	customer, err := s.GetCustomer(ctx, userID, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("customer name is required")
		}
		customer.Name = name
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.Type != nil {
		customer.Type = *req.Type
	}
	openingChanged := false
	if req.OpeningBalance != nil {
		if req.OpeningBalance.IsNegative() {
			return nil, apperrors.NewValidationError("opening balance cannot be negative")
		}
		if err := accounting.ValidatePlaces("opening balance", *req.OpeningBalance); err != nil {
			return nil, err
		}
		openingChanged = !req.OpeningBalance.Equal(customer.OpeningBalance)
		customer.OpeningBalance = *req.OpeningBalance
	}

	customer.Touch(userID, s.now())
	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		s.LogError(ctx, err, "Failed to update customer", slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to update customer %s: %w", customerID, err)
	}

	if openingChanged {
		if err := s.postOpeningBalance(ctx, customer); err != nil {
			return nil, err
		}
	}

	s.LogInfo(ctx, "Customer updated", slog.String("customer_id", customerID))
	return customer, nil
}

// DeleteCustomer soft-deletes a customer and retracts its opening balance. A customer
// whose account carries other postings cannot be deleted.
func (s *customerService) DeleteCustomer(ctx context.Context, userID, customerID string) error {
	customer, err := s.GetCustomer(ctx, userID, customerID)
	if err != nil {
		return err
	}

	inUse, err := s.lineRepo.CountLinesForAccount(ctx, userID, customer.AccountID)
	if err != nil {
		return fmt.Errorf("failed to check customer postings: %w", err)
	}
	if customer.OpeningBalance.IsPositive() {
		inUse--
	}
	if inUse > 0 {
		return fmt.Errorf("%w: customer has %d journal postings", apperrors.ErrConflict, inUse)
	}

	if err := s.customerRepo.MarkCustomerDeleted(ctx, userID, customerID, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to delete customer", slog.String("customer_id", customerID))
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}
	if err := s.journal.Retract(ctx, userID, domain.SourceOf(domain.SourceOpeningBalance, customerID)); err != nil {
		return err
	}

	s.LogInfo(ctx, "Customer deleted", slog.String("customer_id", customerID))
	return nil
}

func (s *customerService) GetCustomerBalance(ctx context.Context, userID, customerID string) (decimal.Decimal, error) {
	customer, err := s.GetCustomer(ctx, userID, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.balances.RecalculateAccountBalance(ctx, userID, customer.AccountID)
}
