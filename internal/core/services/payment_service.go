package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/utils/accounting"
)

const (
	receivePaymentDescription = "Receive Payment"
	payBillDescription        = "Pay Bill"
)

// receivePaymentService records money coming in from customers.
type receivePaymentService struct {
	BaseService
	paymentRepo  portsrepo.ReceivePaymentRepository
	customerRepo portsrepo.CustomerReader
	accounts     chartOfAccounts
	journal      portssvc.JournalPoster
}

// NewReceivePaymentService creates a new receive payment service.
func NewReceivePaymentService(
	paymentRepo portsrepo.ReceivePaymentRepository,
	customerRepo portsrepo.CustomerReader,
	accountRepo portsrepo.AccountRepositoryFacade,
	journal portssvc.JournalPoster,
) portssvc.ReceivePaymentSvcFacade {
	svc := &receivePaymentService{
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		journal:      journal,
	}
	svc.accounts = newChartOfAccounts(accountRepo, svc.now)
	return svc
}

var _ portssvc.ReceivePaymentSvcFacade = (*receivePaymentService)(nil)

// apply copies the request onto payment and returns the customer's receivable account.
func (s *receivePaymentService) apply(ctx context.Context, payment *domain.ReceivePayment, req dto.ReceivePaymentRequest) (string, error) {
	if !req.Amount.IsPositive() {
		return "", apperrors.NewValidationError("payment amount must be positive")
	}
	if err := accounting.ValidatePlaces("payment amount", req.Amount); err != nil {
		return "", err
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return "", err
	}
	customer, err := s.customerRepo.FindCustomerByID(ctx, payment.UserID, req.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.NewNotFoundError("customer")
		}
		return "", fmt.Errorf("failed to find customer %s: %w", req.CustomerID, err)
	}
	account, err := s.accounts.require(ctx, payment.UserID, req.AccountID, "receiving")
	if err != nil {
		return "", err
	}

	payment.CustomerID = customer.CustomerID
	payment.AccountID = account.AccountID
	payment.Amount = req.Amount
	payment.Date = date
	payment.Description = req.Description
	payment.BillNo = domain.ReceiptBillNo(payment.PaymentID)
	return customer.AccountID, nil
}

// post debits the receiving account and credits the customer.
func (s *receivePaymentService) post(ctx context.Context, payment domain.ReceivePayment, customerAccountID string) error {
	description := payment.Description
	if description == "" {
		description = receivePaymentDescription
	}
	customerID := payment.CustomerID
	entry := domain.JournalEntry{
		Date:        payment.Date,
		Description: description,
		BillNo:      payment.BillNo,
		CustomerID:  &customerID,
		Lines: []domain.JournalLine{
			domain.NewLine(payment.AccountID, domain.Debit, payment.Amount),
			domain.NewLine(customerAccountID, domain.Credit, payment.Amount),
		},
	}
	_, err := s.journal.Repost(ctx, payment.UserID, domain.SourceOf(domain.SourceReceivePayment, payment.PaymentID), entry)
	return err
}

func (s *receivePaymentService) CreateReceivePayment(ctx context.Context, userID string, req dto.ReceivePaymentRequest) (*domain.ReceivePayment, error) {
	payment := domain.ReceivePayment{
		PaymentID:   uuid.NewString(),
		UserID:      userID,
		AuditFields: domain.NewAuditFields(userID, s.now()),
	}
	customerAccountID, err := s.apply(ctx, &payment, req)
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.SaveReceivePayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save received payment")
		return nil, fmt.Errorf("failed to save received payment: %w", err)
	}
	if err := s.post(ctx, payment, customerAccountID); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Payment received",
		slog.String("payment_id", payment.PaymentID),
		slog.String("customer_id", payment.CustomerID),
		slog.String("amount", payment.Amount.String()))
	return &payment, nil
}

func (s *receivePaymentService) GetReceivePayment(ctx context.Context, userID, paymentID string) (*domain.ReceivePayment, error) {
	payment, err := s.paymentRepo.FindReceivePaymentByID(ctx, userID, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find received payment", slog.String("payment_id", paymentID))
		}
		return nil, fmt.Errorf("failed to find received payment %s: %w", paymentID, err)
	}
	return payment, nil
}

func (s *receivePaymentService) ListReceivePayments(ctx context.Context, userID string, customerID *string) ([]domain.ReceivePayment, error) {
	payments, err := s.paymentRepo.ListReceivePayments(ctx, userID, customerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list received payments")
		return nil, fmt.Errorf("failed to list received payments: %w", err)
	}
	if payments == nil {
		return []domain.ReceivePayment{}, nil
	}
	return payments, nil
}

func (s *receivePaymentService) UpdateReceivePayment(ctx context.Context, userID, paymentID string, req dto.ReceivePaymentRequest) (*domain.ReceivePayment, error) {
	payment, err := s.GetReceivePayment(ctx, userID, paymentID)
	if err != nil {
		return nil, err
	}
	customerAccountID, err := s.apply(ctx, payment, req)
	if err != nil {
		return nil, err
	}

	payment.Touch(userID, s.now())
	if err := s.paymentRepo.UpdateReceivePayment(ctx, *payment); err != nil {
		s.LogError(ctx, err, "Failed to update received payment", slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to update received payment %s: %w", paymentID, err)
	}
	if err := s.post(ctx, *payment, customerAccountID); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Received payment updated", slog.String("payment_id", paymentID))
	return payment, nil
}

func (s *receivePaymentService) DeleteReceivePayment(ctx context.Context, userID, paymentID string) error {
	if _, err := s.GetReceivePayment(ctx, userID, paymentID); err != nil {
		return err
	}
	if err := s.paymentRepo.MarkReceivePaymentDeleted(ctx, userID, paymentID, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to delete received payment", slog.String("payment_id", paymentID))
		return fmt.Errorf("failed to delete received payment %s: %w", paymentID, err)
	}
	if err := s.journal.Retract(ctx, userID, domain.SourceOf(domain.SourceReceivePayment, paymentID)); err != nil {
		return err
	}
	s.LogInfo(ctx, "Received payment deleted", slog.String("payment_id", paymentID))
	return nil
}

// payBillService records money paid out to suppliers.
type payBillService struct {
	BaseService
	billRepo     portsrepo.PayBillRepository
	supplierRepo portsrepo.SupplierReader
	accounts     chartOfAccounts
	journal      portssvc.JournalPoster
}

// NewPayBillService creates a new pay bill service.
func NewPayBillService(
	billRepo portsrepo.PayBillRepository,
	supplierRepo portsrepo.SupplierReader,
	accountRepo portsrepo.AccountRepositoryFacade,
	journal portssvc.JournalPoster,
) portssvc.PayBillSvcFacade {
	svc := &payBillService{
		billRepo:     billRepo,
		supplierRepo: supplierRepo,
		journal:      journal,
	}
	svc.accounts = newChartOfAccounts(accountRepo, svc.now)
	return svc
}

var _ portssvc.PayBillSvcFacade = (*payBillService)(nil)

// apply copies the request onto bill and returns the supplier's payable account.
func (s *payBillService) apply(ctx context.Context, bill *domain.PayBill, req dto.PayBillRequest) (string, error) {
	if !req.Amount.IsPositive() {
		return "", apperrors.NewValidationError("payment amount must be positive")
	}
	if err := accounting.ValidatePlaces("payment amount", req.Amount); err != nil {
		return "", err
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return "", err
	}
	supplier, err := s.supplierRepo.FindSupplierByID(ctx, bill.UserID, req.SupplierID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.NewNotFoundError("supplier")
		}
		return "", fmt.Errorf("failed to find supplier %s: %w", req.SupplierID, err)
	}
	account, err := s.accounts.require(ctx, bill.UserID, req.AccountID, "paying")
	if err != nil {
		return "", err
	}

	bill.SupplierID = supplier.SupplierID
	bill.AccountID = account.AccountID
	bill.Amount = req.Amount
	bill.Date = date
	bill.Description = req.Description
	return supplier.AccountID, nil
}

// post debits the supplier and credits the paying account.
func (s *payBillService) post(ctx context.Context, bill domain.PayBill, supplierAccountID string) error {
	description := bill.Description
	if description == "" {
		description = payBillDescription
	}
	supplierID := bill.SupplierID
	entry := domain.JournalEntry{
		Date:        bill.Date,
		Description: description,
		SupplierID:  &supplierID,
		Lines: []domain.JournalLine{
			domain.NewLine(supplierAccountID, domain.Debit, bill.Amount),
			domain.NewLine(bill.AccountID, domain.Credit, bill.Amount),
		},
	}
	_, err := s.journal.Repost(ctx, bill.UserID, domain.SourceOf(domain.SourcePayBill, bill.PaymentID), entry)
	return err
}

func (s *payBillService) CreatePayBill(ctx context.Context, userID string, req dto.PayBillRequest) (*domain.PayBill, error) {
	bill := domain.PayBill{
		PaymentID:   uuid.NewString(),
		UserID:      userID,
		AuditFields: domain.NewAuditFields(userID, s.now()),
	}
	supplierAccountID, err := s.apply(ctx, &bill, req)
	if err != nil {
		return nil, err
	}

	if err := s.billRepo.SavePayBill(ctx, bill); err != nil {
		s.LogError(ctx, err, "Failed to save bill payment")
		return nil, fmt.Errorf("failed to save bill payment: %w", err)
	}
	if err := s.post(ctx, bill, supplierAccountID); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Bill paid",
		slog.String("payment_id", bill.PaymentID),
		slog.String("supplier_id", bill.SupplierID),
		slog.String("amount", bill.Amount.String()))
	return &bill, nil
}

func (s *payBillService) GetPayBill(ctx context.Context, userID, paymentID string) (*domain.PayBill, error) {
	bill, err := s.billRepo.FindPayBillByID(ctx, userID, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find bill payment", slog.String("payment_id", paymentID))
		}
		return nil, fmt.Errorf("failed to find bill payment %s: %w", paymentID, err)
	}
	return bill, nil
}

func (s *payBillService) ListPayBills(ctx context.Context, userID string, supplierID *string) ([]domain.PayBill, error) {
	bills, err := s.billRepo.ListPayBills(ctx, userID, supplierID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bill payments")
		return nil, fmt.Errorf("failed to list bill payments: %w", err)
	}
	if bills == nil {
		return []domain.PayBill{}, nil
	}
	return bills, nil
}

func (s *payBillService) UpdatePayBill(ctx context.Context, userID, paymentID string, req dto.PayBillRequest) (*domain.PayBill, error) {
	bill, err := s.GetPayBill(ctx, userID, paymentID)
	if err != nil {
		return nil, err
	}
	supplierAccountID, err := s.apply(ctx, bill, req)
	if err != nil {
		return nil, err
	}

	bill.Touch(userID, s.now())
	if err := s.billRepo.UpdatePayBill(ctx, *bill); err != nil {
		s.LogError(ctx, err, "Failed to update bill payment", slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to update bill payment %s: %w", paymentID, err)
	}
	if err := s.post(ctx, *bill, supplierAccountID); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Bill payment updated", slog.String("payment_id", paymentID))
	return bill, nil
}

func (s *payBillService) DeletePayBill(ctx context.Context, userID, paymentID string) error {
	if _, err := s.GetPayBill(ctx, userID, paymentID); err != nil {
		return err
	}
	if err := s.billRepo.MarkPayBillDeleted(ctx, userID, paymentID, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to delete bill payment", slog.String("payment_id", paymentID))
		return fmt.Errorf("failed to delete bill payment %s: %w", paymentID, err)
	}
	if err := s.journal.Retract(ctx, userID, domain.SourceOf(domain.SourcePayBill, paymentID)); err != nil {
		return err
	}
	s.LogInfo(ctx, "Bill payment deleted", slog.String("payment_id", paymentID))
	return nil
}
