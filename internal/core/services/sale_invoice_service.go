package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/utils/accounting"
)

const (
	firstBillNo        = 1001
	billNoLookback     = 20
	saleDescription    = "Sale Invoice"
	paymentDescription = "Additional Payment"
)

type saleInvoiceService struct {
	BaseService
	invoiceRepo  portsrepo.SaleInvoiceRepository
	customerRepo portsrepo.CustomerReader
	accounts     chartOfAccounts
	journal      portssvc.JournalPoster
}

// NewSaleInvoiceService creates a new sale invoice service.
func NewSaleInvoiceService(
	invoiceRepo portsrepo.SaleInvoiceRepository,
	customerRepo portsrepo.CustomerReader,
	accountRepo portsrepo.AccountRepositoryFacade,
	journal portssvc.JournalPoster,
) portssvc.SaleInvoiceSvcFacade {
	svc := &saleInvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		journal:      journal,
	}
	svc.accounts = newChartOfAccounts(accountRepo, svc.now)
	return svc
}

var _ portssvc.SaleInvoiceSvcFacade = (*saleInvoiceService)(nil)

// applySaleInvoiceRequest copies the request onto invoice and checks the amounts.
func applySaleInvoiceRequest(invoice *domain.SaleInvoice, req dto.SaleInvoiceRequest) error {
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return err
	}
	if !req.TotalAmount.IsPositive() {
		return apperrors.NewValidationError("total amount must be positive")
	}
	if req.PaidAmount.IsNegative() {
		return apperrors.NewValidationError("paid amount cannot be negative")
	}
	if req.PaidAmount.GreaterThan(req.TotalAmount) {
		return apperrors.NewValidationError("paid amount cannot exceed the total amount")
	}
	if req.PaidAmount.IsPositive() && (req.PaymentAccountID == nil || *req.PaymentAccountID == "") {
		return apperrors.NewValidationError("payment account is required for paid invoices")
	}
	if err := accounting.ValidatePlaces("total amount", req.TotalAmount); err != nil {
		return err
	}
	if err := accounting.ValidatePlaces("paid amount", req.PaidAmount); err != nil {
		return err
	}

	invoice.CustomerID = req.CustomerID
	invoice.Date = date
	invoice.Time = req.Time
	invoice.Items = dto.ToDomainItems(req.Items)
	invoice.TotalAmount = req.TotalAmount
	invoice.PaidAmount = req.PaidAmount
	invoice.PaymentAccountID = req.PaymentAccountID
	invoice.PaymentType = req.PaymentType
	invoice.Status = domain.StatusFor(req.PaidAmount, req.TotalAmount)
	if req.BillNo != "" {
		invoice.BillNo = strings.TrimSpace(req.BillNo)
	}
	return nil
}

func (s *saleInvoiceService) CreateSaleInvoice(ctx context.Context, userID string, req dto.SaleInvoiceRequest) (*domain.SaleInvoice, error) {
	invoice := domain.SaleInvoice{
		InvoiceID:   uuid.NewString(),
		UserID:      userID,
		AuditFields: domain.NewAuditFields(userID, s.now()),
	}
	if err := applySaleInvoiceRequest(&invoice, req); err != nil {
		return nil, err
	}
	if invoice.BillNo == "" {
		next, err := s.GetNextBillNo(ctx, userID)
		if err != nil {
			return nil, err
		}
		invoice.BillNo = next
	}

	lines, customer, err := s.postingLines(ctx, invoice)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveSaleInvoice(ctx, invoice); err != nil {
		s.LogError(ctx, err, "Failed to save sale invoice", slog.String("bill_no", invoice.BillNo))
		return nil, fmt.Errorf("failed to save sale invoice: %w", err)
	}
	if err := s.post(ctx, invoice, customer, lines); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Sale invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("bill_no", invoice.BillNo),
		slog.String("total", invoice.TotalAmount.String()))
	return &invoice, nil
}

// postingLines resolves the accounts of an invoice before anything is written.
// The customer is debited with the total; a paid amount moves from the customer
// to the payment account in the same entry.
func (s *saleInvoiceService) postingLines(ctx context.Context, invoice domain.SaleInvoice) ([]domain.JournalLine, *domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, invoice.UserID, invoice.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.NewNotFoundError("customer")
		}
		return nil, nil, fmt.Errorf("failed to find customer %s: %w", invoice.CustomerID, err)
	}
	sales, err := s.accounts.sales(ctx, invoice.UserID)
	if err != nil {
		return nil, nil, err
	}

	lines := []domain.JournalLine{
		domain.NewLine(customer.AccountID, domain.Debit, invoice.TotalAmount),
		domain.NewLine(sales.AccountID, domain.Credit, invoice.TotalAmount),
	}
	if invoice.PaidAmount.IsPositive() {
		payment, err := s.accounts.require(ctx, invoice.UserID, *invoice.PaymentAccountID, "payment")
		if err != nil {
			return nil, nil, err
		}
		lines = append(lines,
			domain.NewLine(payment.AccountID, domain.Debit, invoice.PaidAmount),
			domain.NewLine(customer.AccountID, domain.Credit, invoice.PaidAmount),
		)
	}
	return lines, customer, nil
}

// post replaces every entry of the invoice, including recorded payments, with one
// entry reflecting its current state.
func (s *saleInvoiceService) post(ctx context.Context, invoice domain.SaleInvoice, customer *domain.Customer, lines []domain.JournalLine) error {
	customerID := customer.CustomerID
	paymentType := invoice.PaymentType
	if paymentType == "" {
		paymentType = "cash"
	}
	entry := domain.JournalEntry{
		Date:        invoice.Date,
		Time:        invoice.Time,
		Description: saleDescription,
		BillNo:      invoice.BillNo,
		PaymentType: paymentType,
		CustomerID:  &customerID,
		Lines:       lines,
	}
	_, err := s.journal.Repost(ctx, invoice.UserID, domain.SourceOf(domain.SourceSaleInvoice, invoice.InvoiceID), entry)
	return err
}

func (s *saleInvoiceService) GetSaleInvoice(ctx context.Context, userID, invoiceID string) (*domain.SaleInvoice, error) {
	invoice, err := s.invoiceRepo.FindSaleInvoiceByID(ctx, userID, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find sale invoice", slog.String("invoice_id", invoiceID))
		}
		return nil, fmt.Errorf("failed to find sale invoice %s: %w", invoiceID, err)
	}
	return invoice, nil
}

func (s *saleInvoiceService) ListSaleInvoices(ctx context.Context, userID string, customerID *string) ([]domain.SaleInvoice, error) {
	invoices, err := s.invoiceRepo.ListSaleInvoices(ctx, userID, customerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sale invoices")
		return nil, fmt.Errorf("failed to list sale invoices: %w", err)
	}
	if invoices == nil {
		return []domain.SaleInvoice{}, nil
	}
	return invoices, nil
}

func (s *saleInvoiceService) UpdateSaleInvoice(ctx context.Context, userID, invoiceID string, req dto.SaleInvoiceRequest) (*domain.SaleInvoice, error) {
	invoice, err := s.GetSaleInvoice(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := applySaleInvoiceRequest(invoice, req); err != nil {
		return nil, err
	}

	lines, customer, err := s.postingLines(ctx, *invoice)
	if err != nil {
		return nil, err
	}

	invoice.Touch(userID, s.now())
	if err := s.invoiceRepo.UpdateSaleInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, err, "Failed to update sale invoice", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to update sale invoice %s: %w", invoiceID, err)
	}
	if err := s.post(ctx, *invoice, customer, lines); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Sale invoice updated", slog.String("invoice_id", invoiceID))
	return invoice, nil
}

// DeleteSaleInvoice removes the invoice for good and soft-deletes its journal entries.
func (s *saleInvoiceService) DeleteSaleInvoice(ctx context.Context, userID, invoiceID string) error {
	if _, err := s.GetSaleInvoice(ctx, userID, invoiceID); err != nil {
		return err
	}
	if err := s.invoiceRepo.DeleteSaleInvoice(ctx, userID, invoiceID); err != nil {
		s.LogError(ctx, err, "Failed to delete sale invoice", slog.String("invoice_id", invoiceID))
		return fmt.Errorf("failed to delete sale invoice %s: %w", invoiceID, err)
	}
	if err := s.journal.Retract(ctx, userID, domain.SourceOf(domain.SourceSaleInvoice, invoiceID)); err != nil {
		return err
	}
	s.LogInfo(ctx, "Sale invoice deleted", slog.String("invoice_id", invoiceID))
	return nil
}

func (s *saleInvoiceService) RecordPayment(ctx context.Context, userID, invoiceID string, req dto.RecordPaymentRequest) (*domain.SaleInvoice, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("payment amount must be positive")
	}
	if err := accounting.ValidatePlaces("payment amount", req.Amount); err != nil {
		return nil, err
	}
	date := s.now()
	if req.Date != "" {
		parsed, err := dto.ParseDate(req.Date)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	invoice, err := s.GetSaleInvoice(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	outstanding := invoice.TotalAmount.Sub(invoice.PaidAmount)
	if req.Amount.GreaterThan(outstanding) {
		return nil, fmt.Errorf("%w: payment of %s exceeds the outstanding %s", apperrors.ErrValidation, req.Amount, outstanding)
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, userID, invoice.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer %s: %w", invoice.CustomerID, err)
	}
	account, err := s.accounts.require(ctx, userID, req.AccountID, "payment")
	if err != nil {
		return nil, err
	}

	customerID := customer.CustomerID
	entry := domain.JournalEntry{
		UserID:      userID,
		Date:        date,
		Time:        req.Time,
		Description: paymentDescription,
		BillNo:      invoice.BillNo,
		PaymentType: req.PaymentType,
		CustomerID:  &customerID,
		Source:      domain.SourceOf(domain.SourceSaleInvoice, invoiceID),
		Lines: []domain.JournalLine{
			domain.NewLine(account.AccountID, domain.Debit, req.Amount),
			domain.NewLine(customer.AccountID, domain.Credit, req.Amount),
		},
	}

	invoice.PaidAmount = invoice.PaidAmount.Add(req.Amount)
	invoice.Status = domain.StatusFor(invoice.PaidAmount, invoice.TotalAmount)
	if invoice.PaymentAccountID == nil {
		invoice.PaymentAccountID = &account.AccountID
	}
	invoice.Touch(userID, s.now())
	if err := s.invoiceRepo.UpdateSaleInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, err, "Failed to record invoice payment", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to update sale invoice %s: %w", invoiceID, err)
	}
	if _, err := s.journal.Post(ctx, entry); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Payment recorded against sale invoice",
		slog.String("invoice_id", invoiceID),
		slog.String("amount", req.Amount.String()),
		slog.String("status", string(invoice.Status)))
	return invoice, nil
}

// GetNextBillNo returns one more than the most recent numeric bill number.
func (s *saleInvoiceService) GetNextBillNo(ctx context.Context, userID string) (string, error) {
	billNos, err := s.invoiceRepo.ListBillNumbers(ctx, userID, billNoLookback)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bill numbers")
		return "", fmt.Errorf("failed to list bill numbers: %w", err)
	}
	for _, b := range billNos {
		n, err := strconv.Atoi(strings.TrimSpace(b))
		if err == nil && n > 0 {
			return strconv.Itoa(n + 1), nil
		}
	}
	return strconv.Itoa(firstBillNo), nil
}
