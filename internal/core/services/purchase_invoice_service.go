package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/utils/accounting"
)

type purchaseInvoiceService struct {
	BaseService
	invoiceRepo portsrepo.PurchaseInvoiceRepository
	suppliers   portssvc.SupplierSvcFacade
	accounts    chartOfAccounts
	journal     portssvc.JournalPoster
}

// NewPurchaseInvoiceService creates a new purchase invoice service.
func NewPurchaseInvoiceService(
	invoiceRepo portsrepo.PurchaseInvoiceRepository,
	suppliers portssvc.SupplierSvcFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	journal portssvc.JournalPoster,
) portssvc.PurchaseInvoiceSvcFacade {
	svc := &purchaseInvoiceService{
		invoiceRepo: invoiceRepo,
		suppliers:   suppliers,
		journal:     journal,
	}
	svc.accounts = newChartOfAccounts(accountRepo, svc.now)
	return svc
}

var _ portssvc.PurchaseInvoiceSvcFacade = (*purchaseInvoiceService)(nil)

func validatePurchaseAmounts(req dto.PurchaseInvoiceRequest) error {
	if !req.GrandTotal.IsPositive() {
		return apperrors.NewValidationError("grand total must be positive")
	}
	if req.PaidAmount.IsNegative() {
		return apperrors.NewValidationError("paid amount cannot be negative")
	}
	if req.PaidAmount.GreaterThan(req.GrandTotal) {
		return apperrors.NewValidationError("paid amount cannot exceed the grand total")
	}
	if req.PaidAmount.IsPositive() && (req.PaymentAccountID == nil || *req.PaymentAccountID == "") {
		return apperrors.NewValidationError("payment account is required for paid invoices")
	}
	if err := accounting.ValidatePlaces("grand total", req.GrandTotal); err != nil {
		return err
	}
	return accounting.ValidatePlaces("paid amount", req.PaidAmount)
}

// build applies the request to invoice and resolves the lines it posts: the purchases
// account is debited and the supplier credited with the grand total, then any paid
// amount settles the supplier from the payment account.
func (s *purchaseInvoiceService) build(ctx context.Context, userID string, invoice *domain.PurchaseInvoice, req dto.PurchaseInvoiceRequest) ([]domain.JournalLine, error) {
	if err := validatePurchaseAmounts(req); err != nil {
		return nil, err
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	purchases, err := s.accounts.purchases(ctx, userID)
	if err != nil {
		return nil, err
	}
	var payment *domain.Account
	if req.PaidAmount.IsPositive() {
		if payment, err = s.accounts.require(ctx, userID, *req.PaymentAccountID, "payment"); err != nil {
			return nil, err
		}
	}
	// Resolving by name may create the supplier, so it runs after every other check.
	supplier, err := s.suppliers.ResolveSupplier(ctx, userID, req.SupplierID, req.SupplierName)
	if err != nil {
		return nil, err
	}

	lines := []domain.JournalLine{
		domain.NewLine(purchases.AccountID, domain.Debit, req.GrandTotal),
		domain.NewLine(supplier.AccountID, domain.Credit, req.GrandTotal),
	}
	if payment != nil {
		lines = append(lines,
			domain.NewLine(supplier.AccountID, domain.Debit, req.PaidAmount),
			domain.NewLine(payment.AccountID, domain.Credit, req.PaidAmount),
		)
	}

	invoice.SupplierID = supplier.SupplierID
	invoice.BillNo = strings.TrimSpace(req.BillNo)
	invoice.Date = date
	invoice.Items = dto.ToDomainItems(req.Items)
	invoice.GrandTotal = req.GrandTotal
	invoice.PaidAmount = req.PaidAmount
	invoice.PaymentAccountID = req.PaymentAccountID
	invoice.Status = domain.StatusFor(req.PaidAmount, req.GrandTotal)
	return lines, nil
}

func (s *purchaseInvoiceService) post(ctx context.Context, invoice domain.PurchaseInvoice, lines []domain.JournalLine) error {
	supplierID := invoice.SupplierID
	entry := domain.JournalEntry{
		Date:        invoice.Date,
		Description: fmt.Sprintf("Purchase Invoice #%s", invoice.BillNo),
		BillNo:      invoice.BillNo,
		SupplierID:  &supplierID,
		Lines:       lines,
	}
	_, err := s.journal.Repost(ctx, invoice.UserID, domain.SourceOf(domain.SourcePurchaseInvoice, invoice.InvoiceID), entry)
	return err
}

func (s *purchaseInvoiceService) CreatePurchaseInvoice(ctx context.Context, userID string, req dto.PurchaseInvoiceRequest) (*domain.PurchaseInvoice, error) {
	invoice := domain.PurchaseInvoice{
		InvoiceID:   uuid.NewString(),
		UserID:      userID,
		AuditFields: domain.NewAuditFields(userID, s.now()),
	}
	lines, err := s.build(ctx, userID, &invoice, req)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SavePurchaseInvoice(ctx, invoice); err != nil {
		s.LogError(ctx, err, "Failed to save purchase invoice", slog.String("bill_no", invoice.BillNo))
		return nil, fmt.Errorf("failed to save purchase invoice: %w", err)
	}
	if err := s.post(ctx, invoice, lines); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Purchase invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("supplier_id", invoice.SupplierID))
	return &invoice, nil
}

func (s *purchaseInvoiceService) GetPurchaseInvoice(ctx context.Context, userID, invoiceID string) (*domain.PurchaseInvoice, error) {
	invoice, err := s.invoiceRepo.FindPurchaseInvoiceByID(ctx, userID, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find purchase invoice", slog.String("invoice_id", invoiceID))
		}
		return nil, fmt.Errorf("failed to find purchase invoice %s: %w", invoiceID, err)
	}
	return invoice, nil
}

func (s *purchaseInvoiceService) ListPurchaseInvoices(ctx context.Context, userID string, supplierID *string) ([]domain.PurchaseInvoice, error) {
	invoices, err := s.invoiceRepo.ListPurchaseInvoices(ctx, userID, supplierID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list purchase invoices")
		return nil, fmt.Errorf("failed to list purchase invoices: %w", err)
	}
	if invoices == nil {
		return []domain.PurchaseInvoice{}, nil
	}
	return invoices, nil
}

func (s *purchaseInvoiceService) UpdatePurchaseInvoice(ctx context.Context, userID, invoiceID string, req dto.PurchaseInvoiceRequest) (*domain.PurchaseInvoice, error) {
	invoice, err := s.GetPurchaseInvoice(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	lines, err := s.build(ctx, userID, invoice, req)
	if err != nil {
		return nil, err
	}

	invoice.Touch(userID, s.now())
	if err := s.invoiceRepo.UpdatePurchaseInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, err, "Failed to update purchase invoice", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to update purchase invoice %s: %w", invoiceID, err)
	}
	if err := s.post(ctx, *invoice, lines); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Purchase invoice updated", slog.String("invoice_id", invoiceID))
	return invoice, nil
}

func (s *purchaseInvoiceService) DeletePurchaseInvoice(ctx context.Context, userID, invoiceID string) error {
	if _, err := s.GetPurchaseInvoice(ctx, userID, invoiceID); err != nil {
		return err
	}
	if err := s.invoiceRepo.MarkPurchaseInvoiceDeleted(ctx, userID, invoiceID, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to delete purchase invoice", slog.String("invoice_id", invoiceID))
		return fmt.Errorf("failed to delete purchase invoice %s: %w", invoiceID, err)
	}
	if err := s.journal.Retract(ctx, userID, domain.SourceOf(domain.SourcePurchaseInvoice, invoiceID)); err != nil {
		return err
	}
	s.LogInfo(ctx, "Purchase invoice deleted", slog.String("invoice_id", invoiceID))
	return nil
}
