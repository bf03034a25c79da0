package pgsql

import (
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every Postgres-backed repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	partyRepo := newPgxPartyRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:         newPgxAccountRepository(dbPool),
		JournalRepo:         newPgxJournalRepository(dbPool),
		CustomerRepo:        partyRepo,
		SupplierRepo:        partyRepo,
		SaleInvoiceRepo:     invoiceRepo,
		PurchaseInvoiceRepo: invoiceRepo,
		ExpenseRepo:         newPgxExpenseRepository(dbPool),
		ReceivePaymentRepo:  paymentRepo,
		PayBillRepo:         paymentRepo,
		ReportingRepo:       newReportingRepository(dbPool),
		UserRepo:            newPgxUserRepository(dbPool),
	}
}
