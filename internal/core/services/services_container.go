package services

import (
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/platform/config"
)

// ContainerOption supplies optional infrastructure to the service container.
type ContainerOption func(*containerDeps)

type containerDeps struct {
	reportCache portssvc.ReportCache
	scheduler   portssvc.RecalculationScheduler
	userOptions []UserServiceOption
}

// WithReportCacheBackend caches reports and invalidates them on journal writes.
func WithReportCacheBackend(cache portssvc.ReportCache) ContainerOption {
	return func(d *containerDeps) {
		d.reportCache = cache
	}
}

// WithScheduler exposes background recalculation through the container.
func WithScheduler(scheduler portssvc.RecalculationScheduler) ContainerOption {
	return func(d *containerDeps) {
		d.scheduler = scheduler
	}
}

// WithUserServiceOptions passes options through to the user service.
func WithUserServiceOptions(options ...UserServiceOption) ContainerOption {
	return func(d *containerDeps) {
		d.userOptions = append(d.userOptions, options...)
	}
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...ContainerOption) *portssvc.ServiceContainer {
	deps := &containerDeps{}
	for _, option := range options {
		option(deps)
	}

	container := &portssvc.ServiceContainer{Scheduler: deps.scheduler}

	// The balance service is the only writer of cached balances; everything that
	// posts goes through the journal service, which calls it after each write.
	container.Balance = NewBalanceService(repos.AccountRepo, repos.JournalRepo, WithRecalcConcurrency(cfg.RecalcConcurrency))

	journalOptions := []JournalOption{WithSaleInvoiceRepository(repos.SaleInvoiceRepo)}
	reportingOptions := []ReportingServiceOption{}
	if deps.reportCache != nil {
		journalOptions = append(journalOptions, WithReportCache(deps.reportCache))
		reportingOptions = append(reportingOptions, WithReportingCache(deps.reportCache))
	}
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, container.Balance, journalOptions...)

	container.Account = NewAccountService(repos.AccountRepo, repos.JournalRepo)
	container.Ledger = NewLedgerService(repos.AccountRepo, repos.JournalRepo, repos.CustomerRepo, repos.SupplierRepo)
	container.Customer = NewCustomerService(repos.CustomerRepo, repos.AccountRepo, repos.JournalRepo, container.Journal, container.Balance)
	container.Supplier = NewSupplierService(repos.SupplierRepo, repos.AccountRepo, repos.JournalRepo, container.Journal, container.Balance)

	container.SaleInvoice = NewSaleInvoiceService(repos.SaleInvoiceRepo, repos.CustomerRepo, repos.AccountRepo, container.Journal)
	container.PurchaseInvoice = NewPurchaseInvoiceService(repos.PurchaseInvoiceRepo, container.Supplier, repos.AccountRepo, container.Journal)
	container.Expense = NewExpenseService(repos.ExpenseRepo, repos.AccountRepo, container.Journal)
	container.ReceivePayment = NewReceivePaymentService(repos.ReceivePaymentRepo, repos.CustomerRepo, repos.AccountRepo, container.Journal)
	container.PayBill = NewPayBillService(repos.PayBillRepo, repos.SupplierRepo, repos.AccountRepo, container.Journal)

	container.Reporting = NewReportingService(repos.ReportingRepo, repos.AccountRepo, reportingOptions...)
	container.User = NewUserService(repos.UserRepo, deps.userOptions...)

	return container
}
