package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo         AccountRepositoryFacade
	JournalRepo         JournalRepositoryFacade
	CustomerRepo        CustomerRepositoryFacade
	SupplierRepo        SupplierRepositoryFacade
	SaleInvoiceRepo     SaleInvoiceRepository
	PurchaseInvoiceRepo PurchaseInvoiceRepository
	ExpenseRepo         ExpenseRepository
	ReceivePaymentRepo  ReceivePaymentRepository
	PayBillRepo         PayBillRepository
	ReportingRepo       ReportingRepository
	UserRepo            UserRepositoryFacade
}
