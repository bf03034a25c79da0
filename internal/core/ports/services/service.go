package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Account         AccountSvcFacade
	Balance         BalanceSvcFacade
	Journal         JournalSvcFacade
	Ledger          LedgerSvc
	Customer        CustomerSvcFacade
	Supplier        SupplierSvcFacade
	SaleInvoice     SaleInvoiceSvcFacade
	PurchaseInvoice PurchaseInvoiceSvcFacade
	Expense         ExpenseSvcFacade
	ReceivePayment  ReceivePaymentSvcFacade
	PayBill         PayBillSvcFacade
	Reporting       ReportingService
	User            UserSvcFacade

	// Scheduler is nil when no task queue is configured.
	Scheduler RecalculationScheduler
}
