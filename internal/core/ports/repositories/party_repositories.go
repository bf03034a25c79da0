package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// CustomerReader defines read operations for customers.
type CustomerReader interface {
	FindCustomerByID(ctx context.Context, userID, customerID string) (*domain.Customer, error)
	// ListCustomers lists non-deleted customers; search matches name, email or phone.
	ListCustomers(ctx context.Context, userID, search string) ([]domain.Customer, error)
}

// CustomerWriter defines write operations for customers.
type CustomerWriter interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
	MarkCustomerDeleted(ctx context.Context, userID, customerID, deletedBy string, deletedAt time.Time) error
}

// CustomerRepositoryFacade combines customer reads and writes.
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}

// SupplierReader defines read operations for suppliers.
type SupplierReader interface {
	FindSupplierByID(ctx context.Context, userID, supplierID string) (*domain.Supplier, error)
	// FindSupplierByName matches a non-deleted supplier by exact, case-insensitive name.
	FindSupplierByName(ctx context.Context, userID, name string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, userID, search string) ([]domain.Supplier, error)
}

// SupplierWriter defines write operations for suppliers.
type SupplierWriter interface {
	SaveSupplier(ctx context.Context, supplier domain.Supplier) error
	UpdateSupplier(ctx context.Context, supplier domain.Supplier) error
	MarkSupplierDeleted(ctx context.Context, userID, supplierID, deletedBy string, deletedAt time.Time) error
}

// SupplierRepositoryFacade combines supplier reads and writes.
type SupplierRepositoryFacade interface {
	SupplierReader
	SupplierWriter
}
