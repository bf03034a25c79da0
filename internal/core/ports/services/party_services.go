package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/shopspring/decimal"
)

// CustomerSvcFacade manages customers and their linked receivable accounts.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, userID string, req dto.CreateCustomerRequest) (*domain.Customer, error)
	GetCustomer(ctx context.Context, userID, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, userID, search string) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, userID, customerID string, req dto.UpdateCustomerRequest) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, userID, customerID string) error
	// GetCustomerBalance recalculates and returns the balance of the linked account.
	GetCustomerBalance(ctx context.Context, userID, customerID string) (decimal.Decimal, error)
}

// SupplierSvcFacade manages suppliers and their linked payable accounts.
type SupplierSvcFacade interface {
	CreateSupplier(ctx context.Context, userID string, req dto.CreateSupplierRequest) (*domain.Supplier, error)
	GetSupplier(ctx context.Context, userID, supplierID string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, userID, search string) ([]domain.Supplier, error)
	UpdateSupplier(ctx context.Context, userID, supplierID string, req dto.UpdateSupplierRequest) (*domain.Supplier, error)
	DeleteSupplier(ctx context.Context, userID, supplierID string) error
	GetSupplierBalance(ctx context.Context, userID, supplierID string) (decimal.Decimal, error)
	// ResolveSupplier returns the supplier with supplierID, or when it is empty the one named
	// name, creating it if none exists.
	ResolveSupplier(ctx context.Context, userID, supplierID, name string) (*domain.Supplier, error)
}
