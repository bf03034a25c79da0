package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
)

// LedgerSvc builds chronological running-balance views.
type LedgerSvc interface {
	// GetAccountLedger returns the ledger of one account.
	GetAccountLedger(ctx context.Context, userID, accountID string, query domain.LedgerQuery) (*domain.Ledger, error)

	// GetCustomerLedger returns the ledger of the customer's linked account.
	GetCustomerLedger(ctx context.Context, userID, customerID string, query domain.LedgerQuery) (*domain.Ledger, error)

	// GetSupplierLedger returns the ledger of the supplier's linked account.
	GetSupplierLedger(ctx context.Context, userID, supplierID string, query domain.LedgerQuery) (*domain.Ledger, error)

	// ListAccountTransactions pages through an account's lines, newest first.
	ListAccountTransactions(ctx context.Context, userID, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}
