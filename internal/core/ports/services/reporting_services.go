package services

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance totals debits and credits per account; nil bounds are open.
	TrialBalance(ctx context.Context, userID string, from, to *time.Time) (*domain.TrialBalance, error)

	// MonthlyCashFlow reports money into and out of cash and bank accounts per month of year.
	MonthlyCashFlow(ctx context.Context, userID string, year int) (*domain.CashFlow, error)

	// CashBankSummary lists the recalculated balances of cash and bank accounts.
	CashBankSummary(ctx context.Context, userID string) (*domain.CashBankSummary, error)
}

// ReportCache stores computed reports per user. Invalidate makes every cached report
// of the user stale at once.
type ReportCache interface {
	ReportCacheInvalidator
	// Get decodes the cached report into dest; false means a miss.
	Get(ctx context.Context, userID, name, params string, dest any) (bool, error)
	Set(ctx context.Context, userID, name, params string, value any) error
}
