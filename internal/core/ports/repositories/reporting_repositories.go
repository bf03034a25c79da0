package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// GetTrialBalanceData sums debits and credits per account over non-deleted entries.
	// Nil bounds leave that side of the date range open.
	GetTrialBalanceData(ctx context.Context, userID string, from, to *time.Time) ([]domain.TrialBalanceRow, error)

	// GetCashFlowData groups cash and bank movements by month for entries dated in [from, to).
	// Debits to cash or bank are inflows, credits are outflows.
	GetCashFlowData(ctx context.Context, userID string, from, to time.Time) ([]domain.CashFlowMonth, error)
}
