package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
)

const (
	reportTrialBalance = "trial_balance"
	reportCashFlow     = "cash_flow"
	reportCashBank     = "cash_bank"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountReader
	cache         portssvc.ReportCache
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingCache serves reports from cache until the next journal write.
func WithReportingCache(cache portssvc.ReportCache) ReportingServiceOption {
	return func(s *reportingService) {
		s.cache = cache
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, accountRepo portsrepo.AccountReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
		accountRepo:   accountRepo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// fetchReport returns the cached report or computes and caches it. Cache failures
// are logged and the report is computed directly.
func fetchReport[T any](ctx context.Context, s *reportingService, userID, name, params string, compute func(context.Context) (*T, error)) (*T, error) {
	if s.cache == nil {
		return compute(ctx)
	}

	var cached T
	hit, err := s.cache.Get(ctx, userID, name, params, &cached)
	if err != nil {
		s.LogWarn(ctx, "Report cache read failed", slog.String("report", name), slog.String("error", err.Error()))
	} else if hit {
		s.LogDebug(ctx, "Report served from cache", slog.String("report", name))
		return &cached, nil
	}

	report, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, userID, name, params, report); err != nil {
		s.LogWarn(ctx, "Report cache write failed", slog.String("report", name), slog.String("error", err.Error()))
	}
	return report, nil
}

func formatBound(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.DateOnly)
}

// TrialBalance totals debits and credits per account over the date range.
func (s *reportingService) TrialBalance(ctx context.Context, userID string, from, to *time.Time) (*domain.TrialBalance, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, apperrors.NewValidationError("end date must not be before start date")
	}
	params := formatBound(from) + ":" + formatBound(to)

	return fetchReport(ctx, s, userID, reportTrialBalance, params, func(ctx context.Context) (*domain.TrialBalance, error) {
		rows, err := s.reportingRepo.GetTrialBalanceData(ctx, userID, from, to)
		if err != nil {
			s.LogError(ctx, err, "Failed to retrieve trial balance data", slog.String("range", params))
			return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
		}

		report := &domain.TrialBalance{
			Rows:        rows,
			TotalDebit:  decimal.Zero,
			TotalCredit: decimal.Zero,
		}
		if report.Rows == nil {
			report.Rows = []domain.TrialBalanceRow{}
		}
		for _, r := range rows {
			report.TotalDebit = report.TotalDebit.Add(r.Debit)
			report.TotalCredit = report.TotalCredit.Add(r.Credit)
		}
		report.IsBalanced = report.TotalDebit.Equal(report.TotalCredit)
		if !report.IsBalanced {
			s.LogWarn(ctx, "Trial balance does not balance",
				slog.String("debit", report.TotalDebit.String()),
				slog.String("credit", report.TotalCredit.String()))
		}

		s.LogInfo(ctx, "Trial balance report generated", slog.Int("row_count", len(rows)))
		return report, nil
	})
}

// MonthlyCashFlow reports twelve months of cash and bank movement. Months without
// movement are reported as zero.
func (s *reportingService) MonthlyCashFlow(ctx context.Context, userID string, year int) (*domain.CashFlow, error) {
	if year < 1900 || year > 9999 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid year %d", year))
	}

	return fetchReport(ctx, s, userID, reportCashFlow, fmt.Sprint(year), func(ctx context.Context) (*domain.CashFlow, error) {
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(1, 0, 0)
		data, err := s.reportingRepo.GetCashFlowData(ctx, userID, from, to)
		if err != nil {
			s.LogError(ctx, err, "Failed to retrieve cash flow data", slog.Int("year", year))
			return nil, fmt.Errorf("failed to retrieve cash flow data: %w", err)
		}

		report := &domain.CashFlow{Year: year, Months: make([]domain.CashFlowMonth, 12)}
		for i := range report.Months {
			report.Months[i] = domain.CashFlowMonth{Month: i + 1, Inflow: decimal.Zero, Outflow: decimal.Zero}
		}
		for _, m := range data {
			if m.Month < 1 || m.Month > 12 {
				continue
			}
			report.Months[m.Month-1].Inflow = report.Months[m.Month-1].Inflow.Add(m.Inflow)
			report.Months[m.Month-1].Outflow = report.Months[m.Month-1].Outflow.Add(m.Outflow)
		}
		return report, nil
	})
}

// CashBankSummary lists cash and bank accounts with their cached balances.
func (s *reportingService) CashBankSummary(ctx context.Context, userID string) (*domain.CashBankSummary, error) {
	return fetchReport(ctx, s, userID, reportCashBank, "", func(ctx context.Context) (*domain.CashBankSummary, error) {
		accounts, err := s.accountRepo.ListAccounts(ctx, userID, domain.CategoryCash, domain.CategoryBank)
		if err != nil {
			s.LogError(ctx, err, "Failed to list cash and bank accounts")
			return nil, fmt.Errorf("failed to list cash and bank accounts: %w", err)
		}

		summary := &domain.CashBankSummary{
			Cash:      []domain.AccountAmount{},
			Bank:      []domain.AccountAmount{},
			TotalCash: decimal.Zero,
			TotalBank: decimal.Zero,
		}
		for _, acc := range accounts {
			item := domain.AccountAmount{
				AccountID: acc.AccountID,
				Code:      acc.Code,
				Name:      acc.Name,
				Category:  acc.Category,
				Amount:    acc.Balance(),
			}
			switch acc.Category {
			case domain.CategoryCash:
				summary.Cash = append(summary.Cash, item)
				summary.TotalCash = summary.TotalCash.Add(item.Amount)
			case domain.CategoryBank:
				summary.Bank = append(summary.Bank, item)
				summary.TotalBank = summary.TotalBank.Add(item.Amount)
			}
		}
		summary.Total = summary.TotalCash.Add(summary.TotalBank)
		return summary, nil
	})
}
