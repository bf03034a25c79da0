package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetTrialBalanceData sums every account's debits and credits over live entries in the optional range.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, userID string, from, to *time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			COALESCE(SUM(CASE WHEN l.line_type = 'DEBIT' THEN l.amount ELSE 0 END), 0) AS total_debit,
			COALESCE(SUM(CASE WHEN l.line_type = 'CREDIT' THEN l.amount ELSE 0 END), 0) AS total_credit
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.user_id = $1
			AND e.is_deleted = FALSE
			AND ($2::date IS NULL OR e.entry_date >= $2::date)
			AND ($3::date IS NULL OR e.entry_date <= $3::date)
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code
	`

	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string

		if err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&accountType,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}

		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}

	return result, nil
}

// GetCashFlowData groups cash and bank movements by month. Debits are inflows, credits outflows.
func (r *reportingRepository) GetCashFlowData(ctx context.Context, userID string, from, to time.Time) ([]domain.CashFlowMonth, error) {
	query := `
		SELECT
			EXTRACT(MONTH FROM e.entry_date)::int AS month,
			COALESCE(SUM(CASE WHEN l.line_type = 'DEBIT' THEN l.amount ELSE 0 END), 0) AS inflow,
			COALESCE(SUM(CASE WHEN l.line_type = 'CREDIT' THEN l.amount ELSE 0 END), 0) AS outflow
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.user_id = $1
			AND e.is_deleted = FALSE
			AND e.entry_date >= $2
			AND e.entry_date < $3
			AND a.category IN ('cash', 'bank')
		GROUP BY month
		ORDER BY month
	`

	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying cash flow data: %w", err)
	}
	defer rows.Close()

	months := []domain.CashFlowMonth{}
	for rows.Next() {
		var m domain.CashFlowMonth
		if err := rows.Scan(&m.Month, &m.Inflow, &m.Outflow); err != nil {
			return nil, fmt.Errorf("error scanning cash flow row: %w", err)
		}
		months = append(months, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash flow rows: %w", err)
	}
	return months, nil
}
