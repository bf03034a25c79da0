package accounting

import (
	"sort"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpeningBalanceDescription labels the carried-forward row of a bounded ledger.
const OpeningBalanceDescription = "Opening Balance"

// SortAccountLines orders lines by date, then time of day, then creation, then line position.
// The sort is stable so equal keys keep their storage order.
func SortAccountLines(lines []domain.AccountLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if at, bt := normalizeClock(a.Time), normalizeClock(b.Time); at != bt {
			return at < bt
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.Position < b.Position
	})
}

// normalizeClock pads "HH:MM" to "HH:MM:SS" so clock strings compare lexically.
// An empty time sorts first within its day.
func normalizeClock(clock string) string {
	if len(clock) == len("15:04") {
		return clock + ":00"
	}
	return clock
}

// BuildLedger folds account lines into a running-balance ledger.
// The caller supplies lines of one account only, already restricted to the query range;
// opening is the signed sum of that account's lines before startDate.
// When startDate is nil no opening row is emitted and opening must be zero.
func BuildLedger(accountID string, opening decimal.Decimal, startDate *time.Time, lines []domain.AccountLine) domain.Ledger {
	SortAccountLines(lines)

	ledger := domain.Ledger{
		AccountID:      accountID,
		OpeningBalance: opening,
		TotalDebit:     decimal.Zero,
		TotalCredit:    decimal.Zero,
		Rows:           make([]domain.LedgerRow, 0, len(lines)+1),
	}

	if startDate != nil {
		ledger.Rows = append(ledger.Rows, domain.LedgerRow{
			Date:           *startDate,
			Description:    OpeningBalanceDescription,
			Debit:          decimal.Zero,
			Credit:         decimal.Zero,
			RunningBalance: opening,
			IsOpening:      true,
		})
	}

	running := opening
	for _, l := range lines {
		row := domain.LedgerRow{
			EntryID:     l.EntryID,
			Date:        l.Date,
			Time:        l.Time,
			Description: l.Description,
			BillNo:      l.BillNo,
			Source:      l.Source,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if l.Type == domain.Debit {
			row.Debit = l.Amount
			ledger.TotalDebit = ledger.TotalDebit.Add(l.Amount)
		} else {
			row.Credit = l.Amount
			ledger.TotalCredit = ledger.TotalCredit.Add(l.Amount)
		}
		running = running.Add(row.Debit).Sub(row.Credit)
		row.RunningBalance = running
		ledger.Rows = append(ledger.Rows, row)
	}

	ledger.ClosingBalance = running
	return ledger
}
