package accounting

import (
	"fmt"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MinEntryLines is the smallest number of lines a journal entry may carry.
const MinEntryLines = 2

// AmountPlaces is the number of decimal places a line amount may carry.
const AmountPlaces = 2

// SignedAmount returns the line amount in the debit-positive ledger convention:
// debits add, credits subtract, whatever the account type.
// Liability, equity and income balances therefore read negative when in credit.
func SignedAmount(line domain.JournalLine) decimal.Decimal {
	if line.Type == domain.Credit {
		return line.Amount.Neg()
	}
	return line.Amount
}

// Totals sums the debit and credit sides of lines.
func Totals(lines []domain.JournalLine) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, l := range lines {
		switch l.Type {
		case domain.Debit:
			debits = debits.Add(l.Amount)
		case domain.Credit:
			credits = credits.Add(l.Amount)
		}
	}
	return debits, credits
}

// IsBalanced reports whether total debits equal total credits exactly.
func IsBalanced(lines []domain.JournalLine) bool {
	debits, credits := Totals(lines)
	return debits.Equal(credits)
}

// ValidateEntryLines applies the posting rules to a candidate line set:
// at least two lines, each against an account with a known type and a positive amount
// of at most AmountPlaces decimals, and debits equal to credits.
func ValidateEntryLines(lines []domain.JournalLine) error {
	if len(lines) < MinEntryLines {
		return fmt.Errorf("%w: journal entry must have at least %d lines, got %d", apperrors.ErrValidation, MinEntryLines, len(lines))
	}

	for i, l := range lines {
		if l.AccountID == "" {
			return fmt.Errorf("%w: line %d has no account", apperrors.ErrValidation, i+1)
		}
		if !l.Type.IsValid() {
			return fmt.Errorf("%w: line %d has invalid type %q", apperrors.ErrValidation, i+1, l.Type)
		}
		if !l.Amount.IsPositive() {
			return fmt.Errorf("%w: line %d amount must be positive, got %s", apperrors.ErrValidation, i+1, l.Amount.String())
		}
		if !l.Amount.Equal(l.Amount.Round(AmountPlaces)) {
			return fmt.Errorf("%w: line %d amount %s has more than %d decimal places", apperrors.ErrValidation, i+1, l.Amount.String(), AmountPlaces)
		}
	}

	debits, credits := Totals(lines)
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s", apperrors.ErrValidation, debits.StringFixed(2), credits.StringFixed(2))
	}
	return nil
}

// NetBalance folds lines into a single debit-positive balance.
func NetBalance(lines []domain.JournalLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(SignedAmount(l))
	}
	return sum
}

// ValidatePlaces rejects an amount with more than AmountPlaces decimals.
// Documents call it before they are written so a posting cannot fail afterwards.
func ValidatePlaces(field string, amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(AmountPlaces)) {
		return fmt.Errorf("%w: %s %s has more than %d decimal places", apperrors.ErrValidation, field, amount.String(), AmountPlaces)
	}
	return nil
}
