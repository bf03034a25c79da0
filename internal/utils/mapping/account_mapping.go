package mapping

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
// The balance is carried along so new rows start from whatever the domain holds, normally zero.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		UserID:         d.UserID,
		Code:           d.Code,
		Name:           d.Name,
		AccountType:    string(d.AccountType),
		Category:       string(d.Category),
		Description:    d.Description,
		OpeningBalance: d.OpeningBalance,
		AuditFields:    ToModelAuditFields(d.AuditFields),
		Balance:        d.Balance(),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	a := domain.Account{
		AccountID:      m.AccountID,
		UserID:         m.UserID,
		Code:           m.Code,
		Name:           m.Name,
		AccountType:    domain.AccountType(m.AccountType),
		Category:       domain.AccountCategory(m.Category),
		Description:    m.Description,
		OpeningBalance: m.OpeningBalance,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	a.HydrateBalance(m.Balance)
	return a
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
