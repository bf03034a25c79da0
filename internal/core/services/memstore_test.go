package services_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
)

// memStore is an in-memory stand-in for the Postgres repositories. It keeps soft-deleted
// entries around so tests can check they are excluded from sums and ledgers.
type memStore struct {
	mu sync.Mutex

	accounts  map[string]domain.Account
	entries   map[string]domain.JournalEntry
	customers map[string]domain.Customer
	suppliers map[string]domain.Supplier
	sales     map[string]domain.SaleInvoice
	purchases map[string]domain.PurchaseInvoice
	expenses  map[string]domain.Expense
	receipts  map[string]domain.ReceivePayment
	bills     map[string]domain.PayBill

	setBalanceErr error
	balanceWrites int
}

var (
	_ portsrepo.AccountRepositoryFacade   = (*memStore)(nil)
	_ portsrepo.JournalRepositoryFacade   = (*memStore)(nil)
	_ portsrepo.CustomerRepositoryFacade  = (*memStore)(nil)
	_ portsrepo.SupplierRepositoryFacade  = (*memStore)(nil)
	_ portsrepo.SaleInvoiceRepository     = (*memStore)(nil)
	_ portsrepo.PurchaseInvoiceRepository = (*memStore)(nil)
	_ portsrepo.ExpenseRepository         = (*memStore)(nil)
	_ portsrepo.ReceivePaymentRepository  = (*memStore)(nil)
	_ portsrepo.PayBillRepository         = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		accounts:  map[string]domain.Account{},
		entries:   map[string]domain.JournalEntry{},
		customers: map[string]domain.Customer{},
		suppliers: map[string]domain.Supplier{},
		sales:     map[string]domain.SaleInvoice{},
		purchases: map[string]domain.PurchaseInvoice{},
		expenses:  map[string]domain.Expense{},
		receipts:  map[string]domain.ReceivePayment{},
		bills:     map[string]domain.PayBill{},
	}
}

func copyEntry(e domain.JournalEntry) domain.JournalEntry {
	e.Lines = append([]domain.JournalLine(nil), e.Lines...)
	return e
}

// --- accounts ---

func (m *memStore) FindAccountByID(_ context.Context, userID, accountID string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[accountID]
	if !ok || a.UserID != userID {
		return nil, apperrors.NewNotFoundError("account")
	}
	return &a, nil
}

func (m *memStore) FindAccountsByIDs(_ context.Context, userID string, ids []string) (map[string]domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]domain.Account, len(ids))
	for _, id := range ids {
		if a, ok := m.accounts[id]; ok && a.UserID == userID {
			out[id] = a
		}
	}
	return out, nil
}

func (m *memStore) FindAccountByNameAndType(_ context.Context, userID, name string, t domain.AccountType) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.UserID == userID && a.AccountType == t && strings.EqualFold(a.Name, name) {
			return &a, nil
		}
	}
	return nil, apperrors.NewNotFoundError("account")
}

func (m *memStore) ListAccounts(_ context.Context, userID string, categories ...domain.AccountCategory) ([]domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Account
	for _, a := range m.accounts {
		if a.UserID != userID {
			continue
		}
		if len(categories) > 0 && !containsCategory(categories, a.Category) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func containsCategory(list []domain.AccountCategory, c domain.AccountCategory) bool {
	for _, x := range list {
		if x == c {
			return true
		}
	}
	return false
}

func (m *memStore) NextAccountCode(_ context.Context, userID, prefix string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, a := range m.accounts {
		if a.UserID == userID && strings.HasPrefix(a.Code, prefix+"-") {
			n++
		}
	}
	return fmt.Sprintf("%s-%04d", prefix, n+1), nil
}

func (m *memStore) SaveAccount(_ context.Context, account domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.UserID == account.UserID && a.Code == account.Code {
			return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, account.Code)
		}
	}
	account.HydrateBalance(decimal.Zero)
	m.accounts[account.AccountID] = account
	return nil
}

func (m *memStore) UpdateAccount(_ context.Context, account domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.accounts[account.AccountID]
	if !ok {
		return apperrors.NewNotFoundError("account")
	}
	account.HydrateBalance(existing.Balance())
	m.accounts[account.AccountID] = account
	return nil
}

func (m *memStore) DeleteAccount(_ context.Context, userID, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[accountID]; !ok || a.UserID != userID {
		return apperrors.NewNotFoundError("account")
	}
	var purge []string
	for id, e := range m.entries {
		if e.UserID != userID || !entryPostsTo(e, accountID) {
			continue
		}
		if !e.IsDeleted {
			return fmt.Errorf("%w: account %s is referenced by entry %s", apperrors.ErrConflict, accountID, id)
		}
		purge = append(purge, id)
	}
	for _, id := range purge {
		delete(m.entries, id)
	}
	delete(m.accounts, accountID)
	return nil
}

func entryPostsTo(e domain.JournalEntry, accountID string) bool {
	for _, l := range e.Lines {
		if l.AccountID == accountID {
			return true
		}
	}
	return false
}

func (m *memStore) SetAccountBalance(_ context.Context, userID, accountID string, balance decimal.Decimal, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setBalanceErr != nil {
		return m.setBalanceErr
	}
	a, ok := m.accounts[accountID]
	if !ok || a.UserID != userID {
		return apperrors.NewNotFoundError("account")
	}
	a.HydrateBalance(balance)
	m.accounts[accountID] = a
	m.balanceWrites++
	return nil
}

// balance reads the cached balance the way a handler would see it.
func (m *memStore) balance(accountID string) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accounts[accountID].Balance()
}

// --- journal ---

func (m *memStore) FindEntryByID(_ context.Context, userID, entryID string) (*domain.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[entryID]
	if !ok || e.UserID != userID || e.IsDeleted {
		return nil, apperrors.NewNotFoundError("journal entry")
	}
	e = copyEntry(e)
	return &e, nil
}

func (m *memStore) FindEntriesBySource(_ context.Context, userID string, source domain.SourceRef, includeDeleted bool) ([]domain.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.JournalEntry
	for _, e := range m.entries {
		if e.UserID != userID || e.Source != source || (e.IsDeleted && !includeDeleted) {
			continue
		}
		out = append(out, copyEntry(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) ListEntries(_ context.Context, userID string, filter domain.JournalEntryFilter, limit int, _ *string) ([]domain.JournalEntry, *string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.JournalEntry
	for _, e := range m.entries {
		if e.UserID != userID || e.IsDeleted {
			continue
		}
		if filter.SourceKind != nil && e.Source.Kind != *filter.SourceKind {
			continue
		}
		if filter.StartDate != nil && e.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && e.Date.After(*filter.EndDate) {
			continue
		}
		out = append(out, copyEntry(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil, nil
}

func (m *memStore) accountLines(userID, accountID string, keep func(domain.JournalEntry) bool) []domain.AccountLine {
	var out []domain.AccountLine
	for _, e := range m.entries {
		if e.UserID != userID || e.IsDeleted || !keep(e) {
			continue
		}
		for _, l := range e.Lines {
			if l.AccountID != accountID {
				continue
			}
			out = append(out, domain.AccountLine{
				EntryID:     e.EntryID,
				LineID:      l.LineID,
				Date:        e.Date,
				Time:        e.Time,
				CreatedAt:   e.CreatedAt,
				Position:    l.Position,
				Description: e.Description,
				BillNo:      e.BillNo,
				Source:      e.Source,
				Type:        l.Type,
				Amount:      l.Amount,
			})
		}
	}
	return out
}

func (m *memStore) SumAccountLines(_ context.Context, userID, accountID string, before *time.Time) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sum := decimal.Zero
	for _, l := range m.accountLines(userID, accountID, func(e domain.JournalEntry) bool {
		return before == nil || e.Date.Before(*before)
	}) {
		if l.Type == domain.Debit {
			sum = sum.Add(l.Amount)
		} else {
			sum = sum.Sub(l.Amount)
		}
	}
	return sum, nil
}

func (m *memStore) ListAccountLines(_ context.Context, userID, accountID string, query domain.LedgerQuery) ([]domain.AccountLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accountLines(userID, accountID, func(e domain.JournalEntry) bool {
		if query.StartDate != nil && e.Date.Before(*query.StartDate) {
			return false
		}
		if query.EndDate != nil && e.Date.After(*query.EndDate) {
			return false
		}
		if len(query.SourceKinds) > 0 {
			for _, k := range query.SourceKinds {
				if e.Source.Kind == k {
					return true
				}
			}
			return false
		}
		return true
	}), nil
}

func (m *memStore) ListTransactionsByAccountID(_ context.Context, userID, accountID string, limit int, _ *string) ([]domain.AccountLine, *string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := m.accountLines(userID, accountID, func(domain.JournalEntry) bool { return true })
	sort.Slice(lines, func(i, j int) bool { return lines[i].Date.After(lines[j].Date) })
	if limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}
	return lines, nil, nil
}

func (m *memStore) CountLinesForAccount(_ context.Context, userID, accountID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.accountLines(userID, accountID, func(domain.JournalEntry) bool { return true })), nil
}

func (m *memStore) SaveEntry(_ context.Context, entry domain.JournalEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[entry.EntryID]; ok {
		return fmt.Errorf("%w: entry %s", apperrors.ErrDuplicate, entry.EntryID)
	}
	m.entries[entry.EntryID] = copyEntry(entry)
	return nil
}

func (m *memStore) ReplaceEntry(_ context.Context, entry domain.JournalEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[entry.EntryID]; !ok {
		return apperrors.NewNotFoundError("journal entry")
	}
	m.entries[entry.EntryID] = copyEntry(entry)
	return nil
}

func (m *memStore) ReplaceEntriesBySource(_ context.Context, userID string, source domain.SourceRef, entries []domain.JournalEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.entries {
		if e.UserID == userID && e.Source == source {
			delete(m.entries, id)
		}
	}
	for _, e := range entries {
		m.entries[e.EntryID] = copyEntry(e)
	}
	return nil
}

func (m *memStore) SoftDeleteEntry(_ context.Context, userID, entryID, deletedBy string, deletedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[entryID]
	if !ok || e.UserID != userID || e.IsDeleted {
		return apperrors.NewNotFoundError("journal entry")
	}
	e.IsDeleted = true
	e.Touch(deletedBy, deletedAt)
	m.entries[entryID] = e
	return nil
}

func (m *memStore) SoftDeleteEntriesBySource(_ context.Context, userID string, source domain.SourceRef, deletedBy string, deletedAt time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, e := range m.entries {
		if e.UserID == userID && e.Source == source && !e.IsDeleted {
			e.IsDeleted = true
			e.Touch(deletedBy, deletedAt)
			m.entries[id] = e
			n++
		}
	}
	return n, nil
}

// liveEntries returns the non-deleted entries of source.
func (m *memStore) liveEntries(source domain.SourceRef) []domain.JournalEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.JournalEntry
	for _, e := range m.entries {
		if e.Source == source && !e.IsDeleted {
			out = append(out, copyEntry(e))
		}
	}
	return out
}

// --- parties ---

func (m *memStore) FindCustomerByID(_ context.Context, userID, customerID string) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[customerID]
	if !ok || c.UserID != userID || c.IsDeleted {
		return nil, apperrors.NewNotFoundError("customer")
	}
	return &c, nil
}

func (m *memStore) ListCustomers(_ context.Context, userID, search string) ([]domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Customer
	for _, c := range m.customers {
		if c.UserID == userID && !c.IsDeleted && strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) SaveCustomer(_ context.Context, c domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers[c.CustomerID] = c
	return nil
}

func (m *memStore) UpdateCustomer(_ context.Context, c domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers[c.CustomerID] = c
	return nil
}

func (m *memStore) MarkCustomerDeleted(_ context.Context, userID, customerID, deletedBy string, deletedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[customerID]
	if !ok || c.UserID != userID {
		return apperrors.NewNotFoundError("customer")
	}
	c.IsDeleted = true
	c.Touch(deletedBy, deletedAt)
	m.customers[customerID] = c
	return nil
}

func (m *memStore) FindSupplierByID(_ context.Context, userID, supplierID string) (*domain.Supplier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.suppliers[supplierID]
	if !ok || s.UserID != userID || s.IsDeleted {
		return nil, apperrors.NewNotFoundError("supplier")
	}
	return &s, nil
}

func (m *memStore) FindSupplierByName(_ context.Context, userID, name string) (*domain.Supplier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.suppliers {
		if s.UserID == userID && !s.IsDeleted && strings.EqualFold(s.Name, name) {
			return &s, nil
		}
	}
	return nil, apperrors.NewNotFoundError("supplier")
}

func (m *memStore) ListSuppliers(_ context.Context, userID, search string) ([]domain.Supplier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Supplier
	for _, s := range m.suppliers {
		if s.UserID == userID && !s.IsDeleted && strings.Contains(strings.ToLower(s.Name), strings.ToLower(search)) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) SaveSupplier(_ context.Context, s domain.Supplier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suppliers[s.SupplierID] = s
	return nil
}

func (m *memStore) UpdateSupplier(_ context.Context, s domain.Supplier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suppliers[s.SupplierID] = s
	return nil
}

func (m *memStore) MarkSupplierDeleted(_ context.Context, userID, supplierID, deletedBy string, deletedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.suppliers[supplierID]
	if !ok || s.UserID != userID {
		return apperrors.NewNotFoundError("supplier")
	}
	s.IsDeleted = true
	s.Touch(deletedBy, deletedAt)
	m.suppliers[supplierID] = s
	return nil
}

// --- documents ---

func (m *memStore) FindSaleInvoiceByID(_ context.Context, userID, invoiceID string) (*domain.SaleInvoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.sales[invoiceID]
	if !ok || inv.UserID != userID {
		return nil, apperrors.NewNotFoundError("sale invoice")
	}
	return &inv, nil
}

func (m *memStore) ListSaleInvoices(_ context.Context, userID string, customerID *string) ([]domain.SaleInvoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.SaleInvoice
	for _, inv := range m.sales {
		if inv.UserID == userID && (customerID == nil || inv.CustomerID == *customerID) {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (m *memStore) ListBillNumbers(_ context.Context, userID string, limit int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	invoices := make([]domain.SaleInvoice, 0, len(m.sales))
	for _, inv := range m.sales {
		if inv.UserID == userID {
			invoices = append(invoices, inv)
		}
	}
	sort.Slice(invoices, func(i, j int) bool { return invoices[i].CreatedAt.After(invoices[j].CreatedAt) })
	var out []string
	for _, inv := range invoices {
		if len(out) == limit {
			break
		}
		out = append(out, inv.BillNo)
	}
	return out, nil
}

func (m *memStore) SaveSaleInvoice(_ context.Context, inv domain.SaleInvoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sales[inv.InvoiceID] = inv
	return nil
}

func (m *memStore) UpdateSaleInvoice(_ context.Context, inv domain.SaleInvoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sales[inv.InvoiceID]; !ok {
		return apperrors.NewNotFoundError("sale invoice")
	}
	m.sales[inv.InvoiceID] = inv
	return nil
}

func (m *memStore) DeleteSaleInvoice(_ context.Context, userID, invoiceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if inv, ok := m.sales[invoiceID]; !ok || inv.UserID != userID {
		return apperrors.NewNotFoundError("sale invoice")
	}
	delete(m.sales, invoiceID)
	return nil
}

func (m *memStore) FindPurchaseInvoiceByID(_ context.Context, userID, invoiceID string) (*domain.PurchaseInvoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.purchases[invoiceID]
	if !ok || inv.UserID != userID || inv.IsDeleted {
		return nil, apperrors.NewNotFoundError("purchase invoice")
	}
	return &inv, nil
}

func (m *memStore) ListPurchaseInvoices(_ context.Context, userID string, supplierID *string) ([]domain.PurchaseInvoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.PurchaseInvoice
	for _, inv := range m.purchases {
		if inv.UserID == userID && !inv.IsDeleted && (supplierID == nil || inv.SupplierID == *supplierID) {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (m *memStore) SavePurchaseInvoice(_ context.Context, inv domain.PurchaseInvoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purchases[inv.InvoiceID] = inv
	return nil
}

func (m *memStore) UpdatePurchaseInvoice(_ context.Context, inv domain.PurchaseInvoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purchases[inv.InvoiceID] = inv
	return nil
}

func (m *memStore) MarkPurchaseInvoiceDeleted(_ context.Context, userID, invoiceID, deletedBy string, deletedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.purchases[invoiceID]
	if !ok || inv.UserID != userID {
		return apperrors.NewNotFoundError("purchase invoice")
	}
	inv.IsDeleted = true
	inv.Touch(deletedBy, deletedAt)
	m.purchases[invoiceID] = inv
	return nil
}

func (m *memStore) FindExpenseByID(_ context.Context, userID, expenseID string) (*domain.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.expenses[expenseID]
	if !ok || e.UserID != userID || e.IsDeleted {
		return nil, apperrors.NewNotFoundError("expense")
	}
	return &e, nil
}

func (m *memStore) ListExpenses(_ context.Context, userID string) ([]domain.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Expense
	for _, e := range m.expenses {
		if e.UserID == userID && !e.IsDeleted {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) SaveExpense(_ context.Context, e domain.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses[e.ExpenseID] = e
	return nil
}

func (m *memStore) UpdateExpense(_ context.Context, e domain.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses[e.ExpenseID] = e
	return nil
}

func (m *memStore) MarkExpenseDeleted(_ context.Context, userID, expenseID, deletedBy string, deletedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.expenses[expenseID]
	if !ok || e.UserID != userID {
		return apperrors.NewNotFoundError("expense")
	}
	e.IsDeleted = true
	e.Touch(deletedBy, deletedAt)
	m.expenses[expenseID] = e
	return nil
}

func (m *memStore) FindReceivePaymentByID(_ context.Context, userID, paymentID string) (*domain.ReceivePayment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.receipts[paymentID]
	if !ok || p.UserID != userID || p.IsDeleted {
		return nil, apperrors.NewNotFoundError("received payment")
	}
	return &p, nil
}

func (m *memStore) ListReceivePayments(_ context.Context, userID string, customerID *string) ([]domain.ReceivePayment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ReceivePayment
	for _, p := range m.receipts {
		if p.UserID == userID && !p.IsDeleted && (customerID == nil || p.CustomerID == *customerID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) SaveReceivePayment(_ context.Context, p domain.ReceivePayment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts[p.PaymentID] = p
	return nil
}

func (m *memStore) UpdateReceivePayment(_ context.Context, p domain.ReceivePayment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts[p.PaymentID] = p
	return nil
}

func (m *memStore) MarkReceivePaymentDeleted(_ context.Context, userID, paymentID, deletedBy string, deletedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.receipts[paymentID]
	if !ok || p.UserID != userID {
		return apperrors.NewNotFoundError("received payment")
	}
	p.IsDeleted = true
	p.Touch(deletedBy, deletedAt)
	m.receipts[paymentID] = p
	return nil
}

func (m *memStore) FindPayBillByID(_ context.Context, userID, paymentID string) (*domain.PayBill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bills[paymentID]
	if !ok || b.UserID != userID || b.IsDeleted {
		return nil, apperrors.NewNotFoundError("bill payment")
	}
	return &b, nil
}

func (m *memStore) ListPayBills(_ context.Context, userID string, supplierID *string) ([]domain.PayBill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.PayBill
	for _, b := range m.bills {
		if b.UserID == userID && !b.IsDeleted && (supplierID == nil || b.SupplierID == *supplierID) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) SavePayBill(_ context.Context, b domain.PayBill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bills[b.PaymentID] = b
	return nil
}

func (m *memStore) UpdatePayBill(_ context.Context, b domain.PayBill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bills[b.PaymentID] = b
	return nil
}

func (m *memStore) MarkPayBillDeleted(_ context.Context, userID, paymentID, deletedBy string, deletedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bills[paymentID]
	if !ok || b.UserID != userID {
		return apperrors.NewNotFoundError("bill payment")
	}
	b.IsDeleted = true
	b.Touch(deletedBy, deletedAt)
	m.bills[paymentID] = b
	return nil
}

var errStoreDown = errors.New("store unavailable")
