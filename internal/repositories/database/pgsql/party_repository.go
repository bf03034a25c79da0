package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/models"
	"github.com/SscSPs/bookkeeping_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const customerColumns = `customer_id, user_id, name, email, phone, address, customer_type, opening_balance, account_id,
	is_deleted, created_at, created_by, last_updated_at, last_updated_by`

const supplierColumns = `supplier_id, user_id, name, email, phone, address, notes, supplier_type, opening_balance, account_id,
	is_deleted, created_at, created_by, last_updated_at, last_updated_by`

// PgxPartyRepository stores customers and suppliers.
type PgxPartyRepository struct {
	BaseRepository
}

func newPgxPartyRepository(pool *pgxpool.Pool) *PgxPartyRepository {
	return &PgxPartyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.CustomerRepositoryFacade = (*PgxPartyRepository)(nil)
	_ portsrepo.SupplierRepositoryFacade = (*PgxPartyRepository)(nil)
)

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID, &m.UserID, &m.Name, &m.Email, &m.Phone, &m.Address, &m.CustomerType,
		&m.OpeningBalance, &m.AccountID, &m.IsDeleted,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func scanSupplier(row pgx.Row) (models.Supplier, error) {
	var m models.Supplier
	err := row.Scan(
		&m.SupplierID, &m.UserID, &m.Name, &m.Email, &m.Phone, &m.Address, &m.Notes, &m.SupplierType,
		&m.OpeningBalance, &m.AccountID, &m.IsDeleted,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// FindCustomerByID retrieves a live customer.
func (r *PgxPartyRepository) FindCustomerByID(ctx context.Context, userID, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1 AND user_id = $2 AND is_deleted = FALSE;`
	m, err := scanCustomer(r.Pool.QueryRow(ctx, query, customerID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("customer " + customerID)
		}
		return nil, apperrors.NewAppError(500, "failed to find customer "+customerID, err)
	}
	c := mapping.ToDomainCustomer(m)
	return &c, nil
}

// ListCustomers lists live customers by name. An empty search matches everyone.
func (r *PgxPartyRepository) ListCustomers(ctx context.Context, userID, search string) ([]domain.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE user_id = $1 AND is_deleted = FALSE
		  AND ($2::text = '' OR name ILIKE '%' || $2::text || '%' OR email ILIKE '%' || $2::text || '%' OR phone ILIKE '%' || $2::text || '%')
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, userID, search)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query customers", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan customer row", err)
		}
		customers = append(customers, mapping.ToDomainCustomer(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating customer rows", err)
	}
	return customers, nil
}

// SaveCustomer inserts a new customer.
func (r *PgxPartyRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID, m.UserID, m.Name, m.Email, m.Phone, m.Address, m.CustomerType,
		m.OpeningBalance, m.AccountID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "customer "+m.Name)
	}
	return nil
}

// UpdateCustomer updates a live customer's details.
func (r *PgxPartyRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		UPDATE customers
		SET name = $3, email = $4, phone = $5, address = $6, customer_type = $7, opening_balance = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE customer_id = $1 AND user_id = $2 AND is_deleted = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.CustomerID, m.UserID, m.Name, m.Email, m.Phone, m.Address, m.CustomerType, m.OpeningBalance,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "customer "+m.CustomerID)
	}
	return notFoundUnlessAffected(tag, "customer "+m.CustomerID)
}

// MarkCustomerDeleted soft-deletes a customer.
func (r *PgxPartyRepository) MarkCustomerDeleted(ctx context.Context, userID, customerID, deletedBy string, deletedAt time.Time) error {
	return softDelete(ctx, r.Pool, "customers", "customer_id", "customer", userID, customerID, deletedBy, deletedAt)
}

// FindSupplierByID retrieves a live supplier.
func (r *PgxPartyRepository) FindSupplierByID(ctx context.Context, userID, supplierID string) (*domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE supplier_id = $1 AND user_id = $2 AND is_deleted = FALSE;`
	return r.findSupplier(ctx, "supplier "+supplierID, query, supplierID, userID)
}

// FindSupplierByName matches a live supplier by exact, case-insensitive name.
func (r *PgxPartyRepository) FindSupplierByName(ctx context.Context, userID, name string) (*domain.Supplier, error) {
	query := `
		SELECT ` + supplierColumns + `
		FROM suppliers
		WHERE LOWER(name) = LOWER($1) AND user_id = $2 AND is_deleted = FALSE
		ORDER BY created_at
		LIMIT 1;
	`
	return r.findSupplier(ctx, "supplier "+name, query, name, userID)
}

func (r *PgxPartyRepository) findSupplier(ctx context.Context, resource, query string, args ...any) (*domain.Supplier, error) {
	m, err := scanSupplier(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(resource)
		}
		return nil, apperrors.NewAppError(500, "failed to find "+resource, err)
	}
	s := mapping.ToDomainSupplier(m)
	return &s, nil
}

// ListSuppliers lists live suppliers by name. An empty search matches everyone.
func (r *PgxPartyRepository) ListSuppliers(ctx context.Context, userID, search string) ([]domain.Supplier, error) {
	query := `
		SELECT ` + supplierColumns + `
		FROM suppliers
		WHERE user_id = $1 AND is_deleted = FALSE
		  AND ($2::text = '' OR name ILIKE '%' || $2::text || '%' OR email ILIKE '%' || $2::text || '%' OR phone ILIKE '%' || $2::text || '%')
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, userID, search)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query suppliers", err)
	}
	defer rows.Close()

	suppliers := []domain.Supplier{}
	for rows.Next() {
		m, err := scanSupplier(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan supplier row", err)
		}
		suppliers = append(suppliers, mapping.ToDomainSupplier(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating supplier rows", err)
	}
	return suppliers, nil
}

// SaveSupplier inserts a new supplier.
func (r *PgxPartyRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	m := mapping.ToModelSupplier(supplier)
	query := `
		INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, FALSE, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SupplierID, m.UserID, m.Name, m.Email, m.Phone, m.Address, m.Notes, m.SupplierType,
		m.OpeningBalance, m.AccountID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "supplier "+m.Name)
	}
	return nil
}

// UpdateSupplier updates a live supplier's details.
func (r *PgxPartyRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) error {
	m := mapping.ToModelSupplier(supplier)
	query := `
		UPDATE suppliers
		SET name = $3, email = $4, phone = $5, address = $6, notes = $7, supplier_type = $8, opening_balance = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE supplier_id = $1 AND user_id = $2 AND is_deleted = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.SupplierID, m.UserID, m.Name, m.Email, m.Phone, m.Address, m.Notes, m.SupplierType, m.OpeningBalance,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "supplier "+m.SupplierID)
	}
	return notFoundUnlessAffected(tag, "supplier "+m.SupplierID)
}

// MarkSupplierDeleted soft-deletes a supplier.
func (r *PgxPartyRepository) MarkSupplierDeleted(ctx context.Context, userID, supplierID, deletedBy string, deletedAt time.Time) error {
	return softDelete(ctx, r.Pool, "suppliers", "supplier_id", "supplier", userID, supplierID, deletedBy, deletedAt)
}
