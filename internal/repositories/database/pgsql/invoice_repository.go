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

const saleInvoiceColumns = `invoice_id, user_id, customer_id, bill_no, invoice_date, invoice_time, items,
	total_amount, paid_amount, payment_account_id, payment_type, status,
	created_at, created_by, last_updated_at, last_updated_by`

const purchaseInvoiceColumns = `invoice_id, user_id, supplier_id, bill_no, invoice_date, items,
	grand_total, paid_amount, payment_account_id, status, is_deleted,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxInvoiceRepository stores sale and purchase invoices. Items live in a JSONB column.
type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) *PgxInvoiceRepository {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.SaleInvoiceRepository     = (*PgxInvoiceRepository)(nil)
	_ portsrepo.PurchaseInvoiceRepository = (*PgxInvoiceRepository)(nil)
)

func scanSaleInvoice(row pgx.Row) (models.SaleInvoice, error) {
	var m models.SaleInvoice
	err := row.Scan(
		&m.InvoiceID, &m.UserID, &m.CustomerID, &m.BillNo, &m.InvoiceDate, &m.InvoiceTime, &m.Items,
		&m.TotalAmount, &m.PaidAmount, &m.PaymentAccountID, &m.PaymentType, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func scanPurchaseInvoice(row pgx.Row) (models.PurchaseInvoice, error) {
	var m models.PurchaseInvoice
	err := row.Scan(
		&m.InvoiceID, &m.UserID, &m.SupplierID, &m.BillNo, &m.InvoiceDate, &m.Items,
		&m.GrandTotal, &m.PaidAmount, &m.PaymentAccountID, &m.Status, &m.IsDeleted,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// FindSaleInvoiceByID retrieves a sale invoice.
func (r *PgxInvoiceRepository) FindSaleInvoiceByID(ctx context.Context, userID, invoiceID string) (*domain.SaleInvoice, error) {
	query := `SELECT ` + saleInvoiceColumns + ` FROM sale_invoices WHERE invoice_id = $1 AND user_id = $2;`
	m, err := scanSaleInvoice(r.Pool.QueryRow(ctx, query, invoiceID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("sale invoice " + invoiceID)
		}
		return nil, apperrors.NewAppError(500, "failed to find sale invoice "+invoiceID, err)
	}
	inv := mapping.ToDomainSaleInvoice(m)
	return &inv, nil
}

// ListSaleInvoices lists invoices newest first, optionally for one customer.
func (r *PgxInvoiceRepository) ListSaleInvoices(ctx context.Context, userID string, customerID *string) ([]domain.SaleInvoice, error) {
	query := `
		SELECT ` + saleInvoiceColumns + `
		FROM sale_invoices
		WHERE user_id = $1 AND ($2::text IS NULL OR customer_id = $2::text)
		ORDER BY invoice_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, customerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query sale invoices", err)
	}
	defer rows.Close()

	invoices := []domain.SaleInvoice{}
	for rows.Next() {
		m, err := scanSaleInvoice(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan sale invoice row", err)
		}
		invoices = append(invoices, mapping.ToDomainSaleInvoice(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating sale invoice rows", err)
	}
	return invoices, nil
}

// ListBillNumbers returns the bill numbers of the most recently created invoices.
func (r *PgxInvoiceRepository) ListBillNumbers(ctx context.Context, userID string, limit int) ([]string, error) {
	query := `SELECT bill_no FROM sale_invoices WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2;`
	rows, err := r.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bill numbers", err)
	}
	defer rows.Close()

	billNos, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan bill numbers", err)
	}
	return billNos, nil
}

// SaveSaleInvoice inserts a new sale invoice.
func (r *PgxInvoiceRepository) SaveSaleInvoice(ctx context.Context, invoice domain.SaleInvoice) error {
	m := mapping.ToModelSaleInvoice(invoice)
	query := `
		INSERT INTO sale_invoices (` + saleInvoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.InvoiceID, m.UserID, m.CustomerID, m.BillNo, m.InvoiceDate, m.InvoiceTime, m.Items,
		m.TotalAmount, m.PaidAmount, m.PaymentAccountID, m.PaymentType, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "sale invoice "+m.BillNo)
	}
	return nil
}

// UpdateSaleInvoice rewrites a sale invoice.
func (r *PgxInvoiceRepository) UpdateSaleInvoice(ctx context.Context, invoice domain.SaleInvoice) error {
	m := mapping.ToModelSaleInvoice(invoice)
	query := `
		UPDATE sale_invoices
		SET customer_id = $3, bill_no = $4, invoice_date = $5, invoice_time = $6, items = $7,
		    total_amount = $8, paid_amount = $9, payment_account_id = $10, payment_type = $11, status = $12,
		    last_updated_at = $13, last_updated_by = $14
		WHERE invoice_id = $1 AND user_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.InvoiceID, m.UserID, m.CustomerID, m.BillNo, m.InvoiceDate, m.InvoiceTime, m.Items,
		m.TotalAmount, m.PaidAmount, m.PaymentAccountID, m.PaymentType, m.Status,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "sale invoice "+m.InvoiceID)
	}
	return notFoundUnlessAffected(tag, "sale invoice "+m.InvoiceID)
}

// DeleteSaleInvoice removes a sale invoice row.
func (r *PgxInvoiceRepository) DeleteSaleInvoice(ctx context.Context, userID, invoiceID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM sale_invoices WHERE invoice_id = $1 AND user_id = $2;`, invoiceID, userID)
	if err != nil {
		return translateWriteError(err, "sale invoice "+invoiceID)
	}
	return notFoundUnlessAffected(tag, "sale invoice "+invoiceID)
}

// FindPurchaseInvoiceByID retrieves a live purchase invoice.
func (r *PgxInvoiceRepository) FindPurchaseInvoiceByID(ctx context.Context, userID, invoiceID string) (*domain.PurchaseInvoice, error) {
	query := `SELECT ` + purchaseInvoiceColumns + ` FROM purchase_invoices WHERE invoice_id = $1 AND user_id = $2 AND is_deleted = FALSE;`
	m, err := scanPurchaseInvoice(r.Pool.QueryRow(ctx, query, invoiceID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("purchase invoice " + invoiceID)
		}
		return nil, apperrors.NewAppError(500, "failed to find purchase invoice "+invoiceID, err)
	}
	inv := mapping.ToDomainPurchaseInvoice(m)
	return &inv, nil
}

// ListPurchaseInvoices lists live purchase invoices newest first, optionally for one supplier.
func (r *PgxInvoiceRepository) ListPurchaseInvoices(ctx context.Context, userID string, supplierID *string) ([]domain.PurchaseInvoice, error) {
	query := `
		SELECT ` + purchaseInvoiceColumns + `
		FROM purchase_invoices
		WHERE user_id = $1 AND is_deleted = FALSE AND ($2::text IS NULL OR supplier_id = $2::text)
		ORDER BY invoice_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, supplierID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query purchase invoices", err)
	}
	defer rows.Close()

	invoices := []domain.PurchaseInvoice{}
	for rows.Next() {
		m, err := scanPurchaseInvoice(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan purchase invoice row", err)
		}
		invoices = append(invoices, mapping.ToDomainPurchaseInvoice(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating purchase invoice rows", err)
	}
	return invoices, nil
}

// SavePurchaseInvoice inserts a new purchase invoice.
func (r *PgxInvoiceRepository) SavePurchaseInvoice(ctx context.Context, invoice domain.PurchaseInvoice) error {
	m := mapping.ToModelPurchaseInvoice(invoice)
	query := `
		INSERT INTO purchase_invoices (` + purchaseInvoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, FALSE, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.InvoiceID, m.UserID, m.SupplierID, m.BillNo, m.InvoiceDate, m.Items,
		m.GrandTotal, m.PaidAmount, m.PaymentAccountID, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "purchase invoice "+m.BillNo)
	}
	return nil
}

// UpdatePurchaseInvoice rewrites a live purchase invoice.
func (r *PgxInvoiceRepository) UpdatePurchaseInvoice(ctx context.Context, invoice domain.PurchaseInvoice) error {
	m := mapping.ToModelPurchaseInvoice(invoice)
	query := `
		UPDATE purchase_invoices
		SET supplier_id = $3, bill_no = $4, invoice_date = $5, items = $6, grand_total = $7, paid_amount = $8,
		    payment_account_id = $9, status = $10, last_updated_at = $11, last_updated_by = $12
		WHERE invoice_id = $1 AND user_id = $2 AND is_deleted = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.InvoiceID, m.UserID, m.SupplierID, m.BillNo, m.InvoiceDate, m.Items, m.GrandTotal, m.PaidAmount,
		m.PaymentAccountID, m.Status, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "purchase invoice "+m.InvoiceID)
	}
	return notFoundUnlessAffected(tag, "purchase invoice "+m.InvoiceID)
}

// MarkPurchaseInvoiceDeleted soft-deletes a purchase invoice.
func (r *PgxInvoiceRepository) MarkPurchaseInvoiceDeleted(ctx context.Context, userID, invoiceID, deletedBy string, deletedAt time.Time) error {
	return softDelete(ctx, r.Pool, "purchase_invoices", "invoice_id", "purchase invoice", userID, invoiceID, deletedBy, deletedAt)
}

// softDelete flags one live row of table deleted. table and idColumn are never user input.
func softDelete(ctx context.Context, q querier, table, idColumn, resource, userID, id, deletedBy string, deletedAt time.Time) error {
	query := `
		UPDATE ` + table + `
		SET is_deleted = TRUE, deleted_at = $3, deleted_by = $4, last_updated_at = $3, last_updated_by = $4
		WHERE ` + idColumn + ` = $1 AND user_id = $2 AND is_deleted = FALSE;
	`
	tag, err := q.Exec(ctx, query, id, userID, deletedAt, deletedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete "+resource+" "+id, err)
	}
	return notFoundUnlessAffected(tag, resource+" "+id)
}
