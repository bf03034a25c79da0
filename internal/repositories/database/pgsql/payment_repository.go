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

const receivePaymentColumns = `payment_id, user_id, customer_id, account_id, amount, payment_date, bill_no, description,
	is_deleted, created_at, created_by, last_updated_at, last_updated_by`

const payBillColumns = `payment_id, user_id, supplier_id, account_id, amount, payment_date, description,
	is_deleted, created_at, created_by, last_updated_at, last_updated_by`

// PgxPaymentRepository stores payments received from customers and bills paid to suppliers.
type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool) *PgxPaymentRepository {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.ReceivePaymentRepository = (*PgxPaymentRepository)(nil)
	_ portsrepo.PayBillRepository        = (*PgxPaymentRepository)(nil)
)

func scanReceivePayment(row pgx.Row) (models.ReceivePayment, error) {
	var m models.ReceivePayment
	err := row.Scan(
		&m.PaymentID, &m.UserID, &m.CustomerID, &m.AccountID, &m.Amount, &m.PaymentDate, &m.BillNo, &m.Description,
		&m.IsDeleted, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func scanPayBill(row pgx.Row) (models.PayBill, error) {
	var m models.PayBill
	err := row.Scan(
		&m.PaymentID, &m.UserID, &m.SupplierID, &m.AccountID, &m.Amount, &m.PaymentDate, &m.Description,
		&m.IsDeleted, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxPaymentRepository) FindReceivePaymentByID(ctx context.Context, userID, paymentID string) (*domain.ReceivePayment, error) {
	query := `SELECT ` + receivePaymentColumns + ` FROM receive_payments WHERE payment_id = $1 AND user_id = $2 AND is_deleted = FALSE;`
	m, err := scanReceivePayment(r.Pool.QueryRow(ctx, query, paymentID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("receive payment " + paymentID)
		}
		return nil, apperrors.NewAppError(500, "failed to find receive payment "+paymentID, err)
	}
	p := mapping.ToDomainReceivePayment(m)
	return &p, nil
}

func (r *PgxPaymentRepository) ListReceivePayments(ctx context.Context, userID string, customerID *string) ([]domain.ReceivePayment, error) {
	query := `
		SELECT ` + receivePaymentColumns + `
		FROM receive_payments
		WHERE user_id = $1 AND is_deleted = FALSE AND ($2::text IS NULL OR customer_id = $2::text)
		ORDER BY payment_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, customerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query receive payments", err)
	}
	defer rows.Close()

	payments := []domain.ReceivePayment{}
	for rows.Next() {
		m, err := scanReceivePayment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan receive payment row", err)
		}
		payments = append(payments, mapping.ToDomainReceivePayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating receive payment rows", err)
	}
	return payments, nil
}

func (r *PgxPaymentRepository) SaveReceivePayment(ctx context.Context, payment domain.ReceivePayment) error {
	m := mapping.ToModelReceivePayment(payment)
	query := `
		INSERT INTO receive_payments (` + receivePaymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PaymentID, m.UserID, m.CustomerID, m.AccountID, m.Amount, m.PaymentDate, m.BillNo, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "receive payment "+m.PaymentID)
	}
	return nil
}

func (r *PgxPaymentRepository) UpdateReceivePayment(ctx context.Context, payment domain.ReceivePayment) error {
	m := mapping.ToModelReceivePayment(payment)
	query := `
		UPDATE receive_payments
		SET customer_id = $3, account_id = $4, amount = $5, payment_date = $6, bill_no = $7, description = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE payment_id = $1 AND user_id = $2 AND is_deleted = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.PaymentID, m.UserID, m.CustomerID, m.AccountID, m.Amount, m.PaymentDate, m.BillNo, m.Description,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "receive payment "+m.PaymentID)
	}
	return notFoundUnlessAffected(tag, "receive payment "+m.PaymentID)
}

func (r *PgxPaymentRepository) MarkReceivePaymentDeleted(ctx context.Context, userID, paymentID, deletedBy string, deletedAt time.Time) error {
	return softDelete(ctx, r.Pool, "receive_payments", "payment_id", "receive payment", userID, paymentID, deletedBy, deletedAt)
}

func (r *PgxPaymentRepository) FindPayBillByID(ctx context.Context, userID, paymentID string) (*domain.PayBill, error) {
	query := `SELECT ` + payBillColumns + ` FROM pay_bills WHERE payment_id = $1 AND user_id = $2 AND is_deleted = FALSE;`
	m, err := scanPayBill(r.Pool.QueryRow(ctx, query, paymentID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("pay bill " + paymentID)
		}
		return nil, apperrors.NewAppError(500, "failed to find pay bill "+paymentID, err)
	}
	p := mapping.ToDomainPayBill(m)
	return &p, nil
}

func (r *PgxPaymentRepository) ListPayBills(ctx context.Context, userID string, supplierID *string) ([]domain.PayBill, error) {
	query := `
		SELECT ` + payBillColumns + `
		FROM pay_bills
		WHERE user_id = $1 AND is_deleted = FALSE AND ($2::text IS NULL OR supplier_id = $2::text)
		ORDER BY payment_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, supplierID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query pay bills", err)
	}
	defer rows.Close()

	payments := []domain.PayBill{}
	for rows.Next() {
		m, err := scanPayBill(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan pay bill row", err)
		}
		payments = append(payments, mapping.ToDomainPayBill(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating pay bill rows", err)
	}
	return payments, nil
}

func (r *PgxPaymentRepository) SavePayBill(ctx context.Context, payment domain.PayBill) error {
	m := mapping.ToModelPayBill(payment)
	query := `
		INSERT INTO pay_bills (` + payBillColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PaymentID, m.UserID, m.SupplierID, m.AccountID, m.Amount, m.PaymentDate, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "pay bill "+m.PaymentID)
	}
	return nil
}

func (r *PgxPaymentRepository) UpdatePayBill(ctx context.Context, payment domain.PayBill) error {
	m := mapping.ToModelPayBill(payment)
	query := `
		UPDATE pay_bills
		SET supplier_id = $3, account_id = $4, amount = $5, payment_date = $6, description = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE payment_id = $1 AND user_id = $2 AND is_deleted = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.PaymentID, m.UserID, m.SupplierID, m.AccountID, m.Amount, m.PaymentDate, m.Description,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "pay bill "+m.PaymentID)
	}
	return notFoundUnlessAffected(tag, "pay bill "+m.PaymentID)
}

func (r *PgxPaymentRepository) MarkPayBillDeleted(ctx context.Context, userID, paymentID, deletedBy string, deletedAt time.Time) error {
	return softDelete(ctx, r.Pool, "pay_bills", "payment_id", "pay bill", userID, paymentID, deletedBy, deletedAt)
}
