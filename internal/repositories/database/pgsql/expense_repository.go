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

const expenseColumns = `expense_id, user_id, expense_date, description, category_account_id, amount, payments,
	is_deleted, created_at, created_by, last_updated_at, last_updated_by`

// PgxExpenseRepository stores expenses. The payment split lives in a JSONB column.
type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) *PgxExpenseRepository {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepository = (*PgxExpenseRepository)(nil)

func scanExpense(row pgx.Row) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID, &m.UserID, &m.ExpenseDate, &m.Description, &m.CategoryAccountID, &m.Amount, &m.Payments,
		&m.IsDeleted, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1 AND user_id = $2 AND is_deleted = FALSE;`
	m, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("expense " + expenseID)
		}
		return nil, apperrors.NewAppError(500, "failed to find expense "+expenseID, err)
	}
	e := mapping.ToDomainExpense(m)
	return &e, nil
}

func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, userID string) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = $1 AND is_deleted = FALSE
		ORDER BY expense_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expenses", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense row", err)
		}
		expenses = append(expenses, mapping.ToDomainExpense(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating expense rows", err)
	}
	return expenses, nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExpenseID, m.UserID, m.ExpenseDate, m.Description, m.CategoryAccountID, m.Amount, m.Payments,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "expense "+m.ExpenseID)
	}
	return nil
}

func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		UPDATE expenses
		SET expense_date = $3, description = $4, category_account_id = $5, amount = $6, payments = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE expense_id = $1 AND user_id = $2 AND is_deleted = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ExpenseID, m.UserID, m.ExpenseDate, m.Description, m.CategoryAccountID, m.Amount, m.Payments,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "expense "+m.ExpenseID)
	}
	return notFoundUnlessAffected(tag, "expense "+m.ExpenseID)
}

func (r *PgxExpenseRepository) MarkExpenseDeleted(ctx context.Context, userID, expenseID, deletedBy string, deletedAt time.Time) error {
	return softDelete(ctx, r.Pool, "expenses", "expense_id", "expense", userID, expenseID, deletedBy, deletedAt)
}
