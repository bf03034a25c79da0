package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/models"
	"github.com/SscSPs/bookkeeping_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, user_id, code, name, account_type, category, description, opening_balance,
	created_at, created_by, last_updated_at, last_updated_by, balance`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.UserID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.Category,
		&m.Description,
		&m.OpeningBalance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Balance,
	)
	return m, err
}

func (r *PgxAccountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

// SaveAccount inserts a new account. The balance column starts at zero.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (account_id, user_id, code, name, account_type, category, description, opening_balance,
			created_at, created_by, last_updated_at, last_updated_by, balance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 0);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.UserID,
		m.Code,
		m.Name,
		m.AccountType,
		m.Category,
		m.Description,
		m.OpeningBalance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "account "+m.Code)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 AND user_id = $2;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account " + accountID)
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}

	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
// It's possible not all requested IDs were found; the map will simply not contain them.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, userID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 AND account_id = ANY($2);`
	accounts, err := r.queryAccounts(ctx, query, userID, accountIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.AccountID] = a
	}
	return byID, nil
}

// FindAccountByNameAndType finds a well-known account by case-insensitive name.
func (r *PgxAccountRepository) FindAccountByNameAndType(ctx context.Context, userID, name string, accountType domain.AccountType) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE user_id = $1 AND LOWER(name) = LOWER($2) AND account_type = $3
		ORDER BY created_at
		LIMIT 1;
	`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, userID, name, string(accountType)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("%s account %q", accountType, name))
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+name, err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// ListAccounts retrieves the user's accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, userID string, categories ...domain.AccountCategory) ([]domain.Account, error) {
	if len(categories) == 0 {
		query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY code;`
		return r.queryAccounts(ctx, query, userID)
	}

	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 AND category = ANY($2) ORDER BY code;`
	return r.queryAccounts(ctx, query, userID, names)
}

// NextAccountCode returns one past the highest numeric suffix among codes of the form <prefix>-NNNN.
func (r *PgxAccountRepository) NextAccountCode(ctx context.Context, userID, prefix string) (string, error) {
	query := `SELECT code FROM accounts WHERE user_id = $1 AND code LIKE $2;`
	rows, err := r.Pool.Query(ctx, query, userID, prefix+"-%")
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to query account codes", err)
	}
	defer rows.Close()

	highest := 0
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return "", apperrors.NewAppError(500, "failed to scan account code", err)
		}
		n, convErr := strconv.Atoi(strings.TrimPrefix(code, prefix+"-"))
		if convErr == nil && n > highest {
			highest = n
		}
	}
	if err := rows.Err(); err != nil {
		return "", apperrors.NewAppError(500, "error iterating account codes", err)
	}

	return fmt.Sprintf("%s-%04d", prefix, highest+1), nil
}

// UpdateAccount updates the descriptive fields of an account.
// The balance column is never touched here.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET code = $3, name = $4, category = $5, description = $6, opening_balance = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE account_id = $1 AND user_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.UserID,
		m.Code,
		m.Name,
		m.Category,
		m.Description,
		m.OpeningBalance,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "account "+m.AccountID)
	}
	return notFoundUnlessAffected(tag, "account "+m.AccountID)
}

// DeleteAccount removes an account together with the soft-deleted entries that post to it.
// Live lines and documents still referencing the account hold a foreign key, which surfaces
// as ErrConflict and rolls the purge back.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, userID, accountID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// journal_lines cascade with their entry
	purge := `
		DELETE FROM journal_entries e
		WHERE e.user_id = $1 AND e.is_deleted = TRUE
		  AND EXISTS (SELECT 1 FROM journal_lines l WHERE l.entry_id = e.entry_id AND l.account_id = $2);
	`
	if _, err := tx.Exec(ctx, purge, userID, accountID); err != nil {
		return apperrors.NewAppError(500, "failed to purge deleted entries of account "+accountID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1 AND user_id = $2;`, accountID, userID)
	if err != nil {
		return translateWriteError(err, "account "+accountID)
	}
	if err := notFoundUnlessAffected(tag, "account "+accountID); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SetAccountBalance overwrites the cached balance of an account.
func (r *PgxAccountRepository) SetAccountBalance(ctx context.Context, userID, accountID string, balance decimal.Decimal, updatedAt time.Time) error {
	query := `
		UPDATE accounts
		SET balance = $3, last_updated_at = $4
		WHERE account_id = $1 AND user_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, userID, balance, updatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update balance for account "+accountID, err)
	}
	return notFoundUnlessAffected(tag, "account "+accountID)
}
