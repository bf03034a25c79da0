package pgsql

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateWriteError(t *testing.T) {
	unique := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "accounts_user_id_code_key"}
	err := translateWriteError(fmt.Errorf("exec: %w", unique), "account CASH-0001")
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.Contains(t, err.Error(), "accounts_user_id_code_key")

	fk := &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "journal_lines_account_id_fkey"}
	err = translateWriteError(fk, "account a-1")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, http.StatusConflict, apperrors.StatusCode(err))

	err = translateWriteError(errors.New("connection reset"), "journal entry e-1")
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusCode(err))
	assert.Contains(t, err.Error(), "failed to write journal entry e-1")
}

func TestNotFoundUnlessAffected(t *testing.T) {
	assert.NoError(t, notFoundUnlessAffected(pgconn.NewCommandTag("UPDATE 1"), "customer c-1"))

	err := notFoundUnlessAffected(pgconn.NewCommandTag("UPDATE 0"), "customer c-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "customer c-1 not found: resource not found", err.Error())
}
