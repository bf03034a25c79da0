package dto

import (
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name        string                 `json:"name" binding:"required,max=255"`
	Code        string                 `json:"code" binding:"omitempty,max=50"` // generated when empty
	AccountType domain.AccountType     `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	Category    domain.AccountCategory `json:"category" binding:"required,oneof=cash bank cheque online credit other customer supplier"`
	Description string                 `json:"description"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name        *string                 `json:"name" binding:"omitempty,max=255"`
	Category    *domain.AccountCategory `json:"category" binding:"omitempty,oneof=cash bank cheque online credit other customer supplier"`
	Description *string                 `json:"description"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string                 `json:"accountID"`
	Code          string                 `json:"code"`
	Name          string                 `json:"name"`
	AccountType   domain.AccountType     `json:"accountType"`
	Category      domain.AccountCategory `json:"category"`
	Description   string                 `json:"description"`
	Balance       decimal.Decimal        `json:"balance"`
	CreatedAt     time.Time              `json:"createdAt"`
	CreatedBy     string                 `json:"createdBy"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy string                 `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Code:          acc.Code,
		Name:          acc.Name,
		AccountType:   acc.AccountType,
		Category:      acc.Category,
		Description:   acc.Description,
		Balance:       acc.Balance(),
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Category string `form:"category" binding:"omitempty,oneof=cash bank cheque online credit other customer supplier"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// AccountBalanceResponse defines the data returned for an account balance query.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}

// AdjustBalanceRequest shifts a cached balance by Delta without posting an entry.
type AdjustBalanceRequest struct {
	Delta  decimal.Decimal `json:"delta" binding:"required,dnonzero"`
	Reason string          `json:"reason" binding:"required"`
}

// RecalculationResultResponse reports one account of a bulk recalculation.
type RecalculationResultResponse struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	Error     string          `json:"error,omitempty"`
}

// RecalculationResponse summarises a recalculation of every account of a user.
type RecalculationResponse struct {
	Recalculated int                           `json:"recalculated"`
	Failed       int                           `json:"failed"`
	Results      []RecalculationResultResponse `json:"results"`
}

// ToRecalculationResponse folds per-account results into a response.
func ToRecalculationResponse(results []domain.RecalculationResult) RecalculationResponse {
	resp := RecalculationResponse{Results: make([]RecalculationResultResponse, len(results))}
	for i, r := range results {
		row := RecalculationResultResponse{
			AccountID: r.AccountID,
			Code:      r.Code,
			Name:      r.Name,
			Balance:   r.Balance,
		}
		if r.Failed() {
			row.Error = r.Err.Error()
			resp.Failed++
		} else {
			resp.Recalculated++
		}
		resp.Results[i] = row
	}
	return resp
}

// RecalculationQueuedResponse is returned when recalculation runs in the background.
type RecalculationQueuedResponse struct {
	TaskID string `json:"taskID"`
	Queue  string `json:"queue"`
}
