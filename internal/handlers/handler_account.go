package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/jobs"
)

// accountHandler handles HTTP requests related to accounts and their balances.
type accountHandler struct {
	accountService   portssvc.AccountSvcFacade
	balanceService   portssvc.BalanceSvcFacade
	ledgerService    portssvc.LedgerSvc
	reportingService portssvc.ReportingService
	scheduler        portssvc.RecalculationScheduler
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := &accountHandler{
		accountService:   services.Account,
		balanceService:   services.Balance,
		ledgerService:    services.Ledger,
		reportingService: services.Reporting,
		scheduler:        services.Scheduler,
	}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.POST("/recalculate", h.recalculateAll)
		accounts.GET("/summary/cash-bank", h.cashBankSummary)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
		accounts.GET("/:id/balance", h.getAccountBalance)
		accounts.GET("/:id/ledger", h.getAccountLedger)
		accounts.GET("/:id/transactions", h.listTransactions)
		accounts.POST("/:id/recalculate", h.recalculateAccount)
		accounts.POST("/:id/adjust", h.adjustBalance)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates a new account for the logged-in user. The code is generated when omitted.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or restricted name"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Code already in use"
// @Failure 500 {object} dto.ErrorResponse "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	logger.Info("Received request to create account", slog.String("account_name", req.Name))

	account, err := h.accountService.CreateAccount(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by ID
// @Description Retrieves details for a specific account by its ID
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	accountID := c.Param("id")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), userID, accountID)
	if err != nil {
		respondError(c, logger.With(slog.String("target_account_id", accountID)), err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts for the logged-in user
// @Description Retrieves the user's accounts ordered by code, optionally of one category
// @Tags accounts
// @Produce  json
// @Param   category query string false "Account category"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid category"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var params dto.ListAccountsParams
	if !bindQuery(c, logger, &params) {
		return
	}

	var categories []domain.AccountCategory
	if params.Category != "" {
		categories = append(categories, domain.AccountCategory(params.Category))
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), userID, categories...)
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}

	logger.Debug("Accounts listed successfully", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates an account's name, category or description. The balance cannot be set here.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID to update"
// @Param   account body dto.UpdateAccountRequest true "Account details to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update account"
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	accountID := c.Param("id")
	var req dto.UpdateAccountRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	logger = logger.With(slog.String("target_account_id", accountID))
	account, err := h.accountService.UpdateAccount(c.Request.Context(), userID, accountID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to update account")
		return
	}

	logger.Info("Account updated successfully")
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Deletes an account that no journal line references
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID to delete"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 409 {object} dto.ErrorResponse "Account still referenced by journal lines"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete account"
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	accountID := c.Param("id")
	logger = logger.With(slog.String("target_account_id", accountID))

	if err := h.accountService.DeleteAccount(c.Request.Context(), userID, accountID); err != nil {
		respondError(c, logger, err, "Failed to delete account")
		return
	}

	logger.Info("Account deleted successfully")
	c.Status(http.StatusNoContent)
}

// getAccountBalance godoc
// @Summary Get account balance
// @Description Recalculates the balance of the account from its journal lines and returns it
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to calculate balance"
// @Security BearerAuth
// @Router /accounts/{id}/balance [get]
func (h *accountHandler) getAccountBalance(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	accountID := c.Param("id")

	balance, err := h.balanceService.RecalculateAccountBalance(c.Request.Context(), userID, accountID)
	if err != nil {
		respondError(c, logger.With(slog.String("target_account_id", accountID)), err, "Failed to calculate balance")
		return
	}

	c.JSON(http.StatusOK, dto.AccountBalanceResponse{AccountID: accountID, Balance: balance})
}

// getAccountLedger godoc
// @Summary Get account ledger
// @Description Lists the account's lines in date order with a running balance. With startDate the ledger opens with the balance carried forward.
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Param startDate query string false "First day (YYYY-MM-DD)"
// @Param endDate query string false "Last day (YYYY-MM-DD)"
// @Param source query string false "Comma separated source kinds"
// @Success 200 {object} domain.Ledger
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to build ledger"
// @Security BearerAuth
// @Router /accounts/{id}/ledger [get]
func (h *accountHandler) getAccountLedger(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	query, ok := bindLedgerQuery(c, logger)
	if !ok {
		return
	}

	ledger, err := h.ledgerService.GetAccountLedger(c.Request.Context(), userID, c.Param("id"), query)
	if err != nil {
		respondError(c, logger, err, "Failed to build ledger")
		return
	}
	c.JSON(http.StatusOK, ledger)
}

// listTransactions godoc
// @Summary List transactions for an account
// @Description Pages through the account's journal lines, newest first
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to list transactions"
// @Security BearerAuth
// @Router /accounts/{id}/transactions [get]
func (h *accountHandler) listTransactions(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if !bindQuery(c, logger, &params) {
		return
	}

	resp, err := h.ledgerService.ListAccountTransactions(c.Request.Context(), userID, c.Param("id"), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// recalculateAccount godoc
// @Summary Recalculate one account
// @Description Rebuilds the cached balance of the account from the journal
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to recalculate balance"
// @Security BearerAuth
// @Router /accounts/{id}/recalculate [post]
func (h *accountHandler) recalculateAccount(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	accountID := c.Param("id")

	balance, err := h.balanceService.RecalculateAccountBalance(c.Request.Context(), userID, accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to recalculate balance")
		return
	}

	logger.Info("Account balance recalculated", slog.String("target_account_id", accountID), slog.String("balance", balance.String()))
	c.JSON(http.StatusOK, dto.AccountBalanceResponse{AccountID: accountID, Balance: balance})
}

// recalculateAll godoc
// @Summary Recalculate every account
// @Description Rebuilds the cached balances of all the user's accounts. With async=true the work is queued for the worker.
// @Tags accounts
// @Produce json
// @Param async query bool false "Queue the recalculation instead of running it"
// @Success 200 {object} dto.RecalculationResponse
// @Success 202 {object} dto.RecalculationQueuedResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Recalculation already queued"
// @Failure 500 {object} dto.ErrorResponse "Failed to recalculate balances"
// @Security BearerAuth
// @Router /accounts/recalculate [post]
func (h *accountHandler) recalculateAll(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}

	async, _ := strconv.ParseBool(c.Query("async"))
	if async && h.scheduler != nil {
		taskID, err := h.scheduler.ScheduleUserRecalculation(c.Request.Context(), userID)
		if err != nil {
			respondError(c, logger, err, "Failed to queue recalculation")
			return
		}
		logger.Info("Recalculation queued", slog.String("task_id", taskID))
		c.JSON(http.StatusAccepted, dto.RecalculationQueuedResponse{TaskID: taskID, Queue: jobs.QueueDefault})
		return
	}
	if async {
		logger.Warn("Async recalculation requested without a task queue; running inline")
	}

	results, err := h.balanceService.RecalculateAllUserAccounts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to recalculate balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToRecalculationResponse(results))
}

// adjustBalance godoc
// @Summary Adjust a cached balance
// @Description Shifts the cached balance by delta without posting a journal entry. The next recalculation discards the adjustment.
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param adjustment body dto.AdjustBalanceRequest true "Delta and reason"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to adjust balance"
// @Security BearerAuth
// @Router /accounts/{id}/adjust [post]
func (h *accountHandler) adjustBalance(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	accountID := c.Param("id")
	var req dto.AdjustBalanceRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	balance, err := h.balanceService.AdjustAccountBalance(c.Request.Context(), userID, accountID, req.Delta, req.Reason)
	if err != nil {
		respondError(c, logger, err, "Failed to adjust balance")
		return
	}
	c.JSON(http.StatusOK, dto.AccountBalanceResponse{AccountID: accountID, Balance: balance})
}

// cashBankSummary godoc
// @Summary Cash and bank summary
// @Description Lists cash and bank accounts with their balances and totals
// @Tags accounts
// @Produce json
// @Success 200 {object} domain.CashBankSummary
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to build summary"
// @Security BearerAuth
// @Router /accounts/summary/cash-bank [get]
func (h *accountHandler) cashBankSummary(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}

	summary, err := h.reportingService.CashBankSummary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to build summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
