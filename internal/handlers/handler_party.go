package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
)

// customerHandler handles HTTP requests related to customers.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
	ledgerService   portssvc.LedgerSvc
}

// supplierHandler handles HTTP requests related to suppliers.
type supplierHandler struct {
	supplierService portssvc.SupplierSvcFacade
	ledgerService   portssvc.LedgerSvc
}

// RegisterPartyRoutes registers the customer and supplier routes.
func RegisterPartyRoutes(rg *gin.RouterGroup, customers portssvc.CustomerSvcFacade, suppliers portssvc.SupplierSvcFacade, ledger portssvc.LedgerSvc) {
	ch := &customerHandler{customerService: customers, ledgerService: ledger}
	cg := rg.Group("/customers")
	{
		cg.POST("", ch.createCustomer)
		cg.GET("", ch.listCustomers)
		cg.GET("/:id", ch.getCustomer)
		cg.PUT("/:id", ch.updateCustomer)
		cg.DELETE("/:id", ch.deleteCustomer)
		cg.GET("/:id/balance", ch.getCustomerBalance)
		cg.GET("/:id/ledger", ch.getCustomerLedger)
	}

	sh := &supplierHandler{supplierService: suppliers, ledgerService: ledger}
	sg := rg.Group("/suppliers")
	{
		sg.POST("", sh.createSupplier)
		sg.GET("", sh.listSuppliers)
		sg.GET("/:id", sh.getSupplier)
		sg.PUT("/:id", sh.updateSupplier)
		sg.DELETE("/:id", sh.deleteSupplier)
		sg.GET("/:id/balance", sh.getSupplierBalance)
		sg.GET("/:id/ledger", sh.getSupplierLedger)
	}
}

// createCustomer godoc
// @Summary Create a customer
// @Description Creates a customer with its receivable account. A positive opening balance is posted.
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} domain.Customer
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to create customer"
// @Security BearerAuth
// @Router /customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.CreateCustomerRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create customer")
		return
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	c.JSON(http.StatusCreated, customer)
}

// listCustomers godoc
// @Summary List customers
// @Tags customers
// @Produce json
// @Param search query string false "Matches name, email or phone"
// @Success 200 {object} dto.ListCustomersResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list customers"
// @Security BearerAuth
// @Router /customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var params dto.SearchParams
	if !bindQuery(c, logger, &params) {
		return
	}

	customers, err := h.customerService.ListCustomers(c.Request.Context(), userID, params.Search)
	if err != nil {
		respondError(c, logger, err, "Failed to list customers")
		return
	}
	c.JSON(http.StatusOK, dto.ListCustomersResponse{Customers: customers})
}

// getCustomer godoc
// @Summary Get a customer
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} domain.Customer
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve customer"
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// updateCustomer godoc
// @Summary Update a customer
// @Description Updates customer details. A changed opening balance is re-posted.
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param customer body dto.UpdateCustomerRequest true "Fields to change"
// @Success 200 {object} domain.Customer
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update customer"
// @Security BearerAuth
// @Router /customers/{id} [put]
func (h *customerHandler) updateCustomer(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.UpdateCustomerRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// deleteCustomer godoc
// @Summary Delete a customer
// @Description Soft-deletes a customer whose account carries no postings besides its opening balance
// @Tags customers
// @Param id path string true "Customer ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 409 {object} dto.ErrorResponse "Customer has postings"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete customer"
// @Security BearerAuth
// @Router /customers/{id} [delete]
func (h *customerHandler) deleteCustomer(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	customerID := c.Param("id")

	if err := h.customerService.DeleteCustomer(c.Request.Context(), userID, customerID); err != nil {
		respondError(c, logger, err, "Failed to delete customer")
		return
	}

	logger.Info("Customer deleted", slog.String("customer_id", customerID))
	c.Status(http.StatusNoContent)
}

// getCustomerBalance godoc
// @Summary Get customer balance
// @Description Recalculates the balance of the customer's account
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.PartyBalanceResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to calculate balance"
// @Security BearerAuth
// @Router /customers/{id}/balance [get]
func (h *customerHandler) getCustomerBalance(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	customerID := c.Param("id")

	customer, err := h.customerService.GetCustomer(c.Request.Context(), userID, customerID)
	if err != nil {
		respondError(c, logger, err, "Failed to calculate balance")
		return
	}
	balance, err := h.customerService.GetCustomerBalance(c.Request.Context(), userID, customerID)
	if err != nil {
		respondError(c, logger, err, "Failed to calculate balance")
		return
	}
	c.JSON(http.StatusOK, dto.PartyBalanceResponse{PartyID: customerID, AccountID: customer.AccountID, Balance: balance})
}

// getCustomerLedger godoc
// @Summary Get customer ledger
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Param startDate query string false "First day (YYYY-MM-DD)"
// @Param endDate query string false "Last day (YYYY-MM-DD)"
// @Param source query string false "Comma separated source kinds"
// @Success 200 {object} domain.Ledger
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to build ledger"
// @Security BearerAuth
// @Router /customers/{id}/ledger [get]
func (h *customerHandler) getCustomerLedger(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	query, ok := bindLedgerQuery(c, logger)
	if !ok {
		return
	}

	ledger, err := h.ledgerService.GetCustomerLedger(c.Request.Context(), userID, c.Param("id"), query)
	if err != nil {
		respondError(c, logger, err, "Failed to build ledger")
		return
	}
	c.JSON(http.StatusOK, ledger)
}

// createSupplier godoc
// @Summary Create a supplier
// @Description Creates a supplier with its payable account. A positive opening balance is posted.
// @Tags suppliers
// @Accept json
// @Produce json
// @Param supplier body dto.CreateSupplierRequest true "Supplier details"
// @Success 201 {object} domain.Supplier
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Supplier already exists"
// @Failure 500 {object} dto.ErrorResponse "Failed to create supplier"
// @Security BearerAuth
// @Router /suppliers [post]
func (h *supplierHandler) createSupplier(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.CreateSupplierRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create supplier")
		return
	}

	logger.Info("Supplier created", slog.String("supplier_id", supplier.SupplierID))
	c.JSON(http.StatusCreated, supplier)
}

// listSuppliers godoc
// @Summary List suppliers
// @Tags suppliers
// @Produce json
// @Param search query string false "Matches name, email or phone"
// @Success 200 {object} dto.ListSuppliersResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list suppliers"
// @Security BearerAuth
// @Router /suppliers [get]
func (h *supplierHandler) listSuppliers(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var params dto.SearchParams
	if !bindQuery(c, logger, &params) {
		return
	}

	suppliers, err := h.supplierService.ListSuppliers(c.Request.Context(), userID, params.Search)
	if err != nil {
		respondError(c, logger, err, "Failed to list suppliers")
		return
	}
	c.JSON(http.StatusOK, dto.ListSuppliersResponse{Suppliers: suppliers})
}

// getSupplier godoc
// @Summary Get a supplier
// @Tags suppliers
// @Produce json
// @Param id path string true "Supplier ID"
// @Success 200 {object} domain.Supplier
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Supplier not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve supplier"
// @Security BearerAuth
// @Router /suppliers/{id} [get]
func (h *supplierHandler) getSupplier(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}

	supplier, err := h.supplierService.GetSupplier(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve supplier")
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// updateSupplier godoc
// @Summary Update a supplier
// @Description Updates supplier details. A changed opening balance is re-posted.
// @Tags suppliers
// @Accept json
// @Produce json
// @Param id path string true "Supplier ID"
// @Param supplier body dto.UpdateSupplierRequest true "Fields to change"
// @Success 200 {object} domain.Supplier
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Supplier not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update supplier"
// @Security BearerAuth
// @Router /suppliers/{id} [put]
func (h *supplierHandler) updateSupplier(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.UpdateSupplierRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update supplier")
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// deleteSupplier godoc
// @Summary Delete a supplier
// @Description Soft-deletes a supplier whose account carries no postings besides its opening balance
// @Tags suppliers
// @Param id path string true "Supplier ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Supplier not found"
// @Failure 409 {object} dto.ErrorResponse "Supplier has postings"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete supplier"
// @Security BearerAuth
// @Router /suppliers/{id} [delete]
func (h *supplierHandler) deleteSupplier(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	supplierID := c.Param("id")

	if err := h.supplierService.DeleteSupplier(c.Request.Context(), userID, supplierID); err != nil {
		respondError(c, logger, err, "Failed to delete supplier")
		return
	}

	logger.Info("Supplier deleted", slog.String("supplier_id", supplierID))
	c.Status(http.StatusNoContent)
}

// getSupplierBalance godoc
// @Summary Get supplier balance
// @Description Recalculates the balance of the supplier's account
// @Tags suppliers
// @Produce json
// @Param id path string true "Supplier ID"
// @Success 200 {object} dto.PartyBalanceResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Supplier not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to calculate balance"
// @Security BearerAuth
// @Router /suppliers/{id}/balance [get]
func (h *supplierHandler) getSupplierBalance(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	supplierID := c.Param("id")

	supplier, err := h.supplierService.GetSupplier(c.Request.Context(), userID, supplierID)
	if err != nil {
		respondError(c, logger, err, "Failed to calculate balance")
		return
	}
	balance, err := h.supplierService.GetSupplierBalance(c.Request.Context(), userID, supplierID)
	if err != nil {
		respondError(c, logger, err, "Failed to calculate balance")
		return
	}
	c.JSON(http.StatusOK, dto.PartyBalanceResponse{PartyID: supplierID, AccountID: supplier.AccountID, Balance: balance})
}

// getSupplierLedger godoc
// @Summary Get supplier ledger
// @Tags suppliers
// @Produce json
// @Param id path string true "Supplier ID"
// @Param startDate query string false "First day (YYYY-MM-DD)"
// @Param endDate query string false "Last day (YYYY-MM-DD)"
// @Param source query string false "Comma separated source kinds"
// @Success 200 {object} domain.Ledger
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Supplier not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to build ledger"
// @Security BearerAuth
// @Router /suppliers/{id}/ledger [get]
func (h *supplierHandler) getSupplierLedger(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	query, ok := bindLedgerQuery(c, logger)
	if !ok {
		return
	}

	ledger, err := h.ledgerService.GetSupplierLedger(c.Request.Context(), userID, c.Param("id"), query)
	if err != nil {
		respondError(c, logger, err, "Failed to build ledger")
		return
	}
	c.JSON(http.StatusOK, ledger)
}
