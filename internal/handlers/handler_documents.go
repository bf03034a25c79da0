package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
)

// documentHandler serves purchase invoices, expenses, received payments and paid bills.
type documentHandler struct {
	purchases portssvc.PurchaseInvoiceSvcFacade
	expenses  portssvc.ExpenseSvcFacade
	receipts  portssvc.ReceivePaymentSvcFacade
	bills     portssvc.PayBillSvcFacade
}

// RegisterDocumentRoutes registers the routes of the posting documents other than sale invoices.
func RegisterDocumentRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := &documentHandler{
		purchases: services.PurchaseInvoice,
		expenses:  services.Expense,
		receipts:  services.ReceivePayment,
		bills:     services.PayBill,
	}

	purchases := rg.Group("/purchase-invoices")
	{
		purchases.POST("", h.createPurchaseInvoice)
		purchases.GET("", h.listPurchaseInvoices)
		purchases.GET("/:id", h.getPurchaseInvoice)
		purchases.PUT("/:id", h.updatePurchaseInvoice)
		purchases.DELETE("/:id", h.deletePurchaseInvoice)
	}

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:id", h.getExpense)
		expenses.PUT("/:id", h.updateExpense)
		expenses.DELETE("/:id", h.deleteExpense)
	}

	receipts := rg.Group("/receive-payments")
	{
		receipts.POST("", h.createReceivePayment)
		receipts.GET("", h.listReceivePayments)
		receipts.GET("/:id", h.getReceivePayment)
		receipts.PUT("/:id", h.updateReceivePayment)
		receipts.DELETE("/:id", h.deleteReceivePayment)
	}

	bills := rg.Group("/pay-bills")
	{
		bills.POST("", h.createPayBill)
		bills.GET("", h.listPayBills)
		bills.GET("/:id", h.getPayBill)
		bills.PUT("/:id", h.updatePayBill)
		bills.DELETE("/:id", h.deletePayBill)
	}
}

// createPurchaseInvoice godoc
// @Summary Create a purchase invoice
// @Description Records a purchase and posts it. An unknown supplier name creates the supplier.
// @Tags purchase-invoices
// @Accept json
// @Produce json
// @Param invoice body dto.PurchaseInvoiceRequest true "Invoice"
// @Success 201 {object} domain.PurchaseInvoice
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 422 {object} dto.ErrorResponse "Purchases account missing"
// @Failure 500 {object} dto.ErrorResponse "Failed to create purchase invoice"
// @Security BearerAuth
// @Router /purchase-invoices [post]
func (h *documentHandler) createPurchaseInvoice(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.PurchaseInvoiceRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	invoice, err := h.purchases.CreatePurchaseInvoice(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create purchase invoice")
		return
	}

	logger.Info("Purchase invoice created", slog.String("invoice_id", invoice.InvoiceID))
	c.JSON(http.StatusCreated, invoice)
}

// listPurchaseInvoices godoc
// @Summary List purchase invoices
// @Tags purchase-invoices
// @Produce json
// @Param supplierID query string false "Only invoices of this supplier"
// @Success 200 {array} domain.PurchaseInvoice
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list purchase invoices"
// @Security BearerAuth
// @Router /purchase-invoices [get]
func (h *documentHandler) listPurchaseInvoices(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}

	invoices, err := h.purchases.ListPurchaseInvoices(c.Request.Context(), userID, optionalQuery(c, "supplierID"))
	if err != nil {
		respondError(c, logger, err, "Failed to list purchase invoices")
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// getPurchaseInvoice godoc
// @Summary Get a purchase invoice
// @Tags purchase-invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} domain.PurchaseInvoice
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Purchase invoice not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve purchase invoice"
// @Security BearerAuth
// @Router /purchase-invoices/{id} [get]
func (h *documentHandler) getPurchaseInvoice(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}

	invoice, err := h.purchases.GetPurchaseInvoice(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve purchase invoice")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// updatePurchaseInvoice godoc
// @Summary Replace a purchase invoice
// @Tags purchase-invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param invoice body dto.PurchaseInvoiceRequest true "Invoice"
// @Success 200 {object} domain.PurchaseInvoice
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Purchase invoice not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update purchase invoice"
// @Security BearerAuth
// @Router /purchase-invoices/{id} [put]
func (h *documentHandler) updatePurchaseInvoice(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.PurchaseInvoiceRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	invoice, err := h.purchases.UpdatePurchaseInvoice(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update purchase invoice")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// deletePurchaseInvoice godoc
// @Summary Delete a purchase invoice
// @Tags purchase-invoices
// @Param id path string true "Invoice ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Purchase invoice not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete purchase invoice"
// @Security BearerAuth
// @Router /purchase-invoices/{id} [delete]
func (h *documentHandler) deletePurchaseInvoice(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	if err := h.purchases.DeletePurchaseInvoice(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete purchase invoice")
		return
	}
	c.Status(http.StatusNoContent)
}

// createExpense godoc
// @Summary Create an expense
// @Description Records an expense paid from one or more accounts. The payments must add up to the amount.
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body dto.ExpenseRequest true "Expense"
// @Success 201 {object} domain.Expense
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to create expense"
// @Security BearerAuth
// @Router /expenses [post]
func (h *documentHandler) createExpense(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.ExpenseRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	expense, err := h.expenses.CreateExpense(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create expense")
		return
	}

	logger.Info("Expense created", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusCreated, expense)
}

// listExpenses godoc
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Success 200 {array} domain.Expense
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list expenses"
// @Security BearerAuth
// @Router /expenses [get]
func (h *documentHandler) listExpenses(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}

	expenses, err := h.expenses.ListExpenses(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// getExpense godoc
// @Summary Get an expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} domain.Expense
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Expense not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve expense"
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *documentHandler) getExpense(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}

	expense, err := h.expenses.GetExpense(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve expense")
		return
	}
	c.JSON(http.StatusOK, expense)
}

// updateExpense godoc
// @Summary Replace an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param expense body dto.ExpenseRequest true "Expense"
// @Success 200 {object} domain.Expense
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Expense not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update expense"
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (h *documentHandler) updateExpense(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.ExpenseRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	expense, err := h.expenses.UpdateExpense(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update expense")
		return
	}
	c.JSON(http.StatusOK, expense)
}

// deleteExpense godoc
// @Summary Delete an expense
// @Tags expenses
// @Param id path string true "Expense ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Expense not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete expense"
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *documentHandler) deleteExpense(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	if err := h.expenses.DeleteExpense(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete expense")
		return
	}
	c.Status(http.StatusNoContent)
}

// createReceivePayment godoc
// @Summary Record money received from a customer
// @Tags receive-payments
// @Accept json
// @Produce json
// @Param payment body dto.ReceivePaymentRequest true "Payment"
// @Success 201 {object} domain.ReceivePayment
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Customer or account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to record payment"
// @Security BearerAuth
// @Router /receive-payments [post]
func (h *documentHandler) createReceivePayment(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.ReceivePaymentRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	payment, err := h.receipts.CreateReceivePayment(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to record payment")
		return
	}

	logger.Info("Customer payment recorded", slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusCreated, payment)
}

// listReceivePayments godoc
// @Summary List money received from customers
// @Tags receive-payments
// @Produce json
// @Param customerID query string false "Only payments of this customer"
// @Success 200 {array} domain.ReceivePayment
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list payments"
// @Security BearerAuth
// @Router /receive-payments [get]
func (h *documentHandler) listReceivePayments(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}

	payments, err := h.receipts.ListReceivePayments(c.Request.Context(), userID, optionalQuery(c, "customerID"))
	if err != nil {
		respondError(c, logger, err, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, payments)
}

// getReceivePayment godoc
// @Summary Get a received payment
// @Tags receive-payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} domain.ReceivePayment
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve payment"
// @Security BearerAuth
// @Router /receive-payments/{id} [get]
func (h *documentHandler) getReceivePayment(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}

	payment, err := h.receipts.GetReceivePayment(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve payment")
		return
	}
	c.JSON(http.StatusOK, payment)
}

// updateReceivePayment godoc
// @Summary Replace a received payment
// @Tags receive-payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param payment body dto.ReceivePaymentRequest true "Payment"
// @Success 200 {object} domain.ReceivePayment
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update payment"
// @Security BearerAuth
// @Router /receive-payments/{id} [put]
func (h *documentHandler) updateReceivePayment(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.ReceivePaymentRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	payment, err := h.receipts.UpdateReceivePayment(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update payment")
		return
	}
	c.JSON(http.StatusOK, payment)
}

// deleteReceivePayment godoc
// @Summary Delete a received payment
// @Tags receive-payments
// @Param id path string true "Payment ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete payment"
// @Security BearerAuth
// @Router /receive-payments/{id} [delete]
func (h *documentHandler) deleteReceivePayment(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	if err := h.receipts.DeleteReceivePayment(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete payment")
		return
	}
	c.Status(http.StatusNoContent)
}

// createPayBill godoc
// @Summary Record money paid to a supplier
// @Tags pay-bills
// @Accept json
// @Produce json
// @Param payment body dto.PayBillRequest true "Payment"
// @Success 201 {object} domain.PayBill
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Supplier or account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to record bill payment"
// @Security BearerAuth
// @Router /pay-bills [post]
func (h *documentHandler) createPayBill(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.PayBillRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	payment, err := h.bills.CreatePayBill(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to record bill payment")
		return
	}

	logger.Info("Supplier payment recorded", slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusCreated, payment)
}

// listPayBills godoc
// @Summary List money paid to suppliers
// @Tags pay-bills
// @Produce json
// @Param supplierID query string false "Only payments to this supplier"
// @Success 200 {array} domain.PayBill
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list bill payments"
// @Security BearerAuth
// @Router /pay-bills [get]
func (h *documentHandler) listPayBills(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}

	payments, err := h.bills.ListPayBills(c.Request.Context(), userID, optionalQuery(c, "supplierID"))
	if err != nil {
		respondError(c, logger, err, "Failed to list bill payments")
		return
	}
	c.JSON(http.StatusOK, payments)
}

// getPayBill godoc
// @Summary Get a bill payment
// @Tags pay-bills
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} domain.PayBill
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve bill payment"
// @Security BearerAuth
// @Router /pay-bills/{id} [get]
func (h *documentHandler) getPayBill(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}

	payment, err := h.bills.GetPayBill(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve bill payment")
		return
	}
	c.JSON(http.StatusOK, payment)
}

// updatePayBill godoc
// @Summary Replace a bill payment
// @Tags pay-bills
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param payment body dto.PayBillRequest true "Payment"
// @Success 200 {object} domain.PayBill
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update bill payment"
// @Security BearerAuth
// @Router /pay-bills/{id} [put]
func (h *documentHandler) updatePayBill(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.PayBillRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	payment, err := h.bills.UpdatePayBill(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update bill payment")
		return
	}
	c.JSON(http.StatusOK, payment)
}

// deletePayBill godoc
// @Summary Delete a bill payment
// @Tags pay-bills
// @Param id path string true "Payment ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete bill payment"
// @Security BearerAuth
// @Router /pay-bills/{id} [delete]
func (h *documentHandler) deletePayBill(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	if err := h.bills.DeletePayBill(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete bill payment")
		return
	}
	c.Status(http.StatusNoContent)
}
