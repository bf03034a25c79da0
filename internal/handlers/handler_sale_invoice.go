package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
)

// saleInvoiceHandler handles HTTP requests related to sale invoices.
type saleInvoiceHandler struct {
	service portssvc.SaleInvoiceSvcFacade
}

// RegisterSaleInvoiceRoutes registers routes related to sale invoices.
func RegisterSaleInvoiceRoutes(rg *gin.RouterGroup, service portssvc.SaleInvoiceSvcFacade) {
	h := &saleInvoiceHandler{service: service}

	invoices := rg.Group("/sale-invoices")
	{
		invoices.POST("", h.create)
		invoices.GET("", h.list)
		invoices.GET("/next-bill-no", h.nextBillNo)
		invoices.GET("/:id", h.get)
		invoices.PUT("/:id", h.update)
		invoices.DELETE("/:id", h.delete)
		invoices.POST("/:id/payments", h.recordPayment)
	}
}

// create godoc
// @Summary Create a sale invoice
// @Description Records a sale to a customer and posts it. A paid amount also posts the receipt.
// @Tags sale-invoices
// @Accept json
// @Produce json
// @Param invoice body dto.SaleInvoiceRequest true "Invoice"
// @Success 201 {object} domain.SaleInvoice
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Customer or account not found"
// @Failure 422 {object} dto.ErrorResponse "Sales account missing"
// @Failure 500 {object} dto.ErrorResponse "Failed to create sale invoice"
// @Security BearerAuth
// @Router /sale-invoices [post]
func (h *saleInvoiceHandler) create(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.SaleInvoiceRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	invoice, err := h.service.CreateSaleInvoice(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create sale invoice")
		return
	}

	logger.Info("Sale invoice created", slog.String("invoice_id", invoice.InvoiceID), slog.String("bill_no", invoice.BillNo))
	c.JSON(http.StatusCreated, invoice)
}

// list godoc
// @Summary List sale invoices
// @Tags sale-invoices
// @Produce json
// @Param customerID query string false "Only invoices of this customer"
// @Success 200 {array} domain.SaleInvoice
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list sale invoices"
// @Security BearerAuth
// @Router /sale-invoices [get]
func (h *saleInvoiceHandler) list(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}

	invoices, err := h.service.ListSaleInvoices(c.Request.Context(), userID, optionalQuery(c, "customerID"))
	if err != nil {
		respondError(c, logger, err, "Failed to list sale invoices")
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// get godoc
// @Summary Get a sale invoice
// @Tags sale-invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} domain.SaleInvoice
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Sale invoice not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve sale invoice"
// @Security BearerAuth
// @Router /sale-invoices/{id} [get]
func (h *saleInvoiceHandler) get(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}

	invoice, err := h.service.GetSaleInvoice(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve sale invoice")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// update godoc
// @Summary Replace a sale invoice
// @Description Replaces the invoice and re-posts its entries
// @Tags sale-invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param invoice body dto.SaleInvoiceRequest true "Invoice"
// @Success 200 {object} domain.SaleInvoice
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Sale invoice not found"
// @Failure 422 {object} dto.ErrorResponse "Sales account missing"
// @Failure 500 {object} dto.ErrorResponse "Failed to update sale invoice"
// @Security BearerAuth
// @Router /sale-invoices/{id} [put]
func (h *saleInvoiceHandler) update(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.SaleInvoiceRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	invoice, err := h.service.UpdateSaleInvoice(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update sale invoice")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// delete godoc
// @Summary Delete a sale invoice
// @Description Removes the invoice and soft-deletes its journal entries
// @Tags sale-invoices
// @Param id path string true "Invoice ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Sale invoice not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete sale invoice"
// @Security BearerAuth
// @Router /sale-invoices/{id} [delete]
func (h *saleInvoiceHandler) delete(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	invoiceID := c.Param("id")

	if err := h.service.DeleteSaleInvoice(c.Request.Context(), userID, invoiceID); err != nil {
		respondError(c, logger, err, "Failed to delete sale invoice")
		return
	}

	logger.Info("Sale invoice deleted", slog.String("invoice_id", invoiceID))
	c.Status(http.StatusNoContent)
}

// recordPayment godoc
// @Summary Record a payment against a sale invoice
// @Tags sale-invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param payment body dto.RecordPaymentRequest true "Payment"
// @Success 200 {object} domain.SaleInvoice
// @Failure 400 {object} dto.ErrorResponse "Invalid input or overpayment"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Sale invoice not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to record payment"
// @Security BearerAuth
// @Router /sale-invoices/{id}/payments [post]
func (h *saleInvoiceHandler) recordPayment(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.RecordPaymentRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	invoice, err := h.service.RecordPayment(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to record payment")
		return
	}

	logger.Info("Payment recorded", slog.String("invoice_id", invoice.InvoiceID), slog.String("status", string(invoice.Status)))
	c.JSON(http.StatusOK, invoice)
}

// nextBillNo godoc
// @Summary Suggest the next bill number
// @Tags sale-invoices
// @Produce json
// @Success 200 {object} dto.NextBillNoResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to compute bill number"
// @Security BearerAuth
// @Router /sale-invoices/next-bill-no [get]
func (h *saleInvoiceHandler) nextBillNo(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}

	billNo, err := h.service.GetNextBillNo(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to compute bill number")
		return
	}
	c.JSON(http.StatusOK, dto.NextBillNoResponse{BillNo: billNo})
}
