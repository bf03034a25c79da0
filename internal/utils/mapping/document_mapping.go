package mapping

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/models"
)

func toModelItems(items []domain.InvoiceItem) []models.InvoiceItem {
	out := make([]models.InvoiceItem, len(items))
	for i, it := range items {
		out[i] = models.InvoiceItem(it)
	}
	return out
}

func toDomainItems(items []models.InvoiceItem) []domain.InvoiceItem {
	out := make([]domain.InvoiceItem, len(items))
	for i, it := range items {
		out[i] = domain.InvoiceItem(it)
	}
	return out
}

// ToModelSaleInvoice converts a domain SaleInvoice to a model SaleInvoice
func ToModelSaleInvoice(d domain.SaleInvoice) models.SaleInvoice {
	return models.SaleInvoice{
		InvoiceID:        d.InvoiceID,
		UserID:           d.UserID,
		CustomerID:       d.CustomerID,
		BillNo:           d.BillNo,
		InvoiceDate:      d.Date,
		InvoiceTime:      d.Time,
		Items:            toModelItems(d.Items),
		TotalAmount:      d.TotalAmount,
		PaidAmount:       d.PaidAmount,
		PaymentAccountID: d.PaymentAccountID,
		PaymentType:      d.PaymentType,
		Status:           string(d.Status),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSaleInvoice converts a model SaleInvoice to a domain SaleInvoice
func ToDomainSaleInvoice(m models.SaleInvoice) domain.SaleInvoice {
	return domain.SaleInvoice{
		InvoiceID:        m.InvoiceID,
		UserID:           m.UserID,
		CustomerID:       m.CustomerID,
		BillNo:           m.BillNo,
		Date:             m.InvoiceDate,
		Time:             m.InvoiceTime,
		Items:            toDomainItems(m.Items),
		TotalAmount:      m.TotalAmount,
		PaidAmount:       m.PaidAmount,
		PaymentAccountID: m.PaymentAccountID,
		PaymentType:      m.PaymentType,
		Status:           domain.InvoiceStatus(m.Status),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPurchaseInvoice converts a domain PurchaseInvoice to a model PurchaseInvoice
func ToModelPurchaseInvoice(d domain.PurchaseInvoice) models.PurchaseInvoice {
	return models.PurchaseInvoice{
		InvoiceID:        d.InvoiceID,
		UserID:           d.UserID,
		SupplierID:       d.SupplierID,
		BillNo:           d.BillNo,
		InvoiceDate:      d.Date,
		Items:            toModelItems(d.Items),
		GrandTotal:       d.GrandTotal,
		PaidAmount:       d.PaidAmount,
		PaymentAccountID: d.PaymentAccountID,
		Status:           string(d.Status),
		SoftDelete:       models.SoftDelete{IsDeleted: d.IsDeleted},
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPurchaseInvoice converts a model PurchaseInvoice to a domain PurchaseInvoice
func ToDomainPurchaseInvoice(m models.PurchaseInvoice) domain.PurchaseInvoice {
	return domain.PurchaseInvoice{
		InvoiceID:        m.InvoiceID,
		UserID:           m.UserID,
		SupplierID:       m.SupplierID,
		BillNo:           m.BillNo,
		Date:             m.InvoiceDate,
		Items:            toDomainItems(m.Items),
		GrandTotal:       m.GrandTotal,
		PaidAmount:       m.PaidAmount,
		PaymentAccountID: m.PaymentAccountID,
		Status:           domain.InvoiceStatus(m.Status),
		IsDeleted:        m.IsDeleted,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	payments := make([]models.ExpensePayment, len(d.Payments))
	for i, p := range d.Payments {
		payments[i] = models.ExpensePayment(p)
	}
	return models.Expense{
		ExpenseID:         d.ExpenseID,
		UserID:            d.UserID,
		ExpenseDate:       d.Date,
		Description:       d.Description,
		CategoryAccountID: d.CategoryAccountID,
		Amount:            d.Amount,
		Payments:          payments,
		SoftDelete:        models.SoftDelete{IsDeleted: d.IsDeleted},
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	payments := make([]domain.ExpensePayment, len(m.Payments))
	for i, p := range m.Payments {
		payments[i] = domain.ExpensePayment(p)
	}
	return domain.Expense{
		ExpenseID:         m.ExpenseID,
		UserID:            m.UserID,
		Date:              m.ExpenseDate,
		Description:       m.Description,
		CategoryAccountID: m.CategoryAccountID,
		Amount:            m.Amount,
		Payments:          payments,
		IsDeleted:         m.IsDeleted,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelReceivePayment converts a domain ReceivePayment to a model ReceivePayment
func ToModelReceivePayment(d domain.ReceivePayment) models.ReceivePayment {
	return models.ReceivePayment{
		PaymentID:   d.PaymentID,
		UserID:      d.UserID,
		CustomerID:  d.CustomerID,
		AccountID:   d.AccountID,
		Amount:      d.Amount,
		PaymentDate: d.Date,
		BillNo:      d.BillNo,
		Description: d.Description,
		SoftDelete:  models.SoftDelete{IsDeleted: d.IsDeleted},
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReceivePayment converts a model ReceivePayment to a domain ReceivePayment
func ToDomainReceivePayment(m models.ReceivePayment) domain.ReceivePayment {
	return domain.ReceivePayment{
		PaymentID:   m.PaymentID,
		UserID:      m.UserID,
		CustomerID:  m.CustomerID,
		AccountID:   m.AccountID,
		Amount:      m.Amount,
		Date:        m.PaymentDate,
		BillNo:      m.BillNo,
		Description: m.Description,
		IsDeleted:   m.IsDeleted,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPayBill converts a domain PayBill to a model PayBill
func ToModelPayBill(d domain.PayBill) models.PayBill {
	return models.PayBill{
		PaymentID:   d.PaymentID,
		UserID:      d.UserID,
		SupplierID:  d.SupplierID,
		AccountID:   d.AccountID,
		Amount:      d.Amount,
		PaymentDate: d.Date,
		Description: d.Description,
		SoftDelete:  models.SoftDelete{IsDeleted: d.IsDeleted},
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayBill converts a model PayBill to a domain PayBill
func ToDomainPayBill(m models.PayBill) domain.PayBill {
	return domain.PayBill{
		PaymentID:   m.PaymentID,
		UserID:      m.UserID,
		SupplierID:  m.SupplierID,
		AccountID:   m.AccountID,
		Amount:      m.Amount,
		Date:        m.PaymentDate,
		Description: m.Description,
		IsDeleted:   m.IsDeleted,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
