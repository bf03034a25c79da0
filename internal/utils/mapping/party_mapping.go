package mapping

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/models"
)

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:     d.CustomerID,
		UserID:         d.UserID,
		Name:           d.Name,
		Email:          d.Email,
		Phone:          d.Phone,
		Address:        d.Address,
		CustomerType:   d.Type,
		OpeningBalance: d.OpeningBalance,
		AccountID:      d.AccountID,
		SoftDelete:     models.SoftDelete{IsDeleted: d.IsDeleted},
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:     m.CustomerID,
		UserID:         m.UserID,
		Name:           m.Name,
		Email:          m.Email,
		Phone:          m.Phone,
		Address:        m.Address,
		Type:           m.CustomerType,
		OpeningBalance: m.OpeningBalance,
		AccountID:      m.AccountID,
		IsDeleted:      m.IsDeleted,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSupplier converts a domain Supplier to a model Supplier
func ToModelSupplier(d domain.Supplier) models.Supplier {
	return models.Supplier{
		SupplierID:     d.SupplierID,
		UserID:         d.UserID,
		Name:           d.Name,
		Email:          d.Email,
		Phone:          d.Phone,
		Address:        d.Address,
		Notes:          d.Notes,
		SupplierType:   d.SupplierType,
		OpeningBalance: d.OpeningBalance,
		AccountID:      d.AccountID,
		SoftDelete:     models.SoftDelete{IsDeleted: d.IsDeleted},
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSupplier converts a model Supplier to a domain Supplier
func ToDomainSupplier(m models.Supplier) domain.Supplier {
	return domain.Supplier{
		SupplierID:     m.SupplierID,
		UserID:         m.UserID,
		Name:           m.Name,
		Email:          m.Email,
		Phone:          m.Phone,
		Address:        m.Address,
		Notes:          m.Notes,
		SupplierType:   m.SupplierType,
		OpeningBalance: m.OpeningBalance,
		AccountID:      m.AccountID,
		IsDeleted:      m.IsDeleted,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
