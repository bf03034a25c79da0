package domain

import "fmt"

// SourceKind names the kind of business record that produced a journal entry.
type SourceKind string

const (
	SourceManual          SourceKind = "manual"
	SourceSaleInvoice     SourceKind = "sale_invoice"
	SourcePurchaseInvoice SourceKind = "purchase_invoice"
	SourceExpense         SourceKind = "expense"
	SourcePayBill         SourceKind = "pay_bill"
	SourceReceivePayment  SourceKind = "receive_payment"
	SourceSupplier        SourceKind = "supplier"
	SourceOpeningBalance  SourceKind = "opening_balance"
)

// SourceKinds lists every kind, in declaration order.
var SourceKinds = []SourceKind{
	SourceManual,
	SourceSaleInvoice,
	SourcePurchaseInvoice,
	SourceExpense,
	SourcePayBill,
	SourceReceivePayment,
	SourceSupplier,
	SourceOpeningBalance,
}

// ParseSourceKind converts a stored or user supplied string into a SourceKind.
func ParseSourceKind(s string) (SourceKind, error) {
	for _, k := range SourceKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown source kind %q", s)
}

// SourceRef links a journal entry back to the record that produced it.
// Manual entries carry no id; every other kind must.
type SourceRef struct {
	Kind SourceKind `json:"kind"`
	ID   string     `json:"id,omitempty"`
}

// ManualSource is the source of entries keyed in directly by a user.
func ManualSource() SourceRef {
	return SourceRef{Kind: SourceManual}
}

// SourceOf builds a reference to a business record.
func SourceOf(kind SourceKind, id string) SourceRef {
	return SourceRef{Kind: kind, ID: id}
}

// IsManual reports whether the entry was keyed in directly.
func (s SourceRef) IsManual() bool {
	return s.Kind == SourceManual
}

// Validate checks the kind is known and the id presence matches the kind.
func (s SourceRef) Validate() error {
	if _, err := ParseSourceKind(string(s.Kind)); err != nil {
		return err
	}
	if s.Kind == SourceManual {
		if s.ID != "" {
			return fmt.Errorf("manual source must not carry a reference id")
		}
		return nil
	}
	if s.ID == "" {
		return fmt.Errorf("source %s requires a reference id", s.Kind)
	}
	return nil
}

func (s SourceRef) String() string {
	if s.ID == "" {
		return string(s.Kind)
	}
	return string(s.Kind) + ":" + s.ID
}
