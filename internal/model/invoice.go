package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus enum constants.
//
// RECEIVED is the entry state. Approve and flag are unguarded transitions and may
// override each other; send-for-validation only fires from RECEIVED.
const (
	InvoiceReceived = "RECEIVED"
	InvoiceApproved = "APPROVED"
	InvoiceFlagged  = "FLAGGED"
)

// Invoice represents a vendor billing record, optionally linked to a booking and
// a purchase order. Creating an invoice against a PO drives that PO to INVOICED.
// Comments is an append-only log of system actions on the invoice.
type Invoice struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// Nullable so numberless invoices stay permissible while the unique index
	// still rejects duplicated numbers (NULLs are distinct, empty strings not).
	InvoiceNumber *string         `gorm:"type:varchar(50);uniqueIndex" json:"invoice_number"`
	Vendor        string          `gorm:"type:varchar(100)" json:"vendor"`
	BookingID     *uint           `gorm:"index" json:"booking_id"`
	Booking       *MediaBooking   `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
	POID          *uint           `gorm:"index" json:"po_id"`
	PO            *PurchaseOrder  `gorm:"foreignKey:POID" json:"po,omitempty"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);default:0" json:"amount"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(18,4);default:0" json:"tax_amount"`
	Currency      string          `gorm:"type:varchar(10);default:'USD'" json:"currency"`
	Status        string          `gorm:"type:varchar(50);default:'RECEIVED';index" json:"status"`
	Comments      string          `gorm:"type:text" json:"comments"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
}
