package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus enum constants
const (
	POCreated  = "CREATED"
	POInvoiced = "INVOICED"
)

// PurchaseOrder represents a vendor commitment, optionally linked to a booking.
// po_number is globally unique; the unique index backs the pre-insert duplicate
// check so concurrent identical submissions cannot both land.
type PurchaseOrder struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	PONumber    string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"po_number"`
	Vendor      string          `gorm:"type:varchar(100);not null" json:"vendor"`
	BookingID   *uint           `gorm:"index" json:"booking_id"`
	Booking     *MediaBooking   `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,4);default:0" json:"total_amount"`
	Currency    string          `gorm:"type:varchar(10);default:'USD'" json:"currency"`
	Status      string          `gorm:"type:varchar(50);default:'CREATED';index" json:"status"`
	CreatedAt   time.Time       `gorm:"index" json:"created_at"`
}
