package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus enum constants
const (
	BookingPlanned   = "PLANNED"
	BookingBooked    = "BOOKED"
	BookingCancelled = "CANCELLED"
)

// DefaultCurrency is applied whenever a caller omits the currency field.
const DefaultCurrency = "USD"

// MediaBooking represents a planned media buy (campaign, channel, vendor, budget).
// Purchase orders and invoices optionally reference a booking.
type MediaBooking struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CampaignName string          `gorm:"type:varchar(200)" json:"campaign_name"`
	Channel      string          `gorm:"type:varchar(50)" json:"channel"`
	Market       string          `gorm:"type:varchar(100)" json:"market"`
	Vendor       string          `gorm:"type:varchar(100)" json:"vendor"`
	StartDate    string          `gorm:"type:varchar(20)" json:"start_date"`
	EndDate      string          `gorm:"type:varchar(20)" json:"end_date"`
	UnitRate     decimal.Decimal `gorm:"type:decimal(18,4);default:0" json:"unit_rate"`
	Units        int             `gorm:"default:0" json:"units"`
	Budget       decimal.Decimal `gorm:"type:decimal(18,4);default:0" json:"budget"`
	Currency     string          `gorm:"type:varchar(10);default:'USD'" json:"currency"`
	Status       string          `gorm:"type:varchar(50);default:'PLANNED';index" json:"status"`
	CreatedAt    time.Time       `gorm:"index" json:"created_at"`
}
