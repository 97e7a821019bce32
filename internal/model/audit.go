package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionCreateBooking  = "CREATE_BOOKING"
	ActionCreatePO       = "CREATE_PURCHASE_ORDER"
	ActionCreateInvoice  = "CREATE_INVOICE"
	ActionApproveInvoice = "APPROVE_INVOICE"
	ActionFlagInvoice    = "FLAG_INVOICE"
	ActionSendInvoice    = "SEND_INVOICE"
	ActionPOInvoiced     = "PO_MARKED_INVOICED"
)

// AuditLog tracks What and When for every mutating workflow operation. UserID is
// nullable because most writes come from unauthenticated automation callers.
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:text" json:"details"` // serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
