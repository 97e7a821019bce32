package database

import (
	"log"

	"mediabuy/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM.
//
// Foreign-key constraints are intentionally not created: bookings referenced by
// purchase orders and invoices may be absent, and the workflow tolerates
// dangling references rather than rejecting writes.
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}

// Migrate auto-migrates the workflow schema. Exposed separately so tests can run
// it against their own database handles.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.MediaBooking{},
		&model.PurchaseOrder{},
		&model.Invoice{},
		&model.User{},
		&model.AuditLog{},
	)
}
