// Package repository provides data access over GORM. The sentinel errors below
// are reused across repositories so handlers can translate storage failures into
// HTTP statuses without inspecting driver-specific errors.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a referenced record does not exist. Handlers
// translate this into an HTTP 404 response.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when an insert collides with an existing unique key,
// such as a duplicate po_number. Handlers translate this into an HTTP 409.
var ErrConflict = errors.New("duplicate key")

// classify maps raw GORM errors onto the repository sentinels so callers never
// depend on gorm error values directly.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}
