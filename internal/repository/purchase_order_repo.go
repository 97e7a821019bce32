package repository

import (
	"context"

	"mediabuy/internal/model"

	"gorm.io/gorm"
)

type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *model.PurchaseOrder) error
	FindByID(ctx context.Context, id uint) (*model.PurchaseOrder, error)
	ExistsByNumber(ctx context.Context, poNumber string) (bool, error)
	ListNewestFirst(ctx context.Context) ([]model.PurchaseOrder, error)
	ListByBooking(ctx context.Context, bookingID uint) ([]model.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Count(ctx context.Context) (int64, error)
}

type purchaseOrderRepository struct {
	db *gorm.DB
}

func NewPurchaseOrderRepository(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepository{db: db}
}

func (r *purchaseOrderRepository) Create(ctx context.Context, po *model.PurchaseOrder) error {
	return classify(GetDB(ctx, r.db).Create(po).Error)
}

func (r *purchaseOrderRepository) FindByID(ctx context.Context, id uint) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	if err := GetDB(ctx, r.db).First(&po, id).Error; err != nil {
		return nil, classify(err)
	}
	return &po, nil
}

func (r *purchaseOrderRepository) ExistsByNumber(ctx context.Context, poNumber string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.PurchaseOrder{}).Where("po_number = ?", poNumber).Count(&count).Error
	if err != nil {
		return false, classify(err)
	}
	return count > 0, nil
}

func (r *purchaseOrderRepository) ListNewestFirst(ctx context.Context) ([]model.PurchaseOrder, error) {
	var pos []model.PurchaseOrder
	if err := GetDB(ctx, r.db).Order("created_at desc").Find(&pos).Error; err != nil {
		return nil, classify(err)
	}
	return pos, nil
}

// ListByBooking returns purchase orders referencing a booking in insertion order.
func (r *purchaseOrderRepository) ListByBooking(ctx context.Context, bookingID uint) ([]model.PurchaseOrder, error) {
	var pos []model.PurchaseOrder
	if err := GetDB(ctx, r.db).Where("booking_id = ?", bookingID).Order("id asc").Find(&pos).Error; err != nil {
		return nil, classify(err)
	}
	return pos, nil
}

func (r *purchaseOrderRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return classify(GetDB(ctx, r.db).Model(&model.PurchaseOrder{}).Where("id = ?", id).Update("status", status).Error)
}

func (r *purchaseOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.PurchaseOrder{}).Count(&count).Error; err != nil {
		return 0, classify(err)
	}
	return count, nil
}
