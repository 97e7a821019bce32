package repository

import (
	"context"

	"mediabuy/internal/model"

	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.MediaBooking) error
	FindByID(ctx context.Context, id uint) (*model.MediaBooking, error)
	ListNewestFirst(ctx context.Context) ([]model.MediaBooking, error)
	Count(ctx context.Context) (int64, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *model.MediaBooking) error {
	return classify(GetDB(ctx, r.db).Create(booking).Error)
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*model.MediaBooking, error) {
	var booking model.MediaBooking
	if err := GetDB(ctx, r.db).First(&booking, id).Error; err != nil {
		return nil, classify(err)
	}
	return &booking, nil
}

func (r *bookingRepository) ListNewestFirst(ctx context.Context) ([]model.MediaBooking, error) {
	var bookings []model.MediaBooking
	if err := GetDB(ctx, r.db).Order("created_at desc").Find(&bookings).Error; err != nil {
		return nil, classify(err)
	}
	return bookings, nil
}

func (r *bookingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.MediaBooking{}).Count(&count).Error; err != nil {
		return 0, classify(err)
	}
	return count, nil
}
