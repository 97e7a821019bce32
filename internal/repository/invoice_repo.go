package repository

import (
	"context"

	"mediabuy/internal/model"

	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	FindByID(ctx context.Context, id uint) (*model.Invoice, error)
	ListNewestFirst(ctx context.Context) ([]model.Invoice, error)
	Update(ctx context.Context, invoice *model.Invoice) error
	Count(ctx context.Context) (int64, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	return classify(GetDB(ctx, r.db).Create(invoice).Error)
}

func (r *invoiceRepository) FindByID(ctx context.Context, id uint) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := GetDB(ctx, r.db).First(&invoice, id).Error; err != nil {
		return nil, classify(err)
	}
	return &invoice, nil
}

func (r *invoiceRepository) ListNewestFirst(ctx context.Context) ([]model.Invoice, error) {
	var invoices []model.Invoice
	if err := GetDB(ctx, r.db).Order("created_at desc").Find(&invoices).Error; err != nil {
		return nil, classify(err)
	}
	return invoices, nil
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *model.Invoice) error {
	return classify(GetDB(ctx, r.db).Save(invoice).Error)
}

func (r *invoiceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.Invoice{}).Count(&count).Error; err != nil {
		return 0, classify(err)
	}
	return count, nil
}
