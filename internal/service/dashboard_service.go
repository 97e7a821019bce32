package service

import (
	"context"

	"mediabuy/internal/repository"
)

// DashboardCounts mirrors the landing-page tiles: one count per entity.
type DashboardCounts struct {
	Bookings       int64 `json:"bookings"`
	PurchaseOrders int64 `json:"pos"`
	Invoices       int64 `json:"invoices"`
}

type DashboardService interface {
	GetCounts(ctx context.Context) (DashboardCounts, error)
}

type dashboardService struct {
	bookingRepo repository.BookingRepository
	poRepo      repository.PurchaseOrderRepository
	invoiceRepo repository.InvoiceRepository
}

func NewDashboardService(
	bookingRepo repository.BookingRepository,
	poRepo repository.PurchaseOrderRepository,
	invoiceRepo repository.InvoiceRepository,
) DashboardService {
	return &dashboardService{
		bookingRepo: bookingRepo,
		poRepo:      poRepo,
		invoiceRepo: invoiceRepo,
	}
}

func (s *dashboardService) GetCounts(ctx context.Context) (DashboardCounts, error) {
	var counts DashboardCounts
	var err error

	if counts.Bookings, err = s.bookingRepo.Count(ctx); err != nil {
		return DashboardCounts{}, err
	}
	if counts.PurchaseOrders, err = s.poRepo.Count(ctx); err != nil {
		return DashboardCounts{}, err
	}
	if counts.Invoices, err = s.invoiceRepo.Count(ctx); err != nil {
		return DashboardCounts{}, err
	}

	return counts, nil
}
