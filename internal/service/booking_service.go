package service

import (
	"context"
	"strconv"
	"time"

	"mediabuy/internal/model"
	"mediabuy/internal/repository"
	ws "mediabuy/internal/websocket"
	"mediabuy/pkg/payload"
)

// --- DTOs ---

type BookingResponse struct {
	ID           uint    `json:"id"`
	CampaignName string  `json:"campaign_name"`
	Channel      string  `json:"channel"`
	Market       string  `json:"market"`
	Vendor       string  `json:"vendor"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	UnitRate     float64 `json:"unit_rate"`
	Units        int     `json:"units"`
	Budget       float64 `json:"budget"`
	Currency     string  `json:"currency"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
}

// BookingPORef is the per-order summary returned by the has-po check.
type BookingPORef struct {
	ID        uint    `json:"id"`
	PONumber  string  `json:"po_number"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"created_at"`
}

type BookingPOCheck struct {
	BookingID      uint           `json:"booking_id"`
	HasPO          bool           `json:"has_po"`
	POCount        int            `json:"po_count"`
	PurchaseOrders []BookingPORef `json:"purchase_orders"`
}

// --- Interface ---

type BookingService interface {
	CreateBooking(ctx context.Context, fields *payload.Fields) (*model.MediaBooking, error)
	GetBooking(ctx context.Context, id uint) (*model.MediaBooking, error)
	ListBookings(ctx context.Context) ([]model.MediaBooking, error)
	CheckPurchaseOrders(ctx context.Context, bookingID uint) (BookingPOCheck, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	poRepo      repository.PurchaseOrderRepository
	auditRepo   repository.AuditRepository
	hub         *ws.Hub
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	poRepo repository.PurchaseOrderRepository,
	auditRepo repository.AuditRepository,
	hub *ws.Hub,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		poRepo:      poRepo,
		auditRepo:   auditRepo,
		hub:         hub,
	}
}

// --- Implementation ---

// CreateBooking persists a booking from the flat request fields. Numeric fields
// default to zero when absent or empty; campaign_name and channel are stored as
// given without required-field validation.
func (s *bookingService) CreateBooking(ctx context.Context, fields *payload.Fields) (*model.MediaBooking, error) {
	booking := model.MediaBooking{
		CampaignName: fields.String("campaign_name"),
		Channel:      fields.String("channel"),
		Market:       fields.String("market"),
		Vendor:       fields.String("vendor"),
		StartDate:    fields.String("start_date"),
		EndDate:      fields.String("end_date"),
		UnitRate:     fields.Decimal("unit_rate"),
		Units:        fields.Int("units"),
		Budget:       fields.Decimal("budget"),
		Currency:     fields.StringOr("currency", model.DefaultCurrency),
		Status:       fields.StringOr("status", model.BookingPlanned),
	}
	if err := fields.Err(); err != nil {
		return nil, ValidationError(err.Error())
	}

	if err := s.bookingRepo.Create(ctx, &booking); err != nil {
		return nil, err
	}

	writeAudit(ctx, s.auditRepo, model.ActionCreateBooking, strconv.Itoa(int(booking.ID)), booking.CampaignName, booking)
	s.hub.Publish(ws.Event{Event: "booking.created", Entity: "media_booking", ID: booking.ID, Status: booking.Status})

	return &booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uint) (*model.MediaBooking, error) {
	return s.bookingRepo.FindByID(ctx, id)
}

func (s *bookingService) ListBookings(ctx context.Context) ([]model.MediaBooking, error) {
	return s.bookingRepo.ListNewestFirst(ctx)
}

// CheckPurchaseOrders reports whether any purchase orders reference the booking,
// with a per-order summary in insertion order.
func (s *bookingService) CheckPurchaseOrders(ctx context.Context, bookingID uint) (BookingPOCheck, error) {
	if _, err := s.bookingRepo.FindByID(ctx, bookingID); err != nil {
		return BookingPOCheck{}, err
	}

	pos, err := s.poRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		return BookingPOCheck{}, err
	}

	refs := make([]BookingPORef, 0, len(pos))
	for _, po := range pos {
		refs = append(refs, BookingPORef{
			ID:        po.ID,
			PONumber:  po.PONumber,
			Status:    po.Status,
			Amount:    po.TotalAmount.InexactFloat64(),
			CreatedAt: po.CreatedAt.Format(time.RFC3339),
		})
	}

	return BookingPOCheck{
		BookingID:      bookingID,
		HasPO:          len(pos) > 0,
		POCount:        len(pos),
		PurchaseOrders: refs,
	}, nil
}

// --- Mapping ---

func ToBookingResponse(b model.MediaBooking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		CampaignName: b.CampaignName,
		Channel:      b.Channel,
		Market:       b.Market,
		Vendor:       b.Vendor,
		StartDate:    b.StartDate,
		EndDate:      b.EndDate,
		UnitRate:     b.UnitRate.InexactFloat64(),
		Units:        b.Units,
		Budget:       b.Budget.InexactFloat64(),
		Currency:     b.Currency,
		Status:       b.Status,
		CreatedAt:    b.CreatedAt.Format(time.RFC3339),
	}
}
