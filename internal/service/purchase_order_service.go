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

type PurchaseOrderResponse struct {
	ID          uint    `json:"id"`
	PONumber    string  `json:"po_number"`
	Vendor      string  `json:"vendor"`
	BookingID   *uint   `json:"booking_id"`
	TotalAmount float64 `json:"total_amount"`
	Currency    string  `json:"currency"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

// --- Interface ---

type PurchaseOrderService interface {
	CreatePurchaseOrder(ctx context.Context, fields *payload.Fields) (*model.PurchaseOrder, error)
	CreatePurchaseOrderForBooking(ctx context.Context, fields *payload.Fields) (*model.PurchaseOrder, error)
	GetPurchaseOrder(ctx context.Context, id uint) (*model.PurchaseOrder, error)
	ListPurchaseOrders(ctx context.Context) ([]model.PurchaseOrder, error)
}

type purchaseOrderService struct {
	poRepo      repository.PurchaseOrderRepository
	bookingRepo repository.BookingRepository
	auditRepo   repository.AuditRepository
	hub         *ws.Hub
}

func NewPurchaseOrderService(
	poRepo repository.PurchaseOrderRepository,
	bookingRepo repository.BookingRepository,
	auditRepo repository.AuditRepository,
	hub *ws.Hub,
) PurchaseOrderService {
	return &purchaseOrderService{
		poRepo:      poRepo,
		bookingRepo: bookingRepo,
		auditRepo:   auditRepo,
		hub:         hub,
	}
}

// --- Implementation ---

// CreatePurchaseOrder handles the dual-mode creation path: po_number and vendor
// are required, a duplicate po_number is a conflict, and booking_id is stored
// without an existence check.
func (s *purchaseOrderService) CreatePurchaseOrder(ctx context.Context, fields *payload.Fields) (*model.PurchaseOrder, error) {
	poNumber := fields.String("po_number")
	if poNumber == "" {
		return nil, ValidationError("po_number is required")
	}

	vendor := fields.String("vendor")
	if vendor == "" {
		return nil, ValidationError("vendor is required")
	}

	exists, err := s.poRepo.ExistsByNumber(ctx, poNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repository.ErrConflict
	}

	po := model.PurchaseOrder{
		PONumber:    poNumber,
		Vendor:      vendor,
		BookingID:   fields.IDRef("booking_id"),
		TotalAmount: fields.Decimal("total_amount"),
		Currency:    fields.StringOr("currency", model.DefaultCurrency),
		Status:      fields.StringOr("status", model.POCreated),
	}
	if err := fields.Err(); err != nil {
		return nil, ValidationError(err.Error())
	}

	return s.persist(ctx, &po)
}

// CreatePurchaseOrderForBooking handles the automation API path: booking_id is
// mandatory and must resolve, po_number is auto-generated from the current Unix
// timestamp when omitted, and vendor falls back to the booking's vendor.
func (s *purchaseOrderService) CreatePurchaseOrderForBooking(ctx context.Context, fields *payload.Fields) (*model.PurchaseOrder, error) {
	bookingRef := fields.IDRef("booking_id")
	if bookingRef == nil {
		return nil, ValidationError("booking_id is required")
	}

	booking, err := s.bookingRepo.FindByID(ctx, *bookingRef)
	if err != nil {
		return nil, err
	}

	poNumber := fields.String("po_number")
	if poNumber != "" {
		exists, err := s.poRepo.ExistsByNumber(ctx, poNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, repository.ErrConflict
		}
	} else {
		// Whole-second granularity: bursts within the same second can collide
		// and surface as a conflict from the unique index.
		poNumber = "PO-" + strconv.FormatInt(time.Now().Unix(), 10)
	}

	vendor := fields.StringOr("vendor", booking.Vendor)
	if vendor == "" {
		return nil, ValidationError("vendor is required")
	}

	po := model.PurchaseOrder{
		PONumber:    poNumber,
		Vendor:      vendor,
		BookingID:   bookingRef,
		TotalAmount: fields.Decimal("total_amount"),
		Currency:    fields.StringOr("currency", model.DefaultCurrency),
		Status:      fields.StringOr("status", model.POCreated),
	}
	if err := fields.Err(); err != nil {
		return nil, ValidationError(err.Error())
	}

	return s.persist(ctx, &po)
}

func (s *purchaseOrderService) persist(ctx context.Context, po *model.PurchaseOrder) (*model.PurchaseOrder, error) {
	if err := s.poRepo.Create(ctx, po); err != nil {
		return nil, err
	}

	writeAudit(ctx, s.auditRepo, model.ActionCreatePO, strconv.Itoa(int(po.ID)), po.PONumber, po)
	s.hub.Publish(ws.Event{Event: "purchase_order.created", Entity: "purchase_order", ID: po.ID, Status: po.Status})

	return po, nil
}

func (s *purchaseOrderService) GetPurchaseOrder(ctx context.Context, id uint) (*model.PurchaseOrder, error) {
	return s.poRepo.FindByID(ctx, id)
}

func (s *purchaseOrderService) ListPurchaseOrders(ctx context.Context) ([]model.PurchaseOrder, error) {
	return s.poRepo.ListNewestFirst(ctx)
}

// --- Mapping ---

func ToPurchaseOrderResponse(po model.PurchaseOrder) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		ID:          po.ID,
		PONumber:    po.PONumber,
		Vendor:      po.Vendor,
		BookingID:   po.BookingID,
		TotalAmount: po.TotalAmount.InexactFloat64(),
		Currency:    po.Currency,
		Status:      po.Status,
		CreatedAt:   po.CreatedAt.Format(time.RFC3339),
	}
}
