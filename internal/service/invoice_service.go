package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"mediabuy/internal/model"
	"mediabuy/internal/repository"
	ws "mediabuy/internal/websocket"
	"mediabuy/pkg/payload"
)

// Audit lines appended to invoice comments by the transition actions. Automation
// callers match on these strings, so they are part of the wire contract.
const (
	commentAutoApproved = "\nAuto-approved by Agent."
	commentFlagPrefix   = "\nFLAG: "
	commentSent         = "\nInvoice sent for validation."

	defaultFlagReason = "Flagged for manual review"
)

// --- DTOs ---

type InvoiceResponse struct {
	ID            uint    `json:"id"`
	InvoiceNumber string  `json:"invoice_number"`
	Vendor        string  `json:"vendor"`
	BookingID     *uint   `json:"booking_id"`
	POID          *uint   `json:"po_id"`
	Amount        float64 `json:"amount"`
	TaxAmount     float64 `json:"tax_amount"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
	Comments      string  `json:"comments"`
	CreatedAt     string  `json:"created_at"`
}

// --- Interface ---

type InvoiceService interface {
	CreateInvoice(ctx context.Context, fields *payload.Fields) (*model.Invoice, error)
	GetInvoice(ctx context.Context, id uint) (*model.Invoice, error)
	ListInvoices(ctx context.Context) ([]model.Invoice, error)
	ApproveInvoice(ctx context.Context, id uint) (*model.Invoice, error)
	FlagInvoice(ctx context.Context, id uint, reason string) (*model.Invoice, error)
	SendForValidation(ctx context.Context, id uint) (*model.Invoice, bool, error)
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	poRepo      repository.PurchaseOrderRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	hub         *ws.Hub
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	poRepo repository.PurchaseOrderRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		poRepo:      poRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		hub:         hub,
	}
}

// --- Implementation ---

// CreateInvoice persists an invoice from the flat request fields and, when
// po_id resolves to an existing purchase order, drives that order to INVOICED
// regardless of its current status. Both writes commit in one transaction.
// invoice_number and vendor are tolerated empty; a duplicate invoice_number is
// rejected by the unique index.
func (s *invoiceService) CreateInvoice(ctx context.Context, fields *payload.Fields) (*model.Invoice, error) {
	var invoiceNumber *string
	if n := fields.String("invoice_number"); n != "" {
		invoiceNumber = &n
	}

	invoice := model.Invoice{
		InvoiceNumber: invoiceNumber,
		Vendor:        fields.String("vendor"),
		BookingID:     fields.IDRef("booking_id"),
		POID:          fields.IDRef("po_id"),
		Amount:        fields.Decimal("amount"),
		TaxAmount:     fields.Decimal("tax_amount"),
		Currency:      fields.StringOr("currency", model.DefaultCurrency),
		Status:        fields.StringOr("status", model.InvoiceReceived),
		Comments:      fields.String("comments"),
	}
	if err := fields.Err(); err != nil {
		return nil, ValidationError(err.Error())
	}

	poInvoiced := false
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.invoiceRepo.Create(txCtx, &invoice); err != nil {
			return err
		}

		// A po_id that resolves to nothing is tolerated and left dangling.
		if invoice.POID != nil {
			_, err := s.poRepo.FindByID(txCtx, *invoice.POID)
			switch {
			case err == nil:
				if err := s.poRepo.UpdateStatus(txCtx, *invoice.POID, model.POInvoiced); err != nil {
					return err
				}
				poInvoiced = true
				writeAudit(txCtx, s.auditRepo, model.ActionPOInvoiced, strconv.Itoa(int(*invoice.POID)), "", nil)
			case errors.Is(err, repository.ErrNotFound):
				// dangling reference
			default:
				return err
			}
		}

		writeAudit(txCtx, s.auditRepo, model.ActionCreateInvoice, strconv.Itoa(int(invoice.ID)), invoiceNumberOf(&invoice), invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.Publish(ws.Event{Event: "invoice.created", Entity: "invoice", ID: invoice.ID, Status: invoice.Status})
	if poInvoiced {
		s.hub.Publish(ws.Event{Event: "purchase_order.invoiced", Entity: "purchase_order", ID: *invoice.POID, Status: model.POInvoiced})
	}

	return &invoice, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id uint) (*model.Invoice, error) {
	return s.invoiceRepo.FindByID(ctx, id)
}

func (s *invoiceService) ListInvoices(ctx context.Context) ([]model.Invoice, error) {
	return s.invoiceRepo.ListNewestFirst(ctx)
}

// ApproveInvoice sets the status to APPROVED with no prior-state guard; it can
// override a FLAGGED invoice just as flag can override an approved one.
func (s *invoiceService) ApproveInvoice(ctx context.Context, id uint) (*model.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	invoice.Status = model.InvoiceApproved
	invoice.Comments += commentAutoApproved
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	writeAudit(ctx, s.auditRepo, model.ActionApproveInvoice, strconv.Itoa(int(invoice.ID)), invoiceNumberOf(invoice), nil)
	s.hub.Publish(ws.Event{Event: "invoice.approved", Entity: "invoice", ID: invoice.ID, Status: invoice.Status})

	return invoice, nil
}

// FlagInvoice sets the status to FLAGGED with no prior-state guard and appends
// the caller-supplied reason to the comment log.
func (s *invoiceService) FlagInvoice(ctx context.Context, id uint, reason string) (*model.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if reason == "" {
		reason = defaultFlagReason
	}

	invoice.Status = model.InvoiceFlagged
	invoice.Comments += commentFlagPrefix + reason
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	writeAudit(ctx, s.auditRepo, model.ActionFlagInvoice, strconv.Itoa(int(invoice.ID)), invoiceNumberOf(invoice), map[string]string{"reason": reason})
	s.hub.Publish(ws.Event{Event: "invoice.flagged", Entity: "invoice", ID: invoice.ID, Status: invoice.Status})

	return invoice, nil
}

// SendForValidation is the only guarded transition: it proceeds solely from
// RECEIVED. The boolean result reports whether the invoice had already been
// processed, in which case the status is left untouched.
func (s *invoiceService) SendForValidation(ctx context.Context, id uint) (*model.Invoice, bool, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}

	if invoice.Status != model.InvoiceReceived {
		return invoice, true, nil
	}

	invoice.Status = model.InvoiceApproved
	invoice.Comments += commentSent
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, false, err
	}

	writeAudit(ctx, s.auditRepo, model.ActionSendInvoice, strconv.Itoa(int(invoice.ID)), invoiceNumberOf(invoice), nil)
	s.hub.Publish(ws.Event{Event: "invoice.sent", Entity: "invoice", ID: invoice.ID, Status: invoice.Status})

	return invoice, false, nil
}

func invoiceNumberOf(inv *model.Invoice) string {
	if inv.InvoiceNumber != nil {
		return *inv.InvoiceNumber
	}
	return ""
}

// --- Mapping ---

func ToInvoiceResponse(inv model.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: invoiceNumberOf(&inv),
		Vendor:        inv.Vendor,
		BookingID:     inv.BookingID,
		POID:          inv.POID,
		Amount:        inv.Amount.InexactFloat64(),
		TaxAmount:     inv.TaxAmount.InexactFloat64(),
		Currency:      inv.Currency,
		Status:        inv.Status,
		Comments:      inv.Comments,
		CreatedAt:     inv.CreatedAt.Format(time.RFC3339),
	}
}
