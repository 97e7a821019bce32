package handler

import (
	"fmt"
	"net/http"

	"mediabuy/internal/service"
	"mediabuy/pkg/payload"
	"mediabuy/pkg/response"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
	bookingService service.BookingService
	poService      service.PurchaseOrderService
}

func NewInvoiceHandler(
	invoiceService service.InvoiceService,
	bookingService service.BookingService,
	poService service.PurchaseOrderService,
) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		bookingService: bookingService,
		poService:      poService,
	}
}

func (h *InvoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/invoices", h.InvoicesPage)
	router.POST("/invoices", h.CreateInvoice)
	router.POST("/send-invoice/:id", h.SendInvoice)

	api := router.Group("/api/invoices")
	{
		api.POST("", h.CreateInvoiceAPI)
		api.GET("/:id", h.GetInvoice)
		api.POST("/:id/approve", h.ApproveInvoice)
		api.POST("/:id/flag", h.FlagInvoice)
	}
}

// InvoicesPage lists all invoices newest first, with bookings and purchase
// orders for selection.
func (h *InvoiceHandler) InvoicesPage(c *gin.Context) {
	r := newResponder(c)

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context())
	if err != nil {
		status, msg := httpError(err, "", "")
		c.JSON(status, response.Err(msg))
		return
	}
	bookings, err := h.bookingService.ListBookings(c.Request.Context())
	if err != nil {
		status, msg := httpError(err, "", "")
		c.JSON(status, response.Err(msg))
		return
	}
	pos, err := h.poService.ListPurchaseOrders(c.Request.Context())
	if err != nil {
		status, msg := httpError(err, "", "")
		c.JSON(status, response.Err(msg))
		return
	}

	invoiceResult := make([]service.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		invoiceResult = append(invoiceResult, service.ToInvoiceResponse(inv))
	}
	bookingResult := make([]service.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		bookingResult = append(bookingResult, service.ToBookingResponse(b))
	}
	poResult := make([]service.PurchaseOrderResponse, 0, len(pos))
	for _, po := range pos {
		poResult = append(poResult, service.ToPurchaseOrderResponse(po))
	}

	if r.IsJSON() {
		c.JSON(http.StatusOK, gin.H{
			"invoices":        invoiceResult,
			"bookings":        bookingResult,
			"purchase_orders": poResult,
		})
		return
	}

	data := flashFrom(c)
	data["Invoices"] = invoiceResult
	data["Bookings"] = bookingResult
	data["PurchaseOrders"] = poResult
	c.HTML(http.StatusOK, "invoices.html", data)
}

// CreateInvoice handles the dual-mode creation path, including the INVOICED
// propagation onto a referenced purchase order.
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	r := newResponder(c)

	fields, err := payload.FromRequest(c)
	if err != nil {
		r.Fail(http.StatusBadRequest, err.Error(), "/invoices")
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), fields)
	if err != nil {
		status, msg := httpError(err, "Invoice number already exists", "not found")
		r.Fail(status, msg, "/invoices")
		return
	}

	r.Created(response.Created{
		ID:      invoice.ID,
		Status:  invoice.Status,
		Message: "Invoice created",
	}, "/invoices", "Invoice created successfully.")
}

// SendInvoice is the guarded transition: it only fires on invoices still in
// RECEIVED and reports "already processed" otherwise.
func (h *InvoiceHandler) SendInvoice(c *gin.Context) {
	r := newResponder(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	invoice, alreadyProcessed, err := h.invoiceService.SendForValidation(c.Request.Context(), id)
	if err != nil {
		status, msg := httpError(err, "", "invoice not found")
		r.Fail(status, msg, "/invoices")
		return
	}

	if alreadyProcessed {
		if r.IsJSON() {
			c.JSON(http.StatusOK, gin.H{"message": "Invoice already processed", "status": invoice.Status})
			return
		}
		r.c.Redirect(http.StatusSeeOther, withFlash("/invoices", "Invoice already processed.", "warning"))
		return
	}

	if r.IsJSON() {
		c.JSON(http.StatusOK, gin.H{"message": "Invoice sent for validation", "status": invoice.Status})
		return
	}
	r.c.Redirect(http.StatusSeeOther, withFlash("/invoices",
		fmt.Sprintf("Invoice %s sent for validation.", service.ToInvoiceResponse(*invoice).InvoiceNumber), "success"))
}

// CreateInvoiceAPI creates an invoice from a JSON payload
// @Summary      Create invoice
// @Description  Creates an invoice; a supplied po_id that resolves to a purchase order drives that order to INVOICED
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Success      201  {object}  response.Created
// @Failure      400  {object}  response.Error
// @Failure      409  {object}  response.Error
// @Router       /api/invoices [post]
func (h *InvoiceHandler) CreateInvoiceAPI(c *gin.Context) {
	fields, err := payload.FromRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Err(err.Error()))
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), fields)
	if err != nil {
		status, msg := httpError(err, "Invoice number already exists", "not found")
		c.JSON(status, response.Err(msg))
		return
	}

	c.JSON(http.StatusCreated, response.Created{
		ID:      invoice.ID,
		Status:  invoice.Status,
		Message: "Invoice created",
	})
}

// GetInvoice fetches a single invoice by id
// @Summary      Get invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  service.InvoiceResponse
// @Failure      404  {object}  response.Error
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		status, msg := httpError(err, "", "invoice not found")
		c.JSON(status, response.Err(msg))
		return
	}

	c.JSON(http.StatusOK, service.ToInvoiceResponse(*invoice))
}

// ApproveInvoice sets the invoice to APPROVED unconditionally
// @Summary      Approve invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  response.Error
// @Router       /api/invoices/{id}/approve [post]
func (h *InvoiceHandler) ApproveInvoice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.ApproveInvoice(c.Request.Context(), id)
	if err != nil {
		status, msg := httpError(err, "", "invoice not found")
		c.JSON(status, response.Err(msg))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice approved", "status": invoice.Status})
}

// FlagInvoice sets the invoice to FLAGGED with a caller-supplied reason
// @Summary      Flag invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  response.Error
// @Router       /api/invoices/{id}/flag [post]
func (h *InvoiceHandler) FlagInvoice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	fields, err := payload.FromRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Err(err.Error()))
		return
	}

	invoice, err := h.invoiceService.FlagInvoice(c.Request.Context(), id, fields.String("reason"))
	if err != nil {
		status, msg := httpError(err, "", "invoice not found")
		c.JSON(status, response.Err(msg))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice flagged", "status": invoice.Status})
}
