package handler

import (
	"net/http"

	"mediabuy/internal/service"
	"mediabuy/pkg/payload"
	"mediabuy/pkg/response"

	"github.com/gin-gonic/gin"
)

type PurchaseOrderHandler struct {
	poService      service.PurchaseOrderService
	bookingService service.BookingService
}

func NewPurchaseOrderHandler(poService service.PurchaseOrderService, bookingService service.BookingService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{poService: poService, bookingService: bookingService}
}

func (h *PurchaseOrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/purchase-orders", h.PurchaseOrdersPage)
	router.POST("/purchase-orders", h.CreatePurchaseOrder)

	api := router.Group("/api/purchase-orders")
	{
		api.POST("", h.CreatePurchaseOrderAPI)
		api.GET("/:id", h.GetPurchaseOrder)
	}
}

// PurchaseOrdersPage lists all purchase orders newest first, alongside the full
// booking set for selection.
func (h *PurchaseOrderHandler) PurchaseOrdersPage(c *gin.Context) {
	r := newResponder(c)

	pos, err := h.poService.ListPurchaseOrders(c.Request.Context())
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

	poResult := make([]service.PurchaseOrderResponse, 0, len(pos))
	for _, po := range pos {
		poResult = append(poResult, service.ToPurchaseOrderResponse(po))
	}
	bookingResult := make([]service.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		bookingResult = append(bookingResult, service.ToBookingResponse(b))
	}

	if r.IsJSON() {
		c.JSON(http.StatusOK, gin.H{"purchase_orders": poResult, "bookings": bookingResult})
		return
	}

	data := flashFrom(c)
	data["PurchaseOrders"] = poResult
	data["Bookings"] = bookingResult
	c.HTML(http.StatusOK, "purchase_orders.html", data)
}

// CreatePurchaseOrder handles the dual-mode creation path with required-field
// validation and the duplicate po_number check.
func (h *PurchaseOrderHandler) CreatePurchaseOrder(c *gin.Context) {
	r := newResponder(c)

	fields, err := payload.FromRequest(c)
	if err != nil {
		r.Fail(http.StatusBadRequest, err.Error(), "/purchase-orders")
		return
	}

	po, err := h.poService.CreatePurchaseOrder(c.Request.Context(), fields)
	if err != nil {
		status, msg := httpError(err, "PO number already exists", "Invalid booking_id")
		r.Fail(status, msg, "/purchase-orders")
		return
	}

	r.Created(gin.H{
		"id":        po.ID,
		"po_number": po.PONumber,
		"status":    po.Status,
		"message":   "Purchase order created",
	}, "/purchase-orders", "Purchase order created successfully.")
}

// CreatePurchaseOrderAPI creates a purchase order for an existing booking
// @Summary      Create purchase order
// @Description  booking_id is mandatory and must exist; po_number is auto-generated when omitted; vendor falls back to the booking's vendor
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  response.Error
// @Failure      404  {object}  response.Error
// @Failure      409  {object}  response.Error
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) CreatePurchaseOrderAPI(c *gin.Context) {
	fields, err := payload.FromRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Err(err.Error()))
		return
	}

	po, err := h.poService.CreatePurchaseOrderForBooking(c.Request.Context(), fields)
	if err != nil {
		status, msg := httpError(err, "PO number already exists", "Invalid booking_id")
		c.JSON(status, response.Err(msg))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         po.ID,
		"po_number":  po.PONumber,
		"booking_id": po.BookingID,
		"status":     po.Status,
		"message":    "PO created successfully",
	})
}

// GetPurchaseOrder fetches a single purchase order by id
// @Summary      Get purchase order
// @Tags         purchase-orders
// @Produce      json
// @Param        id   path      int  true  "Purchase Order ID"
// @Success      200  {object}  service.PurchaseOrderResponse
// @Failure      404  {object}  response.Error
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) GetPurchaseOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	po, err := h.poService.GetPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		status, msg := httpError(err, "", "purchase order not found")
		c.JSON(status, response.Err(msg))
		return
	}

	c.JSON(http.StatusOK, service.ToPurchaseOrderResponse(*po))
}
