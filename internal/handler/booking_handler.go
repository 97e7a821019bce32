package handler

import (
	"net/http"

	"mediabuy/internal/service"
	"mediabuy/pkg/payload"
	"mediabuy/pkg/response"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingService service.BookingService
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

func (h *BookingHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/media-bookings", h.BookingsPage)
	router.POST("/media-bookings", h.CreateBooking)

	api := router.Group("/api")
	{
		api.POST("/media-bookings", h.CreateBookingAPI)
		api.GET("/media-bookings/all", h.ListBookingsAPI)
		api.GET("/media-bookings/:id", h.GetBooking)
		api.GET("/bookings/:id/has-po", h.BookingHasPO)
	}
}

// BookingsPage lists all bookings newest first, as HTML or JSON depending on
// the caller.
func (h *BookingHandler) BookingsPage(c *gin.Context) {
	r := newResponder(c)

	bookings, err := h.bookingService.ListBookings(c.Request.Context())
	if err != nil {
		status, msg := httpError(err, "", "")
		c.JSON(status, response.Err(msg))
		return
	}

	result := make([]service.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, service.ToBookingResponse(b))
	}

	if r.IsJSON() {
		c.JSON(http.StatusOK, gin.H{"bookings": result})
		return
	}

	data := flashFrom(c)
	data["Bookings"] = result
	c.HTML(http.StatusOK, "media_bookings.html", data)
}

// CreateBooking handles the dual-mode creation path: JSON callers get a 201,
// form callers are redirected back to the listing.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	r := newResponder(c)

	fields, err := payload.FromRequest(c)
	if err != nil {
		r.Fail(http.StatusBadRequest, err.Error(), "/media-bookings")
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), fields)
	if err != nil {
		status, msg := httpError(err, "", "")
		r.Fail(status, msg, "/media-bookings")
		return
	}

	r.Created(response.Created{
		ID:      booking.ID,
		Status:  booking.Status,
		Message: "Media booking created",
	}, "/media-bookings", "Media booking created successfully.")
}

// CreateBookingAPI creates a booking from a JSON payload
// @Summary      Create media booking
// @Description  Creates a media booking; numeric fields default to zero, currency to USD, status to PLANNED
// @Tags         media-bookings
// @Accept       json
// @Produce      json
// @Success      201  {object}  response.Created
// @Failure      400  {object}  response.Error
// @Router       /api/media-bookings [post]
func (h *BookingHandler) CreateBookingAPI(c *gin.Context) {
	fields, err := payload.FromRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Err(err.Error()))
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), fields)
	if err != nil {
		status, msg := httpError(err, "", "")
		c.JSON(status, response.Err(msg))
		return
	}

	c.JSON(http.StatusCreated, response.Created{
		ID:      booking.ID,
		Status:  booking.Status,
		Message: "Media booking created",
	})
}

// GetBooking fetches a single booking by id
// @Summary      Get media booking
// @Tags         media-bookings
// @Produce      json
// @Param        id   path      int  true  "Booking ID"
// @Success      200  {object}  service.BookingResponse
// @Failure      404  {object}  response.Error
// @Router       /api/media-bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), id)
	if err != nil {
		status, msg := httpError(err, "", "booking not found")
		c.JSON(status, response.Err(msg))
		return
	}

	c.JSON(http.StatusOK, service.ToBookingResponse(*booking))
}

// ListBookingsAPI returns all bookings, newest first
// @Summary      List media bookings
// @Tags         media-bookings
// @Produce      json
// @Success      200  {array}  service.BookingResponse
// @Router       /api/media-bookings/all [get]
func (h *BookingHandler) ListBookingsAPI(c *gin.Context) {
	bookings, err := h.bookingService.ListBookings(c.Request.Context())
	if err != nil {
		status, msg := httpError(err, "", "")
		c.JSON(status, response.Err(msg))
		return
	}

	result := make([]service.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, service.ToBookingResponse(b))
	}

	c.JSON(http.StatusOK, result)
}

// BookingHasPO reports whether any purchase orders reference the booking
// @Summary      Check purchase orders for a booking
// @Tags         media-bookings
// @Produce      json
// @Param        id   path      int  true  "Booking ID"
// @Success      200  {object}  service.BookingPOCheck
// @Failure      404  {object}  response.Error
// @Router       /api/bookings/{id}/has-po [get]
func (h *BookingHandler) BookingHasPO(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	check, err := h.bookingService.CheckPurchaseOrders(c.Request.Context(), id)
	if err != nil {
		status, msg := httpError(err, "", "booking not found")
		c.JSON(status, response.Err(msg))
		return
	}

	c.JSON(http.StatusOK, check)
}
