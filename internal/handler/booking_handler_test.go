package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"mediabuy/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingAPIDefaults(t *testing.T) {
	router, _ := setupRouter(t)

	w := postJSON(router, "/api/media-bookings", map[string]any{
		"campaign_name": "Spring Launch",
		"channel":       "TV",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decode(t, w)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, model.BookingPlanned, body["status"])
	assert.Equal(t, "Media booking created", body["message"])

	w = getJSON(router, "/api/media-bookings/1")
	require.Equal(t, http.StatusOK, w.Code)

	booking := decode(t, w)
	assert.Equal(t, "Spring Launch", booking["campaign_name"])
	assert.Equal(t, model.DefaultCurrency, booking["currency"])
	assert.Equal(t, float64(0), booking["unit_rate"])
	assert.Equal(t, float64(0), booking["units"])
	assert.Equal(t, float64(0), booking["budget"])
}

func TestCreateBookingForm(t *testing.T) {
	router, _ := setupRouter(t)

	w := postForm(router, "/media-bookings", url.Values{
		"campaign_name": {"Summer Push"},
		"channel":       {"Radio"},
		"unit_rate":     {"12.50"},
		"units":         {"40"},
		"budget":        {"500"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	loc := w.Header().Get("Location")
	assert.Contains(t, loc, "/media-bookings?")
	assert.Contains(t, loc, "level=success")

	w = getJSON(router, "/api/media-bookings/1")
	require.Equal(t, http.StatusOK, w.Code)

	booking := decode(t, w)
	assert.Equal(t, "Summer Push", booking["campaign_name"])
	assert.Equal(t, 12.5, booking["unit_rate"])
	assert.Equal(t, float64(40), booking["units"])
	assert.Equal(t, float64(500), booking["budget"])
	assert.Equal(t, model.BookingPlanned, booking["status"])
}

func TestCreateBookingInvalidNumeric(t *testing.T) {
	router, db := setupRouter(t)

	w := postJSON(router, "/api/media-bookings", map[string]any{
		"campaign_name": "Bad Numbers",
		"units":         "lots",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Contains(t, body["error"], "units")

	var count int64
	require.NoError(t, db.Model(&model.MediaBooking{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestListBookingsNewestFirst(t *testing.T) {
	router, db := setupRouter(t)

	w := postJSON(router, "/api/media-bookings", map[string]any{"campaign_name": "First"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = postJSON(router, "/api/media-bookings", map[string]any{"campaign_name": "Second"})
	require.Equal(t, http.StatusCreated, w.Code)

	// Same-second inserts tie on created_at, so backdate the first explicitly.
	require.NoError(t, db.Model(&model.MediaBooking{}).Where("id = ?", 1).
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	w = getJSON(router, "/api/media-bookings/all")
	require.Equal(t, http.StatusOK, w.Code)

	var bookings []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bookings))
	require.Len(t, bookings, 2)
	assert.Equal(t, "Second", bookings[0]["campaign_name"])
	assert.Equal(t, "First", bookings[1]["campaign_name"])
}

func TestGetBookingNotFound(t *testing.T) {
	router, _ := setupRouter(t)

	w := getJSON(router, "/api/media-bookings/99")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "booking not found", decode(t, w)["error"])

	w = getJSON(router, "/api/media-bookings/abc")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", decode(t, w)["error"])
}

func TestBookingHasPO(t *testing.T) {
	router, _ := setupRouter(t)

	w := postJSON(router, "/api/media-bookings", map[string]any{
		"campaign_name": "With Orders",
		"vendor":        "Acme Media",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/purchase-orders", map[string]any{
		"po_number":    "PO-1001",
		"vendor":       "Acme Media",
		"booking_id":   1,
		"total_amount": 250,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = postJSON(router, "/purchase-orders", map[string]any{
		"po_number":  "PO-1002",
		"vendor":     "Acme Media",
		"booking_id": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = getJSON(router, "/api/bookings/1/has-po")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, float64(1), body["booking_id"])
	assert.Equal(t, true, body["has_po"])
	assert.Equal(t, float64(2), body["po_count"])

	orders, ok := body["purchase_orders"].([]any)
	require.True(t, ok)
	require.Len(t, orders, 2)
	first := orders[0].(map[string]any)
	assert.Equal(t, "PO-1001", first["po_number"])
	assert.Equal(t, model.POCreated, first["status"])
	assert.Equal(t, float64(250), first["amount"])
}

func TestBookingHasPOEmpty(t *testing.T) {
	router, _ := setupRouter(t)

	w := postJSON(router, "/api/media-bookings", map[string]any{"campaign_name": "Lonely"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = getJSON(router, "/api/bookings/1/has-po")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, false, body["has_po"])
	assert.Equal(t, float64(0), body["po_count"])
	assert.Empty(t, body["purchase_orders"])
}

func TestBookingHasPOMissingBooking(t *testing.T) {
	router, _ := setupRouter(t)

	w := getJSON(router, "/api/bookings/42/has-po")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "booking not found", decode(t, w)["error"])
}

func TestBookingsPageJSON(t *testing.T) {
	router, _ := setupRouter(t)

	w := postJSON(router, "/api/media-bookings", map[string]any{"campaign_name": "Visible"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = getJSON(router, "/media-bookings")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	bookings, ok := body["bookings"].([]any)
	require.True(t, ok)
	require.Len(t, bookings, 1)
	assert.Equal(t, "Visible", bookings[0].(map[string]any)["campaign_name"])
}
