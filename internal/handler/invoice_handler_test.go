package handler

import (
	"net/http"
	"net/url"
	"testing"

	"mediabuy/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPurchaseOrder(t *testing.T, router *gin.Engine, number string) {
	t.Helper()
	w := postJSON(router, "/purchase-orders", map[string]any{
		"po_number": number,
		"vendor":    "Acme Media",
	})
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateInvoiceDefaults(t *testing.T) {
	router, _ := setupRouter(t)

	w := postJSON(router, "/api/invoices", map[string]any{})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decode(t, w)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, model.InvoiceReceived, body["status"])
	assert.Equal(t, "Invoice created", body["message"])

	w = getJSON(router, "/api/invoices/1")
	require.Equal(t, http.StatusOK, w.Code)

	invoice := decode(t, w)
	assert.Equal(t, "", invoice["invoice_number"])
	assert.Equal(t, model.DefaultCurrency, invoice["currency"])
	assert.Equal(t, float64(0), invoice["amount"])
	assert.Equal(t, float64(0), invoice["tax_amount"])
	assert.Nil(t, invoice["po_id"])
}

func TestCreateInvoiceMarksPOInvoiced(t *testing.T) {
	router, _ := setupRouter(t)
	createPurchaseOrder(t, router, "PO-3001")

	w := postJSON(router, "/api/invoices", map[string]any{
		"invoice_number": "INV-1",
		"vendor":         "Acme Media",
		"po_id":          1,
		"amount":         500,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = getJSON(router, "/api/purchase-orders/1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.POInvoiced, decode(t, w)["status"])
}

func TestCreateInvoiceMarksPOInvoicedFromAnyStatus(t *testing.T) {
	router, db := setupRouter(t)
	createPurchaseOrder(t, router, "PO-3002")

	require.NoError(t, db.Model(&model.PurchaseOrder{}).Where("id = ?", 1).
		Update("status", "SOMETHING_ELSE").Error)

	w := postJSON(router, "/api/invoices", map[string]any{"po_id": 1})
	require.Equal(t, http.StatusCreated, w.Code)

	w = getJSON(router, "/api/purchase-orders/1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.POInvoiced, decode(t, w)["status"])
}

func TestCreateInvoiceDanglingPOTolerated(t *testing.T) {
	router, _ := setupRouter(t)

	w := postJSON(router, "/api/invoices", map[string]any{"po_id": 77})
	require.Equal(t, http.StatusCreated, w.Code)

	w = getJSON(router, "/api/invoices/1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(77), decode(t, w)["po_id"])
}

func TestDuplicateInvoiceNumber(t *testing.T) {
	router, db := setupRouter(t)

	w := postJSON(router, "/api/invoices", map[string]any{"invoice_number": "INV-7"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/api/invoices", map[string]any{"invoice_number": "INV-7"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Invoice number already exists", decode(t, w)["error"])

	var count int64
	require.NoError(t, db.Model(&model.Invoice{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestNumberlessInvoicesDoNotCollide(t *testing.T) {
	router, _ := setupRouter(t)

	w := postJSON(router, "/api/invoices", map[string]any{"vendor": "Acme Media"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = postJSON(router, "/api/invoices", map[string]any{"vendor": "Other Vendor"})
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestApproveThenFlag(t *testing.T) {
	router, _ := setupRouter(t)

	w := postJSON(router, "/api/invoices", map[string]any{"invoice_number": "INV-9"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/api/invoices/1/approve", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Invoice approved", body["message"])
	assert.Equal(t, model.InvoiceApproved, body["status"])

	w = postJSON(router, "/api/invoices/1/flag", map[string]any{"reason": "late delivery"})
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, "Invoice flagged", body["message"])
	assert.Equal(t, model.InvoiceFlagged, body["status"])

	w = getJSON(router, "/api/invoices/1")
	require.Equal(t, http.StatusOK, w.Code)
	invoice := decode(t, w)
	assert.Equal(t, model.InvoiceFlagged, invoice["status"])
	assert.Equal(t, "\nAuto-approved by Agent.\nFLAG: late delivery", invoice["comments"])
}

func TestFlagDefaultReason(t *testing.T) {
	router, _ := setupRouter(t)

	w := postJSON(router, "/api/invoices", map[string]any{})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/api/invoices/1/flag", map[string]any{})
	require.Equal(t, http.StatusOK, w.Code)

	w = getJSON(router, "/api/invoices/1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "\nFLAG: Flagged for manual review", decode(t, w)["comments"])
}

func TestSendInvoice(t *testing.T) {
	router, _ := setupRouter(t)

	w := postJSON(router, "/api/invoices", map[string]any{"invoice_number": "INV-12"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/send-invoice/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Invoice sent for validation", body["message"])
	assert.Equal(t, model.InvoiceApproved, body["status"])

	// A second send is a no-op: the invoice left RECEIVED on the first one.
	w = postJSON(router, "/send-invoice/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, "Invoice already processed", body["message"])
	assert.Equal(t, model.InvoiceApproved, body["status"])

	w = getJSON(router, "/api/invoices/1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "\nInvoice sent for validation.", decode(t, w)["comments"])
}

func TestSendInvoiceFormRedirects(t *testing.T) {
	router, _ := setupRouter(t)

	w := postJSON(router, "/api/invoices", map[string]any{"invoice_number": "INV-13"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postForm(router, "/send-invoice/1", url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)

	loc := w.Header().Get("Location")
	assert.Contains(t, loc, "/invoices?")
	assert.Contains(t, loc, "level=success")
	assert.Contains(t, loc, url.QueryEscape("INV-13"))

	w = postForm(router, "/send-invoice/1", url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "level=warning")
}

func TestInvoiceTransitionsNotFound(t *testing.T) {
	router, _ := setupRouter(t)

	w := postJSON(router, "/api/invoices/5/approve", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "invoice not found", decode(t, w)["error"])

	w = postJSON(router, "/api/invoices/5/flag", map[string]any{})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = postJSON(router, "/send-invoice/5", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvoicesPageJSON(t *testing.T) {
	router, _ := setupRouter(t)

	w := postJSON(router, "/api/media-bookings", map[string]any{"campaign_name": "Page Test"})
	require.Equal(t, http.StatusCreated, w.Code)
	createPurchaseOrder(t, router, "PO-3003")
	w = postJSON(router, "/api/invoices", map[string]any{"invoice_number": "INV-20"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = getJSON(router, "/invoices")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Len(t, body["invoices"], 1)
	assert.Len(t, body["bookings"], 1)
	assert.Len(t, body["purchase_orders"], 1)
}
