package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"mediabuy/internal/database"
	"mediabuy/internal/middleware"
	"mediabuy/internal/repository"
	"mediabuy/internal/service"
	ws "mediabuy/internal/websocket"

	"github.com/stretchr/testify/require"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupRouter wires the full handler stack against an in-memory database, the
// same way the entrypoint does against postgres.
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	require.NoError(t, err)

	// Every pooled connection to :memory: is its own database, so keep one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	hub := ws.NewHub()

	bookingRepo := repository.NewBookingRepository(db)
	poRepo := repository.NewPurchaseOrderRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	userRepo := repository.NewUserRepository(db)
	txManager := repository.NewTransactionManager(db)

	jwtSecret := middleware.GetJWTSecret()

	bookingService := service.NewBookingService(bookingRepo, poRepo, auditRepo, hub)
	poService := service.NewPurchaseOrderService(poRepo, bookingRepo, auditRepo, hub)
	invoiceService := service.NewInvoiceService(invoiceRepo, poRepo, auditRepo, txManager, hub)
	dashboardService := service.NewDashboardService(bookingRepo, poRepo, invoiceRepo)
	auditService := service.NewAuditService(auditRepo)
	userService := service.NewUserService(userRepo, jwtSecret)

	router := gin.New()
	root := router.Group("")
	NewDashboardHandler(dashboardService).RegisterRoutes(root)
	NewBookingHandler(bookingService).RegisterRoutes(root)
	NewPurchaseOrderHandler(poService, bookingService).RegisterRoutes(root)
	NewInvoiceHandler(invoiceService, bookingService, poService).RegisterRoutes(root)
	NewAuditHandler(auditService, jwtSecret).RegisterRoutes(root)
	NewAuthHandler(userService).RegisterRoutes(root)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return router, db
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getJSON(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
