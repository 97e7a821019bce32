package main

import (
	"context"
	"log"
	"os"

	_ "mediabuy/api/swagger" // swagger docs
	"mediabuy/internal/database"
	"mediabuy/internal/handler"
	"mediabuy/internal/middleware"
	"mediabuy/internal/repository"
	"mediabuy/internal/service"
	"mediabuy/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Media Buying Workflow API
// @version         1.0
// @description     CRUD backend tracking media bookings, purchase orders and invoices through their status lifecycle.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := envOr("DB_HOST", "localhost")
	dbPort := envOr("DB_PORT", "5432")
	dbUser := envOr("DB_USER", "postgres")
	dbPassword := envOr("DB_PASSWORD", "postgres")
	dbName := envOr("DB_NAME", "mediabuy")
	dbSslMode := envOr("DB_SSLMODE", "disable")

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	bookingRepo := repository.NewBookingRepository(db)
	poRepo := repository.NewPurchaseOrderRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	userRepo := repository.NewUserRepository(db)
	txManager := repository.NewTransactionManager(db)

	jwtSecret := middleware.GetJWTSecret()

	bookingService := service.NewBookingService(bookingRepo, poRepo, auditRepo, wsHub)
	poService := service.NewPurchaseOrderService(poRepo, bookingRepo, auditRepo, wsHub)
	invoiceService := service.NewInvoiceService(invoiceRepo, poRepo, auditRepo, txManager, wsHub)
	dashboardService := service.NewDashboardService(bookingRepo, poRepo, invoiceRepo)
	auditService := service.NewAuditService(auditRepo)
	userService := service.NewUserService(userRepo, jwtSecret)

	adminEmail := envOr("ADMIN_EMAIL", "admin@example.com")
	adminPassword := envOr("ADMIN_PASSWORD", "admin123")
	if err := userService.EnsureDefaultUser(context.Background(), adminEmail, adminPassword); err != nil {
		log.Printf("WARNING: failed to seed default user: %v", err)
	}

	// Initialize Handlers
	bookingHandler := handler.NewBookingHandler(bookingService)
	poHandler := handler.NewPurchaseOrderHandler(poService, bookingService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, bookingService, poService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	auditHandler := handler.NewAuditHandler(auditService, jwtSecret)
	authHandler := handler.NewAuthHandler(userService)

	// Set up Gin Router
	router := gin.Default()
	router.LoadHTMLGlob(envOr("TEMPLATE_GLOB", "web/templates/*.html"))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, jwtSecret)
	})

	// Register routes
	dashboardHandler.RegisterRoutes(router.Group(""))
	bookingHandler.RegisterRoutes(router.Group(""))
	poHandler.RegisterRoutes(router.Group(""))
	invoiceHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))
	authHandler.RegisterRoutes(router.Group(""))

	port := envOr("PORT", "8080")

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
