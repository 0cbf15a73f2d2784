package routes

import (
	"time"

	"lms-backend/internal/adapters/http/handlers"
	"lms-backend/internal/adapters/http/middleware"
	"lms-backend/internal/adapters/persistence/repositories"
	"lms-backend/internal/config"
	"lms-backend/internal/core/services"
	"lms-backend/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	studentRepo := repositories.NewStudentRepository(db)
	libraryRepo := repositories.NewLibraryRepository(db)
	bookRepo := repositories.NewBookRepository(db)
	lendingRepo := repositories.NewLendingRepository(db)

	// Token issuer shared by the auth service and the auth middleware
	tokens := token.NewIssuer(
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		time.Duration(cfg.JWT.ExpiryMinutes)*time.Minute,
	)

	// Initialize services
	mailer := services.NewSMTPEmailService(cfg.SMTP)
	authService := services.NewAuthService(studentRepo, tokens)
	resetService := services.NewPasswordResetService(studentRepo, mailer)
	libraryService := services.NewLibraryService(libraryRepo)
	bookService := services.NewBookService(bookRepo, libraryRepo, lendingRepo)
	lendingService := services.NewLendingService(lendingRepo, bookRepo)
	reportService := services.NewReportService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, resetService)
	libraryHandler := handlers.NewLibraryHandler(libraryService)
	bookHandler := handlers.NewBookHandler(bookService)
	lendingHandler := handlers.NewLendingHandler(lendingService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, libraryHandler,
		bookHandler, lendingHandler, reportHandler, tokens)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	libraryHandler *handlers.LibraryHandler,
	bookHandler *handlers.BookHandler,
	lendingHandler *handlers.LendingHandler,
	reportHandler *handlers.ReportHandler,
	tokens *token.Issuer,
) {
	// API Info
	router.Get("/", healthHandler.APIInfo)

	// Student routes (registration, login, password reset, profile)
	studentRoutes := router.Group("/students")
	setupStudentRoutes(studentRoutes, authHandler, tokens)

	// Lending routes (Authenticated users)
	lendingRoutes := router.Group("/student-books")
	lendingRoutes.Use(middleware.Protected(tokens))
	setupLendingRoutes(lendingRoutes, lendingHandler)

	// Library routes (public reads, admin writes)
	libraryRoutes := router.Group("/libraries")
	setupLibraryRoutes(libraryRoutes, libraryHandler, tokens)

	// Book routes (public reads, admin writes)
	bookRoutes := router.Group("/books")
	setupBookRoutes(bookRoutes, bookHandler, tokens)

	// Report routes (Authenticated users)
	reportRoutes := router.Group("/reports")
	reportRoutes.Use(middleware.Protected(tokens))
	setupReportRoutes(reportRoutes, reportHandler)
}

// setupStudentRoutes configures student account routes
func setupStudentRoutes(router fiber.Router, handler *handlers.AuthHandler, tokens *token.Issuer) {
	// Public routes (5 req/min/IP)
	router.Post("/", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)

	// Password reset (3 req/min/IP, guards against code brute force)
	router.Post("/forgot-password", middleware.StrictRateLimiter(), handler.ForgotPassword)
	router.Post("/reset-password", middleware.StrictRateLimiter(), handler.ResetPassword)

	// Protected routes
	router.Get("/:id", middleware.Protected(tokens), handler.GetStudent)
}

// setupLendingRoutes configures borrow/return routes (Authenticated)
func setupLendingRoutes(router fiber.Router, handler *handlers.LendingHandler) {
	router.Post("/", handler.Borrow)
	router.Put("/return", handler.Return)
	router.Get("/my", handler.MyActiveBorrows)
	router.Get("/my/history", handler.MyHistory)

	// Full ledger (Admin only)
	router.Get("/", middleware.AdminOnly(), handler.List)
}

// setupLibraryRoutes configures library catalog routes
func setupLibraryRoutes(router fiber.Router, handler *handlers.LibraryHandler, tokens *token.Issuer) {
	router.Get("/", handler.List)

	// Admin only
	adminRoutes := router.Group("")
	adminRoutes.Use(middleware.Protected(tokens))
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Post("/", handler.Create)
	adminRoutes.Put("/:id", handler.Update)
}

// setupBookRoutes configures book catalog routes
func setupBookRoutes(router fiber.Router, handler *handlers.BookHandler, tokens *token.Issuer) {
	router.Get("/", handler.List)

	// Admin only
	adminRoutes := router.Group("")
	adminRoutes.Use(middleware.Protected(tokens))
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Post("/", handler.Create)
	adminRoutes.Put("/:id", handler.Update)
	adminRoutes.Delete("/:id", handler.Delete)
}

// setupReportRoutes configures reporting routes
func setupReportRoutes(router fiber.Router, handler *handlers.ReportHandler) {
	// Per-library book report (Admin only)
	router.Get("/library/:id", middleware.AdminOnly(), handler.LibraryBooks)

	// Per-student borrow report (self or admin, checked in the handler)
	router.Get("/student/:id", handler.StudentBooks)
}
