// Package routes defines the API routing configuration.
// It wires repositories, services and handlers together and groups routes
// by functionality with the appropriate middleware.
package routes

import (
	"time"

	"paygo/internal/config"
	"paygo/internal/handlers"
	"paygo/internal/mailer"
	"paygo/internal/middleware"
	"paygo/internal/repositories"
	"paygo/internal/services/auth"
	"paygo/internal/services/beneficiary"
	"paygo/internal/services/funding"
	"paygo/internal/services/notification"
	"paygo/internal/services/paystack"
	"paygo/internal/services/pin"
	"paygo/internal/services/transfer"
	"paygo/internal/services/user"
	"paygo/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes. It returns the notification
// dispatcher so the caller can drain it on shutdown.
func SetupRoutes(app *fiber.App, db *gorm.DB) *notification.Dispatcher {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	ledgerRepo := repositories.NewLedgerRepository(db)
	beneficiaryRepo := repositories.NewBeneficiaryRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// Outbound adapters
	mail := mailer.New(mailer.Config{
		Host:     config.GetEnv("SMTP_HOST", "localhost"),
		Port:     config.GetIntEnv("SMTP_PORT", 587),
		Username: config.GetEnv("SMTP_USER", ""),
		Password: config.GetEnv("SMTP_PASS", ""),
		From:     config.GetEnv("SMTP_FROM", "PayGo <no-reply@paygo.local>"),
	})
	gateway := paystack.NewClient(paystack.Config{
		BaseURL:   config.GetEnv("PAYSTACK_BASE_URL", ""),
		SecretKey: config.GetEnv("PAYSTACK_SECRET_KEY", ""),
		Timeout:   config.GetDurationEnv("PAYSTACK_TIMEOUT", 15*time.Second),
	})

	dispatcher := notification.NewDispatcher(
		notificationRepo,
		beneficiaryRepo,
		mail,
		config.GetIntEnv("NOTIFICATION_QUEUE_SIZE", 256),
	)

	// Services
	authService := auth.NewService(userRepo, repositories.CacheService, mail)
	userService := user.NewService(userRepo)
	pinService := pin.NewService(userRepo)
	walletService := wallet.NewService(ledgerRepo, repositories.CacheService)
	fundingService := funding.NewService(ledgerRepo, userRepo, gateway, repositories.CacheService, dispatcher)
	transferService := transfer.NewService(ledgerRepo, userRepo, pinService, repositories.CacheService, dispatcher)
	notificationService := notification.NewService(notificationRepo)
	beneficiaryService := beneficiary.NewService(beneficiaryRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	walletHandler := handlers.NewWalletHandler(walletService, fundingService, transferService)
	pinHandler := handlers.NewPinHandler(pinService)
	transactionHandler := handlers.NewTransactionHandler(walletService)
	beneficiaryHandler := handlers.NewBeneficiaryHandler(beneficiaryService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	adminHandler := handlers.NewAdminHandler(userRepo, dispatcher)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Public auth endpoints
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/verify-otp", authHandler.VerifyOTP)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// The gateway authenticates with its signature header, not a JWT.
	api.Post("/wallet/webhook/paystack", walletHandler.PaystackWebhook)

	// Authenticated endpoints
	authed := api.Group("", authMiddleware.Handler)

	authed.Post("/auth/change-password", authHandler.ChangePassword)
	authed.Get("/profile", userHandler.GetProfile)
	authed.Patch("/profile", userHandler.UpdateProfile)

	walletGroup := authed.Group("/wallet")
	walletGroup.Get("/", walletHandler.GetWallet)
	walletGroup.Post("/fund", walletHandler.FundWallet)
	walletGroup.Get("/verify/:reference", walletHandler.VerifyFunding)
	walletGroup.Post("/transfer", walletHandler.Transfer)
	walletGroup.Get("/pin-status", pinHandler.PinStatus)
	walletGroup.Post("/set-pin", pinHandler.SetPin)
	walletGroup.Post("/change-pin", pinHandler.ChangePin)
	walletGroup.Post("/verify-pin", pinHandler.VerifyPin)

	authed.Get("/transactions", transactionHandler.ListTransactions)
	authed.Get("/transactions/:id", transactionHandler.GetTransaction)

	authed.Get("/beneficiaries", beneficiaryHandler.ListBeneficiaries)
	authed.Patch("/beneficiaries/:id", beneficiaryHandler.UpdateBeneficiary)
	authed.Delete("/beneficiaries/:id", beneficiaryHandler.DeleteBeneficiary)

	authed.Get("/notifications", notificationHandler.ListNotifications)
	authed.Patch("/notifications/read-all", notificationHandler.MarkAllNotificationsRead)
	authed.Patch("/notifications/:id/read", notificationHandler.MarkNotificationRead)
	authed.Delete("/notifications/:id", notificationHandler.DeleteNotification)

	admin := authed.Group("/admin", middleware.AdminAuthMiddleware)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Patch("/users/:id/suspend", adminHandler.SuspendUser)
	admin.Patch("/users/:id/unsuspend", adminHandler.UnsuspendUser)
	admin.Delete("/users/:id", adminHandler.DeleteUser)

	return dispatcher
}
