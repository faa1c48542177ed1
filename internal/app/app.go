// Package app assembles repositories, services and HTTP routes.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"trainerhub/internal/config"
	"trainerhub/internal/database"
	"trainerhub/internal/ledger"
	"trainerhub/internal/middleware"
	"trainerhub/internal/modules/admin"
	"trainerhub/internal/modules/auth"
	"trainerhub/internal/modules/booking"
	"trainerhub/internal/modules/chat"
	"trainerhub/internal/modules/content"
	"trainerhub/internal/modules/feedback"
	"trainerhub/internal/modules/payment"
	"trainerhub/internal/modules/payout"
	"trainerhub/internal/modules/request"
	"trainerhub/internal/modules/review"
	"trainerhub/internal/modules/settings"
	"trainerhub/internal/modules/trainer"
	"trainerhub/internal/modules/upload"
	"trainerhub/internal/pkg/jwt"
	"trainerhub/internal/pkg/logger"
	"trainerhub/internal/repository"
)

type App struct {
	Router *gin.Engine
	Hub    *chat.Hub
	JWT    *jwt.Service
}

func New(cfg *config.Config, db *gorm.DB, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}
	sqlxDB, err := database.SQLX(db)
	if err != nil {
		return nil, fmt.Errorf("sqlx: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	trainerRepo := repository.NewTrainerRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	payoutRepo := repository.NewPayoutRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	contentRepo := repository.NewContentRepository(db)
	uploadRepo := repository.NewUploadRepository(db)

	jwtService := jwt.New(cfg.JWTSecret, cfg.JWTTTL)
	reporter := ledger.NewReporter(sqlxDB)
	hub := chat.NewHub()

	settingsService := settings.NewService(settingsRepo, settings.Defaults(cfg.DefaultCommissionRate))
	authService := auth.NewService(userRepo, jwtService)
	trainerService := trainer.NewService(trainerRepo, reviewRepo)
	bookingService := booking.NewService(bookingRepo, trainerRepo, settingsService)
	paymentService := payment.NewService(paymentRepo, bookingRepo, payment.Config{
		Merchant: cfg.CheckoutMerchant,
		Secret:   cfg.CheckoutSecret,
		BaseURL:  cfg.CheckoutBaseURL,
	}, logger.Printf(log))
	reviewService := review.NewService(reviewRepo, bookingRepo)
	chatService := chat.NewService(messageRepo, bookingRepo, hub)
	requestService := request.NewService(requestRepo, trainerRepo, settingsService)
	feedbackService := feedback.NewService(feedbackRepo, bookingRepo, trainerRepo, settingsService)
	payoutService := payout.NewService(payoutRepo, trainerRepo, settingsService)
	adminService := admin.NewService(userRepo, trainerRepo, bookingRepo, bookingService, reporter)
	contentService := content.NewService(contentRepo)
	uploadService := upload.NewService(uploadRepo, cfg.UploadDir, cfg.StaticURLBase)

	authHandler := auth.NewHandler(authService)
	trainerHandler := trainer.NewHandler(trainerService)
	bookingHandler := booking.NewHandler(bookingService)
	paymentHandler := payment.NewHandler(paymentService, logger.Printf(log))
	reviewHandler := review.NewHandler(reviewService)
	chatHandler := chat.NewHandler(chatService)
	wsHandler := chat.NewWSHandler(hub, chatService, cfg.AllowedOrigins)
	requestHandler := request.NewHandler(requestService)
	feedbackHandler := feedback.NewHandler(feedbackService, cfg.PublicURL)
	payoutHandler := payout.NewHandler(payoutService)
	settingsHandler := settings.NewHandler(settingsService)
	adminHandler := admin.NewHandler(adminService)
	contentHandler := content.NewHandler(contentService)
	uploadHandler := upload.NewHandler(uploadService)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.ErrorLogger(),
		middleware.CORS(cfg.AllowedOrigins),
	)
	r.Static(cfg.StaticURLBase, cfg.UploadDir)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "online": hub.OnlineCount()})
	})

	v1 := r.Group("/api/v1")
	protected := v1.Group("", middleware.JWTAuth(jwtService), middleware.ActiveUser(userRepo))
	adminGroup := protected.Group("/admin", middleware.AdminOnly())
	ws := v1.Group("", middleware.QueryTokenAuth(jwtService), middleware.ActiveUser(userRepo))

	authHandler.RegisterPublicRoutes(v1)
	authHandler.RegisterProtectedRoutes(protected)

	trainerHandler.RegisterPublicRoutes(v1)
	trainerHandler.RegisterProtectedRoutes(protected)

	bookingHandler.RegisterPublicRoutes(v1)
	bookingHandler.RegisterProtectedRoutes(protected)

	paymentHandler.RegisterPublicRoutes(v1)
	paymentHandler.RegisterProtectedRoutes(protected)
	paymentHandler.RegisterAdminRoutes(adminGroup)

	reviewHandler.RegisterRoutes(v1, protected)
	reviewHandler.RegisterAdminRoutes(adminGroup)

	chatHandler.RegisterRoutes(protected)
	wsHandler.RegisterRoutes(ws)

	requestHandler.RegisterRoutes(protected)
	feedbackHandler.RegisterRoutes(v1, protected)

	payoutHandler.RegisterRoutes(protected)
	payoutHandler.RegisterAdminRoutes(adminGroup)

	settingsHandler.RegisterAdminRoutes(adminGroup)
	adminHandler.RegisterRoutes(adminGroup)

	contentHandler.RegisterPublicRoutes(v1)
	contentHandler.RegisterAdminRoutes(adminGroup)

	uploadHandler.RegisterRoutes(protected)

	return &App{Router: r, Hub: hub, JWT: jwtService}, nil
}
