package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/velorent/vehicle-rental-backend/internal/config"
	"github.com/velorent/vehicle-rental-backend/internal/database"
	"github.com/velorent/vehicle-rental-backend/internal/handlers"
	"github.com/velorent/vehicle-rental-backend/internal/middleware"
	"github.com/velorent/vehicle-rental-backend/internal/models"
	"github.com/velorent/vehicle-rental-backend/internal/services"
	"github.com/velorent/vehicle-rental-backend/pkg/jwt"
	"github.com/velorent/vehicle-rental-backend/pkg/mailer"
)

var version = "1.0.0"

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Infof("Starting Velorent vehicle rental backend, version %s", version)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	logrus.SetLevel(logLevel)
	logrus.SetFormatter(&logrus.JSONFormatter{})

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	sqlxDB := db.DB

	// Repositories
	userRepo := database.NewUserRepository(sqlxDB)
	specRepo := database.NewVehicleSpecRepository(sqlxDB)
	vehicleRepo := database.NewVehicleRepository(sqlxDB)
	locationRepo := database.NewLocationRepository(sqlxDB)
	bookingRepo := database.NewBookingRepository(sqlxDB)
	paymentRepo := database.NewPaymentRepository(sqlxDB)
	ticketRepo := database.NewTicketRepository(sqlxDB)
	supportRepo := database.NewSupportTicketRepository(sqlxDB)
	dashboardRepo := database.NewDashboardRepository(sqlxDB)
	analyticsRepo := database.NewAnalyticsRepository(sqlxDB)
	rateLimitRepo := database.NewRateLimitRepository(sqlxDB)

	// Services
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	stripeService := services.NewStripeService(&cfg.Stripe, logger)
	mailService := mailer.New(&cfg.Email, logger)
	confirmationService := services.NewBookingConfirmationService(
		sqlxDB, stripeService, bookingRepo, paymentRepo, locationRepo, logger)

	rateWindow := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
	cronService := services.NewCronService(bookingRepo, rateLimitRepo, rateWindow, logger)
	if err := cronService.Start(); err != nil {
		logger.Fatalf("Failed to start cron service: %v", err)
	}
	defer cronService.Stop()

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, jwtService, mailService, cfg.Security.BcryptCost)
	userHandler := handlers.NewUserHandler(userRepo, cfg.Security.BcryptCost)
	specHandler := handlers.NewVehicleSpecHandler(specRepo)
	vehicleHandler := handlers.NewVehicleHandler(vehicleRepo)
	locationHandler := handlers.NewLocationHandler(locationRepo)
	bookingHandler := handlers.NewBookingHandler(bookingRepo)
	paymentHandler := handlers.NewPaymentHandler(paymentRepo, userRepo, stripeService, confirmationService, mailService)
	ticketHandler := handlers.NewTicketHandler(ticketRepo)
	supportHandler := handlers.NewSupportHandler(supportRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardRepo)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsRepo)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Security.EnableRequestLog))
	router.Use(middleware.Metrics())
	router.Use(middleware.RateLimit(rateLimitRepo, cfg.RateLimit.Requests, rateWindow))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin := middleware.RequireRole(jwtService, models.PolicyAdmin)
	customer := middleware.RequireRole(jwtService, models.PolicyCustomer)
	anyRole := middleware.RequireRole(jwtService, models.PolicyBoth)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		users := api.Group("/users")
		{
			users.GET("/me", anyRole, userHandler.GetMe)
			users.GET("", admin, userHandler.GetAll)
			users.GET("/:id", admin, userHandler.GetByID)
			users.POST("", admin, userHandler.Create)
			users.PUT("/:id", admin, userHandler.Update)
			users.DELETE("/:id", admin, userHandler.Delete)
		}

		specs := api.Group("/vehiclespecs")
		{
			specs.GET("", specHandler.GetAll)
			specs.GET("/:id", specHandler.GetByID)
			specs.POST("", admin, specHandler.Create)
			specs.PUT("/:id", admin, specHandler.Update)
			specs.DELETE("/:id", admin, specHandler.Delete)
		}

		vehicles := api.Group("/vehicles")
		{
			vehicles.GET("", vehicleHandler.GetAll)
			vehicles.GET("/available", vehicleHandler.GetAvailable)
			vehicles.GET("/:id", vehicleHandler.GetByID)
			vehicles.POST("", admin, vehicleHandler.Create)
			vehicles.PUT("/:id", admin, vehicleHandler.Update)
			vehicles.DELETE("/:id", admin, vehicleHandler.Delete)
		}

		locations := api.Group("/locations")
		{
			locations.GET("", locationHandler.GetAll)
			locations.GET("/:id", locationHandler.GetByID)
			locations.POST("", admin, locationHandler.Create)
			locations.PUT("/:id", admin, locationHandler.Update)
			locations.DELETE("/:id", admin, locationHandler.Delete)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", anyRole, bookingHandler.GetAll)
			bookings.GET("/:id", anyRole, bookingHandler.GetByID)
			bookings.GET("/user/:userId", anyRole, bookingHandler.GetByUserID)
			bookings.POST("", anyRole, bookingHandler.Create)
			bookings.PUT("/:id", anyRole, bookingHandler.Update)
			bookings.DELETE("/:id", admin, bookingHandler.Delete)
		}

		payments := api.Group("/payments")
		{
			payments.POST("/create-intent", customer, paymentHandler.CreateIntent)
			payments.POST("/confirm", customer, paymentHandler.Confirm)
			payments.GET("", anyRole, paymentHandler.GetAll)
			payments.GET("/:id", anyRole, paymentHandler.GetByID)
			payments.GET("/booking/:bookingId", anyRole, paymentHandler.GetByBookingID)
			payments.POST("", anyRole, paymentHandler.Create)
			payments.PUT("/:id", anyRole, paymentHandler.Update)
			payments.DELETE("/:id", admin, paymentHandler.Delete)
		}

		tickets := api.Group("/tickets")
		{
			tickets.GET("", anyRole, ticketHandler.GetAll)
			tickets.GET("/:id", anyRole, ticketHandler.GetByID)
			tickets.GET("/user/:userId", anyRole, ticketHandler.GetByUserID)
			tickets.POST("", anyRole, ticketHandler.Create)
			tickets.PUT("/:id", anyRole, ticketHandler.Update)
			tickets.DELETE("/:id", admin, ticketHandler.Delete)
		}

		support := api.Group("/support")
		{
			// Walk-in customers can open tickets without an account
			support.POST("/tickets", supportHandler.Create)
			support.GET("/tickets/reference/:reference", supportHandler.GetByReference)
			support.GET("/tickets", admin, supportHandler.GetAll)
			support.GET("/tickets/search", admin, supportHandler.Search)
			support.GET("/tickets/customer/:customerId", anyRole, supportHandler.GetByCustomerID)
			support.GET("/tickets/:id", admin, supportHandler.GetByID)
			support.PATCH("/tickets/:id/status", admin, supportHandler.UpdateStatus)
			support.PATCH("/tickets/:id/assign", admin, supportHandler.Assign)
			support.POST("/tickets/:id/replies", anyRole, supportHandler.AddReply)
			support.GET("/tickets/:id/replies", anyRole, supportHandler.GetReplies)
			support.GET("/stats", admin, supportHandler.GetStats)
		}

		dashboard := api.Group("/dashboard", admin)
		{
			dashboard.GET("/stats", dashboardHandler.GetStats)
			dashboard.GET("/recent-bookings", dashboardHandler.GetRecentBookings)
			dashboard.GET("/top-vehicles", dashboardHandler.GetTopVehicles)
			dashboard.GET("/monthly-revenue", dashboardHandler.GetMonthlyRevenue)
		}

		analytics := api.Group("/analytics", admin)
		{
			analytics.GET("/stats", analyticsHandler.GetStats)
			analytics.GET("/revenue-trend", analyticsHandler.GetRevenueTrend)
			analytics.GET("/booking-trend", analyticsHandler.GetBookingTrend)
			analytics.GET("/user-growth", analyticsHandler.GetUserGrowth)
			analytics.GET("/vehicle-types", analyticsHandler.GetVehicleTypes)
			analytics.GET("/kpi", analyticsHandler.GetKpiMetrics)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Forced shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
