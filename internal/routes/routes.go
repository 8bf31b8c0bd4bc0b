package routes

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/booklyhq/bookly-api/internal/audit"
	"github.com/booklyhq/bookly-api/internal/clock"
	"github.com/booklyhq/bookly-api/internal/config"
	"github.com/booklyhq/bookly-api/internal/handlers"
	infraRepo "github.com/booklyhq/bookly-api/internal/infra/repository"
	"github.com/booklyhq/bookly-api/internal/middleware"
	"github.com/booklyhq/bookly-api/internal/payment"
	ucBooking "github.com/booklyhq/bookly-api/internal/usecase/booking"
	ucSubscription "github.com/booklyhq/bookly-api/internal/usecase/subscription"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	log *slog.Logger,
	verifier payment.Verifier,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	publicLimiter := middleware.NewRateLimiter(
		rdb, cfg.RateLimitPerMin, time.Minute, "rl:public", log,
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	subscriptionRepo := infraRepo.NewSubscriptionGormRepository(db)

	clk := clock.System()

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo, clk)
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, clk, auditDispatcher, log)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, clk, auditDispatcher)
	completeBookingUC := ucBooking.NewCompleteBooking(bookingRepo, clk, auditDispatcher)
	destroyBookingUC := ucBooking.NewDestroyBooking(bookingRepo, auditDispatcher)
	listBookingsUC := ucBooking.NewListBookingsByDate(bookingRepo)

	// ======================================================
	// USE CASES — SUBSCRIPTIONS
	// ======================================================
	startTrialUC := ucSubscription.NewStartTrial(
		subscriptionRepo, clk, auditDispatcher,
		cfg.SubscriptionAmount, cfg.SubscriptionCurrency,
	)
	activateUC := ucSubscription.NewActivateFromPayment(subscriptionRepo, clk, auditDispatcher)
	cancelSubscriptionUC := ucSubscription.NewCancelSubscription(subscriptionRepo, clk, auditDispatcher)
	entitlementUC := ucSubscription.NewCheckEntitlement(subscriptionRepo, clk)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	businessHandler := handlers.NewBusinessHandler(db, entitlementUC, auditDispatcher)
	categoryHandler := handlers.NewCategoryHandler(db)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)

	bookingHandler := handlers.NewBookingHandler(
		bookingRepo,
		createBookingUC,
		cancelBookingUC,
		completeBookingUC,
		destroyBookingUC,
		listBookingsUC,
	)

	subscriptionHandler := handlers.NewSubscriptionHandler(
		subscriptionRepo,
		verifier,
		cfg,
		startTrialUC,
		activateUC,
		cancelSubscriptionUC,
		entitlementUC,
	)

	queueTicketHandler := handlers.NewQueueTicketHandler(db, clk, auditDispatcher)
	publicHandler := handlers.NewPublicHandler(db, availabilityUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(publicLimiter.Handler())
		{
			publicAPI.GET("/categories", categoryHandler.List)
			publicAPI.GET("/businesses", publicHandler.ListBusinesses)
			publicAPI.GET("/businesses/:business_id/services", publicHandler.ListServices)
			publicAPI.GET("/services/:service_id/availability", publicHandler.Availability)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// Businesses
			secured.POST("/businesses", businessHandler.Create)
			secured.GET("/businesses/:business_id", businessHandler.Get)
			secured.PATCH("/businesses/:business_id", businessHandler.Update)
			secured.GET("/me/businesses", businessHandler.ListMine)

			// Categories (admin)
			secured.POST("/categories", categoryHandler.Create)

			// Services
			secured.GET("/businesses/:business_id/services", serviceHandler.List)
			secured.POST("/businesses/:business_id/services", serviceHandler.Create)
			secured.PATCH("/businesses/:business_id/services/:id", serviceHandler.Update)
			secured.DELETE("/businesses/:business_id/services/:id", serviceHandler.Delete)

			// Bookings
			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListMine)
			secured.GET("/businesses/:business_id/bookings", bookingHandler.ListForBusiness)
			secured.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)
			secured.PATCH("/bookings/:id/complete", bookingHandler.Complete)
			secured.DELETE("/bookings/:id", bookingHandler.Destroy)

			// Queue tickets
			secured.POST("/queue-tickets", queueTicketHandler.Issue)
			secured.PATCH("/queue-tickets/:id", queueTicketHandler.UpdateStatus)
			secured.GET("/businesses/:business_id/queue-tickets", queueTicketHandler.ListForBusiness)

			// Subscriptions
			secured.GET("/me/subscriptions", subscriptionHandler.ListMine)
			secured.GET("/me/entitlement", subscriptionHandler.Entitlement)
			secured.POST("/subscriptions/trial", subscriptionHandler.StartTrial)
			secured.POST("/subscriptions/activate", subscriptionHandler.Activate)
			secured.PATCH("/subscriptions/:id/cancel", subscriptionHandler.Cancel)

			// Audit
			secured.GET("/businesses/:business_id/audit-logs", auditLogsHandler.List)
		}
	}
}
