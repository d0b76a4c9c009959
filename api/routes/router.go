// api/routes/router.go
package routes

import (
	"log/slog"
	"net/http"
	"time"

	"courtly/internal/availability"
	"courtly/internal/bookings"
	"courtly/internal/catalog"
	"courtly/internal/notifications"
	"courtly/internal/reservations"
	"courtly/internal/shared/config"
	"courtly/internal/shared/database"
	"courtly/internal/waitlist"
	"courtly/pkg/cache"
	"courtly/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher notifications.Publisher
	log       *logger.Logger

	// Shared across modules, built once in SetupRoutes
	cacheService   cache.Service
	catalogService catalog.Service
	store          reservations.Store
	checker        *availability.Checker
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, publisher notifications.Publisher) *Router {
	if publisher == nil {
		publisher = notifications.NoopPublisher{}
	}
	return &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
		log:       logger.GetDefault(),
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) error {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	if err := r.initShared(); err != nil {
		return err
	}

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupCatalogRoutes(api)

		// Waitlist first so bookings can notify it on cancel
		waitlistService := r.setupWaitlistRoutes(api)
		r.setupBookingRoutes(api, waitlistService)
	}
	return nil
}

// initShared builds the stores and checker every module reads through.
func (r *Router) initShared() error {
	if redisClient := r.db.GetRedis(); redisClient != nil {
		r.cacheService = cache.NewService(redisClient)
	}

	r.catalogService = catalog.NewService(catalog.NewRepository(r.db.GetPostgreSQL()))
	if r.cacheService != nil {
		r.catalogService.SetCacheService(r.cacheService, r.config.Booking.CatalogCacheTTL)
	}

	r.store = reservations.NewRepository(r.db.GetPostgreSQL())

	r.checker = availability.NewChecker(r.store, r.catalogService)
	if err := r.checker.SetOperatingHours(r.config.Booking.OpenTime, r.config.Booking.CloseTime); err != nil {
		return err
	}
	if r.config.Booking.EnforceCoachHours {
		r.checker.SetCoachPolicy(availability.WeeklyHoursPolicy{Coaches: r.catalogService})
		r.log.Info("Coach weekly hours enforced")
	}
	return nil
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		// Perform health checks
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			r.log.Warn("Health check failed", slog.Any("error", err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "courtly-api",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "courtly-api",
			"redis":     r.db.GetRedis() != nil,
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupCatalogRoutes configures the read-only catalog routes
func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) {
	catalog.SetupCatalogRoutes(rg, catalog.NewController(r.catalogService))
}

// setupWaitlistRoutes configures waitlist routes
func (r *Router) setupWaitlistRoutes(rg *gin.RouterGroup) waitlist.Service {
	waitlistService := waitlist.NewService(r.store, r.catalogService, r.publisher, nil)
	if r.cacheService != nil {
		waitlistService.SetCacheService(r.cacheService)
	}

	waitlist.SetupWaitlistRoutes(rg, waitlist.NewController(waitlistService), r.config)
	return waitlistService
}

// setupBookingRoutes configures booking management routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup, notifier bookings.WaitlistNotifier) {
	bookingConfig := bookings.DefaultServiceConfig()
	bookingConfig.DefaultSlotMinutes = r.config.Booking.SlotMinutes
	bookingConfig.SlotsCacheTTL = r.config.Booking.SlotsCacheTTL

	bookingService := bookings.NewService(r.store, r.catalogService, r.checker, r.publisher, bookingConfig)
	if r.cacheService != nil {
		bookingService.SetCacheService(r.cacheService)
	}
	bookingService.SetWaitlistNotifier(notifier)

	bookings.SetupBookingRoutes(rg, bookings.NewController(bookingService), r.config)
}
