package bookings

import (
	"courtly/internal/shared/config"
	"courtly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	bookings := rg.Group("/bookings")
	{
		// Public read-only operations
		bookings.POST("/check-availability", controller.CheckAvailability) // POST /api/v1/bookings/check-availability
		bookings.POST("/calculate-price", controller.CalculatePrice)       // POST /api/v1/bookings/calculate-price
		bookings.GET("/slots/:court_id/:date", controller.ListSlots)       // GET /api/v1/bookings/slots/:court_id/:date

		authenticated := bookings.Group("")
		authenticated.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireRoles(middleware.RoleUser, middleware.RoleAdmin))
		{
			authenticated.POST("", controller.CreateBooking)            // POST /api/v1/bookings
			authenticated.GET("/my", controller.ListMyBookings)         // GET /api/v1/bookings/my
			authenticated.GET("/:id", controller.GetBooking)            // GET /api/v1/bookings/:id
			authenticated.POST("/:id/cancel", controller.CancelBooking) // POST /api/v1/bookings/:id/cancel
		}
	}

	admin := rg.Group("/admin")
	admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		admin.GET("/bookings", controller.ListBookings)                   // GET /api/v1/admin/bookings
		admin.POST("/bookings/:id/complete", controller.CompleteBooking)  // POST /api/v1/admin/bookings/:id/complete
		admin.POST("/waitlist/:id/promote", controller.PromoteWaitlisted) // POST /api/v1/admin/waitlist/:id/promote
	}
}

// Route definitions for reference:
//
// AVAILABILITY AND PRICING (public)
// POST   /api/v1/bookings/check-availability          - Check court, coach and equipment
// POST   /api/v1/bookings/calculate-price             - Price breakdown preview
// GET    /api/v1/bookings/slots/:court_id/:date       - Daily slot grid (?duration=60)
// Request body: { "court_id": "...", "coach_id": "...", "equipment": [{"equipment_id": "...", "quantity": 2}],
//                 "date": "2025-03-08", "start_time": "18:00", "end_time": "19:00" }
//
// BOOKINGS (authenticated)
// POST   /api/v1/bookings                             - Create a confirmed booking
// GET    /api/v1/bookings/my?status=&limit=&offset=   - Caller's bookings
// GET    /api/v1/bookings/:id                         - One booking (owner or admin)
// POST   /api/v1/bookings/:id/cancel                  - Cancel (owner or admin)
//
// ADMIN
// GET    /api/v1/admin/bookings?status=&court_id=&date= - All bookings
// POST   /api/v1/admin/bookings/:id/complete          - Confirmed to completed
// POST   /api/v1/admin/waitlist/:id/promote           - Waitlist entry to confirmed
