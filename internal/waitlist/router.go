package waitlist

import (
	"courtly/internal/shared/config"
	"courtly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupWaitlistRoutes configures all waitlist-related routes
func SetupWaitlistRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	waitlist := rg.Group("/waitlist")
	{
		waitlist.GET("", controller.GetQueue) // GET /api/v1/waitlist?court_id=&date=&start_time=&end_time=

		authenticated := waitlist.Group("")
		authenticated.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireRoles(middleware.RoleUser, middleware.RoleAdmin))
		{
			authenticated.POST("", controller.JoinWaitlist) // POST /api/v1/waitlist
		}
	}

	adminWaitlist := rg.Group("/admin/waitlist")
	adminWaitlist.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		adminWaitlist.POST("/notify", controller.NotifyNext) // POST /api/v1/admin/waitlist/notify?court_id=&date=
	}
}
