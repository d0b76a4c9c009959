package catalog

import (
	"github.com/gin-gonic/gin"
)

// SetupCatalogRoutes registers the public read-only catalog endpoints.
func SetupCatalogRoutes(rg *gin.RouterGroup, controller *Controller) {
	courts := rg.Group("/courts")
	{
		courts.GET("", controller.ListCourts)    // GET /api/v1/courts
		courts.GET("/:id", controller.GetCourt) // GET /api/v1/courts/:id
	}

	coaches := rg.Group("/coaches")
	{
		coaches.GET("", controller.ListCoaches)   // GET /api/v1/coaches
		coaches.GET("/:id", controller.GetCoach) // GET /api/v1/coaches/:id
	}

	rg.GET("/equipment", controller.ListEquipment)        // GET /api/v1/equipment
	rg.GET("/pricing-rules", controller.ListPricingRules) // GET /api/v1/pricing-rules
}
