package catalog

import (
	"net/http"

	"courtly/internal/shared/apperrors"
	"courtly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListCourts godoc
// @Summary List active courts
// @Tags catalog
// @Produce json
// @Param type query string false "indoor or outdoor"
// @Success 200 {object} response.StandardApiResponse{data=CourtListResponse}
// @Router /courts [get]
func (ctrl *Controller) ListCourts(c *gin.Context) {
	var query CourtListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	courts, err := ctrl.service.ListCourts(c.Request.Context(), CourtFilter{Type: CourtType(query.Type), ActiveOnly: true})
	if err != nil {
		response.RespondError(c, "Failed to get courts", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Courts retrieved successfully", CourtListResponse{Courts: courts, Total: len(courts)}, nil)
}

// GetCourt godoc
// @Summary Get a court
// @Tags catalog
// @Produce json
// @Param id path string true "Court ID"
// @Success 200 {object} response.StandardApiResponse{data=Court}
// @Failure 404 {object} response.StandardApiResponse
// @Router /courts/{id} [get]
func (ctrl *Controller) GetCourt(c *gin.Context) {
	id, ok := parseID(c, "court")
	if !ok {
		return
	}

	court, err := ctrl.service.GetCourt(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, "Failed to get court", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Court retrieved successfully", court, nil)
}

// ListCoaches godoc
// @Summary List active coaches
// @Tags catalog
// @Produce json
// @Success 200 {object} response.StandardApiResponse{data=CoachListResponse}
// @Router /coaches [get]
func (ctrl *Controller) ListCoaches(c *gin.Context) {
	coaches, err := ctrl.service.ListCoaches(c.Request.Context())
	if err != nil {
		response.RespondError(c, "Failed to get coaches", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Coaches retrieved successfully", CoachListResponse{Coaches: coaches, Total: len(coaches)}, nil)
}

// GetCoach godoc
// @Summary Get a coach with weekly availability
// @Tags catalog
// @Produce json
// @Param id path string true "Coach ID"
// @Success 200 {object} response.StandardApiResponse{data=Coach}
// @Failure 404 {object} response.StandardApiResponse
// @Router /coaches/{id} [get]
func (ctrl *Controller) GetCoach(c *gin.Context) {
	id, ok := parseID(c, "coach")
	if !ok {
		return
	}

	coach, err := ctrl.service.GetCoach(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, "Failed to get coach", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Coach retrieved successfully", coach, nil)
}

// ListEquipment godoc
// @Summary List rentable equipment
// @Tags catalog
// @Produce json
// @Success 200 {object} response.StandardApiResponse{data=EquipmentListResponse}
// @Router /equipment [get]
func (ctrl *Controller) ListEquipment(c *gin.Context) {
	items, err := ctrl.service.ListEquipment(c.Request.Context())
	if err != nil {
		response.RespondError(c, "Failed to get equipment", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Equipment retrieved successfully", EquipmentListResponse{Equipment: items, Total: len(items)}, nil)
}

// ListPricingRules godoc
// @Summary List active pricing rules in application order
// @Tags catalog
// @Produce json
// @Success 200 {object} response.StandardApiResponse{data=PricingRuleListResponse}
// @Router /pricing-rules [get]
func (ctrl *Controller) ListPricingRules(c *gin.Context) {
	rules, err := ctrl.service.ListActivePricingRules(c.Request.Context())
	if err != nil {
		response.RespondError(c, "Failed to get pricing rules", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Pricing rules retrieved successfully", PricingRuleListResponse{Rules: rules, Total: len(rules)}, nil)
}

func parseID(c *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, "Invalid "+resource+" ID", apperrors.Validation("invalid %s id %q", resource, c.Param("id")))
		return uuid.Nil, false
	}
	return id, true
}
