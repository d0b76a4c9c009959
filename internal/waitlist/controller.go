package waitlist

import (
	"fmt"
	"net/http"

	"courtly/internal/shared/apperrors"
	"courtly/internal/shared/middleware"
	"courtly/internal/shared/utils/response"
	"courtly/internal/shared/validation"
	"courtly/internal/timeslot"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validation.New(),
	}
}

// JoinWaitlist godoc
// @Summary Join the waitlist of a full slot
// @Tags waitlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body JoinWaitlistRequest true "Slot"
// @Success 201 {object} response.StandardApiResponse{data=reservations.Reservation}
// @Failure 400 {object} response.StandardApiResponse
// @Router /waitlist [post]
func (ctrl *Controller) JoinWaitlist(c *gin.Context) {
	userID, _, ok := middleware.CurrentUser(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var body JoinWaitlistRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := ctrl.validator.Struct(&body); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, validation.Messages(err))
		return
	}
	req, err := body.ToJoinRequest()
	if err != nil {
		response.RespondError(c, "Invalid request body", err)
		return
	}

	entry, err := ctrl.service.JoinWaitlist(c.Request.Context(), userID, req)
	if err != nil {
		response.RespondError(c, "Failed to join waitlist", err)
		return
	}

	msg := "Added to waitlist"
	if entry.WaitlistPosition != nil {
		msg = fmt.Sprintf("Added to waitlist at position %d", *entry.WaitlistPosition)
	}
	response.RespondJSON(c, "success", http.StatusCreated, msg, entry, nil)
}

// GetQueue godoc
// @Summary List the waitlist of a court and day
// @Tags waitlist
// @Produce json
// @Param court_id query string true "Court ID"
// @Param date query string true "YYYY-MM-DD"
// @Param start_time query string false "HH:MM"
// @Param end_time query string false "HH:MM"
// @Success 200 {object} response.StandardApiResponse{data=QueueResponse}
// @Router /waitlist [get]
func (ctrl *Controller) GetQueue(c *gin.Context) {
	var query QueueQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}
	if err := ctrl.validator.Struct(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, validation.Messages(err))
		return
	}
	slot, err := query.ToSlotQuery()
	if err != nil {
		response.RespondError(c, "Invalid query parameters", err)
		return
	}

	queue, err := ctrl.service.GetQueue(c.Request.Context(), slot)
	if err != nil {
		response.RespondError(c, "Failed to get waitlist", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Waitlist retrieved successfully", queue, nil)
}

// NotifyNext godoc
// @Summary Notify the next waiting entry of a court and day
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param court_id query string true "Court ID"
// @Param date query string true "YYYY-MM-DD"
// @Success 200 {object} response.StandardApiResponse{data=reservations.Reservation}
// @Router /admin/waitlist/notify [post]
func (ctrl *Controller) NotifyNext(c *gin.Context) {
	var query NotifyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}
	if err := ctrl.validator.Struct(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, validation.Messages(err))
		return
	}
	courtID, _ := uuid.Parse(query.CourtID)
	day, err := timeslot.ParseDate(query.Date)
	if err != nil {
		response.RespondError(c, "Invalid date", apperrors.Wrap(apperrors.KindValidation, err, "invalid date"))
		return
	}

	entry, err := ctrl.service.NotifyNext(c.Request.Context(), courtID, day)
	if err != nil {
		response.RespondError(c, "Failed to notify waitlist", err)
		return
	}
	if entry == nil {
		response.RespondJSON(c, "success", http.StatusOK, "Nobody is waiting", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Next entry notified", entry, nil)
}
