package bookings

import (
	"net/http"

	"courtly/internal/reservations"
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

// bindBody decodes and validates a booking body, answering 400 on failure.
func (ctrl *Controller) bindBody(c *gin.Context) (BookingRequest, bool) {
	var body BookingRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return BookingRequest{}, false
	}
	if err := ctrl.validator.Struct(&body); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, validation.Messages(err))
		return BookingRequest{}, false
	}
	req, err := body.ToBookingRequest()
	if err != nil {
		response.RespondError(c, "Invalid request body", err)
		return BookingRequest{}, false
	}
	return req, true
}

// actor reads the authenticated caller, answering 401 when absent.
func actor(c *gin.Context) (Actor, bool) {
	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return Actor{}, false
	}
	return Actor{UserID: userID, IsAdmin: role == middleware.RoleAdmin}, true
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.RespondError(c, "Invalid booking ID", apperrors.Validation("invalid %s %q", param, c.Param(param)))
		return uuid.Nil, false
	}
	return id, true
}

// CheckAvailability godoc
// @Summary Check court, coach and equipment availability
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body BookingRequestBody true "Candidate booking"
// @Success 200 {object} response.StandardApiResponse{data=availability.Result}
// @Failure 400 {object} response.StandardApiResponse
// @Router /bookings/check-availability [post]
func (ctrl *Controller) CheckAvailability(c *gin.Context) {
	req, ok := ctrl.bindBody(c)
	if !ok {
		return
	}

	result, err := ctrl.service.CheckAvailability(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, "Failed to check availability", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Availability checked", result, nil)
}

// CalculatePrice godoc
// @Summary Preview the price breakdown of a booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body BookingRequestBody true "Candidate booking"
// @Success 200 {object} response.StandardApiResponse{data=pricing.Breakdown}
// @Failure 404 {object} response.StandardApiResponse
// @Router /bookings/calculate-price [post]
func (ctrl *Controller) CalculatePrice(c *gin.Context) {
	req, ok := ctrl.bindBody(c)
	if !ok {
		return
	}

	breakdown, err := ctrl.service.PreviewPrice(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, "Failed to calculate price", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Price calculated", breakdown, nil)
}

// ListSlots godoc
// @Summary List a court's slot grid for a day
// @Tags bookings
// @Produce json
// @Param court_id path string true "Court ID"
// @Param date path string true "YYYY-MM-DD"
// @Param duration query int false "Slot length in minutes"
// @Success 200 {object} response.StandardApiResponse{data=SlotsResponse}
// @Router /bookings/slots/{court_id}/{date} [get]
func (ctrl *Controller) ListSlots(c *gin.Context) {
	courtID, ok := parseID(c, "court_id")
	if !ok {
		return
	}
	day, err := timeslot.ParseDate(c.Param("date"))
	if err != nil {
		response.RespondError(c, "Invalid date", apperrors.Wrap(apperrors.KindValidation, err, "invalid date"))
		return
	}
	var query SlotsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}
	if err := ctrl.validator.Struct(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, validation.Messages(err))
		return
	}

	slots, err := ctrl.service.ListAvailableSlots(c.Request.Context(), courtID, day, query.Duration)
	if err != nil {
		response.RespondError(c, "Failed to get slots", err)
		return
	}

	duration := query.Duration
	if duration == 0 && len(slots) > 0 {
		if w, err := timeslot.ParseWindow(slots[0].StartTime, slots[0].EndTime); err == nil {
			duration = w.End - w.Start
		}
	}
	response.RespondJSON(c, "success", http.StatusOK, "Slots retrieved successfully", SlotsResponse{
		CourtID:         courtID.String(),
		Date:            day.Format(timeslot.DateLayout),
		DurationMinutes: duration,
		Slots:           slots,
	}, nil)
}

// CreateBooking godoc
// @Summary Create a confirmed booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BookingRequestBody true "Booking"
// @Success 201 {object} response.StandardApiResponse{data=reservations.Reservation}
// @Failure 409 {object} response.StandardApiResponse{errors=[]availability.Issue}
// @Router /bookings [post]
func (ctrl *Controller) CreateBooking(c *gin.Context) {
	who, ok := actor(c)
	if !ok {
		return
	}
	req, ok := ctrl.bindBody(c)
	if !ok {
		return
	}

	res, err := ctrl.service.CreateBooking(c.Request.Context(), who, req)
	if err != nil {
		response.RespondError(c, "Failed to create booking", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Booking confirmed successfully", res, nil)
}

// GetBooking godoc
// @Summary Get a booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} response.StandardApiResponse{data=reservations.Reservation}
// @Failure 403 {object} response.StandardApiResponse
// @Router /bookings/{id} [get]
func (ctrl *Controller) GetBooking(c *gin.Context) {
	who, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	res, err := ctrl.service.GetBooking(c.Request.Context(), id, who)
	if err != nil {
		response.RespondError(c, "Failed to get booking", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking retrieved successfully", res, nil)
}

func (ctrl *Controller) bindListQuery(c *gin.Context) (ListBookingsQuery, bool) {
	var query ListBookingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return query, false
	}
	if err := ctrl.validator.Struct(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, validation.Messages(err))
		return query, false
	}
	return query, true
}

// ListMyBookings godoc
// @Summary List the caller's bookings, newest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} response.StandardApiResponse{data=BookingListResponse}
// @Router /bookings/my [get]
func (ctrl *Controller) ListMyBookings(c *gin.Context) {
	who, ok := actor(c)
	if !ok {
		return
	}
	query, ok := ctrl.bindListQuery(c)
	if !ok {
		return
	}

	filter := query.ToFilter()
	filter.CourtID = nil
	items, total, err := ctrl.service.ListMyBookings(c.Request.Context(), who, filter)
	if err != nil {
		response.RespondError(c, "Failed to get bookings", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bookings retrieved successfully", listResponse(items, total, query), nil)
}

// ListBookings godoc
// @Summary List all bookings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param court_id query string false "Court ID"
// @Param date query string false "YYYY-MM-DD"
// @Success 200 {object} response.StandardApiResponse{data=BookingListResponse}
// @Router /admin/bookings [get]
func (ctrl *Controller) ListBookings(c *gin.Context) {
	who, ok := actor(c)
	if !ok {
		return
	}
	query, ok := ctrl.bindListQuery(c)
	if !ok {
		return
	}

	items, total, err := ctrl.service.ListBookings(c.Request.Context(), who, query.ToFilter())
	if err != nil {
		response.RespondError(c, "Failed to get bookings", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bookings retrieved successfully", listResponse(items, total, query), nil)
}

func listResponse(items []reservations.Reservation, total int64, query ListBookingsQuery) BookingListResponse {
	limit := query.Limit
	if limit == 0 {
		limit = defaultPageSize
	}
	if items == nil {
		items = []reservations.Reservation{}
	}
	return BookingListResponse{Bookings: items, Total: total, Limit: limit, Offset: query.Offset}
}

// CancelBooking godoc
// @Summary Cancel a booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} response.StandardApiResponse{data=reservations.Reservation}
// @Failure 409 {object} response.StandardApiResponse
// @Router /bookings/{id}/cancel [post]
func (ctrl *Controller) CancelBooking(c *gin.Context) {
	who, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	res, err := ctrl.service.CancelBooking(c.Request.Context(), id, who)
	if err != nil {
		response.RespondError(c, "Failed to cancel booking", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking cancelled successfully", res, nil)
}

// CompleteBooking godoc
// @Summary Mark a confirmed booking as completed
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} response.StandardApiResponse{data=reservations.Reservation}
// @Router /admin/bookings/{id}/complete [post]
func (ctrl *Controller) CompleteBooking(c *gin.Context) {
	who, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	res, err := ctrl.service.CompleteBooking(c.Request.Context(), id, who)
	if err != nil {
		response.RespondError(c, "Failed to complete booking", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking completed successfully", res, nil)
}

// PromoteWaitlisted godoc
// @Summary Promote a waitlist entry to a confirmed booking
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Waitlist entry ID"
// @Success 200 {object} response.StandardApiResponse{data=reservations.Reservation}
// @Failure 409 {object} response.StandardApiResponse{errors=[]availability.Issue}
// @Router /admin/waitlist/{id}/promote [post]
func (ctrl *Controller) PromoteWaitlisted(c *gin.Context) {
	who, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	res, err := ctrl.service.PromoteWaitlisted(c.Request.Context(), id, who)
	if err != nil {
		response.RespondError(c, "Failed to promote waitlist entry", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Waitlist entry promoted successfully", res, nil)
}
