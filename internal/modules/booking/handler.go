package booking

import (
	"errors"
	"net/http"

	"trainerhub/internal/domain"
	"trainerhub/internal/middleware"
	"trainerhub/internal/pkg/httpx"
	"trainerhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/trainers/:id/availability", h.Availability)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/bookings", middleware.RequireRole(domain.RoleClient), h.Create)
	protected.GET("/bookings", h.ListMine)
	protected.GET("/bookings/:id", h.Get)
	protected.PATCH("/bookings/:id/status", h.Transition)
}

func actorFrom(c *gin.Context) Actor {
	return Actor{UserID: httpx.UserID(c), Role: domain.UserRole(httpx.Role(c))}
}

// Create godoc
// @Summary		Book a session
// @Tags		Bookings
// @Security	BearerAuth
// @Param		request	body	CreateBookingRequest	true	"trainer_id, pricing_id, start_time (RFC3339)"
// @Success		201	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{} "slot taken"
// @Router		/bookings [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	b, err := h.service.Create(c.Request.Context(), httpx.UserID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, gin.H{"booking": b})
}

func (h *Handler) ListMine(c *gin.Context) {
	page, limit := httpx.Pagination(c)
	rows, total, err := h.service.ListMine(c.Request.Context(), actorFrom(c), ListQuery{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Page(c, "bookings", rows, total, page, limit)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	b, err := h.service.Get(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"booking": b})
}

// Transition godoc
// @Summary		Change booking status
// @Tags		Bookings
// @Security	BearerAuth
// @Param		request	body	TransitionRequest	true	"status, reason (required for cancelled)"
// @Router		/bookings/{id}/status [PATCH]
func (h *Handler) Transition(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	b, err := h.service.Transition(c.Request.Context(), id, actorFrom(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"booking": b})
}

func (h *Handler) Availability(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid trainer id")
		return
	}
	date := c.Query("date")
	if date == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date is required (YYYY-MM-DD)")
		return
	}

	res, err := h.service.Availability(c.Request.Context(), id, date)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, res)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input")
	case errors.Is(err, ErrStartTooSoon):
		response.Error(c, http.StatusBadRequest, "START_TOO_SOON", "Start time is too soon")
	case errors.Is(err, ErrReasonRequired):
		response.Error(c, http.StatusBadRequest, "REASON_REQUIRED", "Cancellation reason is required")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrTrainerNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Trainer not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, ErrTrainerNotBookable), errors.Is(err, ErrPricingUnavailable):
		response.Error(c, http.StatusUnprocessableEntity, "NOT_BOOKABLE", err.Error())
	case errors.Is(err, ErrSlotTaken):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "Trainer is not available for the selected time")
	case errors.Is(err, ErrNotPaid):
		response.Error(c, http.StatusConflict, "PAYMENT_REQUIRED", "Booking must be paid before it can be completed")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", "Status change is not allowed")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
