package admin

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"trainerhub/internal/modules/booking"
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

// RegisterRoutes expects a group already guarded by AdminOnly.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	// trainer moderation
	admin.GET("/trainers", h.ListTrainers)
	admin.POST("/trainers/:id/approve", h.ApproveTrainer)
	admin.POST("/trainers/:id/reject", h.RejectTrainer)
	admin.POST("/trainers/:id/suspend", h.SuspendTrainer)

	// users
	admin.GET("/users", h.ListUsers)
	admin.PATCH("/users/:id/ban", h.BanUser)
	admin.PATCH("/users/:id/unban", h.UnbanUser)

	// bookings
	admin.GET("/bookings", h.ListBookings)
	admin.PATCH("/bookings/:id/status", h.ForceTransition)

	admin.GET("/stats", h.GetStats)
}

func (h *Handler) ListTrainers(c *gin.Context) {
	page, limit := httpx.Pagination(c)
	rows, total, err := h.service.ListTrainers(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Page(c, "trainers", rows, total, page, limit)
}

// ApproveTrainer godoc
// @Summary		Approve a trainer
// @Description	Pending, rejected and suspended trainers can be approved. Approved trainers appear in the catalog.
// @Tags		Admin
// @Security	BearerAuth
// @Param		id	path	int	true	"Trainer ID"
// @Success		200	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{} "already approved"
// @Router		/admin/trainers/{id}/approve [POST]
func (h *Handler) ApproveTrainer(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid trainer id")
		return
	}
	t, err := h.service.ApproveTrainer(c.Request.Context(), id, httpx.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"trainer": t})
}

func (h *Handler) RejectTrainer(c *gin.Context) {
	id, req, ok := h.idAndReason(c, "Invalid trainer id")
	if !ok {
		return
	}
	t, err := h.service.RejectTrainer(c.Request.Context(), id, httpx.UserID(c), req.Reason)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"trainer": t})
}

func (h *Handler) SuspendTrainer(c *gin.Context) {
	id, req, ok := h.idAndReason(c, "Invalid trainer id")
	if !ok {
		return
	}
	t, err := h.service.SuspendTrainer(c.Request.Context(), id, httpx.UserID(c), req.Reason)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"trainer": t})
}

func (h *Handler) ListUsers(c *gin.Context) {
	page, limit := httpx.Pagination(c)
	f := UserListFilter{Role: c.Query("role"), Query: c.Query("q")}
	if raw := c.Query("banned"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "banned must be true or false")
			return
		}
		f.Banned = &b
	}

	users, total, err := h.service.ListUsers(c.Request.Context(), f, page, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Page(c, "users", users, total, page, limit)
}

func (h *Handler) BanUser(c *gin.Context) {
	id, req, ok := h.idAndReason(c, "Invalid user id")
	if !ok {
		return
	}
	u, err := h.service.BanUser(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"user": u})
}

func (h *Handler) UnbanUser(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user id")
		return
	}
	u, err := h.service.UnbanUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"user": u})
}

func (h *Handler) ListBookings(c *gin.Context) {
	page, limit := httpx.Pagination(c)
	from, okFrom := httpx.OptionalDate(c, "from")
	to, okTo := httpx.OptionalDate(c, "to")
	if !okFrom || !okTo {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "from/to must be YYYY-MM-DD or RFC3339")
		return
	}

	rows, total, err := h.service.ListBookings(c.Request.Context(), BookingListFilter{
		Status:    c.Query("status"),
		TrainerID: httpx.ParseInt64Default(c.Query("trainer_id"), 0),
		ClientID:  httpx.ParseInt64Default(c.Query("client_id"), 0),
		From:      from,
		To:        to,
	}, page, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Page(c, "bookings", rows, total, page, limit)
}

func (h *Handler) ForceTransition(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	var req booking.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}
	b, err := h.service.ForceTransition(c.Request.Context(), httpx.UserID(c), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"booking": b})
}

// GetStats godoc
// @Summary		Platform statistics
// @Tags		Admin
// @Security	BearerAuth
// @Param		from	query	string	false	"YYYY-MM-DD, default 30 days ago"
// @Param		to		query	string	false	"YYYY-MM-DD, default now"
// @Router		/admin/stats [GET]
func (h *Handler) GetStats(c *gin.Context) {
	from, okFrom := httpx.OptionalDate(c, "from")
	to, okTo := httpx.OptionalDate(c, "to")
	if !okFrom || !okTo {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "from/to must be YYYY-MM-DD or RFC3339")
		return
	}
	var f, t time.Time
	if from != nil {
		f = *from
	}
	if to != nil {
		t = *to
	}

	stats, err := h.service.Statistics(c.Request.Context(), f, t)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"stats": stats})
}

func (h *Handler) idAndReason(c *gin.Context, badID string) (int64, ReasonRequest, bool) {
	var req ReasonRequest
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", badID)
		return 0, req, false
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return 0, req, false
	}
	return id, req, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, booking.ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input")
	case errors.Is(err, ErrReasonRequired), errors.Is(err, booking.ErrReasonRequired):
		response.Error(c, http.StatusBadRequest, "REASON_REQUIRED", "Reason is required")
	case errors.Is(err, ErrTrainerNotFound), errors.Is(err, ErrUserNotFound), errors.Is(err, booking.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrCannotBanAdmin):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrInvalidTrainerStatus), errors.Is(err, booking.ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", err.Error())
	case errors.Is(err, booking.ErrNotPaid):
		response.Error(c, http.StatusConflict, "PAYMENT_REQUIRED", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
