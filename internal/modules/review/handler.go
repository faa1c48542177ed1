package review

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
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.GET("/trainers/:id/reviews", h.ListForTrainer)
	}
	if protected != nil {
		protected.POST("/reviews", middleware.RequireRole(domain.RoleClient), h.Create)
	}
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/reviews", h.ListForModeration)
	admin.PATCH("/reviews/:id/hide", h.Hide)
	admin.PATCH("/reviews/:id/show", h.Show)
}

// Create leaves a review for a completed booking.
// @Summary		Review a trainer
// @Description	Only the client of a completed booking may review it, once.
// @Tags		Reviews
// @Security	BearerAuth
// @Param		request	body	CreateReviewRequest	true	"booking_id, rating 1-5, comment"
// @Success		201	{object}		map[string]interface{}
// @Failure		403	{object}		map[string]interface{} "not the booking's client"
// @Failure		409	{object}		map[string]interface{} "already reviewed"
// @Failure		422	{object}		map[string]interface{} "booking not completed"
// @Router		/reviews [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	rv, err := h.svc.Create(c.Request.Context(), httpx.UserID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, gin.H{"review": rv})
}

func (h *Handler) ListForTrainer(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid trainer id")
		return
	}
	page, limit := httpx.Pagination(c)
	rows, total, err := h.svc.ListForTrainer(c.Request.Context(), id, page, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Page(c, "reviews", rows, total, page, limit)
}

func (h *Handler) ListForModeration(c *gin.Context) {
	page, limit := httpx.Pagination(c)
	rows, total, err := h.svc.ListForModeration(c.Request.Context(), c.Query("hidden") == "true", page, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Page(c, "reviews", rows, total, page, limit)
}

func (h *Handler) Hide(c *gin.Context) { h.setHidden(c, true) }

func (h *Handler) Show(c *gin.Context) { h.setHidden(c, false) }

func (h *Handler) setHidden(c *gin.Context, hidden bool) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid review id")
		return
	}
	rv, err := h.svc.SetHidden(c.Request.Context(), id, hidden)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"review": rv})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only review your own bookings")
	case errors.Is(err, ErrReviewNotAllowed):
		response.Error(c, http.StatusUnprocessableEntity, "REVIEW_NOT_ALLOWED", "Booking is not completed")
	case errors.Is(err, ErrAlreadyReviewed):
		response.Error(c, http.StatusConflict, "ALREADY_REVIEWED", "This booking already has a review")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process review")
	}
}
