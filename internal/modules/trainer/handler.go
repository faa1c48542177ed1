package trainer

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
	v1.GET("/trainers", h.List)
	v1.GET("/trainers/:id", h.Get)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	me := protected.Group("/trainers/me", middleware.RequireRole(domain.RoleTrainer))
	{
		me.GET("", h.GetMine)
		me.PUT("", h.UpdateMine)

		me.GET("/pricing", h.ListPricing)
		me.POST("/pricing", h.CreatePricing)
		me.PUT("/pricing/:id", h.UpdatePricing)
		me.DELETE("/pricing/:id", h.DeletePricing)

		me.GET("/availability", h.ListAvailability)
		me.PUT("/availability", h.ReplaceAvailability)
	}
}

// List godoc
// @Summary		Browse trainers
// @Tags		Trainers
// @Param		specialty	query	string	false	"specialty tag"
// @Param		city		query	string	false	"city"
// @Param		min_rating	query	number	false	"minimum rating"
// @Param		max_price	query	number	false	"maximum starting price"
// @Param		q			query	string	false	"free text"
// @Param		sort		query	string	false	"rating|price|newest"
// @Router		/trainers [GET]
func (h *Handler) List(c *gin.Context) {
	minRating, ok := httpx.OptionalFloat(c, "min_rating")
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "min_rating must be a number")
		return
	}
	maxPrice, ok := httpx.OptionalFloat(c, "max_price")
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "max_price must be a number")
		return
	}
	page, limit := httpx.Pagination(c)

	q := ListQuery{
		Specialty: c.Query("specialty"),
		City:      c.Query("city"),
		MinRating: minRating,
		MaxPrice:  maxPrice,
		Query:     c.Query("q"),
		Sort:      c.Query("sort"),
		Page:      page,
		Limit:     limit,
	}
	trainers, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list trainers")
		return
	}
	response.Page(c, "trainers", trainers, total, page, limit)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid trainer id")
		return
	}
	detail, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, detail)
}

func (h *Handler) GetMine(c *gin.Context) {
	t, err := h.service.GetMine(c.Request.Context(), httpx.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"trainer": t})
}

func (h *Handler) UpdateMine(c *gin.Context) {
	var req UpdateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}
	t, err := h.service.UpdateMine(c.Request.Context(), httpx.UserID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"trainer": t})
}

func (h *Handler) ListPricing(c *gin.Context) {
	rows, err := h.service.ListPricing(c.Request.Context(), httpx.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"pricing": rows})
}

// CreatePricing godoc
// @Summary		Add a price list row
// @Tags		Trainers
// @Security	BearerAuth
// @Param		request	body	PricingRequest	true	"title, session_type, sessions, duration_minutes, price"
// @Router		/trainers/me/pricing [POST]
func (h *Handler) CreatePricing(c *gin.Context) {
	var req PricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}
	p, err := h.service.CreatePricing(c.Request.Context(), httpx.UserID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, gin.H{"pricing": p})
}

func (h *Handler) UpdatePricing(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pricing id")
		return
	}
	var req PricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}
	p, err := h.service.UpdatePricing(c.Request.Context(), httpx.UserID(c), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"pricing": p})
}

func (h *Handler) DeletePricing(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pricing id")
		return
	}
	if err := h.service.DeletePricing(c.Request.Context(), httpx.UserID(c), id); err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func (h *Handler) ListAvailability(c *gin.Context) {
	slots, err := h.service.ListAvailability(c.Request.Context(), httpx.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"slots": slots})
}

// ReplaceAvailability godoc
// @Summary		Replace the weekly schedule
// @Tags		Trainers
// @Security	BearerAuth
// @Param		request	body	ReplaceAvailabilityRequest	true	"slots: weekday 0-6, start_time/end_time HH:MM"
// @Router		/trainers/me/availability [PUT]
func (h *Handler) ReplaceAvailability(c *gin.Context) {
	var req ReplaceAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}
	slots, err := h.service.ReplaceAvailability(c.Request.Context(), httpx.UserID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"slots": slots})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Trainer not found")
	case errors.Is(err, ErrNoTrainerProfile):
		response.Error(c, http.StatusNotFound, "NO_TRAINER_PROFILE", "Trainer profile not found")
	case errors.Is(err, ErrPricingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Pricing not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, ErrInvalidPricing), errors.Is(err, ErrInvalidSlot):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
	case errors.Is(err, ErrOverlappingSlots):
		response.ErrorWithDetails(c, http.StatusBadRequest, "OVERLAPPING_SLOTS", "Availability slots overlap", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
