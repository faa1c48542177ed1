package request

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

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	client := protected.Group("/requests", middleware.RequireRole(domain.RoleClient))
	{
		client.POST("", h.Create)
		client.GET("/mine", h.ListMine)
		client.POST("/:id/close", h.Close)
		client.GET("/:id/applications", h.ListApplications)
	}
	protected.POST("/applications/:id/accept", middleware.RequireRole(domain.RoleClient), h.Accept)

	trainer := protected.Group("", middleware.RequireRole(domain.RoleTrainer))
	{
		trainer.GET("/requests/open", h.ListOpen)
		trainer.POST("/requests/:id/applications", h.Apply)
		trainer.GET("/applications/mine", h.ListMyApplications)
		trainer.POST("/applications/:id/withdraw", h.Withdraw)
	}
}

// Create godoc
// @Summary		Post a training request
// @Tags		Requests
// @Security	BearerAuth
// @Param		request	body	CreateRequest	true	"title, description, specialty, city, budget"
// @Success		201	{object}	map[string]interface{}
// @Router		/requests [POST]
func (h *Handler) Create(c *gin.Context) {
	var in CreateRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}
	req, err := h.svc.CreateRequest(c.Request.Context(), httpx.UserID(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, gin.H{"request": req})
}

func (h *Handler) ListMine(c *gin.Context) {
	page, limit := httpx.Pagination(c)
	rows, total, err := h.svc.ListMyRequests(c.Request.Context(), httpx.UserID(c), c.Query("status"), page, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Page(c, "requests", rows, total, page, limit)
}

func (h *Handler) Close(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request id")
		return
	}
	if err := h.svc.CloseRequest(c.Request.Context(), id, httpx.UserID(c)); err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"status": domain.RequestClosed})
}

func (h *Handler) ListApplications(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request id")
		return
	}
	rows, err := h.svc.ListApplications(c.Request.Context(), id, httpx.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"applications": rows})
}

// Accept godoc
// @Summary		Accept a trainer's application
// @Description	Fills the request, rejects competing applications and creates an assigned booking.
// @Tags		Requests
// @Security	BearerAuth
// @Param		request	body	AcceptRequest	true	"start_time, duration_minutes"
// @Success		201	{object}	map[string]interface{}
// @Router		/applications/{id}/accept [POST]
func (h *Handler) Accept(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid application id")
		return
	}
	var in AcceptRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}
	b, err := h.svc.Accept(c.Request.Context(), id, httpx.UserID(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, gin.H{"booking": b})
}

func (h *Handler) ListOpen(c *gin.Context) {
	page, limit := httpx.Pagination(c)
	rows, total, err := h.svc.ListOpen(c.Request.Context(), httpx.UserID(c), OpenFilter{
		Specialty: c.Query("specialty"),
		City:      c.Query("city"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Page(c, "requests", rows, total, page, limit)
}

func (h *Handler) Apply(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request id")
		return
	}
	var in ApplyRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}
	app, err := h.svc.Apply(c.Request.Context(), httpx.UserID(c), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, gin.H{"application": app})
}

func (h *Handler) Withdraw(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid application id")
		return
	}
	if err := h.svc.Withdraw(c.Request.Context(), httpx.UserID(c), id); err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"status": domain.ApplicationWithdrawn})
}

func (h *Handler) ListMyApplications(c *gin.Context) {
	page, limit := httpx.Pagination(c)
	rows, total, err := h.svc.ListMyApplications(c.Request.Context(), httpx.UserID(c), page, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Page(c, "applications", rows, total, page, limit)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input")
	case errors.Is(err, ErrStartTooSoon):
		response.Error(c, http.StatusBadRequest, "START_TOO_SOON", "Start time is too soon")
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrApplicationNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrOwnRequest):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, ErrTrainerNotApproved):
		response.Error(c, http.StatusForbidden, "TRAINER_NOT_APPROVED", "Trainer profile is not approved")
	case errors.Is(err, ErrAlreadyApplied):
		response.Error(c, http.StatusConflict, "ALREADY_APPLIED", "You already applied to this request")
	case errors.Is(err, ErrRequestNotOpen), errors.Is(err, ErrApplicationClosed):
		response.Error(c, http.StatusConflict, "INVALID_STATE", err.Error())
	case errors.Is(err, ErrSlotTaken):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "Trainer is not available for the selected time")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
