package payout

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
	me := protected.Group("/trainers/me", middleware.RequireRole(domain.RoleTrainer))
	me.GET("/earnings", h.Earnings)
	me.GET("/payouts", h.ListPayouts)
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/payouts/pending", h.ListPending)
	admin.GET("/payout-batches", h.ListBatches)
	admin.POST("/payout-batches", h.CreateBatch)
	admin.GET("/payout-batches/:id", h.GetBatch)
	admin.POST("/payout-batches/:id/paid", h.MarkBatchPaid)
}

func (h *Handler) Earnings(c *gin.Context) {
	sum, err := h.svc.Earnings(c.Request.Context(), httpx.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"earnings": sum})
}

func (h *Handler) ListPayouts(c *gin.Context) {
	page, limit := httpx.Pagination(c)
	rows, total, err := h.svc.ListPayouts(c.Request.Context(), httpx.UserID(c), c.Query("status"), page, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Page(c, "payouts", rows, total, page, limit)
}

func (h *Handler) ListPending(c *gin.Context) {
	minAmount, ok := httpx.OptionalFloat(c, "min_amount")
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "min_amount must be a number")
		return
	}
	var min float64
	if minAmount != nil {
		min = *minAmount
	}
	groups, err := h.svc.ListPending(c.Request.Context(), min)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"trainers": groups})
}

// CreateBatch godoc
// @Summary		Batch pending payouts
// @Description	Without payout_ids every trainer whose pending total reaches min_payout_amount is included.
// @Tags		Admin
// @Security	BearerAuth
// @Param		request	body	CreateBatchRequest	false	"payout_ids"
// @Success		201	{object}	map[string]interface{}
// @Router		/admin/payout-batches [POST]
func (h *Handler) CreateBatch(c *gin.Context) {
	var req CreateBatchRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}
	}
	batch, err := h.svc.CreateBatch(c.Request.Context(), httpx.UserID(c), req.PayoutIDs)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, gin.H{"batch": batch})
}

func (h *Handler) ListBatches(c *gin.Context) {
	page, limit := httpx.Pagination(c)
	rows, total, err := h.svc.ListBatches(c.Request.Context(), page, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Page(c, "batches", rows, total, page, limit)
}

func (h *Handler) GetBatch(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid batch id")
		return
	}
	b, err := h.svc.GetBatch(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"batch": b})
}

func (h *Handler) MarkBatchPaid(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid batch id")
		return
	}
	var req MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "reference is required")
		return
	}
	b, err := h.svc.MarkBatchPaid(c.Request.Context(), id, req.Reference)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"batch": b})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input")
	case errors.Is(err, ErrNoTrainerProfile), errors.Is(err, ErrBatchNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrBatchAlreadyPaid), errors.Is(err, ErrPayoutNotPending):
		response.Error(c, http.StatusConflict, "INVALID_STATE", err.Error())
	case errors.Is(err, ErrBelowMinimum), errors.Is(err, ErrNothingToBatch):
		response.Error(c, http.StatusUnprocessableEntity, "NOT_ELIGIBLE", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
