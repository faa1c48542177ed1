package feedback

import (
	"errors"
	"net/http"
	"strings"

	"trainerhub/internal/domain"
	"trainerhub/internal/middleware"
	"trainerhub/internal/pkg/httpx"
	"trainerhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc       *Service
	publicURL string
}

// NewHandler takes the public site URL used to build shareable links.
func NewHandler(svc *Service, publicURL string) *Handler {
	return &Handler{svc: svc, publicURL: strings.TrimRight(publicURL, "/")}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/feedback/:token", h.Resolve)
	public.POST("/feedback/:token", h.Submit)

	protected.POST("/feedback-links", middleware.RequireRole(domain.RoleTrainer, domain.RoleAdmin), h.CreateLink)
	protected.GET("/trainers/me/feedback", middleware.RequireRole(domain.RoleTrainer), h.ListResponses)
}

// CreateLink godoc
// @Summary		Create a one-time feedback link
// @Tags		Feedback
// @Security	BearerAuth
// @Param		request	body	CreateLinkRequest	true	"booking_id"
// @Success		201	{object}	map[string]interface{}
// @Router		/feedback-links [POST]
func (h *Handler) CreateLink(c *gin.Context) {
	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	l, err := h.svc.CreateLink(c.Request.Context(), httpx.UserID(c), httpx.IsAdmin(c), req.BookingID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, gin.H{
		"link": l,
		"url":  h.publicURL + "/feedback/" + l.Token,
	})
}

func (h *Handler) Resolve(c *gin.Context) {
	info, err := h.svc.Resolve(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, info)
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}
	resp, err := h.svc.Submit(c.Request.Context(), c.Param("token"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, gin.H{"response": resp})
}

func (h *Handler) ListResponses(c *gin.Context) {
	page, limit := httpx.Pagination(c)
	res, err := h.svc.ListResponses(c.Request.Context(), httpx.UserID(c), page, limit)
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
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrLinkExpired):
		response.Error(c, http.StatusGone, "LINK_EXPIRED", "This feedback link has expired")
	case errors.Is(err, ErrLinkUsed):
		response.Error(c, http.StatusConflict, "LINK_USED", "Feedback was already submitted")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, ErrBookingNotCompleted):
		response.Error(c, http.StatusUnprocessableEntity, "BOOKING_NOT_COMPLETED", "Booking is not completed")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
