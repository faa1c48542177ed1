package chat

import (
	"errors"
	"net/http"

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
	protected.GET("/bookings/:id/messages", h.List)
	protected.POST("/bookings/:id/messages", h.Send)
	protected.POST("/bookings/:id/messages/read", h.MarkRead)
	protected.GET("/messages/unread", h.Unread)
}

// Send godoc
// @Summary		Send a message in a booking thread
// @Tags		Chat
// @Security	BearerAuth
// @Param		request	body	SendMessageRequest	true	"body"
// @Router		/bookings/{id}/messages [POST]
func (h *Handler) Send(c *gin.Context) {
	bookingID, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	msg, err := h.svc.Send(c.Request.Context(), bookingID, httpx.UserID(c), req.Body)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, gin.H{"message": msg})
}

func (h *Handler) List(c *gin.Context) {
	bookingID, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	after := httpx.ParseInt64Default(c.Query("after"), 0)
	limit := httpx.ParseIntDefault(c.Query("limit"), defaultLimit)

	rows, err := h.svc.List(c.Request.Context(), bookingID, httpx.UserID(c), after, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"messages": rows})
}

func (h *Handler) MarkRead(c *gin.Context) {
	bookingID, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	n, err := h.svc.MarkRead(c.Request.Context(), bookingID, httpx.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"marked": n})
}

func (h *Handler) Unread(c *gin.Context) {
	n, err := h.svc.Unread(c.Request.Context(), httpx.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"unread": n})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidBody):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrNotParticipant):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
