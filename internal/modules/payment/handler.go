package payment

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"trainerhub/internal/domain"
	"trainerhub/internal/middleware"
	"trainerhub/internal/pkg/httpx"
	"trainerhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	loggerf func(format string, args ...interface{})
}

func NewHandler(service *Service, loggerf func(format string, args ...interface{})) *Handler {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Handler{service: service, loggerf: loggerf}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/checkout", middleware.RequireRole(domain.RoleClient), h.InitCheckout)
	rg.GET("/bookings/:id/payments", h.ListForBooking)
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/callback", h.Callback)
	rg.GET("/payments/status/:invoice", h.Status)
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.POST("/bookings/:id/refund", h.Refund)
}

// InitCheckout godoc
// @Summary      Start hosted checkout
// @Description  Creates a checkout link and signature for an unpaid booking
// @Tags         Payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body CheckoutRequest true "booking_id"
// @Success      201 {object} CheckoutResponse
// @Router       /payments/checkout [post]
func (h *Handler) InitCheckout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "booking_id is required")
		return
	}
	resp, err := h.service.InitCheckout(c.Request.Context(), req.BookingID, httpx.UserID(c))
	if err != nil {
		h.loggerf("checkout init failed booking_id=%d err=%v", req.BookingID, err)
		h.fail(c, err)
		return
	}
	response.Created(c, resp)
}

// Callback godoc
// @Summary      Checkout provider callback
// @Description  Validates the signature and marks the payment paid (idempotent)
// @Tags         Payments
// @Produce      plain
// @Param        amount formData string true "Amount"
// @Param        invoice_id formData integer true "Invoice ID"
// @Param        signature formData string true "HMAC-SHA256 hex"
// @Success      200 {string} string "OK{invoice_id}"
// @Failure      403 {string} string "forbidden"
// @Router       /payments/callback [post]
func (h *Handler) Callback(c *gin.Context) {
	rawBody, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(strings.NewReader(string(rawBody)))
	_ = c.Request.ParseForm()
	h.loggerf("checkout callback raw_body=%s", string(rawBody))

	amount := c.PostForm("amount")
	invoiceID, err := strconv.ParseInt(c.PostForm("invoice_id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "bad request")
		return
	}
	signature := c.PostForm("signature")

	ack, err := h.service.HandleCallback(c.Request.Context(), amount, invoiceID, signature, string(rawBody))
	if err != nil {
		h.loggerf("checkout callback failed invoice_id=%d err=%v", invoiceID, err)
		switch {
		case errors.Is(err, ErrInvalidSignature), errors.Is(err, ErrAmountMismatch):
			c.String(http.StatusForbidden, "forbidden")
		case errors.Is(err, ErrNotFound):
			c.String(http.StatusNotFound, "unknown invoice")
		default:
			c.String(http.StatusInternalServerError, "internal error")
		}
		return
	}
	h.loggerf("checkout callback handled invoice_id=%d ack=%s", invoiceID, ack)
	c.String(http.StatusOK, ack)
}

func (h *Handler) Status(c *gin.Context) {
	invoiceID, err := strconv.ParseInt(c.Param("invoice"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid invoice id")
		return
	}
	res, err := h.service.Status(c.Request.Context(), invoiceID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, res)
}

func (h *Handler) ListForBooking(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	rows, err := h.service.ListForBooking(c.Request.Context(), id, httpx.UserID(c), httpx.IsAdmin(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"payments": rows})
}

func (h *Handler) Refund(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	b, err := h.service.Refund(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"booking": b})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, ErrNotPayable):
		response.Error(c, http.StatusConflict, "NOT_PAYABLE", "Booking is cancelled or already paid")
	case errors.Is(err, ErrNotRefundable):
		response.Error(c, http.StatusConflict, "NOT_REFUNDABLE", "Booking is not paid")
	case errors.Is(err, ErrNotConfigured):
		response.Error(c, http.StatusServiceUnavailable, "CHECKOUT_UNAVAILABLE", "Checkout is not configured")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
