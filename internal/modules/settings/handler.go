package settings

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

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

// RegisterAdminRoutes expects a group already guarded by AdminOnly.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/settings", h.Get)
	admin.PUT("/settings", h.Update)
}

func (h *Handler) Get(c *gin.Context) {
	cur, err := h.service.Current(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load settings")
		return
	}
	response.OK(c, gin.H{"settings": cur})
}

// Update applies a partial {"key": value} map.
// @Summary	Update platform settings
// @Tags		Admin - Settings
// @Security	BearerAuth
// @Router		/admin/settings [PUT]
func (h *Handler) Update(c *gin.Context) {
	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Body must be a JSON object")
		return
	}

	adminID := httpx.UserID(c)
	cur, err := h.service.Update(c.Request.Context(), adminID, patch)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownSetting), errors.Is(err, ErrInvalidValue):
			response.Error(c, http.StatusBadRequest, "INVALID_SETTING", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update settings")
		}
		return
	}

	log.Printf("admin action: UpdateSettings admin_id=%d keys=%d", adminID, len(patch))
	response.OK(c, gin.H{"settings": cur})
}
