package content

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

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/jobs", h.publicJobs)
	v1.GET("/stories", h.publicStories)
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/jobs", h.allJobs)
	admin.POST("/jobs", h.CreateJob)
	admin.PUT("/jobs/:id", h.UpdateJob)
	admin.DELETE("/jobs/:id", h.DeleteJob)

	admin.GET("/stories", h.allStories)
	admin.POST("/stories", h.CreateStory)
	admin.PUT("/stories/:id", h.UpdateStory)
	admin.DELETE("/stories/:id", h.DeleteStory)
}

func (h *Handler) publicJobs(c *gin.Context) { h.listJobs(c, true) }
func (h *Handler) allJobs(c *gin.Context)    { h.listJobs(c, false) }

func (h *Handler) listJobs(c *gin.Context, activeOnly bool) {
	rows, err := h.svc.ListJobs(c.Request.Context(), activeOnly)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"jobs": rows})
}

func (h *Handler) publicStories(c *gin.Context) { h.listStories(c, true) }
func (h *Handler) allStories(c *gin.Context)    { h.listStories(c, false) }

func (h *Handler) listStories(c *gin.Context, publishedOnly bool) {
	rows, err := h.svc.ListStories(c.Request.Context(), publishedOnly)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"stories": rows})
}

func (h *Handler) CreateJob(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	j, err := h.svc.CreateJob(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, gin.H{"job": j})
}

func (h *Handler) UpdateJob(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid job id")
		return
	}
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	j, err := h.svc.UpdateJob(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"job": j})
}

func (h *Handler) DeleteJob(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid job id")
		return
	}
	if err := h.svc.DeleteJob(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) CreateStory(c *gin.Context) {
	var req StoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	st, err := h.svc.CreateStory(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, gin.H{"story": st})
}

func (h *Handler) UpdateStory(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid story id")
		return
	}
	var req StoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	st, err := h.svc.UpdateStory(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"story": st})
}

func (h *Handler) DeleteStory(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid story id")
		return
	}
	if err := h.svc.DeleteStory(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) fail(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", verr.Fields)
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
