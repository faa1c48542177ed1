package auth

import (
	"errors"
	"net/http"

	"trainerhub/internal/pkg/httpx"
	"trainerhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register/client", h.RegisterClient)
		authGroup.POST("/register/trainer", h.RegisterTrainer)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	userGroup := protected.Group("/users")
	{
		userGroup.GET("/me", h.GetMe)
		userGroup.PUT("/me", h.UpdateProfile)
	}
}

// RegisterClient creates a client account and returns a token.
// @Summary		Register client
// @Tags		Auth
// @Param		request	body	RegisterClientRequest	true	"email, password, full_name, phone"
// @Success		201	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{} "email already registered"
// @Router		/auth/register/client [POST]
func (h *Handler) RegisterClient(c *gin.Context) {
	var req RegisterClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	res, err := h.service.RegisterClient(c.Request.Context(), req)
	if err != nil {
		h.registrationError(c, err)
		return
	}
	response.Created(c, res)
}

// RegisterTrainer creates a trainer account whose listing waits for admin approval.
// @Summary		Register trainer
// @Tags		Auth
// @Param		request	body	RegisterTrainerRequest	true	"account fields plus headline, city, specialties"
// @Success		201	{object}	map[string]interface{}
// @Router		/auth/register/trainer [POST]
func (h *Handler) RegisterTrainer(c *gin.Context) {
	var req RegisterTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	res, err := h.service.RegisterTrainer(c.Request.Context(), req)
	if err != nil {
		h.registrationError(c, err)
		return
	}
	response.Created(c, res)
}

func (h *Handler) registrationError(c *gin.Context, err error) {
	if errors.Is(err, ErrEmailAlreadyExists) {
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
		return
	}
	_ = c.Error(err)
	response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register")
}

// Login exchanges email and password for a token.
// @Summary		Login
// @Tags		Auth
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
		case errors.Is(err, ErrUserBanned):
			response.Error(c, http.StatusForbidden, "USER_BANNED", "Account is banned")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		}
		return
	}
	response.OK(c, res)
}

// GetMe returns the current user with profile.
// @Summary		Current user
// @Tags		Profile
// @Security	BearerAuth
// @Router		/users/me [GET]
func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), httpx.UserID(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load user")
		return
	}
	response.OK(c, gin.H{"user": user})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), httpx.UserID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "full_name must not be blank")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Profile not found")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Could not update profile")
		}
		return
	}
	response.OK(c, gin.H{"profile": profile})
}
