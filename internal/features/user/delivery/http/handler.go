package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"user-admin-backend/internal/auth"
	"user-admin-backend/internal/common/apperr"
	"user-admin-backend/internal/common/middleware"
	"user-admin-backend/internal/common/response"
	"user-admin-backend/internal/features/user/models"
	"user-admin-backend/internal/features/user/service"
)

type UserHandler struct {
	service service.UserService
	tokens  *auth.TokenManager
}

func NewUserHandler(service service.UserService, tokens *auth.TokenManager) *UserHandler {
	return &UserHandler{service: service, tokens: tokens}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	authn := middleware.Authenticate(h.tokens, h.service)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
		authGroup.GET("/profile", authn, h.getProfile)
		authGroup.PUT("/profile", authn, h.updateProfile)
		authGroup.POST("/password-reset/request", h.requestPasswordReset)
		authGroup.POST("/password-reset/reset", h.resetPassword)
	}

	admin := router.Group("/admin")
	admin.Use(authn, middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/users", h.listUsers)
		admin.GET("/users/:id", h.getUser)
		admin.PUT("/users/:id/role", h.updateRole)
		admin.PUT("/users/:id/status", h.updateStatus)
		admin.DELETE("/users/:id", h.deleteUser)
		admin.GET("/stats", h.getStatistics)
	}
}

// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.RegisterRequest true "Registration data"
// @Success 201 {object} response.Envelope{data=models.AuthResponse}
// @Failure 400 {object} response.Envelope "Validation error or duplicate email/phone"
// @Router /auth/register [post]
func (h *UserHandler) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Validation("Invalid request body"))
		return
	}

	result, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "User registered successfully", result)
}

// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope{data=models.AuthResponse}
// @Failure 401 {object} response.Envelope "Invalid credentials or deactivated account"
// @Router /auth/login [post]
func (h *UserHandler) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Validation("Invalid request body"))
		return
	}

	result, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", result)
}

// @Summary Get the authenticated user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=models.UserResponse}
// @Failure 401 {object} response.Envelope
// @Router /auth/profile [get]
func (h *UserHandler) getProfile(c *gin.Context) {
	caller, err := middleware.MustCaller(c)
	if err != nil {
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved successfully", caller.ToResponse())
}

// @Summary Update the authenticated user's profile
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} response.Envelope{data=models.UserResponse}
// @Failure 400 {object} response.Envelope "Validation error or duplicate email/phone"
// @Failure 401 {object} response.Envelope
// @Router /auth/profile [put]
func (h *UserHandler) updateProfile(c *gin.Context) {
	caller, err := middleware.MustCaller(c)
	if err != nil {
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Validation("Invalid request body"))
		return
	}

	updated, err := h.service.UpdateProfile(c.Request.Context(), caller.ID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated successfully", updated)
}

// @Summary Request a password-reset OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.ResetRequest true "Account email"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope "Unknown email"
// @Router /auth/password-reset/request [post]
func (h *UserHandler) requestPasswordReset(c *gin.Context) {
	var req models.ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		response.Error(c, apperr.Validation("Email is required"))
		return
	}

	if err := h.service.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Password reset OTP sent to your email", nil)
}

// @Summary Reset password with an OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.ResetConfirm true "Email, OTP and new password"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope "Invalid or expired OTP"
// @Failure 404 {object} response.Envelope "Unknown email"
// @Router /auth/password-reset/reset [post]
func (h *UserHandler) resetPassword(c *gin.Context) {
	var req models.ResetConfirm
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Otp == "" {
		response.Error(c, apperr.Validation("Email, OTP and new password are required"))
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req.Email, req.Otp, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Password reset successful", nil)
}
