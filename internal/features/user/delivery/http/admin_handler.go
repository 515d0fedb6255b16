package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"user-admin-backend/internal/common/apperr"
	"user-admin-backend/internal/common/middleware"
	"user-admin-backend/internal/common/response"
	"user-admin-backend/internal/common/validation"
	"user-admin-backend/internal/features/user/models"
	"user-admin-backend/internal/features/user/service"
)

// parseUserID rejects malformed ids before they reach the store, so a bad
// path parameter is a 400, not a 500.
func parseUserID(c *gin.Context) (string, error) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", apperr.Validation("Invalid user ID format")
	}
	return id, nil
}

// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param role query string false "Filter by role" Enums(user, moderator, admin)
// @Param isActive query bool false "Filter by active status"
// @Param search query string false "Substring match on name or email"
// @Success 200 {object} response.Envelope{data=[]models.UserResponse}
// @Failure 403 {object} response.Envelope
// @Router /admin/users [get]
func (h *UserHandler) listUsers(c *gin.Context) {
	filter := service.ListFilter{
		Search: c.Query("search"),
	}

	if role := c.Query("role"); validation.IsValidRole(role) {
		filter.Role = role
	}
	if v := c.Query("isActive"); v != "" {
		isActive := v == "true"
		filter.IsActive = &isActive
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filter.Limit = limit
	}

	users, page, err := h.service.ListUsers(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, http.StatusOK, "Users fetched successfully", users, response.Pagination{
		Current:    page.Current,
		Total:      page.Total,
		Count:      page.Count,
		TotalUsers: page.TotalUsers,
	})
}

// @Summary Get a user by id
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope{data=models.UserResponse}
// @Failure 400 {object} response.Envelope "Malformed id"
// @Failure 404 {object} response.Envelope
// @Router /admin/users/{id} [get]
func (h *UserHandler) getUser(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User fetched successfully", user)
}

// @Summary Update a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body models.RoleUpdate true "New role"
// @Success 200 {object} response.Envelope{data=models.UserResponse}
// @Failure 403 {object} response.Envelope "Changing one's own admin role"
// @Failure 404 {object} response.Envelope
// @Router /admin/users/{id}/role [put]
func (h *UserHandler) updateRole(c *gin.Context) {
	caller, err := middleware.MustCaller(c)
	if err != nil {
		return
	}

	id, err := parseUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req models.RoleUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Validation("Invalid request body"))
		return
	}

	user, err := h.service.UpdateRole(c.Request.Context(), caller.ID, id, req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User role updated to "+req.Role, user)
}

// @Summary Activate or deactivate a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body models.StatusUpdate true "New status"
// @Success 200 {object} response.Envelope{data=models.UserResponse}
// @Failure 403 {object} response.Envelope "Deactivating one's own account"
// @Failure 404 {object} response.Envelope
// @Router /admin/users/{id}/status [put]
func (h *UserHandler) updateStatus(c *gin.Context) {
	caller, err := middleware.MustCaller(c)
	if err != nil {
		return
	}

	id, err := parseUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req models.StatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		response.Error(c, apperr.Validation("isActive must be a boolean value"))
		return
	}

	user, err := h.service.UpdateStatus(c.Request.Context(), caller.ID, id, *req.IsActive)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "User deactivated successfully"
	if *req.IsActive {
		message = "User activated successfully"
	}
	response.Success(c, http.StatusOK, message, user)
}

// @Summary Delete a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope "Deleting one's own account"
// @Failure 404 {object} response.Envelope
// @Router /admin/users/{id} [delete]
func (h *UserHandler) deleteUser(c *gin.Context) {
	caller, err := middleware.MustCaller(c)
	if err != nil {
		return
	}

	id, err := parseUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), caller.ID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User deleted successfully", nil)
}

// @Summary Get user statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=models.Stats}
// @Failure 403 {object} response.Envelope
// @Router /admin/stats [get]
func (h *UserHandler) getStatistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Statistics fetched successfully", stats)
}
