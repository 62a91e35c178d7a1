package handler

import (
	"net/http"
	"strconv"

	"github.com/ccoveille/go-safecast"
	"github.com/gin-gonic/gin"
	"github.com/sciencelabshs/neonlink/api/models"
	"github.com/sciencelabshs/neonlink/auth"
)

// AdminHandler serves the admin-only user management endpoints. Admin
// privilege is enforced by the guard middleware upstream.
type AdminHandler struct {
	auth *auth.Service
}

// NewAdmin creates an AdminHandler backed by the auth service.
func NewAdmin(authService *auth.Service) *AdminHandler {
	return &AdminHandler{auth: authService}
}

// userIDParam parses the :id path parameter.
func userIDParam(c *gin.Context) (uint, bool) {
	raw, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	id, err := safecast.ToUint(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return id, true
}

// ListUsers handles GET /api/users/all.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.auth.Users(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ToUsers(users))
}

// UpdateUser handles PUT /api/users/:id. The admin flag is always applied;
// a password is rotated only when supplied.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.SetAdminStatus(c.Request.Context(), id, req.IsAdmin, req.Password)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToUser(user))
}

// DeleteUser handles DELETE /api/users/:id. Deleting your own account
// through this path is rejected.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	sess := auth.CurrentSession(c)
	if err := h.auth.DeleteUser(c.Request.Context(), sess.UserID, id); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "OK"})
}
