package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/sciencelabshs/neonlink/api/models"
	"github.com/sciencelabshs/neonlink/auth"
)

// Handler serves the user-facing account endpoints.
type Handler struct {
	auth *auth.Service
}

// New creates a Handler backed by the auth service.
func New(authService *auth.Service) *Handler {
	return &Handler{auth: authService}
}

// abortWithServiceError maps an auth error kind to its status code.
func abortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrRegistrationDisabled),
		errors.Is(err, auth.ErrUsernameTaken):
		c.AbortWithStatusJSON(http.StatusNotAcceptable, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrSelfDelete):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Error("request failed", "path", c.FullPath(), "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// Register handles POST /api/users.
func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToUser(user))
}

// Login handles POST /api/users/login. On success the session token is bound
// to the cookie.
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	if err := auth.BindSessionCookie(c, sess.Token); err != nil {
		log.Error("failed to save session cookie", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		SessionID: sess.Token,
		UserID:    sess.UserID,
		Username:  sess.Username,
		IsAdmin:   sess.IsAdmin,
	})
}

// Logout handles POST /api/users/logout. Logging out without a session still
// succeeds.
func (h *Handler) Logout(c *gin.Context) {
	sess := auth.CurrentSession(c)
	h.auth.Logout(sess.Token)

	if err := auth.ClearSessionCookie(c); err != nil {
		log.Error("failed to clear session cookie", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"status": sess.Authenticated})
}

// Me handles GET /api/users/me. Visitors get the anonymous shape.
func (h *Handler) Me(c *gin.Context) {
	sess := auth.CurrentSession(c)
	if !sess.Authenticated {
		c.JSON(http.StatusOK, models.Me{})
		return
	}

	settings, err := h.auth.Settings(c.Request.Context(), sess.UserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Me{
		Authenticated: true,
		ID:            &sess.UserID,
		Username:      &sess.Username,
		IsAdmin:       &sess.IsAdmin,
		Settings:      models.ToSettings(settings),
	})
}

// ChangePassword handles PUT /api/users/changePassword.
func (h *Handler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := auth.CurrentSession(c)
	if err := h.auth.ChangePassword(c.Request.Context(), sess.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, true)
}

// DeleteOwnAccount handles DELETE /api/users for the calling user.
func (h *Handler) DeleteOwnAccount(c *gin.Context) {
	sess := auth.CurrentSession(c)
	if err := h.auth.DeleteOwnAccount(c.Request.Context(), sess.UserID); err != nil {
		abortWithServiceError(c, err)
		return
	}

	h.auth.Logout(sess.Token)
	if err := auth.ClearSessionCookie(c); err != nil {
		log.Error("failed to clear session cookie", "error", err)
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "OK"})
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
