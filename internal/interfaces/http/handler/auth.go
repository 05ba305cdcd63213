package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appidentity "github.com/kirana/backend/internal/application/identity"
)

// AuthHandler serves signup, login and profile endpoints
type AuthHandler struct {
	BaseHandler
	auth *appidentity.AuthService
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(auth *appidentity.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{BaseHandler: NewBaseHandler(logger), auth: auth}
}

// Signup registers a new store
// POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req appidentity.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.auth.Signup(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login authenticates a store owner
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated store's profile
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	storeID, ok := h.TenantID(c)
	if !ok {
		return
	}

	resp, err := h.auth.GetProfile(c.Request.Context(), storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
