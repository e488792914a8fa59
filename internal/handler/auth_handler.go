package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portos/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Authorize handles GET /api/v1/auth/discord
func (h *AuthHandler) Authorize(c *gin.Context) {
	state := c.Query("state")
	if state == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "state query parameter is required")
		return
	}
	RespondOK(c, gin.H{"url": h.authService.AuthorizeURL(state)})
}

type callbackInput struct {
	Code    string `json:"code" binding:"required"`
	GuildID string `json:"guild_id" binding:"required"`
}

// Callback handles POST /api/v1/auth/discord/callback
func (h *AuthHandler) Callback(c *gin.Context) {
	var input callbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.authService.HandleCallback(c.Request.Context(), input.Code, input.GuildID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

type refreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshToken handles POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input refreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tokenPair, err := h.authService.RefreshToken(c.Request.Context(), input.RefreshToken)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tokenPair)
}

// Check handles GET /api/v1/auth/check. Reaching it through the auth
// middleware already proves the token, so it only confirms.
func (h *AuthHandler) Check(c *gin.Context) {
	RespondOK(c, gin.H{"valid": true})
}

// Logout handles POST /api/v1/auth/logout. Tokens are stateless; the client
// discards its pair and the server acknowledges.
func (h *AuthHandler) Logout(c *gin.Context) {
	RespondOK(c, gin.H{"logged_out": true})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	claims, exists := c.Get("claims")
	if !exists {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context")
		return
	}
	RespondOK(c, claims)
}
