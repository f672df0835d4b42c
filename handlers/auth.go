package handlers

import (
	"net/http"
	"time"

	"detailing/middleware"
	"detailing/models"
	"detailing/services/user"
	"detailing/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves /api/users.
type AuthHandler struct {
	UserSvc      user.UserService
	TokenTTL     time.Duration
	SecureCookie bool
}

// NewAuthHandler creates a new AuthHandler. secureCookie marks the session cookie
// Secure and SameSite=None so browsers send it cross-site.
func NewAuthHandler(svc user.UserService, tokenTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{UserSvc: svc, TokenTTL: tokenTTL, SecureCookie: secureCookie}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	if h.SecureCookie {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(utils.TokenCookieName, token, maxAge, "/", "", h.SecureCookie, true)
}

// RegisterUserHandler handles POST /api/users/register.
func (h *AuthHandler) RegisterUserHandler(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	resp, err := h.UserSvc.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, "RegisterUserHandler: registration failed", "registration failed", err)
		return
	}
	h.setSessionCookie(c, resp.Token, int(h.TokenTTL.Seconds()))
	getLogger(c).Info("RegisterUserHandler: user registered", zap.String("userID", resp.ID))
	c.JSON(http.StatusCreated, resp)
}

// AuthenticateUserHandler handles POST /api/users/login.
func (h *AuthHandler) AuthenticateUserHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	resp, err := h.UserSvc.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, "AuthenticateUserHandler: login failed", "login failed", err)
		return
	}
	h.setSessionCookie(c, resp.Token, int(h.TokenTTL.Seconds()))
	c.JSON(http.StatusOK, resp)
}

// LoggedInHandler handles GET /api/users/loggedIn. It expects middleware.Identify upstream.
func (h *AuthHandler) LoggedInHandler(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	c.JSON(http.StatusOK, gin.H{"loggedIn": userID != "", "role": c.GetString(middleware.ContextRole)})
}

// LogoutHandler handles POST /api/users/logout.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
