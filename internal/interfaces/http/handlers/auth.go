// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/audit"
	"github.com/your-org/marketplace-backend/internal/domain/user"
	"github.com/your-org/marketplace-backend/internal/interfaces/http/middleware"
	"github.com/your-org/marketplace-backend/internal/pkg/apperr"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	userService  *user.Service
	auditService *audit.Service
	config       *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *user.Service, auditService *audit.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		auditService: auditService,
		config:       cfg,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailure(c, h.auditService, nil, audit.ActionRegister, apperr.Invalid("invalid request data: %s", err.Error()))
		return
	}

	profile, err := h.userService.Register(&req)
	if err != nil {
		respondFailure(c, h.auditService, nil, audit.ActionRegister, err)
		return
	}

	h.auditService.RecordFor(profile.ID, audit.ActionRegister, "registered as %s", profile.Role)

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"data":    profile,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailure(c, h.auditService, nil, audit.ActionLogin, apperr.Invalid("invalid request data: %s", err.Error()))
		return
	}

	response, err := h.userService.Login(&req)
	if err != nil {
		// Failed logins are recorded anonymously; no actor exists yet.
		respondFailure(c, h.auditService, nil, audit.ActionLogin, err)
		return
	}

	h.auditService.RecordFor(response.User.ID, audit.ActionLogin, "logged in")

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    response,
	})
}

// GetProfile handles GET /auth/me
func (h *AuthHandler) GetProfile(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, apperr.Unauthenticated("authentication required"))
		return
	}

	profile, err := h.userService.GetProfile(actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": profile,
	})
}
