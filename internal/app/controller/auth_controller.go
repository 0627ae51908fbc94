package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/craftnest/craftnest-backend/internal/app/model"
	"github.com/craftnest/craftnest-backend/internal/app/service"
	"github.com/craftnest/craftnest-backend/internal/errors"
	"github.com/craftnest/craftnest-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
	userService service.UserService
}

func NewAuthController(authService service.AuthService, userService service.UserService) *AuthController {
	return &AuthController{
		authService: authService,
		userService: userService,
	}
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required"`
	Phone       string `json:"phone"`
	Role        string `json:"role" binding:"omitempty,oneof=customer artisan"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type SessionRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	DisplayName string `json:"display_name"`
}

// Register creates a new account
// POST /api/v1/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration payload", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid registration data")
		return
	}

	user, tokens, err := ctrl.authService.Register(req.Email, req.Password, req.DisplayName, req.Phone, model.UserRole(req.Role))
	if err != nil {
		respondServiceError(c, err, "user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// Login authenticates with email and password
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login payload", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Email and password are required")
		return
	}

	user, tokens, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err, "user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// Session exchanges an externally verified identity for a local session,
// creating the account on first contact (matched by email, then phone)
// POST /api/v1/auth/session
func (ctrl *AuthController) Session(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid session payload", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "A verified email is required")
		return
	}

	user, err := ctrl.userService.EnsureUser(req.Email, req.Phone, req.DisplayName)
	if err != nil {
		respondServiceError(c, err, "user")
		return
	}

	tokens, err := ctrl.authService.IssueTokens(user)
	if err != nil {
		respondServiceError(c, err, "user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// Logout revokes the current access token
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		errors.Unauthorized(c, "")
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), parts[1]); err != nil {
		respondServiceError(c, err, "user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// Refresh exchanges a refresh token for a new token pair
// POST /api/v1/auth/refresh
func (ctrl *AuthController) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Refresh token is required")
		return
	}

	tokens, err := ctrl.authService.RefreshToken(req.RefreshToken)
	if err != nil {
		errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid refresh token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

// Me returns the authenticated user's profile
// GET /api/v1/auth/me
func (ctrl *AuthController) Me(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.userService.GetByID(userID)
	if err != nil {
		respondServiceError(c, err, "user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile edits the authenticated user's profile
// PATCH /api/v1/auth/me
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req service.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid profile data")
		return
	}

	user, err := ctrl.userService.UpdateProfile(userID, req)
	if err != nil {
		respondServiceError(c, err, "user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateArtisanSettings edits seller preferences
// PATCH /api/v1/auth/me/artisan-settings
func (ctrl *AuthController) UpdateArtisanSettings(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req service.ArtisanSettingsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid settings data")
		return
	}

	user, err := ctrl.userService.UpdateArtisanSettings(userID, req)
	if err != nil {
		respondServiceError(c, err, "user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
