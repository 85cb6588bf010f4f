package api

import (
	"errors"
	"strings"

	"fintrack/config"
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler registration and sessions
type AuthHandler struct {
	cfg *config.Config
	db  *gorm.DB
}

// NewAuthHandler creates the handler
func NewAuthHandler(cfg *config.Config, db *gorm.DB) *AuthHandler {
	return &AuthHandler{cfg: cfg, db: db}
}

// RegisterRequest registration payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100" example:"Ana Souza"`
	Username string `json:"username" binding:"required,min=3,max=50" example:"ana"`
	Password string `json:"password" binding:"required,min=6,max=72" example:"password123"`
}

// LoginRequest login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"ana"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// AuthResponse token plus the account
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register creates an account with the default categories
// @Summary Register
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "account"
// @Success 200 {object} Response{data=AuthResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "username taken"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "name, username (3+ chars) and password (6+ chars) are required")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Name = strings.TrimSpace(req.Name)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "failed to hash password")
		return
	}

	user := models.User{
		Username: req.Username,
		Name:     req.Name,
		Password: string(hashedPassword),
	}
	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return service.ErrConflict
		}
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return service.ErrConflict
			}
			return err
		}
		cats := models.DefaultCategories(user.ID)
		return tx.Create(&cats).Error
	})
	if errors.Is(err, service.ErrConflict) {
		Conflict(c, "username already exists")
		return
	}
	if err != nil {
		serviceError(c, err, "failed to create account")
		return
	}

	h.startSession(c, "account created", user)
}

// Login checks credentials and starts a session
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "credentials"
// @Success 200 {object} Response{data=AuthResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "username and password are required")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("username = ?", strings.TrimSpace(req.Username)).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Unauthorized(c, "invalid username or password")
			return
		}
		serviceError(c, err, "failed to log in")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		Unauthorized(c, "invalid username or password")
		return
	}

	h.startSession(c, "logged in", user)
}

func (h *AuthHandler) startSession(c *gin.Context, message string, user models.User) {
	token, err := middleware.GenerateToken(user.ID, user.Username, h.cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, "failed to generate token")
		return
	}
	setAuthCookie(c, token, int(h.cfg.JWT.ExpireTime.Seconds()))
	SuccessWithMessage(c, message, AuthResponse{Token: token, User: user})
}

// Logout expires the session cookie
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} Response
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	clearAuthCookie(c)
	SuccessWithMessage(c, "logged out", nil)
}

// Me returns the current account
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.User}
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, middleware.GetCurrentUserID(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Unauthorized(c, "not authenticated")
			return
		}
		serviceError(c, err, "failed to load user")
		return
	}
	Success(c, user)
}
