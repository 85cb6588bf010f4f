package api

import (
	"errors"
	"strings"

	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsHandler reminder preferences
type SettingsHandler struct {
	db    *gorm.DB
	email *service.EmailService
}

// NewSettingsHandler creates the handler
func NewSettingsHandler(db *gorm.DB, email *service.EmailService) *SettingsHandler {
	return &SettingsHandler{db: db, email: email}
}

// SettingsRequest settings payload
type SettingsRequest struct {
	Email             string `json:"email" binding:"max=120" example:"ana@example.com"`
	RemindersEnabled  bool   `json:"reminders_enabled" example:"true"`
	ReminderDaysAhead int    `json:"reminder_days_ahead" binding:"omitempty,min=1,max=31" example:"3"`
}

// Get returns the user's settings, or defaults when none were saved
// @Summary Get settings
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.UserSettings}
// @Router /api/settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.load(c, middleware.GetCurrentUserID(c))
	if err != nil {
		serviceError(c, err, "failed to load settings")
		return
	}
	Success(c, settings)
}

// Update upserts the user's settings
// @Summary Update settings
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SettingsRequest true "settings"
// @Success 200 {object} Response{data=models.UserSettings}
// @Failure 400 {object} ErrorResponse
// @Router /api/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid settings"))
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := validateEmail(req.Email); err != nil {
		BadRequest(c, "invalid email address")
		return
	}
	if req.RemindersEnabled && req.Email == "" {
		BadRequest(c, "an email is required to enable reminders")
		return
	}
	if req.ReminderDaysAhead == 0 {
		req.ReminderDaysAhead = models.DefaultReminderDaysAhead
	}

	settings := models.UserSettings{
		UserID:            middleware.GetCurrentUserID(c),
		Email:             req.Email,
		RemindersEnabled:  req.RemindersEnabled,
		ReminderDaysAhead: req.ReminderDaysAhead,
	}
	if err := h.db.WithContext(c.Request.Context()).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "reminders_enabled", "reminder_days_ahead", "updated_at"}),
	}).Create(&settings).Error; err != nil {
		serviceError(c, err, "failed to save settings")
		return
	}
	SuccessWithMessage(c, "settings saved", settings)
}

// TestEmail sends a test message to the saved address
// @Summary Send a test email
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 400 {object} ErrorResponse
// @Router /api/settings/test-email [post]
func (h *SettingsHandler) TestEmail(c *gin.Context) {
	settings, err := h.load(c, middleware.GetCurrentUserID(c))
	if err != nil {
		serviceError(c, err, "failed to load settings")
		return
	}
	if settings.Email == "" {
		BadRequest(c, "no email configured")
		return
	}
	if err := h.email.SendTestEmail(settings.Email); err != nil {
		if errors.Is(err, service.ErrEmailDisabled) {
			BadRequest(c, "email is disabled on this server")
			return
		}
		serviceError(c, err, "failed to send test email")
		return
	}
	SuccessWithMessage(c, "test email sent", nil)
}

// validateEmail checks a trimmed address with gin's validator; empty clears the setting
func validateEmail(email string) error {
	if email == "" {
		return nil
	}
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("validator engine unavailable")
	}
	return v.Var(email, "email,max=100")
}

func (h *SettingsHandler) load(c *gin.Context, userID uint) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := h.db.WithContext(c.Request.Context()).Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.UserSettings{UserID: userID, ReminderDaysAhead: models.DefaultReminderDaysAhead}, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
