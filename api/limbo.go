package api

import (
	"errors"
	"strings"

	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LimboHandler debts parked outside the ledger
type LimboHandler struct {
	db *gorm.DB
}

// NewLimboHandler creates the handler
func NewLimboHandler(db *gorm.DB) *LimboHandler {
	return &LimboHandler{db: db}
}

// LimboRequest create/update payload
type LimboRequest struct {
	Description string          `json:"description" example:"Loan from Carla"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"number" example:"250"`
}

func (r *LimboRequest) valid() bool {
	r.Description = strings.TrimSpace(r.Description)
	return r.Description != "" && r.Amount.IsPositive()
}

// List lists limbo debts
// @Summary List limbo debts
// @Tags limbo
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.LimboDebt}
// @Router /api/limbo [get]
func (h *LimboHandler) List(c *gin.Context) {
	debts := make([]models.LimboDebt, 0)
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", middleware.GetCurrentUserID(c)).
		Order("created_at DESC").
		Find(&debts).Error; err != nil {
		serviceError(c, err, "failed to list debts")
		return
	}
	Success(c, debts)
}

// Create creates a limbo debt
// @Summary Create a limbo debt
// @Tags limbo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LimboRequest true "debt"
// @Success 200 {object} Response{data=IDResponse}
// @Failure 400 {object} ErrorResponse
// @Router /api/limbo [post]
func (h *LimboHandler) Create(c *gin.Context) {
	var req LimboRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.valid() {
		BadRequest(c, "description and amount are required")
		return
	}
	debt := models.LimboDebt{
		UserID:      middleware.GetCurrentUserID(c),
		Description: req.Description,
		Amount:      req.Amount,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&debt).Error; err != nil {
		serviceError(c, err, "failed to create debt")
		return
	}
	SuccessWithMessage(c, "debt created", IDResponse{ID: debt.ID})
}

// Update updates a limbo debt
// @Summary Update a limbo debt
// @Tags limbo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "debt id"
// @Param request body LimboRequest true "debt"
// @Success 200 {object} Response
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/limbo/{id} [put]
func (h *LimboHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req LimboRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.valid() {
		BadRequest(c, "description and amount are required")
		return
	}

	userID := middleware.GetCurrentUserID(c)
	db := h.db.WithContext(c.Request.Context())
	var debt models.LimboDebt
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&debt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "debt not found")
			return
		}
		serviceError(c, err, "failed to update debt")
		return
	}
	if err := db.Model(&debt).Updates(map[string]interface{}{
		"description": req.Description,
		"amount":      req.Amount,
	}).Error; err != nil {
		serviceError(c, err, "failed to update debt")
		return
	}
	SuccessWithMessage(c, "debt updated", nil)
}

// Delete deletes a limbo debt
// @Summary Delete a limbo debt
// @Tags limbo
// @Produce json
// @Security BearerAuth
// @Param id path int true "debt id"
// @Success 200 {object} Response
// @Router /api/limbo/{id} [delete]
func (h *LimboHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", id, middleware.GetCurrentUserID(c)).
		Delete(&models.LimboDebt{}).Error; err != nil {
		serviceError(c, err, "failed to delete debt")
		return
	}
	SuccessWithMessage(c, "debt deleted", nil)
}
