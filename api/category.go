package api

import (
	"errors"
	"strings"

	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler user categories
type CategoryHandler struct {
	db      *gorm.DB
	reports *service.ReportService
}

// NewCategoryHandler creates the handler
func NewCategoryHandler(db *gorm.DB, reports *service.ReportService) *CategoryHandler {
	return &CategoryHandler{db: db, reports: reports}
}

// CategoryCreateRequest new category
type CategoryCreateRequest struct {
	Name  string `json:"name" binding:"required,max=50" example:"Pets"`
	Type  string `json:"type" binding:"required,oneof=income expense" example:"expense"`
	Color string `json:"color" binding:"omitempty,max=20" example:"#f59e0b"`
}

// CategoryUpdateRequest partial category update
type CategoryUpdateRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=50"`
	Type  *string `json:"type" binding:"omitempty,oneof=income expense"`
	Color *string `json:"color" binding:"omitempty,max=20"`
}

// List categories, or the month's expense breakdown when month and year are given
// @Summary List categories
// @Description Without month/year: the user's categories ordered by name. With month and year: expense totals and percentage per category.
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param type query string false "income or expense"
// @Param month query int false "month 1-12"
// @Param year query int false "year"
// @Success 200 {object} Response{data=[]models.Category}
// @Router /api/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	month, ok := queryInt(c, "month")
	if !ok {
		return
	}
	year, ok := queryInt(c, "year")
	if !ok {
		return
	}

	if month > 0 && year > 0 {
		rows, err := h.reports.CategoryBreakdown(c.Request.Context(), userID, month, year)
		if err != nil {
			serviceError(c, err, "failed to build category breakdown")
			return
		}
		Success(c, rows)
		return
	}

	query := h.db.WithContext(c.Request.Context()).Where("user_id = ?", userID)
	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}
	list := make([]models.Category, 0)
	if err := query.Order("name ASC").Find(&list).Error; err != nil {
		serviceError(c, err, "failed to list categories")
		return
	}
	Success(c, list)
}

// Create creates a category
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryCreateRequest true "category"
// @Success 200 {object} Response{data=IDResponse}
// @Failure 400 {object} ErrorResponse "invalid or duplicate name"
// @Router /api/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "name and type are required")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "name and type are required")
		return
	}

	db := h.db.WithContext(c.Request.Context())
	if taken, err := h.nameTaken(db, userID, req.Name, 0); err != nil {
		serviceError(c, err, "failed to create category")
		return
	} else if taken {
		BadRequest(c, "category already exists")
		return
	}

	color := req.Color
	if color == "" {
		color = models.DefaultCategoryColor
	}
	cat := models.Category{UserID: userID, Name: req.Name, Type: req.Type, Color: color}
	if err := db.Create(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			BadRequest(c, "category already exists")
			return
		}
		serviceError(c, err, "failed to create category")
		return
	}
	SuccessWithMessage(c, "category created", IDResponse{ID: cat.ID})
}

// Update updates a category; a rename is carried over to the user's transactions
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "category id"
// @Param request body CategoryUpdateRequest true "fields to change"
// @Success 200 {object} Response
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request body"))
		return
	}

	db := h.db.WithContext(c.Request.Context())
	var cat models.Category
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "category not found")
			return
		}
		serviceError(c, err, "failed to update category")
		return
	}

	updates := map[string]interface{}{}
	renamed := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			BadRequest(c, "name cannot be empty")
			return
		}
		if name != cat.Name {
			taken, err := h.nameTaken(db, userID, name, cat.ID)
			if err != nil {
				serviceError(c, err, "failed to update category")
				return
			}
			if taken {
				BadRequest(c, "category already exists")
				return
			}
			updates["name"] = name
			renamed = true
		}
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Color != nil {
		color := *req.Color
		if color == "" {
			color = models.DefaultCategoryColor
		}
		updates["color"] = color
	}
	if len(updates) == 0 {
		SuccessWithMessage(c, "nothing to update", nil)
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Category{}).Where("id = ? AND user_id = ?", cat.ID, userID).Updates(updates).Error; err != nil {
			return err
		}
		if !renamed {
			return nil
		}
		return tx.Model(&models.Transaction{}).
			Where("user_id = ? AND category = ?", userID, cat.Name).
			Update("category", updates["name"]).Error
	})
	if err != nil {
		serviceError(c, err, "failed to update category")
		return
	}
	SuccessWithMessage(c, "category updated", nil)
}

// Delete deletes a category; transactions keep their category text
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "category id"
// @Success 200 {object} Response
// @Router /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", id, middleware.GetCurrentUserID(c)).
		Delete(&models.Category{}).Error; err != nil {
		serviceError(c, err, "failed to delete category")
		return
	}
	SuccessWithMessage(c, "category deleted", nil)
}

func (h *CategoryHandler) nameTaken(db *gorm.DB, userID uint, name string, exceptID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Category{}).
		Where("user_id = ? AND name = ? AND id <> ?", userID, name, exceptID).
		Count(&count).Error
	return count > 0, err
}
