package api

import (
	"errors"
	"strings"
	"time"

	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TaskHandler to-do items
type TaskHandler struct {
	db  *gorm.DB
	now func() time.Time
}

// NewTaskHandler creates the handler
func NewTaskHandler(db *gorm.DB) *TaskHandler {
	return &TaskHandler{db: db, now: time.Now}
}

// TaskRequest create/update payload
type TaskRequest struct {
	Title       string       `json:"title" example:"Pay rent"`
	Description *string      `json:"description"`
	Tags        *string      `json:"tags" example:"home"`
	Status      string       `json:"status" binding:"omitempty,oneof=pending in_progress completed cancelled" example:"pending"`
	Priority    string       `json:"priority" binding:"omitempty,oneof=low medium high urgent" example:"high"`
	DueDate     *models.Date `json:"due_date" swaggertype:"string" example:"2024-03-05"`
}

func (r *TaskRequest) normalize() bool {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = emptyToNil(r.Description)
	r.Tags = emptyToNil(r.Tags)
	if r.Status == "" {
		r.Status = models.TaskPending
	}
	if r.Priority == "" {
		r.Priority = models.PriorityMedium
	}
	if r.DueDate != nil && r.DueDate.IsZero() {
		r.DueDate = nil
	}
	return r.Title != ""
}

// urgent first, then high, medium, low
const taskPriorityOrder = "CASE priority WHEN 'urgent' THEN 0 WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END"

// List lists tasks
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param status query string false "status, all for no filter"
// @Param priority query string false "priority, all for no filter"
// @Param category query string false "matches tags"
// @Success 200 {object} Response{data=[]models.Task}
// @Router /api/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).Where("user_id = ?", middleware.GetCurrentUserID(c))
	if status := c.Query("status"); status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	if priority := c.Query("priority"); priority != "" && priority != "all" {
		query = query.Where("priority = ?", priority)
	}
	if category := strings.TrimSpace(c.Query("category")); category != "" && category != "all" {
		query = query.Where("tags LIKE ?", "%"+escapeLikeValue(category)+"%")
	}

	tasks := make([]models.Task, 0)
	if err := query.Order(taskPriorityOrder).Order("due_date ASC").Order("created_at DESC").Find(&tasks).Error; err != nil {
		serviceError(c, err, "failed to list tasks")
		return
	}
	Success(c, tasks)
}

// Create creates a task
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TaskRequest true "task"
// @Success 200 {object} Response{data=IDResponse}
// @Failure 400 {object} ErrorResponse
// @Router /api/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request body"))
		return
	}
	if !req.normalize() {
		BadRequest(c, "title is required")
		return
	}

	task := models.Task{
		UserID:      middleware.GetCurrentUserID(c),
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}
	if task.Status == models.TaskCompleted {
		now := h.now()
		task.CompletedAt = &now
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&task).Error; err != nil {
		serviceError(c, err, "failed to create task")
		return
	}
	SuccessWithMessage(c, "task created", IDResponse{ID: task.ID})
}

// Get returns one task
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "task id"
// @Success 200 {object} Response{data=models.Task}
// @Failure 404 {object} ErrorResponse
// @Router /api/tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	task, ok := h.load(c, id)
	if !ok {
		return
	}
	Success(c, task)
}

// Update replaces a task; completed_at follows the status
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "task id"
// @Param request body TaskRequest true "task"
// @Success 200 {object} Response
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request body"))
		return
	}
	if !req.normalize() {
		BadRequest(c, "title is required")
		return
	}
	task, ok := h.load(c, id)
	if !ok {
		return
	}

	var completedAt *time.Time
	if req.Status == models.TaskCompleted {
		completedAt = task.CompletedAt
		if completedAt == nil {
			now := h.now()
			completedAt = &now
		}
	}

	if err := h.db.WithContext(c.Request.Context()).Model(task).Updates(map[string]interface{}{
		"title":        req.Title,
		"description":  req.Description,
		"tags":         req.Tags,
		"status":       req.Status,
		"priority":     req.Priority,
		"due_date":     req.DueDate,
		"completed_at": completedAt,
	}).Error; err != nil {
		serviceError(c, err, "failed to update task")
		return
	}
	SuccessWithMessage(c, "task updated", nil)
}

// Delete deletes a task
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "task id"
// @Success 200 {object} Response
// @Router /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", id, middleware.GetCurrentUserID(c)).
		Delete(&models.Task{}).Error; err != nil {
		serviceError(c, err, "failed to delete task")
		return
	}
	SuccessWithMessage(c, "task deleted", nil)
}

func (h *TaskHandler) load(c *gin.Context, id uint) (*models.Task, bool) {
	var task models.Task
	err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", id, middleware.GetCurrentUserID(c)).
		First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c, "task not found")
		return nil, false
	}
	if err != nil {
		serviceError(c, err, "failed to load task")
		return nil, false
	}
	return &task, true
}
