package api

import (
	"errors"
	"strings"

	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NoteHandler notes
type NoteHandler struct {
	db *gorm.DB
}

// NewNoteHandler creates the handler
func NewNoteHandler(db *gorm.DB) *NoteHandler {
	return &NoteHandler{db: db}
}

// NoteRequest create/update payload
type NoteRequest struct {
	Title   string  `json:"title" example:"Ideas"`
	Content *string `json:"content" example:"buy a notebook in 3 parcels"`
	Tags    *string `json:"tags" example:"finance,home"`
	Color   string  `json:"color" example:"#3b82f6"`
}

func (r *NoteRequest) normalize() bool {
	r.Title = strings.TrimSpace(r.Title)
	if r.Color == "" {
		r.Color = models.DefaultCategoryColor
	}
	r.Content = emptyToNil(r.Content)
	r.Tags = emptyToNil(r.Tags)
	return r.Title != ""
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// List lists notes
// @Summary List notes
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param search query string false "matches title or content"
// @Param tag query string false "tag, all for no filter"
// @Success 200 {object} Response{data=[]models.Note}
// @Router /api/notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).Where("user_id = ?", middleware.GetCurrentUserID(c))
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + escapeLikeValue(search) + "%"
		query = query.Where("title LIKE ? OR content LIKE ?", like, like)
	}
	if tag := strings.TrimSpace(c.Query("tag")); tag != "" && tag != "all" {
		query = query.Where("tags LIKE ?", "%"+escapeLikeValue(tag)+"%")
	}

	notes := make([]models.Note, 0)
	if err := query.Order("updated_at DESC").Find(&notes).Error; err != nil {
		serviceError(c, err, "failed to list notes")
		return
	}
	Success(c, notes)
}

// Create creates a note
// @Summary Create a note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body NoteRequest true "note"
// @Success 200 {object} Response{data=IDResponse}
// @Failure 400 {object} ErrorResponse
// @Router /api/notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.normalize() {
		BadRequest(c, "title is required")
		return
	}

	note := models.Note{
		UserID:  middleware.GetCurrentUserID(c),
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
		Color:   req.Color,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&note).Error; err != nil {
		serviceError(c, err, "failed to create note")
		return
	}
	SuccessWithMessage(c, "note created", IDResponse{ID: note.ID})
}

// Get returns one note
// @Summary Get a note
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path int true "note id"
// @Success 200 {object} Response{data=models.Note}
// @Failure 404 {object} ErrorResponse
// @Router /api/notes/{id} [get]
func (h *NoteHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	note, ok := h.load(c, id)
	if !ok {
		return
	}
	Success(c, note)
}

// Update replaces a note
// @Summary Update a note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "note id"
// @Param request body NoteRequest true "note"
// @Success 200 {object} Response
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/notes/{id} [put]
func (h *NoteHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.normalize() {
		BadRequest(c, "title is required")
		return
	}
	note, ok := h.load(c, id)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Model(note).Updates(map[string]interface{}{
		"title":   req.Title,
		"content": req.Content,
		"tags":    req.Tags,
		"color":   req.Color,
	}).Error; err != nil {
		serviceError(c, err, "failed to update note")
		return
	}
	SuccessWithMessage(c, "note updated", nil)
}

// Delete deletes a note
// @Summary Delete a note
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path int true "note id"
// @Success 200 {object} Response
// @Router /api/notes/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", id, middleware.GetCurrentUserID(c)).
		Delete(&models.Note{}).Error; err != nil {
		serviceError(c, err, "failed to delete note")
		return
	}
	SuccessWithMessage(c, "note deleted", nil)
}

func (h *NoteHandler) load(c *gin.Context, id uint) (*models.Note, bool) {
	var note models.Note
	err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", id, middleware.GetCurrentUserID(c)).
		First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c, "note not found")
		return nil, false
	}
	if err != nil {
		serviceError(c, err, "failed to load note")
		return nil, false
	}
	return &note, true
}
