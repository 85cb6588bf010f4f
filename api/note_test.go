package api

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var noteColumns = []string{"id", "user_id", "title", "content", "tags", "color", "created_at", "updated_at"}

func newNoteRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewNoteHandler(db)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/notes", h.List)
	router.POST("/notes", h.Create)
	router.GET("/notes/:id", h.Get)
	router.PUT("/notes/:id", h.Update)
	router.DELETE("/notes/:id", h.Delete)
	return router
}

func TestNoteHandler_ListEscapesSearch(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `notes` WHERE user_id = ? AND (title LIKE ? OR content LIKE ?) AND tags LIKE ? ORDER BY updated_at DESC")).
		WithArgs(1, `%50\%%`, `%50\%%`, "%home%").
		WillReturnRows(sqlmock.NewRows(noteColumns).
			AddRow(1, 1, "50% off", nil, "home", "#3b82f6", time.Now(), time.Now()))

	w := doJSON(newNoteRouter(db), "GET", "/notes?search=50%25&tag=home", "")
	assert.Equal(t, 200, w.Code)
	data := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Nil(t, data[0].(map[string]interface{})["content"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteHandler_ListAllTags(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `notes` WHERE user_id = ? ORDER BY updated_at DESC")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(noteColumns))

	w := doJSON(newNoteRouter(db), "GET", "/notes?tag=all", "")
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, []interface{}{}, decodeBody(t, w)["data"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteHandler_Create(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `notes`").
		WithArgs(1, "Ideas", nil, nil, "#3b82f6", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	router := newNoteRouter(db)
	w := doJSON(router, "POST", "/notes", `{"title":" Ideas ","content":"  ","tags":""}`)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, float64(3), decodeBody(t, w)["data"].(map[string]interface{})["id"])

	w = doJSON(router, "POST", "/notes", `{"title":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "title is required", decodeBody(t, w)["error"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteHandler_GetNotFound(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT \\* FROM `notes` WHERE id = \\? AND user_id = \\?").
		WithArgs(5, 1).
		WillReturnRows(sqlmock.NewRows(noteColumns))

	w := doJSON(newNoteRouter(db), "GET", "/notes/5", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "note not found", decodeBody(t, w)["error"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteHandler_Delete(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `notes` WHERE id = ? AND user_id = ?")).
		WithArgs(5, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := doJSON(newNoteRouter(db), "DELETE", "/notes/5", "")
	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
