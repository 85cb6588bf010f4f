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

var taskColumns = []string{
	"id", "user_id", "title", "description", "tags", "status", "priority",
	"due_date", "completed_at", "created_at", "updated_at",
}

func newTaskRouter(db *gorm.DB, now time.Time) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTaskHandler(db)
	h.now = func() time.Time { return now }
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/tasks", h.List)
	router.POST("/tasks", h.Create)
	router.GET("/tasks/:id", h.Get)
	router.PUT("/tasks/:id", h.Update)
	router.DELETE("/tasks/:id", h.Delete)
	return router
}

func TestTaskHandler_ListOrderAndFilters(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `tasks` WHERE user_id = ? AND priority = ? ORDER BY "+taskPriorityOrder+",due_date ASC,created_at DESC")).
		WithArgs(1, "high").
		WillReturnRows(sqlmock.NewRows(taskColumns).
			AddRow(1, 1, "Pay rent", nil, nil, "pending", "high", "2024-03-05", nil, time.Now(), time.Now()))

	w := doJSON(newTaskRouter(db, apiNow), "GET", "/tasks?status=all&priority=high", "")
	assert.Equal(t, 200, w.Code)
	data := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "2024-03-05", data[0].(map[string]interface{})["due_date"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskHandler_CreateCompletedStampsTime(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `tasks`").
		WithArgs(1, "Pay rent", nil, nil, "completed", "medium", sqlmock.AnyArg(), apiNow, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(8, 1))
	mock.ExpectCommit()

	w := doJSON(newTaskRouter(db, apiNow), "POST", "/tasks", `{"title":"Pay rent","status":"completed"}`)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, float64(8), decodeBody(t, w)["data"].(map[string]interface{})["id"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskHandler_CreateRejectsUnknownStatus(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	router := newTaskRouter(db, apiNow)

	for _, body := range []string{
		`{"title":"Pay rent","status":"done"}`,
		`{"title":"Pay rent","priority":"critical"}`,
		`{"title":""}`,
	} {
		w := doJSON(router, "POST", "/tasks", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskHandler_UpdateKeepsCompletedAt(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	completedAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT \\* FROM `tasks` WHERE id = \\? AND user_id = \\?").
		WithArgs(3, 1).
		WillReturnRows(sqlmock.NewRows(taskColumns).
			AddRow(3, 1, "Pay rent", nil, nil, "completed", "medium", nil, completedAt, completedAt, completedAt))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `tasks` SET `completed_at`=?,`description`=?,`due_date`=?,`priority`=?,`status`=?,`tags`=?,`title`=?,`updated_at`=? WHERE `id` = ?")).
		WithArgs(completedAt, nil, sqlmock.AnyArg(), "high", "completed", nil, "Pay rent", sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := doJSON(newTaskRouter(db, apiNow), "PUT", "/tasks/3", `{"title":"Pay rent","status":"completed","priority":"high"}`)
	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskHandler_UpdateReopenClearsCompletedAt(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	completedAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT \\* FROM `tasks` WHERE id = \\? AND user_id = \\?").
		WithArgs(3, 1).
		WillReturnRows(sqlmock.NewRows(taskColumns).
			AddRow(3, 1, "Pay rent", nil, nil, "completed", "medium", nil, completedAt, completedAt, completedAt))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `tasks` SET `completed_at`=?")).
		WithArgs(nil, nil, sqlmock.AnyArg(), "medium", "pending", nil, "Pay rent", sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := doJSON(newTaskRouter(db, apiNow), "PUT", "/tasks/3", `{"title":"Pay rent"}`)
	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskHandler_GetNotFound(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT \\* FROM `tasks` WHERE id = \\? AND user_id = \\?").
		WithArgs(3, 1).
		WillReturnRows(sqlmock.NewRows(taskColumns))

	w := doJSON(newTaskRouter(db, apiNow), "GET", "/tasks/3", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
