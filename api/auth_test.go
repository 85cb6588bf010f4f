package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fintrack/config"
	"fintrack/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock, func() { sqlDB.Close() }
}

func setUserIDMiddleware(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func testAuthConfig() *config.Config {
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
	}
	config.GlobalConfig = cfg
	middleware.InitJWT(cfg)
	return cfg
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

var userColumns = []string{"id", "username", "name", "password", "created_at"}

func TestAuthHandler_Register(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE username = \\?").
		WithArgs("ana").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("INSERT INTO `categories`").
		WillReturnResult(sqlmock.NewResult(1, 10))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/register", NewAuthHandler(cfg, db).Register)

	w := doJSON(router, "POST", "/register", `{"name":"Ana","username":"ana","password":"password123"}`)

	assert.Equal(t, 200, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "account created", resp["message"])
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "ana", user["username"])
	assert.Equal(t, float64(5), user["id"])
	assert.NotContains(t, user, "password")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.AuthCookieName, cookies[0].Name)
	claims, err := middleware.ParseToken(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, uint(5), claims.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Register_UsernameExists(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").
		WithArgs("ana").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	router := gin.New()
	router.POST("/register", NewAuthHandler(cfg, db).Register)

	w := doJSON(router, "POST", "/register", `{"name":"Ana","username":"ana","password":"password123"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "username already exists", decodeBody(t, w)["error"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	router := gin.New()
	router.POST("/register", NewAuthHandler(cfg, db).Register)

	for _, body := range []string{
		`{"name":"Ana","username":"ana","password":"123"}`,
		`{"name":"Ana","username":"an","password":"password123"}`,
		`{"username":"ana","password":"password123"}`,
	} {
		w := doJSON(router, "POST", "/register", body)
		assert.Equal(t, 400, w.Code, body)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Login(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	userRow := func() *sqlmock.Rows {
		return sqlmock.NewRows(userColumns).AddRow(3, "ana", "Ana", string(hash), time.Now())
	}
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\?").WithArgs("ana").WillReturnRows(userRow())
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\?").WithArgs("ana").WillReturnRows(userRow())
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\?").WithArgs("ghost").WillReturnRows(sqlmock.NewRows(userColumns))

	router := gin.New()
	router.POST("/login", NewAuthHandler(cfg, db).Login)

	w := doJSON(router, "POST", "/login", `{"username":"ana","password":"password123"}`)
	assert.Equal(t, 200, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	claims, err := middleware.ParseToken(data["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, uint(3), claims.UserID)
	assert.Len(t, w.Result().Cookies(), 1)

	w = doJSON(router, "POST", "/login", `{"username":"ana","password":"wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, "POST", "/login", `{"username":"ghost","password":"password123"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid username or password", decodeBody(t, w)["error"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_MeAndLogout(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE `users`.`id` = \\?").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(3, "ana", "Ana", "hash", time.Now()))

	h := NewAuthHandler(cfg, db)
	router := gin.New()
	router.GET("/me", setUserIDMiddleware(3), h.Me)
	router.POST("/logout", h.Logout)

	w := doJSON(router, "GET", "/me", "")
	assert.Equal(t, 200, w.Code)
	user := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Ana", user["name"])

	w = doJSON(router, "POST", "/logout", "")
	assert.Equal(t, 200, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	require.NoError(t, mock.ExpectationsWereMet())
}
