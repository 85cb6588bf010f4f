package api

import (
	"errors"
	"net/http"

	"fintrack/logger"
	"fintrack/middleware"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func init() {
	// response amounts are JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// Response success envelope
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse failure envelope
type ErrorResponse struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// IDResponse returned by create endpoints
type IDResponse struct {
	ID uint `json:"id"`
}

// Success 200 with data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 200 with a message and optional data
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: message,
		Data:    data,
	})
}

// Error failure with an explicit status
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{
		Code:  code,
		Error: message,
	})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Conflict 409
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// InternalError 500
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// serviceError maps service errors onto statuses; anything unexpected is logged and
// answered with a 500 whose detail depends on the server mode
func serviceError(c *gin.Context, err error, fallback string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		BadRequest(c, verr.Message)
	case errors.Is(err, service.ErrNotFound):
		NotFound(c, "not found")
	case errors.Is(err, service.ErrConflict):
		Conflict(c, err.Error())
	default:
		logger.FromContext(c.Request.Context()).Error().
			Err(err).
			Uint("user_id", middleware.GetCurrentUserID(c)).
			Str("path", c.FullPath()).
			Msg(fallback)
		_ = c.Error(err)
		InternalError(c, SafeErrorMessage(err, fallback))
	}
}
