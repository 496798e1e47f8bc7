package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusCreated, data, message)
}

func RespondWithStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// RespondErrorWithData is used when the caller still needs a payload, such as the failure
// list of a bulk upload.
func RespondErrorWithData(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

type errorMapping struct {
	target  error
	code    int
	message string
}

var serviceErrors = []errorMapping{
	{ErrInvalidPage, http.StatusBadRequest, "Page must be greater than 0"},
	{ErrInvalidPageSize, http.StatusBadRequest, "Page size is out of range"},
	{ErrAccountNotFound, http.StatusNotFound, "Account not found"},
	{ErrEmailAlreadyExists, http.StatusConflict, "Email already registered"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{ErrInvalidToken, http.StatusUnauthorized, "Invalid or expired token"},
	{ErrInvalidAvatarURL, http.StatusBadRequest, "Please enter a valid image URL"},
	{ErrGroupNotFound, http.StatusNotFound, "Group not found"},
	{ErrCategoryNotFound, http.StatusNotFound, "Category not found"},
	{ErrCategoryExists, http.StatusConflict, "Category already exists"},
	{ErrCategoryInUse, http.StatusConflict, "Category still has groups"},
}

func HandleServiceError(c *gin.Context, err error) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			RespondError(c, m.code, m.message)
			return
		}
	}

	switch {
	case errors.Is(err, ErrSearchUnavailable):
		zap.L().Warn("search unavailable", zap.Error(err), zap.String("trace_id", traceID(c)))
		RespondError(c, http.StatusServiceUnavailable, "Search is temporarily unavailable")
	case errors.Is(err, ErrDatabaseError):
		zap.L().Error("database error", zap.Error(err), zap.String("trace_id", traceID(c)))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		zap.L().Error("unhandled service error", zap.Error(err), zap.String("trace_id", traceID(c)))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
