package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	TraceIDKey = "trace_id"
	LoggerKey  = "logger"
	UserIDKey  = "user_id"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// LoggerFrom returns the request scoped logger installed by the logging
// middleware, falling back to the global zap logger.
func LoggerFrom(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(LoggerKey); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return zap.L()
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusOK, data, message)
}

func RespondWithStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: c.GetString(TraceIDKey),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString(TraceIDKey),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidPlanID):
		RespondError(c, http.StatusBadRequest, "Invalid Plan ID")
	case errors.Is(err, ErrInvalidDateRange):
		RespondError(c, http.StatusBadRequest, "Return date must not be before outbound date")
	case errors.Is(err, ErrNotEnoughCoordinates):
		RespondError(c, http.StatusBadRequest, "Invalid coordinates. Need at least 2 points.")
	case errors.Is(err, ErrUnsupportedProvider):
		RespondError(c, http.StatusBadRequest, "Unsupported AI provider. Please use 'gpt' or 'gemini'.")
	case errors.Is(err, ErrSessionNotFound):
		RespondError(c, http.StatusNotFound, "Chat session not found")
	case errors.Is(err, ErrTravelPlanNotFound):
		RespondError(c, http.StatusNotFound, "Plan not found")
	case errors.Is(err, ErrDestinationNotFound):
		RespondError(c, http.StatusNotFound, "Could not get destination information")
	case errors.Is(err, ErrPreferencesNotFound):
		RespondError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, ErrUnexpectedBehaviorOfAI):
		LoggerFrom(c).Warn("ai provider failure", zap.Error(err))
		RespondError(c, http.StatusBadGateway, "Error calling AI service")
	case errors.Is(err, ErrDatabaseError):
		LoggerFrom(c).Error("database error", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		LoggerFrom(c).Error("unknown error", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
