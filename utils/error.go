package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	SlotID  string `json:"slotId,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// statusForCode maps application error codes to HTTP statuses.
func statusForCode(code string) int {
	switch code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAuthorization:
		return http.StatusForbidden
	case CodeInvalidState, CodeCapacityExceeded, CodeDuplicateBooking, CodeDuplicateEntry:
		return http.StatusConflict
	case CodeConflict:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as a JSON error response. Typed application errors
// keep their stable code; anything else becomes an opaque 500.
func RespondError(c *gin.Context, err error) {
	if appErr, ok := AsAppError(err); ok {
		c.JSON(statusForCode(appErr.Code), ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
			SlotID:  appErr.SlotID,
		})
		return
	}
	GetLogger().Error("internal error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Message: "Internal Server Error",
	})
}
