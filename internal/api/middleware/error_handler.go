package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meetingmind/internal/api/errors"
)

// ErrorHandler recovers panics raised by HandleError or by handler bugs and renders them as API errors
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := c.GetString(RequestIDKey)

		var apiErr *errors.APIError

		switch err := recovered.(type) {
		case *errors.APIError:
			apiErr = err
		case error:
			logger.Error("Internal server error",
				zap.Error(err),
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			apiErr = errors.NewInternalError("Internal server error")
		default:
			logger.Error("Unknown panic occurred",
				zap.Any("recovered", recovered),
				zap.String("request_id", requestID),
			)
			apiErr = errors.NewInternalError("Internal server error")
		}

		apiErr.RequestID = requestID
		writeError(c, apiErr)
	})
}

// HandleError is a helper function for handlers to return errors
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	if apiErr, ok := err.(*errors.APIError); ok {
		apiErr.RequestID = c.GetString(RequestIDKey)
		writeError(c, apiErr)
		return
	}

	// If it's not an APIError, panic so the error middleware can handle it
	panic(err)
}

func writeError(c *gin.Context, apiErr *errors.APIError) {
	if apiErr.Code == errors.CodeRateLimit {
		if retryAfter, ok := apiErr.Details["retry_after"]; ok {
			if _, err := strconv.Atoi(retryAfter); err == nil {
				c.Header("Retry-After", retryAfter)
			}
		}
	}
	c.Header("Content-Type", "application/json")
	c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
}
