package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/mealmind/backend/internal/apperr"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string      `json:"error"`
	Code      apperr.Code `json:"code"`
	Details   string      `json:"details,omitempty"`
	Generated bool        `json:"generated"`
	Retryable bool        `json:"retryable"`
}

// NewErrorResponse renders an application error for clients
func NewErrorResponse(err *apperr.AppError) ErrorResponse {
	return ErrorResponse{
		Error:     err.Message,
		Code:      err.Code,
		Details:   err.Details,
		Generated: err.Generated,
		Retryable: err.Retryable(),
	}
}

// AbortWithError writes err as JSON with its mapped status and stops the chain
func AbortWithError(c *gin.Context, err error) {
	appErr := apperr.As(err)
	if appErr.Cause != nil {
		_ = c.Error(appErr.Cause)
	}
	c.AbortWithStatusJSON(appErr.StatusCode(), NewErrorResponse(appErr))
}

// Recovery turns a panic into a 500 JSON error response
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("stack", string(debug.Stack())),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error: "internal server error",
					Code:  apperr.CodeInternal,
				})
			}
		}()

		c.Next()
	}
}
