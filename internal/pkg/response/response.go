package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/verdantstay/hospitality-backend/internal/pkg/apperror"
	"github.com/verdantstay/hospitality-backend/pkg/logger"
)

// Envelope is the standard wrapper for successful responses.
type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// OK sends a 200 response with the success/data envelope.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Error sends a JSON error response.
// It checks if the error is an AppError to determine the status code.
// Anything else becomes a generic 500; the cause is logged, never returned
// to the client.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= http.StatusInternalServerError {
			logger.WithModule("http").Error("request failed",
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
			c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
			return
		}
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	logger.WithModule("http").Error("unexpected error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
