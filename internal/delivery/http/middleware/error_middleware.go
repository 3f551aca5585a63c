package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pickme-backend/internal/domain"
	"pickme-backend/pkg/apperror"
	"pickme-backend/pkg/logger"
)

// ErrorHandler renders the last error a handler attached with c.Error. Validation failures
// become a list of field errors; every other AppError becomes {"message": ...}.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		switch {
		case errors.As(err, &appErr) && appErr.Kind == apperror.KindValidation:
			c.JSON(appErr.Code, appErr.Fields)
		case errors.As(err, &appErr) && appErr.Kind != apperror.KindInternal:
			c.JSON(appErr.Code, gin.H{"message": appErr.Message})
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"message": domain.MsgUserNotFound})
		default:
			// Never expose internal error details to clients.
			logger.Log.Error("Internal server error",
				zap.String("path", c.FullPath()),
				zap.String("request_id", c.GetString(string(domain.KeyRequestID))),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An unexpected error occurred. Please try again later."})
		}
	}
}
