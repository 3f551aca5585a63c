package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pickme-backend/internal/delivery/http/response"
	"pickme-backend/internal/usecase"
)

// Health godoc
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response{data=map[string]string}
// @Failure      503  {object}  response.Response{data=map[string]string}
// @Router       /health [get]
func Health(healthUC usecase.HealthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, healthy := healthUC.Check(c.Request.Context())
		if !healthy {
			c.JSON(http.StatusServiceUnavailable, response.Response{
				Success: false,
				Message: "System degraded",
				Data:    status,
			})
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	}
}
