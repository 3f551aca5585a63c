package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pickme-backend/internal/delivery/http/response"
	"pickme-backend/pkg/apperror"
	"pickme-backend/pkg/validation"
)

const basePath = "/api"

// docsLink is the "profile" relation of every resource.
const docsLink = basePath + "/swagger/index.html"

// Paging turns page/size query parameters into a domain.Pageable.
type Paging struct {
	DefaultSize int
	MaxSize     int
}

// pathID parses a positive numeric path parameter. Anything else cannot name a record.
func pathID(c *gin.Context, name, notFound string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		_ = c.Error(apperror.NotFound(notFound))
		return 0, false
	}
	return id, true
}

// bindJSON decodes the body into dst. Decoding errors are reported like validation errors.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(apperror.Validation(validation.FieldErrors(err)))
		return false
	}
	return true
}

func created(c *gin.Context, location, message string, data any, links response.Links) {
	c.Header("Location", location)
	response.Linked(c, http.StatusCreated, message, data, links)
}
