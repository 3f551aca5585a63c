package v1

import (
	"github.com/gin-gonic/gin"

	"pickme-backend/internal/domain"
	"pickme-backend/pkg/apperror"
	"pickme-backend/pkg/validation"
)

// bind reads page and size. A missing size takes the default; sizes above the maximum are
// capped. Negative values pass through to the executor, which clamps them.
func (p Paging) bind(c *gin.Context) (domain.Pageable, bool) {
	var q domain.Pageable
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(apperror.Validation(validation.FieldErrors(err)))
		return domain.Pageable{}, false
	}
	if q.Size == 0 {
		q.Size = p.DefaultSize
	}
	if p.MaxSize > 0 && q.Size > p.MaxSize {
		q.Size = p.MaxSize
	}
	return q, true
}
