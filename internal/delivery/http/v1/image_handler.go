package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pickme-backend/internal/delivery/http/middleware"
	"pickme-backend/internal/delivery/http/response"
	"pickme-backend/internal/domain"
	"pickme-backend/pkg/apperror"
	"pickme-backend/pkg/logger"
)

// maxImageBytes bounds a profile image upload.
const maxImageBytes = 5 << 20

type ImageHandler struct {
	imageUC domain.ImageUsecase
}

func NewImageHandler(r *gin.RouterGroup, imageUC domain.ImageUsecase, limit gin.HandlerFunc) {
	handler := &ImageHandler{imageUC: imageUC}
	r.POST("/images", middleware.RequireRole(domain.RoleUser, domain.RoleEnterprise), limit, handler.Upload)
}

// Upload godoc
// @Summary      Upload a profile image
// @Description  Accepts jpg, jpeg or png up to 5MB. The image is downscaled and stored as JPEG.
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "profile image"
// @Success      200    {object}  response.Response{data=domain.Account}
// @Failure      400    {object}  map[string]string
// @Failure      429    {object}  map[string]string
// @Router       /images [post]
// @Security     BearerAuth
func (h *ImageHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageBytes+1<<10)

	file, err := c.FormFile("image")
	if err != nil {
		_ = c.Error(apperror.BadRequest(domain.MsgInvalidImage))
		return
	}
	if file.Size > maxImageBytes {
		_ = c.Error(apperror.BadRequest(domain.MsgInvalidImage))
		return
	}

	f, err := file.Open()
	if err != nil {
		logger.Log.Warn("Failed to open uploaded image", zap.Error(err))
		_ = c.Error(apperror.BadRequest(domain.MsgInvalidImage))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		_ = c.Error(apperror.BadRequest(domain.MsgInvalidImage))
		return
	}

	account, err := h.imageUC.Upload(c.Request.Context(), middleware.Caller(c), file.Filename, data)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Linked(c, http.StatusOK, "Image uploaded", account, accountLinks(account.ID))
}
