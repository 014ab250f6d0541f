package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elegance/jewelry-catalog/internal/api/metrics"
	"github.com/elegance/jewelry-catalog/internal/core/domain"
	"github.com/elegance/jewelry-catalog/internal/core/ports"
)

// uploadField is the multipart field carrying the image.
const uploadField = "image"

type UploadHandler struct {
	images ports.ImageStore
}

func NewUploadHandler(images ports.ImageStore) *UploadHandler {
	return &UploadHandler{images: images}
}

// Upload handles POST /api/upload.
//
// @Summary      Upload a product image
// @Tags         products
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  true  "JPEG, PNG or WebP image"
// @Success      200    {object}  uploadResponse
// @Failure      400    {object}  errorResponse
// @Failure      413    {object}  errorResponse
// @Router       /upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return domain.Validationf("no image file provided")
	}

	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	url, err := h.images.Save(c.Request().Context(), fh.Filename, src)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return err
	}

	metrics.UploadsTotal.WithLabelValues("stored").Inc()
	return c.JSON(http.StatusOK, uploadResponse{ImageURL: url})
}
