package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "smartvegis/internal/errors"
	"smartvegis/internal/service"
)

// UploadHandler accepts listing and store photos.
type UploadHandler struct {
	imageService service.ImageService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(imageService service.ImageService) *UploadHandler {
	return &UploadHandler{imageService: imageService}
}

// UploadImage godoc
// @Summary Upload an image
// @Description Accepts one image file of at most 5MB and returns its public URL.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /uploads/images [post]
func (h *UploadHandler) UploadImage(c echo.Context) error {
	vendorID, err := currentVendorID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return apperrors.NewValidationError("image file is required")
	}
	file, err := fh.Open()
	if err != nil {
		return apperrors.NewValidationError("image file could not be read")
	}
	defer file.Close()

	url, err := h.imageService.Upload(c.Request().Context(), vendorID, service.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        file,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, echo.Map{"url": url})
}
