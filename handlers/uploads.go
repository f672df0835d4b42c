package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"detailing/models"
	"detailing/services/booking"
	"detailing/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadHandler implements the before/after picture controllers.
type UploadHandler struct {
	PictureSvc booking.PictureService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(svc booking.PictureService) *UploadHandler {
	return &UploadHandler{PictureSvc: svc}
}

func (h *UploadHandler) upload(c *gin.Context, kind models.PictureKind) {
	bookingID := c.PostForm("bookingId")
	if bookingID == "" {
		utils.JSONError(c, http.StatusBadRequest, "bookingId not provided", "multipart field 'bookingId' is required")
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file not provided", err)
		return
	}

	// Temp names are random so concurrent uploads of equally named files do not collide.
	tempFilePath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		respondError(c, "upload: failed to save file", "failed to save file", err)
		return
	}
	defer os.Remove(tempFilePath)

	b, err := h.PictureSvc.Upload(c.Request.Context(), bookingID, kind, tempFilePath)
	if err != nil {
		respondError(c, "upload: failed to upload picture", "failed to upload picture", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *UploadHandler) remove(c *gin.Context, kind models.PictureKind) {
	var req models.DeletePictureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	b, err := h.PictureSvc.Delete(c.Request.Context(), req.BookingID, kind, req.PublicID)
	if err != nil {
		respondError(c, "remove: failed to delete picture", "failed to delete picture", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// UploadBeforePicture handles POST /api/uploads/before.
func (h *UploadHandler) UploadBeforePicture(c *gin.Context) { h.upload(c, models.PictureBefore) }

// UploadAfterPicture handles POST /api/uploads/after.
func (h *UploadHandler) UploadAfterPicture(c *gin.Context) { h.upload(c, models.PictureAfter) }

// DeleteBeforePicture handles DELETE /api/uploads/before.
func (h *UploadHandler) DeleteBeforePicture(c *gin.Context) { h.remove(c, models.PictureBefore) }

// DeleteAfterPicture handles DELETE /api/uploads/after.
func (h *UploadHandler) DeleteAfterPicture(c *gin.Context) { h.remove(c, models.PictureAfter) }
