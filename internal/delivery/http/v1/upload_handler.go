package v1

import (
	"io"
	"net/http"

	"clinic-portal-backend/internal/delivery/http/middleware"
	"clinic-portal-backend/internal/delivery/http/response"
	"clinic-portal-backend/pkg/apperror"
	"clinic-portal-backend/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxUploadBytes bounds a single uploaded file (10 MB).
const maxUploadBytes = 10 << 20

// uploadPurposes maps the purpose form field to the storage kind.
var uploadPurposes = map[string]storage.FileKind{
	"logo":          storage.FileKindImage,
	"photo":         storage.FileKindImage,
	"resume":        storage.FileKindDocument,
	"license":       storage.FileKindDocument,
	"certification": storage.FileKindDocument,
}

type UploadHandler struct {
	uploader *storage.Uploader
}

func NewUploadHandler(protected *gin.RouterGroup, uploader *storage.Uploader, limiter gin.HandlerFunc) {
	handler := &UploadHandler{uploader: uploader}
	protected.POST("/uploads", limiter, handler.Upload)
}

// Upload godoc
// @Summary      Upload a file
// @Description  Store a profile file (logo, photo, resume, license, certification). Images are downscaled; content must match the file extension.
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file     formData  file    true  "File to upload"
// @Param        purpose  formData  string  true  "One of: logo, photo, resume, license, certification"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /uploads [post]
// @Security     BearerAuth
func (h *UploadHandler) Upload(c *gin.Context) {
	actor := middleware.Actor(c)
	if actor == nil {
		c.Error(apperror.Unauthorized("Authentication required"))
		return
	}
	if h.uploader == nil {
		c.Error(apperror.New(http.StatusServiceUnavailable, "File uploads are not available", nil))
		return
	}

	purpose := c.PostForm("purpose")
	kind, ok := uploadPurposes[purpose]
	if !ok {
		c.Error(apperror.BadRequest("Purpose must be one of: logo, photo, resume, license, certification"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("A file is required"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.Error(apperror.BadRequest("File exceeds the 10 MB limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	if len(data) > maxUploadBytes {
		c.Error(apperror.BadRequest("File exceeds the 10 MB limit"))
		return
	}

	ext, err := storage.ValidateFile(kind, fileHeader.Filename, data)
	if err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	if kind == storage.FileKindImage {
		data = storage.NormalizeImage(ext, data)
	}

	key := "uploads/" + actor.ID + "/" + purpose + "/" + uuid.NewString() + ext
	path, err := h.uploader.Upload(c.Request.Context(), key, storage.ContentTypeFor(ext), data)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	response.Success(c, http.StatusCreated, "File uploaded", gin.H{"path": path})
}
